package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/Mummayiz/SmartLearning/internal/model"
)

// QuizRepository stores quiz questions by topic.
type QuizRepository struct {
	db *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{db: db}
}

func (r *QuizRepository) Create(ctx context.Context, quiz *model.Quiz) error {
	if err := r.db.WithContext(ctx).Create(quiz).Error; err != nil {
		return fmt.Errorf("create quiz: %w", err)
	}
	return nil
}

func (r *QuizRepository) FindByID(ctx context.Context, id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	if err := r.db.WithContext(ctx).First(&quiz, id).Error; err != nil {
		return nil, fmt.Errorf("find quiz %d: %w", id, err)
	}
	return &quiz, nil
}

func (r *QuizRepository) ListByTopic(ctx context.Context, topic string) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	if err := r.db.WithContext(ctx).
		Where("topic = ?", topic).
		Order("id").
		Find(&quizzes).Error; err != nil {
		return nil, fmt.Errorf("list quizzes for %q: %w", topic, err)
	}
	return quizzes, nil
}

// Topics lists the distinct topics that have at least one quiz question.
func (r *QuizRepository) Topics(ctx context.Context) ([]string, error) {
	var topics []string
	if err := r.db.WithContext(ctx).
		Model(&model.Quiz{}).
		Distinct("topic").
		Order("topic").
		Pluck("topic", &topics).Error; err != nil {
		return nil, fmt.Errorf("list quiz topics: %w", err)
	}
	return topics, nil
}
