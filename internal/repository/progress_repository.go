package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Mummayiz/SmartLearning/internal/model"
)

// ProgressRepository keeps per-topic completion state.
type ProgressRepository struct {
	db *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// MarkCompleted upserts the topic row, flagging it completed with the given
// quiz score.
func (r *ProgressRepository) MarkCompleted(ctx context.Context, topic string, score int) error {
	db := r.db.WithContext(ctx)

	var progress model.Progress
	err := db.Where("topic = ?", topic).First(&progress).Error
	switch {
	case err == nil:
		updates := map[string]interface{}{
			"completed":  true,
			"last_score": score,
		}
		if err := db.Model(&progress).Updates(updates).Error; err != nil {
			return fmt.Errorf("update progress for %q: %w", topic, err)
		}
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		progress = model.Progress{Topic: topic, Completed: true, LastScore: score}
		if err := db.Create(&progress).Error; err != nil {
			return fmt.Errorf("create progress for %q: %w", topic, err)
		}
		return nil
	default:
		return fmt.Errorf("find progress for %q: %w", topic, err)
	}
}

// Map returns all progress rows keyed by topic.
func (r *ProgressRepository) Map(ctx context.Context) (map[string]model.Progress, error) {
	var rows []model.Progress
	if err := r.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	byTopic := make(map[string]model.Progress, len(rows))
	for _, row := range rows {
		byTopic[row.Topic] = row
	}
	return byTopic, nil
}
