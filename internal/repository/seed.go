package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Mummayiz/SmartLearning/internal/model"
)

// SeedDemo fills an empty database with a small demo backlog and a couple of
// quiz questions so the planner has something to chew on out of the box.
// It is a no-op when any task already exists.
func SeedDemo(ctx context.Context, db *gorm.DB, today time.Time) error {
	var count int64
	if err := db.WithContext(ctx).Model(&model.Task{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count tasks: %w", err)
	}
	if count > 0 {
		return nil
	}

	tasks := []model.Task{
		{Subject: "Mathematics", Topic: "Calculus - Limits & Continuity", Minutes: 90, Difficulty: 4, Priority: 5, Deadline: today.AddDate(0, 0, 10), TimeWindow: model.WindowMorning, Status: model.StatusPending},
		{Subject: "Mathematics", Topic: "Linear Algebra - Matrix Multiplication", Minutes: 60, Difficulty: 3, Priority: 4, Deadline: today.AddDate(0, 0, 14), TimeWindow: model.WindowAny, Status: model.StatusPending},
		{Subject: "Python", Topic: "Generators and Iterators", Minutes: 45, Difficulty: 3, Priority: 4, Deadline: today.AddDate(0, 0, 7), TimeWindow: model.WindowEvening, Status: model.StatusPending},
		{Subject: "Algorithms", Topic: "Greedy Algorithms - Problems", Minutes: 120, Difficulty: 5, Priority: 5, Deadline: today.AddDate(0, 0, 20), TimeWindow: model.WindowAny, Status: model.StatusPending},
		{Subject: "History", Topic: "World War II - Overview", Minutes: 40, Difficulty: 2, Priority: 2, Deadline: today.AddDate(0, 0, 30), TimeWindow: model.WindowAny, Status: model.StatusPending},
	}
	if err := db.WithContext(ctx).Create(&tasks).Error; err != nil {
		return fmt.Errorf("seed tasks: %w", err)
	}

	quizzes := []model.Quiz{
		{Topic: "Generators and Iterators", Question: "What keyword defines a generator function?", AnswerText: "def"},
		{Topic: "Calculus - Limits & Continuity", Question: "Limit of sin(x)/x as x->0 equals?", AnswerText: "1"},
	}
	if err := db.WithContext(ctx).Create(&quizzes).Error; err != nil {
		return fmt.Errorf("seed quizzes: %w", err)
	}

	return nil
}
