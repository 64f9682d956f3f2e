package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Mummayiz/SmartLearning/internal/model"
)

// TaskRepository handles persistence for study tasks.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

// ListPendingUnscheduled returns the backlog a scheduling run considers:
// pending tasks that have never been placed, in creation order.
func (r *TaskRepository) ListPendingUnscheduled(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).
		Where("status = ? AND scheduled_date IS NULL", model.StatusPending).
		Order("created_at, id").
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list backlog: %w", err)
	}
	return tasks, nil
}

// ListScheduledWithin returns tasks placed on a day in [from, to).
func (r *TaskRepository) ListScheduledWithin(ctx context.Context, from, to time.Time) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).
		Where("scheduled_date IS NOT NULL AND scheduled_date >= ? AND scheduled_date < ?", from, to).
		Order("scheduled_date, id").
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list scheduled: %w", err)
	}
	return tasks, nil
}

// ListScheduled returns every task with a placement, earliest day first.
func (r *TaskRepository) ListScheduled(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).
		Where("scheduled_date IS NOT NULL").
		Order("scheduled_date, id").
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list scheduled: %w", err)
	}
	return tasks, nil
}

func (r *TaskRepository) ListByStatus(ctx context.Context, status string) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at, id").
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list %s tasks: %w", status, err)
	}
	return tasks, nil
}

// ListAll returns every task, scheduled ones first by day, the rest by deadline.
func (r *TaskRepository) ListAll(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).
		Order("scheduled_date IS NULL, scheduled_date, deadline").
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// EarliestBySubject returns the subject's earliest-created task, which review
// generation treats as the canonical original.
func (r *TaskRepository) EarliestBySubject(ctx context.Context, subject string) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).
		Where("subject = ?", subject).
		Order("created_at, id").
		First(&task).Error; err != nil {
		return nil, fmt.Errorf("find earliest task for %q: %w", subject, err)
	}
	return &task, nil
}

// DeadlinesWithin returns tasks whose deadline falls in [from, to).
func (r *TaskRepository) DeadlinesWithin(ctx context.Context, from, to time.Time) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).
		Where("deadline >= ? AND deadline < ?", from, to).
		Order("deadline, id").
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list deadlines: %w", err)
	}
	return tasks, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id uint) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).First(&task, id).Error; err != nil {
		return nil, fmt.Errorf("find task %d: %w", id, err)
	}
	return &task, nil
}

// UpdateSchedule assigns a task to a day and records the time-window label.
// Status is left untouched.
func (r *TaskRepository) UpdateSchedule(ctx context.Context, id uint, date time.Time, window string) error {
	if err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"scheduled_date": date,
			"time_window":    window,
		}).Error; err != nil {
		return fmt.Errorf("schedule task %d: %w", id, err)
	}
	return nil
}

func (r *TaskRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	if err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ?", id).
		Update("status", status).Error; err != nil {
		return fmt.Errorf("update task %d status: %w", id, err)
	}
	return nil
}
