package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/Mummayiz/SmartLearning/internal/model"
)

// CalibrationSample pairs a task's estimated minutes with the actual minutes
// of one recorded session, keyed by subject.
type CalibrationSample struct {
	Subject   string
	Estimated int
	Actual    int
}

// SessionRepository appends work sessions and answers calibration queries.
type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, session *model.Session) error {
	if err := r.db.WithContext(ctx).Create(session).Error; err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// CalibrationSamples joins sessions to their tasks, yielding one
// (subject, estimated, actual) triple per session.
func (r *SessionRepository) CalibrationSamples(ctx context.Context) ([]CalibrationSample, error) {
	var samples []CalibrationSample
	if err := r.db.WithContext(ctx).
		Table("sessions").
		Select("tasks.subject AS subject, tasks.minutes AS estimated, sessions.duration_minutes AS actual").
		Joins("JOIN tasks ON tasks.id = sessions.task_id").
		Scan(&samples).Error; err != nil {
		return nil, fmt.Errorf("load calibration samples: %w", err)
	}
	return samples, nil
}

// MinutesBySubject sums recorded session minutes per subject.
func (r *SessionRepository) MinutesBySubject(ctx context.Context) (map[string]int, error) {
	var rows []struct {
		Subject string
		Total   int
	}
	if err := r.db.WithContext(ctx).
		Table("sessions").
		Select("tasks.subject AS subject, SUM(sessions.duration_minutes) AS total").
		Joins("JOIN tasks ON tasks.id = sessions.task_id").
		Group("tasks.subject").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("sum session minutes: %w", err)
	}
	totals := make(map[string]int, len(rows))
	for _, row := range rows {
		totals[row.Subject] = row.Total
	}
	return totals, nil
}
