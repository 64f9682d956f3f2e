package repository

import (
	"context"
	"testing"

	"github.com/Mummayiz/SmartLearning/internal/model"
)

func TestCalibrationSamples(t *testing.T) {
	db := newTestDB(t)
	tasks := NewTaskRepository(db)
	sessions := NewSessionRepository(db)
	ctx := context.Background()

	task := createTask(t, tasks, "Math", "a", 60, t0.AddDate(0, 0, 5), model.StatusDone)
	for _, minutes := range []int{90, 80} {
		if err := sessions.Create(ctx, &model.Session{TaskID: task.ID, DurationMinutes: minutes, Timestamp: t0}); err != nil {
			t.Fatalf("create session: %v", err)
		}
	}

	samples, err := sessions.CalibrationSamples(ctx)
	if err != nil {
		t.Fatalf("CalibrationSamples: %v", err)
	}
	if len(samples) != 2 {
		t.Fatalf("samples = %d, want 2", len(samples))
	}
	for _, sample := range samples {
		if sample.Subject != "Math" {
			t.Errorf("subject = %q, want Math", sample.Subject)
		}
		if sample.Estimated != 60 {
			t.Errorf("estimated = %d, want 60", sample.Estimated)
		}
	}
	if samples[0].Actual+samples[1].Actual != 170 {
		t.Errorf("actual sum = %d, want 170", samples[0].Actual+samples[1].Actual)
	}
}

func TestMinutesBySubject(t *testing.T) {
	db := newTestDB(t)
	tasks := NewTaskRepository(db)
	sessions := NewSessionRepository(db)
	ctx := context.Background()

	math := createTask(t, tasks, "Math", "a", 60, t0.AddDate(0, 0, 5), model.StatusDone)
	history := createTask(t, tasks, "History", "b", 40, t0.AddDate(0, 0, 5), model.StatusDone)
	for _, s := range []model.Session{
		{TaskID: math.ID, DurationMinutes: 50, Timestamp: t0},
		{TaskID: math.ID, DurationMinutes: 25, Timestamp: t0},
		{TaskID: history.ID, DurationMinutes: 40, Timestamp: t0},
	} {
		session := s
		if err := sessions.Create(ctx, &session); err != nil {
			t.Fatalf("create session: %v", err)
		}
	}

	totals, err := sessions.MinutesBySubject(ctx)
	if err != nil {
		t.Fatalf("MinutesBySubject: %v", err)
	}
	if totals["Math"] != 75 || totals["History"] != 40 {
		t.Errorf("totals = %v, want Math 75 / History 40", totals)
	}
}
