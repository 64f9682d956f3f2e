package service

import (
	"context"
	"math"
	"testing"

	"github.com/Mummayiz/SmartLearning/internal/model"
)

func addSessions(t *testing.T, env *testEnv, taskID uint, durations ...int) {
	t.Helper()
	for _, d := range durations {
		session := model.Session{TaskID: taskID, DurationMinutes: d, Timestamp: t0}
		if err := env.sessions.Create(context.Background(), &session); err != nil {
			t.Fatalf("create session: %v", err)
		}
	}
}

func TestMultipliersEmpty(t *testing.T) {
	env := newTestEnv(t, t0)
	speed := NewSpeedService(env.sessions)

	multipliers, err := speed.Multipliers(context.Background())
	if err != nil {
		t.Fatalf("Multipliers: %v", err)
	}
	if len(multipliers) != 0 {
		t.Errorf("multipliers = %v, want empty", multipliers)
	}
}

func TestMultipliersRatio(t *testing.T) {
	env := newTestEnv(t, t0)
	speed := NewSpeedService(env.sessions)
	task := env.addTask(t, "X", "topic", 60, 3, 3, t0.AddDate(0, 0, 5))
	addSessions(t, env, task.ID, 90, 90)

	multipliers, err := speed.Multipliers(context.Background())
	if err != nil {
		t.Fatalf("Multipliers: %v", err)
	}
	if got := multipliers["X"]; math.Abs(got-1.5) > 1e-9 {
		t.Errorf("multiplier = %v, want 1.5", got)
	}
}

func TestMultipliersClamped(t *testing.T) {
	env := newTestEnv(t, t0)
	speed := NewSpeedService(env.sessions)

	slow := env.addTask(t, "Slow", "topic", 60, 3, 3, t0.AddDate(0, 0, 5))
	addSessions(t, env, slow.ID, 300) // raw ratio 5.0
	fast := env.addTask(t, "Fast", "topic", 60, 3, 3, t0.AddDate(0, 0, 5))
	addSessions(t, env, fast.ID, 10) // raw ratio 0.167

	multipliers, err := speed.Multipliers(context.Background())
	if err != nil {
		t.Fatalf("Multipliers: %v", err)
	}
	if got := multipliers["Slow"]; got != 1.6 {
		t.Errorf("slow multiplier = %v, want 1.6", got)
	}
	if got := multipliers["Fast"]; got != 0.6 {
		t.Errorf("fast multiplier = %v, want 0.6", got)
	}
	for subject, m := range multipliers {
		if m < 0.6 || m > 1.6 {
			t.Errorf("multiplier for %s = %v, outside [0.6, 1.6]", subject, m)
		}
	}
}

func TestMultipliersSubjectWithoutSessionsAbsent(t *testing.T) {
	env := newTestEnv(t, t0)
	speed := NewSpeedService(env.sessions)

	withHistory := env.addTask(t, "Seen", "topic", 60, 3, 3, t0.AddDate(0, 0, 5))
	addSessions(t, env, withHistory.ID, 60)
	env.addTask(t, "Unseen", "topic", 60, 3, 3, t0.AddDate(0, 0, 5))

	multipliers, err := speed.Multipliers(context.Background())
	if err != nil {
		t.Fatalf("Multipliers: %v", err)
	}
	if _, ok := multipliers["Unseen"]; ok {
		t.Error("subject without sessions should be absent")
	}
	if _, ok := multipliers["Seen"]; !ok {
		t.Error("subject with sessions should be present")
	}
}

func TestMultipliersZeroActualTreatedAsEstimate(t *testing.T) {
	env := newTestEnv(t, t0)
	speed := NewSpeedService(env.sessions)
	task := env.addTask(t, "Z", "topic", 60, 3, 3, t0.AddDate(0, 0, 5))
	addSessions(t, env, task.ID, 0)

	multipliers, err := speed.Multipliers(context.Background())
	if err != nil {
		t.Fatalf("Multipliers: %v", err)
	}
	if got := multipliers["Z"]; got != 1.0 {
		t.Errorf("multiplier = %v, want 1.0", got)
	}
}
