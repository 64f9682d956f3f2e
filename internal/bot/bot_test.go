package bot

import (
	"testing"
	"time"

	"github.com/Mummayiz/SmartLearning/internal/model"
)

func TestParseAddArguments(t *testing.T) {
	task, err := parseAddArguments("Math | Integrals | 60 | 4 | 5 | 2026-09-15 | morning")
	if err != nil {
		t.Fatalf("parseAddArguments: %v", err)
	}
	if task.Subject != "Math" || task.Topic != "Integrals" {
		t.Errorf("subject/topic = %q/%q", task.Subject, task.Topic)
	}
	if task.Minutes != 60 || task.Difficulty != 4 || task.Priority != 5 {
		t.Errorf("minutes/difficulty/priority = %d/%d/%d", task.Minutes, task.Difficulty, task.Priority)
	}
	if !task.Deadline.Equal(time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("deadline = %v", task.Deadline)
	}
	if task.TimeWindow != model.WindowMorning {
		t.Errorf("time window = %q, want morning", task.TimeWindow)
	}
	if task.Status != model.StatusPending {
		t.Errorf("status = %q, want pending", task.Status)
	}
}

func TestParseAddArgumentsDefaultsWindow(t *testing.T) {
	task, err := parseAddArguments("Math | Integrals | 60 | 4 | 5 | 2026-09-15")
	if err != nil {
		t.Fatalf("parseAddArguments: %v", err)
	}
	if task.TimeWindow != model.WindowAny {
		t.Errorf("time window = %q, want any", task.TimeWindow)
	}
}

func TestParseAddArgumentsRejects(t *testing.T) {
	cases := []string{
		"",
		"Math | Integrals",
		"Math | Integrals | zero | 4 | 5 | 2026-09-15",
		"Math | Integrals | -10 | 4 | 5 | 2026-09-15",
		"Math | Integrals | 60 | 9 | 5 | 2026-09-15",
		"Math | Integrals | 60 | 4 | 0 | 2026-09-15",
		"Math | Integrals | 60 | 4 | 5 | soon",
		"Math | Integrals | 60 | 4 | 5 | 2026-09-15 | midnight",
		" | Integrals | 60 | 4 | 5 | 2026-09-15",
	}
	for _, args := range cases {
		if _, err := parseAddArguments(args); err == nil {
			t.Errorf("parseAddArguments(%q) should fail", args)
		}
	}
}
