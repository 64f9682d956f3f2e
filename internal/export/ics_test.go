package export

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteICS(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteICS(&buf, sampleTasks()); err != nil {
		t.Fatalf("WriteICS: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "BEGIN:VCALENDAR") {
		t.Error("output is not a calendar")
	}
	// Only the scheduled task becomes an event.
	if got := strings.Count(out, "BEGIN:VEVENT"); got != 1 {
		t.Errorf("events = %d, want 1", got)
	}
	if !strings.Contains(out, "Math") || !strings.Contains(out, "Limits") {
		t.Error("event summary should carry subject and topic")
	}
	if !strings.Contains(out, "task-1@smartlearning") {
		t.Error("event uid should be derived from the task id")
	}
}

func TestWriteICSEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteICS(&buf, nil); err != nil {
		t.Fatalf("WriteICS: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "BEGIN:VCALENDAR") || strings.Contains(out, "BEGIN:VEVENT") {
		t.Errorf("empty export should be a calendar without events:\n%s", out)
	}
}
