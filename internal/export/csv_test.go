package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/Mummayiz/SmartLearning/internal/model"
)

var day = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func sampleTasks() []model.Task {
	scheduled := day.AddDate(0, 0, 1)
	return []model.Task{
		{
			ID: 1, Subject: "Math", Topic: "Limits", Minutes: 90,
			Difficulty: 4, Priority: 5, Deadline: day.AddDate(0, 0, 10),
			ScheduledDate: &scheduled, TimeWindow: model.WindowMorning,
			Status: model.StatusPending, CreatedAt: day,
		},
		{
			ID: 2, Subject: "History", Topic: "WWII", Minutes: 40,
			Difficulty: 2, Priority: 2, Deadline: day.AddDate(0, 0, 30),
			TimeWindow: model.WindowAny, Status: model.StatusPending, CreatedAt: day,
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleTasks()); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("records = %d, want header + 2 rows", len(records))
	}
	if records[0][0] != "id" || records[0][1] != "subject" {
		t.Errorf("header = %v", records[0])
	}
	if records[1][1] != "Math" || records[1][6] != "2026-03-12" || records[1][7] != "2026-03-03" {
		t.Errorf("first row = %v", records[1])
	}
	// Unscheduled task has an empty scheduled_date cell.
	if records[2][7] != "" {
		t.Errorf("scheduled_date for unscheduled task = %q, want empty", records[2][7])
	}
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("records = %d, want just the header", len(records))
	}
}
