// Package export renders the task base into shareable files: a CSV table
// and an iCalendar feed of the scheduled days.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/Mummayiz/SmartLearning/internal/model"
)

const dateLayout = "2006-01-02"

// WriteCSV writes the full task table, one row per task.
func WriteCSV(w io.Writer, tasks []model.Task) error {
	cw := csv.NewWriter(w)

	header := []string{"id", "subject", "topic", "minutes", "difficulty", "priority", "deadline", "scheduled_date", "time_window", "status", "created_at"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, task := range tasks {
		scheduled := ""
		if task.ScheduledDate != nil {
			scheduled = task.ScheduledDate.Format(dateLayout)
		}
		row := []string{
			fmt.Sprintf("%d", task.ID),
			task.Subject,
			task.Topic,
			fmt.Sprintf("%d", task.Minutes),
			fmt.Sprintf("%d", task.Difficulty),
			fmt.Sprintf("%d", task.Priority),
			task.Deadline.Format(dateLayout),
			scheduled,
			task.TimeWindow,
			task.Status,
			task.CreatedAt.Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
