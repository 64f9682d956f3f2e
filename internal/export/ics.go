package export

import (
	"fmt"
	"io"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/Mummayiz/SmartLearning/internal/model"
)

// WriteICS writes one calendar event per scheduled task. Events start at
// the scheduled day's midnight and run for the task's estimated minutes;
// unscheduled tasks are skipped.
func WriteICS(w io.Writer, tasks []model.Task) error {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//SmartLearning//study planner//EN")

	now := time.Now()
	for _, task := range tasks {
		if task.ScheduledDate == nil {
			continue
		}
		start := *task.ScheduledDate
		event := cal.AddEvent(fmt.Sprintf("task-%d@smartlearning", task.ID))
		event.SetCreatedTime(now)
		event.SetDtStampTime(now)
		event.SetStartAt(start)
		event.SetEndAt(start.Add(time.Duration(task.Minutes) * time.Minute))
		event.SetSummary(fmt.Sprintf("%s — %s", task.Subject, task.Topic))
		event.SetDescription(fmt.Sprintf("Status: %s | Diff: %d | Prio: %d", task.Status, task.Difficulty, task.Priority))
	}

	return cal.SerializeTo(w)
}
