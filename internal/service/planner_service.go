package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/Mummayiz/SmartLearning/internal/model"
	"github.com/Mummayiz/SmartLearning/internal/repository"
)

// Placement never books a task below this many minutes, no matter how fast
// the subject's history says the user is.
const minCalibratedMinutes = 5

// Review tasks get a quarter of the original estimate, floored at 10 minutes.
const minReviewMinutes = 10

// ReviewOutcome records what review generation did for one subject.
type ReviewOutcome struct {
	Subject   string
	ReviewIDs []uint
	Err       error
}

// ReviewReport collects per-subject review-generation outcomes for one
// scheduling run. Failures here never abort placement; they are surfaced so
// the caller can report them.
type ReviewReport struct {
	Outcomes []ReviewOutcome
}

// Created counts review tasks created across all subjects.
func (r ReviewReport) Created() int {
	n := 0
	for _, o := range r.Outcomes {
		n += len(o.ReviewIDs)
	}
	return n
}

// Failed counts subjects whose review bookkeeping errored.
func (r ReviewReport) Failed() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Err != nil {
			n++
		}
	}
	return n
}

// PlannerService places pending tasks into a lookahead window of days under
// a daily minute budget, generates spaced-repetition reviews for each
// subject's first placement, and re-places tasks marked missed.
//
// Each run reads the store, computes in memory and writes placements back;
// no state survives between runs. The capacity ledger is rebuilt from
// scratch every time, so concurrent or back-to-back runs inside one day can
// over-book. Invocations must be serialized by the caller.
type PlannerService struct {
	tasks   *repository.TaskRepository
	reviews *repository.ReviewRepository
	speed   *SpeedService
	now     func() time.Time
}

func NewPlannerService(tasks *repository.TaskRepository, reviews *repository.ReviewRepository, speed *SpeedService) *PlannerService {
	return &PlannerService{
		tasks:   tasks,
		reviews: reviews,
		speed:   speed,
		now:     time.Now,
	}
}

// Schedule places the pending backlog into [today, today+lookaheadDays) and
// returns how many tasks were placed, plus the review-generation report.
//
// Ordering policy: earliest deadline first, then highest priority, then
// highest difficulty; remaining ties keep store creation order. Placement is
// two-pass per task: first days on or before the deadline, then the whole
// window. Tasks that fit nowhere stay unscheduled; that is backlog overflow,
// not an error.
func (p *PlannerService) Schedule(ctx context.Context, dailyMinutes int, reviewOffsets []int, lookaheadDays int) (int, ReviewReport, error) {
	if dailyMinutes < 0 {
		return 0, ReviewReport{}, fmt.Errorf("daily minutes must be >= 0, got %d", dailyMinutes)
	}
	if lookaheadDays < 1 {
		return 0, ReviewReport{}, fmt.Errorf("lookahead days must be >= 1, got %d", lookaheadDays)
	}

	backlog, err := p.tasks.ListPendingUnscheduled(ctx)
	if err != nil {
		return 0, ReviewReport{}, err
	}
	if len(backlog) == 0 {
		return 0, ReviewReport{}, nil
	}

	multipliers, err := p.speed.Multipliers(ctx)
	if err != nil {
		return 0, ReviewReport{}, err
	}

	sort.SliceStable(backlog, func(i, j int) bool {
		a, b := backlog[i], backlog[j]
		if !a.Deadline.Equal(b.Deadline) {
			return a.Deadline.Before(b.Deadline)
		}
		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}
		return a.Difficulty > b.Difficulty
	})

	today := dateOnly(p.now())
	ledger := NewLedger(today, lookaheadDays, dailyMinutes)
	firstBySubject := make(map[string]time.Time)
	scheduled := 0

	for i := range backlog {
		task := &backlog[i]
		multiplier, ok := multipliers[task.Subject]
		if !ok {
			multiplier = 1.0
		}
		needed := CalibratedMinutes(task.Minutes, multiplier)

		idx, placed := placeFirstFit(ledger, ledger.DaysThrough(dateOnly(task.Deadline)), needed)
		if !placed {
			// Fallback: ignore the deadline entirely.
			idx, placed = placeFirstFit(ledger, ledger.AllDays(), needed)
		}
		if !placed {
			continue
		}

		day := ledger.Day(idx)
		window := task.TimeWindow
		if window == "" {
			window = model.WindowAny
		}
		if err := p.tasks.UpdateSchedule(ctx, task.ID, day, window); err != nil {
			return scheduled, ReviewReport{}, err
		}
		scheduled++
		if _, seen := firstBySubject[task.Subject]; !seen {
			firstBySubject[task.Subject] = day
		}
	}

	report := p.generateReviews(ctx, today, lookaheadDays, reviewOffsets, firstBySubject)
	return scheduled, report, nil
}

// placeFirstFit books the first candidate day with enough remaining
// capacity and reports which one.
func placeFirstFit(ledger *Ledger, candidates []int, minutes int) (int, bool) {
	for _, idx := range candidates {
		if ledger.Take(idx, minutes) {
			return idx, true
		}
	}
	return 0, false
}

// generateReviews creates spaced-repetition follow-ups for each subject's
// first placement in this run. Offsets landing outside the lookahead window
// are skipped. A subject's bookkeeping error is recorded in the report and
// does not stop the remaining subjects.
func (p *PlannerService) generateReviews(ctx context.Context, today time.Time, lookaheadDays int, offsets []int, firstBySubject map[string]time.Time) ReviewReport {
	if len(offsets) == 0 {
		return ReviewReport{}
	}
	subjects := make([]string, 0, len(firstBySubject))
	for subject := range firstBySubject {
		subjects = append(subjects, subject)
	}
	sort.Strings(subjects)

	windowEnd := today.AddDate(0, 0, lookaheadDays)
	var report ReviewReport

	for _, subject := range subjects {
		outcome := ReviewOutcome{Subject: subject}
		original, err := p.tasks.EarliestBySubject(ctx, subject)
		if err != nil {
			outcome.Err = err
			report.Outcomes = append(report.Outcomes, outcome)
			continue
		}

		for _, offset := range offsets {
			reviewDate := firstBySubject[subject].AddDate(0, 0, offset)
			if reviewDate.Before(today) || !reviewDate.Before(windowEnd) {
				continue
			}
			scheduled := reviewDate
			review := model.Task{
				Subject:       subject + " (review)",
				Topic:         original.Topic + " - review",
				Minutes:       ReviewMinutes(original.Minutes),
				Difficulty:    1,
				Priority:      3,
				Deadline:      reviewDate,
				ScheduledDate: &scheduled,
				TimeWindow:    model.WindowAny,
				Status:        model.StatusReview,
			}
			if err := p.tasks.Create(ctx, &review); err != nil {
				outcome.Err = err
				break
			}
			if err := p.reviews.CreateLink(ctx, original.ID, review.ID, offset); err != nil {
				outcome.Err = err
				break
			}
			outcome.ReviewIDs = append(outcome.ReviewIDs, review.ID)
		}
		report.Outcomes = append(report.Outcomes, outcome)
	}
	return report
}

// RescheduleMissed re-places tasks flagged missed into the first day after
// today that still has room, counting real current occupancy: the used
// ledger is summed from every task already placed inside the window, using
// raw task minutes. Re-placed tasks go back to pending. Tasks that fit
// nowhere stay missed.
func (p *PlannerService) RescheduleMissed(ctx context.Context, dailyMinutes, lookaheadDays int) (int, error) {
	if dailyMinutes < 0 {
		return 0, fmt.Errorf("daily minutes must be >= 0, got %d", dailyMinutes)
	}
	if lookaheadDays < 1 {
		return 0, fmt.Errorf("lookahead days must be >= 1, got %d", lookaheadDays)
	}

	today := dateOnly(p.now())
	windowEnd := today.AddDate(0, 0, lookaheadDays)

	scheduled, err := p.tasks.ListScheduledWithin(ctx, today, windowEnd)
	if err != nil {
		return 0, err
	}
	used := make(map[time.Time]int)
	for _, task := range scheduled {
		used[dateOnly(*task.ScheduledDate)] += task.Minutes
	}

	missed, err := p.tasks.ListByStatus(ctx, model.StatusMissed)
	if err != nil {
		return 0, err
	}

	rescheduled := 0
	for _, task := range missed {
		// Start strictly after today: a missed task is not crammed back
		// into the current day.
		for offset := 1; offset <= lookaheadDays; offset++ {
			day := today.AddDate(0, 0, offset)
			if used[day]+task.Minutes > dailyMinutes {
				continue
			}
			window := task.TimeWindow
			if window == "" {
				window = model.WindowAny
			}
			if err := p.tasks.UpdateSchedule(ctx, task.ID, day, window); err != nil {
				return rescheduled, err
			}
			if err := p.tasks.UpdateStatus(ctx, task.ID, model.StatusPending); err != nil {
				return rescheduled, err
			}
			used[day] += task.Minutes
			rescheduled++
			break
		}
	}
	return rescheduled, nil
}

// CalibratedMinutes adjusts an estimate by a subject's speed multiplier,
// floored at minCalibratedMinutes.
func CalibratedMinutes(estimated int, multiplier float64) int {
	minutes := int(math.Round(float64(estimated) * multiplier))
	if minutes < minCalibratedMinutes {
		return minCalibratedMinutes
	}
	return minutes
}

// ReviewMinutes sizes a review task from the original estimate.
func ReviewMinutes(originalMinutes int) int {
	minutes := int(math.Ceil(float64(originalMinutes) * 0.25))
	if minutes < minReviewMinutes {
		return minReviewMinutes
	}
	return minutes
}

// dateOnly truncates a timestamp to its calendar day in UTC. All ledger and
// placement arithmetic works on these midnight values.
func dateOnly(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
