package service

import "time"

// Ledger tracks per-day remaining minutes over a lookahead window starting
// at a fixed day. It is transient: each scheduling run builds a fresh one,
// so capacity consumed by earlier runs inside the same window is not seen.
// Runs must therefore be serialized; see PlannerService.
type Ledger struct {
	start     time.Time
	remaining []int
}

// NewLedger builds a ledger over [start, start+days) with dailyMinutes
// remaining on every day.
func NewLedger(start time.Time, days, dailyMinutes int) *Ledger {
	remaining := make([]int, days)
	for i := range remaining {
		remaining[i] = dailyMinutes
	}
	return &Ledger{start: start, remaining: remaining}
}

// Days returns the window length.
func (l *Ledger) Days() int {
	return len(l.remaining)
}

// Day returns the calendar day at the given index.
func (l *Ledger) Day(i int) time.Time {
	return l.start.AddDate(0, 0, i)
}

// Remaining returns the minutes still free on day i.
func (l *Ledger) Remaining(i int) int {
	return l.remaining[i]
}

// Take deducts minutes from day i if it still has room, reporting whether
// the deduction happened.
func (l *Ledger) Take(i, minutes int) bool {
	if l.remaining[i] < minutes {
		return false
	}
	l.remaining[i] -= minutes
	return true
}

// AllDays returns every day index in chronological order.
func (l *Ledger) AllDays() []int {
	days := make([]int, len(l.remaining))
	for i := range days {
		days[i] = i
	}
	return days
}

// DaysThrough returns the indexes of days on or before the given deadline.
// When the deadline precedes the whole window the full window is returned:
// the planner prefers late placement over no placement.
func (l *Ledger) DaysThrough(deadline time.Time) []int {
	var days []int
	for i := range l.remaining {
		if l.Day(i).After(deadline) {
			break
		}
		days = append(days, i)
	}
	if len(days) == 0 {
		return l.AllDays()
	}
	return days
}
