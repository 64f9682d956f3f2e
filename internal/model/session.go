package model

import "time"

// Session records actual time spent working on a task. Rows are append-only;
// nothing in the planner updates or deletes them.
type Session struct {
	ID              uint `gorm:"primaryKey"`
	TaskID          uint `gorm:"index"`
	DurationMinutes int
	Timestamp       time.Time
}
