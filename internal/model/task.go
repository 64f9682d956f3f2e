package model

import "time"

// Task statuses.
const (
	StatusPending = "pending"
	StatusReview  = "review"
	StatusDone    = "done"
	StatusMissed  = "missed"
)

// Time-window preference labels. The planner records the preference on
// placement but does not do time-of-day slot accounting.
const (
	WindowAny       = "any"
	WindowMorning   = "morning"
	WindowAfternoon = "afternoon"
	WindowEvening   = "evening"
)

// Task represents a single unit of study work.
type Task struct {
	ID            uint   `gorm:"primaryKey"`
	Subject       string `gorm:"index"`
	Topic         string
	Minutes       int
	Difficulty    int
	Priority      int
	Deadline      time.Time
	ScheduledDate *time.Time `gorm:"index"`
	TimeWindow    string     `gorm:"default:any"`
	Status        string     `gorm:"index;default:pending"`
	CreatedAt     time.Time
}
