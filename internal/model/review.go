package model

// ReviewLink ties a spaced-repetition follow-up task to the task that
// seeded it, together with the day offset it was generated at.
type ReviewLink struct {
	ID             uint `gorm:"primaryKey"`
	OriginalTaskID uint `gorm:"index"`
	ReviewTaskID   uint
	IntervalDays   int
}
