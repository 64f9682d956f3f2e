package model

// Progress keeps per-topic completion state and the last quiz score.
type Progress struct {
	Topic     string `gorm:"primaryKey"`
	Completed bool   `gorm:"default:false"`
	LastScore int    `gorm:"default:0"`
}
