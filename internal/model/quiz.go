package model

// Quiz is a single question/answer pair attached to a topic.
type Quiz struct {
	ID         uint   `gorm:"primaryKey"`
	Topic      string `gorm:"index"`
	Question   string
	AnswerText string
}
