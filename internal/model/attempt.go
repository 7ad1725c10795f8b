package model

import "encoding/json"

// TestAttempt is the persisted record of one scored session (mock test or
// practice). Answers maps question index to the chosen option letter.
// swagger:model TestAttempt
type TestAttempt struct {
	UUIDBase
	UserID           uint            `gorm:"index;type:bigint unsigned" json:"userId"`
	User             *User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	TestID           string          `gorm:"index;type:varchar(36)" json:"testId"` // empty for ad hoc practice sessions
	Category         string          `gorm:"size:100;index" json:"category"`
	Answers          json.RawMessage `gorm:"type:json" json:"answers"`
	Score            float64         `json:"score"`
	CorrectCount     int             `gorm:"default:0" json:"correctCount"`
	IncorrectCount   int             `gorm:"default:0" json:"incorrectCount"`
	UnansweredCount  int             `gorm:"default:0" json:"unansweredCount"`
	TotalQuestions   int             `gorm:"default:0" json:"totalQuestions"`
	TimeTakenSeconds int             `gorm:"default:0" json:"timeTakenSeconds"`
}

func (TestAttempt) TableName() string {
	return "test_attempts"
}
