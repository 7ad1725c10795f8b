package model

import "time"

// swagger:model MockTest
type MockTest struct {
	UUIDBase
	Title            string     `gorm:"size:255;not null" json:"title"`
	Description      string     `gorm:"type:text" json:"description"`
	Category         string     `gorm:"size:100;index" json:"category"`
	ExamType         string     `gorm:"size:50" json:"examType"`
	TimeLimitSeconds int        `gorm:"default:0" json:"timeLimitSeconds"`
	NegativeMark     *float64   `json:"negativeMark,omitempty"` // nil means the engine default (0.25)
	IsPublished      bool       `gorm:"default:false" json:"isPublished"`
	PublishedAt      *time.Time `json:"publishedAt,omitempty"`
	CreatorID        uint       `gorm:"index;type:bigint unsigned" json:"creatorId"`
}

func (MockTest) TableName() string {
	return "mock_tests"
}

// MockTestQuestion pins a question into a test at a fixed position.
type MockTestQuestion struct {
	UUIDBase
	TestID     string    `gorm:"index;type:varchar(36)" json:"testId"`
	QuestionID uint      `gorm:"index;type:bigint unsigned" json:"questionId"`
	Question   *Question `gorm:"foreignKey:QuestionID" json:"question,omitempty"`
	Order      int       `gorm:"default:0" json:"order"`
}

func (MockTestQuestion) TableName() string {
	return "mock_test_questions"
}
