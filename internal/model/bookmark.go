package model

type Bookmark struct {
	BaseModel
	UserID     uint      `gorm:"index:idx_user_question,unique;type:bigint unsigned" json:"userId"`
	QuestionID uint      `gorm:"index:idx_user_question,unique;type:bigint unsigned" json:"questionId"`
	Question   *Question `gorm:"foreignKey:QuestionID" json:"question,omitempty"`
}

func (Bookmark) TableName() string {
	return "bookmarks"
}
