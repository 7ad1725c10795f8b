package model

// ChatSession groups one AI tutor conversation.
type ChatSession struct {
	UUIDBase
	UserID      uint   `gorm:"index;type:bigint unsigned" json:"userId"`
	SessionType string `gorm:"size:30;default:'doubt'" json:"sessionType"` // doubt, current_affairs, exam_strategy
	Title       string `gorm:"size:255" json:"title"`
}

func (ChatSession) TableName() string {
	return "chat_sessions"
}

type ChatMessage struct {
	BaseModel
	SessionID string `gorm:"index;type:varchar(36)" json:"sessionId"`
	Role      string `gorm:"size:20;not null" json:"role"` // user, assistant
	Content   string `gorm:"type:text;not null" json:"content"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
