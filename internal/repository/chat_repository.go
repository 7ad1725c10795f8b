package repository

import (
	"exam_prep_backend/internal/model"

	"gorm.io/gorm"
)

type ChatRepository struct {
	DB *gorm.DB
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{DB: db}
}

func (r *ChatRepository) CreateSession(session *model.ChatSession) error {
	return r.DB.Create(session).Error
}

func (r *ChatRepository) FindSession(id string, userID uint) (*model.ChatSession, error) {
	var session model.ChatSession
	err := r.DB.Where("id = ? AND user_id = ?", id, userID).First(&session).Error
	return &session, err
}

func (r *ChatRepository) ListSessions(userID uint, limit int) ([]model.ChatSession, error) {
	var sessions []model.ChatSession
	err := r.DB.Where("user_id = ?", userID).
		Order("updated_at DESC").Limit(limit).
		Find(&sessions).Error
	return sessions, err
}

func (r *ChatRepository) AppendMessage(msg *model.ChatMessage) error {
	return r.DB.Create(msg).Error
}

func (r *ChatRepository) ListMessages(sessionID string) ([]model.ChatMessage, error) {
	var messages []model.ChatMessage
	err := r.DB.Where("session_id = ?", sessionID).
		Order("created_at ASC").Find(&messages).Error
	return messages, err
}

func (r *ChatRepository) TouchSession(sessionID string, title string) error {
	if title == "" {
		return r.DB.Model(&model.ChatSession{}).Where("id = ?", sessionID).
			UpdateColumn("updated_at", gorm.Expr("NOW()")).Error
	}
	return r.DB.Model(&model.ChatSession{}).Where("id = ?", sessionID).
		Update("title", title).Error
}
