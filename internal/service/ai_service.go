package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"exam_prep_backend/internal/config"
	"exam_prep_backend/internal/model"
	"exam_prep_backend/internal/repository"
	"exam_prep_backend/internal/util"
	"exam_prep_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AIService proxies an OpenAI-compatible chat completion API for the exam
// tutor and for admin mock-test drafting.
type AIService struct {
	config   config.AIConfig
	ChatRepo *repository.ChatRepository
	client   *http.Client
}

func NewAIService(cfg config.AIConfig, chatRepo *repository.ChatRepository) *AIService {
	return &AIService{
		config:   cfg,
		ChatRepo: chatRepo,
		client:   &http.Client{Timeout: 60 * time.Second},
	}
}

type AIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message AIChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

type ChatRequest struct {
	SessionID   string `json:"sessionId"` // empty starts a new session
	SessionType string `json:"sessionType" binding:"omitempty,oneof=doubt current_affairs exam_strategy"`
	Message     string `json:"message" binding:"required,max=4000"`
}

type ChatReply struct {
	SessionID string `json:"sessionId"`
	Reply     string `json:"reply"`
}

const tutorSystemPrompt = "You are an exam preparation tutor for competitive exams " +
	"(SSC, Banking, Railways, UPSC). Explain concepts clearly and concisely, " +
	"walk through the reasoning for MCQ answers, and keep every reply focused " +
	"on exam preparation. Politely refuse unrelated topics."

// SendMessage resolves or creates the chat session, sends the full history
// to the model and persists both sides of the exchange.
func (s *AIService) SendMessage(ctx context.Context, userID uint, req *ChatRequest) (*ChatReply, error) {
	session, err := s.resolveSession(userID, req)
	if err != nil {
		return nil, err
	}

	history, err := s.ChatRepo.ListMessages(session.ID)
	if err != nil {
		return nil, err
	}

	messages := make([]AIChatMessage, 0, len(history)+2)
	messages = append(messages, AIChatMessage{Role: "system", Content: tutorSystemPrompt})
	for _, m := range history {
		messages = append(messages, AIChatMessage{Role: m.Role, Content: m.Content})
	}
	messages = append(messages, AIChatMessage{Role: "user", Content: req.Message})

	reply, err := s.complete(ctx, messages)
	if err != nil {
		return nil, err
	}

	// History persistence is best-effort; a failed write never loses the reply.
	for _, msg := range []*model.ChatMessage{
		{SessionID: session.ID, Role: "user", Content: req.Message},
		{SessionID: session.ID, Role: "assistant", Content: reply},
	} {
		if err := s.ChatRepo.AppendMessage(msg); err != nil {
			logger.Log.Warn("failed to persist chat message",
				zap.String("sessionId", session.ID),
				zap.String("role", msg.Role),
				zap.Error(err))
		}
	}
	if err := s.ChatRepo.TouchSession(session.ID, sessionTitle(session, req.Message)); err != nil {
		logger.Log.Warn("failed to touch chat session", zap.String("sessionId", session.ID), zap.Error(err))
	}

	return &ChatReply{SessionID: session.ID, Reply: reply}, nil
}

func (s *AIService) ListSessions(userID uint) ([]model.ChatSession, error) {
	return s.ChatRepo.ListSessions(userID, 50)
}

func (s *AIService) SessionMessages(userID uint, sessionID string) ([]model.ChatMessage, error) {
	session, err := s.ChatRepo.FindSession(sessionID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSessionNotFound
		}
		return nil, err
	}
	return s.ChatRepo.ListMessages(session.ID)
}

// GeneratedQuestion mirrors the block grammar fields so admin review can
// feed drafts straight into the ingest pipeline.
type GeneratedQuestion struct {
	Question      string `json:"question"`
	OptionA       string `json:"optionA"`
	OptionB       string `json:"optionB"`
	OptionC       string `json:"optionC"`
	OptionD       string `json:"optionD"`
	CorrectAnswer string `json:"correctAnswer"`
	Explanation   string `json:"explanation"`
}

type GenerateTestRequest struct {
	Category   string `json:"category" binding:"required"`
	Difficulty string `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
	Count      int    `json:"count" binding:"omitempty,min=1,max=25"`
}

// GenerateTestDraft asks the model for MCQ drafts as JSON. Drafts are for
// admin review; nothing is inserted here.
func (s *AIService) GenerateTestDraft(ctx context.Context, req *GenerateTestRequest) ([]GeneratedQuestion, error) {
	count := req.Count
	if count == 0 {
		count = 10
	}
	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = "medium"
	}

	prompt := fmt.Sprintf(
		"Generate %d multiple choice questions for the category %q at %s difficulty. "+
			"Respond with a JSON array only, each element having the keys question, "+
			"optionA, optionB, optionC, optionD, correctAnswer (A, B, C or D) and explanation.",
		count, req.Category, difficulty)

	reply, err := s.complete(ctx, []AIChatMessage{
		{Role: "system", Content: "You are a question bank author for competitive exams. Output strict JSON."},
		{Role: "user", Content: prompt},
	})
	if err != nil {
		return nil, err
	}

	var questions []GeneratedQuestion
	if err := json.Unmarshal([]byte(extractJSONArray(reply)), &questions); err != nil {
		return nil, fmt.Errorf("AI returned malformed question JSON: %w", err)
	}
	return questions, nil
}

func (s *AIService) complete(ctx context.Context, messages []AIChatMessage) (string, error) {
	body, _ := json.Marshal(map[string]interface{}{
		"model":    s.config.Model,
		"messages": messages,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.BaseURL+"/chat/completions", bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("AI API error (status %d): %s", resp.StatusCode, string(raw))
	}

	var parsed chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("AI API error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New("AI API returned no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}

func (s *AIService) resolveSession(userID uint, req *ChatRequest) (*model.ChatSession, error) {
	if req.SessionID != "" {
		session, err := s.ChatRepo.FindSession(req.SessionID, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, util.ErrSessionNotFound
			}
			return nil, err
		}
		return session, nil
	}

	sessionType := req.SessionType
	if sessionType == "" {
		sessionType = "doubt"
	}
	session := &model.ChatSession{UserID: userID, SessionType: sessionType}
	if err := s.ChatRepo.CreateSession(session); err != nil {
		return nil, err
	}
	return session, nil
}

// sessionTitle derives a title from the first user message.
func sessionTitle(session *model.ChatSession, firstMessage string) string {
	if session.Title != "" {
		return ""
	}
	title := strings.TrimSpace(firstMessage)
	if len(title) > 60 {
		title = title[:60]
	}
	return title
}

// extractJSONArray trims prose or markdown fences around a JSON array.
func extractJSONArray(reply string) string {
	start := strings.Index(reply, "[")
	end := strings.LastIndex(reply, "]")
	if start >= 0 && end > start {
		return reply[start : end+1]
	}
	return reply
}
