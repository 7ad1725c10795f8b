package service

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"exam_prep_backend/internal/config"
	"exam_prep_backend/internal/engine"
	"exam_prep_backend/internal/model"
	"exam_prep_backend/internal/repository"
	"exam_prep_backend/internal/util"
	"exam_prep_backend/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	SurfaceHome     = "home"
	SurfaceCategory = "category"
	SurfaceExam     = "exam"
)

// AttemptWriter persists one scored attempt. *repository.AttemptRepository
// implements it; tests substitute a failing writer.
type AttemptWriter interface {
	Create(attempt *model.TestAttempt) error
}

type PracticeService struct {
	QuestionRepo *repository.QuestionRepository
	UserRepo     *repository.UserRepository
	AttemptRepo  AttemptWriter
	Leaderboard  *LeaderboardService
	Badges       *BadgeService
	Cfg          *config.Config

	store *sessionStore
}

func NewPracticeService(
	questionRepo *repository.QuestionRepository,
	userRepo *repository.UserRepository,
	attemptRepo *repository.AttemptRepository,
	leaderboard *LeaderboardService,
	badges *BadgeService,
	cfg *config.Config,
) *PracticeService {
	ttl := time.Duration(cfg.Practice.SessionTTLHours) * time.Hour
	if ttl <= 0 {
		ttl = 6 * time.Hour
	}
	return &PracticeService{
		QuestionRepo: questionRepo,
		UserRepo:     userRepo,
		AttemptRepo:  attemptRepo,
		Leaderboard:  leaderboard,
		Badges:       badges,
		Cfg:          cfg,
		store:        newSessionStore(ttl),
	}
}

type StartPracticeRequest struct {
	Surface          string `json:"surface" binding:"required,oneof=home category"`
	Category         string `json:"category"`
	Subcategory      string `json:"subcategory"`
	Difficulty       string `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
	Type             string `json:"type" binding:"omitempty,oneof=General 'Current Affairs'"`
	Count            int    `json:"count" binding:"omitempty,min=1,max=50"`
	TimeLimitSeconds int    `json:"timeLimitSeconds" binding:"omitempty,min=10,max=7200"`
}

type AnswerRequest struct {
	Index  int    `json:"index" binding:"min=0"`
	Option string `json:"option" binding:"required,oneof=A B C D"`
}

// SessionState is the client-facing snapshot of a live session.
type SessionState struct {
	SessionID            string            `json:"sessionId"`
	Surface              string            `json:"surface"`
	Questions            []LearnerQuestion `json:"questions"`
	CurrentIndex         int               `json:"currentIndex"`
	Answers              map[int]string    `json:"answers"`
	MarkedForReview      []int             `json:"markedForReview,omitempty"`
	TimeRemainingSeconds int               `json:"timeRemainingSeconds"`
	Streak               int               `json:"streak"`
	XP                   int               `json:"xp"`
	Submitted            bool              `json:"submitted"`
	Result               *engine.Result    `json:"result,omitempty"`
	Notice               string            `json:"notice,omitempty"`
}

func (s *PracticeService) StartSession(ctx context.Context, userID uint, req *StartPracticeRequest) (*SessionState, error) {
	count := req.Count
	if count == 0 {
		count = s.Cfg.Practice.DefaultQuestions
	}
	questions, err := s.QuestionRepo.FindForPractice(repository.QuestionFilter{
		Category:    req.Category,
		Subcategory: req.Subcategory,
		Difficulty:  req.Difficulty,
		Type:        req.Type,
	}, count)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, util.ErrEmptyQuestionSet
	}

	cfg := s.surfaceConfig(req.Surface, req.TimeLimitSeconds)
	eng, err := engine.New(questions, cfg)
	if err != nil {
		return nil, err
	}

	session := &liveSession{
		ID:        uuid.NewString(),
		UserID:    userID,
		Surface:   req.Surface,
		Category:  req.Category,
		Engine:    eng,
		Questions: questions,
		CreatedAt: s.store.now(),
		timed:     cfg.TimeLimitSeconds > 0,
		stop:      make(chan struct{}),
	}
	s.store.put(session)
	if session.timed {
		s.store.startCountdown(session, s.persistOnExpire)
	}

	s.dailyCheckIn(userID)

	session.mu.Lock()
	defer session.mu.Unlock()
	return s.snapshot(session), nil
}

func (s *PracticeService) Answer(userID uint, sessionID string, req *AnswerRequest) (*engine.AnswerOutcome, error) {
	session, err := s.ownedSession(userID, sessionID)
	if err != nil {
		return nil, err
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	return session.Engine.SelectAnswer(req.Index, req.Option)
}

func (s *PracticeService) Goto(userID uint, sessionID string, index int) error {
	session, err := s.ownedSession(userID, sessionID)
	if err != nil {
		return err
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	return session.Engine.Goto(index)
}

func (s *PracticeService) ToggleReview(userID uint, sessionID string, index int) error {
	session, err := s.ownedSession(userID, sessionID)
	if err != nil {
		return err
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	return session.Engine.ToggleMarkForReview(index)
}

func (s *PracticeService) State(userID uint, sessionID string) (*SessionState, error) {
	session, err := s.ownedSession(userID, sessionID)
	if err != nil {
		return nil, err
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	return s.snapshot(session), nil
}

// scoreNotSavedNotice is surfaced when an attempt write fails; the result
// itself is still returned and the session stays submitted.
const scoreNotSavedNotice = "your result could not be saved and will not appear in history"

// SubmitResponse carries the scored result plus a one-shot persistence
// notice when the attempt could not be stored.
type SubmitResponse struct {
	Result *engine.Result `json:"result"`
	Notice string         `json:"notice,omitempty"`
}

// Submit scores the session. Repeat submissions return the stored result;
// a failed attempt write is retried then, since nothing was stored.
func (s *PracticeService) Submit(userID uint, sessionID string) (*SubmitResponse, error) {
	session, err := s.ownedSession(userID, sessionID)
	if err != nil {
		return nil, err
	}
	session.mu.Lock()
	defer session.mu.Unlock()

	result := session.Engine.Submit()
	session.stopTimer()
	resp := &SubmitResponse{Result: result}
	if err := s.persistLocked(session, result); err != nil {
		resp.Notice = scoreNotSavedNotice
	}
	return resp, nil
}

// persistOnExpire runs from the countdown goroutine, which already holds
// the session lock. A write failure here is carried on the session and
// surfaced through every snapshot until a manual submit retries it.
func (s *PracticeService) persistOnExpire(session *liveSession, result *engine.Result) {
	_ = s.persistLocked(session, result)
}

// persistLocked writes the attempt, updates XP and triggers badge
// evaluation, once per session. Caller holds session.mu. A write failure
// leaves the session submitted and the persisted flag unset, so the next
// submit retries the write.
func (s *PracticeService) persistLocked(session *liveSession, result *engine.Result) error {
	if session.persisted {
		return nil
	}

	// Untimed sessions have no ticker driving the engine clock; take the
	// elapsed time from the session's age instead.
	if !session.timed && result.TimeTakenSeconds == 0 {
		result.TimeTakenSeconds = int(s.store.now().Sub(session.CreatedAt).Seconds())
	}

	answers, _ := json.Marshal(session.Engine.AnswerMap())
	attempt := &model.TestAttempt{
		UserID:           session.UserID,
		TestID:           session.TestID,
		Category:         session.Category,
		Answers:          answers,
		Score:            result.Score,
		CorrectCount:     result.CorrectCount,
		IncorrectCount:   result.IncorrectCount,
		UnansweredCount:  result.UnansweredCount,
		TotalQuestions:   result.TotalQuestions,
		TimeTakenSeconds: result.TimeTakenSeconds,
	}
	if err := s.AttemptRepo.Create(attempt); err != nil {
		session.persistErr = err
		logger.Log.Error("failed to persist attempt",
			zap.String("sessionId", session.ID),
			zap.Uint("userId", session.UserID),
			zap.Error(err))
		return err
	}
	session.persisted = true
	session.persistErr = nil

	gain := result.CorrectCount * s.Cfg.Practice.XPIncrement
	if gain > 0 {
		if err := s.UserRepo.AddXP(session.UserID, gain); err != nil {
			logger.Log.Warn("failed to persist xp", zap.Uint("userId", session.UserID), zap.Error(err))
		}
		s.Leaderboard.RecordXP(context.Background(), session.UserID, gain)
	}

	if s.Badges != nil {
		go s.Badges.EvaluateAfterAttempt(session.UserID, attempt)
	}
	return nil
}

func (s *PracticeService) ownedSession(userID uint, sessionID string) (*liveSession, error) {
	session, ok := s.store.get(sessionID)
	if !ok || session.UserID != userID {
		return nil, util.ErrSessionNotFound
	}
	return session, nil
}

func (s *PracticeService) surfaceConfig(surface string, timeLimitSeconds int) engine.Config {
	var cfg engine.Config
	switch surface {
	case SurfaceCategory:
		cfg = engine.CategoryPracticeConfig(timeLimitSeconds)
	default:
		cfg = engine.HomePracticeConfig(timeLimitSeconds)
	}
	cfg.XPIncrement = s.Cfg.Practice.XPIncrement
	cfg.MaxXP = s.Cfg.Practice.MaxXP
	cfg.NegativeMark = s.Cfg.Practice.NegativeMark
	return cfg
}

// snapshot builds a SessionState; caller holds session.mu.
func (s *PracticeService) snapshot(session *liveSession) *SessionState {
	questions := make([]LearnerQuestion, 0, len(session.Questions))
	for i := range session.Questions {
		questions = append(questions, ToLearnerQuestion(&session.Questions[i]))
	}
	marked := session.Engine.MarkedForReview()
	sort.Ints(marked)

	state := &SessionState{
		SessionID:            session.ID,
		Surface:              session.Surface,
		Questions:            questions,
		CurrentIndex:         session.Engine.CurrentIndex(),
		Answers:              session.Engine.AnswerMap(),
		MarkedForReview:      marked,
		TimeRemainingSeconds: session.Engine.TimeRemainingSeconds(),
		Streak:               session.Engine.Streak(),
		XP:                   session.Engine.XP(),
		Submitted:            session.Engine.Submitted(),
	}
	if state.Submitted {
		state.Result = session.Engine.Submit()
	}
	if session.persistErr != nil {
		state.Notice = scoreNotSavedNotice
	}
	return state
}

// dailyCheckIn bumps the calendar streak on the first session of a day.
// Consecutive days extend the streak, a gap restarts it at 1.
func (s *PracticeService) dailyCheckIn(userID uint) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return
	}
	now := time.Now()
	today := now.Format(util.DateFormat)
	if !user.LastPracticeAt.IsZero() && user.LastPracticeAt.Format(util.DateFormat) == today {
		return
	}

	streak := 1
	yesterday := now.AddDate(0, 0, -1).Format(util.DateFormat)
	if !user.LastPracticeAt.IsZero() && user.LastPracticeAt.Format(util.DateFormat) == yesterday {
		streak = user.DailyStreak + 1
	}
	if err := s.UserRepo.UpdateDailyStreak(userID, streak, now); err != nil {
		logger.Log.Warn("failed to update daily streak", zap.Uint("userId", userID), zap.Error(err))
	}
}
