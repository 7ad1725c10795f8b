package service

import (
	"context"
	"time"

	"exam_prep_backend/internal/model"
	"exam_prep_backend/internal/repository"
	"exam_prep_backend/pkg/logger"

	"go.uber.org/zap"
)

// BadgeService evaluates award rules after each submitted attempt. It runs
// off the request path; a failure here never invalidates a result.
type BadgeService struct {
	BadgeRepo   *repository.BadgeRepository
	AttemptRepo *repository.AttemptRepository
	UserRepo    *repository.UserRepository
	Leaderboard *LeaderboardService
}

func NewBadgeService(
	badgeRepo *repository.BadgeRepository,
	attemptRepo *repository.AttemptRepository,
	userRepo *repository.UserRepository,
	leaderboard *LeaderboardService,
) *BadgeService {
	return &BadgeService{
		BadgeRepo:   badgeRepo,
		AttemptRepo: attemptRepo,
		UserRepo:    userRepo,
		Leaderboard: leaderboard,
	}
}

func (s *BadgeService) ListCatalog() ([]model.Badge, error) {
	return s.BadgeRepo.ListAll()
}

func (s *BadgeService) ListEarned(userID uint) ([]model.UserBadge, error) {
	return s.BadgeRepo.ListByUser(userID)
}

// EvaluateAfterAttempt checks every rule against the user's updated totals
// and awards whatever newly applies. New grants are staggered a second
// apart so clients can show one notification at a time; badges the user
// already holds add no delay.
func (s *BadgeService) EvaluateAfterAttempt(userID uint, attempt *model.TestAttempt) {
	staggered := false
	for _, code := range s.evaluate(userID, attempt) {
		if staggered {
			time.Sleep(time.Second)
		}
		if s.award(userID, code, attempt.ID) {
			staggered = true
		}
	}
}

func (s *BadgeService) evaluate(userID uint, attempt *model.TestAttempt) []string {
	var earned []string

	attempts, err := s.AttemptRepo.CountByUser(userID)
	if err != nil {
		logger.Log.Warn("badge evaluation skipped", zap.Uint("userId", userID), zap.Error(err))
		return nil
	}
	if attempts >= 1 && attempt.TestID != "" {
		earned = append(earned, "first_test")
	}

	correct, err := s.AttemptRepo.LifetimeCorrect(userID)
	if err == nil {
		for _, rule := range []struct {
			threshold int64
			code      string
		}{
			{10, "correct_10"},
			{50, "correct_50"},
			{100, "correct_100"},
		} {
			if correct >= rule.threshold {
				earned = append(earned, rule.code)
			}
		}
	}

	if attempt.TestID != "" && attempt.TotalQuestions > 0 {
		pct := float64(attempt.CorrectCount) / float64(attempt.TotalQuestions) * 100
		if pct >= 90 {
			earned = append(earned, "sharp_shooter")
		}
	}

	if user, err := s.UserRepo.FindByID(userID); err == nil && user.DailyStreak >= 7 {
		earned = append(earned, "streak_7")
	}

	return earned
}

// award grants the badge if not already held and credits its reward XP on
// first grant only. Returns whether this call granted the badge.
func (s *BadgeService) award(userID uint, code string, attemptID string) bool {
	badge, err := s.BadgeRepo.FindByCode(code)
	if err != nil {
		logger.Log.Warn("unknown badge code", zap.String("code", code), zap.Error(err))
		return false
	}
	granted, err := s.BadgeRepo.Award(userID, badge.ID, attemptID)
	if err != nil {
		logger.Log.Warn("badge award failed",
			zap.Uint("userId", userID),
			zap.String("code", code),
			zap.Error(err))
		return false
	}
	if !granted {
		return false
	}
	if badge.RewardXP > 0 {
		if err := s.UserRepo.AddXP(userID, badge.RewardXP); err != nil {
			logger.Log.Warn("badge reward xp failed", zap.Uint("userId", userID), zap.Error(err))
		}
		if s.Leaderboard != nil {
			s.Leaderboard.RecordXP(context.Background(), userID, badge.RewardXP)
		}
	}
	return true
}
