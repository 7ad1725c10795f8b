package service

import (
	"context"

	"exam_prep_backend/internal/repository"
	"exam_prep_backend/pkg/logger"

	"go.uber.org/zap"
)

// LeaderboardService ranks users by XP. Redis sorted sets are the primary
// store; when Redis is unavailable the all-time board falls back to MySQL.
type LeaderboardService struct {
	LeaderboardRepo *repository.LeaderboardRepository
	UserRepo        *repository.UserRepository
}

func NewLeaderboardService(leaderboardRepo *repository.LeaderboardRepository, userRepo *repository.UserRepository) *LeaderboardService {
	return &LeaderboardService{
		LeaderboardRepo: leaderboardRepo,
		UserRepo:        userRepo,
	}
}

// RankedUser is one leaderboard row with profile fields resolved.
type RankedUser struct {
	Rank   int64  `json:"rank"`
	UserID uint   `json:"userId"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
	XP     int    `json:"xp"`
}

// RecordXP is best-effort; the database copy of XP is authoritative and a
// Redis outage only delays the board.
func (s *LeaderboardService) RecordXP(ctx context.Context, userID uint, xp int) {
	if s.LeaderboardRepo == nil {
		return
	}
	if err := s.LeaderboardRepo.AddXP(ctx, userID, xp); err != nil {
		logger.Log.Warn("leaderboard update failed", zap.Uint("userId", userID), zap.Error(err))
	}
}

func (s *LeaderboardService) Top(ctx context.Context, limit int, weekly bool) ([]RankedUser, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	if s.LeaderboardRepo != nil {
		var entries []repository.LeaderboardEntry
		var err error
		if weekly {
			entries, err = s.LeaderboardRepo.TopWeekly(ctx, limit)
		} else {
			entries, err = s.LeaderboardRepo.TopAllTime(ctx, limit)
		}
		if err == nil && len(entries) > 0 {
			return s.resolve(entries), nil
		}
		if err != nil {
			logger.Log.Warn("leaderboard read failed, falling back to database", zap.Error(err))
		}
	}

	if weekly {
		// The weekly board only exists in Redis.
		return []RankedUser{}, nil
	}
	users, err := s.UserRepo.FindTopByXP(limit)
	if err != nil {
		return nil, err
	}
	ranked := make([]RankedUser, 0, len(users))
	for i, u := range users {
		ranked = append(ranked, RankedUser{
			Rank:   int64(i + 1),
			UserID: u.ID,
			Name:   u.Name,
			Avatar: u.Avatar,
			XP:     u.XP,
		})
	}
	return ranked, nil
}

func (s *LeaderboardService) MyRank(ctx context.Context, userID uint) (*RankedUser, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	row := &RankedUser{
		UserID: userID,
		Name:   user.Name,
		Avatar: user.Avatar,
		XP:     user.XP,
	}
	if s.LeaderboardRepo != nil {
		rank, _, err := s.LeaderboardRepo.Rank(ctx, userID)
		if err == nil {
			row.Rank = rank
		}
	}
	return row, nil
}

func (s *LeaderboardService) resolve(entries []repository.LeaderboardEntry) []RankedUser {
	ranked := make([]RankedUser, 0, len(entries))
	for _, e := range entries {
		row := RankedUser{
			Rank:   e.Rank,
			UserID: e.UserID,
			XP:     int(e.XP),
		}
		if user, err := s.UserRepo.FindByID(e.UserID); err == nil {
			row.Name = user.Name
			row.Avatar = user.Avatar
		}
		ranked = append(ranked, row)
	}
	return ranked
}
