package service

import (
	"errors"

	"exam_prep_backend/internal/model"
	"exam_prep_backend/internal/repository"
	"exam_prep_backend/internal/util"

	"gorm.io/gorm"
)

type UserService struct {
	UserRepo    *repository.UserRepository
	AttemptRepo *repository.AttemptRepository
	BadgeRepo   *repository.BadgeRepository
}

func NewUserService(userRepo *repository.UserRepository, attemptRepo *repository.AttemptRepository, badgeRepo *repository.BadgeRepository) *UserService {
	return &UserService{
		UserRepo:    userRepo,
		AttemptRepo: attemptRepo,
		BadgeRepo:   badgeRepo,
	}
}

type UpdateProfileRequest struct {
	Name       string `json:"name" binding:"omitempty,min=2,max=50"`
	TargetExam string `json:"targetExam" binding:"omitempty,max=50"`
	Avatar     string `json:"avatar" binding:"omitempty,max=255"`
}

// Dashboard bundles everything the home screen needs in one call.
type Dashboard struct {
	User        *model.User           `json:"user"`
	Stats       *repository.UserStats `json:"stats"`
	BadgeCount  int                   `json:"badgeCount"`
	DailyStreak int                   `json:"dailyStreak"`
}

func (s *UserService) Profile(userID uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateProfile(userID uint, req *UpdateProfileRequest) (*model.User, error) {
	user, err := s.Profile(userID)
	if err != nil {
		return nil, err
	}
	if req.Name != "" {
		user.Name = req.Name
	}
	if req.TargetExam != "" {
		user.TargetExam = req.TargetExam
	}
	if req.Avatar != "" {
		user.Avatar = req.Avatar
	}
	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Dashboard(userID uint) (*Dashboard, error) {
	user, err := s.Profile(userID)
	if err != nil {
		return nil, err
	}
	stats, err := s.AttemptRepo.StatsByUser(userID)
	if err != nil {
		return nil, err
	}
	badges, err := s.BadgeRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	return &Dashboard{
		User:        user,
		Stats:       stats,
		BadgeCount:  len(badges),
		DailyStreak: user.DailyStreak,
	}, nil
}
