package repository

import (
	"errors"
	"time"

	"exam_prep_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BadgeRepository struct {
	DB *gorm.DB
}

func NewBadgeRepository(db *gorm.DB) *BadgeRepository {
	return &BadgeRepository{DB: db}
}

func (r *BadgeRepository) FindByCode(code string) (*model.Badge, error) {
	var badge model.Badge
	err := r.DB.Where("code = ?", code).First(&badge).Error
	return &badge, err
}

func (r *BadgeRepository) ListAll() ([]model.Badge, error) {
	var badges []model.Badge
	err := r.DB.Order("id ASC").Find(&badges).Error
	return badges, err
}

// Award grants the badge to the user once. The (user_id, badge_id) unique
// index makes repeated awards a no-op; returns true only on first grant.
func (r *BadgeRepository) Award(userID, badgeID uint, attemptID string) (bool, error) {
	ub := model.UserBadge{
		UserID:    userID,
		BadgeID:   badgeID,
		AttemptID: attemptID,
		EarnedAt:  time.Now(),
	}
	result := r.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&ub)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return false, nil
		}
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *BadgeRepository) ListByUser(userID uint) ([]model.UserBadge, error) {
	var earned []model.UserBadge
	err := r.DB.Preload("Badge").
		Where("user_id = ?", userID).Order("earned_at DESC").
		Find(&earned).Error
	return earned, err
}

func (r *BadgeRepository) HasBadge(userID, badgeID uint) (bool, error) {
	var total int64
	err := r.DB.Model(&model.UserBadge{}).
		Where("user_id = ? AND badge_id = ?", userID, badgeID).Count(&total).Error
	return total > 0, err
}
