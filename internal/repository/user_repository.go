package repository

import (
	"exam_prep_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", email).First(&user).Error
	return &user, err
}

func (r *UserRepository) Update(user *model.User) error {
	return r.DB.Save(user).Error
}

// AddXP increments the user's lifetime XP.
func (r *UserRepository) AddXP(userID uint, delta int) error {
	return r.DB.Model(&model.User{}).Where("id = ?", userID).
		UpdateColumn("xp", gorm.Expr("xp + ?", delta)).Error
}

func (r *UserRepository) FindTopByXP(limit int) ([]model.User, error) {
	var users []model.User
	err := r.DB.Where("disabled = ?", false).Order("xp DESC").Limit(limit).Find(&users).Error
	return users, err
}

func (r *UserRepository) UpdateLastSeen(userID uint) error {
	return r.DB.Model(&model.User{}).Where("id = ?", userID).
		UpdateColumn("last_seen", time.Now()).Error
}

func (r *UserRepository) UpdateLastLogin(userID uint) error {
	return r.DB.Model(&model.User{}).Where("id = ?", userID).
		UpdateColumn("last_login", time.Now()).Error
}

// UpdateDailyStreak records a practice day: streak and the timestamp move
// together so check-in stays consistent.
func (r *UserRepository) UpdateDailyStreak(userID uint, streak int, at time.Time) error {
	return r.DB.Model(&model.User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{
			"daily_streak":     streak,
			"last_practice_at": at,
		}).Error
}
