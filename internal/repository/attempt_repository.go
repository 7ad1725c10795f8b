package repository

import (
	"exam_prep_backend/internal/model"

	"gorm.io/gorm"
)

type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

func (r *AttemptRepository) Create(a *model.TestAttempt) error {
	return r.DB.Create(a).Error
}

func (r *AttemptRepository) FindByID(id string) (*model.TestAttempt, error) {
	var a model.TestAttempt
	err := r.DB.Where("id = ?", id).First(&a).Error
	return &a, err
}

func (r *AttemptRepository) ListByUser(userID uint, page, pageSize int) ([]model.TestAttempt, int64, error) {
	var attempts []model.TestAttempt
	var total int64

	query := r.DB.Model(&model.TestAttempt{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&attempts).Error
	return attempts, total, err
}

func (r *AttemptRepository) CountByUser(userID uint) (int64, error) {
	var total int64
	err := r.DB.Model(&model.TestAttempt{}).Where("user_id = ?", userID).Count(&total).Error
	return total, err
}

// LifetimeCorrect sums correct answers across every attempt the user made.
func (r *AttemptRepository) LifetimeCorrect(userID uint) (int64, error) {
	var total int64
	err := r.DB.Model(&model.TestAttempt{}).Where("user_id = ?", userID).
		Select("COALESCE(SUM(correct_count), 0)").Scan(&total).Error
	return total, err
}

// UserStats aggregates attempt history for the dashboard.
type UserStats struct {
	TotalAttempts  int64   `json:"totalAttempts"`
	TotalCorrect   int64   `json:"totalCorrect"`
	TotalIncorrect int64   `json:"totalIncorrect"`
	TotalQuestions int64   `json:"totalQuestions"`
	AverageScore   float64 `json:"averageScore"`
	BestScore      float64 `json:"bestScore"`
}

func (r *AttemptRepository) StatsByUser(userID uint) (*UserStats, error) {
	var stats UserStats
	err := r.DB.Model(&model.TestAttempt{}).Where("user_id = ?", userID).
		Select(`COUNT(*) AS total_attempts,
			COALESCE(SUM(correct_count), 0) AS total_correct,
			COALESCE(SUM(incorrect_count), 0) AS total_incorrect,
			COALESCE(SUM(total_questions), 0) AS total_questions,
			COALESCE(AVG(score), 0) AS average_score,
			COALESCE(MAX(score), 0) AS best_score`).
		Scan(&stats).Error
	return &stats, err
}
