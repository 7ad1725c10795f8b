package repository

import (
	"errors"

	"exam_prep_backend/internal/model"

	"gorm.io/gorm"
)

type BookmarkRepository struct {
	DB *gorm.DB
}

func NewBookmarkRepository(db *gorm.DB) *BookmarkRepository {
	return &BookmarkRepository{DB: db}
}

// Toggle bookmarks the question, or removes an existing bookmark. Returns
// true when the question is bookmarked after the call.
func (r *BookmarkRepository) Toggle(userID, questionID uint) (bool, error) {
	var existing model.Bookmark
	err := r.DB.Where("user_id = ? AND question_id = ?", userID, questionID).First(&existing).Error
	if err == nil {
		return false, r.DB.Unscoped().Delete(&existing).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	bookmark := model.Bookmark{UserID: userID, QuestionID: questionID}
	return true, r.DB.Create(&bookmark).Error
}

func (r *BookmarkRepository) ListByUser(userID uint, page, pageSize int) ([]model.Bookmark, int64, error) {
	var bookmarks []model.Bookmark
	var total int64

	query := r.DB.Model(&model.Bookmark{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.DB.Preload("Question").
		Where("user_id = ?", userID).Order("created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&bookmarks).Error
	return bookmarks, total, err
}

func (r *BookmarkRepository) IsBookmarked(userID, questionID uint) (bool, error) {
	var total int64
	err := r.DB.Model(&model.Bookmark{}).
		Where("user_id = ? AND question_id = ?", userID, questionID).Count(&total).Error
	return total > 0, err
}
