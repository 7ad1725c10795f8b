package service

import (
	"errors"

	"exam_prep_backend/internal/model"
	"exam_prep_backend/internal/repository"
	"exam_prep_backend/internal/util"

	"gorm.io/gorm"
)

type BookmarkService struct {
	BookmarkRepo *repository.BookmarkRepository
	QuestionRepo *repository.QuestionRepository
}

func NewBookmarkService(bookmarkRepo *repository.BookmarkRepository, questionRepo *repository.QuestionRepository) *BookmarkService {
	return &BookmarkService{
		BookmarkRepo: bookmarkRepo,
		QuestionRepo: questionRepo,
	}
}

// Toggle flips the bookmark on a question. Returns whether the question is
// bookmarked after the call.
func (s *BookmarkService) Toggle(userID, questionID uint) (bool, error) {
	if _, err := s.QuestionRepo.FindByID(questionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, util.ErrQuestionNotFound
		}
		return false, err
	}
	return s.BookmarkRepo.Toggle(userID, questionID)
}

func (s *BookmarkService) List(userID uint, page, pageSize int) ([]model.Bookmark, int64, error) {
	return s.BookmarkRepo.ListByUser(userID, page, pageSize)
}
