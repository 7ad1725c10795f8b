package service

import (
	"errors"
	"time"

	"exam_prep_backend/internal/model"
	"exam_prep_backend/internal/repository"
	"exam_prep_backend/internal/util"

	"gorm.io/gorm"
)

type QuestionService struct {
	QuestionRepo *repository.QuestionRepository
}

func NewQuestionService(questionRepo *repository.QuestionRepository) *QuestionService {
	return &QuestionService{QuestionRepo: questionRepo}
}

type QuestionRequest struct {
	Question      string `json:"question" binding:"required"`
	OptionA       string `json:"optionA" binding:"required"`
	OptionB       string `json:"optionB" binding:"required"`
	OptionC       string `json:"optionC" binding:"required"`
	OptionD       string `json:"optionD" binding:"required"`
	CorrectAnswer string `json:"correctAnswer" binding:"required,oneof=A B C D"`
	Explanation   string `json:"explanation" binding:"required"`
	Category      string `json:"category" binding:"required"`
	Subcategory   string `json:"subcategory"`
	Difficulty    string `json:"difficulty" binding:"required,oneof=easy medium hard"`
	Type          string `json:"type" binding:"omitempty,oneof=General 'Current Affairs'"`
	QuestionDate  string `json:"questionDate"`
}

type ListQuestionsQuery struct {
	Category    string `form:"category"`
	Subcategory string `form:"subcategory"`
	Difficulty  string `form:"difficulty"`
	Type        string `form:"type"`
	Date        string `form:"date"`
	Keyword     string `form:"keyword"`
	Page        int    `form:"page,default=1"`
	PageSize    int    `form:"pageSize,default=20"`
}

// LearnerQuestion is a question as shown during an active session: the
// correct answer and explanation stay server-side until answered.
type LearnerQuestion struct {
	ID          uint   `json:"id"`
	Question    string `json:"question"`
	OptionA     string `json:"optionA"`
	OptionB     string `json:"optionB"`
	OptionC     string `json:"optionC"`
	OptionD     string `json:"optionD"`
	Category    string `json:"category"`
	Subcategory string `json:"subcategory,omitempty"`
	Difficulty  string `json:"difficulty"`
	Type        string `json:"type"`
}

func ToLearnerQuestion(q *model.Question) LearnerQuestion {
	return LearnerQuestion{
		ID:          q.ID,
		Question:    q.Question,
		OptionA:     q.OptionA,
		OptionB:     q.OptionB,
		OptionC:     q.OptionC,
		OptionD:     q.OptionD,
		Category:    q.Category,
		Subcategory: q.Subcategory,
		Difficulty:  string(q.Difficulty),
		Type:        string(q.Type),
	}
}

func (s *QuestionService) Create(req *QuestionRequest) (*model.Question, error) {
	q := s.fromRequest(req)
	if err := s.QuestionRepo.Create(q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *QuestionService) Update(id uint, req *QuestionRequest) (*model.Question, error) {
	existing, err := s.QuestionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}

	updated := s.fromRequest(req)
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	updated.Active = existing.Active
	if err := s.QuestionRepo.Update(updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *QuestionService) Delete(id uint) error {
	if _, err := s.QuestionRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrQuestionNotFound
		}
		return err
	}
	return s.QuestionRepo.Delete(id)
}

func (s *QuestionService) Get(id uint) (*model.Question, error) {
	q, err := s.QuestionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}
	return q, nil
}

func (s *QuestionService) List(query *ListQuestionsQuery) ([]model.Question, int64, error) {
	return s.QuestionRepo.List(repository.QuestionFilter{
		Category:    query.Category,
		Subcategory: query.Subcategory,
		Difficulty:  query.Difficulty,
		Type:        query.Type,
		Date:        query.Date,
		Keyword:     query.Keyword,
	}, query.Page, query.PageSize)
}

func (s *QuestionService) Categories() ([]string, error) {
	return s.QuestionRepo.Categories()
}

func (s *QuestionService) Subcategories(category string) ([]string, error) {
	return s.QuestionRepo.Subcategories(category)
}

// DailyCurrentAffairs lists the current-affairs questions tagged with the
// given date, today when empty.
func (s *QuestionService) DailyCurrentAffairs(date string) ([]LearnerQuestion, error) {
	if date == "" {
		date = time.Now().Format(util.DateFormat)
	}
	questions, err := s.QuestionRepo.FindForPractice(repository.QuestionFilter{
		Type: string(model.TypeCurrentAffairs),
		Date: date,
	}, 50)
	if err != nil {
		return nil, err
	}
	out := make([]LearnerQuestion, 0, len(questions))
	for i := range questions {
		out = append(out, ToLearnerQuestion(&questions[i]))
	}
	return out, nil
}

func (s *QuestionService) fromRequest(req *QuestionRequest) *model.Question {
	qType := req.Type
	if qType == "" {
		qType = string(model.TypeGeneral)
	}
	date := req.QuestionDate
	if date == "" {
		date = time.Now().Format(util.DateFormat)
	}
	return &model.Question{
		Question:      req.Question,
		OptionA:       req.OptionA,
		OptionB:       req.OptionB,
		OptionC:       req.OptionC,
		OptionD:       req.OptionD,
		CorrectAnswer: req.CorrectAnswer,
		Explanation:   req.Explanation,
		Category:      req.Category,
		Subcategory:   req.Subcategory,
		Difficulty:    model.Difficulty(req.Difficulty),
		Type:          model.QuestionType(qType),
		QuestionDate:  date,
		Active:        true,
	}
}
