package service

import (
	"context"
	"errors"
	"time"

	"exam_prep_backend/internal/engine"
	"exam_prep_backend/internal/model"
	"exam_prep_backend/internal/repository"
	"exam_prep_backend/internal/util"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TestService struct {
	TestRepo     *repository.TestRepository
	QuestionRepo *repository.QuestionRepository
	AttemptRepo  *repository.AttemptRepository
	Practice     *PracticeService
}

func NewTestService(
	testRepo *repository.TestRepository,
	questionRepo *repository.QuestionRepository,
	attemptRepo *repository.AttemptRepository,
	practice *PracticeService,
) *TestService {
	return &TestService{
		TestRepo:     testRepo,
		QuestionRepo: questionRepo,
		AttemptRepo:  attemptRepo,
		Practice:     practice,
	}
}

type CreateTestRequest struct {
	Title            string   `json:"title" binding:"required,min=3,max=200"`
	Description      string   `json:"description"`
	Category         string   `json:"category" binding:"required"`
	ExamType         string   `json:"examType"`
	TimeLimitSeconds int      `json:"timeLimitSeconds" binding:"required,min=60,max=14400"`
	NegativeMark     *float64 `json:"negativeMark" binding:"omitempty,min=0,max=2"`
	QuestionIDs      []uint   `json:"questionIds" binding:"required,min=1,dive,min=1"`
}

type ListTestsQuery struct {
	Category string `form:"category"`
	Page     int    `form:"page,default=1"`
	PageSize int    `form:"pageSize,default=20"`
}

func (s *TestService) Create(creatorID uint, req *CreateTestRequest) (*model.MockTest, error) {
	for _, qid := range req.QuestionIDs {
		if _, err := s.QuestionRepo.FindByID(qid); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, util.ErrQuestionNotFound
			}
			return nil, err
		}
	}

	test := &model.MockTest{
		Title:            req.Title,
		Description:      req.Description,
		Category:         req.Category,
		ExamType:         req.ExamType,
		TimeLimitSeconds: req.TimeLimitSeconds,
		NegativeMark:     req.NegativeMark,
		CreatorID:        creatorID,
	}
	if err := s.TestRepo.Create(test, req.QuestionIDs); err != nil {
		return nil, err
	}
	return test, nil
}

func (s *TestService) Publish(testUUID string) error {
	test, err := s.find(testUUID)
	if err != nil {
		return err
	}
	return s.TestRepo.Publish(test.ID)
}

func (s *TestService) Delete(testUUID string) error {
	test, err := s.find(testUUID)
	if err != nil {
		return err
	}
	return s.TestRepo.Delete(test.ID)
}

func (s *TestService) List(query *ListTestsQuery, includeUnpublished bool) ([]model.MockTest, int64, error) {
	return s.TestRepo.List(query.Category, !includeUnpublished, query.Page, query.PageSize)
}

func (s *TestService) Get(testUUID string, includeUnpublished bool) (*model.MockTest, error) {
	test, err := s.find(testUUID)
	if err != nil {
		return nil, err
	}
	if !test.IsPublished && !includeUnpublished {
		return nil, util.ErrTestNotPublished
	}
	return test, nil
}

// StartExam opens a timed exam session against a published test. The
// session lives in the same in-memory store as practice sessions; the
// countdown goroutine force-submits it when time runs out.
func (s *TestService) StartExam(ctx context.Context, userID uint, testUUID string) (*SessionState, error) {
	test, err := s.find(testUUID)
	if err != nil {
		return nil, err
	}
	if !test.IsPublished {
		return nil, util.ErrTestNotPublished
	}

	links, err := s.TestRepo.FindQuestions(test.ID)
	if err != nil {
		return nil, err
	}
	questions := make([]model.Question, 0, len(links))
	for _, link := range links {
		if link.Question != nil {
			questions = append(questions, *link.Question)
		}
	}
	if len(questions) == 0 {
		return nil, util.ErrEmptyQuestionSet
	}

	eng, err := engine.New(questions, engine.TimedExamConfig(test.TimeLimitSeconds, test.NegativeMark))
	if err != nil {
		return nil, err
	}

	session := &liveSession{
		ID:        uuid.NewString(),
		UserID:    userID,
		Surface:   SurfaceExam,
		TestID:    test.ID,
		Category:  test.Category,
		Engine:    eng,
		Questions: questions,
		CreatedAt: time.Now(),
		timed:     true,
		stop:      make(chan struct{}),
	}
	s.Practice.store.put(session)
	s.Practice.store.startCountdown(session, s.Practice.persistOnExpire)
	s.Practice.dailyCheckIn(userID)

	session.mu.Lock()
	defer session.mu.Unlock()
	return s.Practice.snapshot(session), nil
}

func (s *TestService) Attempt(userID uint, attemptUUID string) (*model.TestAttempt, error) {
	attempt, err := s.AttemptRepo.FindByID(attemptUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAttemptNotFound
		}
		return nil, err
	}
	if attempt.UserID != userID {
		return nil, util.ErrPermissionDenied
	}
	return attempt, nil
}

func (s *TestService) AttemptHistory(userID uint, page, pageSize int) ([]model.TestAttempt, int64, error) {
	return s.AttemptRepo.ListByUser(userID, page, pageSize)
}

func (s *TestService) find(testUUID string) (*model.MockTest, error) {
	test, err := s.TestRepo.FindByID(testUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTestNotFound
		}
		return nil, err
	}
	return test, nil
}
