package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"exam_prep_backend/internal/ingest"
	"exam_prep_backend/internal/model"
	"exam_prep_backend/internal/repository"
	"exam_prep_backend/internal/util"
	"exam_prep_backend/pkg/logger"
	"exam_prep_backend/pkg/monitoring"

	"go.uber.org/zap"
)

// errorLimit caps how many block errors are returned and stored per upload.
const errorLimit = 10

type IngestService struct {
	QuestionRepo *repository.QuestionRepository
	JobRepo      *repository.IngestJobRepository
	Storage      *StorageService
	Parser       *ingest.Parser
}

func NewIngestService(questionRepo *repository.QuestionRepository, jobRepo *repository.IngestJobRepository, storage *StorageService) *IngestService {
	return &IngestService{
		QuestionRepo: questionRepo,
		JobRepo:      jobRepo,
		Storage:      storage,
		Parser:       ingest.NewParser(),
	}
}

// IngestReport is the admin-facing summary of one upload.
type IngestReport struct {
	SuccessCount int                 `json:"successCount"`
	FailedCount  int                 `json:"failedCount"`
	Errors       []ingest.BlockError `json:"errors"`
	OmittedCount int                 `json:"omittedCount"` // errors beyond the stored limit
	JobID        uint                `json:"jobId,omitempty"`
}

// IngestText parses the uploaded block text, inserts every valid question,
// archives the raw file and records an audit row. Parse failures are
// per-block; only infrastructure errors are returned.
func (s *IngestService) IngestText(ctx context.Context, adminID uint, filename string, text string) (*IngestReport, error) {
	result := s.Parser.Run(ctx, text, func(ctx context.Context, rec *ingest.Record) error {
		return s.QuestionRepo.Create(recordToQuestion(rec))
	})

	monitoring.IngestedQuestions.WithLabelValues("success").Add(float64(result.SuccessCount))
	monitoring.IngestedQuestions.WithLabelValues("failed").Add(float64(result.FailedCount))

	truncated, omitted := result.TruncatedErrors(errorLimit)
	report := &IngestReport{
		SuccessCount: result.SuccessCount,
		FailedCount:  result.FailedCount,
		Errors:       truncated,
		OmittedCount: omitted,
	}

	fileURL := s.archive(ctx, filename, text)

	job := &model.IngestJob{
		AdminID:      adminID,
		Filename:     filename,
		FileURL:      fileURL,
		SuccessCount: result.SuccessCount,
		FailedCount:  result.FailedCount,
	}
	if len(truncated) > 0 {
		if raw, err := json.Marshal(truncated); err == nil {
			job.Errors = raw
		}
	}
	if err := s.JobRepo.Create(job); err != nil {
		// The questions are already inserted; losing the audit row is not
		// a reason to fail the upload.
		logger.Log.Error("failed to record ingest job", zap.Error(err))
	} else {
		report.JobID = job.ID
	}

	return report, nil
}

func (s *IngestService) ListJobs(page, pageSize int) ([]model.IngestJob, int64, error) {
	return s.JobRepo.List(page, pageSize)
}

func (s *IngestService) archive(ctx context.Context, filename, text string) string {
	if filename == "" {
		filename = "paste.txt"
	}
	key := fmt.Sprintf("ingest/%s_%s", time.Now().Format("20060102150405"), filename)
	url, err := s.Storage.Upload(ctx, key, bytes.NewReader([]byte(text)), int64(len(text)), util.MimeText)
	if err != nil {
		logger.Log.Warn("failed to archive ingest upload", zap.String("filename", filename), zap.Error(err))
		return ""
	}
	return url
}

func recordToQuestion(rec *ingest.Record) *model.Question {
	return &model.Question{
		Question:      rec.Question,
		OptionA:       rec.OptionA,
		OptionB:       rec.OptionB,
		OptionC:       rec.OptionC,
		OptionD:       rec.OptionD,
		CorrectAnswer: rec.CorrectAnswer,
		Explanation:   rec.Explanation,
		Category:      rec.Category,
		Subcategory:   rec.Subcategory,
		Difficulty:    model.Difficulty(rec.Difficulty),
		Type:          model.QuestionType(rec.Type),
		QuestionDate:  rec.Date,
		Active:        true,
	}
}
