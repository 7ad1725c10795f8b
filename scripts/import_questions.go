// Manual bulk question import.
//
// The same parser backs the admin upload endpoints; this script exists for
// first deployments and large offline batches where going through HTTP is
// awkward.
//
// Usage: go run scripts/import_questions.go path/to/questions.txt

package main

import (
	"context"
	"log"
	"os"

	"exam_prep_backend/internal/config"
	"exam_prep_backend/internal/ingest"
	"exam_prep_backend/internal/model"
	"exam_prep_backend/internal/repository"
	"exam_prep_backend/pkg/database"
	"exam_prep_backend/pkg/logger"
)

func main() {
	if len(os.Args) != 2 {
		log.Fatalf("usage: %s <questions.txt>", os.Args[0])
	}

	text, err := os.ReadFile(os.Args[1])
	if err != nil {
		log.Fatalf("failed to read input file: %v", err)
	}

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	questionRepo := repository.NewQuestionRepository(db)
	parser := ingest.NewParser()

	result := parser.Run(context.Background(), string(text), func(ctx context.Context, rec *ingest.Record) error {
		return questionRepo.Create(&model.Question{
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
		})
	})

	log.Printf("imported %d questions, %d blocks failed", result.SuccessCount, result.FailedCount)
	for _, blockErr := range result.Errors {
		log.Printf("  block %d: %s", blockErr.Index, blockErr.Reason)
	}
	if result.FailedCount > 0 {
		os.Exit(1)
	}
}
