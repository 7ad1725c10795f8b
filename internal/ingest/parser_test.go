package ingest

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func fixedParser() *Parser {
	return &Parser{Now: func() time.Time {
		return time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)
	}}
}

const validBlock = `Category: Static GK
Sub-Category: Indian Polity
Difficulty: Medium
Type: General
MCQ Date: 03-10-2025
Question: Who is known as the Father of the Indian Constitution?
Options:
A) Jawaharlal Nehru
B) B. R. Ambedkar
C) Sardar Patel
D) Rajendra Prasad
Correct Answer: B
Explanation: Ambedkar chaired the drafting committee of the Constituent Assembly.
`

func collect() (Inserter, *[]*Record) {
	var got []*Record
	return func(_ context.Context, rec *Record) error {
		got = append(got, rec)
		return nil
	}, &got
}

func TestParseValidBlock(t *testing.T) {
	insert, got := collect()
	res := fixedParser().Run(context.Background(), validBlock, insert)

	if res.SuccessCount != 1 || res.FailedCount != 0 {
		t.Fatalf("expected 1 success, got %+v", res)
	}
	rec := (*got)[0]

	if rec.Category != "Static GK" {
		t.Errorf("category = %q", rec.Category)
	}
	if rec.Subcategory != "Indian Polity" {
		t.Errorf("subcategory = %q", rec.Subcategory)
	}
	if rec.Difficulty != "medium" {
		t.Errorf("difficulty not lower-cased: %q", rec.Difficulty)
	}
	if rec.Date != "2025-10-03" {
		t.Errorf("date not reordered: %q", rec.Date)
	}
	if rec.Question != "Who is known as the Father of the Indian Constitution?" {
		t.Errorf("question = %q", rec.Question)
	}
	if rec.OptionA != "Jawaharlal Nehru" || rec.OptionB != "B. R. Ambedkar" ||
		rec.OptionC != "Sardar Patel" || rec.OptionD != "Rajendra Prasad" {
		t.Errorf("options = %q %q %q %q", rec.OptionA, rec.OptionB, rec.OptionC, rec.OptionD)
	}
	if rec.CorrectAnswer != "B" {
		t.Errorf("correct answer = %q", rec.CorrectAnswer)
	}
	if rec.Explanation != "Ambedkar chaired the drafting committee of the Constituent Assembly." {
		t.Errorf("explanation = %q", rec.Explanation)
	}
}

func TestMultiLineQuestionAndExplanation(t *testing.T) {
	text := `Category: Economy
Difficulty: easy
Question: The repo rate is the rate at which
commercial banks borrow from the RBI.
What does a cut in the repo rate usually signal?
Options:
A) Tighter liquidity
B) Cheaper credit
C) Higher CRR
D) A fiscal surplus
Correct Answer: B
Explanation: A repo rate cut lowers the cost of borrowing for banks,
which generally transmits into cheaper loans.
---
`
	insert, got := collect()
	res := fixedParser().Run(context.Background(), text, insert)
	if res.SuccessCount != 1 {
		t.Fatalf("expected success, got %+v", res)
	}
	rec := (*got)[0]
	want := "The repo rate is the rate at which commercial banks borrow from the RBI. What does a cut in the repo rate usually signal?"
	if rec.Question != want {
		t.Errorf("question = %q, want %q", rec.Question, want)
	}
	if !strings.HasSuffix(rec.Explanation, "cheaper loans.") || !strings.Contains(rec.Explanation, "borrowing for banks, which") {
		t.Errorf("explanation not space-joined: %q", rec.Explanation)
	}
}

func TestDefaultsTypeAndDate(t *testing.T) {
	text := strings.ReplaceAll(validBlock, "Type: General\n", "")
	text = strings.ReplaceAll(text, "MCQ Date: 03-10-2025\n", "")

	insert, got := collect()
	res := fixedParser().Run(context.Background(), text, insert)
	if res.SuccessCount != 1 {
		t.Fatalf("expected success, got %+v", res)
	}
	rec := (*got)[0]
	if rec.Type != "General" {
		t.Errorf("type default = %q", rec.Type)
	}
	if rec.Date != "2025-10-15" {
		t.Errorf("date default = %q, want upload date", rec.Date)
	}
}

func TestValidationOrder(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(string) string
		reason string
	}{
		{"missing category", func(s string) string {
			return strings.ReplaceAll(s, "Category: Static GK\n", "")
		}, "Missing Category"},
		{"missing question", func(s string) string {
			return strings.ReplaceAll(s, "Question: Who is known as the Father of the Indian Constitution?\n", "")
		}, "Missing Question"},
		{"missing option", func(s string) string {
			return strings.ReplaceAll(s, "C) Sardar Patel\n", "")
		}, "Missing one or more options"},
		{"bad correct answer", func(s string) string {
			return strings.ReplaceAll(s, "Correct Answer: B", "Correct Answer: E")
		}, "Invalid or missing Correct Answer"},
		{"lowercase correct answer is not normalized", func(s string) string {
			return strings.ReplaceAll(s, "Correct Answer: B", "Correct Answer: b")
		}, "Invalid or missing Correct Answer"},
		{"missing explanation", func(s string) string {
			return strings.ReplaceAll(s, "Explanation: Ambedkar chaired the drafting committee of the Constituent Assembly.\n", "")
		}, "Missing Explanation"},
		{"bad difficulty", func(s string) string {
			return strings.ReplaceAll(s, "Difficulty: Medium", "Difficulty: Impossible")
		}, "Invalid Difficulty"},
		{"bad type", func(s string) string {
			return strings.ReplaceAll(s, "Type: General", "Type: Trivia")
		}, "Invalid Type"},
		// Checks run in a fixed order: with both category and question gone,
		// the reported reason is the category.
		{"category reported before question", func(s string) string {
			s = strings.ReplaceAll(s, "Category: Static GK\n", "")
			return strings.ReplaceAll(s, "Question: Who is known as the Father of the Indian Constitution?\n", "")
		}, "Missing Category"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			insert, _ := collect()
			res := fixedParser().Run(context.Background(), tc.mutate(validBlock), insert)
			if res.FailedCount != 1 || res.SuccessCount != 0 {
				t.Fatalf("expected 1 failure, got %+v", res)
			}
			if res.Errors[0].Reason != tc.reason {
				t.Errorf("reason = %q, want %q", res.Errors[0].Reason, tc.reason)
			}
		})
	}
}

func TestBatchIsolation(t *testing.T) {
	bad := strings.ReplaceAll(validBlock, "Category: Static GK\n", "")
	text := validBlock + "---\n" + bad + "---\n" + validBlock + "---\n\n   \n"

	insert, got := collect()
	res := fixedParser().Run(context.Background(), text, insert)

	if res.SuccessCount != 2 || res.FailedCount != 1 {
		t.Fatalf("expected 2 successes and 1 failure, got %+v", res)
	}
	if len(*got) != 2 {
		t.Fatalf("invalid block must not be persisted, inserted %d", len(*got))
	}
	if res.Errors[0].Index != 2 {
		t.Errorf("failed block index = %d, want 2", res.Errors[0].Index)
	}
}

func TestInsertFailureCountsAsFailure(t *testing.T) {
	calls := 0
	insert := func(_ context.Context, _ *Record) error {
		calls++
		if calls == 1 {
			return errors.New("duplicate entry")
		}
		return nil
	}

	text := validBlock + "---\n" + validBlock
	res := fixedParser().Run(context.Background(), text, insert)

	if res.SuccessCount != 1 || res.FailedCount != 1 {
		t.Fatalf("expected insert error isolated to one block, got %+v", res)
	}
	if res.Errors[0].Reason != "duplicate entry" {
		t.Errorf("reason = %q, want the insert error text", res.Errors[0].Reason)
	}
}

func TestTruncatedErrors(t *testing.T) {
	bad := "Question: orphan\n"
	blocks := make([]string, 12)
	for i := range blocks {
		blocks[i] = bad
	}
	insert, _ := collect()
	res := fixedParser().Run(context.Background(), strings.Join(blocks, "---\n"), insert)

	if res.FailedCount != 12 {
		t.Fatalf("expected 12 failures, got %+v", res)
	}
	errs, omitted := res.TruncatedErrors(10)
	if len(errs) != 10 || omitted != 2 {
		t.Errorf("truncation = (%d, %d), want (10, 2)", len(errs), omitted)
	}
}

func TestPaddedDelimiterIsNotASeparator(t *testing.T) {
	text := validBlock + " --- \n" + validBlock

	insert, got := collect()
	res := fixedParser().Run(context.Background(), text, insert)

	// The padded line is block content, so the whole input stays one block.
	if res.SuccessCount != 1 || res.FailedCount != 0 {
		t.Fatalf("expected a single merged block, got %+v", res)
	}
	if len(*got) != 1 {
		t.Errorf("inserted %d records, want 1", len(*got))
	}
}

func TestCRLFDelimiterSplitsBlocks(t *testing.T) {
	text := validBlock + "---\r\n" + validBlock

	insert, _ := collect()
	res := fixedParser().Run(context.Background(), text, insert)
	if res.SuccessCount != 2 || res.FailedCount != 0 {
		t.Fatalf("expected 2 successes, got %+v", res)
	}
}

func TestOptionLikeLineInsideQuestionIsContinuation(t *testing.T) {
	text := `Category: Reasoning
Difficulty: hard
Question: Which sequence completes the series
A) shown in the figure below?
Options:
A) 12
B) 14
C) 16
D) 18
Correct Answer: C
Explanation: The series alternates adding 2 and 4.
`
	insert, got := collect()
	res := fixedParser().Run(context.Background(), text, insert)
	if res.SuccessCount != 1 {
		t.Fatalf("expected success, got %+v", res)
	}
	rec := (*got)[0]
	if rec.OptionA != "12" {
		t.Errorf("option A = %q, option block must win", rec.OptionA)
	}
	if !strings.Contains(rec.Question, "A) shown in the figure below?") {
		t.Errorf("question lost its continuation line: %q", rec.Question)
	}
}
