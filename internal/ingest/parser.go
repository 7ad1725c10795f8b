// Package ingest converts delimited plain-text MCQ files into validated
// question records. Records are separated by "---" lines; each record is a
// sequence of labelled lines (Category:, Question:, Options:, ...) with
// free continuation lines folded into the question or explanation text.
package ingest

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Record is one parsed question block, before persistence.
type Record struct {
	Category      string
	Subcategory   string
	Difficulty    string
	Type          string
	Date          string // YYYY-MM-DD
	Question      string
	OptionA       string
	OptionB       string
	OptionC       string
	OptionD       string
	CorrectAnswer string
	Explanation   string
}

// Inserter persists one validated record. It is injected so the parser stays
// free of storage concerns.
type Inserter func(ctx context.Context, rec *Record) error

// BlockError reports why one block was rejected. Index is 1-based over the
// non-empty blocks of the upload.
type BlockError struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// Result aggregates a whole upload. Every non-empty block lands in exactly
// one of the two counters.
type Result struct {
	SuccessCount int          `json:"successCount"`
	FailedCount  int          `json:"failedCount"`
	Errors       []BlockError `json:"errors"`
}

// TruncatedErrors returns at most limit error entries plus how many were cut.
func (r *Result) TruncatedErrors(limit int) ([]BlockError, int) {
	if len(r.Errors) <= limit {
		return r.Errors, 0
	}
	return r.Errors[:limit], len(r.Errors) - limit
}

const blockDelimiter = "---"

// Parser holds the ambient inputs the format depends on. Now supplies the
// fallback date for blocks without an "MCQ Date:" line.
type Parser struct {
	Now func() time.Time
}

func NewParser() *Parser {
	return &Parser{Now: time.Now}
}

// Run parses every block of text, validates it, and hands valid records to
// insert one at a time. A failing block (bad grammar, failed validation, or a
// rejected insert) never aborts the batch.
func (p *Parser) Run(ctx context.Context, text string, insert Inserter) *Result {
	result := &Result{}

	index := 0
	for _, block := range splitBlocks(text) {
		if strings.TrimSpace(block) == "" {
			continue
		}
		index++

		rec, reason := p.parseBlock(block)
		if reason == "" {
			reason = validate(rec)
		}
		if reason == "" {
			if err := insert(ctx, rec); err != nil {
				reason = err.Error()
			}
		}

		if reason == "" {
			result.SuccessCount++
		} else {
			result.FailedCount++
			result.Errors = append(result.Errors, BlockError{Index: index, Reason: reason})
		}
	}

	return result
}

func splitBlocks(text string) []string {
	var blocks []string
	var current []string
	for _, line := range strings.Split(text, "\n") {
		// A separator line is exactly the delimiter; a padded or indented
		// "---" is ordinary block content. Only a CRLF tail is tolerated.
		if strings.TrimSuffix(line, "\r") == blockDelimiter {
			blocks = append(blocks, strings.Join(current, "\n"))
			current = current[:0]
			continue
		}
		current = append(current, line)
	}
	blocks = append(blocks, strings.Join(current, "\n"))
	return blocks
}

// parseBlock runs the accumulator over one block's classified lines. A panic
// inside parsing is reported as a generic failure for this block only.
func (p *Parser) parseBlock(block string) (rec *Record, reason string) {
	defer func() {
		if r := recover(); r != nil {
			rec, reason = nil, "Parsing error"
		}
	}()

	rec = &Record{Type: string(defaultType)}
	acc := accumulator{rec: rec}
	for _, raw := range strings.Split(block, "\n") {
		acc.feed(classify(raw))
	}
	acc.flush()

	if rec.Date == "" {
		rec.Date = p.Now().Format("2006-01-02")
	}
	return rec, ""
}

// reorderDate turns DD-MM-YYYY into YYYY-MM-DD. Anything that is not three
// dash-separated parts passes through untouched; validation does not inspect
// dates, matching the upload format's lenient handling.
func reorderDate(s string) string {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return s
	}
	return fmt.Sprintf("%s-%s-%s", parts[2], parts[1], parts[0])
}
