package ingest

// Validation runs in a fixed order so the reported reason for a broken block
// is deterministic: a block missing both category and question always
// reports the category first.

var validDifficulties = map[string]bool{"easy": true, "medium": true, "hard": true}
var validTypes = map[string]bool{"General": true, "Current Affairs": true}
var validAnswers = map[string]bool{"A": true, "B": true, "C": true, "D": true}

func validate(rec *Record) string {
	if rec.Category == "" {
		return "Missing Category"
	}
	if rec.Question == "" {
		return "Missing Question"
	}
	if rec.OptionA == "" || rec.OptionB == "" || rec.OptionC == "" || rec.OptionD == "" {
		return "Missing one or more options"
	}
	if !validAnswers[rec.CorrectAnswer] {
		return "Invalid or missing Correct Answer"
	}
	if rec.Explanation == "" {
		return "Missing Explanation"
	}
	if !validDifficulties[rec.Difficulty] {
		return "Invalid Difficulty"
	}
	if !validTypes[rec.Type] {
		return "Invalid Type"
	}
	return ""
}
