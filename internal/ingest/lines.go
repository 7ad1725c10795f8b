package ingest

import "strings"

type lineKind int

const (
	lineBlank lineKind = iota
	lineCategory
	lineSubcategory
	lineDifficulty
	lineDate
	lineType
	lineQuestion
	lineOptions
	lineOption // A) ... through D) ...
	lineCorrect
	lineExplanation
	linePlain // continuation text, meaning depends on the accumulator mode
)

type line struct {
	kind   lineKind
	letter string // set for lineOption
	text   string
}

const defaultType = "General"

// classify tags one raw line. Label prefixes are case-sensitive; the
// remainder after each label is trimmed.
func classify(raw string) line {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return line{kind: lineBlank}
	}

	labels := []struct {
		prefix string
		kind   lineKind
	}{
		{"Category:", lineCategory},
		{"Sub-Category:", lineSubcategory},
		{"Difficulty:", lineDifficulty},
		{"MCQ Date:", lineDate},
		{"Type:", lineType},
		{"Question:", lineQuestion},
		{"Options:", lineOptions},
		{"Correct Answer:", lineCorrect},
		{"Explanation:", lineExplanation},
	}
	for _, l := range labels {
		if strings.HasPrefix(trimmed, l.prefix) {
			return line{kind: l.kind, text: strings.TrimSpace(trimmed[len(l.prefix):])}
		}
	}

	if len(trimmed) >= 2 && trimmed[1] == ')' && trimmed[0] >= 'A' && trimmed[0] <= 'D' {
		return line{kind: lineOption, letter: trimmed[:1], text: strings.TrimSpace(trimmed[2:])}
	}

	return line{kind: linePlain, text: trimmed}
}

type accMode int

const (
	modeIdle accMode = iota
	modeQuestion
	modeOptions
	modeExplanation
)

// accumulator is the per-block state machine. Plain lines are space-joined
// into the question (until Options:) or the explanation (once started) and
// dropped otherwise. Option lines only count inside the options section; an
// "A) ..." line inside the question text is treated as question text.
type accumulator struct {
	rec     *Record
	mode    accMode
	buf     []string
	bufKind accMode // which field buf belongs to
}

func (a *accumulator) feed(l line) {
	switch l.kind {
	case lineBlank:
		return
	case lineCategory:
		a.rec.Category = l.text
	case lineSubcategory:
		a.rec.Subcategory = l.text
	case lineDifficulty:
		a.rec.Difficulty = strings.ToLower(l.text)
	case lineDate:
		a.rec.Date = reorderDate(l.text)
	case lineType:
		a.rec.Type = l.text
	case lineQuestion:
		a.flush()
		a.mode, a.bufKind = modeQuestion, modeQuestion
		a.buf = append(a.buf, l.text)
	case lineOptions:
		a.flush()
		a.mode = modeOptions
	case lineOption:
		if a.mode != modeOptions {
			a.continuation(l.letter + ") " + l.text)
			return
		}
		switch l.letter {
		case "A":
			a.rec.OptionA = l.text
		case "B":
			a.rec.OptionB = l.text
		case "C":
			a.rec.OptionC = l.text
		case "D":
			a.rec.OptionD = l.text
		}
	case lineCorrect:
		a.rec.CorrectAnswer = l.text // exact remainder, no case normalization
	case lineExplanation:
		a.flush()
		a.mode, a.bufKind = modeExplanation, modeExplanation
		a.buf = append(a.buf, l.text)
	case linePlain:
		a.continuation(l.text)
	}
}

func (a *accumulator) continuation(text string) {
	switch a.mode {
	case modeQuestion, modeExplanation:
		a.buf = append(a.buf, text)
	default:
		// Not accumulating: the line is dropped.
	}
}

// flush commits the pending buffer to its field.
func (a *accumulator) flush() {
	if len(a.buf) == 0 {
		return
	}
	joined := strings.TrimSpace(strings.Join(a.buf, " "))
	switch a.bufKind {
	case modeQuestion:
		a.rec.Question = joined
	case modeExplanation:
		a.rec.Explanation = joined
	}
	a.buf = a.buf[:0]
}
