// Package engine owns the state machine for answering a fixed sequence of
// MCQs: answer tracking, streak/XP gamification, a countdown, and scoring
// with negative marking. One Engine instance backs one session; the three UI
// surfaces (home practice widget, category practice, timed exam) differ only
// in their Config.
package engine

import (
	"errors"

	"exam_prep_backend/internal/model"
)

var (
	ErrAlreadySubmitted = errors.New("session already submitted")
	ErrAlreadyAnswered  = errors.New("question already answered")
	ErrIndexOutOfRange  = errors.New("question index out of range")
	ErrInvalidOption    = errors.New("invalid option letter")
	ErrReviewNotAllowed = errors.New("mark for review not available in this mode")
	ErrNoQuestions      = errors.New("session needs at least one question")
)

// DefaultNegativeMark applies when a mock test carries no per-test value.
const DefaultNegativeMark = 0.25

// Config selects one of the session behaviors. The XP-reset asymmetry across
// the two practice surfaces is deliberate: both observed policies are kept
// and chosen per surface.
type Config struct {
	LockOnFirstAnswer    bool    // first answer locks the question
	ResetXPOnIncorrect   bool    // wrong answer zeroes XP, not just the streak
	CelebrationThreshold int     // celebrate every Nth consecutive correct answer; 0 disables
	AllowMarkForReview   bool    // exam-style review flags
	NegativeMark         float64 // deduction per incorrect answer at submission
	XPIncrement          int
	MaxXP                int
	TimeLimitSeconds     int // 0 means no countdown
}

// HomePracticeConfig is the homepage widget: locked answers, XP survives a
// wrong answer, celebration every 6th correct.
func HomePracticeConfig(timeLimitSeconds int) Config {
	return Config{
		LockOnFirstAnswer:    true,
		ResetXPOnIncorrect:   false,
		CelebrationThreshold: 6,
		NegativeMark:         DefaultNegativeMark,
		XPIncrement:          10,
		MaxXP:                100,
		TimeLimitSeconds:     timeLimitSeconds,
	}
}

// CategoryPracticeConfig is the category-browsing screen: a wrong answer
// also resets XP, celebration every 10th correct.
func CategoryPracticeConfig(timeLimitSeconds int) Config {
	cfg := HomePracticeConfig(timeLimitSeconds)
	cfg.ResetXPOnIncorrect = true
	cfg.CelebrationThreshold = 10
	return cfg
}

// TimedExamConfig is the full mock test: answers stay editable until
// submission, mark-for-review is available, no per-answer gamification.
func TimedExamConfig(timeLimitSeconds int, negativeMark *float64) Config {
	nm := DefaultNegativeMark
	if negativeMark != nil {
		nm = *negativeMark
	}
	return Config{
		AllowMarkForReview: true,
		NegativeMark:       nm,
		XPIncrement:        10,
		MaxXP:              100,
		TimeLimitSeconds:   timeLimitSeconds,
	}
}

// AnswerOutcome is the immediate feedback for one SelectAnswer call.
type AnswerOutcome struct {
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correctAnswer"`
	Explanation   string `json:"explanation"`
	Streak        int    `json:"streak"`
	XP            int    `json:"xp"`
	Celebrate     bool   `json:"celebrate"`
}

// Result is the scored outcome of a submitted session. The three counts
// always partition TotalQuestions.
type Result struct {
	Score            float64 `json:"score"`
	CorrectCount     int     `json:"correctCount"`
	IncorrectCount   int     `json:"incorrectCount"`
	UnansweredCount  int     `json:"unansweredCount"`
	TotalQuestions   int     `json:"totalQuestions"`
	TimeTakenSeconds int     `json:"timeTakenSeconds"`
	TimedOut         bool    `json:"timedOut"`
}

// Engine is single-session and not self-locking; callers serialize access
// (the in-memory session store holds one mutex per session).
type Engine struct {
	cfg       Config
	questions []model.Question

	current   int
	answers   map[int]string
	marked    map[int]struct{}
	remaining int
	elapsed   int
	submitted bool
	timedOut  bool
	streak    int
	xp        int
	result    *Result
}

func New(questions []model.Question, cfg Config) (*Engine, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	return &Engine{
		cfg:       cfg,
		questions: questions,
		answers:   make(map[int]string),
		marked:    make(map[int]struct{}),
		remaining: cfg.TimeLimitSeconds,
	}, nil
}

func (e *Engine) Questions() []model.Question  { return e.questions }
func (e *Engine) Submitted() bool              { return e.submitted }
func (e *Engine) Streak() int                  { return e.streak }
func (e *Engine) XP() int                      { return e.xp }
func (e *Engine) TimeRemainingSeconds() int    { return e.remaining }
func (e *Engine) CurrentIndex() int            { return e.current }
func (e *Engine) Answered(index int) (string, bool) {
	letter, ok := e.answers[index]
	return letter, ok
}

// MarkedForReview returns the flagged indices; order is not guaranteed,
// callers sort if they need it.
func (e *Engine) MarkedForReview() []int {
	out := make([]int, 0, len(e.marked))
	for i := range e.marked {
		out = append(out, i)
	}
	return out
}

// Goto moves the question pointer (exam navigation).
func (e *Engine) Goto(index int) error {
	if e.submitted {
		return ErrAlreadySubmitted
	}
	if index < 0 || index >= len(e.questions) {
		return ErrIndexOutOfRange
	}
	e.current = index
	return nil
}

// SelectAnswer records option for the question at index and evaluates it
// immediately. Answering always clears a review flag on that index.
func (e *Engine) SelectAnswer(index int, option string) (*AnswerOutcome, error) {
	if e.submitted {
		return nil, ErrAlreadySubmitted
	}
	if index < 0 || index >= len(e.questions) {
		return nil, ErrIndexOutOfRange
	}
	if option < "A" || option > "D" || len(option) != 1 {
		return nil, ErrInvalidOption
	}
	if _, done := e.answers[index]; done && e.cfg.LockOnFirstAnswer {
		return nil, ErrAlreadyAnswered
	}

	e.answers[index] = option
	delete(e.marked, index)

	q := e.questions[index]
	out := &AnswerOutcome{
		Correct:       option == q.CorrectAnswer,
		CorrectAnswer: q.CorrectAnswer,
		Explanation:   q.Explanation,
	}

	if out.Correct {
		e.streak++
		e.xp += e.cfg.XPIncrement
		if e.xp > e.cfg.MaxXP {
			e.xp = e.cfg.MaxXP
		}
		if e.cfg.CelebrationThreshold > 0 && e.streak%e.cfg.CelebrationThreshold == 0 {
			out.Celebrate = true
		}
	} else {
		e.streak = 0
		if e.cfg.ResetXPOnIncorrect {
			e.xp = 0
		}
	}

	out.Streak = e.streak
	out.XP = e.xp
	return out, nil
}

// ToggleMarkForReview flips the review flag on an unanswered question.
func (e *Engine) ToggleMarkForReview(index int) error {
	if e.submitted {
		return ErrAlreadySubmitted
	}
	if !e.cfg.AllowMarkForReview {
		return ErrReviewNotAllowed
	}
	if index < 0 || index >= len(e.questions) {
		return ErrIndexOutOfRange
	}
	if _, ok := e.marked[index]; ok {
		delete(e.marked, index)
	} else {
		e.marked[index] = struct{}{}
	}
	return nil
}

// Tick advances the clock by one second. When the countdown hits zero the
// session is force-submitted with whatever answers are recorded; the
// returned result is non-nil exactly when that happens.
func (e *Engine) Tick() *Result {
	if e.submitted {
		return nil
	}
	e.elapsed++
	if e.cfg.TimeLimitSeconds <= 0 {
		return nil
	}
	e.remaining--
	if e.remaining > 0 {
		return nil
	}
	e.remaining = 0
	e.timedOut = true
	return e.Submit()
}

// Submit scores the session: +1 per correct, -NegativeMark per incorrect,
// 0 per unanswered. Idempotent; repeat calls return the same Result.
func (e *Engine) Submit() *Result {
	if e.submitted {
		return e.result
	}
	e.submitted = true

	res := &Result{
		TotalQuestions:   len(e.questions),
		TimeTakenSeconds: e.elapsed,
		TimedOut:         e.timedOut,
	}
	for i, q := range e.questions {
		letter, ok := e.answers[i]
		if !ok {
			res.UnansweredCount++
			continue
		}
		if letter == q.CorrectAnswer {
			res.CorrectCount++
			res.Score++
		} else {
			res.IncorrectCount++
			res.Score -= e.cfg.NegativeMark
		}
	}

	e.result = res
	return res
}

// AnswerMap copies the recorded answers for persistence.
func (e *Engine) AnswerMap() map[int]string {
	out := make(map[int]string, len(e.answers))
	for i, l := range e.answers {
		out[i] = l
	}
	return out
}
