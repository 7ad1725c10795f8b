package engine

import (
	"fmt"
	"testing"

	"exam_prep_backend/internal/model"
)

// questions builds n questions whose correct answer is always "A".
func questions(n int) []model.Question {
	qs := make([]model.Question, n)
	for i := range qs {
		qs[i] = model.Question{
			Question:      fmt.Sprintf("q%d", i),
			OptionA:       "right",
			OptionB:       "wrong",
			OptionC:       "wrong",
			OptionD:       "wrong",
			CorrectAnswer: "A",
			Explanation:   "because",
		}
	}
	return qs
}

func TestScoringWithNegativeMarking(t *testing.T) {
	e, err := New(questions(5), TimedExamConfig(0, nil))
	if err != nil {
		t.Fatal(err)
	}

	// 3 correct, 1 incorrect, 1 unanswered.
	for i := 0; i < 3; i++ {
		if _, err := e.SelectAnswer(i, "A"); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := e.SelectAnswer(3, "C"); err != nil {
		t.Fatal(err)
	}

	res := e.Submit()
	if res.Score != 2.75 {
		t.Errorf("score = %v, want 2.75", res.Score)
	}
	if res.CorrectCount != 3 || res.IncorrectCount != 1 || res.UnansweredCount != 1 {
		t.Errorf("counts = %d/%d/%d", res.CorrectCount, res.IncorrectCount, res.UnansweredCount)
	}
	if res.CorrectCount+res.IncorrectCount+res.UnansweredCount != res.TotalQuestions {
		t.Errorf("counts do not partition total %d", res.TotalQuestions)
	}
}

func TestPerTestNegativeMarkOverride(t *testing.T) {
	half := 0.5
	e, _ := New(questions(2), TimedExamConfig(0, &half))
	e.SelectAnswer(0, "A")
	e.SelectAnswer(1, "B")
	if res := e.Submit(); res.Score != 0.5 {
		t.Errorf("score = %v, want 0.5 with negative mark 0.5", res.Score)
	}
}

func TestSubmitIdempotent(t *testing.T) {
	e, _ := New(questions(3), TimedExamConfig(0, nil))
	e.SelectAnswer(0, "A")

	first := e.Submit()
	second := e.Submit()
	if first != second {
		t.Error("second Submit must return the same result")
	}
	if _, err := e.SelectAnswer(1, "A"); err != ErrAlreadySubmitted {
		t.Errorf("mutation after submit = %v, want ErrAlreadySubmitted", err)
	}
}

func TestHomeWidgetStreakAndXP(t *testing.T) {
	e, _ := New(questions(10), HomePracticeConfig(0))

	celebrations := 0
	for i := 0; i < 6; i++ {
		out, err := e.SelectAnswer(i, "A")
		if err != nil {
			t.Fatal(err)
		}
		if out.Celebrate {
			celebrations++
			if out.Streak != 6 {
				t.Errorf("celebrated at streak %d, want 6", out.Streak)
			}
		}
	}
	if celebrations != 1 {
		t.Errorf("celebrations = %d, want exactly 1", celebrations)
	}
	if e.XP() != 60 {
		t.Errorf("xp = %d, want 60", e.XP())
	}

	// A wrong answer resets the streak but not XP on this surface.
	out, _ := e.SelectAnswer(6, "B")
	if out.Streak != 0 {
		t.Errorf("streak = %d after wrong answer", out.Streak)
	}
	if out.XP != 60 {
		t.Errorf("xp = %d, home widget must keep XP on a wrong answer", out.XP)
	}
}

func TestCategoryScreenResetsXP(t *testing.T) {
	e, _ := New(questions(12), CategoryPracticeConfig(0))

	for i := 0; i < 3; i++ {
		e.SelectAnswer(i, "A")
	}
	out, _ := e.SelectAnswer(3, "D")
	if out.XP != 0 || out.Streak != 0 {
		t.Errorf("category screen must reset both: xp=%d streak=%d", out.XP, out.Streak)
	}

	// Celebration threshold is 10 on this surface.
	for i := 4; i < 12; i++ {
		e.SelectAnswer(i, "A")
	}
	if e.Streak() != 8 {
		t.Fatalf("streak = %d, want 8", e.Streak())
	}
}

func TestXPCap(t *testing.T) {
	cfg := HomePracticeConfig(0)
	cfg.MaxXP = 30
	e, _ := New(questions(5), cfg)
	for i := 0; i < 5; i++ {
		e.SelectAnswer(i, "A")
	}
	if e.XP() != 30 {
		t.Errorf("xp = %d, want capped at 30", e.XP())
	}
}

func TestQuickPracticeLocksFirstAnswer(t *testing.T) {
	e, _ := New(questions(2), HomePracticeConfig(0))
	if _, err := e.SelectAnswer(0, "B"); err != nil {
		t.Fatal(err)
	}
	if _, err := e.SelectAnswer(0, "A"); err != ErrAlreadyAnswered {
		t.Errorf("relock = %v, want ErrAlreadyAnswered", err)
	}
}

func TestExamAllowsChangingAnswer(t *testing.T) {
	e, _ := New(questions(1), TimedExamConfig(0, nil))
	e.SelectAnswer(0, "B")
	if _, err := e.SelectAnswer(0, "A"); err != nil {
		t.Fatalf("exam mode must allow re-answering: %v", err)
	}
	if res := e.Submit(); res.CorrectCount != 1 {
		t.Errorf("last answer must win, got %+v", res)
	}
}

func TestAnsweringClearsReviewFlag(t *testing.T) {
	e, _ := New(questions(3), TimedExamConfig(0, nil))
	if err := e.ToggleMarkForReview(1); err != nil {
		t.Fatal(err)
	}
	if len(e.MarkedForReview()) != 1 {
		t.Fatal("flag not set")
	}
	e.SelectAnswer(1, "A")
	if len(e.MarkedForReview()) != 0 {
		t.Error("answering must clear the review flag")
	}

	practice, _ := New(questions(1), HomePracticeConfig(0))
	if err := practice.ToggleMarkForReview(0); err != ErrReviewNotAllowed {
		t.Errorf("practice mode review = %v, want ErrReviewNotAllowed", err)
	}
}

func TestTimerForcesSingleSubmission(t *testing.T) {
	e, _ := New(questions(10), TimedExamConfig(3, nil))
	e.SelectAnswer(0, "A")
	e.SelectAnswer(1, "A")

	if res := e.Tick(); res != nil {
		t.Fatal("submitted too early")
	}
	if res := e.Tick(); res != nil {
		t.Fatal("submitted too early")
	}
	res := e.Tick()
	if res == nil {
		t.Fatal("countdown at zero must force submission")
	}
	if !res.TimedOut {
		t.Error("result must be flagged as timed out")
	}
	if res.CorrectCount != 2 || res.UnansweredCount != 8 || res.Score != 2 {
		t.Errorf("forced submission scored %+v", res)
	}
	// Further ticks are no-ops after submission.
	if again := e.Tick(); again != nil {
		t.Error("tick after submission must not resubmit")
	}
	if e.Submit() != res {
		t.Error("explicit submit after timeout must return the same result")
	}
}

func TestGotoBounds(t *testing.T) {
	e, _ := New(questions(3), TimedExamConfig(0, nil))
	if err := e.Goto(2); err != nil || e.CurrentIndex() != 2 {
		t.Errorf("goto failed: %v", err)
	}
	if err := e.Goto(3); err != ErrIndexOutOfRange {
		t.Errorf("goto out of range = %v", err)
	}
	if _, err := e.SelectAnswer(0, "Z"); err != ErrInvalidOption {
		t.Errorf("invalid option = %v", err)
	}
}

func TestNewRejectsEmptySession(t *testing.T) {
	if _, err := New(nil, TimedExamConfig(0, nil)); err != ErrNoQuestions {
		t.Errorf("err = %v, want ErrNoQuestions", err)
	}
}
