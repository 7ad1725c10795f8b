package service

import (
	"sync/atomic"
	"testing"
	"time"

	"exam_prep_backend/internal/engine"
	"exam_prep_backend/internal/model"
)

func storeTestQuestions(n int) []model.Question {
	questions := make([]model.Question, 0, n)
	for i := 0; i < n; i++ {
		questions = append(questions, model.Question{
			Question:      "question",
			OptionA:       "a",
			OptionB:       "b",
			OptionC:       "c",
			OptionD:       "d",
			CorrectAnswer: "A",
			Explanation:   "because",
		})
	}
	return questions
}

func TestCountdownForcesSubmissionOnce(t *testing.T) {
	store := newSessionStoreWithClock(time.Hour, time.Millisecond, time.Now)

	eng, err := engine.New(storeTestQuestions(3), engine.TimedExamConfig(3, nil))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	session := &liveSession{
		ID:        "s1",
		UserID:    1,
		Surface:   SurfaceExam,
		Engine:    eng,
		CreatedAt: time.Now(),
		stop:      make(chan struct{}),
	}
	store.put(session)

	var expires int32
	store.startCountdown(session, func(_ *liveSession, result *engine.Result) {
		if !result.TimedOut {
			t.Error("forced submission should report TimedOut")
		}
		atomic.AddInt32(&expires, 1)
	})

	deadline := time.After(2 * time.Second)
	for {
		session.mu.Lock()
		submitted := session.Engine.Submitted()
		session.mu.Unlock()
		if submitted {
			break
		}
		select {
		case <-deadline:
			t.Fatal("countdown never submitted the session")
		case <-time.After(5 * time.Millisecond):
		}
	}

	// Give the goroutine a few extra ticks to prove it fires only once.
	time.Sleep(20 * time.Millisecond)
	if n := atomic.LoadInt32(&expires); n != 1 {
		t.Errorf("expected exactly one expiry callback, got %d", n)
	}
}

func TestStorePutGetRemove(t *testing.T) {
	store := newSessionStoreWithClock(time.Hour, time.Second, time.Now)

	eng, err := engine.New(storeTestQuestions(1), engine.HomePracticeConfig(0))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	session := &liveSession{ID: "s2", UserID: 5, Engine: eng, CreatedAt: time.Now(), stop: make(chan struct{})}
	store.put(session)

	got, ok := store.get("s2")
	if !ok || got.UserID != 5 {
		t.Fatalf("expected stored session, got %+v ok=%v", got, ok)
	}

	store.remove("s2")
	if _, ok := store.get("s2"); ok {
		t.Error("session should be gone after remove")
	}

	// Removing twice must not panic (stopTimer is once-only).
	store.remove("s2")
}
