package service

import (
	"errors"
	"testing"
	"time"

	"exam_prep_backend/internal/config"
	"exam_prep_backend/internal/engine"
	"exam_prep_backend/internal/model"
	"exam_prep_backend/pkg/logger"

	"go.uber.org/zap"
)

func init() {
	logger.Log = zap.NewNop()
}

// fakeAttemptWriter stands in for the gorm repository; setting err makes
// every write fail until it is cleared.
type fakeAttemptWriter struct {
	err     error
	created []*model.TestAttempt
}

func (w *fakeAttemptWriter) Create(a *model.TestAttempt) error {
	if w.err != nil {
		return w.err
	}
	w.created = append(w.created, a)
	return nil
}

func newPracticeServiceForTest(writer AttemptWriter, now func() time.Time) *PracticeService {
	return &PracticeService{
		AttemptRepo: writer,
		Cfg:         &config.Config{},
		store:       newSessionStoreWithClock(time.Hour, time.Millisecond, now),
	}
}

func putPracticeSession(t *testing.T, s *PracticeService, userID uint, cfg engine.Config) *liveSession {
	t.Helper()
	questions := storeTestQuestions(2)
	eng, err := engine.New(questions, cfg)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	session := &liveSession{
		ID:        "sess-1",
		UserID:    userID,
		Surface:   SurfaceHome,
		Engine:    eng,
		Questions: questions,
		CreatedAt: s.store.now(),
		timed:     cfg.TimeLimitSeconds > 0,
		stop:      make(chan struct{}),
	}
	s.store.put(session)
	return session
}

func TestSubmitSurfacesFailedAttemptWrite(t *testing.T) {
	writer := &fakeAttemptWriter{err: errors.New("connection refused")}
	s := newPracticeServiceForTest(writer, time.Now)
	session := putPracticeSession(t, s, 7, engine.HomePracticeConfig(0))

	resp, err := s.Submit(7, session.ID)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if resp.Result == nil {
		t.Fatal("submit must still return the scored result")
	}
	if resp.Notice == "" {
		t.Error("failed attempt write must surface a notice")
	}

	// The session stays submitted and its state carries the notice.
	state, err := s.State(7, session.ID)
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if !state.Submitted {
		t.Error("session must remain submitted after a failed write")
	}
	if state.Notice == "" {
		t.Error("session state must carry the save notice")
	}

	// Once the store recovers, a repeat submit retries the write and the
	// notice clears.
	writer.err = nil
	resp, err = s.Submit(7, session.ID)
	if err != nil {
		t.Fatalf("repeat submit: %v", err)
	}
	if resp.Notice != "" {
		t.Errorf("notice should clear after a successful retry, got %q", resp.Notice)
	}
	if len(writer.created) != 1 {
		t.Fatalf("expected exactly one stored attempt, got %d", len(writer.created))
	}
	if state, _ := s.State(7, session.ID); state.Notice != "" {
		t.Errorf("state notice should clear after a successful retry, got %q", state.Notice)
	}
}

func TestUntimedSubmitRecordsElapsedFromSessionAge(t *testing.T) {
	base := time.Date(2025, 11, 2, 9, 0, 0, 0, time.UTC)
	clock := base
	writer := &fakeAttemptWriter{}
	s := newPracticeServiceForTest(writer, func() time.Time { return clock })
	session := putPracticeSession(t, s, 3, engine.HomePracticeConfig(0))

	clock = base.Add(42 * time.Second)
	resp, err := s.Submit(3, session.ID)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if resp.Result.TimeTakenSeconds != 42 {
		t.Errorf("result time taken = %d, want 42", resp.Result.TimeTakenSeconds)
	}
	if len(writer.created) != 1 || writer.created[0].TimeTakenSeconds != 42 {
		t.Fatalf("stored attempt time taken = %+v, want 42", writer.created)
	}
}

func TestExpiredSessionStateCarriesSaveNotice(t *testing.T) {
	writer := &fakeAttemptWriter{err: errors.New("connection refused")}
	s := newPracticeServiceForTest(writer, time.Now)
	session := putPracticeSession(t, s, 9, engine.TimedExamConfig(2, nil))
	s.store.startCountdown(session, s.persistOnExpire)

	deadline := time.After(2 * time.Second)
	for {
		state, err := s.State(9, session.ID)
		if err != nil {
			t.Fatalf("state: %v", err)
		}
		if state.Submitted {
			if state.Notice == "" {
				t.Error("expired session state must carry the save notice")
			}
			return
		}
		select {
		case <-deadline:
			t.Fatal("countdown never submitted the session")
		case <-time.After(5 * time.Millisecond):
		}
	}
}
