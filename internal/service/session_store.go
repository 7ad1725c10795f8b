package service

import (
	"sync"
	"time"

	"exam_prep_backend/internal/engine"
	"exam_prep_backend/internal/model"
)

// liveSession is one in-flight practice or exam session. The engine itself
// is not locked; every access goes through mu.
type liveSession struct {
	ID        string
	UserID    uint
	Surface   string // home | category | exam
	TestID    string // set for exam sessions only
	Category  string
	Engine    *engine.Engine
	Questions []model.Question
	CreatedAt time.Time
	timed     bool // a countdown goroutine drives this session's clock

	mu         sync.Mutex
	persisted  bool
	persistErr error // last failed attempt write; cleared on success
	stopOnce   sync.Once
	stop       chan struct{}
}

func (s *liveSession) stopTimer() {
	s.stopOnce.Do(func() { close(s.stop) })
}

// sessionStore keeps live sessions in memory. Sessions are ephemeral by
// design; a restart abandons them and only submitted attempts survive in
// the database.
type sessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*liveSession

	ttl          time.Duration
	tickInterval time.Duration
	now          func() time.Time
}

func newSessionStore(ttl time.Duration) *sessionStore {
	return newSessionStoreWithClock(ttl, time.Second, time.Now)
}

// newSessionStoreWithClock exists for tests: a short tick interval drives
// countdowns without waiting wall-clock seconds.
func newSessionStoreWithClock(ttl, tickInterval time.Duration, now func() time.Time) *sessionStore {
	store := &sessionStore{
		sessions:     make(map[string]*liveSession),
		ttl:          ttl,
		tickInterval: tickInterval,
		now:          now,
	}
	go store.janitor()
	return store
}

func (s *sessionStore) put(session *liveSession) {
	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()
}

func (s *sessionStore) get(id string) (*liveSession, bool) {
	s.mu.RLock()
	session, ok := s.sessions[id]
	s.mu.RUnlock()
	return session, ok
}

func (s *sessionStore) remove(id string) {
	s.mu.Lock()
	if session, ok := s.sessions[id]; ok {
		session.stopTimer()
		delete(s.sessions, id)
	}
	s.mu.Unlock()
}

// startCountdown drives the session's engine clock once per tick interval.
// onExpire runs at most once, when the countdown forces submission.
func (s *sessionStore) startCountdown(session *liveSession, onExpire func(*liveSession, *engine.Result)) {
	go func() {
		ticker := time.NewTicker(s.tickInterval)
		defer ticker.Stop()
		for {
			select {
			case <-session.stop:
				return
			case <-ticker.C:
				session.mu.Lock()
				result := session.Engine.Tick()
				if result != nil && onExpire != nil {
					onExpire(session, result)
				}
				submitted := session.Engine.Submitted()
				session.mu.Unlock()
				if submitted {
					session.stopTimer()
					return
				}
			}
		}
	}()
}

// janitor evicts sessions past their TTL. Unsubmitted expired sessions are
// simply abandoned, matching the product behavior for closed tabs.
func (s *sessionStore) janitor() {
	interval := s.ttl / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		cutoff := s.now().Add(-s.ttl)
		s.mu.Lock()
		for id, session := range s.sessions {
			if session.CreatedAt.Before(cutoff) {
				session.stopTimer()
				delete(s.sessions, id)
			}
		}
		s.mu.Unlock()
	}
}
