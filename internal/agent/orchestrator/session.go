package orchestrator

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"voice-assistant/internal/history"
	"voice-assistant/internal/model"
)

// session serializes utterances and owns one history buffer.
type session struct {
	mu      sync.Mutex
	history *history.Buffer
}

// sessionStore hands out sessions by id. Idle sessions expire after ttl and the
// least recently used one is evicted when the store is full.
type sessionStore struct {
	mu          sync.Mutex
	cache       *expirable.LRU[string, *session]
	historySize int
}

func newSessionStore(maxSessions int, ttl time.Duration, historySize int) *sessionStore {
	return &sessionStore{
		cache:       expirable.NewLRU[string, *session](maxSessions, nil, ttl),
		historySize: historySize,
	}
}

// get returns the session for id, creating it on first use.
func (s *sessionStore) get(id string) *session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.cache.Get(id); ok {
		return sess
	}
	sess := &session{history: history.New(s.historySize)}
	s.cache.Add(id, sess)
	return sess
}

// peek returns the history of an existing session without creating one.
func (s *sessionStore) peek(id string) ([]model.Turn, bool) {
	sess, ok := s.cache.Peek(id)
	if !ok {
		return nil, false
	}
	return sess.history.Recent(sess.history.Cap()), true
}

func (s *sessionStore) remove(id string) {
	s.cache.Remove(id)
}
