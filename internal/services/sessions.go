package services

import (
	"errors"
	"sync"
	"time"

	"farm-advisor/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrSessionNotFound = errors.New("session not found")

type sessionItem struct {
	state     *models.PageState
	expiresAt time.Time
}

// SessionStore keeps one PageState per visitor. Every read and write hands
// out copies, so callers never share state with the store.
type SessionStore struct {
	mu          sync.RWMutex
	sessions    map[string]*sessionItem
	logger      *zap.Logger
	ttl         time.Duration
	maxSize     int
	defaultLang models.Language
	now         func() time.Time
}

func NewSessionStore(ttl time.Duration, maxSize int, defaultLang models.Language, logger *zap.Logger) *SessionStore {
	return &SessionStore{
		sessions:    make(map[string]*sessionItem),
		logger:      logger,
		ttl:         ttl,
		maxSize:     maxSize,
		defaultLang: defaultLang,
		now:         time.Now,
	}
}

func (s *SessionStore) Create() models.PageState {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.sessions) >= s.maxSize {
		s.evictOldest()
	}

	now := s.now()
	state := models.NewPageState(uuid.NewString(), s.defaultLang, now)
	s.sessions[state.ID] = &sessionItem{
		state:     state,
		expiresAt: now.Add(s.ttl),
	}

	s.logger.Debug("Session created",
		zap.String("session", state.ID),
		zap.Time("expires_at", now.Add(s.ttl)))

	return state.Clone()
}

func (s *SessionStore) Get(id string) (models.PageState, bool) {
	s.mu.RLock()
	item, exists := s.sessions[id]
	if !exists {
		s.mu.RUnlock()
		return models.PageState{}, false
	}
	expired := s.now().After(item.expiresAt)
	state := item.state.Clone()
	s.mu.RUnlock()

	if expired {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
		return models.PageState{}, false
	}

	return state, true
}

// GetOrCreate returns the session for id, starting a fresh one if id is
// unknown or expired.
func (s *SessionStore) GetOrCreate(id string) models.PageState {
	if id != "" {
		if state, ok := s.Get(id); ok {
			return state
		}
	}
	return s.Create()
}

// Update applies fn to the stored state under the store lock and refreshes the
// session's expiry.
func (s *SessionStore) Update(id string, fn func(*models.PageState)) (models.PageState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, exists := s.sessions[id]
	now := s.now()
	if !exists || now.After(item.expiresAt) {
		delete(s.sessions, id)
		return models.PageState{}, ErrSessionNotFound
	}

	fn(item.state)
	item.state.UpdatedAt = now
	item.expiresAt = now.Add(s.ttl)

	return item.state.Clone(), nil
}

// TakeNotice clears and returns the pending notice of a session.
func (s *SessionStore) TakeNotice(id string) *models.Notice {
	var notice *models.Notice
	_, _ = s.Update(id, func(p *models.PageState) {
		notice = p.Notice
		p.Notice = nil
	})
	return notice
}

func (s *SessionStore) evictOldest() {
	var oldestID string
	var oldestTime time.Time

	for id, item := range s.sessions {
		if oldestID == "" || item.expiresAt.Before(oldestTime) {
			oldestID = id
			oldestTime = item.expiresAt
		}
	}

	if oldestID != "" {
		delete(s.sessions, oldestID)
		s.logger.Debug("Evicted oldest session", zap.String("session", oldestID))
	}
}

// Sweep drops expired sessions and reports how many were removed.
func (s *SessionStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	expiredCount := 0

	for id, item := range s.sessions {
		if now.After(item.expiresAt) {
			delete(s.sessions, id)
			expiredCount++
		}
	}

	if expiredCount > 0 {
		s.logger.Debug("Swept expired sessions", zap.Int("count", expiredCount))
	}

	return expiredCount
}

func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *SessionStore) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	submitted := 0
	for _, item := range s.sessions {
		if item.state.Submitted {
			submitted++
		}
	}

	return map[string]interface{}{
		"sessions":           len(s.sessions),
		"submitted_sessions": submitted,
		"max_size":           s.maxSize,
		"ttl":                s.ttl.String(),
	}
}
