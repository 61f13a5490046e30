// Package cache holds per session detection results
package cache

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"stencil/internal/services/detect/domain"
)

// DefaultMaxSessions bounds how many sessions the manager tracks at once
const DefaultMaxSessions = 1024

// Session caches detection results for one client session, keyed by
// endpoint name. Failures and timeouts are stored too so a failing
// dependency is not hammered repeatedly within the same session
type Session struct {
	mu      sync.RWMutex
	results map[string]domain.Result
}

func newSession() *Session {
	return &Session{results: make(map[string]domain.Result)}
}

// Get returns the stored result for an endpoint
func (s *Session) Get(endpoint string) (domain.Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.results[endpoint]
	return r, ok
}

// Set stores a result under the endpoint name, overwriting any prior entry
func (s *Session) Set(endpoint string, r domain.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[endpoint] = r
}

// Clear drops everything this session has cached
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.results)
}

// Manager maps session ids to their caches with an LRU bound so abandoned
// sessions fall out instead of accumulating for the life of the process
type Manager struct {
	mu  sync.Mutex
	lru *lru.Cache[string, *Session]
}

// NewManager builds a Manager bounded to maxSessions
func NewManager(maxSessions int) *Manager {
	if maxSessions <= 0 {
		maxSessions = DefaultMaxSessions
	}
	c, err := lru.New[string, *Session](maxSessions)
	if err != nil {
		// lru.New fails only on a non positive size, guarded above
		panic(err)
	}
	return &Manager{lru: c}
}

// For returns the session's cache, creating it on first use
func (m *Manager) For(sessionID string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.lru.Get(sessionID); ok {
		return s
	}
	s := newSession()
	m.lru.Add(sessionID, s)
	return s
}

// Clear empties one session's cache. The entry itself stays so a live
// session keeps its LRU slot
func (m *Manager) Clear(sessionID string) {
	m.mu.Lock()
	s, ok := m.lru.Get(sessionID)
	m.mu.Unlock()
	if ok {
		s.Clear()
	}
}

// InvokeBlocked reports whether a permission denied detection blocks
// invoke passthrough for this session endpoint pair. Peek keeps this a
// pure read: guard checks must not refresh LRU recency
func (m *Manager) InvokeBlocked(sessionID, endpointName string) bool {
	m.mu.Lock()
	s, ok := m.lru.Peek(sessionID)
	m.mu.Unlock()
	if !ok {
		return false
	}
	r, ok := s.Get(endpointName)
	return ok && r.PermissionDenied
}
