package session

import (
	"sync"

	userRepo "oneday/database/repository/user"
	"oneday/services/chat"
	"oneday/services/store"
	"oneday/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Manager owns the live sessions. It also resolves conversation ids for the
// reply schedulers, since a session's conversation id is the session id.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	users    userRepo.UserRepository
	deps     Deps
}

// NewManager builds a manager. Without a reply scheduler in deps, replies are
// delivered in process.
func NewManager(users userRepo.UserRepository, deps Deps) *Manager {
	m := &Manager{
		sessions: make(map[string]*Session),
		users:    users,
		deps:     deps.withDefaults(),
	}
	if m.deps.Replies == nil {
		m.deps.Replies = chat.NewTimerScheduler(m)
	}
	return m
}

// StartDemo opens a session backed by an in-memory store.
func (m *Manager) StartDemo() *Session {
	return m.start(store.NewDemoStore(m.deps.Now()))
}

// StartPersisted opens a session for a registered user.
func (m *Manager) StartPersisted(userID string) *Session {
	return m.start(store.NewPersistedStore(m.users, userID))
}

func (m *Manager) start(st store.SessionStore) *Session {
	s := New(uuid.NewString(), st, m.deps)
	m.mu.Lock()
	m.sessions[s.ID()] = s
	m.mu.Unlock()

	utils.ActiveSessions.Inc()
	m.deps.Logger.Info("session started", zap.String("session", s.ID()), zap.Bool("demo", s.Demo()))
	return s
}

func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// End closes and forgets the session. It reports whether it existed.
func (m *Manager) End(id string) bool {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return false
	}
	s.Close()
	utils.ActiveSessions.Dec()
	m.deps.Logger.Info("session ended", zap.String("session", id))
	return true
}

// Conversation implements chat.Registry.
func (m *Manager) Conversation(id string) (*chat.Conversation, bool) {
	s, ok := m.Get(id)
	if !ok {
		return nil, false
	}
	return s.Conversation(), true
}

// Close ends every session.
func (m *Manager) Close() {
	m.mu.RLock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	m.mu.RUnlock()
	for _, id := range ids {
		m.End(id)
	}
}
