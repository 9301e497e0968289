package session

import (
	"sync"
	"time"

	"destek/internal/domain"
)

// State is one session's conversation state. Values returned by the
// Manager are snapshots; only the Manager mutates the stored copy.
type State struct {
	SessionID     string
	TurnCount     int
	LastIntent    domain.IntentLabel
	LastSentiment domain.SentimentLabel
	StartedAt     time.Time
}

type entry struct {
	// turn serializes whole-request handling for one session via Do.
	// Kept separate from the manager map lock so holding it does not
	// block unrelated sessions.
	turn  sync.Mutex
	state State
}

// Manager owns per-session conversation state. It is the only shared
// mutable resource in the pipeline: state is created on first contact,
// mutated by Update, and discarded by Reset. Idle expiry is not enforced
// here; external collaborators call Reset when a session should end.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*entry
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*entry)}
}

func (m *Manager) entryFor(sessionID string) *entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.sessions[sessionID]
	if !ok {
		e = &entry{state: State{SessionID: sessionID, StartedAt: time.Now()}}
		m.sessions[sessionID] = e
	}
	return e
}

// Do runs fn while holding the session's turn lock, so requests for the
// same session apply in arrival order while other sessions proceed
// concurrently. fn may call GetOrCreate, Update and Reset.
func (m *Manager) Do(sessionID string, fn func()) {
	e := m.entryFor(sessionID)
	e.turn.Lock()
	defer e.turn.Unlock()
	fn()
}

// GetOrCreate returns a snapshot of the session's state, creating it at
// turn 0 on first contact.
func (m *Manager) GetOrCreate(sessionID string) State {
	e := m.entryFor(sessionID)
	m.mu.RLock()
	defer m.mu.RUnlock()
	return e.state
}

// Update advances the session one turn and records the latest intent and
// sentiment. An unknown session id is created implicitly, so the first
// update of a session reports turn 1.
func (m *Manager) Update(sessionID string, intent domain.IntentLabel, sentiment domain.SentimentLabel) State {
	e := m.entryFor(sessionID)
	m.mu.Lock()
	defer m.mu.Unlock()
	e.state.TurnCount++
	e.state.LastIntent = intent
	e.state.LastSentiment = sentiment
	return e.state
}

// Reset discards the session's state. Resetting an unknown session id is
// a no-op, not an error.
func (m *Manager) Reset(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
}

// ActiveSessions reports how many sessions currently hold state.
func (m *Manager) ActiveSessions() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
