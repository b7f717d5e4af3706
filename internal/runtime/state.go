package runtime

import (
	"sync"
	"time"

	"github.com/autoearnpro/autoearnpro/internal/store"
)

// SessionState represents the current state of a campaign execution.
type SessionState struct {
	SessionID     string
	CurrentCycle  int
	TotalTasks    int
	TotalEarnings float64
	Status        string
	StartedAt     time.Time
	LastUpdatedAt time.Time
}

// StateManager handles session state tracking and persistence.
// It provides thread-safe access to session state and manages
// the lifecycle of session data.
type StateManager struct {
	mu       sync.RWMutex
	store    store.Storage
	sessions map[string]*SessionState
}

// NewStateManager creates a new state manager.
func NewStateManager(s store.Storage) *StateManager {
	return &StateManager{
		store:    s,
		sessions: make(map[string]*SessionState),
	}
}

// InitSession initializes a new session state.
func (sm *StateManager) InitSession(sessionID string) *SessionState {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	state := &SessionState{
		SessionID:     sessionID,
		Status:        "initialized",
		StartedAt:     time.Now(),
		LastUpdatedAt: time.Now(),
	}

	sm.sessions[sessionID] = state
	return state
}

// GetState returns the current state for a session.
func (sm *StateManager) GetState(sessionID string) *SessionState {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.sessions[sessionID]
}

// IncrementCycle increments the cycle counter and returns the new value.
func (sm *StateManager) IncrementCycle(sessionID string) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if state, ok := sm.sessions[sessionID]; ok {
		state.CurrentCycle++
		state.LastUpdatedAt = time.Now()
		return state.CurrentCycle
	}
	return 0
}

// AddUsage adds dispatched tasks and earned amounts to the session totals.
func (sm *StateManager) AddUsage(sessionID string, tasks int, earnings float64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if state, ok := sm.sessions[sessionID]; ok {
		state.TotalTasks += tasks
		state.TotalEarnings += earnings
		state.LastUpdatedAt = time.Now()
	}
}

// GetUsage returns the current task and earnings totals for a session.
func (sm *StateManager) GetUsage(sessionID string) (tasks int, earnings float64) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if state, ok := sm.sessions[sessionID]; ok {
		return state.TotalTasks, state.TotalEarnings
	}
	return 0, 0
}

// SetStatus updates the session status.
func (sm *StateManager) SetStatus(sessionID, status string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if state, ok := sm.sessions[sessionID]; ok {
		state.Status = status
		state.LastUpdatedAt = time.Now()
	}
}

// GetStatus returns the current session status.
func (sm *StateManager) GetStatus(sessionID string) string {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if state, ok := sm.sessions[sessionID]; ok {
		return state.Status
	}
	return ""
}

// PersistSession saves the session state to the store.
func (sm *StateManager) PersistSession(sessionID string) error {
	sm.mu.RLock()
	state, ok := sm.sessions[sessionID]
	sm.mu.RUnlock()

	if !ok {
		return nil
	}

	session, err := sm.store.GetSession(sessionID)
	if err != nil {
		return err
	}

	session.Status = state.Status
	session.UpdatedAt = state.LastUpdatedAt

	return sm.store.UpdateSession(session)
}

// CleanupSession removes the session state from memory.
func (sm *StateManager) CleanupSession(sessionID string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	delete(sm.sessions, sessionID)
}
