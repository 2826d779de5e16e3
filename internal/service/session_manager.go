package service

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/benbeisheim/chessrules/internal/store"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExists   = errors.New("session already exists")
)

// Recorder persists session records. *store.Store satisfies it.
type Recorder interface {
	Save(rec *store.SessionRecord) error
	Delete(id string) error
	List() ([]*store.SessionRecord, error)
}

// SessionManager owns the live sessions and mirrors every change into the
// store.
type SessionManager struct {
	sessions map[string]*Session
	store    Recorder
	mu       sync.RWMutex
}

func NewSessionManager(st Recorder) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*Session),
		store:    st,
	}
}

// Restore rebuilds every stored session by replaying its moves. A record that
// no longer replays is skipped and logged.
func (sm *SessionManager) Restore() (int, error) {
	records, err := sm.store.List()
	if err != nil {
		return 0, fmt.Errorf("restore sessions: %w", err)
	}
	sm.mu.Lock()
	defer sm.mu.Unlock()

	restored := 0
	for _, rec := range records {
		moves := rec.Moves
		rec.Moves = nil
		session, err := newSession(rec, sm.store)
		if err == nil {
			err = session.replay(moves)
		}
		if err != nil {
			log.Printf("restore session %s: %v", rec.ID, err)
			continue
		}
		rec.Moves = moves
		sm.sessions[rec.ID] = session
		restored++
	}
	return restored, nil
}

func (sm *SessionManager) CreateSession(rec *store.SessionRecord) (*Session, error) {
	session, err := newSession(rec, sm.store)
	if err != nil {
		return nil, err
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()
	if _, exists := sm.sessions[rec.ID]; exists {
		return nil, fmt.Errorf("%w: %s", ErrSessionExists, rec.ID)
	}
	if err := sm.store.Save(rec); err != nil {
		return nil, fmt.Errorf("save session %s: %w", rec.ID, err)
	}
	sm.sessions[rec.ID] = session
	return session, nil
}

func (sm *SessionManager) GetSession(id string) (*Session, error) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	session, exists := sm.sessions[id]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return session, nil
}

func (sm *SessionManager) DeleteSession(id string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	session, exists := sm.sessions[id]
	if !exists {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	delete(sm.sessions, id)
	if err := session.close(); err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	return nil
}

func (sm *SessionManager) Len() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}
