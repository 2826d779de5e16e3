package service

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/benbeisheim/chessrules/internal/engine"
	"github.com/benbeisheim/chessrules/internal/fen"
	"github.com/benbeisheim/chessrules/internal/model"
	"github.com/benbeisheim/chessrules/internal/store"
	"github.com/benbeisheim/chessrules/internal/ws"
)

// Subscriber receives session views. *websocket.Conn satisfies it.
type Subscriber interface {
	WriteJSON(v interface{}) error
}

// SessionConnections are the subscribers watching one session.
type SessionConnections struct {
	subscribers map[Subscriber]struct{}
	mu          sync.RWMutex
}

// Session is one rules-engine game plus the record that rebuilds it. Every
// change is saved to the recorder before the session lock is released.
type Session struct {
	ID          string
	mu          sync.Mutex
	state       *engine.GameState
	record      *store.SessionRecord
	recorder    Recorder
	closed      bool
	connections *SessionConnections
}

func newSession(rec *store.SessionRecord, recorder Recorder) (*Session, error) {
	setup, err := fen.Parse(rec.FEN)
	if err != nil {
		return nil, err
	}
	state, err := engine.InitGame(rec.Players, setup)
	if err != nil {
		return nil, err
	}
	return &Session{
		ID:       rec.ID,
		state:    state,
		record:   rec,
		recorder: recorder,
		connections: &SessionConnections{
			subscribers: make(map[Subscriber]struct{}),
		},
	}, nil
}

// replay applies the record's moves through the strict path.
func (s *Session) replay(moves []store.MoveRecord) error {
	for i, m := range moves {
		move, err := model.ParseMove(m.Move)
		if err != nil {
			return fmt.Errorf("replay move %d: %w", i+1, err)
		}
		if _, err := engine.MoveOrError(s.state, move, m.Promotion); err != nil {
			return fmt.Errorf("replay move %d: %w", i+1, err)
		}
	}
	return nil
}

func (s *Session) View() SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return newSessionView(s.ID, s.state)
}

func (s *Session) LegalMoves(square string) ([]MoveView, error) {
	pos, err := model.ParsePosition(square)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	entries, err := engine.LegalMoves(s.state, pos)
	if err != nil {
		return nil, err
	}
	return newMoveViews(entries), nil
}

func (s *Session) AllLegalMoves() []MoveView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return newMoveViews(engine.AllLegalMoves(s.state))
}

// MakeMove applies a client move and saves the record. A move that cannot be
// saved is taken back.
func (s *Session) MakeMove(req MoveRequest) (SessionView, error) {
	move, err := model.ParseMove(req.Move)
	if err != nil {
		return SessionView{}, err
	}
	var promotion model.PieceType
	if req.Promotion != "" {
		if promotion, err = model.ParsePromotion(req.Promotion); err != nil {
			return SessionView{}, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return SessionView{}, fmt.Errorf("%w: %s", ErrSessionNotFound, s.ID)
	}
	if _, err := engine.MoveOrError(s.state, move, promotion); err != nil {
		return SessionView{}, err
	}
	s.record.Moves = append(s.record.Moves, store.MoveRecord{Move: move.String(), Promotion: promotion})
	if err := s.persist(); err != nil {
		s.record.Moves = s.record.Moves[:len(s.record.Moves)-1]
		if _, undoErr := engine.UndoLastMove(s.state); undoErr != nil {
			return SessionView{}, fmt.Errorf("%w (rollback: %v)", err, undoErr)
		}
		return SessionView{}, err
	}
	return newSessionView(s.ID, s.state), nil
}

// Undo reverts the last move. ok is false when there was nothing to undo. An
// undo that cannot be saved is replayed.
func (s *Session) Undo() (SessionView, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return SessionView{}, false, fmt.Errorf("%w: %s", ErrSessionNotFound, s.ID)
	}
	last := s.state.LastMove()
	ok, err := engine.UndoLastMove(s.state)
	if err != nil || !ok {
		return newSessionView(s.ID, s.state), false, err
	}
	popped := s.record.Moves[len(s.record.Moves)-1]
	s.record.Moves = s.record.Moves[:len(s.record.Moves)-1]
	if err := s.persist(); err != nil {
		s.record.Moves = append(s.record.Moves, popped)
		if redoErr := engine.ApplyMove(s.state, last); redoErr != nil {
			return SessionView{}, false, fmt.Errorf("%w (rollback: %v)", err, redoErr)
		}
		return SessionView{}, false, err
	}
	return newSessionView(s.ID, s.state), true, nil
}

// persist saves the current record. Callers hold s.mu.
func (s *Session) persist() error {
	rec := s.snapshotRecord()
	if err := s.recorder.Save(&rec); err != nil {
		return fmt.Errorf("save session %s: %w", s.ID, err)
	}
	return nil
}

// close removes the record and rejects any later change.
func (s *Session) close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return s.recorder.Delete(s.ID)
}

// Perft runs on a clone; the session lock is held only while cloning.
func (s *Session) Perft(depth int) (uint64, []engine.DivideEntry, error) {
	s.mu.Lock()
	clone := s.state.Clone()
	s.mu.Unlock()

	divide, err := engine.Divide(clone, depth)
	if err != nil {
		return 0, nil, err
	}
	var total uint64
	for _, d := range divide {
		total += d.Nodes
	}
	return total, divide, nil
}

func (s *Session) snapshotRecord() store.SessionRecord {
	rec := *s.record
	rec.Moves = append([]store.MoveRecord(nil), s.record.Moves...)
	return rec
}

func (s *Session) Subscribe(sub Subscriber) {
	s.connections.mu.Lock()
	s.connections.subscribers[sub] = struct{}{}
	s.connections.mu.Unlock()
}

func (s *Session) Unsubscribe(sub Subscriber) {
	s.connections.mu.Lock()
	defer s.connections.mu.Unlock()
	delete(s.connections.subscribers, sub)
}

func (s *Session) subscriberCount() int {
	s.connections.mu.RLock()
	defer s.connections.mu.RUnlock()
	return len(s.connections.subscribers)
}

func stateMessage(view SessionView) (ws.Message, error) {
	payload, err := json.Marshal(view)
	if err != nil {
		return ws.Message{}, err
	}
	return ws.Message{Type: ws.MessageTypeState, Payload: json.RawMessage(payload)}, nil
}

// Send writes view to sub alone. A subscriber that fails to receive is
// dropped.
func (s *Session) Send(sub Subscriber, view SessionView) error {
	msg, err := stateMessage(view)
	if err != nil {
		return fmt.Errorf("session %s: marshal view: %w", s.ID, err)
	}
	if err := sub.WriteJSON(msg); err != nil {
		s.Unsubscribe(sub)
		return fmt.Errorf("session %s: send view: %w", s.ID, err)
	}
	return nil
}

// Broadcast sends view to every subscriber; a subscriber that fails to
// receive is dropped.
func (s *Session) Broadcast(view SessionView) {
	msg, err := stateMessage(view)
	if err != nil {
		log.Printf("session %s: marshal view: %v", s.ID, err)
		return
	}

	s.connections.mu.RLock()
	active := make([]Subscriber, 0, len(s.connections.subscribers))
	for sub := range s.connections.subscribers {
		active = append(active, sub)
	}
	s.connections.mu.RUnlock()

	for _, sub := range active {
		if err := sub.WriteJSON(msg); err != nil {
			log.Printf("session %s: dropping subscriber: %v", s.ID, err)
			s.Unsubscribe(sub)
		}
	}
}
