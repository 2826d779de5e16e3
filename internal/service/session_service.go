package service

import (
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/benbeisheim/chessrules/internal/engine"
	"github.com/benbeisheim/chessrules/internal/fen"
	"github.com/benbeisheim/chessrules/internal/model"
	"github.com/benbeisheim/chessrules/internal/store"
)

// ErrDepthTooLarge rejects perft requests beyond the configured cap.
var ErrDepthTooLarge = fmt.Errorf("%w: perft depth too large", model.ErrStateMisuse)

type CreateRequest struct {
	FEN     string           `json:"fen,omitempty"`
	Players model.PlayerInfo `json:"players"`
}

type PerftResult struct {
	Depth  int                  `json:"depth"`
	Nodes  uint64               `json:"nodes"`
	Divide []engine.DivideEntry `json:"divide"`
}

type SessionService struct {
	sessionManager *SessionManager
	maxPerftDepth  int
}

func NewSessionService(sessionManager *SessionManager, maxPerftDepth int) *SessionService {
	return &SessionService{
		sessionManager: sessionManager,
		maxPerftDepth:  maxPerftDepth,
	}
}

func (ss *SessionService) CreateSession(req CreateRequest) (SessionView, error) {
	start := req.FEN
	if start == "" {
		start = fen.StartPos
	}
	rec := &store.SessionRecord{
		ID:      uuid.New().String(),
		FEN:     start,
		Players: req.Players,
		Moves:   []store.MoveRecord{},
	}
	session, err := ss.sessionManager.CreateSession(rec)
	if err != nil {
		return SessionView{}, fmt.Errorf("create session: %w", err)
	}
	log.Printf("created session %s", rec.ID)
	return session.View(), nil
}

func (ss *SessionService) GetSession(id string) (SessionView, error) {
	session, err := ss.sessionManager.GetSession(id)
	if err != nil {
		return SessionView{}, err
	}
	return session.View(), nil
}

func (ss *SessionService) LegalMoves(id, square string) ([]MoveView, error) {
	session, err := ss.sessionManager.GetSession(id)
	if err != nil {
		return nil, err
	}
	return session.LegalMoves(square)
}

func (ss *SessionService) AllLegalMoves(id string) ([]MoveView, error) {
	session, err := ss.sessionManager.GetSession(id)
	if err != nil {
		return nil, err
	}
	return session.AllLegalMoves(), nil
}

// HandleMove applies, persists and broadcasts one move.
func (ss *SessionService) HandleMove(id string, req MoveRequest) (SessionView, error) {
	session, err := ss.sessionManager.GetSession(id)
	if err != nil {
		return SessionView{}, err
	}
	view, err := session.MakeMove(req)
	if err != nil {
		return SessionView{}, err
	}
	session.Broadcast(view)
	return view, nil
}

// HandleUndo reverts the last move. Undo with no history returns the
// unchanged view.
func (ss *SessionService) HandleUndo(id string) (SessionView, bool, error) {
	session, err := ss.sessionManager.GetSession(id)
	if err != nil {
		return SessionView{}, false, err
	}
	view, ok, err := session.Undo()
	if err != nil || !ok {
		return view, false, err
	}
	session.Broadcast(view)
	return view, true, nil
}

func (ss *SessionService) Perft(id string, depth int) (PerftResult, error) {
	if depth < 1 || depth > ss.maxPerftDepth {
		return PerftResult{}, fmt.Errorf("%w: %d (max %d)", ErrDepthTooLarge, depth, ss.maxPerftDepth)
	}
	session, err := ss.sessionManager.GetSession(id)
	if err != nil {
		return PerftResult{}, err
	}
	nodes, divide, err := session.Perft(depth)
	if err != nil {
		return PerftResult{}, err
	}
	return PerftResult{Depth: depth, Nodes: nodes, Divide: divide}, nil
}

func (ss *SessionService) DeleteSession(id string) error {
	if err := ss.sessionManager.DeleteSession(id); err != nil {
		return err
	}
	log.Printf("deleted session %s", id)
	return nil
}

// RegisterConnection subscribes sub and sends the current view to it alone.
func (ss *SessionService) RegisterConnection(id string, sub Subscriber) error {
	session, err := ss.sessionManager.GetSession(id)
	if err != nil {
		return err
	}
	session.Subscribe(sub)
	return session.Send(sub, session.View())
}

func (ss *SessionService) UnregisterConnection(id string, sub Subscriber) {
	session, err := ss.sessionManager.GetSession(id)
	if err != nil {
		return
	}
	session.Unsubscribe(sub)
}
