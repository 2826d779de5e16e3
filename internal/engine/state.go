// Package engine implements chess move generation, legality and reversible
// move application over a model.Board.
package engine

import (
	"fmt"

	"github.com/benbeisheim/chessrules/internal/model"
)

// GameState is mutated only by ApplyMove and UndoLastMove. It is not safe for
// concurrent use; clone it to explore a branch.
type GameState struct {
	Players         model.PlayerInfo
	SideToMove      model.Color
	Board           *model.Board
	MoveHistory     []*model.HistoryEntry
	CastlingRights  model.CastlingRights
	EnPassantFile   int
	HalfMoveClock   int
	FullMoveCounter int
	Hash            uint64
	CheckStatus     bool

	hashed bool
	cache  *MoveCache
}

// InitGame builds a state from setup; nil means the standard position with
// white to move.
func InitGame(players model.PlayerInfo, setup *model.Setup) (*GameState, error) {
	if setup == nil {
		setup = model.StandardSetup()
	}
	board := setup.Board
	if board == nil {
		board = model.NewStandardBoard()
	}
	side := setup.SideToMove
	if side == "" {
		side = model.White
	}
	if side != model.White && side != model.Black {
		return nil, fmt.Errorf("%w: side to move %q", model.ErrStateMisuse, side)
	}
	epFile := setup.EnPassant()
	if epFile < model.NoFile || epFile > 7 {
		return nil, fmt.Errorf("%w: en passant file %d", model.ErrInvalidPosition, epFile)
	}
	fullMove := setup.FullMoveCounter
	if fullMove < 1 {
		fullMove = 1
	}

	state := &GameState{
		Players:         players,
		SideToMove:      side,
		Board:           board,
		MoveHistory:     make([]*model.HistoryEntry, 0),
		EnPassantFile:   epFile,
		HalfMoveClock:   setup.HalfMoveClock,
		FullMoveCounter: fullMove,
		cache:           NewMoveCache(),
	}
	state.CastlingRights = deriveCastlingRights(board)
	state.CheckStatus = IsKingAttacked(state, side)
	state.ensureHash()
	return state, nil
}

// Cache exposes the state's move cache.
func (s *GameState) Cache() *MoveCache {
	return s.cache
}

func (s *GameState) snapshot() model.PriorState {
	return model.PriorState{
		HalfMoveClock:   s.HalfMoveClock,
		FullMoveCounter: s.FullMoveCounter,
		CheckStatus:     s.CheckStatus,
		CastlingRights:  s.CastlingRights,
		EnPassantFile:   s.EnPassantFile,
	}
}

// LastMove returns the most recently applied entry, or nil.
func (s *GameState) LastMove() *model.HistoryEntry {
	if len(s.MoveHistory) == 0 {
		return nil
	}
	return s.MoveHistory[len(s.MoveHistory)-1]
}

// ShallowClone copies scalars and the board matrix but shares pieces and
// history entries. The clone must not be passed to ApplyMove.
func (s *GameState) ShallowClone() *GameState {
	cp := *s
	cp.Board = s.Board.Clone()
	cp.MoveHistory = append([]*model.HistoryEntry(nil), s.MoveHistory...)
	cp.cache = NewMoveCache()
	return &cp
}

// Clone returns a fully independent state: pieces are copied and history
// entries are remapped onto the copies by piece ID.
func (s *GameState) Clone() *GameState {
	cp := *s
	cp.Board = s.Board.DeepClone()
	cp.cache = NewMoveCache()

	byID := map[int]*model.Piece{}
	for _, located := range cp.Board.FindPieces(model.AllKinds, model.BothColors) {
		byID[located.Piece.ID] = located.Piece
	}
	remap := func(p *model.Piece) *model.Piece {
		if p == nil {
			return nil
		}
		if q, ok := byID[p.ID]; ok {
			return q
		}
		q := *p
		byID[p.ID] = &q
		return &q
	}

	cp.MoveHistory = make([]*model.HistoryEntry, len(s.MoveHistory))
	for i, entry := range s.MoveHistory {
		e := *entry
		e.Piece = remap(entry.Piece)
		e.CapturedPiece = remap(entry.CapturedPiece)
		e.HashKeys = append([]uint64(nil), entry.HashKeys...)
		if entry.Castling != nil {
			c := *entry.Castling
			c.RookPiece = remap(c.RookPiece)
			e.Castling = &c
		}
		if entry.EnPassantCapturedSquare != nil {
			sq := *entry.EnPassantCapturedSquare
			e.EnPassantCapturedSquare = &sq
		}
		cp.MoveHistory[i] = &e
	}
	return &cp
}
