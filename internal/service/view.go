package service

import (
	"fmt"

	"github.com/benbeisheim/chessrules/internal/engine"
	"github.com/benbeisheim/chessrules/internal/fen"
	"github.com/benbeisheim/chessrules/internal/model"
)

// MoveRequest is the client's move body, shared by REST and websocket.
type MoveRequest struct {
	Move      string `json:"move"`
	Promotion string `json:"promotion,omitempty"`
}

type MoveView struct {
	From      string          `json:"from"`
	To        string          `json:"to"`
	Notation  string          `json:"notation"`
	Type      model.MoveType  `json:"type"`
	Promotion model.PieceType `json:"promotion,omitempty"`
	Captured  model.PieceType `json:"captured,omitempty"`
}

type SessionView struct {
	ID              string           `json:"id"`
	FEN             string           `json:"fen"`
	SideToMove      model.Color      `json:"sideToMove"`
	Status          engine.Outcome   `json:"status"`
	Check           bool             `json:"check"`
	Hash            string           `json:"hash"`
	CastlingRights  string           `json:"castlingRights"`
	HalfMoveClock   int              `json:"halfMoveClock"`
	FullMoveCounter int              `json:"fullMoveCounter"`
	History         []string         `json:"history"`
	Players         model.PlayerInfo `json:"players"`
	CacheHits       int              `json:"cacheHits"`
	CacheMisses     int              `json:"cacheMisses"`
}

func newSessionView(id string, state *engine.GameState) SessionView {
	history := make([]string, 0, len(state.MoveHistory))
	for _, entry := range state.MoveHistory {
		history = append(history, entry.Notation())
	}
	view := SessionView{
		ID:              id,
		FEN:             fen.Encode(state.Board, state.SideToMove, state.CastlingRights, state.EnPassantFile, state.HalfMoveClock, state.FullMoveCounter),
		SideToMove:      state.SideToMove,
		Status:          engine.Status(state),
		Check:           state.CheckStatus,
		Hash:            fmt.Sprintf("%016x", state.Hash),
		CastlingRights:  state.CastlingRights.String(),
		HalfMoveClock:   state.HalfMoveClock,
		FullMoveCounter: state.FullMoveCounter,
		History:         history,
		Players:         state.Players,
	}
	cache := state.Cache()
	view.CacheHits, view.CacheMisses = cache.Hits, cache.Misses
	return view
}

func newMoveViews(entries []*model.HistoryEntry) []MoveView {
	views := make([]MoveView, 0, len(entries))
	for _, entry := range entries {
		v := MoveView{
			From:     entry.Move.Start.String(),
			To:       entry.Move.End.String(),
			Notation: entry.Notation(),
			Type:     entry.Type,
		}
		if entry.Promotion.IsPromotion {
			v.Promotion = entry.Promotion.PromotedTo
		}
		if entry.CapturedPiece != nil {
			v.Captured = entry.CapturedPiece.Type
		}
		views = append(views, v)
	}
	return views
}
