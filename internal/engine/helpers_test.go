package engine

import (
	"testing"

	"github.com/benbeisheim/chessrules/internal/fen"
	"github.com/benbeisheim/chessrules/internal/model"
)

func newGame(t *testing.T) *GameState {
	t.Helper()
	state, err := InitGame(model.PlayerInfo{}, nil)
	if err != nil {
		t.Fatalf("InitGame: %v", err)
	}
	return state
}

func fromFEN(t *testing.T, s string) *GameState {
	t.Helper()
	setup, err := fen.Parse(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	state, err := InitGame(model.PlayerInfo{}, setup)
	if err != nil {
		t.Fatalf("InitGame(%q): %v", s, err)
	}
	return state
}

func sq(t *testing.T, s string) model.Position {
	t.Helper()
	pos, err := model.ParsePosition(s)
	if err != nil {
		t.Fatalf("square %q: %v", s, err)
	}
	return pos
}

func play(t *testing.T, state *GameState, moves ...string) {
	t.Helper()
	for _, s := range moves {
		m, err := model.ParseMove(s)
		if err != nil {
			t.Fatalf("parse move %q: %v", s, err)
		}
		if _, err := MoveOrError(state, m, ""); err != nil {
			t.Fatalf("play %s: %v", s, err)
		}
	}
}

type pieceImage struct {
	id        int
	kind      model.PieceType
	color     model.Color
	moveCount int
}

// image captures everything undo must restore.
type image struct {
	board      [64]pieceImage
	historyLen int
	hash       uint64
	rights     model.CastlingRights
	epFile     int
	halfMove   int
	fullMove   int
	check      bool
	side       model.Color
}

func snapshot(state *GameState) image {
	img := image{
		historyLen: len(state.MoveHistory),
		hash:       state.Hash,
		rights:     state.CastlingRights,
		epFile:     state.EnPassantFile,
		halfMove:   state.HalfMoveClock,
		fullMove:   state.FullMoveCounter,
		check:      state.CheckStatus,
		side:       state.SideToMove,
	}
	for _, located := range state.Board.FindPieces(model.AllKinds, model.BothColors) {
		p := located.Piece
		img.board[located.Position.Index()] = pieceImage{id: p.ID, kind: p.Type, color: p.Color, moveCount: p.MoveCount}
	}
	return img
}
