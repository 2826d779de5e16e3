package fen

import (
	"errors"
	"testing"

	"github.com/benbeisheim/chessrules/internal/model"
)

func TestParseStartPos(t *testing.T) {
	setup, err := Parse(StartPos)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if n := len(setup.Board.FindPieces(model.AllKinds, model.BothColors)); n != 32 {
		t.Fatalf("start position has %d pieces, want 32", n)
	}
	for _, located := range setup.Board.FindPieces(model.AllKinds, model.BothColors) {
		want := model.NewStandardBoard().At(located.Position)
		if want == nil || want.Type != located.Piece.Type || want.Color != located.Piece.Color {
			t.Fatalf("%s holds %s %s", located.Position, located.Piece.Color, located.Piece.Type)
		}
		if located.Piece.HasMoved() {
			t.Fatalf("%s marked as moved in the start position", located.Position)
		}
	}
	if setup.SideToMove != model.White || setup.EnPassant() != model.NoFile ||
		setup.HalfMoveClock != 0 || setup.FullMoveCounter != 1 {
		t.Fatalf("setup = %+v", setup)
	}
}

func TestParseFields(t *testing.T) {
	setup, err := Parse("rnbqkbnr/pp1ppppp/8/2p5/4P3/8/PPPP1PPP/RNBQKBNR w KQkq c6 0 2")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if setup.EnPassant() != 2 {
		t.Errorf("en passant file = %d, want 2", setup.EnPassant())
	}
	if setup.FullMoveCounter != 2 {
		t.Errorf("full move = %d, want 2", setup.FullMoveCounter)
	}
	c5 := setup.Board.At(model.Position{X: 2, Y: 3})
	if c5 == nil || c5.Type != model.Pawn || !c5.HasMoved() {
		t.Error("advanced pawn on c5 should count as moved")
	}
}

func TestParseFourFields(t *testing.T) {
	setup, err := Parse("4k3/8/8/8/8/8/8/4K3 b - -")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if setup.SideToMove != model.Black || setup.FullMoveCounter != 1 {
		t.Fatalf("setup = %+v", setup)
	}
}

func TestCastlingRightsBecomeMoveCounts(t *testing.T) {
	tests := []struct {
		rights string
		moved  []model.Position
	}{
		{"KQkq", nil},
		{"Qkq", []model.Position{{X: 7, Y: 7}}},
		{"kq", []model.Position{{X: 4, Y: 7}}},
		{"KQk", []model.Position{{X: 0, Y: 0}}},
		{"-", []model.Position{{X: 4, Y: 7}, {X: 4, Y: 0}}},
	}
	for _, tc := range tests {
		t.Run(tc.rights, func(t *testing.T) {
			setup, err := Parse("r3k2r/8/8/8/8/8/8/R3K2R w " + tc.rights + " - 0 1")
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			moved := map[model.Position]bool{}
			for _, pos := range tc.moved {
				moved[pos] = true
			}
			for _, located := range setup.Board.FindPieces(model.AllKinds, model.BothColors) {
				if located.Piece.HasMoved() != moved[located.Position] {
					t.Errorf("%s moved = %v, want %v", located.Position, located.Piece.HasMoved(), moved[located.Position])
				}
			}
		})
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, bad := range []string{
		"",
		"not a fen",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - x 1",
	} {
		if _, err := Parse(bad); !errors.Is(err, model.ErrInvalidPosition) {
			t.Errorf("Parse(%q): err = %v, want ErrInvalidPosition", bad, err)
		}
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	for _, s := range []string{
		StartPos,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"rnbqkbnr/pp1ppppp/8/2p5/4P3/8/PPPP1PPP/RNBQKBNR w KQkq c6 0 2",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 b - - 3 40",
	} {
		setup, err := Parse(s)
		if err != nil {
			t.Fatalf("Parse(%q): %v", s, err)
		}
		rights := rightsOf(setup.Board)
		got := Encode(setup.Board, setup.SideToMove, rights, setup.EnPassant(), setup.HalfMoveClock, setup.FullMoveCounter)
		if got != s {
			t.Errorf("Encode = %q\n want %q", got, s)
		}
	}
}

func rightsOf(board *model.Board) model.CastlingRights {
	var rights model.CastlingRights
	for _, color := range []model.Color{model.White, model.Black} {
		rank := color.HomeRank()
		king := board.At(model.Position{X: 4, Y: rank})
		if king == nil || king.Type != model.King || king.HasMoved() {
			continue
		}
		for file, side := range map[int]model.CastlingSide{7: model.KingSide, 0: model.QueenSide} {
			if rook := board.At(model.Position{X: file, Y: rank}); rook != nil && rook.Type == model.Rook && !rook.HasMoved() {
				rights[model.CastlingIndex(color, side)] = true
			}
		}
	}
	return rights
}
