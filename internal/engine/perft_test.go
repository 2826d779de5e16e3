package engine

import (
	"fmt"
	"testing"

	"github.com/dylhunn/dragontoothmg"
)

func TestPerftStartingPosition(t *testing.T) {
	tests := []struct {
		depth    int
		expected uint64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
	}

	for _, tc := range tests {
		t.Run(fmt.Sprintf("depth%d", tc.depth), func(t *testing.T) {
			state := newGame(t)
			got, err := Perft(state, tc.depth)
			if err != nil {
				t.Fatalf("perft: %v", err)
			}
			if got != tc.expected {
				t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
			}
		})
	}
}

// Known node counts for positions that stress castling, en passant and
// promotion.
func TestPerftPositions(t *testing.T) {
	tests := []struct {
		name     string
		fen      string
		depth    int
		expected uint64
	}{
		{"kiwipete", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -", 1, 48},
		{"kiwipete", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -", 2, 2039},
		{"position3", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - -", 1, 14},
		{"position3", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - -", 2, 191},
		{"position3", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - -", 3, 2812},
		{"position4", "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", 1, 6},
		{"position4", "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", 2, 264},
		{"position5", "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8", 1, 44},
		{"position5", "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8", 2, 1486},
		{"enPassantPin", "8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1", 1, 6},
		{"enPassantPin", "8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1", 2, 94},
	}

	for _, tc := range tests {
		t.Run(fmt.Sprintf("%s/depth%d", tc.name, tc.depth), func(t *testing.T) {
			state := fromFEN(t, tc.fen)
			got, err := Perft(state, tc.depth)
			if err != nil {
				t.Fatalf("perft: %v", err)
			}
			if got != tc.expected {
				t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
			}
		})
	}
}

func dragontoothPerft(b *dragontoothmg.Board, depth int) uint64 {
	moves := b.GenerateLegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		unapply := b.Apply(m)
		nodes += dragontoothPerft(b, depth-1)
		unapply()
	}
	return nodes
}

// TestPerftMatchesDragontooth cross-checks against an independent generator.
func TestPerftMatchesDragontooth(t *testing.T) {
	if testing.Short() {
		t.Skip("slow")
	}
	fens := []string{
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	}
	for _, f := range fens {
		t.Run(f, func(t *testing.T) {
			state := fromFEN(t, f)
			b := dragontoothmg.ParseFen(f)
			for depth := 1; depth <= 2; depth++ {
				got, err := Perft(state, depth)
				if err != nil {
					t.Fatalf("perft: %v", err)
				}
				if want := dragontoothPerft(&b, depth); got != want {
					t.Errorf("depth %d: got %d, dragontoothmg %d", depth, got, want)
				}
			}
		})
	}
}

func TestDivideSumsToPerft(t *testing.T) {
	state := newGame(t)
	divide, err := Divide(state, 2)
	if err != nil {
		t.Fatalf("divide: %v", err)
	}
	if len(divide) != 20 {
		t.Fatalf("divide has %d root moves, want 20", len(divide))
	}
	var total uint64
	for _, d := range divide {
		total += d.Nodes
	}
	if total != 400 {
		t.Errorf("divide total = %d, want 400", total)
	}
	if divide[0].Move != "a2a3" {
		t.Errorf("first root move = %s, want a2a3", divide[0].Move)
	}
}
