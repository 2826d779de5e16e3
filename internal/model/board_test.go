package model

import (
	"errors"
	"testing"
)

func TestStandardBoardLayout(t *testing.T) {
	board := NewStandardBoard()
	if n := len(board.FindPieces(AllKinds, BothColors)); n != 32 {
		t.Fatalf("standard board has %d pieces, want 32", n)
	}
	if n := len(board.FindPieces([]PieceType{Pawn}, White)); n != 8 {
		t.Fatalf("white has %d pawns, want 8", n)
	}
	king, ok := board.FindKing(White)
	if !ok || king != (Position{X: 4, Y: 7}) {
		t.Fatalf("white king at %v, want e1", king)
	}
	if p := board.At(Position{X: 3, Y: 0}); p == nil || p.Type != Queen || p.Color != Black {
		t.Fatalf("d8 holds %+v, want the black queen", p)
	}

	ids := map[int]bool{}
	for _, located := range board.FindPieces(AllKinds, BothColors) {
		if located.Piece.ID == 0 || ids[located.Piece.ID] {
			t.Fatalf("piece on %v has id %d", located.Position, located.Piece.ID)
		}
		ids[located.Piece.ID] = true
	}
}

func TestCheckedAccessRejectsOffBoard(t *testing.T) {
	board := NewEmptyBoard()
	off := Position{X: -1, Y: 3}
	if _, err := board.GetPiece(off); !errors.Is(err, ErrInvalidPosition) {
		t.Errorf("GetPiece: err = %v", err)
	}
	if _, err := board.Place(NewPiece(Rook, White), off); !errors.Is(err, ErrInvalidPosition) {
		t.Errorf("Place: err = %v", err)
	}
	if _, err := board.Remove(Position{X: 0, Y: 8}); !errors.Is(err, ErrInvalidPosition) {
		t.Errorf("Remove: err = %v", err)
	}
	if _, err := board.Move(Move{Start: Position{}, End: off}); !errors.Is(err, ErrInvalidPosition) {
		t.Errorf("Move: err = %v", err)
	}
	if board.At(off) != nil {
		t.Error("At off the board should read as empty")
	}
}

func TestPlaceMoveRemove(t *testing.T) {
	board := NewEmptyBoard()
	a1, a8 := Position{X: 0, Y: 7}, Position{X: 0, Y: 0}
	rook := NewPiece(Rook, White)
	if prior, err := board.Place(rook, a1); err != nil || prior != nil {
		t.Fatalf("Place: prior=%v err=%v", prior, err)
	}
	if ok, err := board.Move(Move{Start: a8, End: a1}); ok || err != nil {
		t.Fatalf("moving from an empty square: ok=%v err=%v", ok, err)
	}
	if ok, err := board.Move(Move{Start: a1, End: a8}); !ok || err != nil {
		t.Fatalf("Move: ok=%v err=%v", ok, err)
	}
	if occupied, _ := board.IsOccupied(a1); occupied {
		t.Fatal("a1 still occupied after the move")
	}
	if got, _ := board.Remove(a8); got != rook {
		t.Fatalf("Remove returned %v, want the rook", got)
	}
	if n := len(board.FindPieces(AllKinds, BothColors)); n != 0 {
		t.Fatalf("%d pieces left", n)
	}
}

func TestClones(t *testing.T) {
	board := NewStandardBoard()
	e2, e4 := Position{X: 4, Y: 6}, Position{X: 4, Y: 4}

	shallow := board.Clone()
	shallow.Move(Move{Start: e2, End: e4})
	if board.At(e2) == nil {
		t.Fatal("moving on a shallow clone changed the original matrix")
	}
	if shallow.At(e4) != board.At(e2) {
		t.Fatal("shallow clone should share pieces")
	}

	deep := board.DeepClone()
	if !deep.Equal(board) {
		t.Fatal("deep clone differs from original")
	}
	deep.At(e2).MoveCount = 5
	if board.At(e2).MoveCount != 0 {
		t.Fatal("deep clone shares pieces")
	}
	deep.Move(Move{Start: e2, End: e4})
	if deep.Equal(board) {
		t.Fatal("Equal ignored a moved piece")
	}
}

func TestNewBoardFromGridAssignsIDs(t *testing.T) {
	var grid [8][8]*Piece
	grid[7][4] = NewPiece(King, White)
	grid[0][4] = &Piece{ID: 40, Type: King, Color: Black}
	board := NewBoardFromGrid(grid)
	if board.At(Position{X: 4, Y: 7}).ID == 0 {
		t.Fatal("piece without id was not numbered")
	}
	added := NewPiece(Queen, White)
	board.Place(added, Position{X: 3, Y: 7})
	if added.ID <= 40 {
		t.Fatalf("new id %d collides with injected ids", added.ID)
	}
}
