package model

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Position) Valid() bool {
	return p.X >= 0 && p.X < 8 && p.Y >= 0 && p.Y < 8
}

// Index maps the position to 0..63, row-major from a8.
func (p Position) Index() int {
	return p.Y*8 + p.X
}

func (p Position) Add(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

func PositionFromIndex(i int) Position {
	return Position{X: i % 8, Y: i / 8}
}

// Located pairs a piece with the square it stands on.
type Located struct {
	Piece    *Piece   `json:"piece"`
	Position Position `json:"position"`
}

// Board is an 8x8 matrix of nullable pieces indexed [y][x].
type Board struct {
	squares [8][8]*Piece
	nextID  int
}

func NewEmptyBoard() *Board {
	return &Board{}
}

var backRank = [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

func NewStandardBoard() *Board {
	board := NewEmptyBoard()
	for x, kind := range backRank {
		board.put(NewPiece(kind, Black), Position{X: x, Y: Black.HomeRank()})
		board.put(NewPiece(Pawn, Black), Position{X: x, Y: Black.PawnRank()})
		board.put(NewPiece(Pawn, White), Position{X: x, Y: White.PawnRank()})
		board.put(NewPiece(kind, White), Position{X: x, Y: White.HomeRank()})
	}
	return board
}

// NewBoardFromGrid injects a prepared grid. Pieces without an ID get one.
func NewBoardFromGrid(grid [8][8]*Piece) *Board {
	board := NewEmptyBoard()
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if grid[y][x] != nil {
				board.put(grid[y][x], Position{X: x, Y: y})
			}
		}
	}
	return board
}

func (b *Board) put(piece *Piece, pos Position) *Piece {
	if piece != nil {
		if piece.ID == 0 {
			b.nextID++
			piece.ID = b.nextID
		} else if piece.ID > b.nextID {
			b.nextID = piece.ID
		}
	}
	prior := b.squares[pos.Y][pos.X]
	b.squares[pos.Y][pos.X] = piece
	return prior
}

// Place puts piece on pos and returns whatever stood there before.
func (b *Board) Place(piece *Piece, pos Position) (*Piece, error) {
	if !pos.Valid() {
		return nil, invalidPosition(pos)
	}
	return b.put(piece, pos), nil
}

func (b *Board) Remove(pos Position) (*Piece, error) {
	if !pos.Valid() {
		return nil, invalidPosition(pos)
	}
	piece := b.squares[pos.Y][pos.X]
	b.squares[pos.Y][pos.X] = nil
	return piece, nil
}

// Move relocates the piece on move.Start to move.End. It does not resolve
// captures: whatever stood on End is dropped from the board.
func (b *Board) Move(move Move) (bool, error) {
	if !move.Start.Valid() {
		return false, invalidPosition(move.Start)
	}
	if !move.End.Valid() {
		return false, invalidPosition(move.End)
	}
	piece := b.squares[move.Start.Y][move.Start.X]
	if piece == nil {
		return false, nil
	}
	b.squares[move.Start.Y][move.Start.X] = nil
	b.squares[move.End.Y][move.End.X] = piece
	return true, nil
}

func (b *Board) GetPiece(pos Position) (*Piece, error) {
	if !pos.Valid() {
		return nil, invalidPosition(pos)
	}
	return b.squares[pos.Y][pos.X], nil
}

func (b *Board) IsOccupied(pos Position) (bool, error) {
	piece, err := b.GetPiece(pos)
	return piece != nil, err
}

// At is the unchecked read used on generator hot paths; off-board is empty.
func (b *Board) At(pos Position) *Piece {
	if !pos.Valid() {
		return nil
	}
	return b.squares[pos.Y][pos.X]
}

// FindPieces scans a8..h1. A nil kinds slice matches every kind.
func (b *Board) FindPieces(kinds []PieceType, color Color) []Located {
	found := []Located{}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			piece := b.squares[y][x]
			if piece == nil {
				continue
			}
			if color != BothColors && piece.Color != color {
				continue
			}
			if kinds != nil && !containsKind(kinds, piece.Type) {
				continue
			}
			found = append(found, Located{Piece: piece, Position: Position{X: x, Y: y}})
		}
	}
	return found
}

// FindKing returns the first king of color, ok=false if there is none.
func (b *Board) FindKing(color Color) (Position, bool) {
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			piece := b.squares[y][x]
			if piece != nil && piece.Type == King && piece.Color == color {
				return Position{X: x, Y: y}, true
			}
		}
	}
	return Position{}, false
}

func containsKind(kinds []PieceType, kind PieceType) bool {
	for _, k := range kinds {
		if k == kind {
			return true
		}
	}
	return false
}

// Clone copies the matrix but shares the Piece values.
func (b *Board) Clone() *Board {
	cp := *b
	return &cp
}

// DeepClone copies every piece; IDs are preserved so history can be remapped.
func (b *Board) DeepClone() *Board {
	cp := &Board{nextID: b.nextID}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if piece := b.squares[y][x]; piece != nil {
				cp.squares[y][x] = piece.clone()
			}
		}
	}
	return cp
}

// Grid returns a copy of the matrix.
func (b *Board) Grid() [8][8]*Piece {
	return b.squares
}

// Equal compares occupancy, kind and color square by square.
func (b *Board) Equal(other *Board) bool {
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			p, q := b.squares[y][x], other.squares[y][x]
			if (p == nil) != (q == nil) {
				return false
			}
			if p != nil && (p.Type != q.Type || p.Color != q.Color || p.ID != q.ID) {
				return false
			}
		}
	}
	return true
}
