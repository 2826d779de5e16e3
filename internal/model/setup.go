package model

// NoFile marks an absent en passant file.
const NoFile = -1

// Setup describes the starting position handed to the engine. A nil Board
// means the standard layout; a nil EnPassantFile means no en passant right.
type Setup struct {
	Board           *Board
	SideToMove      Color
	EnPassantFile   *int
	HalfMoveClock   int
	FullMoveCounter int
}

func StandardSetup() *Setup {
	return &Setup{
		Board:           NewStandardBoard(),
		SideToMove:      White,
		FullMoveCounter: 1,
	}
}

// EnPassant returns the en passant file, or NoFile.
func (s *Setup) EnPassant() int {
	if s.EnPassantFile == nil {
		return NoFile
	}
	return *s.EnPassantFile
}
