package model

type Move struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

type MoveType string

const (
	MoveNormal    MoveType = "move"
	MoveAttack    MoveType = "attackMove"
	MoveEnPassant MoveType = "enPassant"
	MoveCastling  MoveType = "castling"
)

// IsCapture reports whether entries of this type carry a captured piece.
func (t MoveType) IsCapture() bool {
	return t == MoveAttack || t == MoveEnPassant
}

type CastlingSide string

const (
	KingSide  CastlingSide = "kingside"
	QueenSide CastlingSide = "queenside"
)

// CastlingRights holds the four derived rights, indexed by CastlingIndex.
type CastlingRights [4]bool

func CastlingIndex(color Color, side CastlingSide) int {
	i := 0
	if color == Black {
		i = 2
	}
	if side == QueenSide {
		i++
	}
	return i
}

func (cr CastlingRights) Has(color Color, side CastlingSide) bool {
	return cr[CastlingIndex(color, side)]
}

func (cr CastlingRights) String() string {
	s := ""
	for i, c := range "KQkq" {
		if cr[i] {
			s += string(c)
		}
	}
	if s == "" {
		return "-"
	}
	return s
}

type Promotion struct {
	IsPromotion bool      `json:"isPromotion"`
	PromotedTo  PieceType `json:"promotedTo,omitempty"`
}

// PriorState is the part of the game state an entry restores on undo.
type PriorState struct {
	HalfMoveClock   int            `json:"halfMoveClock"`
	FullMoveCounter int            `json:"fullMoveCounter"`
	CheckStatus     bool           `json:"checkStatus"`
	CastlingRights  CastlingRights `json:"castlingRights"`
	EnPassantFile   int            `json:"enPassantFile"`
}

type CastlingDetail struct {
	RookPiece *Piece       `json:"rookPiece"`
	RookMove  Move         `json:"rookMove"`
	Side      CastlingSide `json:"side"`
}

// HistoryEntry is a complete, replayable move record. Candidates are built for
// every pseudo-legal move; only applied ones are pushed onto the history.
type HistoryEntry struct {
	Type                    MoveType        `json:"type"`
	Mover                   Color           `json:"mover"`
	BoardSnapshot           *Board          `json:"-"`
	Piece                   *Piece          `json:"piece"`
	Move                    Move            `json:"move"`
	CapturedPiece           *Piece          `json:"capturedPiece,omitempty"`
	Promotion               Promotion       `json:"promotion"`
	EnPassantCapturedSquare *Position       `json:"enPassantCapturedSquare,omitempty"`
	Prior                   PriorState      `json:"prior"`
	Castling                *CastlingDetail `json:"castling,omitempty"`

	// HashKeys are the Zobrist constants apply XORed in, replayed by undo.
	HashKeys []uint64 `json:"-"`
}

// CaptureSquare is where the captured piece actually stands.
func (e *HistoryEntry) CaptureSquare() Position {
	if e.Type == MoveEnPassant && e.EnPassantCapturedSquare != nil {
		return *e.EnPassantCapturedSquare
	}
	return e.Move.End
}

// Same reports whether two entries describe the same request: squares and
// promotion choice.
func (e *HistoryEntry) Same(other *HistoryEntry) bool {
	return e.Move == other.Move && e.Promotion == other.Promotion
}

func (e *HistoryEntry) Notation() string {
	if e.Type == MoveCastling && e.Castling != nil {
		if e.Castling.Side == KingSide {
			return "O-O"
		}
		return "O-O-O"
	}
	s := e.Move.String()
	if e.Promotion.IsPromotion {
		s += "=" + e.Promotion.PromotedTo.Letter()
	}
	return s
}
