package model

import "strings"

type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

// AllKinds selects every piece type in FindPieces.
var AllKinds []PieceType = nil

// PromotionKinds is the order promotion entries are generated in.
var PromotionKinds = []PieceType{Queen, Rook, Bishop, Knight}

func (p PieceType) Letter() string {
	switch p {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	case Pawn:
		return ""
	}
	return ""
}

// ParsePromotion accepts a piece letter or name ("q", "Q", "queen").
func ParsePromotion(s string) (PieceType, error) {
	switch strings.ToLower(s) {
	case "q", "queen":
		return Queen, nil
	case "r", "rook":
		return Rook, nil
	case "b", "bishop":
		return Bishop, nil
	case "n", "knight":
		return Knight, nil
	}
	return "", &NotationError{Input: s, Reason: "unknown promotion piece"}
}

type Color string

const (
	White Color = "white"
	Black Color = "black"

	// BothColors selects pieces of either color in FindPieces.
	BothColors Color = "both"
)

func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

// Forward is the Y step a pawn of this color advances by.
func (c Color) Forward() int {
	if c == White {
		return -1
	}
	return 1
}

// HomeRank is the Y coordinate of the color's back rank.
func (c Color) HomeRank() int {
	if c == White {
		return 7
	}
	return 0
}

// PawnRank is the Y coordinate pawns of this color start on.
func (c Color) PawnRank() int {
	if c == White {
		return 6
	}
	return 1
}

// PromotionRank is the farthest rank relative to the color's forward direction.
func (c Color) PromotionRank() int {
	if c == White {
		return 0
	}
	return 7
}

// Piece is placed on a Board once and keeps its identity for the whole game.
// Type changes in place on promotion.
type Piece struct {
	ID        int       `json:"id"`
	Type      PieceType `json:"type"`
	Color     Color     `json:"color"`
	MoveCount int       `json:"moveCount"`
}

func NewPiece(kind PieceType, color Color) *Piece {
	return &Piece{Type: kind, Color: color}
}

func (p *Piece) HasMoved() bool {
	return p.MoveCount > 0
}

func (p *Piece) clone() *Piece {
	cp := *p
	return &cp
}
