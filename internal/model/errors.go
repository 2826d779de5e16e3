package model

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPosition = errors.New("invalid position")
	ErrIllegalMove     = errors.New("illegal move")
	ErrMissingPiece    = errors.New("missing piece")
	ErrStateMisuse     = errors.New("state misuse")
)

// NotationError reports algebraic input that could not be parsed.
type NotationError struct {
	Input  string
	Reason string
}

func (e *NotationError) Error() string {
	return fmt.Sprintf("invalid notation %q: %s", e.Input, e.Reason)
}

// Unwrap lets callers treat bad square text like any other bad coordinate.
func (e *NotationError) Unwrap() error {
	return ErrInvalidPosition
}

func invalidPosition(pos Position) error {
	return fmt.Errorf("%w: (%d,%d)", ErrInvalidPosition, pos.X, pos.Y)
}
