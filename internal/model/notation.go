package model

import (
	"fmt"
	"strings"
)

// String renders the square in algebraic form, e.g. "e4".
func (p Position) String() string {
	if !p.Valid() {
		return "-"
	}
	return fmt.Sprintf("%c%d", p.X+'a', 8-p.Y)
}

func ParsePosition(s string) (Position, error) {
	if len(s) != 2 {
		return Position{}, &NotationError{Input: s, Reason: "want file and rank"}
	}
	x := int(s[0] - 'a')
	rank := int(s[1] - '0')
	pos := Position{X: x, Y: 8 - rank}
	if s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return Position{}, &NotationError{Input: s, Reason: "square off the board"}
	}
	return pos, nil
}

// String renders the move as "e2-e4".
func (m Move) String() string {
	return m.Start.String() + "-" + m.End.String()
}

// ParseMove accepts "e2-e4" and the compact "e2e4".
func ParseMove(s string) (Move, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	var from, to string
	switch {
	case len(s) == 5 && s[2] == '-':
		from, to = s[:2], s[3:]
	case len(s) == 4:
		from, to = s[:2], s[2:]
	default:
		return Move{}, &NotationError{Input: s, Reason: "want <from>-<to>"}
	}
	start, err := ParsePosition(from)
	if err != nil {
		return Move{}, err
	}
	end, err := ParsePosition(to)
	if err != nil {
		return Move{}, err
	}
	return Move{Start: start, End: end}, nil
}
