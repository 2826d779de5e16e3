package engine

import (
	"sort"

	"github.com/benbeisheim/chessrules/internal/model"
)

// Perft counts leaf nodes of the legal move tree to depth.
func Perft(state *GameState, depth int) (uint64, error) {
	if depth <= 0 {
		return 1, nil
	}
	moves := AllLegalMoves(state)
	if depth == 1 {
		return uint64(len(moves)), nil
	}
	var nodes uint64
	for _, entry := range moves {
		if err := ApplyMove(state, entry); err != nil {
			return nodes, err
		}
		n, err := Perft(state, depth-1)
		if _, undoErr := UndoLastMove(state); undoErr != nil {
			return nodes, undoErr
		}
		if err != nil {
			return nodes, err
		}
		nodes += n
	}
	return nodes, nil
}

// DivideEntry is the subtree size below one root move.
type DivideEntry struct {
	Move  string `json:"move"`
	Nodes uint64 `json:"nodes"`
}

// Divide splits Perft by root move, sorted by notation.
func Divide(state *GameState, depth int) ([]DivideEntry, error) {
	out := []DivideEntry{}
	if depth <= 0 {
		return out, nil
	}
	for _, entry := range AllLegalMoves(state) {
		if err := ApplyMove(state, entry); err != nil {
			return nil, err
		}
		n, err := Perft(state, depth-1)
		if _, undoErr := UndoLastMove(state); undoErr != nil {
			return nil, undoErr
		}
		if err != nil {
			return nil, err
		}
		out = append(out, DivideEntry{Move: uciString(entry), Nodes: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Move < out[j].Move })
	return out, nil
}

// uciString renders "e7e8q" so divide output lines up with other engines.
func uciString(entry *model.HistoryEntry) string {
	s := entry.Move.Start.String() + entry.Move.End.String()
	if entry.Promotion.IsPromotion {
		s += map[model.PieceType]string{
			model.Queen: "q", model.Rook: "r", model.Bishop: "b", model.Knight: "n",
		}[entry.Promotion.PromotedTo]
	}
	return s
}
