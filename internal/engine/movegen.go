package engine

import (
	"fmt"

	"github.com/benbeisheim/chessrules/internal/model"
)

// Filter narrows pseudo-legal generation.
type Filter int

const (
	AllMoves Filter = iota
	// AttackMoves keeps captures only, en passant included.
	AttackMoves
)

func (f Filter) String() string {
	if f == AttackMoves {
		return "attacks"
	}
	return "all"
}

func (f Filter) keep(entry *model.HistoryEntry) bool {
	return f == AllMoves || entry.Type.IsCapture()
}

// PseudoLegalMoves generates candidates for the piece on pos, ignoring
// whether they expose the mover's own king. An empty square yields none.
func PseudoLegalMoves(state *GameState, pos model.Position, filter Filter) ([]*model.HistoryEntry, error) {
	if !pos.Valid() {
		return nil, fmt.Errorf("pseudo-legal moves: %w: (%d,%d)", model.ErrInvalidPosition, pos.X, pos.Y)
	}
	state.ensureHash()
	key := pseudoKey{hash: state.Hash, square: pos, filter: filter}
	if moves, ok := state.cache.pseudoMoves(key); ok {
		return moves, nil
	}
	moves := generate(state, pos, filter)
	state.cache.storePseudo(key, moves)
	return moves, nil
}

func generate(state *GameState, pos model.Position, filter Filter) []*model.HistoryEntry {
	piece := state.Board.At(pos)
	if piece == nil {
		return []*model.HistoryEntry{}
	}
	var moves []*model.HistoryEntry
	switch piece.Type {
	case model.Pawn:
		moves = pseudoPawnMoves(state, piece, pos)
	case model.Knight:
		moves = pseudoLeaperMoves(state, piece, pos, knightTargets[pos.Index()])
	case model.Bishop, model.Rook, model.Queen:
		moves = pseudoSliderMoves(state, piece, pos)
	case model.King:
		moves = pseudoLeaperMoves(state, piece, pos, kingTargets[pos.Index()])
		if filter == AllMoves {
			moves = append(moves, castlingCandidates(state, piece, pos)...)
		}
	default:
		return []*model.HistoryEntry{}
	}
	if filter == AllMoves {
		return moves
	}
	kept := moves[:0]
	for _, m := range moves {
		if filter.keep(m) {
			kept = append(kept, m)
		}
	}
	return kept
}

func pseudoLeaperMoves(state *GameState, piece *model.Piece, from model.Position, targets []model.Position) []*model.HistoryEntry {
	moves := []*model.HistoryEntry{}
	for _, to := range targets {
		target := state.Board.At(to)
		if target == nil || target.Color != piece.Color {
			moves = append(moves, newEntry(state, piece, from, to))
		}
	}
	return moves
}

func pseudoSliderMoves(state *GameState, piece *model.Piece, from model.Position) []*model.HistoryEntry {
	moves := []*model.HistoryEntry{}
	for _, d := range rayIndexes(piece.Type) {
		for _, to := range rays[from.Index()][d] {
			target := state.Board.At(to)
			if target == nil {
				moves = append(moves, newEntry(state, piece, from, to))
				continue
			}
			if target.Color != piece.Color {
				moves = append(moves, newEntry(state, piece, from, to))
			}
			break
		}
	}
	return moves
}
