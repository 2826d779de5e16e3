package engine

import (
	"fmt"

	"github.com/benbeisheim/chessrules/internal/model"
)

// LegalMoves returns the legal entries for the piece on pos, cached per
// position hash.
func LegalMoves(state *GameState, pos model.Position) ([]*model.HistoryEntry, error) {
	if !pos.Valid() {
		return nil, fmt.Errorf("legal moves: %w: (%d,%d)", model.ErrInvalidPosition, pos.X, pos.Y)
	}
	state.ensureHash()
	key := legalKey{hash: state.Hash, square: pos}
	if moves, ok := state.cache.legalMoves(key); ok {
		return moves, nil
	}
	pseudo, err := PseudoLegalMoves(state, pos, AllMoves)
	if err != nil {
		return nil, err
	}
	moves := FilterMoves(state, pseudo)
	state.cache.storeLegal(key, moves)
	return moves, nil
}

// AllLegalMoves collects legal entries for every piece of the side to move.
func AllLegalMoves(state *GameState) []*model.HistoryEntry {
	moves := []*model.HistoryEntry{}
	for _, located := range state.Board.FindPieces(model.AllKinds, state.SideToMove) {
		legal, err := LegalMoves(state, located.Position)
		if err != nil {
			continue
		}
		moves = append(moves, legal...)
	}
	return moves
}

// FilterMoves keeps the entries ValidateMove accepts.
func FilterMoves(state *GameState, entries []*model.HistoryEntry) []*model.HistoryEntry {
	legal := []*model.HistoryEntry{}
	for _, entry := range entries {
		if ValidateMove(state, entry) {
			legal = append(legal, entry)
		}
	}
	return legal
}

// ValidateMove reports whether entry is pseudo-legal from its start square and
// leaves the mover's king safe.
func ValidateMove(state *GameState, entry *model.HistoryEntry) bool {
	if entry == nil || entry.Piece == nil {
		return false
	}
	pseudo, err := PseudoLegalMoves(state, entry.Move.Start, AllMoves)
	if err != nil || !containsEntry(pseudo, entry) {
		return false
	}
	if entry.Type == model.MoveCastling {
		return castlingSafe(state, entry)
	}
	return !leavesKingAttacked(state.Board, entry)
}

func containsEntry(entries []*model.HistoryEntry, entry *model.HistoryEntry) bool {
	for _, e := range entries {
		if e.Same(entry) && e.Type == entry.Type {
			return true
		}
	}
	return false
}

// leavesKingAttacked relocates the mover on a shallow board copy; pieces are
// never touched, so promotion kind does not matter here.
func leavesKingAttacked(board *model.Board, entry *model.HistoryEntry) bool {
	sim := board.Clone()
	if entry.CapturedPiece != nil {
		if _, err := sim.Remove(entry.CaptureSquare()); err != nil {
			return true
		}
	}
	if ok, err := sim.Move(entry.Move); err != nil || !ok {
		return true
	}
	return kingAttackedOn(sim, entry.Mover)
}

func castlingSafe(state *GameState, entry *model.HistoryEntry) bool {
	board := state.Board
	detail := entry.Castling
	if detail == nil {
		return false
	}
	color := entry.Mover
	rank := color.HomeRank()
	kingFrom := model.Position{X: kingFile, Y: rank}
	g := geometryFor(detail.Side)
	rookFrom := model.Position{X: g.rookFile, Y: rank}

	if IsSquareAttacked(board, kingFrom, color.Opponent()) {
		return false
	}
	if king := unmovedAt(board, kingFrom, model.King, color); king == nil || king != entry.Piece {
		return false
	}
	if rook := unmovedAt(board, rookFrom, model.Rook, color); rook == nil || rook != detail.RookPiece {
		return false
	}
	if !pathClear(board, rank, g.mustClear) {
		return false
	}
	for _, x := range g.kingPath {
		sq := model.Position{X: x, Y: rank}
		sim := board.Clone()
		if ok, err := sim.Move(model.Move{Start: kingFrom, End: sq}); err != nil || !ok {
			return false
		}
		if IsSquareAttacked(sim, sq, color.Opponent()) {
			return false
		}
	}
	return true
}
