package engine

import "github.com/benbeisheim/chessrules/internal/model"

// pseudoPawnMoves follows the piece's own forward direction, not the side to
// move.
func pseudoPawnMoves(state *GameState, piece *model.Piece, from model.Position) []*model.HistoryEntry {
	moves := []*model.HistoryEntry{}
	board := state.Board
	dir := piece.Color.Forward()

	add := func(to model.Position) {
		if to.Y == piece.Color.PromotionRank() {
			moves = append(moves, promotions(state, piece, from, to)...)
			return
		}
		moves = append(moves, newEntry(state, piece, from, to))
	}

	one := from.Add(0, dir)
	if one.Valid() && board.At(one) == nil {
		add(one)
		two := from.Add(0, 2*dir)
		if !piece.HasMoved() && from.Y == piece.Color.PawnRank() && two.Valid() && board.At(two) == nil {
			moves = append(moves, newEntry(state, piece, from, two))
		}
	}

	for _, dx := range []int{-1, 1} {
		to := from.Add(dx, dir)
		if !to.Valid() {
			continue
		}
		if target := board.At(to); target != nil && target.Color != piece.Color {
			add(to)
		}
	}

	if ep, ok := enPassantTarget(state, piece, from); ok {
		moves = append(moves, ep)
	}
	return moves
}

// enPassantTarget builds the capture onto the square an adjacent enemy pawn
// just skipped over. EnPassantFile is only set right after a double push.
func enPassantTarget(state *GameState, piece *model.Piece, from model.Position) (*model.HistoryEntry, bool) {
	file := state.EnPassantFile
	if file == model.NoFile || abs(file-from.X) != 1 {
		return nil, false
	}
	last := state.LastMove()
	victimSq := model.Position{X: file, Y: from.Y}
	victim := state.Board.At(victimSq)
	if victim == nil || victim.Type != model.Pawn || victim.Color == piece.Color {
		return nil, false
	}
	// With history available, the double push must be the immediately
	// preceding move and must have landed on victimSq.
	if last != nil && (last.Piece != victim || last.Move.End != victimSq) {
		return nil, false
	}
	// The victim must have pushed two squares, which puts it on its fourth rank.
	if victimSq.Y != victim.Color.PawnRank()+2*victim.Color.Forward() {
		return nil, false
	}
	to := model.Position{X: file, Y: from.Y + piece.Color.Forward()}
	if state.Board.At(to) != nil {
		return nil, false
	}
	return newEnPassantEntry(state, piece, from, to, victimSq), true
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
