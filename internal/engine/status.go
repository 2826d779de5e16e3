package engine

import "github.com/benbeisheim/chessrules/internal/model"

type Outcome string

const (
	Ongoing             Outcome = "ongoing"
	Checkmate           Outcome = "checkmate"
	Stalemate           Outcome = "stalemate"
	FiftyMoveRule       Outcome = "fiftyMoveRule"
	ThreefoldRepetition Outcome = "threefoldRepetition"
)

// Status resolves the game from the side to move's point of view.
func Status(state *GameState) Outcome {
	if !hasLegalMove(state) {
		if state.CheckStatus {
			return Checkmate
		}
		return Stalemate
	}
	if state.HalfMoveClock >= 100 {
		return FiftyMoveRule
	}
	if Repetitions(state) >= 3 {
		return ThreefoldRepetition
	}
	return Ongoing
}

func hasLegalMove(state *GameState) bool {
	for _, located := range state.Board.FindPieces(model.AllKinds, state.SideToMove) {
		if moves, err := LegalMoves(state, located.Position); err == nil && len(moves) > 0 {
			return true
		}
	}
	return false
}

// Repetitions counts how often the current position has occurred, itself
// included. Earlier hashes are rebuilt by peeling off each entry's recorded
// keys; nothing before the last pawn move or capture can match.
func Repetitions(state *GameState) int {
	state.ensureHash()
	count := 1
	h := state.Hash
	for i, n := len(state.MoveHistory)-1, 0; i >= 0 && n < state.HalfMoveClock; i, n = i-1, n+1 {
		for _, key := range state.MoveHistory[i].HashKeys {
			h ^= key
		}
		if h == state.Hash {
			count++
		}
	}
	return count
}
