package engine

import "github.com/benbeisheim/chessrules/internal/model"

type direction struct {
	X, Y int
}

var (
	rookDirs   = []direction{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	bishopDirs = []direction{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	queenDirs  = append(append([]direction{}, rookDirs...), bishopDirs...)
	knightDirs = []direction{{2, 1}, {2, -1}, {-2, 1}, {-2, -1}, {1, 2}, {1, -2}, {-1, 2}, {-1, -2}}
	kingDirs   = queenDirs
)

// Precomputed per-square geometry, indexed by Position.Index().
var (
	knightTargets [64][]model.Position
	kingTargets   [64][]model.Position
	// rays[sq][d] walks outward from sq along queenDirs[d].
	rays [64][8][]model.Position
)

func init() {
	for i := 0; i < 64; i++ {
		from := model.PositionFromIndex(i)
		knightTargets[i] = leaps(from, knightDirs)
		kingTargets[i] = leaps(from, kingDirs)
		for d, dir := range queenDirs {
			for pos := from.Add(dir.X, dir.Y); pos.Valid(); pos = pos.Add(dir.X, dir.Y) {
				rays[i][d] = append(rays[i][d], pos)
			}
		}
	}
}

func leaps(from model.Position, dirs []direction) []model.Position {
	out := []model.Position{}
	for _, dir := range dirs {
		if to := from.Add(dir.X, dir.Y); to.Valid() {
			out = append(out, to)
		}
	}
	return out
}

// rayIndexes maps a slider kind onto its slice of queenDirs.
func rayIndexes(kind model.PieceType) []int {
	switch kind {
	case model.Rook:
		return []int{0, 1, 2, 3}
	case model.Bishop:
		return []int{4, 5, 6, 7}
	case model.Queen:
		return []int{0, 1, 2, 3, 4, 5, 6, 7}
	}
	return nil
}

// IsSquareAttacked reports whether any piece of attacker attacks pos on board.
// Occupancy of pos itself is irrelevant.
func IsSquareAttacked(board *model.Board, pos model.Position, attacker model.Color) bool {
	if !pos.Valid() {
		return false
	}
	i := pos.Index()
	for d := range queenDirs {
		for _, sq := range rays[i][d] {
			piece := board.At(sq)
			if piece == nil {
				continue
			}
			if piece.Color == attacker {
				if piece.Type == model.Queen ||
					(d < 4 && piece.Type == model.Rook) ||
					(d >= 4 && piece.Type == model.Bishop) {
					return true
				}
			}
			break
		}
	}
	for _, sq := range knightTargets[i] {
		if piece := board.At(sq); piece != nil && piece.Color == attacker && piece.Type == model.Knight {
			return true
		}
	}
	for _, sq := range kingTargets[i] {
		if piece := board.At(sq); piece != nil && piece.Color == attacker && piece.Type == model.King {
			return true
		}
	}
	// An attacking pawn sits one step behind pos from its own point of view.
	back := -attacker.Forward()
	for _, dx := range []int{-1, 1} {
		if piece := board.At(pos.Add(dx, back)); piece != nil && piece.Color == attacker && piece.Type == model.Pawn {
			return true
		}
	}
	return false
}

// IsKingAttacked reports whether color's king is attacked by the other side.
// A board without that king is never in check.
func IsKingAttacked(state *GameState, color model.Color) bool {
	return kingAttackedOn(state.Board, color)
}

func kingAttackedOn(board *model.Board, color model.Color) bool {
	king, ok := board.FindKing(color)
	if !ok {
		return false
	}
	return IsSquareAttacked(board, king, color.Opponent())
}

// CheckStatus answers for the side to move only.
func CheckStatus(state *GameState, color model.Color) (bool, error) {
	if color != state.SideToMove {
		return false, model.ErrStateMisuse
	}
	return state.CheckStatus, nil
}
