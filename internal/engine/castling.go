package engine

import "github.com/benbeisheim/chessrules/internal/model"

const kingFile = 4

type castlingGeometry struct {
	side      model.CastlingSide
	rookFile  int
	kingTo    int
	rookTo    int
	kingPath  []int // files the king crosses, destination included
	mustClear []int // files strictly between king and rook
}

var castlingSides = []castlingGeometry{
	{side: model.KingSide, rookFile: 7, kingTo: 6, rookTo: 5, kingPath: []int{5, 6}, mustClear: []int{5, 6}},
	{side: model.QueenSide, rookFile: 0, kingTo: 2, rookTo: 3, kingPath: []int{3, 2}, mustClear: []int{1, 2, 3}},
}

func geometryFor(side model.CastlingSide) castlingGeometry {
	if side == model.KingSide {
		return castlingSides[0]
	}
	return castlingSides[1]
}

// unmovedAt reports whether square holds a never-moved kind of color.
func unmovedAt(board *model.Board, pos model.Position, kind model.PieceType, color model.Color) *model.Piece {
	piece := board.At(pos)
	if piece == nil || piece.Type != kind || piece.Color != color || piece.HasMoved() {
		return nil
	}
	return piece
}

// deriveCastlingRights recomputes rights from the board: king and that rook on
// their original squares, neither ever moved.
func deriveCastlingRights(board *model.Board) model.CastlingRights {
	var rights model.CastlingRights
	for _, color := range []model.Color{model.White, model.Black} {
		rank := color.HomeRank()
		if unmovedAt(board, model.Position{X: kingFile, Y: rank}, model.King, color) == nil {
			continue
		}
		for _, g := range castlingSides {
			if unmovedAt(board, model.Position{X: g.rookFile, Y: rank}, model.Rook, color) != nil {
				rights[model.CastlingIndex(color, g.side)] = true
			}
		}
	}
	return rights
}

// castlingCandidates checks geometry only; attack checks happen in
// ValidateMove.
func castlingCandidates(state *GameState, king *model.Piece, from model.Position) []*model.HistoryEntry {
	moves := []*model.HistoryEntry{}
	rank := king.Color.HomeRank()
	if from != (model.Position{X: kingFile, Y: rank}) || king.HasMoved() {
		return moves
	}
	for _, g := range castlingSides {
		rookSq := model.Position{X: g.rookFile, Y: rank}
		rook := unmovedAt(state.Board, rookSq, model.Rook, king.Color)
		if rook == nil || !pathClear(state.Board, rank, g.mustClear) {
			continue
		}
		kingMove := model.Move{Start: from, End: model.Position{X: g.kingTo, Y: rank}}
		rookMove := model.Move{Start: rookSq, End: model.Position{X: g.rookTo, Y: rank}}
		moves = append(moves, newCastlingEntry(state, king, rook, kingMove, rookMove, g.side))
	}
	return moves
}

func pathClear(board *model.Board, rank int, files []int) bool {
	for _, x := range files {
		if board.At(model.Position{X: x, Y: rank}) != nil {
			return false
		}
	}
	return true
}
