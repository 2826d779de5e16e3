package engine

import "github.com/benbeisheim/chessrules/internal/model"

// newEntry turns a raw start/end pair into a replayable record. Whatever
// stands on end is the captured piece.
func newEntry(state *GameState, piece *model.Piece, start, end model.Position) *model.HistoryEntry {
	entry := &model.HistoryEntry{
		Type:  model.MoveNormal,
		Mover: piece.Color,
		Piece: piece,
		Move:  model.Move{Start: start, End: end},
		Prior: state.snapshot(),
	}
	if target := state.Board.At(end); target != nil {
		entry.Type = model.MoveAttack
		entry.CapturedPiece = target
	}
	return entry
}

func newEnPassantEntry(state *GameState, piece *model.Piece, start, end, captured model.Position) *model.HistoryEntry {
	sq := captured
	return &model.HistoryEntry{
		Type:                    model.MoveEnPassant,
		Mover:                   piece.Color,
		Piece:                   piece,
		Move:                    model.Move{Start: start, End: end},
		CapturedPiece:           state.Board.At(captured),
		EnPassantCapturedSquare: &sq,
		Prior:                   state.snapshot(),
	}
}

func newCastlingEntry(state *GameState, king, rook *model.Piece, kingMove, rookMove model.Move, side model.CastlingSide) *model.HistoryEntry {
	return &model.HistoryEntry{
		Type:  model.MoveCastling,
		Mover: king.Color,
		Piece: king,
		Move:  kingMove,
		Prior: state.snapshot(),
		Castling: &model.CastlingDetail{
			RookPiece: rook,
			RookMove:  rookMove,
			Side:      side,
		},
	}
}

// promotions fans one geometric pawn move out into one entry per kind.
func promotions(state *GameState, piece *model.Piece, start, end model.Position) []*model.HistoryEntry {
	out := make([]*model.HistoryEntry, 0, len(model.PromotionKinds))
	for _, kind := range model.PromotionKinds {
		entry := newEntry(state, piece, start, end)
		entry.Promotion = model.Promotion{IsPromotion: true, PromotedTo: kind}
		out = append(out, entry)
	}
	return out
}
