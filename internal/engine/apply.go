package engine

import (
	"fmt"

	"github.com/benbeisheim/chessrules/internal/model"
)

// ApplyMove plays entry on state. The entry is trusted; use MoveOrError or
// TryMove for caller input. Nothing is mutated when the mover is missing or
// not on move.
func ApplyMove(state *GameState, entry *model.HistoryEntry) error {
	board := state.Board
	start, end := entry.Move.Start, entry.Move.End
	if entry.Mover != state.SideToMove || entry.Piece == nil || entry.Piece.Color != entry.Mover {
		return fmt.Errorf("apply %s: %w: %s is not on move", entry.Move, model.ErrIllegalMove, entry.Mover)
	}
	piece, err := board.GetPiece(start)
	if err != nil {
		return fmt.Errorf("apply %s: %w", entry.Move, err)
	}
	if piece == nil || piece != entry.Piece {
		return fmt.Errorf("apply %s: %w: nothing to move on %s", entry.Move, model.ErrMissingPiece, start)
	}
	if entry.Type == model.MoveCastling && (entry.Castling == nil || board.At(entry.Castling.RookMove.Start) != entry.Castling.RookPiece) {
		return fmt.Errorf("apply %s: %w: castling rook", entry.Move, model.ErrMissingPiece)
	}
	if !end.Valid() {
		return fmt.Errorf("apply %s: %w", entry.Move, model.ErrInvalidPosition)
	}

	state.ensureHash()
	entry.Prior = state.snapshot()
	entry.BoardSnapshot = board.Clone()
	delta := &hashDelta{state: state, keys: make([]uint64, 0, 8)}

	if entry.CapturedPiece != nil {
		sq := entry.CaptureSquare()
		board.Remove(sq)
		delta.piece(entry.CapturedPiece, entry.CapturedPiece.Type, sq)
	}

	wasPawn := piece.Type == model.Pawn
	arrival := piece.Type
	if entry.Promotion.IsPromotion {
		arrival = entry.Promotion.PromotedTo
	}
	relocate(board, delta, piece, entry.Move, piece.Type, arrival)
	piece.Type = arrival

	if entry.Type == model.MoveCastling {
		rook := entry.Castling.RookPiece
		relocate(board, delta, rook, entry.Castling.RookMove, rook.Type, rook.Type)
	}

	if state.EnPassantFile != model.NoFile {
		delta.toggle(zobristEnPassant[state.EnPassantFile])
	}
	state.EnPassantFile = model.NoFile
	if wasPawn && abs(end.Y-start.Y) == 2 {
		state.EnPassantFile = start.X
		delta.toggle(zobristEnPassant[start.X])
	}

	rights := deriveCastlingRights(board)
	for i := range rights {
		if rights[i] != state.CastlingRights[i] {
			delta.toggle(zobristCastling[i])
		}
	}
	state.CastlingRights = rights

	if wasPawn || entry.CapturedPiece != nil {
		state.HalfMoveClock = 0
	} else {
		state.HalfMoveClock++
	}
	if entry.Mover == model.Black {
		state.FullMoveCounter++
	}

	delta.toggle(zobristSideToMove)
	state.SideToMove = entry.Mover.Opponent()
	state.CheckStatus = IsKingAttacked(state, state.SideToMove)

	entry.HashKeys = delta.keys
	state.MoveHistory = append(state.MoveHistory, entry)
	state.cache.Flush()
	return nil
}

// relocate moves piece along move, hashing it off with the departing kind and
// on with the arriving kind. King and castling rook both go through here.
func relocate(board *model.Board, delta *hashDelta, piece *model.Piece, move model.Move, departing, arriving model.PieceType) {
	board.Move(move)
	delta.piece(piece, departing, move.Start)
	delta.piece(piece, arriving, move.End)
	piece.MoveCount++
}

// UndoLastMove reverses the last applied entry. It reports false when there is
// no history.
func UndoLastMove(state *GameState) (bool, error) {
	entry := state.LastMove()
	if entry == nil {
		return false, nil
	}
	board := state.Board
	start, end := entry.Move.Start, entry.Move.End

	if piece := board.At(end); piece == nil || piece != entry.Piece {
		return false, fmt.Errorf("undo %s: %w: expected mover on %s", entry.Move, model.ErrMissingPiece, end)
	}
	var rook *model.Piece
	if entry.Type == model.MoveCastling {
		rook = board.At(entry.Castling.RookMove.End)
		if rook == nil || rook != entry.Castling.RookPiece {
			return false, fmt.Errorf("undo %s: %w: expected rook on %s", entry.Move, model.ErrMissingPiece, entry.Castling.RookMove.End)
		}
	}

	state.MoveHistory = state.MoveHistory[:len(state.MoveHistory)-1]

	piece := entry.Piece
	if entry.Promotion.IsPromotion {
		piece.Type = model.Pawn
	}
	board.Move(model.Move{Start: end, End: start})
	piece.MoveCount--

	if rook != nil {
		board.Move(model.Move{Start: entry.Castling.RookMove.End, End: entry.Castling.RookMove.Start})
		rook.MoveCount--
	}
	if entry.CapturedPiece != nil {
		board.Place(entry.CapturedPiece, entry.CaptureSquare())
	}

	for _, key := range entry.HashKeys {
		state.Hash ^= key
	}

	prior := entry.Prior
	state.HalfMoveClock = prior.HalfMoveClock
	state.FullMoveCounter = prior.FullMoveCounter
	state.CastlingRights = prior.CastlingRights
	state.EnPassantFile = prior.EnPassantFile
	state.CheckStatus = prior.CheckStatus
	state.SideToMove = entry.Mover

	state.cache.Flush()
	return true, nil
}

// FindMove resolves a caller's request against the legal moves of its start
// square. A promotion kind is required exactly when the move promotes.
func FindMove(state *GameState, move model.Move, promotion model.PieceType) (*model.HistoryEntry, error) {
	piece, err := state.Board.GetPiece(move.Start)
	if err != nil {
		return nil, err
	}
	if _, err := state.Board.GetPiece(move.End); err != nil {
		return nil, err
	}
	if piece == nil {
		return nil, fmt.Errorf("%w: no piece on %s", model.ErrIllegalMove, move.Start)
	}
	if piece.Color != state.SideToMove {
		return nil, fmt.Errorf("%w: %s is not on move", model.ErrIllegalMove, piece.Color)
	}
	legal, err := LegalMoves(state, move.Start)
	if err != nil {
		return nil, err
	}
	for _, entry := range legal {
		if entry.Move != move {
			continue
		}
		if entry.Promotion.IsPromotion && entry.Promotion.PromotedTo != promotion {
			continue
		}
		if !entry.Promotion.IsPromotion && promotion != "" {
			continue
		}
		return entry, nil
	}
	return nil, fmt.Errorf("%w: %s", model.ErrIllegalMove, move)
}

// MoveOrError is the strict path: the move is applied or an error explains
// why not. An illegal request never touches state.
func MoveOrError(state *GameState, move model.Move, promotion model.PieceType) (*model.HistoryEntry, error) {
	entry, err := FindMove(state, move, promotion)
	if err != nil {
		return nil, err
	}
	if err := ApplyMove(state, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// TryMove is the permissive path.
func TryMove(state *GameState, move model.Move, promotion model.PieceType) bool {
	_, err := MoveOrError(state, move, promotion)
	return err == nil
}
