// Package fen decodes FEN text into an engine setup. Board, turn and castling
// rights come from github.com/notnil/chess; the engine derives castling from
// piece history, so missing rights are expressed by marking pieces as moved.
package fen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/notnil/chess"

	"github.com/benbeisheim/chessrules/internal/model"
)

const StartPos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var kinds = map[chess.PieceType]model.PieceType{
	chess.King:   model.King,
	chess.Queen:  model.Queen,
	chess.Rook:   model.Rook,
	chess.Bishop: model.Bishop,
	chess.Knight: model.Knight,
	chess.Pawn:   model.Pawn,
}

func colorOf(c chess.Color) model.Color {
	if c == chess.Black {
		return model.Black
	}
	return model.White
}

// Parse decodes a full or four-field FEN string.
func Parse(s string) (*model.Setup, error) {
	fields := strings.Fields(s)
	if len(fields) < 4 {
		return nil, fmt.Errorf("parse fen %q: %w: want at least 4 fields", s, model.ErrInvalidPosition)
	}
	if len(fields) == 4 {
		fields = append(fields, "0", "1")
	}
	opt, err := chess.FEN(strings.Join(fields, " "))
	if err != nil {
		return nil, fmt.Errorf("parse fen %q: %w: %w", s, model.ErrInvalidPosition, err)
	}
	pos := chess.NewGame(opt).Position()

	board := model.NewEmptyBoard()
	for sq, pc := range pos.Board().SquareMap() {
		kind, ok := kinds[pc.Type()]
		if !ok {
			continue
		}
		at := model.Position{X: int(sq.File()), Y: 7 - int(sq.Rank())}
		piece := model.NewPiece(kind, colorOf(pc.Color()))
		if _, err := board.Place(piece, at); err != nil {
			return nil, fmt.Errorf("parse fen %q: %w", s, err)
		}
	}
	markMoved(board, pos.CastleRights())

	setup := &model.Setup{
		Board:           board,
		SideToMove:      colorOf(pos.Turn()),
		FullMoveCounter: 1,
	}
	if ep := fields[3]; ep != "-" {
		sq, err := model.ParsePosition(ep)
		if err != nil {
			return nil, fmt.Errorf("parse fen %q: en passant: %w", s, err)
		}
		setup.EnPassantFile = &sq.X
	}
	if setup.HalfMoveClock, err = strconv.Atoi(fields[4]); err != nil {
		return nil, fmt.Errorf("parse fen %q: %w: half-move clock: %w", s, model.ErrInvalidPosition, err)
	}
	if setup.FullMoveCounter, err = strconv.Atoi(fields[5]); err != nil {
		return nil, fmt.Errorf("parse fen %q: %w: full-move counter: %w", s, model.ErrInvalidPosition, err)
	}
	return setup, nil
}

// markMoved encodes history the engine cannot see in a FEN: pawns off their
// start rank have moved, and a right that is absent means its rook (or the
// king, when both are gone) has moved.
func markMoved(board *model.Board, rights chess.CastleRights) {
	for _, located := range board.FindPieces([]model.PieceType{model.Pawn}, model.BothColors) {
		if located.Position.Y != located.Piece.Color.PawnRank() {
			located.Piece.MoveCount = 1
		}
	}
	for _, color := range []model.Color{model.White, model.Black} {
		c := chess.White
		if color == model.Black {
			c = chess.Black
		}
		rank := color.HomeRank()
		king := board.At(model.Position{X: 4, Y: rank})
		if king == nil || king.Type != model.King || king.Color != color {
			continue
		}
		kingSide := rights.CanCastle(c, chess.KingSide)
		queenSide := rights.CanCastle(c, chess.QueenSide)
		if !kingSide && !queenSide {
			king.MoveCount = 1
			continue
		}
		if rook := board.At(model.Position{X: 7, Y: rank}); rook != nil && !kingSide {
			rook.MoveCount = 1
		}
		if rook := board.At(model.Position{X: 0, Y: rank}); rook != nil && !queenSide {
			rook.MoveCount = 1
		}
	}
}

// Encode renders a position as FEN. The en passant square is written whenever
// a double push just happened, whether or not a capture is possible.
func Encode(board *model.Board, side model.Color, rights model.CastlingRights, epFile, halfMove, fullMove int) string {
	var sb strings.Builder
	grid := board.Grid()
	for y := 0; y < 8; y++ {
		empty := 0
		for x := 0; x < 8; x++ {
			piece := grid[y][x]
			if piece == nil {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(letter(piece))
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if y < 7 {
			sb.WriteByte('/')
		}
	}
	turn := "w"
	if side == model.Black {
		turn = "b"
	}
	ep := "-"
	if epFile != model.NoFile {
		rank := 3
		if side == model.White {
			rank = 6
		}
		ep = fmt.Sprintf("%c%d", 'a'+epFile, rank)
	}
	return fmt.Sprintf("%s %s %s %s %d %d", sb.String(), turn, rights, ep, halfMove, fullMove)
}

func letter(piece *model.Piece) string {
	l := piece.Type.Letter()
	if piece.Type == model.Pawn {
		l = "P"
	}
	if piece.Color == model.Black {
		return strings.ToLower(l)
	}
	return l
}
