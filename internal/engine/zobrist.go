package engine

import "github.com/benbeisheim/chessrules/internal/model"

const zobristSeed uint64 = 0x98F107A2BEEF1234

var (
	zobristPiece      [12][64]uint64
	zobristSideToMove uint64
	zobristCastling   [4]uint64
	zobristEnPassant  [8]uint64
)

func init() {
	initZobrist()
}

// xorshift64*, fixed seed so hashes are stable across runs.
type prng struct {
	state uint64
}

func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func initZobrist() {
	rng := &prng{state: zobristSeed}
	for i := range zobristPiece {
		for sq := 0; sq < 64; sq++ {
			zobristPiece[i][sq] = rng.next()
		}
	}
	zobristSideToMove = rng.next()
	for i := range zobristCastling {
		zobristCastling[i] = rng.next()
	}
	for file := range zobristEnPassant {
		zobristEnPassant[file] = rng.next()
	}
}

func kindIndex(kind model.PieceType) int {
	switch kind {
	case model.Pawn:
		return 0
	case model.Knight:
		return 1
	case model.Bishop:
		return 2
	case model.Rook:
		return 3
	case model.Queen:
		return 4
	}
	return 5
}

func pieceKey(kind model.PieceType, color model.Color, pos model.Position) uint64 {
	i := kindIndex(kind)
	if color == model.Black {
		i += 6
	}
	return zobristPiece[i][pos.Index()]
}

// ComputeHash folds the whole position from scratch.
func ComputeHash(state *GameState) uint64 {
	var h uint64
	for _, located := range state.Board.FindPieces(model.AllKinds, model.BothColors) {
		h ^= pieceKey(located.Piece.Type, located.Piece.Color, located.Position)
	}
	if state.SideToMove == model.Black {
		h ^= zobristSideToMove
	}
	for i, set := range state.CastlingRights {
		if set {
			h ^= zobristCastling[i]
		}
	}
	if state.EnPassantFile != model.NoFile {
		h ^= zobristEnPassant[state.EnPassantFile]
	}
	return h
}

// ensureHash initialises the incremental hash once.
func (s *GameState) ensureHash() {
	if s.hashed {
		return
	}
	s.Hash = ComputeHash(s)
	s.hashed = true
}

// hashDelta accumulates the keys one apply XORs so undo can replay them.
type hashDelta struct {
	state *GameState
	keys  []uint64
}

func (d *hashDelta) toggle(key uint64) {
	d.state.Hash ^= key
	d.keys = append(d.keys, key)
}

func (d *hashDelta) piece(piece *model.Piece, kind model.PieceType, pos model.Position) {
	d.toggle(pieceKey(kind, piece.Color, pos))
}
