package engine

import "github.com/benbeisheim/chessrules/internal/model"

type pseudoKey struct {
	hash   uint64
	square model.Position
	filter Filter
}

type legalKey struct {
	hash   uint64
	square model.Position
}

// MoveCache memoizes generation for one GameState. Keys carry the position
// hash, so a hit always equals recomputation; apply and undo flush it anyway.
type MoveCache struct {
	pseudo map[pseudoKey][]*model.HistoryEntry
	legal  map[legalKey][]*model.HistoryEntry

	Hits    int
	Misses  int
	Flushes int
}

func NewMoveCache() *MoveCache {
	return &MoveCache{
		pseudo: make(map[pseudoKey][]*model.HistoryEntry),
		legal:  make(map[legalKey][]*model.HistoryEntry),
	}
}

func (c *MoveCache) pseudoMoves(key pseudoKey) ([]*model.HistoryEntry, bool) {
	moves, ok := c.pseudo[key]
	c.count(ok)
	return copyEntries(moves), ok
}

func (c *MoveCache) legalMoves(key legalKey) ([]*model.HistoryEntry, bool) {
	moves, ok := c.legal[key]
	c.count(ok)
	return copyEntries(moves), ok
}

func (c *MoveCache) storePseudo(key pseudoKey, moves []*model.HistoryEntry) {
	c.pseudo[key] = copyEntries(moves)
}

func (c *MoveCache) storeLegal(key legalKey, moves []*model.HistoryEntry) {
	c.legal[key] = copyEntries(moves)
}

func (c *MoveCache) count(hit bool) {
	if hit {
		c.Hits++
	} else {
		c.Misses++
	}
}

// Flush drops every entry in both maps.
func (c *MoveCache) Flush() {
	clear(c.pseudo)
	clear(c.legal)
	c.Flushes++
}

// Len is the number of cached lists across both maps.
func (c *MoveCache) Len() int {
	return len(c.pseudo) + len(c.legal)
}

func copyEntries(moves []*model.HistoryEntry) []*model.HistoryEntry {
	if moves == nil {
		return nil
	}
	return append(make([]*model.HistoryEntry, 0, len(moves)), moves...)
}
