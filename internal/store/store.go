// Package store persists rules sessions in BadgerDB so a restarted server can
// rebuild them by replaying their moves.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/benbeisheim/chessrules/internal/model"
)

const sessionPrefix = "session:"

var ErrNotFound = errors.New("record not found")

// MoveRecord is one applied move as the client sent it.
type MoveRecord struct {
	Move      string          `json:"move"`
	Promotion model.PieceType `json:"promotion,omitempty"`
}

// SessionRecord is everything needed to rebuild a session: its starting FEN
// and the moves applied since, in order.
type SessionRecord struct {
	ID        string           `json:"id"`
	FEN       string           `json:"fen"`
	Players   model.PlayerInfo `json:"players"`
	Moves     []MoveRecord     `json:"moves"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// Store wraps BadgerDB.
type Store struct {
	db *badger.DB
}

// Open opens the database in dir. An empty dir keeps everything in memory.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func sessionKey(id string) []byte {
	return []byte(sessionPrefix + id)
}

// Save writes rec, replacing any earlier version.
func (s *Store) Save(rec *SessionRecord) error {
	rec.UpdatedAt = time.Now()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = rec.UpdatedAt
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(sessionKey(rec.ID), data)
	})
}

func (s *Store) Load(id string) (*SessionRecord, error) {
	rec := &SessionRecord{}
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(sessionKey(id))
		if err == badger.ErrKeyNotFound {
			return fmt.Errorf("session %s: %w", id, ErrNotFound)
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, rec)
		})
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// List returns every stored session in key order.
func (s *Store) List() ([]*SessionRecord, error) {
	records := []*SessionRecord{}
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(sessionPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			rec := &SessionRecord{}
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, rec)
			}); err != nil {
				return err
			}
			records = append(records, rec)
		}
		return nil
	})
	return records, err
}

func (s *Store) Delete(id string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(sessionKey(id))
	})
}
