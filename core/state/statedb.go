// Copyright 2026 The go-obsidian Authors
// This file is part of the go-obsidian library.
//
// StateDB is a journaled key/value overlay over an ethdb store. Every write is
// recorded so a caller can revert to an earlier snapshot, and nothing reaches
// the backing database until Commit.

package state

import (
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethdb"
)

var (
	errNotFound        = errors.New("not found")
	errInvalidSnapshot = errors.New("invalid snapshot id")
)

// Database is the backing store a StateDB reads from and commits to.
type Database interface {
	ethdb.KeyValueReader
	ethdb.Batcher
}

// Accessor is the read/write surface modules and accessors work against.
type Accessor interface {
	ethdb.KeyValueReader
	ethdb.KeyValueWriter
}

type dirtyValue struct {
	data    []byte
	deleted bool
}

type journalEntry struct {
	key     string
	prev    dirtyValue
	hadPrev bool
}

// StateDB buffers writes over db.
type StateDB struct {
	db      Database
	dirty   map[string]dirtyValue
	journal []journalEntry
}

// New creates an empty overlay over db.
func New(db Database) *StateDB {
	return &StateDB{
		db:    db,
		dirty: make(map[string]dirtyValue),
	}
}

// Has reports whether key holds a value.
func (s *StateDB) Has(key []byte) (bool, error) {
	if v, ok := s.dirty[string(key)]; ok {
		return !v.deleted, nil
	}
	return s.db.Has(key)
}

// Get returns a copy of the value stored under key.
func (s *StateDB) Get(key []byte) ([]byte, error) {
	if v, ok := s.dirty[string(key)]; ok {
		if v.deleted {
			return nil, errNotFound
		}
		return common.CopyBytes(v.data), nil
	}
	return s.db.Get(key)
}

// Put stores value under key.
func (s *StateDB) Put(key []byte, value []byte) error {
	s.set(string(key), dirtyValue{data: common.CopyBytes(value)})
	return nil
}

// Delete removes key.
func (s *StateDB) Delete(key []byte) error {
	s.set(string(key), dirtyValue{deleted: true})
	return nil
}

func (s *StateDB) set(key string, v dirtyValue) {
	prev, ok := s.dirty[key]
	s.journal = append(s.journal, journalEntry{key: key, prev: prev, hadPrev: ok})
	s.dirty[key] = v
}

// Snapshot returns an identifier for the current revision.
func (s *StateDB) Snapshot() int {
	return len(s.journal)
}

// RevertToSnapshot undoes every write made after the snapshot was taken.
func (s *StateDB) RevertToSnapshot(id int) {
	if id < 0 || id > len(s.journal) {
		panic(errInvalidSnapshot)
	}
	for i := len(s.journal) - 1; i >= id; i-- {
		entry := s.journal[i]
		if entry.hadPrev {
			s.dirty[entry.key] = entry.prev
		} else {
			delete(s.dirty, entry.key)
		}
	}
	s.journal = s.journal[:id]
}

// Writes returns the number of writes recorded since the snapshot.
func (s *StateDB) Writes(since int) int {
	return len(s.journal) - since
}

// Commit flushes all pending writes to the backing database in one batch and
// resets the journal.
func (s *StateDB) Commit() error {
	if len(s.dirty) == 0 {
		return nil
	}
	batch := s.db.NewBatch()
	for key, v := range s.dirty {
		var err error
		if v.deleted {
			err = batch.Delete([]byte(key))
		} else {
			err = batch.Put([]byte(key), v.data)
		}
		if err != nil {
			return err
		}
	}
	if err := batch.Write(); err != nil {
		return err
	}
	s.dirty = make(map[string]dirtyValue)
	s.journal = s.journal[:0]
	return nil
}
