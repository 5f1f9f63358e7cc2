// Copyright 2026 The go-obsidian Authors
// This file is part of the go-obsidian library.

package rawdb

import (
	"github.com/ethereum/go-ethereum/ethdb"
	"github.com/ethereum/go-ethereum/ethdb/leveldb"
	"github.com/ethereum/go-ethereum/ethdb/memorydb"
	"github.com/ethereum/go-ethereum/log"
)

// NewMemoryDatabase creates an ephemeral key-value store.
func NewMemoryDatabase() ethdb.KeyValueStore {
	return memorydb.New()
}

// NewLevelDBDatabase opens a persistent key-value store at file, creating it
// if missing. cache is in megabytes.
func NewLevelDBDatabase(file string, cache int, handles int, namespace string, readonly bool) (ethdb.KeyValueStore, error) {
	db, err := leveldb.New(file, cache, handles, namespace, readonly)
	if err != nil {
		return nil, err
	}
	log.Info("Using LevelDB as the backing database", "path", file)
	return db, nil
}
