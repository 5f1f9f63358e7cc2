// Copyright 2026 The go-obsidian Authors

package rawdb

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

func TestLevelDBPersistsRelayState(t *testing.T) {
	dir := t.TempDir()
	account := common.HexToAddress("0x00000000000000000000000000000000000acc01")

	db, err := NewLevelDBDatabase(dir, 16, 16, "relay/db/", false)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	WriteRelayNonce(db, account, big.NewInt(7))
	if err := db.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	db, err = NewLevelDBDatabase(dir, 16, 16, "relay/db/", true)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()
	if nonce := ReadRelayNonce(db, account); nonce.Int64() != 7 {
		t.Fatalf("nonce = %v, want 7", nonce)
	}
}
