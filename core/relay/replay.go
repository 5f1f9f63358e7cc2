// Copyright 2026 The go-obsidian Authors
// This file is part of the go-obsidian library.

package relay

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethdb"

	"github.com/HITEYY/obsidian-relayer/core/rawdb"
	"github.com/HITEYY/obsidian-relayer/core/state"
)

// ReplayGuard keeps the last accepted nonce of every account. Any nonce above
// it is accepted, gaps included.
type ReplayGuard struct{}

// CurrentNonce returns the last accepted nonce of account, zero if none.
func (g *ReplayGuard) CurrentNonce(db ethdb.KeyValueReader, account common.Address) *big.Int {
	return rawdb.ReadRelayNonce(db, account)
}

// Check fails with ErrDuplicateRequest unless nonce is above the last
// accepted one.
func (g *ReplayGuard) Check(db ethdb.KeyValueReader, account common.Address, nonce *big.Int) error {
	if nonce == nil {
		return ErrDuplicateRequest
	}
	if last := g.CurrentNonce(db, account); nonce.Cmp(last) <= 0 {
		return fmt.Errorf("%w: nonce %v, last accepted %v", ErrDuplicateRequest, nonce, last)
	}
	return nil
}

// Commit records nonce as the last accepted one.
func (g *ReplayGuard) Commit(db state.Accessor, account common.Address, nonce *big.Int) {
	rawdb.WriteRelayNonce(db, account, nonce)
}
