// Copyright 2026 The go-obsidian Authors
// This file is part of the go-obsidian library.

package relay

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethdb"

	"github.com/HITEYY/obsidian-relayer/core/state"
	"github.com/HITEYY/obsidian-relayer/core/types"
)

// StateDB is the state surface the dispatcher needs: plain key/value access
// plus the journal used to make a relay call atomic.
type StateDB interface {
	state.Accessor
	Snapshot() int
	RevertToSnapshot(id int)
	Writes(since int) int
}

// Module is an extension a relayed instruction can target.
type Module interface {
	// Address identifies the module in account authorisations and signatures.
	Address() common.Address

	// RequiredSignatures returns the signer policy for data on account. It
	// must reject selectors the module does not implement.
	RequiredSignatures(db ethdb.KeyValueReader, account common.Address, data []byte) (types.Policy, error)

	// Invoke executes the instruction. A returned error is a business failure.
	Invoke(call *Call) error
}

// Call is the context of a module invocation.
type Call struct {
	State   state.Accessor
	Account common.Address // Account the instruction acts on
	Caller  common.Address // Dispatcher, or the direct caller when not relayed
	Time    uint64
	Data    []byte
}

// Env describes the submission of a relay call.
type Env struct {
	Sender common.Address // Relayer paying for execution
	Gas    uint64         // Gas the relayer made available
	Time   uint64         // Block time in seconds
}
