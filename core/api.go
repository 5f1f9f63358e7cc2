// Copyright 2026 The go-obsidian Authors
// This file is part of the go-obsidian library.

package core

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// API is the read-only RPC API of the relay processor
type API struct {
	processor *Processor
}

// GetNonce returns the last accepted relay nonce of an account
func (api *API) GetNonce(account common.Address) *hexutil.Big {
	return (*hexutil.Big)(api.processor.CurrentNonce(account))
}

// IsLocked reports whether an account is under a guardian lock
func (api *API) IsLocked(account common.Address) bool {
	return api.processor.IsLocked(account)
}

// GetLock returns the release time of an account's guardian lock, or 0
func (api *API) GetLock(account common.Address) hexutil.Uint64 {
	return hexutil.Uint64(api.processor.GetLock(account))
}
