// Copyright 2026 The go-obsidian Authors
// This file is part of the go-obsidian library.

// Package oracle keeps the exchange rates used to settle relay refunds in
// tokens other than the native asset.
//
// Rates are published by managers and express how much of the token buys
// one unit of the native asset, scaled by 10^PriceDecimals.
package oracle

import (
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethdb"
	"github.com/ethereum/go-ethereum/log"

	"github.com/HITEYY/obsidian-relayer/core/rawdb"
	"github.com/HITEYY/obsidian-relayer/core/state"
	"github.com/HITEYY/obsidian-relayer/params"
)

var (
	ErrNotManager   = errors.New("oracle: caller is not a price manager")
	ErrInvalidPrice = errors.New("oracle: price must be positive")
	ErrNativeAsset  = errors.New("oracle: the native asset has no price")
)

// Registry stores manager-published token prices.
type Registry struct{}

// NewRegistry creates an empty price registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// AddManager allows manager to publish prices.
func (r *Registry) AddManager(db state.Accessor, manager common.Address) {
	rawdb.WritePriceManager(db, manager)
}

// RevokeManager removes the publishing right of manager.
func (r *Registry) RevokeManager(db state.Accessor, manager common.Address) {
	rawdb.DeletePriceManager(db, manager)
}

// IsManager reports whether addr may publish prices.
func (r *Registry) IsManager(db ethdb.KeyValueReader, addr common.Address) bool {
	return rawdb.IsPriceManager(db, addr)
}

// SetPrice publishes the scaled rate of token.
func (r *Registry) SetPrice(db state.Accessor, caller, token common.Address, rate *big.Int) error {
	if !rawdb.IsPriceManager(db, caller) {
		return ErrNotManager
	}
	if token == params.NativeAsset {
		return ErrNativeAsset
	}
	if rate == nil || rate.Sign() <= 0 {
		return ErrInvalidPrice
	}
	rawdb.WriteTokenPrice(db, token, rate)
	log.Debug("Token price updated", "token", token, "rate", rate, "manager", caller)
	return nil
}

// Rate returns the scaled rate of asset, or nil if no price is known.
func (r *Registry) Rate(db ethdb.KeyValueReader, asset common.Address) *big.Int {
	return rawdb.ReadTokenPrice(db, asset)
}
