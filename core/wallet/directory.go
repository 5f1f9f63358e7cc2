// Copyright 2026 The go-obsidian Authors
// This file is part of the go-obsidian library.

// Package wallet keeps account ownership, module authorisation and asset
// balances. It is the account directory the relay engine consults; creating
// and upgrading accounts is left to the surrounding system.
package wallet

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethdb"
	"github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"

	"github.com/HITEYY/obsidian-relayer/core/rawdb"
	"github.com/HITEYY/obsidian-relayer/core/state"
)

var (
	ErrAccountExists       = errors.New("account already initialised")
	ErrZeroOwner           = errors.New("account owner must be non-zero")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrAmountOverflow      = errors.New("amount overflows 256 bits")
)

// Directory answers ownership and module questions about accounts.
type Directory struct{}

// NewDirectory creates an account directory.
func NewDirectory() *Directory {
	return &Directory{}
}

// Init creates an account with an owner and an initial module set.
func (d *Directory) Init(db state.Accessor, account, owner common.Address, modules ...common.Address) error {
	if owner == (common.Address{}) {
		return ErrZeroOwner
	}
	if d.IsAccount(db, account) {
		return fmt.Errorf("%w: %s", ErrAccountExists, account)
	}
	rawdb.WriteOwner(db, account, owner)
	for _, module := range modules {
		rawdb.WriteModule(db, account, module)
	}
	log.Debug("Initialised account", "account", account, "owner", owner, "modules", len(modules))
	return nil
}

// Owner returns the owner of account, or the zero address for plain identities.
func (d *Directory) Owner(db ethdb.KeyValueReader, account common.Address) common.Address {
	return rawdb.ReadOwner(db, account)
}

// IsAccount reports whether addr is a programmable account with an owner.
func (d *Directory) IsAccount(db ethdb.KeyValueReader, addr common.Address) bool {
	return d.Owner(db, addr) != (common.Address{})
}

// IsAuthorizedModule reports whether module may act on account.
func (d *Directory) IsAuthorizedModule(db ethdb.KeyValueReader, account, module common.Address) bool {
	return rawdb.HasModule(db, account, module)
}

// RegisterModule lists module in the registry of modules accounts may add.
func (d *Directory) RegisterModule(db state.Accessor, module common.Address) {
	rawdb.WriteRegisteredModule(db, module)
}

// DeregisterModule removes module from the registry. Accounts that already
// authorised it keep it.
func (d *Directory) DeregisterModule(db state.Accessor, module common.Address) {
	rawdb.DeleteRegisteredModule(db, module)
}

// IsRegisteredModule reports whether module is in the registry.
func (d *Directory) IsRegisteredModule(db ethdb.KeyValueReader, module common.Address) bool {
	return rawdb.HasRegisteredModule(db, module)
}

// AuthoriseModule adds or removes module from account.
func (d *Directory) AuthoriseModule(db state.Accessor, account, module common.Address, authorised bool) {
	if authorised {
		rawdb.WriteModule(db, account, module)
	} else {
		rawdb.DeleteModule(db, account, module)
	}
}

// Balance returns the balance of holder in asset.
func (d *Directory) Balance(db ethdb.KeyValueReader, asset, holder common.Address) *big.Int {
	return rawdb.ReadBalance(db, asset, holder).ToBig()
}

// Credit mints amount of asset to holder. Used for deposits and fixtures.
func (d *Directory) Credit(db state.Accessor, asset, holder common.Address, amount *big.Int) error {
	value, overflow := uint256.FromBig(amount)
	if overflow || amount.Sign() < 0 {
		return ErrAmountOverflow
	}
	balance := rawdb.ReadBalance(db, asset, holder)
	if _, overflow := balance.AddOverflow(balance, value); overflow {
		return ErrAmountOverflow
	}
	rawdb.WriteBalance(db, asset, holder, balance)
	return nil
}

// Transfer moves amount of asset from one holder to another.
func (d *Directory) Transfer(db state.Accessor, asset, from, to common.Address, amount *big.Int) error {
	value, overflow := uint256.FromBig(amount)
	if overflow || amount.Sign() < 0 {
		return ErrAmountOverflow
	}
	src := rawdb.ReadBalance(db, asset, from)
	if src.Lt(value) {
		return fmt.Errorf("%w: have %s want %s", ErrInsufficientBalance, src, value)
	}
	if from == to {
		return nil
	}
	dst := rawdb.ReadBalance(db, asset, to)
	if _, overflow := dst.AddOverflow(dst, value); overflow {
		return ErrAmountOverflow
	}
	src.Sub(src, value)
	rawdb.WriteBalance(db, asset, from, src)
	rawdb.WriteBalance(db, asset, to, dst)
	return nil
}
