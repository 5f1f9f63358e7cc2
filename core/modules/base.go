// Copyright 2026 The go-obsidian Authors
// This file is part of the go-obsidian library.

// Package modules holds the behaviour shared by relay modules.
package modules

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethdb"
	"github.com/ethereum/go-ethereum/log"

	"github.com/HITEYY/obsidian-relayer/core/state"
	"github.com/HITEYY/obsidian-relayer/core/types"
)

var (
	ErrNotOwner           = types.NewError(types.ErrBusiness, "modules: must be account owner")
	ErrUnregisteredModule = types.NewError(types.ErrBusiness, "modules: module is not registered")
	ErrModuleAlreadyAdded = types.NewError(types.ErrBusiness, "modules: module is already added")
)

// AddModuleMethod is the ABI fragment of addModule(wallet, module), shared by
// every module that lets the owner extend the account.
const AddModuleMethod = `{"type":"function","name":"addModule","stateMutability":"nonpayable","inputs":[
	{"name":"wallet","type":"address"},
	{"name":"module","type":"address"}
],"outputs":[]}`

// Accounts is the account directory surface modules manage.
type Accounts interface {
	Owner(db ethdb.KeyValueReader, account common.Address) common.Address
	IsAuthorizedModule(db ethdb.KeyValueReader, account, module common.Address) bool
	IsRegisteredModule(db ethdb.KeyValueReader, module common.Address) bool
	AuthoriseModule(db state.Accessor, account, module common.Address, authorised bool)
}

// Base implements the account management every module offers.
type Base struct {
	Accounts Accounts
}

// RequireOwner fails with ErrNotOwner unless caller owns account.
func (b *Base) RequireOwner(db ethdb.KeyValueReader, account, caller common.Address) error {
	if owner := b.Accounts.Owner(db, account); owner == (common.Address{}) || owner != caller {
		return ErrNotOwner
	}
	return nil
}

// AddModule authorises a registered module on account. Callers check who is
// asking before calling it.
func (b *Base) AddModule(db state.Accessor, account, module common.Address) error {
	if !b.Accounts.IsRegisteredModule(db, module) {
		return fmt.Errorf("%w: %s", ErrUnregisteredModule, module)
	}
	if b.Accounts.IsAuthorizedModule(db, account, module) {
		return ErrModuleAlreadyAdded
	}
	b.Accounts.AuthoriseModule(db, account, module, true)
	log.Info("Module added", "account", account, "module", module)
	return nil
}
