// Copyright 2026 The go-obsidian Authors
// This file is part of the go-obsidian library.

// Package admin implements the owner-only account management module. Its
// relayed calls carry the owner's signature, so they act with the owner's
// authority.
package admin

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethdb"

	"github.com/HITEYY/obsidian-relayer/core/modules"
	"github.com/HITEYY/obsidian-relayer/core/relay"
	"github.com/HITEYY/obsidian-relayer/core/state"
	"github.com/HITEYY/obsidian-relayer/core/types"
)

// ModuleAddress identifies the admin module.
var ModuleAddress = common.HexToAddress("0x000000000000000000000000000000000000AD31")

// ABI describes the admin methods.
var ABI = func() abi.ABI {
	parsed, err := abi.JSON(strings.NewReader("[" + modules.AddModuleMethod + "]"))
	if err != nil {
		panic(err)
	}
	return parsed
}()

// Admin is an owner-only relay module.
type Admin struct {
	modules.Base
}

var _ relay.Module = (*Admin)(nil)

// New creates the admin module.
func New(accounts modules.Accounts) *Admin {
	return &Admin{Base: modules.Base{Accounts: accounts}}
}

func (m *Admin) Address() common.Address { return ModuleAddress }

// AddModule authorises module on account when called by the owner directly.
func (m *Admin) AddModule(db state.Accessor, caller, account, module common.Address) error {
	if err := m.RequireOwner(db, account, caller); err != nil {
		return err
	}
	return m.Base.AddModule(db, account, module)
}

// RequiredSignatures implements relay.Module: every method needs the owner.
func (m *Admin) RequiredSignatures(_ ethdb.KeyValueReader, _ common.Address, data []byte) (types.Policy, error) {
	if _, err := ABI.MethodById(data); err != nil {
		return types.Policy{}, err
	}
	return types.OwnerOnly(), nil
}

// Invoke implements relay.Module.
func (m *Admin) Invoke(call *relay.Call) error {
	method, err := ABI.MethodById(call.Data)
	if err != nil {
		return err
	}
	args, err := method.Inputs.Unpack(call.Data[4:])
	if err != nil {
		return err
	}
	return m.Base.AddModule(call.State, call.Account, args[1].(common.Address))
}
