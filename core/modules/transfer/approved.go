// Copyright 2026 The go-obsidian Authors
// This file is part of the go-obsidian library.

// Package transfer implements transfers approved by the owner together with a
// majority of the guardians. Such transfers bypass the daily limit and start
// a fresh allowance window.
package transfer

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethdb"
	"github.com/ethereum/go-ethereum/log"

	"github.com/HITEYY/obsidian-relayer/core/guardian"
	"github.com/HITEYY/obsidian-relayer/core/modules"
	"github.com/HITEYY/obsidian-relayer/core/rawdb"
	"github.com/HITEYY/obsidian-relayer/core/relay"
	"github.com/HITEYY/obsidian-relayer/core/state"
	"github.com/HITEYY/obsidian-relayer/core/types"
)

// ModuleAddress identifies the approved transfer module.
var ModuleAddress = common.HexToAddress("0x000000000000000000000000000000000000A77F")

var (
	ErrAccountLocked = types.NewError(types.ErrBusiness, "transfer: account is locked")
	ErrZeroRecipient = types.NewError(types.ErrBusiness, "transfer: zero recipient")
)

const approvedABIJSON = `[
	{"type":"function","name":"transferToken","stateMutability":"nonpayable","inputs":[
		{"name":"wallet","type":"address"},
		{"name":"token","type":"address"},
		{"name":"to","type":"address"},
		{"name":"amount","type":"uint256"},
		{"name":"data","type":"bytes"}
	],"outputs":[]},
	` + modules.AddModuleMethod + `
]`

// ABI describes the approved transfer methods.
var ABI = func() abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(approvedABIJSON))
	if err != nil {
		panic(err)
	}
	return parsed
}()

// GuardianCounter returns how many guardians an account has.
type GuardianCounter interface {
	GuardianCount(db ethdb.KeyValueReader, account common.Address) int
}

// Ledger manages accounts and moves balances.
type Ledger interface {
	modules.Accounts
	Transfer(db state.Accessor, asset, from, to common.Address, amount *big.Int) error
}

// SpendResetter clears the amount an account spent in the current window.
type SpendResetter interface {
	ResetDailySpent(db state.Accessor, account common.Address)
}

// ApprovedTransfer is a relay module.
type ApprovedTransfer struct {
	modules.Base
	guardians GuardianCounter
	ledger    Ledger
	limits    SpendResetter
}

var _ relay.Module = (*ApprovedTransfer)(nil)

// New creates the module. limits may be nil.
func New(guardians GuardianCounter, ledger Ledger, limits SpendResetter) *ApprovedTransfer {
	return &ApprovedTransfer{Base: modules.Base{Accounts: ledger}, guardians: guardians, ledger: ledger, limits: limits}
}

func (m *ApprovedTransfer) Address() common.Address { return ModuleAddress }

// AddModule authorises module on account when called by the owner directly.
func (m *ApprovedTransfer) AddModule(db state.Accessor, caller, account, module common.Address) error {
	if err := m.RequireOwner(db, account, caller); err != nil {
		return err
	}
	return m.Base.AddModule(db, account, module)
}

// RequiredSignatures asks for the owner and half of the guardians, rounded up.
func (m *ApprovedTransfer) RequiredSignatures(db ethdb.KeyValueReader, account common.Address, data []byte) (types.Policy, error) {
	if _, err := ABI.MethodById(data); err != nil {
		return types.Policy{}, err
	}
	return types.OwnerAndGuardians(guardian.MajorityWithOwner(m.guardians.GuardianCount(db, account))), nil
}

func (m *ApprovedTransfer) Invoke(call *relay.Call) error {
	method, err := ABI.MethodById(call.Data)
	if err != nil {
		return err
	}
	args, err := method.Inputs.Unpack(call.Data[4:])
	if err != nil {
		return err
	}
	if method.Name == "addModule" {
		// Only the owner calling in person may extend the account; a relayed
		// call arrives from the dispatcher.
		return m.AddModule(call.State, call.Caller, call.Account, args[1].(common.Address))
	}
	var (
		token  = args[1].(common.Address)
		to     = args[2].(common.Address)
		amount = args[3].(*big.Int)
	)
	if rawdb.ReadLock(call.State, call.Account).ActiveAt(call.Time) {
		return ErrAccountLocked
	}
	if to == (common.Address{}) {
		return ErrZeroRecipient
	}
	if err := m.ledger.Transfer(call.State, token, call.Account, to, amount); err != nil {
		return fmt.Errorf("transfer: %w", err)
	}
	if m.limits != nil {
		m.limits.ResetDailySpent(call.State, call.Account)
	}
	log.Info("Approved transfer", "account", call.Account, "token", token, "to", to, "amount", amount)
	return nil
}
