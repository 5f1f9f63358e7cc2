// Copyright 2026 The go-obsidian Authors
// This file is part of the go-obsidian library.

// Package lock implements the guardian lock of an account.
//
// A lock lasts a fixed period and is attributed to the module that set it.
// Expired locks are never cleared; every read compares the release time with
// the current time instead.
package lock

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethdb"
	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/metrics"

	"github.com/HITEYY/obsidian-relayer/core/guardian"
	"github.com/HITEYY/obsidian-relayer/core/rawdb"
	"github.com/HITEYY/obsidian-relayer/core/relay"
	"github.com/HITEYY/obsidian-relayer/core/state"
	"github.com/HITEYY/obsidian-relayer/core/types"
	"github.com/HITEYY/obsidian-relayer/params"
)

// ModuleAddress identifies the lock manager in lock records and relays.
var ModuleAddress = common.HexToAddress("0x00000000000000000000000000000000000010C4")

var (
	ErrNotLocked             = types.NewError(types.ErrLock, "lock: account is not locked")
	ErrLockedByAnotherModule = types.NewError(types.ErrLock, "lock: account locked by another module")
)

var (
	lockMeter   = metrics.NewRegisteredMeter("lock/locked", nil)
	unlockMeter = metrics.NewRegisteredMeter("lock/unlocked", nil)
)

const lockABIJSON = `[
	{"type":"function","name":"lock","stateMutability":"nonpayable","inputs":[{"name":"wallet","type":"address"}],"outputs":[]},
	{"type":"function","name":"unlock","stateMutability":"nonpayable","inputs":[{"name":"wallet","type":"address"}],"outputs":[]}
]`

// ABI describes the relayable lock methods.
var ABI = func() abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(lockABIJSON))
	if err != nil {
		panic(err)
	}
	return parsed
}()

// Manager is the lock state machine. It is also a relay module so guardians
// can lock through a relayer.
type Manager struct {
	address   common.Address
	period    uint64
	guardians *guardian.Consensus
}

// NewManager creates a lock manager whose locks last config.LockPeriod.
func NewManager(config *params.RelayConfig, guardians *guardian.Consensus) *Manager {
	return &Manager{
		address:   ModuleAddress,
		period:    config.LockPeriod,
		guardians: guardians,
	}
}

// Address implements relay.Module.
func (m *Manager) Address() common.Address {
	return m.address
}

// Lock locks account until now plus the lock period and returns the release
// time. An expired record or one this manager set is replaced; an active lock
// set by another module is left alone.
func (m *Manager) Lock(db state.Accessor, caller, account common.Address, now uint64) (uint64, error) {
	if err := m.guardians.AuthorizeCaller(db, account, caller); err != nil {
		return 0, err
	}
	if rec := rawdb.ReadLock(db, account); rec.ActiveAt(now) && rec.Locker != m.address {
		return 0, fmt.Errorf("%w: locker %s", ErrLockedByAnotherModule, rec.Locker)
	}
	release := now + m.period
	rawdb.WriteLock(db, account, &types.LockRecord{ReleaseTime: release, Locker: m.address})
	lockMeter.Mark(1)
	log.Info("Account locked", "account", account, "by", caller, "release", release)
	return release, nil
}

// Unlock clears a lock this manager set.
func (m *Manager) Unlock(db state.Accessor, caller, account common.Address, now uint64) error {
	if err := m.guardians.AuthorizeCaller(db, account, caller); err != nil {
		return err
	}
	rec := rawdb.ReadLock(db, account)
	if !rec.ActiveAt(now) {
		return ErrNotLocked
	}
	if rec.Locker != m.address {
		return fmt.Errorf("%w: locker %s", ErrLockedByAnotherModule, rec.Locker)
	}
	rawdb.DeleteLock(db, account)
	unlockMeter.Mark(1)
	log.Info("Account unlocked", "account", account, "by", caller)
	return nil
}

// IsLocked reports whether this manager holds an unexpired lock on account.
func (m *Manager) IsLocked(db ethdb.KeyValueReader, account common.Address, now uint64) bool {
	return m.GetLock(db, account, now) != 0
}

// GetLock returns the release time of this manager's lock on account, or 0.
func (m *Manager) GetLock(db ethdb.KeyValueReader, account common.Address, now uint64) uint64 {
	rec := rawdb.ReadLock(db, account)
	if !rec.ActiveAt(now) || rec.Locker != m.address {
		return 0
	}
	return rec.ReleaseTime
}

// RequiredSignatures implements relay.Module. One guardian signs, the owner
// may not.
func (m *Manager) RequiredSignatures(_ ethdb.KeyValueReader, _ common.Address, data []byte) (types.Policy, error) {
	if _, err := ABI.MethodById(data); err != nil {
		return types.Policy{}, err
	}
	return types.GuardiansOnly(1), nil
}

// Invoke implements relay.Module.
func (m *Manager) Invoke(call *relay.Call) error {
	method, err := ABI.MethodById(call.Data)
	if err != nil {
		return err
	}
	switch method.Name {
	case "lock":
		_, err = m.Lock(call.State, call.Caller, call.Account, call.Time)
	case "unlock":
		err = m.Unlock(call.State, call.Caller, call.Account, call.Time)
	}
	return err
}
