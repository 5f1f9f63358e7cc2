// Copyright 2026 The go-obsidian Authors
// This file is part of the go-obsidian library.

// Package guardian decides whether an identity speaks for an account's
// guardians. It is shared by the relay signature verifier and the lock manager.
//
// A guardian is either a plain key (DirectIdentity) or itself a programmable
// account (ContractIdentity). A contract guardian is exercised by its owner, so
// a signature from the owner of a guardian account counts as the guardian's.
package guardian

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethdb"

	"github.com/HITEYY/obsidian-relayer/core/types"
	"github.com/HITEYY/obsidian-relayer/params"
)

// ErrNotGuardian is returned when a caller is neither a guardian, the signer of
// a contract guardian, nor a module of the account.
var ErrNotGuardian = types.NewError(types.ErrAuthorization, "guardian: caller is not a guardian")

// Registry is the guardian membership the consensus reads.
type Registry interface {
	IsGuardian(db ethdb.KeyValueReader, account, addr common.Address) bool
	GuardianCount(db ethdb.KeyValueReader, account common.Address) int
	Guardians(db ethdb.KeyValueReader, account common.Address) []common.Address
}

// OwnerLookup resolves the owner of a programmable account. Plain identities
// have the zero owner.
type OwnerLookup interface {
	Owner(db ethdb.KeyValueReader, account common.Address) common.Address
}

// ModuleLookup reports module authorisation on an account.
type ModuleLookup interface {
	IsAuthorizedModule(db ethdb.KeyValueReader, account, module common.Address) bool
}

// Identity is something that can authorise a signer.
type Identity interface {
	Address() common.Address
	Authorizes(db ethdb.KeyValueReader, signer common.Address) bool
}

// DirectIdentity is a key-controlled identity; only its own key speaks for it.
type DirectIdentity common.Address

func (id DirectIdentity) Address() common.Address { return common.Address(id) }

func (id DirectIdentity) Authorizes(_ ethdb.KeyValueReader, signer common.Address) bool {
	return common.Address(id) == signer
}

// ContractIdentity is an account-backed identity. It authorises whoever its
// owner authorises.
type ContractIdentity struct {
	addr   common.Address
	owners OwnerLookup
	depth  int
}

func (id *ContractIdentity) Address() common.Address { return id.addr }

func (id *ContractIdentity) Authorizes(db ethdb.KeyValueReader, signer common.Address) bool {
	if id.addr == signer {
		return true
	}
	owner := id.owners.Owner(db, id.addr)
	if owner == (common.Address{}) {
		return false
	}
	return resolve(db, id.owners, owner, id.depth+1).Authorizes(db, signer)
}

// resolve returns the identity behind addr. Past the nesting bound every
// address is treated as a plain key so ownership cycles terminate.
func resolve(db ethdb.KeyValueReader, owners OwnerLookup, addr common.Address, depth int) Identity {
	if depth >= params.MaxGuardianResolution || owners.Owner(db, addr) == (common.Address{}) {
		return DirectIdentity(addr)
	}
	return &ContractIdentity{addr: addr, owners: owners, depth: depth}
}

// Consensus authenticates guardians of an account.
type Consensus struct {
	registry Registry
	owners   OwnerLookup
	modules  ModuleLookup
}

// NewConsensus creates the guardian authentication shared by relay and lock.
func NewConsensus(registry Registry, owners OwnerLookup, modules ModuleLookup) *Consensus {
	return &Consensus{registry: registry, owners: owners, modules: modules}
}

// Resolve returns the identity behind addr.
func (c *Consensus) Resolve(db ethdb.KeyValueReader, addr common.Address) Identity {
	return resolve(db, c.owners, addr, 0)
}

// IsGuardianOrGuardianSigner reports whether signer is a guardian of account
// or controls one.
func (c *Consensus) IsGuardianOrGuardianSigner(db ethdb.KeyValueReader, account, signer common.Address) bool {
	if c.registry.IsGuardian(db, account, signer) {
		return true
	}
	for _, g := range c.registry.Guardians(db, account) {
		if c.Resolve(db, g).Authorizes(db, signer) {
			return true
		}
	}
	return false
}

// AuthorizeCaller checks that caller may perform a guardian operation on
// account directly. Authorised modules pass because they have already
// verified guardian signatures themselves.
func (c *Consensus) AuthorizeCaller(db ethdb.KeyValueReader, account, caller common.Address) error {
	if c.IsGuardianOrGuardianSigner(db, account, caller) {
		return nil
	}
	if c.modules != nil && c.modules.IsAuthorizedModule(db, account, caller) {
		return nil
	}
	return ErrNotGuardian
}

// GuardianCount returns the number of guardians of account.
func (c *Consensus) GuardianCount(db ethdb.KeyValueReader, account common.Address) int {
	return c.registry.GuardianCount(db, account)
}

// MajorityWithOwner is the signature count for owner-plus-guardian approval:
// the owner and at least half of the guardians, rounded up.
func MajorityWithOwner(guardianCount int) int {
	return 1 + (guardianCount+1)/2
}
