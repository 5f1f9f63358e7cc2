// Copyright 2026 The go-obsidian Authors
// This file is part of the go-obsidian library.

package guardian

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethdb"

	"github.com/HITEYY/obsidian-relayer/core/rawdb"
	"github.com/HITEYY/obsidian-relayer/core/state"
)

var (
	ErrAlreadyGuardian = errors.New("address is already a guardian")
	ErrUnknownGuardian = errors.New("address is not a guardian")
	ErrOwnerAsGuardian = errors.New("owner cannot be a guardian")
)

// Storage is the guardian registry of every account.
type Storage struct {
	owners OwnerLookup
}

// NewStorage creates a guardian registry. owners is used to refuse enrolling
// the account owner as its own guardian.
func NewStorage(owners OwnerLookup) *Storage {
	return &Storage{owners: owners}
}

// AddGuardian enrols guardian on account.
func (s *Storage) AddGuardian(db state.Accessor, account, guardian common.Address) error {
	if s.owners != nil && s.owners.Owner(db, account) == guardian {
		return ErrOwnerAsGuardian
	}
	guardians := rawdb.ReadGuardians(db, account)
	for _, g := range guardians {
		if g == guardian {
			return fmt.Errorf("%w: %s", ErrAlreadyGuardian, guardian)
		}
	}
	rawdb.WriteGuardians(db, account, append(guardians, guardian))
	return nil
}

// RevokeGuardian removes guardian from account.
func (s *Storage) RevokeGuardian(db state.Accessor, account, guardian common.Address) error {
	guardians := rawdb.ReadGuardians(db, account)
	for i, g := range guardians {
		if g == guardian {
			rawdb.WriteGuardians(db, account, append(guardians[:i:i], guardians[i+1:]...))
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownGuardian, guardian)
}

// IsGuardian reports whether addr is a registered guardian of account.
func (s *Storage) IsGuardian(db ethdb.KeyValueReader, account, addr common.Address) bool {
	for _, g := range rawdb.ReadGuardians(db, account) {
		if g == addr {
			return true
		}
	}
	return false
}

// GuardianCount returns the number of guardians of account.
func (s *Storage) GuardianCount(db ethdb.KeyValueReader, account common.Address) int {
	return len(rawdb.ReadGuardians(db, account))
}

// Guardians returns the guardians of account.
func (s *Storage) Guardians(db ethdb.KeyValueReader, account common.Address) []common.Address {
	return rawdb.ReadGuardians(db, account)
}
