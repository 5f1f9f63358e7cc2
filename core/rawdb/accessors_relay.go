// Copyright 2026 The go-obsidian Authors
// This file is part of the go-obsidian library.
//
// Database accessors for account ownership, modules, guardians, relay nonces,
// locks, balances, daily limits and token prices.

package rawdb

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethdb"
	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"

	"github.com/HITEYY/obsidian-relayer/core/types"
)

// ReadOwner returns the owner of an account, or the zero address.
func ReadOwner(db ethdb.KeyValueReader, account common.Address) common.Address {
	data, _ := db.Get(accountKey(ownerPrefix, account))
	if len(data) != common.AddressLength {
		return common.Address{}
	}
	return common.BytesToAddress(data)
}

// WriteOwner sets the owner of an account.
func WriteOwner(db ethdb.KeyValueWriter, account, owner common.Address) {
	if err := db.Put(accountKey(ownerPrefix, account), owner.Bytes()); err != nil {
		panic("failed to write owner: " + err.Error())
	}
}

// HasModule reports whether module is authorised on account.
func HasModule(db ethdb.KeyValueReader, account, module common.Address) bool {
	has, _ := db.Has(pairKey(modulePrefix, account, module))
	return has
}

// WriteModule authorises module on account.
func WriteModule(db ethdb.KeyValueWriter, account, module common.Address) {
	if err := db.Put(pairKey(modulePrefix, account, module), []byte{0x01}); err != nil {
		panic("failed to write module: " + err.Error())
	}
}

// DeleteModule revokes module from account.
func DeleteModule(db ethdb.KeyValueWriter, account, module common.Address) {
	if err := db.Delete(pairKey(modulePrefix, account, module)); err != nil {
		panic("failed to delete module: " + err.Error())
	}
}

// HasRegisteredModule reports whether module is in the module registry.
func HasRegisteredModule(db ethdb.KeyValueReader, module common.Address) bool {
	ok, _ := db.Has(accountKey(registryPrefix, module))
	return ok
}

// WriteRegisteredModule adds module to the module registry.
func WriteRegisteredModule(db ethdb.KeyValueWriter, module common.Address) {
	if err := db.Put(accountKey(registryPrefix, module), []byte{0x01}); err != nil {
		panic("failed to write registered module: " + err.Error())
	}
}

// DeleteRegisteredModule removes module from the module registry.
func DeleteRegisteredModule(db ethdb.KeyValueWriter, module common.Address) {
	if err := db.Delete(accountKey(registryPrefix, module)); err != nil {
		panic("failed to delete registered module: " + err.Error())
	}
}

// ReadGuardians returns the guardians of an account in insertion order.
func ReadGuardians(db ethdb.KeyValueReader, account common.Address) []common.Address {
	data, _ := db.Get(accountKey(guardianPrefix, account))
	if len(data) == 0 {
		return nil
	}
	var guardians []common.Address
	if err := rlp.DecodeBytes(data, &guardians); err != nil {
		log.Error("Invalid guardian list RLP", "account", account, "err", err)
		return nil
	}
	return guardians
}

// WriteGuardians replaces the guardian list of an account.
func WriteGuardians(db ethdb.KeyValueWriter, account common.Address, guardians []common.Address) {
	key := accountKey(guardianPrefix, account)
	if len(guardians) == 0 {
		if err := db.Delete(key); err != nil {
			panic("failed to delete guardians: " + err.Error())
		}
		return
	}
	data, err := rlp.EncodeToBytes(guardians)
	if err != nil {
		panic("failed to encode guardians: " + err.Error())
	}
	if err := db.Put(key, data); err != nil {
		panic("failed to write guardians: " + err.Error())
	}
}

// ReadRelayNonce returns the last accepted relay nonce of an account.
func ReadRelayNonce(db ethdb.KeyValueReader, account common.Address) *big.Int {
	data, _ := db.Get(accountKey(relayNoncePrefix, account))
	return new(big.Int).SetBytes(data)
}

// WriteRelayNonce stores the last accepted relay nonce of an account.
func WriteRelayNonce(db ethdb.KeyValueWriter, account common.Address, nonce *big.Int) {
	if err := db.Put(accountKey(relayNoncePrefix, account), nonce.Bytes()); err != nil {
		panic("failed to write relay nonce: " + err.Error())
	}
}

// ReadLock returns the stored lock record of an account, or nil. The record is
// returned as stored; callers decide whether it has expired.
func ReadLock(db ethdb.KeyValueReader, account common.Address) *types.LockRecord {
	data, _ := db.Get(accountKey(lockPrefix, account))
	if len(data) == 0 {
		return nil
	}
	rec := new(types.LockRecord)
	if err := rlp.DecodeBytes(data, rec); err != nil {
		log.Error("Invalid lock record RLP", "account", account, "err", err)
		return nil
	}
	return rec
}

// WriteLock stores the lock record of an account.
func WriteLock(db ethdb.KeyValueWriter, account common.Address, rec *types.LockRecord) {
	data, err := rlp.EncodeToBytes(rec)
	if err != nil {
		panic("failed to encode lock record: " + err.Error())
	}
	if err := db.Put(accountKey(lockPrefix, account), data); err != nil {
		panic("failed to write lock record: " + err.Error())
	}
}

// DeleteLock clears the lock record of an account.
func DeleteLock(db ethdb.KeyValueWriter, account common.Address) {
	if err := db.Delete(accountKey(lockPrefix, account)); err != nil {
		panic("failed to delete lock record: " + err.Error())
	}
}

// ReadBalance returns the balance of holder in asset.
func ReadBalance(db ethdb.KeyValueReader, asset, holder common.Address) *uint256.Int {
	data, _ := db.Get(pairKey(balancePrefix, asset, holder))
	return new(uint256.Int).SetBytes(data)
}

// WriteBalance sets the balance of holder in asset.
func WriteBalance(db ethdb.KeyValueWriter, asset, holder common.Address, amount *uint256.Int) {
	word := amount.Bytes32()
	if err := db.Put(pairKey(balancePrefix, asset, holder), word[:]); err != nil {
		panic("failed to write balance: " + err.Error())
	}
}

// ReadDailyLimit returns the daily limit record of an account, or nil when no
// limit is configured.
func ReadDailyLimit(db ethdb.KeyValueReader, account common.Address) *types.DailyLimit {
	data, _ := db.Get(accountKey(dailyLimitPrefix, account))
	if len(data) == 0 {
		return nil
	}
	rec := new(types.DailyLimit)
	if err := rlp.DecodeBytes(data, rec); err != nil {
		log.Error("Invalid daily limit RLP", "account", account, "err", err)
		return nil
	}
	return rec
}

// WriteDailyLimit stores the daily limit record of an account.
func WriteDailyLimit(db ethdb.KeyValueWriter, account common.Address, rec *types.DailyLimit) {
	data, err := rlp.EncodeToBytes(rec)
	if err != nil {
		panic("failed to encode daily limit: " + err.Error())
	}
	if err := db.Put(accountKey(dailyLimitPrefix, account), data); err != nil {
		panic("failed to write daily limit: " + err.Error())
	}
}

// ReadTokenPrice returns the scaled rate of token, or nil if none is set.
func ReadTokenPrice(db ethdb.KeyValueReader, token common.Address) *big.Int {
	data, _ := db.Get(accountKey(tokenPricePrefix, token))
	if len(data) == 0 {
		return nil
	}
	return new(big.Int).SetBytes(data)
}

// WriteTokenPrice stores the scaled rate of token.
func WriteTokenPrice(db ethdb.KeyValueWriter, token common.Address, rate *big.Int) {
	if err := db.Put(accountKey(tokenPricePrefix, token), rate.Bytes()); err != nil {
		panic("failed to write token price: " + err.Error())
	}
}

// IsPriceManager reports whether addr may publish token prices.
func IsPriceManager(db ethdb.KeyValueReader, addr common.Address) bool {
	ok, _ := db.Has(accountKey(priceManagerPrefix, addr))
	return ok
}

// WritePriceManager grants addr the right to publish token prices.
func WritePriceManager(db ethdb.KeyValueWriter, addr common.Address) {
	if err := db.Put(accountKey(priceManagerPrefix, addr), []byte{0x01}); err != nil {
		panic("failed to write price manager: " + err.Error())
	}
}

// DeletePriceManager revokes the price publishing right of addr.
func DeletePriceManager(db ethdb.KeyValueWriter, addr common.Address) {
	if err := db.Delete(accountKey(priceManagerPrefix, addr)); err != nil {
		panic("failed to delete price manager: " + err.Error())
	}
}

// ReadModuleState returns a storage word a module keeps for an account.
func ReadModuleState(db ethdb.KeyValueReader, module, account common.Address, slot common.Hash) common.Hash {
	data, _ := db.Get(moduleStateKey(module, account, slot))
	return common.BytesToHash(data)
}

// WriteModuleState stores a storage word a module keeps for an account.
func WriteModuleState(db ethdb.KeyValueWriter, module, account common.Address, slot, value common.Hash) {
	if err := db.Put(moduleStateKey(module, account, slot), value.Bytes()); err != nil {
		panic("failed to write module state: " + err.Error())
	}
}
