// Copyright 2026 The go-obsidian Authors
// This file is part of the go-obsidian library.
//
// Database key layout for account-indexed relay and guardian state.

package rawdb

import "github.com/ethereum/go-ethereum/common"

var (
	// ownerPrefix + account -> owner address
	ownerPrefix = []byte("wo-")

	// modulePrefix + account + module -> 0x01 when the module is authorised
	modulePrefix = []byte("wm-")

	// registryPrefix + module -> 0x01 when the module may be added to accounts
	registryPrefix = []byte("mr-")

	// guardianPrefix + account -> RLP list of guardian addresses
	guardianPrefix = []byte("wg-")

	// relayNoncePrefix + account -> big-endian last accepted relay nonce
	relayNoncePrefix = []byte("rn-")

	// lockPrefix + account -> RLP(LockRecord)
	lockPrefix = []byte("wl-")

	// balancePrefix + asset + holder -> 32 byte balance
	balancePrefix = []byte("bl-")

	// dailyLimitPrefix + account -> RLP(DailyLimit)
	dailyLimitPrefix = []byte("dl-")

	// tokenPricePrefix + token -> big-endian scaled rate
	tokenPricePrefix = []byte("tp-")

	// priceManagerPrefix + manager -> 0x01 when allowed to set token prices
	priceManagerPrefix = []byte("pm-")

	// moduleStatePrefix + module + account + slot -> 32 byte word
	moduleStatePrefix = []byte("ms-")
)

func accountKey(prefix []byte, account common.Address) []byte {
	key := make([]byte, 0, len(prefix)+common.AddressLength)
	key = append(key, prefix...)
	return append(key, account.Bytes()...)
}

func pairKey(prefix []byte, a, b common.Address) []byte {
	key := make([]byte, 0, len(prefix)+2*common.AddressLength)
	key = append(key, prefix...)
	key = append(key, a.Bytes()...)
	return append(key, b.Bytes()...)
}

func moduleStateKey(module, account common.Address, slot common.Hash) []byte {
	key := pairKey(moduleStatePrefix, module, account)
	return append(key, slot.Bytes()...)
}
