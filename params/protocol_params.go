// Copyright 2026 The go-obsidian Authors
// This file is part of the go-obsidian library.

package params

import "github.com/ethereum/go-ethereum/common"

// NativeAsset is the pseudo token address denoting the chain's primary asset.
var NativeAsset = common.HexToAddress("0xEeeeeEeeeEeEeeEeEeEeeEEEeeeeEeeeeeeeEEeE")

const (
	TxGas                 uint64 = 21000 // Base cost charged for every relayed instruction
	TxDataNonZeroGas      uint64 = 16    // Per non-zero byte of instruction data
	TxDataZeroGas         uint64 = 4     // Per zero byte of instruction data
	StateWriteGas         uint64 = 5000  // Per key written by a module during invocation
	RefundGasOverhead     uint64 = 30000 // Gas spent outside the metered section (nonce, refund transfer)
	DefaultLockPeriod     uint64 = 5 * 24 * 60 * 60
	DefaultLimitPeriod    uint64 = 24 * 60 * 60
	DefaultPriceDecimals  uint8  = 18
	DefaultSigCacheSize          = 4096
	MaxGuardianResolution        = 4 // Nesting depth followed when a guardian is itself an account
)
