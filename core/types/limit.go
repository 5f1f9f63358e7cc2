// Copyright 2026 The go-obsidian Authors
// This file is part of the go-obsidian library.

package types

import "math/big"

// DailyLimit is the spending allowance of an account and what it has spent in
// the window ending at PeriodEnd.
type DailyLimit struct {
	Limit     *big.Int
	Spent     *big.Int
	PeriodEnd uint64
}
