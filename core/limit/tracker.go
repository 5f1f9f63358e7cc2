// Copyright 2026 The go-obsidian Authors
// This file is part of the go-obsidian library.

// Package limit tracks per-account daily spending allowances.
//
// Spent amounts roll over when the current window ends. Other workflows (a
// guardian-approved transfer) may reset the spent amount at any time, so
// readers must always go back to the store.
package limit

import (
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethdb"

	"github.com/HITEYY/obsidian-relayer/core/rawdb"
	"github.com/HITEYY/obsidian-relayer/core/state"
	"github.com/HITEYY/obsidian-relayer/core/types"
)

var errNegativeAmount = errors.New("limit: negative amount")

// Tracker implements the daily limit bookkeeping of every account.
type Tracker struct {
	period uint64
}

// NewTracker creates a tracker whose windows last period seconds.
func NewTracker(period uint64) *Tracker {
	return &Tracker{period: period}
}

// SetLimit configures the allowance of account. A nil limit removes it.
func (t *Tracker) SetLimit(db state.Accessor, account common.Address, limit *big.Int) {
	rec := rawdb.ReadDailyLimit(db, account)
	if rec == nil {
		rec = &types.DailyLimit{Spent: new(big.Int)}
	}
	rec.Limit = limit
	if limit == nil {
		rec.Limit = new(big.Int)
	}
	rawdb.WriteDailyLimit(db, account, rec)
}

// SetLimitAndDailySpent overwrites both the allowance and the amount already
// spent in the current window.
func (t *Tracker) SetLimitAndDailySpent(db state.Accessor, account common.Address, limit, spent *big.Int, now uint64) {
	rawdb.WriteDailyLimit(db, account, &types.DailyLimit{
		Limit:     new(big.Int).Set(limit),
		Spent:     new(big.Int).Set(spent),
		PeriodEnd: now + t.period,
	})
}

// Limit returns the allowance of account, or nil when unlimited.
func (t *Tracker) Limit(db ethdb.KeyValueReader, account common.Address) *big.Int {
	rec := rawdb.ReadDailyLimit(db, account)
	if rec == nil || rec.Limit == nil || rec.Limit.Sign() == 0 {
		return nil
	}
	return new(big.Int).Set(rec.Limit)
}

// DailySpent returns what account has spent in the window containing now.
func (t *Tracker) DailySpent(db ethdb.KeyValueReader, account common.Address, now uint64) *big.Int {
	rec := rawdb.ReadDailyLimit(db, account)
	if rec == nil || rec.Spent == nil || now >= rec.PeriodEnd {
		return new(big.Int)
	}
	return new(big.Int).Set(rec.Spent)
}

// ReportSpend records amount against the allowance of account. It returns
// false, leaving the record untouched, when the spend would exceed the
// remaining allowance. Accounts without an allowance always succeed.
func (t *Tracker) ReportSpend(db state.Accessor, account common.Address, amount *big.Int, now uint64) (bool, error) {
	if amount.Sign() < 0 {
		return false, errNegativeAmount
	}
	rec := rawdb.ReadDailyLimit(db, account)
	if rec == nil || rec.Limit == nil || rec.Limit.Sign() == 0 {
		return true, nil
	}
	spent := t.DailySpent(db, account, now)
	periodEnd := rec.PeriodEnd
	if now >= periodEnd {
		periodEnd = now + t.period
	}
	total := new(big.Int).Add(spent, amount)
	if total.Cmp(rec.Limit) > 0 {
		return false, nil
	}
	rawdb.WriteDailyLimit(db, account, &types.DailyLimit{Limit: rec.Limit, Spent: total, PeriodEnd: periodEnd})
	return true, nil
}

// ResetDailySpent zeroes the spent amount of account, keeping its window.
func (t *Tracker) ResetDailySpent(db state.Accessor, account common.Address) {
	rec := rawdb.ReadDailyLimit(db, account)
	if rec == nil {
		return
	}
	rec.Spent = new(big.Int)
	rawdb.WriteDailyLimit(db, account, rec)
}
