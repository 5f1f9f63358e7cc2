// Copyright 2026 The go-obsidian Authors
// This file is part of the go-obsidian library.

package relay

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethdb"
	"github.com/ethereum/go-ethereum/log"

	"github.com/HITEYY/obsidian-relayer/core/state"
	"github.com/HITEYY/obsidian-relayer/core/types"
	"github.com/HITEYY/obsidian-relayer/params"
)

// PriceOracle converts token amounts into the native asset.
type PriceOracle interface {
	// Rate returns how many token units buy one native unit, scaled by
	// 10^PriceDecimals, or nil when the token has no price.
	Rate(db ethdb.KeyValueReader, asset common.Address) *big.Int
}

// SpendingLimitTracker is the optional daily allowance of accounts. Spent
// amounts may be reset by other workflows between calls.
type SpendingLimitTracker interface {
	ReportSpend(db state.Accessor, account common.Address, amount *big.Int, now uint64) (bool, error)
	DailySpent(db ethdb.KeyValueReader, account common.Address, now uint64) *big.Int
}

// Ledger moves asset balances between holders.
type Ledger interface {
	Transfer(db state.Accessor, asset, from, to common.Address, amount *big.Int) error
}

// RefundAccountant reimburses relayers from the relayed account.
type RefundAccountant struct {
	config *params.RelayConfig
	ledger Ledger
	oracle PriceOracle
	limits SpendingLimitTracker // nil disables limit checks
}

// NewRefundAccountant creates an accountant. limits may be nil.
func NewRefundAccountant(config *params.RelayConfig, ledger Ledger, oracle PriceOracle, limits SpendingLimitTracker) *RefundAccountant {
	return &RefundAccountant{
		config: config,
		ledger: ledger,
		oracle: oracle,
		limits: limits,
	}
}

// Cost returns the native cost of gasUsed units: the measured gas plus the
// fixed overhead, capped at gasLimit, times gasPrice.
func (a *RefundAccountant) Cost(gasUsed, gasLimit uint64, gasPrice *big.Int) *big.Int {
	gas := gasUsed + a.config.RefundGasOverhead
	if gas < gasUsed || gas > gasLimit {
		gas = gasLimit
	}
	return new(big.Int).Mul(new(big.Int).SetUint64(gas), gasPrice)
}

// Amount converts a native cost into asset units.
func (a *RefundAccountant) Amount(db ethdb.KeyValueReader, asset common.Address, cost *big.Int) (*big.Int, error) {
	if asset == params.NativeAsset {
		return new(big.Int).Set(cost), nil
	}
	rate := a.oracle.Rate(db, asset)
	if rate == nil || rate.Sign() <= 0 {
		return nil, fmt.Errorf("%w: no price for %s", ErrRefundFailed, asset)
	}
	amount := new(big.Int).Mul(cost, rate)
	return amount.Quo(amount, a.config.PriceScale()), nil
}

// Settle charges account for gasUsed and pays recipient. The native cost is
// reported to the spending limit before any funds move.
func (a *RefundAccountant) Settle(db state.Accessor, account, recipient, asset common.Address, gasUsed, gasLimit uint64, gasPrice *big.Int, now uint64) (*types.Refund, error) {
	cost := a.Cost(gasUsed, gasLimit, gasPrice)
	if a.limits != nil {
		ok, err := a.limits.ReportSpend(db, account, cost, now)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRefundFailed, err)
		}
		if !ok {
			log.Debug("Refund above daily limit", "account", account, "cost", cost,
				"spent", a.limits.DailySpent(db, account, now))
			return nil, ErrRefundExceedsDailyLimit
		}
	}
	amount, err := a.Amount(db, asset, cost)
	if err != nil {
		return nil, err
	}
	if err := a.ledger.Transfer(db, asset, account, recipient, amount); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRefundFailed, err)
	}
	log.Debug("Refund settled", "account", account, "recipient", recipient, "asset", asset, "amount", amount)

	return &types.Refund{
		Account:   account,
		Recipient: recipient,
		Asset:     asset,
		Amount:    amount,
		Cost:      cost,
	}, nil
}
