// Copyright 2026 The go-obsidian Authors
// This file is part of the go-obsidian library.

package params

import (
	"errors"
	"fmt"
	"math/big"
	"os"

	"github.com/pelletier/go-toml/v2"
)

var (
	errZeroChainID       = errors.New("chain id must be non-zero")
	errZeroLockPeriod    = errors.New("lock period must be non-zero")
	errPriceDecimals     = errors.New("price decimals must be at most 36")
	errZeroLimitPeriod   = errors.New("limit period must be non-zero")
	errNegativeCacheSize = errors.New("signature cache size must not be negative")
)

// RelayConfig is the engine configuration for relayed execution and locking.
type RelayConfig struct {
	ChainID           uint64 `toml:"chain_id"`
	LockPeriod        uint64 `toml:"lock_period"`         // Seconds a guardian lock lasts
	RefundGasOverhead uint64 `toml:"refund_gas_overhead"` // Added to measured gas before refunding
	PriceDecimals     uint8  `toml:"price_decimals"`      // Oracle rates are scaled by 10^PriceDecimals
	LimitPeriod       uint64 `toml:"limit_period"`        // Length of a daily-limit window in seconds
	SigCacheSize      int    `toml:"sig_cache_size"`
}

// DefaultRelayConfig contains the default engine settings.
var DefaultRelayConfig = &RelayConfig{
	ChainID:           1719,
	LockPeriod:        DefaultLockPeriod,
	RefundGasOverhead: RefundGasOverhead,
	PriceDecimals:     DefaultPriceDecimals,
	LimitPeriod:       DefaultLimitPeriod,
	SigCacheSize:      DefaultSigCacheSize,
}

// BigChainID returns the chain id as a big integer for hashing.
func (c *RelayConfig) BigChainID() *big.Int {
	return new(big.Int).SetUint64(c.ChainID)
}

// PriceScale returns the scaling factor applied to oracle rates.
func (c *RelayConfig) PriceScale() *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(c.PriceDecimals)), nil)
}

// Validate reports the first invalid setting.
func (c *RelayConfig) Validate() error {
	switch {
	case c.ChainID == 0:
		return errZeroChainID
	case c.LockPeriod == 0:
		return errZeroLockPeriod
	case c.PriceDecimals > 36:
		return errPriceDecimals
	case c.LimitPeriod == 0:
		return errZeroLimitPeriod
	case c.SigCacheSize < 0:
		return errNegativeCacheSize
	}
	return nil
}

// LoadRelayConfig reads a TOML file over a copy of DefaultRelayConfig and
// validates the result. Keys absent from the file keep their default.
func LoadRelayConfig(path string) (*RelayConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := *DefaultRelayConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}
