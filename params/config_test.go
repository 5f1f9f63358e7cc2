// Copyright 2026 The go-obsidian Authors
// This file is part of the go-obsidian library.

package params

import (
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "relay.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadRelayConfigFillsDefaults(t *testing.T) {
	path := writeConfig(t, "chain_id = 5\nlock_period = 120\n")

	cfg, err := LoadRelayConfig(path)
	require.NoError(t, err)
	require.Equal(t, uint64(5), cfg.ChainID)
	require.Equal(t, uint64(120), cfg.LockPeriod)
	require.Equal(t, RefundGasOverhead, cfg.RefundGasOverhead)
	require.Equal(t, DefaultPriceDecimals, cfg.PriceDecimals)
	require.Equal(t, DefaultLimitPeriod, cfg.LimitPeriod)
	require.Equal(t, DefaultSigCacheSize, cfg.SigCacheSize)
}

func TestLoadRelayConfigKeepsExplicitZero(t *testing.T) {
	path := writeConfig(t, "price_decimals = 0\nrefund_gas_overhead = 0\n")

	cfg, err := LoadRelayConfig(path)
	require.NoError(t, err)
	require.Zero(t, cfg.PriceDecimals)
	require.Zero(t, cfg.RefundGasOverhead)
	require.Equal(t, 0, cfg.PriceScale().Cmp(big.NewInt(1)))
	require.Equal(t, DefaultRelayConfig.ChainID, cfg.ChainID)
	require.Equal(t, DefaultPriceDecimals, DefaultRelayConfig.PriceDecimals, "defaults must not be mutated")
}

func TestLoadRelayConfigRejectsExplicitZeroChainID(t *testing.T) {
	path := writeConfig(t, "chain_id = 0\n")

	_, err := LoadRelayConfig(path)
	require.ErrorIs(t, err, errZeroChainID)
}

func TestLoadRelayConfigRejectsInvalid(t *testing.T) {
	path := writeConfig(t, "price_decimals = 40\n")

	_, err := LoadRelayConfig(path)
	require.ErrorIs(t, err, errPriceDecimals)
}

func TestLoadRelayConfigMalformed(t *testing.T) {
	path := writeConfig(t, "chain_id = \"one\"\n")

	_, err := LoadRelayConfig(path)
	require.Error(t, err)
}

func TestPriceScale(t *testing.T) {
	cfg := &RelayConfig{PriceDecimals: 6}
	require.Equal(t, 0, cfg.PriceScale().Cmp(big.NewInt(1_000_000)))
}
