// Copyright 2026 The go-obsidian Authors

package limit

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethdb/memorydb"
	"github.com/stretchr/testify/require"

	"github.com/HITEYY/obsidian-relayer/core/state"
)

var account = common.HexToAddress("0x1111111111111111111111111111111111111111")

func TestUnlimitedAccount(t *testing.T) {
	st := state.New(memorydb.New())
	tr := NewTracker(86400)

	ok, err := tr.ReportSpend(st, account, big.NewInt(1e18), 10)
	require.NoError(t, err)
	require.True(t, ok)
	require.Nil(t, tr.Limit(st, account))
	require.Zero(t, tr.DailySpent(st, account, 10).Sign())
}

func TestReportSpendWithinWindow(t *testing.T) {
	st := state.New(memorydb.New())
	tr := NewTracker(100)
	tr.SetLimitAndDailySpent(st, account, big.NewInt(1000), big.NewInt(10), 0)

	ok, err := tr.ReportSpend(st, account, big.NewInt(500), 5)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, int64(510), tr.DailySpent(st, account, 5).Int64())

	ok, err = tr.ReportSpend(st, account, big.NewInt(491), 6)
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, int64(510), tr.DailySpent(st, account, 6).Int64(), "rejected spend must not be recorded")
}

func TestReportSpendRollsOver(t *testing.T) {
	st := state.New(memorydb.New())
	tr := NewTracker(100)
	tr.SetLimitAndDailySpent(st, account, big.NewInt(1000), big.NewInt(999), 0)

	require.Zero(t, tr.DailySpent(st, account, 100).Sign())
	ok, err := tr.ReportSpend(st, account, big.NewInt(900), 150)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, int64(900), tr.DailySpent(st, account, 249).Int64())
	require.Zero(t, tr.DailySpent(st, account, 250).Sign())
}

func TestResetDailySpent(t *testing.T) {
	st := state.New(memorydb.New())
	tr := NewTracker(100)
	tr.SetLimitAndDailySpent(st, account, big.NewInt(1000), big.NewInt(700), 0)

	tr.ResetDailySpent(st, account)
	require.Zero(t, tr.DailySpent(st, account, 1).Sign())
	require.Equal(t, int64(1000), tr.Limit(st, account).Int64())

	_, err := tr.ReportSpend(st, account, big.NewInt(-1), 1)
	require.Error(t, err)
}

func TestSetLimit(t *testing.T) {
	st := state.New(memorydb.New())
	tr := NewTracker(100)

	tr.SetLimit(st, account, big.NewInt(5))
	require.Equal(t, int64(5), tr.Limit(st, account).Int64())
	tr.SetLimit(st, account, nil)
	require.Nil(t, tr.Limit(st, account))
}
