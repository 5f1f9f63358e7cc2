// Copyright 2026 The go-obsidian Authors

package transfer

import (
	"bytes"
	"crypto/ecdsa"
	"math/big"
	"sort"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethdb/memorydb"
	"github.com/stretchr/testify/require"

	"github.com/HITEYY/obsidian-relayer/core/guardian"
	"github.com/HITEYY/obsidian-relayer/core/limit"
	"github.com/HITEYY/obsidian-relayer/core/modules"
	"github.com/HITEYY/obsidian-relayer/core/rawdb"
	"github.com/HITEYY/obsidian-relayer/core/relay"
	"github.com/HITEYY/obsidian-relayer/core/state"
	"github.com/HITEYY/obsidian-relayer/core/types"
	"github.com/HITEYY/obsidian-relayer/core/wallet"
	"github.com/HITEYY/obsidian-relayer/params"
)

var (
	account   = common.HexToAddress("0x00000000000000000000000000000000000acc01")
	recipient = common.HexToAddress("0x0000000000000000000000000000000000000bee")
	extension = common.HexToAddress("0x0000000000000000000000000000000000000e57")
)

type harness struct {
	st         *state.StateDB
	config     params.RelayConfig
	dir        *wallet.Directory
	storage    *guardian.Storage
	limits     *limit.Tracker
	dispatcher *relay.Dispatcher
	owner      *ecdsa.PrivateKey
	guardians  []*ecdsa.PrivateKey
}

func newHarness(t *testing.T, guardianCount int) *harness {
	h := &harness{
		st:     state.New(memorydb.New()),
		config: *params.DefaultRelayConfig,
		dir:    wallet.NewDirectory(),
	}
	h.storage = guardian.NewStorage(h.dir)
	h.limits = limit.NewTracker(h.config.LimitPeriod)
	consensus := guardian.NewConsensus(h.storage, h.dir, h.dir)
	refunds := relay.NewRefundAccountant(&h.config, h.dir, nil, h.limits)
	h.dispatcher = relay.NewDispatcher(&h.config, h.dir, consensus, refunds)
	h.dispatcher.Register(New(consensus, h.dir, h.limits))

	var err error
	h.owner, err = crypto.GenerateKey()
	require.NoError(t, err)
	require.NoError(t, h.dir.Init(h.st, account, crypto.PubkeyToAddress(h.owner.PublicKey), ModuleAddress, relay.DispatcherAddress))
	for i := 0; i < guardianCount; i++ {
		key, err := crypto.GenerateKey()
		require.NoError(t, err)
		require.NoError(t, h.storage.AddGuardian(h.st, account, crypto.PubkeyToAddress(key.PublicKey)))
		h.guardians = append(h.guardians, key)
	}
	require.NoError(t, h.dir.Credit(h.st, params.NativeAsset, account, big.NewInt(1000)))
	return h
}

func (h *harness) request(t *testing.T, nonce int64, amount int64, keys ...*ecdsa.PrivateKey) *types.RelayRequest {
	data, err := ABI.Pack("transferToken", account, params.NativeAsset, recipient, big.NewInt(amount), []byte{})
	require.NoError(t, err)
	return h.signed(t, nonce, data, keys...)
}

func (h *harness) signed(t *testing.T, nonce int64, data []byte, keys ...*ecdsa.PrivateKey) *types.RelayRequest {
	req := &types.RelayRequest{
		Account:  account,
		Module:   ModuleAddress,
		Data:     data,
		Nonce:    big.NewInt(nonce),
		GasPrice: new(big.Int),
		GasLimit: 500_000,
	}
	sort.Slice(keys, func(i, j int) bool {
		return bytes.Compare(crypto.PubkeyToAddress(keys[i].PublicKey).Bytes(), crypto.PubkeyToAddress(keys[j].PublicKey).Bytes()) < 0
	})
	hash := req.SignHash(h.config.BigChainID(), relay.DispatcherAddress)
	for _, key := range keys {
		sig, err := crypto.Sign(hash.Bytes(), key)
		require.NoError(t, err)
		req.Signatures = append(req.Signatures, sig)
	}
	return req
}

func (h *harness) env() relay.Env {
	return relay.Env{Sender: recipient, Gas: 1_000_000, Time: 100}
}

func TestApprovedTransferResetsDailySpent(t *testing.T) {
	h := newHarness(t, 1)
	h.limits.SetLimitAndDailySpent(h.st, account, big.NewInt(500), big.NewInt(400), 100)

	res, err := h.dispatcher.Relay(h.st, h.env(), h.request(t, 1, 600, h.owner, h.guardians[0]))
	require.NoError(t, err)
	require.True(t, res.Success, res.Reason)
	require.Equal(t, int64(600), h.dir.Balance(h.st, params.NativeAsset, recipient).Int64())
	require.Zero(t, h.limits.DailySpent(h.st, account, 100).Sign())
}

func TestApprovedTransferMajority(t *testing.T) {
	h := newHarness(t, 3)

	_, err := h.dispatcher.Relay(h.st, h.env(), h.request(t, 1, 1, h.owner, h.guardians[0]))
	require.ErrorIs(t, err, relay.ErrWrongSignatureCount)

	res, err := h.dispatcher.Relay(h.st, h.env(), h.request(t, 1, 1, h.owner, h.guardians[0], h.guardians[2]))
	require.NoError(t, err)
	require.True(t, res.Success, res.Reason)
}

func TestApprovedTransferRefusedWhileLocked(t *testing.T) {
	h := newHarness(t, 1)
	rawdb.WriteLock(h.st, account, &types.LockRecord{ReleaseTime: 200, Locker: common.HexToAddress("0x10c4")})

	res, err := h.dispatcher.Relay(h.st, h.env(), h.request(t, 1, 10, h.owner, h.guardians[0]))
	require.NoError(t, err)
	require.False(t, res.Success)
	require.Equal(t, ErrAccountLocked.Error(), res.Reason)
	require.Zero(t, h.dir.Balance(h.st, params.NativeAsset, recipient).Sign())
}

func TestApprovedTransferInsufficientBalance(t *testing.T) {
	h := newHarness(t, 1)

	res, err := h.dispatcher.Relay(h.st, h.env(), h.request(t, 1, 5000, h.owner, h.guardians[0]))
	require.NoError(t, err)
	require.False(t, res.Success)
	require.Contains(t, res.Reason, wallet.ErrInsufficientBalance.Error())
}

func TestRelayedAddModuleNeedsOwner(t *testing.T) {
	h := newHarness(t, 1)
	h.dir.RegisterModule(h.st, extension)
	data, err := ABI.Pack("addModule", account, extension)
	require.NoError(t, err)

	res, err := h.dispatcher.Relay(h.st, h.env(), h.signed(t, 1, data, h.owner, h.guardians[0]))
	require.NoError(t, err)
	require.False(t, res.Success)
	require.Equal(t, modules.ErrNotOwner.Error(), res.Reason)
	require.False(t, h.dir.IsAuthorizedModule(h.st, account, extension))
	require.Equal(t, uint64(1), h.dispatcher.CurrentNonce(h.st, account).Uint64())
}

func TestAddModuleByOwner(t *testing.T) {
	h := newHarness(t, 1)
	m := New(guardian.NewConsensus(h.storage, h.dir, h.dir), h.dir, h.limits)
	owner := crypto.PubkeyToAddress(h.owner.PublicKey)

	require.ErrorIs(t, m.AddModule(h.st, owner, account, extension), modules.ErrUnregisteredModule)
	h.dir.RegisterModule(h.st, extension)
	require.ErrorIs(t, m.AddModule(h.st, recipient, account, extension), modules.ErrNotOwner)
	require.NoError(t, m.AddModule(h.st, owner, account, extension))
	require.True(t, h.dir.IsAuthorizedModule(h.st, account, extension))
	require.ErrorIs(t, m.AddModule(h.st, owner, account, extension), modules.ErrModuleAlreadyAdded)
}
