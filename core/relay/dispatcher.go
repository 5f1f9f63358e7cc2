// Copyright 2026 The go-obsidian Authors
// This file is part of the go-obsidian library.
//
// Dispatcher validates relayed instructions, invokes their target module and
// refunds the relayer, as one atomic call.

package relay

import (
	"bytes"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethdb"
	"github.com/ethereum/go-ethereum/log"

	"github.com/HITEYY/obsidian-relayer/core/guardian"
	"github.com/HITEYY/obsidian-relayer/core/types"
	"github.com/HITEYY/obsidian-relayer/params"
)

// DispatcherAddress is the identity accounts authorise to accept relays.
var DispatcherAddress = common.HexToAddress("0x0000000000000000000000000000000000AA0D15")

const reasonOutOfGas = "out of gas"

// AccountDirectory answers ownership and module questions about accounts.
type AccountDirectory interface {
	guardian.OwnerLookup
	guardian.ModuleLookup
}

// Dispatcher is the relay entry point.
type Dispatcher struct {
	config   *params.RelayConfig
	address  common.Address
	accounts AccountDirectory
	verifier *Verifier
	replay   *ReplayGuard
	refunds  *RefundAccountant
	modules  map[common.Address]Module
	logger   log.Logger
}

// NewDispatcher creates a dispatcher living at DispatcherAddress.
func NewDispatcher(config *params.RelayConfig, accounts AccountDirectory, guardians *guardian.Consensus, refunds *RefundAccountant) *Dispatcher {
	return &Dispatcher{
		config:   config,
		address:  DispatcherAddress,
		accounts: accounts,
		verifier: NewVerifier(accounts, guardians, config.SigCacheSize),
		replay:   new(ReplayGuard),
		refunds:  refunds,
		modules:  make(map[common.Address]Module),
		logger:   log.New("module", "relay"),
	}
}

// Address returns the dispatcher identity.
func (d *Dispatcher) Address() common.Address {
	return d.address
}

// Register makes a module reachable through Relay.
func (d *Dispatcher) Register(m Module) {
	d.modules[m.Address()] = m
}

// CurrentNonce returns the last accepted relay nonce of account.
func (d *Dispatcher) CurrentNonce(db ethdb.KeyValueReader, account common.Address) *big.Int {
	return d.replay.CurrentNonce(db, account)
}

// Relay executes req on behalf of its account. A non-nil error means nothing
// was applied to statedb. Otherwise the nonce is consumed and the result tells
// whether the module succeeded.
func (d *Dispatcher) Relay(statedb StateDB, env Env, req *types.RelayRequest) (*types.RelayResult, error) {
	result, err := d.relay(statedb, env, req)
	if err != nil {
		relayRejectedMeter.Mark(1)
		d.logger.Warn("Relay rejected", "account", req.Account, "module", req.Module, "nonce", req.Nonce, "err", err)
		return nil, err
	}
	relayAcceptedMeter.Mark(1)
	if !result.Success {
		relayFailedMeter.Mark(1)
	}
	d.logger.Info("Relayed call", "account", req.Account, "module", req.Module, "nonce", req.Nonce,
		"success", result.Success, "reason", result.Reason, "gas", result.GasUsed)
	return result, nil
}

func (d *Dispatcher) relay(statedb StateDB, env Env, req *types.RelayRequest) (*types.RelayResult, error) {
	if len(req.Data) < types.MinInstructionLength {
		return nil, fmt.Errorf("%w: %d bytes", ErrMalformedInstruction, len(req.Data))
	}
	if !d.accounts.IsAuthorizedModule(statedb, req.Account, req.Module) {
		return nil, ErrModuleNotAuthorized
	}
	if !d.accounts.IsAuthorizedModule(statedb, req.Account, d.address) {
		return nil, ErrDispatcherNotAuthorized
	}
	if req.AccountRef() != req.Account {
		return nil, ErrTargetMismatch
	}
	if req.Module == d.address && bytes.Equal(req.Selector(), DispatcherABI.Methods["execute"].ID) {
		return nil, ErrDisabledMethod
	}
	if env.Gas < req.GasLimit {
		return nil, fmt.Errorf("%w: have %d, want %d", ErrInsufficientBudget, env.Gas, req.GasLimit)
	}
	module, ok := d.modules[req.Module]
	if !ok {
		return nil, ErrUnknownModule
	}
	policy, err := module.RequiredSignatures(statedb, req.Account, req.Data)
	if err != nil {
		if types.Class(err) == nil {
			err = fmt.Errorf("%w: %v", ErrMalformedInstruction, err)
		}
		return nil, err
	}
	hash := req.SignHash(d.config.BigChainID(), d.address)
	if err := d.verifier.Verify(statedb, req.Account, hash, req.Signatures, policy); err != nil {
		return nil, err
	}
	if err := d.replay.Check(statedb, req.Account, req.Nonce); err != nil {
		return nil, err
	}

	// Everything from here on is undone if the refund fails.
	base := statedb.Snapshot()
	d.replay.Commit(statedb, req.Account, req.Nonce)

	result := d.invoke(statedb, env, req, module)

	gasPrice := req.GasPrice
	if gasPrice == nil || gasPrice.Sign() <= 0 {
		return result, nil
	}
	recipient := req.RefundRecipient
	if recipient == (common.Address{}) {
		recipient = env.Sender
	}
	refund, err := d.refunds.Settle(statedb, req.Account, recipient, req.RefundAsset, result.GasUsed, req.GasLimit, gasPrice, env.Time)
	if err != nil {
		statedb.RevertToSnapshot(base)
		refundRevertMeter.Mark(1)
		return nil, err
	}
	refundSettledMeter.Mark(1)
	refundGasCounter.Inc(int64(result.GasUsed))
	result.Refund = refund
	return result, nil
}

// invoke runs the module, reverting its writes on failure. The measured gas
// covers the instruction data and every write the module made.
func (d *Dispatcher) invoke(statedb StateDB, env Env, req *types.RelayRequest, module Module) *types.RelayResult {
	snap := statedb.Snapshot()
	err := module.Invoke(&Call{
		State:   statedb,
		Account: req.Account,
		Caller:  d.address,
		Time:    env.Time,
		Data:    req.Data,
	})
	gasUsed := IntrinsicGas(req.Data) + uint64(statedb.Writes(snap))*params.StateWriteGas

	result := &types.RelayResult{Success: true, GasUsed: gasUsed}
	switch {
	case err != nil:
		statedb.RevertToSnapshot(snap)
		result.Success, result.Reason = false, err.Error()
	case gasUsed > req.GasLimit:
		statedb.RevertToSnapshot(snap)
		result.Success, result.Reason = false, reasonOutOfGas
	}
	if result.GasUsed > req.GasLimit {
		result.GasUsed = req.GasLimit
	}
	d.logger.Debug("Module invoked", "account", req.Account, "module", req.Module, "gas", gasUsed, "err", err)
	return result
}

// IntrinsicGas is the base cost of relaying data.
func IntrinsicGas(data []byte) uint64 {
	gas := params.TxGas
	for _, b := range data {
		if b == 0 {
			gas += params.TxDataZeroGas
		} else {
			gas += params.TxDataNonZeroGas
		}
	}
	return gas
}
