// Copyright 2026 The go-obsidian Authors
// This file is part of the go-obsidian library.
//
// Processor wires the relay engine over one database and applies every
// top-level call atomically.

package core

import (
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/rpc"

	"github.com/HITEYY/obsidian-relayer/core/guardian"
	"github.com/HITEYY/obsidian-relayer/core/limit"
	"github.com/HITEYY/obsidian-relayer/core/lock"
	"github.com/HITEYY/obsidian-relayer/core/modules/admin"
	"github.com/HITEYY/obsidian-relayer/core/modules/transfer"
	"github.com/HITEYY/obsidian-relayer/core/oracle"
	"github.com/HITEYY/obsidian-relayer/core/relay"
	"github.com/HITEYY/obsidian-relayer/core/state"
	"github.com/HITEYY/obsidian-relayer/core/types"
	"github.com/HITEYY/obsidian-relayer/core/wallet"
	"github.com/HITEYY/obsidian-relayer/params"
)

// Processor serialises relay, lock and query operations over a database.
type Processor struct {
	mu     sync.Mutex
	db     state.Database
	config *params.RelayConfig
	clock  func() uint64

	accounts   *wallet.Directory
	guardians  *guardian.Storage
	consensus  *guardian.Consensus
	limits     *limit.Tracker
	prices     *oracle.Registry
	dispatcher *relay.Dispatcher
	locks      *lock.Manager
}

// NewProcessor creates a processor with the lock manager, the admin module
// and the approved transfer module registered.
func NewProcessor(db state.Database, config *params.RelayConfig) (*Processor, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid relay config: %w", err)
	}
	p := &Processor{
		db:       db,
		config:   config,
		clock:    func() uint64 { return uint64(time.Now().Unix()) },
		accounts: wallet.NewDirectory(),
		limits:   limit.NewTracker(config.LimitPeriod),
		prices:   oracle.NewRegistry(),
	}
	p.guardians = guardian.NewStorage(p.accounts)
	p.consensus = guardian.NewConsensus(p.guardians, p.accounts, p.accounts)

	refunds := relay.NewRefundAccountant(config, p.accounts, p.prices, p.limits)
	p.dispatcher = relay.NewDispatcher(config, p.accounts, p.consensus, refunds)
	p.locks = lock.NewManager(config, p.consensus)

	for _, m := range []relay.Module{p.locks, admin.New(p.accounts), transfer.New(p.consensus, p.accounts, p.limits)} {
		if err := p.Register(m); err != nil {
			return nil, err
		}
	}

	log.Info("Relay processor initialised", "chainid", config.ChainID, "dispatcher", p.dispatcher.Address(),
		"lockperiod", config.LockPeriod, "decimals", config.PriceDecimals)
	return p, nil
}

// SetClock replaces the time source, in seconds.
func (p *Processor) SetClock(clock func() uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.clock = clock
}

func (p *Processor) Accounts() *wallet.Directory   { return p.accounts }
func (p *Processor) Guardians() *guardian.Storage  { return p.guardians }
func (p *Processor) Limits() *limit.Tracker        { return p.limits }
func (p *Processor) Prices() *oracle.Registry      { return p.prices }
func (p *Processor) Dispatcher() *relay.Dispatcher { return p.dispatcher }
func (p *Processor) LockManager() *lock.Manager    { return p.locks }

// Register adds a relay module and records it in the module registry, so
// owners can add it to their accounts.
func (p *Processor) Register(m relay.Module) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	st := state.New(p.db)
	p.accounts.RegisterModule(st, m.Address())
	if err := st.Commit(); err != nil {
		return err
	}
	p.dispatcher.Register(m)
	return nil
}

// Update runs fn over a fresh state and commits its writes if fn succeeds.
// It is how collaborators such as the account directory are set up.
func (p *Processor) Update(fn func(st state.Accessor, now uint64) error) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	st := state.New(p.db)
	if err := fn(st, p.clock()); err != nil {
		return err
	}
	return st.Commit()
}

// Relay submits req on behalf of sender, who supplies gas.
func (p *Processor) Relay(sender common.Address, gas uint64, req *types.RelayRequest) (*types.RelayResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	st := state.New(p.db)
	res, err := p.dispatcher.Relay(st, relay.Env{Sender: sender, Gas: gas, Time: p.clock()}, req)
	if err != nil {
		return nil, err
	}
	if err := st.Commit(); err != nil {
		return nil, err
	}
	return res, nil
}

// Execute decodes an ABI encoded execute call and relays it.
func (p *Processor) Execute(sender common.Address, gas uint64, input []byte) (*types.RelayResult, error) {
	req, err := relay.UnpackRequest(input)
	if err != nil {
		return nil, err
	}
	return p.Relay(sender, gas, req)
}

// Lock locks account on behalf of a guardian and returns the release time.
func (p *Processor) Lock(caller, account common.Address) (uint64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	st := state.New(p.db)
	release, err := p.locks.Lock(st, caller, account, p.clock())
	if err != nil {
		return 0, err
	}
	return release, st.Commit()
}

// Unlock releases a lock set by the lock manager.
func (p *Processor) Unlock(caller, account common.Address) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	st := state.New(p.db)
	if err := p.locks.Unlock(st, caller, account, p.clock()); err != nil {
		return err
	}
	return st.Commit()
}

// IsLocked reports whether the lock manager holds an active lock on account.
func (p *Processor) IsLocked(account common.Address) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.locks.IsLocked(p.db, account, p.clock())
}

// GetLock returns the release time of the active lock on account, or 0.
func (p *Processor) GetLock(account common.Address) uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.locks.GetLock(p.db, account, p.clock())
}

// CurrentNonce returns the last accepted relay nonce of account.
func (p *Processor) CurrentNonce(account common.Address) *big.Int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dispatcher.CurrentNonce(p.db, account)
}

// APIs returns the RPC services of the processor.
func (p *Processor) APIs() []rpc.API {
	return []rpc.API{{
		Namespace: "relay",
		Service:   &API{processor: p},
	}}
}
