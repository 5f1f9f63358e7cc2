// Copyright 2026 The go-obsidian Authors

package oracle

import (
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethdb/memorydb"

	"github.com/HITEYY/obsidian-relayer/core/state"
	"github.com/HITEYY/obsidian-relayer/params"
)

var (
	manager = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	token   = common.HexToAddress("0x00000000000000000000000000000000000000b2")
)

func TestSetPrice(t *testing.T) {
	st := state.New(memorydb.New())
	r := NewRegistry()

	if err := r.SetPrice(st, manager, token, big.NewInt(5)); !errors.Is(err, ErrNotManager) {
		t.Fatalf("expected ErrNotManager, got %v", err)
	}
	if r.Rate(st, token) != nil {
		t.Fatal("unpublished token should have no rate")
	}

	r.AddManager(st, manager)
	if err := r.SetPrice(st, manager, token, big.NewInt(5)); err != nil {
		t.Fatalf("SetPrice: %v", err)
	}
	if rate := r.Rate(st, token); rate == nil || rate.Int64() != 5 {
		t.Fatalf("rate = %v, want 5", rate)
	}
}

func TestSetPriceRejectsBadInput(t *testing.T) {
	st := state.New(memorydb.New())
	r := NewRegistry()
	r.AddManager(st, manager)

	if err := r.SetPrice(st, manager, token, big.NewInt(0)); !errors.Is(err, ErrInvalidPrice) {
		t.Fatalf("expected ErrInvalidPrice, got %v", err)
	}
	if err := r.SetPrice(st, manager, params.NativeAsset, big.NewInt(1)); !errors.Is(err, ErrNativeAsset) {
		t.Fatalf("expected ErrNativeAsset, got %v", err)
	}

	r.RevokeManager(st, manager)
	if r.IsManager(st, manager) {
		t.Fatal("manager still registered after revoke")
	}
}
