// Copyright 2026 The go-obsidian Authors

package types

import (
	"errors"
	"fmt"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

func testRequest() *RelayRequest {
	account := common.HexToAddress("0x1111111111111111111111111111111111111111")
	data := append([]byte{0xde, 0xad, 0xbe, 0xef}, common.LeftPadBytes(account.Bytes(), 32)...)
	return &RelayRequest{
		Account:  account,
		Module:   common.HexToAddress("0x3333333333333333333333333333333333333333"),
		Data:     data,
		Nonce:    big.NewInt(7),
		GasPrice: big.NewInt(10),
		GasLimit: 200000,
	}
}

func TestAccountRef(t *testing.T) {
	req := testRequest()
	if got := req.AccountRef(); got != req.Account {
		t.Fatalf("account ref mismatch: have %s want %s", got, req.Account)
	}
	if sel := req.Selector(); len(sel) != 4 || sel[0] != 0xde {
		t.Fatalf("unexpected selector %x", sel)
	}
	if (&RelayRequest{Data: []byte{1}}).Selector() != nil {
		t.Fatal("short data should have no selector")
	}
}

func TestSignHashBindsFields(t *testing.T) {
	chainID := big.NewInt(1719)
	dispatcher := common.HexToAddress("0xAA")
	base := testRequest().SignHash(chainID, dispatcher)

	if again := testRequest().SignHash(chainID, dispatcher); again != base {
		t.Fatal("sign hash not deterministic")
	}
	mutations := map[string]func(r *RelayRequest){
		"nonce":     func(r *RelayRequest) { r.Nonce = big.NewInt(8) },
		"gasPrice":  func(r *RelayRequest) { r.GasPrice = big.NewInt(11) },
		"gasLimit":  func(r *RelayRequest) { r.GasLimit++ },
		"module":    func(r *RelayRequest) { r.Module = common.HexToAddress("0x44") },
		"asset":     func(r *RelayRequest) { r.RefundAsset = common.HexToAddress("0x55") },
		"recipient": func(r *RelayRequest) { r.RefundRecipient = common.HexToAddress("0x66") },
		"data":      func(r *RelayRequest) { r.Data = append(r.Data, 0x01) },
	}
	for name, mutate := range mutations {
		req := testRequest()
		mutate(req)
		if req.SignHash(chainID, dispatcher) == base {
			t.Errorf("%s does not affect the sign hash", name)
		}
	}
	if testRequest().SignHash(big.NewInt(1), dispatcher) == base {
		t.Error("chain id does not affect the sign hash")
	}
	if testRequest().SignHash(chainID, common.HexToAddress("0xBB")) == base {
		t.Error("dispatcher does not affect the sign hash")
	}
}

func TestSignHashRecoverable(t *testing.T) {
	key, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	hash := testRequest().SignHash(big.NewInt(1719), common.HexToAddress("0xAA"))
	sig, err := crypto.Sign(hash.Bytes(), key)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	pub, err := crypto.SigToPub(hash.Bytes(), sig)
	if err != nil {
		t.Fatalf("SigToPub: %v", err)
	}
	if crypto.PubkeyToAddress(*pub) != crypto.PubkeyToAddress(key.PublicKey) {
		t.Fatal("recovered wrong signer")
	}
}

func TestLockRecordActive(t *testing.T) {
	var missing *LockRecord
	if missing.ActiveAt(0) {
		t.Error("nil record must be inactive")
	}
	rec := &LockRecord{ReleaseTime: 100}
	if !rec.ActiveAt(99) || rec.ActiveAt(100) || rec.ActiveAt(101) {
		t.Error("release time boundary wrong")
	}
}

func TestErrorClass(t *testing.T) {
	errFoo := NewError(ErrLock, "foo")
	wrapped := fmt.Errorf("context: %w", errFoo)

	if !errors.Is(wrapped, errFoo) || !errors.Is(wrapped, ErrLock) {
		t.Fatal("class lost through wrapping")
	}
	if errors.Is(wrapped, ErrBudget) {
		t.Fatal("wrong class matched")
	}
	if Class(wrapped) != ErrLock {
		t.Fatalf("Class = %v", Class(wrapped))
	}
	if Class(errors.New("plain")) != nil {
		t.Fatal("plain errors have no class")
	}
	if (OwnerAndGuardians(2)).String() != "OwnerAndGuardians(2)" {
		t.Fatalf("policy string %s", OwnerAndGuardians(2))
	}
}
