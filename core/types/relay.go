// Copyright 2026 The go-obsidian Authors
// This file is part of the go-obsidian library.
//
// Relayed instruction types. A relayer submits a RelayRequest signed off-chain
// by the account owner and/or guardians and is reimbursed for the gas it spent.

package types

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/crypto/sha3"
)

// AccountRefOffset is the size of the method selector preceding the account
// reference in an encoded instruction.
const AccountRefOffset = 4

// MinInstructionLength is the selector plus one 32 byte account word.
const MinInstructionLength = AccountRefOffset + common.HashLength

// RelayRequest is a pre-signed instruction submitted on behalf of an account.
type RelayRequest struct {
	Account         common.Address // Account the instruction acts on
	Module          common.Address // Module receiving the instruction
	Data            []byte         // ABI encoded call, first argument is the account
	Nonce           *big.Int       // Must exceed the account's last accepted nonce
	Signatures      [][]byte       // 65 byte signatures ordered by ascending signer
	GasPrice        *big.Int       // Zero disables the refund
	GasLimit        uint64         // Upper bound on refunded gas
	RefundAsset     common.Address // params.NativeAsset or a token address
	RefundRecipient common.Address // Zero refunds the submitting relayer
}

// AccountRef returns the account embedded in the instruction. The caller must
// have checked the length against MinInstructionLength.
func (r *RelayRequest) AccountRef() common.Address {
	return common.BytesToAddress(r.Data[AccountRefOffset:MinInstructionLength])
}

// Selector returns the 4 byte method id of the instruction, or nil.
func (r *RelayRequest) Selector() []byte {
	if len(r.Data) < AccountRefOffset {
		return nil
	}
	return r.Data[:AccountRefOffset]
}

// SignHash returns the digest signers commit to. It binds the dispatcher, the
// target module, the instruction, the chain and every refund parameter, and is
// wrapped in the personal-message prefix so wallets can sign it directly.
func (r *RelayRequest) SignHash(chainID *big.Int, dispatcher common.Address) common.Hash {
	hasher := sha3.NewLegacyKeccak256()
	hasher.Write([]byte{0x19, 0x00})
	hasher.Write(dispatcher.Bytes())
	hasher.Write(r.Module.Bytes())
	hasher.Write(common.Hash{}.Bytes()) // value, relayed calls never carry any
	hasher.Write(r.Data)
	hasher.Write(common.BigToHash(bigOrZero(chainID)).Bytes())
	hasher.Write(common.BigToHash(bigOrZero(r.Nonce)).Bytes())
	hasher.Write(common.BigToHash(bigOrZero(r.GasPrice)).Bytes())
	hasher.Write(common.BigToHash(new(big.Int).SetUint64(r.GasLimit)).Bytes())
	hasher.Write(r.RefundAsset.Bytes())
	hasher.Write(r.RefundRecipient.Bytes())

	var inner common.Hash
	hasher.(crypto.KeccakState).Read(inner[:])
	return common.BytesToHash(accounts.TextHash(inner.Bytes()))
}

// Refund records a settled reimbursement.
type Refund struct {
	Account   common.Address `json:"account"`
	Recipient common.Address `json:"recipient"`
	Asset     common.Address `json:"asset"`
	Amount    *big.Int       `json:"amount"` // Paid in Asset
	Cost      *big.Int       `json:"cost"`   // Gas cost in the primary asset
}

// RelayResult is returned for every accepted relay, whether or not the
// instruction itself succeeded.
type RelayResult struct {
	Success bool    `json:"success"`
	Reason  string  `json:"reason,omitempty"`
	GasUsed uint64  `json:"gasUsed"`
	Refund  *Refund `json:"refund,omitempty"`
}

// LockRecord is the shared per-account lock. A zero or past ReleaseTime means
// the account is unlocked.
type LockRecord struct {
	ReleaseTime uint64
	Locker      common.Address
}

// ActiveAt reports whether the record still locks the account at time now.
func (l *LockRecord) ActiveAt(now uint64) bool {
	return l != nil && l.ReleaseTime > now
}

func bigOrZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return v
}
