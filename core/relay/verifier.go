// Copyright 2026 The go-obsidian Authors
// This file is part of the go-obsidian library.

package relay

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/lru"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethdb"

	"github.com/HITEYY/obsidian-relayer/core/guardian"
	"github.com/HITEYY/obsidian-relayer/core/types"
	"github.com/HITEYY/obsidian-relayer/params"
)

type sigLRU = lru.Cache[common.Hash, common.Address]

// Verifier checks relay signatures against a module policy.
type Verifier struct {
	owners    guardian.OwnerLookup
	guardians *guardian.Consensus
	sigcache  *sigLRU
}

// NewVerifier creates a verifier caching up to cacheSize recovered signers.
func NewVerifier(owners guardian.OwnerLookup, guardians *guardian.Consensus, cacheSize int) *Verifier {
	if cacheSize <= 0 {
		cacheSize = params.DefaultSigCacheSize
	}
	return &Verifier{
		owners:    owners,
		guardians: guardians,
		sigcache:  lru.NewCache[common.Hash, common.Address](cacheSize),
	}
}

// Verify checks that sigs over hash satisfy policy for account. Signers must
// appear in strictly ascending order.
func (v *Verifier) Verify(db ethdb.KeyValueReader, account common.Address, hash common.Hash, sigs [][]byte, policy types.Policy) error {
	if policy.Kind == types.PolicySelfDisabled {
		return ErrDisabledMethod
	}
	if policy.Required == 0 && policy.Kind != types.PolicyAnyone {
		return ErrWrongSignatureCount
	}
	if len(sigs) != policy.Required {
		return fmt.Errorf("%w: have %d, want %d", ErrWrongSignatureCount, len(sigs), policy.Required)
	}
	var (
		owner      = v.owners.Owner(db, account)
		ownerFound bool
		last       common.Address
	)
	for i, sig := range sigs {
		signer, err := v.ecrecover(hash, sig)
		if err != nil {
			return err
		}
		if i > 0 && bytes.Compare(signer.Bytes(), last.Bytes()) <= 0 {
			return ErrOutOfOrderOrDuplicate
		}
		last = signer

		if signer == owner {
			if policy.OwnerDisallowed() {
				return fmt.Errorf("%w: owner may not sign", ErrInvalidSignature)
			}
			ownerFound = true
			continue
		}
		if policy.Kind == types.PolicyOwnerOnly || !v.guardians.IsGuardianOrGuardianSigner(db, account, signer) {
			return fmt.Errorf("%w: unauthorised signer %s", ErrInvalidSignature, signer)
		}
	}
	if policy.OwnerRequired() && !ownerFound {
		return fmt.Errorf("%w: owner signature missing", ErrInvalidSignature)
	}
	return nil
}

// ecrecover extracts the signer of hash. Both 0/1 and 27/28 recovery ids are
// accepted.
func (v *Verifier) ecrecover(hash common.Hash, sig []byte) (common.Address, error) {
	if len(sig) != crypto.SignatureLength {
		return common.Address{}, fmt.Errorf("%w: signature length %d", ErrInvalidSignature, len(sig))
	}
	key := crypto.Keccak256Hash(hash.Bytes(), sig)
	if signer, known := v.sigcache.Get(key); known {
		return signer, nil
	}
	normalized := make([]byte, crypto.SignatureLength)
	copy(normalized, sig)
	if normalized[crypto.RecoveryIDOffset] >= 27 {
		normalized[crypto.RecoveryIDOffset] -= 27
	}
	if normalized[crypto.RecoveryIDOffset] > 1 {
		return common.Address{}, fmt.Errorf("%w: bad recovery id", ErrInvalidSignature)
	}
	pubkey, err := crypto.Ecrecover(hash.Bytes(), normalized)
	if err != nil {
		return common.Address{}, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	var signer common.Address
	copy(signer[:], crypto.Keccak256(pubkey[1:])[12:])

	v.sigcache.Add(key, signer)
	return signer, nil
}
