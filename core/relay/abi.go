// Copyright 2026 The go-obsidian Authors
// This file is part of the go-obsidian library.

package relay

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/HITEYY/obsidian-relayer/core/types"
)

const dispatcherABIJSON = `[
	{"type":"function","name":"execute","stateMutability":"nonpayable","inputs":[
		{"name":"wallet","type":"address"},
		{"name":"module","type":"address"},
		{"name":"data","type":"bytes"},
		{"name":"nonce","type":"uint256"},
		{"name":"signatures","type":"bytes"},
		{"name":"gasPrice","type":"uint256"},
		{"name":"gasLimit","type":"uint256"},
		{"name":"refundToken","type":"address"},
		{"name":"refundAddress","type":"address"}
	],"outputs":[{"name":"","type":"bool"}]}
]`

// DispatcherABI describes the relay entry point.
var DispatcherABI = mustParseABI(dispatcherABIJSON)

func mustParseABI(def string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(def))
	if err != nil {
		panic(err)
	}
	return parsed
}

// PackRequest encodes req as a call to execute.
func PackRequest(req *types.RelayRequest) ([]byte, error) {
	sigs := make([]byte, 0, len(req.Signatures)*crypto.SignatureLength)
	for _, sig := range req.Signatures {
		sigs = append(sigs, sig...)
	}
	return DispatcherABI.Pack("execute", req.Account, req.Module, req.Data, req.Nonce, sigs,
		req.GasPrice, new(big.Int).SetUint64(req.GasLimit), req.RefundAsset, req.RefundRecipient)
}

// UnpackRequest decodes an execute call into a relay request. Signatures
// are split into 65 byte chunks.
func UnpackRequest(input []byte) (*types.RelayRequest, error) {
	method := DispatcherABI.Methods["execute"]
	if len(input) < 4 || string(input[:4]) != string(method.ID) {
		return nil, fmt.Errorf("%w: not an execute call", ErrMalformedInstruction)
	}
	args, err := method.Inputs.Unpack(input[4:])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInstruction, err)
	}
	sigs, _ := args[4].([]byte)
	if len(sigs)%crypto.SignatureLength != 0 {
		return nil, fmt.Errorf("%w: signatures length %d", ErrMalformedInstruction, len(sigs))
	}
	gasLimit, _ := args[6].(*big.Int)
	if gasLimit == nil || !gasLimit.IsUint64() {
		return nil, fmt.Errorf("%w: gas limit out of range", ErrMalformedInstruction)
	}
	req := &types.RelayRequest{
		Account:         args[0].(common.Address),
		Module:          args[1].(common.Address),
		Data:            args[2].([]byte),
		Nonce:           args[3].(*big.Int),
		GasPrice:        args[5].(*big.Int),
		GasLimit:        gasLimit.Uint64(),
		RefundAsset:     args[7].(common.Address),
		RefundRecipient: args[8].(common.Address),
	}
	for i := 0; i < len(sigs); i += crypto.SignatureLength {
		req.Signatures = append(req.Signatures, common.CopyBytes(sigs[i:i+crypto.SignatureLength]))
	}
	return req, nil
}
