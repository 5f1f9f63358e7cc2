// Copyright 2026 The go-obsidian Authors
// This file is part of the go-obsidian library.

package relay

import "github.com/HITEYY/obsidian-relayer/core/types"

var (
	ErrMalformedInstruction = types.NewError(types.ErrValidation, "relay: malformed instruction")
	ErrTargetMismatch       = types.NewError(types.ErrValidation, "relay: instruction targets another account")
	ErrDisabledMethod       = types.NewError(types.ErrValidation, "relay: method cannot be relayed")
	ErrUnknownModule        = types.NewError(types.ErrValidation, "relay: unknown module")

	ErrWrongSignatureCount     = types.NewError(types.ErrAuthorization, "relay: wrong number of signatures")
	ErrInvalidSignature        = types.NewError(types.ErrAuthorization, "relay: invalid signature")
	ErrOutOfOrderOrDuplicate   = types.NewError(types.ErrAuthorization, "relay: signers out of order or duplicated")
	ErrModuleNotAuthorized     = types.NewError(types.ErrAuthorization, "relay: module not authorised on account")
	ErrDispatcherNotAuthorized = types.NewError(types.ErrAuthorization, "relay: dispatcher not authorised on account")

	ErrDuplicateRequest = types.NewError(types.ErrReplay, "relay: duplicate request")

	ErrInsufficientBudget      = types.NewError(types.ErrBudget, "relay: insufficient gas")
	ErrRefundFailed            = types.NewError(types.ErrBudget, "relay: refund failed")
	ErrRefundExceedsDailyLimit = types.NewError(types.ErrBudget, "relay: refund above daily limit")
)
