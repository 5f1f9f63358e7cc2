// Copyright 2026 The go-obsidian Authors
// This file is part of the go-obsidian library.

package relay

import "github.com/ethereum/go-ethereum/metrics"

var (
	relayAcceptedMeter = metrics.NewRegisteredMeter("relay/accepted", nil)
	relayRejectedMeter = metrics.NewRegisteredMeter("relay/rejected", nil)
	relayFailedMeter   = metrics.NewRegisteredMeter("relay/business/failed", nil)
	refundRevertMeter  = metrics.NewRegisteredMeter("relay/refund/reverted", nil)
	refundSettledMeter = metrics.NewRegisteredMeter("relay/refund/settled", nil)
	refundGasCounter   = metrics.NewRegisteredCounter("relay/refund/gas", nil)
)
