// Copyright 2026 The go-obsidian Authors
// This file is part of the go-obsidian library.

/*
Package relay implements relayed execution for programmable accounts.

A relayer submits an instruction that the account owner and/or its guardians
signed off-chain. The Dispatcher checks the instruction, authenticates the
signers against the target module's policy, consumes the nonce, invokes the
module and reimburses the relayer from the account, possibly in a token priced
by an oracle.

# Relay Flow

	Relayer submits RelayRequest
	    → Dispatcher.Relay:
	        1. Instruction is at least selector + account word
	        2. Target module is authorised on the account
	        3. Dispatcher is authorised on the account
	        4. Instruction account equals the request account
	        5. Recursive execute() through the dispatcher is refused
	        6. Submitter supplied at least gasLimit
	        7. Signatures match the module policy (Verifier)
	        8. Nonce is fresh and is consumed (ReplayGuard)
	        9. Module is invoked; failures are recorded, not raised
	       10. Relayer is refunded (RefundAccountant)

Failures in steps 1-8 leave state untouched. A failing module only loses its
own writes. A failing refund undoes the whole call, nonce included.
*/
package relay
