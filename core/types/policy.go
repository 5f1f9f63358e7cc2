// Copyright 2026 The go-obsidian Authors
// This file is part of the go-obsidian library.

package types

import "fmt"

// PolicyKind names who may sign a relayed instruction for a module.
type PolicyKind uint8

const (
	// PolicyOwnerOnly requires exactly the account owner.
	PolicyOwnerOnly PolicyKind = iota
	// PolicyOwnerAndGuardians requires the owner plus guardians.
	PolicyOwnerAndGuardians
	// PolicyGuardiansOnly requires guardians and refuses the owner.
	PolicyGuardiansOnly
	// PolicyAnyone accepts the instruction without signatures.
	PolicyAnyone
	// PolicySelfDisabled refuses relaying altogether.
	PolicySelfDisabled
)

func (k PolicyKind) String() string {
	switch k {
	case PolicyOwnerOnly:
		return "OwnerOnly"
	case PolicyOwnerAndGuardians:
		return "OwnerAndGuardians"
	case PolicyGuardiansOnly:
		return "GuardiansOnly"
	case PolicyAnyone:
		return "Anyone"
	case PolicySelfDisabled:
		return "SelfDisabled"
	}
	return fmt.Sprintf("PolicyKind(%d)", uint8(k))
}

// Policy is the authorization a module declares for one instruction.
type Policy struct {
	Kind     PolicyKind
	Required int // Exact number of signatures expected
}

func OwnerOnly() Policy              { return Policy{Kind: PolicyOwnerOnly, Required: 1} }
func OwnerAndGuardians(n int) Policy { return Policy{Kind: PolicyOwnerAndGuardians, Required: n} }
func GuardiansOnly(n int) Policy     { return Policy{Kind: PolicyGuardiansOnly, Required: n} }
func OpenToAnyone() Policy           { return Policy{Kind: PolicyAnyone} }
func SelfDisabled() Policy           { return Policy{Kind: PolicySelfDisabled} }
func (p Policy) String() string      { return fmt.Sprintf("%s(%d)", p.Kind, p.Required) }
func (p Policy) OwnerRequired() bool {
	return p.Kind == PolicyOwnerOnly || p.Kind == PolicyOwnerAndGuardians
}
func (p Policy) OwnerDisallowed() bool { return p.Kind == PolicyGuardiansOnly }
