// Copyright 2026 The go-obsidian Authors
// This file is part of the go-obsidian library.

package types

import "errors"

// Error classes. Every engine failure wraps exactly one of these so callers can
// decide between rejecting, rolling back and reporting without knowing the
// precise failure.
var (
	ErrValidation    = errors.New("validation error")
	ErrAuthorization = errors.New("authorization error")
	ErrReplay        = errors.New("replay error")
	ErrBudget        = errors.New("budget error")
	ErrBusiness      = errors.New("business error")
	ErrLock          = errors.New("lock error")
)

// ClassError is a sentinel failure tagged with its class.
type ClassError struct {
	class error
	msg   string
}

// NewError creates a sentinel error belonging to class.
func NewError(class error, msg string) *ClassError {
	return &ClassError{class: class, msg: msg}
}

func (e *ClassError) Error() string { return e.msg }

// Unwrap exposes the class to errors.Is.
func (e *ClassError) Unwrap() error { return e.class }

// Class returns the class of err, or nil if err carries none.
func Class(err error) error {
	for _, class := range []error{ErrValidation, ErrAuthorization, ErrReplay, ErrBudget, ErrBusiness, ErrLock} {
		if errors.Is(err, class) {
			return class
		}
	}
	return nil
}
