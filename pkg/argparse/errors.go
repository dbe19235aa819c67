// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argparse

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors. The struct errors below match them with errors.Is.
var (
	// ErrHelp is returned by Parse after help was requested and shown.
	ErrHelp = errors.New("help requested")

	// ErrVersion is returned by Parse after the version was requested and shown.
	ErrVersion = errors.New("version requested")

	ErrDuplicateIdentifier  = errors.New("duplicate identifier")
	ErrInvalidIdentifier    = errors.New("invalid identifier")
	ErrUnrecognizedArgument = errors.New("unrecognized argument")
	ErrConversion           = errors.New("conversion failed")
	ErrMissingRequired      = errors.New("missing required argument")
	ErrMissingValue         = errors.New("missing value")
	ErrRepeatedArgument     = errors.New("repeated argument")

	// ErrKindMismatch is returned by Get when T does not match the declared kind.
	ErrKindMismatch = errors.New("kind mismatch")

	// ErrNotRegistered is returned by Get for an unknown identifier.
	ErrNotRegistered = errors.New("argument not registered")

	// ErrNotPresent is returned by Get for an argument the last pass left unresolved.
	ErrNotPresent = errors.New("argument not present")
)

// DuplicateIdentifierError is returned at registration time when an id or
// alias is already taken.
type DuplicateIdentifierError struct {
	Name     string // The identifier that collided
	Existing string // Primary id of the argument that already owns Name
}

func (e *DuplicateIdentifierError) Error() string {
	if e.Existing == "" || e.Existing == e.Name {
		return fmt.Sprintf("duplicate identifier: %s", e.Name)
	}
	return fmt.Sprintf("duplicate identifier: %s (already registered by %s)", e.Name, e.Existing)
}

func (e *DuplicateIdentifierError) Is(target error) bool { return target == ErrDuplicateIdentifier }

// UnrecognizedArgumentError lists tokens that matched no registered argument.
// With AbortOnUnknown it holds exactly one token.
type UnrecognizedArgumentError struct {
	Tokens []string
}

func (e *UnrecognizedArgumentError) Error() string {
	if len(e.Tokens) == 1 {
		return fmt.Sprintf("unrecognized argument: %s", e.Tokens[0])
	}
	return fmt.Sprintf("unrecognized arguments: %s", strings.Join(e.Tokens, ", "))
}

func (e *UnrecognizedArgumentError) Is(target error) bool { return target == ErrUnrecognizedArgument }

// ConversionError is returned when a token cannot be converted to the
// declared kind. Err holds the underlying strconv error.
type ConversionError struct {
	Arg    string // Primary id of the argument
	Token  string // The offending token
	Kind   Kind   // The declared kind
	Source string // Where the token came from; empty for the command line
	Err    error
}

func (e *ConversionError) Error() string {
	msg := fmt.Sprintf("couldn't convert %q to type <%s> for %s", e.Token, e.Kind, e.Arg)
	if e.Source != "" {
		msg += " (from " + e.Source + ")"
	}
	return msg
}

func (e *ConversionError) Unwrap() error { return e.Err }

func (e *ConversionError) Is(target error) bool { return target == ErrConversion }

// MissingRequiredArgumentError lists required arguments that no token,
// source or default resolved.
type MissingRequiredArgumentError struct {
	Args []string
}

func (e *MissingRequiredArgumentError) Error() string {
	if len(e.Args) == 1 {
		return fmt.Sprintf("missing required argument: %s", e.Args[0])
	}
	return fmt.Sprintf("missing required arguments: %s", strings.Join(e.Args, ", "))
}

func (e *MissingRequiredArgumentError) Is(target error) bool { return target == ErrMissingRequired }

// MissingValueError is returned when an option that takes a value is the
// last token or is directly followed by another registered identifier.
type MissingValueError struct {
	Arg string
}

func (e *MissingValueError) Error() string {
	return fmt.Sprintf("%s requires a value", e.Arg)
}

func (e *MissingValueError) Is(target error) bool { return target == ErrMissingValue }

// RepeatedArgumentError is returned when an argument occurs twice in one pass.
type RepeatedArgumentError struct {
	Arg   string
	Token string
}

func (e *RepeatedArgumentError) Error() string {
	if e.Token != "" && e.Token != e.Arg {
		return fmt.Sprintf("%s given more than once (as %s)", e.Arg, e.Token)
	}
	return fmt.Sprintf("%s given more than once", e.Arg)
}

func (e *RepeatedArgumentError) Is(target error) bool { return target == ErrRepeatedArgument }

// CallbackError wraps an error returned by a registered callback.
type CallbackError struct {
	Arg string
	Err error
}

func (e *CallbackError) Error() string {
	return fmt.Sprintf("%s: %v", e.Arg, e.Err)
}

func (e *CallbackError) Unwrap() error { return e.Err }
