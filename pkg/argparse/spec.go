// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argparse

import (
	"fmt"
	"strings"

	"tailscale.com/util/mak"
)

// State is the per-pass state of a registered argument.
type State int

const (
	// Unparsed arguments have no value bound.
	Unparsed State = iota
	// Parsing is the state of every unresolved argument while a pass scans.
	Parsing
	// Resolved arguments have a value bound for the current pass.
	Resolved
)

func (s State) String() string {
	switch s {
	case Unparsed:
		return "unparsed"
	case Parsing:
		return "parsing"
	case Resolved:
		return "resolved"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

type metaKind int

const (
	metaNone metaKind = iota
	metaHelp
	metaVersion
)

// ArgSpec describes one registered argument. It is immutable once
// registered.
type ArgSpec struct {
	id          string
	alias       string
	description string
	kind        Kind
	required    bool
	hidden      bool
	def         *Value
	meta        metaKind

	// invoke runs the callback bound at registration, if any.
	invoke func(Value) error
}

// ArgOption configures an argument at registration time.
type ArgOption func(*ArgSpec)

// Alias sets the alternative identifier.
func Alias(alt string) ArgOption {
	return func(s *ArgSpec) { s.alias = alt }
}

// Description sets the text shown in usage output.
func Description(desc string) ArgOption {
	return func(s *ArgSpec) { s.description = desc }
}

// Required makes a pass fail when the argument ends up unresolved.
func Required() ArgOption {
	return func(s *ArgSpec) { s.required = true }
}

// Hidden keeps the argument out of usage output.
func Hidden() ArgOption {
	return func(s *ArgSpec) { s.hidden = true }
}

func newSpec(id string, kind Kind, opts []ArgOption) *ArgSpec {
	s := &ArgSpec{id: id, kind: kind}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *ArgSpec) ID() string          { return s.id }
func (s *ArgSpec) Alias() string       { return s.alias }
func (s *ArgSpec) Description() string { return s.description }
func (s *ArgSpec) Kind() Kind          { return s.kind }
func (s *ArgSpec) IsRequired() bool    { return s.required }
func (s *ArgSpec) IsHidden() bool      { return s.hidden }

// Default returns the declared default, if any.
func (s *ArgSpec) Default() (Value, bool) {
	if s.def == nil {
		return Value{}, false
	}
	return *s.def, true
}

// Names returns the id followed by the alias, when set.
func (s *ArgSpec) Names() []string {
	if s.alias == "" {
		return []string{s.id}
	}
	return []string{s.id, s.alias}
}

// Name returns the canonical name: the id without its leading dashes.
// Sources are keyed by canonical names.
func (s *ArgSpec) Name() string {
	return trimDashes(s.id)
}

func trimDashes(name string) string {
	return strings.TrimLeft(name, "-")
}

func (s *ArgSpec) label() string {
	if s.alias == "" {
		return s.id
	}
	return s.id + "|" + s.alias
}

// registry holds the specs of one parser in registration order.
type registry struct {
	specs []*ArgSpec
	index map[string]*ArgSpec
}

func (r *registry) add(s *ArgSpec) error {
	if err := validIdentifier(s.id); err != nil {
		return err
	}
	if s.alias != "" {
		if err := validIdentifier(s.alias); err != nil {
			return err
		}
		if s.alias == s.id {
			return fmt.Errorf("%w: alias %q equals id", ErrInvalidIdentifier, s.alias)
		}
	}
	for _, name := range s.Names() {
		if existing, ok := r.index[name]; ok {
			return &DuplicateIdentifierError{Name: name, Existing: existing.id}
		}
	}
	r.specs = append(r.specs, s)
	for _, name := range s.Names() {
		mak.Set(&r.index, name, s)
	}
	return nil
}

func (r *registry) lookup(name string) (*ArgSpec, bool) {
	s, ok := r.index[name]
	return s, ok
}

func validIdentifier(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty identifier", ErrInvalidIdentifier)
	case name == "--":
		return fmt.Errorf("%w: %q is the end-of-options marker", ErrInvalidIdentifier, name)
	case strings.ContainsAny(name, "= \t\n"):
		return fmt.Errorf("%w: %q contains '=' or whitespace", ErrInvalidIdentifier, name)
	}
	return nil
}
