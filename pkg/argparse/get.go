// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argparse

import (
	"fmt"
	"slices"
)

// Get returns the value the last pass bound to the argument named id (id or
// alias). Raw arguments registered with AddArg are converted to T here;
// typed arguments must have been declared with T's kind.
func Get[T Type](p *Parser, id string) (T, error) {
	var zero T
	s, ok := p.Lookup(id)
	if !ok {
		return zero, fmt.Errorf("%w: %s", ErrNotRegistered, id)
	}
	sl := p.slots[s]
	if sl == nil || sl.state != Resolved {
		return zero, fmt.Errorf("%w: %s", ErrNotPresent, s.id)
	}
	return valueAs[T](s.id, sl.value)
}

// GetOr is like Get but returns def on any error.
func GetOr[T Type](p *Parser, id string, def T) T {
	v, err := Get[T](p, id)
	if err != nil {
		return def
	}
	return v
}

// Flag reports whether the last pass resolved the argument named id.
func (p *Parser) Flag(id string) bool {
	return p.State(id) == Resolved
}

// State returns the per-pass state of the argument named id. Unknown
// identifiers report Unparsed.
func (p *Parser) State(id string) State {
	s, ok := p.Lookup(id)
	if !ok {
		return Unparsed
	}
	if sl := p.slots[s]; sl != nil {
		return sl.state
	}
	return Unparsed
}

// Value returns the bound value of the argument named id.
func (p *Parser) Value(id string) (Value, bool) {
	s, ok := p.Lookup(id)
	if !ok {
		return Value{}, false
	}
	sl := p.slots[s]
	if sl == nil || sl.state != Resolved {
		return Value{}, false
	}
	return sl.value, true
}

// Origin reports where the bound value came from: OriginCommandLine,
// OriginDefault or a Source name. It is empty for unresolved arguments.
func (p *Parser) Origin(id string) string {
	s, ok := p.Lookup(id)
	if !ok {
		return ""
	}
	if sl := p.slots[s]; sl != nil && sl.state == Resolved {
		return sl.origin
	}
	return ""
}

// Positional returns the i-th positional value of the last pass.
func (p *Parser) Positional(i int) (string, bool) {
	if i < 0 || i >= len(p.args) {
		return "", false
	}
	return p.args[i], true
}

// Positionals returns every positional value of the last pass.
func (p *Parser) Positionals() []string {
	return slices.Clone(p.args)
}

// Rest returns the tokens after "--".
func (p *Parser) Rest() []string {
	return slices.Clone(p.rest)
}
