// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argparse

// Callback is invoked with the typed value when an argument resolves.
type Callback[T Type] func(p *Parser, value T) error

// FlagCallback is invoked when a flag, help or version argument is present.
type FlagCallback func(p *Parser) error

// AddArgWithCallback registers a typed argument. cb runs once per pass when
// the argument resolves; without a default that means only when it is given
// on the command line or by a Source.
func AddArgWithCallback[T Type](p *Parser, id string, cb Callback[T], opts ...ArgOption) error {
	return addTyped(p, id, nil, cb, opts)
}

// AddArgWithCallbackDefault registers a typed argument with a default. cb
// runs exactly once per successful pass, with def when nothing else
// resolved the argument.
func AddArgWithCallbackDefault[T Type](p *Parser, id string, def T, cb Callback[T], opts ...ArgOption) error {
	v := valueOf(def)
	return addTyped(p, id, &v, cb, opts)
}

// AddArgDefault registers a typed argument with a default and no callback.
// Read it with Get after Parse.
func AddArgDefault[T Type](p *Parser, id string, def T, opts ...ArgOption) error {
	v := valueOf(def)
	return addTyped[T](p, id, &v, nil, opts)
}

// AddTypedArg registers a typed argument with neither default nor callback.
func AddTypedArg[T Type](p *Parser, id string, opts ...ArgOption) error {
	return addTyped[T](p, id, nil, nil, opts)
}

func addTyped[T Type](p *Parser, id string, def *Value, cb Callback[T], opts []ArgOption) error {
	s := newSpec(id, kindOf[T](), opts)
	s.def = def
	if cb != nil {
		s.invoke = func(v Value) error {
			t, err := valueAs[T](s.id, v)
			if err != nil {
				return err
			}
			return cb(p, t)
		}
	}
	return p.reg.add(s)
}

// AddFlag registers a presence-only flag without a callback.
func (p *Parser) AddFlag(id string, opts ...ArgOption) error {
	return p.AddFlagWithCallback(id, nil, opts...)
}

// AddFlagWithCallback registers a presence-only flag. cb runs exactly when
// the flag token appears, or when a Source sets it to true.
func (p *Parser) AddFlagWithCallback(id string, cb FlagCallback, opts ...ArgOption) error {
	s := newSpec(id, KindFlag, opts)
	if cb != nil {
		s.invoke = func(Value) error { return cb(p) }
	}
	return p.reg.add(s)
}

// AddHelpWithCallback registers -h/--help like AddHelp, but runs cb instead
// of writing the usage text. Parse still returns ErrHelp.
func (p *Parser) AddHelpWithCallback(cb FlagCallback, opts ...ArgOption) error {
	if cb == nil {
		return p.AddHelp(opts...)
	}
	s := helpSpec(opts)
	s.invoke = func(Value) error { return cb(p) }
	return p.reg.add(s)
}
