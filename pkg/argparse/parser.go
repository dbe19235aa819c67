// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argparse

import (
	"errors"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/yeetrun/argparse/pkg/tui"
)

// UnknownPolicy decides what a pass does with unrecognized tokens.
type UnknownPolicy int

const (
	// AbortOnUnknown stops the pass at the first unrecognized token.
	AbortOnUnknown UnknownPolicy = iota
	// CollectUnknown skips unrecognized tokens, finishes the pass and then
	// reports all of them in one UnrecognizedArgumentError.
	CollectUnknown
)

// Origin names for values that did not come from a Source.
const (
	OriginCommandLine = "command line"
	OriginDefault     = "default"
)

// Option configures a Parser.
type Option func(*Parser)

// WithOutput sets the sink for help and version output.
func WithOutput(w io.Writer) Option {
	return func(p *Parser) {
		if w != nil {
			p.out = w
		}
	}
}

// WithLogger sets the logger used for debug tracing of parse passes.
func WithLogger(l *slog.Logger) Option {
	return func(p *Parser) {
		if l != nil {
			p.log = l
		}
	}
}

// WithUnknownPolicy sets how unrecognized tokens are handled.
func WithUnknownPolicy(policy UnknownPolicy) Option {
	return func(p *Parser) { p.policy = policy }
}

// WithSources adds value sources consulted, in order, for arguments the
// command line did not resolve. Sources take precedence over declared
// defaults.
func WithSources(srcs ...Source) Option {
	return func(p *Parser) { p.sources = append(p.sources, srcs...) }
}

// WithColor sets the colorizer for usage output.
func WithColor(c tui.Colorizer) Option {
	return func(p *Parser) { p.colors = c }
}

// WithName sets the program name used in version output.
func WithName(name string) Option {
	return func(p *Parser) { p.name = name }
}

type slot struct {
	state  State
	value  Value
	origin string
}

// Parser is a typed, callback-driven argument parser. It is not safe for
// concurrent use.
type Parser struct {
	Base

	log     *slog.Logger
	policy  UnknownPolicy
	sources []Source

	slots map[*ArgSpec]*slot
	args  []string
	rest  []string
}

// New returns a Parser whose usage header shows description.
func New(description string, opts ...Option) *Parser {
	p := &Parser{log: slog.New(slog.DiscardHandler)}
	p.init(description, nil)
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse runs one parse pass over args, which must not include the program
// name. Every pass starts from a clean state, so Parse may be called again
// with different input.
func (p *Parser) Parse(args []string) error {
	p.reset()
	defer p.settle()

	if err := p.HandleMeta(args); err != nil {
		p.log.Debug("parse pass stopped by meta argument", "err", err)
		return err
	}

	p.log.Debug("parse pass started", "tokens", len(args), "args", len(p.reg.specs))
	for _, s := range p.reg.specs {
		p.slots[s].state = Parsing
	}

	unknown, err := p.scan(args)
	if err != nil {
		return err
	}

	var missing []string
	for _, s := range p.reg.specs {
		if s.meta != metaNone || p.slots[s].state == Resolved {
			continue
		}
		ok, err := p.resolveFromSources(s)
		if err != nil {
			return err
		}
		if ok {
			continue
		}
		if def, ok := s.Default(); ok {
			if err := p.bind(s, def, OriginDefault); err != nil {
				return err
			}
			continue
		}
		if s.required {
			missing = append(missing, s.id)
		}
	}

	if len(unknown) > 0 {
		return &UnrecognizedArgumentError{Tokens: unknown}
	}
	if len(missing) > 0 {
		return &MissingRequiredArgumentError{Args: missing}
	}
	p.log.Debug("parse pass finished", "positionals", len(p.args), "rest", len(p.rest))
	return nil
}

func (p *Parser) reset() {
	p.slots = make(map[*ArgSpec]*slot, len(p.reg.specs))
	for _, s := range p.reg.specs {
		p.slots[s] = &slot{state: Unparsed}
	}
	p.args = nil
	p.rest = nil
}

// settle returns every argument the pass did not resolve to Unparsed.
func (p *Parser) settle() {
	for _, sl := range p.slots {
		if sl.state == Parsing {
			sl.state = Unparsed
		}
	}
}

// scan walks the tokens left to right, resolving registered arguments and
// filling positional slots. It returns the unrecognized tokens when the
// policy is CollectUnknown.
func (p *Parser) scan(args []string) (unknown []string, err error) {
	for i := 0; i < len(args); i++ {
		tok := args[i]
		if tok == "--" {
			p.rest = slices.Clone(args[i+1:])
			break
		}

		s, inlineVal, inline := p.match(tok)
		if s == nil {
			if !looksLikeOption(tok) && len(p.args) < len(p.positionals) {
				p.args = append(p.args, tok)
				continue
			}
			if p.policy == AbortOnUnknown {
				return nil, &UnrecognizedArgumentError{Tokens: []string{tok}}
			}
			p.log.Debug("skipping unrecognized token", "token", tok)
			unknown = append(unknown, tok)
			continue
		}
		if p.slots[s].state == Resolved {
			return nil, &RepeatedArgumentError{Arg: s.id, Token: tok}
		}

		var tokens []string
		switch {
		case s.kind == KindFlag:
			if inline {
				return nil, &ConversionError{Arg: s.id, Token: inlineVal, Kind: KindFlag, Err: errFlagValue}
			}
		case inline:
			tokens = []string{inlineVal}
			if s.kind.IsSequence() {
				tokens = splitComma(inlineVal)
			}
		case s.kind.IsSequence():
			j := i + 1
			for j < len(args) && !p.isBoundary(args[j]) {
				j++
			}
			tokens = args[i+1 : j]
			i = j - 1
		default:
			if i+1 >= len(args) || p.isBoundary(args[i+1]) {
				return nil, &MissingValueError{Arg: s.id}
			}
			tokens = args[i+1 : i+2]
			i++
		}

		v, err := convert(s.id, s.kind, tokens)
		if err != nil {
			return nil, err
		}
		if err := p.bind(s, v, OriginCommandLine); err != nil {
			return nil, err
		}
	}
	return unknown, nil
}

var (
	errFlagValue      = errors.New("flags do not take a value")
	errMultipleValues = errors.New("expected a single value")
)

// isBoundary reports whether tok ends a run of values: the end-of-options
// marker or any registered identifier.
func (p *Parser) isBoundary(tok string) bool {
	if tok == "--" {
		return true
	}
	s, _, _ := p.match(tok)
	return s != nil
}

func (p *Parser) resolveFromSources(s *ArgSpec) (bool, error) {
	for _, src := range p.sources {
		tokens, ok := lookupSource(src, s)
		if !ok {
			continue
		}
		if !s.kind.IsSequence() && len(tokens) > 1 {
			return false, &ConversionError{Arg: s.id, Token: strings.Join(tokens, ","), Kind: s.kind, Source: src.Name(), Err: errMultipleValues}
		}
		if s.kind == KindFlag {
			set, err := flagFromTokens(tokens)
			if err != nil {
				return false, &ConversionError{Arg: s.id, Token: strings.Join(tokens, ","), Kind: KindFlag, Source: src.Name(), Err: err}
			}
			if !set {
				continue
			}
			return true, p.bind(s, FlagValue, src.Name())
		}
		if s.kind.IsSequence() && len(tokens) == 1 {
			tokens = splitComma(tokens[0])
		}
		v, err := convert(s.id, s.kind, tokens)
		if err != nil {
			var cerr *ConversionError
			if errors.As(err, &cerr) {
				cerr.Source = src.Name()
			}
			return false, err
		}
		return true, p.bind(s, v, src.Name())
	}
	return false, nil
}

func flagFromTokens(tokens []string) (bool, error) {
	if len(tokens) == 0 {
		return true, nil
	}
	return strconv.ParseBool(tokens[0])
}

// bind marks s resolved with v and runs its callback.
func (p *Parser) bind(s *ArgSpec, v Value, origin string) error {
	sl := p.slots[s]
	sl.state = Resolved
	sl.value = v
	sl.origin = origin
	p.log.Debug("argument resolved", "arg", s.id, "kind", s.kind, "origin", origin)
	if s.invoke == nil {
		return nil
	}
	if err := s.invoke(v); err != nil {
		return &CallbackError{Arg: s.id, Err: err}
	}
	return nil
}

func looksLikeOption(tok string) bool {
	return len(tok) > 1 && tok[0] == '-' && !isNumeric(tok)
}

func splitComma(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
