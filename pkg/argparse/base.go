// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argparse

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/yeetrun/argparse/pkg/tui"
)

// Help and version flag constants
const (
	helpFlagShort      = "-h"
	helpFlagLong       = "--help"
	helpDescription    = "Display this information"
	versionFlagShort   = "-V"
	versionFlagLong    = "--version"
	versionDescription = "Print version information"

	// usageGap is the number of spaces between the widest identifier column
	// and the descriptions.
	usageGap = 3
)

type positional struct {
	name        string
	description string
}

// Base owns the argument registry and renders usage text. It does not parse;
// Parser builds the parse pass on top of it.
type Base struct {
	description string
	name        string
	out         io.Writer
	colors      tui.Colorizer
	reg         registry
	positionals []positional
	version     *semver.Version
}

// NewBase returns a Base that writes help and version output to out, or to
// os.Stdout when out is nil.
func NewBase(description string, out io.Writer) *Base {
	b := &Base{}
	b.init(description, out)
	return b
}

func (b *Base) init(description string, out io.Writer) {
	if out == nil {
		out = os.Stdout
	}
	b.description = description
	b.out = out
	if len(os.Args) > 0 {
		b.name = filepath.Base(os.Args[0])
	}
}

// AddArg registers an untyped argument. Its tokens are kept raw and
// converted when read with Get, so a bare occurrence also works as a flag.
func (b *Base) AddArg(id string, opts ...ArgOption) (*ArgSpec, error) {
	s := newSpec(id, KindRaw, opts)
	if err := b.reg.add(s); err != nil {
		return nil, err
	}
	return s, nil
}

// AddPositional registers the next positional slot. Bare tokens fill the
// slots in registration order.
func (b *Base) AddPositional(name, description string) error {
	if name == "" {
		return fmt.Errorf("%w: empty positional name", ErrInvalidIdentifier)
	}
	for _, p := range b.positionals {
		if p.name == name {
			return &DuplicateIdentifierError{Name: name}
		}
	}
	b.positionals = append(b.positionals, positional{name: name, description: description})
	return nil
}

// AddHelp registers -h/--help. When either occurs in the input the usage
// text is written to the output and Parse returns ErrHelp.
func (b *Base) AddHelp(opts ...ArgOption) error {
	s := helpSpec(opts)
	s.invoke = func(Value) error { return b.WriteUsage(b.out) }
	return b.reg.add(s)
}

func helpSpec(opts []ArgOption) *ArgSpec {
	defaults := []ArgOption{Alias(helpFlagLong), Description(helpDescription)}
	s := newSpec(helpFlagShort, KindFlag, append(defaults, opts...))
	s.meta = metaHelp
	return s
}

// AddVersion registers -V/--version for a semantic version string. When
// requested, "<name> v<version>" is written and Parse returns ErrVersion.
func (b *Base) AddVersion(version string, opts ...ArgOption) error {
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("invalid version %q: %w", version, err)
	}
	defaults := []ArgOption{Alias(versionFlagLong), Description(versionDescription)}
	s := newSpec(versionFlagShort, KindFlag, append(defaults, opts...))
	s.meta = metaVersion
	s.invoke = func(Value) error {
		_, err := fmt.Fprintf(b.out, "%s v%s\n", b.name, v)
		return err
	}
	if err := b.reg.add(s); err != nil {
		return err
	}
	b.version = v
	return nil
}

// Version returns the registered version, or "" when AddVersion was not called.
func (b *Base) Version() string {
	if b.version == nil {
		return ""
	}
	return b.version.String()
}

// Lookup finds a registered argument by id or alias.
func (b *Base) Lookup(name string) (*ArgSpec, bool) {
	return b.reg.lookup(name)
}

// Specs returns the registered arguments in registration order.
func (b *Base) Specs() []*ArgSpec {
	return append([]*ArgSpec(nil), b.reg.specs...)
}

// HandleMeta scans args up to "--" for a help or version identifier. The
// first one found is acted on and ErrHelp or ErrVersion returned; nil means
// neither was requested.
func (b *Base) HandleMeta(args []string) error {
	for _, tok := range args {
		if tok == "--" {
			return nil
		}
		s, _, inline := b.match(tok)
		if s == nil || s.meta == metaNone || inline {
			continue
		}
		if s.invoke != nil {
			if err := s.invoke(FlagValue); err != nil {
				return &CallbackError{Arg: s.id, Err: err}
			}
		}
		if s.meta == metaHelp {
			return ErrHelp
		}
		return ErrVersion
	}
	return nil
}

// match resolves a token to a spec, either exactly or in name=value form.
func (b *Base) match(tok string) (s *ArgSpec, value string, inline bool) {
	if s, ok := b.reg.lookup(tok); ok {
		return s, "", false
	}
	if name, val, found := strings.Cut(tok, "="); found && name != "" {
		if s, ok := b.reg.lookup(name); ok {
			return s, val, true
		}
	}
	return nil, "", false
}

// Usage returns the usage text: a header line, then one line per visible
// argument in registration order, then the positional slots.
func (b *Base) Usage() string {
	type row struct {
		plain, styled, text string
	}
	c := b.colors

	var opts []row
	for _, s := range b.reg.specs {
		if s.hidden {
			continue
		}
		plain := "  " + s.label()
		styled := "  " + c.Name(s.label())
		if hint := s.kind.placeholder(); hint != "" {
			plain += " " + hint
			styled += " " + c.Hint(hint)
		}
		opts = append(opts, row{plain: plain, styled: styled, text: b.describe(s)})
	}
	var args []row
	for _, p := range b.positionals {
		args = append(args, row{plain: "  " + p.name, styled: "  " + c.Name(p.name), text: p.description})
	}

	width := 0
	for _, r := range append(append([]row(nil), opts...), args...) {
		width = max(width, len(r.plain))
	}
	width += usageGap

	var sb strings.Builder
	header := b.description
	if header == "" {
		header = b.name
	}
	fmt.Fprintf(&sb, "%s %s\n", c.Heading("Usage:"), header)
	writeRows := func(title string, rows []row) {
		if len(rows) == 0 {
			return
		}
		fmt.Fprintf(&sb, "\n%s\n", c.Heading(title))
		for _, r := range rows {
			sb.WriteString(r.styled)
			if r.text != "" {
				sb.WriteString(strings.Repeat(" ", width-len(r.plain)))
				sb.WriteString(r.text)
			}
			sb.WriteString("\n")
		}
	}
	writeRows("Options:", opts)
	writeRows("Arguments:", args)
	return sb.String()
}

func (b *Base) describe(s *ArgSpec) string {
	text := s.description
	var notes []string
	if def, ok := s.Default(); ok {
		notes = append(notes, "default: "+def.String())
	}
	if s.required {
		notes = append(notes, "required")
	}
	if len(notes) > 0 {
		suffix := b.colors.Hint("(" + strings.Join(notes, ", ") + ")")
		if text == "" {
			return suffix
		}
		text += " " + suffix
	}
	return text
}

// WriteUsage writes Usage to w.
func (b *Base) WriteUsage(w io.Writer) error {
	_, err := io.WriteString(w, b.Usage())
	return err
}
