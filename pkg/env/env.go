// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package env maps parser arguments to environment variables, both as a
// value source and as an env file writer.
package env

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/yeetrun/argparse/pkg/argparse"
)

// Source is an argparse.Source reading PREFIX_NAME variables, where NAME is
// the canonical argument name upper-cased with dashes turned into
// underscores. Empty variables count as unset.
type Source struct {
	Prefix string

	// LookupEnv replaces os.LookupEnv when set.
	LookupEnv func(key string) (string, bool)
}

func (s Source) Name() string {
	if s.Prefix == "" {
		return "environment"
	}
	return "environment (" + s.Prefix + "_*)"
}

// Key returns the variable name for a canonical argument name.
func (s Source) Key(name string) string {
	key := strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
	if s.Prefix == "" {
		return key
	}
	return strings.ToUpper(s.Prefix) + "_" + key
}

func (s Source) Lookup(name string) ([]string, bool) {
	lookup := s.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	v, ok := lookup(s.Key(name))
	if !ok || v == "" {
		return nil, false
	}
	return []string{v}, true
}

// ErrListSeparator is returned by Write for a list element that contains a
// comma, since Source splits single list values on commas.
var ErrListSeparator = errors.New("list element contains a comma")

// Write writes an environment file with the values p resolved in its last
// pass, in the form Source reads back. Nothing is written when a value
// would not read back unchanged.
func Write(name, prefix string, p *argparse.Parser) error {
	var buf bytes.Buffer
	if err := marshalEnv(&buf, prefix, p); err != nil {
		return fmt.Errorf("failed to marshal env: %w", err)
	}
	f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to create file: %v", err)
	}
	defer f.Close()
	if _, err := f.Write(buf.Bytes()); err != nil {
		return err
	}
	return f.Close()
}

func marshalEnv(o io.Writer, prefix string, p *argparse.Parser) error {
	src := Source{Prefix: prefix}
	for _, s := range p.Specs() {
		if s.Kind() == argparse.KindRaw {
			continue
		}
		v, ok := p.Value(s.ID())
		if !ok {
			continue
		}
		for _, tok := range v.Tokens() {
			if strings.Contains(tok, ",") {
				return fmt.Errorf("%s: %q: %w", s.ID(), tok, ErrListSeparator)
			}
		}
		if _, err := fmt.Fprintf(o, "%s=%s\n", src.Key(s.Name()), v.String()); err != nil {
			return err
		}
	}
	return nil
}
