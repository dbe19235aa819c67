// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argparse

// Source supplies values for arguments the command line left unresolved,
// such as a config file or the environment.
type Source interface {
	// Name identifies the source in errors and as the value origin.
	Name() string
	// Lookup returns the raw tokens stored under name, which is an argument
	// identifier with its leading dashes removed ("max-count" for
	// "--max-count"). A single token given for a sequence argument is
	// split on commas.
	Lookup(name string) ([]string, bool)
}

// MapSource is a Source backed by a map keyed by canonical name.
type MapSource map[string][]string

func (m MapSource) Name() string { return "map" }

func (m MapSource) Lookup(name string) ([]string, bool) {
	v, ok := m[name]
	return v, ok
}

// lookupSource tries the id, then the alias, against src.
func lookupSource(src Source, s *ArgSpec) ([]string, bool) {
	for _, name := range s.Names() {
		key := trimDashes(name)
		if key == "" {
			continue
		}
		if tokens, ok := src.Lookup(key); ok {
			return tokens, true
		}
	}
	return nil, false
}
