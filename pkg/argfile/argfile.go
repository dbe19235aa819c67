// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package argfile loads argument values from TOML, YAML, HCL or JSON files.
// A loaded *File is an argparse.Source keyed by canonical argument names.
package argfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"gopkg.in/yaml.v3"
)

type Format int

const (
	Unknown Format = iota
	TOML
	YAML
	HCL
	JSON
)

func (f Format) String() string {
	switch f {
	case TOML:
		return "toml"
	case YAML:
		return "yaml"
	case HCL:
		return "hcl"
	case JSON:
		return "json"
	}
	return "unknown"
}

// DefaultNames are the file names Find looks for when none are given.
var DefaultNames = []string{"args.toml", "args.yaml", "args.yml", "args.hcl", "args.json"}

// ErrUnsupportedValue is returned for values that cannot be expressed as
// argument tokens, such as nested tables.
var ErrUnsupportedValue = errors.New("unsupported value")

// File holds the values of one argument file.
type File struct {
	path   string
	format Format
	values map[string][]string
}

// Load reads and decodes the file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read argument file: %w", err)
	}
	return Parse(path, data)
}

// Parse decodes data. The format is taken from the extension of name when it
// has a known one and sniffed from the content otherwise.
func Parse(name string, data []byte) (*File, error) {
	format := detectByName(name)
	if format == Unknown {
		format = detectByContent(data)
	}
	if format == Unknown {
		return nil, fmt.Errorf("unable to detect format of %s", name)
	}
	values, err := decode(format, name, data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return &File{path: name, format: format, values: values}, nil
}

// Find walks from startDir up to the filesystem root and returns the first
// path whose base name is one of names, checked in order in each directory.
// It returns an error matching os.ErrNotExist when nothing is found.
func Find(startDir string, names ...string) (string, error) {
	if len(names) == 0 {
		names = DefaultNames
	}
	dir := filepath.Clean(startDir)
	for {
		for _, name := range names {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			} else if !os.IsNotExist(err) {
				return "", err
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}

// Name implements argparse.Source.
func (f *File) Name() string { return f.path }

func (f *File) Path() string   { return f.path }
func (f *File) Format() Format { return f.format }

// Lookup implements argparse.Source. Keys written with underscores match
// names written with dashes.
func (f *File) Lookup(name string) ([]string, bool) {
	if v, ok := f.values[name]; ok {
		return slices.Clone(v), true
	}
	if alt := strings.ReplaceAll(name, "-", "_"); alt != name {
		if v, ok := f.values[alt]; ok {
			return slices.Clone(v), true
		}
	}
	return nil, false
}

// Keys returns the keys of the file in sorted order.
func (f *File) Keys() []string {
	keys := make([]string, 0, len(f.values))
	for k := range f.values {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func detectByName(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".toml":
		return TOML
	case ".yaml", ".yml":
		return YAML
	case ".hcl":
		return HCL
	case ".json":
		return JSON
	}
	return Unknown
}

// detectByContent tries the formats from the strictest to the loosest.
func detectByContent(data []byte) Format {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Unknown
	}
	if trimmed[0] == '{' && json.Valid(trimmed) {
		return JSON
	}
	var tm map[string]any
	if _, err := toml.Decode(string(data), &tm); err == nil {
		return TOML
	}
	var ym map[string]any
	if err := yaml.Unmarshal(data, &ym); err == nil && len(ym) > 0 {
		return YAML
	}
	if _, diags := hclparse.NewParser().ParseHCL(data, "sniff.hcl"); !diags.HasErrors() {
		return HCL
	}
	return Unknown
}

func decode(format Format, name string, data []byte) (map[string][]string, error) {
	switch format {
	case HCL:
		return decodeHCL(name, data)
	case TOML:
		var m map[string]any
		if _, err := toml.Decode(string(data), &m); err != nil {
			return nil, err
		}
		return flatten(m)
	case YAML:
		var m map[string]any
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, err
		}
		return flatten(m)
	case JSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		var m map[string]any
		if err := dec.Decode(&m); err != nil {
			return nil, err
		}
		return flatten(m)
	}
	return nil, fmt.Errorf("unknown format %s", format)
}

func flatten(m map[string]any) (map[string][]string, error) {
	out := make(map[string][]string, len(m))
	for key, raw := range m {
		if raw == nil {
			continue
		}
		if list, ok := raw.([]any); ok {
			tokens := make([]string, 0, len(list))
			for i, elem := range list {
				tok, err := scalarToken(elem)
				if err != nil {
					return nil, fmt.Errorf("%s[%d]: %w", key, i, err)
				}
				tokens = append(tokens, tok)
			}
			out[key] = tokens
			continue
		}
		tok, err := scalarToken(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		out[key] = []string{tok}
	}
	return out, nil
}

func scalarToken(v any) (string, error) {
	switch v := v.(type) {
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	case json.Number:
		return v.String(), nil
	case time.Time:
		return v.Format(time.RFC3339Nano), nil
	}
	return "", fmt.Errorf("%w: %T", ErrUnsupportedValue, v)
}

func decodeHCL(name string, data []byte) (map[string][]string, error) {
	f, diags := hclparse.NewParser().ParseHCL(data, name)
	if diags.HasErrors() {
		return nil, diags
	}
	attrs, diags := f.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}
	out := make(map[string][]string, len(attrs))
	for key, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, diags
		}
		if val.IsNull() {
			continue
		}
		tokens, err := ctyTokens(val)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		out[key] = tokens
	}
	return out, nil
}

func ctyTokens(val cty.Value) ([]string, error) {
	ty := val.Type()
	if ty.IsListType() || ty.IsTupleType() || ty.IsSetType() {
		var tokens []string
		for it := val.ElementIterator(); it.Next(); {
			_, elem := it.Element()
			tok, err := ctyScalar(elem)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
		}
		return tokens, nil
	}
	tok, err := ctyScalar(val)
	if err != nil {
		return nil, err
	}
	return []string{tok}, nil
}

func ctyScalar(val cty.Value) (string, error) {
	if !val.Type().IsPrimitiveType() || val.IsNull() || !val.IsKnown() {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedValue, val.Type().FriendlyName())
	}
	s, err := convert.Convert(val, cty.String)
	if err != nil {
		return "", err
	}
	return s.AsString(), nil
}
