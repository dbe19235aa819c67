// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/yeetrun/argparse/pkg/argparse"
)

func TestLoadFormats(t *testing.T) {
	t.Parallel()

	want := map[string][]string{
		"count":   {"5"},
		"ratio":   {"0.5"},
		"verbose": {"true"},
		"name":    {"demo"},
		"files":   {"a.txt", "b.txt"},
	}
	cases := []struct {
		name     string
		fileName string
		contents string
		format   Format
	}{
		{
			name:     "toml",
			fileName: "args.toml",
			contents: "count = 5\nratio = 0.5\nverbose = true\nname = \"demo\"\nfiles = [\"a.txt\", \"b.txt\"]\n",
			format:   TOML,
		},
		{
			name:     "yaml",
			fileName: "args.yml",
			contents: "count: 5\nratio: 0.5\nverbose: true\nname: demo\nfiles:\n  - a.txt\n  - b.txt\n",
			format:   YAML,
		},
		{
			name:     "hcl",
			fileName: "args.hcl",
			contents: "count = 5\nratio = 0.5\nverbose = true\nname = \"demo\"\nfiles = [\"a.txt\", \"b.txt\"]\n",
			format:   HCL,
		},
		{
			name:     "json",
			fileName: "args.json",
			contents: `{"count": 5, "ratio": 0.5, "verbose": true, "name": "demo", "files": ["a.txt", "b.txt"]}`,
			format:   JSON,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), tc.fileName)
			if err := os.WriteFile(path, []byte(tc.contents), 0o644); err != nil {
				t.Fatalf("write file: %v", err)
			}
			f, err := Load(path)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if f.Format() != tc.format {
				t.Errorf("Format() = %s, want %s", f.Format(), tc.format)
			}
			if f.Name() != path {
				t.Errorf("Name() = %q, want %q", f.Name(), path)
			}
			got := make(map[string][]string)
			for _, k := range f.Keys() {
				got[k], _ = f.Lookup(k)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("values mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseSniffsFormat(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		contents string
		want     Format
	}{
		{name: "json", contents: `{"count": 1}`, want: JSON},
		{name: "toml", contents: "count = 1\n", want: TOML},
		{name: "yaml", contents: "count: 1\n", want: YAML},
		{name: "hcl_comment", contents: "// settings\ncount = 1\n", want: HCL},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			f, err := Parse("argsrc", []byte(tc.contents))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if f.Format() != tc.want {
				t.Errorf("Format() = %s, want %s", f.Format(), tc.want)
			}
			if got, ok := f.Lookup("count"); !ok || len(got) != 1 || got[0] != "1" {
				t.Errorf("Lookup(count) = %v, %v", got, ok)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	if _, err := Parse("argsrc", []byte("   \n")); err == nil {
		t.Error("Parse(empty) succeeded")
	}
	if _, err := Parse("args.toml", []byte("count = \n")); err == nil {
		t.Error("Parse(bad toml) succeeded")
	}
	_, err := Parse("args.toml", []byte("[server]\nport = 80\n"))
	if !errors.Is(err, ErrUnsupportedValue) {
		t.Errorf("Parse(nested table) error = %v, want ErrUnsupportedValue", err)
	}
	_, err = Parse("args.hcl", []byte("server = { port = 80 }\n"))
	if !errors.Is(err, ErrUnsupportedValue) {
		t.Errorf("Parse(hcl object) error = %v, want ErrUnsupportedValue", err)
	}
}

func TestLookupUnderscoreKeys(t *testing.T) {
	t.Parallel()

	f, err := Parse("args.toml", []byte("max_count = 3\n"))
	if err != nil {
		t.Fatal(err)
	}
	if got, ok := f.Lookup("max-count"); !ok || got[0] != "3" {
		t.Errorf("Lookup(max-count) = %v, %v", got, ok)
	}
	if _, ok := f.Lookup("min-count"); ok {
		t.Error("Lookup(min-count) found a value")
	}
}

func TestFindWalksParents(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(root, "a", "args.yaml")
	if err := os.WriteFile(want, []byte("count: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Find(nested)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if got != want {
		t.Errorf("Find() = %q, want %q", got, want)
	}

	if _, err := Find(nested, "missing.toml"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Find(missing) error = %v, want os.ErrNotExist", err)
	}
}

func TestFileAsParserSource(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "args.toml")
	if err := os.WriteFile(path, []byte("count = 9\nids = [1, 2]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	p := argparse.New("test", argparse.WithSources(f))
	if err := argparse.AddArgDefault(p, "--count", 0, argparse.Alias("-c")); err != nil {
		t.Fatal(err)
	}
	if err := argparse.AddTypedArg[[]int](p, "--ids"); err != nil {
		t.Fatal(err)
	}
	if err := p.Parse([]string{"--ids", "7"}); err != nil {
		t.Fatal(err)
	}
	if got := argparse.GetOr(p, "--count", 0); got != 9 {
		t.Errorf("count = %d, want 9 from file", got)
	}
	if p.Origin("--count") != path {
		t.Errorf("Origin(--count) = %q, want %q", p.Origin("--count"), path)
	}
	ids, _ := argparse.Get[[]int](p, "--ids")
	if diff := cmp.Diff([]int{7}, ids); diff != "" {
		t.Errorf("command line ids mismatch (-want +got):\n%s", diff)
	}
}

func TestArrayForSingleValueArgument(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "args.toml")
	if err := os.WriteFile(path, []byte("count = [1, 2]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	p := argparse.New("test", argparse.WithSources(f))
	if err := argparse.AddArgDefault(p, "--count", 0); err != nil {
		t.Fatal(err)
	}
	err = p.Parse(nil)
	var cerr *argparse.ConversionError
	if !errors.As(err, &cerr) {
		t.Fatalf("Parse error = %v, want *argparse.ConversionError", err)
	}
	if cerr.Arg != "--count" || cerr.Token != "1,2" || cerr.Source != path {
		t.Errorf("ConversionError = %+v", cerr)
	}
	if got := p.State("--count"); got == argparse.Resolved {
		t.Errorf("--count resolved to %d from an array", argparse.GetOr(p, "--count", 0))
	}
}
