// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runDemo(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(&out, &errOut, args)
	return code, out.String(), errOut.String()
}

// field returns the value and origin columns of the output row for name.
func field(t *testing.T, out, name string) (value, origin string) {
	t.Helper()
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 || fields[0] != name {
			continue
		}
		rest := strings.TrimSpace(line[len(fields[0]):])
		if !strings.HasPrefix(rest, "(") {
			value, rest, _ = strings.Cut(rest, " ")
			rest = strings.TrimSpace(rest)
		}
		return value, strings.TrimSuffix(strings.TrimPrefix(rest, "("), ")")
	}
	t.Fatalf("no %q row in output:\n%s", name, out)
	return "", ""
}

func TestRunDefaults(t *testing.T) {
	code, out, stderr := runDemo(t)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %q", code, stderr)
	}
	for _, tt := range []struct {
		name, value, origin string
	}{
		{"count", "0", "default"},
		{"ratio", "1", "default"},
		{"scale", "1", "default"},
		{"name", "world", "default"},
		{"sep", ",", "default"},
	} {
		value, origin := field(t, out, tt.name)
		if value != tt.value || origin != tt.origin {
			t.Errorf("%s = %q (%s), want %q (%s)", tt.name, value, origin, tt.value, tt.origin)
		}
	}
	if _, origin := field(t, out, "verbose"); origin != "unset" {
		t.Errorf("verbose origin = %q, want unset", origin)
	}
	if strings.Contains(out, "greeting") {
		t.Errorf("greeting printed with count 0:\n%s", out)
	}
}

func TestRunCommandLine(t *testing.T) {
	code, out, stderr := runDemo(t,
		"-c", "2", "-v", "-r", "0.25", "--scale", "-3.5", "-n", "gopher",
		"-f", "a.txt", "b.txt", "--ids=4,5", "--sep", ";", "in.txt", "--", "extra", "-x")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %q", code, stderr)
	}
	for _, tt := range []struct {
		name, value string
	}{
		{"count", "2"},
		{"verbose", "true"},
		{"ratio", "0.25"},
		{"scale", "-3.5"},
		{"name", "gopher"},
		{"sep", ";"},
		{"files", "a.txt;b.txt"},
		{"ids", "4;5"},
	} {
		value, origin := field(t, out, tt.name)
		if value != tt.value || origin != "command line" {
			t.Errorf("%s = %q (%s), want %q (command line)", tt.name, value, origin, tt.value)
		}
	}
	if !strings.Contains(out, "in.txt") || !strings.Contains(out, "extra -x") {
		t.Errorf("positional or rest missing:\n%s", out)
	}
	if got := strings.Count(out, "Hello, gopher!"); got != 2 {
		t.Errorf("greeting printed %d times, want 2", got)
	}
}

func TestRunHelpAndVersion(t *testing.T) {
	code, out, _ := runDemo(t, "--count", "bogus", "--help")
	if code != 0 {
		t.Fatalf("help exit code = %d", code)
	}
	for _, want := range []string{"Usage: argdemo", "-h|--help", "--count|-c <int>", "--files|-f <string...>", "INPUT"} {
		if !strings.Contains(out, want) {
			t.Errorf("help output missing %q:\n%s", want, out)
		}
	}

	code, out, _ = runDemo(t, "-V")
	if code != 0 || out != "argdemo v1.0.0\n" {
		t.Errorf("version = %d, %q", code, out)
	}
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantErr  string
	}{
		{name: "conversion", args: []string{"-c", "abc"}, wantCode: 2, wantErr: `couldn't convert "abc" to type <int> for --count`},
		{name: "unknown", args: []string{"--bogus"}, wantCode: 2, wantErr: "unrecognized argument: --bogus"},
		{name: "char", args: []string{"--sep", "ab"}, wantCode: 2, wantErr: `couldn't convert "ab" to type <char> for --sep`},
		{name: "missing_value", args: []string{"--name"}, wantCode: 2, wantErr: "--name requires a value"},
		{name: "repeated", args: []string{"-c", "1", "-c", "2"}, wantCode: 2, wantErr: "given more than once"},
		{name: "callback", args: []string{"-c", "-1"}, wantCode: 1, wantErr: "must not be negative"},
		{name: "bad_log_level", args: []string{"--log-level", "loud"}, wantCode: 2, wantErr: "invalid --log-level"},
		{name: "missing_config", args: []string{"--config", "/does/not/exist.toml"}, wantCode: 2, wantErr: "failed to read argument file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := runDemo(t, tt.args...)
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d", code, tt.wantCode)
			}
			if !strings.HasPrefix(stderr, "error: ") || !strings.Contains(stderr, tt.wantErr) {
				t.Errorf("stderr = %q, want error containing %q", stderr, tt.wantErr)
			}
		})
	}
}

func TestRunSourcesPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.yaml")
	if err := os.WriteFile(path, []byte("count: 3\nname: file\nids: [7, 8]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DEMOTEST_NAME", "env")
	t.Setenv("DEMOTEST_FILES", "x.txt,y.txt")
	t.Setenv("DEMOTEST_VERBOSE", "true")

	code, out, stderr := runDemo(t, "--config", path, "--env-prefix", "DEMOTEST", "-c", "1")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %q", code, stderr)
	}
	for _, tt := range []struct {
		name, value, origin string
	}{
		{"count", "1", "command line"},
		{"name", "file", path},
		{"ids", "7,8", path},
		{"files", "x.txt,y.txt", "environment (DEMOTEST_*)"},
		{"verbose", "true", "environment (DEMOTEST_*)"},
		{"scale", "1", "default"},
	} {
		value, origin := field(t, out, tt.name)
		if value != tt.value || origin != tt.origin {
			t.Errorf("%s = %q (%s), want %q (%s)", tt.name, value, origin, tt.value, tt.origin)
		}
	}
}

func TestRunWriteEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.env")
	code, _, stderr := runDemo(t, "--write-env", path, "-n", "gopher", "--ids", "1", "2")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %q", code, stderr)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"ARGDEMO_COUNT=0\n", "ARGDEMO_NAME=gopher\n", "ARGDEMO_IDS=1,2\n"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("env file missing %q:\n%s", want, data)
		}
	}
	if strings.Contains(string(data), "ARGDEMO_FILES") {
		t.Errorf("unset argument written:\n%s", data)
	}
}

func TestRunReadsWrittenEnvBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.env")
	code, _, stderr := runDemo(t, "--write-env", path, "-c", "2", "-n", "gopher", "-f", "a.txt", "b.txt")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %q", code, stderr)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		k, v, ok := strings.Cut(line, "=")
		if !ok {
			t.Fatalf("malformed env line %q", line)
		}
		t.Setenv(k, v)
	}

	code, out, stderr := runDemo(t)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %q", code, stderr)
	}
	for _, tt := range []struct {
		name, value string
	}{
		{"count", "2"},
		{"name", "gopher"},
		{"files", "a.txt,b.txt"},
	} {
		value, origin := field(t, out, tt.name)
		if value != tt.value || origin != "environment (ARGDEMO_*)" {
			t.Errorf("%s = %q (%s), want %q (environment (ARGDEMO_*))", tt.name, value, origin, tt.value)
		}
	}
}
