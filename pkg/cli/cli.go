// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/shayne/yargs"
	"github.com/yeetrun/argparse/pkg/argparse"
)

// Exit codes returned by ExitCode.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// GlobalFlags are consumed before the remaining arguments reach the
// program's own parser.
type GlobalFlags struct {
	Config    string `flag:"config" help:"Read argument values from a toml, yaml, hcl or json file"`
	EnvPrefix string `flag:"env-prefix" help:"Read argument values from PREFIX_NAME environment variables"`
	LogLevel  string `flag:"log-level" help:"Log level (debug|info|warn|error)"`
	LogFormat string `flag:"log-format" help:"Log format (text|json)"`
	NoColor   bool   `flag:"no-color" help:"Disable colored output"`
	WriteEnv  string `flag:"write-env" help:"Write the resolved values to an env file"`
}

// ParseGlobal removes the global flags from args and returns them with the
// remaining arguments, in order. Everything after "--" is left alone.
func ParseGlobal(args []string) (GlobalFlags, []string, error) {
	result, err := yargs.ParseKnownFlags[GlobalFlags](args, yargs.KnownFlagsOptions{})
	if err != nil {
		return GlobalFlags{}, nil, err
	}
	flags := result.Flags
	if err := flags.validate(); err != nil {
		return GlobalFlags{}, nil, err
	}
	return flags, result.RemainingArgs, nil
}

func (f GlobalFlags) validate() error {
	switch strings.ToLower(f.LogLevel) {
	case "", "debug", "info", "warn", "error":
	default:
		return &ExitCodeError{Code: ExitUsage, Message: fmt.Sprintf("invalid --log-level %q", f.LogLevel)}
	}
	switch strings.ToLower(f.LogFormat) {
	case "", "text", "json":
	default:
		return &ExitCodeError{Code: ExitUsage, Message: fmt.Sprintf("invalid --log-format %q", f.LogFormat)}
	}
	return nil
}

// NewLogger creates a slog.Logger writing to w. Unknown or empty levels
// fall back to warn so that parse tracing stays quiet by default.
func NewLogger(levelStr, formatStr string, w io.Writer) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(levelStr) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelWarn
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if strings.EqualFold(formatStr, "json") {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}
	return slog.New(handler)
}

// ExitCodeError carries the process exit code for an error.
type ExitCodeError struct {
	Code    int
	Message string
}

func (e *ExitCodeError) Error() string {
	return e.Message
}

// ExitCode maps err to a process exit code. Help and version requests exit
// cleanly; argument errors are usage errors.
func ExitCode(err error) int {
	var exitErr *ExitCodeError
	switch {
	case err == nil:
		return ExitOK
	case errors.As(err, &exitErr):
		return exitErr.Code
	case errors.Is(err, argparse.ErrHelp), errors.Is(err, argparse.ErrVersion):
		return ExitOK
	case errors.Is(err, argparse.ErrUnrecognizedArgument),
		errors.Is(err, argparse.ErrConversion),
		errors.Is(err, argparse.ErrMissingRequired),
		errors.Is(err, argparse.ErrMissingValue),
		errors.Is(err, argparse.ErrRepeatedArgument):
		return ExitUsage
	}
	return ExitError
}
