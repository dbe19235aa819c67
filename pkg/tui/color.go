// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tui

import "os"

const (
	ColorReset  = "\x1b[0m"
	ColorBold   = "\x1b[1m"
	ColorRed    = "\x1b[31m"
	ColorGreen  = "\x1b[32m"
	ColorYellow = "\x1b[33m"
	ColorCyan   = "\x1b[36m"
	ColorDim    = "\x1b[90m"
)

// Colorizer wraps text in ANSI codes when enabled. The zero value is
// disabled.
type Colorizer struct {
	Enabled bool
}

// NewColorizer returns an enabled Colorizer unless NO_COLOR is set or the
// terminal is dumb.
func NewColorizer(enabled bool) Colorizer {
	if !enabled {
		return Colorizer{}
	}
	if os.Getenv("NO_COLOR") != "" {
		return Colorizer{}
	}
	term := os.Getenv("TERM")
	if term == "" || term == "dumb" {
		return Colorizer{}
	}
	return Colorizer{Enabled: true}
}

func (c Colorizer) Wrap(code, text string) string {
	if !c.Enabled || code == "" || text == "" {
		return text
	}
	return code + text + ColorReset
}

// Heading styles section titles in help output.
func (c Colorizer) Heading(text string) string {
	return c.Wrap(ColorBold, text)
}

// Name styles argument identifiers in help output.
func (c Colorizer) Name(text string) string {
	return c.Wrap(ColorCyan, text)
}

// Hint styles secondary text such as defaults and value placeholders.
func (c Colorizer) Hint(text string) string {
	return c.Wrap(ColorDim, text)
}
