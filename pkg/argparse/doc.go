// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package argparse provides a small typed command-line argument parser with
// callbacks, defaults and generated usage text.
//
// It has two layers:
//   - Base owns the registry of identifiers (id, alias, description) and
//     renders usage text. Help and version arguments live here.
//   - Parser embeds Base and adds typed value slots, declared defaults,
//     callbacks and the parse pass.
//
// # Basic Usage
//
//	p := argparse.New("app -- does things")
//	_ = p.AddHelp()
//	_ = argparse.AddArgWithCallbackDefault(p, "--count", 0,
//	    func(p *argparse.Parser, n int) error {
//	        fmt.Println("count:", n)
//	        return nil
//	    },
//	    argparse.Alias("-c"), argparse.Description("How many"))
//	_ = p.AddFlagWithCallback("--verbose", func(*argparse.Parser) error {
//	    verbose = true
//	    return nil
//	})
//	if err := p.Parse(os.Args[1:]); errors.Is(err, argparse.ErrHelp) {
//	    return
//	} else if err != nil {
//	    log.Fatal(err)
//	}
//
// Arguments registered with Base.AddArg are untyped: their tokens are kept
// as given and converted when read with Get.
//
// # Token Syntax
//
//   - Flags: --verbose
//   - Options: --count 5, --count=5, -c -5 (the next token is always taken
//     unless it is itself a registered identifier)
//   - Sequences (strings, ints, doubles, raw): every token up to the next
//     registered identifier or "--"; or --ids=1,2,3
//   - Bare tokens fill positional slots declared with AddPositional
//   - "--" ends parsing; the remaining tokens are available from Rest
//
// A help or version identifier anywhere before "--" short-circuits the pass:
// the text is written and Parse returns ErrHelp or ErrVersion.
//
// # Resolution
//
// After the scan, each argument the command line did not resolve is looked
// up in the configured Sources, then falls back to its declared default.
// Either way its callback runs exactly once. Arguments with neither stay
// Unparsed and their callbacks do not run; Required ones fail the pass.
//
// # Errors
//
// Every failure is a distinct type that also matches a sentinel with
// errors.Is: DuplicateIdentifierError (ErrDuplicateIdentifier) at
// registration; UnrecognizedArgumentError, ConversionError,
// MissingValueError, RepeatedArgumentError and
// MissingRequiredArgumentError during Parse.
package argparse
