// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// argdemo registers one argument of every supported kind, parses the
// command line and prints what each argument resolved to.
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/yeetrun/argparse/pkg/argfile"
	"github.com/yeetrun/argparse/pkg/argparse"
	"github.com/yeetrun/argparse/pkg/cli"
	"github.com/yeetrun/argparse/pkg/env"
	"github.com/yeetrun/argparse/pkg/tui"
	"golang.org/x/term"
)

const (
	version          = "1.0.0"
	defaultEnvPrefix = "ARGDEMO"
	autoConfig       = "auto"
)

var isTerminalFn = term.IsTerminal

func main() {
	os.Exit(run(os.Stdout, os.Stderr, os.Args[1:]))
}

type settings struct {
	count   int
	verbose bool
	ratio   float32
	scale   float64
	name    string
	sep     rune
	files   []string
	ids     []int
}

type app struct {
	out    io.Writer
	errOut io.Writer
	flags  cli.GlobalFlags
	log    *slog.Logger
	s      settings
}

func run(out, errOut io.Writer, args []string) int {
	a := &app{out: out, errOut: errOut}
	err := a.run(args)
	code := cli.ExitCode(err)
	if code != cli.ExitOK {
		a.printError(err)
	}
	return code
}

func (a *app) run(args []string) error {
	flags, rest, err := cli.ParseGlobal(args)
	if err != nil {
		return err
	}
	a.flags = flags
	a.log = cli.NewLogger(flags.LogLevel, flags.LogFormat, a.errOut)

	srcs, err := a.sources()
	if err != nil {
		return err
	}
	p, err := a.newParser(srcs)
	if err != nil {
		return err
	}
	if err := p.Parse(rest); err != nil {
		return err
	}
	if err := a.print(p); err != nil {
		return err
	}
	if flags.WriteEnv != "" {
		if err := env.Write(flags.WriteEnv, a.envPrefix(), p); err != nil {
			return err
		}
		log.Printf("Wrote resolved values to %s", flags.WriteEnv)
	}
	return nil
}

func (a *app) envPrefix() string {
	if a.flags.EnvPrefix != "" {
		return a.flags.EnvPrefix
	}
	return defaultEnvPrefix
}

// sources returns the value sources in precedence order: the argument file,
// then the environment under envPrefix, which is also the prefix --write-env
// uses.
func (a *app) sources() ([]argparse.Source, error) {
	var srcs []argparse.Source
	if path := a.flags.Config; path != "" {
		if path == autoConfig {
			cwd, err := os.Getwd()
			if err != nil {
				return nil, err
			}
			found, err := argfile.Find(cwd)
			if errors.Is(err, os.ErrNotExist) {
				a.log.Info("no argument file found", "dir", cwd)
				path = ""
			} else if err != nil {
				return nil, err
			} else {
				path = found
			}
		}
		if path != "" {
			f, err := argfile.Load(path)
			if err != nil {
				return nil, &cli.ExitCodeError{Code: cli.ExitUsage, Message: err.Error()}
			}
			a.log.Debug("loaded argument file", "path", f.Path(), "format", f.Format(), "keys", f.Keys())
			srcs = append(srcs, f)
		}
	}
	srcs = append(srcs, env.Source{Prefix: a.envPrefix()})
	return srcs, nil
}

func (a *app) newParser(srcs []argparse.Source) (*argparse.Parser, error) {
	p := argparse.New("argdemo [global flags] [options] [INPUT] [-- extra...]",
		argparse.WithName("argdemo"),
		argparse.WithOutput(a.out),
		argparse.WithLogger(a.log),
		argparse.WithSources(srcs...),
		argparse.WithColor(tui.NewColorizer(a.colorEnabled(a.out))),
	)
	s := &a.s
	regs := []error{
		p.AddHelp(),
		p.AddVersion(version),
		argparse.AddArgWithCallbackDefault(p, "--count", 0, func(_ *argparse.Parser, n int) error {
			if n < 0 {
				return fmt.Errorf("must not be negative, got %d", n)
			}
			s.count = n
			return nil
		}, argparse.Alias("-c"), argparse.Description("How many times to repeat")),
		p.AddFlagWithCallback("--verbose", func(*argparse.Parser) error {
			s.verbose = true
			return nil
		}, argparse.Alias("-v"), argparse.Description("Verbose output")),
		argparse.AddArgWithCallbackDefault[float32](p, "--ratio", 1, func(_ *argparse.Parser, r float32) error {
			s.ratio = r
			return nil
		}, argparse.Alias("-r"), argparse.Description("Single precision ratio")),
		argparse.AddArgWithCallbackDefault(p, "--scale", 1.0, func(_ *argparse.Parser, f float64) error {
			s.scale = f
			return nil
		}, argparse.Description("Double precision scale")),
		argparse.AddArgWithCallbackDefault(p, "--name", "world", func(_ *argparse.Parser, n string) error {
			s.name = n
			return nil
		}, argparse.Alias("-n"), argparse.Description("Name to greet")),
		argparse.AddArgWithCallbackDefault(p, "--sep", ',', func(_ *argparse.Parser, r rune) error {
			s.sep = r
			return nil
		}, argparse.Description("Separator for list output")),
		argparse.AddArgWithCallback[[]string](p, "--files", func(_ *argparse.Parser, f []string) error {
			s.files = f
			return nil
		}, argparse.Alias("-f"), argparse.Description("Files to process")),
		argparse.AddArgWithCallback[[]int](p, "--ids", func(_ *argparse.Parser, ids []int) error {
			s.ids = ids
			return nil
		}, argparse.Description("Numeric identifiers")),
		p.AddPositional("INPUT", "Optional input"),
	}
	if err := errors.Join(regs...); err != nil {
		return nil, err
	}
	return p, nil
}

func (a *app) print(p *argparse.Parser) error {
	s := a.s
	if s.verbose {
		a.log.Info("resolved arguments", "specs", len(p.Specs()))
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	row := func(name, value string) {
		origin := p.Origin("--" + name)
		if origin == "" {
			origin = "unset"
		}
		fmt.Fprintf(tw, "%s\t%s\t(%s)\n", name, value, origin)
	}
	row("count", fmt.Sprint(s.count))
	row("verbose", fmt.Sprint(s.verbose))
	row("ratio", fmt.Sprint(s.ratio))
	row("scale", fmt.Sprint(s.scale))
	row("name", s.name)
	sep := string(s.sep)
	row("sep", sep)
	row("files", strings.Join(s.files, sep))
	ids := make([]string, len(s.ids))
	for i, id := range s.ids {
		ids[i] = fmt.Sprint(id)
	}
	row("ids", strings.Join(ids, sep))
	if in, ok := p.Positional(0); ok {
		fmt.Fprintf(tw, "input\t%s\t\n", in)
	}
	if rest := p.Rest(); len(rest) > 0 {
		fmt.Fprintf(tw, "rest\t%s\t\n", strings.Join(rest, " "))
	}
	for i := 0; i < s.count; i++ {
		fmt.Fprintf(tw, "greeting\tHello, %s!\t\n", s.name)
	}
	return tw.Flush()
}

func (a *app) colorEnabled(w io.Writer) bool {
	if a.flags.NoColor {
		return false
	}
	f, ok := w.(*os.File)
	return ok && isTerminalFn(int(f.Fd()))
}

func (a *app) printError(err error) {
	c := color.New(color.FgRed, color.Bold)
	if tui.NewColorizer(a.colorEnabled(a.errOut)).Enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	c.Fprint(a.errOut, "error:")
	fmt.Fprintf(a.errOut, " %v\n", err)
	if cli.ExitCode(err) == cli.ExitUsage {
		fmt.Fprintln(a.errOut, "Run 'argdemo --help' for usage.")
	}
}
