// Command polycalc is a stack calculator for sparse multivariate
// polynomials with integer coefficients.
//
// It reads literals and instructions from standard input, one per line,
// prints results to standard output and diagnostics to standard error.
// When standard input is a terminal it starts an interactive session.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"

	"github.com/speakeasy-api/polycalc/machine"
)

const version = "0.1.0"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func isTerminal(v any) bool {
	f, ok := v.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("polycalc", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "YAML configuration file")
	logLevel := fs.String("log-level", "", "log level: error, warn, info or debug (default: off)")
	timeFormat := fs.String("time-format", machine.DefaultTimeFormat, "strftime layout of log timestamps")
	verbose := fs.Bool("verbose", false, "explain each diagnostic with the input line and a caret")
	color := fs.String("color", "auto", "color diagnostics: auto, always or never")
	dump := fs.String("dump-stack", "", "write the final stack as YAML to this file")
	history := fs.String("history", "", "REPL history file (default: ~/"+historyFile+")")
	interactive := fs.Bool("i", false, "start the interactive session even when stdin is not a terminal")
	showVersion := fs.Bool("version", false, "print the version and exit")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "polycalc: unexpected argument %q\n", fs.Arg(0))
		fs.Usage()
		return 2
	}
	if *showVersion {
		fmt.Fprintf(stdout, "polycalc %s\n", version)
		return 0
	}

	cfg := defaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = loadConfig(*configPath); err != nil {
			fmt.Fprintf(stderr, "polycalc: %v\n", err)
			return 1
		}
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "log-level":
			cfg.LogLevel = *logLevel
		case "time-format":
			cfg.TimeFormat = *timeFormat
		case "verbose":
			cfg.Verbose = *verbose
		case "color":
			cfg.Color = *color
		case "dump-stack":
			cfg.DumpStack = *dump
		case "history":
			cfg.History = *history
		}
	})
	if err := cfg.validate(); err != nil {
		fmt.Fprintf(stderr, "polycalc: %v\n", err)
		return 1
	}

	m := machine.New(stdout, stderr, cfg.machineOptions(cfg.useColor(isTerminal(stderr)), stderr))
	defer m.Close()

	if *interactive || isTerminal(stdin) {
		if err := runREPL(m, cfg, stdout); err != nil {
			fmt.Fprintf(stderr, "polycalc: %v\n", err)
			return 1
		}
	} else {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if _, err := m.Run(ctx, stdin); err != nil {
			fmt.Fprintf(stderr, "polycalc: %v\n", err)
			return 1
		}
	}

	if cfg.DumpStack != "" {
		if err := dumpStack(cfg.DumpStack, m.Stack(), cfg.fmtConfig()); err != nil {
			fmt.Fprintf(stderr, "polycalc: %v\n", err)
			return 1
		}
	}
	return 0
}
