package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/speakeasy-api/polycalc"
	"github.com/speakeasy-api/polycalc/machine"
	"github.com/speakeasy-api/polycalc/pkg/polyfmt"
)

const (
	historyFile = ".polycalc_history"
	promptMain  = "poly> "
)

var (
	banner   = fmt.Sprintf("polycalc %s\nCtrl+C cancels input, Ctrl+D exits. Type :help for commands.", version)
	helpText = `REPL commands:
  :stack   List the stack, top first
  :help    Show this help
  :quit    Exit the REPL
Any other line is a polynomial literal or an instruction.
`
)

func historyPath(cfg Config) string {
	if cfg.History != "" {
		return cfg.History
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, historyFile)
}

// runREPL feeds interactively edited lines to m until EOF or :quit.
func runREPL(m *machine.Machine, cfg Config, stdout io.Writer) error {
	fmt.Fprintln(stdout, banner)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := historyPath(cfg)
	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	fcfg := cfg.fmtConfig()
	for {
		line, err := ln.Prompt(promptMain)
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(stdout)
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		if line != "" {
			ln.AppendHistory(line)
		}

		if strings.HasPrefix(line, ":") {
			switch strings.ToLower(strings.TrimSpace(line)) {
			case ":quit":
				return nil
			case ":stack":
				writeStack(stdout, m.Stack(), fcfg)
			case ":help":
				fmt.Fprint(stdout, helpText)
			default:
				fmt.Fprintln(stdout, "unknown command. Type :help for commands.")
			}
			continue
		}
		_ = m.ExecLine(line)
	}
}

// writeStack lists the stack top first, one polynomial per line.
func writeStack(w io.Writer, stack []polycalc.Poly, cfg polyfmt.PolyFmtCfg) {
	if len(stack) == 0 {
		fmt.Fprintln(w, "(empty)")
		return
	}
	for i := len(stack) - 1; i >= 0; i-- {
		p := stack[i]
		fmt.Fprintf(w, "%3d: %s    %s\n", len(stack)-1-i, polyfmt.Format(p, cfg), p)
	}
}
