// Package machine implements the polynomial calculator: a stack of
// polynomials driven by a line-oriented stream of literals and
// instructions.
//
// Each line is one of
//
//   - blank or a comment starting with '#', ignored,
//   - a polynomial literal, pushed onto the stack,
//   - an instruction such as ADD or DEG_BY 1.
//
// Results go to the output writer, one line each. A rejected line yields
// one "ERROR <line> <reason>" line on the diagnostic writer and leaves the
// stack untouched.
package machine

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/speakeasy-api/polycalc"
	"github.com/speakeasy-api/polycalc/pkg/report"
)

// Machine executes calculator input against its own stack.
type Machine struct {
	opts   Options
	stack  *polyStack
	out    io.Writer
	diag   io.Writer
	logger Logger
	line   int
	errors int
	werr   error
}

// New creates a machine with an empty stack that writes results to out
// and diagnostics to diag.
func New(out, diag io.Writer, opts Options) *Machine {
	var logger Logger
	if opts.LogLevel != "" {
		logger = NewLogger(ParseLogLevel(opts.LogLevel), opts.LogWriter, opts.LogTimeFormat)
	} else {
		logger = newNoopLogger()
	}
	n := opts.InitialStackCap
	if n <= 0 {
		n = DefaultOptions().InitialStackCap
	}
	return &Machine{
		opts:   opts,
		stack:  newPolyStack(n),
		out:    out,
		diag:   diag,
		logger: logger,
	}
}

// Run executes every line read from r until EOF. It returns an error only
// when reading or writing fails or ctx is done; rejected lines are
// reported on the diagnostic writer and counted in the result.
func (m *Machine) Run(ctx context.Context, r io.Reader) (*Result, error) {
	br := bufio.NewReader(r)
	m.logger.Infof("Starting run")
	for {
		if err := ctx.Err(); err != nil {
			return m.result(), err
		}
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			_ = m.ExecLine(strings.TrimSuffix(line, "\n"))
		}
		if m.werr != nil {
			return m.result(), fmt.Errorf("failed to write output: %w", m.werr)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return m.result(), fmt.Errorf("failed to read input: %w", err)
		}
	}
	res := m.result()
	m.logger.With(map[string]any{
		"lines":  res.Lines,
		"errors": res.Errors,
		"depth":  res.Depth,
	}).Infof("Finished run")
	return res, nil
}

func (m *Machine) result() *Result {
	return &Result{Lines: m.line, Errors: m.errors, Depth: m.stack.len()}
}

// ExecLine executes one input line, without its trailing newline, and
// advances the line counter. A rejected line is written to the
// diagnostic writer and returned as *Error.
func (m *Machine) ExecLine(line string) error {
	m.line++
	err := m.exec(line)
	if err == nil {
		return nil
	}
	err.Line = m.line
	err.Input = line
	m.errors++
	m.logger.With(map[string]any{
		"line": m.line,
		"kind": err.Kind,
	}).Infof("Rejected line")
	m.report(err)
	return err
}

func (m *Machine) exec(line string) *Error {
	if strings.IndexByte(line, 0) >= 0 {
		return truncatedLineError(line)
	}
	switch classify(line) {
	case classSkip:
		return nil
	case classLiteral:
		p, err := polycalc.Parse(line)
		if err != nil {
			var se *polycalc.SyntaxError
			off := -1
			if errors.As(err, &se) {
				off = se.Offset
			}
			return &Error{Kind: WrongPoly, Offset: off, Err: err}
		}
		m.stack.push(p)
		m.logger.With(map[string]any{"line": m.line, "depth": m.stack.len()}).Debugf("Pushed literal")
		return nil
	case classInstruction:
		in, err := decode(line)
		if err != nil {
			return err
		}
		if !m.execute(in) {
			return &Error{Kind: StackUnderflow, Offset: -1}
		}
		m.logger.With(map[string]any{
			"line":  m.line,
			"op":    in.op,
			"depth": m.stack.len(),
		}).Debugf("Executed instruction")
		return nil
	}
	return &Error{Kind: WrongPoly, Offset: 0}
}

func (m *Machine) report(e *Error) {
	msg := e.Error()
	if m.opts.Verbose {
		msg = strings.TrimSuffix(report.Format(report.Diagnostic{
			Message: msg,
			Input:   e.Input,
			Offset:  e.Offset,
			Reason:  e.reason(),
		}), "\n")
	}
	if m.opts.Color {
		msg = "\x1b[31m" + msg + "\x1b[0m"
	}
	m.writeln(m.diag, msg)
}

func (m *Machine) writeln(w io.Writer, s string) {
	if _, err := io.WriteString(w, s+"\n"); err != nil && m.werr == nil {
		m.werr = err
	}
}

// Stack returns the polynomials on the stack from bottom to top.
func (m *Machine) Stack() []polycalc.Poly {
	return m.stack.snapshot()
}

// Depth returns the number of polynomials on the stack.
func (m *Machine) Depth() int {
	return m.stack.len()
}

// Line returns the number of lines executed so far.
func (m *Machine) Line() int {
	return m.line
}

// Close destroys every polynomial left on the stack.
func (m *Machine) Close() {
	n := m.stack.drain()
	m.logger.With(map[string]any{"released": n}).Debugf("Closed machine")
}
