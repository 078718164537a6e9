package machine

import (
	"fmt"
	"io"
)

// Options configures a Machine.
type Options struct {
	// Logging configuration
	LogLevel      string    // "error", "warn", "info", "debug"; empty disables logging
	LogTimeFormat string    // strftime layout of timestamps (default: DefaultTimeFormat)
	LogWriter     io.Writer // log destination (default: os.Stderr)

	// Diagnostics
	Verbose bool // If true, follow each diagnostic with the input line and a caret
	Color   bool // If true, wrap diagnostics in ANSI red

	InitialStackCap int // initial capacity of the stack (default: 64)
}

// DefaultOptions returns the default machine configuration.
func DefaultOptions() Options {
	return Options{
		LogLevel:        "",
		LogTimeFormat:   DefaultTimeFormat,
		Verbose:         false,
		Color:           false,
		InitialStackCap: 64,
	}
}

// Result summarizes the lines executed by a machine so far.
type Result struct {
	Lines  int // input lines executed
	Errors int // lines that produced a diagnostic
	Depth  int // stack depth when input ran out
}

// String returns a string representation of the result for debugging.
func (r *Result) String() string {
	if r == nil {
		return "<nil>"
	}
	return fmt.Sprintf("Result{Lines: %d, Errors: %d, Depth: %d}", r.Lines, r.Errors, r.Depth)
}
