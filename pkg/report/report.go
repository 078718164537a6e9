// Package report renders calculator diagnostics for people reading a terminal.
package report

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// Diagnostic is one rejected input line.
type Diagnostic struct {
	Message string // the diagnostic line, e.g. "ERROR 3 WRONG POLY"
	Input   string // the rejected input line
	Offset  int    // byte offset of the offending text, -1 when unknown
	Reason  string // short description of the cause
}

// Format renders d as the diagnostic line followed by the input line, a
// caret under the offending column and a hint when one is known.
func Format(d Diagnostic) string {
	var b strings.Builder
	b.WriteString(d.Message)
	b.WriteByte('\n')

	if d.Input != "" {
		fmt.Fprintf(&b, "  %s\n", printable(d.Input))
		if d.Offset >= 0 {
			col := Column(d.Input, d.Offset)
			fmt.Fprintf(&b, "  %s^", strings.Repeat(" ", col))
			if d.Reason != "" {
				fmt.Fprintf(&b, " %s", d.Reason)
			}
			b.WriteByte('\n')
		} else if d.Reason != "" {
			fmt.Fprintf(&b, "  %s\n", d.Reason)
		}
	} else if d.Reason != "" {
		fmt.Fprintf(&b, "  %s\n", d.Reason)
	}

	if hint := hintFor(d.Reason); hint != "" {
		fmt.Fprintf(&b, "  How to fix: %s\n", hint)
	}
	return b.String()
}

// Column returns the display column of byte offset off in line as it is
// printed by Format.
func Column(line string, off int) int {
	if off > len(line) {
		off = len(line)
	}
	return runewidth.StringWidth(printable(line[:off]))
}

// printable replaces control characters and invalid bytes with '?' so the
// caret line stays aligned.
func printable(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		if r == utf8.RuneError && size <= 1 {
			b.WriteByte('?')
		} else if unicode.IsControl(r) {
			b.WriteByte('?')
		} else {
			b.WriteRune(r)
		}
		s = s[size:]
	}
	return b.String()
}

func hintFor(reason string) string {
	switch {
	case strings.Contains(reason, "after '+'"):
		return `every term after '+' must be a parenthesized pair, e.g. "(1,2)+(3,0)".`
	case strings.Contains(reason, "coefficient out of range"):
		return "coefficients must fit in a signed 64-bit integer."
	case strings.Contains(reason, "exponent out of range"):
		return "exponents must be between 0 and 2147483647."
	case strings.Contains(reason, "single space"):
		return `write the parameter after exactly one space, e.g. "AT 5".`
	case strings.Contains(reason, "count must be positive"):
		return "COMPOSE needs at least one substitution."
	case strings.Contains(reason, "unknown instruction"):
		return "instructions are ZERO, IS_COEFF, IS_ZERO, CLONE, ADD, MUL, NEG, SUB, IS_EQ, DEG, DEG_BY, AT, PRINT, POP and COMPOSE."
	}
	return ""
}
