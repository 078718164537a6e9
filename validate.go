package polycalc

import (
	"fmt"
	"strconv"
)

// SyntaxError describes why a line is not a polynomial literal.
type SyntaxError struct {
	Offset int    // byte offset of the first offending character
	Reason string // what was expected or what went wrong
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid polynomial at offset %d: %s", e.Offset, e.Reason)
}

// Validate reports whether line is a polynomial literal. It accepts
//
//	poly  = coeff | mono { "+" mono }
//	mono  = "(" ( coeff | mono { "+" mono } ) "," exp ")"
//	coeff = [ "-" ] digit { digit }
//	exp   = digit { digit }
//
// where a bare coeff is allowed only as the whole line or as the first
// field of a mono. Coefficients must fit in an int64 and exponents in a
// non-negative int32. Validate returns nil or a *SyntaxError.
func Validate(line string) error {
	v := &validator{src: line}
	if err := v.poly(); err != nil {
		return err
	}
	if v.pos < len(v.src) {
		return v.errorf("unexpected %s", v.describe())
	}
	return nil
}

type validator struct {
	src string
	pos int
}

func (v *validator) peek() byte {
	if v.pos < len(v.src) {
		return v.src[v.pos]
	}
	return 0
}

func (v *validator) describe() string {
	if v.pos >= len(v.src) {
		return "end of line"
	}
	return strconv.QuoteRune(rune(v.src[v.pos]))
}

func (v *validator) errorf(format string, args ...any) *SyntaxError {
	return &SyntaxError{Offset: v.pos, Reason: fmt.Sprintf(format, args...)}
}

func (v *validator) expect(c byte) error {
	if v.peek() != c || v.pos >= len(v.src) {
		return v.errorf("expected %q, found %s", c, v.describe())
	}
	v.pos++
	return nil
}

// poly accepts either a coefficient or a sum of monos.
func (v *validator) poly() error {
	if c := v.peek(); c == '-' || isDigit(c) {
		return v.coeff()
	}
	return v.sum()
}

func (v *validator) sum() error {
	for {
		if err := v.mono(); err != nil {
			return err
		}
		if v.peek() != '+' {
			return nil
		}
		v.pos++
		if v.peek() != '(' {
			return v.errorf("expected '(' after '+', found %s", v.describe())
		}
	}
}

func (v *validator) mono() error {
	if err := v.expect('('); err != nil {
		return err
	}
	if err := v.poly(); err != nil {
		return err
	}
	if err := v.expect(','); err != nil {
		return err
	}
	if err := v.exp(); err != nil {
		return err
	}
	return v.expect(')')
}

func (v *validator) coeff() error {
	start := v.pos
	if v.peek() == '-' {
		v.pos++
	}
	if err := v.digits(); err != nil {
		return err
	}
	if _, err := strconv.ParseInt(v.src[start:v.pos], 10, 64); err != nil {
		return &SyntaxError{Offset: start, Reason: "coefficient out of range"}
	}
	return nil
}

func (v *validator) exp() error {
	start := v.pos
	if err := v.digits(); err != nil {
		return err
	}
	if _, err := strconv.ParseInt(v.src[start:v.pos], 10, 32); err != nil {
		return &SyntaxError{Offset: start, Reason: "exponent out of range"}
	}
	return nil
}

func (v *validator) digits() error {
	if !isDigit(v.peek()) {
		return v.errorf("expected digit, found %s", v.describe())
	}
	for isDigit(v.peek()) {
		v.pos++
	}
	return nil
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
