package machine

import (
	"errors"
	"fmt"

	"github.com/speakeasy-api/polycalc"
)

// Kind classifies a diagnostic.
const (
	WrongPoly = Kind(iota)
	WrongCommand
	StackUnderflow
	DegByWrongVariable
	AtWrongValue
	ComposeWrongParameter
)

var strKind = []string{
	"WRONG POLY",
	"WRONG COMMAND",
	"STACK UNDERFLOW",
	"DEG BY WRONG VARIABLE",
	"AT WRONG VALUE",
	"COMPOSE WRONG PARAMETER",
}

// Kind is the reason a line was rejected.
type Kind int

func (k Kind) String() string {
	if k < 0 || int(k) >= len(strKind) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return strKind[k]
}

// Error is the diagnostic for one rejected input line. The stack is left
// exactly as it was before the line.
type Error struct {
	Line   int    // 1-based input line number
	Kind   Kind   // nature of the failure
	Input  string // the rejected line
	Offset int    // byte offset of the offending text, -1 if none
	Err    error  // underlying cause, if any
}

// Error returns the diagnostic line, e.g. "ERROR 3 STACK UNDERFLOW".
func (e *Error) Error() string {
	return fmt.Sprintf("ERROR %d %s", e.Line, e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// reason describes the cause for verbose reports.
func (e *Error) reason() string {
	var se *polycalc.SyntaxError
	if errors.As(e.Err, &se) {
		return se.Reason
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	switch e.Kind {
	case WrongPoly:
		return "expected a polynomial, an instruction or a comment"
	case WrongCommand:
		return "unknown instruction"
	case StackUnderflow:
		return "not enough polynomials on the stack"
	}
	return ""
}
