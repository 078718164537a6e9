package machine

import (
	"errors"
	"strconv"
	"strings"

	"github.com/speakeasy-api/polycalc"
)

// lineClass is the syntactic category of an input line.
type lineClass int

const (
	classSkip lineClass = iota
	classLiteral
	classInstruction
	classInvalid
)

// classify decides how a line is processed from its first byte.
func classify(line string) lineClass {
	if line == "" {
		return classSkip
	}
	switch c := line[0]; {
	case c == '#':
		return classSkip
	case c == '(' || c == '-' || ('0' <= c && c <= '9'):
		return classLiteral
	case isLetter(c):
		return classInstruction
	}
	return classInvalid
}

// instruction is a recognized command line.
type instruction struct {
	op    opcode
	idx   uint64         // DEG_BY
	x     polycalc.Coeff // AT
	count uint64         // COMPOSE
}

var (
	errNoSeparator = errors.New("expected a single space before the parameter")
	errNotDigits   = errors.New("expected a decimal number")
	errZeroCount   = errors.New("count must be positive")
)

// decode recognizes an instruction line. The returned error has no line
// number set.
func decode(line string) (instruction, *Error) {
	end := 0
	for end < len(line) && !isSpace(line[end]) {
		end++
	}
	word := line[:end]
	op, ok := opcodeByName[word]
	if !ok {
		return instruction{}, &Error{Kind: WrongCommand, Offset: 0}
	}
	kind, hasParam := op.paramError()
	rest := line[len(word):]
	if !hasParam {
		if rest != "" {
			return instruction{}, &Error{Kind: WrongCommand, Offset: len(word)}
		}
		return instruction{op: op}, nil
	}
	if rest == "" || rest[0] != ' ' {
		return instruction{}, &Error{Kind: kind, Offset: len(word), Err: errNoSeparator}
	}
	arg := rest[1:]
	in := instruction{op: op}
	var err error
	switch op {
	case opdegby:
		in.idx, err = parseUnsigned(arg)
	case opat:
		in.x, err = parseSigned(arg)
	case opcompose:
		in.count, err = parseUnsigned(arg)
		if err == nil && in.count == 0 {
			err = errZeroCount
		}
	}
	if err != nil {
		return instruction{}, &Error{Kind: kind, Offset: len(word) + 1, Err: err}
	}
	return in, nil
}

func parseUnsigned(s string) (uint64, error) {
	if !allDigits(s) {
		return 0, errNotDigits
	}
	return strconv.ParseUint(s, 10, 64)
}

func parseSigned(s string) (int64, error) {
	if !allDigits(strings.TrimPrefix(s, "-")) {
		return 0, errNotDigits
	}
	return strconv.ParseInt(s, 10, 64)
}

// truncatedLineError is the diagnostic for a line holding a NUL byte:
// only the bytes before the NUL are examined.
func truncatedLineError(line string) *Error {
	prefix, _, _ := strings.Cut(line, "\x00")
	if prefix == "" || !isLetter(prefix[0]) {
		return &Error{Kind: WrongPoly, Offset: len(prefix)}
	}
	for _, op := range []opcode{opat, opdegby, opcompose} {
		name := op.String()
		if len(prefix) > len(name) && strings.HasPrefix(prefix, name) && isSpace(prefix[len(name)]) {
			kind, _ := op.paramError()
			return &Error{Kind: kind, Offset: len(prefix)}
		}
	}
	return &Error{Kind: WrongCommand, Offset: len(prefix)}
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
