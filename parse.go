package polycalc

import (
	"strconv"
)

// Parse parses a polynomial literal such as "(1,2)+(3,0)" or "-7".
// A rejected line yields a *SyntaxError.
func Parse(line string) (Poly, error) {
	if err := Validate(line); err != nil {
		return Zero(), err
	}
	p := &parser{src: line}
	return p.poly(), nil
}

// MustParse is like Parse but panics on error.
func MustParse(line string) Poly {
	p, err := Parse(line)
	if err != nil {
		panic(err)
	}
	return p
}

// parser builds a value from a line that already passed Validate, so it
// does no error checking of its own.
type parser struct {
	src string
	pos int
}

func (p *parser) poly() Poly {
	if c := p.src[p.pos]; c == '-' || isDigit(c) {
		n, _ := strconv.ParseInt(p.number(), 10, 64)
		return FromCoeff(n)
	}
	terms := make([]Mono, 0, 4)
	for {
		p.pos++ // '('
		sub := p.poly()
		p.pos++ // ','
		e, _ := strconv.ParseInt(p.number(), 10, 32)
		p.pos++ // ')'
		terms = append(terms, Mono{Exp: Exp(e), Poly: sub})
		if p.pos >= len(p.src) || p.src[p.pos] != '+' {
			break
		}
		p.pos++
	}
	return FromTerms(terms)
}

func (p *parser) number() string {
	start := p.pos
	if p.src[p.pos] == '-' {
		p.pos++
	}
	for p.pos < len(p.src) && isDigit(p.src[p.pos]) {
		p.pos++
	}
	return p.src[start:p.pos]
}
