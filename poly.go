// Package polycalc implements sparse polynomials in an unbounded number of
// variables together with the textual literal syntax used to write them.
//
// A polynomial is either a coefficient or a sum of monomials. Each monomial
// pairs an exponent of the outer variable with a polynomial in the
// remaining variables, so the nesting depth of a monomial selects the
// variable it refers to.
//
// Every value produced by this package is in canonical form:
//
//   - exponents inside a sum are unique and strictly increasing,
//   - no monomial holds the zero polynomial,
//   - a sum never consists of a single exponent-zero monomial whose
//     subpolynomial is a coefficient (that value is a coefficient).
//
// Coefficient arithmetic is done in int64 and wraps on overflow.
package polycalc

import (
	"strconv"
	"strings"
)

// Coeff is the coefficient type.
type Coeff = int64

// Exp is the exponent type.
type Exp = int32

// Mono is a single term of a sum: Poly multiplied by the outer variable
// raised to Exp.
type Mono struct {
	Exp  Exp
	Poly Poly
}

// Poly is a polynomial value. The zero value is the zero polynomial.
//
// Poly values are immutable once built; operations never modify their
// operands, so values may be copied freely.
type Poly struct {
	coeff Coeff
	terms []Mono // nil for a coefficient
}

// Zero returns the zero polynomial.
func Zero() Poly {
	return Poly{}
}

// FromCoeff returns the constant polynomial c.
func FromCoeff(c Coeff) Poly {
	return Poly{coeff: c}
}

// IsCoeff reports whether p is a constant.
func (p Poly) IsCoeff() bool {
	return p.terms == nil
}

// IsZero reports whether p is the zero polynomial.
func (p Poly) IsZero() bool {
	return p.terms == nil && p.coeff == 0
}

// Coeff returns the value of a constant polynomial. ok is false for sums.
func (p Poly) Coeff() (c Coeff, ok bool) {
	if p.terms != nil {
		return 0, false
	}
	return p.coeff, true
}

// Terms returns the monomials of a sum ordered by increasing exponent, or
// nil for a constant. The returned slice is a copy.
func (p Poly) Terms() []Mono {
	if p.terms == nil {
		return nil
	}
	out := make([]Mono, len(p.terms))
	copy(out, p.terms)
	return out
}

// Len returns the number of monomials of a sum, 0 for a constant.
func (p Poly) Len() int {
	return len(p.terms)
}

// Clone returns a deep copy of p.
func (p Poly) Clone() Poly {
	if p.terms == nil {
		return p
	}
	terms := make([]Mono, len(p.terms))
	for i, m := range p.terms {
		terms[i] = Mono{Exp: m.Exp, Poly: m.Poly.Clone()}
	}
	return Poly{terms: terms}
}

// Destroy drops every reference held by p and leaves it as the zero
// polynomial.
func (p *Poly) Destroy() {
	*p = Poly{}
}

// Equal reports whether p and q are the same polynomial.
func (p Poly) Equal(q Poly) bool {
	if p.IsCoeff() || q.IsCoeff() {
		return p.IsCoeff() && q.IsCoeff() && p.coeff == q.coeff
	}
	if len(p.terms) != len(q.terms) {
		return false
	}
	for i := range p.terms {
		if p.terms[i].Exp != q.terms[i].Exp || !p.terms[i].Poly.Equal(q.terms[i].Poly) {
			return false
		}
	}
	return true
}

// String returns the literal form of p, which Parse accepts.
func (p Poly) String() string {
	var b strings.Builder
	p.writeTo(&b)
	return b.String()
}

func (p Poly) writeTo(b *strings.Builder) {
	if p.IsCoeff() {
		b.WriteString(strconv.FormatInt(p.coeff, 10))
		return
	}
	for i, m := range p.terms {
		if i > 0 {
			b.WriteByte('+')
		}
		b.WriteByte('(')
		m.Poly.writeTo(b)
		b.WriteByte(',')
		b.WriteString(strconv.FormatInt(int64(m.Exp), 10))
		b.WriteByte(')')
	}
}
