package polycalc

import (
	"slices"
)

// FromTerms builds a canonical polynomial from an arbitrary list of
// monomials. The list may be unsorted and may repeat exponents: monomials
// with equal exponents are added together and monomials that vanish are
// dropped. terms is not modified.
func FromTerms(terms []Mono) Poly {
	if len(terms) == 0 {
		return Zero()
	}
	sorted := make([]Mono, len(terms))
	copy(sorted, terms)
	slices.SortStableFunc(sorted, func(a, b Mono) int {
		switch {
		case a.Exp < b.Exp:
			return -1
		case a.Exp > b.Exp:
			return 1
		}
		return 0
	})

	folded := sorted[:0]
	for i := 0; i < len(sorted); {
		m := sorted[i]
		j := i + 1
		for ; j < len(sorted) && sorted[j].Exp == m.Exp; j++ {
			m.Poly = Add(m.Poly, sorted[j].Poly)
		}
		i = j
		if !m.Poly.IsZero() {
			folded = append(folded, m)
		}
	}
	return canonical(folded)
}

// canonical turns a sorted list of nonzero monomials with unique exponents
// into a polynomial. It is the only place where sums are created.
func canonical(terms []Mono) Poly {
	switch {
	case len(terms) == 0:
		return Zero()
	case len(terms) == 1 && terms[0].Exp == 0 && terms[0].Poly.IsCoeff():
		return terms[0].Poly
	}
	return Poly{terms: slices.Clip(terms)}
}
