package polycalc

// Add returns p + q.
func Add(p, q Poly) Poly {
	switch {
	case p.IsCoeff() && q.IsCoeff():
		return FromCoeff(p.coeff + q.coeff)
	case p.IsCoeff():
		return addCoeff(q, p)
	case q.IsCoeff():
		return addCoeff(p, q)
	}
	return addSums(p.terms, q.terms)
}

// addCoeff adds the constant c to the sum p.
func addCoeff(p, c Poly) Poly {
	if c.IsZero() {
		return p
	}
	if p.terms[0].Exp != 0 {
		terms := make([]Mono, 0, len(p.terms)+1)
		terms = append(terms, Mono{Exp: 0, Poly: c})
		terms = append(terms, p.terms...)
		return canonical(terms)
	}
	sum := Add(p.terms[0].Poly, c)
	if sum.IsZero() {
		return canonical(append([]Mono(nil), p.terms[1:]...))
	}
	terms := make([]Mono, len(p.terms))
	copy(terms, p.terms)
	terms[0].Poly = sum
	return canonical(terms)
}

// addSums merges two sorted monomial lists.
func addSums(a, b []Mono) Poly {
	terms := make([]Mono, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].Exp < b[j].Exp:
			terms = append(terms, a[i])
			i++
		case a[i].Exp > b[j].Exp:
			terms = append(terms, b[j])
			j++
		default:
			if sum := Add(a[i].Poly, b[j].Poly); !sum.IsZero() {
				terms = append(terms, Mono{Exp: a[i].Exp, Poly: sum})
			}
			i++
			j++
		}
	}
	terms = append(terms, a[i:]...)
	terms = append(terms, b[j:]...)
	return canonical(terms)
}

// Mul returns p * q.
func Mul(p, q Poly) Poly {
	switch {
	case p.IsCoeff() && q.IsCoeff():
		return FromCoeff(p.coeff * q.coeff)
	case p.IsCoeff():
		return scale(q, p.coeff)
	case q.IsCoeff():
		return scale(p, q.coeff)
	}
	terms := make([]Mono, 0, len(p.terms)*len(q.terms))
	for _, a := range p.terms {
		for _, b := range q.terms {
			terms = append(terms, Mono{Exp: a.Exp + b.Exp, Poly: Mul(a.Poly, b.Poly)})
		}
	}
	return FromTerms(terms)
}

// scale multiplies every monomial of the sum p by c.
func scale(p Poly, c Coeff) Poly {
	if c == 0 {
		return Zero()
	}
	terms := make([]Mono, 0, len(p.terms))
	for _, m := range p.terms {
		// Wraparound can turn a nonzero product into zero.
		if sub := scaleAny(m.Poly, c); !sub.IsZero() {
			terms = append(terms, Mono{Exp: m.Exp, Poly: sub})
		}
	}
	return canonical(terms)
}

func scaleAny(p Poly, c Coeff) Poly {
	if p.IsCoeff() {
		return FromCoeff(p.coeff * c)
	}
	return scale(p, c)
}

// Neg returns -p.
func Neg(p Poly) Poly {
	return Mul(p, FromCoeff(-1))
}

// Sub returns p - q.
func Sub(p, q Poly) Poly {
	return Add(p, Neg(q))
}
