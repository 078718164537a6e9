package polycalc

// Degree returns the total degree of p, or -1 for the zero polynomial.
func Degree(p Poly) int {
	if p.IsCoeff() {
		if p.coeff == 0 {
			return -1
		}
		return 0
	}
	deg := 0
	for _, m := range p.terms {
		if d := int(m.Exp) + Degree(m.Poly); d > deg {
			deg = d
		}
	}
	return deg
}

// DegreeBy returns the degree of p in the variable with index idx, where
// index 0 is the outer variable. The zero polynomial has degree -1.
func DegreeBy(p Poly, idx uint64) int {
	if p.IsCoeff() {
		if p.coeff == 0 {
			return -1
		}
		return 0
	}
	deg := 0
	for _, m := range p.terms {
		d := int(m.Exp)
		if idx > 0 {
			d = DegreeBy(m.Poly, idx-1)
		}
		if d > deg {
			deg = d
		}
	}
	return deg
}

// At substitutes x for the outer variable of p.
func At(p Poly, x Coeff) Poly {
	if p.IsCoeff() {
		return p
	}
	if x == 0 {
		// 0^0 = 1 and 0^e = 0 for e > 0.
		if p.terms[0].Exp == 0 {
			return p.terms[0].Poly
		}
		return Zero()
	}
	res := Zero()
	for _, m := range p.terms {
		res = Add(res, Mul(FromCoeff(powCoeff(x, m.Exp)), m.Poly))
	}
	return res
}

func powCoeff(x Coeff, e Exp) Coeff {
	res := Coeff(1)
	for e > 0 {
		if e&1 == 1 {
			res *= x
		}
		e >>= 1
		if e > 0 {
			x *= x
		}
	}
	return res
}

// Power returns p raised to e. Power(p, 0) is 1 for every p.
func Power(p Poly, e Exp) Poly {
	res := FromCoeff(1)
	for e > 0 {
		if e&1 == 1 {
			res = Mul(res, p)
		}
		e >>= 1
		if e > 0 {
			p = Mul(p, p)
		}
	}
	return res
}

// Compose substitutes qs[i] for the variable with index i in p. Variables
// with index len(qs) or more are replaced by zero.
func Compose(p Poly, qs []Poly) Poly {
	if p.IsCoeff() {
		return p
	}
	if len(qs) == 0 {
		return FromCoeff(constantTerm(p))
	}
	res := Zero()
	for _, m := range p.terms {
		res = Add(res, Mul(Power(qs[0], m.Exp), Compose(m.Poly, qs[1:])))
	}
	return res
}

// constantTerm returns the value of p with every variable set to zero.
func constantTerm(p Poly) Coeff {
	if p.IsCoeff() {
		return p.coeff
	}
	var sum Coeff
	for _, m := range p.terms {
		if m.Exp == 0 {
			sum += constantTerm(m.Poly)
		}
	}
	return sum
}
