// Package polyfmt renders polynomials in conventional algebraic notation,
// e.g. "3 + 2*x0^2*x1", for people reading calculator output.
package polyfmt

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/speakeasy-api/polycalc"
)

type PolyFmtCfg struct {
	Vars    []string // names of x0, x1, ...; missing names print as x<i>
	Compact bool     // omit the spaces around + and -
	Mul     string   // multiplication sign (default "*")
}

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func ValidateConfig(cfg PolyFmtCfg) (PolyFmtCfg, error) {
	seen := map[string]bool{}
	for i, v := range cfg.Vars {
		if !identRe.MatchString(v) {
			return cfg, fmt.Errorf("invalid variable name %q at index %d; names must be identifiers", v, i)
		}
		if seen[v] {
			return cfg, fmt.Errorf("duplicate variable name %q", v)
		}
		seen[v] = true
	}
	switch cfg.Mul {
	case "":
		cfg.Mul = "*"
	case "*", "·", " ":
	default:
		return cfg, fmt.Errorf("invalid multiplication sign %q; valid signs: \"*\", \"·\", \" \"", cfg.Mul)
	}
	return cfg, nil
}

// term is one monomial of the expanded form; exps[i] is the power of x<i>.
type term struct {
	coeff polycalc.Coeff
	exps  []polycalc.Exp
}

func expand(p polycalc.Poly, exps []polycalc.Exp, out []term) []term {
	if c, ok := p.Coeff(); ok {
		if c == 0 {
			return out
		}
		return append(out, term{coeff: c, exps: append([]polycalc.Exp(nil), exps...)})
	}
	for _, m := range p.Terms() {
		out = expand(m.Poly, append(exps, m.Exp), out)
	}
	return out
}

// Format renders p using cfg, which must have passed ValidateConfig.
func Format(p polycalc.Poly, cfg PolyFmtCfg) string {
	terms := expand(p, nil, nil)
	if len(terms) == 0 {
		return "0"
	}
	plus, minus := " + ", " - "
	if cfg.Compact {
		plus, minus = "+", "-"
	}
	mul := cfg.Mul
	if mul == "" {
		mul = "*"
	}

	var b strings.Builder
	for i, t := range terms {
		neg := t.coeff < 0
		switch {
		case i == 0 && neg:
			b.WriteByte('-')
		case i > 0 && neg:
			b.WriteString(minus)
		case i > 0:
			b.WriteString(plus)
		}
		// |MinInt64| does not fit in an int64.
		abs := uint64(t.coeff)
		if neg {
			abs = ^abs + 1
		}

		var factors []string
		for v, e := range t.exps {
			switch e {
			case 0:
			case 1:
				factors = append(factors, varName(cfg, v))
			default:
				factors = append(factors, varName(cfg, v)+"^"+strconv.FormatInt(int64(e), 10))
			}
		}
		if abs != 1 || len(factors) == 0 {
			factors = append([]string{strconv.FormatUint(abs, 10)}, factors...)
		}
		b.WriteString(strings.Join(factors, mul))
	}
	return b.String()
}

// FormatLiteral parses a polynomial literal and renders it.
func FormatLiteral(line string, cfg PolyFmtCfg) (string, error) {
	cfg, err := ValidateConfig(cfg)
	if err != nil {
		return "", err
	}
	p, err := polycalc.Parse(line)
	if err != nil {
		return "", fmt.Errorf("could not parse polynomial: %w", err)
	}
	return Format(p, cfg), nil
}

func varName(cfg PolyFmtCfg, i int) string {
	if i < len(cfg.Vars) {
		return cfg.Vars[i]
	}
	return "x" + strconv.Itoa(i)
}
