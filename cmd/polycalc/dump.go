package main

import (
	"fmt"
	"os"

	"github.com/itchyny/go-yaml"

	"github.com/speakeasy-api/polycalc"
	"github.com/speakeasy-api/polycalc/pkg/polyfmt"
)

type dumpEntry struct {
	Position int      `yaml:"position"`
	Literal  string   `yaml:"literal"`
	Pretty   string   `yaml:"pretty"`
	Degree   int      `yaml:"degree"`
	Tree     dumpNode `yaml:"tree"`
}

// dumpNode mirrors the recursive term structure of a polynomial.
type dumpNode struct {
	Coeff *int64     `yaml:"coeff,omitempty"`
	Terms []dumpTerm `yaml:"terms,omitempty"`
}

type dumpTerm struct {
	Exp  int32    `yaml:"exp"`
	Poly dumpNode `yaml:"poly"`
}

func treeOf(p polycalc.Poly) dumpNode {
	if c, ok := p.Coeff(); ok {
		return dumpNode{Coeff: &c}
	}
	var n dumpNode
	for _, m := range p.Terms() {
		n.Terms = append(n.Terms, dumpTerm{Exp: m.Exp, Poly: treeOf(m.Poly)})
	}
	return n
}

// marshalStack renders the stack, bottom first, as a YAML sequence.
func marshalStack(stack []polycalc.Poly, cfg polyfmt.PolyFmtCfg) ([]byte, error) {
	entries := make([]dumpEntry, 0, len(stack))
	for i, p := range stack {
		entries = append(entries, dumpEntry{
			Position: i,
			Literal:  p.String(),
			Pretty:   polyfmt.Format(p, cfg),
			Degree:   polycalc.Degree(p),
			Tree:     treeOf(p),
		})
	}
	b, err := yaml.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal stack: %w", err)
	}
	return b, nil
}

func dumpStack(path string, stack []polycalc.Poly, cfg polyfmt.PolyFmtCfg) error {
	b, err := marshalStack(stack, cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("failed to write stack dump: %w", err)
	}
	return nil
}
