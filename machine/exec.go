package machine

import (
	"strconv"

	"github.com/speakeasy-api/polycalc"
)

// execute runs one recognized instruction. It reports false, without
// touching the stack, when the stack is too shallow.
func (m *Machine) execute(in instruction) bool {
	s := m.stack
	need := uint64(in.op.arity())
	if in.op == opcompose {
		if in.count == ^uint64(0) {
			return false
		}
		need += in.count
	}
	if !s.need(need) {
		return false
	}

	switch in.op {
	case opzero:
		s.push(polycalc.Zero())
	case opiscoeff:
		m.printBool(s.top().IsCoeff())
	case opiszero:
		m.printBool(s.top().IsZero())
	case opclone:
		s.push(s.top().Clone())
	case opadd, opsub, opmul:
		top := s.pop()
		below := s.pop()
		s.push(combine(in.op, below, top))
	case opneg:
		s.push(polycalc.Neg(s.pop()))
	case opiseq:
		m.printBool(s.peek(0).Equal(s.peek(1)))
	case opdeg:
		m.printInt(polycalc.Degree(s.top()))
	case opdegby:
		m.printInt(polycalc.DegreeBy(s.top(), in.idx))
	case opat:
		s.push(polycalc.At(s.pop(), in.x))
	case opprint:
		m.writeln(m.out, s.top().String())
	case oppop:
		p := s.pop()
		p.Destroy()
	case opcompose:
		p := s.pop()
		qs := s.popN(int(in.count))
		s.push(polycalc.Compose(p, qs))
	}
	return true
}

// combine applies a binary instruction; the deeper operand is on the left.
func combine(op opcode, left, right polycalc.Poly) polycalc.Poly {
	switch op {
	case opadd:
		return polycalc.Add(left, right)
	case opsub:
		return polycalc.Sub(left, right)
	default:
		return polycalc.Mul(left, right)
	}
}

func (m *Machine) printBool(b bool) {
	if b {
		m.writeln(m.out, "1")
	} else {
		m.writeln(m.out, "0")
	}
}

func (m *Machine) printInt(n int) {
	m.writeln(m.out, strconv.Itoa(n))
}
