package machine

import "github.com/speakeasy-api/polycalc"

// polyStack is the LIFO of polynomials operated on by the instructions.
type polyStack struct {
	data []polycalc.Poly
}

// newPolyStack creates an empty stack with room for n elements.
func newPolyStack(n int) *polyStack {
	return &polyStack{
		data: make([]polycalc.Poly, 0, n),
	}
}

// need reports whether the stack holds at least n elements.
func (s *polyStack) need(n uint64) bool {
	return uint64(len(s.data)) >= n
}

// push adds a polynomial to the top of the stack.
func (s *polyStack) push(p polycalc.Poly) {
	s.data = append(s.data, p)
}

// pop removes and returns the top polynomial.
// Panics if stack is empty.
func (s *polyStack) pop() polycalc.Poly {
	if len(s.data) == 0 {
		panic("poly stack underflow")
	}
	p := s.data[len(s.data)-1]
	s.data[len(s.data)-1] = polycalc.Poly{}
	s.data = s.data[:len(s.data)-1]
	return p
}

// popN removes the top n polynomials and returns them in the order they
// were pushed. Panics if the stack holds fewer than n elements.
func (s *polyStack) popN(n int) []polycalc.Poly {
	if len(s.data) < n {
		panic("poly stack underflow")
	}
	out := make([]polycalc.Poly, n)
	copy(out, s.data[len(s.data)-n:])
	clear(s.data[len(s.data)-n:])
	s.data = s.data[:len(s.data)-n]
	return out
}

// peek returns the element depth positions below the top without
// removing it. Panics if the stack is too shallow.
func (s *polyStack) peek(depth int) polycalc.Poly {
	if depth >= len(s.data) {
		panic("poly stack underflow")
	}
	return s.data[len(s.data)-1-depth]
}

// top returns the top polynomial without removing it.
func (s *polyStack) top() polycalc.Poly {
	return s.peek(0)
}

// snapshot returns the elements from bottom to top.
func (s *polyStack) snapshot() []polycalc.Poly {
	out := make([]polycalc.Poly, len(s.data))
	copy(out, s.data)
	return out
}

// drain empties the stack, destroying every element, and returns how
// many there were.
func (s *polyStack) drain() int {
	n := len(s.data)
	for len(s.data) > 0 {
		p := s.pop()
		p.Destroy()
	}
	return n
}

// empty checks if the stack is empty.
func (s *polyStack) empty() bool {
	return len(s.data) == 0
}

// len returns the number of elements on the stack.
func (s *polyStack) len() int {
	return len(s.data)
}
