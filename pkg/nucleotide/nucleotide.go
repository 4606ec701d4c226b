// 18 Oct 2026

// Package nucleotide has the four DNA symbols, a source which draws them
// from a random number generator and a reusable sequence buffer.
package nucleotide

import "math/rand/v2"

// Nucleotide is one of A, C, G or T.
type Nucleotide uint8

const (
	A Nucleotide = iota
	C
	G
	T
)

var ascii = [4]byte{'A', 'C', 'G', 'T'}

// Byte returns the ASCII code for the nucleotide.
func (n Nucleotide) Byte() byte { return ascii[n&3] }

func (n Nucleotide) String() string { return string(ascii[n&3]) }

// Valid reports whether b is the ASCII code of one of the four symbols.
func Valid(b byte) bool {
	switch b {
	case 'A', 'C', 'G', 'T':
		return true
	}
	return false
}

// Source hands out uniformly distributed nucleotides. Each 64 bit word
// from the generator is cut into 32 two-bit groups, lowest bits first,
// so we call the generator once per 32 symbols.
// A Source is not safe for concurrent use.
type Source struct {
	rnd   *rand.Rand
	bits  uint64
	nbits uint
}

// NewSource returns a Source drawing from rnd.
func NewSource(rnd *rand.Rand) *Source {
	return &Source{rnd: rnd}
}

// Next returns one nucleotide.
func (s *Source) Next() Nucleotide {
	if s.nbits == 0 {
		s.bits = s.rnd.Uint64()
		s.nbits = 64
	}
	n := Nucleotide(s.bits & 3)
	s.bits >>= 2
	s.nbits -= 2
	return n
}
