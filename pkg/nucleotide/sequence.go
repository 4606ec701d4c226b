// 18 Oct 2026

package nucleotide

// Sequence is a buffer for random sequences which is reused from one
// record to the next. We keep two slices. Fill writes into the spare one
// and then swaps them, so once the capacity is big enough there is no
// allocation and no copying.
type Sequence struct {
	cur  []byte
	next []byte
}

// NewSequence returns a Sequence with room for n symbols in each slice.
func NewSequence(n int) *Sequence {
	return &Sequence{
		cur:  make([]byte, 0, n),
		next: make([]byte, 0, n),
	}
}

// Fill puts n fresh symbols from src into the sequence.
// Every byte of the spare slice is overwritten before the swap, so
// nothing from a longer, earlier sequence can survive.
func (s *Sequence) Fill(src *Source, n int) {
	if cap(s.next) < n {
		s.next = make([]byte, n)
	} else {
		s.next = s.next[:n]
	}
	buf := s.next
	for i := range buf {
		buf[i] = src.Next().Byte()
	}
	s.cur, s.next = s.next, s.cur
}

// Bytes returns the current sequence. It is only valid until the next
// call to Fill and must not be modified.
func (s *Sequence) Bytes() []byte { return s.cur }

// Len is the length of the current sequence.
func (s *Sequence) Len() int { return len(s.cur) }
