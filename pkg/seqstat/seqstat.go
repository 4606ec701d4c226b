// 18 Oct 2026

// Package seqstat counts how often each symbol turns up at each site of
// a set of sequences. It is how we check the generator is not biased.
package seqstat

import (
	"io"

	"github.com/andrew-torda/matrix"

	"github.com/andrew-torda/nucgen/pkg/seqread"
)

// Rows of the count matrix. Anything that is not A, C, G or T is other.
const (
	RowA = iota
	RowC
	RowG
	RowT
	RowOther
	NRow
)

var rowOf [256]uint8

func init() {
	for i := range rowOf {
		rowOf[i] = RowOther
	}
	rowOf['A'], rowOf['C'], rowOf['G'], rowOf['T'] = RowA, RowC, RowG, RowT
}

// Tally has the counts, [symbol][site]. They are ints, since a float32
// stops counting at 2^24 and a big file easily has that many symbols at
// one site.
type Tally struct {
	counts [NRow][]int
	nrec   int
	nsym   int
}

// NewTally gives an empty Tally with room for sequences of length n.
// It grows if longer ones come along.
func NewTally(n int) *Tally {
	var t Tally
	for r := range t.counts {
		t.counts[r] = make([]int, n)
	}
	return &t
}

// grow makes room for n sites.
func (t *Tally) grow(n int) {
	if n <= len(t.counts[0]) {
		return
	}
	for r, row := range t.counts {
		bigger := make([]int, n)
		copy(bigger, row)
		t.counts[r] = bigger
	}
}

// Add counts the symbols in seq.
func (t *Tally) Add(seq []byte) {
	t.grow(len(seq))
	for i, c := range seq {
		t.counts[rowOf[c]][i]++
	}
	t.nrec++
	t.nsym += len(seq)
}

// NRec is the number of sequences added.
func (t *Tally) NRec() int { return t.nrec }

// NSite is the length of the longest sequence seen.
func (t *Tally) NSite() int { return len(t.counts[0]) }

// Count is the number of times row r turned up at site i.
func (t *Tally) Count(r, i int) int { return t.counts[r][i] }

// Counts returns a new matrix, [symbol][site], with the fraction of each
// symbol at each site, as in seqcalc. Columns nobody reached are zero.
func (t *Tally) Counts() *matrix.FMatrix2d {
	m := matrix.NewFMatrix2d(NRow, t.NSite())
	for i := 0; i < t.NSite(); i++ {
		f := t.SiteFrac(i)
		for r := range f {
			m.Mat[r][i] = f[r]
		}
	}
	return m
}

// SiteFrac gives the fraction of each symbol at site i.
// Sites nobody reached give zeroes.
func (t *Tally) SiteFrac(i int) [NRow]float32 {
	var f [NRow]float32
	total := 0
	for r := range t.counts {
		total += t.counts[r][i]
	}
	if total == 0 {
		return f
	}
	for r := range f {
		f[r] = float32(float64(t.counts[r][i]) / float64(total))
	}
	return f
}

// Frac gives the fraction of each symbol over all sites.
func (t *Tally) Frac() [NRow]float64 {
	var f [NRow]float64
	if t.nsym == 0 {
		return f
	}
	for r, row := range t.counts {
		sum := 0
		for _, x := range row {
			sum += x
		}
		f[r] = float64(sum) / float64(t.nsym)
	}
	return f
}

// FromReader reads fasta or fastq and tallies every sequence.
func FromReader(r io.Reader) (*Tally, error) {
	rdr := seqread.NewReader(r)
	t := NewTally(0)
	for {
		rec, err := rdr.Next()
		if err == io.EOF {
			return t, nil
		}
		if err != nil {
			return t, err
		}
		t.Add(rec.Seq)
	}
}
