// 18 Oct 2026

// Package record writes numbered sequences as fasta or fastq.
//
//	fasta: >seq.N \n SEQ \n
//	fastq: @seq.N \n SEQ \n + \n QUAL \n
//
// Sequences are never wrapped. Nothing is checked. If the quality string
// is not the same length as the sequence, that is the caller's problem.
package record

import (
	"bytes"
	"io"
	"strconv"
	"sync"
)

// QualChar is the placeholder quality score written for every base.
const QualChar byte = '?'

const idPrefix = "seq."

var (
	newline = []byte{'\n'}
	plusSep = []byte("\n+\n")
)

// Qual returns n placeholder quality bytes. Allocate it once and reuse it.
func Qual(n int) []byte {
	return bytes.Repeat([]byte{QualChar}, n)
}

// Writer writes records to an underlying io.Writer.
// The header line is built in a scratch buffer which is kept, so in the
// steady state a record costs nothing but the writes.
type Writer struct {
	w      io.Writer
	format Format
	hdr    []byte
}

// NewWriter returns a Writer for format f on w.
func NewWriter(w io.Writer, f Format) *Writer {
	return &Writer{w: w, format: f, hdr: make([]byte, 0, 32)}
}

// Write writes one record in the Writer's format. qual is ignored for
// fasta.
func (w *Writer) Write(idx int, seq, qual []byte) error {
	if w.format == Fastq {
		return w.Fastq(idx, seq, qual)
	}
	return w.Fasta(idx, seq)
}

// header fills the scratch buffer with ">seq.N\n" or "@seq.N\n"
func (w *Writer) header(mark byte, idx int) []byte {
	h := append(w.hdr[:0], mark)
	h = append(h, idPrefix...)
	h = strconv.AppendInt(h, int64(idx), 10)
	h = append(h, '\n')
	w.hdr = h
	return h
}

// Fasta writes >seq.idx, the sequence and a newline.
func (w *Writer) Fasta(idx int, seq []byte) error {
	if _, err := w.w.Write(w.header('>', idx)); err != nil {
		return err
	}
	if _, err := w.w.Write(seq); err != nil {
		return err
	}
	_, err := w.w.Write(newline)
	return err
}

// Fastq writes @seq.idx, the sequence, a + separator line and the
// quality string.
func (w *Writer) Fastq(idx int, seq, qual []byte) error {
	if _, err := w.w.Write(w.header('@', idx)); err != nil {
		return err
	}
	if _, err := w.w.Write(seq); err != nil {
		return err
	}
	if _, err := w.w.Write(plusSep); err != nil {
		return err
	}
	if _, err := w.w.Write(qual); err != nil {
		return err
	}
	_, err := w.w.Write(newline)
	return err
}

// writers are borrowed by WriteFasta and WriteFastq, so the header
// buffer is not allocated on every call.
var writers = sync.Pool{New: func() any { return NewWriter(nil, Fasta) }}

// WriteFasta writes a single fasta record to w.
func WriteFasta(w io.Writer, idx int, seq []byte) error {
	rw := writers.Get().(*Writer)
	rw.w = w
	err := rw.Fasta(idx, seq)
	rw.w = nil
	writers.Put(rw)
	return err
}

// WriteFastq writes a single fastq record to w.
func WriteFastq(w io.Writer, idx int, seq, qual []byte) error {
	rw := writers.Get().(*Writer)
	rw.w = w
	err := rw.Fastq(idx, seq, qual)
	rw.w = nil
	writers.Put(rw)
	return err
}
