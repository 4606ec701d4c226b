// 18 Oct 2026

// Package seqread reads fasta and fastq records back in. It is used to
// check what randseq wrote, so it is strict about fastq layout but
// accepts fasta sequences spread over several lines.
package seqread

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/andrew-torda/nucgen/pkg/record"
	"github.com/andrew-torda/nucgen/pkg/white"
)

// Record is one sequence. ID is the first word of the header line.
// Qual is nil for fasta.
type Record struct {
	ID   string
	Seq  []byte
	Qual []byte
}

// Reader reads records from an io.Reader. The format is decided by the
// first character of the input.
type Reader struct {
	rdr     *bufio.Reader
	format  record.Format
	started bool
	nrec    int
}

// ErrFormat is wrapped by all the errors for malformed input.
var ErrFormat = errors.New("seqread: bad input")

const bufsize = 64 * 1024

// NewReader returns a Reader on r.
func NewReader(r io.Reader) *Reader {
	return &Reader{rdr: bufio.NewReaderSize(r, bufsize)}
}

// Format is only meaningful after the first call to Next.
func (r *Reader) Format() record.Format { return r.format }

// NRec is the number of records read so far.
func (r *Reader) NRec() int { return r.nrec }

// line returns the next line without its newline. At end of input we
// get io.EOF, but only if there was nothing on the line.
func (r *Reader) line() ([]byte, error) {
	b, err := r.rdr.ReadBytes('\n')
	if err == io.EOF {
		if len(b) == 0 {
			return nil, io.EOF
		}
		return b, nil
	}
	if err != nil {
		return nil, err
	}
	return b[:len(b)-1], nil
}

// start skips leading blank lines and looks at the first character.
func (r *Reader) start() error {
	r.started = true
	for {
		c, err := r.rdr.Peek(1)
		if err != nil {
			return err
		}
		switch c[0] {
		case '\n', '\r':
			r.rdr.ReadByte()
			continue
		case '>':
			r.format = record.Fasta
		case '@':
			r.format = record.Fastq
		default:
			return fmt.Errorf("%w: input starts with %q", ErrFormat, c[0])
		}
		return nil
	}
}

func firstWord(hdr []byte) string {
	if f := bytes.Fields(hdr); len(f) > 0 {
		return string(f[0])
	}
	return ""
}

// Next returns the next record, or io.EOF when there are no more.
func (r *Reader) Next() (Record, error) {
	if !r.started {
		if err := r.start(); err != nil {
			return Record{}, err
		}
	}
	var rec Record
	var err error
	if r.format == record.Fastq {
		rec, err = r.nextFastq()
	} else {
		rec, err = r.nextFasta()
	}
	if err == nil {
		r.nrec++
	}
	return rec, err
}

func (r *Reader) nextFasta() (Record, error) {
	hdr, err := r.line()
	if err != nil {
		return Record{}, err
	}
	if len(hdr) == 0 || hdr[0] != '>' {
		return Record{}, fmt.Errorf("%w: record %d: header %q", ErrFormat, r.nrec, hdr)
	}
	rec := Record{ID: firstWord(hdr[1:]), Seq: []byte{}}
	for {
		c, err := r.rdr.Peek(1)
		if err == io.EOF || (err == nil && c[0] == '>') {
			return rec, nil
		}
		if err != nil {
			return Record{}, err
		}
		s, err := r.line()
		if err != nil {
			return Record{}, err
		}
		white.Remove(&s)
		rec.Seq = append(rec.Seq, s...)
	}
}

func (r *Reader) nextFastq() (Record, error) {
	hdr, err := r.line()
	if err != nil {
		return Record{}, err
	}
	if len(hdr) == 0 || hdr[0] != '@' {
		return Record{}, fmt.Errorf("%w: record %d: header %q", ErrFormat, r.nrec, hdr)
	}
	var lines [3][]byte
	for i := range lines {
		if lines[i], err = r.line(); err != nil {
			if err == io.EOF {
				err = fmt.Errorf("%w: record %d is truncated", ErrFormat, r.nrec)
			}
			return Record{}, err
		}
	}
	if len(lines[1]) == 0 || lines[1][0] != '+' {
		return Record{}, fmt.Errorf("%w: record %d: no + line", ErrFormat, r.nrec)
	}
	if len(lines[0]) != len(lines[2]) {
		return Record{}, fmt.Errorf("%w: record %d: sequence length %d quality length %d",
			ErrFormat, r.nrec, len(lines[0]), len(lines[2]))
	}
	return Record{ID: firstWord(hdr[1:]), Seq: lines[0], Qual: lines[2]}, nil
}

// ReadAll reads every record from r.
func ReadAll(r io.Reader) ([]Record, error) {
	rdr := NewReader(r)
	var recs []Record
	for {
		rec, err := rdr.Next()
		if err == io.EOF {
			return recs, nil
		}
		if err != nil {
			return recs, err
		}
		recs = append(recs, rec)
	}
}
