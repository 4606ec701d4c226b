// 31 July 2020

// Package randseq writes random nucleotide sequences as fasta or fastq,
// either single reads or pairs of reads going to two files.
//
// Generation is sequential. One record is made and written before the
// next. The only parallelism is in the compressor behind the sink.
package randseq

import (
	"io"
	"math/rand/v2"

	"github.com/andrew-torda/nucgen/pkg/nucleotide"
	"github.com/andrew-torda/nucgen/pkg/record"
)

// Config is what the generation loops need to know.
type Config struct {
	NRec   int           // number of records (pairs, if paired)
	SLen   int           // length of primary sequences
	XLen   int           // length of secondary sequences, 0 for single reads
	Format record.Format // fasta or fastq
}

// Sink is where records go. Close must flush and finish everything.
type Sink interface {
	io.Writer
	Close() error
}

// finish closes all the sinks. An error from the loop takes precedence
// over errors from closing.
func finish(err error, sinks ...Sink) error {
	for _, s := range sinks {
		if cerr := s.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// qualFor gives the placeholder quality string if the format needs one.
func qualFor(f record.Format, n int) []byte {
	if f == record.Fastq {
		return record.Qual(n)
	}
	return nil
}

// SingleEnd writes cfg.NRec records of length cfg.SLen to out and closes
// it. The first write error stops the loop and is returned as is.
func SingleEnd(rnd *rand.Rand, out Sink, cfg Config) error {
	return finish(singleEnd(rnd, out, cfg), out)
}

func singleEnd(rnd *rand.Rand, out Sink, cfg Config) error {
	src := nucleotide.NewSource(rnd)
	seq := nucleotide.NewSequence(cfg.SLen)
	qual := qualFor(cfg.Format, cfg.SLen)
	w := record.NewWriter(out, cfg.Format)
	for i := 0; i < cfg.NRec; i++ {
		seq.Fill(src, cfg.SLen)
		if err := w.Write(i, seq.Bytes(), qual); err != nil {
			return err
		}
	}
	return nil
}

// PairedEnd writes mate pairs. Record i in out1 has length cfg.SLen,
// record i in out2 has length cfg.XLen and both are called seq.i.
// Both sinks are closed.
func PairedEnd(rnd *rand.Rand, out1, out2 Sink, cfg Config) error {
	return finish(pairedEnd(rnd, out1, out2, cfg), out1, out2)
}

func pairedEnd(rnd *rand.Rand, out1, out2 Sink, cfg Config) error {
	src := nucleotide.NewSource(rnd)
	s1 := nucleotide.NewSequence(cfg.SLen)
	s2 := nucleotide.NewSequence(cfg.XLen)
	q1 := qualFor(cfg.Format, cfg.SLen)
	q2 := qualFor(cfg.Format, cfg.XLen)
	w1 := record.NewWriter(out1, cfg.Format)
	w2 := record.NewWriter(out2, cfg.Format)
	for i := 0; i < cfg.NRec; i++ {
		s1.Fill(src, cfg.SLen)
		s2.Fill(src, cfg.XLen)
		if err := w1.Write(i, s1.Bytes(), q1); err != nil {
			return err
		}
		if err := w2.Write(i, s2.Bytes(), q2); err != nil {
			return err
		}
	}
	return nil
}
