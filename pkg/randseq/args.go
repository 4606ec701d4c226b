// 18 Oct 2026

package randseq

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/andrew-torda/nucgen/pkg/pz"
	"github.com/andrew-torda/nucgen/pkg/record"
	"github.com/andrew-torda/nucgen/pkg/zwrap"
)

// Args is the set of arguments passed to Main.
type Args struct {
	Config
	Seed      uint64    // random number seed, only used if Seeded
	Seeded    bool      // false means pick a seed from entropy
	Threads   int       // compression workers, 0 means all CPUs
	Compress  bool      // compress even if the file names do not say so
	Codec     pz.Codec  // used if file names do not say
	BlockSize int       // compression block size, 0 for the default
	Outputs   []string  // zero or one file for single reads, two for pairs
	Stdout    io.Writer // used if there are no Outputs. nil means os.Stdout
	Log       io.Writer // where -v messages go. nil means os.Stderr
	Verbose   bool
}

// ErrArgs is wrapped by all the errors from Check.
var ErrArgs = errors.New("randseq")

// NewRand returns a ChaCha8 generator seeded from a single number, so
// the same seed always gives the same sequences.
func NewRand(seed uint64) *rand.Rand {
	var s [32]byte
	binary.LittleEndian.PutUint64(s[:], seed)
	return rand.New(rand.NewChaCha8(s))
}

// Paired is true if we write two files of mate pairs.
func (a *Args) Paired() bool { return a.XLen > 0 }

// Check looks for settings that cannot work. It is called before any
// file is opened.
func (a *Args) Check() error {
	switch {
	case a.NRec < 0:
		return fmt.Errorf("%w: negative number of records %d", ErrArgs, a.NRec)
	case a.SLen < 0 || a.XLen < 0:
		return fmt.Errorf("%w: negative sequence length", ErrArgs)
	case a.Paired() && len(a.Outputs) != 2:
		return fmt.Errorf("%w: two output files needed for paired output, got %d", ErrArgs, len(a.Outputs))
	case !a.Paired() && len(a.Outputs) > 1:
		return fmt.Errorf("%w: too many output files (%d) for single reads", ErrArgs, len(a.Outputs))
	}
	return nil
}

// pickSeed settles on a seed. If none was given, we take one from the
// randomly seeded global generator and remember it, so it can be logged.
func (a *Args) pickSeed() uint64 {
	if !a.Seeded {
		a.Seed = rand.Uint64()
		a.Seeded = true
	}
	return a.Seed
}

// Rand returns the generator for this run.
func (a *Args) Rand() *rand.Rand { return NewRand(a.pickSeed()) }

// allHave reports whether every output name ends in suffix.
func (a *Args) allHave(suffix string) bool {
	if len(a.Outputs) == 0 {
		return false
	}
	for _, o := range a.Outputs {
		if !strings.HasSuffix(o, suffix) {
			return false
		}
	}
	return true
}

// CompressOut says whether to compress. Either the flag was set or all
// the output names end in .gz or .zst.
func (a *Args) CompressOut() bool {
	return a.Compress || a.allHave(pz.Gzip.Ext()) || a.allHave(pz.Zstd.Ext())
}

// CodecOut is zstd if all the names end in .zst, gzip if they all end in
// .gz, and otherwise whatever was asked for.
func (a *Args) CodecOut() pz.Codec {
	switch {
	case a.allHave(pz.Zstd.Ext()):
		return pz.Zstd
	case a.allHave(pz.Gzip.Ext()):
		return pz.Gzip
	}
	return a.Codec
}

// Fmt is the format implied by the first output name, if it implies
// one, otherwise Format.
func (a *Args) Fmt() record.Format {
	if len(a.Outputs) > 0 {
		if f, ok := record.FromPath(a.Outputs[0]); ok {
			return f
		}
	}
	return a.Format
}

func (a *Args) sinkOpts() zwrap.Options {
	return zwrap.Options{
		Compress: a.CompressOut(),
		Options: pz.Options{
			Codec:     a.CodecOut(),
			Workers:   a.Threads,
			BlockSize: a.BlockSize,
		},
	}
}

// open makes one sink per output. Each has its own compressor and
// workers. If anything fails, whatever was opened is closed again.
func (a *Args) open() ([]Sink, error) {
	opts := a.sinkOpts()
	if len(a.Outputs) == 0 {
		stdout := a.Stdout
		if stdout == nil {
			stdout = os.Stdout
		}
		fo, err := zwrap.WrapOut(stdout, nil, opts)
		if err != nil {
			return nil, err
		}
		return []Sink{fo}, nil
	}
	var sinks []Sink
	for _, name := range a.Outputs {
		fo, err := zwrap.Create(name, opts)
		if err != nil {
			for _, s := range sinks {
				s.Close()
			}
			return nil, err
		}
		sinks = append(sinks, fo)
	}
	return sinks, nil
}

func (a *Args) logger() *log.Logger {
	if !a.Verbose {
		return log.New(io.Discard, "", 0)
	}
	dst := a.Log
	if dst == nil {
		dst = os.Stderr
	}
	return log.New(dst, "randseq: ", 0)
}

// Main checks the arguments, opens the outputs and writes the records.
func Main(a *Args) error {
	if err := a.Check(); err != nil {
		return err
	}
	lgr := a.logger()
	cfg := a.Config
	cfg.Format = a.Fmt()
	rnd := a.Rand()
	opts := a.sinkOpts()
	lgr.Printf("seed %d, %d records, lengths %d %d, %v", a.Seed, cfg.NRec, cfg.SLen, cfg.XLen, cfg.Format)
	if opts.Compress {
		lgr.Printf("%v compression with %d workers", opts.Codec, pz.Workers(opts.Workers))
	}

	sinks, err := a.open()
	if err != nil {
		return err
	}
	if a.Paired() {
		err = PairedEnd(rnd, sinks[0], sinks[1], cfg)
	} else {
		err = SingleEnd(rnd, sinks[0], cfg)
	}
	if err != nil {
		return err
	}
	lgr.Printf("wrote %d records", cfg.NRec)
	return nil
}
