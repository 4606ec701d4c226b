// 31 July 2020

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	. "github.com/andrew-torda/nucgen/pkg/common"
	"github.com/andrew-torda/nucgen/pkg/pz"
	"github.com/andrew-torda/nucgen/pkg/randseq"
	"github.com/andrew-torda/nucgen/pkg/record"
)

// seedFlag is a uint64 which remembers whether it was set.
type seedFlag struct {
	val *uint64
	set *bool
}

func (s seedFlag) String() string {
	if s.val == nil {
		return ""
	}
	return strconv.FormatUint(*s.val, 10)
}

func (s seedFlag) Set(v string) error {
	x, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return fmt.Errorf("seed %q is not a non-negative integer", v)
	}
	*s.val, *s.set = x, true
	return nil
}

// parse turns the command line into Args. Usage errors go to stderr.
func parse(argv []string, stderr io.Writer) (*randseq.Args, error) {
	f := flag.NewFlagSet("randseq", flag.ContinueOnError)
	f.SetOutput(stderr)
	var args randseq.Args
	var format, codec string

	f.IntVar(&args.NRec, "n", 1000, "number of records to generate")
	f.IntVar(&args.SLen, "l", 100, "length of primary sequences")
	f.IntVar(&args.XLen, "L", 0, "length of secondary sequences, >0 for paired output")
	f.StringVar(&format, "f", "a", "output format, a (fasta) or q (fastq)")
	f.Var(seedFlag{&args.Seed, &args.Seeded}, "S", "random number seed (default from entropy)")
	f.BoolVar(&args.Compress, "c", false, "compress output")
	f.StringVar(&codec, "z", "gzip", "compression, gzip or zstd")
	f.IntVar(&args.Threads, "T", 0, "compression threads, 0 for all CPUs")
	f.IntVar(&args.BlockSize, "b", pz.DefaultBlockSize, "compression block size in bytes")
	f.BoolVar(&args.Verbose, "v", false, "verbose")
	f.Usage = func() {
		fmt.Fprintln(f.Output(), "usage: randseq [options] [out1 [out2]]")
		f.PrintDefaults()
	}
	if err := f.Parse(argv); err != nil {
		return nil, err
	}
	var err error
	if args.Format, err = record.ParseFormat(format); err != nil {
		return nil, err
	}
	if args.Codec, err = pz.ParseCodec(codec); err != nil {
		return nil, err
	}
	if f.NArg() > 2 {
		return nil, fmt.Errorf("at most two output files, got %d", f.NArg())
	}
	args.Outputs = f.Args()
	return &args, nil
}

func mymain(argv []string, stderr io.Writer) int {
	args, err := parse(argv, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return ExitUsageError
	}
	if err := args.Check(); err != nil {
		fmt.Fprintln(stderr, err)
		return ExitUsageError
	}
	if err := randseq.Main(args); err != nil {
		if IsBrokenPipe(err) {
			return ExitSuccess
		}
		fmt.Fprintln(stderr, err)
		return ExitFailure
	}
	return ExitSuccess
}

// run is main without the exit. Unless SIGPIPE is ignored, the runtime
// kills us on the first write to a closed stdout, and randseq | head
// would never get to see EPIPE.
func run(argv []string, stderr io.Writer) int {
	signal.Ignore(syscall.SIGPIPE)
	return mymain(argv, stderr)
}

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}
