// 3 Aug 2020

// Open fasta or fastq files, possibly compressed, and count the records.
// With -f, also print the fraction of each nucleotide.

package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	. "github.com/andrew-torda/nucgen/pkg/common"
	"github.com/andrew-torda/nucgen/pkg/numseq"
	"github.com/andrew-torda/nucgen/pkg/seqstat"
	"github.com/andrew-torda/nucgen/pkg/zwrap"
)

var rowNames = [seqstat.NRow]string{"A", "C", "G", "T", "other"}

// fracs reads fname and prints the symbol fractions.
func fracs(fname string, stdout io.Writer) error {
	rdr, err := zwrap.Open(fname)
	if err != nil {
		return err
	}
	defer rdr.Close()
	tl, err := seqstat.FromReader(rdr)
	if err != nil {
		return err
	}
	f := tl.Frac()
	for i, name := range rowNames {
		fmt.Fprintf(stdout, "%s\t%s\t%.4f\n", fname, name, f[i])
	}
	return nil
}

func mymain(argv []string, stdout, stderr io.Writer) int {
	f := flag.NewFlagSet("numseq", flag.ContinueOnError)
	f.SetOutput(stderr)
	doFrac := f.Bool("f", false, "print nucleotide fractions")
	f.Usage = func() {
		fmt.Fprintln(f.Output(), "usage: numseq [-f] file...")
		f.PrintDefaults()
	}
	if err := f.Parse(argv); err != nil {
		return ExitUsageError
	}
	if f.NArg() < 1 {
		f.Usage()
		return ExitUsageError
	}
	for _, fname := range f.Args() {
		n, err := numseq.Count(fname)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return ExitFailure
		}
		fmt.Fprintf(stdout, "%s\t%d\n", fname, n)
		if *doFrac {
			if err := fracs(fname, stdout); err != nil {
				fmt.Fprintln(stderr, err)
				return ExitFailure
			}
		}
	}
	return ExitSuccess
}

func main() {
	os.Exit(mymain(os.Args[1:], os.Stdout, os.Stderr))
}
