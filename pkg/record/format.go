// 18 Oct 2026

package record

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format is the output format, fasta or fastq.
type Format uint8

const (
	Fasta Format = iota
	Fastq
)

func (f Format) String() string {
	if f == Fastq {
		return "fastq"
	}
	return "fasta"
}

// ParseFormat accepts the short names from the command line ("a", "q")
// as well as the usual long names.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "a", "fa", "fasta":
		return Fasta, nil
	case "q", "fq", "fastq":
		return Fastq, nil
	}
	return Fasta, fmt.Errorf("unknown format %q, want a or q", s)
}

// compressed suffixes are stripped before looking at the extension
var zSuffix = []string{".gz", ".zst"}

// FromPath guesses the format from a file name like reads.fq.gz.
// ok is false if the extension says nothing.
func FromPath(path string) (f Format, ok bool) {
	name := strings.ToLower(filepath.Base(path))
	for _, z := range zSuffix {
		name = strings.TrimSuffix(name, z)
	}
	switch filepath.Ext(name) {
	case ".fa", ".fasta", ".fna", ".fas":
		return Fasta, true
	case ".fq", ".fastq":
		return Fastq, true
	}
	return Fasta, false
}
