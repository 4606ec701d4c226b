// 3 Aug 2020

// Package numseq counts the records in a fasta or fastq file.
// For fasta we count '>' at the start of a line. For fastq we count lines
// and divide by four, since '@' can turn up in quality strings.
// Plain files are mapped into memory. That was the fastest of the methods
// we tried (reading fixed buffers, varying buffers, ioutil.ReadFile, one
// big slurp). Compressed files have to be read through the decompressor.
package numseq

import (
	"bytes"
	"io"
	"os"

	"github.com/edsrzf/mmap-go"

	"github.com/andrew-torda/nucgen/pkg/zwrap"
)

var (
	nl       = []byte{'\n'}
	nlHeader = []byte("\n>")
)

// counter keeps enough state to count across buffer boundaries.
type counter struct {
	started bool
	fastq   bool
	prev    byte
	n       int
}

func (c *counter) add(b []byte) {
	if len(b) == 0 {
		return
	}
	if !c.started {
		c.started = true
		c.fastq = b[0] == '@'
		c.prev = '\n'
	}
	if c.fastq {
		c.n += bytes.Count(b, nl)
	} else {
		if c.prev == '\n' && b[0] == '>' {
			c.n++
		}
		c.n += bytes.Count(b, nlHeader)
	}
	c.prev = b[len(b)-1]
}

func (c *counter) count() int {
	if !c.fastq {
		return c.n
	}
	nline := c.n
	if c.started && c.prev != '\n' {
		nline++
	}
	return nline / 4
}

// ByMmap counts records in an uncompressed file.
func ByMmap(fname string) (int, error) {
	fp, err := os.Open(fname)
	if err != nil {
		return 0, err
	}
	defer fp.Close()
	if fi, err := fp.Stat(); err != nil {
		return 0, err
	} else if fi.Size() == 0 {
		return 0, nil // cannot map an empty file
	}
	mm, err := mmap.Map(fp, mmap.RDONLY, 0)
	if err != nil {
		return 0, err
	}
	defer mm.Unmap()
	var c counter
	c.add(mm)
	return c.count(), nil
}

const bsize = 64 * 1024

// ByReading counts records from a stream.
func ByReading(rdr io.Reader) (int, error) {
	var c counter
	buf := make([]byte, bsize)
	for {
		n, err := rdr.Read(buf)
		c.add(buf[:n])
		if err == io.EOF {
			return c.count(), nil
		}
		if err != nil {
			return 0, err
		}
	}
}

// Count counts the records in fname, which may be compressed.
// "-" is stdin.
func Count(fname string) (int, error) {
	fc, err := zwrap.Open(fname)
	if err != nil {
		return 0, err
	}
	if !fc.Compressed() && fname != "-" {
		fc.Close()
		return ByMmap(fname)
	}
	n, err := ByReading(fc)
	if cerr := fc.Close(); err == nil {
		err = cerr
	}
	return n, err
}
