// Package zwrap takes a file pointer and optionally wraps it in a
// compressor or decompressor, so that Close shuts down the compression
// layer first, followed by the underlying file.
// On the reading side we look at the first few bytes and recognise gzip
// and zstd. On the writing side (writer.go) we put a parallel compressor
// in front of a buffered file.

package zwrap

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

var (
	gzMagic   = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// FpIn is what we return for reading.
type FpIn struct {
	fp   io.ReadCloser
	rdr  io.Reader     // what we actually read from
	zrdr io.ReadCloser // decompressor, nil for plain input
}

// Close closes the decompressor, then the underlying backing readCloser.
// It should work if the source is a file or an http stream.
func (fc *FpIn) Close() error {
	var zerr error
	if fc.zrdr != nil {
		zerr = fc.zrdr.Close()
	}
	return errors.Join(zerr, fc.fp.Close())
}

// Read makes sure we read from the decompressed stream and not the
// underlying file stream.
func (fc *FpIn) Read(p []byte) (int, error) {
	return fc.rdr.Read(p)
}

// Compressed reports whether we are decompressing.
func (fc *FpIn) Compressed() bool { return fc.zrdr != nil }

// Wrap takes a source like a file pointer or http stream that must be
// gzipped and wraps it so the correct Close and Read will be called.
func Wrap(fp io.ReadCloser) (*FpIn, error) {
	zrdr, err := gzip.NewReader(fp)
	if err != nil {
		return nil, err
	}
	return &FpIn{fp: fp, rdr: zrdr, zrdr: zrdr}, nil
}

// WrapMaybe will decide if the underlying stream is compressed and wrap
// the file pointer if necessary. We peek rather than seek, so this works
// on pipes and stdin.
func WrapMaybe(fp io.ReadCloser) (*FpIn, error) {
	brdr := bufio.NewReader(fp)
	head, err := brdr.Peek(len(zstdMagic))
	if err != nil && err != io.EOF {
		return nil, err
	}
	fc := &FpIn{fp: fp, rdr: brdr}
	switch {
	case bytes.HasPrefix(head, gzMagic):
		zrdr, err := gzip.NewReader(brdr)
		if err != nil {
			return nil, err
		}
		fc.rdr, fc.zrdr = zrdr, zrdr
	case bytes.HasPrefix(head, zstdMagic):
		dec, err := zstd.NewReader(brdr)
		if err != nil {
			return nil, err
		}
		fc.rdr, fc.zrdr = dec, dec.IOReadCloser()
	}
	return fc, nil
}

// Open opens a file for reading, decompressing if necessary.
// "-" is stdin, which is not closed.
func Open(path string) (*FpIn, error) {
	fp := io.NopCloser(os.Stdin)
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		fp = f
	}
	fc, err := WrapMaybe(fp)
	if err != nil {
		fp.Close()
		return nil, err
	}
	return fc, nil
}
