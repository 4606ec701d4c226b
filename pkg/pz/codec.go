// 18 Oct 2026

package pz

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Codec says which container each block is wrapped in.
type Codec uint8

const (
	Gzip Codec = iota
	Zstd
)

func (c Codec) String() string {
	if c == Zstd {
		return "zstd"
	}
	return "gzip"
}

// Ext is the usual file name suffix for the codec.
func (c Codec) Ext() string {
	if c == Zstd {
		return ".zst"
	}
	return ".gz"
}

// ParseCodec takes a name from the command line.
func ParseCodec(s string) (Codec, error) {
	switch strings.ToLower(s) {
	case "gz", "gzip":
		return Gzip, nil
	case "zst", "zstd":
		return Zstd, nil
	}
	return Gzip, fmt.Errorf("unknown compression %q, want gzip or zstd", s)
}

// CodecFromPath looks at the suffix of a file name. ok is false if the
// name does not look compressed.
func CodecFromPath(path string) (c Codec, ok bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		return Gzip, true
	case ".zst":
		return Zstd, true
	}
	return Gzip, false
}

// An encoder turns one block into one complete gzip member or zstd
// frame. Each worker owns one, since neither library's encoder may be
// shared between goroutines.
type encoder interface {
	encode(dst, src []byte) ([]byte, error)
}

func newEncoder(c Codec, level int) (encoder, error) {
	switch c {
	case Gzip:
		if level == 0 {
			level = gzip.DefaultCompression
		}
		gz, err := gzip.NewWriterLevel(nil, level)
		if err != nil {
			return nil, err
		}
		return &gzEncoder{gz: gz}, nil
	case Zstd:
		lvl := zstd.SpeedDefault
		if level != 0 {
			lvl = zstd.EncoderLevelFromZstd(level)
		}
		enc, err := zstd.NewWriter(nil,
			zstd.WithEncoderLevel(lvl),
			zstd.WithEncoderConcurrency(1),
			zstd.WithZeroFrames(true))
		if err != nil {
			return nil, err
		}
		return &zstdEncoder{enc: enc}, nil
	}
	return nil, fmt.Errorf("pz: codec %d not known", c)
}

type gzEncoder struct {
	gz *gzip.Writer
}

func (e *gzEncoder) encode(dst, src []byte) ([]byte, error) {
	buf := bytes.NewBuffer(dst[:0])
	e.gz.Reset(buf)
	if _, err := e.gz.Write(src); err != nil {
		return nil, err
	}
	if err := e.gz.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type zstdEncoder struct {
	enc *zstd.Encoder
}

func (e *zstdEncoder) encode(dst, src []byte) ([]byte, error) {
	return e.enc.EncodeAll(src, dst[:0]), nil
}
