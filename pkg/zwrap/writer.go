// 18 Oct 2026

package zwrap

import (
	"bufio"
	"io"
	"os"

	"github.com/andrew-torda/nucgen/pkg/pz"
)

const outBufSize = 128 * 1024

// Options for the output side. If Compress is false, the pz settings
// are ignored.
type Options struct {
	Compress bool
	pz.Options
}

// FpOut is a buffered output, possibly with a parallel compressor in
// front of the buffer.
type FpOut struct {
	cl io.Closer // nil for stdout, which we never close
	bw *bufio.Writer
	zw *pz.Writer
	w  io.Writer // where Write sends data
}

// WrapOut puts a buffer, and maybe a compressor, in front of fp.
// If cl is not nil, it is closed by Close.
func WrapOut(fp io.Writer, cl io.Closer, opts Options) (*FpOut, error) {
	fo := &FpOut{cl: cl, bw: bufio.NewWriterSize(fp, outBufSize)}
	fo.w = fo.bw
	if opts.Compress {
		zw, err := pz.NewWriter(fo.bw, opts.Options)
		if err != nil {
			return nil, err
		}
		fo.zw = zw
		fo.w = zw
	}
	return fo, nil
}

// Create opens path for writing. An empty path or "-" means stdout.
func Create(path string, opts Options) (*FpOut, error) {
	if path == "" || path == "-" {
		return WrapOut(os.Stdout, nil, opts)
	}
	fp, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	fo, err := WrapOut(fp, fp, opts)
	if err != nil {
		fp.Close()
		return nil, err
	}
	return fo, nil
}

// Write goes to the compressor if there is one, otherwise to the buffer.
func (fo *FpOut) Write(p []byte) (int, error) {
	return fo.w.Write(p)
}

// Compressed reports whether output is being compressed.
func (fo *FpOut) Compressed() bool { return fo.zw != nil }

// Close finishes the compressed stream, flushes the buffer and closes
// the file. Everything is attempted, but we return the first error,
// since the later ones are usually a consequence of it.
func (fo *FpOut) Close() error {
	var errs [3]error
	if fo.zw != nil {
		errs[0] = fo.zw.Close()
	}
	errs[1] = fo.bw.Flush()
	if fo.cl != nil {
		errs[2] = fo.cl.Close()
		fo.cl = nil
	}
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
