// brokenio is a wrapper around an io.Writer. It lets us make writes fail
// after a given number of bytes or with a given probability.
// Typical use: You have a file, a compressor or a bytes.Buffer. You write
// w = brokenio.NewWriter(w) and everything works as before until the
// limit is reached. Then every write returns ErrBroken.
// When we fail part way through a buffer, we write as much as is allowed
// and return a short count with the error, just as a full disk would.

package brokenio

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
)

// ErrBroken is returned by every write after the writer breaks.
var ErrBroken = errors.New("brokenio: write failed")

// A BrknWrtr is modelled on the writers in the standard library, but
// with settings controlling when it stops working.
// If verbose is true, print out the amount of data when it is closed.
type BrknWrtr struct {
	wrtr      io.Writer // Wrapped writer
	failAfter int64     // Break after this many bytes. Negative means never.
	probFail  float32   // Probability of any one write failing
	nCalled   int
	nByte     int64
	broken    bool
	verbose   bool
}

// dfltWriter sets default values for a new brokenio writer.
var dfltWriter = BrknWrtr{
	failAfter: -1,
	probFail:  0,
	verbose:   false,
}

// NewWriter returns a new Writer, a wrapper around the old one.
func NewWriter(w io.Writer) *BrknWrtr {
	var wOut = dfltWriter
	wOut.wrtr = w
	return &wOut
}

// SetVerbose sets the verbosity flag to true or false
func (w *BrknWrtr) SetVerbose(newV bool) { w.verbose = newV }

// SetFailAfter makes the writer break once n bytes have gone through.
// n of zero means the very first write fails.
func (w *BrknWrtr) SetFailAfter(n int64) { w.failAfter = n }

// SetProbFail sets the probability of a write failing.
// It must be between zero and 1. We do not check.
func (w *BrknWrtr) SetProbFail(prob float32) { w.probFail = prob }

// NByte is the number of bytes passed on to the wrapped writer.
func (w *BrknWrtr) NByte() int64 { return w.nByte }

// Write passes p on until the writer breaks. Once broken, it stays broken.
func (w *BrknWrtr) Write(p []byte) (int, error) {
	w.nCalled++
	if w.broken {
		return 0, ErrBroken
	}
	if w.probFail > 0 && rand.Float32() < w.probFail {
		w.broken = true
		return 0, ErrBroken
	}
	want := p
	if w.failAfter >= 0 && w.nByte+int64(len(p)) > w.failAfter {
		want = p[:w.failAfter-w.nByte]
		w.broken = true
	}
	n, err := w.wrtr.Write(want)
	w.nByte += int64(n)
	if err != nil {
		return n, err
	}
	if w.broken {
		return n, ErrBroken
	}
	return n, nil
}

// Close prints statistics if asked and closes the wrapped writer if it
// is an io.Closer.
func (w *BrknWrtr) Close() error {
	if w.verbose {
		fmt.Println("Closing", w.nCalled, "calls and", w.nByte, "bytes")
	}
	if c, ok := w.wrtr.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
