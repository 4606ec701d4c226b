// 18 Oct 2026

// Package pz is a parallel compressing io.Writer.
//
// The input is cut into blocks of BlockSize bytes. Blocks are numbered
// and handed to a pool of workers, each of which turns its block into a
// complete gzip member (or zstd frame). A single collector writes the
// finished blocks to the destination in their original order. Blocks
// that finish early wait in a map until their turn.
//
// A file made of several gzip members is still a normal gzip file
// (RFC 1952 section 2.2) and gunzip, zcat and Go's readers decode it as
// one stream. Since blocks are compressed independently, the output does
// not depend on the number of workers.
//
// Nothing reaches the destination after Write returns until the block
// is full, so Close must be called.
package pz

import (
	"context"
	"errors"
	"io"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
)

// DefaultBlockSize is the amount of uncompressed data per block.
const DefaultBlockSize = 256 * 1024

// ErrClosed is returned by Write after Close.
var ErrClosed = errors.New("pz: write after close")

// Options configures a Writer. The zero value gives gzip at the default
// level with one worker per CPU.
type Options struct {
	Codec     Codec
	Workers   int // 0 means all CPUs
	BlockSize int // 0 means DefaultBlockSize
	Level     int // 0 means the codec's default
}

// Workers turns a requested thread count into the number we use.
// Zero means one per CPU and we never use more than there are CPUs.
func Workers(n int) int {
	ncpu := runtime.NumCPU()
	if n <= 0 || n > ncpu {
		return ncpu
	}
	return n
}

type block struct {
	seq  int
	data []byte
}

// Writer compresses in parallel. It is not safe for concurrent use, but
// two Writers share nothing and can run side by side.
type Writer struct {
	dst       io.Writer
	blockSize int
	nworker   int
	buf       []byte // block being filled
	seq       int    // number of the next block
	jobs      chan block
	g         *errgroup.Group
	ctx       context.Context
	pool      sync.Pool
	err       error
	closed    bool
}

// NewWriter starts the workers and returns a Writer which sends
// compressed data to dst.
func NewWriter(dst io.Writer, opts Options) (*Writer, error) {
	nworker := Workers(opts.Workers)
	bsize := opts.BlockSize
	if bsize <= 0 {
		bsize = DefaultBlockSize
	}
	encs := make([]encoder, nworker)
	for i := range encs {
		enc, err := newEncoder(opts.Codec, opts.Level)
		if err != nil {
			return nil, err
		}
		encs[i] = enc
	}

	g, ctx := errgroup.WithContext(context.Background())
	w := &Writer{
		dst:       dst,
		blockSize: bsize,
		nworker:   nworker,
		jobs:      make(chan block, nworker*2),
		g:         g,
		ctx:       ctx,
	}
	results := make(chan block, nworker*2)

	var wg sync.WaitGroup
	for _, enc := range encs {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			return w.work(enc, results)
		})
	}
	go func() {
		wg.Wait()
		close(results)
	}()
	g.Go(func() error { return w.collect(results) })

	w.buf = w.getBuf()
	return w, nil
}

// NWorker is the number of compressing goroutines.
func (w *Writer) NWorker() int { return w.nworker }

func (w *Writer) getBuf() []byte {
	if p, ok := w.pool.Get().(*[]byte); ok {
		return (*p)[:0]
	}
	return make([]byte, 0, w.blockSize)
}

func (w *Writer) putBuf(b []byte) {
	w.pool.Put(&b)
}

// work compresses blocks until the job channel is closed or somebody
// else has failed.
func (w *Writer) work(enc encoder, results chan<- block) error {
	for {
		select {
		case <-w.ctx.Done():
			return w.ctx.Err()
		case b, ok := <-w.jobs:
			if !ok {
				return nil
			}
			out, err := enc.encode(w.getBuf(), b.data)
			w.putBuf(b.data)
			if err != nil {
				return err
			}
			select {
			case results <- block{seq: b.seq, data: out}:
			case <-w.ctx.Done():
				return w.ctx.Err()
			}
		}
	}
}

// collect writes compressed blocks in order. The first write error stops
// everything and is what the caller eventually sees.
func (w *Writer) collect(results <-chan block) error {
	pending := make(map[int][]byte)
	next := 0
	for r := range results {
		pending[r.seq] = r.data
		for {
			data, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			_, err := w.dst.Write(data)
			w.putBuf(data)
			if err != nil {
				return err
			}
			next++
		}
	}
	return nil
}

// submit hands the current block to the workers.
func (w *Writer) submit() error {
	select {
	case w.jobs <- block{seq: w.seq, data: w.buf}:
		w.seq++
		w.buf = w.getBuf()
		return nil
	case <-w.ctx.Done():
		w.err = w.g.Wait()
		return w.err
	}
}

// Write copies p into the current block, sending off each block as it
// fills. It returns as soon as the data is queued.
func (w *Writer) Write(p []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	if w.closed {
		return 0, ErrClosed
	}
	n := 0
	for len(p) > 0 {
		k := min(w.blockSize-len(w.buf), len(p))
		w.buf = append(w.buf, p[:k]...)
		p = p[k:]
		n += k
		if len(w.buf) == w.blockSize {
			if err := w.submit(); err != nil {
				return n, err
			}
		}
	}
	return n, nil
}

// Close sends off the last partial block and waits until everything
// has been compressed and written to the destination. An empty stream
// still gets one empty member, so the output is always a valid file.
// Close does not close the destination.
func (w *Writer) Close() error {
	if w.closed || w.err != nil {
		w.closed = true
		return w.err
	}
	w.closed = true
	if len(w.buf) > 0 || w.seq == 0 {
		if err := w.submit(); err != nil {
			return err
		}
	}
	close(w.jobs)
	w.err = w.g.Wait()
	return w.err
}
