package pz_test

import (
	"bytes"
	stdgzip "compress/gzip"
	"errors"
	"io"
	"math/rand/v2"
	"runtime"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrew-torda/nucgen/brokenio"
	"github.com/andrew-torda/nucgen/pkg/pz"
)

// testData is compressible but not trivially so.
func testData(n int) []byte {
	rnd := rand.New(rand.NewPCG(1, 2))
	b := make([]byte, n)
	for i := range b {
		b[i] = "ACGT\n"[rnd.IntN(5)]
	}
	return b
}

func decompress(t *testing.T, c pz.Codec, z []byte) []byte {
	t.Helper()
	var rdr io.Reader
	switch c {
	case pz.Gzip:
		gz, err := stdgzip.NewReader(bytes.NewReader(z))
		require.NoError(t, err)
		defer gz.Close()
		rdr = gz
	case pz.Zstd:
		zr, err := zstd.NewReader(bytes.NewReader(z))
		require.NoError(t, err)
		defer zr.Close()
		rdr = zr
	}
	out, err := io.ReadAll(rdr)
	require.NoError(t, err)
	return out
}

// compress writes data in chunks of chunk bytes.
func compress(t *testing.T, data []byte, opts pz.Options, chunk int) []byte {
	t.Helper()
	var buf bytes.Buffer
	w, err := pz.NewWriter(&buf, opts)
	require.NoError(t, err)
	for p := data; len(p) > 0; {
		k := min(chunk, len(p))
		n, err := w.Write(p[:k])
		require.NoError(t, err)
		require.Equal(t, k, n)
		p = p[k:]
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestRoundTrip(t *testing.T) {
	const bsize = 1000
	sizes := []int{0, 1, bsize - 1, bsize, bsize + 1, 7 * bsize, 20*bsize + 13}
	for _, c := range []pz.Codec{pz.Gzip, pz.Zstd} {
		for _, nw := range []int{1, 4} {
			for _, n := range sizes {
				data := testData(n)
				opts := pz.Options{Codec: c, Workers: nw, BlockSize: bsize}
				z := compress(t, data, opts, 333)
				got := decompress(t, c, z)
				if !bytes.Equal(data, got) {
					t.Fatalf("%v workers %d size %d: decompressed data differs", c, nw, n)
				}
			}
		}
	}
}

// TestWorkerIndependence checks the compressed bytes do not depend on
// the number of workers.
func TestWorkerIndependence(t *testing.T) {
	data := testData(300 * 1024)
	for _, c := range []pz.Codec{pz.Gzip, pz.Zstd} {
		one := compress(t, data, pz.Options{Codec: c, Workers: 1, BlockSize: 4096}, 5000)
		many := compress(t, data, pz.Options{Codec: c, Workers: 8, BlockSize: 4096}, 777)
		assert.Equal(t, one, many, "codec %v", c)
		assert.Equal(t, data, decompress(t, c, many))
	}
}

// TestManySmallBlocks makes lots of tiny blocks, so workers finish out
// of order, and checks nothing is shuffled.
func TestManySmallBlocks(t *testing.T) {
	var data []byte
	for i := 0; i < 20000; i++ {
		data = append(data, byte(i), byte(i>>8))
	}
	z := compress(t, data, pz.Options{Workers: runtime.NumCPU(), BlockSize: 17}, 1)
	assert.Equal(t, data, decompress(t, pz.Gzip, z))
}

func TestEmpty(t *testing.T) {
	for _, c := range []pz.Codec{pz.Gzip, pz.Zstd} {
		z := compress(t, nil, pz.Options{Codec: c}, 1)
		assert.NotEmpty(t, z, "codec %v wrote nothing", c)
		assert.Empty(t, decompress(t, c, z))
	}
}

// TestDstError breaks the destination and checks the error comes back
// from Write or Close, and sticks.
func TestDstError(t *testing.T) {
	data := testData(100 * 1024)
	for _, nw := range []int{1, 3} {
		bw := brokenio.NewWriter(io.Discard)
		bw.SetFailAfter(10)
		w, err := pz.NewWriter(bw, pz.Options{Workers: nw, BlockSize: 1024})
		require.NoError(t, err)
		var werr error
		for p := data; len(p) > 0 && werr == nil; p = p[min(100, len(p)):] {
			_, werr = w.Write(p[:min(100, len(p))])
		}
		cerr := w.Close()
		assert.ErrorIs(t, cerr, brokenio.ErrBroken)
		if werr != nil {
			assert.ErrorIs(t, werr, brokenio.ErrBroken)
		}
		_, err = w.Write([]byte("more"))
		assert.ErrorIs(t, err, brokenio.ErrBroken)
		assert.ErrorIs(t, w.Close(), brokenio.ErrBroken)
	}
}

func TestWriteAfterClose(t *testing.T) {
	w, err := pz.NewWriter(io.Discard, pz.Options{Workers: 2})
	require.NoError(t, err)
	require.NoError(t, w.Close())
	_, err = w.Write([]byte("x"))
	assert.True(t, errors.Is(err, pz.ErrClosed))
	assert.NoError(t, w.Close())
}

func TestWorkers(t *testing.T) {
	ncpu := runtime.NumCPU()
	assert.Equal(t, ncpu, pz.Workers(0))
	assert.Equal(t, 1, pz.Workers(1))
	assert.Equal(t, ncpu, pz.Workers(ncpu+5))
	w, err := pz.NewWriter(io.Discard, pz.Options{Workers: ncpu + 1})
	require.NoError(t, err)
	assert.Equal(t, ncpu, w.NWorker())
	require.NoError(t, w.Close())
}

func TestCodecNames(t *testing.T) {
	c, err := pz.ParseCodec("zstd")
	require.NoError(t, err)
	assert.Equal(t, pz.Zstd, c)
	c, err = pz.ParseCodec("GZ")
	require.NoError(t, err)
	assert.Equal(t, pz.Gzip, c)
	_, err = pz.ParseCodec("bzip2")
	assert.Error(t, err)

	c, ok := pz.CodecFromPath("r1.fq.zst")
	assert.True(t, ok)
	assert.Equal(t, pz.Zstd, c)
	assert.Equal(t, ".zst", c.Ext())
	_, ok = pz.CodecFromPath("r1.fq")
	assert.False(t, ok)
}

func BenchmarkWriter(b *testing.B) {
	data := testData(4 << 20)
	b.SetBytes(int64(len(data)))
	for i := 0; i < b.N; i++ {
		w, _ := pz.NewWriter(io.Discard, pz.Options{})
		w.Write(data)
		w.Close()
	}
}
