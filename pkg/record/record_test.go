package record_test

import (
	"bytes"
	"errors"
	"io"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrew-torda/nucgen/brokenio"
	"github.com/andrew-torda/nucgen/pkg/record"
	"github.com/andrew-torda/nucgen/pkg/seqread"
)

func TestFastaBytes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, record.WriteFasta(&buf, 0, []byte("ACGT")))
	require.NoError(t, record.WriteFasta(&buf, 12, []byte("GG")))
	assert.Equal(t, ">seq.0\nACGT\n>seq.12\nGG\n", buf.String())
}

func TestFastqBytes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, record.WriteFastq(&buf, 0, []byte("ACGTA"), record.Qual(5)))
	assert.Equal(t, "@seq.0\nACGTA\n+\n?????\n", buf.String())
}

// TestEmpty checks a zero length sequence still gets its header and
// newlines.
func TestEmpty(t *testing.T) {
	var buf bytes.Buffer
	w := record.NewWriter(&buf, record.Fasta)
	require.NoError(t, w.Write(0, nil, nil))
	assert.Equal(t, ">seq.0\n\n", buf.String())

	buf.Reset()
	w = record.NewWriter(&buf, record.Fastq)
	require.NoError(t, w.Write(3, nil, record.Qual(0)))
	assert.Equal(t, "@seq.3\n\n+\n\n", buf.String())
}

// TestRoundTrip writes records with a Writer and reads them back.
func TestRoundTrip(t *testing.T) {
	seqs := []string{"ACGTTGCA", "", "T", "GATTACA"}
	for _, f := range []record.Format{record.Fasta, record.Fastq} {
		var buf bytes.Buffer
		w := record.NewWriter(&buf, f)
		for i, s := range seqs {
			require.NoError(t, w.Write(i, []byte(s), record.Qual(len(s))))
		}
		rdr := seqread.NewReader(&buf)
		for i, s := range seqs {
			rec, err := rdr.Next()
			require.NoError(t, err, "format %v record %d", f, i)
			assert.Equal(t, "seq."+strconv.Itoa(i), rec.ID)
			assert.Equal(t, s, string(rec.Seq))
			if f == record.Fastq {
				assert.Equal(t, string(record.Qual(len(s))), string(rec.Qual))
			}
		}
		_, err := rdr.Next()
		assert.ErrorIs(t, err, io.EOF)
	}
}

// TestWriteError breaks the sink at every offset within a record and
// checks the sink's error comes back unchanged.
func TestWriteError(t *testing.T) {
	seq := []byte("ACGTACGT")
	qual := record.Qual(len(seq))
	full := len("@seq.7\n") + len(seq) + len("\n+\n") + len(qual) + 1
	for lim := 0; lim < full; lim++ {
		bw := brokenio.NewWriter(&bytes.Buffer{})
		bw.SetFailAfter(int64(lim))
		err := record.NewWriter(bw, record.Fastq).Fastq(7, seq, qual)
		if !errors.Is(err, brokenio.ErrBroken) {
			t.Fatalf("limit %d: got error %v", lim, err)
		}
		assert.Equal(t, brokenio.ErrBroken, err)
	}
}

func TestNoAlloc(t *testing.T) {
	var buf bytes.Buffer
	buf.Grow(1 << 16)
	w := record.NewWriter(&buf, record.Fastq)
	seq, qual := []byte("ACGTACGTAC"), record.Qual(10)
	allocs := testing.AllocsPerRun(200, func() {
		buf.Reset()
		_ = w.Fastq(123456, seq, qual)
	})
	assert.Zero(t, allocs)
}

// The package level functions should not cost anything either, once
// they have warmed up.
func TestNoAllocFunc(t *testing.T) {
	var buf bytes.Buffer
	buf.Grow(1 << 16)
	seq, qual := []byte("ACGTACGTAC"), record.Qual(10)
	require.NoError(t, record.WriteFasta(&buf, 1, seq))
	allocs := testing.AllocsPerRun(200, func() {
		buf.Reset()
		_ = record.WriteFasta(&buf, 123456, seq)
		_ = record.WriteFastq(&buf, 123457, seq, qual)
	})
	assert.Zero(t, allocs)
	assert.Equal(t, ">seq.123456\nACGTACGTAC\n@seq.123457\nACGTACGTAC\n+\n??????????\n", buf.String())
}

func TestParseFormat(t *testing.T) {
	for s, want := range map[string]record.Format{
		"a": record.Fasta, "fasta": record.Fasta, "FA": record.Fasta,
		"q": record.Fastq, "fastq": record.Fastq, "fq": record.Fastq,
	} {
		got, err := record.ParseFormat(s)
		require.NoError(t, err, s)
		assert.Equal(t, want, got, s)
	}
	_, err := record.ParseFormat("sam")
	assert.Error(t, err)
}

func TestFromPath(t *testing.T) {
	tests := []struct {
		path string
		want record.Format
		ok   bool
	}{
		{"out.fa", record.Fasta, true},
		{"dir/out.fasta.gz", record.Fasta, true},
		{"r1.fq.gz", record.Fastq, true},
		{"R2.FASTQ", record.Fastq, true},
		{"r1.fq.zst", record.Fastq, true},
		{"reads.txt", record.Fasta, false},
		{"reads.gz", record.Fasta, false},
	}
	for _, tt := range tests {
		got, ok := record.FromPath(tt.path)
		assert.Equal(t, tt.ok, ok, tt.path)
		assert.Equal(t, tt.want, got, tt.path)
	}
}
