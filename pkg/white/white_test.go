//
package white_test

import (
	"strings"
	"testing"

	. "github.com/andrew-torda/nucgen/pkg/white"
)

// TestRemove
func TestRemove(t *testing.T) {
	ss := []string{
		"abcdefghijk",
		" a b c d e f g h i j k",
		"a b c de fgh ijk",
		"   abcdefghijk    ",
		"a   b      cdefghijk\n ",
		"a  b  c  d   e    f     ghijk",
		"a bcdefghij   k",
		"abcdefghij\nk",
		"abcdefghijk\r",
	}
	for _, s := range ss {
		b := []byte(s)
		c := cap(b)
		Remove(&b)
		if string(b) != "abcdefghijk" {
			t.Fatalf("white remove broke on \"%s\"", s)
		}
		if cap(b) != c {
			t.Fatalf("capacity changed on \"%s\"", s)
		}
	}
	var empty []byte
	Remove(&empty)
	if len(empty) != 0 {
		t.Fatal("empty slice grew")
	}
	if !IsWhite('\t') || IsWhite('A') {
		t.Fatal("IsWhite wrong")
	}
}

func BenchmarkRemove(b *testing.B) {
	s := strings.Repeat(strings.Repeat("abcdefghij ", 6)+"\n", 10)
	for i := 0; i < b.N; i++ {
		tt := []byte(s)
		Remove(&tt)
	}
}
