package test

import (
	"math/rand"
	"testing"
	"unicode/utf8"
)

func TestInvalidRune(t *testing.T) {
	rr := rand.New(rand.NewSource(cryptoRandInt(t)))
	for i := 0; i < 10_000; i++ {
		r := invalidRune(rr)
		if utf8.ValidRune(r) {
			t.Fatalf("utf8.ValidRune(%q) = %t; want: %t", r, true, false)
		}
		if b := appendInvalidRune(nil, r); utf8.Valid(b) {
			t.Fatalf("appendInvalidRune(%U) = %q: is valid UTF-8", r, b)
		}
	}
}

func TestMalformedUTF8(t *testing.T) {
	for _, s := range malformedUTF8 {
		if s != "\x00" && utf8.ValidString(s) {
			t.Errorf("malformed sequence %q is valid UTF-8", s)
		}
	}
}

func TestAppendRandText(t *testing.T) {
	rr := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		b := appendRandText(nil, rr, 64, false)
		if len(b) < 64 || !utf8.Valid(b) {
			t.Fatalf("appendRandText(64, false) = %q: want valid UTF-8 of at least 64 bytes", b)
		}
		for _, c := range b {
			if c == 0 {
				t.Fatalf("appendRandText(64, false) = %q: contains NUL", b)
			}
		}
	}
}
