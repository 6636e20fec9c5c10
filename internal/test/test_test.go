package test

import (
	"strings"
	"testing"
	"unicode/utf8"
)

// Make sure our reference UTF-8 scanner agrees with a naive decoder.
func TestReferenceVerifyUTF8(t *testing.T) {
	naive := func(s string) int {
		for i := 0; i < len(s); {
			r, size := utf8.DecodeRuneInString(s[i:])
			if r == 0 || (r == utf8.RuneError && size == 1) {
				return i
			}
			i += size
		}
		return len(s)
	}
	for _, test := range verifyUTF8Tests {
		s := test.s[test.pos:]
		if got, want := ReferenceVerifyUTF8(s), naive(s); got != want {
			t.Errorf("ReferenceVerifyUTF8(%q) = %d; want: %d", s, got, want)
		}
	}
	if n := ReferenceVerifyUTF8(MultiScriptText); n != len(MultiScriptText) {
		t.Errorf("ReferenceVerifyUTF8(MultiScriptText) = %d; want: %d", n, len(MultiScriptText))
	}
}

func TestMultiScriptText(t *testing.T) {
	if !utf8.ValidString(MultiScriptText) || strings.IndexByte(MultiScriptText, 0) != -1 {
		t.Fatal("MultiScriptText must be valid UTF-8 without NUL bytes")
	}
}

// Make sure the test cases are valid.
func TestHexTests(t *testing.T) {
	for _, test := range decodeTests {
		if (test.err == nil) != isHexString(test.in) {
			t.Errorf("invalid test: %q: error %v", test.in, test.err)
		}
	}
	for _, test := range encodeTests {
		if !isHexString(test.out) || strings.ToLower(test.out) != test.out {
			t.Errorf("invalid test: %q", test.out)
		}
	}
}
