package bytutil

import (
	"errors"
	"testing"

	"github.com/charlievieth/strutil/internal/test"
)

func nullBytes(s *string) NullBytes {
	if s == nil {
		return NullBytes{}
	}
	return Some([]byte(*s))
}

func equalFunc(a, b *string) bool { return Equal(nullBytes(a), nullBytes(b)) }

func compareFunc(a, b *string) int { return Compare(nullBytes(a), nullBytes(b)) }

func hexError(err error) (int, byte, bool) {
	var e *InvalidHexError
	if errors.As(err, &e) {
		return e.Offset, e.Byte, true
	}
	return 0, 0, false
}

func verifyASCII(s string, pos int) int {
	return VerifyASCII(NewCursor([]byte(s)).Advance(pos)).Pos()
}

func verifyUTF8(s string, pos int) int {
	return VerifyUTF8(NewCursor([]byte(s)).Advance(pos)).Pos()
}

func TestEqual(t *testing.T) {
	test.Equal(t, equalFunc)
}

// A present nil slice is the empty string, not absent.
func TestEqualNilSlice(t *testing.T) {
	if Equal(Some(nil), NullBytes{}) {
		t.Error("Equal(Some(nil), NullBytes{}) = true; want: false")
	}
	if !Equal(Some(nil), Some([]byte{})) {
		t.Error("Equal(Some(nil), Some([]byte{})) = false; want: true")
	}
}

func TestCompare(t *testing.T) {
	test.Compare(t, compareFunc)
}

func TestCompareFuzz(t *testing.T) {
	test.CompareFuzz(t, compareFunc)
}

func TestPrefix(t *testing.T) {
	test.Prefix(t, test.BytePrefixFunc(Prefix))
}

func TestPrefixIndex(t *testing.T) {
	test.PrefixIndex(t, test.BytePrefixIndexFunc(PrefixIndex))
}

func TestPrefixAllocs(t *testing.T) {
	s := []byte("prefix=value")
	prefix := []byte("prefix=")
	allocs := testing.AllocsPerRun(1000, func() {
		if _, ok := Prefix(s, prefix); !ok {
			panic("no match")
		}
	})
	if allocs != 0 {
		t.Errorf("Prefix: allocs = %.2f; want: 0", allocs)
	}
}

func TestEncodeHex(t *testing.T) {
	test.EncodeHex(t, test.ByteEncodeFunc(EncodeHex))
	test.EncodeHexPanics(t, test.ByteEncodeFunc(EncodeHex))
}

func TestAppendHex(t *testing.T) {
	test.AppendHex(t, test.ByteAppendFunc(AppendHex))
}

func TestDecodeHex(t *testing.T) {
	test.DecodeHex(t, test.ByteDecodeFunc(DecodeHex), ErrHexLength, hexError)
	test.DecodeHexPanics(t, test.ByteDecodeFunc(DecodeHex))
}

// Decoding in place is supported.
func TestDecodeHexInPlace(t *testing.T) {
	b := []byte("48656C6C6F")
	n, err := DecodeHex(b, b)
	if err != nil || string(b[:n]) != "Hello" {
		t.Errorf("DecodeHex(in place) = %q, %v; want: %q, nil", b[:n], err, "Hello")
	}
}

func TestDecodeHexString(t *testing.T) {
	b, err := DecodeHexString("Ff00")
	if err != nil || string(b) != "\xff\x00" {
		t.Errorf("DecodeHexString(%q) = %q, %v; want: %q, nil", "Ff00", b, err, "\xff\x00")
	}
	if _, err := DecodeHexString("abc"); !errors.Is(err, ErrHexLength) {
		t.Errorf("DecodeHexString(%q): error = %v; want: %v", "abc", err, ErrHexLength)
	}
}

func TestHexRoundTrip(t *testing.T) {
	test.HexRoundTrip(t,
		test.ByteValidFunc(ValidHex),
		test.ByteDecodeFunc(DecodeHex),
		test.ByteEncodeFunc(EncodeHex),
	)
}

func TestHexFuzz(t *testing.T) {
	test.HexFuzz(t, test.ByteEncodeFunc(EncodeHex), test.ByteDecodeFunc(DecodeHex), hexError)
}

func TestVerifyASCII(t *testing.T) {
	test.VerifyASCII(t, verifyASCII)
}

func TestVerifyASCIIFuzz(t *testing.T) {
	test.VerifyASCIIFuzz(t, verifyASCII)
}

func TestVerifyUTF8(t *testing.T) {
	test.VerifyUTF8(t, verifyUTF8)
}

func TestVerifyUTF8Fuzz(t *testing.T) {
	test.VerifyUTF8Fuzz(t, verifyUTF8)
}

func TestVerifyUTF8Assigned(t *testing.T) {
	if testing.Short() {
		t.Skip("short test")
	}
	test.VerifyUTF8Assigned(t, verifyUTF8)
}

func TestCursor(t *testing.T) {
	b := []byte("abc")
	c := NewCursor(b).Advance(1)
	if c.Pos() != 1 || c.Len() != 2 || string(c.Rest()) != "bc" || c.Done() {
		t.Fatalf("NewCursor(%q).Advance(1) = %+v", b, c)
	}
	// The cursor shares memory with its slice.
	b[2] = 'C'
	if string(c.Rest()) != "bC" {
		t.Errorf("Rest() = %q; want: %q", c.Rest(), "bC")
	}
	if x, ok := c.Advance(2).Peek(); ok {
		t.Errorf("Peek() at end = %q, true; want: false", x)
	}
}

func TestValid(t *testing.T) {
	if !ValidASCII([]byte("a\x00b")) || ValidASCII([]byte("\x80")) {
		t.Error("ValidASCII: invalid result")
	}
	if !ValidUTF8([]byte(test.MultiScriptText)) || ValidUTF8([]byte("a\x00b")) {
		t.Error("ValidUTF8: invalid result")
	}
}

func TestAllocs(t *testing.T) {
	src := []byte("hello, 世界")
	enc := make([]byte, EncodedLen(len(src)))
	dec := make([]byte, len(src))
	allocs := testing.AllocsPerRun(1000, func() {
		EncodeHex(enc, src)
		if _, err := DecodeHex(dec, enc); err != nil {
			panic(err)
		}
		if !VerifyUTF8(NewCursor(dec)).Done() {
			panic("invalid UTF-8")
		}
	})
	if allocs != 0 {
		t.Errorf("allocs = %.2f; want: 0", allocs)
	}
}
