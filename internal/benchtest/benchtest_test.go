package benchtest

import (
	"encoding/hex"
	"flag"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/charlievieth/strutil"
)

var benchStdLib = flag.Bool("stdlib", false, "Use the stdlib equivalents in benchmarks (for comparison)")

const benchmarkString = "some_text=some☺value"

var benchmarkLongString = strings.Repeat(" ", 100) + benchmarkString

var benchSizes = []struct {
	name string
	n    int
}{
	{"16", 16},
	{"64", 64},
	{"1K", 1024},
	{"32K", 32 * 1024},
}

func makeASCII(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = 'a' + byte(i%26)
	}
	return string(b)
}

func makeUTF8(n int) string {
	const text = "Hello, 世界! Ελληνικά русский 😀 "
	s := strings.Repeat(text, n/len(text)+1)
	for len(s) > n {
		_, size := utf8.DecodeLastRuneInString(s)
		s = s[:len(s)-size]
	}
	return s
}

func benchValidUTF8(b *testing.B, s string) {
	b.SetBytes(int64(len(s)))
	if *benchStdLib {
		for i := 0; i < b.N; i++ {
			utf8.ValidString(s)
		}
	} else {
		for i := 0; i < b.N; i++ {
			strutil.ValidUTF8(s)
		}
	}
}

func benchValidASCII(b *testing.B, s string) {
	b.SetBytes(int64(len(s)))
	if *benchStdLib {
		for i := 0; i < b.N; i++ {
			// utf8.ValidString has an ASCII fast path which is the
			// closest stdlib equivalent.
			utf8.ValidString(s)
		}
	} else {
		for i := 0; i < b.N; i++ {
			strutil.ValidASCII(s)
		}
	}
}

func benchEncodeHex(b *testing.B, src string) {
	b.SetBytes(int64(len(src)))
	dst := make([]byte, strutil.EncodedLen(len(src)))
	if *benchStdLib {
		s := []byte(src)
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			hex.Encode(dst, s)
		}
	} else {
		for i := 0; i < b.N; i++ {
			strutil.EncodeHex(dst, src)
		}
	}
}

func benchDecodeHex(b *testing.B, src string) {
	b.SetBytes(int64(len(src)))
	dst := make([]byte, strutil.DecodedLen(len(src)))
	if *benchStdLib {
		s := []byte(src)
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			if _, err := hex.Decode(dst, s); err != nil {
				b.Fatal(err)
			}
		}
	} else {
		for i := 0; i < b.N; i++ {
			if _, err := strutil.DecodeHex(dst, src); err != nil {
				b.Fatal(err)
			}
		}
	}
}

func benchPrefix(b *testing.B, s, prefix string) {
	if *benchStdLib {
		for i := 0; i < b.N; i++ {
			if strings.HasPrefix(s, prefix) {
				_ = s[len(prefix):]
			}
		}
	} else {
		for i := 0; i < b.N; i++ {
			strutil.Prefix(s, prefix)
		}
	}
}

func benchCompare(b *testing.B, s1, s2 string) {
	if *benchStdLib {
		for i := 0; i < b.N; i++ {
			strings.Compare(s1, s2)
		}
	} else {
		n1, n2 := strutil.Some(s1), strutil.Some(s2)
		for i := 0; i < b.N; i++ {
			strutil.Compare(n1, n2)
		}
	}
}

func BenchmarkValidUTF8(b *testing.B) {
	if !utf8.ValidString(benchmarkString) || !strutil.ValidUTF8(benchmarkString) {
		b.Fatal("benchmark string must be valid UTF-8")
	}
	b.Run("Short", func(b *testing.B) {
		benchValidUTF8(b, benchmarkString)
	})
	b.Run("Long", func(b *testing.B) {
		benchValidUTF8(b, benchmarkLongString)
	})
	for _, size := range benchSizes {
		b.Run("ASCII/"+size.name, func(b *testing.B) {
			benchValidUTF8(b, makeASCII(size.n))
		})
		b.Run("Mixed/"+size.name, func(b *testing.B) {
			benchValidUTF8(b, makeUTF8(size.n))
		})
	}
}

func BenchmarkValidASCII(b *testing.B) {
	for _, size := range benchSizes {
		b.Run(size.name, func(b *testing.B) {
			benchValidASCII(b, makeASCII(size.n))
		})
	}
}

func BenchmarkEncodeHex(b *testing.B) {
	for _, size := range benchSizes {
		b.Run(size.name, func(b *testing.B) {
			benchEncodeHex(b, makeUTF8(size.n))
		})
	}
}

func BenchmarkDecodeHex(b *testing.B) {
	for _, size := range benchSizes {
		src := hex.EncodeToString([]byte(makeUTF8(size.n)))
		b.Run(size.name, func(b *testing.B) {
			benchDecodeHex(b, src)
		})
	}
}

func BenchmarkPrefix(b *testing.B) {
	b.Run("Match", func(b *testing.B) {
		benchPrefix(b, benchmarkLongString, strings.Repeat(" ", 100))
	})
	b.Run("Mismatch", func(b *testing.B) {
		benchPrefix(b, benchmarkLongString, strings.Repeat(" ", 99)+"x")
	})
}

func BenchmarkCompare(b *testing.B) {
	b.Run("Equal", func(b *testing.B) {
		benchCompare(b, benchmarkLongString, string([]byte(benchmarkLongString)))
	})
	b.Run("Less", func(b *testing.B) {
		benchCompare(b, benchmarkLongString, benchmarkLongString[:len(benchmarkLongString)-1]+"f")
	})
}

// Make sure that the stdlib and strutil agree on the inputs used above.
func TestBenchmarkInputs(t *testing.T) {
	for _, size := range benchSizes {
		s := makeUTF8(size.n)
		if got, want := strutil.ValidUTF8(s), utf8.ValidString(s); got != want {
			t.Errorf("ValidUTF8(%d) = %t; want: %t", size.n, got, want)
		}
		if got := strutil.EncodeHexToString(s); got != hex.EncodeToString([]byte(s)) {
			t.Errorf("EncodeHexToString(%d) = %q; want: %q", size.n, got, hex.EncodeToString([]byte(s)))
		}
	}
}
