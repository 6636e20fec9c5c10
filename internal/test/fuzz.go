package test

import (
	crand "crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"runtime"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/charlievieth/strutil/internal/tables/assigned"
)

var exhaustiveFuzz = flag.Bool("exhaustive", false, "Run exhaustive fuzz tests (slow).")

// Malformed UTF-8 sequences injected into random strings.
var malformedUTF8 = []string{
	"\x80",             // stray continuation byte
	"\xbf",             // stray continuation byte
	"\xc0\x80",         // overlong NUL
	"\xc1\xbf",         // overlong
	"\xe0\x80\xaf",     // overlong '/'
	"\xed\xa0\x80",     // surrogate half
	"\xed\xbf\xbf",     // surrogate half
	"\xf4\x90\x80\x80", // > U+10FFFF
	"\xf8\x88\x80\x80", // invalid leading byte
	"\xff",             // invalid byte
	"\xe4\xb8",         // truncated
	"\xf0\x9f\x98",     // truncated
	"\x00",             // terminator
}

func cryptoRandInt(t testing.TB) int64 {
	var b [8]byte
	if _, err := io.ReadFull(crand.Reader, b[:]); err != nil {
		if t != nil {
			t.Fatal(err)
		}
		panic(err)
	}
	return int64(binary.LittleEndian.Uint64(b[:]))
}

func intn(rr *rand.Rand, n int) int {
	if n <= 0 {
		return 0
	}
	return rr.Intn(n)
}

func invalidRune(rr *rand.Rand) rune {
	const surrogateMin = 0xD800
	const surrogateMax = 0xDFFF
	n := rr.Int31n(surrogateMax - surrogateMin)
	if n&1 == 0 {
		return utf8.MaxRune + n + 1
	}
	return n + surrogateMin
}

// appendInvalidRune appends the naive encoding of a surrogate half or a value
// above utf8.MaxRune, neither of which is well-formed UTF-8.
func appendInvalidRune(b []byte, r rune) []byte {
	if r > utf8.MaxRune {
		return append(b, byte(0xf0|r>>18&0x07), byte(0x80|r>>12&0x3f),
			byte(0x80|r>>6&0x3f), byte(0x80|r&0x3f))
	}
	return append(b, byte(0xe0|r>>12&0x0f), byte(0x80|r>>6&0x3f), byte(0x80|r&0x3f))
}

func randASCII(rr *rand.Rand) byte {
	return byte(rr.Intn('~'-' '+1)) + ' '
}

func randValidRune(rr *rand.Rand) rune {
	for {
		r := rune(rr.Int31n(utf8.MaxRune + 1))
		if r != 0 && utf8.ValidRune(r) {
			return r
		}
	}
}

// appendRandText appends about n bytes of random text to b. If malformed is
// true some of the text is replaced with malformed UTF-8.
func appendRandText(b []byte, rr *rand.Rand, n int, malformed bool) []byte {
	end := len(b) + n
	for len(b) < end {
		switch f := rr.Float64(); {
		case malformed && f <= 0.02:
			b = append(b, malformedUTF8[rr.Intn(len(malformedUTF8))]...)
		case malformed && f <= 0.03:
			b = appendInvalidRune(b, invalidRune(rr))
		case f <= 0.5:
			b = append(b, randASCII(rr))
		default:
			b = utf8.AppendRune(b, randValidRune(rr))
		}
	}
	return b
}

func fuzzNumCPU() int {
	numCPU := runtime.NumCPU()
	if numCPU < 1 {
		numCPU = 1
	}
	return numCPU
}

func randomTestSeeds(t *testing.T) []int64 {
	seeds := []int64{
		1,
		time.Now().UnixNano(),
		cryptoRandInt(t),
		cryptoRandInt(t),
	}
	if !testing.Short() {
		numCPU := fuzzNumCPU()
		for i := len(seeds); i < numCPU; i++ {
			seeds = append(seeds, cryptoRandInt(t))
		}
	}
	return seeds
}

type fuzzTest struct {
	*testing.T
	rr  *rand.Rand
	buf []byte // scratch space for constructing test arguments
}

func runRandomTest(t *testing.T, fn func(t *fuzzTest)) {
	if *exhaustiveFuzz && testing.Short() {
		t.Fatal(`Cannot combine "-short" and "-exhaustive" flags`)
	}
	// Count is the total number of test iterations to run.
	count := 2_500
	if testing.Short() {
		count /= 2
	}
	seeds := randomTestSeeds(t)
	if *exhaustiveFuzz {
		count = 4_000_000 / len(seeds)
		t.Logf("N: %d", count)
	}
	for _, seed := range seeds {
		seed := seed
		t.Run(fmt.Sprintf("%d", seed), func(t *testing.T) {
			t.Parallel()
			start := time.Now()
			if testing.Verbose() {
				t.Cleanup(func() { t.Logf("duration: %s", time.Since(start)) })
			}
			tt := &fuzzTest{
				T:   t,
				rr:  rand.New(rand.NewSource(seed)),
				buf: make([]byte, 0, 256),
			}
			for i := 0; i < count && !t.Failed(); i++ {
				fn(tt)
			}
		})
		if t.Failed() && testing.Short() {
			return
		}
	}
}

func VerifyUTF8Fuzz(t *testing.T, fn VerifyFunc) {
	runRandomTest(t, func(t *fuzzTest) {
		t.buf = appendRandText(t.buf[:0], t.rr, intn(t.rr, 200), true)
		s := string(t.buf)
		pos := intn(t.rr, len(s)+1)
		want := pos + ReferenceVerifyUTF8(s[pos:])
		if got := fn(s, pos); got != want {
			t.Errorf("VerifyUTF8(%q, %d) = %d; want: %d", s, pos, got, want)
		}
	})
}

func VerifyASCIIFuzz(t *testing.T, fn VerifyFunc) {
	runRandomTest(t, func(t *fuzzTest) {
		t.buf = appendRandText(t.buf[:0], t.rr, intn(t.rr, 200), t.rr.Intn(2) == 0)
		s := string(t.buf)
		pos := intn(t.rr, len(s)+1)
		want := len(s)
		if i := strings.IndexFunc(s[pos:], func(r rune) bool { return r >= utf8.RuneSelf }); i != -1 {
			want = pos + i
		}
		if got := fn(s, pos); got != want {
			t.Errorf("VerifyASCII(%q, %d) = %d; want: %d", s, pos, got, want)
		}
	})
}

// VerifyUTF8Assigned checks that every assigned Unicode code point, other
// than NUL, is consumed by the scanner.
func VerifyUTF8Assigned(t *testing.T, fn VerifyFunc) {
	rt, version := assigned.Latest()
	if rt == nil {
		t.Skip("no assigned Unicode code point data")
	}
	runes := assigned.AssignedRunes(version)
	var b strings.Builder
	for _, r := range runes {
		if r != 0 {
			b.WriteRune(r)
		}
	}
	s := b.String()
	if got := fn(s, 0); got != len(s) {
		r, _ := utf8.DecodeRuneInString(s[got:])
		t.Errorf("VerifyUTF8(assigned %s) = %d; want: %d: stopped at %U",
			version, got, len(s), r)
	}
}

// HexFuzz checks EncodeHex against encoding/hex and that DecodeHex reports
// the first invalid byte of a corrupted encoding.
func HexFuzz(t *testing.T, encode EncodeFunc, decode DecodeFunc, hexErr HexErrorFunc) {
	runRandomTest(t, func(t *fuzzTest) {
		src := make([]byte, intn(t.rr, 64))
		t.rr.Read(src)

		enc := make([]byte, len(src)*2)
		if n := encode(enc, string(src)); n != len(enc) {
			t.Fatalf("EncodeHex(%q) = %d; want: %d", src, n, len(enc))
		}
		if want := hex.EncodeToString(src); string(enc) != want {
			t.Fatalf("EncodeHex(%q) = %q; want: %q", src, enc, want)
		}
		if t.rr.Intn(2) == 0 {
			enc = []byte(swapCase(string(enc)))
		}

		dst := make([]byte, len(src))
		n, err := decode(dst, string(enc))
		if err != nil || n != len(src) || string(dst) != string(src) {
			t.Fatalf("DecodeHex(%q) = %q, %d, %v; want: %q", enc, dst[:n], n, err, src)
		}

		if len(enc) == 0 {
			return
		}
		i := t.rr.Intn(len(enc))
		var c byte
		for {
			c = byte(t.rr.Intn(256))
			if strings.IndexByte("0123456789abcdefABCDEF", c) == -1 {
				break
			}
		}
		enc[i] = c
		n, err = decode(dst, string(enc))
		off, b, ok := hexErr(err)
		if !ok || off != i || b != c {
			t.Fatalf("DecodeHex(%q) = %v; want: invalid byte %q at offset %d", enc, err, c, i)
		}
		if n != i/2 || string(dst[:n]) != string(src[:n]) {
			t.Fatalf("DecodeHex(%q): partial result = %q (%d); want: %q", enc, dst[:n], n, src[:i/2])
		}
	})
}

// CompareFuzz checks fn against the ordering of Go strings, with absent
// strings sorting first.
func CompareFuzz(t *testing.T, fn CompareFunc) {
	ref := func(a, b *string) int {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		case b == nil:
			return 1
		}
		return strings.Compare(*a, *b)
	}
	gen := func(t *fuzzTest) *string {
		if t.rr.Intn(8) == 0 {
			return nil
		}
		b := make([]byte, intn(t.rr, 6))
		for i := range b {
			b[i] = "ab\x00\xff"[t.rr.Intn(4)]
		}
		return Ptr(string(b))
	}
	runRandomTest(t, func(t *fuzzTest) {
		a, b := gen(t), gen(t)
		if got, want := fn(a, b), ref(a, b); got != want {
			t.Errorf("Compare(%s, %s) = %d; want: %d", fmtOpt(a), fmtOpt(b), got, want)
		}
	})
}
