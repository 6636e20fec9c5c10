// Package test contains the test cases and runners shared by the strutil and
// bytutil packages.
package test

import (
	"bytes"
	"encoding/hex"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"golang.org/x/exp/slices"
	"golang.org/x/text/encoding"
)

// Optional strings are represented as *string, nil being absent.
type (
	EqualFunc       func(a, b *string) bool
	CompareFunc     func(a, b *string) int
	PrefixFunc      func(s, prefix string) (string, bool)
	PrefixIndexFunc func(s, prefix string) int
	EncodeFunc      func(dst []byte, src string) int
	AppendFunc      func(dst []byte, src string) []byte
	DecodeFunc      func(dst []byte, src string) (int, error)
	ValidFunc       func(s string) bool

	// VerifyFunc runs a scanner over s starting at pos and returns the
	// position at which it stopped.
	VerifyFunc func(s string, pos int) int
)

func BytePrefixFunc(fn func(s, prefix []byte) ([]byte, bool)) PrefixFunc {
	return func(s, prefix string) (string, bool) {
		rest, ok := fn([]byte(s), []byte(prefix))
		return string(rest), ok
	}
}

func BytePrefixIndexFunc(fn func(s, prefix []byte) int) PrefixIndexFunc {
	return func(s, prefix string) int {
		return fn([]byte(s), []byte(prefix))
	}
}

func ByteEncodeFunc(fn func(dst, src []byte) int) EncodeFunc {
	return func(dst []byte, src string) int {
		return fn(dst, []byte(src))
	}
}

func ByteAppendFunc(fn func(dst, src []byte) []byte) AppendFunc {
	return func(dst []byte, src string) []byte {
		return fn(dst, []byte(src))
	}
}

func ByteDecodeFunc(fn func(dst, src []byte) (int, error)) DecodeFunc {
	return func(dst []byte, src string) (int, error) {
		return fn(dst, []byte(src))
	}
}

func ByteValidFunc(fn func(b []byte) bool) ValidFunc {
	return func(s string) bool {
		return fn([]byte(s))
	}
}

// Ptr returns a pointer to s.
func Ptr(s string) *string { return &s }

func fmtOpt(s *string) string {
	if s == nil {
		return "<nil>"
	}
	return `"` + *s + `"`
}

// optionalStrings is a set of distinct optional strings used to check the
// equality and ordering laws.
var optionalStrings = []*string{
	nil,
	Ptr(""),
	Ptr("\x00"),
	Ptr("a"),
	Ptr("a\x00"),
	Ptr("ab"),
	Ptr("b"),
	Ptr("B"),
	Ptr("abc"),
	Ptr("αβδ"),
	Ptr("\xff"),
}

type equalTest struct {
	a, b *string
	out  bool
}

var equalTests = []equalTest{
	{nil, nil, true},
	{Ptr(""), nil, false},
	{nil, Ptr(""), false},
	{Ptr(""), Ptr(""), true},
	{Ptr("a"), Ptr("a"), true},
	{Ptr("a"), Ptr("b"), false},
	{Ptr("a"), Ptr("A"), false},
	{Ptr("a"), Ptr("ab"), false},
	{Ptr("ab"), Ptr("a"), false},
	{Ptr("a\x00b"), Ptr("a\x00b"), true},
	{Ptr("a\x00b"), Ptr("a\x00c"), false},
	{Ptr("αβδ"), Ptr("αβδ"), true},
	{Ptr("αβδ"), Ptr("ΑΒΔ"), false},
}

func Equal(t *testing.T, fn EqualFunc) {
	for _, test := range equalTests {
		if out := fn(test.a, test.b); out != test.out {
			t.Errorf("Equal(%s, %s) = %t; want: %t", fmtOpt(test.a), fmtOpt(test.b), out, test.out)
		}
	}
	for i, a := range optionalStrings {
		for j, b := range optionalStrings {
			if out := fn(a, b); out != (i == j) {
				t.Errorf("Equal(%s, %s) = %t; want: %t", fmtOpt(a), fmtOpt(b), out, i == j)
			}
		}
		// Reflexive for distinct pointers to the same value.
		if a != nil {
			if !fn(a, Ptr(*a)) {
				t.Errorf("Equal(%s, copy) = false; want: true", fmtOpt(a))
			}
		}
	}
}

type compareTest struct {
	a, b *string
	out  int
}

var compareTests = []compareTest{
	{nil, nil, 0},
	{Ptr(""), nil, 1},
	{nil, Ptr(""), -1},
	{nil, Ptr("a"), -1},
	{Ptr(""), Ptr(""), 0},
	{Ptr("a"), Ptr("a"), 0},
	{Ptr("a"), Ptr("b"), -1},
	{Ptr("b"), Ptr("a"), 1},
	{Ptr("a"), Ptr("ab"), -1},
	{Ptr("ab"), Ptr("a"), 1},
	{Ptr("B"), Ptr("a"), -1},
	{Ptr("a"), Ptr("a\x00"), -1},
	{Ptr("\x7f"), Ptr("\x80"), -1},
	{Ptr("\xff"), Ptr("αβδ"), 1},
}

func Compare(t *testing.T, fn CompareFunc) {
	for _, test := range compareTests {
		if out := fn(test.a, test.b); out != test.out {
			t.Errorf("Compare(%s, %s) = %d; want: %d", fmtOpt(test.a), fmtOpt(test.b), out, test.out)
		}
	}

	// Total order: antisymmetric, transitive and consistent with equality.
	ss := optionalStrings
	for _, a := range ss {
		for _, b := range ss {
			ab := fn(a, b)
			if ab < -1 || ab > 1 {
				t.Errorf("Compare(%s, %s) = %d; want: -1, 0 or 1", fmtOpt(a), fmtOpt(b), ab)
			}
			if ba := fn(b, a); ab != -ba {
				t.Errorf("Compare(%s, %s) = %d and Compare(%[2]s, %[1]s) = %[4]d",
					fmtOpt(a), fmtOpt(b), ab, ba)
			}
			if eq := (a == nil) == (b == nil) && (a == nil || *a == *b); eq != (ab == 0) {
				t.Errorf("Compare(%s, %s) = %d; inconsistent with equality", fmtOpt(a), fmtOpt(b), ab)
			}
			for _, c := range ss {
				if ab <= 0 && fn(b, c) <= 0 && fn(a, c) > 0 {
					t.Errorf("Compare is not transitive: %s <= %s <= %s", fmtOpt(a), fmtOpt(b), fmtOpt(c))
				}
			}
		}
	}

	sorted := append([]*string(nil), ss...)
	slices.SortFunc(sorted, func(a, b *string) bool {
		return fn(a, b) < 0
	})
	if sorted[0] != nil {
		t.Errorf("absent string did not sort first: %s", fmtOpt(sorted[0]))
	}
	for i := 2; i < len(sorted); i++ {
		if *sorted[i-1] >= *sorted[i] {
			t.Errorf("not sorted: %s >= %s", fmtOpt(sorted[i-1]), fmtOpt(sorted[i]))
		}
	}
}

type prefixTest struct {
	s, prefix string
	rest      string
	ok        bool
}

var prefixTests = []prefixTest{
	{"", "", "", true},
	{"abc", "", "abc", true},
	{"abc", "a", "bc", true},
	{"abc", "abc", "", true},
	{"abc", "abcd", "abc", false},
	{"abc", "b", "abc", false},
	{"abc", "A", "abc", false},
	{"", "a", "", false},
	{"a\x00b", "a\x00", "b", true},
	{"a\x00b", "a\x00c", "a\x00b", false},
	{"αβδ", "α", "βδ", true},
	{"αβδ", "\xce", "\xb1βδ", true},
	{"prefix=value", "prefix=", "value", true},
}

func Prefix(t *testing.T, fn PrefixFunc) {
	for _, test := range prefixTests {
		rest, ok := fn(test.s, test.prefix)
		if rest != test.rest || ok != test.ok {
			t.Errorf("Prefix(%q, %q) = %q, %t; want: %q, %t",
				test.s, test.prefix, rest, ok, test.rest, test.ok)
		}
	}
}

func PrefixIndex(t *testing.T, fn PrefixIndexFunc) {
	for _, test := range prefixTests {
		want := -1
		if test.ok {
			want = len(test.prefix)
		}
		if got := fn(test.s, test.prefix); got != want {
			t.Errorf("PrefixIndex(%q, %q) = %d; want: %d", test.s, test.prefix, got, want)
		}
	}
}

type encodeTest struct {
	in  string
	out string
}

var encodeTests = []encodeTest{
	{"", ""},
	{"\x00", "00"},
	{"\xab", "ab"},
	{"\xff", "ff"},
	{"\x01\x23\x45\x67\x89\xab\xcd\xef", "0123456789abcdef"},
	{"hello", "68656c6c6f"},
	{"\x00\x7f\x80", "007f80"},
}

func EncodeHex(t *testing.T, fn EncodeFunc) {
	for _, test := range encodeTests {
		dst := make([]byte, len(test.out)+2)
		dst[len(dst)-2] = '!'
		dst[len(dst)-1] = '!'
		n := fn(dst, test.in)
		if n != len(test.out) || string(dst[:n]) != test.out {
			t.Errorf("EncodeHex(%q) = %q (%d); want: %q (%d)",
				test.in, dst[:n], n, test.out, len(test.out))
		}
		// No terminator or separator may be written past the encoding.
		if string(dst[len(dst)-2:]) != "!!" {
			t.Errorf("EncodeHex(%q): wrote past the end of the encoding: %q", test.in, dst)
		}
	}

	// Every byte value.
	src := make([]byte, 256)
	for i := range src {
		src[i] = byte(i)
	}
	dst := make([]byte, len(src)*2)
	fn(dst, string(src))
	if want := hex.EncodeToString(src); string(dst) != want {
		t.Errorf("EncodeHex(0x00..0xff) = %q; want: %q", dst, want)
	}
}

func EncodeHexPanics(t *testing.T, fn EncodeFunc) {
	defer func() {
		if e := recover(); e == nil {
			t.Error("EncodeHex: expected panic for a short dst")
		}
	}()
	fn(make([]byte, 3), "ab")
}

func AppendHex(t *testing.T, fn AppendFunc) {
	for _, test := range encodeTests {
		dst := fn([]byte("x="), test.in)
		if want := "x=" + test.out; string(dst) != want {
			t.Errorf("AppendHex(%q, %q) = %q; want: %q", "x=", test.in, dst, want)
		}
	}
}

type decodeTest struct {
	in  string
	out string
	err error
}

var decodeTests = []decodeTest{
	{"", "", nil},
	{"00", "\x00", nil},
	{"0a", "\x0a", nil},
	{"a0", "\xa0", nil},
	{"Ff", "\xff", nil},
	{"fF", "\xff", nil},
	{"0123456789abcdefABCDEF", "\x01\x23\x45\x67\x89\xab\xcd\xef\xab\xcd\xef", nil},
	{"0", "", errLength},
	{"abc", "", errLength},
	{"G0", "", &invalidHex{0, 'G'}},
	{"0G", "", &invalidHex{1, 'G'}},
	{"a\x01", "", &invalidHex{1, 0x01}},
	{"\x01a", "", &invalidHex{0, 0x01}},
	{"00zz", "\x00", &invalidHex{2, 'z'}},
	{"0011\xb0", "", errLength},
	{"0011\xb011", "\x00\x11", &invalidHex{4, 0xb0}},
	// 0xb0 & 0x7f == '0': the high bit must not be masked away.
	{"\xb0\xb0", "", &invalidHex{0, 0xb0}},
	{"0\xc1", "", &invalidHex{1, 0xc1}},
	{"g0", "", &invalidHex{0, 'g'}},
	{" 0", "", &invalidHex{0, ' '}},
	{"0x", "", &invalidHex{1, 'x'}},
}

var errLength = errors.New("odd length")

// invalidHex describes an expected *InvalidHexError.
type invalidHex struct {
	offset int
	b      byte
}

func (e *invalidHex) Error() string { return "invalid hex" }

// HexErrorFunc extracts the offset and byte of an *InvalidHexError. It
// returns false if err is not an *InvalidHexError.
type HexErrorFunc func(err error) (offset int, b byte, ok bool)

func DecodeHex(t *testing.T, fn DecodeFunc, lengthErr error, hexErr HexErrorFunc) {
	for _, test := range decodeTests {
		dst := make([]byte, len(test.in)/2)
		n, err := fn(dst, test.in)
		switch want := test.err.(type) {
		case nil:
			if err != nil {
				t.Errorf("DecodeHex(%q): unexpected error: %v", test.in, err)
				continue
			}
		case *invalidHex:
			off, b, ok := hexErr(err)
			if !ok || off != want.offset || b != want.b {
				t.Errorf("DecodeHex(%q): error = %v; want: invalid byte %q at offset %d",
					test.in, err, want.b, want.offset)
			}
		default:
			if !errors.Is(err, lengthErr) {
				t.Errorf("DecodeHex(%q): error = %v; want: %v", test.in, err, lengthErr)
			}
			if n != 0 {
				t.Errorf("DecodeHex(%q) = %d; want: 0 for an odd length input", test.in, n)
			}
		}
		if got := string(dst[:n]); got != test.out {
			t.Errorf("DecodeHex(%q) = %q; want: %q", test.in, got, test.out)
		}
	}
}

func DecodeHexPanics(t *testing.T, fn DecodeFunc) {
	defer func() {
		if e := recover(); e == nil {
			t.Error("DecodeHex: expected panic for a short dst")
		}
	}()
	fn(make([]byte, 1), "abcd")
}

// isHexString reports whether s is a valid hex encoding using a different
// method than the one under test.
func isHexString(s string) bool {
	if len(s)%2 != 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if strings.IndexByte("0123456789abcdefABCDEF", s[i]) == -1 {
			return false
		}
	}
	return true
}

// HexRoundTrip checks that the validity of a hex string is decided by its
// length and alphabet alone and that decoding followed by encoding preserves
// the input modulo case.
func HexRoundTrip(t *testing.T, valid ValidFunc, decode DecodeFunc, encode EncodeFunc) {
	inputs := []string{
		"0", "00", "0a", "a0", "0123456789abcdefABCDEF", "a\x01", "\x01a",
		"DEADbeef", "deadbee", "zz", "0\x80", "\x80\x80", "",
	}
	for c := 0; c < 256; c++ {
		inputs = append(inputs, string([]byte{byte(c), 'a'}), string([]byte{'A', byte(c)}))
	}
	for _, s := range inputs {
		want := isHexString(s)
		if got := valid(s); got != want {
			t.Errorf("ValidHex(%q) = %t; want: %t", s, got, want)
		}
		raw := make([]byte, len(s)/2)
		_, err := decode(raw, s)
		if (err == nil) != want {
			t.Errorf("DecodeHex(%q): error = %v; want valid: %t", s, err, want)
		}
		if err != nil {
			continue
		}
		enc := make([]byte, len(s))
		encode(enc, string(raw))
		if !strings.EqualFold(string(enc), s) {
			t.Errorf("EncodeHex(DecodeHex(%q)) = %q", s, enc)
		}
		if string(enc) != strings.ToLower(s) {
			t.Errorf("EncodeHex(DecodeHex(%q)) = %q; want: %q", s, enc, strings.ToLower(s))
		}

		// Case-flipped input decodes to the same bytes.
		flipped := make([]byte, len(raw))
		if _, err := decode(flipped, swapCase(s)); err != nil || !bytes.Equal(flipped, raw) {
			t.Errorf("DecodeHex(%q) = %q, %v; want: %q", swapCase(s), flipped, err, raw)
		}
	}
}

func swapCase(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' {
			b[i] = c ^ ' '
		}
	}
	return string(b)
}

func asciiTable() string {
	b := make([]byte, 0x100)
	for i := range b {
		b[i] = byte(i)
	}
	return string(b)
}

type verifyTest struct {
	s    string
	pos  int
	want int
}

var verifyASCIITests = []verifyTest{
	{"", 0, 0},
	{"abc", 0, 3},
	{"abc", 3, 3},
	{"\x00abc", 0, 4},
	{"ab\x80c", 0, 2},
	{"ab\x80c", 2, 2},
	{"ab\x80c", 3, 4},
	{"\xff", 0, 0},
	{"héllo", 0, 1},
	{strings.Repeat("a", 100) + "\x80", 0, 100},
	{strings.Repeat("a", 100) + "\x80", 7, 100},
}

func VerifyASCII(t *testing.T, fn VerifyFunc) {
	for _, test := range verifyASCIITests {
		if got := fn(test.s, test.pos); got != test.want {
			t.Errorf("VerifyASCII(%q, %d) = %d; want: %d", test.s, test.pos, got, test.want)
		}
	}

	// A buffer holding every byte value in order stops at 0x80 with 128
	// bytes remaining, and makes no progress when called again.
	s := asciiTable()
	pos := fn(s, 0)
	if pos != 0x80 || len(s)-pos != 128 || s[pos] != 0x80 {
		t.Errorf("VerifyASCII(0x00..0xff) = %d (remaining %d); want: %d (remaining %d)",
			pos, len(s)-pos, 0x80, 128)
	}
	if again := fn(s, pos); again != pos {
		t.Errorf("VerifyASCII(0x00..0xff, %d) = %d; want: %d", pos, again, pos)
	}
	if next := fn(s, pos+1); next != pos+1 {
		t.Errorf("VerifyASCII(0x00..0xff, %d) = %d; want: %d", pos+1, next, pos+1)
	}
}

// MultiScriptText is well-formed Greek, Czech and Chinese text.
const MultiScriptText = "Η Ελλάδα ή Ελλάς, επίσημα γνωστή ως Ελληνική Δημοκρατία, " +
	"είναι χώρα της νοτιοανατολικής Ευρώπης στο νοτιότερο άκρο της Βαλκανικής " +
	"χερσονήσου. Συνορεύει στα βορειοδυτικά με την Αλβανία, στα βόρεια με την " +
	"πρώην Γιουγκοσλαβική Δημοκρατία της Μακεδονίας και τη Βουλγαρία και στα " +
	"βορειοανατολικά με την Τουρκία. Česko, úředním názvem Česká republika, je " +
	"stát ve střední Evropě. Jako formálně svrchovaný národní stát vznikla " +
	"tehdejší Česká socialistická republika 1. ledna 1969 v rámci federalizace " +
	"Československa. Od 6. března 1990 nese tento stát název Česká republika. " +
	"中華民國十年，中國共產黨立於上海。初附於中國國民黨，黨人得以兼國民黨，" +
	"共理中華民國廣州軍政府，同謀北伐。其後國民黨人以共產黨人以公務營黨務，" +
	"既下南京，蔣中正令捕殺共產黨人。遂奔江西。十六年起義於南昌，中國工農紅軍是立"

var verifyUTF8Tests = []verifyTest{
	{"", 0, 0},
	{"abc", 0, 3},
	{"a\x00b", 0, 1},
	{"a\x00b", 2, 3},
	{"\x00", 0, 0},
	{"héllo", 0, 6},
	{"世界", 0, 6},
	{"世界", 3, 6},
	{"\U0001F600", 0, 4},
	{"�", 0, 3},
	{"\U0010FFFF", 0, 4},

	// Stray continuation bytes.
	{"\x80", 0, 0},
	{"ab\xbfcd", 0, 2},
	{"世界", 1, 1},

	// Truncated sequences.
	{"\xc3", 0, 0},
	{"a\xe4\xb8", 0, 1},
	{"a\xf0\x9f\x98", 0, 1},
	{"\xe4\xb8a", 0, 0},

	// Overlong encodings.
	{"\xc0\x80", 0, 0},
	{"\xc1\xbf", 0, 0},
	{"a\xe0\x80\xaf", 0, 1},
	{"\xf0\x80\x80\xaf", 0, 0},

	// Surrogate halves.
	{"a\xed\xa0\x80", 0, 1},
	{"\xed\xbf\xbf", 0, 0},
	{"\xed\x9f\xbf", 0, 3}, // U+D7FF

	// Above U+10FFFF.
	{"\xf4\x90\x80\x80", 0, 0},
	{"\xf5\x80\x80\x80", 0, 0},
	{"\xff", 0, 0},
	{"\xfe", 0, 0},

	{strings.Repeat("a", 64) + "\x00", 0, 64},
	{strings.Repeat("a", 64) + "\x80", 0, 64},
	{strings.Repeat("αβ", 32) + "\xce", 0, 128},
}

func VerifyUTF8(t *testing.T, fn VerifyFunc) {
	for _, test := range verifyUTF8Tests {
		if got := fn(test.s, test.pos); got != test.want {
			t.Errorf("VerifyUTF8(%q, %d) = %d; want: %d", test.s, test.pos, got, test.want)
		}
		if want := ReferenceVerifyUTF8(test.s[test.pos:]) + test.pos; want != test.want {
			t.Errorf("invalid test: ReferenceVerifyUTF8(%q) = %d; want: %d", test.s, want, test.want)
		}
	}

	// NUL-terminated multi-script text is consumed up to the terminator.
	s := MultiScriptText + "\x00"
	pos := fn(s, 0)
	if len(s)-pos != 1 || pos != len(MultiScriptText) || s[pos] != 0 {
		t.Errorf("VerifyUTF8(MultiScriptText+NUL) = %d (remaining %d); want: %d (remaining %d)",
			pos, len(s)-pos, len(MultiScriptText), 1)
	}
	if again := fn(s, pos); again != pos {
		t.Errorf("VerifyUTF8(MultiScriptText+NUL, %d) = %d; want: %d", pos, again, pos)
	}

	// Every ASCII-compatible prefix of the text stops at the first
	// incomplete rune.
	for i := 0; i < len(MultiScriptText); i++ {
		prefix := MultiScriptText[:i]
		want := i
		for want > 0 && !utf8.ValidString(prefix[:want]) {
			want--
		}
		if got := fn(prefix, 0); got != want {
			t.Errorf("VerifyUTF8(MultiScriptText[:%d]) = %d; want: %d", i, got, want)
		}
	}
}

// ReferenceVerifyUTF8 returns the length of the longest prefix of s that is
// well-formed UTF-8 and contains no NUL, using x/text's UTF-8 validator.
func ReferenceVerifyUTF8(s string) int {
	if i := strings.IndexByte(s, 0); i != -1 {
		s = s[:i]
	}
	src := []byte(s)
	dst := make([]byte, len(src))
	_, n, err := encoding.UTF8Validator.Transform(dst, src, true)
	if err == nil {
		return len(src)
	}
	return n
}
