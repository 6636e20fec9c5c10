// Copyright 2023 Charlie Vieth. All rights reserved.
// Use of this source code is governed by the MIT license.

package strutil

import (
	"errors"
	"fmt"

	"github.com/charlievieth/strutil/internal/tables"
)

// ErrHexLength is returned when decoding a hex string of odd length.
var ErrHexLength = errors.New("strutil: odd length hex string")

// An InvalidHexError reports a byte that is not a hex digit.
type InvalidHexError struct {
	Offset int  // index of the invalid byte in the input
	Byte   byte // the invalid byte
}

func (e *InvalidHexError) Error() string {
	return fmt.Sprintf("strutil: invalid hex byte %#U at offset %d", rune(e.Byte), e.Offset)
}

// EncodedLen returns the length of the hex encoding of n source bytes.
func EncodedLen(n int) int { return n * 2 }

// DecodedLen returns the length of the decoding of n hex digits.
func DecodedLen(n int) int { return n / 2 }

// EncodeHex writes the lowercase hex encoding of src to dst, high nibble
// first and without separators, and returns the number of bytes written,
// which is EncodedLen(len(src)). It panics if dst is too short.
func EncodeHex(dst []byte, src string) int {
	n := EncodedLen(len(src))
	if len(dst) < n {
		panic(fmt.Sprintf("strutil: EncodeHex: dst too short: %d < %d", len(dst), n))
	}
	for i := 0; i < len(src); i++ {
		c := src[i]
		dst[i*2] = tables.HexEncode[c>>4]
		dst[i*2+1] = tables.HexEncode[c&0x0f]
	}
	return n
}

// AppendHex appends the lowercase hex encoding of src to dst and returns the
// extended buffer.
func AppendHex(dst []byte, src string) []byte {
	for i := 0; i < len(src); i++ {
		c := src[i]
		dst = append(dst, tables.HexEncode[c>>4], tables.HexEncode[c&0x0f])
	}
	return dst
}

// EncodeHexToString returns the lowercase hex encoding of src.
func EncodeHexToString(src string) string {
	dst := make([]byte, EncodedLen(len(src)))
	EncodeHex(dst, src)
	return string(dst)
}

// DecodeHex decodes the hex digits of src into dst and returns the number of
// bytes written. Upper and lowercase digits are accepted.
//
// If src has an odd length ErrHexLength is returned and nothing is written.
// Decoding stops at the first pair containing a byte that is not a hex digit
// and an *InvalidHexError is returned; the bytes of dst preceding that pair
// hold the partial result. DecodeHex panics if len(dst) < DecodedLen(len(src)).
func DecodeHex(dst []byte, src string) (int, error) {
	if len(src)%2 != 0 {
		return 0, ErrHexLength
	}
	n := DecodedLen(len(src))
	if len(dst) < n {
		panic(fmt.Sprintf("strutil: DecodeHex: dst too short: %d < %d", len(dst), n))
	}
	for i := 0; i < n; i++ {
		c0 := src[i*2]
		c1 := src[i*2+1]
		v0 := tables.HexDecode[c0&0x7f]
		v1 := tables.HexDecode[c1&0x7f]
		if (c0|c1|v0|v1)&0x80 != 0 {
			return i, invalidHexPair(c0, c1, i*2)
		}
		dst[i] = v0<<4 | v1
	}
	return n, nil
}

// invalidHexPair returns the error for the hex pair c0c1 at offset off, at
// least one byte of which is invalid.
func invalidHexPair(c0, c1 byte, off int) error {
	if c0&0x80 != 0 || tables.HexDecode[c0&0x7f] == tables.HexInvalid {
		return &InvalidHexError{Offset: off, Byte: c0}
	}
	return &InvalidHexError{Offset: off + 1, Byte: c1}
}

// DecodeHexString returns the bytes represented by the hex string s.
func DecodeHexString(s string) ([]byte, error) {
	if len(s)%2 != 0 {
		return nil, ErrHexLength
	}
	dst := make([]byte, DecodedLen(len(s)))
	n, err := DecodeHex(dst, s)
	return dst[:n], err
}

// ValidHex reports whether s is a valid hex encoding: it has an even length
// and consists only of the digits 0-9, a-f and A-F.
func ValidHex(s string) bool {
	if len(s)%2 != 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c|tables.HexDecode[c&0x7f])&0x80 != 0 {
			return false
		}
	}
	return true
}
