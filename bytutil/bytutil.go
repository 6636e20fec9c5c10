// Copyright 2023 Charlie Vieth. All rights reserved.
// Use of this source code is governed by the MIT license.

// Package bytutil provides the primitives of the strutil package for byte
// slices: null-safe equality and ordering, prefix matching, a fixed-width
// lowercase hex codec, and ASCII and UTF-8 validation scanners.
package bytutil

import "bytes"

// A NullBytes is a byte slice that may be absent. The zero value is absent.
// A present NullBytes with a nil or empty B is the empty string, which is
// distinct from absent.
type NullBytes struct {
	B     []byte
	Valid bool // Valid is true if B is present
}

// Some returns a present NullBytes holding b.
func Some(b []byte) NullBytes {
	return NullBytes{B: b, Valid: true}
}

// Equal reports whether a and b are equal. Two absent values are equal, an
// absent value is never equal to a present one (including an empty one), and
// present values are compared byte-wise.
func Equal(a, b NullBytes) bool {
	if !a.Valid || !b.Valid {
		return a.Valid == b.Valid
	}
	return bytes.Equal(a.B, b.B)
}

// Compare returns an integer comparing a and b lexicographically. The result
// will be 0 if a == b, -1 if a < b, and +1 if a > b. An absent value sorts
// before every present value and is equal only to another absent value.
func Compare(a, b NullBytes) int {
	if !a.Valid || !b.Valid {
		switch {
		case a.Valid:
			return 1
		case b.Valid:
			return -1
		}
		return 0
	}
	return bytes.Compare(a.B, b.B)
}

// Prefix reports whether s begins with prefix and, if so, returns the rest of
// s following the prefix. The returned slice shares the memory of s.
func Prefix(s, prefix []byte) (rest []byte, ok bool) {
	if len(s) >= len(prefix) && string(s[:len(prefix)]) == string(prefix) {
		return s[len(prefix):], true
	}
	return s, false
}

// PrefixIndex returns the index of the first byte of s following prefix, or
// -1 if s does not begin with prefix.
func PrefixIndex(s, prefix []byte) int {
	if len(s) >= len(prefix) && string(s[:len(prefix)]) == string(prefix) {
		return len(prefix)
	}
	return -1
}
