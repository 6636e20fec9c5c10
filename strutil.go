// Copyright 2023 Charlie Vieth. All rights reserved.
// Use of this source code is governed by the MIT license.

package strutil

import "strings"

// A NullString is a string that may be absent. The zero value is absent and
// is distinct from the empty string.
type NullString struct {
	S     string
	Valid bool // Valid is true if S is present
}

// Some returns a present NullString holding s.
func Some(s string) NullString {
	return NullString{S: s, Valid: true}
}

// Equal reports whether a and b are equal. Two absent strings are equal, an
// absent string is never equal to a present one (including ""), and present
// strings are compared byte-wise.
func Equal(a, b NullString) bool {
	if !a.Valid || !b.Valid {
		return a.Valid == b.Valid
	}
	return a.S == b.S
}

// Compare returns an integer comparing a and b lexicographically. The result
// will be 0 if a == b, -1 if a < b, and +1 if a > b. An absent string sorts
// before every present string and is equal only to another absent string.
//
// Compare defines a total order and may be used to sort or search a slice of
// NullStrings.
func Compare(a, b NullString) int {
	if !a.Valid || !b.Valid {
		switch {
		case a.Valid:
			return 1
		case b.Valid:
			return -1
		}
		return 0
	}
	return strings.Compare(a.S, b.S)
}

// Prefix reports whether s begins with prefix and, if so, returns the rest of
// s following the prefix. Only the first len(prefix) bytes of s are examined.
func Prefix(s, prefix string) (rest string, ok bool) {
	if len(s) >= len(prefix) && s[:len(prefix)] == prefix {
		return s[len(prefix):], true
	}
	return s, false
}

// PrefixIndex returns the index of the first byte of s following prefix, or
// -1 if s does not begin with prefix.
func PrefixIndex(s, prefix string) int {
	if len(s) >= len(prefix) && s[:len(prefix)] == prefix {
		return len(prefix)
	}
	return -1
}
