// Copyright 2023 Charlie Vieth. All rights reserved.
// Use of this source code is governed by the MIT license.

// Package bytealg provides the scanning kernels used by the strutil and
// bytutil packages.
package bytealg

import "unicode/utf8"

// MinSWAR is the input length below which the word-at-a-time kernels fall
// back to a byte loop (see TestCalibrate).
const MinSWAR = 16

func indexNonASCII(s string) int {
	for i := 0; i < len(s); i++ {
		if s[i]&utf8.RuneSelf != 0 {
			return i
		}
	}
	return -1
}

func indexByteNonASCII(b []byte) int {
	for i := 0; i < len(b); i++ {
		if b[i]&utf8.RuneSelf != 0 {
			return i
		}
	}
	return -1
}

func indexNULOrNonASCII(s string) int {
	for i := 0; i < len(s); i++ {
		if c := s[i]; c == 0 || c&utf8.RuneSelf != 0 {
			return i
		}
	}
	return -1
}

func indexByteNULOrNonASCII(b []byte) int {
	for i := 0; i < len(b); i++ {
		if c := b[i]; c == 0 || c&utf8.RuneSelf != 0 {
			return i
		}
	}
	return -1
}
