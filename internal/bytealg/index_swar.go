// Copyright 2023 Charlie Vieth. All rights reserved.
// Use of this source code is governed by the MIT license.

//go:build amd64 || arm64 || ppc64le || ppc64 || s390x
// +build amd64 arm64 ppc64le ppc64 s390x

package bytealg

import (
	"encoding/binary"
	"math/bits"
)

const (
	lsb = 0x0101010101010101
	msb = 0x8080808080808080
)

// load64 loads 8 bytes of s starting at i in little-endian order so that the
// first byte in memory is the least significant one. The compiler merges
// this into a single load on little-endian machines.
func load64(s string, i int) uint64 {
	s = s[i : i+8]
	return uint64(s[0]) | uint64(s[1])<<8 | uint64(s[2])<<16 | uint64(s[3])<<24 |
		uint64(s[4])<<32 | uint64(s[5])<<40 | uint64(s[6])<<48 | uint64(s[7])<<56
}

// nulOrHigh returns a mask with the high bit set for every byte of v that is
// NUL or >= 0x80. Bits above the first NUL byte may be spurious, which is
// fine since only the lowest set bit is used.
func nulOrHigh(v uint64) uint64 {
	return (((v - lsb) &^ v) | v) & msb
}

func IndexNonASCII(s string) int {
	if len(s) < MinSWAR {
		return indexNonASCII(s)
	}
	i := 0
	for ; i+8 <= len(s); i += 8 {
		if m := load64(s, i) & msb; m != 0 {
			return i + bits.TrailingZeros64(m)/8
		}
	}
	if n := indexNonASCII(s[i:]); n != -1 {
		return i + n
	}
	return -1
}

func IndexByteNonASCII(b []byte) int {
	if len(b) < MinSWAR {
		return indexByteNonASCII(b)
	}
	i := 0
	for ; i+8 <= len(b); i += 8 {
		if m := binary.LittleEndian.Uint64(b[i:]) & msb; m != 0 {
			return i + bits.TrailingZeros64(m)/8
		}
	}
	if n := indexByteNonASCII(b[i:]); n != -1 {
		return i + n
	}
	return -1
}

func IndexNULOrNonASCII(s string) int {
	if len(s) < MinSWAR {
		return indexNULOrNonASCII(s)
	}
	i := 0
	for ; i+8 <= len(s); i += 8 {
		if m := nulOrHigh(load64(s, i)); m != 0 {
			return i + bits.TrailingZeros64(m)/8
		}
	}
	if n := indexNULOrNonASCII(s[i:]); n != -1 {
		return i + n
	}
	return -1
}

func IndexByteNULOrNonASCII(b []byte) int {
	if len(b) < MinSWAR {
		return indexByteNULOrNonASCII(b)
	}
	i := 0
	for ; i+8 <= len(b); i += 8 {
		if m := nulOrHigh(binary.LittleEndian.Uint64(b[i:])); m != 0 {
			return i + bits.TrailingZeros64(m)/8
		}
	}
	if n := indexByteNULOrNonASCII(b[i:]); n != -1 {
		return i + n
	}
	return -1
}
