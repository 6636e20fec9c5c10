// Copyright 2023 Charlie Vieth. All rights reserved.
// Use of this source code is governed by the MIT license.

//go:build !amd64 && !arm64 && !ppc64le && !ppc64 && !s390x
// +build !amd64,!arm64,!ppc64le,!ppc64,!s390x

package bytealg

// IndexNonASCII returns the index of the first byte in s that is not ASCII,
// or -1 if s is entirely ASCII.
func IndexNonASCII(s string) int { return indexNonASCII(s) }

// IndexByteNonASCII returns the index of the first byte in b that is not
// ASCII, or -1 if b is entirely ASCII.
func IndexByteNonASCII(b []byte) int { return indexByteNonASCII(b) }

// IndexNULOrNonASCII returns the index of the first byte in s that is either
// NUL or not ASCII, or -1 if there is none.
func IndexNULOrNonASCII(s string) int { return indexNULOrNonASCII(s) }

// IndexByteNULOrNonASCII returns the index of the first byte in b that is
// either NUL or not ASCII, or -1 if there is none.
func IndexByteNULOrNonASCII(b []byte) int { return indexByteNULOrNonASCII(b) }
