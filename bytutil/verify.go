// Copyright 2023 Charlie Vieth. All rights reserved.
// Use of this source code is governed by the MIT license.

package bytutil

import (
	"fmt"
	"unicode/utf8"

	"github.com/charlievieth/strutil/internal/bytealg"
)

// A Cursor is a read position in a byte slice. The zero value is a cursor
// over an empty slice.
type Cursor struct {
	b   []byte
	pos int
}

// NewCursor returns a cursor positioned at the start of b. The cursor does
// not copy b.
func NewCursor(b []byte) Cursor {
	return Cursor{b: b}
}

// Pos returns the offset of the cursor from the start of its slice.
func (c Cursor) Pos() int { return c.pos }

// Len returns the number of bytes remaining after the cursor.
func (c Cursor) Len() int { return len(c.b) - c.pos }

// Rest returns the unconsumed part of the slice.
func (c Cursor) Rest() []byte { return c.b[c.pos:] }

// Done reports whether the cursor is at the end of its slice.
func (c Cursor) Done() bool { return c.pos == len(c.b) }

// Peek returns the byte at the cursor. It returns false if the cursor is at
// the end of its slice.
func (c Cursor) Peek() (byte, bool) {
	if c.pos < len(c.b) {
		return c.b[c.pos], true
	}
	return 0, false
}

// Advance returns the cursor moved forward by n bytes. It panics if n is
// negative or greater than c.Len().
func (c Cursor) Advance(n int) Cursor {
	if n < 0 || n > c.Len() {
		panic(fmt.Sprintf("bytutil: Cursor.Advance: %d out of range [0:%d]", n, c.Len()))
	}
	c.pos += n
	return c
}

// VerifyASCII advances c over the longest run of ASCII bytes (0x00-0x7F) and
// returns the result. The returned cursor is positioned at the first byte
// with the high bit set, or at the end of the slice.
func VerifyASCII(c Cursor) Cursor {
	if n := bytealg.IndexByteNonASCII(c.Rest()); n != -1 {
		c.pos += n
	} else {
		c.pos = len(c.b)
	}
	return c
}

// VerifyUTF8 advances c over the longest run of well-formed UTF-8 and returns
// the result. A NUL byte terminates the run. See strutil.VerifyUTF8 for the
// definition of well-formed.
func VerifyUTF8(c Cursor) Cursor {
	b := c.b
	i := c.pos
	for i < len(b) {
		if b[i] < utf8.RuneSelf {
			if b[i] == 0 {
				break
			}
			n := bytealg.IndexByteNULOrNonASCII(b[i:])
			if n == -1 {
				i = len(b)
				break
			}
			i += n
			continue
		}
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size == 1 {
			break
		}
		i += size
	}
	c.pos = i
	return c
}

// ValidASCII reports whether b consists entirely of ASCII bytes.
func ValidASCII(b []byte) bool {
	return VerifyASCII(NewCursor(b)).Done()
}

// ValidUTF8 reports whether b consists entirely of well-formed UTF-8 and
// contains no NUL bytes.
func ValidUTF8(b []byte) bool {
	return VerifyUTF8(NewCursor(b)).Done()
}
