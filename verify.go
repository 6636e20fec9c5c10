// Copyright 2023 Charlie Vieth. All rights reserved.
// Use of this source code is governed by the MIT license.

package strutil

import (
	"fmt"
	"unicode/utf8"

	"github.com/charlievieth/strutil/internal/bytealg"
)

// A Cursor is a read position in a string. The zero value is a cursor over
// the empty string.
//
// Cursors are values: the methods and scanners that move a cursor return the
// moved cursor and leave the receiver unchanged.
type Cursor struct {
	s   string
	pos int
}

// NewCursor returns a cursor positioned at the start of s.
func NewCursor(s string) Cursor {
	return Cursor{s: s}
}

// Pos returns the offset of the cursor from the start of its string.
func (c Cursor) Pos() int { return c.pos }

// Len returns the number of bytes remaining after the cursor.
func (c Cursor) Len() int { return len(c.s) - c.pos }

// Rest returns the unconsumed part of the string.
func (c Cursor) Rest() string { return c.s[c.pos:] }

// Done reports whether the cursor is at the end of its string.
func (c Cursor) Done() bool { return c.pos == len(c.s) }

// Peek returns the byte at the cursor. It returns false if the cursor is at
// the end of its string.
func (c Cursor) Peek() (byte, bool) {
	if c.pos < len(c.s) {
		return c.s[c.pos], true
	}
	return 0, false
}

// Advance returns the cursor moved forward by n bytes. It panics if n is
// negative or greater than c.Len().
func (c Cursor) Advance(n int) Cursor {
	if n < 0 || n > c.Len() {
		panic(fmt.Sprintf("strutil: Cursor.Advance: %d out of range [0:%d]", n, c.Len()))
	}
	c.pos += n
	return c
}

// VerifyASCII advances c over the longest run of ASCII bytes (0x00-0x7F) and
// returns the result. The returned cursor is positioned at the first byte
// with the high bit set, or at the end of the string. Calling VerifyASCII on
// its result makes no further progress.
func VerifyASCII(c Cursor) Cursor {
	if n := bytealg.IndexNonASCII(c.Rest()); n != -1 {
		c.pos += n
	} else {
		c.pos = len(c.s)
	}
	return c
}

// VerifyUTF8 advances c over the longest run of well-formed UTF-8 and returns
// the result. A NUL byte terminates the run, so on NUL-terminated text the
// returned cursor is positioned on the terminator.
//
// The returned cursor stops on the first byte of any sequence that is not
// valid UTF-8 as defined by the [unicode/utf8] package: overlong encodings,
// surrogate halves (U+D800-U+DFFF), values above U+10FFFF, truncated
// sequences and stray continuation bytes. An encoded U+FFFD is valid.
func VerifyUTF8(c Cursor) Cursor {
	s := c.s
	i := c.pos
	for i < len(s) {
		if s[i] < utf8.RuneSelf {
			if s[i] == 0 {
				break
			}
			n := bytealg.IndexNULOrNonASCII(s[i:])
			if n == -1 {
				i = len(s)
				break
			}
			i += n
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			break
		}
		i += size
	}
	c.pos = i
	return c
}

// ValidASCII reports whether s consists entirely of ASCII bytes.
func ValidASCII(s string) bool {
	return VerifyASCII(NewCursor(s)).Done()
}

// ValidUTF8 reports whether s consists entirely of well-formed UTF-8 and
// contains no NUL bytes.
func ValidUTF8(s string) bool {
	return VerifyUTF8(NewCursor(s)).Done()
}
