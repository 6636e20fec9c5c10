// Copyright 2023 Charlie Vieth. All rights reserved.
// Use of this source code is governed by the MIT license.

// Package hexio implements streaming lowercase hex encoding and decoding on
// top of the bytutil package.
package hexio

import (
	"errors"
	"fmt"
	"io"

	"github.com/charlievieth/strutil/bytutil"
)

const bufferSize = 4096

// ErrClosed is returned by Write after the Encoder has been closed.
var ErrClosed = errors.New("hexio: write to closed Encoder")

// An Encoder writes the lowercase hex encoding of the data written to it to
// an underlying io.Writer. Close must be called to terminate the final line.
type Encoder struct {
	w      io.Writer
	wrap   int
	col    int // number of digits on the current line
	err    error
	closed bool
	hex    [bufferSize]byte
	out    []byte
}

// NewEncoder returns an unwrapped Encoder that writes to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// WithWrap sets the maximum number of hex digits per line and returns e.
// Zero disables wrapping. WithWrap panics if n is negative.
func (e *Encoder) WithWrap(n int) *Encoder {
	if n < 0 {
		panic(fmt.Sprintf("hexio: negative wrap width: %d", n))
	}
	e.wrap = n
	return e
}

func (e *Encoder) Write(p []byte) (n int, err error) {
	if e.closed {
		return 0, ErrClosed
	}
	if e.err != nil {
		return 0, e.err
	}
	for len(p) > 0 {
		chunk := p
		if len(chunk) > len(e.hex)/2 {
			chunk = chunk[:len(e.hex)/2]
		}
		m := bytutil.EncodeHex(e.hex[:], chunk)
		if e.err = e.emit(e.hex[:m]); e.err != nil {
			return n, e.err
		}
		n += len(chunk)
		p = p[len(chunk):]
	}
	return n, nil
}

func (e *Encoder) emit(b []byte) error {
	if e.wrap == 0 {
		if len(b) > 0 {
			e.col = 1
		}
		_, err := e.w.Write(b)
		return err
	}
	e.out = e.out[:0]
	for len(b) > 0 {
		k := e.wrap - e.col
		if k > len(b) {
			k = len(b)
		}
		e.out = append(e.out, b[:k]...)
		e.col += k
		b = b[k:]
		if e.col == e.wrap {
			e.out = append(e.out, '\n')
			e.col = 0
		}
	}
	_, err := e.w.Write(e.out)
	return err
}

// Close terminates the current line, if any, with a newline. It does not
// close the underlying writer.
func (e *Encoder) Close() error {
	if e.closed {
		return e.err
	}
	e.closed = true
	if e.err == nil && e.col > 0 {
		e.col = 0
		_, e.err = e.w.Write([]byte{'\n'})
	}
	return e.err
}

// A Decoder reads hex digits from an underlying io.Reader and returns the
// decoded bytes. ASCII whitespace between digits is ignored.
//
// Invalid digits are reported as a *strutil.InvalidHexError with an Offset
// relative to the start of the stream. A stream that ends in the middle of a
// byte returns io.ErrUnexpectedEOF.
type Decoder struct {
	r      io.Reader
	err    error // read error
	bad    error // sticky decode error
	pos    int   // stream offset of the next raw byte
	digits []byte
	offs   []int // stream offset of each digit
	raw    [bufferSize]byte
}

// NewDecoder returns a Decoder that reads from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func (d *Decoder) fill() {
	var m int
	m, d.err = d.r.Read(d.raw[:])
	for i, c := range d.raw[:m] {
		if !isSpace(c) {
			d.digits = append(d.digits, c)
			d.offs = append(d.offs, d.pos+i)
		}
	}
	d.pos += m
}

func (d *Decoder) invalid(err error) error {
	var herr *bytutil.InvalidHexError
	if errors.As(err, &herr) {
		return &bytutil.InvalidHexError{Offset: d.offs[herr.Offset], Byte: herr.Byte}
	}
	return err
}

func (d *Decoder) Read(p []byte) (n int, err error) {
	if d.bad != nil {
		return 0, d.bad
	}
	for len(d.digits) < 2 && d.err == nil {
		d.fill()
	}
	if len(d.digits) < 2 {
		err := d.err
		if len(d.digits) == 1 {
			var tmp [1]byte
			if _, derr := bytutil.DecodeHex(tmp[:], []byte{d.digits[0], '0'}); derr != nil {
				d.bad = d.invalid(derr)
				return 0, d.bad
			}
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
		}
		return 0, err
	}
	if len(p) == 0 {
		return 0, nil
	}

	pairs := len(d.digits) / 2
	if pairs > len(p) {
		pairs = len(p)
	}
	n, derr := bytutil.DecodeHex(p, d.digits[:pairs*2])
	if derr != nil {
		d.bad = d.invalid(derr)
		return n, d.bad
	}
	used := copy(d.digits, d.digits[pairs*2:])
	d.digits = d.digits[:used]
	d.offs = d.offs[:copy(d.offs, d.offs[pairs*2:])]
	return n, nil
}
