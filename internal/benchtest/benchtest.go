// Package benchtest is used for benchmarking strutil against the Go stdlib's
// encoding/hex, unicode/utf8 and strings packages.
//
// It is not part of the strutil package since the stdlib functions do not
// share the exact semantics of strutil (NUL handling in VerifyUTF8, error
// offsets in DecodeHex). Instead they are a useful measure of the overhead of
// strutil compared to the stdlib.
package benchtest
