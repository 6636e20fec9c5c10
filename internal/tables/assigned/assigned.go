package assigned

import (
	"sync"
	"unicode"

	"golang.org/x/text/unicode/rangetable"
)

// Versions lists, newest first, the Unicode versions that may have assigned
// code point data available.
var Versions = []string{
	"15.0.0",
	"13.0.0",
	"12.0.0",
	"11.0.0",
	"10.0.0",
	"9.0.0",
}

// Assigned returns a RangeTable with all assigned code points for a given
// Unicode version. This includes graphic, format, control, and private-use
// characters. It returns nil if the data for the given version is not
// available.
func Assigned(version string) *unicode.RangeTable {
	return rangetable.Assigned(version)
}

// Latest returns the assigned code points of the Unicode version used by the
// running Go toolchain, or of the newest version with data available if the
// toolchain's version is unknown. The version used is returned alongside the
// table, which is nil if no data is available.
func Latest() (*unicode.RangeTable, string) {
	if rt := Assigned(unicode.Version); rt != nil {
		return rt, unicode.Version
	}
	for _, v := range Versions {
		if rt := Assigned(v); rt != nil {
			return rt, v
		}
	}
	return nil, ""
}

var runes sync.Map

// AssignedRunes returns a slice of runes with all assigned code points for a
// given Unicode version. This includes graphic, format, control, and
// private-use characters. An empty slice is returned if the data for the given
// version is not available.
//
// The returned slice is shared and must not be modified.
func AssignedRunes(version string) []rune {
	if v, ok := runes.Load(version); ok {
		return v.(func() []rune)()
	}
	rt := Assigned(version)
	if rt == nil {
		return nil
	}
	var all []rune
	var once sync.Once
	fn := func() []rune {
		once.Do(func() {
			n := 0
			rangetable.Visit(rt, func(_ rune) {
				n++
			})
			all = make([]rune, 0, n)
			rangetable.Visit(rt, func(r rune) {
				all = append(all, r)
			})
		})
		return all
	}
	if v, loaded := runes.LoadOrStore(version, fn); loaded {
		return v.(func() []rune)()
	}
	return fn()
}
