package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratedTablesUpToDate(t *testing.T) {
	var w bytes.Buffer
	genHexTables(&w, newHexTables())
	writeGo(&w)

	want, err := os.ReadFile(filepath.Join("..", "tables", tablesFile))
	require.NoError(t, err)
	assert.Equal(t, string(want), w.String(),
		"generated tables are stale: run `go generate` in the project root")
}

func TestVerify(t *testing.T) {
	require.NoError(t, newHexTables().verify(nil))
}

func TestVerifyCorrupt(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*hexTables)
	}{
		{"accept_invalid", func(h *hexTables) { h.Decode['g'] = 0x01 }},
		{"reject_valid", func(h *hexTables) { h.Decode['A'] = hexInvalid }},
		{"wrong_value", func(h *hexTables) { h.Decode['F'] = 0x0E }},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			tables := newHexTables()
			test.mutate(tables)
			err := tables.verify(nil)
			require.Error(t, err)
			var perr *pairError
			assert.ErrorAs(t, err, &perr)
		})
	}
}

func TestVerifyEncodeTable(t *testing.T) {
	for _, enc := range []string{
		"0123456789ABCDEF",
		"0123456789abcdf",
		"0123456789abcdee",
	} {
		tables := newHexTables()
		tables.Encode = enc
		assert.Error(t, tables.verify(nil), "encode: %q", enc)
	}
}

func TestNewHexTables(t *testing.T) {
	tables := newHexTables()
	assert.Equal(t, "0123456789abcdef", tables.Encode)
	valid := 0
	for c, v := range tables.Decode {
		if v != hexInvalid {
			valid++
			assert.Less(t, v, uint8(16), "Decode[%q]", rune(c))
		}
	}
	assert.Equal(t, 22, valid)
}

func TestWriteFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), tablesFile)
	data := []byte("package tables\n")

	require.NoError(t, writeFile(name, data))
	assert.True(t, dataEqual(name, data))

	fi1, err := os.Stat(name)
	require.NoError(t, err)
	require.NoError(t, writeFile(name, data))
	fi2, err := os.Stat(name)
	require.NoError(t, err)
	assert.True(t, os.SameFile(fi1, fi2), "unchanged data must not replace the file")

	matches, err := filepath.Glob(name + ".tmp.*")
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestDataEqualMissing(t *testing.T) {
	assert.False(t, dataEqual(filepath.Join(t.TempDir(), "missing.go"), nil))
}
