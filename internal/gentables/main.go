// Copyright 2023 Charlie Vieth. All rights reserved.
// Use of this source code is governed by the MIT license.

// gentables generates the hex lookup tables used by strutil and bytutil. The
// tables must be regenerated if this code is changed (`go generate`).
package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"go/format"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/exp/slices"
	"golang.org/x/term"

	"github.com/charlievieth/strutil/internal/gen/util"
)

func init() {
	initLogs()
}

func initLogs() {
	log.SetPrefix("")
	log.SetFlags(log.Lshortfile)
	log.SetOutput(os.Stdout) // use stdout instead of stderr
}

const (
	tablesFile = "hex_tables.go"
	header     = "// Code generated by running \"go generate\" in " +
		util.ModulePath + ". DO NOT EDIT.\n\n"
	hexInvalid = 0xFF
	decodeSize = 128
)

type hexTables struct {
	Encode string
	Decode [decodeSize]uint8
}

// newHexTables builds the tables from strconv so that they cannot drift from
// the standard library's notion of a hex digit.
func newHexTables() *hexTables {
	t := new(hexTables)
	var enc []byte
	for i := uint64(0); i < 16; i++ {
		enc = strconv.AppendUint(enc, i, 16)
	}
	t.Encode = string(enc)
	for c := range t.Decode {
		t.Decode[c] = hexInvalid
		if n, err := strconv.ParseUint(string(rune(c)), 16, 8); err == nil {
			t.Decode[c] = uint8(n)
		}
	}
	return t
}

func (t *hexTables) decodePair(c0, c1 byte) (byte, bool) {
	v0 := t.Decode[c0&0x7f]
	v1 := t.Decode[c1&0x7f]
	if (c0|c1|v0|v1)&0x80 != 0 {
		return 0, false
	}
	return v0<<4 | v1, true
}

type pairError struct {
	Pair   string
	Reason string
}

func (e *pairError) Error() string {
	return fmt.Sprintf("gentables: pair %q: %s", e.Pair, e.Reason)
}

// verify exhaustively checks every pair of bytes against strconv.
func (t *hexTables) verify(bar *progressbar.ProgressBar) error {
	if len(t.Encode) != 16 {
		return fmt.Errorf("gentables: invalid encode table length: %d", len(t.Encode))
	}
	alpha := []byte(t.Encode)
	if !slices.IsSorted(alpha) || len(slices.Compact(alpha)) != 16 {
		return fmt.Errorf("gentables: encode table must be sorted and unique: %q", t.Encode)
	}
	for i := 0; i < 16; i++ {
		if n := t.Decode[t.Encode[i]]; int(n) != i {
			return fmt.Errorf("gentables: decode(encode(%d)) = %d", i, n)
		}
	}

	var buf [2]byte
	for hi := 0; hi < 256; hi++ {
		for lo := 0; lo < 256; lo++ {
			buf[0], buf[1] = byte(hi), byte(lo)
			pair := string(buf[:])
			got, ok := t.decodePair(buf[0], buf[1])
			want, err := strconv.ParseUint(pair, 16, 8)
			switch {
			case ok && err != nil:
				return &pairError{Pair: pair, Reason: "accepted invalid pair"}
			case !ok && err == nil:
				return &pairError{Pair: pair, Reason: "rejected valid pair"}
			case ok && uint64(got) != want:
				return &pairError{Pair: pair, Reason: fmt.Sprintf("decoded %#02x want %#02x", got, want)}
			}
		}
		if bar != nil {
			bar.Add(1)
		}
	}

	for i := 0; i < 256; i++ {
		got := string([]byte{t.Encode[i>>4], t.Encode[i&0x0f]})
		if want := fmt.Sprintf("%02x", i); got != want {
			return &pairError{Pair: got, Reason: "encode mismatch want " + strconv.Quote(want)}
		}
	}
	return nil
}

func genHexTables(w *bytes.Buffer, t *hexTables) {
	w.WriteString(header)
	w.WriteString("package tables\n\n")
	w.WriteString("// HexEncode is the lowercase hex alphabet indexed by nibble value.\n")
	fmt.Fprintf(w, "const HexEncode = %q\n\n", t.Encode)
	w.WriteString("// HexInvalid is the HexDecode value of bytes that are not hex digits.\n")
	fmt.Fprintf(w, "const HexInvalid = 0x%02X\n\n", hexInvalid)
	w.WriteString("// HexDecode maps the 7-bit ASCII value of a hex digit to its nibble value.\n" +
		"// All other entries are HexInvalid. Callers must mask the index to 7 bits and\n" +
		"// reject bytes with the high bit set.\n")
	fmt.Fprintf(w, "var HexDecode = [%d]uint8{\n", decodeSize)
	for i := 0; i < decodeSize; i += 16 {
		w.WriteByte('\t')
		for j, v := range t.Decode[i : i+16] {
			if j > 0 {
				w.WriteByte(' ')
			}
			fmt.Fprintf(w, "0x%02X,", v)
		}
		w.WriteByte('\n')
	}
	w.WriteString("}\n")
}

func writeTemp(name string, b []byte) {
	dir, err := os.MkdirTemp("", "strutil-gen-*")
	if err != nil {
		log.Panic(err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, b, 0644); err != nil {
		log.Panic(err)
	}
	log.Println("TMPFILE:", path)
}

func writeGo(w *bytes.Buffer) {
	src, err := format.Source(w.Bytes())
	if err != nil {
		writeTemp(tablesFile, w.Bytes())
		log.Panic(err)
	}
	w.Reset()
	w.Write(src)
}

func dataEqual(filename string, data []byte) bool {
	got, err := os.ReadFile(filename)
	return err == nil && bytes.Equal(got, data)
}

func writeFile(name string, data []byte) error {
	if dataEqual(name, data) {
		return nil
	}
	f, err := os.CreateTemp(filepath.Dir(name), filepath.Base(name)+".tmp.*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	exit := func(err error) error {
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		return exit(err)
	}
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return exit(err)
	}
	if err := os.Rename(tmp, name); err != nil {
		return exit(err)
	}
	return nil
}

func runCommand(dir string, args ...string) error {
	cmd := exec.Command("go", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		log.Printf("Error:   %v", err)
		log.Printf("Command: %s", strings.Join(cmd.Args, " "))
		log.Printf("Output:  %s", bytes.TrimSpace(out))
		return fmt.Errorf("failed to build generated file: %w", err)
	}
	return nil
}

// testBuild builds and tests the module with the generated file overlaid on
// the existing one so that a broken table is never written.
func testBuild(root, tablesPath string, data []byte, skipTests bool) error {
	dir, err := os.MkdirTemp("", "strutil.*")
	if err != nil {
		return err
	}

	tables := filepath.Join(dir, tablesFile)
	overlay := filepath.Join(dir, "overlay.json")

	type overlayJSON struct {
		Replace map[string]string
	}
	overlayData, err := json.Marshal(overlayJSON{
		Replace: map[string]string{tablesPath: tables},
	})
	if err != nil {
		return err
	}
	if err := os.WriteFile(overlay, overlayData, 0644); err != nil {
		return err
	}
	if err := os.WriteFile(tables, data, 0644); err != nil {
		return err
	}

	if err := runCommand(root, "build", "-overlay="+overlay, "./..."); err != nil {
		return err
	}
	if !skipTests {
		err := runCommand(root, "test", "-overlay="+overlay,
			".", "./bytutil", "./internal/tables")
		if err != nil {
			return err
		}
	}

	os.RemoveAll(dir) // Only remove temp dir if successful
	return nil
}

func newProgressBar(out io.Writer, isTerm bool) *progressbar.ProgressBar {
	if !isTerm {
		return progressbar.DefaultSilent(256, "verify")
	}
	return progressbar.NewOptions(256,
		progressbar.OptionSetWriter(out),
		progressbar.OptionSetDescription("verifying hex pairs"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func realMain() int {
	initLogs()

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [OPTION]...\n",
			filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}

	skipTests := flag.Bool("skip-tests", false, "skip running tests")
	skipBuild := flag.Bool("skip-build", false, "skip building the strutil packages (testing only)")
	skipVerify := flag.Bool("skip-verify", false, "skip exhaustive verification of the tables")
	dryRun := flag.Bool("dry-run", false,
		"report if generate would change the generated tables file and exit non-zero")
	outputDir := flag.String("dir", "", "write generated table files to this directory\n"+
		"(default: the internal/tables directory of the project)")
	flag.Parse()

	root, err := util.ProjectRoot()
	if err != nil {
		log.Println(err)
		return 1
	}
	dir := *outputDir
	if dir == "" {
		dir = filepath.Join(root, "internal", "tables")
	}
	if dir, err = filepath.Abs(dir); err != nil {
		log.Println(err)
		return 1
	}
	tablesPath := filepath.Join(dir, tablesFile)

	isTerm := term.IsTerminal(1)
	ansi := func(color int, s string) string {
		if !isTerm {
			return s
		}
		return fmt.Sprintf("\x1b[%d;m%s\x1b[0;m", color, s)
	}

	tables := newHexTables()
	if *skipVerify {
		log.Printf("%s gen: skipping verification\n", ansi(33, "WARN:"))
	} else {
		bar := newProgressBar(os.Stderr, term.IsTerminal(2))
		err := tables.verify(bar)
		bar.Finish()
		if err != nil {
			var perr *pairError
			if errors.As(err, &perr) {
				log.Printf("%s gen: invalid pair %s: %s", ansi(31, "ERROR:"),
					strconv.Quote(perr.Pair), perr.Reason)
			} else {
				log.Println(err)
			}
			return 1
		}
	}

	var w bytes.Buffer
	genHexTables(&w, tables)
	writeGo(&w)

	if dataEqual(tablesPath, w.Bytes()) {
		log.Printf("gen: exiting - no changes: %s\n", tablesPath)
		return 0
	}

	// For dry runs only report if the tables would be changed and
	// exit with an error if so.
	if *dryRun {
		log.Printf("%s gen: would change %s "+
			"(remove -dry-run flag to update the generated files)\n",
			ansi(33, "WARN:"), tablesPath)
		return 1
	}

	if *skipBuild {
		log.Println("gen: skipping go build")
	} else if err := testBuild(root, tablesPath, w.Bytes(), *skipTests); err != nil {
		log.Println(err)
		return 1
	}

	if err := writeFile(tablesPath, w.Bytes()); err != nil {
		log.Println(err)
		return 1
	}
	log.Printf("Successfully generated tables: %s\n", ansi(32, tablesPath))
	return 0
}

func main() {
	if code := realMain(); code != 0 {
		os.Exit(code)
	}
}
