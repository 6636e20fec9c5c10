// Copyright 2023 Charlie Vieth. All rights reserved.
// Use of this source code is governed by the MIT license.

// Command hexconv encodes files or standard input as lowercase hex, or
// decodes hex back to binary.
//
// Usage:
//
//	hexconv [-d] [-w cols] [-o out] [-progress] [file ...]
//
// With no file, or when file is -, standard input is read. Whitespace in the
// input is ignored when decoding.
package main

import (
	"bufio"
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"

	"github.com/charlievieth/strutil/internal/hexio"
)

type input struct {
	name  string
	r     io.Reader
	size  int64 // -1 if unknown
	close func() error
}

func openInput(name string, stdin io.Reader) (*input, error) {
	if name == "-" {
		return &input{name: "<stdin>", r: stdin, size: -1, close: func() error { return nil }}, nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if !fi.Mode().IsRegular() {
		return &input{name: name, r: f, size: -1, close: f.Close}, nil
	}
	data, unmap, err := mapFile(f, fi.Size())
	if err != nil {
		// Fall back to reading the file if it cannot be mapped.
		if _, serr := f.Seek(0, io.SeekStart); serr != nil {
			f.Close()
			return nil, err
		}
		return &input{name: name, r: f, size: fi.Size(), close: f.Close}, nil
	}
	return &input{
		name: name,
		r:    bytes.NewReader(data),
		size: int64(len(data)),
		close: func() error {
			err := unmap()
			if cerr := f.Close(); err == nil {
				err = cerr
			}
			return err
		},
	}, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func newProgressBar(w io.Writer, size int64, name string) *progressbar.ProgressBar {
	return progressbar.NewOptions64(size,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(filepath.Base(name)),
		progressbar.OptionShowBytes(true),
		progressbar.OptionThrottle(0),
		progressbar.OptionClearOnFinish(),
	)
}

type converter struct {
	decode   bool
	wrap     int
	progress bool
	stderr   io.Writer
}

func (c *converter) convert(out io.Writer, in *input) error {
	r := in.r
	if c.progress && in.size > 0 {
		bar := newProgressBar(c.stderr, in.size, in.name)
		defer bar.Finish()
		r = io.TeeReader(r, bar)
	}
	if c.decode {
		_, err := io.Copy(out, hexio.NewDecoder(r))
		return err
	}
	enc := hexio.NewEncoder(out).WithWrap(c.wrap)
	if _, err := io.Copy(enc, r); err != nil {
		return err
	}
	return enc.Close()
}

func realMain(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	logger := log.New(stderr, "hexconv: ", 0)

	fs := flag.NewFlagSet("hexconv", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s [OPTION]... [FILE]...\n", fs.Name())
		fs.PrintDefaults()
	}
	decode := fs.Bool("d", false, "decode hex input")
	wrap := fs.Int("w", 0, "wrap encoded lines after `cols` hex digits (0 disables wrapping)")
	output := fs.String("o", "", "write output to `file` instead of stdout")
	progress := fs.Bool("progress", false, "always show a progress bar for inputs of known size")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *wrap < 0 {
		logger.Printf("invalid wrap width: %d", *wrap)
		return 2
	}

	var out io.Writer = stdout
	var outFile *os.File
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			logger.Println(err)
			return 1
		}
		outFile = f
		out = f
	}
	bw := bufio.NewWriterSize(out, 32*1024)

	c := &converter{
		decode:   *decode,
		wrap:     *wrap,
		progress: *progress || isTerminal(stderr),
		stderr:   stderr,
	}

	names := fs.Args()
	if len(names) == 0 {
		names = []string{"-"}
	}
	exitCode := 0
	for _, name := range names {
		in, err := openInput(name, stdin)
		if err != nil {
			logger.Println(err)
			exitCode = 1
			continue
		}
		if err := c.convert(bw, in); err != nil {
			logger.Printf("%s: %v", in.name, err)
			exitCode = 1
		}
		if err := in.close(); err != nil {
			logger.Printf("%s: %v", in.name, err)
			exitCode = 1
		}
	}

	if err := bw.Flush(); err != nil {
		logger.Println(err)
		exitCode = 1
	}
	if outFile != nil {
		if err := outFile.Close(); err != nil {
			logger.Println(err)
			exitCode = 1
		}
	}
	return exitCode
}

func main() {
	if code := realMain(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); code != 0 {
		os.Exit(code)
	}
}
