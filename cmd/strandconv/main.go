// Package main is a command-line converter between the character encodings
// the strand registry supports.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/dshills/strand"
	"github.com/dshills/strand/enc"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		fromName    = flag.String("from", "UTF-8", "source encoding name or alias")
		toName      = flag.String("to", "UTF-8", "target encoding name or alias")
		lossy       = flag.Bool("lossy", false, "substitute placeholders instead of failing")
		list        = flag.Bool("list", false, "list supported encodings and exit")
		showVersion = flag.Bool("version", false, "print version and exit")
		outPath     = flag.String("o", "", "output file (default stdout)")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("strandconv %s (%s)\n", version, commit)
		return 0
	}
	if *list {
		listEncodings(os.Stdout)
		return 0
	}

	src, ok := enc.Lookup(*fromName)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown source encoding %q\n", *fromName)
		return 1
	}
	dst, ok := enc.Lookup(*toName)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown target encoding %q\n", *toName)
		return 1
	}

	in, err := readInput(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	out, err := convert(in, src, dst, *lossy)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if err := writeOutput(*outPath, out); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func convert(in []byte, src, dst *enc.Encoding, lossy bool) ([]byte, error) {
	s, err := strand.FromBytes(in, src)
	if err != nil {
		return nil, fmt.Errorf("read %s input: %w", src.Name(), err)
	}
	policy := strand.TranscodeStrict
	if lossy {
		policy = strand.TranscodeLossy
	}
	converted, err := s.SwitchEncoding(dst, policy)
	if err != nil {
		if errors.Is(err, strand.ErrUnrepresentable) {
			return nil, fmt.Errorf("content not representable in %s (use -lossy to substitute)", dst.Name())
		}
		if errors.Is(err, strand.ErrMalformedInput) {
			return nil, fmt.Errorf("input is not well-formed %s (use -lossy to substitute)", src.Name())
		}
		return nil, err
	}
	return converted.Bytes(), nil
}

func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func listEncodings(w io.Writer) {
	for id := 0; id < enc.Count(); id++ {
		e := enc.Get(enc.ID(id))
		fmt.Fprintln(w, e.Name())
	}
}
