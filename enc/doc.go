// Package enc provides the encoding registry for the strand string engine.
//
// Every supported character encoding is described by an immutable Encoding
// descriptor carrying its natural unit width, fixed-width flag, and
// compatibility properties. Descriptors are looked up by stable ID or by
// IANA-style name.
//
// The package also defines the code-range lattice used throughout the engine
// to classify string content (7-bit, 8-bit, BMP, valid, broken), and a codec
// capability for per-codepoint decode/encode. The native UTF family is
// implemented directly; legacy encodings are backed by golang.org/x/text
// charmaps and transforms, with EBCDIC supplied by github.com/gdamore/encoding.
//
// Basic usage:
//
//	e := enc.UTF8.Get()
//	r, size := e.DecodeRune([]byte("héllo"))
//	// r == 'h', size == 1
package enc
