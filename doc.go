// Package strand implements an encoding-polymorphic immutable string engine.
//
// A String is an immutable sequence of text in one of the registered
// character encodings (see the enc subpackage). Storage is automatically
// compacted: UTF-16 and UTF-32 content whose codepoints fit in one or two
// bytes is stored at the smaller width and transparently widened on access.
// Concatenation and integer formatting may defer buffer construction until a
// read forces it.
//
// Strings are safe for concurrent use. Derived fields (hash, precise code
// range, codepoint length) are filled lazily and monotonically, and
// alternate representations of the same logical text (other encodings,
// native copies) are shared through a lock-free per-string cache ring, so
// repeated conversions are cheap.
//
// Basic usage:
//
//	s, _ := strand.FromBytes([]byte("héllo"), enc.UTF8.Get())
//	u16, _ := s.SwitchEncoding(enc.UTF16.Get(), strand.TranscodeLossy)
//	i := s.IndexOfCodePoint('l', 0, s.Length())
//
// A MutableString is a single-threaded builder convertible to an immutable
// String.
package strand
