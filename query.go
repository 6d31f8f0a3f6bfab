package strand

import (
	"bytes"

	"github.com/dshills/strand/enc"
)

// ErrorHandling selects how decode errors surface during reads and
// iteration.
type ErrorHandling uint8

const (
	// BestEffort substitutes the encoding family's placeholder for
	// malformed sequences and continues.
	BestEffort ErrorHandling = iota

	// ReturnNegative yields enc.Invalid for malformed sequences and
	// enc.IncompleteRune(n) for sequences truncated at string end.
	ReturnNegative
)

// hashZeroSubstitute replaces a computed hash of zero, since zero is the
// "unknown" sentinel in the hash cell.
const hashZeroSubstitute = 0x85EBCA6B

// HashCode returns the content hash, computing and caching it on first use.
// Concurrent first computations are safe: the hash is a pure function of the
// immutable content and the cache write is idempotent.
func (s *String) HashCode() uint32 {
	if h := s.hash.Load(); h != 0 {
		return h
	}
	b := s.contentView()
	var h uint32
	for i := 0; i < s.length; i++ {
		h = h*31 + readUnit(b, s.offset+(i<<s.stride), s.stride)
	}
	if h == 0 {
		h = hashZeroSubstitute
	}
	s.hash.Store(h)
	return h
}

// Equal reports whether two strings hold the same unit content in the same
// encoding. Strings in different encodings are equal only when both are
// ASCII-compatible and both contain pure 7-bit content.
func (s *String) Equal(o *String) bool {
	if s == o {
		return true
	}
	if s.encID != o.encID {
		if !s.Encoding().ASCIICompatible() || !o.Encoding().ASCIICompatible() {
			return false
		}
		if !s.PreciseCodeRange().Is7Bit() || !o.PreciseCodeRange().Is7Bit() {
			return false
		}
	}
	if s.length != o.length {
		return false
	}
	if s.length == 0 {
		return true
	}
	if h1, h2 := s.hash.Load(), o.hash.Load(); h1 != 0 && h2 != 0 && h1 != h2 {
		return false
	}
	if s.HasPreciseCodeRange() && o.HasPreciseCodeRange() && s.CodeRange() != o.CodeRange() {
		return false
	}
	sb, ob := s.contentView(), o.contentView()
	// First-unit fast path rejects most mismatches before the general loop.
	if readUnit(sb, s.offset, s.stride) != readUnit(ob, o.offset, o.stride) {
		return false
	}
	if s.stride == o.stride {
		n := s.length << s.stride
		return bytes.Equal(sb[s.offset:s.offset+n], ob[o.offset:o.offset+n])
	}
	for i := 1; i < s.length; i++ {
		if readUnit(sb, s.offset+(i<<s.stride), s.stride) != readUnit(ob, o.offset+(i<<o.stride), o.stride) {
			return false
		}
	}
	return true
}

// RegionEqual reports whether length units starting at sFrom in s equal
// length units starting at oFrom in o. Out-of-bounds regions compare false.
func (s *String) RegionEqual(sFrom int, o *String, oFrom, length int) bool {
	if length == 0 {
		return true
	}
	if length < 0 || sFrom < 0 || oFrom < 0 || sFrom+length > s.length || oFrom+length > o.length {
		return false
	}
	sb, ob := s.contentView(), o.contentView()
	for i := 0; i < length; i++ {
		if readUnit(sb, s.offset+((sFrom+i)<<s.stride), s.stride) !=
			readUnit(ob, o.offset+((oFrom+i)<<o.stride), o.stride) {
			return false
		}
	}
	return true
}

// CompareUnits compares two strings unit-for-unit, returning -1, 0 or 1.
// The shorter string orders first on a shared prefix.
func (s *String) CompareUnits(o *String) int {
	sb, ob := s.contentView(), o.contentView()
	n := s.length
	if o.length < n {
		n = o.length
	}
	for i := 0; i < n; i++ {
		su := readUnit(sb, s.offset+(i<<s.stride), s.stride)
		ou := readUnit(ob, o.offset+(i<<o.stride), o.stride)
		if su != ou {
			if su < ou {
				return -1
			}
			return 1
		}
	}
	switch {
	case s.length < o.length:
		return -1
	case s.length > o.length:
		return 1
	default:
		return 0
	}
}

// isCompact reports whether the string stores below its encoding's natural
// stride, in which case every unit is a whole Latin-1/BMP codepoint.
func (s *String) isCompact() bool {
	return s.stride < naturalStride(s.Encoding())
}

// requireRandomAccess panics for stateful stream encodings, whose bytes
// have no codepoint boundaries at arbitrary offsets; convert first.
func (s *String) requireRandomAccess() {
	if s.Encoding().StreamOnly() {
		panic("strand: random access into stateful encoding " + s.Encoding().Name())
	}
}

// decodeAt decodes the codepoint at raw unit index i, returning the
// codepoint (or a negative sentinel) and its width in units. The caller
// guarantees 0 <= i < length.
func (s *String) decodeAt(b []byte, i int) (rune, int) {
	e := s.Encoding()
	if s.isCompact() || (e.IsUTF32() && s.stride == 2) {
		u := readUnit(b, s.offset+(i<<s.stride), s.stride)
		if e.IsUTF32() && s.stride == 2 {
			if u > 0x10FFFF || (u >= 0xD800 && u <= 0xDFFF) {
				return enc.Invalid, 1
			}
		}
		return rune(u), 1
	}
	if e.IsUTF16() {
		// stride 1: decode on 16-bit units with surrogate pairing.
		u := readUnit(b, s.offset+(i<<1), 1)
		switch {
		case u < 0xD800 || u > 0xDFFF:
			return rune(u), 1
		case u >= 0xDC00:
			return enc.Invalid, 1
		}
		if i+1 >= s.length {
			return enc.IncompleteRune(1), 1
		}
		lo := readUnit(b, s.offset+((i+1)<<1), 1)
		if lo < 0xDC00 || lo > 0xDFFF {
			return enc.Invalid, 1
		}
		return 0x10000 + (rune(u)-0xD800)<<10 + (rune(lo) - 0xDC00), 2
	}
	// Byte-based encodings: units are bytes.
	r, size := e.DecodeRune(b[s.offset+i : s.offset+s.length])
	if size <= 0 {
		size = 1
	}
	return r, size
}

// applyErrorHandling maps a negative decode result according to policy.
func (s *String) applyErrorHandling(b []byte, i int, r rune, eh ErrorHandling) rune {
	if r >= 0 || eh == ReturnNegative {
		return r
	}
	e := s.Encoding()
	if e.IsUTF16() && s.stride == 1 {
		// Best-effort UTF-16 echoes the raw unit.
		return rune(readUnit(b, s.offset+(i<<1), 1))
	}
	if e.IsUTF32() && s.stride == 2 {
		return rune(int32(readUnit(b, s.offset+(i<<2), 2)))
	}
	return e.Placeholder()
}

// CodePointAtUnitIndex decodes the codepoint starting at raw unit index i.
func (s *String) CodePointAtUnitIndex(i int, eh ErrorHandling) rune {
	s.requireRandomAccess()
	if i < 0 || i >= s.length {
		panic("strand: unit index out of range")
	}
	b := s.contentView()
	r, _ := s.decodeAt(b, i)
	return s.applyErrorHandling(b, i, r, eh)
}

// CodePointAtIndex decodes the codepoint at codepoint index idx, walking
// from the string start unless the encoding permits direct indexing.
func (s *String) CodePointAtIndex(idx int, eh ErrorHandling) rune {
	return s.CodePointAtUnitIndex(s.CodePointIndexToUnitIndex(idx), eh)
}

// CodePointIndexToUnitIndex translates a codepoint index to the raw unit
// index where that codepoint starts. Fixed-width and compacted content
// translate in O(1); otherwise the string is walked forward.
func (s *String) CodePointIndexToUnitIndex(idx int) int {
	s.requireRandomAccess()
	if idx < 0 || idx >= s.CodePointLength() {
		panic("strand: codepoint index out of range")
	}
	if s.directIndexable() {
		return idx
	}
	b := s.contentView()
	unit := 0
	for n := 0; n < idx; n++ {
		_, w := s.decodeAt(b, unit)
		unit += w
	}
	return unit
}

// UnitIndexToCodePointIndex translates a unit index on a codepoint boundary
// to the corresponding codepoint index. A unit index inside a multi-unit
// sequence rounds up to the boundary that follows it.
func (s *String) UnitIndexToCodePointIndex(unit int) int {
	s.requireRandomAccess()
	if unit < 0 || unit > s.length {
		panic("strand: unit index out of range")
	}
	if s.directIndexable() {
		return unit
	}
	b := s.contentView()
	cp, i := 0, 0
	for i < unit {
		_, w := s.decodeAt(b, i)
		i += w
		cp++
	}
	return cp
}

// directIndexable reports whether unit index and codepoint index coincide.
func (s *String) directIndexable() bool {
	e := s.Encoding()
	if s.isCompact() || e.IsUTF32() {
		return true
	}
	if e.IsSingleByte() {
		return true
	}
	// A precise sub-surrogate code range makes UTF-8/UTF-16 strings
	// effectively fixed-width too.
	v := s.crState.Load()
	if v&crPreciseBit == 0 {
		return false
	}
	cr := enc.CodeRange(v &^ crPreciseBit)
	switch {
	case e.IsUTF16():
		return cr.Is16Bit()
	case s.encID == enc.UTF8:
		return cr.Is7Bit()
	default:
		return false
	}
}
