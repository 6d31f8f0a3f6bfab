package strand

import (
	"bytes"

	"github.com/dshills/strand/enc"
)

// Search operations return raw unit indexes and -1 for "not found". Region
// bounds [from, to) are unit indexes and must satisfy
// 0 <= from <= to <= Length; anything else panics.

func (s *String) checkRegion(from, to int) {
	if from < 0 || to < from || to > s.length {
		panic("strand: search region out of range")
	}
}

// codePointImpossible reports whether cp cannot occur given the haystack's
// code range. The code range is a sound upper bound even when imprecise, so
// rejection is always safe.
func (s *String) codePointImpossible(cp rune) bool {
	if cp < 0 {
		return true
	}
	switch s.CodeRange() {
	case enc.CR7Bit:
		return cp > 0x7F
	case enc.CR8Bit:
		return cp > 0xFF
	case enc.CR16Bit:
		return cp > 0xFFFF
	default:
		return false
	}
}

// IndexOfUnit returns the first index in [from, to) whose unit equals u.
func (s *String) IndexOfUnit(u uint32, from, to int) int {
	s.checkRegion(from, to)
	if from == to || !s.unitPossible(u) {
		return -1
	}
	b := s.contentView()
	if s.stride == 0 {
		if u > 0xFF {
			return -1
		}
		i := bytes.IndexByte(b[s.offset+from:s.offset+to], byte(u))
		if i < 0 {
			return -1
		}
		return from + i
	}
	for i := from; i < to; i++ {
		if readUnit(b, s.offset+(i<<s.stride), s.stride) == u {
			return i
		}
	}
	return -1
}

// LastIndexOfUnit returns the last index in [from, to) whose unit equals u.
func (s *String) LastIndexOfUnit(u uint32, from, to int) int {
	s.checkRegion(from, to)
	if from == to || !s.unitPossible(u) {
		return -1
	}
	b := s.contentView()
	if s.stride == 0 {
		if u > 0xFF {
			return -1
		}
		i := bytes.LastIndexByte(b[s.offset+from:s.offset+to], byte(u))
		if i < 0 {
			return -1
		}
		return from + i
	}
	for i := to - 1; i >= from; i-- {
		if readUnit(b, s.offset+(i<<s.stride), s.stride) == u {
			return i
		}
	}
	return -1
}

// unitPossible prefilters unit searches on the code range: a 7-bit string
// cannot contain a unit above 0x7F.
func (s *String) unitPossible(u uint32) bool {
	switch s.CodeRange() {
	case enc.CR7Bit:
		return u <= 0x7F
	case enc.CR8Bit:
		return u <= 0xFF
	case enc.CR16Bit:
		return u <= 0xFFFF
	default:
		return true
	}
}

// IndexOfCodePoint returns the unit index of the first occurrence of cp in
// [from, to), or -1.
func (s *String) IndexOfCodePoint(cp rune, from, to int) int {
	s.requireRandomAccess()
	s.checkRegion(from, to)
	if from == to || s.codePointImpossible(cp) {
		return -1
	}
	if s.singleUnitCodePoints() {
		return s.IndexOfUnit(uint32(cp), from, to)
	}
	b := s.contentView()
	for i := from; i < to; {
		r, w := s.decodeAt(b, i)
		if r == cp {
			return i
		}
		if i+w > to {
			break
		}
		i += w
	}
	return -1
}

// LastIndexOfCodePoint returns the unit index of the last occurrence of cp
// in [from, to), or -1.
func (s *String) LastIndexOfCodePoint(cp rune, from, to int) int {
	s.requireRandomAccess()
	s.checkRegion(from, to)
	if from == to || s.codePointImpossible(cp) {
		return -1
	}
	if s.singleUnitCodePoints() {
		return s.LastIndexOfUnit(uint32(cp), from, to)
	}
	b := s.contentView()
	last := -1
	for i := from; i < to; {
		r, w := s.decodeAt(b, i)
		if r == cp {
			last = i
		}
		i += w
	}
	return last
}

// IndexOfAnyCodePoint returns the unit index of the first occurrence of any
// codepoint in set within [from, to), or -1.
func (s *String) IndexOfAnyCodePoint(set []rune, from, to int) int {
	s.requireRandomAccess()
	s.checkRegion(from, to)
	if from == to || len(set) == 0 {
		return -1
	}
	any := false
	for _, cp := range set {
		if !s.codePointImpossible(cp) {
			any = true
			break
		}
	}
	if !any {
		return -1
	}
	b := s.contentView()
	for i := from; i < to; {
		r, w := s.decodeAt(b, i)
		for _, cp := range set {
			if r == cp {
				return i
			}
		}
		i += w
	}
	return -1
}

// singleUnitCodePoints reports whether every codepoint occupies exactly one
// unit, making codepoint search a unit search.
func (s *String) singleUnitCodePoints() bool {
	e := s.Encoding()
	return s.isCompact() || e.IsUTF32() || e.IsSingleByte() || s.directIndexable()
}

// IndexOf returns the unit index of the first occurrence of needle in
// [from, to), or -1. The needle must be in the same encoding as s; an empty
// needle matches at from.
func (s *String) IndexOf(needle *String, from, to int) int {
	s.checkRegion(from, to)
	s.requireSameEncoding(needle)
	if needle.length == 0 {
		return from
	}
	if needle.length > to-from || s.needleImpossible(needle) {
		return -1
	}
	b := s.contentView()
	first := needle.ReadUnit(0)
	limit := to - needle.length
	for i := from; i <= limit; i++ {
		if readUnit(b, s.offset+(i<<s.stride), s.stride) == first &&
			s.RegionEqual(i, needle, 0, needle.length) {
			return i
		}
	}
	return -1
}

// LastIndexOf returns the unit index of the last occurrence of needle in
// [from, to), or -1.
func (s *String) LastIndexOf(needle *String, from, to int) int {
	s.checkRegion(from, to)
	s.requireSameEncoding(needle)
	if needle.length == 0 {
		return to
	}
	if needle.length > to-from || s.needleImpossible(needle) {
		return -1
	}
	b := s.contentView()
	first := needle.ReadUnit(0)
	for i := to - needle.length; i >= from; i-- {
		if readUnit(b, s.offset+(i<<s.stride), s.stride) == first &&
			s.RegionEqual(i, needle, 0, needle.length) {
			return i
		}
	}
	return -1
}

// IndexOfWithMask searches for needle with a per-unit OR mask: position i
// matches when (haystack[i+j] | mask[j]) == needle[j] for all j. A mask of
// 0x20 over ASCII letters gives case-insensitive matching without
// re-encoding. mask must have needle.Length entries; nil means no mask.
func (s *String) IndexOfWithMask(needle *String, mask []uint32, from, to int) int {
	s.checkRegion(from, to)
	s.requireSameEncoding(needle)
	if mask == nil {
		return s.IndexOf(needle, from, to)
	}
	if len(mask) != needle.length {
		panic("strand: mask length does not match needle length")
	}
	if needle.length == 0 {
		return from
	}
	if needle.length > to-from {
		return -1
	}
	b := s.contentView()
	nb := needle.contentView()
	limit := to - needle.length
	for i := from; i <= limit; i++ {
		match := true
		for j := 0; j < needle.length; j++ {
			hu := readUnit(b, s.offset+((i+j)<<s.stride), s.stride)
			nu := readUnit(nb, needle.offset+(j<<needle.stride), needle.stride)
			if hu|mask[j] != nu {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

// needleImpossible rejects a search when the needle's precise code range
// exceeds the haystack's upper bound.
func (s *String) needleImpossible(needle *String) bool {
	if !needle.HasPreciseCodeRange() {
		return false
	}
	hcr, ncr := s.CodeRange(), needle.CodeRange()
	if hcr.IsBroken() || ncr.IsBroken() {
		return false
	}
	return ncr > hcr
}

// requireSameEncoding panics on a cross-encoding operation; mixing
// encodings in search is a programming error.
func (s *String) requireSameEncoding(o *String) {
	if s.encID != o.encID {
		panic("strand: operands have different encodings: " +
			s.Encoding().Name() + " vs " + o.Encoding().Name())
	}
}
