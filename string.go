package strand

import (
	"strconv"
	"sync/atomic"

	"github.com/dshills/strand/enc"
)

// String flag bits.
const (
	// flagForeignView marks a zero-copy view over a foreign (Go) string.
	flagForeignView uint8 = 1 << iota

	// flagCacheHead marks the designated anchor of a cache ring.
	flagCacheHead
)

// crPreciseBit qualifies the packed code-range cell: when set, the stored
// classification is the exact result of a full scan rather than an upper
// bound.
const crPreciseBit = 1 << 3

// String is an immutable, encoding-polymorphic string value.
//
// A published String may be read from any number of goroutines. The storage
// pointer, hash, codepoint length and precise code range are filled lazily;
// each transitions at most once from unset to set, and concurrent writers
// always compute identical values, so plain atomic stores suffice. The
// cache-ring link is the only CAS-contended field (see cache.go).
//
// Strings are compared with Equal, never ==.
type String struct {
	data   atomic.Pointer[storage]
	next   atomic.Pointer[String] // cache ring link
	offset int                    // byte offset into storage
	length int                    // logical length in stride units
	stride uint8                  // log2 bytes per unit
	encID  enc.ID
	flags  uint8

	crState atomic.Uint32 // code range | crPreciseBit
	cpLen   atomic.Int64  // 0 = unknown, else codepoint length + 1
	hash    atomic.Uint32 // 0 = unknown
}

// newString assembles a String over existing storage. Attribute cells start
// from the supplied code range; cpLen < 0 leaves the codepoint length unset.
func newString(st *storage, offset, length int, stride uint8, e *enc.Encoding, cr enc.CodeRange, precise bool, cpLen int, flags uint8) *String {
	s := &String{
		offset: offset,
		length: length,
		stride: stride,
		encID:  e.ID(),
		flags:  flags,
	}
	s.data.Store(st)
	crv := uint32(cr)
	if precise {
		crv |= crPreciseBit
	}
	s.crState.Store(crv)
	if cpLen >= 0 {
		s.cpLen.Store(int64(cpLen) + 1)
	}
	return s
}

// Encoding returns the string's encoding descriptor.
func (s *String) Encoding() *enc.Encoding { return enc.Get(s.encID) }

// Length returns the logical length in stride units: bytes for byte-based
// encodings, 16-bit units for UTF-16, codepoints for UTF-32.
func (s *String) Length() int { return s.length }

// IsEmpty reports whether the string has length zero.
func (s *String) IsEmpty() bool { return s.length == 0 }

// Stride returns log2 of the byte width of one storage unit.
func (s *String) Stride() int { return int(s.stride) }

// ByteLength returns the length of the string's content in storage bytes.
func (s *String) ByteLength() int { return s.length << s.stride }

// IsNative reports whether the string is backed by native memory.
func (s *String) IsNative() bool {
	return s.data.Load().kind == storeNative
}

// IsForeignView reports whether the string is a zero-copy view over a Go
// string.
func (s *String) IsForeignView() bool { return s.flags&flagForeignView != 0 }

// CodeRange returns the current classification of the string's content. The
// result is always a sound upper bound; it may be imprecise until a full
// scan has run (see PreciseCodeRange).
func (s *String) CodeRange() enc.CodeRange {
	return enc.CodeRange(s.crState.Load() &^ crPreciseBit)
}

// HasPreciseCodeRange reports whether CodeRange is exact.
func (s *String) HasPreciseCodeRange() bool {
	return s.crState.Load()&crPreciseBit != 0
}

// PreciseCodeRange returns the exact classification, scanning the content
// once if the stored value is only an upper bound.
func (s *String) PreciseCodeRange() enc.CodeRange {
	v := s.crState.Load()
	if v&crPreciseBit != 0 {
		return enc.CodeRange(v &^ crPreciseBit)
	}
	cpLen, cr := scanAttributes(s.Encoding(), s.contentView(), s.offset, s.length, s.stride)
	s.setAttributes(cr, cpLen)
	return cr
}

// CodePointLength returns the number of codepoints, computing it on first
// use for strings whose construction did not establish it.
func (s *String) CodePointLength() int {
	if v := s.cpLen.Load(); v != 0 {
		return int(v - 1)
	}
	cpLen, cr := scanAttributes(s.Encoding(), s.contentView(), s.offset, s.length, s.stride)
	s.setAttributes(cr, cpLen)
	return cpLen
}

// setAttributes publishes scan results. Racing writers store identical
// values, so plain stores are safe.
func (s *String) setAttributes(cr enc.CodeRange, cpLen int) {
	s.crState.Store(uint32(cr) | crPreciseBit)
	s.cpLen.Store(int64(cpLen) + 1)
}

// materialize forces lazy storage into a real buffer. The swap is monotonic:
// once storage is storeBytes it never changes again. Concurrent forcing
// builds identical buffers and either store wins harmlessly.
func (s *String) materialize() *storage {
	st := s.data.Load()
	if !st.isLazy() {
		return st
	}
	var b []byte
	switch st.kind {
	case storeLazyInt:
		b = strconv.AppendInt(make([]byte, 0, s.length), st.value, 10)
	case storeLazyConcat:
		b = make([]byte, s.length<<s.stride)
		l, r := st.left, st.right
		copyUnits(b, 0, s.stride, l.contentView(), l.offset, l.stride, l.length)
		copyUnits(b, l.length<<s.stride, s.stride, r.contentView(), r.offset, r.stride, r.length)
	}
	ns := &storage{kind: storeBytes, bytes: b}
	s.data.Store(ns)
	return ns
}

// contentView returns the raw storage bytes, forcing materialization. Unit i
// lives at byte offset s.offset + (i << s.stride).
func (s *String) contentView() []byte {
	return s.materialize().view()
}

// ReadUnit returns the unit at index i. It panics if i is out of range;
// callers are expected to stay within Length.
func (s *String) ReadUnit(i int) uint32 {
	if i < 0 || i >= s.length {
		panic("strand: unit index out of range")
	}
	return readUnit(s.contentView(), s.offset+(i<<s.stride), s.stride)
}

// Bytes returns a copy of the string's content in its encoding's canonical
// byte form. Compacted UTF-16/UTF-32 content is inflated back to the natural
// unit width.
func (s *String) Bytes() []byte {
	e := s.Encoding()
	ns := naturalStride(e)
	out := make([]byte, s.length<<ns)
	copyUnits(out, 0, ns, s.contentView(), s.offset, s.stride, s.length)
	return out
}

// WriteBytesTo copies the canonical byte form into dst and returns the
// number of bytes written. dst must hold at least Length << naturalStride
// bytes.
func (s *String) WriteBytesTo(dst []byte) int {
	e := s.Encoding()
	ns := naturalStride(e)
	n := s.length << ns
	if len(dst) < n {
		panic("strand: destination buffer too small")
	}
	copyUnits(dst, 0, ns, s.contentView(), s.offset, s.stride, s.length)
	return n
}
