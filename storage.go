package strand

import (
	"github.com/dshills/strand/enc"
	"github.com/dshills/strand/nmem"
)

// storageKind tags the variant held by a storage value.
type storageKind uint8

const (
	// storeBytes is an owned (or shared, for views) managed byte buffer.
	storeBytes storageKind = iota

	// storeNative is a buffer addressed through the nmem capability.
	storeNative

	// storeLazyInt defers the decimal digit buffer of an integer until the
	// first materializing read.
	storeLazyInt

	// storeLazyConcat defers the merged buffer of a concatenation until the
	// first materializing read.
	storeLazyConcat
)

// storage is the closed sum of backing-store variants. Exactly the fields of
// the tagged kind are meaningful; dispatch on kind is always a single switch.
// A String's storage pointer is swapped at most once, from a lazy variant to
// storeBytes, when materialization is forced.
type storage struct {
	kind   storageKind
	bytes  []byte
	native *nmem.Buffer
	value  int64   // storeLazyInt
	left   *String // storeLazyConcat
	right  *String
}

// isLazy reports whether a read requires materialization first.
func (st *storage) isLazy() bool {
	return st.kind == storeLazyInt || st.kind == storeLazyConcat
}

// view returns the raw backing bytes of a materialized storage.
func (st *storage) view() []byte {
	switch st.kind {
	case storeBytes:
		return st.bytes
	case storeNative:
		return st.native.Bytes()
	default:
		panic("strand: view of unmaterialized storage")
	}
}

// Stride selection. A stride is log2 of the byte width of one storage unit.
// Only the canonical UTF-16 and UTF-32 encodings compact below their natural
// width; every other encoding stores at its natural stride.

// naturalStride returns the stride implied by an encoding's unit width.
func naturalStride(e *enc.Encoding) uint8 {
	if !e.SupportsCompaction() {
		return 0
	}
	if e.IsUTF32() {
		return 2
	}
	return 1
}

// strideFromCodeRange returns the minimal stride able to represent content
// classified cr in encoding e.
func strideFromCodeRange(cr enc.CodeRange, e *enc.Encoding) uint8 {
	switch {
	case e.IsUTF16():
		if cr.Is8Bit() {
			return 0
		}
		return 1
	case e.IsUTF32():
		switch {
		case cr.Is8Bit():
			return 0
		case cr.Is16Bit():
			return 1
		default:
			return 2
		}
	default:
		return 0
	}
}

// readUnit loads one unit at the given byte offset. This three-way dispatch
// is the innermost primitive of the engine; units are stored little-endian.
func readUnit(b []byte, byteOff int, stride uint8) uint32 {
	switch stride {
	case 0:
		return uint32(b[byteOff])
	case 1:
		return uint32(b[byteOff]) | uint32(b[byteOff+1])<<8
	default:
		return uint32(b[byteOff]) | uint32(b[byteOff+1])<<8 |
			uint32(b[byteOff+2])<<16 | uint32(b[byteOff+3])<<24
	}
}

// writeUnit stores one unit at the given byte offset.
func writeUnit(b []byte, byteOff int, stride uint8, u uint32) {
	switch stride {
	case 0:
		b[byteOff] = byte(u)
	case 1:
		b[byteOff] = byte(u)
		b[byteOff+1] = byte(u >> 8)
	default:
		b[byteOff] = byte(u)
		b[byteOff+1] = byte(u >> 8)
		b[byteOff+2] = byte(u >> 16)
		b[byteOff+3] = byte(u >> 24)
	}
}

// copyUnits copies length units from src to dst, inflating or deflating
// between strides as needed. Equal strides reduce to a byte copy. Deflation
// assumes the source units fit the destination stride; the caller guarantees
// that via code-range-driven stride selection.
func copyUnits(dst []byte, dstOff int, dstStride uint8, src []byte, srcOff int, srcStride uint8, length int) {
	if dstStride == srcStride {
		n := length << srcStride
		copy(dst[dstOff:dstOff+n], src[srcOff:srcOff+n])
		return
	}
	for i := 0; i < length; i++ {
		writeUnit(dst, dstOff+(i<<dstStride), dstStride, readUnit(src, srcOff+(i<<srcStride), srcStride))
	}
}
