package strand

import (
	"strconv"
	"unsafe"

	"github.com/dshills/strand/enc"
	"github.com/dshills/strand/nmem"
)

// Option is a functional option for string construction.
type Option func(*buildOptions)

type buildOptions struct {
	shared  bool // adopt the caller's byte slice instead of copying
	known   bool // caller supplied attributes
	knownCR enc.CodeRange
	knownCP int
}

// WithSharedBytes adopts the caller's byte slice as storage without a
// defensive copy. The caller must not mutate the slice afterwards.
func WithSharedBytes() Option {
	return func(o *buildOptions) { o.shared = true }
}

// WithKnownAttributes supplies a precise code range and codepoint length
// computed by the caller, skipping the construction scan. The values are
// cross-checked when the engine is built with the strandchecks tag.
func WithKnownAttributes(cr enc.CodeRange, codePointLength int) Option {
	return func(o *buildOptions) {
		o.known = true
		o.knownCR = cr
		o.knownCP = codePointLength
	}
}

func applyOptions(opts []Option) buildOptions {
	var o buildOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

var emptyTable = func() []*String {
	t := make([]*String, enc.Count())
	for id := 0; id < enc.Count(); id++ {
		e := enc.Get(enc.ID(id))
		st := &storage{kind: storeBytes}
		t[id] = newString(st, 0, 0, strideFromCodeRange(enc.CR7Bit, e), e, enc.CR7Bit, true, 0, flagCacheHead)
	}
	return t
}()

// Empty returns the canonical empty string in the given encoding.
func Empty(e *enc.Encoding) *String {
	return emptyTable[e.ID()]
}

// FromBytes builds a string from content in e's natural byte form. For the
// canonical UTF-16 and UTF-32 encodings the bytes are little-endian unit
// serializations and the result is compacted when its code range allows.
//
// The bytes are copied unless WithSharedBytes is given. The byte length must
// be a multiple of the encoding's unit width or ErrMalformedLength is
// returned.
func FromBytes(b []byte, e *enc.Encoding, opts ...Option) (*String, error) {
	if len(b) == 0 {
		return Empty(e), nil
	}
	if len(b) > maxByteLength {
		return nil, ErrTooLarge
	}
	if len(b)%e.UnitWidth() != 0 {
		return nil, ErrMalformedLength
	}
	o := applyOptions(opts)

	if e.SupportsCompaction() {
		length := len(b) / e.UnitWidth()
		ns := naturalStride(e)
		cpLen, cr := o.knownCP, o.knownCR
		if !o.known {
			cpLen, cr = scanAttributes(e, b, 0, length, ns)
		}
		checkAttributes(e, b, 0, length, ns, cr, cpLen)
		stride := strideFromCodeRange(cr, e)
		if stride == ns && o.shared {
			return newString(&storage{kind: storeBytes, bytes: b}, 0, length, stride, e, cr, true, cpLen, flagCacheHead), nil
		}
		buf := make([]byte, length<<stride)
		copyUnits(buf, 0, stride, b, 0, ns, length)
		return newString(&storage{kind: storeBytes, bytes: buf}, 0, length, stride, e, cr, true, cpLen, flagCacheHead), nil
	}

	cpLen, cr := o.knownCP, o.knownCR
	if !o.known {
		cpLen, cr = e.ScanBytes(b)
	}
	checkAttributes(e, b, 0, len(b), 0, cr, cpLen)
	data := b
	if !o.shared {
		data = make([]byte, len(b))
		copy(data, b)
	}
	return newString(&storage{kind: storeBytes, bytes: data}, 0, len(b), 0, e, cr, true, cpLen, flagCacheHead), nil
}

// FromCodePoints builds a string from a codepoint sequence. It returns
// ErrUnrepresentable if any codepoint has no encoding in e (including
// surrogate values for the UTF family).
func FromCodePoints(cps []rune, e *enc.Encoding) (*String, error) {
	if len(cps) == 0 {
		return Empty(e), nil
	}
	if e.IsUTF32() {
		buf := make([]byte, len(cps)*4)
		cr := enc.CR7Bit
		for i, cp := range cps {
			r := enc.CodeRangeOfCodePoint(cp)
			if r.IsBroken() {
				return nil, ErrUnrepresentable
			}
			cr = cr.Join(r)
			writeUnit(buf, i<<2, 2, uint32(cp))
		}
		stride := strideFromCodeRange(cr, e)
		if stride < 2 {
			packed := make([]byte, len(cps)<<stride)
			copyUnits(packed, 0, stride, buf, 0, 2, len(cps))
			buf = packed
		}
		return newString(&storage{kind: storeBytes, bytes: buf}, 0, len(cps), stride, e, cr, true, len(cps), flagCacheHead), nil
	}

	var scratch [8]byte
	buf := make([]byte, 0, len(cps)*e.UnitWidth())
	cr := enc.CR7Bit
	for _, cp := range cps {
		n, ok := e.EncodeRune(scratch[:], cp)
		if !ok {
			return nil, ErrUnrepresentable
		}
		buf = append(buf, scratch[:n]...)
		cr = cr.Join(enc.CodeRangeOfCodePoint(cp))
	}
	return FromBytes(buf, e, WithSharedBytes(), WithKnownAttributes(normalizeCodeRange(cr, e), len(cps)))
}

// FromUTF16Units builds a canonical UTF-16 string from raw 16-bit units.
// Unpaired surrogates are kept and classify the result CRBroken.
func FromUTF16Units(units []uint16) *String {
	e := enc.UTF16.Get()
	if len(units) == 0 {
		return Empty(e)
	}
	buf := make([]byte, len(units)*2)
	for i, u := range units {
		writeUnit(buf, i<<1, 1, uint32(u))
	}
	s, _ := FromBytes(buf, e, WithSharedBytes())
	return s
}

// FromUTF32Units builds a canonical UTF-32 string from raw 32-bit units.
// Out-of-range and surrogate units classify the result CRBroken.
func FromUTF32Units(units []uint32) *String {
	e := enc.UTF32.Get()
	if len(units) == 0 {
		return Empty(e)
	}
	buf := make([]byte, len(units)*4)
	for i, u := range units {
		writeUnit(buf, i<<2, 2, u)
	}
	s, _ := FromBytes(buf, e, WithSharedBytes())
	return s
}

// FromCodePoint builds a single-codepoint string, or returns nil if the
// encoding cannot represent cp (the "no such codepoint" sentinel).
func FromCodePoint(cp rune, e *enc.Encoding) *String {
	s, err := FromCodePoints([]rune{cp}, e)
	if err != nil {
		return nil
	}
	return s
}

// FromInt builds the decimal representation of v. For ASCII-compatible
// encodings the digit buffer is deferred until the first materializing read.
// Encodings that cannot represent the digits '0'-'9' and '-' are a
// documented precondition violation and panic.
func FromInt(v int64, e *enc.Encoding) *String {
	n := decimalLength(v)
	if e.ASCIICompatible() && !e.SupportsCompaction() {
		st := &storage{kind: storeLazyInt, value: v}
		return newString(st, 0, n, 0, e, enc.CR7Bit, true, n, flagCacheHead)
	}
	digits := strconv.AppendInt(make([]byte, 0, n), v, 10)
	cps := make([]rune, len(digits))
	for i, d := range digits {
		cps[i] = rune(d)
	}
	s, err := FromCodePoints(cps, e)
	if err != nil {
		panic("strand: encoding cannot represent decimal digits: " + e.Name())
	}
	return s
}

// FromNative builds a string over native memory. The buffer's region
// [byteOff, byteOff+byteLen) is adopted without copying; the resulting
// string keeps buf reachable. Native strings always store at the encoding's
// natural stride.
func FromNative(buf *nmem.Buffer, byteOff, byteLen int, e *enc.Encoding) (*String, error) {
	if byteOff < 0 || byteLen < 0 || byteOff+byteLen > buf.Size() {
		return nil, ErrOutOfBounds
	}
	if byteLen%e.UnitWidth() != 0 {
		return nil, ErrMalformedLength
	}
	ns := naturalStride(e)
	length := byteLen
	if e.SupportsCompaction() {
		length = byteLen / e.UnitWidth()
	}
	st := &storage{kind: storeNative, native: buf}
	cpLen, cr := scanAttributes(e, buf.Bytes(), byteOff, length, ns)
	buf.KeepAlive()
	return newString(st, byteOff, length, ns, e, cr, true, cpLen, flagCacheHead), nil
}

// FromGoString builds a UTF-8 string as a zero-copy view over a Go string
// (the foreign-string-view form). Go strings are immutable, so the view is
// safe to share.
func FromGoString(str string) *String {
	e := enc.UTF8.Get()
	if len(str) == 0 {
		return Empty(e)
	}
	b := unsafe.Slice(unsafe.StringData(str), len(str))
	cpLen, cr := e.ScanBytes(b)
	st := &storage{kind: storeBytes, bytes: b}
	return newString(st, 0, len(str), 0, e, cr, true, cpLen, flagForeignView|flagCacheHead)
}

// normalizeCodeRange collapses a per-codepoint classification to the classes
// the encoding's scanner can produce, so equal content always carries an
// equal precise code range. Only the compactable encodings and Latin-1 keep
// the intermediate classes.
func normalizeCodeRange(cr enc.CodeRange, e *enc.Encoding) enc.CodeRange {
	if e.SupportsCompaction() || cr == enc.CRBroken {
		return cr
	}
	switch {
	case cr == enc.CR7Bit && e.ASCIICompatible():
		return cr
	case cr == enc.CR8Bit && e.ID() == enc.Latin1:
		return cr
	default:
		return enc.CRValid
	}
}

// decimalLength returns the digit count of v's decimal form, including a
// leading minus sign.
func decimalLength(v int64) int {
	n := 1
	if v < 0 {
		n++
	}
	for v <= -10 || v >= 10 {
		v /= 10
		n++
	}
	return n
}
