package strand

import "github.com/dshills/strand/enc"

// MutableString is a growable builder for string content in a fixed
// encoding. It tracks the code range of what has been appended, so
// ToImmutable can usually skip the attribute scan. A builder is not safe
// for concurrent use.
type MutableString struct {
	e      *enc.Encoding
	buf    []byte
	length int // units
	stride uint8
	cr     enc.CodeRange
	// precise is dropped by raw writes, after which ToImmutable rescans.
	precise bool
	cpLen   int
}

// NewMutable returns an empty builder for the given encoding with room for
// capacity units before reallocation.
func NewMutable(e *enc.Encoding, capacity int) *MutableString {
	if capacity < 0 {
		capacity = 0
	}
	return &MutableString{
		e:       e,
		buf:     make([]byte, 0, capacity),
		cr:      enc.CR7Bit,
		precise: true,
	}
}

// Length returns the number of units written so far.
func (m *MutableString) Length() int { return m.length }

// AppendCodePoint appends one codepoint, widening the storage stride when
// the codepoint needs it. Codepoints the encoding cannot represent return
// ErrUnrepresentable and leave the builder unchanged.
func (m *MutableString) AppendCodePoint(cp rune) error {
	if m.e.SupportsCompaction() {
		cpcr := enc.CodeRangeOfCodePoint(cp)
		if cpcr.IsBroken() {
			return ErrUnrepresentable
		}
		need := strideFromCodeRange(cpcr, m.e)
		m.widen(need)
		units := 1
		if m.e.IsUTF16() && cp > 0xFFFF && m.stride == 1 {
			units = 2
		}
		m.grow(units)
		if units == 2 {
			writeUnit(m.buf, m.length<<m.stride, m.stride, uint32(0xD800+(cp-0x10000)>>10))
			writeUnit(m.buf, (m.length+1)<<m.stride, m.stride, uint32(0xDC00+(cp-0x10000)&0x3FF))
		} else {
			writeUnit(m.buf, m.length<<m.stride, m.stride, uint32(cp))
		}
		m.length += units
		m.joinAppend(cpcr, 1)
		return nil
	}

	var scratch [8]byte
	n, ok := m.e.EncodeRune(scratch[:], cp)
	if !ok {
		return ErrUnrepresentable
	}
	m.grow(n)
	copy(m.buf[m.length:], scratch[:n])
	m.length += n
	m.joinAppend(m.byteCodeRange(cp), 1)
	return nil
}

// AppendString appends the content of s, which must share the builder's
// encoding.
func (m *MutableString) AppendString(s *String) {
	if s.encID != m.e.ID() {
		panic("strand: appending string of different encoding: " + s.Encoding().Name())
	}
	if s.length == 0 {
		return
	}
	if s.stride > m.stride {
		m.widen(s.stride)
	}
	m.grow(s.length)
	copyUnits(m.buf, m.length<<m.stride, m.stride, s.contentView(), s.offset, s.stride, s.length)
	m.length += s.length
	if s.HasPreciseCodeRange() {
		m.joinAppend(s.CodeRange(), s.CodePointLength())
	} else {
		m.cr = m.cr.Join(s.CodeRange())
		m.precise = false
	}
}

// AppendBytes appends raw bytes, which must be a whole number of units at
// the encoding's unit width. The content is taken as-is; attributes are
// recomputed on ToImmutable.
func (m *MutableString) AppendBytes(b []byte) error {
	uw := m.e.UnitWidth()
	if len(b)%uw != 0 {
		return ErrMalformedLength
	}
	if len(b) == 0 {
		return nil
	}
	units := len(b) / uw
	natural := naturalStride(m.e)
	if natural > m.stride {
		m.widen(natural)
	}
	m.grow(units)
	copy(m.buf[m.length<<m.stride:], b)
	m.length += units
	m.cr = m.e.MaxCodeRange()
	m.precise = false
	return nil
}

// WriteUnit overwrites the unit at index i, widening storage if the value
// does not fit the current stride. Raw unit writes invalidate tracked
// attributes.
func (m *MutableString) WriteUnit(i int, u uint32) {
	if i < 0 || i >= m.length {
		panic("strand: unit index out of range")
	}
	for m.stride < naturalStride(m.e) && uint64(u) >= uint64(1)<<(8<<m.stride) {
		m.widen(m.stride + 1)
	}
	writeUnit(m.buf, i<<m.stride, m.stride, u)
	m.cr = m.e.MaxCodeRange()
	m.precise = false
}

// ToImmutable snapshots the builder into an immutable string. The builder
// remains usable and may keep growing afterwards.
func (m *MutableString) ToImmutable() *String {
	if m.length == 0 {
		return Empty(m.e)
	}
	n := m.length << m.stride
	buf := make([]byte, n)
	copy(buf, m.buf[:n])
	st := &storage{kind: storeBytes, bytes: buf}
	if m.precise {
		return newString(st, 0, m.length, m.stride, m.e, m.cr, true, m.cpLen, flagCacheHead)
	}
	cpLen, cr := scanAttributes(m.e, buf, 0, m.length, m.stride)
	return newString(st, 0, m.length, m.stride, m.e, cr, true, cpLen, flagCacheHead)
}

// joinAppend folds an append's attributes into the tracked state.
func (m *MutableString) joinAppend(cr enc.CodeRange, cps int) {
	m.cr = m.cr.Join(cr)
	m.cpLen += cps
}

// byteCodeRange classifies a single codepoint for byte-oriented encodings.
func (m *MutableString) byteCodeRange(cp rune) enc.CodeRange {
	if cp <= 0x7F && m.e.ASCIICompatible() {
		return enc.CR7Bit
	}
	if m.e.ID() == enc.Latin1 && cp <= 0xFF {
		return enc.CR8Bit
	}
	return enc.CRValid
}

// widen converts the buffer to the target stride in place.
func (m *MutableString) widen(target uint8) {
	if target <= m.stride {
		return
	}
	wide := make([]byte, m.length<<target, cap(m.buf)<<(target-m.stride))
	copyUnits(wide, 0, target, m.buf, 0, m.stride, m.length)
	m.buf = wide
	m.stride = target
}

// grow ensures room for units more units at the current stride.
func (m *MutableString) grow(units int) {
	need := (m.length + units) << m.stride
	if need > cap(m.buf) {
		next := cap(m.buf)*2 + need
		nb := make([]byte, m.length<<m.stride, next)
		copy(nb, m.buf)
		m.buf = nb
	}
	m.buf = m.buf[:need]
}
