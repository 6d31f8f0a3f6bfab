package strand

import "github.com/dshills/strand/enc"

// CodePointIterator walks a string codepoint by codepoint in either
// direction. The position is a raw unit index sitting on a codepoint
// boundary; Next consumes forward and Previous consumes backward. An
// iterator is single-goroutine state over immutable content, so any number
// of iterators may walk the same string concurrently.
type CodePointIterator struct {
	s     *String
	b     []byte
	index int
	eh    ErrorHandling
}

// Iterator returns a codepoint iterator positioned at the string start.
// Stateful stream encodings have no well-defined codepoint boundaries at
// arbitrary offsets and cannot be iterated; convert first.
func (s *String) Iterator(eh ErrorHandling) *CodePointIterator {
	s.requireRandomAccess()
	return &CodePointIterator{s: s, b: s.contentView(), eh: eh}
}

// Index returns the current position as a raw unit index.
func (it *CodePointIterator) Index() int { return it.index }

// SetIndex repositions the iterator. The index must lie on a codepoint
// boundary; positioning inside a multi-unit sequence yields whatever the
// decoder makes of the tail.
func (it *CodePointIterator) SetIndex(i int) {
	if i < 0 || i > it.s.length {
		panic("strand: iterator index out of range")
	}
	it.index = i
}

// HasNext reports whether a codepoint remains in the forward direction.
func (it *CodePointIterator) HasNext() bool { return it.index < it.s.length }

// Next decodes the codepoint at the current position and advances past it.
func (it *CodePointIterator) Next() rune {
	if it.index >= it.s.length {
		panic("strand: iterator exhausted")
	}
	r, w := it.s.decodeAt(it.b, it.index)
	r = it.s.applyErrorHandling(it.b, it.index, r, it.eh)
	it.index += w
	return r
}

// HasPrevious reports whether a codepoint remains in the backward direction.
func (it *CodePointIterator) HasPrevious() bool { return it.index > 0 }

// Previous moves backward over one codepoint and decodes it.
func (it *CodePointIterator) Previous() rune {
	if it.index <= 0 {
		panic("strand: iterator exhausted")
	}
	start := it.s.codePointStartBefore(it.b, it.index)
	r, _ := it.s.decodeAt(it.b, start)
	r = it.s.applyErrorHandling(it.b, start, r, it.eh)
	it.index = start
	return r
}

// codePointStartBefore returns the unit index of the codepoint preceding
// position i (i > 0). Malformed tails count as one unit each.
func (s *String) codePointStartBefore(b []byte, i int) int {
	if s.singleUnitCodePoints() {
		return i - 1
	}
	e := s.Encoding()
	switch {
	case s.encID == enc.UTF8:
		return utf8StartBefore(b, s.offset, i)
	case e.IsUTF16():
		// A low surrogate preceded by a high surrogate closes a pair.
		u := readUnit(b, s.offset+((i-1)<<1), 1)
		if u >= 0xDC00 && u <= 0xDFFF && i >= 2 {
			hi := readUnit(b, s.offset+((i-2)<<1), 1)
			if hi >= 0xD800 && hi <= 0xDBFF {
				return i - 2
			}
		}
		return i - 1
	default:
		// Legacy multibyte: try progressively longer windows ending at i
		// and accept the first whose decode spans the window exactly.
		for w := 2; w <= 4 && w <= i; w++ {
			r, size := s.decodeAt(b, i-w)
			if r >= 0 && size == w {
				return i - w
			}
		}
		return i - 1
	}
}

// utf8StartBefore steps backward over at most three continuation bytes and
// verifies that the leading byte found actually spans up to i. A leading
// byte that falls short means the bytes before i are a malformed tail, and
// the last of them is treated as a one-byte codepoint.
func utf8StartBefore(b []byte, offset, i int) int {
	start := i - 1
	lowest := i - 4
	if lowest < 0 {
		lowest = 0
	}
	for start > lowest && b[offset+start]&0xC0 == 0x80 {
		start--
	}
	if b[offset+start]&0xC0 == 0x80 {
		return i - 1
	}
	w := utf8SeqLen(b[offset+start])
	if start+w != i {
		return i - 1
	}
	return start
}

// utf8SeqLen returns the sequence length a UTF-8 leading byte announces,
// or 1 for bytes that cannot lead a sequence.
func utf8SeqLen(lead byte) int {
	switch {
	case lead < 0x80:
		return 1
	case lead&0xE0 == 0xC0:
		return 2
	case lead&0xF0 == 0xE0:
		return 3
	case lead&0xF8 == 0xF0:
		return 4
	default:
		return 1
	}
}
