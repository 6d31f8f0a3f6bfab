package strand

// lazyConcatMinBytes is the smallest result for which deferring the merged
// buffer pays for the extra indirection. Smaller results are copied eagerly.
const lazyConcatMinBytes = 128

// Concat returns the concatenation of s and o. Both operands must share an
// encoding unless one is empty, in which case the other operand is returned
// unchanged. Large results defer the merged buffer until first read.
func (s *String) Concat(o *String) *String {
	if s.length == 0 {
		return o
	}
	if o.length == 0 {
		return s
	}
	s.requireSameEncoding(o)
	e := s.Encoding()

	scr, ocr := s.CodeRange(), o.CodeRange()
	cr := scr.Join(ocr)
	// A broken operand can heal at the seam (e.g. a trailing high surrogate
	// meeting a leading low surrogate), so the joined classification is only
	// an upper bound in that case.
	precise := s.HasPreciseCodeRange() && o.HasPreciseCodeRange() && !cr.IsBroken()
	cpLen := -1
	if precise {
		cpLen = s.CodePointLength() + o.CodePointLength()
	}
	length := s.length + o.length
	if length > maxByteLength>>s.stride {
		panic("strand: concatenation exceeds maximum string size")
	}
	stride := strideFromCodeRange(cr, e)

	if length<<stride >= lazyConcatMinBytes {
		st := &storage{kind: storeLazyConcat, left: s, right: o}
		return newString(st, 0, length, stride, e, cr, precise, cpLen, flagCacheHead)
	}

	buf := make([]byte, length<<stride)
	copyUnits(buf, 0, stride, s.contentView(), s.offset, s.stride, s.length)
	copyUnits(buf, s.length<<stride, stride, o.contentView(), o.offset, o.stride, o.length)
	return newString(&storage{kind: storeBytes, bytes: buf}, 0, length, stride, e, cr, precise, cpLen, flagCacheHead)
}

// Repeat returns s repeated n times. Repetition is always eager; a broken
// or imprecise operand forces a fresh attribute scan of the result, since
// malformed sequences can form or heal at repeat boundaries.
func (s *String) Repeat(n int) *String {
	if n < 0 {
		panic("strand: negative repeat count")
	}
	e := s.Encoding()
	if n == 0 || s.length == 0 {
		return Empty(e)
	}
	if n == 1 {
		return s
	}
	if s.length > (maxByteLength>>s.stride)/n {
		panic("strand: repetition exceeds maximum string size")
	}
	length := s.length * n
	buf := make([]byte, length<<s.stride)
	chunk := s.length << s.stride
	copyUnits(buf, 0, s.stride, s.contentView(), s.offset, s.stride, s.length)
	// Double the initialized prefix until the buffer is full.
	for filled := chunk; filled < len(buf); filled *= 2 {
		copy(buf[filled:], buf[:filled])
	}

	if s.HasPreciseCodeRange() && !s.CodeRange().IsBroken() {
		cr := s.CodeRange()
		return newString(&storage{kind: storeBytes, bytes: buf}, 0, length, s.stride, e, cr, true, s.CodePointLength()*n, flagCacheHead)
	}
	cpLen, cr := scanAttributes(e, buf, 0, length, s.stride)
	return newString(&storage{kind: storeBytes, bytes: buf}, 0, length, s.stride, e, cr, true, cpLen, flagCacheHead)
}

// Substring returns the region of length units starting at unit index from,
// as a zero-copy view sharing s's storage. The view inherits s's code range
// as an imprecise upper bound; a later scan may refine it. Stateful stream
// encodings cannot be sliced at arbitrary offsets; convert first.
func (s *String) Substring(from, length int) *String {
	s.requireRandomAccess()
	if from < 0 || length < 0 || from+length > s.length {
		panic("strand: substring region out of range")
	}
	e := s.Encoding()
	if length == 0 {
		return Empty(e)
	}
	if from == 0 && length == s.length {
		return s
	}
	st := s.materialize()
	cr := s.CodeRange()
	precise := false
	cpLen := -1
	if s.singleUnitCodePoints() && !cr.IsBroken() {
		// Fixed-width content: the bound cannot tighten in a way that
		// matters and the codepoint count is the unit count.
		cpLen = length
		precise = s.HasPreciseCodeRange() && cr.Is7Bit()
	}
	return newString(st, s.offset+(from<<s.stride), length, s.stride, e, cr, precise, cpLen, flagCacheHead)
}
