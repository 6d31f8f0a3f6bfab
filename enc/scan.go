package enc

import "unicode/utf8"

// ScanBytes computes the codepoint count and precise code range of content
// in this encoding's natural byte form. Malformed sequences classify the
// content CRBroken and count one codepoint per substitution.
func (e *Encoding) ScanBytes(b []byte) (cpLen int, cr CodeRange) {
	switch e.fam {
	case famASCII:
		for _, c := range b {
			if c >= 0x80 {
				cr = CRBroken
			}
		}
		return len(b), cr
	case famLatin1:
		for _, c := range b {
			if c >= 0x80 {
				return len(b), CR8Bit
			}
		}
		return len(b), CR7Bit
	case famBytes:
		for _, c := range b {
			if c >= 0x80 {
				return len(b), CRValid
			}
		}
		return len(b), CR7Bit
	case famUTF8:
		return scanUTF8(b)
	case famCharmap:
		ascii := true
		for _, c := range b {
			if c >= 0x80 {
				ascii = false
			}
			if e.cmap.DecodeByte(c) == utf8.RuneError {
				cr = CRBroken
			}
		}
		if cr == CRBroken {
			return len(b), CRBroken
		}
		if ascii && e.ascii {
			return len(b), CR7Bit
		}
		return len(b), CRValid
	case famXForm:
		return e.scanXForm(b)
	default:
		// Byte-swapped UTF variants and, for completeness, the canonical
		// UTF-16/32 serializations: step the codec.
		return e.scanCodec(b)
	}
}

func scanUTF8(b []byte) (cpLen int, cr CodeRange) {
	for i := 0; i < len(b); {
		c := b[i]
		if c < 0x80 {
			i++
			cpLen++
			continue
		}
		if cr == CR7Bit {
			cr = CRValid
		}
		r, size := decodeUTF8(b[i:])
		if r < 0 {
			cr = CRBroken
			if size <= 0 {
				size = len(b) - i
			}
		}
		i += size
		cpLen++
	}
	return cpLen, cr
}

// scanCodec steps DecodeRune over the buffer for fixed-dispatch families
// without a dedicated scan loop.
func (e *Encoding) scanCodec(b []byte) (cpLen int, cr CodeRange) {
	for i := 0; i < len(b); {
		r, size := e.DecodeRune(b[i:])
		if size <= 0 {
			size = len(b) - i
		}
		if r < 0 {
			cr = CRBroken
		} else {
			cr = cr.Join(CodeRangeOfCodePoint(r))
		}
		i += size
		cpLen++
	}
	if !e.ascii && cr < CRValid && len(b) > 0 {
		// No byte-level ASCII compatibility: never classify below valid.
		cr = CRValid
	}
	return cpLen, cr
}

// scanXForm decodes the whole buffer through the x/text decoder. This also
// serves stream-only encodings, which cannot be decoded from arbitrary
// offsets. The decoder substitutes U+FFFD for malformed input; legacy
// repertoires cannot encode U+FFFD, so its appearance marks broken content.
func (e *Encoding) scanXForm(b []byte) (cpLen int, cr CodeRange) {
	decoded, err := e.xenc.NewDecoder().Bytes(b)
	if err != nil {
		return len(b), CRBroken
	}
	ascii := true
	for i := 0; i < len(decoded); {
		r, size := utf8.DecodeRune(decoded[i:])
		if r == utf8.RuneError {
			return cpLen + 1, CRBroken
		}
		if r >= 0x80 {
			ascii = false
		}
		i += size
		cpLen++
	}
	if ascii && e.ascii {
		return cpLen, CR7Bit
	}
	return cpLen, CRValid
}
