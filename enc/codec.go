package enc

import (
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// Negative decode results distinguish malformed sequences from sequences
// truncated at end of input. A result of Invalid means the bytes can never
// form a codepoint; a result below Invalid means the sequence could complete
// if MissingBytes more bytes followed.
const Invalid rune = -1

// IncompleteRune returns the negative sentinel for a sequence truncated at
// end of input that needs missing more bytes.
func IncompleteRune(missing int) rune { return rune(-1 - missing) }

// MissingBytes returns the number of missing bytes encoded in a truncated
// decode result. Valid only for r < Invalid.
func MissingBytes(r rune) int { return int(-1 - r) }

// maxLegacySequence bounds the trial window for transform-backed decoding.
// ISO-2022 escape sequences are the longest at up to 6 bytes before a
// codepoint appears.
const maxLegacySequence = 8

func init() {
	table[UTF16BE].big = true
	table[UTF32BE].big = true
}

// Placeholder returns the substitution codepoint used by best-effort decode
// for this encoding family: U+FFFD for the UTF family, '?' for byte-oriented
// encodings.
func (e *Encoding) Placeholder() rune {
	switch e.fam {
	case famUTF8, famUTF16, famUTF16Swap, famUTF32, famUTF32Swap:
		return utf8.RuneError
	default:
		return '?'
	}
}

// DecodeRune decodes the first codepoint of b.
//
// On success it returns the codepoint and the number of bytes consumed. On a
// malformed sequence it returns Invalid and the number of bytes to skip. On a
// sequence truncated at end of input it returns IncompleteRune(n) and len(b).
// Decoding an empty slice returns IncompleteRune(1), 0.
func (e *Encoding) DecodeRune(b []byte) (rune, int) {
	if len(b) == 0 {
		return IncompleteRune(1), 0
	}
	switch e.fam {
	case famASCII:
		if b[0] < 0x80 {
			return rune(b[0]), 1
		}
		return Invalid, 1
	case famLatin1, famBytes:
		return rune(b[0]), 1
	case famUTF8:
		return decodeUTF8(b)
	case famUTF16:
		return decodeUTF16(b, false)
	case famUTF16Swap:
		return decodeUTF16(b, e.big)
	case famUTF32:
		return decodeUTF32(b, false)
	case famUTF32Swap:
		return decodeUTF32(b, e.big)
	case famCharmap:
		r := e.cmap.DecodeByte(b[0])
		if r == utf8.RuneError {
			return Invalid, 1
		}
		return r, 1
	default:
		return e.decodeXForm(b)
	}
}

// DecodeRuneReplace is the best-effort variant of DecodeRune: malformed and
// truncated sequences yield the family placeholder, except that UTF-16
// echoes an unpaired surrogate unit and UTF-32 echoes the raw unit value.
func (e *Encoding) DecodeRuneReplace(b []byte) (rune, int) {
	r, size := e.DecodeRune(b)
	if r >= 0 {
		return r, size
	}
	if size == 0 {
		size = 1
		if size > len(b) {
			size = len(b)
		}
	}
	switch e.fam {
	case famUTF16, famUTF16Swap:
		if len(b) >= 2 {
			u := readU16(b, e.big && e.fam == famUTF16Swap)
			return rune(u), 2
		}
	case famUTF32, famUTF32Swap:
		if len(b) >= 4 {
			u := readU32(b, e.big && e.fam == famUTF32Swap)
			return rune(int32(u)), 4
		}
	}
	return e.Placeholder(), size
}

// RuneLen returns the number of bytes needed to encode cp in this encoding,
// or -1 if cp is not representable.
func (e *Encoding) RuneLen(cp rune) int {
	if cp < 0 || cp > 0x10FFFF {
		return -1
	}
	switch e.fam {
	case famASCII:
		if cp < 0x80 {
			return 1
		}
		return -1
	case famLatin1, famBytes:
		if cp < 0x100 {
			return 1
		}
		return -1
	case famUTF8:
		return utf8.RuneLen(cp)
	case famUTF16, famUTF16Swap:
		if cp >= 0xD800 && cp <= 0xDFFF {
			return -1
		}
		if cp > 0xFFFF {
			return 4
		}
		return 2
	case famUTF32, famUTF32Swap:
		if cp >= 0xD800 && cp <= 0xDFFF {
			return -1
		}
		return 4
	case famCharmap:
		if _, ok := e.cmap.EncodeRune(cp); ok {
			return 1
		}
		return -1
	default:
		var scratch [maxLegacySequence]byte
		n, ok := e.EncodeRune(scratch[:], cp)
		if !ok {
			return -1
		}
		return n
	}
}

// EncodeRune encodes cp into dst and returns the byte count. ok is false if
// cp is not representable in this encoding or dst is too small; dst is not
// modified in that case beyond scratch writes.
func (e *Encoding) EncodeRune(dst []byte, cp rune) (int, bool) {
	if cp < 0 || cp > 0x10FFFF {
		return 0, false
	}
	switch e.fam {
	case famASCII:
		if cp >= 0x80 || len(dst) < 1 {
			return 0, false
		}
		dst[0] = byte(cp)
		return 1, true
	case famLatin1, famBytes:
		if cp >= 0x100 || len(dst) < 1 {
			return 0, false
		}
		dst[0] = byte(cp)
		return 1, true
	case famUTF8:
		if utf8.RuneLen(cp) < 0 || len(dst) < utf8.RuneLen(cp) {
			return 0, false
		}
		return utf8.EncodeRune(dst, cp), true
	case famUTF16:
		return encodeUTF16(dst, cp, false)
	case famUTF16Swap:
		return encodeUTF16(dst, cp, e.big)
	case famUTF32:
		return encodeUTF32(dst, cp, false)
	case famUTF32Swap:
		return encodeUTF32(dst, cp, e.big)
	case famCharmap:
		b, ok := e.cmap.EncodeRune(cp)
		if !ok || len(dst) < 1 {
			return 0, false
		}
		dst[0] = b
		return 1, true
	default:
		return e.encodeXForm(dst, cp)
	}
}

// EncodeRuneReplace encodes cp, substituting the family placeholder when cp
// is unrepresentable. The substitution itself always fits: every registered
// encoding can represent '?' or U+FFFD as applicable.
func (e *Encoding) EncodeRuneReplace(dst []byte, cp rune) int {
	if n, ok := e.EncodeRune(dst, cp); ok {
		return n
	}
	sub := e.Placeholder()
	if n, ok := e.EncodeRune(dst, sub); ok {
		return n
	}
	// Placeholder unrepresentable (e.g. EBCDIC lacks U+FFFD): fall back to '?'.
	n, _ := e.EncodeRune(dst, '?')
	return n
}

func decodeUTF8(b []byte) (rune, int) {
	b0 := b[0]
	if b0 < 0x80 {
		return rune(b0), 1
	}
	var size int
	switch {
	case b0&0xE0 == 0xC0:
		size = 2
	case b0&0xF0 == 0xE0:
		size = 3
	case b0&0xF8 == 0xF0:
		size = 4
	default:
		return Invalid, 1
	}
	if len(b) < size {
		// Verify the available continuation bytes before reporting truncation.
		for i := 1; i < len(b); i++ {
			if b[i]&0xC0 != 0x80 {
				return Invalid, i
			}
		}
		return IncompleteRune(size - len(b)), len(b)
	}
	r, n := utf8.DecodeRune(b[:size])
	if r == utf8.RuneError && n <= 1 {
		return Invalid, 1
	}
	return r, n
}

func readU16(b []byte, big bool) uint16 {
	if big {
		return uint16(b[0])<<8 | uint16(b[1])
	}
	return uint16(b[0]) | uint16(b[1])<<8
}

func readU32(b []byte, big bool) uint32 {
	if big {
		return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
	}
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

func decodeUTF16(b []byte, big bool) (rune, int) {
	if len(b) < 2 {
		return IncompleteRune(2 - len(b)), len(b)
	}
	u := readU16(b, big)
	switch {
	case u < 0xD800 || u > 0xDFFF:
		return rune(u), 2
	case u >= 0xDC00:
		// Lone low surrogate.
		return Invalid, 2
	}
	if len(b) < 4 {
		return IncompleteRune(4 - len(b)), len(b)
	}
	lo := readU16(b[2:], big)
	if lo < 0xDC00 || lo > 0xDFFF {
		return Invalid, 2
	}
	return 0x10000 + (rune(u)-0xD800)<<10 + (rune(lo) - 0xDC00), 4
}

func encodeUTF16(dst []byte, cp rune, big bool) (int, bool) {
	if cp >= 0xD800 && cp <= 0xDFFF {
		return 0, false
	}
	if cp <= 0xFFFF {
		if len(dst) < 2 {
			return 0, false
		}
		writeU16(dst, uint16(cp), big)
		return 2, true
	}
	if len(dst) < 4 {
		return 0, false
	}
	cp -= 0x10000
	writeU16(dst, uint16(0xD800+(cp>>10)), big)
	writeU16(dst[2:], uint16(0xDC00+(cp&0x3FF)), big)
	return 4, true
}

func writeU16(b []byte, u uint16, big bool) {
	if big {
		b[0] = byte(u >> 8)
		b[1] = byte(u)
	} else {
		b[0] = byte(u)
		b[1] = byte(u >> 8)
	}
}

func decodeUTF32(b []byte, big bool) (rune, int) {
	if len(b) < 4 {
		return IncompleteRune(4 - len(b)), len(b)
	}
	u := readU32(b, big)
	if u > 0x10FFFF || (u >= 0xD800 && u <= 0xDFFF) {
		return Invalid, 4
	}
	return rune(u), 4
}

func encodeUTF32(dst []byte, cp rune, big bool) (int, bool) {
	if (cp >= 0xD800 && cp <= 0xDFFF) || len(dst) < 4 {
		return 0, false
	}
	if big {
		b := uint32(cp)
		dst[0] = byte(b >> 24)
		dst[1] = byte(b >> 16)
		dst[2] = byte(b >> 8)
		dst[3] = byte(b)
	} else {
		b := uint32(cp)
		dst[0] = byte(b)
		dst[1] = byte(b >> 8)
		dst[2] = byte(b >> 16)
		dst[3] = byte(b >> 24)
	}
	return 4, true
}

// UsesTransform reports whether decoding goes through an x/text transformer
// rather than a fixed-dispatch codec.
func (e *Encoding) UsesTransform() bool { return e.fam == famXForm }

// DecodeAll converts an entire buffer to UTF-8 through the encoding's
// decoder, substituting U+FFFD for malformed sequences. This is the only
// correct whole-string decode for stream-only encodings.
func (e *Encoding) DecodeAll(b []byte) ([]byte, error) {
	return e.xenc.NewDecoder().Bytes(b)
}

// EncodeAll converts UTF-8 content to this encoding's byte form in a single
// encoder pass, so stateful encodings emit each escape sequence once. With
// replace set, unsupported runes are substituted instead of failing.
func (e *Encoding) EncodeAll(utf8Bytes []byte, replace bool) ([]byte, error) {
	encoder := e.xenc.NewEncoder()
	if replace {
		encoder = encoding.ReplaceUnsupported(encoder)
	}
	return encoder.Bytes(utf8Bytes)
}

// decodeXForm decodes one codepoint of a transform-backed legacy encoding by
// feeding growing prefixes through a fresh decoder until a rune emerges.
// Stream-only encodings lose escape-state context when decoded this way; the
// engine routes whole-buffer scans around this path for them.
func (e *Encoding) decodeXForm(b []byte) (rune, int) {
	var out [utf8.UTFMax * 2]byte
	dec := e.xenc.NewDecoder()
	limit := len(b)
	if limit > maxLegacySequence {
		limit = maxLegacySequence
	}
	for n := 1; n <= limit; n++ {
		dec.Reset()
		atEOF := n == len(b)
		nDst, nSrc, err := dec.Transform(out[:], b[:n], atEOF)
		if nDst > 0 {
			r, _ := utf8.DecodeRune(out[:nDst])
			consumed := nSrc
			if consumed == 0 {
				consumed = n
			}
			if r == utf8.RuneError {
				return Invalid, consumed
			}
			return r, consumed
		}
		if err != nil && err != transform.ErrShortSrc {
			return Invalid, 1
		}
	}
	if len(b) < limit || len(b) <= maxLegacySequence {
		return IncompleteRune(1), len(b)
	}
	return Invalid, 1
}

// encodeXForm encodes one codepoint through the encoding's x/text encoder.
func (e *Encoding) encodeXForm(dst []byte, cp rune) (int, bool) {
	var in [utf8.UTFMax]byte
	n := utf8.EncodeRune(in[:], cp)
	encoder := e.xenc.NewEncoder()
	nDst, _, err := encoder.Transform(dst, in[:n], true)
	if err != nil || nDst == 0 {
		return 0, false
	}
	return nDst, true
}
