package strand

import "github.com/dshills/strand/enc"

// scanAttributes computes the precise code range and codepoint length of a
// region of storage. Compacted strides short-circuit: their units are known
// to be Latin-1 codepoints already.
func scanAttributes(e *enc.Encoding, b []byte, offset, length int, stride uint8) (cpLen int, cr enc.CodeRange) {
	switch {
	case stride == 0 && e.SupportsCompaction():
		return length, scanLatin1Units(b, offset, length)
	case stride == 1 && e.IsUTF32():
		return scanUTF32Stride1(b, offset, length)
	case stride == 1:
		return scanUTF16Units(b, offset, length)
	case stride == 2:
		return scanUTF32Units(b, offset, length)
	default:
		return e.ScanBytes(b[offset : offset+length])
	}
}

// scanLatin1Units classifies compacted (one byte per unit) UTF content.
func scanLatin1Units(b []byte, offset, length int) enc.CodeRange {
	for i := 0; i < length; i++ {
		if b[offset+i] >= 0x80 {
			return enc.CR8Bit
		}
	}
	return enc.CR7Bit
}

// scanUTF16Units walks 16-bit units, pairing surrogates.
func scanUTF16Units(b []byte, offset, length int) (cpLen int, cr enc.CodeRange) {
	for i := 0; i < length; i++ {
		u := readUnit(b, offset+i<<1, 1)
		cpLen++
		switch {
		case u < 0x80:
		case u < 0x100:
			cr = cr.Join(enc.CR8Bit)
		case u < 0xD800 || u > 0xDFFF:
			cr = cr.Join(enc.CR16Bit)
		case u >= 0xDC00:
			// Low surrogate with no preceding high surrogate.
			cr = enc.CRBroken
		default:
			if i+1 < length {
				lo := readUnit(b, offset+(i+1)<<1, 1)
				if lo >= 0xDC00 && lo <= 0xDFFF {
					i++
					cr = cr.Join(enc.CRValid)
					continue
				}
			}
			cr = enc.CRBroken
		}
	}
	return cpLen, cr
}

// scanUTF32Stride1 classifies UTF-32 content compacted to 16-bit units.
func scanUTF32Stride1(b []byte, offset, length int) (cpLen int, cr enc.CodeRange) {
	for i := 0; i < length; i++ {
		u := readUnit(b, offset+i<<1, 1)
		switch {
		case u < 0x80:
		case u < 0x100:
			cr = cr.Join(enc.CR8Bit)
		case u >= 0xD800 && u <= 0xDFFF:
			cr = enc.CRBroken
		default:
			cr = cr.Join(enc.CR16Bit)
		}
	}
	return length, cr
}

// scanUTF32Units walks full-width 32-bit units.
func scanUTF32Units(b []byte, offset, length int) (cpLen int, cr enc.CodeRange) {
	for i := 0; i < length; i++ {
		u := readUnit(b, offset+i<<2, 2)
		cr = cr.Join(enc.CodeRangeOfCodePoint(rune(int32(u))))
	}
	return length, cr
}
