package enc

// CodeRange classifies which codepoint subset a string's content is
// guaranteed to stay within. The ordering CR7Bit < CR8Bit < CR16Bit < CRValid
// forms a chain of successively weaker guarantees; CRBroken sits above all of
// them and marks content that is not well-formed in its encoding.
//
// A code range is always sound: it is never more restrictive than the actual
// content. Whether it is also exact is tracked separately (see the precise
// qualifier on string values).
type CodeRange uint8

const (
	// CR7Bit means every codepoint is ASCII (<= 0x7F).
	CR7Bit CodeRange = iota

	// CR8Bit means every codepoint fits in Latin-1 (<= 0xFF).
	CR8Bit

	// CR16Bit means every codepoint fits in the Basic Multilingual Plane
	// (<= 0xFFFF) with no unpaired surrogates.
	CR16Bit

	// CRValid means the content is well-formed in its encoding but may
	// contain codepoints above the BMP.
	CRValid

	// CRBroken means the content contains at least one sequence that is not
	// well-formed in its encoding.
	CRBroken
)

// Join returns the least upper bound of two code ranges. It is the
// classification of content combining strings with code ranges a and b,
// e.g. during concatenation.
func (a CodeRange) Join(b CodeRange) CodeRange {
	if b > a {
		return b
	}
	return a
}

// AtMost reports whether a guarantees at least as much as b, i.e. whether
// content classified a also satisfies classification b.
func (a CodeRange) AtMost(b CodeRange) bool {
	return a <= b
}

// Is7Bit reports whether all codepoints are ASCII.
func (a CodeRange) Is7Bit() bool { return a == CR7Bit }

// Is8Bit reports whether all codepoints fit in Latin-1.
func (a CodeRange) Is8Bit() bool { return a <= CR8Bit }

// Is16Bit reports whether all codepoints fit in the BMP.
func (a CodeRange) Is16Bit() bool { return a <= CR16Bit }

// IsValid reports whether the content is well-formed.
func (a CodeRange) IsValid() bool { return a <= CRValid }

// IsBroken reports whether the content contains malformed sequences.
func (a CodeRange) IsBroken() bool { return a == CRBroken }

// String returns a human-readable name for the code range.
func (a CodeRange) String() string {
	switch a {
	case CR7Bit:
		return "7bit"
	case CR8Bit:
		return "8bit"
	case CR16Bit:
		return "16bit"
	case CRValid:
		return "valid"
	case CRBroken:
		return "broken"
	default:
		return "unknown"
	}
}

// CodeRangeOfCodePoint returns the tightest code range containing a single
// codepoint. Unpaired surrogate values classify as CRBroken.
func CodeRangeOfCodePoint(cp rune) CodeRange {
	switch {
	case cp < 0:
		return CRBroken
	case cp <= 0x7F:
		return CR7Bit
	case cp <= 0xFF:
		return CR8Bit
	case cp >= 0xD800 && cp <= 0xDFFF:
		return CRBroken
	case cp <= 0xFFFF:
		return CR16Bit
	case cp <= 0x10FFFF:
		return CRValid
	default:
		return CRBroken
	}
}
