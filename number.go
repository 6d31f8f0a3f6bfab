package strand

import (
	"errors"
	"math"
	"strconv"
)

// ParseInt interprets the string as a signed integer in the given radix
// (2 through 36). An optional leading '+' or '-' is accepted, digits above
// 9 use ASCII letters of either case, and '_' may separate digits but not
// open, close, or double up. Failures return *NumberParseError with the
// offending byte region. Like Iterator, ParseInt requires a random-access
// encoding.
func (s *String) ParseInt(radix int) (int64, error) {
	if radix < 2 || radix > 36 {
		return 0, parseErr(ReasonUnsupportedRadix, 0, 0)
	}
	if radix == 10 {
		// A number-born string still carries its value; no decode needed.
		if st := s.data.Load(); st.kind == storeLazyInt {
			return st.value, nil
		}
	}
	if s.length == 0 {
		return 0, parseErr(ReasonEmpty, 0, 0)
	}

	it := s.Iterator(ReturnNegative)
	neg := false
	start := 0
	cp := it.Next()
	if cp == '+' || cp == '-' {
		neg = cp == '-'
		if !it.HasNext() {
			return 0, parseErr(ReasonLoneSign, 0, s.byteSpan(0, it.Index()))
		}
		start = it.Index()
		cp = it.Next()
	}

	// Accumulate negated so math.MinInt64 parses without overflow.
	var acc int64
	cutoff := int64(math.MinInt64) / int64(radix)
	lastWasDigit := false
	for {
		at := start
		switch {
		case cp == '_':
			if !lastWasDigit || !it.HasNext() {
				return 0, parseErr(ReasonMalformedSeparator, s.byteSpan(0, at), s.byteSpan(at, it.Index()))
			}
			lastWasDigit = false
		default:
			d := digitValue(cp)
			if d < 0 || d >= radix {
				return 0, parseErr(ReasonInvalidCodePoint, s.byteSpan(0, at), s.byteSpan(at, it.Index()))
			}
			if acc < cutoff {
				return 0, parseErr(ReasonOverflow, 0, s.byteSpan(0, s.length))
			}
			acc *= int64(radix)
			if acc < math.MinInt64+int64(d) {
				return 0, parseErr(ReasonOverflow, 0, s.byteSpan(0, s.length))
			}
			acc -= int64(d)
			lastWasDigit = true
		}
		if !it.HasNext() {
			break
		}
		start = it.Index()
		cp = it.Next()
	}
	if neg {
		return acc, nil
	}
	if acc == -1<<63 {
		return 0, parseErr(ReasonOverflow, 0, s.byteSpan(0, s.length))
	}
	return -acc, nil
}

// ParseFloat interprets the string as a decimal floating-point number in
// the syntax strconv accepts, minus hex floats and minus "Inf"/"NaN"
// spellings. '_' separators follow the same rules as ParseInt.
func (s *String) ParseFloat() (float64, error) {
	if s.length == 0 {
		return 0, parseErr(ReasonEmpty, 0, 0)
	}

	it := s.Iterator(ReturnNegative)
	buf := make([]byte, 0, 32)
	points := 0
	sawDigit := false
	lastWasDigit := false
	inExponent := false
	for it.HasNext() {
		at := it.Index()
		cp := it.Next()
		span := s.byteSpan(at, it.Index())
		switch {
		case cp >= '0' && cp <= '9':
			sawDigit = true
			lastWasDigit = true
			buf = append(buf, byte(cp))
		case cp == '_':
			if !lastWasDigit || !it.HasNext() {
				return 0, parseErr(ReasonMalformedSeparator, s.byteSpan(0, at), span)
			}
			lastWasDigit = false
		case cp == '.':
			if inExponent || points > 0 {
				return 0, parseErr(ReasonMultiplePoints, s.byteSpan(0, at), span)
			}
			points++
			lastWasDigit = false
			buf = append(buf, '.')
		case cp == 'e' || cp == 'E':
			if inExponent || !sawDigit {
				return 0, parseErr(ReasonInvalidCodePoint, s.byteSpan(0, at), span)
			}
			inExponent = true
			lastWasDigit = false
			buf = append(buf, byte(cp))
		case cp == '+' || cp == '-':
			// Valid only as the very first character or right after the
			// exponent marker.
			if !(len(buf) == 0 || buf[len(buf)-1] == 'e' || buf[len(buf)-1] == 'E') {
				return 0, parseErr(ReasonInvalidCodePoint, s.byteSpan(0, at), span)
			}
			lastWasDigit = false
			buf = append(buf, byte(cp))
		default:
			return 0, parseErr(ReasonInvalidCodePoint, s.byteSpan(0, at), span)
		}
	}
	if !sawDigit {
		if len(buf) > 0 && (buf[len(buf)-1] == '+' || buf[len(buf)-1] == '-') {
			return 0, parseErr(ReasonLoneSign, 0, s.byteSpan(0, s.length))
		}
		return 0, parseErr(ReasonInvalidCodePoint, 0, s.byteSpan(0, s.length))
	}

	f, err := strconv.ParseFloat(string(buf), 64)
	if err != nil {
		var ne *strconv.NumError
		if errors.As(err, &ne) && errors.Is(ne.Err, strconv.ErrRange) {
			return 0, parseErr(ReasonOverflow, 0, s.byteSpan(0, s.length))
		}
		return 0, parseErr(ReasonInvalidCodePoint, 0, s.byteSpan(0, s.length))
	}
	return f, nil
}

// byteSpan converts a [from, to) unit span to a byte count or offset.
func (s *String) byteSpan(from, to int) int {
	return (to - from) << s.stride
}

// digitValue maps an ASCII digit or letter to its numeric value, or -1.
func digitValue(cp rune) int {
	switch {
	case cp >= '0' && cp <= '9':
		return int(cp - '0')
	case cp >= 'a' && cp <= 'z':
		return int(cp-'a') + 10
	case cp >= 'A' && cp <= 'Z':
		return int(cp-'A') + 10
	default:
		return -1
	}
}
