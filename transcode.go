package strand

import (
	"sync"
	"unicode/utf8"

	"github.com/dshills/strand/enc"
	"github.com/dshills/strand/nmem"
)

// TranscodePolicy governs error behavior during encoding conversion.
type TranscodePolicy uint8

const (
	// TranscodeLossy substitutes placeholders: U+FFFD (or '?' for
	// byte-oriented targets) replaces codepoints the target cannot
	// represent, and malformed source sequences decode best-effort.
	TranscodeLossy TranscodePolicy = iota

	// TranscodeStrict fails with ErrMalformedInput or ErrUnrepresentable
	// instead of substituting.
	TranscodeStrict
)

// runeBufPool recycles codepoint scratch buffers used by conversions.
var runeBufPool = sync.Pool{
	New: func() any { return make([]rune, 0, 256) },
}

// SwitchEncoding returns s re-expressed in the target encoding. The
// original string is returned unchanged when it is already compatible;
// otherwise the conversion result is linked into s's cache ring, making
// repeated conversions to the same target O(1) after the first.
func (s *String) SwitchEncoding(target *enc.Encoding, policy TranscodePolicy) (*String, error) {
	if s.encID == target.ID() {
		return s, nil
	}
	if s.length == 0 {
		return Empty(target), nil
	}
	head := ringHead(s)
	if hit := cacheLookup(head, target.ID(), false); hit != nil {
		return hit, nil
	}
	out, err := s.transcode(target, policy)
	if err != nil {
		return nil, err
	}
	if out == s {
		return s, nil
	}
	out.flags &^= flagCacheHead
	return cacheInsert(head, out), nil
}

// transcode performs the actual conversion: a storage-sharing
// reinterpretation when the precise code range allows, a full
// decode/re-encode otherwise.
func (s *String) transcode(target *enc.Encoding, policy TranscodePolicy) (*String, error) {
	src := s.Encoding()
	cr := s.PreciseCodeRange()

	// 7-bit content is byte-identical across ASCII-compatible encodings
	// (compacted UTF-16/32 included): share storage, no copy.
	if cr.Is7Bit() && s.stride == 0 && src.ASCIICompatible() && target.ASCIICompatible() {
		st := s.materialize()
		return newString(st, s.offset, s.length, 0, target, enc.CR7Bit, true, s.length, 0), nil
	}

	// Latin-1 units are likewise interchangeable between the Latin-1
	// encoding and compacted UTF-16/32 storage.
	if cr.Is8Bit() && s.stride == 0 && s.latin1Units() && (target.ID() == enc.Latin1 || target.SupportsCompaction()) {
		st := s.materialize()
		return newString(st, s.offset, s.length, 0, target, cr, true, s.length, 0), nil
	}

	if cr.IsBroken() && policy == TranscodeStrict {
		return nil, ErrMalformedInput
	}

	cps := runeBufPool.Get().([]rune)[:0]
	defer func() { runeBufPool.Put(cps[:0]) }()
	var err error
	cps, err = s.appendCodePoints(cps, policy)
	if err != nil {
		return nil, err
	}
	return encodeCodePoints(cps, target, policy)
}

// latin1Units reports whether the string's stride-0 units are Latin-1
// codepoint values.
func (s *String) latin1Units() bool {
	return s.encID == enc.Latin1 || s.isCompact()
}

// appendCodePoints decodes the whole string into cps. Under TranscodeStrict
// a malformed sequence fails; otherwise placeholders are substituted.
func (s *String) appendCodePoints(cps []rune, policy TranscodePolicy) ([]rune, error) {
	e := s.Encoding()
	if e.UsesTransform() {
		// Transform-backed legacy content (including stream-only
		// encodings) decodes as one buffer.
		b := s.contentView()
		decoded, err := e.DecodeAll(b[s.offset : s.offset+s.length])
		if err != nil {
			return cps, ErrMalformedInput
		}
		for i := 0; i < len(decoded); {
			r, size := utf8.DecodeRune(decoded[i:])
			if r == utf8.RuneError && policy == TranscodeStrict {
				return cps, ErrMalformedInput
			}
			cps = append(cps, r)
			i += size
		}
		return cps, nil
	}
	b := s.contentView()
	for i := 0; i < s.length; {
		r, w := s.decodeAt(b, i)
		if r < 0 {
			if policy == TranscodeStrict {
				return cps, ErrMalformedInput
			}
			r = s.applyErrorHandling(b, i, r, BestEffort)
		}
		cps = append(cps, r)
		i += w
	}
	return cps, nil
}

// encodeCodePoints builds a new string in the target encoding from a
// codepoint sequence, substituting per policy. Transform-backed targets
// encode as one buffer so stateful encodings emit minimal escape sequences.
func encodeCodePoints(cps []rune, target *enc.Encoding, policy TranscodePolicy) (*String, error) {
	if target.UsesTransform() {
		u := make([]byte, 0, len(cps))
		var scratch [utf8.UTFMax]byte
		for _, cp := range cps {
			u = append(u, scratch[:utf8.EncodeRune(scratch[:], cp)]...)
		}
		out, err := target.EncodeAll(u, policy == TranscodeLossy)
		if err != nil {
			return nil, ErrUnrepresentable
		}
		return FromBytes(out, target, WithSharedBytes())
	}
	var scratch [8]byte
	buf := make([]byte, 0, len(cps)*target.UnitWidth())
	for _, cp := range cps {
		n, ok := target.EncodeRune(scratch[:], cp)
		if !ok {
			if policy == TranscodeStrict {
				return nil, ErrUnrepresentable
			}
			n = target.EncodeRuneReplace(scratch[:], cp)
		}
		buf = append(buf, scratch[:n]...)
	}
	out, err := FromBytes(buf, target, WithSharedBytes())
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ToNative returns a native-memory copy of s in the same encoding, cached
// in s's ring. The copy preserves the current stride.
func (s *String) ToNative() *String {
	if s.IsNative() {
		return s
	}
	head := ringHead(s)
	if hit := cacheLookup(head, s.encID, true); hit != nil {
		return hit
	}
	n := s.length << s.stride
	buf := nmem.Allocate(n)
	copy(buf.Bytes(), s.contentView()[s.offset:s.offset+n])
	st := &storage{kind: storeNative, native: buf}
	cpLen := -1
	if v := s.cpLen.Load(); v != 0 {
		cpLen = int(v - 1)
	}
	out := newString(st, 0, s.length, s.stride, s.Encoding(), s.CodeRange(), s.HasPreciseCodeRange(), cpLen, 0)
	return cacheInsert(head, out)
}

// ToGoString materializes the string as a Go (UTF-8) string, converting
// lossily if needed. The UTF-8 form is cached in the ring.
func (s *String) ToGoString() string {
	u, err := s.SwitchEncoding(enc.UTF8.Get(), TranscodeLossy)
	if err != nil {
		// Lossy conversion cannot fail.
		panic("strand: lossy conversion failed: " + err.Error())
	}
	b := u.contentView()
	return string(b[u.offset : u.offset+u.length])
}
