package enc

import "testing"

func TestDecodeRune(t *testing.T) {
	tests := []struct {
		name     string
		id       ID
		in       []byte
		wantCP   rune
		wantSize int
	}{
		{"ascii", ASCII, []byte{'a'}, 'a', 1},
		{"latin1 high byte", Latin1, []byte{0xFF}, 0xFF, 1},
		{"utf8 one byte", UTF8, []byte{'a'}, 'a', 1},
		{"utf8 two bytes", UTF8, []byte{0xC3, 0xA9}, 0xE9, 2},
		{"utf8 three bytes", UTF8, []byte{0xE3, 0x81, 0x82}, 0x3042, 3},
		{"utf8 four bytes", UTF8, []byte{0xF0, 0x90, 0x90, 0xB7}, 0x10437, 4},
		{"utf16 bmp", UTF16, []byte{0x42, 0x30}, 0x3042, 2},
		{"utf16 pair", UTF16, []byte{0x01, 0xD8, 0x37, 0xDC}, 0x10437, 4},
		{"utf16be bmp", UTF16BE, []byte{0x30, 0x42}, 0x3042, 2},
		{"utf32", UTF32, []byte{0x37, 0x04, 0x01, 0x00}, 0x10437, 4},
		{"utf32be", UTF32BE, []byte{0x00, 0x01, 0x04, 0x37}, 0x10437, 4},
		{"koi8r", KOI8R, []byte{0xFF}, 0x042A, 1},
		{"shift jis", ShiftJIS, []byte{0x82, 0xA0}, 0x3042, 2},
		{"ebcdic", EBCDIC, []byte{0xC1}, 'A', 1},
		{"bytes passthrough", Bytes, []byte{0xFE}, 0xFE, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cp, size := Get(tt.id).DecodeRune(tt.in)
			if cp != tt.wantCP || size != tt.wantSize {
				t.Errorf("DecodeRune() = (%#x, %d), want (%#x, %d)", cp, size, tt.wantCP, tt.wantSize)
			}
		})
	}
}

func TestDecodeRuneMalformed(t *testing.T) {
	tests := []struct {
		name string
		id   ID
		in   []byte
	}{
		{"utf8 lone continuation", UTF8, []byte{0x80}},
		{"utf8 invalid lead", UTF8, []byte{0xFF}},
		{"utf8 overlong", UTF8, []byte{0xC0, 0x80}},
		{"utf16 unpaired high", UTF16, []byte{0x01, 0xD8, 'a', 0x00}},
		{"utf32 surrogate value", UTF32, []byte{0x00, 0xD8, 0x00, 0x00}},
		{"utf32 out of range", UTF32, []byte{0x00, 0x00, 0x11, 0x00}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cp, size := Get(tt.id).DecodeRune(tt.in)
			if cp >= 0 {
				t.Errorf("DecodeRune() = (%#x, %d), want negative codepoint", cp, size)
			}
			if size <= 0 {
				t.Errorf("malformed decode must still make progress, size %d", size)
			}
		})
	}
}

func TestDecodeRuneTruncated(t *testing.T) {
	cp, _ := Get(UTF8).DecodeRune([]byte{0xE3, 0x81})
	if cp != IncompleteRune(1) {
		t.Errorf("truncated 3-byte sequence: cp = %#x, want IncompleteRune(1)", cp)
	}
	if MissingBytes(cp) != 1 {
		t.Errorf("MissingBytes = %d, want 1", MissingBytes(cp))
	}
}

func TestEncodeRune(t *testing.T) {
	tests := []struct {
		name string
		id   ID
		cp   rune
		want []byte
	}{
		{"ascii", ASCII, 'a', []byte{'a'}},
		{"latin1", Latin1, 0xE9, []byte{0xE9}},
		{"utf8 two bytes", UTF8, 0xE9, []byte{0xC3, 0xA9}},
		{"utf8 four bytes", UTF8, 0x10437, []byte{0xF0, 0x90, 0x90, 0xB7}},
		{"utf16 pair", UTF16, 0x10437, []byte{0x01, 0xD8, 0x37, 0xDC}},
		{"utf16be bmp", UTF16BE, 0x3042, []byte{0x30, 0x42}},
		{"utf32", UTF32, 0x10437, []byte{0x37, 0x04, 0x01, 0x00}},
		{"koi8r", KOI8R, 0x042A, []byte{0xFF}},
		{"shift jis", ShiftJIS, 0x3042, []byte{0x82, 0xA0}},
		{"ebcdic", EBCDIC, 'A', []byte{0xC1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf [8]byte
			n, ok := Get(tt.id).EncodeRune(buf[:], tt.cp)
			if !ok {
				t.Fatalf("EncodeRune(%#x) not representable", tt.cp)
			}
			if string(buf[:n]) != string(tt.want) {
				t.Errorf("EncodeRune(%#x) = % x, want % x", tt.cp, buf[:n], tt.want)
			}
		})
	}
}

func TestEncodeRuneUnrepresentable(t *testing.T) {
	var buf [8]byte
	if _, ok := Get(ASCII).EncodeRune(buf[:], 0xE9); ok {
		t.Error("ASCII cannot encode U+00E9")
	}
	if _, ok := Get(Latin1).EncodeRune(buf[:], 0x3042); ok {
		t.Error("Latin-1 cannot encode U+3042")
	}
	if _, ok := Get(UTF8).EncodeRune(buf[:], 0xD800); ok {
		t.Error("surrogate values are not encodable")
	}
	n := Get(ASCII).EncodeRuneReplace(buf[:], 0xE9)
	if n != 1 || buf[0] != '?' {
		t.Errorf("EncodeRuneReplace fallback = % x, want '?'", buf[:n])
	}
}

func TestScanBytes(t *testing.T) {
	tests := []struct {
		name      string
		id        ID
		in        []byte
		wantCPLen int
		wantCR    CodeRange
	}{
		{"empty utf8", UTF8, nil, 0, CR7Bit},
		{"ascii utf8", UTF8, []byte("hello"), 5, CR7Bit},
		{"two byte utf8", UTF8, []byte{0x68, 0xC3, 0xA9}, 2, CRValid},
		{"three byte utf8", UTF8, []byte{0xE3, 0x81, 0x82}, 1, CRValid},
		{"astral utf8", UTF8, []byte{0xF0, 0x90, 0x90, 0xB7}, 1, CRValid},
		{"broken utf8", UTF8, []byte{0x61, 0xFF}, 2, CRBroken},
		{"truncated utf8", UTF8, []byte{0xE3, 0x81}, 1, CRBroken},
		{"ascii latin1", Latin1, []byte("abc"), 3, CR7Bit},
		{"high latin1", Latin1, []byte{0xFF}, 1, CR8Bit},
		{"shift jis ascii", ShiftJIS, []byte("abc"), 3, CR7Bit},
		{"shift jis kana", ShiftJIS, []byte{0x82, 0xA0}, 1, CRValid},
		{"shift jis broken", ShiftJIS, []byte{0x82}, 1, CRBroken},
		{"bytes arbitrary", Bytes, []byte{0x00, 0xFF}, 2, CRValid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cpLen, cr := Get(tt.id).ScanBytes(tt.in)
			if cpLen != tt.wantCPLen || cr != tt.wantCR {
				t.Errorf("ScanBytes() = (%d, %v), want (%d, %v)", cpLen, cr, tt.wantCPLen, tt.wantCR)
			}
		})
	}
}

func TestPlaceholder(t *testing.T) {
	if Get(UTF8).Placeholder() != 0xFFFD {
		t.Error("UTF-8 placeholder should be U+FFFD")
	}
	if Get(UTF16).Placeholder() != 0xFFFD {
		t.Error("UTF-16 placeholder should be U+FFFD")
	}
	if Get(ASCII).Placeholder() != '?' {
		t.Error("byte encoding placeholder should be '?'")
	}
}
