package strand

import (
	"bytes"
	"errors"
	"testing"

	"github.com/dshills/strand/enc"
	"github.com/dshills/strand/nmem"
)

func TestEmpty(t *testing.T) {
	e := enc.UTF8.Get()
	a, b := Empty(e), Empty(e)
	if a != b {
		t.Error("empty strings should be canonical per encoding")
	}
	if !a.IsEmpty() || a.Length() != 0 || a.CodePointLength() != 0 {
		t.Error("empty string has content")
	}
	if a.CodeRange() != enc.CR7Bit || !a.HasPreciseCodeRange() {
		t.Error("empty string should be precise 7-bit")
	}
	if Empty(enc.UTF16.Get()) == a {
		t.Error("empty strings are per-encoding")
	}
}

func TestFromBytesUTF8(t *testing.T) {
	s, err := FromBytes([]byte("hello"), enc.UTF8.Get())
	if err != nil {
		t.Fatal(err)
	}
	if s.Length() != 5 || s.CodePointLength() != 5 {
		t.Errorf("Length() = %d, CodePointLength() = %d", s.Length(), s.CodePointLength())
	}
	if s.CodeRange() != enc.CR7Bit || !s.HasPreciseCodeRange() {
		t.Errorf("CodeRange() = %v, precise %v", s.CodeRange(), s.HasPreciseCodeRange())
	}
	if s.Stride() != 0 {
		t.Errorf("Stride() = %d", s.Stride())
	}
	if !bytes.Equal(s.Bytes(), []byte("hello")) {
		t.Error("content mismatch")
	}
}

func TestFromBytesCompaction(t *testing.T) {
	tests := []struct {
		name       string
		in         []byte // little-endian UTF-16 serialization
		wantStride int
		wantCR     enc.CodeRange
		wantCPLen  int
	}{
		{"ascii compacts", []byte{0x41, 0x00, 0x42, 0x00}, 0, enc.CR7Bit, 2},
		{"latin1 compacts", []byte{0xE9, 0x00}, 0, enc.CR8Bit, 1},
		{"bmp keeps stride 1", []byte{0x42, 0x30}, 1, enc.CR16Bit, 1},
		{"astral keeps stride 1", []byte{0x01, 0xD8, 0x37, 0xDC}, 1, enc.CRValid, 1},
		{"unpaired surrogate broken", []byte{0x01, 0xD8, 0x41, 0x00}, 1, enc.CRBroken, 2},
	}
	e := enc.UTF16.Get()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := FromBytes(tt.in, e)
			if err != nil {
				t.Fatal(err)
			}
			if s.Stride() != tt.wantStride {
				t.Errorf("Stride() = %d, want %d", s.Stride(), tt.wantStride)
			}
			if s.CodeRange() != tt.wantCR {
				t.Errorf("CodeRange() = %v, want %v", s.CodeRange(), tt.wantCR)
			}
			if s.CodePointLength() != tt.wantCPLen {
				t.Errorf("CodePointLength() = %d, want %d", s.CodePointLength(), tt.wantCPLen)
			}
			// Bytes always re-serializes at the natural unit width.
			if !bytes.Equal(s.Bytes(), tt.in) {
				t.Errorf("Bytes() = % x, want % x", s.Bytes(), tt.in)
			}
		})
	}
}

func TestFromBytesErrors(t *testing.T) {
	if _, err := FromBytes([]byte{0x41}, enc.UTF16.Get()); !errors.Is(err, ErrMalformedLength) {
		t.Errorf("odd UTF-16 length: err = %v", err)
	}
	if _, err := FromBytes([]byte{0x41, 0x00, 0x00}, enc.UTF32.Get()); !errors.Is(err, ErrMalformedLength) {
		t.Errorf("short UTF-32 length: err = %v", err)
	}
}

func TestFromCodePoints(t *testing.T) {
	s, err := FromCodePoints([]rune("aé€𐐷"), enc.UTF16.Get())
	if err != nil {
		t.Fatal(err)
	}
	if s.Length() != 5 { // a, é, €, then a surrogate pair
		t.Errorf("Length() = %d, want 5", s.Length())
	}
	if s.CodePointLength() != 4 {
		t.Errorf("CodePointLength() = %d, want 4", s.CodePointLength())
	}
	if s.CodeRange() != enc.CRValid {
		t.Errorf("CodeRange() = %v", s.CodeRange())
	}

	if _, err := FromCodePoints([]rune{0x3042}, enc.ASCII.Get()); !errors.Is(err, ErrUnrepresentable) {
		t.Errorf("ASCII kana: err = %v", err)
	}
	if _, err := FromCodePoints([]rune{0xD800}, enc.UTF8.Get()); !errors.Is(err, ErrUnrepresentable) {
		t.Errorf("surrogate codepoint: err = %v", err)
	}
}

func TestFromCodePointsUTF32Compacts(t *testing.T) {
	s, err := FromCodePoints([]rune("AB"), enc.UTF32.Get())
	if err != nil {
		t.Fatal(err)
	}
	if s.Stride() != 0 {
		t.Errorf("ASCII UTF-32 should compact to stride 0, got %d", s.Stride())
	}
	if s.ByteLength() != 2 {
		t.Errorf("ByteLength() = %d, want 2", s.ByteLength())
	}
	wide, err := FromCodePoints([]rune{0x10437}, enc.UTF32.Get())
	if err != nil {
		t.Fatal(err)
	}
	if wide.Stride() != 2 {
		t.Errorf("astral UTF-32 stride = %d, want 2", wide.Stride())
	}
}

func TestFromUTF16Units(t *testing.T) {
	s := FromUTF16Units([]uint16{0x41, 0xD801, 0xDC37})
	if s.Length() != 3 || s.CodePointLength() != 2 {
		t.Errorf("Length() = %d, CodePointLength() = %d", s.Length(), s.CodePointLength())
	}
	if s.CodeRange() != enc.CRValid {
		t.Errorf("CodeRange() = %v", s.CodeRange())
	}
	if s.ReadUnit(1) != 0xD801 {
		t.Errorf("ReadUnit(1) = %#x", s.ReadUnit(1))
	}

	broken := FromUTF16Units([]uint16{0xD801})
	if broken.CodeRange() != enc.CRBroken || !broken.HasPreciseCodeRange() {
		t.Error("lone surrogate should scan precise broken")
	}
}

func TestFromUTF32Units(t *testing.T) {
	s := FromUTF32Units([]uint32{0x41, 0x10437})
	if s.Length() != 2 || s.CodePointLength() != 2 {
		t.Errorf("Length() = %d, CodePointLength() = %d", s.Length(), s.CodePointLength())
	}
	if s.Stride() != 2 {
		t.Errorf("Stride() = %d", s.Stride())
	}
	if FromUTF32Units([]uint32{0x110000}).CodeRange() != enc.CRBroken {
		t.Error("out-of-range unit should be broken")
	}
}

func TestFromCodePoint(t *testing.T) {
	s := FromCodePoint('A', enc.Latin1.Get())
	if s == nil || s.Length() != 1 {
		t.Fatal("single codepoint construction failed")
	}
	if FromCodePoint(0x3042, enc.Latin1.Get()) != nil {
		t.Error("unrepresentable codepoint should yield nil")
	}
}

func TestFromInt(t *testing.T) {
	tests := []struct {
		v    int64
		want string
	}{
		{0, "0"},
		{7, "7"},
		{-1, "-1"},
		{12345, "12345"},
		{-9223372036854775808, "-9223372036854775808"},
		{9223372036854775807, "9223372036854775807"},
	}
	for _, tt := range tests {
		s := FromInt(tt.v, enc.UTF8.Get())
		if s.Length() != len(tt.want) {
			t.Errorf("FromInt(%d).Length() = %d, want %d", tt.v, s.Length(), len(tt.want))
		}
		if got := s.ToGoString(); got != tt.want {
			t.Errorf("FromInt(%d) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestFromIntDefersDigits(t *testing.T) {
	s := FromInt(123456, enc.UTF8.Get())
	if s.data.Load().kind != storeLazyInt {
		t.Fatal("decimal form should be deferred for byte encodings")
	}
	if s.ReadUnit(0) != '1' {
		t.Errorf("ReadUnit(0) = %c", s.ReadUnit(0))
	}
	if s.data.Load().kind != storeBytes {
		t.Error("read should have materialized the digits")
	}
}

func TestFromIntCompactEncoding(t *testing.T) {
	s := FromInt(-42, enc.UTF16.Get())
	if s.data.Load().kind != storeBytes {
		t.Error("compactable encodings build digits eagerly")
	}
	if s.Stride() != 0 || s.Length() != 3 {
		t.Errorf("Stride() = %d, Length() = %d", s.Stride(), s.Length())
	}
	if got := s.ToGoString(); got != "-42" {
		t.Errorf("ToGoString() = %q", got)
	}
}

func TestFromNative(t *testing.T) {
	buf := nmem.FromBytes([]byte("native content"))
	s, err := FromNative(buf, 0, buf.Size(), enc.UTF8.Get())
	if err != nil {
		t.Fatal(err)
	}
	if !s.IsNative() {
		t.Error("IsNative() = false")
	}
	if got := s.ToGoString(); got != "native content" {
		t.Errorf("content = %q", got)
	}

	if _, err := FromNative(buf, 8, buf.Size(), enc.UTF8.Get()); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("oversized region: err = %v", err)
	}
	if _, err := FromNative(buf, 0, 3, enc.UTF16.Get()); !errors.Is(err, ErrMalformedLength) {
		t.Errorf("odd UTF-16 region: err = %v", err)
	}
}

func TestFromGoString(t *testing.T) {
	s := FromGoString("héllo")
	if !s.IsForeignView() {
		t.Error("IsForeignView() = false")
	}
	if s.Encoding().ID() != enc.UTF8 {
		t.Error("Go strings are UTF-8")
	}
	if s.CodePointLength() != 5 {
		t.Errorf("CodePointLength() = %d", s.CodePointLength())
	}
	if FromGoString("") != Empty(enc.UTF8.Get()) {
		t.Error("empty Go string should be the canonical empty")
	}
}

func TestWithKnownAttributes(t *testing.T) {
	s, err := FromBytes([]byte("abc"), enc.UTF8.Get(), WithKnownAttributes(enc.CR7Bit, 3))
	if err != nil {
		t.Fatal(err)
	}
	if s.CodeRange() != enc.CR7Bit || s.CodePointLength() != 3 {
		t.Error("supplied attributes not adopted")
	}
}
