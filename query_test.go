package strand

import (
	"testing"

	"github.com/dshills/strand/enc"
)

func TestHashCode(t *testing.T) {
	a := FromGoString("hello")
	b := FromGoString("hello")
	if a.HashCode() != b.HashCode() {
		t.Error("equal content must hash equal")
	}
	if a.HashCode() == 0 {
		t.Error("hash zero is reserved for the unknown state")
	}
	if Empty(enc.UTF8.Get()).HashCode() == 0 {
		t.Error("empty string hash must still be nonzero")
	}

	// Unit-based hashing: the same codepoints hash equal across strides.
	u16, err := FromCodePoints([]rune("hello"), enc.UTF16.Get())
	if err != nil {
		t.Fatal(err)
	}
	if u16.HashCode() != a.HashCode() {
		t.Error("ASCII content should hash identically in UTF-8 and compacted UTF-16")
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b *String
		want bool
	}{
		{"same content", FromGoString("abc"), FromGoString("abc"), true},
		{"different content", FromGoString("abc"), FromGoString("abd"), false},
		{"different length", FromGoString("ab"), FromGoString("abc"), false},
		{"both empty", FromGoString(""), FromGoString(""), true},
		{"first unit differs", FromGoString("xbc"), FromGoString("abc"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEqualCrossEncoding(t *testing.T) {
	ascii, err := FromBytes([]byte("abc"), enc.ASCII.Get())
	if err != nil {
		t.Fatal(err)
	}
	utf8s := FromGoString("abc")
	if !ascii.Equal(utf8s) || !utf8s.Equal(ascii) {
		t.Error("7-bit content should compare equal across ASCII-compatible encodings")
	}

	u16, err := FromCodePoints([]rune("abc"), enc.UTF16.Get())
	if err != nil {
		t.Fatal(err)
	}
	if !u16.Equal(utf8s) {
		t.Error("compacted UTF-16 ASCII should equal UTF-8 ASCII")
	}

	lat, err := FromBytes([]byte{0xE9}, enc.Latin1.Get())
	if err != nil {
		t.Fatal(err)
	}
	u8, err := lat.SwitchEncoding(enc.UTF8.Get(), TranscodeStrict)
	if err != nil {
		t.Fatal(err)
	}
	if lat.Equal(u8) {
		t.Error("non-7-bit content never compares equal across encodings")
	}
}

func TestEqualCompactedVsWide(t *testing.T) {
	// Same codepoints, same encoding, different strides: FromUTF16Units does
	// not compact a string built with BMP units, FromCodePoints does compact
	// ASCII, so force the wide form via units that prevent compaction and
	// then substring down.
	wide := FromUTF16Units([]uint16{'a', 'b', 0x3042})
	sub := wide.Substring(0, 2)
	narrow, err := FromCodePoints([]rune("ab"), enc.UTF16.Get())
	if err != nil {
		t.Fatal(err)
	}
	if sub.Stride() != 1 || narrow.Stride() != 0 {
		t.Fatalf("stride setup: sub %d, narrow %d", sub.Stride(), narrow.Stride())
	}
	if !sub.Equal(narrow) || !narrow.Equal(sub) {
		t.Error("stride must not affect equality")
	}
	if sub.HashCode() != narrow.HashCode() {
		t.Error("stride must not affect the hash")
	}
}

func TestRegionEqual(t *testing.T) {
	s := FromGoString("hello world")
	o := FromGoString("world peace")
	if !s.RegionEqual(6, o, 0, 5) {
		t.Error("'world' regions should match")
	}
	if s.RegionEqual(0, o, 0, 5) {
		t.Error("'hello' vs 'world' should not match")
	}
	if !s.RegionEqual(0, o, 0, 0) {
		t.Error("empty region always matches")
	}
	if s.RegionEqual(8, o, 0, 5) {
		t.Error("out-of-bounds region compares false")
	}
	if s.RegionEqual(0, s, 0, -1) {
		t.Error("negative-length region compares false")
	}
	if s.RegionEqual(-1, o, 0, 2) || s.RegionEqual(0, o, -1, 2) {
		t.Error("negative start compares false")
	}
}

func TestCompareUnits(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"equal", "abc", "abc", 0},
		{"less", "abc", "abd", -1},
		{"greater", "abd", "abc", 1},
		{"prefix orders first", "ab", "abc", -1},
		{"longer orders last", "abc", "ab", 1},
		{"empty vs any", "", "a", -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromGoString(tt.a).CompareUnits(FromGoString(tt.b)); got != tt.want {
				t.Errorf("CompareUnits() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCodePointAtUnitIndex(t *testing.T) {
	s := FromGoString("aé𐐷")
	if cp := s.CodePointAtUnitIndex(0, ReturnNegative); cp != 'a' {
		t.Errorf("cp at 0 = %#x", cp)
	}
	if cp := s.CodePointAtUnitIndex(1, ReturnNegative); cp != 0xE9 {
		t.Errorf("cp at 1 = %#x", cp)
	}
	if cp := s.CodePointAtUnitIndex(3, ReturnNegative); cp != 0x10437 {
		t.Errorf("cp at 3 = %#x", cp)
	}
}

func TestCodePointAtIndexUTF16(t *testing.T) {
	s, err := FromCodePoints([]rune{'A', 0x10000}, enc.UTF16.Get())
	if err != nil {
		t.Fatal(err)
	}
	if s.Length() != 3 || s.CodePointLength() != 2 {
		t.Fatalf("Length() = %d, CodePointLength() = %d", s.Length(), s.CodePointLength())
	}
	if cp := s.CodePointAtIndex(0, ReturnNegative); cp != 'A' {
		t.Errorf("cp index 0 = %#x", cp)
	}
	if cp := s.CodePointAtIndex(1, ReturnNegative); cp != 0x10000 {
		t.Errorf("cp index 1 = %#x", cp)
	}
}

func TestErrorHandlingModes(t *testing.T) {
	broken, err := FromBytes([]byte{0x61, 0xFF, 0x62}, enc.UTF8.Get())
	if err != nil {
		t.Fatal(err)
	}
	if cp := broken.CodePointAtUnitIndex(1, BestEffort); cp != 0xFFFD {
		t.Errorf("best effort = %#x, want U+FFFD", cp)
	}
	if cp := broken.CodePointAtUnitIndex(1, ReturnNegative); cp >= 0 {
		t.Errorf("return negative = %#x, want negative", cp)
	}

	// Best-effort UTF-16 echoes the unpaired surrogate unit.
	lone := FromUTF16Units([]uint16{0xD801})
	if cp := lone.CodePointAtUnitIndex(0, BestEffort); cp != 0xD801 {
		t.Errorf("UTF-16 echo = %#x, want 0xD801", cp)
	}
}

func TestIndexTranslation(t *testing.T) {
	s := FromGoString("aé𐐷b") // byte widths 1, 2, 4, 1
	starts := []int{0, 1, 3, 7}
	for cpIdx, unitIdx := range starts {
		if got := s.CodePointIndexToUnitIndex(cpIdx); got != unitIdx {
			t.Errorf("CodePointIndexToUnitIndex(%d) = %d, want %d", cpIdx, got, unitIdx)
		}
		if got := s.UnitIndexToCodePointIndex(unitIdx); got != cpIdx {
			t.Errorf("UnitIndexToCodePointIndex(%d) = %d, want %d", unitIdx, got, cpIdx)
		}
	}
	// A unit index inside a multi-unit sequence rounds up to the next
	// codepoint boundary.
	if got := s.UnitIndexToCodePointIndex(2); got != 2 {
		t.Errorf("UnitIndexToCodePointIndex(2) = %d, want 2", got)
	}
	if got := s.UnitIndexToCodePointIndex(5); got != 3 {
		t.Errorf("UnitIndexToCodePointIndex(5) = %d, want 3", got)
	}

	// Direct translation for fixed-width content.
	ascii := FromGoString("abcd")
	if ascii.CodePointIndexToUnitIndex(3) != 3 || ascii.UnitIndexToCodePointIndex(2) != 2 {
		t.Error("7-bit UTF-8 should translate one-to-one")
	}
}

func TestStreamOnlyRandomAccessPanics(t *testing.T) {
	iso, _ := enc.Lookup("ISO-2022-JP")
	s, err := FromBytes([]byte("ascii"), iso)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name string
		op   func()
	}{
		{"CodePointAtUnitIndex", func() { s.CodePointAtUnitIndex(0, BestEffort) }},
		{"CodePointIndexToUnitIndex", func() { s.CodePointIndexToUnitIndex(0) }},
		{"UnitIndexToCodePointIndex", func() { s.UnitIndexToCodePointIndex(1) }},
		{"IndexOfCodePoint", func() { s.IndexOfCodePoint('a', 0, s.Length()) }},
		{"LastIndexOfCodePoint", func() { s.LastIndexOfCodePoint('a', 0, s.Length()) }},
		{"IndexOfAnyCodePoint", func() { s.IndexOfAnyCodePoint([]rune{'a'}, 0, s.Length()) }},
		{"Substring", func() { s.Substring(1, 2) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("random access into a stateful encoding should panic")
				}
			}()
			tt.op()
		})
	}
}
