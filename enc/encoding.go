package enc

import (
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// ID is the stable small-integer identity of an encoding. IDs index the
// registry table and never change between releases.
type ID uint8

// family selects the codec implementation for an encoding. Native UTF
// families are implemented directly; legacy encodings dispatch through
// x/text charmaps or transforms.
type family uint8

const (
	famASCII family = iota
	famLatin1
	famUTF8
	famUTF16 // canonical unit-order UTF-16, unit-based, compactable
	famUTF16Swap
	famUTF32 // canonical unit-order UTF-32, unit-based, compactable
	famUTF32Swap
	famBytes   // raw bytes, every value well-formed
	famCharmap // single-byte table encoding
	famXForm   // multibyte transform-backed encoding
)

// Encoding is an immutable descriptor for one supported character encoding.
// All descriptors live in the registry table; user code holds *Encoding
// pointers obtained via Get or Lookup and never constructs one.
type Encoding struct {
	id         ID
	name       string
	aliases    []string
	fam        family
	unitWidth  int // bytes per natural unit: 1, 2 or 4
	fixedWidth bool
	ascii      bool // ASCII bytes encode ASCII codepoints
	latin1     bool // can hold any Latin-1 codepoint
	bmp        bool // can hold any BMP codepoint
	maxCR      CodeRange
	big        bool // byte-swapped UTF variant stores big-endian units
	streamOnly bool // stateful; random-access decode unsupported
	cmap       *charmap.Charmap
	xenc       encoding.Encoding
}

// ID returns the encoding's stable identity.
func (e *Encoding) ID() ID { return e.id }

// Name returns the canonical IANA-style name.
func (e *Encoding) Name() string { return e.name }

// String returns the canonical name.
func (e *Encoding) String() string { return e.name }

// UnitWidth returns the natural unit width in bytes (1, 2 or 4).
func (e *Encoding) UnitWidth() int { return e.unitWidth }

// FixedWidth reports whether every codepoint occupies exactly one natural
// unit.
func (e *Encoding) FixedWidth() bool { return e.fixedWidth }

// ASCIICompatible reports whether bytes 0x00-0x7F encode the corresponding
// ASCII codepoints.
func (e *Encoding) ASCIICompatible() bool { return e.ascii }

// Latin1Compatible reports whether any Latin-1 codepoint is representable.
func (e *Encoding) Latin1Compatible() bool { return e.latin1 }

// BMPCompatible reports whether any BMP codepoint is representable. Implies
// UnitWidth >= 2 for fixed-width encodings.
func (e *Encoding) BMPCompatible() bool { return e.bmp }

// MaxCodeRange returns the most permissive code range content in this
// encoding can have while remaining well-formed.
func (e *Encoding) MaxCodeRange() CodeRange { return e.maxCR }

// StreamOnly reports whether the encoding is stateful, so decoding cannot
// start at an arbitrary byte offset. Scans and transcodes of stream-only
// encodings go through whole-buffer transforms.
func (e *Encoding) StreamOnly() bool { return e.streamOnly }

// IsSingleByte reports whether every codepoint occupies exactly one byte.
func (e *Encoding) IsSingleByte() bool { return e.fixedWidth && e.unitWidth == 1 }

// IsUTF16 reports whether this is the canonical unit-based UTF-16 encoding.
func (e *Encoding) IsUTF16() bool { return e.fam == famUTF16 }

// IsUTF32 reports whether this is the canonical unit-based UTF-32 encoding.
func (e *Encoding) IsUTF32() bool { return e.fam == famUTF32 }

// SupportsCompaction reports whether string storage in this encoding may use
// a stride below the natural unit width. Only the canonical UTF-16 and
// UTF-32 encodings compact.
func (e *Encoding) SupportsCompaction() bool {
	return e.fam == famUTF16 || e.fam == famUTF32
}

// Get returns the descriptor for id. It panics if id is out of range, since
// IDs originate from this package's constants.
func Get(id ID) *Encoding {
	return &table[id]
}

// Get returns the descriptor for the ID, for call chaining off the
// constants: enc.UTF8.Get().
func (id ID) Get() *Encoding { return Get(id) }

// Count returns the number of registered encodings.
func Count() int { return len(table) }

// Lookup finds an encoding by canonical name or alias. Matching is
// case-insensitive and ignores '-' vs '_' differences.
func Lookup(name string) (*Encoding, bool) {
	e, ok := byName[foldName(name)]
	return e, ok
}

func foldName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'A' && c <= 'Z':
			c += 'a' - 'A'
		case c == '_':
			c = '-'
		}
		b.WriteByte(c)
	}
	return b.String()
}

var byName = func() map[string]*Encoding {
	m := make(map[string]*Encoding, len(table)*2)
	for i := range table {
		e := &table[i]
		m[foldName(e.name)] = e
		for _, a := range e.aliases {
			m[foldName(a)] = e
		}
	}
	return m
}()
