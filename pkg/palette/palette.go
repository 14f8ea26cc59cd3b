// Package palette defines a palette source: a fixed 256-entry mapping
// from an 8-bit index to an (R,G,B) color, plus a reference
// implementation for tests and the demo CLI.
package palette

// Source resolves an 8-bit palette index to its RGB color, both as
// separate components and as a packed 24-bit value. Implementations are
// expected to be fixed for the file's lifetime.
type Source interface {
	// Lookup returns the (R,G,B) bytes for index.
	Lookup(index byte) (r, g, b byte)
	// Packed returns the 24-bit packed RGB for index, as R<<16 | G<<8 | B.
	Packed(index byte) uint32
}

// RGB is one 256-entry palette slot.
type RGB struct {
	R, G, B byte
}

// Static is a fixed 256-entry in-memory PaletteSource.
type Static struct {
	entries [256]RGB
}

// NewStatic builds a Static palette from exactly 256 entries.
func NewStatic(entries [256]RGB) *Static {
	return &Static{entries: entries}
}

// Lookup implements Source.
func (p *Static) Lookup(index byte) (r, g, b byte) {
	e := p.entries[index]
	return e.R, e.G, e.B
}

// Packed implements Source.
func (p *Static) Packed(index byte) uint32 {
	e := p.entries[index]
	return uint32(e.R)<<16 | uint32(e.G)<<8 | uint32(e.B)
}

// Entries returns a copy of the 256 RGB entries, e.g. for writing a PCX or
// AVI strf palette block.
func (p *Static) Entries() [256]RGB {
	return p.entries
}
