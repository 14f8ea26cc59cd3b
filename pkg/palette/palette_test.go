package palette

import "testing"

func TestStaticLookupAndPacked(t *testing.T) {
	var entries [256]RGB
	entries[5] = RGB{0x10, 0x20, 0x30}
	p := NewStatic(entries)

	r, g, b := p.Lookup(5)
	if r != 0x10 || g != 0x20 || b != 0x30 {
		t.Fatalf("Lookup(5) = %x %x %x", r, g, b)
	}
	if got, want := p.Packed(5), uint32(0x102030); got != want {
		t.Fatalf("Packed(5) = %#x, want %#x", got, want)
	}
}

func TestNTSCPaletteGreyscaleAtHueZero(t *testing.T) {
	p := NTSCPalette()
	for lum := 0; lum < 8; lum++ {
		idx := byte(lum << 1)
		r, g, b := p.Lookup(idx)
		if r != g || g != b {
			t.Fatalf("hue 0 luminance %d not grey: %d %d %d", lum, r, g, b)
		}
	}
}

func TestNTSCPaletteLuminanceMonotonic(t *testing.T) {
	p := NTSCPalette()
	var prev byte
	for lum := 0; lum < 8; lum++ {
		r, _, _ := p.Lookup(byte(lum << 1))
		if lum > 0 && r < prev {
			t.Fatalf("luminance %d darker than %d (%d < %d)", lum, lum-1, r, prev)
		}
		prev = r
	}
}
