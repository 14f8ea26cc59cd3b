package pcx

import (
	"bytes"
	"testing"

	"github.com/johantibbelin/atari800/pkg/palette"
)

func solidPalette() *palette.Static {
	var entries [256]palette.RGB
	for i := range entries {
		entries[i] = palette.RGB{R: byte(i), G: byte(i), B: byte(i)}
	}
	return palette.NewStatic(entries)
}

// TestEncodeLiteralScenario checks a non-interlaced 4x2 framebuffer of
// uniform 0x05 pixels encodes to the expected header, RLE run, and palette block.
func TestEncodeLiteralScenario(t *testing.T) {
	pix := bytes.Repeat([]byte{0x05}, 8)
	fb := Framebuffer{Pix: pix, Stride: 4, Width: 4, Height: 2}
	pal := solidPalette()

	var buf bytes.Buffer
	if err := Encode(&buf, fb, pal); err != nil {
		t.Fatal(err)
	}
	out := buf.Bytes()

	wantHeaderPrefix := []byte{0x0A, 0x05, 0x01, 0x08, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x03, 0x00, 0x01, 0x00, 0x00, 0x00}
	if !bytes.Equal(out[:len(wantHeaderPrefix)], wantHeaderPrefix) {
		t.Fatalf("header prefix = % x, want % x", out[:len(wantHeaderPrefix)], wantHeaderPrefix)
	}

	if len(out) < 128 {
		t.Fatalf("file too short: %d bytes", len(out))
	}
	scanData := out[128:132]
	want := []byte{0xC4, 0x05, 0xC4, 0x05}
	if !bytes.Equal(scanData, want) {
		t.Fatalf("scan data = % x, want % x", scanData, want)
	}

	marker := out[132]
	if marker != 0x0C {
		t.Fatalf("palette marker = %#x, want 0x0C", marker)
	}
	paletteBlock := out[133:]
	if len(paletteBlock) != 768 {
		t.Fatalf("palette block length = %d, want 768", len(paletteBlock))
	}
	if paletteBlock[0] != 0 || paletteBlock[3] != 1 {
		t.Fatalf("palette entries 0/1 = %v %v", paletteBlock[0:3], paletteBlock[3:6])
	}
}

func TestEncodeSingleByteRunUnder0xC0Literal(t *testing.T) {
	// A lone byte < 0xC0 with run length 1 is emitted literally (one byte),
	// not as a (0xC0|1), value pair.
	pix := []byte{0x01, 0x02, 0x03, 0x04}
	fb := Framebuffer{Pix: pix, Stride: 4, Width: 4, Height: 1}
	pal := solidPalette()

	var buf bytes.Buffer
	if err := Encode(&buf, fb, pal); err != nil {
		t.Fatal(err)
	}
	scanData := buf.Bytes()[128:132]
	if !bytes.Equal(scanData, []byte{0x01, 0x02, 0x03, 0x04}) {
		t.Fatalf("scan data = % x", scanData)
	}
}

func TestEncodeByteAbove0xC0ForcesRunMarker(t *testing.T) {
	// A single byte >= 0xC0 must be escaped even with run length 1.
	pix := []byte{0xC5}
	fb := Framebuffer{Pix: pix, Stride: 1, Width: 1, Height: 1}
	pal := solidPalette()

	var buf bytes.Buffer
	if err := Encode(&buf, fb, pal); err != nil {
		t.Fatal(err)
	}
	scanData := buf.Bytes()[128:130]
	if !bytes.Equal(scanData, []byte{0xC1, 0xC5}) {
		t.Fatalf("scan data = % x, want C1 C5", scanData)
	}
}

func TestEncodeInterlacedOmitsPaletteBlock(t *testing.T) {
	pix1 := []byte{0x00, 0x00}
	pix2 := []byte{0xFF, 0xFF}
	fb1 := Framebuffer{Pix: pix1, Stride: 2, Width: 2, Height: 1}
	fb2 := Framebuffer{Pix: pix2, Stride: 2, Width: 2, Height: 1}

	var entries [256]palette.RGB
	entries[0x00] = palette.RGB{R: 0, G: 0, B: 0}
	entries[0xFF] = palette.RGB{R: 255, G: 255, B: 255}
	pal := palette.NewStatic(entries)

	var buf bytes.Buffer
	if err := EncodeInterlaced(&buf, fb1, fb2, pal); err != nil {
		t.Fatal(err)
	}
	out := buf.Bytes()
	// 128-byte header + 3 planes * 2 bytes each (2 pixels, uniform so RLE
	// collapses each plane's scanline into a single run-of-2 pair).
	if len(out) != 128+3*2 {
		t.Fatalf("unexpected length %d", len(out))
	}
	// Average of 0 and 255 is 127 for every channel/plane.
	for p := 0; p < 3; p++ {
		pair := out[128+p*2 : 128+p*2+2]
		if !bytes.Equal(pair, []byte{0xC2, 127}) {
			t.Fatalf("plane %d = % x, want run of 127", p, pair)
		}
	}
}
