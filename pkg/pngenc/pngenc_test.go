package pngenc

import (
	"bytes"
	"compress/zlib"
	"io"
	"testing"

	"github.com/johantibbelin/atari800/pkg/palette"
	"github.com/johantibbelin/atari800/pkg/pcx"
)

func testPalette() *palette.Static {
	var entries [256]palette.RGB
	entries[0] = palette.RGB{R: 10, G: 20, B: 30}
	entries[1] = palette.RGB{R: 200, G: 210, B: 220}
	return palette.NewStatic(entries)
}

func TestEncodeHasValidSignatureAndChunks(t *testing.T) {
	fb := pcx.Framebuffer{Pix: []byte{0, 1, 1, 0}, Stride: 2, Width: 2, Height: 2}
	var buf bytes.Buffer
	if err := Encode(&buf, fb, testPalette(), 6); err != nil {
		t.Fatal(err)
	}
	out := buf.Bytes()
	want := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'}
	if !bytes.Equal(out[:8], want) {
		t.Fatalf("signature = % x", out[:8])
	}
	if string(out[12:16]) != "IHDR" {
		t.Fatalf("first chunk = %q, want IHDR", out[12:16])
	}
}

// The IDAT payload must be a valid zlib stream stdlib compress/zlib can
// decompress back to the original filtered scanlines.
func TestEncodeIDATRoundTrips(t *testing.T) {
	fb := pcx.Framebuffer{Pix: []byte{0, 1, 1, 0}, Stride: 2, Width: 2, Height: 2}
	var buf bytes.Buffer
	if err := Encode(&buf, fb, testPalette(), 9); err != nil {
		t.Fatal(err)
	}
	idat := extractChunk(t, buf.Bytes(), "IDAT")

	zr, err := zlib.NewReader(bytes.NewReader(idat))
	if err != nil {
		t.Fatal(err)
	}
	raw, err := io.ReadAll(zr)
	if err != nil {
		t.Fatal(err)
	}
	// 2 scanlines, each: filter byte + 2 pixel bytes.
	want := []byte{0, 0, 1, 0, 1, 0}
	if !bytes.Equal(raw, want) {
		t.Fatalf("decompressed scanlines = % x, want % x", raw, want)
	}
}

func TestEncodeInterlacedProducesTruecolor(t *testing.T) {
	fb1 := pcx.Framebuffer{Pix: []byte{0}, Stride: 1, Width: 1, Height: 1}
	fb2 := pcx.Framebuffer{Pix: []byte{1}, Stride: 1, Width: 1, Height: 1}
	var buf bytes.Buffer
	if err := EncodeInterlaced(&buf, fb1, fb2, testPalette(), 6); err != nil {
		t.Fatal(err)
	}
	ihdr := extractChunk(t, buf.Bytes(), "IHDR")
	if ihdr[9] != 2 {
		t.Fatalf("color type = %d, want 2 (truecolor)", ihdr[9])
	}
}

func TestNormalizeLevelDefaultsOnInvalid(t *testing.T) {
	if got := normalizeLevel(-1); got != DefaultCompressionLevel {
		t.Fatalf("normalizeLevel(-1) = %d", got)
	}
	if got := normalizeLevel(12); got != DefaultCompressionLevel {
		t.Fatalf("normalizeLevel(12) = %d", got)
	}
	if got := normalizeLevel(3); got != 3 {
		t.Fatalf("normalizeLevel(3) = %d", got)
	}
}

func TestAccumulatorOverflowSentinel(t *testing.T) {
	a := NewAccumulator(4)
	if _, err := a.Write([]byte{1, 2}); err != nil {
		t.Fatal(err)
	}
	if _, err := a.Write([]byte{3, 4, 5}); err == nil {
		t.Fatal("expected overflow error")
	}
	if !a.Overflowed() {
		t.Fatal("expected Overflowed == true")
	}
	if _, err := a.Write([]byte{1}); err == nil {
		t.Fatal("expected subsequent writes to keep failing")
	}
}

func extractChunk(t *testing.T, data []byte, typ string) []byte {
	t.Helper()
	pos := 8
	for pos+8 <= len(data) {
		length := int(uint32(data[pos])<<24 | uint32(data[pos+1])<<16 | uint32(data[pos+2])<<8 | uint32(data[pos+3]))
		ctype := string(data[pos+4 : pos+8])
		body := data[pos+8 : pos+8+length]
		if ctype == typ {
			return body
		}
		pos += 8 + length + 4
	}
	t.Fatalf("chunk %s not found", typ)
	return nil
}
