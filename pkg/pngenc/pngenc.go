// Package pngenc writes single-image PNGs by hand (IHDR/PLTE/IDAT/IEND),
// compressing IDAT through klauspost/compress/flate so a requested 0..9
// compression level maps onto a real deflate level instead of being
// rounded to one of stdlib image/png's 4 buckets.
package pngenc

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/klauspost/compress/flate"
	"github.com/johantibbelin/atari800/internal/avierr"
	"github.com/johantibbelin/atari800/pkg/palette"
	"github.com/johantibbelin/atari800/pkg/pcx"
)

// DefaultCompressionLevel is used when a caller passes an out-of-range
// level.
const DefaultCompressionLevel = 6

var pngSignature = [8]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'}

// Encode writes fb as an 8-bit paletted PNG.
func Encode(w io.Writer, fb pcx.Framebuffer, pal palette.Source, level int) error {
	level = normalizeLevel(level)
	scanlines := make([]byte, 0, fb.Height*(fb.Width+1))
	for y := 0; y < fb.Height; y++ {
		scanlines = append(scanlines, 0) // filter type: None
		for x := 0; x < fb.Width; x++ {
			scanlines = append(scanlines, fb.Pix[(fb.Top+y)*fb.Stride+fb.Left+x])
		}
	}
	return writePNG(w, fb.Width, fb.Height, 3, scanlines, entriesRGB(pal), level)
}

// EncodeInterlaced writes the component-wise average of fb and fb2's
// palette lookups as a 24-bit RGB PNG.
func EncodeInterlaced(w io.Writer, fb, fb2 pcx.Framebuffer, pal palette.Source, level int) error {
	level = normalizeLevel(level)
	scanlines := make([]byte, 0, fb.Height*(1+fb.Width*3))
	for y := 0; y < fb.Height; y++ {
		scanlines = append(scanlines, 0)
		for x := 0; x < fb.Width; x++ {
			i1 := fb.Pix[(fb.Top+y)*fb.Stride+fb.Left+x]
			i2 := fb2.Pix[(fb2.Top+y)*fb2.Stride+fb2.Left+x]
			r1, g1, b1 := pal.Lookup(i1)
			r2, g2, b2 := pal.Lookup(i2)
			scanlines = append(scanlines,
				byte((int(r1)+int(r2))/2),
				byte((int(g1)+int(g2))/2),
				byte((int(b1)+int(b2))/2),
			)
		}
	}
	return writePNG(w, fb.Width, fb.Height, 2, scanlines, nil, level)
}

func entriesRGB(pal palette.Source) []palette.RGB {
	out := make([]palette.RGB, 256)
	if sp, ok := pal.(*palette.Static); ok {
		e := sp.Entries()
		copy(out, e[:])
		return out
	}
	for i := 0; i < 256; i++ {
		r, g, b := pal.Lookup(byte(i))
		out[i] = palette.RGB{R: r, G: g, B: b}
	}
	return out
}

func normalizeLevel(level int) int {
	if level < 0 || level > 9 {
		return DefaultCompressionLevel
	}
	return level
}

func writePNG(w io.Writer, width, height, colorType int, scanlines []byte, plte []palette.RGB, level int) error {
	if _, err := w.Write(pngSignature[:]); err != nil {
		return fmt.Errorf("pngenc: write signature: %w: %v", avierr.IO, err)
	}

	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:4], uint32(width))
	binary.BigEndian.PutUint32(ihdr[4:8], uint32(height))
	ihdr[8] = 8 // bit depth
	ihdr[9] = byte(colorType)
	ihdr[10] = 0 // compression method
	ihdr[11] = 0 // filter method
	ihdr[12] = 0 // interlace method
	if err := writeChunk(w, "IHDR", ihdr); err != nil {
		return err
	}

	if plte != nil {
		data := make([]byte, 0, len(plte)*3)
		for _, e := range plte {
			data = append(data, e.R, e.G, e.B)
		}
		if err := writeChunk(w, "PLTE", data); err != nil {
			return err
		}
	}

	idat, err := zlibCompress(scanlines, level)
	if err != nil {
		return err
	}
	if err := writeChunk(w, "IDAT", idat); err != nil {
		return err
	}

	return writeChunk(w, "IEND", nil)
}

func writeChunk(w io.Writer, typ string, data []byte) error {
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(data)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return fmt.Errorf("pngenc: write chunk %s length: %w: %v", typ, avierr.IO, err)
	}

	crc := crc32.NewIEEE()
	crc.Write([]byte(typ))
	if len(data) > 0 {
		crc.Write(data)
	}

	if _, err := w.Write([]byte(typ)); err != nil {
		return fmt.Errorf("pngenc: write chunk %s type: %w: %v", typ, avierr.IO, err)
	}
	if len(data) > 0 {
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("pngenc: write chunk %s data: %w: %v", typ, avierr.IO, err)
		}
	}

	var crcBuf [4]byte
	binary.BigEndian.PutUint32(crcBuf[:], crc.Sum32())
	if _, err := w.Write(crcBuf[:]); err != nil {
		return fmt.Errorf("pngenc: write chunk %s crc: %w: %v", typ, avierr.IO, err)
	}
	return nil
}

// zlibCompress wraps raw scanline bytes in a minimal zlib stream (2-byte
// header + deflate blocks from klauspost/compress/flate + big-endian
// Adler-32 trailer), which is what a PNG IDAT chunk actually holds.
func zlibCompress(raw []byte, level int) ([]byte, error) {
	var out bytes.Buffer
	out.Write([]byte{0x78, 0x9C}) // CMF/FLG for a default 32K window, no preset dict

	fw, err := flate.NewWriter(&out, level)
	if err != nil {
		return nil, fmt.Errorf("pngenc: flate writer: %w: %v", avierr.IO, err)
	}
	if _, err := fw.Write(raw); err != nil {
		return nil, fmt.Errorf("pngenc: deflate write: %w: %v", avierr.IO, err)
	}
	if err := fw.Close(); err != nil {
		return nil, fmt.Errorf("pngenc: deflate close: %w: %v", avierr.IO, err)
	}

	var adlerBuf [4]byte
	binary.BigEndian.PutUint32(adlerBuf[:], adler32(raw))
	out.Write(adlerBuf[:])

	return out.Bytes(), nil
}

func adler32(data []byte) uint32 {
	const mod = 65521
	a, b := uint32(1), uint32(0)
	for _, d := range data {
		a = (a + uint32(d)) % mod
		b = (b + a) % mod
	}
	return b<<16 | a
}
