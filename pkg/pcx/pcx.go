// Package pcx writes PCX version 5, 8-bit, run-length-encoded still
// images
package pcx

import (
	"fmt"
	"io"

	"github.com/johantibbelin/atari800/internal/avierr"
	"github.com/johantibbelin/atari800/pkg/bytesink"
	"github.com/johantibbelin/atari800/pkg/palette"
)

// Framebuffer is a rectangular view into a larger fixed-stride screen
// buffer ("Pixel frame").
type Framebuffer struct {
	Pix []byte // the full screen buffer, stride = Stride
	Stride int // Screen_WIDTH
	Left int
	Top int
	Width int
	Height int
}

// at returns the palette index at (x, y) within the framebuffer region.
func (f Framebuffer) at(x, y int) byte {
	return f.Pix[(f.Top+y)*f.Stride+f.Left+x]
}

// Encode writes a non-interlaced PCX image of fb using pal for the
// trailing 256-color palette.
func Encode(w io.Writer, fb Framebuffer, pal palette.Source) error {
	return encode(w, fb, nil, pal)
}

// EncodeInterlaced writes an interlaced PCX image: three planes per scan
// line (R, G, B), each byte the average of fb and fb2's palette-mapped
// component for that pixel. No trailing palette block is written in this
// mode.
func EncodeInterlaced(w io.Writer, fb, fb2 Framebuffer, pal palette.Source) error {
	return encode(w, fb, &fb2, pal)
}

func encode(w io.Writer, fb Framebuffer, fb2 *Framebuffer, pal palette.Source) error {
	ws, ok := w.(io.WriteSeeker)
	if !ok {
		ws = &nopSeeker{w: w}
	}
	s := bytesink.New(ws)

	interlaced := fb2 != nil

	if err := writeHeader(s, fb, interlaced); err != nil {
		return err
	}

	for y := 0; y < fb.Height; y++ {
		if interlaced {
			for plane := 0; plane < 3; plane++ {
				shift := uint(16 - 8*plane)
				line := make([]byte, fb.Width)
				for x := 0; x < fb.Width; x++ {
					c1 := pal.Packed(fb.at(x, y))
					c2 := pal.Packed(fb2.at(x, y))
					v1 := byte((c1 >> shift) & 0xFF)
					v2 := byte((c2 >> shift) & 0xFF)
					line[x] = byte((int(v1) + int(v2)) / 2)
				}
				if err := writeRLELine(s, line); err != nil {
					return err
				}
			}
		} else {
			line := make([]byte, fb.Width)
			for x := 0; x < fb.Width; x++ {
				line[x] = fb.at(x, y)
			}
			if err := writeRLELine(s, line); err != nil {
				return err
			}
		}
	}

	if interlaced {
		return nil
	}

	if err := s.PutBytes([]byte{0x0C}); err != nil {
		return err
	}
	entries := entriesOf(pal)
	for _, e := range entries {
		if err := s.PutBytes([]byte{e.R, e.G, e.B}); err != nil {
			return err
		}
	}
	return nil
}

func entriesOf(pal palette.Source) [256]palette.RGB {
	if sp, ok := pal.(*palette.Static); ok {
		return sp.Entries()
	}
	var out [256]palette.RGB
	for i := 0; i < 256; i++ {
		r, g, b := pal.Lookup(byte(i))
		out[i] = palette.RGB{R: r, G: g, B: b}
	}
	return out
}

func writeHeader(s *bytesink.Sink, fb Framebuffer, interlaced bool) error {
	put := func(b ...byte) error { return s.PutBytes(b) }
	putU16 := s.PutU16LE

	if err := put(0x0A, 0x05, 0x01, 0x08); err != nil {
		return err
	}
	if err := putU16(0); err != nil { // xmin
		return err
	}
	if err := putU16(0); err != nil { // ymin
		return err
	}
	if err := putU16(uint16(fb.Width - 1)); err != nil { // xmax
		return err
	}
	if err := putU16(uint16(fb.Height - 1)); err != nil { // ymax
		return err
	}
	if err := putU16(0); err != nil { // hdpi
		return err
	}
	if err := putU16(0); err != nil { // vdpi
		return err
	}
	if err := s.PutBytes(make([]byte, 48)); err != nil { // EGA palette, unused
		return err
	}
	if err := put(0); err != nil { // reserved
		return err
	}
	nplanes := byte(1)
	if interlaced {
		nplanes = 3
	}
	if err := put(nplanes); err != nil {
		return err
	}
	if err := putU16(uint16(fb.Width)); err != nil { // bytes per line
		return err
	}
	if err := putU16(1); err != nil { // palette info
		return err
	}
	if err := putU16(uint16(fb.Width)); err != nil { // hscreensize
		return err
	}
	if err := putU16(uint16(fb.Height)); err != nil { // vscreensize
		return err
	}
	return s.PutBytes(make([]byte, 54))
}

// writeRLELine RLE-encodes one scan line: a run of
// length 1..63 is emitted literally only if it is length 1 and the value
// is < 0xC0; otherwise it's emitted as (0xC0|length), value. Runs never
// span scan-line boundaries.
func writeRLELine(s *bytesink.Sink, line []byte) error {
	i := 0
	for i < len(line) {
		v := line[i]
		runLen := 1
		for i+runLen < len(line) && line[i+runLen] == v && runLen < 63 {
			runLen++
		}
		if runLen > 1 || v >= 0xC0 {
			if err := s.PutBytes([]byte{0xC0 | byte(runLen), v}); err != nil {
				return err
			}
		} else {
			if err := s.PutBytes([]byte{v}); err != nil {
				return err
			}
		}
		i += runLen
	}
	return nil
}

// nopSeeker adapts a plain io.Writer (e.g. a memory accumulator) to
// io.WriteSeeker for callers that never actually need to seek (PCX never
// backpatches).
type nopSeeker struct {
	w io.Writer
	pos int64
}

func (n *nopSeeker) Write(p []byte) (int, error) {
	w, err := n.w.Write(p)
	n.pos += int64(w)
	return w, err
}

func (n *nopSeeker) Seek(offset int64, whence int) (int64, error) {
	if whence == io.SeekCurrent && offset == 0 {
		return n.pos, nil
	}
	return 0, fmt.Errorf("pcx: seek unsupported on non-seekable writer: %w", avierr.IO)
}
