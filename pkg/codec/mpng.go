package codec

import (
	"bytes"
	"fmt"

	"github.com/johantibbelin/atari800/internal/avierr"
	"github.com/johantibbelin/atari800/pkg/palette"
	"github.com/johantibbelin/atari800/pkg/pcx"
	"github.com/johantibbelin/atari800/pkg/pngenc"
)

// mpngCodec is the Motion-PNG reference codec: every frame is an
// independent 8-bit-palette PNG, so UsesInterframes is false and every
// committed frame is a keyframe.
type mpngCodec struct {
	width, height int
	pal palette.Source
	level int
}

// NewMPNG returns the Motion-PNG reference codec, encoding against pal at
// the given deflate compression level (0..9).
func NewMPNG(pal palette.Source, level int) Codec {
	return &mpngCodec{pal: pal, level: level}
}

func (c *mpngCodec) Descriptor() Descriptor {
	return Descriptor{
		ID: "mpng",
		FourCC: fourCC("MPNG"),
		AVICompressionTag: fourCC("MPNG"),
		UsesInterframes: false,
	}
}

func (c *mpngCodec) Init(width, height, _, _ int) (int, error) {
	c.width, c.height = width, height
	// A generous PNG upper bound: worst case IDAT barely compresses the
	// filtered scanlines, plus chunk overhead.
	return width*height + height*16 + 4096, nil
}

func (c *mpngCodec) Frame(src []byte, _ bool, out []byte) (int, error) {
	if len(src) != c.width*c.height {
		return 0, fmt.Errorf("mpng: frame size %d != %dx%d: %w", len(src), c.width, c.height, avierr.Codec)
	}
	fb := pcx.Framebuffer{Pix: src, Stride: c.width, Width: c.width, Height: c.height}
	var buf bytes.Buffer
	if err := pngenc.Encode(&buf, fb, c.pal, c.level); err != nil {
		return 0, fmt.Errorf("mpng: encode: %w", err)
	}
	if buf.Len() > len(out) {
		return 0, fmt.Errorf("mpng: output buffer too small (%d > %d): %w", buf.Len(), len(out), avierr.BufferOverflow)
	}
	return copy(out, buf.Bytes()), nil
}

func (c *mpngCodec) End() {}
