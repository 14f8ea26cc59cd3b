package codec

import (
	"fmt"

	"github.com/johantibbelin/atari800/internal/avierr"
)

// mrleCodec is the MRLE ("Motion RLE") reference codec: every frame is
// independently scanline-RLE-encoded, the same rule the PCX encoder uses,
// so no frame actually depends on another even though UsesInterframes is
// true — the keyframe flag the AviWriter scheduler assigns exists purely
// for index/seek bookkeeping, matching how simple RLE AVI codecs behave
// in practice.
type mrleCodec struct {
	width, height int
}

// NewMRLE returns the MRLE reference codec.
func NewMRLE() Codec {
	return &mrleCodec{}
}

func (c *mrleCodec) Descriptor() Descriptor {
	return Descriptor{
		ID: "mrle",
		FourCC: fourCC("MRLE"),
		AVICompressionTag: fourCC("MRLE"),
		UsesInterframes: true,
	}
}

func (c *mrleCodec) Init(width, height, _, _ int) (int, error) {
	c.width, c.height = width, height
	// Worst case: every pixel needs a 2-byte (marker, value) escape.
	return width * height * 2, nil
}

func (c *mrleCodec) Frame(src []byte, _ bool, out []byte) (int, error) {
	if len(src) != c.width*c.height {
		return 0, fmt.Errorf("mrle: frame size %d != %dx%d: %w", len(src), c.width, c.height, avierr.Codec)
	}
	n := 0
	for y := 0; y < c.height; y++ {
		line := src[y*c.width : (y+1)*c.width]
		written, err := rleEncodeLine(line, out[n:])
		if err != nil {
			return 0, err
		}
		n += written
	}
	return n, nil
}

func (c *mrleCodec) End() {}

// rleEncodeLine applies the same run-length rule as the PCX encoder to
// one scanline, writing into out and returning bytes written.
func rleEncodeLine(line, out []byte) (int, error) {
	i, n := 0, 0
	for i < len(line) {
		v := line[i]
		runLen := 1
		for i+runLen < len(line) && line[i+runLen] == v && runLen < 63 {
			runLen++
		}
		if runLen > 1 || v >= 0xC0 {
			if n+2 > len(out) {
				return 0, fmt.Errorf("mrle: output buffer too small: %w", avierr.BufferOverflow)
			}
			out[n] = 0xC0 | byte(runLen)
			out[n+1] = v
			n += 2
		} else {
			if n+1 > len(out) {
				return 0, fmt.Errorf("mrle: output buffer too small: %w", avierr.BufferOverflow)
			}
			out[n] = v
			n++
		}
		i += runLen
	}
	return n, nil
}
