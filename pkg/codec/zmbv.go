package codec

import (
	"bytes"
	"fmt"

	"github.com/klauspost/compress/flate"
	"github.com/johantibbelin/atari800/internal/avierr"
)

const zmbvBlockSize = 16

// zmbvCodec is a reference "Zip Motion Block Video" codec: keyframes
// store every 16x16 block's raw bytes, inter-frames store only the
// blocks that changed since the previous frame, and the whole payload is
// deflated. This exercises the registry's "prefer ZMBV when available"
// rule and the keyframe/residual scheduler end to end; it is not a real
// ZMBV bitstream, which belongs to an external encoder.
type zmbvCodec struct {
	width, height int
	prev []byte
	havePrev bool
}

// NewZMBV returns the ZMBV reference codec.
func NewZMBV() Codec {
	return &zmbvCodec{}
}

func (c *zmbvCodec) Descriptor() Descriptor {
	return Descriptor{
		ID: "zmbv",
		FourCC: fourCC("ZMBV"),
		AVICompressionTag: fourCC("ZMBV"),
		UsesInterframes: true,
	}
}

func (c *zmbvCodec) Init(width, height, _, _ int) (int, error) {
	c.width, c.height = width, height
	c.prev = nil
	c.havePrev = false
	// Worst case: every block changed, plus a per-block header byte,
	// inflated slightly by the deflate container overhead.
	blocksX := (width + zmbvBlockSize - 1) / zmbvBlockSize
	blocksY := (height + zmbvBlockSize - 1) / zmbvBlockSize
	return width*height + blocksX*blocksY + 1024, nil
}

func (c *zmbvCodec) Frame(src []byte, wantKeyframe bool, out []byte) (int, error) {
	if len(src) != c.width*c.height {
		return 0, fmt.Errorf("zmbv: frame size %d != %dx%d: %w", len(src), c.width, c.height, avierr.Codec)
	}

	keyframe := wantKeyframe || !c.havePrev
	payload := c.buildPayload(src, keyframe)

	var buf bytes.Buffer
	buf.WriteByte(boolByte(keyframe))
	fw, err := flate.NewWriter(&buf, flate.DefaultCompression)
	if err != nil {
		return 0, fmt.Errorf("zmbv: flate writer: %w: %v", avierr.IO, err)
	}
	if _, err := fw.Write(payload); err != nil {
		return 0, fmt.Errorf("zmbv: deflate write: %w: %v", avierr.IO, err)
	}
	if err := fw.Close(); err != nil {
		return 0, fmt.Errorf("zmbv: deflate close: %w: %v", avierr.IO, err)
	}

	if buf.Len() > len(out) {
		return 0, fmt.Errorf("zmbv: output buffer too small (%d > %d): %w", buf.Len(), len(out), avierr.BufferOverflow)
	}

	c.prev = append(c.prev[:0], src...)
	c.havePrev = true

	return copy(out, buf.Bytes()), nil
}

// buildPayload lays out, per 16x16 block, a one-byte "changed" flag
// (keyframes treat every block as changed) followed by that block's raw
// bytes when changed.
func (c *zmbvCodec) buildPayload(src []byte, keyframe bool) []byte {
	var out bytes.Buffer
	for by := 0; by < c.height; by += zmbvBlockSize {
		for bx := 0; bx < c.width; bx += zmbvBlockSize {
			changed := keyframe || c.blockChanged(src, bx, by)
			out.WriteByte(boolByte(changed))
			if !changed {
				continue
			}
			c.writeBlock(&out, src, bx, by)
		}
	}
	return out.Bytes()
}

func (c *zmbvCodec) blockChanged(src []byte, bx, by int) bool {
	w, h := c.blockDims(bx, by)
	for y := 0; y < h; y++ {
		off := (by+y)*c.width + bx
		if !bytes.Equal(src[off:off+w], c.prev[off:off+w]) {
			return true
		}
	}
	return false
}

func (c *zmbvCodec) writeBlock(out *bytes.Buffer, src []byte, bx, by int) {
	w, h := c.blockDims(bx, by)
	for y := 0; y < h; y++ {
		off := (by+y)*c.width + bx
		out.Write(src[off : off+w])
	}
}

func (c *zmbvCodec) blockDims(bx, by int) (w, h int) {
	w = zmbvBlockSize
	if bx+w > c.width {
		w = c.width - bx
	}
	h = zmbvBlockSize
	if by+h > c.height {
		h = c.height - by
	}
	return w, h
}

func (c *zmbvCodec) End() {
	c.prev = nil
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
