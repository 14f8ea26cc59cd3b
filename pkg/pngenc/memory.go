package pngenc

import (
	"fmt"

	"github.com/johantibbelin/atari800/internal/avierr"
)

// Accumulator is an in-memory io.Writer with a hard capacity: writes go to
// a fixed-size buffer instead of a file handle, and a per-call size
// accumulator tracks total bytes produced. Exceeding MaxBytes transitions
// the accumulator into a permanent error sentinel state — every write
// after that point fails rather than silently truncating.
type Accumulator struct {
	MaxBytes int
	buf []byte
	overflow bool
}

// NewAccumulator creates an Accumulator capped at maxBytes.
func NewAccumulator(maxBytes int) *Accumulator {
	return &Accumulator{MaxBytes: maxBytes}
}

// Write implements io.Writer. Once overflowed, every subsequent write
// fails without appending any more data.
func (a *Accumulator) Write(p []byte) (int, error) {
	if a.overflow {
		return 0, fmt.Errorf("pngenc: accumulator already overflowed: %w", avierr.BufferOverflow)
	}
	if len(a.buf)+len(p) > a.MaxBytes {
		a.overflow = true
		return 0, fmt.Errorf("pngenc: accumulator overflow at %d+%d > %d: %w", len(a.buf), len(p), a.MaxBytes, avierr.BufferOverflow)
	}
	a.buf = append(a.buf, p...)
	return len(p), nil
}

// Bytes returns the data written so far.
func (a *Accumulator) Bytes() []byte { return a.buf }

// Overflowed reports whether the accumulator has hit its error sentinel.
func (a *Accumulator) Overflowed() bool { return a.overflow }
