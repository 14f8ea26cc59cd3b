// Package avierr defines the error kinds shared across the export writers.
package avierr

import "errors"

// Sentinel kinds. Wrap these with fmt.Errorf("...: %w", Kind) at the call
// site so callers can still match with errors.Is.
var (
	// IO is an underlying stream failure (short write, seek failure,...).
	IO = errors.New("io error")
	// Codec is a video codec Init/Frame failure.
	Codec = errors.New("codec error")
	// Protocol is an interleave rule violation (two video pushes in a row
	// while audio is expected, and similar).
	Protocol = errors.New("protocol error")
	// BufferOverflow means a caller-supplied buffer (audio samples, PNG
	// memory accumulator) would not fit in its fixed-size backing buffer.
	BufferOverflow = errors.New("buffer overflow")
	// SizeCeiling is not a failure; it signals that MAX_RECORDING_SIZE was
	// crossed and the caller must close the writer.
	SizeCeiling = errors.New("recording size ceiling reached")
	// InvalidArgument marks a bad CLI flag or config value.
	InvalidArgument = errors.New("invalid argument")
)
