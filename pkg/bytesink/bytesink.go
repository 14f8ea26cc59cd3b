// Package bytesink provides little-endian primitive writers over a
// seekable byte stream, shared by the PCX, PNG, WAV and AVI writers.
package bytesink

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/johantibbelin/atari800/internal/avierr"
)

// Sink wraps an io.WriteSeeker with fixed-width little-endian writers.
// Writers always emit little-endian regardless of host byte order —
// there is no byte-swap toggle, unlike the host-conditional fwritele this
// replaces.
type Sink struct {
	w io.WriteSeeker

	// lengthFields holds the file positions of pending length fields,
	// most-recently-opened last, so BeginLengthField/EndLengthField can
	// nest the way RIFF LIST chunks nest.
	lengthFields []int64

	buf4 [4]byte
	buf2 [2]byte
}

// New wraps w for little-endian writing.
func New(w io.WriteSeeker) *Sink {
	return &Sink{w: w, lengthFields: make([]int64, 0, 8)}
}

// PutU16LE writes a 16-bit little-endian value.
func (s *Sink) PutU16LE(v uint16) error {
	binary.LittleEndian.PutUint16(s.buf2[:], v)
	return s.PutBytes(s.buf2[:])
}

// PutU32LE writes a 32-bit little-endian value.
func (s *Sink) PutU32LE(v uint32) error {
	binary.LittleEndian.PutUint32(s.buf4[:], v)
	return s.PutBytes(s.buf4[:])
}

// PutBytes writes b verbatim.
func (s *Sink) PutBytes(b []byte) error {
	n, err := s.w.Write(b)
	if err != nil {
		return fmt.Errorf("bytesink: write %d bytes: %w: %v", len(b), avierr.IO, err)
	}
	if n != len(b) {
		return fmt.Errorf("bytesink: short write %d/%d bytes: %w", n, len(b), avierr.IO)
	}
	return nil
}

// PutFourCC writes exactly 4 ASCII bytes, no terminator.
func (s *Sink) PutFourCC(tag string) error {
	if len(tag) != 4 {
		return fmt.Errorf("bytesink: fourcc %q must be 4 bytes: %w", tag, avierr.InvalidArgument)
	}
	return s.PutBytes([]byte(tag))
}

// PutSamplesLE writes count elements of sampleWidth bytes each (1 or 2)
// from buf, unconditionally little-endian, and returns the number of
// elements written.
func (s *Sink) PutSamplesLE(buf []byte, sampleWidth, count int) (int, error) {
	switch sampleWidth {
	case 1:
		need := count
		if need > len(buf) {
			return 0, fmt.Errorf("bytesink: sample buffer too small (%d < %d): %w", len(buf), need, avierr.BufferOverflow)
		}
		if err := s.PutBytes(buf[:need]); err != nil {
			return 0, err
		}
		return count, nil
	case 2:
		need := count * 2
		if need > len(buf) {
			return 0, fmt.Errorf("bytesink: sample buffer too small (%d < %d): %w", len(buf), need, avierr.BufferOverflow)
		}
		// Already little-endian on disk layout; host byte order never
		// enters the picture because we address byte pairs directly.
		if err := s.PutBytes(buf[:need]); err != nil {
			return 0, err
		}
		return count, nil
	default:
		return 0, fmt.Errorf("bytesink: unsupported sample width %d: %w", sampleWidth, avierr.InvalidArgument)
	}
}

// Tell returns the current stream position.
func (s *Sink) Tell() (int64, error) {
	pos, err := s.w.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, fmt.Errorf("bytesink: tell: %w: %v", avierr.IO, err)
	}
	return pos, nil
}

// Seek moves the stream to an absolute offset.
func (s *Sink) Seek(abs int64) error {
	if _, err := s.w.Seek(abs, io.SeekStart); err != nil {
		return fmt.Errorf("bytesink: seek %d: %w: %v", abs, avierr.IO, err)
	}
	return nil
}

// BeginLengthField writes a placeholder 32-bit field and remembers its
// position, to be filled in later by EndLengthField. This is the
// "written twice, backpatched on close" primitive the RIFF/AVI and WAV
// writers build on.
func (s *Sink) BeginLengthField() error {
	pos, err := s.Tell()
	if err != nil {
		return err
	}
	s.lengthFields = append(s.lengthFields, pos)
	return s.PutU32LE(0)
}

// EndLengthField seeks back to the most recently opened length field and
// writes the number of bytes written since it, then restores the stream
// position (padded to an even boundary, since RIFF chunk payloads are
// word-aligned).
func (s *Sink) EndLengthField() error {
	if len(s.lengthFields) == 0 {
		return fmt.Errorf("bytesink: EndLengthField with no pending field: %w", avierr.IO)
	}
	pos, err := s.Tell()
	if err != nil {
		return err
	}
	fieldPos := s.lengthFields[len(s.lengthFields)-1]
	s.lengthFields = s.lengthFields[:len(s.lengthFields)-1]

	if err := s.Seek(fieldPos); err != nil {
		return err
	}
	if err := s.PutU32LE(uint32(pos - fieldPos - 4)); err != nil {
		return err
	}
	if pos&1 != 0 {
		pos++
	}
	return s.Seek(pos)
}
