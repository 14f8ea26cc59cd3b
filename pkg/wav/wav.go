// Package wav writes a RIFF/WAVE/PCM file by streaming samples and
// backpatching the size fields on close.
package wav

import (
	"fmt"
	"io"

	"github.com/johantibbelin/atari800/internal/avierr"
	"github.com/johantibbelin/atari800/pkg/bytesink"
)

// Writer is a streaming RIFF/WAVE writer. The zero value is not usable;
// construct with Open.
type Writer struct {
	s *bytesink.Sink
	closer io.Closer // nil if w was not an io.Closer
	sampleWidth int // bytes per sample (1 or 2)
	bytesWritten int64
	framesWritten int64
	err error
}

// Open writes the 44-byte header (with length fields zeroed for later
// backpatch) for PCM audio at the given format. w must be an
// io.WriteSeeker; if it is also an io.Closer, Close will close it.
func Open(w io.WriteSeeker, sampleRate, channels, bitsPerSample int) (*Writer, error) {
	s := bytesink.New(w)
	wr := &Writer{s: s, sampleWidth: bitsPerSample / 8}
	if c, ok := w.(io.Closer); ok {
		wr.closer = c
	}

	put := func(fn func() error) {
		if wr.err == nil {
			wr.err = fn()
		}
	}
	put(func() error { return s.PutFourCC("RIFF") })
	put(func() error { return s.PutU32LE(0) }) // backpatched in Close
	put(func() error { return s.PutFourCC("WAVE") })
	put(func() error { return s.PutFourCC("fmt ") })
	put(func() error { return s.PutU32LE(16) })
	put(func() error { return s.PutU16LE(1) }) // PCM
	put(func() error { return s.PutU16LE(uint16(channels)) })
	put(func() error { return s.PutU32LE(uint32(sampleRate)) })
	blockAlign := channels * bitsPerSample / 8
	byteRate := sampleRate * blockAlign
	put(func() error { return s.PutU32LE(uint32(byteRate)) })
	put(func() error { return s.PutU16LE(uint16(blockAlign)) })
	put(func() error { return s.PutU16LE(uint16(bitsPerSample)) })
	put(func() error { return s.PutFourCC("data") })
	put(func() error { return s.PutU32LE(0) }) // backpatched in Close
	if wr.err != nil {
		return nil, wr.err
	}

	pos, err := s.Tell()
	if err != nil {
		return nil, err
	}
	if pos != 44 {
		return nil, fmt.Errorf("wav: header cursor at %d, want 44: %w", pos, avierr.IO)
	}
	return wr, nil
}

// WriteSamples appends numSamples elements of the writer's sample width
// from buf. Returns bytes written, or (0, nil) if the caller must close
// because the size ceiling was crossed.
func (w *Writer) WriteSamples(buf []byte, numSamples int) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	n, err := w.s.PutSamplesLE(buf, w.sampleWidth, numSamples)
	if err != nil {
		w.err = err
		return 0, err
	}
	written := n * w.sampleWidth
	w.bytesWritten += int64(written)
	w.framesWritten += int64(n)
	if w.bytesWritten > 0xFFF00000 { // the MaxRecordingSize ceiling of pkg/avi
		return 0, nil
	}
	return written, nil
}

// BytesWritten returns the number of PCM data bytes appended so far.
func (w *Writer) BytesWritten() int64 { return w.bytesWritten }

// FramesWritten returns the number of sample elements appended so far.
func (w *Writer) FramesWritten() int64 { return w.framesWritten }

// Close pads to an even byte count if needed, backpatches the RIFF and
// data size fields, and closes the underlying stream. Close always
// attempts to close the underlying stream even if backpatching failed.
func (w *Writer) Close() error {
	var padded int64
	if w.err == nil {
		if w.bytesWritten&1 != 0 {
			if err := w.s.PutBytes([]byte{0}); err != nil {
				w.err = err
			} else {
				padded = 1
			}
		}
	}
	if w.err == nil {
		if err := w.s.Seek(4); err == nil {
			w.err = w.s.PutU32LE(uint32(w.bytesWritten + 36 + padded))
		} else {
			w.err = err
		}
	}
	if w.err == nil {
		if err := w.s.Seek(40); err == nil {
			w.err = w.s.PutU32LE(uint32(w.bytesWritten))
		} else {
			w.err = err
		}
	}

	if w.closer != nil {
		if cerr := w.closer.Close(); cerr != nil && w.err == nil {
			w.err = cerr
		}
	}
	return w.err
}
