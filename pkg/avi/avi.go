// Package avi implements AviWriter: a streaming RIFF/AVI writer that
// interleaves one video stream and an optional audio stream behind a
// pluggable codec.Codec.
//
// The header is written prospectively at Open with placeholder frame
// counts and LIST sizes, then backpatched at Close once the true totals
// are known — the same two-pass technique pkg/wav uses for its RIFF
// header, generalized here to a nested chunk tree via
// bytesink.Sink.Begin/EndLengthField.
package avi

import (
	"fmt"
	"io"
	"math"

	"github.com/johantibbelin/atari800/internal/avierr"
	"github.com/johantibbelin/atari800/pkg/bytesink"
	"github.com/johantibbelin/atari800/pkg/codec"
	"github.com/johantibbelin/atari800/pkg/export"
	"github.com/johantibbelin/atari800/pkg/palette"
)

// MaxRecordingSize is the 32-bit container ceiling: once
// accumulated bytes_written exceeds this, the caller is told to stop
// feeding frames and close the file.
const MaxRecordingSize = 0xFFF00000

// OpenOptions establishes the fixed, file-lifetime geometry and stream
// configuration.
type OpenOptions struct {
	Width, Height int
	LeftMargin, TopMargin int
	FPS float64
	Codec codec.Codec
	Palette palette.Source

	// KeyframeIntervalMs schedules forced keyframes. A
	// value <= 0 defaults to 1000.
	KeyframeIntervalMs int

	AudioEnabled bool
	SampleRate int
	Channels int
	BitsPerSample int // 8 or 16
}

// indexEntry mirrors one idx1 record.
type indexEntry struct {
	videoOffset, videoSize int64
	audioOffset, audioSize int64
	hasAudio bool
	keyframe bool
}

// Writer streams a single AVI recording. Not safe for concurrent use from
// multiple goroutines, matching every other writer in this module.
type Writer struct {
	sink *bytesink.Sink
	closer io.Closer
	opts OpenOptions

	numStreams int
	sampleWidth int // bytes per audio sample frame-channel, 1 or 2

	codec codec.Codec

	cropBuf []byte
	videoBuffer []byte
	audioBuffer []byte

	pendingVideoSize int // -2 error sentinel, -1 empty, >=0 buffered bytes
	pendingVideoKeyframe bool
	pendingAudioSamples int // -2 error sentinel, -1 empty, >=0 buffered sample count

	keyframeIntervalMs int
	keyframeResidualMs float32 // single precision: fps=60 with a 1000ms interval keys every 60th frame
	currentIsKeyframe bool

	framesCountFieldPos int64
	videoLengthFieldPos int64
	audioLengthFieldPos int64
	moviListStart int64

	framesWritten int64
	samplesWritten int64
	bytesWritten int64

	indexes []indexEntry

	Stats *export.Stats

	err error
	closed bool
}

// Open writes the prospective AVI header to w and returns a Writer ready
// for AddVideoFrame/AddAudioSamples calls. closer, if non-nil, is called
// by Close after the trailer is finalized (e.g. to close the underlying
// *os.File).
func Open(w io.WriteSeeker, closer io.Closer, opts OpenOptions) (*Writer, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("avi: width/height must be positive: %w", avierr.InvalidArgument)
	}
	if opts.FPS <= 0 {
		return nil, fmt.Errorf("avi: fps must be positive: %w", avierr.InvalidArgument)
	}
	if opts.Codec == nil {
		return nil, fmt.Errorf("avi: codec is required: %w", avierr.InvalidArgument)
	}
	if opts.KeyframeIntervalMs <= 0 {
		opts.KeyframeIntervalMs = 1000
	}

	sw := 1
	if opts.BitsPerSample == 16 {
		sw = 2
	}
	numStreams := 1
	if opts.AudioEnabled {
		numStreams = 2
	}

	bufSize, err := opts.Codec.Init(opts.Width, opts.Height, opts.LeftMargin, opts.TopMargin)
	if err != nil {
		return nil, fmt.Errorf("avi: codec init: %w", err)
	}

	aw := &Writer{
		sink: bytesink.New(w),
		closer: closer,
		opts: opts,
		numStreams: numStreams,
		sampleWidth: sw,
		codec: opts.Codec,
		cropBuf: make([]byte, opts.Width*opts.Height),
		videoBuffer: make([]byte, bufSize),
		pendingVideoSize: -1,
		pendingAudioSamples: -1,
		keyframeIntervalMs: opts.KeyframeIntervalMs,
		currentIsKeyframe: true,
		Stats: &export.Stats{},
	}
	if opts.AudioEnabled {
		framesPerChunk := int(float64(opts.SampleRate)*float64(opts.Channels)/opts.FPS) + 1
		aw.audioBuffer = make([]byte, framesPerChunk*sw+1024)
	}

	if err := aw.writeHeader(); err != nil {
		return nil, err
	}
	return aw, nil
}

func (w *Writer) writeHeader() error {
	s := w.sink
	put := func(fn func() error) {
		if w.err == nil {
			w.err = fn()
		}
	}

	put(func() error { return s.PutFourCC("RIFF") })
	put(func() error { return s.BeginLengthField() })
	put(func() error { return s.PutFourCC("AVI ") })

	put(func() error { return s.PutFourCC("LIST") })
	put(func() error { return s.BeginLengthField() })
	put(func() error { return s.PutFourCC("hdrl") })

	put(func() error { return w.writeAVIH() })
	put(func() error { return w.writeStrl(false) })
	if w.opts.AudioEnabled {
		put(func() error { return w.writeStrl(true) })
	}

	put(func() error { return s.EndLengthField() }) // hdrl

	put(func() error { return s.PutFourCC("LIST") })
	put(func() error { return s.BeginLengthField() })
	if w.err == nil {
		pos, err := s.Tell()
		w.err = err
		w.moviListStart = pos
	}
	put(func() error { return s.PutFourCC("movi") })

	return w.err
}

// writeAVIH writes the avih chunk: its tag, its size (56) and the 56-byte
// main AVI header.
func (w *Writer) writeAVIH() error {
	s := w.sink
	microSecPerFrame := uint32(1_000_000.0 / w.opts.FPS)
	approxBytesPerSec := uint32(w.opts.Width * w.opts.Height * 3)

	if err := s.PutFourCC("avih"); err != nil {
		return err
	}
	if err := s.PutU32LE(56); err != nil {
		return err
	}
	if err := s.PutU32LE(microSecPerFrame); err != nil {
		return err
	}
	if err := s.PutU32LE(approxBytesPerSec); err != nil {
		return err
	}
	if err := s.PutU32LE(0); err != nil { // reserved/padding granularity
		return err
	}
	if err := s.PutU32LE(0x10); err != nil { // AVIF_HASINDEX
		return err
	}

	pos, err := s.Tell()
	if err != nil {
		return err
	}
	w.framesCountFieldPos = pos
	if err := s.PutU32LE(0); err != nil { // dwTotalFrames, backpatched
		return err
	}

	if err := s.PutU32LE(0); err != nil { // dwInitialFrames
		return err
	}
	if err := s.PutU32LE(uint32(w.numStreams)); err != nil {
		return err
	}
	if err := s.PutU32LE(uint32(w.opts.Width * w.opts.Height * 3)); err != nil { // dwSuggestedBufferSize
		return err
	}
	if err := s.PutU32LE(uint32(w.opts.Width)); err != nil {
		return err
	}
	if err := s.PutU32LE(uint32(w.opts.Height)); err != nil {
		return err
	}
	return s.PutBytes(make([]byte, 16)) // 4 reserved u32 fields
}

// writeStrl writes one "strl" LIST (strh + strf + strn) for the video
// stream (audio=false) or the audio stream (audio=true).
func (w *Writer) writeStrl(audio bool) error {
	s := w.sink
	if err := s.PutFourCC("LIST"); err != nil {
		return err
	}
	if err := s.BeginLengthField(); err != nil {
		return err
	}
	if err := s.PutFourCC("strl"); err != nil {
		return err
	}

	if audio {
		if err := w.writeAudioStrh(); err != nil {
			return err
		}
		if err := w.writeAudioStrf(); err != nil {
			return err
		}
		if err := w.writeStrn("POKEY audio\x00"); err != nil {
			return err
		}
	} else {
		if err := w.writeVideoStrh(); err != nil {
			return err
		}
		if err := w.writeVideoStrf(); err != nil {
			return err
		}
		if err := w.writeStrn("atari800 video\x00\x00"); err != nil {
			return err
		}
	}

	return s.EndLengthField()
}

func (w *Writer) writeVideoStrh() error {
	s := w.sink
	desc := w.codec.Descriptor()

	if err := s.PutFourCC("strh"); err != nil {
		return err
	}
	if err := s.BeginLengthField(); err != nil {
		return err
	}
	if err := s.PutFourCC("vids"); err != nil {
		return err
	}
	if err := s.PutBytes(desc.FourCC[:]); err != nil {
		return err
	}
	if err := s.PutU32LE(0); err != nil { // flags
		return err
	}
	if err := s.PutU16LE(0); err != nil { // priority
		return err
	}
	if err := s.PutU16LE(0); err != nil { // language
		return err
	}
	if err := s.PutU32LE(0); err != nil { // initial frames
		return err
	}
	if err := s.PutU32LE(1_000_000); err != nil { // scale
		return err
	}
	if err := s.PutU32LE(uint32(w.opts.FPS * 1_000_000)); err != nil { // rate
		return err
	}
	if err := s.PutU32LE(0); err != nil { // start
		return err
	}

	pos, err := s.Tell()
	if err != nil {
		return err
	}
	w.videoLengthFieldPos = pos
	if err := s.PutU32LE(0); err != nil { // dwLength, backpatched
		return err
	}

	if err := s.PutU32LE(uint32(w.opts.Width * w.opts.Height * 3)); err != nil { // suggested buffer
		return err
	}
	if err := s.PutU32LE(0xFFFFFFFF); err != nil { // quality, unspecified
		return err
	}
	if err := s.PutU32LE(0); err != nil { // sample size
		return err
	}
	if err := s.PutBytes(make([]byte, 8)); err != nil { // rcFrame
		return err
	}
	return s.EndLengthField()
}

func (w *Writer) writeVideoStrf() error {
	s := w.sink
	desc := w.codec.Descriptor()

	if err := s.PutFourCC("strf"); err != nil {
		return err
	}
	if err := s.BeginLengthField(); err != nil {
		return err
	}
	if err := s.PutU32LE(40); err != nil { // biSize
		return err
	}
	if err := s.PutU32LE(uint32(w.opts.Width)); err != nil {
		return err
	}
	if err := s.PutU32LE(uint32(w.opts.Height)); err != nil {
		return err
	}
	if err := s.PutU16LE(1); err != nil { // biPlanes
		return err
	}
	if err := s.PutU16LE(8); err != nil { // biBitCount
		return err
	}
	if err := s.PutBytes(desc.AVICompressionTag[:]); err != nil { // biCompression
		return err
	}
	if err := s.PutU32LE(uint32(w.opts.Width * w.opts.Height)); err != nil { // biSizeImage
		return err
	}
	if err := s.PutU32LE(0); err != nil { // biXPelsPerMeter
		return err
	}
	if err := s.PutU32LE(0); err != nil { // biYPelsPerMeter
		return err
	}
	if err := s.PutU32LE(256); err != nil { // biClrUsed
		return err
	}
	if err := s.PutU32LE(0); err != nil { // biClrImportant
		return err
	}

	entries := paletteEntries(w.opts.Palette)
	for _, e := range entries {
		if err := s.PutBytes([]byte{e.B, e.G, e.R, 0}); err != nil {
			return err
		}
	}
	return s.EndLengthField()
}

func (w *Writer) writeAudioStrh() error {
	s := w.sink
	if err := s.PutFourCC("strh"); err != nil {
		return err
	}
	if err := s.BeginLengthField(); err != nil {
		return err
	}
	if err := s.PutFourCC("auds"); err != nil {
		return err
	}
	if err := s.PutU32LE(1); err != nil { // fccHandler
		return err
	}
	if err := s.PutU32LE(0); err != nil { // flags
		return err
	}
	if err := s.PutU16LE(0); err != nil { // priority
		return err
	}
	if err := s.PutU16LE(0); err != nil { // language
		return err
	}
	if err := s.PutU32LE(0); err != nil { // initial frames
		return err
	}
	if err := s.PutU32LE(1); err != nil { // scale
		return err
	}
	if err := s.PutU32LE(uint32(w.opts.SampleRate)); err != nil { // rate
		return err
	}
	if err := s.PutU32LE(0); err != nil { // start
		return err
	}

	pos, err := s.Tell()
	if err != nil {
		return err
	}
	w.audioLengthFieldPos = pos
	if err := s.PutU32LE(0); err != nil { // dwLength, backpatched
		return err
	}

	if err := s.PutU32LE(0); err != nil { // suggested buffer size
		return err
	}
	if err := s.PutU32LE(0xFFFFFFFF); err != nil { // quality
		return err
	}
	if err := s.PutU32LE(uint32(w.opts.Channels * w.sampleWidth)); err != nil { // sample size
		return err
	}
	if err := s.PutBytes(make([]byte, 8)); err != nil { // rcFrame
		return err
	}
	return s.EndLengthField()
}

func (w *Writer) writeAudioStrf() error {
	s := w.sink
	if err := s.PutFourCC("strf"); err != nil {
		return err
	}
	if err := s.BeginLengthField(); err != nil {
		return err
	}
	if err := s.PutU16LE(1); err != nil { // wFormatTag = PCM
		return err
	}
	if err := s.PutU16LE(uint16(w.opts.Channels)); err != nil {
		return err
	}
	if err := s.PutU32LE(uint32(w.opts.SampleRate)); err != nil {
		return err
	}
	blockAlign := w.opts.Channels * w.sampleWidth
	if err := s.PutU32LE(uint32(w.opts.SampleRate * blockAlign)); err != nil { // avg bytes/sec
		return err
	}
	if err := s.PutU16LE(uint16(blockAlign)); err != nil {
		return err
	}
	if err := s.PutU16LE(uint16(w.sampleWidth * 8)); err != nil { // bits per sample
		return err
	}
	if err := s.PutU16LE(0); err != nil { // cbSize
		return err
	}
	return s.EndLengthField()
}

func (w *Writer) writeStrn(name string) error {
	s := w.sink
	if err := s.PutFourCC("strn"); err != nil {
		return err
	}
	if err := s.BeginLengthField(); err != nil {
		return err
	}
	if err := s.PutBytes([]byte(name)); err != nil {
		return err
	}
	return s.EndLengthField()
}

func paletteEntries(pal palette.Source) [256]palette.RGB {
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

// AddVideoFrame pushes one source framebuffer (pix, with the given
// stride) through the established crop region and codec. closeRequested
// reports that MaxRecordingSize was just exceeded and the caller should
// stop feeding frames and Close.
func (w *Writer) AddVideoFrame(pix []byte, stride int) (closeRequested bool, err error) {
	if w.err != nil {
		return false, w.err
	}

	vBuffered := w.pendingVideoSize >= 0
	aBuffered := w.numStreams == 2 && w.pendingAudioSamples >= 0

	if vBuffered {
		if w.numStreams == 1 || aBuffered {
			cr, err := w.commit()
			if err != nil {
				w.err = err
				return false, err
			}
			closeRequested = cr
		} else {
			w.pendingVideoSize = -2
			err := fmt.Errorf("avi: video frame pushed while a previous one awaits its audio pair: %w", avierr.Protocol)
			w.err = err
			return false, err
		}
	}

	w.cropFramebuffer(pix, stride)
	n, err := w.codec.Frame(w.cropBuf, w.currentIsKeyframe, w.videoBuffer)
	if err != nil {
		w.pendingVideoSize = -2
		w.err = fmt.Errorf("avi: video encode: %w", err)
		return false, w.err
	}
	w.pendingVideoSize = n
	w.pendingVideoKeyframe = w.currentIsKeyframe || !w.codec.Descriptor().UsesInterframes
	return closeRequested, nil
}

func (w *Writer) cropFramebuffer(pix []byte, stride int) {
	for y := 0; y < w.opts.Height; y++ {
		srcOff := (w.opts.TopMargin+y)*stride + w.opts.LeftMargin
		dstOff := y * w.opts.Width
		copy(w.cropBuf[dstOff:dstOff+w.opts.Width], pix[srcOff:srcOff+w.opts.Width])
	}
}

// AddAudioSamples pushes count interleaved samples (count*channels*width
// bytes in buf) into the pending audio slot, mirroring AddVideoFrame's
// state machine.
func (w *Writer) AddAudioSamples(buf []byte, count int) (closeRequested bool, err error) {
	if w.err != nil {
		return false, w.err
	}
	if w.numStreams == 1 {
		err := fmt.Errorf("avi: audio samples pushed but the file has no audio stream: %w", avierr.Protocol)
		w.err = err
		return false, err
	}

	aBuffered := w.pendingAudioSamples >= 0
	vBuffered := w.pendingVideoSize >= 0

	if aBuffered {
		if vBuffered {
			cr, err := w.commit()
			if err != nil {
				w.err = err
				return false, err
			}
			closeRequested = cr
		} else {
			w.pendingAudioSamples = -2
			err := fmt.Errorf("avi: audio samples pushed while a previous batch awaits its video pair: %w", avierr.Protocol)
			w.err = err
			return false, err
		}
	}

	need := count * w.opts.Channels * w.sampleWidth
	if need > len(w.audioBuffer) {
		w.pendingAudioSamples = -2
		err := fmt.Errorf("avi: audio batch %d bytes exceeds buffer %d: %w", need, len(w.audioBuffer), avierr.BufferOverflow)
		w.err = err
		return false, err
	}
	copy(w.audioBuffer, buf[:need])
	w.pendingAudioSamples = count
	return closeRequested, nil
}

// commit writes the currently buffered (video[, audio]) pair as one or
// two movi chunks, indexes it, advances the keyframe scheduler, and
// clears both pending slots.
func (w *Writer) commit() (closeRequested bool, err error) {
	s := w.sink
	startPos, err := s.Tell()
	if err != nil {
		return false, err
	}

	videoSize := w.pendingVideoSize
	if err := s.PutFourCC("00dc"); err != nil {
		return false, err
	}
	if err := s.PutU32LE(uint32(videoSize)); err != nil {
		return false, err
	}
	if err := s.PutBytes(w.videoBuffer[:videoSize]); err != nil {
		return false, err
	}
	videoPad := videoSize & 1
	if videoPad != 0 {
		if err := s.PutBytes([]byte{0}); err != nil {
			return false, err
		}
	}

	var audioSize int
	hasAudio := w.numStreams == 2 && w.pendingAudioSamples >= 0
	var audioBytesLen int
	if hasAudio {
		count := w.pendingAudioSamples
		audioBytesLen = count * w.opts.Channels * w.sampleWidth
		audioSize = audioBytesLen
		if err := s.PutFourCC("01wb"); err != nil {
			return false, err
		}
		if err := s.PutU32LE(uint32(audioSize)); err != nil {
			return false, err
		}
		if err := s.PutBytes(w.audioBuffer[:audioBytesLen]); err != nil {
			return false, err
		}
		if audioSize&1 != 0 {
			if err := s.PutBytes([]byte{0}); err != nil {
				return false, err
			}
		}
		w.samplesWritten += int64(count)
	}

	endPos, err := s.Tell()
	if err != nil {
		return false, err
	}

	videoChunkTotal := int64(8 + videoSize + videoPad)
	var audioChunkTotal int64
	if hasAudio {
		audioChunkTotal = int64(8 + audioSize + (audioSize & 1))
	}
	wantTotal := startPos + videoChunkTotal + audioChunkTotal
	if endPos != wantTotal {
		return false, fmt.Errorf("avi: commit cursor mismatch: wrote to %d, expected %d: %w", endPos, wantTotal, avierr.Protocol)
	}

	idxOffset := startPos - w.moviListStart
	entry := indexEntry{
		videoOffset: idxOffset,
		videoSize: int64(videoSize),
		keyframe: w.pendingVideoKeyframe,
		hasAudio: hasAudio,
	}
	if hasAudio {
		entry.audioOffset = idxOffset + videoChunkTotal
		entry.audioSize = int64(audioSize)
	}
	w.indexes = append(w.indexes, entry)

	w.framesWritten++
	w.Stats.AddVideoFrame(videoSize)
	w.Stats.FramesWritten = w.framesWritten
	w.Stats.SamplesWritten = w.samplesWritten

	w.bytesWritten += videoChunkTotal + audioChunkTotal + 32
	w.Stats.BytesWritten = w.bytesWritten

	w.advanceScheduler()

	w.pendingVideoSize = -1
	w.pendingAudioSamples = -1

	return w.bytesWritten > MaxRecordingSize, nil
}

// advanceScheduler updates currentIsKeyframe for the NEXT frame using
// fractional-millisecond residual drift: the amount subtracted back into
// the residual is floor(residual/interval)*interval, never a plain
// modulo, so drift never compounds across frames whose duration doesn't
// evenly divide the interval.
func (w *Writer) advanceScheduler() {
	if !w.codec.Descriptor().UsesInterframes {
		w.currentIsKeyframe = true
		return
	}
	w.keyframeResidualMs += float32(1000.0 / w.opts.FPS)
	interval := float32(w.keyframeIntervalMs)
	if w.keyframeResidualMs > interval {
		w.currentIsKeyframe = true
		w.keyframeResidualMs -= float32(math.Floor(float64(w.keyframeResidualMs/interval))) * interval
	} else {
		w.currentIsKeyframe = false
	}
}

// Close commits any fully-paired pending frame, drops any half-pending
// one, writes the idx1 index, and backpatches the avih/strh counts and
// the RIFF/movi LIST sizes recorded at Open. Safe to call exactly once.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	if w.err != nil {
		return w.err
	}

	vBuffered := w.pendingVideoSize >= 0
	aBuffered := w.numStreams == 2 && w.pendingAudioSamples >= 0
	if vBuffered && (w.numStreams == 1 || aBuffered) {
		if _, err := w.commit(); err != nil {
			return err
		}
	}
	w.codec.End()

	s := w.sink
	if err := s.EndLengthField(); err != nil { // movi LIST
		return err
	}

	if err := w.writeIndex(); err != nil {
		return err
	}

	endPos, err := s.Tell()
	if err != nil {
		return err
	}

	if err := s.Seek(w.framesCountFieldPos); err != nil {
		return err
	}
	if err := s.PutU32LE(uint32(w.framesWritten)); err != nil {
		return err
	}
	if err := s.Seek(w.videoLengthFieldPos); err != nil {
		return err
	}
	if err := s.PutU32LE(uint32(w.framesWritten)); err != nil {
		return err
	}
	if w.numStreams == 2 {
		if err := s.Seek(w.audioLengthFieldPos); err != nil {
			return err
		}
		if err := s.PutU32LE(uint32(w.samplesWritten)); err != nil {
			return err
		}
	}

	if err := s.Seek(endPos); err != nil {
		return err
	}
	if err := s.EndLengthField(); err != nil { // RIFF
		return err
	}

	if w.closer != nil {
		return w.closer.Close()
	}
	return nil
}

func (w *Writer) writeIndex() error {
	s := w.sink
	if err := s.PutFourCC("idx1"); err != nil {
		return err
	}
	perFrame := 1
	if w.numStreams == 2 {
		perFrame = 2
	}
	size := uint32(len(w.indexes) * perFrame * 16)
	if err := s.PutU32LE(size); err != nil {
		return err
	}
	for _, e := range w.indexes {
		flags := uint32(0)
		if e.keyframe {
			flags = 0x10 // AVIIF_KEYFRAME
		}
		if err := s.PutFourCC("00dc"); err != nil {
			return err
		}
		if err := s.PutU32LE(flags); err != nil {
			return err
		}
		if err := s.PutU32LE(uint32(e.videoOffset)); err != nil {
			return err
		}
		if err := s.PutU32LE(uint32(e.videoSize)); err != nil {
			return err
		}
		if e.hasAudio {
			if err := s.PutFourCC("01wb"); err != nil {
				return err
			}
			if err := s.PutU32LE(0x10); err != nil {
				return err
			}
			if err := s.PutU32LE(uint32(e.audioOffset)); err != nil {
				return err
			}
			if err := s.PutU32LE(uint32(e.audioSize)); err != nil {
				return err
			}
		}
	}
	return nil
}

// FramesWritten, SamplesWritten and BytesWritten report the running
// totals also visible via Stats.
func (w *Writer) FramesWritten() int64 { return w.framesWritten }
func (w *Writer) SamplesWritten() int64 { return w.samplesWritten }
func (w *Writer) BytesWritten() int64 { return w.bytesWritten }
