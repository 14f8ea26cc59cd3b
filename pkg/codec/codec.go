// Package codec defines the pluggable VideoCodec interface the container
// format describes, a CodecRegistry, and three reference codec
// implementations (MRLE, MPNG, ZMBV) good enough to exercise the
// registry's "auto" rule and the AVI writer's keyframe scheduler. The
// core never interprets codec-internal bytes; these implementations
// exist to give the registry/scheduler something real to dispatch to,
// not to replace a production encoder.
package codec

// Descriptor is the immutable, static metadata of a video codec.
type Descriptor struct {
	ID string
	FourCC [4]byte
	AVICompressionTag [4]byte
	UsesInterframes bool
}

// Codec is the capability set a video codec exposes to AviWriter: one
// method for init, one for per-frame encode, one for releasing
// resources, plus the immutable Descriptor. This re-expresses a
// function-pointer codec table as a Go interface.
type Codec interface {
	Descriptor() Descriptor

	// Init establishes the frame geometry and returns the maximum
	// per-frame output size the caller should allocate once.
	Init(width, height, leftMargin, topMargin int) (bufferSize int, err error)

	// Frame encodes src (width*height palette-index bytes, already
	// cropped to the configured region) into out. If the codec's
	// Descriptor.UsesInterframes is false, wantKeyframe is always
	// effectively true. A returned size of 0 is legal: an empty
	// inter-frame.
	Frame(src []byte, wantKeyframe bool, out []byte) (written int, err error)

	// End releases codec-owned resources.
	End()
}

func fourCC(s string) [4]byte {
	var out [4]byte
	copy(out[:], s)
	return out
}
