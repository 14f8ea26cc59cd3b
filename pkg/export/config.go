// Package export holds the two small external collaborators a recording
// session needs: Config (default compression level, requested codec,
// keyframe interval) and Stats (running totals for on-screen status and
// log output).
package export

// Config holds the user-facing export settings. It is populated by
// internal/config from CLI flags and/or a config file and
// consumed by cmd/atari800rec when constructing the PCX/PNG/WAV/AVI
// writers.
type Config struct {
	// VideoCodec is a codec id or "auto".
	VideoCodec string
	// KeyframeIntervalMs is the AVI keyframe scheduling interval in
	// milliseconds, must be >= 1.
	KeyframeIntervalMs int
	// CompressionLevel is the PNG/deflate level, 0..9.
	CompressionLevel int
}

// DefaultConfig returns explicit, zero-value-safe defaults rather than
// leaving magic numbers scattered at call sites.
func DefaultConfig() Config {
	return Config{
		VideoCodec: "auto",
		KeyframeIntervalMs: 1000,
		CompressionLevel: 6,
	}
}

// ConfigLine renders the VIDEO_CODEC config-file line: "VIDEO_CODEC=AUTO"
// when no explicit codec was set, else the codec's id, upper-cased.
func (c Config) ConfigLine() string {
	id := c.VideoCodec
	if id == "" {
		id = "auto"
	}
	return "VIDEO_CODEC=" + upper(id)
}

func upper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}
	return string(b)
}
