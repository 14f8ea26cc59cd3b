// Package config parses CLI flags and a KEY=VALUE config file into an
// export.Config, and can render one back out as a config file.
package config

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/johantibbelin/atari800/internal/avierr"
	"github.com/johantibbelin/atari800/pkg/export"
)

// ParseFlags parses -videocodec/-keyframe-interval/-compression-level on
// top of base, returning the merged config and any remaining positional
// arguments. A non-positive keyframe interval or a compression level
// outside 0..9 is a fatal InvalidArgument error. The codec id is not
// checked here; codec.Registry.Resolve rejects an unknown id.
func ParseFlags(fs *flag.FlagSet, args []string, base export.Config) (export.Config, []string, error) {
	cfg := base

	var (
		videoCodec string
		keyframeMs int
		compression int
	)
	fs.StringVar(&videoCodec, "videocodec", cfg.VideoCodec, "video codec: auto or a codec id")
	fs.IntVar(&keyframeMs, "keyframe-interval", cfg.KeyframeIntervalMs, "keyframe interval in milliseconds (>= 1)")
	fs.IntVar(&compression, "compression-level", cfg.CompressionLevel, "PNG/deflate compression level (0..9)")

	if err := fs.Parse(args); err != nil {
		return cfg, nil, err
	}

	if videoCodec == "" {
		videoCodec = "auto"
	}
	cfg.VideoCodec = videoCodec

	if keyframeMs < 1 {
		return cfg, nil, fmt.Errorf("config: -keyframe-interval must be >= 1, got %d: %w", keyframeMs, avierr.InvalidArgument)
	}
	cfg.KeyframeIntervalMs = keyframeMs

	if compression < 0 || compression > 9 {
		return cfg, nil, fmt.Errorf("config: -compression-level must be 0..9, got %d: %w", compression, avierr.InvalidArgument)
	}
	cfg.CompressionLevel = compression

	return cfg, fs.Args(), nil
}

// LoadFile parses a KEY=VALUE config file (VIDEO_CODEC,
// VIDEO_CODEC_KEYFRAME_INTERVAL, COMPRESSION_LEVEL — the container format),
// applying recognized keys on top of base. Unrecognized keys and blank
// lines are ignored; a malformed numeric value is a fatal InvalidArgument
// error.
func LoadFile(path string, base export.Config) (export.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return base, fmt.Errorf("config: open %s: %w: %v", path, avierr.IO, err)
	}
	defer f.Close()
	return loadReader(f, base)
}

func loadReader(r io.Reader, base export.Config) (export.Config, error) {
	cfg := base
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case "VIDEO_CODEC":
			cfg.VideoCodec = strings.ToLower(value)
		case "VIDEO_CODEC_KEYFRAME_INTERVAL":
			n, err := strconv.Atoi(value)
			if err != nil || n < 1 {
				return cfg, fmt.Errorf("config: VIDEO_CODEC_KEYFRAME_INTERVAL=%q invalid: %w", value, avierr.InvalidArgument)
			}
			cfg.KeyframeIntervalMs = n
		case "COMPRESSION_LEVEL":
			n, err := strconv.Atoi(value)
			if err != nil || n < 0 || n > 9 {
				return cfg, fmt.Errorf("config: COMPRESSION_LEVEL=%q invalid: %w", value, avierr.InvalidArgument)
			}
			cfg.CompressionLevel = n
		}
	}
	if err := sc.Err(); err != nil {
		return cfg, fmt.Errorf("config: scan: %w: %v", avierr.IO, err)
	}
	return cfg, nil
}

// WriteFile emits the config file back out, one recognized key per line,
// with VIDEO_CODEC rendered as AUTO or the upper-cased codec id.
func WriteFile(w io.Writer, cfg export.Config) error {
	lines := []string{
		cfg.ConfigLine(),
		fmt.Sprintf("VIDEO_CODEC_KEYFRAME_INTERVAL=%d", cfg.KeyframeIntervalMs),
		fmt.Sprintf("COMPRESSION_LEVEL=%d", cfg.CompressionLevel),
	}
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return fmt.Errorf("config: write: %w: %v", avierr.IO, err)
		}
	}
	return nil
}
