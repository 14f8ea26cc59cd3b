// Command atari800rec drives the PCX/PNG/WAV/AVI writers against a
// synthetic framebuffer and PCM source, standing in for a live emulator
// screen and audio feed.
//
// Usage:
//
//	atari800rec -mode pcx|png|wav|avi -o <file> [options]
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"time"

	"github.com/johantibbelin/atari800/internal/config"
	"github.com/johantibbelin/atari800/pkg/avi"
	"github.com/johantibbelin/atari800/pkg/codec"
	"github.com/johantibbelin/atari800/pkg/export"
	"github.com/johantibbelin/atari800/pkg/palette"
	"github.com/johantibbelin/atari800/pkg/pcx"
	"github.com/johantibbelin/atari800/pkg/pngenc"
	"github.com/johantibbelin/atari800/pkg/wav"
)

func main() {
	var (
		mode string
		output string
		configPath string
		width int
		height int
		fps float64
		seconds float64
		audio bool
		sampleRate int
	)

	fs := flag.NewFlagSet("atari800rec", flag.ExitOnError)
	fs.StringVar(&mode, "mode", "pcx", "export mode: pcx, png, wav, or avi")
	fs.StringVar(&output, "o", "", "output file path")
	fs.StringVar(&configPath, "config", "", "optional KEY=VALUE config file")
	fs.IntVar(&width, "width", 336, "framebuffer width")
	fs.IntVar(&height, "height", 240, "framebuffer height")
	fs.Float64Var(&fps, "fps", 60, "frames per second (avi only)")
	fs.Float64Var(&seconds, "seconds", 2, "recording duration in seconds (avi/wav only)")
	fs.BoolVar(&audio, "audio", false, "include a synthesized audio stream (avi only)")
	fs.IntVar(&sampleRate, "sample-rate", 44100, "audio sample rate in Hz")

	base := export.DefaultConfig()
	cfg, rest, err := config.ParseFlags(fs, os.Args[1:], base)
	if err != nil {
		fatal(err)
	}
	_ = rest

	if configPath != "" {
		cfg, err = config.LoadFile(configPath, cfg)
		if err != nil {
			fatal(err)
		}
	}

	if output == "" {
		fatal(fmt.Errorf("-o is required"))
	}

	f, err := os.Create(output)
	if err != nil {
		fatal(err)
	}

	pal := palette.NTSCPalette()

	switch mode {
	case "pcx":
		err = runPCX(f, pal, width, height)
	case "png":
		err = runPNG(f, pal, width, height, cfg.CompressionLevel)
	case "wav":
		err = runWAV(f, sampleRate, seconds)
	case "avi":
		err = runAVI(f, pal, cfg, width, height, fps, seconds, audio, sampleRate)
	default:
		err = fmt.Errorf("unknown -mode %q", mode)
	}
	if err != nil {
		f.Close()
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "atari800rec: %v\n", err)
	os.Exit(1)
}

// syntheticFrame fills buf (width*height palette-index bytes) with a
// diagonal color-band pattern that shifts by t frames, standing in for a
// real screen capture.
func syntheticFrame(buf []byte, width, height, t int) {
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			buf[y*width+x] = byte((x + y + t) % 256)
		}
	}
}

// syntheticPCM fills buf with count 8-bit PCM samples of a fixed-pitch
// tone starting at time t0 seconds, returning the next t0.
func syntheticPCM(buf []byte, count, sampleRate int, t0 float64) float64 {
	const freq = 440.0
	for i := 0; i < count; i++ {
		t := t0 + float64(i)/float64(sampleRate)
		v := math.Sin(2 * math.Pi * freq * t)
		buf[i] = byte(128 + int(v*96))
	}
	return t0 + float64(count)/float64(sampleRate)
}

func runPCX(f *os.File, pal palette.Source, width, height int) error {
	buf := make([]byte, width*height)
	syntheticFrame(buf, width, height, 0)
	fb := pcx.Framebuffer{Pix: buf, Stride: width, Width: width, Height: height}
	if err := pcx.Encode(f, fb, pal); err != nil {
		return err
	}
	return f.Close()
}

func runPNG(f *os.File, pal palette.Source, width, height, level int) error {
	buf := make([]byte, width*height)
	syntheticFrame(buf, width, height, 0)
	fb := pcx.Framebuffer{Pix: buf, Stride: width, Width: width, Height: height}
	if err := pngenc.Encode(f, fb, pal, level); err != nil {
		return err
	}
	return f.Close()
}

func runWAV(f *os.File, sampleRate int, seconds float64) error {
	w, err := wav.Open(f, sampleRate, 1, 8)
	if err != nil {
		return err
	}
	count := int(seconds * float64(sampleRate))
	buf := make([]byte, count)
	syntheticPCM(buf, count, sampleRate, 0)
	if _, err := w.WriteSamples(buf, count); err != nil {
		return err
	}
	return w.Close()
}

func runAVI(f *os.File, pal palette.Source, cfg export.Config, width, height int, fps, seconds float64, audio bool, sampleRate int) error {
	registry := codec.NewRegistry(true, codec.NewMRLE(), codec.NewMPNG(pal, cfg.CompressionLevel), codec.NewZMBV())
	c, err := registry.Resolve(cfg.VideoCodec)
	if err != nil {
		return err
	}

	opts := avi.OpenOptions{
		Width: width,
		Height: height,
		FPS: fps,
		Codec: c,
		Palette: pal,
		KeyframeIntervalMs: cfg.KeyframeIntervalMs,
		AudioEnabled: audio,
		SampleRate: sampleRate,
		Channels: 1,
		BitsPerSample: 8,
	}
	w, err := avi.Open(f, f, opts)
	if err != nil {
		return err
	}

	start := time.Now()
	numFrames := int(seconds * fps)
	pix := make([]byte, width*height)
	var pcmT float64
	samplesPerFrame := int(float64(sampleRate) / fps)
	pcm := make([]byte, samplesPerFrame)

	logger := log.New(os.Stderr, "", log.LstdFlags)

	for i := 0; i < numFrames; i++ {
		syntheticFrame(pix, width, height, i)
		cr, err := w.AddVideoFrame(pix, width)
		if err != nil {
			w.Close()
			return err
		}
		if audio {
			pcmT = syntheticPCM(pcm, samplesPerFrame, sampleRate, pcmT)
			if cr2, err := w.AddAudioSamples(pcm, samplesPerFrame); err != nil {
				w.Close()
				return err
			} else if cr2 {
				cr = true
			}
		}
		if cr {
			logger.Printf("atari800rec: size ceiling reached at frame %d, stopping", i)
			break
		}
	}

	if err := w.Close(); err != nil {
		return err
	}
	w.Stats.LogTo(logger, time.Since(start))
	return nil
}
