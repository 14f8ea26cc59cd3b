package export

import (
	"fmt"
	"log"
	"time"
)

// Stats accumulates the running totals AviWriter exposes for
// on-screen status lines and the final summary log. Smallest/largest track encoded video frame sizes only;
// audio contributes only to FramesWritten's sibling counters.
type Stats struct {
	FramesWritten int64
	SamplesWritten int64
	BytesWritten int64
	TotalVideoSize int64
	SmallestVideoFrame int64
	LargestVideoFrame int64
}

// AddVideoFrame folds one encoded frame's size into the running totals.
func (st *Stats) AddVideoFrame(size int) {
	st.FramesWritten++
	st.TotalVideoSize += int64(size)
	sz := int64(size)
	if st.FramesWritten == 1 || sz < st.SmallestVideoFrame {
		st.SmallestVideoFrame = sz
	}
	if sz > st.LargestVideoFrame {
		st.LargestVideoFrame = sz
	}
}

// AverageVideoFrameSize returns TotalVideoSize / FramesWritten, or 0 if no
// frames have been written yet.
func (st *Stats) AverageVideoFrameSize() float64 {
	if st.FramesWritten == 0 {
		return 0
	}
	return float64(st.TotalVideoSize) / float64(st.FramesWritten)
}

// String renders a one-line summary suitable for a log.Logger call.
func (st *Stats) String() string {
	return fmt.Sprintf("frames=%d samples=%d bytes=%d avg_frame=%.1f smallest=%d largest=%d",
		st.FramesWritten, st.SamplesWritten, st.BytesWritten,
		st.AverageVideoFrameSize(), st.SmallestVideoFrame, st.LargestVideoFrame)
}

// LogTo emits a one-line "AVI stats: ..." summary including the
// recording's wall-clock duration.
func (st *Stats) LogTo(logger *log.Logger, duration time.Duration) {
	logger.Printf("AVI stats: duration=%s %s", duration.Round(time.Millisecond), st)
}
