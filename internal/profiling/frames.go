package profiling

import (
	"log/slog"
	"time"
)

// FrameStats counts frames and periodically reports the frame rate together
// with the heaviest tracked sections of the last frame.
type FrameStats struct {
	logger    *slog.Logger
	interval  time.Duration
	slowFrame time.Duration

	windowStart time.Time
	frames      int
	worst       time.Duration
	slow        int
}

// Report is one reporting window's summary
type Report struct {
	Frames  int
	FPS     float64
	Worst   time.Duration
	Slow    int
	Elapsed time.Duration
}

// NewFrameStats reports every interval through logger. Frames longer than
// slowFrame are logged as warnings; zero disables that check.
func NewFrameStats(logger *slog.Logger, interval, slowFrame time.Duration) *FrameStats {
	if interval <= 0 {
		interval = time.Second
	}
	return &FrameStats{
		logger:    logger,
		interval:  interval,
		slowFrame: slowFrame,
	}
}

// Frame records a frame that finished at now and took dt. It returns the
// window summary and true when a report was emitted.
func (s *FrameStats) Frame(now time.Time, dt time.Duration) (Report, bool) {
	if s.windowStart.IsZero() {
		s.windowStart = now
	}
	s.frames++
	if dt > s.worst {
		s.worst = dt
	}
	if s.slowFrame > 0 && dt > s.slowFrame {
		s.slow++
		s.logger.Warn("slow frame", "duration", dt, "top", TopN(3))
	}

	elapsed := now.Sub(s.windowStart)
	if elapsed < s.interval {
		return Report{}, false
	}

	r := Report{
		Frames:  s.frames,
		FPS:     float64(s.frames) / elapsed.Seconds(),
		Worst:   s.worst,
		Slow:    s.slow,
		Elapsed: elapsed,
	}
	s.logger.Info("frame stats",
		"fps", int(r.FPS+0.5),
		"frames", r.Frames,
		"worst", r.Worst,
		"slow", r.Slow,
	)
	s.logger.Debug("frame sections", "top", TopN(5))

	s.windowStart = now
	s.frames = 0
	s.worst = 0
	s.slow = 0
	return r, true
}
