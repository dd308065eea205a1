package profiling

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func record(name string, d time.Duration) {
	mu.Lock()
	frameTotals[name] += d
	mu.Unlock()
}

func TestTrackAccumulates(t *testing.T) {
	ResetFrame()
	stop := Track("a")
	stop()
	stop = Track("a")
	time.Sleep(time.Millisecond)
	stop()

	ss := Snapshot()
	if ss["a"] < time.Millisecond {
		t.Errorf("a = %v, want at least 1ms", ss["a"])
	}
	ResetFrame()
	if len(Snapshot()) != 0 {
		t.Error("ResetFrame left totals behind")
	}
}

func TestTopN(t *testing.T) {
	ResetFrame()
	record("model.Render", 4200*time.Microsecond)
	record("glfw.SwapBuffers", 2*time.Millisecond)
	record("camera.Update", 100*time.Microsecond)

	tests := []struct {
		n    int
		want string
	}{
		{0, ""},
		{1, "model.Render:4.2ms"},
		{2, "model.Render:4.2ms, glfw.SwapBuffers:2ms"},
		{10, "model.Render:4.2ms, glfw.SwapBuffers:2ms, camera.Update:0.1ms"},
	}
	for _, tt := range tests {
		if got := TopN(tt.n); got != tt.want {
			t.Errorf("TopN(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestSumWithPrefix(t *testing.T) {
	ResetFrame()
	record("glfw.PollEvents", time.Millisecond)
	record("glfw.SwapBuffers", 2*time.Millisecond)
	record("model.Render", 5*time.Millisecond)

	if got := SumWithPrefix("glfw."); got != 3*time.Millisecond {
		t.Errorf("glfw. = %v, want 3ms", got)
	}
	if got := SumWithPrefix("none."); got != 0 {
		t.Errorf("none. = %v, want 0", got)
	}
}

func TestFrameStatsReportsEachInterval(t *testing.T) {
	ResetFrame()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s := NewFrameStats(logger, time.Second, 50*time.Millisecond)

	start := time.Unix(0, 0)
	frame := 10 * time.Millisecond
	var reports []Report
	for i := 0; i <= 100; i++ {
		if r, ok := s.Frame(start.Add(time.Duration(i)*frame), frame); ok {
			reports = append(reports, r)
		}
	}

	if len(reports) != 1 {
		t.Fatalf("got %d reports, want 1", len(reports))
	}
	r := reports[0]
	if r.Frames != 101 || r.Elapsed != time.Second {
		t.Errorf("report = %+v", r)
	}
	if r.FPS < 100 || r.FPS > 102 {
		t.Errorf("fps = %v", r.FPS)
	}
	if !strings.Contains(buf.String(), "frame stats") {
		t.Errorf("log missing report: %s", buf.String())
	}
}

func TestFrameStatsSlowFrames(t *testing.T) {
	ResetFrame()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	s := NewFrameStats(logger, time.Second, 50*time.Millisecond)

	start := time.Unix(0, 0)
	s.Frame(start, 10*time.Millisecond)
	s.Frame(start.Add(100*time.Millisecond), 90*time.Millisecond)
	r, ok := s.Frame(start.Add(time.Second), 10*time.Millisecond)
	if !ok {
		t.Fatal("expected a report")
	}
	if r.Slow != 1 || r.Worst != 90*time.Millisecond {
		t.Errorf("report = %+v", r)
	}
	if strings.Count(buf.String(), "slow frame") != 1 {
		t.Errorf("want one slow frame warning, log:\n%s", buf.String())
	}
}
