package main

import (
	"time"

	"gl-playground/internal/camera"
	renderer "gl-playground/internal/graphics/renderer"
	"gl-playground/internal/input"
	"gl-playground/internal/profiling"
	"gl-playground/internal/timing"

	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

type loopState int

const (
	stateRunning loopState = iota
	stateClosing
)

func (s loopState) String() string {
	if s == stateClosing {
		return "closing"
	}
	return "running"
}

type loop struct {
	window   *glfw.Window
	input    *input.Manager
	camera   *camera.Camera
	renderer *renderer.Renderer
	stats    *profiling.FrameStats
	limiter  *timing.Limiter

	// exitC receives external close requests
	exitC <-chan struct{}

	setViewport func(width, height int32)

	state loopState
}

func newLoop(window *glfw.Window, in *input.Manager, cam *camera.Camera, r *renderer.Renderer, exitC <-chan struct{}) *loop {
	return &loop{
		window:   window,
		input:    in,
		camera:   cam,
		renderer: r,
		exitC:    exitC,
		setViewport: func(width, height int32) {
			gl.Viewport(0, 0, width, height)
		},
	}
}

// run iterates until the loop reaches stateClosing
func (l *loop) run() {
	lastTime := time.Now()
	for l.state == stateRunning {
		now := time.Now()
		dt := now.Sub(lastTime)
		lastTime = now

		profiling.ResetFrame()
		l.frame(dt)
		if l.limiter != nil {
			l.limiter.Wait()
		}

		if l.stats != nil {
			l.stats.Frame(time.Now(), time.Since(now))
		}
	}
}

// frame polls and dispatches events, advances the camera, then draws and
// presents. A close request skips the rest of the frame.
func (l *loop) frame(dt time.Duration) {
	func() { defer profiling.Track("glfw.PollEvents")(); glfw.PollEvents() }()

	if l.closeRequested() || l.window.ShouldClose() {
		l.state = stateClosing
	}
	for _, ev := range l.input.Drain() {
		l.dispatch(ev)
	}
	if l.state == stateClosing {
		return
	}

	func() { defer profiling.Track("camera.Update")(); l.camera.Update(float32(dt.Seconds())) }()
	func() { defer profiling.Track("renderer.Render")(); l.renderer.Render(l.camera, dt.Seconds()) }()
	func() { defer profiling.Track("glfw.SwapBuffers")(); l.window.SwapBuffers() }()
}

func (l *loop) closeRequested() bool {
	select {
	case <-l.exitC:
		return true
	default:
		return false
	}
}

// dispatch routes one queued event. Close and resize are handled by the
// loop; everything else goes to the camera.
func (l *loop) dispatch(ev input.Event) {
	switch ev.Kind {
	case input.EventAction:
		if ev.Action == input.ActionClose {
			if ev.Pressed {
				l.state = stateClosing
			}
			return
		}
	case input.EventResize:
		if ev.Width <= 0 || ev.Height <= 0 {
			return
		}
		l.setViewport(int32(ev.Width), int32(ev.Height))
		if l.renderer != nil {
			l.renderer.UpdateViewport(ev.Width, ev.Height)
		}
	}
	l.camera.HandleEvent(ev)
}
