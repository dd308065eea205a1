package main

import (
	"fmt"
	"log/slog"

	"gl-playground/internal/camera"
	"gl-playground/internal/config"
	"gl-playground/internal/graphics"
	"gl-playground/internal/graphics/renderables/model"
	renderer "gl-playground/internal/graphics/renderer"
	"gl-playground/internal/input"
	"gl-playground/internal/profiling"
	"gl-playground/internal/timing"

	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

// run owns every GL resource. doneC is closed after all of them are released.
func run(s config.Settings, logger *slog.Logger, exitC <-chan struct{}, doneC chan struct{}) error {
	defer close(doneC)

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("init glfw: %w", err)
	}
	defer glfw.Terminate()

	window, err := setupWindow(s.Window)
	if err != nil {
		return err
	}
	defer window.Destroy()

	width, height := window.GetFramebufferSize()
	setupGL(logger, width, height)

	cam := newCamera(s.Camera, width, height)

	m := model.NewModel(model.Options{
		Mesh:         s.Mesh,
		TexturePath:  s.Texture.Path,
		TextureLabel: s.Texture.Label,
	})
	r, err := renderer.NewRenderer(m)
	if err != nil {
		return err
	}
	defer r.Dispose()
	r.SetClearColor(s.ClearColor)
	r.UpdateViewport(width, height)

	in := input.NewManager()
	in.Attach(window)

	l := newLoop(window, in, cam, r, exitC)
	l.stats = profiling.NewFrameStats(logger, s.Profiling.ReportInterval, s.Profiling.SlowFrame)
	if !s.Window.VSync {
		l.limiter = timing.NewLimiter(s.Window.MaxFPS)
	}
	l.run()

	logger.Info("closing")
	return nil
}

func setupWindow(w config.Window) (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 5)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.Resizable, glfwBool(w.Resizable))
	if config.Debug {
		glfw.WindowHint(glfw.OpenGLDebugContext, glfw.True)
	}

	window, err := glfw.CreateWindow(w.Width, w.Height, w.Title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()

	// Initialize OpenGL bindings
	if err := gl.Init(); err != nil {
		window.Destroy()
		return nil, fmt.Errorf("init gl: %w", err)
	}

	if w.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	if glfw.RawMouseMotionSupported() {
		window.SetInputMode(glfw.RawMouseMotion, glfw.True)
	}

	return window, nil
}

func setupGL(logger *slog.Logger, width, height int) {
	if config.Debug {
		graphics.EnableDebugOutput()
	}

	vendor, rendererName, version := graphics.DriverInfo()
	logger.Info("OpenGL context", "vendor", vendor, "renderer", rendererName, "version", version)

	gl.Enable(gl.DEPTH_TEST)
	gl.Viewport(0, 0, int32(width), int32(height))
}

func newCamera(c config.Camera, width, height int) *camera.Camera {
	opts := camera.Options{
		Position:    mgl32.Vec3(c.Position),
		Up:          mgl32.Vec3{0, 1, 0},
		Yaw:         c.Yaw,
		Pitch:       c.Pitch,
		PitchLimit:  c.PitchLimit,
		FOV:         c.FOV,
		MinFOV:      c.MinFOV,
		MaxFOV:      c.MaxFOV,
		Near:        c.Near,
		Far:         c.Far,
		Speed:       c.Speed,
		Sensitivity: c.Sensitivity,
		Movement:    movementFor(c.Movement),
	}
	if width > 0 && height > 0 {
		opts.Aspect = float32(width) / float32(height)
	}
	return camera.New(opts)
}

func movementFor(name string) camera.Movement {
	if name == config.MovementDirect {
		return camera.MovementDirect
	}
	return camera.MovementVelocity
}

func glfwBool(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}
