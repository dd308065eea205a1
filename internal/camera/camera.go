// Package camera implements a first-person fly camera driven by input events.
package camera

import (
	"math"

	"gl-playground/internal/input"

	"github.com/go-gl/mathgl/mgl32"
)

// Movement selects how Update integrates movement intent
type Movement int

const (
	// MovementVelocity accelerates along the intent and damps velocity over time.
	MovementVelocity Movement = iota
	// MovementDirect moves at a constant speed while an intent is held.
	MovementDirect
)

const (
	// acceleration applied per unit of intent
	accelScale = 144.0
	// velocity retained per 1/144 s
	dampPerTick = 0.95
	// velocities below this squared length snap to rest
	restSpeedSq = 0.01

	fastMultiplier = 5.0
	slowMultiplier = 0.25
)

// Options configures a new Camera
type Options struct {
	Position    mgl32.Vec3
	Up          mgl32.Vec3
	Yaw         float32 // degrees, -90 looks down -Z
	Pitch       float32 // degrees
	PitchLimit  float32
	FOV         float32 // vertical, degrees
	MinFOV      float32
	MaxFOV      float32
	Aspect      float32
	Near        float32
	Far         float32
	Speed       float32
	Sensitivity float32
	Movement    Movement
}

// DefaultOptions returns the settings used by Default
func DefaultOptions() Options {
	return Options{
		Position:    mgl32.Vec3{0, 0, 0},
		Up:          mgl32.Vec3{0, 1, 0},
		Yaw:         -90,
		Pitch:       0,
		PitchLimit:  89,
		FOV:         45,
		MinFOV:      1,
		MaxFOV:      90,
		Aspect:      16.0 / 9.0,
		Near:        0.1,
		Far:         100,
		Speed:       1,
		Sensitivity: 0.1,
		Movement:    MovementVelocity,
	}
}

// Camera is a first-person camera. Orientation is kept as yaw/pitch angles
// and the view matrix is re-derived whenever position or orientation change.
type Camera struct {
	position mgl32.Vec3
	viewDir  mgl32.Vec3
	up       mgl32.Vec3
	yaw      float32
	pitch    float32
	view     mgl32.Mat4

	velocity    mgl32.Vec3
	speed       float32
	sensitivity float32
	movement    Movement
	pitchLimit  float32

	fov, minFOV, maxFOV float32
	aspect, near, far   float32

	forward, backward, left, right bool
	fast, slow                     bool

	lastX, lastY float64
	firstMouse   bool
}

// New creates a camera from opts
func New(opts Options) *Camera {
	if opts.Up.Len() == 0 {
		opts.Up = mgl32.Vec3{0, 1, 0}
	}
	def := DefaultOptions()
	if opts.PitchLimit <= 0 {
		opts.PitchLimit = def.PitchLimit
	}
	if opts.MinFOV <= 0 {
		opts.MinFOV = def.MinFOV
	}
	if opts.MaxFOV < opts.MinFOV {
		opts.MaxFOV = max(def.MaxFOV, opts.MinFOV)
	}
	if opts.Aspect <= 0 {
		opts.Aspect = def.Aspect
	}
	if opts.Near <= 0 {
		opts.Near = def.Near
	}
	if opts.Far <= opts.Near {
		opts.Far = opts.Near * 1000
	}
	c := &Camera{
		position:    opts.Position,
		up:          opts.Up.Normalize(),
		yaw:         opts.Yaw,
		pitch:       clamp(opts.Pitch, -opts.PitchLimit, opts.PitchLimit),
		speed:       opts.Speed,
		sensitivity: opts.Sensitivity,
		movement:    opts.Movement,
		pitchLimit:  opts.PitchLimit,
		minFOV:      opts.MinFOV,
		maxFOV:      opts.MaxFOV,
		aspect:      opts.Aspect,
		near:        opts.Near,
		far:         opts.Far,
		firstMouse:  true,
	}
	c.fov = clamp(opts.FOV, opts.MinFOV, opts.MaxFOV)
	c.viewDir = DirectionFromAngles(c.yaw, c.pitch)
	c.refreshView()
	return c
}

// Default returns a camera at the origin looking down -Z
func Default() *Camera {
	return New(DefaultOptions())
}

// Update advances the camera by dt seconds
func (c *Camera) Update(dt float32) {
	intent := c.intent()

	switch c.movement {
	case MovementDirect:
		if intent.Len() > 0 {
			step := c.speed * c.multiplier() * dt
			c.position = c.position.Add(intent.Normalize().Mul(step))
		}
	default:
		accel := intent.Mul(accelScale)

		c.velocity = c.velocity.Mul(float32(math.Exp(math.Log10(dampPerTick) * accelScale * float64(dt))))
		c.position = c.position.
			Add(c.velocity.Mul(dt * c.speed)).
			Add(accel.Mul(0.5 * dt * dt))
		c.velocity = c.velocity.Add(accel.Mul(c.multiplier() * dt))

		if c.velocity.Dot(c.velocity) < restSpeedSq {
			c.velocity = mgl32.Vec3{}
		}
	}

	c.refreshView()
}

// HandleEvent applies a single input event
func (c *Camera) HandleEvent(ev input.Event) {
	switch ev.Kind {
	case input.EventAction:
		c.setIntent(ev.Action, ev.Pressed)
	case input.EventCursor:
		c.look(ev.X, ev.Y)
	case input.EventScroll:
		c.Zoom(float32(ev.Y))
	case input.EventResize:
		if ev.Width > 0 && ev.Height > 0 {
			c.SetAspect(float32(ev.Width) / float32(ev.Height))
		}
	}
}

func (c *Camera) setIntent(a input.Action, pressed bool) {
	switch a {
	case input.ActionMoveForward:
		c.forward = pressed
	case input.ActionMoveBackward:
		c.backward = pressed
	case input.ActionMoveLeft:
		c.left = pressed
	case input.ActionMoveRight:
		c.right = pressed
	case input.ActionFast:
		c.fast = pressed
	case input.ActionSlow:
		c.slow = pressed
	}
}

func (c *Camera) look(x, y float64) {
	if c.firstMouse {
		c.lastX, c.lastY = x, y
		c.firstMouse = false
		return
	}

	xoffset := float32(x-c.lastX) * c.sensitivity
	yoffset := float32(c.lastY-y) * c.sensitivity
	c.lastX, c.lastY = x, y

	c.yaw = float32(math.Mod(float64(c.yaw+xoffset), 360))
	c.pitch = clamp(c.pitch+yoffset, -c.pitchLimit, c.pitchLimit)

	c.viewDir = DirectionFromAngles(c.yaw, c.pitch)
	c.refreshView()
}

// Zoom narrows (positive offset) or widens the field of view
func (c *Camera) Zoom(offset float32) {
	c.fov = clamp(c.fov-offset, c.minFOV, c.maxFOV)
}

// ResetCursor makes the next cursor event only latch its position
func (c *Camera) ResetCursor() {
	c.firstMouse = true
}

func (c *Camera) intent() mgl32.Vec3 {
	var dir mgl32.Vec3
	right := c.viewDir.Cross(c.up)
	if right.Len() > 0 {
		right = right.Normalize()
	}
	if c.forward {
		dir = dir.Add(c.viewDir)
	}
	if c.backward {
		dir = dir.Sub(c.viewDir)
	}
	if c.right {
		dir = dir.Add(right)
	}
	if c.left {
		dir = dir.Sub(right)
	}
	return dir
}

func (c *Camera) multiplier() float32 {
	switch {
	case c.fast:
		return fastMultiplier
	case c.slow:
		return slowMultiplier
	}
	return 1
}

func (c *Camera) refreshView() {
	c.view = mgl32.LookAtV(c.position, c.position.Add(c.viewDir), c.up)
}

// SetPosition moves the camera without touching its velocity
func (c *Camera) SetPosition(p mgl32.Vec3) {
	c.position = p
	c.refreshView()
}

// SetAspect sets the projection aspect ratio (width / height)
func (c *Camera) SetAspect(aspect float32) {
	if aspect > 0 {
		c.aspect = aspect
	}
}

func (c *Camera) Position() mgl32.Vec3 { return c.position }
func (c *Camera) Front() mgl32.Vec3    { return c.viewDir }
func (c *Camera) Velocity() mgl32.Vec3 { return c.velocity }
func (c *Camera) Yaw() float32         { return c.yaw }
func (c *Camera) Pitch() float32       { return c.pitch }
func (c *Camera) FOV() float32         { return c.fov }

// ViewMatrix returns the world-to-view transform
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return c.view
}

// ProjectionMatrix returns a right-handed GL perspective projection
func (c *Camera) ProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.fov), c.aspect, c.near, c.far)
}

// ProjViewMatrix returns projection × view, ready for a uProjView uniform
func (c *Camera) ProjViewMatrix() mgl32.Mat4 {
	return c.ProjectionMatrix().Mul4(c.view)
}

// DirectionFromAngles converts yaw/pitch in degrees to a unit view direction.
func DirectionFromAngles(yaw, pitch float32) mgl32.Vec3 {
	y := float64(mgl32.DegToRad(yaw))
	p := float64(mgl32.DegToRad(pitch))
	return mgl32.Vec3{
		float32(math.Cos(y) * math.Cos(p)),
		float32(math.Sin(p)),
		float32(math.Sin(y) * math.Cos(p)),
	}.Normalize()
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
