package camera

import (
	"math/rand"
	"testing"

	"gl-playground/internal/input"

	"github.com/go-gl/mathgl/mgl32"
)

const eps = 1e-5

func TestDefaultLooksDownNegativeZ(t *testing.T) {
	c := Default()
	front := c.Front()
	if !front.ApproxEqualThreshold(mgl32.Vec3{0, 0, -1}, eps) {
		t.Fatalf("front = %v, want (0,0,-1)", front)
	}

	// At the origin looking down -Z with +Y up the view transform is the identity.
	view := c.ViewMatrix()
	if !view.ApproxEqualThreshold(mgl32.Ident4(), eps) {
		t.Errorf("view = %v, want identity", view)
	}
}

func TestViewMatrixMatchesLookAt(t *testing.T) {
	tests := []struct {
		name    string
		pos     mgl32.Vec3
		yaw     float32
		pitch   float32
		wantDir mgl32.Vec3
	}{
		{
			name:    "origin +X",
			yaw:     0,
			wantDir: mgl32.Vec3{1, 0, 0},
		},
		{
			name:    "offset -Z",
			pos:     mgl32.Vec3{0, 0, 1},
			yaw:     -90,
			wantDir: mgl32.Vec3{0, 0, -1},
		},
		{
			name:    "origin +Z",
			yaw:     90,
			wantDir: mgl32.Vec3{0, 0, 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.Position = tt.pos
			opts.Yaw = tt.yaw
			opts.Pitch = tt.pitch
			c := New(opts)

			if !c.Front().ApproxEqualThreshold(tt.wantDir, eps) {
				t.Fatalf("front = %v, want %v", c.Front(), tt.wantDir)
			}
			want := mgl32.LookAtV(tt.pos, tt.pos.Add(tt.wantDir), mgl32.Vec3{0, 1, 0})
			if !c.ViewMatrix().ApproxEqualThreshold(want, eps) {
				t.Errorf("view = %v, want %v", c.ViewMatrix(), want)
			}
		})
	}
}

func TestViewTranslatesOffsetCamera(t *testing.T) {
	opts := DefaultOptions()
	opts.Position = mgl32.Vec3{0, 0, 1}
	c := New(opts)

	// A point one unit in front of the camera lands at view-space (0,0,-1).
	p := c.ViewMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	if !p.ApproxEqualThreshold(mgl32.Vec4{0, 0, -1, 1}, eps) {
		t.Errorf("origin in view space = %v, want (0,0,-1,1)", p)
	}
}

func TestPitchClamped(t *testing.T) {
	c := Default()
	rng := rand.New(rand.NewSource(7))
	x, y := 0.0, 0.0
	c.HandleEvent(input.CursorEvent(x, y))

	for i := 0; i < 2000; i++ {
		x += rng.Float64()*400 - 200
		y += rng.Float64()*4000 - 2000
		c.HandleEvent(input.CursorEvent(x, y))
		if p := c.Pitch(); p > 89 || p < -89 {
			t.Fatalf("step %d: pitch %v outside [-89, 89]", i, p)
		}
	}
}

func TestPitchClampedToConfiguredLimit(t *testing.T) {
	opts := DefaultOptions()
	opts.PitchLimit = 30
	c := New(opts)
	c.HandleEvent(input.CursorEvent(0, 0))
	c.HandleEvent(input.CursorEvent(0, -100000))
	if c.Pitch() != 30 {
		t.Errorf("pitch = %v, want 30", c.Pitch())
	}
	c.HandleEvent(input.CursorEvent(0, 100000))
	if c.Pitch() != -30 {
		t.Errorf("pitch = %v, want -30", c.Pitch())
	}
}

func TestFirstCursorEventOnlyLatches(t *testing.T) {
	c := Default()
	yaw, pitch := c.Yaw(), c.Pitch()
	c.HandleEvent(input.CursorEvent(500, 300))
	if c.Yaw() != yaw || c.Pitch() != pitch {
		t.Fatalf("first event turned the camera: yaw %v pitch %v", c.Yaw(), c.Pitch())
	}

	// Moving the mouse up 10 pixels looks up by 10 * sensitivity degrees.
	c.HandleEvent(input.CursorEvent(510, 290))
	if d := c.Yaw() - yaw; d < 0.99 || d > 1.01 {
		t.Errorf("yaw delta = %v, want 1", d)
	}
	if d := c.Pitch() - pitch; d < 0.99 || d > 1.01 {
		t.Errorf("pitch delta = %v, want 1", d)
	}

	c.ResetCursor()
	c.HandleEvent(input.CursorEvent(0, 0))
	if d := c.Pitch() - pitch; d < 0.99 || d > 1.01 {
		t.Errorf("latch after reset changed pitch delta to %v", d)
	}
}

func TestIdleUpdateKeepsPosition(t *testing.T) {
	for _, mv := range []Movement{MovementVelocity, MovementDirect} {
		opts := DefaultOptions()
		opts.Position = mgl32.Vec3{1, 2, 3}
		opts.Movement = mv
		c := New(opts)

		for i := 0; i < 100; i++ {
			c.Update(1.0 / 60.0)
		}
		if c.Position() != (mgl32.Vec3{1, 2, 3}) {
			t.Errorf("movement %d: position drifted to %v", mv, c.Position())
		}
	}
}

func TestForwardMovesAlongViewDirection(t *testing.T) {
	for _, mv := range []Movement{MovementVelocity, MovementDirect} {
		opts := DefaultOptions()
		opts.Movement = mv
		c := New(opts)

		c.HandleEvent(input.ActionEvent(input.ActionMoveForward, true))
		for i := 0; i < 10; i++ {
			c.Update(1.0 / 60.0)
		}
		p := c.Position()
		if p.Z() >= 0 {
			t.Errorf("movement %d: z = %v, want negative", mv, p.Z())
		}
		if abs(p.X()) > eps || abs(p.Y()) > eps {
			t.Errorf("movement %d: strayed off axis to %v", mv, p)
		}
	}
}

func TestStrafeRight(t *testing.T) {
	opts := DefaultOptions()
	opts.Movement = MovementDirect
	c := New(opts)
	c.HandleEvent(input.ActionEvent(input.ActionMoveRight, true))
	c.Update(1)
	if !c.Position().ApproxEqualThreshold(mgl32.Vec3{1, 0, 0}, eps) {
		t.Errorf("position = %v, want (1,0,0)", c.Position())
	}
}

func TestDirectModifiers(t *testing.T) {
	tests := []struct {
		modifier input.Action
		want     float32
	}{
		{input.ActionFast, 5},
		{input.ActionSlow, 0.25},
	}
	for _, tt := range tests {
		opts := DefaultOptions()
		opts.Movement = MovementDirect
		c := New(opts)
		c.HandleEvent(input.ActionEvent(input.ActionMoveBackward, true))
		c.HandleEvent(input.ActionEvent(tt.modifier, true))
		c.Update(1)
		if got := c.Position().Z(); abs(got-tt.want) > eps {
			t.Errorf("%v: z = %v, want %v", tt.modifier, got, tt.want)
		}
	}
}

func TestVelocityComesToRest(t *testing.T) {
	c := Default()
	c.HandleEvent(input.ActionEvent(input.ActionMoveForward, true))
	c.Update(1.0 / 60.0)
	if c.Velocity().Len() == 0 {
		t.Fatal("velocity still zero after accelerating")
	}

	c.HandleEvent(input.ActionEvent(input.ActionMoveForward, false))
	for i := 0; i < 600; i++ {
		c.Update(1.0 / 60.0)
	}
	if c.Velocity().Len() != 0 {
		t.Fatalf("velocity = %v, want rest", c.Velocity())
	}
	rest := c.Position()
	c.Update(1.0 / 60.0)
	if c.Position() != rest {
		t.Errorf("camera drifted at rest: %v -> %v", rest, c.Position())
	}
}

func TestOpposingIntentsCancel(t *testing.T) {
	c := Default()
	c.HandleEvent(input.ActionEvent(input.ActionMoveLeft, true))
	c.HandleEvent(input.ActionEvent(input.ActionMoveRight, true))
	c.Update(0.5)
	if c.Position() != (mgl32.Vec3{}) {
		t.Errorf("position = %v, want origin", c.Position())
	}
}

func TestZoomClamped(t *testing.T) {
	c := Default()
	c.HandleEvent(input.ScrollEvent(0, 5))
	if c.FOV() != 40 {
		t.Errorf("fov = %v, want 40", c.FOV())
	}
	c.HandleEvent(input.ScrollEvent(0, 1000))
	if c.FOV() != 1 {
		t.Errorf("fov = %v, want 1", c.FOV())
	}
	c.HandleEvent(input.ScrollEvent(0, -1000))
	if c.FOV() != 90 {
		t.Errorf("fov = %v, want 90", c.FOV())
	}
}

func TestProjViewMatrix(t *testing.T) {
	c := Default()
	c.HandleEvent(input.ResizeEvent(800, 600))

	want := mgl32.Perspective(mgl32.DegToRad(45), 800.0/600.0, 0.1, 100).Mul4(c.ViewMatrix())
	if !c.ProjViewMatrix().ApproxEqualThreshold(want, eps) {
		t.Errorf("projView = %v, want %v", c.ProjViewMatrix(), want)
	}

	// Degenerate sizes (minimized window) keep the previous aspect.
	c.HandleEvent(input.ResizeEvent(0, 0))
	if !c.ProjViewMatrix().ApproxEqualThreshold(want, eps) {
		t.Error("zero-sized resize changed the projection")
	}
}

func TestNewFillsZeroOptions(t *testing.T) {
	c := New(Options{})
	if c.FOV() <= 0 {
		t.Errorf("fov = %v", c.FOV())
	}
	m := c.ProjectionMatrix()
	for i, v := range m {
		if v != v {
			t.Fatalf("projection[%d] is NaN", i)
		}
	}
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
