package renderer

import (
	"fmt"

	"gl-playground/internal/camera"

	"github.com/go-gl/gl/v4.5-core/gl"
)

// Renderer clears the frame and drives its renderables in order
type Renderer struct {
	renderables []Renderable
	clearColor  [4]float32
}

// NewRenderer initializes every renderable in order. If one fails, the ones
// already initialized are disposed before the error is returned.
func NewRenderer(rs ...Renderable) (*Renderer, error) {
	for i, r := range rs {
		if err := r.Init(); err != nil {
			for j := i - 1; j >= 0; j-- {
				rs[j].Dispose()
			}
			return nil, fmt.Errorf("init renderable %d: %w", i, err)
		}
	}
	return &Renderer{renderables: rs}, nil
}

// SetClearColor sets the color the frame is cleared to
func (r *Renderer) SetClearColor(c [4]float32) {
	r.clearColor = c
}

// Render clears the framebuffer and renders every feature from cam's point of view
func (r *Renderer) Render(cam *camera.Camera, dt float64) {
	gl.ClearColor(r.clearColor[0], r.clearColor[1], r.clearColor[2], r.clearColor[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	r.RenderFeatures(Context(cam, dt))
}

// RenderFeatures runs every renderable against ctx without clearing
func (r *Renderer) RenderFeatures(ctx RenderContext) {
	for _, renderable := range r.renderables {
		renderable.Render(ctx)
	}
}

// Context builds the per-frame render context for a camera
func Context(cam *camera.Camera, dt float64) RenderContext {
	view := cam.ViewMatrix()
	proj := cam.ProjectionMatrix()
	return RenderContext{
		Camera:   cam,
		DT:       dt,
		View:     view,
		Proj:     proj,
		ProjView: proj.Mul4(view),
	}
}

// Dispose cleans up all renderables in reverse order
func (r *Renderer) Dispose() {
	for i := len(r.renderables) - 1; i >= 0; i-- {
		r.renderables[i].Dispose()
	}
	r.renderables = nil
}

// UpdateViewport forwards new framebuffer dimensions to every renderable
func (r *Renderer) UpdateViewport(width, height int) {
	for _, renderable := range r.renderables {
		renderable.SetViewport(width, height)
	}
}
