package renderer

import (
	"errors"
	"reflect"
	"testing"

	"gl-playground/internal/camera"
)

type recorder struct {
	name    string
	log     *[]string
	initErr error
	frames  int
	w, h    int
	last    RenderContext
}

func (r *recorder) Init() error {
	*r.log = append(*r.log, "init "+r.name)
	return r.initErr
}

func (r *recorder) Render(ctx RenderContext) {
	r.frames++
	r.last = ctx
}

func (r *recorder) Dispose() {
	*r.log = append(*r.log, "dispose "+r.name)
}

func (r *recorder) SetViewport(width, height int) {
	r.w, r.h = width, height
}

func TestNewRendererInitOrderAndDispose(t *testing.T) {
	var log []string
	a := &recorder{name: "a", log: &log}
	b := &recorder{name: "b", log: &log}

	r, err := NewRenderer(a, b)
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	r.Dispose()
	r.Dispose()

	want := []string{"init a", "init b", "dispose b", "dispose a"}
	if !reflect.DeepEqual(log, want) {
		t.Errorf("log = %v, want %v", log, want)
	}
}

func TestNewRendererRollsBackOnInitError(t *testing.T) {
	var log []string
	boom := errors.New("boom")
	a := &recorder{name: "a", log: &log}
	b := &recorder{name: "b", log: &log}
	c := &recorder{name: "c", log: &log, initErr: boom}
	d := &recorder{name: "d", log: &log}

	_, err := NewRenderer(a, b, c, d)
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	want := []string{"init a", "init b", "init c", "dispose b", "dispose a"}
	if !reflect.DeepEqual(log, want) {
		t.Errorf("log = %v, want %v", log, want)
	}
}

func TestRenderFeaturesAndViewport(t *testing.T) {
	var log []string
	a := &recorder{name: "a", log: &log}
	b := &recorder{name: "b", log: &log}
	r, err := NewRenderer(a, b)
	if err != nil {
		t.Fatal(err)
	}

	cam := camera.Default()
	ctx := Context(cam, 0.016)
	r.RenderFeatures(ctx)
	r.UpdateViewport(640, 480)

	for _, rec := range []*recorder{a, b} {
		if rec.frames != 1 {
			t.Errorf("%s rendered %d frames", rec.name, rec.frames)
		}
		if rec.w != 640 || rec.h != 480 {
			t.Errorf("%s viewport = %dx%d", rec.name, rec.w, rec.h)
		}
		if rec.last.Camera != cam || rec.last.DT != 0.016 {
			t.Errorf("%s got context %+v", rec.name, rec.last)
		}
	}
}

func TestContextMatrices(t *testing.T) {
	cam := camera.Default()
	ctx := Context(cam, 0)
	if ctx.ProjView != cam.ProjViewMatrix() {
		t.Errorf("ProjView = %v, want %v", ctx.ProjView, cam.ProjViewMatrix())
	}
	if ctx.View != cam.ViewMatrix() || ctx.Proj != cam.ProjectionMatrix() {
		t.Error("view/proj do not match the camera")
	}
}
