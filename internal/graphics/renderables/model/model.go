package model

import (
	"fmt"

	"gl-playground/assets"
	"gl-playground/internal/config"
	"gl-playground/internal/graphics"
	renderer "gl-playground/internal/graphics/renderer"
	"gl-playground/internal/profiling"
)

const (
	projViewUniform = "uProjView"
	textureUniform  = "uTexture"

	textureUnit = 0
)

// Options selects what a Model draws
type Options struct {
	Mesh         string // config.MeshCube or config.MeshQuad
	TexturePath  string // empty uses the embedded brick texture
	TextureLabel string
}

// Model draws one textured static mesh with the shader matching its vertex format
type Model struct {
	opts Options

	program *graphics.Program
	texture *graphics.Texture
	mesh    *graphics.MeshBuffer

	projViewLoc int32
}

// NewModel creates a model renderable; GL objects are created in Init
func NewModel(opts Options) *Model {
	return &Model{opts: opts}
}

// ShaderFor returns the shader pair that matches a mesh's vertex format
func ShaderFor(mesh string) (string, error) {
	switch mesh {
	case config.MeshCube:
		return "basic", nil
	case config.MeshQuad:
		return "colored", nil
	}
	return "", fmt.Errorf("unknown mesh %q", mesh)
}

// Init compiles the program, loads the texture and uploads the mesh.
// Anything created before a failure is released again.
func (m *Model) Init() (err error) {
	defer func() {
		if err != nil {
			m.Dispose()
		}
	}()

	shader, err := ShaderFor(m.opts.Mesh)
	if err != nil {
		return err
	}
	vs, fs, err := assets.ShaderPair(shader)
	if err != nil {
		return err
	}
	if m.program, err = graphics.NewProgram(vs, fs, "Basic shader"); err != nil {
		return fmt.Errorf("create program: %w", err)
	}

	if m.texture, err = m.loadTexture(); err != nil {
		return fmt.Errorf("load texture: %w", err)
	}

	if m.mesh, err = m.uploadMesh(); err != nil {
		return err
	}

	loc, ok := m.program.UniformLocation(projViewUniform)
	if !ok {
		return fmt.Errorf("program %q has no %s uniform", m.program.Label(), projViewUniform)
	}
	m.projViewLoc = loc

	// the sampler only ever reads from one unit
	if loc, ok := m.program.UniformLocation(textureUniform); ok {
		m.program.Bind()
		m.program.SetInt(loc, textureUnit)
		m.program.Unbind()
	}
	return nil
}

func (m *Model) loadTexture() (*graphics.Texture, error) {
	if m.opts.TexturePath != "" {
		return graphics.LoadTextureFromFile(m.opts.TexturePath, m.opts.TextureLabel)
	}
	return graphics.LoadTextureFromMemory(assets.Brick, m.opts.TextureLabel)
}

func (m *Model) uploadMesh() (*graphics.MeshBuffer, error) {
	switch m.opts.Mesh {
	case config.MeshQuad:
		return graphics.UploadMesh("Quad", graphics.Quad[:], graphics.ColorVertex{}.Layout())
	default:
		return graphics.UploadMesh("Cube", graphics.Cube[:], graphics.Vertex{}.Layout())
	}
}

// Render draws the mesh with the frame's projection × view
func (m *Model) Render(ctx renderer.RenderContext) {
	defer profiling.Track("model.Render")()

	m.program.Bind()
	m.texture.Bind(textureUnit)
	m.program.SetMatrix4(m.projViewLoc, &ctx.ProjView[0])
	m.mesh.Draw()
}

// Dispose releases the mesh, texture and program
func (m *Model) Dispose() {
	m.mesh.Release()
	m.texture.Release()
	m.program.Release()
}

// SetViewport is a no-op; the projection comes from the camera
func (m *Model) SetViewport(width, height int) {}
