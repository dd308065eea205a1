package graphics

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.5-core/gl"
)

// ErrCreation is returned when the driver refuses to allocate a GL object.
var ErrCreation = errors.New("graphics: object creation failed")

// ShaderCompilationError carries the driver's diagnostic text for a shader
// stage that failed to compile, or for a program that failed to link.
type ShaderCompilationError struct {
	Stage string // "vertex", "fragment" or "link"
	Label string
	Log   string
}

func (e *ShaderCompilationError) Error() string {
	var b strings.Builder
	b.WriteString("graphics: ")
	if e.Stage == stageLink {
		b.WriteString("program link failed")
	} else {
		b.WriteString(e.Stage)
		b.WriteString(" shader compilation failed")
	}
	if e.Label != "" {
		fmt.Fprintf(&b, " (%s)", e.Label)
	}
	if e.Log != "" {
		b.WriteString(": ")
		b.WriteString(e.Log)
	}
	return b.String()
}

const (
	stageVertex   = "vertex"
	stageFragment = "fragment"
	stageLink     = "link"
)

// Program represents a linked OpenGL shader program
type Program struct {
	id       uint32
	label    string
	released bool
}

// NewProgram compiles a vertex and fragment shader and links them into a
// program. label is attached to the GL objects when non-empty.
func NewProgram(vertexSrc, fragmentSrc, label string) (*Program, error) {
	log := Logger()

	log.Debug("compiling vertex shader", "label", label, "source", vertexSrc)
	vertex, err := compileShader(vertexSrc, gl.VERTEX_SHADER, stageVertex, label)
	if err != nil {
		return nil, err
	}
	defer gl.DeleteShader(vertex)

	log.Debug("compiling fragment shader", "label", label, "source", fragmentSrc)
	fragment, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER, stageFragment, label)
	if err != nil {
		return nil, err
	}
	defer gl.DeleteShader(fragment)

	id := gl.CreateProgram()
	if id == 0 {
		return nil, fmt.Errorf("create program %q: %w", label, ErrCreation)
	}

	gl.AttachShader(id, vertex)
	gl.AttachShader(id, fragment)
	gl.LinkProgram(id)
	gl.DetachShader(id, vertex)
	gl.DetachShader(id, fragment)

	var status int32
	gl.GetProgramiv(id, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(id, gl.INFO_LOG_LENGTH, &logLength)
		infoLog := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(id, logLength, nil, gl.Str(infoLog))
		gl.DeleteProgram(id)

		return nil, &ShaderCompilationError{Stage: stageLink, Label: label, Log: trimInfoLog(infoLog)}
	}

	setLabel(gl.PROGRAM, id, label)
	log.Debug("linked program", "id", id, "label", label)
	return &Program{id: id, label: label}, nil
}

func compileShader(source string, shaderType uint32, stage, label string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	if shader == 0 {
		return 0, fmt.Errorf("create %s shader: %w", stage, ErrCreation)
	}
	if label != "" {
		setLabel(gl.SHADER, shader, label+" - "+stage+" shader")
	}

	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		infoLog := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(infoLog))
		gl.DeleteShader(shader)

		return 0, &ShaderCompilationError{Stage: stage, Label: label, Log: trimInfoLog(infoLog)}
	}
	Logger().Debug("compiled shader", "id", shader, "stage", stage)
	return shader, nil
}

// trimInfoLog drops the NUL padding and trailing whitespace drivers leave
// on info logs.
func trimInfoLog(s string) string {
	if i := strings.IndexByte(s, 0); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// Bind makes the program current
func (p *Program) Bind() {
	gl.UseProgram(p.id)
}

// Unbind clears the current program
func (p *Program) Unbind() {
	gl.UseProgram(0)
}

// UniformLocation returns the location of a named uniform. ok is false when
// the program has no active uniform with that name.
func (p *Program) UniformLocation(name string) (loc int32, ok bool) {
	loc = gl.GetUniformLocation(p.id, gl.Str(name+"\x00"))
	return loc, loc != -1
}

// SetInt sets an integer uniform on the bound program
func (p *Program) SetInt(loc int32, value int32) {
	gl.Uniform1i(loc, value)
}

// SetMatrix4 sets a 4x4 matrix uniform on the bound program
func (p *Program) SetMatrix4(loc int32, value *float32) {
	gl.UniformMatrix4fv(loc, 1, false, value)
}

func (p *Program) ID() uint32    { return p.id }
func (p *Program) Label() string { return p.label }

// Release deletes the GL program. Calls after the first are no-ops.
func (p *Program) Release() {
	if p == nil || p.released {
		return
	}
	p.released = true
	gl.DeleteProgram(p.id)
	Logger().Debug("released program", "id", p.id, "label", p.label)
}

// setLabel attaches a debug label to a GL object.
func setLabel(identifier, name uint32, label string) {
	if label == "" {
		return
	}
	gl.ObjectLabel(identifier, name, -1, gl.Str(label+"\x00"))
}
