// Package assets holds the shader sources and the default texture that are
// compiled into the playground binary.
package assets

import (
	"embed"
	"fmt"
)

//go:embed shaders/*.vert shaders/*.frag
var files embed.FS

// Brick is the default wall texture, used when no texture path is configured.
//
//go:embed textures/brick.png
var Brick []byte

// ShaderPair returns the vertex and fragment source for the named shader.
func ShaderPair(name string) (vertex, fragment string, err error) {
	v, err := files.ReadFile("shaders/" + name + ".vert")
	if err != nil {
		return "", "", fmt.Errorf("read vertex shader %q: %w", name, err)
	}
	f, err := files.ReadFile("shaders/" + name + ".frag")
	if err != nil {
		return "", "", fmt.Errorf("read fragment shader %q: %w", name, err)
	}
	return string(v), string(f), nil
}
