package config

import (
	_ "embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed playground.yaml
var embedded []byte

// Mesh names accepted by the mesh setting.
const (
	MeshCube = "cube"
	MeshQuad = "quad"
)

// Camera movement models accepted by camera.movement.
const (
	MovementVelocity = "velocity"
	MovementDirect   = "direct"
)

// Settings holds everything the playground reads at startup
type Settings struct {
	Window     Window     `yaml:"window"`
	ClearColor [4]float32 `yaml:"clear_color"`
	Mesh       string     `yaml:"mesh"`
	Texture    Texture    `yaml:"texture"`
	Camera     Camera     `yaml:"camera"`
	Profiling  Profiling  `yaml:"profiling"`
}

type Window struct {
	Title     string `yaml:"title"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	VSync     bool   `yaml:"vsync"`
	Resizable bool   `yaml:"resizable"`
	// MaxFPS caps the frame rate when vsync is off; 0 is uncapped.
	MaxFPS int `yaml:"max_fps"`
}

type Texture struct {
	Path  string `yaml:"path"`
	Label string `yaml:"label"`
}

type Camera struct {
	Position    [3]float32 `yaml:"position"`
	Yaw         float32    `yaml:"yaw"`
	Pitch       float32    `yaml:"pitch"`
	PitchLimit  float32    `yaml:"pitch_limit"`
	FOV         float32    `yaml:"fov"`
	MinFOV      float32    `yaml:"min_fov"`
	MaxFOV      float32    `yaml:"max_fov"`
	Near        float32    `yaml:"near"`
	Far         float32    `yaml:"far"`
	Speed       float32    `yaml:"speed"`
	Sensitivity float32    `yaml:"sensitivity"`
	Movement    string     `yaml:"movement"`
}

type Profiling struct {
	ReportInterval time.Duration `yaml:"report_interval"`
	SlowFrame      time.Duration `yaml:"slow_frame"`
}

// Default returns the built-in settings used when a document leaves a field out.
func Default() Settings {
	return Settings{
		Window: Window{
			Title:  "Gl Playground",
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		ClearColor: [4]float32{0.2, 0.2, 0.2, 1.0},
		Mesh:       MeshCube,
		Texture:    Texture{Label: "Brick wall"},
		Camera: Camera{
			Position:    [3]float32{0, 0, 1},
			Yaw:         -90,
			PitchLimit:  89,
			FOV:         45,
			MinFOV:      1,
			MaxFOV:      90,
			Near:        0.1,
			Far:         100,
			Speed:       1,
			Sensitivity: 0.1,
			Movement:    MovementVelocity,
		},
		Profiling: Profiling{
			ReportInterval: time.Second,
			SlowFrame:      50 * time.Millisecond,
		},
	}
}

// Load parses the settings compiled into the binary.
func Load() (Settings, error) {
	return Parse(embedded)
}

// Parse decodes a YAML document on top of Default and normalizes the result.
func Parse(data []byte) (Settings, error) {
	s := Default()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("parse settings: %w", err)
	}
	if err := s.normalize(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func (s *Settings) normalize() error {
	switch s.Mesh {
	case MeshCube, MeshQuad:
	default:
		return fmt.Errorf("unknown mesh %q (want %q or %q)", s.Mesh, MeshCube, MeshQuad)
	}
	switch s.Camera.Movement {
	case MovementVelocity, MovementDirect:
	default:
		return fmt.Errorf("unknown camera movement %q (want %q or %q)", s.Camera.Movement, MovementVelocity, MovementDirect)
	}

	s.Window.Width = clampInt(s.Window.Width, 64, 7680)
	s.Window.Height = clampInt(s.Window.Height, 64, 4320)
	s.Window.MaxFPS = clampInt(s.Window.MaxFPS, 0, 1000)

	for i := range s.ClearColor {
		s.ClearColor[i] = clamp(s.ClearColor[i], 0, 1)
	}

	c := &s.Camera
	c.PitchLimit = clamp(c.PitchLimit, 1, 89.9)
	c.Pitch = clamp(c.Pitch, -c.PitchLimit, c.PitchLimit)
	c.MinFOV = clamp(c.MinFOV, 1, 179)
	c.MaxFOV = clamp(c.MaxFOV, c.MinFOV, 179)
	c.FOV = clamp(c.FOV, c.MinFOV, c.MaxFOV)
	if c.Near <= 0 {
		c.Near = 0.1
	}
	if c.Far <= c.Near {
		c.Far = c.Near * 1000
	}
	if c.Speed <= 0 {
		c.Speed = 1
	}
	c.Sensitivity = clamp(c.Sensitivity, 0.001, 10)

	if s.Profiling.ReportInterval <= 0 {
		s.Profiling.ReportInterval = time.Second
	}
	return nil
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

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
