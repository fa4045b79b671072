// Package config handles demo configuration loading and management.
package config

import (
	"fmt"

	"github.com/Faultbox/orrery/internal/game/orbit"
	"github.com/Faultbox/orrery/pkg/math"
)

// Config holds all demo settings.
type Config struct {
	Window     WindowConfig     `yaml:"window"`
	Assets     AssetsConfig     `yaml:"assets"`
	Camera     CameraConfig     `yaml:"camera"`
	Simulation SimulationConfig `yaml:"simulation"`
	Lighting   LightingConfig   `yaml:"lighting"`
	Scene      SceneConfig      `yaml:"scene"`
	Debug      DebugConfig      `yaml:"debug"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// AssetsConfig holds asset paths, relative to Root unless absolute.
type AssetsConfig struct {
	Root             string    `yaml:"root"`
	PlanetModel      string    `yaml:"planet_model"`
	DiffuseTexture   string    `yaml:"diffuse_texture"`
	AlternateTexture string    `yaml:"alternate_texture"`
	SkyboxFaces      [6]string `yaml:"skybox_faces"` // +X, -X, +Y, -Y, +Z, -Z
}

// CameraConfig holds fly camera settings.
type CameraConfig struct {
	Position    [3]float32 `yaml:"position"`
	Yaw         float32    `yaml:"yaw"`
	Pitch       float32    `yaml:"pitch"`
	Speed       float32    `yaml:"speed"`
	Sensitivity float32    `yaml:"sensitivity"`
	Zoom        float32    `yaml:"zoom"` // vertical FOV in degrees
	Near        float32    `yaml:"near"`
	Far         float32    `yaml:"far"`
}

// SimulationConfig controls how speeds advance angles.
type SimulationConfig struct {
	Step         string  `yaml:"step"` // "frame" or "time"
	ReferenceFPS float64 `yaml:"reference_fps"`
}

// LightingConfig holds shader lighting constants.
type LightingConfig struct {
	ClearColor       [4]float32 `yaml:"clear_color"`
	ObjectColor      [3]float32 `yaml:"object_color"`
	LightColor       [3]float32 `yaml:"light_color"`
	Ambient          [3]float32 `yaml:"ambient"`
	Diffuse          [3]float32 `yaml:"diffuse"`
	Specular         [3]float32 `yaml:"specular"`
	MaterialSpecular [3]float32 `yaml:"material_specular"`
	Shininess        float32    `yaml:"shininess"`
}

// SceneConfig holds the orbiting bodies.
type SceneConfig struct {
	LightBody int          `yaml:"light_body"`
	Bodies    []BodyConfig `yaml:"bodies"`
}

// BodyConfig describes one orbiting body.
type BodyConfig struct {
	Name       string     `yaml:"name"`
	Mesh       string     `yaml:"mesh"`
	Parent     int        `yaml:"parent"` // -1 for the root
	Radius     [2]float64 `yaml:"radius"` // sine, cosine
	Axes       string     `yaml:"axes"`   // e.g. "x,0,z"
	OrbitSpeed float64    `yaml:"orbit_speed"`
	SpinSpeed  float64    `yaml:"spin_speed"`
	SpinAxis   [3]float32 `yaml:"spin_axis"`
	Scale      [3]float32 `yaml:"scale"`
	TiltAngle  float32    `yaml:"tilt_angle"`
	TiltAxis   [3]float32 `yaml:"tilt_axis"`
	ChildScale float32    `yaml:"child_scale"`
}

// DebugConfig holds debug tooling settings.
type DebugConfig struct {
	ScreenshotDir    string `yaml:"screenshot_dir"`
	ScreenshotFormat string `yaml:"screenshot_format"` // "png" or "webp"
	LogFPS           bool   `yaml:"log_fps"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config reproducing the stock scene.
func Default() *Config {
	sky := "resources/costelacion1.jpg"
	return &Config{
		Window: WindowConfig{
			Title:  "GraficsAssignment",
			Width:  1200,
			Height: 900,
			VSync:  true,
		},
		Assets: AssetsConfig{
			Root:             ".",
			PlanetModel:      "resources/planet/planet.obj",
			DiffuseTexture:   "resources/container.png",
			AlternateTexture: "resources/Doge.jpg",
			SkyboxFaces:      [6]string{sky, sky, sky, sky, sky, sky},
		},
		Camera: CameraConfig{
			Position:    [3]float32{0, 0, 3},
			Yaw:         -90,
			Pitch:       0,
			Speed:       2.5,
			Sensitivity: 0.1,
			Zoom:        45,
			Near:        0.1,
			Far:         100,
		},
		Simulation: SimulationConfig{
			Step:         "frame",
			ReferenceFPS: 60,
		},
		Lighting: LightingConfig{
			ClearColor:       [4]float32{0.2, 0.2, 0.2, 1},
			ObjectColor:      [3]float32{1, 1, 1},
			LightColor:       [3]float32{1, 1, 1},
			Ambient:          [3]float32{0.3, 0.3, 0.3},
			Diffuse:          [3]float32{0.5, 0.5, 0.5},
			Specular:         [3]float32{1, 1, 1},
			MaterialSpecular: [3]float32{0.8, 0.8, 0.8},
			Shininess:        64,
		},
		Scene: SceneConfig{
			LightBody: 0,
			Bodies:    bodyConfigs(orbit.DefaultBodies()),
		},
		Debug: DebugConfig{
			ScreenshotDir:    "screenshots",
			ScreenshotFormat: "png",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate checks values that would otherwise fail deep inside the renderer.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("camera clip planes near=%v far=%v are invalid", c.Camera.Near, c.Camera.Far)
	}
	if _, err := orbit.ParseStepMode(c.Simulation.Step); err != nil {
		return fmt.Errorf("simulation: %w", err)
	}
	switch c.Debug.ScreenshotFormat {
	case "png", "webp":
	default:
		return fmt.Errorf("debug: unknown screenshot format %q", c.Debug.ScreenshotFormat)
	}
	if _, err := c.Scene.System(); err != nil {
		return fmt.Errorf("scene: %w", err)
	}
	return nil
}

// System builds the orbit system described by the scene section.
func (s SceneConfig) System() (*orbit.System, error) {
	bodies := make([]orbit.Body, 0, len(s.Bodies))
	for i, bc := range s.Bodies {
		b, err := bc.Body()
		if err != nil {
			return nil, fmt.Errorf("body %d: %w", i, err)
		}
		bodies = append(bodies, b)
	}
	return orbit.NewSystem(bodies, s.LightBody)
}

// Body converts the config entry to orbit state with zero initial angles.
func (bc BodyConfig) Body() (orbit.Body, error) {
	axes, err := orbit.ParseAxes(bc.Axes)
	if err != nil {
		return orbit.Body{}, err
	}
	mesh, err := orbit.ParseMesh(bc.Mesh)
	if err != nil {
		return orbit.Body{}, err
	}
	childScale := bc.ChildScale
	if childScale == 0 {
		childScale = 1
	}
	scale := vec3(bc.Scale)
	if scale == (math.Vec3{}) {
		scale = math.Splat(1)
	}
	return orbit.Body{
		Name:       bc.Name,
		Radius:     bc.Radius,
		Axes:       axes,
		OrbitSpeed: bc.OrbitSpeed,
		SpinSpeed:  bc.SpinSpeed,
		SpinAxis:   vec3(bc.SpinAxis),
		Scale:      scale,
		TiltAngle:  bc.TiltAngle,
		TiltAxis:   vec3(bc.TiltAxis),
		ChildScale: childScale,
		Parent:     bc.Parent,
		Mesh:       mesh,
	}, nil
}

func bodyConfigs(bodies []orbit.Body) []BodyConfig {
	out := make([]BodyConfig, len(bodies))
	for i, b := range bodies {
		out[i] = BodyConfig{
			Name:       b.Name,
			Mesh:       b.Mesh.String(),
			Parent:     b.Parent,
			Radius:     b.Radius,
			Axes:       b.Axes.String(),
			OrbitSpeed: b.OrbitSpeed,
			SpinSpeed:  b.SpinSpeed,
			SpinAxis:   b.SpinAxis.Array(),
			Scale:      b.Scale.Array(),
			TiltAngle:  b.TiltAngle,
			TiltAxis:   b.TiltAxis.Array(),
			ChildScale: b.ChildScale,
		}
	}
	return out
}

func vec3(a [3]float32) math.Vec3 {
	return math.Vec3{X: a[0], Y: a[1], Z: a[2]}
}
