package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/orrery/internal/game/orbit"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Window.Width != 1200 {
		t.Errorf("expected width 1200, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 900 {
		t.Errorf("expected height 900, got %d", cfg.Window.Height)
	}
	if cfg.Window.Title != "GraficsAssignment" {
		t.Errorf("expected title GraficsAssignment, got %q", cfg.Window.Title)
	}
	if cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}

	if cfg.Camera.Position != [3]float32{0, 0, 3} {
		t.Errorf("expected camera at (0,0,3), got %v", cfg.Camera.Position)
	}
	if cfg.Camera.Zoom != 45 {
		t.Errorf("expected zoom 45, got %f", cfg.Camera.Zoom)
	}

	if cfg.Simulation.Step != "frame" {
		t.Errorf("expected frame step mode, got %s", cfg.Simulation.Step)
	}

	if cfg.Lighting.Shininess != 64 {
		t.Errorf("expected shininess 64, got %f", cfg.Lighting.Shininess)
	}
	if cfg.Lighting.Ambient != [3]float32{0.3, 0.3, 0.3} {
		t.Errorf("expected ambient 0.3, got %v", cfg.Lighting.Ambient)
	}

	for i, face := range cfg.Assets.SkyboxFaces {
		if face != "resources/costelacion1.jpg" {
			t.Errorf("skybox face %d: got %s", i, face)
		}
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestDefaultSceneRoundTrip(t *testing.T) {
	sys, err := Default().Scene.System()
	if err != nil {
		t.Fatalf("building default scene: %v", err)
	}

	want := orbit.DefaultBodies()
	if len(sys.Bodies) != len(want) {
		t.Fatalf("expected %d bodies, got %d", len(want), len(sys.Bodies))
	}
	for i := range want {
		if sys.Bodies[i] != want[i] {
			t.Errorf("body %d: got %+v, want %+v", i, sys.Bodies[i], want[i])
		}
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
window:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false

assets:
  root: /opt/orrery

simulation:
  step: time
  reference_fps: 120

scene:
  light_body: 0
  bodies:
    - name: sun
      mesh: planet
      parent: -1
      radius: [0, 0]
      axes: "x,0,z"
      spin_speed: 0.01
      spin_axis: [0, 1, 0]
    - name: moon
      mesh: cube
      parent: 0
      radius: [3, 3]
      axes: "x,z,0"
      orbit_speed: 0.002
      spin_axis: [0, 0, 1]

logging:
  level: "debug"
  log_file: "orrery.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Window.Width != 1920 || cfg.Window.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if !cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Window.VSync {
		t.Error("expected vsync to be false")
	}
	// Untouched keys keep their defaults
	if cfg.Window.Title != "GraficsAssignment" {
		t.Errorf("expected default title, got %q", cfg.Window.Title)
	}
	if cfg.Assets.Root != "/opt/orrery" {
		t.Errorf("expected asset root /opt/orrery, got %s", cfg.Assets.Root)
	}
	if cfg.Simulation.Step != "time" || cfg.Simulation.ReferenceFPS != 120 {
		t.Errorf("unexpected simulation %+v", cfg.Simulation)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}

	if len(cfg.Scene.Bodies) != 2 {
		t.Fatalf("expected file bodies to replace defaults, got %d", len(cfg.Scene.Bodies))
	}
	sys, err := cfg.Scene.System()
	if err != nil {
		t.Fatalf("building scene: %v", err)
	}
	moon := sys.Bodies[1]
	if moon.Axes != orbit.PlaneXY {
		t.Errorf("expected moon in XY plane, got %v", moon.Axes)
	}
	if moon.ChildScale != 1 || moon.Scale.X != 1 {
		t.Errorf("expected unit scales by default, got scale %v child %v", moon.Scale, moon.ChildScale)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid.yaml")

	invalidYAML := `
window:
  width: not a number
  invalid syntax here
`
	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }},
		{"near plane", func(c *Config) { c.Camera.Near = 0 }},
		{"far before near", func(c *Config) { c.Camera.Far = 0.05 }},
		{"step mode", func(c *Config) { c.Simulation.Step = "warp" }},
		{"screenshot format", func(c *Config) { c.Debug.ScreenshotFormat = "gif" }},
		{"bad axes", func(c *Config) { c.Scene.Bodies[2].Axes = "x,q,z" }},
		{"bad mesh", func(c *Config) { c.Scene.Bodies[0].Mesh = "teapot" }},
		{"bad parent", func(c *Config) { c.Scene.Bodies[1].Parent = 4 }},
		{"no bodies", func(c *Config) { c.Scene.Bodies = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("window:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
				if !cfg.Debug.LogFPS {
					t.Error("expected fps logging with debug flag")
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "assets flag",
			setup: func() { *flagAssets = "/srv/orrery" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Assets.Root != "/srv/orrery" {
					t.Errorf("expected asset root /srv/orrery, got %s", cfg.Assets.Root)
				}
			},
			teardown: func() { *flagAssets = "" },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Window.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name:  "width and height flags",
			setup: func() { *flagWidth, *flagHeight = 2560, 1440 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Window.Width != 2560 || cfg.Window.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Window.Width, cfg.Window.Height)
				}
			},
			teardown: func() { *flagWidth, *flagHeight = 0, 0 },
		},
		{
			name:  "step flag",
			setup: func() { *flagStep = "time" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Simulation.Step != "time" {
					t.Errorf("expected time step mode, got %s", cfg.Simulation.Step)
				}
			},
			teardown: func() { *flagStep = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
window:
  width: 1600
  height: 1000
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width from flag, height from file
	if cfg.Window.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 1000 {
		t.Errorf("expected height 1000 from file, got %d", cfg.Window.Height)
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Window.Width = 640
	cfg.Scene.Bodies[3].OrbitSpeed = -0.5
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reloading saved config: %v", err)
	}
	if loaded.Window.Width != 640 {
		t.Errorf("expected width 640 after reload, got %d", loaded.Window.Width)
	}
	if loaded.Scene.Bodies[3].OrbitSpeed != -0.5 {
		t.Errorf("expected cube3 speed -0.5 after reload, got %v", loaded.Scene.Bodies[3].OrbitSpeed)
	}
	if loaded.Scene.Bodies[5].Axes != "x,-x,z" {
		t.Errorf("expected cube5 axes x,-x,z, got %s", loaded.Scene.Bodies[5].Axes)
	}
}
