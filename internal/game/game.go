// Package game wires the window, GL renderer, assets and simulation
// together and runs the main loop.
package game

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/orrery/internal/assets"
	"github.com/Faultbox/orrery/internal/config"
	"github.com/Faultbox/orrery/internal/engine/camera"
	"github.com/Faultbox/orrery/internal/engine/debug"
	"github.com/Faultbox/orrery/internal/engine/input"
	"github.com/Faultbox/orrery/internal/engine/mesh"
	"github.com/Faultbox/orrery/internal/engine/renderer"
	"github.com/Faultbox/orrery/internal/engine/scene"
	"github.com/Faultbox/orrery/internal/engine/window"
	"github.com/Faultbox/orrery/internal/game/control"
	"github.com/Faultbox/orrery/internal/game/loop"
	"github.com/Faultbox/orrery/internal/game/orbit"
	"github.com/Faultbox/orrery/internal/logger"
	"github.com/Faultbox/orrery/pkg/math"
)

// Game is the main demo instance.
type Game struct {
	config   *config.Config
	window   *window.Window
	renderer *renderer.Renderer
	assets   *assets.Manager
	loop     *loop.Loop
}

// New creates the window and loads every asset the scene needs.
func New(cfg *config.Config) (*Game, error) {
	logger.Info("initializing orrery",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
		zap.String("step", cfg.Simulation.Step),
	)

	sys, err := cfg.Scene.System()
	if err != nil {
		return nil, fmt.Errorf("building scene: %w", err)
	}
	mode, err := orbit.ParseStepMode(cfg.Simulation.Step)
	if err != nil {
		return nil, err
	}
	shotFormat, err := debug.ParseFormat(cfg.Debug.ScreenshotFormat)
	if err != nil {
		return nil, err
	}

	g := &Game{config: cfg, assets: assets.NewManager()}
	if err := g.assets.AddDir(cfg.Assets.Root); err != nil {
		return nil, fmt.Errorf("asset root: %w", err)
	}

	// Create window (this also creates OpenGL context)
	g.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	width, height := g.window.DrawableSize()
	g.renderer, err = renderer.New(renderer.Config{Width: width, Height: height})
	if err != nil {
		g.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	sc, err := g.loadScene()
	if err != nil {
		g.Close()
		return nil, err
	}

	cc := cfg.Camera
	cam := camera.NewFlyCamera(vec3(cc.Position), cc.Yaw, cc.Pitch)
	cam.MovementSpeed = cc.Speed
	cam.MouseSensitivity = cc.Sensitivity
	cam.Zoom = cc.Zoom

	offsets := &scene.ViewOffsets{}
	shots := debug.NewScreenshotCapture(cfg.Debug.ScreenshotDir, "orrery", shotFormat)

	g.loop = loop.New(loop.Deps{
		Platform:   g.window,
		Keys:       input.New(),
		Controller: control.New(sys, cam, offsets, sc.Diffuse()),
		System:     sys,
		Evaluator:  orbit.NewEvaluator(mode, cfg.Simulation.ReferenceFPS),
		Camera:     cam,
		Offsets:    offsets,
		Scene:      sc,
		Projection: loop.Projection{Near: cc.Near, Far: cc.Far},
		Now:        window.Ticks,
		Resize:     g.renderer.Resize,
		Screenshot: func() (string, error) {
			pixels, w, h := g.renderer.ReadPixels()
			return shots.CaptureFromPixels(pixels, w, h)
		},
		Width:  width,
		Height: height,
		LogFPS: cfg.Debug.LogFPS,
	})

	logger.Info("orrery initialized successfully")
	return g, nil
}

// loadScene compiles programs and uploads meshes and textures.
// Only the planet model is required; texture failures leave empty handles.
func (g *Game) loadScene() (*scene.Renderer, error) {
	ac := g.config.Assets

	programs, err := g.renderer.LoadPrograms()
	if err != nil {
		return nil, fmt.Errorf("compiling shaders: %w", err)
	}

	planet, err := mesh.LoadOBJ(ac.PlanetModel, g.assets.Load, mesh.Options{FlipV: true, GenSmoothNormals: true})
	if err != nil {
		return nil, fmt.Errorf("loading planet model: %w", err)
	}

	res := scene.Resources{
		Planet:  g.renderer.UploadMesh(planet),
		Cube:    g.renderer.UploadMesh(mesh.Cube()),
		Skybox:  g.renderer.UploadPositions(mesh.Skybox()),
		Cubemap: g.renderer.LoadCubemap(g.assets, ac.SkyboxFaces),
	}
	if maps := planet.DiffuseMaps(); len(maps) > 0 {
		res.PlanetTexture = g.renderer.LoadTexture2D(g.assets, maps[0])
	} else {
		logger.Warn("planet model has no diffuse map", zap.String("path", ac.PlanetModel))
	}

	diffuse := scene.NewDiffuseSlots(
		g.renderer.LoadTexture2D(g.assets, ac.DiffuseTexture),
		func() uint32 { return g.renderer.LoadTexture2D(g.assets, ac.AlternateTexture) },
	)

	hits, misses := g.assets.Stats()
	logger.Debug("assets loaded", zap.Int("cache_hits", hits), zap.Int("cache_misses", misses))

	return scene.New(g.renderer, programs, res, lighting(g.config.Lighting), diffuse), nil
}

// Run runs the main loop until the window closes or Escape is pressed.
func (g *Game) Run() error {
	g.loop.Run()
	return nil
}

// Close cleans up game resources.
func (g *Game) Close() {
	logger.Info("closing orrery")

	if g.renderer != nil {
		g.renderer.Close()
	}
	if g.window != nil {
		g.window.Close()
	}
	if g.assets != nil {
		g.assets.Close()
	}
}

func lighting(lc config.LightingConfig) scene.Lighting {
	l := scene.DefaultLighting()
	l.ClearColor = lc.ClearColor
	l.ObjectColor = vec3(lc.ObjectColor)
	l.LightColor = vec3(lc.LightColor)
	l.Ambient = vec3(lc.Ambient)
	l.Diffuse = vec3(lc.Diffuse)
	l.Specular = vec3(lc.Specular)
	l.MaterialSpecular = vec3(lc.MaterialSpecular)
	l.Shininess = lc.Shininess
	return l
}

func vec3(a [3]float32) math.Vec3 {
	return math.Vec3{X: a[0], Y: a[1], Z: a[2]}
}
