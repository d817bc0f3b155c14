package game

import (
	"log/slog"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/ripple/config"
	"github.com/pthm-cable/ripple/renderer"
	"github.com/pthm-cable/ripple/systems"
	"github.com/pthm-cable/ripple/telemetry"
)

// Options configures a game instance.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64
	OutputDir      string
	Headless       bool
	StepsPerUpdate int  // Field steps per UpdateHeadless call
	Autopilot      bool // Drive the pointer with noise instead of the mouse
}

// Game holds the ripple field, its renderers and telemetry.
type Game struct {
	field *systems.RippleField

	// Rendering (nil in headless mode)
	background    *renderer.Background
	rippleTexture *renderer.RippleTexture
	post          *renderer.PostProcess

	// Pointer input
	pointer   pointerTracker
	autopilot *Autopilot
	autoOn    bool

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	logStats      bool
	statsCallback func(telemetry.WindowStats)

	intensityBuf []float64
	forceBuf     []float64

	// State
	tick           int32
	paused         bool
	headless       bool
	stepsPerUpdate int
	showHUD        bool
	showTexture    bool

	screenWidth  float32
	screenHeight float32
}

// NewGameWithOptions creates a game from the global config.
// Rendering resources are created only when opts.Headless is false, and
// require an open raylib window.
func NewGameWithOptions(opts Options) *Game {
	cfg := config.Cfg()

	stepsPerUpdate := opts.StepsPerUpdate
	if stepsPerUpdate < 1 {
		stepsPerUpdate = 1
	}
	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}

	params := systems.RippleParamsFromConfig(cfg.Ripple)

	g := &Game{
		field:          systems.NewRippleField(params),
		collector:      telemetry.NewCollector(statsWindow, cfg.Derived.DT),
		perfCollector:  telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		logStats:       opts.LogStats,
		headless:       opts.Headless,
		stepsPerUpdate: stepsPerUpdate,
		autoOn:         opts.Autopilot || opts.Headless,
		screenWidth:    cfg.Derived.ScreenW32,
		screenHeight:   cfg.Derived.ScreenH32,
	}

	autoSeed := cfg.Autopilot.Seed
	if autoSeed == 0 {
		autoSeed = opts.Seed
	}
	g.autopilot = NewAutopilot(autoSeed, cfg.Autopilot.Speed, cfg.Autopilot.Amplitude)

	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			slog.Error("failed to create output manager", "error", err)
		} else {
			g.outputManager = om
			if err := om.WriteConfig(cfg); err != nil {
				slog.Error("failed to write config", "error", err)
			}
		}
	}

	if !opts.Headless {
		w, h := int32(cfg.Screen.Width), int32(cfg.Screen.Height)
		g.background = renderer.NewBackground(w, h, cfg.Scene, float32(opts.Seed%1000)/1000)
		g.rippleTexture = renderer.NewRippleTexture(params.Size)
		g.post = renderer.NewPostProcess(w, h, cfg.Scene.ShaderDir,
			float32(cfg.Scene.Displacement), float32(cfg.Scene.Highlight))

		g.background.Init()
		g.rippleTexture.Init()
		g.post.Init()
		g.showHUD = true
	}

	slog.Info("ripple field ready",
		"size", params.Size,
		"max_age", params.MaxAge,
		"radius", params.Radius(),
		"headless", opts.Headless,
	)

	return g
}

// Update handles input and advances the field by one frame.
// Draw must follow to finish the frame.
func (g *Game) Update() {
	g.perfCollector.StartTick()
	g.perfCollector.StartPhase(telemetry.PhaseIngest)
	g.handleInput()

	if !g.paused {
		if g.autoOn {
			g.ingestAutopilot()
		} else {
			g.ingestMouse()
		}

		g.perfCollector.StartPhase(telemetry.PhaseRipple)
		g.stepField()
	}

	g.perfCollector.StartPhase(telemetry.PhaseUpload)
	g.rippleTexture.Sync(g.field)
}

// UpdateHeadless runs stepsPerUpdate frames without graphics.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.perfCollector.StartTick()

		g.perfCollector.StartPhase(telemetry.PhaseIngest)
		g.ingestAutopilot()

		g.perfCollector.StartPhase(telemetry.PhaseRipple)
		g.stepField()
		// Nothing reads the texture without a GPU
		g.field.MarkUploaded()

		g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
		g.flushTelemetry()

		g.perfCollector.EndTick()
	}
}

// stepField advances the field one frame and counts it.
func (g *Game) stepField() {
	g.field.Step()
	g.collector.RecordExpired(g.field.LastExpired())
	g.tick++
}

// Draw renders the background through the ripple post pass and ends the frame.
func (g *Game) Draw() {
	g.perfCollector.StartPhase(telemetry.PhaseRender)

	g.post.BeginScene()
	rl.ClearBackground(g.background.BaseColor())
	g.background.Draw(float32(rl.GetTime()))
	g.post.EndScene()

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)
	g.post.Draw(g.rippleTexture.Texture())
	if g.showTexture {
		g.drawTexturePreview()
	}
	if g.showHUD {
		g.drawHUD()
	}
	rl.EndDrawing()
	g.perfCollector.RecordFrame()

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.flushTelemetry()

	g.perfCollector.EndTick()
}

// Unload releases GPU resources and closes output files.
func (g *Game) Unload() {
	if g.post != nil {
		g.post.Unload()
	}
	if g.rippleTexture != nil {
		g.rippleTexture.Unload()
	}
	if g.background != nil {
		g.background.Unload()
	}
	if g.outputManager != nil {
		if err := g.outputManager.Close(); err != nil {
			slog.Error("failed to close output", "error", err)
		}
	}
}

// Tick returns the number of field steps so far.
func (g *Game) Tick() int32 {
	return g.tick
}

// Field returns the ripple field.
func (g *Game) Field() *systems.RippleField {
	return g.field
}

// SetStatsCallback registers a function called with every flushed window.
func (g *Game) SetStatsCallback(fn func(telemetry.WindowStats)) {
	g.statsCallback = fn
}

// Elapsed returns simulated time at the configured frame rate.
func (g *Game) Elapsed() time.Duration {
	return time.Duration(float64(g.tick) * config.Cfg().Derived.DT * float64(time.Second))
}
