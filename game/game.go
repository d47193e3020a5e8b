// Package game drives a World from a raylib window or a headless loop and
// wires telemetry output.
package game

import (
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/bumpers/config"
	"github.com/pthm-cable/bumpers/telemetry"
	"github.com/pthm-cable/bumpers/ui"
	"github.com/pthm-cable/bumpers/world"
)

// Steps-per-update limits.
const (
	MinStepsPerUpdate = 1
	MaxStepsPerUpdate = 10
)

// Options configures a Game.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64 // overrides telemetry.stats_window when > 0
	OutputDir      string
	Headless       bool
	StepsPerUpdate int
}

// Game holds the simulation and its presentation state.
type Game struct {
	cfg   *config.Config
	world *world.World
	rng   *rand.Rand

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	logStats      bool
	lastStats     telemetry.WindowStats

	// UI
	hud       *ui.HUD
	perfPanel *ui.PerfPanel
	controls  *ui.ControlsPanel

	// Presentation state
	paused         bool
	showLines      bool
	showPerf       bool
	stepsPerUpdate int
	screenWidth    float32
	screenHeight   float32
}

// NewGameWithOptions creates and populates a new game.
func NewGameWithOptions(cfg *config.Config, opts Options) (*Game, error) {
	windowTicks := cfg.Derived.StatsWindowTicks
	if opts.StatsWindowSec > 0 {
		windowTicks = int32(opts.StatsWindowSec * float64(cfg.Screen.TargetFPS))
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, err
	}

	g := &Game{
		cfg:            cfg,
		world:          world.New(cfg),
		rng:            rand.New(rand.NewSource(opts.Seed)),
		collector:      telemetry.NewCollector(windowTicks),
		perfCollector:  telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		outputManager:  om,
		logStats:       opts.LogStats,
		showLines:      cfg.Render.Lines,
		stepsPerUpdate: clampSteps(opts.StepsPerUpdate),
		screenWidth:    float32(cfg.Screen.Width),
		screenHeight:   float32(cfg.Screen.Height),
	}
	if !opts.Headless {
		g.hud = ui.NewHUD()
		g.perfPanel = ui.NewPerfPanel(10, int32(cfg.Screen.Height)-160, 260)
		g.controls = ui.NewControlsPanel(120)
	}
	g.world.SetPerfCollector(g.perfCollector)
	g.world.Populate(g.rng)

	slog.Info("population spawned",
		"count", g.world.Len(),
		"width", cfg.Screen.Width,
		"height", cfg.Screen.Height,
		"model", cfg.Collision.Model,
		"guard", cfg.Collision.Guard,
	)

	return g, nil
}

func clampSteps(n int) int {
	return max(MinStepsPerUpdate, min(MaxStepsPerUpdate, n))
}

// Update handles input and advances the simulation unless paused.
func (g *Game) Update() {
	g.handleInput()

	if g.paused {
		return
	}
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.simulationStep()
	}
}

// UpdateHeadless advances the simulation without reading input.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.simulationStep()
	}
}

// simulationStep runs one world step and its telemetry, timed as one tick.
func (g *Game) simulationStep() {
	g.perfCollector.StartTick()

	frame := g.world.Step()

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.collector.RecordFrame(frame.Collisions, frame.WallBounces)
	g.flushTelemetry()

	g.perfCollector.EndTick()
}

// World returns the simulated world.
func (g *Game) World() *world.World {
	return g.world
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 {
	return g.world.Tick()
}

// Paused reports whether stepping is suspended.
func (g *Game) Paused() bool {
	return g.paused
}

// TogglePause suspends or resumes stepping.
func (g *Game) TogglePause() {
	g.paused = !g.paused
}

// ToggleLines switches pair line drawing.
func (g *Game) ToggleLines() {
	g.showLines = !g.showLines
}

// TogglePerf switches the step timing panel.
func (g *Game) TogglePerf() {
	g.showPerf = !g.showPerf
}

// ShowLines reports whether pair lines are drawn.
func (g *Game) ShowLines() bool {
	return g.showLines
}

// SetStepsPerUpdate sets how many steps each update runs, clamped to
// [MinStepsPerUpdate, MaxStepsPerUpdate].
func (g *Game) SetStepsPerUpdate(n int) {
	g.stepsPerUpdate = clampSteps(n)
}

// StepsPerUpdate returns how many steps each update runs.
func (g *Game) StepsPerUpdate() int {
	return g.stepsPerUpdate
}

// LastStats returns the most recently flushed window.
func (g *Game) LastStats() telemetry.WindowStats {
	return g.lastStats
}

// Unload flushes and closes telemetry output.
func (g *Game) Unload() {
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
