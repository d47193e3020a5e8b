package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/bumpers/components"
	"github.com/pthm-cable/bumpers/ui"
)

// Draw renders one frame.
func (g *Game) Draw() {
	g.perfCollector.RecordFrame()

	rl.BeginDrawing()
	rl.ClearBackground(g.cfg.Derived.Background)

	if g.showLines {
		g.drawPairLines()
	}
	g.drawBodies()
	g.drawUI()

	rl.EndDrawing()
}

// drawPairLines joins every pair of bodies, coloured by the first body.
func (g *Game) drawPairLines() {
	g.world.Pairs(func(a, b *components.Body) {
		rl.DrawLineV(toScreen(a.Position.X, a.Position.Y), toScreen(b.Position.X, b.Position.Y), a.Color)
	})
}

// drawBodies renders each body as a filled circle with a heading line.
func (g *Game) drawBodies() {
	scale := g.cfg.Render.HeadingScale
	g.world.Each(func(b *components.Body) {
		centre := toScreen(b.Position.X, b.Position.Y)
		rl.DrawCircleV(centre, float32(b.Radius), b.Color)

		tip := b.Heading(scale)
		rl.DrawLineV(centre, toScreen(tip.X, tip.Y), rl.Black)
	})
}

// drawUI renders the HUD, the optional perf panel and the controls.
func (g *Game) drawUI() {
	frame := g.world.LastFrame()
	stats := g.lastStats

	g.hud.Draw(ui.HUDData{
		Tick:          g.world.Tick(),
		FPS:           rl.GetFPS(),
		Speed:         g.stepsPerUpdate,
		Paused:        g.paused,
		Bodies:        g.world.Len(),
		Collisions:    frame.Collisions,
		WallBounces:   frame.WallBounces,
		MomentumMag:   stats.MomentumMag,
		KineticEnergy: stats.KineticEnergy,
		SpeedMean:     stats.SpeedMean,
		NonFinite:     stats.NonFinite,
	})
	g.hud.DrawControls(int32(g.screenHeight))

	if g.showPerf {
		g.perfPanel.SetPosition(10, int32(g.screenHeight)-160)
		g.perfPanel.Draw(g.perfCollector.Stats())
	}

	act := g.controls.Draw(g.screenWidth, ui.ControlsState{
		Lines:    g.showLines,
		Paused:   g.paused,
		Steps:    g.stepsPerUpdate,
		MinSteps: MinStepsPerUpdate,
		MaxSteps: MaxStepsPerUpdate,
	})
	if act.ToggleLines {
		g.ToggleLines()
	}
	if act.TogglePause {
		g.TogglePause()
	}
	if act.Steps != 0 {
		g.SetStepsPerUpdate(act.Steps)
	}
}

func toScreen(x, y float64) rl.Vector2 {
	return rl.Vector2{X: float32(x), Y: float32(y)}
}
