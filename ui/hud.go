package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlsLegend lists the keyboard shortcuts.
const ControlsLegend = "[Space] pause  [L] lines  [P] perf  [<] [>] speed  [Esc] quit"

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Tick          int32
	FPS           int32
	Speed         int
	Paused        bool
	Bodies        int
	Collisions    int // last frame
	WallBounces   int // last frame
	MomentumMag   float64
	KineticEnergy float64
	SpeedMean     float64
	NonFinite     int
}

// Row is one HUD text line.
type Row struct {
	Text string
	Warn bool
}

// Rows formats the HUD top to bottom. A warning row is added while any
// body has a non-finite velocity.
func (d HUDData) Rows() []Row {
	rows := []Row{
		{Text: fmt.Sprintf("Tick: %d | Speed: %dx | FPS: %d", d.Tick, d.Speed, d.FPS)},
		{Text: fmt.Sprintf("Bodies: %d | Collisions: %d | Bounces: %d", d.Bodies, d.Collisions, d.WallBounces)},
		{Text: fmt.Sprintf("|p|: %.2f | KE: %.2f | mean speed: %.3f", d.MomentumMag, d.KineticEnergy, d.SpeedMean)},
	}
	if d.NonFinite > 0 {
		rows = append(rows, Row{Text: fmt.Sprintf("Non-finite bodies: %d", d.NonFinite), Warn: true})
	}
	return rows
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD in the top left corner.
func (h *HUD) Draw(data HUDData) {
	theme := h.renderer.Theme
	y := int32(10)

	for _, row := range data.Rows() {
		c := theme.ValueColor
		if row.Warn {
			c = theme.WarnColor
		}
		rl.DrawText(row.Text, 10, y, 16, c)
		y += theme.LineHeight + 4
	}

	if data.Paused {
		rl.DrawText("PAUSED", 10, y, 16, theme.SectionHeader)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32) {
	rl.DrawText(ControlsLegend, 10, screenHeight-25, 14, h.renderer.Theme.LabelColor)
}
