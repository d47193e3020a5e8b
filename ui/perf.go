package ui

import (
	"fmt"
	"sort"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/bumpers/telemetry"
)

// PhaseRow is one line of the performance panel.
type PhaseRow struct {
	Name string
	Avg  time.Duration
	Pct  float64
}

// PhaseRows returns the phases that took time, sorted by share of tick
// time, largest first. Ties keep step order.
func PhaseRows(stats telemetry.PerfStats) []PhaseRow {
	rows := make([]PhaseRow, 0, len(telemetry.Phases))
	for _, phase := range telemetry.Phases {
		avg := stats.PhaseAvg[phase]
		if avg == 0 {
			continue
		}
		rows = append(rows, PhaseRow{Name: phase.String(), Avg: avg, Pct: stats.PhasePct[phase]})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Pct > rows[j].Pct
	})
	return rows
}

// PerfPanel renders step timing per phase.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y, width int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	r := p.renderer
	rows := PhaseRows(stats)
	padding := r.Theme.Padding

	height := padding*2 + r.Theme.LineHeight*2 + 4 + int32(len(rows))*(r.Theme.LineHeight+2)
	r.DrawPanel(p.x, p.y, p.width, height)

	x := p.x + padding
	y := r.DrawSectionHeader(x, p.y+padding, "Step timing")

	rl.DrawText(
		fmt.Sprintf("%s/tick  %.0f tps", stats.AvgTickDuration.Round(time.Microsecond), stats.TicksPerSecond),
		x, y, r.Theme.FontSize, r.Theme.ValueColor,
	)
	y += r.Theme.LineHeight

	for _, row := range rows {
		y = r.DrawBar(x, y, row.Name, float32(row.Pct/100), 0.5, p.width-2*padding)
	}
}
