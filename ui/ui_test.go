package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/pthm-cable/bumpers/telemetry"
)

func TestHUDDataRows(t *testing.T) {
	d := HUDData{Tick: 120, FPS: 60, Speed: 2, Bodies: 30, Collisions: 3, WallBounces: 1, MomentumMag: 12.5}

	rows := d.Rows()
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	if !strings.Contains(rows[0].Text, "Tick: 120") || !strings.Contains(rows[0].Text, "Speed: 2x") {
		t.Errorf("row 0 = %q", rows[0].Text)
	}
	if !strings.Contains(rows[1].Text, "Collisions: 3") {
		t.Errorf("row 1 = %q", rows[1].Text)
	}
	if !strings.Contains(rows[2].Text, "|p|: 12.50") {
		t.Errorf("row 2 = %q", rows[2].Text)
	}
	for i, r := range rows {
		if r.Warn {
			t.Errorf("row %d flagged as warning without non-finite bodies", i)
		}
	}
}

func TestHUDDataNonFiniteWarning(t *testing.T) {
	rows := HUDData{NonFinite: 2}.Rows()

	if len(rows) != 4 {
		t.Fatalf("got %d rows, want 4", len(rows))
	}
	last := rows[3]
	if !last.Warn || last.Text != "Non-finite bodies: 2" {
		t.Errorf("warning row = %+v", last)
	}
	if DefaultTheme().WarnColor == DefaultTheme().ValueColor {
		t.Error("warning rows must stand out from values")
	}
}

func TestPhaseRows(t *testing.T) {
	var stats telemetry.PerfStats
	stats.PhaseAvg[telemetry.PhaseCollision] = 300 * time.Microsecond
	stats.PhaseAvg[telemetry.PhaseIntegrate] = 20 * time.Microsecond
	stats.PhaseAvg[telemetry.PhaseContain] = 40 * time.Microsecond
	stats.PhasePct[telemetry.PhaseCollision] = 83
	stats.PhasePct[telemetry.PhaseIntegrate] = 6
	stats.PhasePct[telemetry.PhaseContain] = 11

	rows := PhaseRows(stats)

	// Telemetry took no time and is left out.
	want := []string{"collision", "contain", "integrate"}
	if len(rows) != len(want) {
		t.Fatalf("got %d rows, want %d", len(rows), len(want))
	}
	for i, name := range want {
		if rows[i].Name != name {
			t.Errorf("row %d = %q, want %q", i, rows[i].Name, name)
		}
	}
	if rows[0].Avg != 300*time.Microsecond {
		t.Errorf("collision avg = %v", rows[0].Avg)
	}
}

func TestToggleText(t *testing.T) {
	if toggleText(true, "on", "off") != "on" || toggleText(false, "on", "off") != "off" {
		t.Error("toggleText picked the wrong label")
	}
}
