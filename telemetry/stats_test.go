package telemetry

import (
	"log/slog"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.0},
		{"p10", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9},
		{"clamped above", []float64{1, 2, 3}, 1.5, 3},
		{"clamped below", []float64{1, 2, 3}, -0.5, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if !scalar.EqualWithinAbs(got, tt.want, 1e-12) {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeSpeedStats(t *testing.T) {
	values := []float64{1.0, 0.2, 0.9, 0.4, 0.5, 0.6, 0.7, 0.8, 0.3, 0.1}
	mean, std, p10, p50, p90, top := ComputeSpeedStats(values)

	if !scalar.EqualWithinAbs(mean, 0.55, 1e-9) {
		t.Errorf("mean = %v, want 0.55", mean)
	}
	// Sample standard deviation of 0.1..1.0
	if !scalar.EqualWithinAbs(std, 0.302765, 1e-6) {
		t.Errorf("std = %v, want ~0.302765", std)
	}
	if p10 != 0.1 || p50 != 0.5 || p90 != 0.9 {
		t.Errorf("percentiles = %v %v %v, want 0.1 0.5 0.9", p10, p50, p90)
	}
	if top != 1.0 {
		t.Errorf("max = %v, want 1.0", top)
	}

	// Input order is preserved
	if values[0] != 1.0 || values[9] != 0.1 {
		t.Errorf("input slice was reordered: %v", values)
	}
}

func TestComputeSpeedStatsSingle(t *testing.T) {
	mean, std, p10, p50, p90, top := ComputeSpeedStats([]float64{2.5})

	if mean != 2.5 || std != 0 {
		t.Errorf("mean, std = %v, %v; want 2.5, 0", mean, std)
	}
	if p10 != 2.5 || p50 != 2.5 || p90 != 2.5 || top != 2.5 {
		t.Errorf("percentiles = %v %v %v %v, want all 2.5", p10, p50, p90, top)
	}
}

func TestComputeSpeedStatsEmpty(t *testing.T) {
	mean, std, p10, p50, p90, top := ComputeSpeedStats(nil)

	if mean != 0 || std != 0 || p10 != 0 || p50 != 0 || p90 != 0 || top != 0 {
		t.Error("empty slice should return all zeros")
	}
}

func TestWindowStatsLogValue(t *testing.T) {
	s := WindowStats{WindowEndTick: 600, Frames: 600, Bodies: 30, Collisions: 12, SpeedMax: math.Sqrt2}

	v := s.LogValue()
	if v.Kind() != slog.KindGroup {
		t.Fatalf("kind = %v, want group", v.Kind())
	}

	found := map[string]bool{}
	for _, a := range v.Group() {
		found[a.Key] = true
	}
	for _, key := range []string{"window_end", "bodies", "collisions", "kinetic_energy", "non_finite"} {
		if !found[key] {
			t.Errorf("missing attribute %q", key)
		}
	}
}
