package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseCollision)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhaseIntegrate)
		time.Sleep(200 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()

	if stats.Steps != 5 {
		t.Errorf("steps = %d, want 5", stats.Steps)
	}
	if stats.AvgTickDuration <= 0 || stats.TicksPerSecond <= 0 {
		t.Errorf("avg tick %v, tps %v; want positive", stats.AvgTickDuration, stats.TicksPerSecond)
	}
	if stats.PhaseAvg[PhaseCollision] < 100*time.Microsecond {
		t.Errorf("collision avg = %v, want >= 100µs", stats.PhaseAvg[PhaseCollision])
	}
	if stats.PhaseAvg[PhaseIntegrate] < 200*time.Microsecond {
		t.Errorf("integrate avg = %v, want >= 200µs", stats.PhaseAvg[PhaseIntegrate])
	}
	if stats.PhaseAvg[PhaseContain] != 0 {
		t.Errorf("contain avg = %v, want 0 for an unused phase", stats.PhaseAvg[PhaseContain])
	}
	if stats.MinTickDuration > stats.AvgTickDuration || stats.MaxTickDuration < stats.AvgTickDuration {
		t.Errorf("min %v / avg %v / max %v out of order", stats.MinTickDuration, stats.AvgTickDuration, stats.MaxTickDuration)
	}
}

func TestPerfCollector_RollingWindowEvicts(t *testing.T) {
	pc := NewPerfCollector(3)

	for i := 0; i < 3; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseCollision)
		time.Sleep(time.Millisecond)
		pc.EndTick()
	}
	if pc.Stats().PhaseAvg[PhaseCollision] < time.Millisecond {
		t.Fatal("expected collision time in the first window")
	}

	// A full window of steps without a collision phase pushes the slow
	// steps out.
	for i := 0; i < 3; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseContain)
		pc.EndTick()
	}

	stats := pc.Stats()
	if stats.Steps != 3 {
		t.Errorf("steps = %d, want 3", stats.Steps)
	}
	if stats.PhaseAvg[PhaseCollision] != 0 {
		t.Errorf("collision avg = %v after eviction, want 0", stats.PhaseAvg[PhaseCollision])
	}
	if stats.MaxTickDuration >= time.Millisecond {
		t.Errorf("max tick = %v, slow steps should be evicted", stats.MaxTickDuration)
	}
}

func TestPerfCollector_PhasePercentages(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseContain)
		pc.StartPhase(PhaseCollision)
		time.Sleep(2 * time.Millisecond)
		pc.EndTick()
	}

	stats := pc.Stats()

	if stats.PhasePct[PhaseCollision] <= stats.PhasePct[PhaseContain] {
		t.Errorf("collision %v%% should exceed contain %v%%", stats.PhasePct[PhaseCollision], stats.PhasePct[PhaseContain])
	}
	var total float64
	for _, pct := range stats.PhasePct {
		total += pct
	}
	if total > 100.0001 {
		t.Errorf("phase shares sum to %v%%, want <= 100", total)
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	stats := NewPerfCollector(0).Stats()

	if stats.Steps != 0 || stats.AvgTickDuration != 0 || stats.TicksPerSecond != 0 {
		t.Errorf("empty collector = %+v, want zero values", stats)
	}
}

func TestPerfCollector_FrameTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	pc.RecordFrame()
	time.Sleep(16 * time.Millisecond)
	pc.RecordFrame()

	stats := pc.Stats()

	if stats.FrameDuration < 15*time.Millisecond {
		t.Errorf("expected frame duration >= 15ms, got %v", stats.FrameDuration)
	}
	// Sleep can overshoot, so only the upper bound is loose.
	if stats.FPS <= 0 || stats.FPS > 67 {
		t.Errorf("FPS = %v, want in (0, 67]", stats.FPS)
	}
}

func TestPhaseString(t *testing.T) {
	tests := []struct {
		phase Phase
		want  string
	}{
		{PhaseCollision, "collision"},
		{PhaseIntegrate, "integrate"},
		{PhaseContain, "contain"},
		{PhaseTelemetry, "telemetry"},
		{NumPhases, "unknown"},
		{Phase(-1), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.phase.String(); got != tt.want {
			t.Errorf("Phase(%d).String() = %q, want %q", int(tt.phase), got, tt.want)
		}
	}
}

func TestPerfStats_ToCSV(t *testing.T) {
	s := PerfStats{
		AvgTickDuration: 250 * time.Microsecond,
		MinTickDuration: 100 * time.Microsecond,
		MaxTickDuration: 900 * time.Microsecond,
		TicksPerSecond:  4000,
		PhasePct:        [NumPhases]float64{70, 15, 10, 5},
	}

	row := s.ToCSV(600)

	if row.WindowEnd != 600 || row.AvgTickUS != 250 || row.MinTickUS != 100 || row.MaxTickUS != 900 {
		t.Errorf("timing columns = %+v", row)
	}
	if row.CollisionPct != 70 || row.IntegratePct != 15 || row.ContainPct != 10 || row.TelemetryPct != 5 {
		t.Errorf("phase columns = %+v", row)
	}
}
