package telemetry

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/pthm-cable/bumpers/components"
	"github.com/pthm-cable/bumpers/vec"
)

func TestCollectorWindow(t *testing.T) {
	c := NewCollector(3)

	if c.ShouldFlush(2) {
		t.Error("window should not be full at tick 2")
	}
	c.RecordFrame(2, 1)
	c.RecordFrame(0, 0)
	c.RecordFrame(1, 3)
	if !c.ShouldFlush(3) {
		t.Fatal("window should be full at tick 3")
	}

	bodies := []*components.Body{
		{ID: "vehicle1", Mass: 2, Velocity: vec.New(3, 4, 0)},
		{ID: "vehicle2", Mass: 1, Velocity: vec.New(-6, 0, 0)},
	}

	s := c.Flush(3, bodies)

	if s.WindowStartTick != 0 || s.WindowEndTick != 3 || s.Frames != 3 || s.Bodies != 2 {
		t.Errorf("window = %+v", s)
	}
	if s.Collisions != 3 || s.WallBounces != 4 || s.CollisionsPerFrame != 1 {
		t.Errorf("events = %d collisions, %d bounces, %v per frame", s.Collisions, s.WallBounces, s.CollisionsPerFrame)
	}
	// p = (6, 8) + (-6, 0)
	if s.MomentumX != 0 || s.MomentumY != 8 || s.MomentumMag != 8 {
		t.Errorf("momentum = (%v, %v) |%v|", s.MomentumX, s.MomentumY, s.MomentumMag)
	}
	// 0.5*2*25 + 0.5*1*36
	if !scalar.EqualWithinAbs(s.KineticEnergy, 43, 1e-12) {
		t.Errorf("kinetic energy = %v, want 43", s.KineticEnergy)
	}
	if s.SpeedMax != 6 || s.SpeedMean != 5.5 {
		t.Errorf("speed max/mean = %v/%v, want 6/5.5", s.SpeedMax, s.SpeedMean)
	}

	// Counters reset for the next window
	if c.ShouldFlush(5) {
		t.Error("new window should start at tick 3")
	}
	next := c.Flush(6, bodies)
	if next.WindowStartTick != 3 || next.Frames != 0 || next.Collisions != 0 || next.CollisionsPerFrame != 0 {
		t.Errorf("counters not reset: %+v", next)
	}
}

func TestCollectorNonFinite(t *testing.T) {
	c := NewCollector(1)
	bodies := []*components.Body{
		{ID: "vehicle1", Mass: 1, Velocity: vec.New(1, 0, 0)},
		{ID: "vehicle2", Mass: 0, Velocity: vec.New(math.NaN(), 0, 0)},
		{ID: "vehicle3", Mass: 1, Velocity: vec.New(math.Inf(1), 0, 0)},
	}

	s := c.Flush(1, bodies)

	if s.NonFinite != 2 {
		t.Errorf("non finite = %d, want 2", s.NonFinite)
	}
	if s.MomentumX != 1 || s.SpeedMean != 1 {
		t.Errorf("finite bodies only: momentum %v, mean speed %v", s.MomentumX, s.SpeedMean)
	}
}

func TestNewCollectorMinimumWindow(t *testing.T) {
	if got := NewCollector(0).WindowDurationTicks(); got != 1 {
		t.Errorf("window = %d, want 1", got)
	}
}
