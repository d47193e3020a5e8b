// Package telemetry collects per-window simulation statistics and timing.
package telemetry

import (
	"math"

	"github.com/pthm-cable/bumpers/components"
	"github.com/pthm-cable/bumpers/vec"
)

// Collector accumulates frame events within windows and produces WindowStats.
type Collector struct {
	windowDurationTicks int32

	// Current window tracking
	windowStartTick int32
	frames          int32

	// Event counters for current window
	collisions  int
	wallBounces int
}

// NewCollector creates a new stats collector flushing every windowTicks frames.
func NewCollector(windowTicks int32) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{windowDurationTicks: windowTicks}
}

// RecordFrame records the events of one simulated frame.
func (c *Collector) RecordFrame(collisions, wallBounces int) {
	c.frames++
	c.collisions += collisions
	c.wallBounces += wallBounces
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush samples the bodies, produces a WindowStats and resets counters for
// the next window.
func (c *Collector) Flush(currentTick int32, bodies []*components.Body) WindowStats {
	var momentum vec.Vec3
	var energy float64
	speeds := make([]float64, 0, len(bodies))
	nonFinite := 0

	for _, b := range bodies {
		speed := b.Velocity.Len()
		if math.IsNaN(speed) || math.IsInf(speed, 0) {
			nonFinite++
			continue
		}
		momentum = momentum.Add(b.Momentum())
		energy += b.KineticEnergy()
		speeds = append(speeds, speed)
	}

	mean, std, p10, p50, p90, top := ComputeSpeedStats(speeds)

	var perFrame float64
	if c.frames > 0 {
		perFrame = float64(c.collisions) / float64(c.frames)
	}

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		Frames:          c.frames,
		Bodies:          len(bodies),

		Collisions:         c.collisions,
		WallBounces:        c.wallBounces,
		CollisionsPerFrame: perFrame,

		MomentumX:     momentum.X,
		MomentumY:     momentum.Y,
		MomentumMag:   momentum.Len(),
		KineticEnergy: energy,

		SpeedMean: mean,
		SpeedStd:  std,
		SpeedP10:  p10,
		SpeedP50:  p50,
		SpeedP90:  p90,
		SpeedMax:  top,

		NonFinite: nonFinite,
	}

	c.windowStartTick = currentTick
	c.frames = 0
	c.collisions = 0
	c.wallBounces = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
