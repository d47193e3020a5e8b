// Package systems contains the per-frame simulation passes.
package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/bumpers/components"
)

// Bounds represents the arena size. The arena spans [0, Width] x [0, Height].
type Bounds struct {
	Width, Height float64
}

// PhysicsSystem integrates every body forward by a fixed step.
type PhysicsSystem struct {
	filter *ecs.Filter1[components.Body]
	dt     float64
}

// NewPhysicsSystem creates a new physics system.
func NewPhysicsSystem(w *ecs.World, dt float64) *PhysicsSystem {
	return &PhysicsSystem{
		filter: ecs.NewFilter1[components.Body](w),
		dt:     dt,
	}
}

// Update integrates all bodies.
func (s *PhysicsSystem) Update() {
	query := s.filter.Query()
	for query.Next() {
		body := query.Get()
		body.Integrate(s.dt)
	}
}

// BoundsSystem keeps bodies inside the arena.
type BoundsSystem struct {
	filter *ecs.Filter1[components.Body]
	bounds Bounds
}

// NewBoundsSystem creates a containment system for the given bounds.
func NewBoundsSystem(w *ecs.World, bounds Bounds) *BoundsSystem {
	return &BoundsSystem{
		filter: ecs.NewFilter1[components.Body](w),
		bounds: bounds,
	}
}

// SetBounds adopts new arena bounds for subsequent updates.
func (s *BoundsSystem) SetBounds(b Bounds) {
	s.bounds = b
}

// Bounds returns the current arena bounds.
func (s *BoundsSystem) Bounds() Bounds {
	return s.bounds
}

// Update clamps every body and returns the number of velocity reflections.
func (s *BoundsSystem) Update() int {
	reflections := 0
	query := s.filter.Query()
	for query.Next() {
		reflections += Contain(query.Get(), s.bounds)
	}
	return reflections
}

// Contain clamps b to [r, W-r] x [r, H-r], negating the velocity component
// of every clamped axis. Axes are handled independently; the upper edge is
// checked before the lower one. Returns the number of reflections.
func Contain(b *components.Body, bounds Bounds) int {
	n := 0
	r := b.Radius

	if b.Position.X > bounds.Width-r {
		b.Position.X = bounds.Width - r
		b.Velocity.X = -b.Velocity.X
		n++
	}
	if b.Position.X < r {
		b.Position.X = r
		b.Velocity.X = -b.Velocity.X
		n++
	}
	if b.Position.Y > bounds.Height-r {
		b.Position.Y = bounds.Height - r
		b.Velocity.Y = -b.Velocity.Y
		n++
	}
	if b.Position.Y < r {
		b.Position.Y = r
		b.Velocity.Y = -b.Velocity.Y
		n++
	}

	return n
}
