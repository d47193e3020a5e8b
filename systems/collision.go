package systems

import (
	"github.com/pthm-cable/bumpers/components"
	"github.com/pthm-cable/bumpers/config"
	"github.com/pthm-cable/bumpers/vec"
)

// Resolver computes post-collision velocities for a colliding pair. It must
// not modify its arguments.
type Resolver func(a, b *components.Body) (vec.Vec3, vec.Vec3)

// ResolveElastic applies the 1D elastic collision equations to the full
// velocity vectors:
//
//	v1' = v1*(m1-m2)/(m1+m2) + v2*(2*m2)/(m1+m2)
//	v2' = v1*(2*m1)/(m1+m2) + v2*(m2-m1)/(m1+m2)
//
// The contact normal is ignored, so glancing hits exchange tangential motion
// too. A zero mass sum is not guarded and yields NaN/Inf velocities.
func ResolveElastic(a, b *components.Body) (vec.Vec3, vec.Vec3) {
	m1, m2 := a.Mass, b.Mass
	v1, v2 := a.Velocity, b.Velocity
	sum := m1 + m2

	v1n := v1.Scale((m1 - m2) / sum).Add(v2.Scale(2 * m2 / sum))
	v2n := v1.Scale(2 * m1 / sum).Add(v2.Scale((m2 - m1) / sum))
	return v1n, v2n
}

// ResolveAlongNormal applies the 1D elastic equations only to the velocity
// components along the line of centres and keeps the tangential components.
// Coincident centres give a zero normal and leave both velocities unchanged.
func ResolveAlongNormal(a, b *components.Body) (vec.Vec3, vec.Vec3) {
	n := b.Position.Sub(a.Position).Normalize()
	m1, m2 := a.Mass, b.Mass
	sum := m1 + m2

	u1 := a.Velocity.Dot(n)
	u2 := b.Velocity.Dot(n)
	w1 := (u1*(m1-m2) + 2*m2*u2) / sum
	w2 := (2*m1*u1 + u2*(m2-m1)) / sum

	v1n := a.Velocity.Add(n.Scale(w1 - u1))
	v2n := b.Velocity.Add(n.Scale(w2 - u2))
	return v1n, v2n
}

// ResolverFor returns the resolver for a collision model name.
func ResolverFor(model string) Resolver {
	if model == config.ModelNormal {
		return ResolveAlongNormal
	}
	return ResolveElastic
}

// Touching reports whether two bodies overlap or touch.
func Touching(a, b *components.Body) bool {
	return a.Position.Distance(b.Position) <= a.Radius+b.Radius
}

// CollisionSystem detects and resolves body collisions once per frame.
type CollisionSystem struct {
	resolve Resolver
	guard   string

	// IDs that already had a response applied this frame
	collided map[string]struct{}
}

// NewCollisionSystem creates a collision system for the given model and guard.
func NewCollisionSystem(model, guard string) *CollisionSystem {
	return &CollisionSystem{
		resolve:  ResolverFor(model),
		guard:    guard,
		collided: make(map[string]struct{}),
	}
}

// Update scans bodies in population order and resolves every touching pair
// whose outer body has not collided yet this frame. Inner bodies are only
// checked as well with the pair guard. Returns the number of resolutions.
func (s *CollisionSystem) Update(bodies []*components.Body) int {
	clear(s.collided)
	resolved := 0

	for i, a := range bodies {
		for j, b := range bodies {
			if i == j {
				continue
			}
			if s.Collided(a.ID) {
				break
			}
			if s.guard == config.GuardPair && s.Collided(b.ID) {
				continue
			}
			if !Touching(a, b) {
				continue
			}

			a.Velocity, b.Velocity = s.resolve(a, b)
			s.collided[a.ID] = struct{}{}
			s.collided[b.ID] = struct{}{}
			resolved++
		}
	}

	return resolved
}

// Collided reports whether the body with the given ID had a collision
// response applied during the last Update.
func (s *CollisionSystem) Collided(id string) bool {
	_, ok := s.collided[id]
	return ok
}
