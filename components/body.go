// Package components defines the ECS components for the simulation.
package components

import (
	"fmt"
	"image/color"

	"github.com/pthm-cable/bumpers/vec"
)

// Body is a moving circular vehicle. Identity is the ID; two bodies are the
// same body iff their IDs match, regardless of kinematic state.
type Body struct {
	ID string

	Position     vec.Vec3
	Velocity     vec.Vec3
	Acceleration vec.Vec3
	Force        vec.Vec3 // accumulated since the last Integrate

	Mass   float64
	Radius float64
	Color  color.RGBA
}

// ApplyForce accumulates f into the body's force for the current frame.
func (b *Body) ApplyForce(f vec.Vec3) {
	b.Force = b.Force.Add(f)
}

// Integrate advances the body by dt with explicit Euler and resets the
// accumulated force. Motion is planar: Z position is pinned to 0.
func (b *Body) Integrate(dt float64) {
	b.Acceleration = b.Force.Div(b.Mass)
	b.Velocity = b.Velocity.Add(b.Acceleration.Scale(dt))
	b.Position = b.Position.
		Add(b.Velocity.Scale(dt)).
		Add(b.Acceleration.Scale(dt * dt / 2))
	b.Position.Z = 0
	b.Force = vec.Zero
}

// Heading returns the end point of the heading indicator line.
func (b *Body) Heading(scale float64) vec.Vec3 {
	return b.Position.Add(b.Velocity.Scale(scale))
}

// Momentum returns mass * velocity.
func (b *Body) Momentum() vec.Vec3 {
	return b.Velocity.Scale(b.Mass)
}

// KineticEnergy returns ½·m·|v|².
func (b *Body) KineticEnergy() float64 {
	return 0.5 * b.Mass * b.Velocity.Dot(b.Velocity)
}

// Equal reports whether b and o are the same body.
func (b *Body) Equal(o *Body) bool {
	return b.ID == o.ID
}

func (b *Body) String() string {
	return fmt.Sprintf("%s at %v", b.ID, b.Position)
}
