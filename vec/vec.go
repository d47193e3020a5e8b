// Package vec provides the 3-component vector used for body kinematics.
package vec

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Vec3 is a 3D vector value. All methods return new values and never
// modify the receiver.
type Vec3 r3.Vec

// Zero is the zero vector.
var Zero = Vec3{}

// New returns the vector (x, y, z).
func New(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

func (v Vec3) r3() r3.Vec { return r3.Vec(v) }

// Add returns v + w.
func (v Vec3) Add(w Vec3) Vec3 {
	return Vec3(r3.Add(v.r3(), w.r3()))
}

// Sub returns v - w.
func (v Vec3) Sub(w Vec3) Vec3 {
	return Vec3(r3.Sub(v.r3(), w.r3()))
}

// Scale returns v multiplied by the scalar s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3(r3.Scale(s, v.r3()))
}

// Div returns v divided by the scalar s.
//
// Division by zero follows IEEE-754 per component: a non-zero component
// becomes ±Inf and a zero component becomes NaN. Div never panics.
func (v Vec3) Div(s float64) Vec3 {
	return Vec3{X: v.X / s, Y: v.Y / s, Z: v.Z / s}
}

// MulElem returns the component-wise product of v and w.
func (v Vec3) MulElem(w Vec3) Vec3 {
	return Vec3{X: v.X * w.X, Y: v.Y * w.Y, Z: v.Z * w.Z}
}

// DivElem returns the component-wise quotient of v and w, with the same
// zero-divisor policy as Div.
func (v Vec3) DivElem(w Vec3) Vec3 {
	return Vec3{X: v.X / w.X, Y: v.Y / w.Y, Z: v.Z / w.Z}
}

// Mod returns the component-wise floating-point remainder of v / w.
// The result has the sign of v, as with math.Mod.
func (v Vec3) Mod(w Vec3) Vec3 {
	return Vec3{X: math.Mod(v.X, w.X), Y: math.Mod(v.Y, w.Y), Z: math.Mod(v.Z, w.Z)}
}

// Pow returns each component of v raised to the matching component of w.
func (v Vec3) Pow(w Vec3) Vec3 {
	return Vec3{X: math.Pow(v.X, w.X), Y: math.Pow(v.Y, w.Y), Z: math.Pow(v.Z, w.Z)}
}

// Neg returns -v.
func (v Vec3) Neg() Vec3 {
	return Vec3{X: -v.X, Y: -v.Y, Z: -v.Z}
}

// Dot returns the dot product v·w.
func (v Vec3) Dot(w Vec3) float64 {
	return r3.Dot(v.r3(), w.r3())
}

// Cross returns the cross product v×w.
func (v Vec3) Cross(w Vec3) Vec3 {
	return Vec3(r3.Cross(v.r3(), w.r3()))
}

// Len returns the Euclidean length of v.
func (v Vec3) Len() float64 {
	return r3.Norm(v.r3())
}

// Normalize returns the unit vector in the direction of v, or the zero
// vector when v has zero length.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l == 0 {
		return Zero
	}
	return v.Scale(1 / l)
}

// Distance returns the Euclidean distance between v and w.
func (v Vec3) Distance(w Vec3) float64 {
	return v.Sub(w).Len()
}

// Equal reports whether v and w have identical components.
func (v Vec3) Equal(w Vec3) bool {
	return v == w
}

// EqualWithin reports whether every component of v is within tol of w.
func (v Vec3) EqualWithin(w Vec3, tol float64) bool {
	return math.Abs(v.X-w.X) <= tol && math.Abs(v.Y-w.Y) <= tol && math.Abs(v.Z-w.Z) <= tol
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}
