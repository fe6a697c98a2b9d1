// Package position holds the double-precision point type every body uses
// as its location in the inertial frame.
//
// Coordinates are metres from the solar-system barycentre. Axes follow the
// ICRS: the xy plane is (approximately) the Earth's equator, +x points at
// the vernal equinox and +z at the north pole, forming a right-handed basis.
package position

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Position is a point in the inertial frame. Components are float64 because
// planetary distances (~1e11 m) would swallow metre-scale integration steps
// in single precision.
type Position struct {
	x, y, z float64
}

// New builds a Position from a single-precision vector.
func New(v mgl32.Vec3) *Position {
	return &Position{x: float64(v[0]), y: float64(v[1]), z: float64(v[2])}
}

// FromXYZ builds a Position without going through single precision.
func FromXYZ(x, y, z float64) *Position {
	return &Position{x: x, y: y, z: z}
}

func (p *Position) X() float64 { return p.x }
func (p *Position) Y() float64 { return p.y }
func (p *Position) Z() float64 { return p.z }

// Vec3 narrows each component to float32 for vector maths with velocities
// and accelerations.
func (p *Position) Vec3() mgl32.Vec3 {
	return mgl32.Vec3{float32(p.x), float32(p.y), float32(p.z)}
}

// OffsetFrom returns the displacement from origin to p.
func (p *Position) OffsetFrom(origin *Position) mgl32.Vec3 {
	return p.Vec3().Sub(origin.Vec3())
}

// ChangeBy moves the point by d. It is the only mutator.
func (p *Position) ChangeBy(d mgl32.Vec3) {
	p.x += float64(d[0])
	p.y += float64(d[1])
	p.z += float64(d[2])
}

// Distance is the full-precision separation between two points.
func (p *Position) Distance(other *Position) float64 {
	dx := other.x - p.x
	dy := other.y - p.y
	dz := other.z - p.z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Norm is the distance from the frame origin.
func (p *Position) Norm() float64 {
	return math.Sqrt(p.x*p.x + p.y*p.y + p.z*p.z)
}

func (p *Position) Clone() *Position {
	c := *p
	return &c
}

func (p *Position) String() string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", p.x, p.y, p.z)
}
