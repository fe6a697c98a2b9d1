package metrics

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/san-kum/orbsim/internal/body"
	"github.com/san-kum/orbsim/internal/orbit"
)

// Metric samples a quantity after each frame.
type Metric interface {
	Name() string
	Observe(t time.Time)
	Value() float64
	Reset()
}

// pair is a gravitatee measured against the body it orbits.
type pair struct {
	subject body.Gravitatee
	central body.Gravitator
}

func (p pair) radius() float64 {
	return p.subject.Position().Distance(p.central.Position())
}

// relativeSpeed subtracts the central body's velocity when it has one.
func (p pair) relativeSpeed() float64 {
	v := p.subject.Velocity()
	if moving, ok := p.central.(interface{ Velocity() mgl32.Vec3 }); ok {
		v = v.Sub(moving.Velocity())
	}
	return float64(v.Len())
}

func (p pair) specificEnergy() float64 {
	return orbit.SpecificEnergy(p.radius(), p.relativeSpeed(), p.central.Mu())
}
