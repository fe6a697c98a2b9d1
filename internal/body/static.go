package body

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/san-kum/orbsim/internal/astro"
	"github.com/san-kum/orbsim/internal/position"
)

// StaticPlanet is a gravitator pinned in place. Advancing it only moves its
// clock.
type StaticPlanet struct {
	name        string
	position    *position.Position
	mass        float64
	currentTime time.Time
}

func NewStaticPlanet(name string, initialTime time.Time, pos *position.Position, mass float64) *StaticPlanet {
	return &StaticPlanet{
		name:        name,
		position:    pos,
		mass:        mass,
		currentTime: initialTime,
	}
}

// NewOriginEarth places an Earth-mass planet at the frame origin.
func NewOriginEarth(initialTime time.Time) *StaticPlanet {
	return NewStaticPlanet("earth", initialTime, position.New(mgl32.Vec3{}), astro.EarthMass)
}

// NewOriginSun places a solar-mass star at the frame origin.
func NewOriginSun(initialTime time.Time) *StaticPlanet {
	return NewStaticPlanet("sun", initialTime, position.New(mgl32.Vec3{}), astro.SunMass)
}

func (p *StaticPlanet) Name() string                 { return p.name }
func (p *StaticPlanet) Position() *position.Position { return p.position }
func (p *StaticPlanet) CurrentTime() time.Time       { return p.currentTime }
func (p *StaticPlanet) Mass() float64                { return p.mass }
func (p *StaticPlanet) Mu() float64                  { return astro.Mu(p.mass) }

func (p *StaticPlanet) Advance(dt time.Duration) {
	if dt <= 0 {
		return
	}
	p.currentTime = p.currentTime.Add(dt)
}
