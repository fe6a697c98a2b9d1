package body

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/san-kum/orbsim/internal/astro"
	"github.com/san-kum/orbsim/internal/orbit"
	"github.com/san-kum/orbsim/internal/position"
)

// OrbitingPlanet is a gravitator that follows fixed Keplerian elements
// around a central gravitator instead of being integrated. Its position is
// resampled from the orbit whenever its clock moves.
type OrbitingPlanet struct {
	name        string
	mass        float64
	orbit       orbit.Orbit
	central     Gravitator
	currentTime time.Time
	position    *position.Position
	velocity    mgl32.Vec3
	err         error
}

func NewOrbitingPlanet(name string, initialTime time.Time, o orbit.Orbit, central Gravitator, mass float64) (*OrbitingPlanet, error) {
	p := &OrbitingPlanet{
		name:        name,
		mass:        mass,
		orbit:       o,
		central:     central,
		currentTime: initialTime,
	}
	if err := p.resample(); err != nil {
		return nil, fmt.Errorf("place %s: %w", name, err)
	}
	return p, nil
}

func (p *OrbitingPlanet) Name() string                 { return p.name }
func (p *OrbitingPlanet) Position() *position.Position { return p.position }
func (p *OrbitingPlanet) CurrentTime() time.Time       { return p.currentTime }
func (p *OrbitingPlanet) Velocity() mgl32.Vec3         { return p.velocity }
func (p *OrbitingPlanet) Mass() float64                { return p.mass }
func (p *OrbitingPlanet) Mu() float64                  { return astro.Mu(p.mass) }
func (p *OrbitingPlanet) Orbit() orbit.Orbit           { return p.orbit }

// LocationAt samples the orbit at an arbitrary time without moving the
// planet.
func (p *OrbitingPlanet) LocationAt(t time.Time) (*position.Position, error) {
	pos, vel, err := p.orbit.StateAt(p.central, t)
	if err != nil {
		return nil, err
	}
	pos, _ = relativeTo(p.central, pos, vel)
	return pos, nil
}

func (p *OrbitingPlanet) Advance(dt time.Duration) {
	if dt <= 0 {
		return
	}
	p.currentTime = p.currentTime.Add(dt)
	if err := p.resample(); err != nil {
		p.err = fmt.Errorf("resample %s at %v: %w", p.name, p.currentTime, err)
		return
	}
	p.err = nil
}

// Err reports why the last Advance could not resample the orbit. The
// planet then holds the last state it computed.
func (p *OrbitingPlanet) Err() error { return p.err }

func (p *OrbitingPlanet) resample() error {
	pos, vel, err := p.orbit.StateAt(p.central, p.currentTime)
	if err != nil {
		return err
	}
	p.position, p.velocity = relativeTo(p.central, pos, vel)
	return nil
}
