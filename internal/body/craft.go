package body

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/san-kum/orbsim/internal/astro"
	"github.com/san-kum/orbsim/internal/orbit"
	"github.com/san-kum/orbsim/internal/position"
)

// DefaultCraftStep is the largest integration substep a craft takes unless
// configured otherwise.
const DefaultCraftStep = 24 * time.Hour

// Craft is a massless gravitatee integrated with fixed-substep explicit
// Euler under the pull of its gravitators.
type Craft struct {
	name        string
	minimumStep time.Duration
	currentTime time.Time
	position    *position.Position
	velocity    mgl32.Vec3
	gravitators GravitatorView
}

type CraftOption func(*Craft)

// WithMinimumStep caps each integration substep at d. Non-positive values
// are ignored.
func WithMinimumStep(d time.Duration) CraftOption {
	return func(c *Craft) {
		if d > 0 {
			c.minimumStep = d
		}
	}
}

func NewCraft(name string, initialTime time.Time, pos *position.Position, vel mgl32.Vec3, opts ...CraftOption) *Craft {
	c := &Craft{
		name:        name,
		minimumStep: DefaultCraftStep,
		currentTime: initialTime,
		position:    pos,
		velocity:    vel,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewCraftFromOrbit seeds a craft by sampling o around central at
// initialTime. The sampled state is taken relative to the central body.
func NewCraftFromOrbit(name string, initialTime time.Time, o orbit.Orbit, central Gravitator, opts ...CraftOption) (*Craft, error) {
	pos, vel, err := o.StateAt(central, initialTime)
	if err != nil {
		return nil, fmt.Errorf("seed %s from orbit: %w", name, err)
	}
	pos, vel = relativeTo(central, pos, vel)
	return NewCraft(name, initialTime, pos, vel, opts...), nil
}

// relativeTo shifts a state sampled in the central body's frame into the
// inertial frame.
func relativeTo(central Body, pos *position.Position, vel mgl32.Vec3) (*position.Position, mgl32.Vec3) {
	c := central.Position()
	shifted := position.FromXYZ(pos.X()+c.X(), pos.Y()+c.Y(), pos.Z()+c.Z())
	if moving, ok := central.(interface{ Velocity() mgl32.Vec3 }); ok {
		vel = vel.Add(moving.Velocity())
	}
	return shifted, vel
}

func (c *Craft) Name() string                 { return c.name }
func (c *Craft) Position() *position.Position { return c.position }
func (c *Craft) CurrentTime() time.Time       { return c.currentTime }
func (c *Craft) Velocity() mgl32.Vec3         { return c.velocity }
func (c *Craft) MinimumStep() time.Duration   { return c.minimumStep }

// Gravitators returns the view the craft currently integrates against.
func (c *Craft) Gravitators() GravitatorView { return c.gravitators }

func (c *Craft) SetGravitators(v GravitatorView) {
	c.gravitators = v
}

// Advance integrates dt in substeps no longer than the minimum step, then
// moves the clock by exactly dt.
func (c *Craft) Advance(dt time.Duration) {
	if dt <= 0 {
		return
	}
	for simulated := time.Duration(0); simulated < dt; {
		h := min(c.minimumStep, dt-simulated)
		c.eulerStep(h)
		simulated += h
	}
	c.currentTime = c.currentTime.Add(dt)
}

// eulerStep moves the position with the old velocity first, then
// accumulates every gravitator's pull evaluated at the new position.
func (c *Craft) eulerStep(h time.Duration) {
	hs := float32(h.Seconds())
	c.position.ChangeBy(c.velocity.Mul(hs))

	for g := range c.gravitators.All() {
		d := g.Position().OffsetFrom(c.position)
		dist := d.Len()
		// Zero separation has no direction; this also skips the craft
		// itself when it is a gravitator too.
		if dist == 0 {
			continue
		}
		strength := g.Mu() / (float64(dist) * float64(dist))
		accel := d.Mul(1 / dist).Mul(float32(strength))
		c.velocity = c.velocity.Add(accel.Mul(hs))
	}
}

// MassiveCraft is a craft with mass: it both moves under gravity and
// attracts other gravitatees.
type MassiveCraft struct {
	*Craft
	mass float64
}

func NewMassiveCraft(name string, initialTime time.Time, pos *position.Position, vel mgl32.Vec3, mass float64, opts ...CraftOption) *MassiveCraft {
	return &MassiveCraft{
		Craft: NewCraft(name, initialTime, pos, vel, opts...),
		mass:  mass,
	}
}

func (m *MassiveCraft) Mass() float64 { return m.mass }
func (m *MassiveCraft) Mu() float64   { return astro.Mu(m.mass) }
