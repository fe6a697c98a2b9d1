package config

import (
	"fmt"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/san-kum/orbsim/internal/astro"
	"github.com/san-kum/orbsim/internal/body"
	"github.com/san-kum/orbsim/internal/orbit"
	"github.com/san-kum/orbsim/internal/position"
	"github.com/san-kum/orbsim/internal/sim"
)

// Build creates every body of sc at its start time and wraps them in a
// simulation. Bodies are also returned by name.
func Build(sc *Scenario, opts ...sim.Option) (*sim.Simulation, map[string]body.Body, error) {
	if err := sc.Validate(); err != nil {
		return nil, nil, err
	}

	byName := make(map[string]body.Body, len(sc.Bodies))
	bodies := make([]body.Body, 0, len(sc.Bodies))
	for _, bc := range sc.Bodies {
		var central body.Gravitator
		if bc.Central != "" {
			g, ok := byName[bc.Central].(body.Gravitator)
			if !ok {
				return nil, nil, fmt.Errorf("%w: %q for body %q has no mass", ErrUnknownCentral, bc.Central, bc.Name)
			}
			central = g
		}

		b, err := buildBody(sc, bc, central)
		if err != nil {
			return nil, nil, fmt.Errorf("config: body %q: %w", bc.Name, err)
		}
		byName[bc.Name] = b
		bodies = append(bodies, b)
	}

	if sc.MinimumStep > 0 {
		opts = append([]sim.Option{sim.WithMinimumStep(sc.MinimumStep)}, opts...)
	}
	s, err := sim.New(bodies, opts...)
	if err != nil {
		return nil, nil, err
	}
	return s, byName, nil
}

func buildBody(sc *Scenario, bc BodyConfig, central body.Gravitator) (body.Body, error) {
	start := sc.Start.Time
	var craftOpts []body.CraftOption
	if bc.MinimumStep > 0 {
		craftOpts = append(craftOpts, body.WithMinimumStep(bc.MinimumStep))
	}

	switch bc.Kind {
	case KindStatic:
		return body.NewStaticPlanet(bc.Name, start, position.FromXYZ(bc.Position[0], bc.Position[1], bc.Position[2]), bc.Mass), nil

	case KindOrbiting:
		o, err := bc.Elements.orbit(start)
		if err != nil {
			return nil, err
		}
		p, err := body.NewOrbitingPlanet(bc.Name, start, o, central, bc.Mass)
		if err != nil {
			return nil, err
		}
		return p, nil

	case KindCraft, KindMassive:
		pos, vel, err := initialState(bc, central, start)
		if err != nil {
			return nil, err
		}
		if bc.Kind == KindMassive {
			return body.NewMassiveCraft(bc.Name, start, pos, vel, bc.Mass, craftOpts...), nil
		}
		return body.NewCraft(bc.Name, start, pos, vel, craftOpts...), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, bc.Kind)
}

// initialState resolves a craft's starting state from elements, a TLE or
// explicit vectors.
func initialState(bc BodyConfig, central body.Gravitator, start time.Time) (*position.Position, mgl32.Vec3, error) {
	switch {
	case bc.Elements != nil:
		o, err := bc.Elements.orbit(start)
		if err != nil {
			return nil, mgl32.Vec3{}, err
		}
		c, err := body.NewCraftFromOrbit(bc.Name, start, o, central)
		if err != nil {
			return nil, mgl32.Vec3{}, err
		}
		return c.Position(), c.Velocity(), nil

	case bc.TLE != nil:
		p, v, err := tleState(*bc.TLE, start)
		if err != nil {
			return nil, mgl32.Vec3{}, err
		}
		c := central.Position()
		pos := position.FromXYZ(p[0]+c.X(), p[1]+c.Y(), p[2]+c.Z())
		vel := mgl32.Vec3{float32(v[0]), float32(v[1]), float32(v[2])}
		if moving, ok := central.(interface{ Velocity() mgl32.Vec3 }); ok {
			vel = vel.Add(moving.Velocity())
		}
		return pos, vel, nil
	}

	return position.FromXYZ(bc.Position[0], bc.Position[1], bc.Position[2]),
		mgl32.Vec3{float32(bc.Velocity[0]), float32(bc.Velocity[1]), float32(bc.Velocity[2])}, nil
}

func (e *ElementsConfig) orbit(start time.Time) (orbit.Orbit, error) {
	scale := 1.0
	if e.Degrees {
		scale = math.Pi / 180
	}
	a := e.SemiMajorAxis
	if e.AU {
		a *= astro.MetresPerAU
	}
	epoch := e.Epoch.Time
	if epoch.IsZero() {
		epoch = start
	}
	return orbit.New(orbit.Elements{
		Eccentricity:             e.Eccentricity,
		SemiMajorAxis:            a,
		Inclination:              e.Inclination * scale,
		LongitudeOfAscendingNode: e.LongitudeOfAscendingNode * scale,
		ArgumentOfPeriapsis:      e.ArgumentOfPeriapsis * scale,
		MeanAnomalyAtEpoch:       e.MeanAnomalyAtEpoch * scale,
		Epoch:                    epoch,
	})
}
