// Package orbit converts classical Keplerian elements into inertial-frame
// position and velocity at an arbitrary time.
package orbit

import (
	"fmt"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/orbsim/internal/position"
)

// MuSource supplies the standard gravitational parameter of a central body.
type MuSource interface {
	Mu() float64
}

// Elements are the six classical orbital elements plus their epoch. Angles
// are radians, distances metres.
type Elements struct {
	Eccentricity             float64
	SemiMajorAxis            float64
	Inclination              float64
	LongitudeOfAscendingNode float64
	ArgumentOfPeriapsis      float64
	MeanAnomalyAtEpoch       float64
	Epoch                    time.Time
}

// Orbit is an immutable, validated element set. It owns no simulation state.
type Orbit struct {
	el Elements
}

// New validates el and wraps it in an Orbit.
func New(el Elements) (Orbit, error) {
	if el.Eccentricity < 0 || el.Eccentricity >= 1 || math.IsNaN(el.Eccentricity) {
		return Orbit{}, fmt.Errorf("%w: eccentricity %v not in [0, 1)", ErrInvalidElements, el.Eccentricity)
	}
	if !(el.SemiMajorAxis > 0) || math.IsInf(el.SemiMajorAxis, 0) {
		return Orbit{}, fmt.Errorf("%w: semi-major axis %v must be positive", ErrInvalidElements, el.SemiMajorAxis)
	}
	for name, v := range map[string]float64{
		"inclination":           el.Inclination,
		"ascending node":        el.LongitudeOfAscendingNode,
		"argument of periapsis": el.ArgumentOfPeriapsis,
		"mean anomaly":          el.MeanAnomalyAtEpoch,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Orbit{}, fmt.Errorf("%w: %s is not finite", ErrInvalidElements, name)
		}
	}
	return Orbit{el: el}, nil
}

// MustNew is New for hard-coded element sets.
func MustNew(el Elements) Orbit {
	o, err := New(el)
	if err != nil {
		panic(err)
	}
	return o
}

func (o Orbit) Elements() Elements { return o.el }

// MeanMotion returns n = sqrt(μ/a³) in rad/s.
func (o Orbit) MeanMotion(mu float64) float64 {
	a := o.el.SemiMajorAxis
	return math.Sqrt(mu / (a * a * a))
}

// Period returns the orbital period around a body with parameter mu.
func (o Orbit) Period(mu float64) time.Duration {
	return time.Duration(2 * math.Pi / o.MeanMotion(mu) * float64(time.Second))
}

// anomalies returns the eccentric anomaly, true anomaly and radius at t.
func (o Orbit) anomalies(mu float64, t time.Time) (E, nu, r float64) {
	dt := t.Sub(o.el.Epoch).Seconds()
	M := o.el.MeanAnomalyAtEpoch + o.MeanMotion(mu)*dt
	e := o.el.Eccentricity

	E = SolveKepler(M, e, KeplerIterations)
	nu = TrueAnomaly(E, e)
	r = o.el.SemiMajorAxis * (1 - e*math.Cos(E))
	return E, nu, r
}

func (o Orbit) rotation() mat.Matrix {
	return perifocalToInertial(o.el.Inclination, o.el.LongitudeOfAscendingNode, o.el.ArgumentOfPeriapsis)
}

func centralMu(central MuSource) (float64, error) {
	mu := central.Mu()
	if !(mu > 0) {
		return 0, fmt.Errorf("%w: μ = %v", ErrInvalidMu, mu)
	}
	return mu, nil
}

// PositionAt returns the inertial position at t relative to the central
// body's frame origin.
func (o Orbit) PositionAt(central MuSource, t time.Time) (*position.Position, error) {
	mu, err := centralMu(central)
	if err != nil {
		return nil, err
	}
	return o.positionAt(mu, t), nil
}

// VelocityAt returns the inertial velocity at t in m/s.
func (o Orbit) VelocityAt(central MuSource, t time.Time) (mgl32.Vec3, error) {
	mu, err := centralMu(central)
	if err != nil {
		return mgl32.Vec3{}, err
	}
	return o.velocityAt(mu, t), nil
}

// StateAt returns both position and velocity at t.
func (o Orbit) StateAt(central MuSource, t time.Time) (*position.Position, mgl32.Vec3, error) {
	mu, err := centralMu(central)
	if err != nil {
		return nil, mgl32.Vec3{}, err
	}
	return o.positionAt(mu, t), o.velocityAt(mu, t), nil
}

func (o Orbit) positionAt(mu float64, t time.Time) *position.Position {
	_, nu, r := o.anomalies(mu, t)
	sinNu, cosNu := math.Sincos(nu)
	x, y, z := rotate(o.rotation(), r*cosNu, r*sinNu, 0)
	return position.FromXYZ(x, y, z)
}

func (o Orbit) velocityAt(mu float64, t time.Time) mgl32.Vec3 {
	E, _, r := o.anomalies(mu, t)
	e := o.el.Eccentricity
	sinE, cosE := math.Sincos(E)
	scale := math.Sqrt(mu*o.el.SemiMajorAxis) / r
	x, y, z := rotate(o.rotation(), -sinE*scale, math.Sqrt(1-e*e)*cosE*scale, 0)
	return mgl32.Vec3{float32(x), float32(y), float32(z)}
}

// SpecificEnergy is v²/2 − μ/r for a distance r and speed v.
func SpecificEnergy(r, v, mu float64) float64 {
	return v*v/2 - mu/r
}

// String implements the Stringer interface with angles in degrees.
func (o Orbit) String() string {
	deg := 180 / math.Pi
	return fmt.Sprintf("a=%.1f e=%.5f i=%.3f Ω=%.3f ω=%.3f M0=%.3f epoch=%s",
		o.el.SemiMajorAxis, o.el.Eccentricity, o.el.Inclination*deg,
		o.el.LongitudeOfAscendingNode*deg, o.el.ArgumentOfPeriapsis*deg,
		o.el.MeanAnomalyAtEpoch*deg, o.el.Epoch.Format(time.RFC3339))
}
