package metrics

import (
	"time"

	"github.com/san-kum/orbsim/internal/body"
)

// RadiusBound is the fraction of samples in which subject stayed between
// min and max metres from central.
type RadiusBound struct {
	name       string
	pair       pair
	min, max   float64
	violations int
	samples    int
}

func NewRadiusBound(subject body.Gravitatee, central body.Gravitator, min, max float64) *RadiusBound {
	return &RadiusBound{
		name: "radius_bound",
		pair: pair{subject: subject, central: central},
		min:  min,
		max:  max,
	}
}

func (r *RadiusBound) Name() string { return r.name }

func (r *RadiusBound) Observe(t time.Time) {
	r.samples++
	if d := r.pair.radius(); d < r.min || d > r.max {
		r.violations++
	}
}

func (r *RadiusBound) Value() float64 {
	if r.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(r.violations)/float64(r.samples)
}

func (r *RadiusBound) Reset() {
	r.violations = 0
	r.samples = 0
}
