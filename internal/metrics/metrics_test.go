package metrics

import (
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/san-kum/orbsim/internal/astro"
	"github.com/san-kum/orbsim/internal/body"
	"github.com/san-kum/orbsim/internal/position"
)

var t0 = time.Date(2021, 10, 29, 12, 34, 51, 0, time.UTC)

func circularCraft(r float64) (*body.Craft, *body.StaticPlanet) {
	earth := body.NewOriginEarth(t0)
	v := float32(math.Sqrt(astro.EarthMu / r))
	c := body.NewCraft("sat", t0, position.FromXYZ(r, 0, 0), mgl32.Vec3{0, v, 0}, body.WithMinimumStep(time.Second))
	c.SetGravitators(body.NewGravitatorView(earth))
	return c, earth
}

func TestOrbitalEnergy(t *testing.T) {
	r := 7e6
	c, earth := circularCraft(r)
	m := NewOrbitalEnergy(c, earth)

	if m.Value() != 0 {
		t.Errorf("expected zero before samples, got %f", m.Value())
	}
	m.Observe(t0)
	expected := -astro.EarthMu / (2 * r)
	if math.Abs(m.Value()-expected)/math.Abs(expected) > 1e-5 {
		t.Errorf("expected energy %f, got %f", expected, m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero energy after reset")
	}
}

func TestEnergyDriftGrowsUnderEuler(t *testing.T) {
	c, earth := circularCraft(7e6)
	m := NewEnergyDrift(c, earth)

	m.Observe(t0)
	if m.Value() != 0 {
		t.Errorf("expected no drift on first sample, got %g", m.Value())
	}
	for range 60 {
		c.Advance(time.Minute)
		m.Observe(c.CurrentTime())
	}
	if m.Value() <= 0 || m.Value() > 0.05 {
		t.Errorf("expected small positive drift, got %g", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero drift after reset")
	}
}

func TestRadiusBound(t *testing.T) {
	c, earth := circularCraft(7e6)

	tests := []struct {
		name     string
		min, max float64
		want     float64
	}{
		{"inside", 6e6, 8e6, 1},
		{"too close", 7.5e6, 8e6, 0},
		{"too far", 1e6, 6.5e6, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewRadiusBound(c, earth, tt.min, tt.max)
			if m.Value() != 1 {
				t.Errorf("expected 1 with no samples, got %f", m.Value())
			}
			m.Observe(t0)
			m.Observe(t0)
			if m.Value() != tt.want {
				t.Errorf("expected %f, got %f", tt.want, m.Value())
			}
		})
	}
}

func TestMetricNames(t *testing.T) {
	c, earth := circularCraft(7e6)
	for _, m := range []Metric{
		NewOrbitalEnergy(c, earth),
		NewEnergyDrift(c, earth),
		NewRadiusBound(c, earth, 0, 1),
	} {
		if m.Name() == "" {
			t.Errorf("%T has no name", m)
		}
	}
}
