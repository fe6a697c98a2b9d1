package body

import (
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	. "github.com/onsi/gomega"

	"github.com/san-kum/orbsim/internal/astro"
	"github.com/san-kum/orbsim/internal/orbit"
	"github.com/san-kum/orbsim/internal/position"
)

var t0 = time.Date(2021, 10, 29, 12, 34, 51, 0, time.UTC)

func TestGravitatorViewIsSnapshot(t *testing.T) {
	earth := NewOriginEarth(t0)
	sun := NewOriginSun(t0)
	src := []Gravitator{earth, sun}
	v := NewGravitatorView(src...)
	src[0] = sun

	if v.Len() != 2 {
		t.Fatalf("expected 2 gravitators, got %d", v.Len())
	}
	if v.At(0) != Gravitator(earth) {
		t.Errorf("view changed after source slice was modified")
	}
	n := 0
	for range v.All() {
		n++
	}
	if n != 2 {
		t.Errorf("expected All to yield 2, got %d", n)
	}
	if !v.Contains(sun) {
		t.Errorf("expected view to contain sun")
	}
}

func TestStaticPlanetAdvance(t *testing.T) {
	p := NewStaticPlanet("moon", t0, position.FromXYZ(1, 2, 3), 7.35e22)
	p.Advance(90 * time.Minute)
	p.Advance(0)
	p.Advance(-time.Hour)

	if got := p.CurrentTime(); !got.Equal(t0.Add(90 * time.Minute)) {
		t.Errorf("expected clock %v, got %v", t0.Add(90*time.Minute), got)
	}
	if p.Position().X() != 1 || p.Position().Y() != 2 || p.Position().Z() != 3 {
		t.Errorf("static planet moved to %v", p.Position())
	}
	if want := astro.Mu(7.35e22); math.Abs(p.Mu()-want) > want*1e-12 {
		t.Errorf("expected mu %g, got %g", want, p.Mu())
	}
}

func TestCraftOptions(t *testing.T) {
	tests := []struct {
		name string
		opts []CraftOption
		want time.Duration
	}{
		{"default", nil, DefaultCraftStep},
		{"custom", []CraftOption{WithMinimumStep(time.Second)}, time.Second},
		{"zero ignored", []CraftOption{WithMinimumStep(0)}, DefaultCraftStep},
		{"negative ignored", []CraftOption{WithMinimumStep(-time.Second)}, DefaultCraftStep},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCraft("c", t0, position.FromXYZ(0, 0, 0), mgl32.Vec3{}, tt.opts...)
			if c.MinimumStep() != tt.want {
				t.Errorf("expected %v, got %v", tt.want, c.MinimumStep())
			}
		})
	}
}

func TestCraftWithoutGravitatorsDrifts(t *testing.T) {
	c := NewCraft("probe", t0, position.FromXYZ(0, 0, 0), mgl32.Vec3{1, 2, 0}, WithMinimumStep(time.Second))
	c.Advance(10 * time.Second)

	g := NewWithT(t)
	g.Expect(c.Position().X()).To(BeNumerically("~", 10, 1e-9))
	g.Expect(c.Position().Y()).To(BeNumerically("~", 20, 1e-9))
	g.Expect(c.Velocity()).To(Equal(mgl32.Vec3{1, 2, 0}))
}

func TestCraftClockPartition(t *testing.T) {
	c := NewCraft("probe", t0, position.FromXYZ(0, 0, 0), mgl32.Vec3{}, WithMinimumStep(time.Minute))
	dt := 90*time.Minute + 500*time.Millisecond
	c.Advance(dt)
	if !c.CurrentTime().Equal(t0.Add(dt)) {
		t.Errorf("expected clock %v, got %v", t0.Add(dt), c.CurrentTime())
	}
}

func TestCraftZeroStepIsNoop(t *testing.T) {
	earth := NewOriginEarth(t0)
	c := NewCraft("probe", t0, position.FromXYZ(6741000, 0, 0), mgl32.Vec3{0, 7777.7777, 0}, WithMinimumStep(time.Second))
	c.SetGravitators(NewGravitatorView(earth))

	before := *c.Position()
	vel := c.Velocity()
	c.Advance(0)

	if *c.Position() != before || c.Velocity() != vel || !c.CurrentTime().Equal(t0) {
		t.Errorf("zero advance changed state")
	}
}

func TestCraftFreeFall(t *testing.T) {
	earth := NewOriginEarth(t0)
	start := 6741000.0
	c := NewCraft("rocket", t0, position.FromXYZ(start, 0, 0), mgl32.Vec3{0, 7777.7777, 0}, WithMinimumStep(time.Second))
	c.SetGravitators(NewGravitatorView(earth))

	for range 90 {
		c.Advance(time.Minute)
	}

	g := NewWithT(t)
	g.Expect(c.Position().Norm()).To(BeNumerically("~", start, 0.1*start))
	g.Expect(c.CurrentTime()).To(Equal(t0.Add(90 * time.Minute)))
	// A full orbit at this radius takes about 91 minutes, so the craft is
	// back near the +x axis.
	g.Expect(c.Position().X()).To(BeNumerically(">", 0))
}

func TestCraftPulledTowardGravitator(t *testing.T) {
	earth := NewOriginEarth(t0)
	c := NewCraft("drop", t0, position.FromXYZ(astro.EarthRadius+1000, 0, 0), mgl32.Vec3{}, WithMinimumStep(time.Second))
	c.SetGravitators(NewGravitatorView(earth))
	c.Advance(time.Second)

	g := NewWithT(t)
	// One step: position moves with the old (zero) velocity, then the pull
	// at the unchanged position is applied.
	want := astro.EarthMu / math.Pow(astro.EarthRadius+1000, 2)
	g.Expect(float64(c.Velocity().X())).To(BeNumerically("~", -want, 1e-3))
	g.Expect(c.Position().X()).To(BeNumerically("~", astro.EarthRadius+1000, 1))
}

func TestMassiveCraftIgnoresItself(t *testing.T) {
	m := NewMassiveCraft("station", t0, position.FromXYZ(100, 0, 0), mgl32.Vec3{0, 1, 0}, 1e20, WithMinimumStep(time.Second))
	m.SetGravitators(NewGravitatorView(m))
	m.Advance(5 * time.Second)

	if m.Velocity() != (mgl32.Vec3{0, 1, 0}) {
		t.Errorf("expected velocity unchanged, got %v", m.Velocity())
	}
	if want := astro.G * 1e20; math.Abs(m.Mu()-want) > want*1e-12 {
		t.Errorf("expected mu %g, got %g", want, m.Mu())
	}
	var _ Gravitator = m
	var _ Gravitatee = m
}

func TestNewCraftFromOrbitOffsetsByCentral(t *testing.T) {
	central := NewStaticPlanet("earth", t0, position.FromXYZ(1e9, 0, 0), astro.EarthMass)
	o := orbit.MustNew(orbit.Elements{SemiMajorAxis: 7e6, Epoch: t0})

	c, err := NewCraftFromOrbit("sat", t0, o, central)
	if err != nil {
		t.Fatal(err)
	}
	g := NewWithT(t)
	g.Expect(c.Position().X()).To(BeNumerically("~", 1e9+7e6, 1e-3))
	g.Expect(c.Position().Y()).To(BeNumerically("~", 0, 1e-3))
	g.Expect(float64(c.Velocity().Y())).To(BeNumerically("~", math.Sqrt(astro.EarthMu/7e6), 1e-2))
}

func TestNewCraftFromOrbitRejectsMasslessCentral(t *testing.T) {
	central := NewStaticPlanet("dust", t0, position.FromXYZ(0, 0, 0), 0)
	o := orbit.MustNew(orbit.Elements{SemiMajorAxis: 7e6, Epoch: t0})
	if _, err := NewCraftFromOrbit("sat", t0, o, central); err == nil {
		t.Errorf("expected error for massless central body")
	}
}

func TestOrbitingPlanetFollowsOrbit(t *testing.T) {
	sun := NewOriginSun(t0)
	o := orbit.MustNew(orbit.Elements{
		Eccentricity:  0.0167,
		SemiMajorAxis: astro.MetresPerAU,
		Epoch:         t0,
	})
	earth, err := NewOrbitingPlanet("earth", t0, o, sun, astro.EarthMass)
	if err != nil {
		t.Fatal(err)
	}
	start := earth.Position().Clone()

	g := NewWithT(t)
	g.Expect(start.X()).To(BeNumerically("~", astro.MetresPerAU*(1-0.0167), 1))

	earth.Advance(o.Period(sun.Mu()) / 2)
	g.Expect(earth.Position().X()).To(BeNumerically("~", -astro.MetresPerAU*(1+0.0167), 1e3))

	earth.Advance(o.Period(sun.Mu()) - o.Period(sun.Mu())/2)
	g.Expect(earth.Position().Distance(start)).To(BeNumerically("<", 1e4))

	at, err := earth.LocationAt(t0)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(at.Distance(start)).To(BeNumerically("<", 1e-3))
}

// fadingSun is a central body whose mass can be taken away mid-run.
type fadingSun struct {
	*StaticPlanet
	mu float64
}

func (f *fadingSun) Mu() float64 { return f.mu }

func TestOrbitingPlanetKeepsStateOnFailedResample(t *testing.T) {
	sun := &fadingSun{StaticPlanet: NewOriginSun(t0), mu: astro.SunMu}
	o := orbit.MustNew(orbit.Elements{SemiMajorAxis: astro.MetresPerAU, Epoch: t0})
	earth, err := NewOrbitingPlanet("earth", t0, o, sun, astro.EarthMass)
	if err != nil {
		t.Fatal(err)
	}

	earth.Advance(astro.Day)
	g := NewWithT(t)
	g.Expect(earth.Err()).NotTo(HaveOccurred())
	last := earth.Position().Clone()
	lastVel := earth.Velocity()

	sun.mu = 0
	earth.Advance(astro.Day)
	g.Expect(earth.Err()).To(MatchError(orbit.ErrInvalidMu))
	g.Expect(earth.CurrentTime()).To(Equal(t0.Add(2 * astro.Day)))
	g.Expect(earth.Position().Distance(last)).To(BeZero())
	g.Expect(earth.Velocity()).To(Equal(lastVel))

	sun.mu = astro.SunMu
	earth.Advance(astro.Day)
	g.Expect(earth.Err()).NotTo(HaveOccurred())
	want, err := earth.LocationAt(t0.Add(3 * astro.Day))
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(earth.Position().Distance(want)).To(BeNumerically("<", 1e-3))
}

func TestNameOf(t *testing.T) {
	if got := NameOf(NewOriginEarth(t0)); got != "earth" {
		t.Errorf("expected earth, got %s", got)
	}
}
