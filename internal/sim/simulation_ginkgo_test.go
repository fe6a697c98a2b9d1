package sim_test

import (
	"errors"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/orbsim/internal/astro"
	"github.com/san-kum/orbsim/internal/body"
	"github.com/san-kum/orbsim/internal/orbit"
	"github.com/san-kum/orbsim/internal/position"
	"github.com/san-kum/orbsim/internal/sim"
)

var _ = Describe("Simulation", func() {
	var (
		t0    time.Time
		earth *body.StaticPlanet
		craft *body.Craft
	)

	BeforeEach(func() {
		t0 = time.Date(2021, 10, 29, 12, 34, 51, 0, time.UTC)
		earth = body.NewOriginEarth(t0)
		craft = body.NewCraft("rocket", t0,
			position.FromXYZ(6741000, 0, 0), mgl32.Vec3{0, 7777.7777, 0},
			body.WithMinimumStep(time.Second))
	})

	expectSynchronised := func(s *sim.Simulation) {
		GinkgoHelper()
		for _, b := range s.Bodies() {
			Expect(b.CurrentTime()).To(Equal(s.CurrentTime()))
		}
	}

	Describe("construction", func() {
		It("wires every gravitatee to the gravitator view", func() {
			s, err := sim.New([]body.Body{earth, craft})
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Gravitators().Len()).To(Equal(1))
			Expect(s.Gravitatees()).To(HaveLen(1))
			Expect(craft.Gravitators().Contains(earth)).To(BeTrue())
			Expect(s.MinimumStep()).To(Equal(sim.DefaultMinimumStep))
		})

		It("rejects bodies with different clocks", func() {
			late := body.NewOriginSun(t0.Add(time.Second))
			_, err := sim.New([]body.Body{earth, late})

			var ce *sim.ConfigError
			Expect(errors.As(err, &ce)).To(BeTrue())
			Expect(err).To(MatchError(sim.ErrDesync))

			var de *sim.DesyncError
			Expect(errors.As(err, &de)).To(BeTrue())
			Expect(de.Bodies).To(ConsistOf(body.Body(earth), body.Body(late)))
		})
	})

	Describe("AddBody", func() {
		It("rejects an unsynchronised body and leaves the simulation untouched", func() {
			s, err := sim.New([]body.Body{earth, craft})
			Expect(err).NotTo(HaveOccurred())
			view := s.Gravitators()

			late := body.NewOriginSun(t0.Add(time.Hour))
			err = s.AddBody(late)
			Expect(err).To(MatchError(sim.ErrDesync))
			Expect(errors.As(err, new(*sim.ConfigError))).To(BeTrue())

			Expect(s.Bodies()).To(HaveLen(2))
			Expect(s.Gravitators()).To(Equal(view))
			Expect(s.Update(time.Minute)).To(Succeed())
			expectSynchronised(s)
		})

		It("rewires gravitatees with a fresh view", func() {
			s, err := sim.New([]body.Body{earth, craft})
			Expect(err).NotTo(HaveOccurred())
			before := craft.Gravitators()

			moon := body.NewStaticPlanet("moon", t0, position.FromXYZ(3.84e8, 0, 0), 7.35e22)
			Expect(s.AddBody(moon)).To(Succeed())

			Expect(before.Len()).To(Equal(1))
			Expect(craft.Gravitators().Len()).To(Equal(2))
			Expect(craft.Gravitators().Contains(moon)).To(BeTrue())
		})
	})

	Describe("stepping", func() {
		It("keeps clocks in sync across mixed calls", func() {
			sun := body.NewOriginSun(t0)
			o := orbit.MustNew(orbit.Elements{SemiMajorAxis: astro.MetresPerAU, Epoch: t0})
			planet, err := body.NewOrbitingPlanet("earth", t0, o, sun, astro.EarthMass)
			Expect(err).NotTo(HaveOccurred())

			probe := body.NewCraft("probe", t0,
				position.FromXYZ(2*astro.MetresPerAU, 0, 0), mgl32.Vec3{0, 21000, 0},
				body.WithMinimumStep(time.Minute))

			s, err := sim.New([]body.Body{sun, planet, probe}, sim.WithMinimumStep(time.Hour))
			Expect(err).NotTo(HaveOccurred())

			Expect(s.Update(90 * time.Minute)).To(Succeed())
			expectSynchronised(s)
			Expect(s.SimulateSeconds(12.5)).To(Succeed())
			expectSynchronised(s)
			Expect(s.Update(0)).To(Succeed())
			expectSynchronised(s)
			Expect(s.CurrentTime()).To(Equal(t0.Add(90*time.Minute + 12500*time.Millisecond)))
		})

		It("leaves everything untouched on a zero step", func() {
			s, err := sim.New([]body.Body{earth, craft})
			Expect(err).NotTo(HaveOccurred())
			pos := *craft.Position()
			vel := craft.Velocity()

			Expect(s.Update(0)).To(Succeed())
			Expect(s.SimulateSeconds(0)).To(Succeed())

			Expect(*craft.Position()).To(Equal(pos))
			Expect(craft.Velocity()).To(Equal(vel))
			Expect(s.CurrentTime()).To(Equal(t0))
		})

		It("keeps a craft in free fall near its starting radius", func() {
			s, err := sim.New([]body.Body{earth, craft})
			Expect(err).NotTo(HaveOccurred())

			for range 90 {
				Expect(s.Update(time.Minute)).To(Succeed())
			}

			r := craft.Position().Distance(earth.Position())
			Expect(r).To(BeNumerically("~", 6741000, 674100))
			Expect(s.CurrentTime()).To(Equal(t0.Add(90 * time.Minute)))
		})
	})
})
