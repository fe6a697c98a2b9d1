package sim

import (
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/san-kum/orbsim/internal/body"
	"github.com/san-kum/orbsim/internal/logging"
	"github.com/san-kum/orbsim/internal/observability"
)

const (
	DefaultMinimumStep = time.Second

	// SubIntervals is the fixed number of slices SimulateSeconds cuts its
	// duration into.
	SubIntervals = 1000
)

// Simulation owns a set of bodies and advances them in lock-step. After
// every public call returns, all bodies report the same CurrentTime.
//
// A Simulation is not safe for concurrent use.
type Simulation struct {
	bodies      []body.Body
	gravitators body.GravitatorView
	gravitatees []body.Gravitatee
	order       []body.Body

	minimumStep time.Duration
	logger      log.Logger
	metrics     *observability.Collector
}

type Option func(*Simulation)

// WithMinimumStep caps the substep Update advances bodies by. Non-positive
// values are ignored.
func WithMinimumStep(d time.Duration) Option {
	return func(s *Simulation) {
		if d > 0 {
			s.minimumStep = d
		}
	}
}

func WithLogger(l log.Logger) Option {
	return func(s *Simulation) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithCollector(c *observability.Collector) Option {
	return func(s *Simulation) { s.metrics = c }
}

// New builds a simulation over bodies, which must all share one clock.
func New(bodies []body.Body, opts ...Option) (*Simulation, error) {
	s := &Simulation{
		minimumStep: DefaultMinimumStep,
		logger:      logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logging.Subsystem(s.logger, "sim")

	for i, b := range bodies {
		if b == nil {
			return nil, &ConfigError{Op: "new", Err: ErrNilBody}
		}
		if slices.Contains(bodies[:i], b) {
			return nil, &ConfigError{Op: "new", Err: fmt.Errorf("%w: %s", ErrDuplicateBody, body.NameOf(b))}
		}
	}
	if !synchronised(bodies) {
		err := &ConfigError{Op: "new", Err: newDesyncError(bodies)}
		level.Warn(s.logger).Log("msg", "rejected body set", "err", err)
		return nil, err
	}

	s.bodies = slices.Clone(bodies)
	s.rewire()
	level.Info(s.logger).Log("msg", "simulation created", "bodies", len(s.bodies),
		"gravitators", s.gravitators.Len(), "gravitatees", len(s.gravitatees),
		"minimum_step", s.minimumStep, "time", s.CurrentTime())
	return s, nil
}

// AddBody adds b if its clock matches the simulation's. On error the
// simulation is unchanged.
func (s *Simulation) AddBody(b body.Body) error {
	if b == nil {
		return &ConfigError{Op: "add body", Err: ErrNilBody}
	}
	if slices.Contains(s.bodies, b) {
		return &ConfigError{Op: "add body", Err: fmt.Errorf("%w: %s", ErrDuplicateBody, body.NameOf(b))}
	}
	candidate := append(slices.Clone(s.bodies), b)
	if !synchronised(candidate) {
		err := &ConfigError{Op: "add body", Err: newDesyncError(candidate)}
		level.Warn(s.logger).Log("msg", "rejected body", "body", body.NameOf(b), "err", err)
		return err
	}

	s.bodies = candidate
	s.rewire()
	level.Info(s.logger).Log("msg", "body added", "body", body.NameOf(b), "bodies", len(s.bodies))
	return nil
}

// Update advances every body by dt in substeps no longer than the minimum
// step. Within a substep gravitators move first, then gravitatees, then
// everything else.
func (s *Simulation) Update(dt time.Duration) error {
	if dt < 0 {
		return fmt.Errorf("update %v: %w", dt, ErrNegativeStep)
	}
	if dt == 0 {
		return nil
	}

	start := time.Now()
	substeps := 0
	for remaining := dt; remaining > 0; {
		h := min(s.minimumStep, remaining)
		s.advanceAll(h)
		remaining -= h
		substeps++
	}
	return s.finish("update", substeps, dt, start)
}

// SimulateSeconds advances every body by seconds, cut into SubIntervals
// equal slices regardless of the minimum step. Leftover nanoseconds go to
// the first slices so the total is exact.
func (s *Simulation) SimulateSeconds(seconds float64) error {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return fmt.Errorf("simulate %v s: %w", seconds, ErrNonFiniteStep)
	}
	if seconds < 0 {
		return fmt.Errorf("simulate %v s: %w", seconds, ErrNegativeStep)
	}
	ns := math.Round(seconds * float64(time.Second))
	if ns >= math.MaxInt64 {
		return fmt.Errorf("simulate %v s: %w", seconds, ErrStepTooLarge)
	}
	total := time.Duration(ns)
	if total == 0 {
		return nil
	}

	start := time.Now()
	base, extra := total/SubIntervals, total%SubIntervals
	substeps := 0
	for i := range time.Duration(SubIntervals) {
		h := base
		if i < extra {
			h++
		}
		if h == 0 {
			continue
		}
		s.advanceAll(h)
		substeps++
	}
	return s.finish("simulate", substeps, total, start)
}

func (s *Simulation) advanceAll(h time.Duration) {
	for _, b := range s.order {
		b.Advance(h)
	}
}

func (s *Simulation) finish(op string, substeps int, dt time.Duration, start time.Time) error {
	if !synchronised(s.bodies) {
		s.metrics.IncDesync()
		err := newDesyncError(s.bodies)
		level.Error(s.logger).Log("msg", "bodies drifted out of sync", "op", op, "err", err)
		return fmt.Errorf("%s %v: %w", op, dt, err)
	}
	for _, b := range s.bodies {
		if f, ok := b.(body.Faulted); ok && f.Err() != nil {
			level.Error(s.logger).Log("msg", "body failed to advance", "op", op, "body", body.NameOf(b), "err", f.Err())
			return fmt.Errorf("%s %v: %w", op, dt, f.Err())
		}
	}
	s.metrics.ObserveUpdate(substeps, dt, time.Since(start))
	level.Debug(s.logger).Log("msg", op, "dt", dt, "substeps", substeps, "time", s.CurrentTime())
	return nil
}

// rewire rebuilds the gravitator view and advance order from the body list
// and hands the fresh view to every gravitatee.
func (s *Simulation) rewire() {
	var (
		gravitators []body.Gravitator
		gravitatees []body.Gravitatee
		rest        []body.Body
	)
	for _, b := range s.bodies {
		g, isGravitator := b.(body.Gravitator)
		if isGravitator {
			gravitators = append(gravitators, g)
		}
		if e, ok := b.(body.Gravitatee); ok {
			gravitatees = append(gravitatees, e)
		}
		if !isGravitator {
			rest = append(rest, b)
		}
	}

	s.gravitators = body.NewGravitatorView(gravitators...)
	s.gravitatees = gravitatees
	for _, e := range gravitatees {
		e.SetGravitators(s.gravitators)
	}

	// Stable sort keeps collection order within each group.
	order := make([]body.Body, 0, len(s.bodies))
	for _, g := range gravitators {
		order = append(order, g)
	}
	slices.SortStableFunc(rest, func(a, b body.Body) int {
		return rank(a) - rank(b)
	})
	s.order = append(order, rest...)

	s.metrics.SetBodies(len(s.bodies), len(gravitators), len(gravitatees))
}

func rank(b body.Body) int {
	if _, ok := b.(body.Gravitatee); ok {
		return 0
	}
	return 1
}

func synchronised(bodies []body.Body) bool {
	for _, b := range bodies[min(1, len(bodies)):] {
		if !b.CurrentTime().Equal(bodies[0].CurrentTime()) {
			return false
		}
	}
	return true
}

// Bodies returns a copy of the body collection in insertion order.
func (s *Simulation) Bodies() []body.Body { return slices.Clone(s.bodies) }

// Gravitators returns the view currently shared with every gravitatee.
func (s *Simulation) Gravitators() body.GravitatorView { return s.gravitators }

func (s *Simulation) Gravitatees() []body.Gravitatee { return slices.Clone(s.gravitatees) }

func (s *Simulation) MinimumStep() time.Duration { return s.minimumStep }

// CurrentTime is the shared clock of all bodies, or the zero time for an
// empty simulation.
func (s *Simulation) CurrentTime() time.Time {
	if len(s.bodies) == 0 {
		return time.Time{}
	}
	return s.bodies[0].CurrentTime()
}
