// Package body defines the capability interfaces a simulated object can
// implement and the concrete bodies built on them.
//
// A body's role in a simulation is decided by the interfaces it satisfies:
//
//   - [Body]: has a position and a clock and can be advanced.
//   - [Gravitator]: a Body with mass that attracts others.
//   - [Gravitatee]: a Body whose motion responds to a set of gravitators.
//
// A type may implement both Gravitator and Gravitatee (see [MassiveCraft]).
package body

import (
	"fmt"
	"iter"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/san-kum/orbsim/internal/position"
)

// Body is anything with a location and a simulation-local clock.
//
// CurrentTime only ever increases, by exactly the sum of the durations
// passed to Advance. Callers must treat the returned Position as read-only.
type Body interface {
	Position() *position.Position
	CurrentTime() time.Time
	Advance(dt time.Duration)
}

// Gravitator is a body that exerts gravitational attraction.
type Gravitator interface {
	Body
	Mass() float64
	// Mu is the standard gravitational parameter G·Mass in m³/s².
	Mu() float64
}

// Gravitatee is a body moved by the gravitators it is handed.
type Gravitatee interface {
	Body
	Velocity() mgl32.Vec3
	SetGravitators(v GravitatorView)
}

// Named bodies report a label used in logs and recordings.
type Named interface {
	Name() string
}

// Faulted bodies report a failure from their last Advance. A faulted body
// keeps its last good state while its clock keeps moving.
type Faulted interface {
	Err() error
}

// NameOf returns the body's name, or its type when it has none.
func NameOf(b Body) string {
	if n, ok := b.(Named); ok && n.Name() != "" {
		return n.Name()
	}
	return fmt.Sprintf("%T", b)
}

// GravitatorView is an immutable snapshot of the gravitators a gravitatee
// responds to. The owning simulation builds a new view whenever its body
// set changes; views are never modified in place.
type GravitatorView struct {
	items []Gravitator
}

// NewGravitatorView copies gs into a fresh view.
func NewGravitatorView(gs ...Gravitator) GravitatorView {
	items := make([]Gravitator, len(gs))
	copy(items, gs)
	return GravitatorView{items: items}
}

func (v GravitatorView) Len() int { return len(v.items) }

func (v GravitatorView) At(i int) Gravitator { return v.items[i] }

// All iterates the gravitators in insertion order.
func (v GravitatorView) All() iter.Seq[Gravitator] {
	return func(yield func(Gravitator) bool) {
		for _, g := range v.items {
			if !yield(g) {
				return
			}
		}
	}
}

// Contains reports whether g is part of the view.
func (v GravitatorView) Contains(g Gravitator) bool {
	for _, item := range v.items {
		if item == g {
			return true
		}
	}
	return false
}
