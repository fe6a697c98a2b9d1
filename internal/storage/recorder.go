package storage

import (
	"maps"
	"slices"
	"time"

	"github.com/san-kum/orbsim/internal/body"
)

// Sample is one body's position at one frame.
type Sample struct {
	Time    time.Time
	Body    string
	X, Y, Z float64
}

// Recorder snapshots body positions. Record matches the clock listener
// signature so it can be attached to a frame driver.
type Recorder struct {
	names   []string
	bodies  map[string]body.Body
	samples []Sample
}

func NewRecorder(bodies map[string]body.Body) *Recorder {
	return &Recorder{
		names:  slices.Sorted(maps.Keys(bodies)),
		bodies: bodies,
	}
}

func (r *Recorder) Record(t time.Time) {
	for _, name := range r.names {
		p := r.bodies[name].Position()
		r.samples = append(r.samples, Sample{Time: t, Body: name, X: p.X(), Y: p.Y(), Z: p.Z()})
	}
}

func (r *Recorder) Names() []string   { return slices.Clone(r.names) }
func (r *Recorder) Samples() []Sample { return r.samples }

// Track filters samples down to one body, keeping their order.
func Track(samples []Sample, name string) []Sample {
	var out []Sample
	for _, s := range samples {
		if s.Body == name {
			out = append(out, s)
		}
	}
	return out
}
