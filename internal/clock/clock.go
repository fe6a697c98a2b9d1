// Package clock drives a simulation frame by frame, either paced to the
// wall clock or as fast as the host allows.
package clock

import (
	"context"
	"errors"
	"time"
)

// Stepper is the part of a simulation the driver needs.
type Stepper interface {
	Update(dt time.Duration) error
	CurrentTime() time.Time
}

// Mode describes how the driver paces frames.
type Mode int

const (
	// RealTime waits one wall-clock Step between frames.
	RealTime Mode = iota
	// Accelerated runs frames back to back.
	Accelerated
)

func (m Mode) String() string {
	switch m {
	case RealTime:
		return "realtime"
	case Accelerated:
		return "accelerated"
	default:
		return "unknown"
	}
}

// ParseMode accepts the names printed by Mode.String.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "realtime", "real-time":
		return RealTime, nil
	case "accelerated", "":
		return Accelerated, nil
	}
	return 0, errors.New("clock: unknown mode " + s)
}

var ErrNonPositiveStep = errors.New("clock: frame step must be positive")

// Driver advances a Stepper by Step per frame and notifies listeners
// with the simulation time after each frame. Everything runs on the
// caller's goroutine.
type Driver struct {
	Step time.Duration
	Mode Mode

	listeners []func(time.Time)
}

func NewDriver(step time.Duration, mode Mode) *Driver {
	return &Driver{Step: step, Mode: mode}
}

// AddListener registers a callback invoked after every frame.
func (d *Driver) AddListener(fn func(time.Time)) {
	d.listeners = append(d.listeners, fn)
}

// Run plays frames frames, or until ctx is done when frames is not
// positive. It returns the number of frames completed. Cancellation is
// checked between frames only.
func (d *Driver) Run(ctx context.Context, s Stepper, frames int) (int, error) {
	if d.Step <= 0 {
		return 0, ErrNonPositiveStep
	}

	var tick <-chan time.Time
	if d.Mode == RealTime {
		ticker := time.NewTicker(d.Step)
		defer ticker.Stop()
		tick = ticker.C
	}

	done := 0
	for frames <= 0 || done < frames {
		if err := ctx.Err(); err != nil {
			return done, err
		}
		if tick != nil {
			select {
			case <-ctx.Done():
				return done, ctx.Err()
			case <-tick:
			}
		}

		if err := s.Update(d.Step); err != nil {
			return done, err
		}
		done++

		now := s.CurrentTime()
		for _, fn := range d.listeners {
			fn(now)
		}
	}
	return done, nil
}
