package sim

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/san-kum/orbsim/internal/body"
)

var (
	// ErrDesync means body clocks disagree where they must agree.
	ErrDesync = errors.New("sim: bodies are not time-synchronised")

	ErrNegativeStep  = errors.New("sim: negative step duration")
	ErrNonFiniteStep = errors.New("sim: step duration is not finite")
	ErrStepTooLarge  = errors.New("sim: step duration exceeds the representable range")

	ErrDuplicateBody = errors.New("sim: body already in simulation")
	ErrNilBody       = errors.New("sim: nil body")
)

// DesyncError carries the bodies whose clocks disagreed.
type DesyncError struct {
	Bodies []body.Body
}

func newDesyncError(bodies []body.Body) *DesyncError {
	return &DesyncError{Bodies: append([]body.Body(nil), bodies...)}
}

func (e *DesyncError) Error() string {
	var b strings.Builder
	b.WriteString(ErrDesync.Error())
	b.WriteString(":")
	for _, bd := range e.Bodies {
		fmt.Fprintf(&b, " %s@%s", body.NameOf(bd), bd.CurrentTime().Format(time.RFC3339Nano))
	}
	return b.String()
}

func (e *DesyncError) Unwrap() error { return ErrDesync }

// ConfigError reports input the caller supplied at construction or when
// adding a body. The simulation is left unchanged.
type ConfigError struct {
	Op  string
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("sim: invalid configuration in %s: %v", e.Op, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }
