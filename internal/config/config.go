package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultMinimumStep = time.Second
	DefaultDuration    = 90 * time.Minute
	DefaultFrameStep   = time.Minute
)

// Body kinds accepted in scenario files.
const (
	KindStatic   = "static"
	KindCraft    = "craft"
	KindMassive  = "massive"
	KindOrbiting = "orbiting"
)

var (
	ErrUnknownScenario = errors.New("config: unknown scenario")
	ErrUnknownKind     = errors.New("config: unknown body kind")
	ErrUnknownCentral  = errors.New("config: central body not defined earlier")
	ErrInvalidBody     = errors.New("config: invalid body")
)

// Scenario describes a simulation: its start time, stepping and bodies.
type Scenario struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description,omitempty"`
	Start       Epoch         `yaml:"start"`
	MinimumStep time.Duration `yaml:"minimum_step"`
	Duration    time.Duration `yaml:"duration"`
	FrameStep   time.Duration `yaml:"frame_step"`
	Bodies      []BodyConfig  `yaml:"bodies"`
}

// BodyConfig describes one body. Crafts and orbiting planets are placed
// by exactly one of position/velocity, elements or tle.
type BodyConfig struct {
	Name        string          `yaml:"name"`
	Kind        string          `yaml:"kind"`
	Mass        float64         `yaml:"mass,omitempty"`
	Position    [3]float64      `yaml:"position,flow,omitempty"`
	Velocity    [3]float64      `yaml:"velocity,flow,omitempty"`
	Elements    *ElementsConfig `yaml:"elements,omitempty"`
	TLE         *TLEConfig      `yaml:"tle,omitempty"`
	Central     string          `yaml:"central,omitempty"`
	MinimumStep time.Duration   `yaml:"minimum_step,omitempty"`
}

// ElementsConfig holds Keplerian elements. Angles are radians unless
// Degrees is set; the semi-major axis is metres unless AU is set. A zero
// epoch means the scenario start.
type ElementsConfig struct {
	Eccentricity             float64 `yaml:"eccentricity"`
	SemiMajorAxis            float64 `yaml:"semi_major_axis"`
	Inclination              float64 `yaml:"inclination"`
	LongitudeOfAscendingNode float64 `yaml:"longitude_of_ascending_node"`
	ArgumentOfPeriapsis      float64 `yaml:"argument_of_periapsis"`
	MeanAnomalyAtEpoch       float64 `yaml:"mean_anomaly"`
	Epoch                    Epoch   `yaml:"epoch,omitempty"`
	Degrees                  bool    `yaml:"degrees,omitempty"`
	AU                       bool    `yaml:"au,omitempty"`
}

type TLEConfig struct {
	Line1 string `yaml:"line1"`
	Line2 string `yaml:"line2"`
}

func DefaultScenario() *Scenario {
	return &Scenario{
		Name:        "custom",
		MinimumStep: DefaultMinimumStep,
		Duration:    DefaultDuration,
		FrameStep:   DefaultFrameStep,
	}
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a scenario over the defaults.
func Parse(data []byte) (*Scenario, error) {
	sc := DefaultScenario()
	if err := yaml.Unmarshal(data, sc); err != nil {
		return nil, fmt.Errorf("config: parse scenario: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return sc, nil
}

func Save(path string, sc *Scenario) error {
	data, err := yaml.Marshal(sc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the scenario shape. Numerical checks on elements happen
// when the scenario is built.
func (s *Scenario) Validate() error {
	if s.MinimumStep < 0 || s.Duration < 0 || s.FrameStep < 0 {
		return fmt.Errorf("config: scenario %q: durations must not be negative", s.Name)
	}
	seen := make(map[string]bool, len(s.Bodies))
	for i, b := range s.Bodies {
		if b.Name == "" {
			return fmt.Errorf("%w: body %d has no name", ErrInvalidBody, i)
		}
		if seen[b.Name] {
			return fmt.Errorf("%w: duplicate body %q", ErrInvalidBody, b.Name)
		}
		seen[b.Name] = true

		switch b.Kind {
		case KindStatic, KindCraft, KindMassive, KindOrbiting:
		default:
			return fmt.Errorf("%w: %q for body %q", ErrUnknownKind, b.Kind, b.Name)
		}
		if b.Elements != nil && b.TLE != nil {
			return fmt.Errorf("%w: %q sets both elements and tle", ErrInvalidBody, b.Name)
		}
		if (b.Elements != nil || b.TLE != nil || b.Kind == KindOrbiting) && b.Central == "" {
			return fmt.Errorf("%w: %q needs a central body", ErrInvalidBody, b.Name)
		}
		if b.Kind == KindOrbiting && b.Elements == nil {
			return fmt.Errorf("%w: orbiting body %q needs elements", ErrInvalidBody, b.Name)
		}
		if b.Kind == KindStatic && (b.Elements != nil || b.TLE != nil) {
			return fmt.Errorf("%w: static body %q cannot be placed by an orbit", ErrInvalidBody, b.Name)
		}
		if b.Central != "" && !seen[b.Central] {
			return fmt.Errorf("%w: %q for body %q", ErrUnknownCentral, b.Central, b.Name)
		}
	}
	return nil
}
