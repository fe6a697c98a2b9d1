package config

import (
	"fmt"
	"slices"
	"time"

	"github.com/san-kum/orbsim/internal/astro"
)

// Preset is a built-in scenario. Its start is used when the caller passes
// the zero time.
type Preset struct {
	Description string
	Start       time.Time
	build       func(start time.Time) *Scenario
}

var (
	issEpoch = time.Date(2021, 10, 29, 12, 34, 51, 0, time.UTC)
	j2000    = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
)

var Presets = map[string]Preset{
	"earth-iss": {
		Description: "International Space Station around a fixed Earth",
		Start:       issEpoch,
		build:       earthISS,
	},
	"inner-planets": {
		Description: "Mercury, Venus, Earth and Mars around a fixed Sun",
		Start:       j2000,
		build:       innerPlanets,
	},
	"free-fall": {
		Description: "A rocket released just above low Earth orbit speed",
		Start:       j2000,
		build:       freeFall,
	},
}

// GetPreset returns a fresh copy of the named preset starting at start.
func GetPreset(name string, start time.Time) (*Scenario, error) {
	p, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScenario, name)
	}
	if start.IsZero() {
		start = p.Start
	}
	sc := p.build(start.UTC())
	sc.Name = name
	sc.Description = p.Description
	return sc, nil
}

// ListPresets returns the preset names in order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func earthISS(start time.Time) *Scenario {
	return &Scenario{
		Start:       Epoch{start},
		MinimumStep: time.Second,
		Duration:    93 * time.Minute,
		FrameStep:   time.Minute,
		Bodies: []BodyConfig{
			{Name: "earth", Kind: KindStatic, Mass: astro.EarthMass},
			{
				Name: "iss", Kind: KindCraft, Central: "earth",
				Elements: &ElementsConfig{
					Eccentricity:             0.0003938,
					SemiMajorAxis:            astro.EarthRadius + (417000+423000)/2,
					Inclination:              51.6444,
					LongitudeOfAscendingNode: 38.4733,
					ArgumentOfPeriapsis:      153.2242,
					MeanAnomalyAtEpoch:       27.0427,
					Epoch:                    Epoch{issEpoch},
					Degrees:                  true,
				},
			},
		},
	}
}

func innerPlanets(start time.Time) *Scenario {
	planet := func(name string, e, a, i, node, peri, m float64) BodyConfig {
		return BodyConfig{
			Name: name, Kind: KindCraft, Central: "sun",
			Elements: &ElementsConfig{
				Eccentricity:             e,
				SemiMajorAxis:            a,
				Inclination:              i,
				LongitudeOfAscendingNode: node,
				ArgumentOfPeriapsis:      peri,
				MeanAnomalyAtEpoch:       m,
				Epoch:                    Epoch{j2000},
				Degrees:                  true,
				AU:                       true,
			},
		}
	}
	return &Scenario{
		Start:       Epoch{start},
		MinimumStep: astro.Day,
		Duration:    687 * astro.Day,
		FrameStep:   astro.Day,
		Bodies: []BodyConfig{
			{Name: "sun", Kind: KindStatic, Mass: astro.SunMass},
			planet("mercury", 0.20563069, 0.38709893, 7.00487, 48.33167, 77.45645, 252.25084),
			planet("venus", 0.00677323, 0.72333199, 3.39471, 76.68069, 131.53298, 181.97973),
			planet("earth", 0.01671022, 1.00000011, 0.00005, -11.26064, 102.94719, 100.46435),
			planet("mars", 0.09341233, 1.52366231, 1.85061, 49.57854, 336.04084, 355.45332),
		},
	}
}

func freeFall(start time.Time) *Scenario {
	return &Scenario{
		Start:       Epoch{start},
		MinimumStep: time.Minute,
		Duration:    90 * time.Minute,
		FrameStep:   time.Minute,
		Bodies: []BodyConfig{
			{Name: "earth", Kind: KindStatic, Mass: astro.EarthMass},
			{
				Name: "rocket", Kind: KindCraft,
				Position:    [3]float64{6741000, 0, 0},
				Velocity:    [3]float64{0, 7777.7777, 0},
				MinimumStep: time.Second,
			},
		},
	}
}
