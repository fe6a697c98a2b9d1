package metrics

import (
	"math"
	"time"

	"github.com/san-kum/orbsim/internal/body"
)

// OrbitalEnergy averages the specific orbital energy of subject relative
// to central over all samples.
type OrbitalEnergy struct {
	name        string
	pair        pair
	samples     int
	totalEnergy float64
}

func NewOrbitalEnergy(subject body.Gravitatee, central body.Gravitator) *OrbitalEnergy {
	return &OrbitalEnergy{
		name: "orbital_energy",
		pair: pair{subject: subject, central: central},
	}
}

func (e *OrbitalEnergy) Name() string { return e.name }

func (e *OrbitalEnergy) Observe(t time.Time) {
	e.totalEnergy += e.pair.specificEnergy()
	e.samples++
}

func (e *OrbitalEnergy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *OrbitalEnergy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
}

// EnergyDrift tracks the largest relative change in specific orbital
// energy since the first sample.
type EnergyDrift struct {
	name          string
	pair          pair
	initialEnergy float64
	currentEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift(subject body.Gravitatee, central body.Gravitator) *EnergyDrift {
	return &EnergyDrift{
		name: "energy_drift",
		pair: pair{subject: subject, central: central},
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(t time.Time) {
	energy := e.pair.specificEnergy()
	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.currentEnergy = energy
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.currentEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}
