// Package astro holds the physical constants and reference bodies shared by
// the example scenarios.
package astro

import "time"

const (
	// G is the Newtonian gravitational constant in m³ kg⁻¹ s⁻².
	G = 6.674e-11

	EarthMass   = 5.972e24 // kg
	EarthRadius = 6.371e6  // m
	SunMass     = 1.989e30 // kg

	// MetresPerAU is the rounded astronomical unit used by the planet presets.
	MetresPerAU = 1.496e11

	EarthMu = G * EarthMass
	SunMu   = G * SunMass

	Day = 24 * time.Hour
)

// Mu returns the standard gravitational parameter for a mass in kg.
func Mu(mass float64) float64 {
	return G * mass
}
