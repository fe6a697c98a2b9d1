package main

import (
	"fmt"
	"math"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/orbsim/internal/astro"
	"github.com/san-kum/orbsim/internal/body"
	"github.com/san-kum/orbsim/internal/orbit"
	"github.com/san-kum/orbsim/internal/position"
)

func sampleElements(cmd *cobra.Command, args []string) error {
	epoch := time.Now().UTC().Truncate(time.Second)
	deg := math.Pi / 180
	o, err := orbit.New(orbit.Elements{
		Eccentricity:             eccentricity,
		SemiMajorAxis:            semiMajor,
		Inclination:              inclination * deg,
		LongitudeOfAscendingNode: node * deg,
		ArgumentOfPeriapsis:      periapsis * deg,
		MeanAnomalyAtEpoch:       meanAnomaly * deg,
		Epoch:                    epoch,
	})
	if err != nil {
		return err
	}
	if samples < 1 {
		samples = 1
	}

	center := body.NewStaticPlanet("central", epoch, position.FromXYZ(0, 0, 0), centralMass)
	mu := center.Mu()
	period := o.Period(mu)

	fmt.Println(title.Render(o.String()))
	printField("mu", fmt.Sprintf("%.6g m^3/s^2", mu))
	printField("period", period.Round(time.Second).String())
	if centralMass == astro.EarthMass {
		printField("perigee alt", fmt.Sprintf("%.1f km", (semiMajor*(1-eccentricity)-astro.EarthRadius)/1000))
	}
	fmt.Println()

	for k := range samples {
		dt := sampleOffset(period, k, samples)
		pos, vel, err := o.StateAt(center, epoch.Add(dt))
		if err != nil {
			return err
		}
		r := pos.Norm()
		energy := orbit.SpecificEnergy(r, float64(vel.Len()), mu)
		printField(fmt.Sprintf("t+%v", dt.Round(time.Second)),
			fmt.Sprintf("r=%s |r|=%.1f km v=%.3f km/s E=%.4g J/kg", pos, r/1000, vel.Len()/1000, energy))
	}
	return nil
}

func norm(x, y, z float64) float64 {
	return math.Sqrt(x*x + y*y + z*z)
}

// sampleOffset is the k-th of n evenly spaced offsets across period,
// computed in float seconds so long periods do not overflow.
func sampleOffset(period time.Duration, k, n int) time.Duration {
	return time.Duration(period.Seconds() * float64(k) / float64(n) * float64(time.Second))
}
