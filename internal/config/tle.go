package config

import (
	"fmt"
	"strings"
	"time"

	satellite "github.com/joshuaferrara/go-satellite"
)

const tleLineLength = 69

// tleState propagates a two-line element set to t with SGP4 and returns
// the state relative to the Earth's centre in metres and metres per
// second. SGP4 output is in the TEME frame, which is used as-is.
func tleState(tle TLEConfig, t time.Time) (pos, vel [3]float64, err error) {
	l1, l2 := strings.TrimSpace(tle.Line1), strings.TrimSpace(tle.Line2)
	if len(l1) != tleLineLength || len(l2) != tleLineLength || !strings.HasPrefix(l1, "1 ") || !strings.HasPrefix(l2, "2 ") {
		return pos, vel, fmt.Errorf("%w: malformed two-line element set", ErrInvalidBody)
	}

	// TLEToSat panics on unparsable fields.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: two-line element set: %v", ErrInvalidBody, r)
		}
	}()
	sat := satellite.TLEToSat(l1, l2, satellite.GravityWGS72)

	t = t.UTC()
	p, v := satellite.Propagate(sat, t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second())
	if sat.Error != 0 {
		return pos, vel, fmt.Errorf("%w: sgp4: %s", ErrInvalidBody, sat.ErrorStr)
	}

	// go-satellite works in kilometres.
	pos = [3]float64{p.X * 1000, p.Y * 1000, p.Z * 1000}
	vel = [3]float64{v.X * 1000, v.Y * 1000, v.Z * 1000}
	return pos, vel, nil
}
