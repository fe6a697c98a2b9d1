package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
	"gopkg.in/yaml.v3"
)

// Epoch is a point in time written either as an RFC 3339 timestamp or as
// a Julian date ("JD 2451545.0" or a bare number).
type Epoch struct {
	time.Time
}

func (e *Epoch) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("config: line %d: epoch must be a scalar", node.Line)
	}
	t, err := ParseEpoch(node.Value)
	if err != nil {
		return fmt.Errorf("config: line %d: %w", node.Line, err)
	}
	e.Time = t
	return nil
}

func (e Epoch) MarshalYAML() (any, error) {
	if e.IsZero() {
		return "", nil
	}
	return e.UTC().Format(time.RFC3339Nano), nil
}

// IsZero lets omitempty drop unset epochs.
func (e Epoch) IsZero() bool { return e.Time.IsZero() }

// JD returns the Julian date of e.
func (e Epoch) JD() float64 { return julian.TimeToJD(e.Time) }

func ParseEpoch(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if jd, ok := strings.CutPrefix(strings.ToUpper(s), "JD"); ok {
		return parseJD(strings.TrimSpace(jd))
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return parseJD(s)
	}
	return time.Time{}, fmt.Errorf("epoch %q is neither RFC 3339 nor a Julian date", s)
}

func parseJD(s string) (time.Time, error) {
	jd, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("julian date %q: %w", s, err)
	}
	return julian.JDToTime(jd).UTC().Round(time.Millisecond), nil
}
