package main

import (
	"testing"
	"time"

	. "github.com/onsi/gomega"
)

func TestSampleOffset(t *testing.T) {
	g := NewWithT(t)
	g.Expect(sampleOffset(time.Hour, 0, 4)).To(Equal(time.Duration(0)))
	g.Expect(sampleOffset(time.Hour, 1, 4)).To(Equal(15 * time.Minute))

	// About 165 years, the period of a body at 30 AU.
	period := time.Duration(5.2e9 * float64(time.Second))
	const n = 1000
	prev := time.Duration(0)
	for k := 1; k < n; k++ {
		dt := sampleOffset(period, k, n)
		if dt <= prev {
			t.Fatalf("offset %d went backwards: %v after %v", k, dt, prev)
		}
		prev = dt
	}
	want := period.Seconds() * (n - 1) / n
	g.Expect(prev.Seconds()).To(BeNumerically("~", want, want*1e-9))
}
