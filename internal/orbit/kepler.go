package orbit

import "math"

// KeplerIterations is the Newton–Raphson iteration count used by every
// element conversion.
const KeplerIterations = 20

// SolveKepler returns the eccentric anomaly E satisfying E − e·sin E = M.
//
// It runs a fixed number of Newton–Raphson iterations seeded at E₀ = M with
// no convergence test. Twenty iterations leave residuals below 1e-6 for
// e ≤ 0.9; above that the seed can sit on the flat part of f and the
// residual degrades. M is not reduced modulo 2π.
func SolveKepler(meanAnomaly, eccentricity float64, iterations int) float64 {
	E := meanAnomaly
	for i := 0; i < iterations; i++ {
		f := E - eccentricity*math.Sin(E) - meanAnomaly
		fPrime := 1 - eccentricity*math.Cos(E)
		E -= f / fPrime
	}
	return E
}

// KeplerResidual is |E − e·sin E − M|.
func KeplerResidual(eccentricAnomaly, eccentricity, meanAnomaly float64) float64 {
	return math.Abs(eccentricAnomaly - eccentricity*math.Sin(eccentricAnomaly) - meanAnomaly)
}

// TrueAnomaly converts an eccentric anomaly to the true anomaly.
func TrueAnomaly(eccentricAnomaly, eccentricity float64) float64 {
	sinHalf, cosHalf := math.Sincos(eccentricAnomaly / 2)
	return 2 * math.Atan2(math.Sqrt(1+eccentricity)*sinHalf, math.Sqrt(1-eccentricity)*cosHalf)
}
