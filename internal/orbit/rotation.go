package orbit

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// rx turns a vector by x about the first axis.
func rx(x float64) *mat.Dense {
	s, c := math.Sincos(x)
	return mat.NewDense(3, 3, []float64{1, 0, 0, 0, c, -s, 0, s, c})
}

// rz turns a vector by x about the third axis.
func rz(x float64) *mat.Dense {
	s, c := math.Sincos(x)
	return mat.NewDense(3, 3, []float64{c, -s, 0, s, c, 0, 0, 0, 1})
}

// perifocalToInertial composes Rz(−Ω)·Rx(−i)·Rz(−ω): a vector is first
// turned by −ω about z, then −i about x, then −Ω about z.
func perifocalToInertial(inclination, node, periapsis float64) *mat.Dense {
	var tmp, rot mat.Dense
	tmp.Mul(rz(-node), rx(-inclination))
	rot.Mul(&tmp, rz(-periapsis))
	return &rot
}

func rotate(m mat.Matrix, x, y, z float64) (float64, float64, float64) {
	var out mat.VecDense
	out.MulVec(m, mat.NewVecDense(3, []float64{x, y, z}))
	return out.AtVec(0), out.AtVec(1), out.AtVec(2)
}
