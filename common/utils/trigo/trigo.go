package trigo

import (
	"math"
)

// WrapAngle brings an angle in ]-pi, pi]
func WrapAngle(rad float64) float64 {
	rad = math.Mod(rad, 2*math.Pi)
	if rad > math.Pi {
		rad -= math.Pi * 2
	} else if rad <= -math.Pi {
		rad += math.Pi * 2
	}

	return rad
}

// EvenlySpaced returns n values spanning [-span/2, span/2]; a single value is 0
func EvenlySpaced(span float64, n int) []float64 {
	if n <= 0 {
		return nil
	}

	if n == 1 {
		return []float64{0}
	}

	res := make([]float64, n)
	step := span / float64(n-1)
	for i := 0; i < n/2; i++ {
		res[i] = float64(i)*step - span/2
		res[n-1-i] = -res[i]
	}

	return res
}
