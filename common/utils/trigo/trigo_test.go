package trigo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvenlySpaced(t *testing.T) {
	assert.Equal(t, []float64{0}, EvenlySpaced(math.Pi, 1))
	assert.Nil(t, EvenlySpaced(math.Pi, 0))

	for _, n := range []int{2, 3, 5, 11, 64, 65} {
		angles := EvenlySpaced(math.Pi/3, n)
		assert.Len(t, angles, n)
		assert.Equal(t, -math.Pi/6, angles[0])
		assert.Equal(t, math.Pi/6, angles[n-1])

		for i := range angles {
			assert.Equal(t, -angles[n-1-i], angles[i])
		}

		if n%2 == 1 {
			assert.Equal(t, 0.0, angles[n/2])
		}
	}
}

func TestWrapAngle(t *testing.T) {
	assert.InDelta(t, -math.Pi/2, WrapAngle(3*math.Pi/2), 1e-9)
	assert.InDelta(t, math.Pi/2, WrapAngle(-3*math.Pi/2), 1e-9)
	assert.InDelta(t, 0.5, WrapAngle(0.5+4*math.Pi), 1e-9)
}
