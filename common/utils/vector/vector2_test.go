package vector

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAngle(t *testing.T) {
	assert.InDelta(t, 0, MakeVector2(1, 0).Angle(), 1e-9)
	assert.InDelta(t, math.Pi/2, MakeVector2(0, 1).Angle(), 1e-9)
	assert.InDelta(t, -3*math.Pi/4, MakeVector2(-1, -1).Angle(), 1e-9)
	assert.Equal(t, 0.0, MakeNullVector2().Angle())
}

func TestRotate(t *testing.T) {
	v := MakeVector2(2, 0).Rotate(math.Pi / 2)
	assert.True(t, v.Equals(MakeVector2(0, 2)), v.String())

	back := v.Rotate(-math.Pi / 2)
	assert.True(t, back.Equals(MakeVector2(2, 0)), back.String())
}

func TestSetAngleKeepsMagnitude(t *testing.T) {
	v := MakeVector2(3, 4).SetAngle(math.Pi)
	assert.InDelta(t, 5, v.Mag(), 1e-9)
	assert.True(t, v.Equals(MakeVector2(-5, 0)), v.String())
}

func TestCrossScalar(t *testing.T) {
	// spinning counter-clockwise, a point on +x moves toward +y
	v := CrossScalar(2, MakeVector2(1, 0))
	assert.True(t, v.Equals(MakeVector2(0, 2)), v.String())
}

func TestJSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(MakeVector2(1.5, -2))
	assert.Nil(t, err)
	assert.Equal(t, "[1.5000,-2.0000]", string(data))

	var v Vector2
	assert.Nil(t, json.Unmarshal(data, &v))
	assert.True(t, v.Equals(MakeVector2(1.5, -2)))
}
