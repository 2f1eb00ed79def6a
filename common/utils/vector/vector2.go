package vector

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/gaorkl/simple-playgrounds-sub000/common/utils/number"
)

// Vector2 is a 2D value type. Angles follow the math orientation:
// counter-clockwise from the +x axis, in radians.
type Vector2 struct {
	x float64
	y float64
}

func MakeVector2(x float64, y float64) Vector2 {
	return Vector2{x, y}
}

// Returns a unit vector pointing at the given angle
func MakeVector2FromAngle(radians float64) Vector2 {
	return MakeVector2(math.Cos(radians), math.Sin(radians))
}

// Returns a null vector2
func MakeNullVector2() Vector2 {
	return MakeVector2(0, 0)
}

func (v Vector2) Get() (float64, float64) {
	return v.x, v.y
}

func (v Vector2) GetX() float64 {
	return v.x
}

func (v Vector2) GetY() float64 {
	return v.y
}

var floatformat = byte('f')

func (v Vector2) MarshalJSON() ([]byte, error) {
	b := []byte{'['}
	b = strconv.AppendFloat(b, v.x, floatformat, 4, 64)
	b = append(b, byte(','))
	b = strconv.AppendFloat(b, v.y, floatformat, 4, 64)
	return append(b, byte(']')), nil
}

func (v *Vector2) UnmarshalJSON(data []byte) error {
	var pair [2]float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}

	v.x, v.y = pair[0], pair[1]
	return nil
}

func (a Vector2) Add(b Vector2) Vector2 {
	a.x += b.x
	a.y += b.y
	return a
}

func (a Vector2) Sub(b Vector2) Vector2 {
	a.x -= b.x
	a.y -= b.y
	return a
}

func (a Vector2) Scale(scale float64) Vector2 {
	a.x *= scale
	a.y *= scale
	return a
}

func (a Vector2) Neg() Vector2 {
	return MakeVector2(-a.x, -a.y)
}

func (a Vector2) Mag() float64 {
	return math.Sqrt(a.MagSq())
}

func (a Vector2) MagSq() float64 {
	return (a.x*a.x + a.y*a.y)
}

func (a Vector2) Dist(b Vector2) float64 {
	return b.Sub(a).Mag()
}

func (a Vector2) DistSq(b Vector2) float64 {
	return b.Sub(a).MagSq()
}

func (a Vector2) SetMag(mag float64) Vector2 {
	return a.Normalize().Scale(mag)
}

func (a Vector2) Normalize() Vector2 {
	mag := a.Mag()
	if mag > 0 {
		return a.Scale(1 / mag)
	}
	return a
}

// Perp returns the vector rotated by +90°
func (a Vector2) Perp() Vector2 {
	return MakeVector2(-a.y, a.x)
}

// RPerp returns the vector rotated by -90°
func (a Vector2) RPerp() Vector2 {
	return MakeVector2(a.y, -a.x)
}

func (a Vector2) Rotate(radians float64) Vector2 {
	cos, sin := math.Cos(radians), math.Sin(radians)
	return MakeVector2(
		a.x*cos-a.y*sin,
		a.x*sin+a.y*cos,
	)
}

func (a Vector2) SetAngle(radians float64) Vector2 {
	mag := a.Mag()
	a.x = math.Cos(radians) * mag
	a.y = math.Sin(radians) * mag

	return a
}

func (a Vector2) Angle() float64 {
	if a.x == 0 && a.y == 0 {
		return 0
	}

	return math.Atan2(a.y, a.x)
}

func (a Vector2) Limit(max float64) Vector2 {
	if a.MagSq() > max*max {
		return a.Normalize().Scale(max)
	}

	return a
}

func (a Vector2) Lerp(b Vector2, t float64) Vector2 {
	return a.Add(b.Sub(a).Scale(t))
}

func (a Vector2) Cross(v Vector2) float64 {
	return a.x*v.y - a.y*v.x
}

func (a Vector2) Dot(v Vector2) float64 {
	return a.x*v.x + a.y*v.y
}

// CrossScalar returns w x a, the velocity of point a on a body spinning at w
func CrossScalar(w float64, a Vector2) Vector2 {
	return MakeVector2(-w*a.y, w*a.x)
}

func (a Vector2) IsNull() bool {
	return number.IsZero(a.x) && number.IsZero(a.y)
}

func (a Vector2) Equals(b Vector2) bool {
	return b.Sub(a).IsNull()
}

func (a Vector2) String() string {
	return "<Vector2(" + number.FloatToStr(a.x, 5) + ", " + number.FloatToStr(a.y, 5) + ")>"
}

func (a Vector2) ToFloatArray() [2]float64 {
	return [2]float64{a.x, a.y}
}

func Min(a, b Vector2) Vector2 {
	return MakeVector2(math.Min(a.x, b.x), math.Min(a.y, b.y))
}

func Max(a, b Vector2) Vector2 {
	return MakeVector2(math.Max(a.x, b.x), math.Max(a.y, b.y))
}
