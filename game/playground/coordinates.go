package playground

import (
	"math"

	"github.com/gaorkl/simple-playgrounds-sub000/common/utils/vector"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Coordinates produce the pose an entity is placed at. Placement asks again
// after every failed attempt.
type Coordinates interface {
	Sample(src rand.Source) (vector.Vector2, float64)
}

// FixedCoordinates always return the same pose
type FixedCoordinates struct {
	Position vector.Vector2
	Angle    float64
}

func At(x, y, angle float64) FixedCoordinates {
	return FixedCoordinates{Position: vector.MakeVector2(x, y), Angle: angle}
}

func (c FixedCoordinates) Sample(src rand.Source) (vector.Vector2, float64) {
	return c.Position, c.Angle
}

func sampleAngle(src rand.Source, random bool, fixed float64) float64 {
	if !random {
		return fixed
	}

	return distuv.Uniform{Min: -math.Pi, Max: math.Pi, Src: src}.Rand()
}

// RectangleSampler draws uniformly in an axis aligned rectangle
type RectangleSampler struct {
	Center        vector.Vector2
	Width, Length float64
	RandomAngle   bool
	Angle         float64
}

func (s RectangleSampler) Sample(src rand.Source) (vector.Vector2, float64) {
	x := distuv.Uniform{Min: -s.Width / 2, Max: s.Width / 2, Src: src}.Rand()
	y := distuv.Uniform{Min: -s.Length / 2, Max: s.Length / 2, Src: src}.Rand()

	return s.Center.Add(vector.MakeVector2(x, y)), sampleAngle(src, s.RandomAngle, s.Angle)
}

// CircleSampler draws uniformly in a disk
type CircleSampler struct {
	Center      vector.Vector2
	Radius      float64
	RandomAngle bool
	Angle       float64
}

func (s CircleSampler) Sample(src rand.Source) (vector.Vector2, float64) {
	unit := distuv.Uniform{Min: 0, Max: 1, Src: src}
	r := s.Radius * math.Sqrt(unit.Rand())
	theta := 2 * math.Pi * unit.Rand()

	return s.Center.Add(vector.MakeVector2FromAngle(theta).Scale(r)), sampleAngle(src, s.RandomAngle, s.Angle)
}

// GaussianSampler draws around a center; a positive Radius truncates the draw
type GaussianSampler struct {
	Center      vector.Vector2
	Sigma       float64
	Radius      float64
	RandomAngle bool
	Angle       float64
}

func (s GaussianSampler) Sample(src rand.Source) (vector.Vector2, float64) {
	normal := distuv.Normal{Mu: 0, Sigma: s.Sigma, Src: src}

	offset := vector.MakeVector2(normal.Rand(), normal.Rand())
	if s.Radius > 0 {
		offset = offset.Limit(s.Radius)
	}

	return s.Center.Add(offset), sampleAngle(src, s.RandomAngle, s.Angle)
}
