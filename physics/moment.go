package physics

import (
	"math"

	"github.com/gaorkl/simple-playgrounds-sub000/common/utils/vector"
	"github.com/jakecoffman/cp"
)

// MomentForCircle of a hollow circle with inner radius r1 and outer radius r2
func MomentForCircle(mass, r1, r2 float64, offset vector.Vector2) float64 {
	return cp.MomentForCircle(mass, r1, r2, toVect(offset))
}

func MomentForBox(mass, width, length float64) float64 {
	return cp.MomentForBox(mass, width, length)
}

// MomentForPoly of a solid convex polygon around the body origin
func MomentForPoly(mass float64, verts []vector.Vector2, offset vector.Vector2) float64 {
	return cp.MomentForPoly(mass, len(verts), NewPolygonShape(verts).verts(), toVect(offset), 0)
}

func AreaForPoly(verts []vector.Vector2) float64 {
	return math.Abs(cp.AreaForPoly(len(verts), NewPolygonShape(verts).verts(), 0))
}

// MomentForShape dispatches on the shape kind
func MomentForShape(mass float64, shape Shape) float64 {
	switch s := shape.(type) {
	case *CircleShape:
		return MomentForCircle(mass, 0, s.Radius, s.Offset)
	case *PolygonShape:
		return MomentForPoly(mass, s.Vertices, vector.MakeNullVector2())
	}

	return mass
}
