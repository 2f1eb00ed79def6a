package playground

import (
	"math"

	"github.com/gaorkl/simple-playgrounds-sub000/physics"
	"github.com/pkg/errors"
)

type ShapeKind string

const (
	ShapeCircle    ShapeKind = "circle"
	ShapeRectangle ShapeKind = "rectangle"
	ShapeSquare    ShapeKind = "square"
	ShapeTriangle  ShapeKind = "triangle"
	ShapePentagon  ShapeKind = "pentagon"
	ShapeHexagon   ShapeKind = "hexagon"
)

var polygonSides = map[ShapeKind]int{
	ShapeSquare:   4,
	ShapeTriangle: 3,
	ShapePentagon: 5,
	ShapeHexagon:  6,
}

// Geometry is the visible outline of an entity. Circles and regular polygons
// have a radius, rectangles a width (along the heading) and a length.
type Geometry struct {
	Shape  ShapeKind
	Radius float64
	Width  float64
	Length float64
}

// MakeGeometry checks that exactly one of radius or size fits the shape
func MakeGeometry(shape ShapeKind, radius float64, size []float64) (Geometry, error) {
	hasRadius := radius > 0
	hasSize := len(size) > 0

	if hasRadius == hasSize {
		return Geometry{}, errors.Wrapf(ErrInvalidGeometry, "%s needs exactly one of radius or size", shape)
	}

	switch shape {
	case ShapeRectangle:
		if !hasSize || len(size) != 2 || size[0] <= 0 || size[1] <= 0 {
			return Geometry{}, errors.Wrapf(ErrInvalidGeometry, "rectangle needs a positive [width, length], got %v", size)
		}
		return Geometry{Shape: shape, Width: size[0], Length: size[1]}, nil
	case ShapeCircle, ShapeSquare, ShapeTriangle, ShapePentagon, ShapeHexagon:
		if !hasRadius {
			return Geometry{}, errors.Wrapf(ErrInvalidGeometry, "%s needs a radius", shape)
		}
		return Geometry{Shape: shape, Radius: radius}, nil
	}

	return Geometry{}, errors.Wrapf(ErrInvalidGeometry, "unknown shape %q", shape)
}

// BoundingRadius is the radius of the circle enclosing the outline
func (g Geometry) BoundingRadius() float64 {
	if g.Shape == ShapeRectangle {
		return math.Hypot(g.Width, g.Length) / 2
	}

	return g.Radius
}

// physicsShape builds the outline grown by margin on every side
func (g Geometry) physicsShape(margin float64) physics.Shape {
	switch g.Shape {
	case ShapeCircle:
		return physics.NewCircleShape(g.Radius + margin)
	case ShapeRectangle:
		return physics.NewBoxShape(g.Width+2*margin, g.Length+2*margin)
	}

	sides := polygonSides[g.Shape]
	offset := 0.0
	if sides == 4 {
		offset = math.Pi / 4
	}

	// the apothem grows by margin
	radius := g.Radius + margin/math.Cos(math.Pi/float64(sides))
	return physics.NewRegularPolygonShape(sides, radius, offset)
}

func (g Geometry) moment(mass float64) float64 {
	return physics.MomentForShape(mass, g.physicsShape(0))
}

// scaled returns the geometry shrunk or grown by ratio
func (g Geometry) scaled(ratio float64) Geometry {
	g.Radius *= ratio
	g.Width *= ratio
	g.Length *= ratio
	return g
}
