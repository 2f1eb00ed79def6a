package physics

import (
	"math"

	"github.com/gaorkl/simple-playgrounds-sub000/common/utils/vector"
	"github.com/jakecoffman/cp"
)

func toVect(v vector.Vector2) cp.Vector {
	x, y := v.Get()
	return cp.Vector{X: x, Y: y}
}

func fromVect(v cp.Vector) vector.Vector2 {
	return vector.MakeVector2(v.X, v.Y)
}

// Transform places a shape in world space
type Transform struct {
	Position vector.Vector2
	Angle    float64
}

func MakeTransform(position vector.Vector2, angle float64) Transform {
	return Transform{Position: position, Angle: angle}
}

func (xf Transform) Apply(local vector.Vector2) vector.Vector2 {
	return xf.Position.Add(local.Rotate(xf.Angle))
}

func (xf Transform) ApplyInverse(world vector.Vector2) vector.Vector2 {
	return world.Sub(xf.Position).Rotate(-xf.Angle)
}

type AABB struct {
	Lower vector.Vector2
	Upper vector.Vector2
}

func makeAABB(bb cp.BB) AABB {
	return AABB{
		Lower: vector.MakeVector2(bb.L, bb.B),
		Upper: vector.MakeVector2(bb.R, bb.T),
	}
}

func (bb AABB) toBB() cp.BB {
	return cp.BB{L: bb.Lower.GetX(), B: bb.Lower.GetY(), R: bb.Upper.GetX(), T: bb.Upper.GetY()}
}

// Shape is the outline of a fixture in body coordinates
type Shape interface {
	BoundingRadius() float64

	// attach builds the collision shape on body, grown by skin on every side
	attach(body *cp.Body, skin float64) *cp.Shape
}

///////////////////////////////////////////////////////////////////////////////
// Circle
///////////////////////////////////////////////////////////////////////////////

type CircleShape struct {
	Offset vector.Vector2
	Radius float64
}

func NewCircleShape(radius float64) *CircleShape {
	return &CircleShape{Radius: radius}
}

func (c *CircleShape) BoundingRadius() float64 {
	return c.Offset.Mag() + c.Radius
}

func (c *CircleShape) attach(body *cp.Body, skin float64) *cp.Shape {
	return cp.NewCircle(body, c.Radius+skin, toVect(c.Offset))
}

///////////////////////////////////////////////////////////////////////////////
// Convex polygon
///////////////////////////////////////////////////////////////////////////////

type PolygonShape struct {
	Vertices []vector.Vector2
	radius   float64
}

func NewPolygonShape(vertices []vector.Vector2) *PolygonShape {
	verts := make([]vector.Vector2, len(vertices))
	copy(verts, vertices)

	radius := 0.0
	for _, v := range verts {
		radius = math.Max(radius, v.Mag())
	}

	return &PolygonShape{Vertices: verts, radius: radius}
}

// NewBoxShape builds a rectangle centered on the body origin; width runs along x
func NewBoxShape(width, length float64) *PolygonShape {
	hw, hl := width/2, length/2
	return NewPolygonShape([]vector.Vector2{
		vector.MakeVector2(-hw, -hl),
		vector.MakeVector2(hw, -hl),
		vector.MakeVector2(hw, hl),
		vector.MakeVector2(-hw, hl),
	})
}

// NewRegularPolygonShape builds a polygon inscribed in a circle of the given radius
func NewRegularPolygonShape(sides int, radius float64, offsetAngle float64) *PolygonShape {
	verts := make([]vector.Vector2, sides)
	for i := 0; i < sides; i++ {
		angle := offsetAngle + 2*math.Pi*float64(i)/float64(sides)
		verts[i] = vector.MakeVector2FromAngle(angle).Scale(radius)
	}

	return NewPolygonShape(verts)
}

func (p *PolygonShape) BoundingRadius() float64 {
	return p.radius
}

func (p *PolygonShape) verts() []cp.Vector {
	res := make([]cp.Vector, len(p.Vertices))
	for i, v := range p.Vertices {
		res[i] = toVect(v)
	}

	return res
}

// attach rounds the corners by skin: the hull is kept and swept by a disc
func (p *PolygonShape) attach(body *cp.Body, skin float64) *cp.Shape {
	verts := p.verts()
	return cp.NewPolyShape(body, len(verts), verts, cp.NewTransformIdentity(), skin)
}
