package physics

import (
	"github.com/gaorkl/simple-playgrounds-sub000/common/utils/vector"
	"github.com/jakecoffman/cp"
)

// CollisionType keys the pre-solve handlers of a space
type CollisionType uint32

// Filter decides which fixtures generate contacts; bodies sharing a non-zero
// group never collide
type Filter struct {
	Category uint32
	Mask     uint32
	Group    uint32
}

var DefaultFilter = Filter{Category: 1, Mask: 0xFFFFFFFF}

func (f Filter) shapeFilter() cp.ShapeFilter {
	return cp.ShapeFilter{
		Group:      uint(f.Group),
		Categories: uint(f.Category),
		Mask:       uint(f.Mask),
	}
}

type FixtureDef struct {
	Shape         Shape
	Sensor        bool
	Filter        *Filter
	CollisionType CollisionType
	Friction      float64
	Restitution   float64
	UserData      interface{}
}

// Fixture attaches a shape to a body. Sensor fixtures are grown by the space
// sensor skin so that shapes resting against them still report a touch; the
// geometry they expose to callers is the ungrown one.
type Fixture struct {
	id            uint64
	body          *Body
	shape         Shape
	cpShape       *cp.Shape
	sensor        bool
	skin          float64
	filter        Filter
	collisionType CollisionType
	userData      interface{}
	added         bool
}

func (f *Fixture) ID() uint64 {
	return f.id
}

func (f *Fixture) GetBody() *Body {
	return f.body
}

func (f *Fixture) GetShape() Shape {
	return f.shape
}

func (f *Fixture) IsSensor() bool {
	return f.sensor
}

func (f *Fixture) GetFilter() Filter {
	return f.filter
}

func (f *Fixture) GetCollisionType() CollisionType {
	return f.collisionType
}

func (f *Fixture) GetUserData() interface{} {
	return f.userData
}

// GetAABB of the shape at the current body pose
func (f *Fixture) GetAABB() AABB {
	bb := f.cpShape.CacheBB()
	if f.skin > 0 {
		bb = cp.BB{L: bb.L + f.skin, B: bb.B + f.skin, R: bb.R - f.skin, T: bb.T - f.skin}
	}

	return makeAABB(bb)
}

// NearestPoint returns the closest point of the surface and the signed
// distance to it, negative when p lies inside
func (f *Fixture) NearestPoint(p vector.Vector2) (vector.Vector2, float64) {
	info := f.cpShape.PointQuery(toVect(p))
	if f.skin == 0 {
		return fromVect(info.Point), info.Distance
	}

	point := info.Point.Sub(info.Gradient.Mult(f.skin))
	return fromVect(point), info.Distance + f.skin
}
