package sensor

import (
	"image"
	"image/color"

	"github.com/gaorkl/simple-playgrounds-sub000/common/utils/vector"
	"github.com/gaorkl/simple-playgrounds-sub000/game/texture"
	"github.com/gaorkl/simple-playgrounds-sub000/physics"
)

type testEntity struct {
	name     string
	position vector.Vector2
	angle    float64
	velocity vector.Vector2
	radius   float64
	texture  texture.Texture
}

func (e *testEntity) Name() string {
	return e.name
}

func (e *testEntity) Position() vector.Vector2 {
	return e.position
}

func (e *testEntity) Angle() float64 {
	return e.angle
}

func (e *testEntity) Velocity() vector.Vector2 {
	return e.velocity
}

func (e *testEntity) AngularVelocity() float64 {
	return 0.5
}

func (e *testEntity) Radius() float64 {
	return e.radius
}

func (e *testEntity) Texture() texture.Texture {
	return e.texture
}

type testWorld struct {
	space   *physics.Space
	owners  map[*physics.Fixture]*testEntity
	tick    int
	size    vector.Vector2
	surface *image.RGBA
}

func newTestWorld() *testWorld {
	return &testWorld{
		space:  physics.NewSpace(),
		owners: make(map[*physics.Fixture]*testEntity),
		size:   vector.MakeVector2(200, 200),
	}
}

func (w *testWorld) add(name string, x, y float64, shape physics.Shape, sensor bool, c color.RGBA) *testEntity {
	e := &testEntity{
		name:     name,
		position: vector.MakeVector2(x, y),
		radius:   shape.BoundingRadius(),
		texture:  texture.Uniform{Color: c},
	}

	body := w.space.CreateBody(physics.BodyDef{Type: physics.StaticBody, Position: e.position})
	f := body.CreateFixture(physics.FixtureDef{Shape: shape, Sensor: sensor})
	w.owners[f] = e

	return e
}

func (w *testWorld) SegmentQueryFirst(start, end vector.Vector2, radius float64, filter physics.QueryFilter) (physics.SegmentHit, bool) {
	return w.space.SegmentQueryFirst(start, end, radius, filter)
}

func (w *testWorld) PointQuery(center vector.Vector2, radius float64, filter physics.QueryFilter) []physics.PointHit {
	return w.space.PointQuery(center, radius, filter)
}

func (w *testWorld) VisibleEntity(f *physics.Fixture) Entity {
	if e, ok := w.owners[f]; ok {
		return e
	}

	return nil
}

func (w *testWorld) Tick() int {
	return w.tick
}

func (w *testWorld) Size() vector.Vector2 {
	return w.size
}

func (w *testWorld) Surface() *image.RGBA {
	return w.surface
}
