package physics

import (
	"math"

	"github.com/gaorkl/simple-playgrounds-sub000/common/utils/vector"
	"github.com/jakecoffman/cp"
)

type BodyType uint8

const (
	StaticBody BodyType = iota
	KinematicBody
	DynamicBody
)

func (t BodyType) String() string {
	switch t {
	case StaticBody:
		return "static"
	case KinematicBody:
		return "kinematic"
	}

	return "dynamic"
}

type BodyDef struct {
	Type     BodyType
	Position vector.Vector2
	Angle    float64
	Mass     float64
	Inertia  float64
	UserData interface{}
}

type Body struct {
	space    *Space
	body     *cp.Body
	bodyType BodyType

	fixtures []*Fixture
	joints   []Joint

	userData  interface{}
	added     bool
	destroyed bool
}

func newBody(space *Space, def BodyDef) *Body {
	var body *cp.Body
	switch def.Type {
	case DynamicBody:
		mass, inertia := def.Mass, def.Inertia
		if mass <= 0 {
			mass = 1
		}
		if inertia <= 0 || math.IsInf(inertia, 0) {
			inertia = mass
		}
		body = cp.NewBody(mass, inertia)
	case KinematicBody:
		body = cp.NewKinematicBody()
	default:
		body = cp.NewStaticBody()
	}

	body.SetAngle(def.Angle)
	body.SetPosition(toVect(def.Position))

	return &Body{
		space:    space,
		body:     body,
		bodyType: def.Type,
		userData: def.UserData,
	}
}

func (b *Body) GetType() BodyType {
	return b.bodyType
}

func (b *Body) GetSpace() *Space {
	return b.space
}

func (b *Body) IsDestroyed() bool {
	return b.destroyed
}

func (b *Body) GetPosition() vector.Vector2 {
	return fromVect(b.body.Position())
}

func (b *Body) GetAngle() float64 {
	return b.body.Angle()
}

func (b *Body) GetTransform() Transform {
	return MakeTransform(b.GetPosition(), b.GetAngle())
}

// SetTransform teleports the body; queries see the new pose at once outside
// a step, after the step otherwise
func (b *Body) SetTransform(position vector.Vector2, angle float64) {
	b.body.SetAngle(angle)
	b.body.SetPosition(toVect(position))

	if b.destroyed {
		return
	}

	b.space.unlocked(func() {
		if b.added && !b.destroyed {
			b.space.space.ReindexShapesForBody(b.body)
		}
	})
}

func (b *Body) GetLinearVelocity() vector.Vector2 {
	return fromVect(b.body.Velocity())
}

func (b *Body) SetLinearVelocity(v vector.Vector2) {
	if b.bodyType == StaticBody {
		return
	}
	b.body.SetVelocityVector(toVect(v))
}

func (b *Body) GetAngularVelocity() float64 {
	return b.body.AngularVelocity()
}

func (b *Body) SetAngularVelocity(w float64) {
	if b.bodyType == StaticBody {
		return
	}
	b.body.SetAngularVelocity(w)
}

func (b *Body) GetMass() float64 {
	if b.bodyType != DynamicBody {
		return 0
	}
	return b.body.Mass()
}

func (b *Body) GetInertia() float64 {
	if b.bodyType != DynamicBody {
		return 0
	}
	return b.body.Moment()
}

// ApplyForce at a world point, accumulated until the end of the next step
func (b *Body) ApplyForce(force vector.Vector2, point vector.Vector2) {
	if b.bodyType != DynamicBody {
		return
	}
	b.body.ApplyForceAtWorldPoint(toVect(force), toVect(point))
}

func (b *Body) GetFixtures() []*Fixture {
	res := make([]*Fixture, len(b.fixtures))
	copy(res, b.fixtures)
	return res
}

func (b *Body) GetUserData() interface{} {
	return b.userData
}

func (b *Body) CreateFixture(def FixtureDef) *Fixture {
	filter := DefaultFilter
	if def.Filter != nil {
		filter = *def.Filter
	}

	skin := 0.0
	if def.Sensor {
		skin = b.space.sensorSkin
	}

	shape := def.Shape.attach(b.body, skin)
	shape.SetSensor(def.Sensor)
	shape.SetFilter(filter.shapeFilter())
	shape.SetCollisionType(cp.CollisionType(def.CollisionType))
	shape.SetFriction(def.Friction)
	shape.SetElasticity(def.Restitution)

	fixture := &Fixture{
		id:            b.space.nextFixtureID(),
		body:          b,
		shape:         def.Shape,
		cpShape:       shape,
		sensor:        def.Sensor,
		skin:          skin,
		filter:        filter,
		collisionType: def.CollisionType,
		userData:      def.UserData,
	}
	b.fixtures = append(b.fixtures, fixture)

	if !b.destroyed {
		b.space.fixtures[shape] = fixture
		b.space.unlocked(func() {
			if !b.destroyed {
				b.space.space.AddShape(shape)
				fixture.added = true
			}
		})
	}

	return fixture
}

func (b *Body) detachJoint(joint Joint) {
	for i, j := range b.joints {
		if j == joint {
			b.joints = append(b.joints[:i], b.joints[i+1:]...)
			return
		}
	}
}
