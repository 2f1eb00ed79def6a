package playground

import (
	"github.com/bytearena/ecs"
	"github.com/gaorkl/simple-playgrounds-sub000/common/utils/vector"
	"github.com/gaorkl/simple-playgrounds-sub000/game/texture"
	"github.com/gaorkl/simple-playgrounds-sub000/physics"
	"github.com/pkg/errors"
)

const (
	defaultGraspRange = 2.0
	defaultFriction   = 0.5
)

// EntityConfig holds the keys shared by elements and parts
type EntityConfig struct {
	Name             string         `yaml:"name"`
	PhysicalShape    ShapeKind      `yaml:"physical_shape"`
	Radius           float64        `yaml:"radius"`
	Size             []float64      `yaml:"size"`
	Mass             float64        `yaml:"mass"`
	Movable          bool           `yaml:"movable"`
	Graspable        bool           `yaml:"graspable"`
	Traversable      bool           `yaml:"traversable"`
	Background       bool           `yaml:"background"`
	Temporary        bool           `yaml:"temporary"`
	InteractionRange float64        `yaml:"interaction_range"`
	GraspRange       float64        `yaml:"grasp_range"`
	Texture          texture.Config `yaml:"texture"`
}

// Entity is a physical object of the playground: one body and up to four
// fixtures (visible, interaction, grasp, device)
type Entity struct {
	name       string
	id         ecs.EntityID
	playground *Playground
	owner      interface{}

	geometry         Geometry
	mass             float64
	movable          bool
	graspable        bool
	traversable      bool
	background       bool
	temporary        bool
	interactionRange float64
	graspRange       float64
	texture          texture.Texture

	// visibleCategory tags the visible fixture, category the interaction one
	visibleCategory Category
	category        Category
	hasDevice       bool
	group           uint32

	body        *physics.Body
	visible     *physics.Fixture
	interaction *physics.Fixture
	grasp       *physics.Fixture
	device      *physics.Fixture

	trajectory      *Trajectory
	initialPosition vector.Vector2
	initialAngle    float64
	placed          bool

	// reshaped is set when the geometry no longer matches the fixtures
	reshaped bool
	mask     *drawMask
}

func newEntity(cfg EntityConfig, category Category) (*Entity, error) {
	geometry, err := MakeGeometry(cfg.PhysicalShape, cfg.Radius, cfg.Size)
	if err != nil {
		return nil, err
	}

	if cfg.Movable && cfg.Mass <= 0 {
		return nil, errors.Wrapf(ErrInvalidConfig, "movable entity %q needs a positive mass", cfg.Name)
	}

	if cfg.InteractionRange < 0 || cfg.GraspRange < 0 {
		return nil, errors.Wrapf(ErrInvalidConfig, "negative interaction range for %q", cfg.Name)
	}

	tex, err := texture.FromConfig(cfg.Texture)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidConfig, "%q: %s", cfg.Name, err)
	}

	graspRange := cfg.GraspRange
	if graspRange == 0 {
		graspRange = defaultGraspRange
	}

	mass := 0.0
	if cfg.Movable {
		mass = cfg.Mass
	}

	return &Entity{
		name:             cfg.Name,
		geometry:         geometry,
		mass:             mass,
		movable:          cfg.Movable,
		graspable:        cfg.Graspable,
		traversable:      cfg.Traversable,
		background:       cfg.Background,
		temporary:        cfg.Temporary,
		interactionRange: cfg.InteractionRange,
		graspRange:       graspRange,
		texture:          tex,
		category:         category,
	}, nil
}

func (e *Entity) Name() string {
	return e.name
}

// ID is assigned by the playground the entity is added to; 0 before that
func (e *Entity) ID() ecs.EntityID {
	return e.id
}

func (e *Entity) Playground() *Playground {
	return e.playground
}

func (e *Entity) Geometry() Geometry {
	return e.geometry
}

func (e *Entity) setGeometry(g Geometry) {
	if g != e.geometry {
		e.geometry = g
		e.reshaped = true
	}
}

func (e *Entity) Radius() float64 {
	return e.geometry.BoundingRadius()
}

func (e *Entity) Mass() float64 {
	return e.mass
}

func (e *Entity) Texture() texture.Texture {
	return e.texture
}

func (e *Entity) Category() Category {
	return e.category
}

func (e *Entity) InteractionRange() float64 {
	return e.interactionRange
}

func (e *Entity) IsMovable() bool {
	return e.movable
}

func (e *Entity) IsGraspable() bool {
	return e.graspable
}

func (e *Entity) IsTraversable() bool {
	return e.traversable
}

func (e *Entity) IsBackground() bool {
	return e.background
}

func (e *Entity) IsTemporary() bool {
	return e.temporary
}

func (e *Entity) SetTemporary(temporary bool) {
	e.temporary = temporary
}

// InWorld reports whether the entity body is registered in a space
func (e *Entity) InWorld() bool {
	return e.body != nil && !e.body.IsDestroyed()
}

func (e *Entity) Body() *physics.Body {
	return e.body
}

func (e *Entity) VisibleFixture() *physics.Fixture {
	return e.visible
}

func (e *Entity) InteractionFixture() *physics.Fixture {
	return e.interaction
}

func (e *Entity) GraspFixture() *physics.Fixture {
	return e.grasp
}

func (e *Entity) Trajectory() *Trajectory {
	return e.trajectory
}

// Position is the last known one when the entity is out of the world
func (e *Entity) Position() vector.Vector2 {
	if e.body == nil {
		return e.initialPosition
	}

	return e.body.GetPosition()
}

func (e *Entity) Angle() float64 {
	if e.body == nil {
		return e.initialAngle
	}

	return e.body.GetAngle()
}

func (e *Entity) Velocity() vector.Vector2 {
	if e.body == nil {
		return vector.MakeNullVector2()
	}

	return e.body.GetLinearVelocity()
}

func (e *Entity) AngularVelocity() float64 {
	if e.body == nil {
		return 0
	}

	return e.body.GetAngularVelocity()
}

func (e *Entity) InitialPosition() vector.Vector2 {
	return e.initialPosition
}

func (e *Entity) InitialAngle() float64 {
	return e.initialAngle
}

func (e *Entity) SetPose(position vector.Vector2, angle float64) {
	if e.body == nil {
		e.initialPosition, e.initialAngle = position, angle
		return
	}

	e.body.SetTransform(position, angle)
}

func (e *Entity) SetVelocity(velocity vector.Vector2) {
	if e.body != nil {
		e.body.SetLinearVelocity(velocity)
	}
}

func (e *Entity) SetAngularVelocity(w float64) {
	if e.body != nil {
		e.body.SetAngularVelocity(w)
	}
}

// PreStep moves entities that follow a trajectory
func (e *Entity) PreStep() {
	if e.trajectory == nil || !e.InWorld() {
		return
	}

	e.body.SetTransform(e.trajectory.Next(), e.body.GetAngle())
}

// Reset puts the entity back at its first placement, at rest
func (e *Entity) Reset() {
	if e.trajectory != nil {
		e.trajectory.Reset()
		e.initialPosition = e.trajectory.Current()
	}

	if !e.InWorld() {
		return
	}

	e.body.SetTransform(e.initialPosition, e.initialAngle)
	e.body.SetLinearVelocity(vector.MakeNullVector2())
	e.body.SetAngularVelocity(0)
}

///////////////////////////////////////////////////////////////////////////////
// physics registration
///////////////////////////////////////////////////////////////////////////////

func (e *Entity) bodyType() physics.BodyType {
	switch {
	case e.movable:
		return physics.DynamicBody
	case e.trajectory != nil:
		return physics.KinematicBody
	}

	return physics.StaticBody
}

// build registers the body and fixtures in space at the given pose,
// replacing a body still registered from an earlier build
func (e *Entity) build(space *physics.Space, position vector.Vector2, angle float64) {
	e.destroy()

	def := physics.BodyDef{
		Type:     e.bodyType(),
		Position: position,
		Angle:    angle,
		UserData: e,
	}
	if def.Type == physics.DynamicBody {
		def.Mass = e.mass
		def.Inertia = e.geometry.moment(e.mass)
	}

	e.body = space.CreateBody(def)

	filter := physics.DefaultFilter
	filter.Group = e.group

	e.visible = e.body.CreateFixture(physics.FixtureDef{
		Shape:         e.geometry.physicsShape(0),
		Sensor:        e.traversable,
		Filter:        &filter,
		CollisionType: e.visibleCategory.collisionType(),
		Friction:      defaultFriction,
		UserData:      &fixtureData{entity: e, role: roleVisible},
	})

	e.interaction = nil
	if e.category != CategoryNone {
		e.interaction = e.body.CreateFixture(physics.FixtureDef{
			Shape:         e.geometry.physicsShape(e.interactionRange),
			Sensor:        true,
			Filter:        &filter,
			CollisionType: e.category.collisionType(),
			UserData:      &fixtureData{entity: e, role: roleInteraction},
		})
	}

	e.grasp = nil
	if e.graspable {
		e.grasp = e.body.CreateFixture(physics.FixtureDef{
			Shape:         e.geometry.physicsShape(e.graspRange),
			Sensor:        true,
			Filter:        &filter,
			CollisionType: CategoryGraspable.collisionType(),
			UserData:      &fixtureData{entity: e, role: roleGrasp},
		})
	}

	e.device = nil
	if e.hasDevice {
		e.device = e.body.CreateFixture(physics.FixtureDef{
			Shape:         e.geometry.physicsShape(0),
			Sensor:        true,
			Filter:        &filter,
			CollisionType: CategoryDevice.collisionType(),
			UserData:      &fixtureData{entity: e, role: roleDevice},
		})
	}

	e.reshaped = false
	e.mask = nil
}

// destroy deregisters the body; the last pose stays readable
func (e *Entity) destroy() {
	if e.body == nil || e.body.IsDestroyed() {
		return
	}

	e.body.GetSpace().DestroyBody(e.body)
}

func (e *Entity) fixtures() []*physics.Fixture {
	res := make([]*physics.Fixture, 0, 4)
	for _, f := range []*physics.Fixture{e.visible, e.interaction, e.grasp, e.device} {
		if f != nil {
			res = append(res, f)
		}
	}

	return res
}
