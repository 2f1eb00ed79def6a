package playground

import (
	"github.com/gaorkl/simple-playgrounds-sub000/common/utils/number"
	"github.com/gaorkl/simple-playgrounds-sub000/common/utils/vector"
	"github.com/gaorkl/simple-playgrounds-sub000/game/config"
	"github.com/gaorkl/simple-playgrounds-sub000/physics"
	"github.com/pkg/errors"
)

type PartKind string

const (
	KindFixedBase           PartKind = "fixed_base"
	KindForwardBase         PartKind = "forward_base"
	KindForwardBackwardBase PartKind = "forward_backward_base"
	KindHolonomicBase       PartKind = "holonomic_base"
	KindHead                PartKind = "head"
	KindEye                 PartKind = "eye"
	KindArm                 PartKind = "arm"
	KindHand                PartKind = "hand"
)

// IsPlatform reports whether parts of this kind are agent bases
func (k PartKind) IsPlatform() bool {
	switch k {
	case KindFixedBase, KindForwardBase, KindForwardBackwardBase, KindHolonomicBase:
		return true
	}

	return false
}

type PartConfig struct {
	EntityConfig `yaml:",inline"`

	MaxLinearForce     float64 `yaml:"max_linear_force"`
	MaxAngularVelocity float64 `yaml:"max_angular_velocity"`
	// RotationRange is in degrees
	RotationRange float64 `yaml:"rotation_range"`
}

// Part is a rigid piece of an agent. The base platform is free, the other
// parts hang from an anchor part through a pivot, a rotary limit and a motor.
type Part struct {
	*Entity

	kind  PartKind
	agent *Agent

	anchor           *Part
	positionOnAnchor vector.Vector2
	positionOnPart   vector.Vector2
	angleOffset      float64
	rotationRange    float64

	maxLinearForce     float64
	maxAngularVelocity float64

	joints    []physics.Joint
	motor     *physics.SimpleMotor
	actuators []Actuator
}

// NewPart builds a part with the actuators of its kind: bases get their
// locomotion, anchored parts a motor command
func NewPart(kind PartKind, overrides config.Params) (*Part, error) {
	var cfg PartConfig
	if err := config.Default().Decode("part", string(kind), overrides, &cfg); err != nil {
		return nil, errors.Wrapf(ErrInvalidConfig, "part %q: %s", kind, err)
	}

	cfg.Movable = true
	entity, err := newEntity(cfg.EntityConfig, CategoryNone)
	if err != nil {
		return nil, errors.Wrapf(err, "part %q", kind)
	}
	entity.visibleCategory = CategoryPart

	part := &Part{
		Entity:             entity,
		kind:               kind,
		rotationRange:      number.DegreeToRadian(cfg.RotationRange),
		maxLinearForce:     cfg.MaxLinearForce,
		maxAngularVelocity: cfg.MaxAngularVelocity,
	}
	entity.owner = part

	if err := part.addDefaultActuators(); err != nil {
		return nil, err
	}

	return part, nil
}

func (p *Part) addDefaultActuators() error {
	switch p.kind {
	case KindFixedBase:
		p.AddActuator(mustActuator(NewAngularVelocity(p, ContinuousCentered)))
	case KindForwardBase:
		p.AddActuator(mustActuator(NewLinearForce(p, Longitudinal, Continuous)))
		p.AddActuator(mustActuator(NewAngularVelocity(p, ContinuousCentered)))
	case KindForwardBackwardBase:
		p.AddActuator(mustActuator(NewLinearForce(p, Longitudinal, ContinuousCentered)))
		p.AddActuator(mustActuator(NewAngularVelocity(p, ContinuousCentered)))
	case KindHolonomicBase:
		p.AddActuator(mustActuator(NewLinearForce(p, Longitudinal, ContinuousCentered)))
		p.AddActuator(mustActuator(NewLinearForce(p, Lateral, ContinuousCentered)))
		p.AddActuator(mustActuator(NewAngularVelocity(p, ContinuousCentered)))
	case KindHead, KindEye, KindArm, KindHand:
		p.AddActuator(mustActuator(NewAngleJoint(p, ContinuousCentered)))
	default:
		return errors.Wrapf(ErrUnknownKind, "part %q", p.kind)
	}

	return nil
}

func (p *Part) Kind() PartKind {
	return p.kind
}

func (p *Part) Agent() *Agent {
	return p.agent
}

func (p *Part) Anchor() *Part {
	return p.anchor
}

func (p *Part) Actuators() []Actuator {
	return p.actuators
}

func (p *Part) AddActuator(a Actuator) {
	p.actuators = append(p.actuators, a)
}

func (p *Part) MaxLinearForce() float64 {
	return p.maxLinearForce
}

func (p *Part) MaxAngularVelocity() float64 {
	return p.maxAngularVelocity
}

// Joints lists the pivot, limit and motor tying the part to its anchor
func (p *Part) Joints() []physics.Joint {
	return p.joints
}

// poseOnAnchor places the part with its joint at rest
func (p *Part) poseOnAnchor() (vector.Vector2, float64) {
	anchorPos, anchorAngle := p.anchor.Position(), p.anchor.Angle()
	angle := anchorAngle + p.angleOffset

	pivot := anchorPos.Add(p.positionOnAnchor.Rotate(anchorAngle))
	return pivot.Sub(p.positionOnPart.Rotate(angle)), angle
}

func (p *Part) attach(space *physics.Space) {
	a, b := p.anchor.body, p.body
	limit := p.rotationRange / 2

	p.motor = physics.NewSimpleMotor(a, b, 0)
	p.joints = []physics.Joint{
		space.CreateJoint(physics.NewPivotJoint(a, b, p.positionOnAnchor, p.positionOnPart)),
		space.CreateJoint(physics.NewRotaryLimitJoint(a, b, p.angleOffset-limit, p.angleOffset+limit)),
		space.CreateJoint(p.motor),
	}
}
