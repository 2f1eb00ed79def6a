package physics

import (
	"github.com/gaorkl/simple-playgrounds-sub000/common/utils/vector"
	"github.com/jakecoffman/cp"
)

// Joint links two bodies; linked bodies never collide with each other
type Joint interface {
	Bodies() (*Body, *Body)
	SetMaxForce(maxForce float64)

	base() *jointBase
}

type jointBase struct {
	a, b       *Body
	constraint *cp.Constraint
	added      bool
	destroyed  bool
}

func makeJointBase(a, b *Body, constraint *cp.Constraint) jointBase {
	constraint.SetCollideBodies(false)
	return jointBase{a: a, b: b, constraint: constraint}
}

func (j *jointBase) Bodies() (*Body, *Body) {
	return j.a, j.b
}

func (j *jointBase) SetMaxForce(maxForce float64) {
	j.constraint.SetMaxForce(maxForce)
}

func (j *jointBase) base() *jointBase {
	return j
}

// PinJoint keeps the anchors at their initial distance
type PinJoint struct {
	jointBase
}

func NewPinJoint(a, b *Body, anchorA, anchorB vector.Vector2) *PinJoint {
	return &PinJoint{
		jointBase: makeJointBase(a, b, cp.NewPinJoint(a.body, b.body, toVect(anchorA), toVect(anchorB))),
	}
}

// PivotJoint pins two anchors to the same point
type PivotJoint struct {
	jointBase
}

func NewPivotJoint(a, b *Body, anchorA, anchorB vector.Vector2) *PivotJoint {
	return &PivotJoint{
		jointBase: makeJointBase(a, b, cp.NewPivotJoint2(a.body, b.body, toVect(anchorA), toVect(anchorB))),
	}
}

// NewPivotJointAt takes the shared point in world coordinates
func NewPivotJointAt(a, b *Body, pivot vector.Vector2) *PivotJoint {
	return NewPivotJoint(a, b,
		a.GetTransform().ApplyInverse(pivot),
		b.GetTransform().ApplyInverse(pivot),
	)
}

// RotaryLimitJoint bounds the angle of b relative to a
type RotaryLimitJoint struct {
	jointBase
}

func NewRotaryLimitJoint(a, b *Body, min, max float64) *RotaryLimitJoint {
	return &RotaryLimitJoint{
		jointBase: makeJointBase(a, b, cp.NewRotaryLimitJoint(a.body, b.body, min, max)),
	}
}

// SimpleMotor drives the angular velocity of b relative to a
type SimpleMotor struct {
	jointBase
	motor *cp.SimpleMotor
}

func NewSimpleMotor(a, b *Body, rate float64) *SimpleMotor {
	constraint := cp.NewSimpleMotor(a.body, b.body, -rate)
	return &SimpleMotor{
		jointBase: makeJointBase(a, b, constraint),
		motor:     constraint.Class.(*cp.SimpleMotor),
	}
}

// SetRate in radians per second, positive counter-clockwise
func (j *SimpleMotor) SetRate(rate float64) {
	// the solver targets wb - wa = -rate
	j.motor.Rate = -rate
	j.a.body.Activate()
	j.b.body.Activate()
}
