package playground

import (
	"fmt"
	"math"

	"github.com/gaorkl/simple-playgrounds-sub000/common/utils"
	"github.com/gaorkl/simple-playgrounds-sub000/common/utils/number"
	"github.com/gaorkl/simple-playgrounds-sub000/common/utils/vector"
	"github.com/gaorkl/simple-playgrounds-sub000/physics"
	"github.com/pkg/errors"
)

type ActionSpace uint8

const (
	Discrete ActionSpace = iota
	// Continuous commands lie in [0, 1]
	Continuous
	// ContinuousCentered commands lie in [-1, 1]
	ContinuousCentered
)

func (s ActionSpace) String() string {
	switch s {
	case Discrete:
		return "discrete"
	case Continuous:
		return "continuous"
	}

	return "continuous_centered"
}

// Actuator turns a command into forces, velocities, motor rates or intents
// on its part
type Actuator interface {
	Name() string
	Part() *Part
	Space() ActionSpace
	Bounds() (float64, float64)
	// Values lists the accepted commands of discrete actuators
	Values() []float64
	Command() float64
	SetCommand(value float64) error
	// Interactive actuators express intents (grasp, activate, eat)
	Interactive() bool
	Reset()
}

type physicalActuator interface {
	applyPhysics()
}

type interactiveActuator interface {
	applyIntent()
}

type actuatorBase struct {
	name    string
	part    *Part
	space   ActionSpace
	values  []float64
	command float64
}

func makeActuatorBase(name string, part *Part, space ActionSpace, values []float64) (actuatorBase, error) {
	base := actuatorBase{name: name, part: part, space: space}

	switch space {
	case Discrete:
		if len(values) == 0 {
			return base, errors.Wrapf(ErrInvalidActionSpace, "%s: discrete actuator without values", name)
		}
		seen := make(map[float64]bool)
		for _, v := range values {
			if math.IsNaN(v) || math.IsInf(v, 0) || seen[v] {
				return base, errors.Wrapf(ErrInvalidActionSpace, "%s: bad value set %v", name, values)
			}
			seen[v] = true
		}
		base.values = append([]float64(nil), values...)
		base.command = base.restCommand()
	case Continuous, ContinuousCentered:
		if len(values) > 0 {
			return base, errors.Wrapf(ErrInvalidActionSpace, "%s: continuous actuator with a value set", name)
		}
	default:
		return base, errors.Wrapf(ErrInvalidActionSpace, "%s: unknown space %d", name, space)
	}

	return base, nil
}

func mustActuator(a Actuator, err error) Actuator {
	utils.Check(err, "built-in actuator")
	return a
}

func (a *actuatorBase) Name() string {
	return a.name
}

func (a *actuatorBase) Part() *Part {
	return a.part
}

func (a *actuatorBase) Space() ActionSpace {
	return a.space
}

func (a *actuatorBase) Values() []float64 {
	return a.values
}

func (a *actuatorBase) Bounds() (float64, float64) {
	switch a.space {
	case Continuous:
		return 0, 1
	case ContinuousCentered:
		return -1, 1
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range a.values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	return lo, hi
}

func (a *actuatorBase) Command() float64 {
	return a.command
}

// SetCommand clamps continuous commands and rejects discrete ones outside
// the value set
func (a *actuatorBase) SetCommand(value float64) error {
	if math.IsNaN(value) {
		return errors.Wrapf(ErrInvalidAction, "%s: NaN", a.name)
	}

	if a.space == Discrete {
		for _, v := range a.values {
			if v == value {
				a.command = value
				return nil
			}
		}
		return errors.Wrapf(ErrInvalidAction, "%s: %v not in %v", a.name, value, a.values)
	}

	lo, hi := a.Bounds()
	a.command = number.Clamp(value, lo, hi)
	return nil
}

func (a *actuatorBase) Interactive() bool {
	return false
}

// restCommand is 0, or the first value of a discrete set without 0
func (a *actuatorBase) restCommand() float64 {
	if a.space != Discrete {
		return 0
	}

	for _, v := range a.values {
		if v == 0 {
			return 0
		}
	}

	return a.values[0]
}

func (a *actuatorBase) Reset() {
	a.command = a.restCommand()
}

///////////////////////////////////////////////////////////////////////////////
// physical actuators
///////////////////////////////////////////////////////////////////////////////

type Direction uint8

const (
	Longitudinal Direction = iota
	Lateral
)

// LinearForce pushes the part along its heading or sideways
type LinearForce struct {
	actuatorBase
	direction Direction
}

func NewLinearForce(part *Part, direction Direction, space ActionSpace, values ...float64) (*LinearForce, error) {
	name := "longitudinal_force"
	if direction == Lateral {
		name = "lateral_force"
	}

	base, err := makeActuatorBase(name, part, space, values)
	if err != nil {
		return nil, err
	}

	return &LinearForce{actuatorBase: base, direction: direction}, nil
}

func (a *LinearForce) applyPhysics() {
	if !a.part.InWorld() || a.command == 0 {
		return
	}

	local := vector.MakeVector2(1, 0)
	if a.direction == Lateral {
		local = vector.MakeVector2(0, 1)
	}

	force := local.Rotate(a.part.Angle()).Scale(a.command * a.part.maxLinearForce)
	a.part.body.ApplyForce(force, a.part.Position())
}

// AngularVelocity sets the rotation speed of a base
type AngularVelocity struct {
	actuatorBase
}

func NewAngularVelocity(part *Part, space ActionSpace, values ...float64) (*AngularVelocity, error) {
	base, err := makeActuatorBase("angular_velocity", part, space, values)
	if err != nil {
		return nil, err
	}

	return &AngularVelocity{actuatorBase: base}, nil
}

func (a *AngularVelocity) applyPhysics() {
	if !a.part.InWorld() {
		return
	}

	a.part.SetAngularVelocity(a.command * a.part.maxAngularVelocity)
}

// AngleJoint drives the motor between an anchored part and its anchor
type AngleJoint struct {
	actuatorBase
}

func NewAngleJoint(part *Part, space ActionSpace, values ...float64) (*AngleJoint, error) {
	base, err := makeActuatorBase(fmt.Sprintf("%s_joint", part.kind), part, space, values)
	if err != nil {
		return nil, err
	}

	return &AngleJoint{actuatorBase: base}, nil
}

func (a *AngleJoint) applyPhysics() {
	if a.part.motor != nil {
		a.part.motor.SetRate(a.command * a.part.maxAngularVelocity)
	}
}

///////////////////////////////////////////////////////////////////////////////
// interactive actuators
///////////////////////////////////////////////////////////////////////////////

func makeIntentBase(name string, part *Part, space ActionSpace, values []float64) (actuatorBase, error) {
	if space == Discrete && len(values) == 0 {
		values = []float64{0, 1}
	}

	return makeActuatorBase(name, part, space, values)
}

// Grasp welds graspable elements touching the part while commanded
type Grasp struct {
	actuatorBase

	isGrasping bool
	held       SceneElement
	joints     []physics.Joint
}

func NewGrasp(part *Part, space ActionSpace, values ...float64) (*Grasp, error) {
	base, err := makeIntentBase("grasp", part, space, values)
	if err != nil {
		return nil, err
	}

	return &Grasp{actuatorBase: base}, nil
}

func (a *Grasp) Interactive() bool {
	return true
}

func (a *Grasp) applyIntent() {
	a.isGrasping = a.command > 0
}

func (a *Grasp) IsGrasping() bool {
	return a.isGrasping
}

func (a *Grasp) IsHolding() bool {
	return a.held != nil
}

func (a *Grasp) Held() SceneElement {
	return a.held
}

func (a *Grasp) Joints() []physics.Joint {
	return a.joints
}

// weld pins the element center to two points on either side of the part
// center
func (a *Grasp) weld(space *physics.Space, element SceneElement) {
	part, body := a.part.body, element.Base().body
	offset := vector.MakeVector2(0, 5)
	center := vector.MakeNullVector2()

	a.joints = []physics.Joint{
		space.CreateJoint(physics.NewPinJoint(part, body, offset, center)),
		space.CreateJoint(physics.NewPinJoint(part, body, offset.Neg(), center)),
	}
	a.held = element
}

func (a *Grasp) release(space *physics.Space) {
	for _, j := range a.joints {
		space.DestroyJoint(j)
	}

	a.joints = nil
	a.held = nil
}

func (a *Grasp) Reset() {
	a.actuatorBase.Reset()
	a.isGrasping = false
}

// Activate triggers activable elements touching the part, once per command
type Activate struct {
	actuatorBase
	isActivating bool
}

func NewActivate(part *Part, space ActionSpace, values ...float64) (*Activate, error) {
	base, err := makeIntentBase("activate", part, space, values)
	if err != nil {
		return nil, err
	}

	return &Activate{actuatorBase: base}, nil
}

func (a *Activate) Interactive() bool {
	return true
}

func (a *Activate) applyIntent() {
	a.isActivating = a.command > 0
}

func (a *Activate) IsActivating() bool {
	return a.isActivating
}

func (a *Activate) Reset() {
	a.actuatorBase.Reset()
	a.isActivating = false
}

// Eat bites edible elements touching the part, once per command
type Eat struct {
	actuatorBase
	isEating bool
}

func NewEat(part *Part, space ActionSpace, values ...float64) (*Eat, error) {
	base, err := makeIntentBase("eat", part, space, values)
	if err != nil {
		return nil, err
	}

	return &Eat{actuatorBase: base}, nil
}

func (a *Eat) Interactive() bool {
	return true
}

func (a *Eat) applyIntent() {
	a.isEating = a.command > 0
}

func (a *Eat) IsEating() bool {
	return a.isEating
}

func (a *Eat) Reset() {
	a.actuatorBase.Reset()
	a.isEating = false
}
