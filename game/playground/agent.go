package playground

import (
	"github.com/bytearena/ecs"
	"github.com/gaorkl/simple-playgrounds-sub000/common/utils/vector"
	"github.com/gaorkl/simple-playgrounds-sub000/game/config"
	"github.com/gaorkl/simple-playgrounds-sub000/game/sensor"
	"github.com/pkg/errors"
)

// Agent is a tree of parts rooted at a base platform, with sensors and an
// optional communication device
type Agent struct {
	name       string
	id         ecs.EntityID
	playground *Playground

	parts         []*Part
	sensors       []sensor.Sensor
	communication *Communication

	reward        float64
	isTeleporting bool

	coordinates      Coordinates
	allowOverlapping bool
	maxAttempts      int
}

func NewAgent(name string, base *Part) (*Agent, error) {
	if base == nil || !base.kind.IsPlatform() {
		return nil, errors.Wrap(ErrInvalidConfig, "agents are rooted at a platform part")
	}

	if base.agent != nil {
		return nil, errors.Wrapf(ErrInvalidConfig, "part %q already belongs to an agent", base.Name())
	}

	a := &Agent{name: name}
	a.own(base)
	base.hasDevice = true

	return a, nil
}

// NewBaseAgent builds an agent made of a single platform of the given kind
func NewBaseAgent(name string, platform PartKind, overrides config.Params) (*Agent, error) {
	base, err := NewPart(platform, overrides)
	if err != nil {
		return nil, err
	}

	return NewAgent(name, base)
}

func (a *Agent) own(p *Part) {
	p.agent = a
	a.parts = append(a.parts, p)
	if p.name == "" {
		p.name = string(p.kind)
	}
}

// AddPart hangs part from anchor: positionOnAnchor and positionOnPart are the
// pivot in each part frame, angleOffset the rest angle relative to the anchor
func (a *Agent) AddPart(part, anchor *Part, positionOnAnchor, positionOnPart vector.Vector2, angleOffset float64) error {
	if a.playground != nil {
		return errors.Wrap(ErrAlreadyInPlayground, "parts are added before the agent")
	}

	if part.kind.IsPlatform() {
		return errors.Wrapf(ErrInvalidConfig, "platform %q can not be anchored", part.kind)
	}

	if part.agent != nil {
		return errors.Wrapf(ErrInvalidConfig, "part %q already belongs to an agent", part.Name())
	}

	if anchor == nil || anchor.agent != a {
		return errors.Wrap(ErrInvalidConfig, "anchor must be a part of the agent")
	}

	part.anchor = anchor
	part.positionOnAnchor = positionOnAnchor
	part.positionOnPart = positionOnPart
	part.angleOffset = angleOffset
	a.own(part)

	return nil
}

// AddSensor attaches a sensor; the agent parts are invisible to it
func (a *Agent) AddSensor(s sensor.Sensor) {
	for _, p := range a.parts {
		s.SetInvisible(p.Entity)
	}

	a.sensors = append(a.sensors, s)
}

func (a *Agent) AddCommunication(c *Communication) {
	c.agent = a
	a.communication = c
}

func (a *Agent) Name() string {
	return a.name
}

func (a *Agent) ID() ecs.EntityID {
	return a.id
}

func (a *Agent) Playground() *Playground {
	return a.playground
}

func (a *Agent) Base() *Part {
	return a.parts[0]
}

func (a *Agent) Parts() []*Part {
	return a.parts
}

func (a *Agent) Sensors() []sensor.Sensor {
	return a.sensors
}

func (a *Agent) Sensor(name string) sensor.Sensor {
	for _, s := range a.sensors {
		if s.Name() == name {
			return s
		}
	}

	return nil
}

func (a *Agent) Communication() *Communication {
	return a.communication
}

func (a *Agent) Actuators() []Actuator {
	res := make([]Actuator, 0)
	for _, p := range a.parts {
		res = append(res, p.actuators...)
	}

	return res
}

// Actuator finds an actuator by part kind and name
func (a *Agent) Actuator(part PartKind, name string) Actuator {
	for _, p := range a.parts {
		if p.kind != part {
			continue
		}
		for _, act := range p.actuators {
			if act.Name() == name {
				return act
			}
		}
	}

	return nil
}

// Devices are what modifier zones act on
func (a *Agent) Devices() []sensor.Device {
	res := make([]sensor.Device, 0, len(a.sensors)+1)
	for _, s := range a.sensors {
		res = append(res, s)
	}
	if a.communication != nil {
		res = append(res, a.communication)
	}

	return res
}

// Reward is what the agent earned during the last tick
func (a *Agent) Reward() float64 {
	return a.reward
}

func (a *Agent) AddReward(r float64) {
	a.reward += r
}

func (a *Agent) IsTeleporting() bool {
	return a.isTeleporting
}

func (a *Agent) Position() vector.Vector2 {
	return a.Base().Position()
}

func (a *Agent) Angle() float64 {
	return a.Base().Angle()
}

func (a *Agent) Velocity() vector.Vector2 {
	return a.Base().Velocity()
}

func (a *Agent) InWorld() bool {
	return a.Base().InWorld()
}

func (a *Agent) preStep() {
	a.reward = 0
	a.isTeleporting = false

	for _, p := range a.parts {
		p.PreStep()
	}

	for _, d := range a.Devices() {
		d.PreStep()
	}
}

func (a *Agent) applyIntents() {
	for _, act := range a.Actuators() {
		if ia, ok := act.(interactiveActuator); ok {
			ia.applyIntent()
		}
	}
}

func (a *Agent) applyPhysics() {
	base := a.Base()
	if base.kind == KindFixedBase && base.InWorld() {
		base.SetVelocity(vector.MakeNullVector2())
	}

	for _, act := range a.Actuators() {
		if pa, ok := act.(physicalActuator); ok {
			pa.applyPhysics()
		}
	}
}

func (a *Agent) graspers() []*Grasp {
	res := make([]*Grasp, 0)
	for _, act := range a.Actuators() {
		if g, ok := act.(*Grasp); ok {
			res = append(res, g)
		}
	}

	return res
}

// setPose places the base and lays the other parts at rest around it
func (a *Agent) setPose(position vector.Vector2, angle float64) {
	a.Base().SetPose(position, angle)
	for _, p := range a.parts[1:] {
		pos, ang := p.poseOnAnchor()
		p.SetPose(pos, ang)
	}

	for _, p := range a.parts {
		p.SetVelocity(vector.MakeNullVector2())
		p.SetAngularVelocity(0)
	}
}

// relocate moves the agent rigidly; velocities follow the rotation when
// inertia is kept and are cleared otherwise
func (a *Agent) relocate(dest Destination, keepInertia bool) {
	base := a.Base()
	origin, heading := base.Position(), base.Angle()
	turn := dest.Angle - heading

	for _, p := range a.parts {
		local := p.Position().Sub(origin).Rotate(-heading)
		pos := dest.Position.Add(local.Rotate(dest.Angle))

		velocity, spin := p.Velocity(), p.AngularVelocity()
		p.SetPose(pos, p.Angle()+turn)

		if keepInertia {
			p.SetVelocity(velocity.Rotate(dest.Rotation))
			p.SetAngularVelocity(spin)
			continue
		}
		p.SetVelocity(vector.MakeNullVector2())
		p.SetAngularVelocity(0)
	}
}

func (a *Agent) reset() {
	a.reward = 0
	a.isTeleporting = false

	for _, act := range a.Actuators() {
		act.Reset()
	}

	for _, s := range a.sensors {
		s.Reset()
	}

	if a.communication != nil {
		a.communication.reset()
	}
}
