package playground

import (
	"math"

	"github.com/bytearena/ecs"
	"github.com/gaorkl/simple-playgrounds-sub000/common/utils/vector"
	"github.com/gaorkl/simple-playgrounds-sub000/game/config"
	"github.com/pkg/errors"
)

// Destination is where an agent base lands after a teleport. Rotation is the
// change of heading, applied to the velocity when inertia is kept.
type Destination struct {
	Position vector.Vector2
	Angle    float64
	Rotation float64
	// Landing is the element the agent lands on, if any
	Landing SceneElement
}

// Teleport sends agents to fixed coordinates or onto a target element
type Teleport struct {
	element
	keepInertia bool

	target      ecs.EntityID
	destination *FixedCoordinates
}

func NewTeleport(overrides config.Params) (*Teleport, error) {
	cfg, err := decodeElement(KindTeleport, overrides)
	if err != nil {
		return nil, err
	}

	base, err := makeElement(KindTeleport, cfg.EntityConfig, CategoryTeleport)
	if err != nil {
		return nil, err
	}

	return &Teleport{element: base, keepInertia: cfg.KeepInertia}, nil
}

func (t *Teleport) KeepInertia() bool {
	return t.keepInertia
}

func (t *Teleport) SetDestination(destination FixedCoordinates) {
	t.destination = &destination
	t.target = 0
}

// SetTarget sends agents onto an element already in the playground
func (t *Teleport) SetTarget(target SceneElement) error {
	if target == nil || target.Base().ID() == 0 {
		return errors.Wrap(ErrNotInPlayground, "teleport target")
	}

	t.target = target.Base().ID()
	t.destination = nil
	return nil
}

func (t *Teleport) Energize(agent *Agent) (Destination, bool) {
	if t.destination != nil {
		return Destination{
			Position: t.destination.Position,
			Angle:    t.destination.Angle,
			Rotation: t.destination.Angle - agent.Angle(),
		}, true
	}

	if t.target == 0 || t.playground == nil {
		return Destination{}, false
	}

	target := t.playground.ElementByID(t.target)
	if target == nil || !target.Base().InWorld() {
		return Destination{}, false
	}

	return Destination{
		Position: target.Base().Position(),
		Angle:    agent.Angle(),
		Landing:  target,
	}, true
}

// Portal sends agents through its linked portal; the agent comes out facing
// away from it with its offset to the portal mirrored
type Portal struct {
	element
	keepInertia bool
	link        ecs.EntityID
}

func NewPortal(overrides config.Params) (*Portal, error) {
	cfg, err := decodeElement(KindPortal, overrides)
	if err != nil {
		return nil, err
	}

	base, err := makeElement(KindPortal, cfg.EntityConfig, CategoryTeleport)
	if err != nil {
		return nil, err
	}

	return &Portal{element: base, keepInertia: cfg.KeepInertia}, nil
}

// LinkPortals connects two portals already in a playground
func LinkPortals(a, b *Portal) error {
	if a.ID() == 0 || b.ID() == 0 {
		return errors.Wrap(ErrNotInPlayground, "portals")
	}

	a.link = b.ID()
	b.link = a.ID()
	return nil
}

func (p *Portal) KeepInertia() bool {
	return p.keepInertia
}

func (p *Portal) Link() ecs.EntityID {
	return p.link
}

func (p *Portal) Energize(agent *Agent) (Destination, bool) {
	if p.link == 0 || p.playground == nil {
		return Destination{}, false
	}

	other := p.playground.ElementByID(p.link)
	if other == nil || !other.Base().InWorld() {
		return Destination{}, false
	}

	out := other.Base()
	delta := out.Angle() - p.Angle() + math.Pi
	offset := agent.Position().Sub(p.Position()).Rotate(delta)

	return Destination{
		Position: out.Position().Add(offset),
		Angle:    agent.Angle() + delta,
		Rotation: delta,
		Landing:  other,
	}, true
}
