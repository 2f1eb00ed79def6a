package playground

import (
	"github.com/gaorkl/simple-playgrounds-sub000/physics"
)

// Category tags the interaction fixture of an entity; pairs of categories
// select the collision handler
type Category physics.CollisionType

const (
	CategoryNone Category = iota
	CategoryPart
	CategoryGraspable
	CategoryContact
	CategoryActivable
	CategoryGem
	CategoryActivableByGem
	CategoryTeleport
	CategoryModifier
	CategoryDevice
	CategoryEdible
)

func (c Category) String() string {
	switch c {
	case CategoryPart:
		return "PART"
	case CategoryGraspable:
		return "GRASPABLE"
	case CategoryContact:
		return "CONTACT"
	case CategoryActivable:
		return "ACTIVABLE"
	case CategoryGem:
		return "GEM"
	case CategoryActivableByGem:
		return "ACTIVABLE_BY_GEM"
	case CategoryTeleport:
		return "TELEPORT"
	case CategoryModifier:
		return "MODIFIER"
	case CategoryDevice:
		return "DEVICE"
	case CategoryEdible:
		return "EDIBLE"
	}

	return "NONE"
}

func (c Category) collisionType() physics.CollisionType {
	return physics.CollisionType(c)
}

type fixtureRole uint8

const (
	roleVisible fixtureRole = iota
	roleInteraction
	roleGrasp
	roleDevice
)

// fixtureData is the user data of every fixture the playground creates
type fixtureData struct {
	entity *Entity
	role   fixtureRole
}
