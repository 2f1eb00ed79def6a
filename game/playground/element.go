package playground

import (
	"github.com/gaorkl/simple-playgrounds-sub000/game/config"
	"github.com/gaorkl/simple-playgrounds-sub000/game/sensor"
	"github.com/pkg/errors"
)

type ElementKind string

const (
	KindWall                  ElementKind = "wall"
	KindBasic                 ElementKind = "basic"
	KindMovable               ElementKind = "movable"
	KindDoor                  ElementKind = "door"
	KindCandy                 ElementKind = "candy"
	KindPoison                ElementKind = "poison"
	KindGoalZone              ElementKind = "goal_zone"
	KindDeathZone             ElementKind = "death_zone"
	KindRewardZone            ElementKind = "reward_zone"
	KindDispenser             ElementKind = "dispenser"
	KindVendingMachine        ElementKind = "vending_machine"
	KindChest                 ElementKind = "chest"
	KindLock                  ElementKind = "lock"
	KindSwitch                ElementKind = "switch"
	KindKey                   ElementKind = "key"
	KindCoin                  ElementKind = "coin"
	KindTeleport              ElementKind = "teleport"
	KindPortal                ElementKind = "portal"
	KindSensorBlackout        ElementKind = "sensor_blackout"
	KindCommunicationBlackout ElementKind = "communication_blackout"
	KindApple                 ElementKind = "apple"
	KindRottenApple           ElementKind = "rotten_apple"
)

// ElementConfig holds every key an element default may carry
type ElementConfig struct {
	EntityConfig `yaml:",inline"`

	Reward                  float64     `yaml:"reward"`
	TotalReward             float64     `yaml:"total_reward"`
	Produced                ElementKind `yaml:"produced"`
	ProductionRadius        float64     `yaml:"production_radius"`
	MaxElementsInPlayground int         `yaml:"max_elements_in_playground"`
	ProductionLimit         int         `yaml:"production_limit"`
	KeepInertia             bool        `yaml:"keep_inertia"`
	ShrinkRatio             float64     `yaml:"shrink_ratio"`
	MinRadius               float64     `yaml:"min_radius"`
}

func decodeElement(kind ElementKind, overrides config.Params) (ElementConfig, error) {
	var cfg ElementConfig
	if err := config.Default().Decode("element", string(kind), overrides, &cfg); err != nil {
		return cfg, errors.Wrapf(ErrInvalidConfig, "element %q: %s", kind, err)
	}

	return cfg, nil
}

// SceneElement is anything but an agent part living in the playground
type SceneElement interface {
	Base() *Entity
	Kind() ElementKind
	PreStep()
	Reset()
}

// Placement asks the playground to add an element
type Placement struct {
	Element          SceneElement
	Coordinates      Coordinates
	AllowOverlapping bool
}

// Outcome is what an interaction asks the playground to do
type Outcome struct {
	Remove    []SceneElement
	Add       []Placement
	Terminate bool
}

// RewardSource hands out its reward at most once per tick
type RewardSource interface {
	TakeReward() (float64, bool)
}

// Activable elements react to an agent: on contact, or through an Activate
// actuator, depending on their category
type Activable interface {
	SceneElement
	RewardSource
	Activate(agent *Agent) Outcome
	IsActivated() bool
}

// GemActivable elements react to a gem touching them
type GemActivable interface {
	SceneElement
	RewardSource
	ActivateWithGem(gem SceneElement) (Outcome, bool)
	IsActivated() bool
}

type Teleporter interface {
	SceneElement
	Energize(agent *Agent) (Destination, bool)
	KeepInertia() bool
}

type Modifier interface {
	SceneElement
	Modify(device sensor.Device)
}

type Edible interface {
	SceneElement
	RewardSource
	Eat() Outcome
	IsActivated() bool
}

// TimerTarget elements are driven by timers
type TimerTarget interface {
	SceneElement
	OnTimer() Outcome
}

///////////////////////////////////////////////////////////////////////////////
// bases
///////////////////////////////////////////////////////////////////////////////

type element struct {
	*Entity
	kind ElementKind
}

func makeElement(kind ElementKind, cfg EntityConfig, category Category) (element, error) {
	entity, err := newEntity(cfg, category)
	if err != nil {
		return element{}, errors.Wrapf(err, "element %q", kind)
	}

	return element{Entity: entity, kind: kind}, nil
}

func (e *element) Base() *Entity {
	return e.Entity
}

func (e *element) Kind() ElementKind {
	return e.kind
}

// interactive carries the one-shot state of elements that grant rewards
type interactive struct {
	reward         float64
	rewardProvided bool
	activated      bool
	activations    int
	terminate      bool
}

func (i *interactive) TakeReward() (float64, bool) {
	if i.rewardProvided {
		return 0, false
	}

	i.rewardProvided = true
	return i.reward, true
}

func (i *interactive) Reward() float64 {
	return i.reward
}

func (i *interactive) IsActivated() bool {
	return i.activated
}

// Activations counts the activations since the last reset
func (i *interactive) Activations() int {
	return i.activations
}

func (i *interactive) TerminatesEpisode() bool {
	return i.terminate
}

// begin marks the element activated for the tick; false when it already is
func (i *interactive) begin() bool {
	if i.activated {
		return false
	}

	i.activated = true
	i.activations++
	return true
}

func (i *interactive) clearOneShots() {
	i.rewardProvided = false
	i.activated = false
}

type interactiveElement struct {
	element
	interactive
}

func makeInteractiveElement(kind ElementKind, cfg ElementConfig, category Category) (interactiveElement, error) {
	base, err := makeElement(kind, cfg.EntityConfig, category)
	if err != nil {
		return interactiveElement{}, err
	}

	return interactiveElement{
		element:     base,
		interactive: interactive{reward: cfg.Reward},
	}, nil
}

func (e *interactiveElement) PreStep() {
	e.Entity.PreStep()
	e.clearOneShots()
}

func (e *interactiveElement) Reset() {
	e.Entity.Reset()
	e.clearOneShots()
	e.activations = 0
}

///////////////////////////////////////////////////////////////////////////////
// factory
///////////////////////////////////////////////////////////////////////////////

// NewElement builds an element that needs no link to other elements. Chests,
// locks and switches have their own constructors.
func NewElement(kind ElementKind, overrides config.Params) (SceneElement, error) {
	switch kind {
	case KindWall:
		return NewWall(overrides)
	case KindBasic, KindMovable:
		return NewBasicElement(kind, overrides)
	case KindDoor:
		return NewDoor(overrides)
	case KindCandy:
		return NewCandy(overrides)
	case KindPoison:
		return NewPoison(overrides)
	case KindGoalZone:
		return NewGoalZone(overrides)
	case KindDeathZone:
		return NewDeathZone(overrides)
	case KindRewardZone:
		return NewRewardZone(overrides)
	case KindDispenser:
		return NewDispenser(overrides)
	case KindVendingMachine:
		return NewVendingMachine(overrides)
	case KindKey:
		return NewKey(overrides)
	case KindCoin:
		return NewCoin(overrides)
	case KindTeleport:
		return NewTeleport(overrides)
	case KindPortal:
		return NewPortal(overrides)
	case KindSensorBlackout:
		return NewSensorBlackout(overrides)
	case KindCommunicationBlackout:
		return NewCommunicationBlackout(overrides)
	case KindApple, KindRottenApple:
		return NewApple(kind, overrides)
	case KindChest, KindLock, KindSwitch:
		return nil, errors.Wrapf(ErrInvalidConfig, "%s links other elements, use its constructor", kind)
	}

	return nil, errors.Wrapf(ErrUnknownKind, "element %q", kind)
}

// ElementFactory builds fresh elements for dispensers, chests and fields
type ElementFactory func() (SceneElement, error)

// KindFactory builds temporary elements of the given kind
func KindFactory(kind ElementKind, overrides config.Params) ElementFactory {
	return func() (SceneElement, error) {
		e, err := NewElement(kind, overrides)
		if err != nil {
			return nil, err
		}

		e.Base().SetTemporary(true)
		return e, nil
	}
}
