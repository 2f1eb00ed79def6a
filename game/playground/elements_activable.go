package playground

import (
	"github.com/bytearena/ecs"
	"github.com/gaorkl/simple-playgrounds-sub000/game/config"
	"github.com/pkg/errors"
)

// Dispenser produces an element around itself when activated, within the
// limits of the elements alive and of the total produced
type Dispenser struct {
	interactiveElement

	factory          ElementFactory
	productionRadius float64
	maxAlive         int
	limit            int

	produced []SceneElement
	total    int
}

func NewDispenser(overrides config.Params) (*Dispenser, error) {
	cfg, err := decodeElement(KindDispenser, overrides)
	if err != nil {
		return nil, err
	}

	return newDispenser(cfg, KindFactory(cfg.Produced, nil))
}

// NewDispenserOf builds a dispenser producing with a custom factory
func NewDispenserOf(factory ElementFactory, overrides config.Params) (*Dispenser, error) {
	cfg, err := decodeElement(KindDispenser, overrides)
	if err != nil {
		return nil, err
	}

	return newDispenser(cfg, factory)
}

func newDispenser(cfg ElementConfig, factory ElementFactory) (*Dispenser, error) {
	if cfg.MaxElementsInPlayground <= 0 || cfg.ProductionLimit <= 0 {
		return nil, errors.Wrapf(ErrInvalidConfig, "dispenser caps must be positive, got %d and %d", cfg.MaxElementsInPlayground, cfg.ProductionLimit)
	}

	if _, err := factory(); err != nil {
		return nil, errors.Wrap(err, "dispenser production")
	}

	base, err := makeInteractiveElement(KindDispenser, cfg, CategoryActivable)
	if err != nil {
		return nil, err
	}

	return &Dispenser{
		interactiveElement: base,
		factory:            factory,
		productionRadius:   cfg.ProductionRadius,
		maxAlive:           cfg.MaxElementsInPlayground,
		limit:              cfg.ProductionLimit,
	}, nil
}

// Produced lists the produced elements still alive or about to be added
func (d *Dispenser) Produced() []SceneElement {
	d.produced = pruneRemoved(d.produced)
	return d.produced
}

func (d *Dispenser) TotalProduced() int {
	return d.total
}

func (d *Dispenser) Activate(agent *Agent) Outcome {
	if !d.begin() {
		return Outcome{}
	}

	return d.produce()
}

func (d *Dispenser) OnTimer() Outcome {
	return d.produce()
}

func (d *Dispenser) produce() Outcome {
	if len(d.Produced()) >= d.maxAlive || d.total >= d.limit {
		return Outcome{}
	}

	e, err := d.factory()
	if err != nil {
		return Outcome{}
	}
	e.Base().SetTemporary(true)

	d.produced = append(d.produced, e)
	d.total++

	return Outcome{Add: []Placement{{
		Element:     e,
		Coordinates: CircleSampler{Center: d.Position(), Radius: d.productionRadius, RandomAngle: true},
	}}}
}

func (d *Dispenser) Reset() {
	d.interactiveElement.Reset()
	d.produced = nil
	d.total = 0
}

// pruneRemoved drops the elements that were placed once and left the world
func pruneRemoved(elements []SceneElement) []SceneElement {
	res := elements[:0]
	for _, e := range elements {
		base := e.Base()
		if base.placed && !base.InWorld() {
			continue
		}
		res = append(res, e)
	}

	return res
}

// VendingMachine takes coins and pays its reward for each
type VendingMachine struct {
	interactiveElement
}

func NewVendingMachine(overrides config.Params) (*VendingMachine, error) {
	cfg, err := decodeElement(KindVendingMachine, overrides)
	if err != nil {
		return nil, err
	}

	base, err := makeInteractiveElement(KindVendingMachine, cfg, CategoryActivableByGem)
	if err != nil {
		return nil, err
	}

	return &VendingMachine{interactiveElement: base}, nil
}

func (v *VendingMachine) ActivateWithGem(gem SceneElement) (Outcome, bool) {
	if gem.Kind() != KindCoin || !v.begin() {
		return Outcome{}, false
	}

	return Outcome{Remove: []SceneElement{gem}}, true
}

// Chest opens with its key: both vanish and the treasure appears in place
type Chest struct {
	interactiveElement
	key      ecs.EntityID
	treasure SceneElement
}

// NewChest links the chest to a key already in a playground. A nil treasure
// is built from the chest defaults.
func NewChest(key *Gem, treasure SceneElement, overrides config.Params) (*Chest, error) {
	cfg, err := decodeElement(KindChest, overrides)
	if err != nil {
		return nil, err
	}

	if key == nil || key.ID() == 0 {
		return nil, errors.Wrap(ErrNotInPlayground, "chest key")
	}

	if treasure == nil {
		treasure, err = NewElement(cfg.Produced, nil)
		if err != nil {
			return nil, errors.Wrap(err, "chest treasure")
		}
		treasure.Base().SetTemporary(true)
	}

	base, err := makeInteractiveElement(KindChest, cfg, CategoryActivableByGem)
	if err != nil {
		return nil, err
	}

	return &Chest{interactiveElement: base, key: key.ID(), treasure: treasure}, nil
}

func (c *Chest) Treasure() SceneElement {
	return c.treasure
}

func (c *Chest) ActivateWithGem(gem SceneElement) (Outcome, bool) {
	if gem.Base().ID() != c.key || !c.begin() {
		return Outcome{}, false
	}

	return Outcome{
		Remove: []SceneElement{gem, c},
		Add: []Placement{{
			Element:          c.treasure,
			Coordinates:      FixedCoordinates{Position: c.Position(), Angle: c.Angle()},
			AllowOverlapping: true,
		}},
	}, true
}

// Lock opens its door when its key touches it; the key is consumed
type Lock struct {
	interactiveElement
	door ecs.EntityID
	key  ecs.EntityID
}

// NewLock links the lock to a door and a key already in a playground
func NewLock(door *Door, key *Gem, overrides config.Params) (*Lock, error) {
	cfg, err := decodeElement(KindLock, overrides)
	if err != nil {
		return nil, err
	}

	if door == nil || door.ID() == 0 || key == nil || key.ID() == 0 {
		return nil, errors.Wrap(ErrNotInPlayground, "lock door and key")
	}

	base, err := makeInteractiveElement(KindLock, cfg, CategoryActivableByGem)
	if err != nil {
		return nil, err
	}

	return &Lock{interactiveElement: base, door: door.ID(), key: key.ID()}, nil
}

func (l *Lock) DoorID() ecs.EntityID {
	return l.door
}

func (l *Lock) ActivateWithGem(gem SceneElement) (Outcome, bool) {
	if gem.Base().ID() != l.key || l.playground == nil {
		return Outcome{}, false
	}

	door, ok := l.playground.ElementByID(l.door).(*Door)
	if !ok || !door.InWorld() || !l.begin() {
		return Outcome{}, false
	}

	return Outcome{Remove: []SceneElement{door, gem}}, true
}

// Switch opens or closes its door each time it is activated
type Switch struct {
	interactiveElement
	door ecs.EntityID
}

func NewSwitch(door *Door, overrides config.Params) (*Switch, error) {
	cfg, err := decodeElement(KindSwitch, overrides)
	if err != nil {
		return nil, err
	}

	if door == nil || door.ID() == 0 {
		return nil, errors.Wrap(ErrNotInPlayground, "switch door")
	}

	base, err := makeInteractiveElement(KindSwitch, cfg, CategoryActivable)
	if err != nil {
		return nil, err
	}

	return &Switch{interactiveElement: base, door: door.ID()}, nil
}

func (s *Switch) Activate(agent *Agent) Outcome {
	if !s.begin() {
		return Outcome{}
	}

	return s.OnTimer()
}

func (s *Switch) OnTimer() Outcome {
	if s.playground == nil {
		return Outcome{}
	}

	door, ok := s.playground.ElementByID(s.door).(*Door)
	if !ok {
		return Outcome{}
	}

	return door.toggle()
}
