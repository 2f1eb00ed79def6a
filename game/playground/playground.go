// Package playground holds the simulated world: entities and their physics
// registration, scene elements, agents with their parts and actuators, the
// interaction handlers and the tick loop.
package playground

import (
	"fmt"
	"image"
	"sort"

	"github.com/bytearena/ecs"
	"github.com/dustinkirkland/golang-petname"
	"github.com/gaorkl/simple-playgrounds-sub000/common/utils"
	"github.com/gaorkl/simple-playgrounds-sub000/common/utils/vector"
	"github.com/gaorkl/simple-playgrounds-sub000/game/sensor"
	"github.com/gaorkl/simple-playgrounds-sub000/game/texture"
	"github.com/gaorkl/simple-playgrounds-sub000/physics"
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
)

const (
	defaultSubsteps    = 10
	defaultMaxAttempts = 100
	sensorSkin         = 1.0
)

type Config struct {
	Name         string         `yaml:"name"`
	Size         [2]float64     `yaml:"size"`
	WallDepth    float64        `yaml:"wall_depth"`
	Damping      float64        `yaml:"damping"`
	Substeps     int            `yaml:"substeps"`
	Seed         uint64         `yaml:"seed"`
	Rooms        [2]int         `yaml:"rooms"`
	DoorstepSize float64        `yaml:"doorstep_size"`
	WallTexture  texture.Config `yaml:"wall_texture"`
}

type Playground struct {
	name     string
	size     vector.Vector2
	substeps int
	seed     uint64
	src      rand.Source
	space    *physics.Space

	manager              *ecs.Manager
	elementComponent     *ecs.Component
	partComponent        *ecs.Component
	agentComponent       *ecs.Component
	bodyComponent        *ecs.Component
	disappearedComponent *ecs.Component

	elementsView    *ecs.View
	disappearedView *ecs.View
	partsView       *ecs.View
	agentsView      *ecs.View

	spawners       []*Field
	timers         []Timer
	holders        map[SceneElement]*Grasp
	teleportGuards map[*Agent]SceneElement
	pendingAdds    []Placement
	pendingMoves   []relocation

	// first broken invariant seen during the current tick
	violation error

	done bool
	tick int

	surface      *image.RGBA
	surfaceDirty bool
}

func New(cfg Config) *Playground {
	name := cfg.Name
	if name == "" {
		name = petname.Generate(2, "-")
	}

	substeps := cfg.Substeps
	if substeps <= 0 {
		substeps = defaultSubsteps
	}

	space := physics.NewSpace()
	space.SetSensorSkin(sensorSkin)
	if cfg.Damping > 0 {
		space.SetDamping(cfg.Damping)
	}

	pg := &Playground{
		name:           name,
		size:           vector.MakeVector2(cfg.Size[0], cfg.Size[1]),
		substeps:       substeps,
		seed:           cfg.Seed,
		src:            rand.NewSource(cfg.Seed),
		space:          space,
		manager:        ecs.NewManager(),
		holders:        make(map[SceneElement]*Grasp),
		teleportGuards: make(map[*Agent]SceneElement),
		surfaceDirty:   true,
	}

	pg.elementComponent = pg.manager.NewComponent()
	pg.partComponent = pg.manager.NewComponent()
	pg.agentComponent = pg.manager.NewComponent()
	pg.bodyComponent = pg.manager.NewComponent()
	pg.disappearedComponent = pg.manager.NewComponent()

	pg.bodyComponent.SetDestructor(func(entity *ecs.Entity, data interface{}) {
		data.(*Entity).destroy()
	})

	pg.elementsView = pg.manager.CreateView(pg.elementComponent, pg.bodyComponent)
	pg.disappearedView = pg.manager.CreateView(pg.elementComponent, pg.disappearedComponent)
	pg.partsView = pg.manager.CreateView(pg.partComponent, pg.bodyComponent)
	pg.agentsView = pg.manager.CreateView(pg.agentComponent)

	pg.registerHandlers()

	return pg
}

func (pg *Playground) registerHandlers() {
	for key, handler := range handlerTable {
		handle := handler
		pg.space.AddCollisionHandler(key.a.collisionType(), key.b.collisionType(), func(arb *physics.Arbiter, space *physics.Space) bool {
			a, b := arb.Fixtures()
			for _, m := range handle(pg, a, b) {
				m.apply(pg)
			}
			return true
		})
	}
}

func (pg *Playground) Name() string {
	return pg.name
}

func (pg *Playground) Size() vector.Vector2 {
	return pg.size
}

func (pg *Playground) Seed() uint64 {
	return pg.seed
}

func (pg *Playground) Space() *physics.Space {
	return pg.space
}

func (pg *Playground) Tick() int {
	return pg.tick
}

// Done stays true from the terminating interaction until Reset
func (pg *Playground) Done() bool {
	return pg.done
}

func (pg *Playground) SetDone() {
	pg.done = true
}

// Source is the seeded random source of the playground
func (pg *Playground) Source() rand.Source {
	return pg.src
}

///////////////////////////////////////////////////////////////////////////////
// lookups
///////////////////////////////////////////////////////////////////////////////

// Elements lists the elements in the world by id
func (pg *Playground) Elements() []SceneElement {
	res := make([]SceneElement, 0)
	for _, item := range pg.elementsView.Get() {
		res = append(res, item.Components[pg.elementComponent].(SceneElement))
	}

	return sortElements(res)
}

// Disappeared lists the removed elements waiting for a reset
func (pg *Playground) Disappeared() []SceneElement {
	res := make([]SceneElement, 0)
	for _, item := range pg.disappearedView.Get() {
		res = append(res, item.Components[pg.elementComponent].(SceneElement))
	}

	return sortElements(res)
}

// views keep insertion order, which a restore changes
func sortElements(elements []SceneElement) []SceneElement {
	sort.Slice(elements, func(i, j int) bool {
		return elements[i].Base().id < elements[j].Base().id
	})

	return elements
}

func (pg *Playground) Agents() []*Agent {
	res := make([]*Agent, 0)
	for _, item := range pg.agentsView.Get() {
		res = append(res, item.Components[pg.agentComponent].(*Agent))
	}
	sort.Slice(res, func(i, j int) bool { return res[i].id < res[j].id })

	return res
}

func (pg *Playground) Agent(name string) *Agent {
	for _, a := range pg.Agents() {
		if a.name == name {
			return a
		}
	}

	return nil
}

// ElementByID resolves an element handle, in the world or disappeared
func (pg *Playground) ElementByID(id ecs.EntityID) SceneElement {
	item := pg.manager.GetEntityByID(id, pg.elementComponent)
	if item == nil {
		return nil
	}

	return item.Components[pg.elementComponent].(SceneElement)
}

// EntityFromFixture resolves any fixture of an entity in this world
func (pg *Playground) EntityFromFixture(f *physics.Fixture) *Entity {
	if f == nil {
		return nil
	}

	data, ok := f.GetUserData().(*fixtureData)
	if !ok || data.entity.playground != pg || !data.entity.InWorld() {
		return nil
	}

	return data.entity
}

// VisibleEntity resolves visible fixtures only
func (pg *Playground) VisibleEntity(f *physics.Fixture) sensor.Entity {
	e := pg.EntityFromFixture(f)
	if e == nil || f.GetUserData().(*fixtureData).role != roleVisible {
		return nil
	}

	return e
}

func (pg *Playground) partOf(f *physics.Fixture) *Part {
	e := pg.EntityFromFixture(f)
	if e == nil {
		return nil
	}

	p, _ := e.owner.(*Part)
	if p == nil || p.agent == nil {
		return nil
	}

	return p
}

func (pg *Playground) elementOf(f *physics.Fixture) SceneElement {
	e := pg.EntityFromFixture(f)
	if e == nil {
		return nil
	}

	element, _ := e.owner.(SceneElement)
	return element
}

func (pg *Playground) closestAgent(position vector.Vector2) *Agent {
	var closest *Agent
	best := 0.0

	for _, a := range pg.Agents() {
		if !a.InWorld() {
			continue
		}
		d := a.Position().DistSq(position)
		if closest == nil || d < best {
			closest, best = a, d
		}
	}

	return closest
}

// Holder returns the grasp actuator holding element, if any
func (pg *Playground) Holder(element SceneElement) *Grasp {
	return pg.holders[element]
}

func (pg *Playground) SegmentQueryFirst(start, end vector.Vector2, radius float64, filter physics.QueryFilter) (physics.SegmentHit, bool) {
	return pg.space.SegmentQueryFirst(start, end, radius, filter)
}

func (pg *Playground) PointQuery(center vector.Vector2, radius float64, filter physics.QueryFilter) []physics.PointHit {
	return pg.space.PointQuery(center, radius, filter)
}

///////////////////////////////////////////////////////////////////////////////
// adding and removing
///////////////////////////////////////////////////////////////////////////////

// AddElement registers element and places it at coordinates. Unless
// allowOverlapping, it draws new coordinates up to maxAttempts times until
// the element overlaps no solid fixture and lies in the playground.
func (pg *Playground) AddElement(element SceneElement, coordinates Coordinates, allowOverlapping bool, maxAttempts int) error {
	base := element.Base()
	if base.playground != nil && base.playground != pg {
		return errors.Wrapf(ErrAlreadyInPlayground, "%s", base.name)
	}

	if base.InWorld() {
		return errors.Wrapf(ErrAlreadyInPlayground, "%s", base.name)
	}

	if trajectory, ok := coordinates.(*Trajectory); ok {
		base.trajectory = trajectory
	}

	var entity *ecs.Entity
	created := false
	if item := pg.manager.GetEntityByID(base.id, pg.elementComponent); base.playground == pg && item != nil {
		entity = item.Entity
	} else {
		entity = pg.manager.NewEntity().AddComponent(pg.elementComponent, element)
		created = true

		base.id = entity.GetID()
		base.playground = pg
		base.owner = element
		if base.name == "" {
			base.name = fmt.Sprintf("%s_%d", element.Kind(), base.id)
		}
	}

	built := false
	if err := pg.place([]*Entity{base}, coordinates, allowOverlapping, maxAttempts, func(position vector.Vector2, angle float64) {
		if built {
			base.SetPose(position, angle)
			return
		}
		base.build(pg.space, position, angle)
		built = true
	}); err != nil {
		pg.destroyEntity(base)
		if created {
			pg.manager.DisposeEntities(entity)
			base.id = 0
			base.playground = nil
		}
		return errors.Wrapf(err, "%s", base.name)
	}

	entity.RemoveComponent(pg.disappearedComponent)
	entity.AddComponent(pg.bodyComponent, base)
	pg.surfaceDirty = true

	utils.Debug("playground", fmt.Sprintf("%s added at %s", base.name, base.Position()))
	return nil
}

// AddAgent registers every part of the agent and places its base like
// AddElement does. The coordinates are kept to place the agent again on
// reset.
func (pg *Playground) AddAgent(agent *Agent, coordinates Coordinates, allowOverlapping bool, maxAttempts int) error {
	if agent.playground != nil {
		return errors.Wrapf(ErrAlreadyInPlayground, "%s", agent.name)
	}

	agentEntity := pg.manager.NewEntity().AddComponent(pg.agentComponent, agent)
	agent.id = agentEntity.GetID()
	agent.playground = pg
	if agent.name == "" {
		agent.name = fmt.Sprintf("agent_%d", agent.id)
	}

	parts := make([]*Entity, len(agent.parts))
	partEntities := make([]*ecs.Entity, len(agent.parts))
	for i, p := range agent.parts {
		partEntities[i] = pg.manager.NewEntity().AddComponent(pg.partComponent, p)
		p.id = partEntities[i].GetID()
		p.playground = pg
		p.group = uint32(agent.id)
		parts[i] = p.Entity
	}

	for _, s := range agent.sensors {
		for _, p := range agent.parts {
			s.SetInvisible(p.Entity)
		}
	}

	built := false
	err := pg.place(parts, coordinates, allowOverlapping, maxAttempts, func(position vector.Vector2, angle float64) {
		if built {
			agent.setPose(position, angle)
			return
		}
		pg.buildAgent(agent, position, angle)
		built = true
	})
	if err != nil {
		for _, p := range parts {
			pg.destroyEntity(p)
		}
		pg.manager.DisposeEntities(partEntities...)
		pg.manager.DisposeEntities(agentEntity)
		for _, p := range agent.parts {
			p.id = 0
			p.playground = nil
		}
		agent.id = 0
		agent.playground = nil
		return errors.Wrapf(err, "%s", agent.name)
	}

	for i, p := range agent.parts {
		partEntities[i].AddComponent(pg.bodyComponent, p.Entity)
	}

	agent.coordinates = coordinates
	agent.allowOverlapping = allowOverlapping
	agent.maxAttempts = maxAttempts
	pg.surfaceDirty = true

	utils.Debug("playground", fmt.Sprintf("%s added at %s", agent.name, agent.Position()))
	return nil
}

func (pg *Playground) buildAgent(agent *Agent, position vector.Vector2, angle float64) {
	agent.Base().build(pg.space, position, angle)
	for _, p := range agent.parts[1:] {
		pos, ang := p.poseOnAnchor()
		p.build(pg.space, pos, ang)
		p.attach(pg.space)
	}
}

// place puts entities at coordinates. The first call of move builds them,
// the next ones only move them. On failure the entities stay built at the
// last drawn pose.
func (pg *Playground) place(entities []*Entity, coordinates Coordinates, allowOverlapping bool, maxAttempts int, move func(vector.Vector2, float64)) error {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}

	position, angle := coordinates.Sample(pg.src)
	move(position, angle)

	if !allowOverlapping {
		for attempt := 1; !pg.fits(entities); attempt++ {
			if attempt >= maxAttempts {
				return errors.Wrapf(ErrPlacementFailed, "no free spot after %d attempts", maxAttempts)
			}

			position, angle = coordinates.Sample(pg.src)
			move(position, angle)
		}
	}

	for _, e := range entities {
		if !e.placed {
			e.placed = true
			e.initialPosition = e.Position()
			e.initialAngle = e.Angle()
		}
	}

	return nil
}

// destroyEntity drops a body that never made it into the arena
func (pg *Playground) destroyEntity(e *Entity) {
	e.destroy()
	e.body = nil
}

// fits reports whether the visible fixtures of entities lie in the
// playground without overlapping solid fixtures of other bodies
func (pg *Playground) fits(entities []*Entity) bool {
	own := make(map[*physics.Body]bool, len(entities))
	for _, e := range entities {
		own[e.body] = true
	}

	solid := func(f *physics.Fixture) bool {
		return !f.IsSensor() && !own[f.GetBody()]
	}

	for _, e := range entities {
		if !pg.inBounds(e.visible) {
			return false
		}
		if len(pg.space.OverlappingFixtures(e.visible, solid)) > 0 {
			return false
		}
	}

	return true
}

func (pg *Playground) inBounds(f *physics.Fixture) bool {
	bb := f.GetAABB()
	return bb.Lower.GetX() >= 0 && bb.Lower.GetY() >= 0 &&
		bb.Upper.GetX() <= pg.size.GetX() && bb.Upper.GetY() <= pg.size.GetY()
}

// Remove takes an element out of the world, releasing any grasp on it first.
// Temporary elements are forgotten, the others come back on reset.
func (pg *Playground) Remove(element SceneElement) {
	base := element.Base()
	if base.playground != pg || !base.InWorld() {
		return
	}

	if g, ok := pg.holders[element]; ok {
		g.release(pg.space)
		delete(pg.holders, element)
	}

	for agent, guard := range pg.teleportGuards {
		if guard == element {
			delete(pg.teleportGuards, agent)
		}
	}

	item := pg.manager.GetEntityByID(base.id)
	if item == nil {
		return
	}

	base.destroy()
	item.Entity.RemoveComponent(pg.bodyComponent)
	if base.temporary {
		pg.manager.DisposeEntities(item.Entity)
		base.id = 0
		base.playground = nil
	} else {
		item.Entity.AddComponent(pg.disappearedComponent, element)
	}

	pg.surfaceDirty = true
	utils.Debug("playground", fmt.Sprintf("%s removed", base.name))
}

// RemoveAgent takes the agent out for good
func (pg *Playground) RemoveAgent(agent *Agent) {
	if agent.playground != pg {
		return
	}

	for _, g := range agent.graspers() {
		if g.held != nil {
			delete(pg.holders, g.held)
			g.release(pg.space)
		}
	}
	delete(pg.teleportGuards, agent)

	for _, p := range agent.parts {
		p.destroy()
		if item := pg.manager.GetEntityByID(p.id); item != nil {
			pg.manager.DisposeEntities(item.Entity)
		}
		p.id = 0
		p.playground = nil
	}

	if item := pg.manager.GetEntityByID(agent.id); item != nil {
		pg.manager.DisposeEntities(item.Entity)
	}
	agent.id = 0
	agent.playground = nil
	pg.surfaceDirty = true
}

func (pg *Playground) AddSpawner(field *Field) {
	pg.spawners = append(pg.spawners, field)
}

func (pg *Playground) AddTimer(timer Timer) {
	pg.timers = append(pg.timers, timer)
}

///////////////////////////////////////////////////////////////////////////////
// tick
///////////////////////////////////////////////////////////////////////////////

// Update runs one tick: spawners, timers, pre-step hooks, then the physics in
// substeps during which the interaction handlers fire. A broken world
// invariant, such as two grasps on one element, is returned as an error and
// the playground must not be stepped further.
func (pg *Playground) Update(substeps int) error {
	if substeps <= 0 {
		substeps = pg.substeps
	}
	pg.violation = nil

	watch := utils.MakeStopwatch("playground::Update()")

	watch.Start("spawners")
	for _, field := range pg.spawners {
		pg.spawn(field)
	}
	watch.Stop("spawners")

	watch.Start("timers")
	for _, timer := range pg.timers {
		if !timer.Step() {
			continue
		}
		for _, target := range timer.Targets() {
			pg.applyNow(target.OnTimer())
		}
	}
	watch.Stop("timers")

	watch.Start("preStep")
	for _, e := range pg.Elements() {
		e.PreStep()
	}
	agents := pg.Agents()
	for _, a := range agents {
		a.preStep()
	}
	pg.clearTeleportGuards()
	for _, a := range agents {
		a.applyIntents()
	}
	watch.Stop("preStep")

	watch.Start("physics")
	dt := 1 / float64(substeps)
	for i := 0; i < substeps; i++ {
		for _, a := range agents {
			a.applyPhysics()
		}
		pg.releaseGrasps()
		pg.space.Step(dt)
		pg.flush()
	}
	watch.Stop("physics")

	watch.Start("communication")
	deliverMessages(agents)
	watch.Stop("communication")

	pg.tick++
	pg.surfaceDirty = true

	utils.Debug("playground", watch.String())

	return pg.violation
}

func (pg *Playground) spawn(field *Field) {
	element, ok := field.next(pg.src)
	if !ok {
		return
	}

	if err := pg.AddElement(element, field.area, false, field.attempts); err != nil {
		utils.Debug("playground", errors.Wrap(err, "field production").Error())
		return
	}

	field.record(element)
}

// applyNow applies an outcome outside of a physics step
func (pg *Playground) applyNow(outcome Outcome) {
	applyOutcome{outcome: outcome}.apply(pg)
	pg.flush()
}

// flush adds the elements and moves the agents requested during a step
func (pg *Playground) flush() {
	adds := pg.pendingAdds
	pg.pendingAdds = nil
	for _, p := range adds {
		if err := pg.AddElement(p.Element, p.Coordinates, p.AllowOverlapping, 0); err != nil {
			// counts as produced and gone
			p.Element.Base().placed = true
			utils.Debug("playground", err.Error())
		}
	}

	moves := pg.pendingMoves
	pg.pendingMoves = nil
	for _, m := range moves {
		if m.agent.InWorld() {
			m.agent.relocate(m.destination, m.keepInertia)
		}
	}
}

func (pg *Playground) releaseGrasps() {
	for element, g := range pg.holders {
		if !g.isGrasping {
			g.release(pg.space)
			delete(pg.holders, element)
		}
	}
}

// clearTeleportGuards forgets the landing zones agents have left
func (pg *Playground) clearTeleportGuards() {
	for agent, landing := range pg.teleportGuards {
		if !agent.InWorld() || !pg.touches(agent, landing) {
			delete(pg.teleportGuards, agent)
		}
	}
}

func (pg *Playground) touches(agent *Agent, element SceneElement) bool {
	base := element.Base()
	if !base.InWorld() {
		return false
	}

	zone := base.interaction
	if zone == nil {
		zone = base.visible
	}

	for _, p := range agent.parts {
		_, dist := zone.NearestPoint(p.Position())
		if dist-p.Radius() <= sensorSkin {
			return true
		}
	}

	return false
}

///////////////////////////////////////////////////////////////////////////////
// reset
///////////////////////////////////////////////////////////////////////////////

// Reset starts a new episode: temporary elements go, the others come back to
// their first placement, agents are placed again from their coordinates
func (pg *Playground) Reset() error {
	for element, g := range pg.holders {
		g.release(pg.space)
		delete(pg.holders, element)
	}
	pg.teleportGuards = make(map[*Agent]SceneElement)
	pg.pendingAdds = nil
	pg.pendingMoves = nil

	for _, e := range pg.Elements() {
		if e.Base().temporary {
			pg.Remove(e)
			continue
		}

		e.Reset()
		if e.Base().reshaped {
			pg.rebuild(e)
		}
	}

	for _, e := range pg.Disappeared() {
		e.Reset()
		pg.restore(e)
	}

	for _, field := range pg.spawners {
		field.Reset()
	}

	for _, timer := range pg.timers {
		timer.Reset()
	}

	for _, a := range pg.Agents() {
		a.reset()
		if err := pg.replace(a); err != nil {
			return err
		}
	}

	pg.done = false
	pg.tick = 0
	pg.surfaceDirty = true

	return nil
}

func (pg *Playground) rebuild(element SceneElement) {
	base := element.Base()
	item := pg.manager.GetEntityByID(base.id)

	item.Entity.RemoveComponent(pg.bodyComponent)
	base.build(pg.space, base.initialPosition, base.initialAngle)
	item.Entity.AddComponent(pg.bodyComponent, base)
}

func (pg *Playground) restore(element SceneElement) {
	base := element.Base()
	item := pg.manager.GetEntityByID(base.id)

	base.build(pg.space, base.initialPosition, base.initialAngle)
	item.Entity.RemoveComponent(pg.disappearedComponent)
	item.Entity.AddComponent(pg.bodyComponent, base)
}

// replace puts an agent back at rest, drawing from its coordinates
func (pg *Playground) replace(agent *Agent) error {
	parts := make([]*Entity, len(agent.parts))
	for i, p := range agent.parts {
		parts[i] = p.Entity
	}

	if trajectory, ok := agent.coordinates.(*Trajectory); ok {
		trajectory.Reset()
	}

	if err := pg.place(parts, agent.coordinates, agent.allowOverlapping, agent.maxAttempts, agent.setPose); err != nil {
		return errors.Wrapf(err, "%s", agent.name)
	}

	return nil
}
