package playground

import (
	"github.com/gaorkl/simple-playgrounds-sub000/game/sensor"
	"github.com/gaorkl/simple-playgrounds-sub000/physics"
	"github.com/pkg/errors"
)

// handlerFunc reads the two fixtures of a touching pair, in the order of its
// key, and returns the world changes to apply. Activating the element is how
// its outcome gets computed, so the element's own activated flag is the one
// piece of state a handler sets directly.
type handlerFunc func(pg *Playground, a, b *physics.Fixture) []mutation

type handlerKey struct {
	a, b Category
}

var handlerTable = map[handlerKey]handlerFunc{
	{CategoryPart, CategoryGraspable}:     handleGrasp,
	{CategoryPart, CategoryContact}:       handleContact,
	{CategoryPart, CategoryActivable}:     handleActivate,
	{CategoryGem, CategoryActivableByGem}: handleGem,
	{CategoryPart, CategoryTeleport}:      handleTeleport,
	{CategoryModifier, CategoryDevice}:    handleModifier,
	{CategoryPart, CategoryEdible}:        handleEat,
}

func handleGrasp(pg *Playground, a, b *physics.Fixture) []mutation {
	part, element := pg.partOf(a), pg.elementOf(b)
	if part == nil || element == nil {
		return nil
	}

	for _, act := range part.actuators {
		g, ok := act.(*Grasp)
		if ok && g.isGrasping && !g.IsHolding() {
			return []mutation{weld{grasp: g, element: element}}
		}
	}

	return nil
}

func handleContact(pg *Playground, a, b *physics.Fixture) []mutation {
	part := pg.partOf(a)
	element, ok := pg.elementOf(b).(Activable)
	if part == nil || !ok || element.IsActivated() {
		return nil
	}

	return activation(part.agent, element, element.Activate)
}

func handleActivate(pg *Playground, a, b *physics.Fixture) []mutation {
	part := pg.partOf(a)
	element, ok := pg.elementOf(b).(Activable)
	if part == nil || !ok || element.IsActivated() {
		return nil
	}

	for _, act := range part.actuators {
		activator, ok := act.(*Activate)
		if !ok || !activator.isActivating {
			continue
		}

		muts := activation(part.agent, element, element.Activate)
		return append(muts, consumeIntent{flag: &activator.isActivating})
	}

	return nil
}

func handleEat(pg *Playground, a, b *physics.Fixture) []mutation {
	part := pg.partOf(a)
	element, ok := pg.elementOf(b).(Edible)
	if part == nil || !ok || element.IsActivated() {
		return nil
	}

	for _, act := range part.actuators {
		eater, ok := act.(*Eat)
		if !ok || !eater.isEating {
			continue
		}

		muts := activation(part.agent, element, func(*Agent) Outcome { return element.Eat() })
		return append(muts, consumeIntent{flag: &eater.isEating})
	}

	return nil
}

// activation takes the reward of the element before running it, so that a
// reward changed by the activation is paid next time
func activation(agent *Agent, element RewardSource, activate func(*Agent) Outcome) []mutation {
	muts := make([]mutation, 0, 2)
	if reward, ok := element.TakeReward(); ok && reward != 0 {
		muts = append(muts, grantReward{agent: agent, amount: reward})
	}

	return append(muts, applyOutcome{outcome: activate(agent)})
}

// handleGem pays the agent closest to the gem: the gem, not an agent, is
// what touches the element
func handleGem(pg *Playground, a, b *physics.Fixture) []mutation {
	gem := pg.elementOf(a)
	element, ok := pg.elementOf(b).(GemActivable)
	if gem == nil || !ok || element.IsActivated() {
		return nil
	}

	outcome, ok := element.ActivateWithGem(gem)
	if !ok {
		return nil
	}

	muts := make([]mutation, 0, 2)
	if agent := pg.closestAgent(gem.Base().Position()); agent != nil {
		if reward, ok := element.TakeReward(); ok && reward != 0 {
			muts = append(muts, grantReward{agent: agent, amount: reward})
		}
	}

	return append(muts, applyOutcome{outcome: outcome})
}

func handleTeleport(pg *Playground, a, b *physics.Fixture) []mutation {
	part := pg.partOf(a)
	teleporter, ok := pg.elementOf(b).(Teleporter)
	if part == nil || !ok {
		return nil
	}

	agent := part.agent
	if agent.isTeleporting || pg.teleportGuards[agent] == SceneElement(teleporter) {
		return nil
	}

	dest, ok := teleporter.Energize(agent)
	if !ok {
		return nil
	}

	return []mutation{relocation{agent: agent, destination: dest, keepInertia: teleporter.KeepInertia()}}
}

func handleModifier(pg *Playground, a, b *physics.Fixture) []mutation {
	modifier, ok := pg.elementOf(a).(Modifier)
	part := pg.partOf(b)
	if !ok || part == nil {
		return nil
	}

	devices := part.agent.Devices()
	muts := make([]mutation, 0, len(devices))
	for _, d := range devices {
		muts = append(muts, modify{modifier: modifier, device: d})
	}

	return muts
}

///////////////////////////////////////////////////////////////////////////////
// mutations
///////////////////////////////////////////////////////////////////////////////

type mutation interface {
	apply(pg *Playground)
}

type grantReward struct {
	agent  *Agent
	amount float64
}

func (m grantReward) apply(pg *Playground) {
	m.agent.AddReward(m.amount)
}

// applyOutcome removes at once and defers additions to the end of the sub-step
type applyOutcome struct {
	outcome Outcome
}

func (m applyOutcome) apply(pg *Playground) {
	for _, e := range m.outcome.Remove {
		pg.Remove(e)
	}

	pg.pendingAdds = append(pg.pendingAdds, m.outcome.Add...)

	if m.outcome.Terminate {
		pg.done = true
	}
}

type weld struct {
	grasp   *Grasp
	element SceneElement
}

func (m weld) apply(pg *Playground) {
	if holder, ok := pg.holders[m.element]; ok {
		if holder != m.grasp && pg.violation == nil {
			pg.violation = errors.Wrapf(ErrGraspConflict, "%s", m.element.Base().Name())
		}
		return
	}

	m.grasp.weld(pg.space, m.element)
	pg.holders[m.element] = m.grasp
}

type relocation struct {
	agent       *Agent
	destination Destination
	keepInertia bool
}

func (m relocation) apply(pg *Playground) {
	m.agent.isTeleporting = true
	if m.destination.Landing != nil {
		pg.teleportGuards[m.agent] = m.destination.Landing
	}

	pg.pendingMoves = append(pg.pendingMoves, m)
}

type modify struct {
	modifier Modifier
	device   sensor.Device
}

func (m modify) apply(pg *Playground) {
	m.modifier.Modify(m.device)
}

// consumeIntent clears a one-shot actuator intent
type consumeIntent struct {
	flag *bool
}

func (m consumeIntent) apply(pg *Playground) {
	*m.flag = false
}
