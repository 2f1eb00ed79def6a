package playground

import (
	"math"
	"testing"

	"github.com/gaorkl/simple-playgrounds-sub000/common/utils/vector"
	"github.com/gaorkl/simple-playgrounds-sub000/game/config"
	"github.com/gaorkl/simple-playgrounds-sub000/physics"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func newRoom(t *testing.T, width, length float64) *Playground {
	t.Helper()

	layout, err := NewPlayground(LayoutSingleRoom, config.Params{
		"size": []interface{}{width, length},
		"seed": 7,
	})
	require.NoError(t, err)

	return layout.Playground
}

func addElement(t *testing.T, pg *Playground, element SceneElement, x, y float64) {
	t.Helper()
	require.NoError(t, pg.AddElement(element, At(x, y, 0), false, 1))
}

func addAgent(t *testing.T, pg *Playground, kind PartKind, x, y, angle float64) *Agent {
	t.Helper()

	agent, err := NewBaseAgent("", kind, nil)
	require.NoError(t, err)
	require.NoError(t, pg.AddAgent(agent, At(x, y, angle), false, 1))

	return agent
}

func command(t *testing.T, agent *Agent, part PartKind, name string, value float64) {
	t.Helper()

	act := agent.Actuator(part, name)
	require.NotNil(t, act, name)
	require.NoError(t, act.SetCommand(value))
}

func addGrasp(t *testing.T, agent *Agent) *Grasp {
	t.Helper()

	g, err := NewGrasp(agent.Base(), Discrete)
	require.NoError(t, err)
	agent.Base().AddActuator(g)

	return g
}

// an agent driving into a goal zone ends the episode with one reward
func TestGoalZoneTerminatesEpisode(t *testing.T) {
	pg := newRoom(t, 200, 200)

	goal, err := NewGoalZone(nil)
	require.NoError(t, err)
	addElement(t, pg, goal, 20, 20)

	agent := addAgent(t, pg, KindForwardBase, 100, 100, -3*math.Pi/4)

	total := 0.0
	for i := 0; i < 200 && !pg.Done(); i++ {
		command(t, agent, KindForwardBase, "longitudinal_force", 1)
		pg.Update(0)
		total += agent.Reward()
	}

	assert.True(t, pg.Done())
	assert.Equal(t, 100.0, total)
	assert.Equal(t, 1, goal.Activations())
}

// a candy pays once and disappears until the next reset
func TestCandyRemovedOnContact(t *testing.T) {
	pg := newRoom(t, 200, 200)

	candy, err := NewCandy(nil)
	require.NoError(t, err)
	addElement(t, pg, candy, 150, 100)

	agent := addAgent(t, pg, KindForwardBase, 100, 100, 0)

	total := 0.0
	for i := 0; i < 40; i++ {
		command(t, agent, KindForwardBase, "longitudinal_force", 1)
		pg.Update(0)
		total += agent.Reward()
	}

	assert.Equal(t, 5.0, total)
	assert.False(t, candy.Base().InWorld())
	assert.NotContains(t, pg.Elements(), SceneElement(candy))
	assert.Contains(t, pg.Disappeared(), SceneElement(candy))
	assert.False(t, pg.Done())

	require.NoError(t, pg.Reset())
	assert.True(t, candy.Base().InWorld())
	assert.True(t, candy.Base().Position().Equals(vector.MakeVector2(150, 100)))
	assert.Empty(t, pg.Disappeared())
	assert.Equal(t, 0, pg.Tick())
	assert.InDelta(t, 100, agent.Position().GetX(), 1e-9)
	assert.InDelta(t, 100, agent.Position().GetY(), 1e-9)
}

func TestGraspAndRelease(t *testing.T) {
	pg := newRoom(t, 200, 200)

	ball, err := NewBasicElement(KindMovable, nil)
	require.NoError(t, err)
	addElement(t, pg, ball, 120, 100)

	agent := addAgent(t, pg, KindForwardBase, 100, 100, 0)
	grasp := addGrasp(t, agent)

	assert.Equal(t, 0, pg.Space().JointCount())

	require.NoError(t, grasp.SetCommand(1))
	pg.Update(0)

	assert.True(t, grasp.IsHolding())
	assert.Equal(t, SceneElement(ball), grasp.Held())
	assert.Equal(t, grasp, pg.Holder(ball))
	assert.Equal(t, 2, pg.Space().JointCount())

	// holding keeps the joints
	pg.Update(0)
	assert.Equal(t, 2, pg.Space().JointCount())

	require.NoError(t, grasp.SetCommand(0))
	pg.Update(0)

	assert.False(t, grasp.IsHolding())
	assert.Nil(t, pg.Holder(ball))
	assert.Equal(t, 0, pg.Space().JointCount())
}

func TestGraspIsExclusive(t *testing.T) {
	pg := newRoom(t, 200, 200)

	ball, err := NewBasicElement(KindMovable, nil)
	require.NoError(t, err)
	addElement(t, pg, ball, 120, 100)

	left := addAgent(t, pg, KindForwardBase, 100, 100, 0)
	right := addAgent(t, pg, KindForwardBase, 140, 100, math.Pi)
	gl, gr := addGrasp(t, left), addGrasp(t, right)

	require.NoError(t, gl.SetCommand(1))
	require.NoError(t, gr.SetCommand(1))
	err = pg.Update(0)

	assert.Equal(t, ErrGraspConflict, errors.Cause(err))
	assert.Equal(t, 2, pg.Space().JointCount())
	assert.True(t, gl.IsHolding() != gr.IsHolding(), "one holder only")
}

func TestRemovingHeldElementReleasesGrasp(t *testing.T) {
	pg := newRoom(t, 200, 200)

	ball, err := NewBasicElement(KindMovable, nil)
	require.NoError(t, err)
	addElement(t, pg, ball, 120, 100)

	agent := addAgent(t, pg, KindForwardBase, 100, 100, 0)
	grasp := addGrasp(t, agent)

	require.NoError(t, grasp.SetCommand(1))
	pg.Update(0)
	require.True(t, grasp.IsHolding())

	pg.Remove(ball)
	assert.False(t, grasp.IsHolding())
	assert.Equal(t, 0, pg.Space().JointCount())
}

// a reward zone pays once per tick, never more than its total
func TestRewardZoneOncePerTick(t *testing.T) {
	pg := newRoom(t, 200, 200)

	zone, err := NewRewardZone(config.Params{"reward": 2, "total_reward": 7})
	require.NoError(t, err)
	addElement(t, pg, zone, 100, 100)

	agent := addAgent(t, pg, KindForwardBase, 100, 100, 0)

	rewards := make([]float64, 0)
	for i := 0; i < 6; i++ {
		pg.Update(0)
		rewards = append(rewards, agent.Reward())
	}

	assert.Equal(t, []float64{2, 2, 2, 1, 0, 0}, rewards)
	assert.Equal(t, 0.0, zone.Remaining())

	require.NoError(t, pg.Reset())
	assert.Equal(t, 7.0, zone.Remaining())
}

func TestDispenserActivatesOncePerTick(t *testing.T) {
	pg := newRoom(t, 200, 200)

	produce := KindFactory(KindBasic, config.Params{"radius": 3})
	dispenser, err := NewDispenserOf(produce, config.Params{"production_limit": 2})
	require.NoError(t, err)
	addElement(t, pg, dispenser, 100, 100)

	agent := addAgent(t, pg, KindForwardBase, 75, 100, 0)
	activate, err := NewActivate(agent.Base(), Discrete)
	require.NoError(t, err)
	agent.Base().AddActuator(activate)

	require.NoError(t, activate.SetCommand(1))
	pg.Update(0)

	assert.Equal(t, 1, dispenser.TotalProduced())
	require.Len(t, dispenser.Produced(), 1)

	produced := dispenser.Produced()[0]
	assert.True(t, produced.Base().InWorld())
	assert.True(t, produced.Base().IsTemporary())
	assert.LessOrEqual(t, produced.Base().Position().Dist(dispenser.Base().Position()), 40.0+1e-9)

	// no command, no production
	require.NoError(t, activate.SetCommand(0))
	pg.Update(0)
	assert.Equal(t, 1, dispenser.TotalProduced())

	for i := 0; i < 5; i++ {
		require.NoError(t, activate.SetCommand(1))
		pg.Update(0)
	}
	assert.Equal(t, 2, dispenser.TotalProduced(), "production limit")

	require.NoError(t, pg.Reset())
	assert.Equal(t, 0, dispenser.TotalProduced())
	for _, e := range pg.Elements() {
		assert.False(t, e.Base().IsTemporary(), "temporary elements leave on reset")
	}
}

// the coin is consumed and the closest agent is paid
func TestVendingMachinePaysClosestAgent(t *testing.T) {
	pg := newRoom(t, 200, 200)

	machine, err := NewVendingMachine(nil)
	require.NoError(t, err)
	addElement(t, pg, machine, 100, 100)

	coin, err := NewCoin(nil)
	require.NoError(t, err)
	addElement(t, pg, coin, 100, 117)

	near := addAgent(t, pg, KindFixedBase, 60, 100, 0)
	far := addAgent(t, pg, KindFixedBase, 170, 170, 0)

	pg.Update(0)

	assert.Equal(t, 10.0, near.Reward())
	assert.Equal(t, 0.0, far.Reward())
	assert.False(t, coin.Base().InWorld())
	assert.True(t, machine.Base().InWorld())
}

// the agent nearest the coin is paid, not the one nearest the machine
func TestGemCreditsAgentClosestToGem(t *testing.T) {
	pg := newRoom(t, 200, 200)

	machine, err := NewVendingMachine(nil)
	require.NoError(t, err)
	addElement(t, pg, machine, 100, 100)

	coin, err := NewCoin(nil)
	require.NoError(t, err)
	addElement(t, pg, coin, 100, 117)

	nearCoin := addAgent(t, pg, KindFixedBase, 100, 152, 0)
	nearMachine := addAgent(t, pg, KindFixedBase, 100, 63, 0)

	require.Less(t, nearCoin.Position().Dist(coin.Base().Position()), nearMachine.Position().Dist(coin.Base().Position()))
	require.Less(t, nearMachine.Position().Dist(machine.Base().Position()), nearCoin.Position().Dist(machine.Base().Position()))

	pg.Update(0)

	assert.Equal(t, 10.0, nearCoin.Reward())
	assert.Equal(t, 0.0, nearMachine.Reward())
	assert.False(t, coin.Base().InWorld())
}

func TestLockOpensDoor(t *testing.T) {
	pg := newRoom(t, 200, 200)

	door, err := NewDoor(nil)
	require.NoError(t, err)
	addElement(t, pg, door, 160, 100)

	key, err := NewKey(nil)
	require.NoError(t, err)
	addElement(t, pg, key, 100, 115)

	lock, err := NewLock(door, key, nil)
	require.NoError(t, err)
	addElement(t, pg, lock, 100, 100)

	assert.False(t, door.IsOpen())
	pg.Update(0)

	assert.True(t, door.IsOpen())
	assert.False(t, key.Base().InWorld())

	require.NoError(t, pg.Reset())
	assert.False(t, door.IsOpen())
	assert.True(t, key.Base().InWorld())
}

func TestLockRequiresItsKey(t *testing.T) {
	pg := newRoom(t, 200, 200)

	door, err := NewDoor(nil)
	require.NoError(t, err)
	addElement(t, pg, door, 160, 100)

	key, err := NewKey(nil)
	require.NoError(t, err)
	addElement(t, pg, key, 30, 30)

	other, err := NewKey(nil)
	require.NoError(t, err)
	addElement(t, pg, other, 100, 115)

	lock, err := NewLock(door, key, nil)
	require.NoError(t, err)
	addElement(t, pg, lock, 100, 100)

	pg.Update(0)
	assert.False(t, door.IsOpen())
	assert.True(t, other.Base().InWorld())
}

func TestTeleportToFixedDestination(t *testing.T) {
	pg := newRoom(t, 200, 200)

	teleport, err := NewTeleport(config.Params{"keep_inertia": false})
	require.NoError(t, err)
	teleport.SetDestination(At(150, 150, math.Pi/2))
	addElement(t, pg, teleport, 100, 100)

	agent := addAgent(t, pg, KindForwardBase, 100, 100, 0)

	pg.Update(0)

	assert.True(t, agent.IsTeleporting())
	assert.InDelta(t, 150, agent.Position().GetX(), 1e-6)
	assert.InDelta(t, 150, agent.Position().GetY(), 1e-6)
	assert.InDelta(t, math.Pi/2, agent.Angle(), 1e-6)
	assert.True(t, agent.Velocity().IsNull())
}

// landing on a linked portal does not send the agent back
func TestPortalsDoNotBounce(t *testing.T) {
	pg := newRoom(t, 300, 200)

	in, err := NewPortal(nil)
	require.NoError(t, err)
	out, err := NewPortal(nil)
	require.NoError(t, err)

	addElement(t, pg, in, 50, 100)
	require.NoError(t, pg.AddElement(out, At(250, 100, math.Pi), false, 1))
	require.NoError(t, LinkPortals(in, out))

	agent := addAgent(t, pg, KindForwardBase, 50, 100, 0)

	pg.Update(0)
	assert.InDelta(t, 250, agent.Position().GetX(), 1)

	pg.Update(0)
	pg.Update(0)
	assert.Greater(t, agent.Position().GetX(), 150.0, "still next to the output portal")
}

func TestPlacementAvoidsOverlaps(t *testing.T) {
	pg := newRoom(t, 200, 200)

	area := RectangleSampler{Center: vector.MakeVector2(100, 100), Width: 180, Length: 180, RandomAngle: true}
	for i := 0; i < 25; i++ {
		e, err := NewBasicElement(KindBasic, config.Params{"radius": 6})
		require.NoError(t, err)
		require.NoError(t, pg.AddElement(e, area, false, 200))
	}

	elements := pg.Elements()
	for i, a := range elements {
		if _, isWall := a.(*Wall); isWall {
			continue
		}
		for _, b := range elements[i+1:] {
			assert.False(t, physics.Overlaps(a.Base().VisibleFixture(), b.Base().VisibleFixture()),
				"%s overlaps %s", a.Base().Name(), b.Base().Name())
		}
	}
}

func TestPlacementFailure(t *testing.T) {
	pg := newRoom(t, 50, 50)

	e, err := NewBasicElement(KindBasic, config.Params{"physical_shape": "circle", "radius": 30})
	require.NoError(t, err)

	err = pg.AddElement(e, At(25, 25, 0), false, 5)
	require.Error(t, err)
	assert.Equal(t, ErrPlacementFailed, errors.Cause(err))
	assert.False(t, e.Base().InWorld())
	assert.Zero(t, e.Base().ID())

	// forced placement ignores the bounds
	require.NoError(t, pg.AddElement(e, At(25, 25, 0), true, 1))
	assert.True(t, e.Base().InWorld())
}

// scriptedPoses hands out its poses in order and then repeats the last one
type scriptedPoses []vector.Vector2

func (s *scriptedPoses) Sample(rand.Source) (vector.Vector2, float64) {
	pose := (*s)[0]
	if len(*s) > 1 {
		*s = (*s)[1:]
	}

	return pose, 0
}

// a retried placement moves the one body it built
func TestPlacementRetryBuildsOneBody(t *testing.T) {
	pg := newRoom(t, 200, 200)

	blocker, err := NewBasicElement(KindBasic, nil)
	require.NoError(t, err)
	addElement(t, pg, blocker, 100, 100)

	before := pg.Space().BodyCount()

	e, err := NewBasicElement(KindMovable, nil)
	require.NoError(t, err)
	poses := scriptedPoses{
		vector.MakeVector2(100, 100),
		vector.MakeVector2(102, 98),
		vector.MakeVector2(40, 40),
	}
	require.NoError(t, pg.AddElement(e, &poses, false, 10))

	assert.Equal(t, before+1, pg.Space().BodyCount())
	assert.True(t, e.Base().Position().Equals(vector.MakeVector2(40, 40)))
	for _, f := range pg.Space().OverlappingFixtures(blocker.Base().VisibleFixture(), nil) {
		assert.NotEqual(t, e.Base(), pg.EntityFromFixture(f))
	}

	require.NoError(t, pg.Reset())
	assert.Equal(t, before+1, pg.Space().BodyCount())
	assert.True(t, e.Base().Position().Equals(vector.MakeVector2(40, 40)))
}

// a failed placement leaves no body behind
func TestPlacementFailureBuildsNoBody(t *testing.T) {
	pg := newRoom(t, 200, 200)

	blocker, err := NewBasicElement(KindBasic, nil)
	require.NoError(t, err)
	addElement(t, pg, blocker, 100, 100)

	before := pg.Space().BodyCount()

	e, err := NewBasicElement(KindMovable, nil)
	require.NoError(t, err)
	poses := scriptedPoses{vector.MakeVector2(100, 100)}
	err = pg.AddElement(e, &poses, false, 4)

	assert.Equal(t, ErrPlacementFailed, errors.Cause(err))
	assert.Equal(t, before, pg.Space().BodyCount())
}

// two agents activating one dispenser in the same tick produce once
func TestActivationOncePerTickWithTwoAgents(t *testing.T) {
	pg := newRoom(t, 200, 200)

	produce := KindFactory(KindBasic, config.Params{"radius": 3})
	dispenser, err := NewDispenserOf(produce, config.Params{"production_limit": 5})
	require.NoError(t, err)
	addElement(t, pg, dispenser, 100, 100)

	activators := make([]*Activate, 0, 2)
	for _, pose := range [][2]float64{{75, 0}, {125, math.Pi}} {
		agent := addAgent(t, pg, KindForwardBase, pose[0], 100, pose[1])
		activate, err := NewActivate(agent.Base(), Discrete)
		require.NoError(t, err)
		agent.Base().AddActuator(activate)
		activators = append(activators, activate)
	}

	for _, a := range activators {
		require.NoError(t, a.SetCommand(1))
	}
	require.NoError(t, pg.Update(0))

	assert.Equal(t, 1, dispenser.TotalProduced())
	assert.Len(t, dispenser.Produced(), 1)
}

// a movable element pushed around comes back to rest at its first pose
func TestResetRestoresMovableElement(t *testing.T) {
	pg := newRoom(t, 200, 200)

	ball, err := NewBasicElement(KindMovable, nil)
	require.NoError(t, err)
	addElement(t, pg, ball, 120, 100)

	agent := addAgent(t, pg, KindForwardBase, 100, 100, 0)
	for i := 0; i < 30; i++ {
		command(t, agent, KindForwardBase, "longitudinal_force", 1)
		pg.Update(0)
	}

	require.Greater(t, ball.Base().Position().GetX(), 125.0, "the agent pushed the ball")

	require.NoError(t, pg.Reset())
	assert.InDelta(t, 120, ball.Base().Position().GetX(), 1e-9)
	assert.InDelta(t, 100, ball.Base().Position().GetY(), 1e-9)
	assert.InDelta(t, 0, ball.Base().Angle(), 1e-9)
	assert.True(t, ball.Base().Velocity().IsNull())
	assert.Zero(t, ball.Base().AngularVelocity())
}

func TestAddTwice(t *testing.T) {
	pg := newRoom(t, 200, 200)

	e, err := NewBasicElement(KindBasic, nil)
	require.NoError(t, err)
	addElement(t, pg, e, 50, 50)

	err = pg.AddElement(e, At(150, 150, 0), false, 1)
	assert.Equal(t, ErrAlreadyInPlayground, errors.Cause(err))

	other := newRoom(t, 200, 200)
	err = other.AddElement(e, At(150, 150, 0), false, 1)
	assert.Equal(t, ErrAlreadyInPlayground, errors.Cause(err))
}

func TestEntityFromFixture(t *testing.T) {
	pg := newRoom(t, 200, 200)

	candy, err := NewCandy(nil)
	require.NoError(t, err)
	addElement(t, pg, candy, 50, 50)

	base := candy.Base()
	assert.Equal(t, base, pg.EntityFromFixture(base.VisibleFixture()))
	assert.Equal(t, base, pg.EntityFromFixture(base.InteractionFixture()))
	assert.NotNil(t, pg.VisibleEntity(base.VisibleFixture()))
	assert.Nil(t, pg.VisibleEntity(base.InteractionFixture()))

	pg.Remove(candy)
	assert.Nil(t, pg.EntityFromFixture(base.VisibleFixture()))
	assert.Equal(t, SceneElement(candy), pg.ElementByID(base.ID()))
}

func TestAppleShrinksWhenEaten(t *testing.T) {
	pg := newRoom(t, 200, 200)

	apple, err := NewApple(KindApple, config.Params{"interaction_range": 5})
	require.NoError(t, err)
	addElement(t, pg, apple, 100, 100)

	agent := addAgent(t, pg, KindForwardBase, 78, 100, 0)
	eat, err := NewEat(agent.Base(), Discrete)
	require.NoError(t, err)
	agent.Base().AddActuator(eat)

	require.NoError(t, eat.SetCommand(1))
	pg.Update(0)

	assert.Equal(t, 10.0, agent.Reward())
	assert.True(t, apple.Base().InWorld())
	assert.InDelta(t, 8, apple.Base().Radius(), 1e-9)
	assert.InDelta(t, 8, apple.Reward(), 1e-9)

	require.NoError(t, eat.SetCommand(1))
	pg.Update(0)
	assert.InDelta(t, 8, agent.Reward(), 1e-9)

	require.NoError(t, pg.Reset())
	assert.InDelta(t, 10, apple.Base().Radius(), 1e-9)
	assert.InDelta(t, 10, apple.Reward(), 1e-9)
}

func TestFieldRespectsCaps(t *testing.T) {
	pg := newRoom(t, 200, 200)

	area := RectangleSampler{Center: vector.MakeVector2(100, 100), Width: 150, Length: 150}
	field, err := NewField(KindFactory(KindCandy, nil), area, 1, 3, 5)
	require.NoError(t, err)
	pg.AddSpawner(field)

	for i := 0; i < 10; i++ {
		pg.Update(0)
	}

	assert.Len(t, field.Produced(), 3)
	assert.Equal(t, 3, field.TotalProduced())

	pg.Remove(field.Produced()[0])
	pg.Update(0)
	assert.Len(t, field.Produced(), 3)
	assert.Equal(t, 4, field.TotalProduced())

	require.NoError(t, pg.Reset())
	assert.Empty(t, field.Produced())
}

func TestFieldValidation(t *testing.T) {
	area := At(10, 10, 0)
	for name, build := range map[string]func() (*Field, error){
		"probability": func() (*Field, error) { return NewField(KindFactory(KindCandy, nil), area, 0, 1, 1) },
		"max alive":   func() (*Field, error) { return NewField(KindFactory(KindCandy, nil), area, 1, 0, 1) },
		"limit":       func() (*Field, error) { return NewField(KindFactory(KindCandy, nil), area, 1, 1, 0) },
		"factory":     func() (*Field, error) { return NewField(KindFactory("nope", nil), area, 1, 1, 1) },
	} {
		_, err := build()
		assert.Error(t, err, name)
	}
}

func TestTimerTogglesDoor(t *testing.T) {
	pg := newRoom(t, 200, 200)

	door, err := NewDoor(nil)
	require.NoError(t, err)
	addElement(t, pg, door, 100, 100)

	timer, err := NewPeriodicTimer([]int{2, 3}, door)
	require.NoError(t, err)
	pg.AddTimer(timer)

	open := make([]bool, 0)
	for i := 0; i < 6; i++ {
		pg.Update(0)
		open = append(open, door.IsOpen())
	}

	assert.Equal(t, []bool{false, true, true, true, false, false}, open)
}

func TestConnectedRoomsLayout(t *testing.T) {
	layout, err := NewPlayground(LayoutConnectedRooms, nil)
	require.NoError(t, err)

	assert.Len(t, layout.Rooms, 2)
	assert.Len(t, layout.Walls, 6)

	room, err := layout.Room(1, 0)
	require.NoError(t, err)
	assert.True(t, room.Center.Equals(vector.MakeVector2(300, 100)))

	_, err = layout.Room(2, 0)
	assert.Error(t, err)

	// the doorstep lets a disc through the middle wall
	_, blocked := layout.Playground.SegmentQueryFirst(vector.MakeVector2(150, 100), vector.MakeVector2(250, 100), 5, nil)
	assert.False(t, blocked)
	_, blocked = layout.Playground.SegmentQueryFirst(vector.MakeVector2(150, 20), vector.MakeVector2(250, 20), 5, nil)
	assert.True(t, blocked)
}

func TestUnknownLayout(t *testing.T) {
	_, err := NewPlayground("maze", nil)
	assert.Error(t, err)
}

func TestSurface(t *testing.T) {
	pg := newRoom(t, 100, 80)

	goal, err := NewGoalZone(nil)
	require.NoError(t, err)
	addElement(t, pg, goal, 30, 30)

	surface := pg.Surface()
	require.Equal(t, 100, surface.Bounds().Dx())
	require.Equal(t, 80, surface.Bounds().Dy())

	c := surface.RGBAAt(30, 80-1-30)
	assert.Equal(t, uint8(200), c.G)
	assert.Equal(t, uint8(0), c.R)

	corner := surface.RGBAAt(95, 5)
	assert.Equal(t, floorColor, corner)

	assert.Same(t, surface, pg.Surface(), "cached until the next change")
}
