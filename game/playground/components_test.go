package playground

import (
	"math"
	"testing"

	"github.com/gaorkl/simple-playgrounds-sub000/common/utils/vector"
	"github.com/gaorkl/simple-playgrounds-sub000/game/config"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestMakeGeometry(t *testing.T) {
	cases := []struct {
		name   string
		shape  ShapeKind
		radius float64
		size   []float64
		err    bool
	}{
		{"circle", ShapeCircle, 5, nil, false},
		{"rectangle", ShapeRectangle, 0, []float64{4, 2}, false},
		{"square", ShapeSquare, 3, nil, false},
		{"both", ShapeCircle, 5, []float64{4, 2}, true},
		{"none", ShapePentagon, 0, nil, true},
		{"rectangle with radius", ShapeRectangle, 5, nil, true},
		{"circle with size", ShapeCircle, 0, []float64{4, 2}, true},
		{"short size", ShapeRectangle, 0, []float64{4}, true},
		{"unknown", "star", 5, nil, true},
	}

	for _, c := range cases {
		_, err := MakeGeometry(c.shape, c.radius, c.size)
		if c.err {
			assert.Equal(t, ErrInvalidGeometry, errors.Cause(err), c.name)
		} else {
			assert.NoError(t, err, c.name)
		}
	}
}

func TestElementConfigErrors(t *testing.T) {
	_, err := NewElement(KindCandy, config.Params{"size": []interface{}{3, 3}})
	assert.Error(t, err, "pentagon with a size")

	_, err = NewElement(KindCandy, config.Params{"colour": "red"})
	assert.Equal(t, ErrInvalidConfig, errors.Cause(err))

	_, err = NewElement("spaceship", nil)
	assert.Equal(t, ErrUnknownKind, errors.Cause(err))

	_, err = NewElement(KindMovable, config.Params{"mass": 0})
	assert.Equal(t, ErrInvalidConfig, errors.Cause(err))

	_, err = NewApple(KindApple, config.Params{"shrink_ratio": 1.5})
	assert.Equal(t, ErrInvalidConfig, errors.Cause(err))

	_, err = NewDispenser(config.Params{"production_limit": 0})
	assert.Equal(t, ErrInvalidConfig, errors.Cause(err))
}

func TestLinkedElementsNeedIDs(t *testing.T) {
	door, err := NewDoor(nil)
	require.NoError(t, err)
	key, err := NewKey(nil)
	require.NoError(t, err)

	_, err = NewLock(door, key, nil)
	assert.Error(t, err)

	_, err = NewChest(key, nil, nil)
	assert.Error(t, err)

	a, err := NewPortal(nil)
	require.NoError(t, err)
	b, err := NewPortal(nil)
	require.NoError(t, err)
	assert.Error(t, LinkPortals(a, b))
}

func TestActionSpaces(t *testing.T) {
	part, err := NewPart(KindForwardBase, nil)
	require.NoError(t, err)

	_, err = NewGrasp(part, Discrete, 0, 0)
	assert.Equal(t, ErrInvalidActionSpace, errors.Cause(err))

	_, err = NewGrasp(part, Discrete, 0, math.NaN())
	assert.Equal(t, ErrInvalidActionSpace, errors.Cause(err))

	_, err = NewLinearForce(part, Longitudinal, Continuous, 0.5)
	assert.Equal(t, ErrInvalidActionSpace, errors.Cause(err))

	_, err = NewLinearForce(part, Longitudinal, Discrete)
	assert.Equal(t, ErrInvalidActionSpace, errors.Cause(err))

	force, err := NewLinearForce(part, Longitudinal, Continuous)
	require.NoError(t, err)
	require.NoError(t, force.SetCommand(3))
	assert.Equal(t, 1.0, force.Command())
	require.NoError(t, force.SetCommand(-3))
	assert.Equal(t, 0.0, force.Command())
	assert.Equal(t, ErrInvalidAction, errors.Cause(force.SetCommand(math.NaN())))

	centered, err := NewAngularVelocity(part, ContinuousCentered)
	require.NoError(t, err)
	require.NoError(t, centered.SetCommand(-3))
	assert.Equal(t, -1.0, centered.Command())

	steps, err := NewLinearForce(part, Lateral, Discrete, -1, 0.5, 1)
	require.NoError(t, err)
	assert.Equal(t, "lateral_force", steps.Name())
	lo, hi := steps.Bounds()
	assert.Equal(t, -1.0, lo)
	assert.Equal(t, 1.0, hi)
	assert.Equal(t, ErrInvalidAction, errors.Cause(steps.SetCommand(0.7)))
	require.NoError(t, steps.SetCommand(0.5))
	steps.Reset()
	assert.Equal(t, -1.0, steps.Command(), "rest is the first value without 0")

	grasp, err := NewGrasp(part, Discrete)
	require.NoError(t, err)
	assert.True(t, grasp.Interactive())
	assert.Equal(t, []float64{0, 1}, grasp.Values())
}

func TestDefaultActuators(t *testing.T) {
	cases := map[PartKind][]string{
		KindFixedBase:           {"angular_velocity"},
		KindForwardBase:         {"longitudinal_force", "angular_velocity"},
		KindForwardBackwardBase: {"longitudinal_force", "angular_velocity"},
		KindHolonomicBase:       {"longitudinal_force", "lateral_force", "angular_velocity"},
		KindHead:                {"head_joint"},
	}

	for kind, names := range cases {
		part, err := NewPart(kind, nil)
		require.NoError(t, err, kind)

		got := make([]string, 0)
		for _, a := range part.Actuators() {
			got = append(got, a.Name())
		}
		assert.Equal(t, names, got, kind)
	}
}

func TestAgentWithHead(t *testing.T) {
	pg := newRoom(t, 200, 200)

	agent, err := NewBaseAgent("scout", KindForwardBase, nil)
	require.NoError(t, err)

	head, err := NewPart(KindHead, nil)
	require.NoError(t, err)
	require.NoError(t, agent.AddPart(head, agent.Base(), vector.MakeNullVector2(), vector.MakeNullVector2(), 0))

	_, err = NewAgent("other", head)
	assert.Error(t, err, "a head cannot be a base")

	require.NoError(t, pg.AddAgent(agent, At(100, 100, 0), false, 1))
	assert.Equal(t, 3, pg.Space().JointCount(), "pivot, limit and motor")
	assert.Equal(t, agent, pg.Agent("scout"))

	command(t, agent, KindHead, "head_joint", 1)
	for i := 0; i < 5; i++ {
		pg.Update(0)
	}

	assert.Greater(t, head.Angle()-agent.Angle(), 0.1)
	assert.LessOrEqual(t, head.Angle()-agent.Angle(), math.Pi/2+0.2)
	assert.InDelta(t, 100, head.Position().GetX(), 0.5)

	require.NoError(t, pg.Reset())
	assert.InDelta(t, 0, head.Angle(), 1e-9)

	pg.RemoveAgent(agent)
	assert.Empty(t, pg.Agents())
	assert.Equal(t, 0, pg.Space().JointCount())
	assert.False(t, agent.InWorld())
}

func TestCountDownTimer(t *testing.T) {
	_, err := NewCountDownTimer(0)
	assert.Error(t, err)

	timer, err := NewCountDownTimer(3)
	require.NoError(t, err)

	fired := make([]bool, 0)
	for i := 0; i < 5; i++ {
		fired = append(fired, timer.Step())
	}
	assert.Equal(t, []bool{false, false, true, false, false}, fired)

	timer.Reset()
	assert.False(t, timer.Step())
	assert.False(t, timer.Step())
	assert.True(t, timer.Step())
}

func TestPeriodicTimerValidation(t *testing.T) {
	_, err := NewPeriodicTimer(nil)
	assert.Error(t, err)

	_, err = NewPeriodicTimer([]int{2, 0})
	assert.Error(t, err)
}

func TestTrajectory(t *testing.T) {
	waypoints := []vector.Vector2{vector.MakeVector2(0, 0), vector.MakeVector2(10, 0)}

	pingPong := NewTrajectory(waypoints, 5, false)
	xs := []float64{pingPong.Current().GetX()}
	for i := 0; i < 4; i++ {
		xs = append(xs, pingPong.Next().GetX())
	}
	assert.Equal(t, []float64{0, 5, 10, 5, 0}, xs)

	loop := NewTrajectory(append(waypoints, vector.MakeVector2(10, 10)), 10, true)
	assert.Equal(t, 3, loop.Len())
	loop.Next()
	loop.Next()
	assert.True(t, loop.Next().Equals(vector.MakeVector2(0, 0)))

	loop.Next()
	loop.Reset()
	assert.True(t, loop.Current().Equals(vector.MakeVector2(0, 0)))
}

func TestMovingElementFollowsTrajectory(t *testing.T) {
	pg := newRoom(t, 200, 200)

	waypoints := []vector.Vector2{vector.MakeVector2(50, 100), vector.MakeVector2(150, 100)}
	trajectory := NewTrajectory(waypoints, 10, false)

	e, err := NewBasicElement(KindBasic, config.Params{"radius": 5})
	require.NoError(t, err)
	require.NoError(t, pg.AddElement(e, trajectory, false, 1))
	assert.True(t, e.Base().Position().Equals(vector.MakeVector2(50, 100)))

	for i := 0; i < 3; i++ {
		pg.Update(0)
	}
	assert.InDelta(t, 80, e.Base().Position().GetX(), 1e-9)

	require.NoError(t, pg.Reset())
	assert.InDelta(t, 50, e.Base().Position().GetX(), 1e-9)
}

func TestSamplers(t *testing.T) {
	src := rand.NewSource(1)
	center := vector.MakeVector2(50, 50)

	for i := 0; i < 100; i++ {
		p, _ := CircleSampler{Center: center, Radius: 10}.Sample(src)
		assert.LessOrEqual(t, p.Dist(center), 10.0)

		p, angle := RectangleSampler{Center: center, Width: 20, Length: 4, RandomAngle: true}.Sample(src)
		assert.InDelta(t, 50, p.GetX(), 10)
		assert.InDelta(t, 50, p.GetY(), 2)
		assert.LessOrEqual(t, math.Abs(angle), math.Pi)

		p, _ = GaussianSampler{Center: center, Sigma: 20, Radius: 5}.Sample(src)
		assert.LessOrEqual(t, p.Dist(center), 5.0+1e-9)
	}
}
