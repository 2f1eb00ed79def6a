package engine

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/gaorkl/simple-playgrounds-sub000/common/recording"
	"github.com/gaorkl/simple-playgrounds-sub000/game/config"
	"github.com/gaorkl/simple-playgrounds-sub000/game/playground"
	"github.com/gaorkl/simple-playgrounds-sub000/game/sensor"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRoom(t *testing.T) *playground.Playground {
	t.Helper()

	layout, err := playground.NewPlayground(playground.LayoutSingleRoom, config.Params{
		"size": []interface{}{200, 200},
		"seed": 3,
	})
	require.NoError(t, err)

	return layout.Playground
}

func newAgent(t *testing.T, pg *playground.Playground, name string, kind playground.PartKind, x, y float64) *playground.Agent {
	t.Helper()

	agent, err := playground.NewBaseAgent(name, kind, nil)
	require.NoError(t, err)
	require.NoError(t, pg.AddAgent(agent, playground.At(x, y, 0), false, 1))

	return agent
}

func TestStepSumsRewards(t *testing.T) {
	pg := newRoom(t)

	zone, err := playground.NewRewardZone(config.Params{"reward": 2, "total_reward": 7})
	require.NoError(t, err)
	require.NoError(t, pg.AddElement(zone, playground.At(100, 100, 0), false, 1))

	agent := newAgent(t, pg, "walker", playground.KindForwardBase, 100, 100)
	e := New(pg, Options{})

	rewards, err := e.Step(nil, 3)
	require.NoError(t, err)
	assert.Equal(t, 6.0, rewards[agent])

	rewards, err = e.Step(nil, 3)
	require.NoError(t, err)
	assert.Equal(t, 1.0, rewards[agent])
	assert.Equal(t, 6, e.Elapsed())
}

func TestInteractiveActuatorsActOnLastTick(t *testing.T) {
	pg := newRoom(t)

	produce := playground.KindFactory(playground.KindBasic, config.Params{"radius": 3})
	dispenser, err := playground.NewDispenserOf(produce, config.Params{"production_limit": 10})
	require.NoError(t, err)
	require.NoError(t, pg.AddElement(dispenser, playground.At(100, 100, 0), false, 1))

	agent := newAgent(t, pg, "", playground.KindForwardBase, 75, 100)
	activate, err := playground.NewActivate(agent.Base(), playground.Discrete)
	require.NoError(t, err)
	agent.Base().AddActuator(activate)

	e := New(pg, Options{})
	actions := make(Actions).Set(agent, activate, 1)

	_, err = e.Step(actions, 4)
	require.NoError(t, err)
	assert.Equal(t, 1, dispenser.TotalProduced())

	_, err = e.Step(actions, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, dispenser.TotalProduced())

	_, err = e.Step(nil, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, dispenser.TotalProduced())
}

func TestTimeLimit(t *testing.T) {
	pg := newRoom(t)
	newAgent(t, pg, "", playground.KindForwardBase, 100, 100)

	e := New(pg, Options{TimeLimit: 4})

	_, err := e.Step(nil, 3)
	require.NoError(t, err)
	assert.False(t, e.Done())

	_, err = e.Step(nil, 3)
	require.NoError(t, err)
	assert.True(t, e.Done())
	assert.Equal(t, 4, e.Elapsed(), "stepping stops with the episode")

	_, err = e.Step(nil, 1)
	assert.Equal(t, ErrEpisodeOver, err)

	require.NoError(t, e.Reset())
	assert.False(t, e.Done())
	assert.Equal(t, 0, e.Elapsed())
	assert.Equal(t, 0, pg.Tick())
}

func TestGoalEndsEpisode(t *testing.T) {
	pg := newRoom(t)

	goal, err := playground.NewGoalZone(nil)
	require.NoError(t, err)
	require.NoError(t, pg.AddElement(goal, playground.At(100, 100, 0), false, 1))

	agent := newAgent(t, pg, "", playground.KindForwardBase, 100, 100)
	e := New(pg, Options{TimeLimit: 100})

	rewards, err := e.Step(nil, 10)
	require.NoError(t, err)
	assert.True(t, e.Done())
	assert.Equal(t, 1, e.Elapsed())
	assert.Equal(t, 100.0, rewards[agent])
}

func TestStepValidation(t *testing.T) {
	pg := newRoom(t)
	agent := newAgent(t, pg, "a", playground.KindForwardBase, 50, 50)
	other := newAgent(t, pg, "b", playground.KindForwardBase, 150, 150)

	stranger, err := playground.NewBaseAgent("c", playground.KindForwardBase, nil)
	require.NoError(t, err)

	e := New(pg, Options{})

	testCases := []struct {
		name    string
		actions Actions
		steps   int
		err     error
	}{
		{"no steps", nil, 0, ErrInvalidSteps},
		{"foreign actuator", make(Actions).Set(agent, other.Actuators()[0], 1), 1, ErrUnknownActuator},
		{"unknown agent", make(Actions).Set(stranger, stranger.Actuators()[0], 1), 1, ErrUnknownAgent},
		{"not a number", make(Actions).Set(agent, agent.Actuators()[0], math.NaN()), 1, playground.ErrInvalidAction},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := e.Step(tc.actions, tc.steps)
			assert.Equal(t, tc.err, errors.Cause(err))
		})
	}
}

func TestUpdateObservations(t *testing.T) {
	pg := newRoom(t)

	candy, err := playground.NewCandy(nil)
	require.NoError(t, err)
	require.NoError(t, pg.AddElement(candy, playground.At(140, 100, 0), false, 1))

	agents := make([]*playground.Agent, 0)
	for i, y := range []float64{100, 60} {
		agent, err := playground.NewBaseAgent("", playground.KindFixedBase, nil)
		require.NoError(t, err)

		s, err := sensor.New(sensor.KindPerfectSemantic, agent.Base(), nil)
		require.NoError(t, err)
		agent.AddSensor(s)

		if i == 0 {
			top, err := sensor.New(sensor.KindTopDownGlobal, agent.Base(), nil)
			require.NoError(t, err)
			agent.AddSensor(top)
		}

		require.NoError(t, pg.AddAgent(agent, playground.At(100, y, 0), false, 1))
		agents = append(agents, agent)
	}

	e := New(pg, Options{})
	e.UpdateObservations()

	// the other agent may come first, so detections are matched by name
	for _, agent := range agents {
		detections := agent.Sensors()[0].(sensor.SemanticSensor).Detections()
		require.NotEmpty(t, detections, agent.Name())

		seen := make([]string, 0, len(detections))
		for _, d := range detections {
			seen = append(seen, d.Entity.Name())
		}
		assert.Contains(t, seen, candy.Base().Name(), agent.Name())
	}
}

func TestRecordEpisodes(t *testing.T) {
	pg := newRoom(t)
	newAgent(t, pg, "walker", playground.KindForwardBase, 100, 100)

	recorder := recording.MakeEpisodeRecorder(t.TempDir())
	e := New(pg, Options{})
	require.NoError(t, e.StartRecording(recorder))

	first := e.EpisodeID()
	require.NotEmpty(t, first)

	_, err := e.Step(nil, 2)
	require.NoError(t, err)

	require.NoError(t, e.Reset())
	second := e.EpisodeID()
	assert.NotEqual(t, first, second)

	_, err = e.Step(nil, 1)
	require.NoError(t, err)
	e.Close()
	assert.Empty(t, e.EpisodeID())

	metadata, frames, err := recording.ReadEpisode(recorder.EpisodePath(first))
	require.NoError(t, err)
	assert.Equal(t, pg.Name(), metadata.Playground)
	assert.Equal(t, [2]float64{200, 200}, metadata.Size)
	assert.Equal(t, uint64(3), metadata.Seed)
	assert.Equal(t, []string{"walker"}, metadata.Agents)
	require.Len(t, frames, 2)

	var frame Frame
	require.NoError(t, json.Unmarshal([]byte(frames[1]), &frame))
	assert.Equal(t, 2, frame.Tick)
	require.Len(t, frame.Agents, 1)
	assert.Equal(t, "walker", frame.Agents[0].Name)
	assert.Empty(t, frame.Elements, "walls are not recorded")

	_, frames, err = recording.ReadEpisode(recorder.EpisodePath(second))
	require.NoError(t, err)
	assert.Len(t, frames, 1)
}
