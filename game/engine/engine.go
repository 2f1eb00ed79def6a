// Package engine drives a playground: it applies agent actions, runs logical
// ticks, sums rewards, enforces the time limit, refreshes observations and
// records episodes.
package engine

import (
	"encoding/json"
	"fmt"
	"image"
	"sync"

	"github.com/gaorkl/simple-playgrounds-sub000/common/recording"
	"github.com/gaorkl/simple-playgrounds-sub000/common/utils"
	"github.com/gaorkl/simple-playgrounds-sub000/game/playground"
	"github.com/gaorkl/simple-playgrounds-sub000/game/sensor"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
)

var (
	ErrInvalidSteps    = errors.New("invalid number of steps")
	ErrUnknownAgent    = errors.New("agent not in the playground")
	ErrUnknownActuator = errors.New("actuator not on the agent")
	ErrEpisodeOver     = errors.New("episode is over")
)

// Actions holds the commands of a step. Actuators left out rest.
type Actions map[*playground.Agent]map[playground.Actuator]float64

// Set records a command, creating the agent entry if needed
func (a Actions) Set(agent *playground.Agent, actuator playground.Actuator, value float64) Actions {
	if a[agent] == nil {
		a[agent] = make(map[playground.Actuator]float64)
	}
	a[agent][actuator] = value

	return a
}

type Options struct {
	// TimeLimit ends the episode after that many ticks; 0 disables it
	TimeLimit int
	// Substeps of physics per tick; 0 keeps the playground default
	Substeps int
}

type Engine struct {
	pg        *playground.Playground
	timeLimit int
	substeps  int

	elapsed int
	done    bool

	recorder  recording.Recorder
	episodeID string
}

func New(pg *playground.Playground, opts Options) *Engine {
	return &Engine{
		pg:        pg,
		timeLimit: opts.TimeLimit,
		substeps:  opts.Substeps,
		recorder:  recording.MakeEmptyRecorder(),
	}
}

func (e *Engine) Playground() *playground.Playground {
	return e.pg
}

// Elapsed is the number of ticks since the last reset
func (e *Engine) Elapsed() int {
	return e.elapsed
}

func (e *Engine) Done() bool {
	return e.done
}

func (e *Engine) EpisodeID() string {
	return e.episodeID
}

// Step holds the actions for steps ticks and returns the reward each agent
// collected over them. Interactive actuators only act on the last tick.
// Stepping stops early when the episode ends.
func (e *Engine) Step(actions Actions, steps int) (map[*playground.Agent]float64, error) {
	if steps < 1 {
		return nil, errors.Wrapf(ErrInvalidSteps, "%d", steps)
	}

	if e.done {
		return nil, ErrEpisodeOver
	}

	agents := e.pg.Agents()
	if err := e.validate(agents, actions); err != nil {
		return nil, err
	}

	rewards := make(map[*playground.Agent]float64, len(agents))
	for _, a := range agents {
		rewards[a] = 0
	}

	watch := utils.MakeStopwatch("engine::Step()")
	watch.Start("ticks")

	for i := 0; i < steps && !e.done; i++ {
		last := i == steps-1
		for _, a := range agents {
			if err := e.command(a, actions[a], last); err != nil {
				return nil, err
			}
		}

		if err := e.pg.Update(e.substeps); err != nil {
			e.done = true
			return nil, err
		}
		e.elapsed++

		for _, a := range agents {
			rewards[a] += a.Reward()
		}

		if e.pg.Done() || (e.timeLimit > 0 && e.elapsed >= e.timeLimit) {
			e.done = true
		}

		e.record()
	}

	watch.Stop("ticks")
	utils.Debug("engine", watch.String())

	return rewards, nil
}

func (e *Engine) validate(agents []*playground.Agent, actions Actions) error {
	known := make(map[*playground.Agent]bool, len(agents))
	for _, a := range agents {
		known[a] = true
	}

	for agent, commands := range actions {
		if !known[agent] {
			return errors.Wrapf(ErrUnknownAgent, "%s", agent.Name())
		}

		owned := make(map[playground.Actuator]bool)
		for _, act := range agent.Actuators() {
			owned[act] = true
		}

		for act := range commands {
			if !owned[act] {
				return errors.Wrapf(ErrUnknownActuator, "%s on %s", act.Name(), agent.Name())
			}
		}
	}

	return nil
}

// command sets every actuator of agent; interactive ones rest unless last
func (e *Engine) command(agent *playground.Agent, commands map[playground.Actuator]float64, last bool) error {
	for _, act := range agent.Actuators() {
		value, ok := commands[act]
		if !ok || (act.Interactive() && !last) {
			act.Reset()
			continue
		}

		if err := act.SetCommand(value); err != nil {
			return errors.Wrapf(err, "agent %s", agent.Name())
		}
	}

	return nil
}

// UpdateObservations refreshes every sensor of every agent. Sensors only
// query the world, so agents are computed concurrently once the surface is
// rendered.
func (e *Engine) UpdateObservations() {
	agents := e.pg.Agents()

	for _, a := range agents {
		for _, s := range a.Sensors() {
			if s.Kind() == sensor.KindTopdownLocal || s.Kind() == sensor.KindTopDownGlobal {
				e.pg.Surface()
				break
			}
		}
	}

	var wg sync.WaitGroup
	for _, a := range agents {
		wg.Add(1)
		go func(a *playground.Agent) {
			defer wg.Done()
			for _, s := range a.Sensors() {
				s.Update(e.pg)
			}
		}(a)
	}
	wg.Wait()
}

// Reset starts a new episode; a recording in progress moves on to a new file
func (e *Engine) Reset() error {
	if err := e.pg.Reset(); err != nil {
		return errors.Wrap(err, "engine reset")
	}

	e.elapsed = 0
	e.done = false

	if e.episodeID != "" {
		e.recorder.Close(e.episodeID)
		if err := e.startEpisode(); err != nil {
			return err
		}
	}

	e.UpdateObservations()
	return nil
}

// Render draws the playground, optionally with the interaction zones
func (e *Engine) Render(drawZones bool) *image.RGBA {
	return e.pg.Render(drawZones)
}

///////////////////////////////////////////////////////////////////////////////
// recording
///////////////////////////////////////////////////////////////////////////////

// StartRecording writes every following tick to recorder, one episode per
// reset
func (e *Engine) StartRecording(recorder recording.Recorder) error {
	e.StopRecording()
	e.recorder = recorder

	return e.startEpisode()
}

func (e *Engine) StopRecording() {
	if e.episodeID == "" {
		return
	}

	e.recorder.Close(e.episodeID)
	e.recorder = recording.MakeEmptyRecorder()
	e.episodeID = ""
}

func (e *Engine) startEpisode() error {
	e.episodeID = uuid.NewV4().String()

	size := e.pg.Size()
	metadata := &recording.RecordMetadata{
		Playground: e.pg.Name(),
		Size:       [2]float64{size.GetX(), size.GetY()},
		Seed:       e.pg.Seed(),
	}
	for _, a := range e.pg.Agents() {
		metadata.Agents = append(metadata.Agents, a.Name())
	}

	if err := e.recorder.RecordMetadata(e.episodeID, metadata); err != nil {
		return errors.Wrap(err, "episode metadata")
	}

	utils.Debug("engine", fmt.Sprintf("recording episode %s", e.episodeID))
	return nil
}

func (e *Engine) record() {
	if e.episodeID == "" {
		return
	}

	data, err := json.Marshal(makeFrame(e.pg, e.done))
	if err != nil {
		utils.Debug("engine", errors.Wrap(err, "frame").Error())
		return
	}

	if err := e.recorder.Record(e.episodeID, string(data)); err != nil {
		utils.Debug("engine", err.Error())
	}
}

// Close ends the running recording
func (e *Engine) Close() {
	e.StopRecording()
}
