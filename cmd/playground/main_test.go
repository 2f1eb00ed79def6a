package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gaorkl/simple-playgrounds-sub000/common/utils/vector"
	"github.com/gaorkl/simple-playgrounds-sub000/game/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestScenariosRun(t *testing.T) {
	for name, sc := range scenarios {
		t.Run(name, func(t *testing.T) {
			pg, err := sc.build()
			require.NoError(t, err)
			require.NotEmpty(t, pg.Agents())

			e := engine.New(pg, engine.Options{TimeLimit: 5})
			src := rand.New(rand.NewSource(1))

			for !e.Done() {
				_, err := e.Step(randomActions(src, pg.Agents()), 2)
				require.NoError(t, err)
				e.UpdateObservations()
			}

			assert.Equal(t, 5, e.Elapsed())
			assert.Len(t, observations(pg), len(pg.Agents()))
		})
	}
}

func TestRunActionWritesRecords(t *testing.T) {
	dir := t.TempDir()
	frame := filepath.Join(dir, "frame.png")

	err := runAction(runOptions{
		scenario:  "goal",
		episodes:  2,
		timeLimit: 3,
		steps:     1,
		seed:      1,
		recordDir: filepath.Join(dir, "records"),
		png:       frame,
	})
	require.NoError(t, err)

	records, err := filepath.Glob(filepath.Join(dir, "records", "*.jsonl.zst"))
	require.NoError(t, err)
	assert.Len(t, records, 2)

	_, err = os.Stat(frame)
	assert.NoError(t, err)

	assert.NoError(t, replayAction(records[0], 2))
}

func TestUnknownScenario(t *testing.T) {
	assert.Error(t, runAction(runOptions{scenario: "nope"}))
}

func TestFormatFrame(t *testing.T) {
	frame := engine.Frame{
		Tick:   12,
		Agents: []engine.BodyFrame{{Name: "walker", Position: vector.MakeVector2(1, 2), Reward: 0.5}},
	}

	assert.Equal(t, "tick   12  walker (1.0, 2.0) r=0.50", formatFrame(frame))
}
