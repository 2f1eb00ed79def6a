package main

import (
	"fmt"
	"image/png"
	"log"
	"os"
	"sort"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"github.com/ttacon/chalk"
	"github.com/urfave/cli"
	"golang.org/x/exp/rand"

	"github.com/gaorkl/simple-playgrounds-sub000/common/recording"
	"github.com/gaorkl/simple-playgrounds-sub000/common/utils"
	"github.com/gaorkl/simple-playgrounds-sub000/game/engine"
	"github.com/gaorkl/simple-playgrounds-sub000/game/playground"
	"github.com/gaorkl/simple-playgrounds-sub000/game/sensor"
)

func main() {
	app := makeapp()
	if err := app.Run(os.Args); err != nil {
		fmt.Print(chalk.Red)
		log.Print(err.Error(), chalk.Reset)
		os.Exit(1)
	}
}

func makeapp() *cli.App {
	app := cli.NewApp()
	app.Name = "playground"
	app.Usage = "Run agents in simple playgrounds"

	app.Commands = []cli.Command{
		{
			Name:    "run",
			Aliases: []string{"r"},
			Usage:   "Run a scenario with random agents",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "scenario", Value: "goal", Usage: "Name of the scenario (see list)"},
				cli.IntFlag{Name: "episodes", Value: 1, Usage: "Number of episodes"},
				cli.IntFlag{Name: "time-limit", Value: 500, Usage: "Ticks per episode"},
				cli.IntFlag{Name: "steps", Value: 1, Usage: "Ticks each action is held for"},
				cli.Uint64Flag{Name: "seed", Value: 1, Usage: "Seed of the random policy"},
				cli.StringFlag{Name: "record-dir", Value: "", Usage: "Directory receiving the episode records"},
				cli.StringFlag{Name: "png", Value: "", Usage: "Write the final frame to this file"},
				cli.BoolFlag{Name: "dump", Usage: "Dump the final observations"},
				cli.BoolFlag{Name: "debug", Usage: "Enable debug logging"},
			},
			Action: func(c *cli.Context) error {
				utils.SetDebug(c.Bool("debug"))

				return runAction(runOptions{
					scenario:  c.String("scenario"),
					episodes:  c.Int("episodes"),
					timeLimit: c.Int("time-limit"),
					steps:     c.Int("steps"),
					seed:      c.Uint64("seed"),
					recordDir: c.String("record-dir"),
					png:       c.String("png"),
					dump:      c.Bool("dump"),
				})
			},
		},
		{
			Name:  "replay",
			Usage: "Print the frames of a recorded episode",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "file", Value: "", Usage: "Episode record (.jsonl.zst); required"},
				cli.IntFlag{Name: "every", Value: 1, Usage: "Print one frame out of every"},
			},
			Action: func(c *cli.Context) error {
				return replayAction(c.String("file"), c.Int("every"))
			},
		},
		{
			Name:    "list",
			Aliases: []string{"ls"},
			Usage:   "List the available scenarios",
			Action: func(c *cli.Context) error {
				names := make([]string, 0, len(scenarios))
				for name := range scenarios {
					names = append(names, name)
				}
				sort.Strings(names)

				for _, name := range names {
					fmt.Println(chalk.Bold.TextStyle(name), "\t", scenarios[name].description)
				}
				return nil
			},
		},
	}

	return app
}

type runOptions struct {
	scenario  string
	episodes  int
	timeLimit int
	steps     int
	seed      uint64
	recordDir string
	png       string
	dump      bool
}

func runAction(opts runOptions) error {
	sc, ok := scenarios[opts.scenario]
	if !ok {
		return errors.Errorf("unknown scenario %q", opts.scenario)
	}

	pg, err := sc.build()
	if err != nil {
		return errors.Wrapf(err, "scenario %s", opts.scenario)
	}

	e := engine.New(pg, engine.Options{TimeLimit: opts.timeLimit})
	defer e.Close()

	if opts.recordDir != "" {
		if err := os.MkdirAll(opts.recordDir, 0755); err != nil {
			return errors.Wrap(err, "record directory")
		}
		if err := e.StartRecording(recording.MakeEpisodeRecorder(opts.recordDir)); err != nil {
			return err
		}
	}

	policy := rand.New(rand.NewSource(opts.seed))

	fmt.Println(chalk.Green.Color(fmt.Sprintf("playground %s (%s)", pg.Name(), opts.scenario)))

	for episode := 0; episode < opts.episodes; episode++ {
		if episode > 0 {
			if err := e.Reset(); err != nil {
				return err
			}
		}

		totals := make(map[*playground.Agent]float64)
		for !e.Done() {
			rewards, err := e.Step(randomActions(policy, pg.Agents()), opts.steps)
			if err != nil {
				return err
			}
			for agent, r := range rewards {
				totals[agent] += r
			}
			e.UpdateObservations()
		}

		fmt.Printf("episode %d: %d ticks\n", episode, e.Elapsed())
		for _, agent := range pg.Agents() {
			color := chalk.Yellow
			if totals[agent] > 0 {
				color = chalk.Green
			} else if totals[agent] < 0 {
				color = chalk.Red
			}
			fmt.Println("  ", agent.Name(), color.Color(fmt.Sprintf("%.2f", totals[agent])))
		}
	}

	if opts.dump {
		spew.Dump(observations(pg))
	}

	if opts.png != "" {
		if err := writePNG(opts.png, e); err != nil {
			return err
		}
	}

	return nil
}

// randomActions draws a command for every actuator
func randomActions(src *rand.Rand, agents []*playground.Agent) engine.Actions {
	actions := make(engine.Actions)

	for _, agent := range agents {
		for _, act := range agent.Actuators() {
			if values := act.Values(); len(values) > 0 {
				actions.Set(agent, act, values[src.Intn(len(values))])
				continue
			}

			lo, hi := act.Bounds()
			actions.Set(agent, act, lo+src.Float64()*(hi-lo))
		}
	}

	return actions
}

func observations(pg *playground.Playground) map[string]map[string]interface{} {
	res := make(map[string]map[string]interface{})

	for _, agent := range pg.Agents() {
		obs := make(map[string]interface{})
		for _, s := range agent.Sensors() {
			switch v := s.(type) {
			case sensor.NumericSensor:
				obs[s.Name()] = v.Values()
			case sensor.SemanticSensor:
				names := make([]string, 0)
				for _, d := range v.Detections() {
					names = append(names, fmt.Sprintf("%s@%.1f", d.Entity.Name(), d.Distance))
				}
				obs[s.Name()] = names
			default:
				obs[s.Name()] = s.Shape()
			}
		}
		res[agent.Name()] = obs
	}

	return res
}

func writePNG(path string, e *engine.Engine) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "could not create %s", path)
	}
	defer f.Close()

	return errors.Wrap(png.Encode(f, e.Render(false)), "could not encode frame")
}
