package engine

import (
	"github.com/gaorkl/simple-playgrounds-sub000/common/utils/vector"
	"github.com/gaorkl/simple-playgrounds-sub000/game/playground"
)

// Frame is one recorded tick
type Frame struct {
	Tick     int         `json:"tick"`
	Done     bool        `json:"done"`
	Agents   []BodyFrame `json:"agents"`
	Elements []BodyFrame `json:"elements"`
}

type BodyFrame struct {
	Name     string         `json:"name"`
	Kind     string         `json:"kind"`
	Position vector.Vector2 `json:"position"`
	Angle    float64        `json:"angle"`
	Reward   float64        `json:"reward,omitempty"`
}

func makeFrame(pg *playground.Playground, done bool) Frame {
	frame := Frame{Tick: pg.Tick(), Done: done}

	for _, a := range pg.Agents() {
		frame.Agents = append(frame.Agents, BodyFrame{
			Name:     a.Name(),
			Kind:     string(a.Base().Kind()),
			Position: a.Position(),
			Angle:    a.Angle(),
			Reward:   a.Reward(),
		})
	}

	for _, e := range pg.Elements() {
		if e.Kind() != playground.KindWall {
			frame.Elements = append(frame.Elements, BodyFrame{
				Name:     e.Base().Name(),
				Kind:     string(e.Kind()),
				Position: e.Base().Position(),
				Angle:    e.Base().Angle(),
			})
		}
	}

	return frame
}
