package playground

import (
	"github.com/gaorkl/simple-playgrounds-sub000/game/config"
	"github.com/pkg/errors"
)

// Apple shrinks each time it is eaten, along with its reward, and is gone
// once smaller than its minimal radius
type Apple struct {
	interactiveElement

	shrinkRatio float64
	minRadius   float64

	initialGeometry Geometry
	initialReward   float64
}

func NewApple(kind ElementKind, overrides config.Params) (*Apple, error) {
	cfg, err := decodeElement(kind, overrides)
	if err != nil {
		return nil, err
	}

	if cfg.ShrinkRatio <= 0 || cfg.ShrinkRatio >= 1 {
		return nil, errors.Wrapf(ErrInvalidConfig, "%s shrink ratio must be in (0, 1), got %v", kind, cfg.ShrinkRatio)
	}

	base, err := makeInteractiveElement(kind, cfg, CategoryEdible)
	if err != nil {
		return nil, err
	}

	return &Apple{
		interactiveElement: base,
		shrinkRatio:        cfg.ShrinkRatio,
		minRadius:          cfg.MinRadius,
		initialGeometry:    base.geometry,
		initialReward:      cfg.Reward,
	}, nil
}

// Eat shrinks the apple once its reward is taken; a shrunk apple is rebuilt
// in place
func (a *Apple) Eat() Outcome {
	if !a.begin() {
		return Outcome{}
	}

	out := Outcome{Remove: []SceneElement{a}}

	next := a.geometry.scaled(a.shrinkRatio)
	if next.BoundingRadius() < a.minRadius {
		return out
	}

	a.reward *= a.shrinkRatio
	a.setGeometry(next)
	out.Add = []Placement{{
		Element:          a,
		Coordinates:      FixedCoordinates{Position: a.Position(), Angle: a.Angle()},
		AllowOverlapping: true,
	}}

	return out
}

func (a *Apple) Reset() {
	a.interactiveElement.Reset()
	a.reward = a.initialReward
	a.setGeometry(a.initialGeometry)
}
