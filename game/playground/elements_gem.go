package playground

import (
	"github.com/gaorkl/simple-playgrounds-sub000/game/config"
)

// Gem is a movable pickup (key or coin) that activates elements it touches
type Gem struct {
	element
}

func newGem(kind ElementKind, overrides config.Params) (*Gem, error) {
	cfg, err := decodeElement(kind, overrides)
	if err != nil {
		return nil, err
	}

	base, err := makeElement(kind, cfg.EntityConfig, CategoryGem)
	if err != nil {
		return nil, err
	}

	return &Gem{element: base}, nil
}

func NewKey(overrides config.Params) (*Gem, error) {
	return newGem(KindKey, overrides)
}

func NewCoin(overrides config.Params) (*Gem, error) {
	return newGem(KindCoin, overrides)
}
