package sensor

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	NoiseGaussian      = "gaussian"
	NoiseSaltAndPepper = "salt_pepper"
)

type NoiseConfig struct {
	Type        string  `yaml:"type"`
	Mean        float64 `yaml:"mean"`
	Scale       float64 `yaml:"scale"`
	Probability float64 `yaml:"probability"`
	Seed        uint64  `yaml:"seed"`
}

// noise perturbs raw values before they are clamped and normalized
type noise interface {
	apply(values []float64, maxValue float64)
}

func makeNoise(cfg *NoiseConfig) (noise, error) {
	if cfg == nil || cfg.Type == "" {
		return nil, nil
	}

	src := rand.NewSource(cfg.Seed)

	switch cfg.Type {
	case NoiseGaussian:
		if cfg.Scale < 0 {
			return nil, errors.Wrapf(ErrInvalidSensorConfig, "gaussian scale %v", cfg.Scale)
		}
		return &gaussianNoise{dist: distuv.Normal{Mu: cfg.Mean, Sigma: cfg.Scale, Src: src}}, nil

	case NoiseSaltAndPepper:
		if cfg.Probability < 0 || cfg.Probability > 1 {
			return nil, errors.Wrapf(ErrInvalidSensorConfig, "salt and pepper probability %v", cfg.Probability)
		}
		return &saltPepperNoise{
			probability: cfg.Probability,
			dist:        distuv.Uniform{Min: 0, Max: 1, Src: src},
		}, nil
	}

	return nil, errors.Wrapf(ErrUnsupportedNoise, "%q", cfg.Type)
}

type gaussianNoise struct {
	dist distuv.Normal
}

func (n *gaussianNoise) apply(values []float64, maxValue float64) {
	for i := range values {
		values[i] += n.dist.Rand()
	}
}

// saltPepperNoise replaces values by -maxValue or +maxValue, each with
// probability p/2
type saltPepperNoise struct {
	probability float64
	dist        distuv.Uniform
}

func (n *saltPepperNoise) apply(values []float64, maxValue float64) {
	half := n.probability / 2

	for i := range values {
		draw := n.dist.Rand()
		switch {
		case draw < half:
			values[i] = -maxValue
		case draw < n.probability:
			values[i] = maxValue
		}
	}
}

func clampValues(values []float64, min, max float64) {
	for i, v := range values {
		if v < min {
			values[i] = min
		} else if v > max {
			values[i] = max
		}
	}
}

func normalizeValues(values []float64, maxValue float64) {
	if maxValue == 0 {
		return
	}

	for i := range values {
		values[i] /= maxValue
	}
}
