package playground

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Field produces elements in an area at random ticks. It keeps at most
// maxAlive of them in the world and stops after limit productions.
type Field struct {
	factory     ElementFactory
	area        Coordinates
	probability float64
	maxAlive    int
	limit       int
	attempts    int

	produced []SceneElement
	total    int
}

func NewField(factory ElementFactory, area Coordinates, probability float64, maxAlive, limit int) (*Field, error) {
	if factory == nil || area == nil {
		return nil, errors.Wrap(ErrInvalidConfig, "field needs a factory and an area")
	}

	if probability <= 0 || probability > 1 {
		return nil, errors.Wrapf(ErrInvalidConfig, "field probability %v not in (0, 1]", probability)
	}

	if maxAlive <= 0 || limit <= 0 {
		return nil, errors.Wrapf(ErrInvalidConfig, "field caps must be positive, got %d and %d", maxAlive, limit)
	}

	if _, err := factory(); err != nil {
		return nil, errors.Wrap(err, "field production")
	}

	return &Field{
		factory:     factory,
		area:        area,
		probability: probability,
		maxAlive:    maxAlive,
		limit:       limit,
		attempts:    defaultMaxAttempts,
	}, nil
}

// SetAttempts bounds the placement attempts of each production
func (f *Field) SetAttempts(attempts int) {
	f.attempts = attempts
}

func (f *Field) Produced() []SceneElement {
	f.produced = pruneRemoved(f.produced)
	return f.produced
}

func (f *Field) TotalProduced() int {
	return f.total
}

// next draws whether this tick produces, and builds the element if so
func (f *Field) next(src rand.Source) (SceneElement, bool) {
	if f.total >= f.limit || len(f.Produced()) >= f.maxAlive {
		return nil, false
	}

	draw := distuv.Uniform{Min: 0, Max: 1, Src: src}
	if draw.Rand() >= f.probability {
		return nil, false
	}

	element, err := f.factory()
	if err != nil {
		return nil, false
	}
	element.Base().SetTemporary(true)

	return element, true
}

func (f *Field) record(element SceneElement) {
	f.produced = append(f.produced, element)
	f.total++
}

func (f *Field) Reset() {
	f.produced = nil
	f.total = 0
}
