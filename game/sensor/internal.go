package sensor

import (
	"image"
	"math"
)

// internal sensors read state directly; noise is added without clamping
type internal struct {
	values    []float64
	normalize bool
	noise     noise
}

func makeInternal(cfg Config, size int) (internal, error) {
	n, err := makeNoise(cfg.Noise)
	if err != nil {
		return internal{}, err
	}

	return internal{
		values:    make([]float64, size),
		normalize: cfg.Normalize,
		noise:     n,
	}, nil
}

func (s *internal) Values() []float64 {
	res := make([]float64, len(s.values))
	copy(res, s.values)
	return res
}

func (s *internal) Shape() []int {
	return []int{len(s.values)}
}

func (s *internal) set(raw []float64) {
	if s.noise != nil {
		s.noise.apply(raw, 0)
	}
	copy(s.values, raw)
}

func (s *internal) zero() {
	for i := range s.values {
		s.values[i] = 0
	}
}

func (s *internal) Draw(width, height int) *image.RGBA {
	max := 0.0
	for _, v := range s.values {
		max = math.Max(max, math.Abs(v))
	}

	return drawBars(s.values, max, width, height)
}

func (s *internal) Reset() {
	s.zero()
}

///////////////////////////////////////////////////////////////////////////////

// Position reads x, y and heading of its anchor; normalized by the
// playground size and 2π
type Position struct {
	base
	internal
}

func NewPosition(anchor Entity, cfg Config) (*Position, error) {
	if err := requireAnchor(KindPosition, anchor); err != nil {
		return nil, err
	}

	in, err := makeInternal(cfg, 3)
	if err != nil {
		return nil, err
	}

	return &Position{base: makeBase(KindPosition, anchor, cfg), internal: in}, nil
}

func (s *Position) Update(world World) {
	if s.IsDisabled() {
		s.zero()
		return
	}

	x, y := s.anchor.Position().Get()
	angle := math.Mod(s.anchor.Angle(), 2*math.Pi)
	if angle < 0 {
		angle += 2 * math.Pi
	}

	raw := []float64{x, y, angle}
	if s.normalize {
		size := world.Size()
		raw[0] /= size.GetX()
		raw[1] /= size.GetY()
		raw[2] /= 2 * math.Pi
	}

	s.set(raw)
}

///////////////////////////////////////////////////////////////////////////////

// Velocity reads the linear velocity in the anchor frame and the angular
// velocity
type Velocity struct {
	base
	internal
}

func NewVelocity(anchor Entity, cfg Config) (*Velocity, error) {
	if err := requireAnchor(KindVelocity, anchor); err != nil {
		return nil, err
	}

	in, err := makeInternal(cfg, 3)
	if err != nil {
		return nil, err
	}

	return &Velocity{base: makeBase(KindVelocity, anchor, cfg), internal: in}, nil
}

func (s *Velocity) Update(world World) {
	if s.IsDisabled() {
		s.zero()
		return
	}

	local := s.anchor.Velocity().Rotate(-s.anchor.Angle())
	s.set([]float64{local.GetX(), local.GetY(), s.anchor.AngularVelocity()})
}

///////////////////////////////////////////////////////////////////////////////

// Time reads the world tick
type Time struct {
	base
	internal
}

func NewTime(cfg Config) (*Time, error) {
	in, err := makeInternal(cfg, 1)
	if err != nil {
		return nil, err
	}

	return &Time{base: makeBase(KindTime, nil, cfg), internal: in}, nil
}

func (s *Time) Update(world World) {
	if s.IsDisabled() {
		s.zero()
		return
	}

	s.set([]float64{float64(world.Tick())})
}

