package sensor

import (
	"image"
	"math"

	"github.com/gaorkl/simple-playgrounds-sub000/common/utils/number"
	"github.com/gaorkl/simple-playgrounds-sub000/common/utils/trigo"
	"github.com/gaorkl/simple-playgrounds-sub000/common/utils/vector"
	"github.com/gaorkl/simple-playgrounds-sub000/physics"
	"github.com/pkg/errors"
)

// rayHit is the first visible fixture struck by one ray
type rayHit struct {
	fixture  *physics.Fixture
	entity   Entity
	point    vector.Vector2
	fraction float64
}

// rayCaster casts resolution rays evenly spread over the field of view,
// symmetric about the anchor heading
type rayCaster struct {
	fov        float64
	resolution int
	minRange   float64
	maxRange   float64
	angles     []float64
	dedup      bool
}

func makeRayCaster(kind Kind, cfg Config) (rayCaster, error) {
	if cfg.Resolution <= 0 {
		return rayCaster{}, errors.Wrapf(ErrInvalidSensorConfig, "%s resolution %d", kind, cfg.Resolution)
	}
	if cfg.FOV <= 0 || cfg.FOV > 360 {
		return rayCaster{}, errors.Wrapf(ErrInvalidSensorConfig, "%s fov %v", kind, cfg.FOV)
	}
	if cfg.MinRange < 0 || cfg.MaxRange <= cfg.MinRange {
		return rayCaster{}, errors.Wrapf(ErrInvalidSensorConfig, "%s range [%v, %v]", kind, cfg.MinRange, cfg.MaxRange)
	}

	fov := number.DegreeToRadian(cfg.FOV)

	return rayCaster{
		fov:        fov,
		resolution: cfg.Resolution,
		minRange:   cfg.MinRange,
		maxRange:   cfg.MaxRange,
		angles:     trigo.EvenlySpaced(fov, cfg.Resolution),
		dedup:      cfg.RemoveDuplicates,
	}, nil
}

// Angles returns the ray angles relative to the anchor heading
func (rc *rayCaster) Angles() []float64 {
	res := make([]float64, len(rc.angles))
	copy(res, rc.angles)
	return res
}

// cast runs one segment query per ray between offset+minRange and
// offset+maxRange from the anchor center
func (rc *rayCaster) cast(world World, anchor Entity, offset float64, filter physics.QueryFilter) []*rayHit {
	hits := make([]*rayHit, len(rc.angles))

	position := anchor.Position()
	heading := anchor.Angle()

	for i, angle := range rc.angles {
		dir := vector.MakeVector2FromAngle(heading + angle)
		start := position.Add(dir.Scale(offset + rc.minRange))
		end := position.Add(dir.Scale(offset + rc.maxRange))

		hit, ok := world.SegmentQueryFirst(start, end, 0, filter)
		if !ok {
			continue
		}

		hits[i] = &rayHit{
			fixture:  hit.Fixture,
			entity:   world.VisibleEntity(hit.Fixture),
			point:    hit.Point,
			fraction: hit.Fraction,
		}
	}

	if rc.dedup {
		removeDuplicates(hits)
	}

	return hits
}

// removeDuplicates keeps, for every fixture struck by several rays, the
// closest hit only
func removeDuplicates(hits []*rayHit) {
	closest := make(map[*physics.Fixture]int)

	for i, hit := range hits {
		if hit == nil {
			continue
		}

		j, seen := closest[hit.fixture]
		if !seen {
			closest[hit.fixture] = i
			continue
		}

		if hit.fraction < hits[j].fraction {
			hits[j] = nil
			closest[hit.fixture] = i
		} else {
			hits[i] = nil
		}
	}
}

// numeric holds the value pipeline shared by array sensors: raw values,
// noise, clamp, normalization
type numeric struct {
	values    []float64
	shape     []int
	maxValue  float64
	normalize bool
	noise     noise
}

func makeNumeric(cfg Config, shape []int, maxValue float64) (numeric, error) {
	n, err := makeNoise(cfg.Noise)
	if err != nil {
		return numeric{}, err
	}

	size := 1
	for _, s := range shape {
		size *= s
	}

	return numeric{
		values:    make([]float64, size),
		shape:     shape,
		maxValue:  maxValue,
		normalize: cfg.Normalize,
		noise:     n,
	}, nil
}

func (n *numeric) Values() []float64 {
	res := make([]float64, len(n.values))
	copy(res, n.values)
	return res
}

func (n *numeric) Shape() []int {
	res := make([]int, len(n.shape))
	copy(res, n.shape)
	return res
}

// MaxValue is the bound raw values are clamped to
func (n *numeric) MaxValue() float64 {
	return n.maxValue
}

func (n *numeric) finish(raw []float64) {
	if n.noise != nil {
		n.noise.apply(raw, n.maxValue)
		clampValues(raw, 0, n.maxValue)
	}

	if n.normalize {
		normalizeValues(raw, n.maxValue)
	}

	copy(n.values, raw)
}

func (n *numeric) zero() {
	for i := range n.values {
		n.values[i] = 0
	}
}

func (n *numeric) drawBars(width, height int) *image.RGBA {
	max := n.maxValue
	if n.normalize {
		max = 1
	}

	return drawBars(n.values, max, width, height)
}

///////////////////////////////////////////////////////////////////////////////
// Lidar
///////////////////////////////////////////////////////////////////////////////

// Lidar reads the distance to the first visible shape of every ray
type Lidar struct {
	base
	numeric
	rays rayCaster
}

func NewLidar(anchor Entity, cfg Config) (*Lidar, error) {
	if err := requireAnchor(KindLidar, anchor); err != nil {
		return nil, err
	}

	rays, err := makeRayCaster(KindLidar, cfg)
	if err != nil {
		return nil, err
	}

	num, err := makeNumeric(cfg, []int{cfg.Resolution}, cfg.MaxRange)
	if err != nil {
		return nil, err
	}

	return &Lidar{
		base:    makeBase(KindLidar, anchor, cfg),
		numeric: num,
		rays:    rays,
	}, nil
}

func (s *Lidar) Angles() []float64 {
	return s.rays.Angles()
}

func lidarValues(rc *rayCaster, hits []*rayHit) []float64 {
	raw := make([]float64, len(hits))
	for i, hit := range hits {
		if hit == nil {
			raw[i] = rc.maxRange
			continue
		}

		raw[i] = hit.fraction*(rc.maxRange-rc.minRange-1) + rc.minRange + 1
	}

	return raw
}

func (s *Lidar) Update(world World) {
	if s.IsDisabled() {
		s.zero()
		return
	}

	hits := s.rays.cast(world, s.anchor, 0, s.visibleFilter(world, true))
	s.finish(lidarValues(&s.rays, hits))
}

func (s *Lidar) Draw(width, height int) *image.RGBA {
	return s.drawBars(width, height)
}

func (s *Lidar) Reset() {
	s.zero()
}

///////////////////////////////////////////////////////////////////////////////
// Proximity
///////////////////////////////////////////////////////////////////////////////

// Proximity is the complement of a lidar: closer shapes read higher
type Proximity struct {
	base
	numeric
	rays rayCaster
}

func NewProximity(anchor Entity, cfg Config) (*Proximity, error) {
	if err := requireAnchor(KindProximity, anchor); err != nil {
		return nil, err
	}

	rays, err := makeRayCaster(KindProximity, cfg)
	if err != nil {
		return nil, err
	}

	num, err := makeNumeric(cfg, []int{cfg.Resolution}, cfg.MaxRange)
	if err != nil {
		return nil, err
	}

	return &Proximity{
		base:    makeBase(KindProximity, anchor, cfg),
		numeric: num,
		rays:    rays,
	}, nil
}

func (s *Proximity) Update(world World) {
	if s.IsDisabled() {
		s.zero()
		return
	}

	hits := s.rays.cast(world, s.anchor, 0, s.visibleFilter(world, true))
	raw := lidarValues(&s.rays, hits)
	for i := range raw {
		raw[i] = s.maxValue - raw[i]
	}

	s.finish(raw)
}

func (s *Proximity) Draw(width, height int) *image.RGBA {
	return s.drawBars(width, height)
}

func (s *Proximity) Reset() {
	s.zero()
}

///////////////////////////////////////////////////////////////////////////////
// Touch
///////////////////////////////////////////////////////////////////////////////

// Touch casts short rays from the anchor surface; no contact reads 0 and a
// shape against the skin reads max_range
type Touch struct {
	base
	numeric
	rays rayCaster
}

func NewTouch(anchor Entity, cfg Config) (*Touch, error) {
	if err := requireAnchor(KindTouch, anchor); err != nil {
		return nil, err
	}

	rays, err := makeRayCaster(KindTouch, cfg)
	if err != nil {
		return nil, err
	}

	num, err := makeNumeric(cfg, []int{cfg.Resolution}, cfg.MaxRange-cfg.MinRange)
	if err != nil {
		return nil, err
	}

	return &Touch{
		base:    makeBase(KindTouch, anchor, cfg),
		numeric: num,
		rays:    rays,
	}, nil
}

func (s *Touch) Update(world World) {
	if s.IsDisabled() {
		s.zero()
		return
	}

	hits := s.rays.cast(world, s.anchor, s.anchor.Radius(), s.visibleFilter(world, true))

	raw := make([]float64, len(hits))
	for i, hit := range hits {
		if hit == nil {
			continue
		}

		depth := hit.fraction * (s.rays.maxRange - s.rays.minRange)
		raw[i] = math.Max(s.maxValue-depth, 0)
	}

	s.finish(raw)
}

func (s *Touch) Draw(width, height int) *image.RGBA {
	return s.drawBars(width, height)
}

func (s *Touch) Reset() {
	s.zero()
}
