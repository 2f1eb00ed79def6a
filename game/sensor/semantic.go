package sensor

import (
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/gaorkl/simple-playgrounds-sub000/common/utils/number"
	"github.com/gaorkl/simple-playgrounds-sub000/common/utils/trigo"
	"github.com/pkg/errors"
)

type semantic struct {
	detections []Detection
	maxRange   float64
}

func (s *semantic) Detections() []Detection {
	res := make([]Detection, len(s.detections))
	copy(res, s.detections)
	return res
}

func (s *semantic) Shape() []int {
	return []int{len(s.detections)}
}

func (s *semantic) clear() {
	s.detections = s.detections[:0]
}

// Draw plots every detection as a dot; the anchor sits at the bottom center
func (s *semantic) Draw(width, height int) *image.RGBA {
	img := blank(width, height)

	scale := float64(height) / s.maxRange
	for _, d := range s.detections {
		x := float64(width)/2 - math.Sin(d.Angle)*d.Distance*scale
		y := float64(height) - math.Cos(d.Angle)*d.Distance*scale

		c := color.RGBA{R: 255, G: 255, B: 255, A: 255}
		if d.Entity != nil && d.Entity.Texture() != nil {
			c = d.Entity.Texture().Average()
		}
		fillRect(img, int(x)-2, int(y)-2, int(x)+2, int(y)+2, c)
	}

	return img
}

///////////////////////////////////////////////////////////////////////////////
// SemanticRay
///////////////////////////////////////////////////////////////////////////////

// SemanticRay reports the entities struck by its rays
type SemanticRay struct {
	base
	semantic
	rays rayCaster
}

func NewSemanticRay(anchor Entity, cfg Config) (*SemanticRay, error) {
	if err := requireAnchor(KindSemanticRay, anchor); err != nil {
		return nil, err
	}

	if err := rejectNoise(KindSemanticRay, cfg); err != nil {
		return nil, err
	}

	rays, err := makeRayCaster(KindSemanticRay, cfg)
	if err != nil {
		return nil, err
	}

	return &SemanticRay{
		base:     makeBase(KindSemanticRay, anchor, cfg),
		semantic: semantic{maxRange: cfg.MaxRange},
		rays:     rays,
	}, nil
}

func (s *SemanticRay) Update(world World) {
	s.clear()
	if s.IsDisabled() {
		return
	}

	hits := s.rays.cast(world, s.anchor, 0, s.visibleFilter(world, true))
	for i, hit := range hits {
		if hit == nil {
			continue
		}

		s.detections = append(s.detections, Detection{
			Entity:   hit.entity,
			Distance: s.rays.minRange + hit.fraction*(s.rays.maxRange-s.rays.minRange),
			Angle:    s.rays.angles[i],
		})
	}
}

func (s *SemanticRay) Reset() {
	s.clear()
}

///////////////////////////////////////////////////////////////////////////////
// SemanticCones
///////////////////////////////////////////////////////////////////////////////

// SemanticCones groups its rays in contiguous cones and keeps the nearest
// detection of each cone, reported at the cone center angle
type SemanticCones struct {
	base
	semantic
	rays        rayCaster
	nCones      int
	raysPerCone int
	coneAngles  []float64
}

func NewSemanticCones(anchor Entity, cfg Config) (*SemanticCones, error) {
	if err := requireAnchor(KindSemanticCones, anchor); err != nil {
		return nil, err
	}

	if err := rejectNoise(KindSemanticCones, cfg); err != nil {
		return nil, err
	}

	if cfg.RaysPerCone <= 0 {
		return nil, errors.Wrapf(ErrInvalidSensorConfig, "rays_per_cone %d", cfg.RaysPerCone)
	}
	if cfg.NCones <= 0 {
		return nil, errors.Wrapf(ErrInvalidSensorConfig, "n_cones %d", cfg.NCones)
	}

	rayCfg := cfg
	rayCfg.Resolution = cfg.NCones * cfg.RaysPerCone
	rayCfg.RemoveDuplicates = false

	rays, err := makeRayCaster(KindSemanticCones, rayCfg)
	if err != nil {
		return nil, err
	}

	return &SemanticCones{
		base:        makeBase(KindSemanticCones, anchor, cfg),
		semantic:    semantic{maxRange: cfg.MaxRange},
		rays:        rays,
		nCones:      cfg.NCones,
		raysPerCone: cfg.RaysPerCone,
		coneAngles:  trigo.EvenlySpaced(number.DegreeToRadian(cfg.FOV), cfg.NCones),
	}, nil
}

func (s *SemanticCones) ConeAngles() []float64 {
	res := make([]float64, len(s.coneAngles))
	copy(res, s.coneAngles)
	return res
}

func (s *SemanticCones) Update(world World) {
	s.clear()
	if s.IsDisabled() {
		return
	}

	hits := s.rays.cast(world, s.anchor, 0, s.visibleFilter(world, true))

	for cone := 0; cone < s.nCones; cone++ {
		var nearest *rayHit
		for _, hit := range hits[cone*s.raysPerCone : (cone+1)*s.raysPerCone] {
			if hit != nil && (nearest == nil || hit.fraction < nearest.fraction) {
				nearest = hit
			}
		}

		if nearest == nil {
			continue
		}

		s.detections = append(s.detections, Detection{
			Entity:   nearest.entity,
			Distance: s.rays.minRange + nearest.fraction*(s.rays.maxRange-s.rays.minRange),
			Angle:    s.coneAngles[cone],
		})
	}
}

func (s *SemanticCones) Reset() {
	s.clear()
}

///////////////////////////////////////////////////////////////////////////////
// PerfectSemantic
///////////////////////////////////////////////////////////////////////////////

// PerfectSemantic lists every solid visible entity in range and field of
// view, without occlusion
type PerfectSemantic struct {
	base
	semantic
	fov      float64
	minRange float64
}

func NewPerfectSemantic(anchor Entity, cfg Config) (*PerfectSemantic, error) {
	if err := requireAnchor(KindPerfectSemantic, anchor); err != nil {
		return nil, err
	}

	if err := rejectNoise(KindPerfectSemantic, cfg); err != nil {
		return nil, err
	}

	if cfg.MaxRange <= cfg.MinRange || cfg.FOV <= 0 {
		return nil, errors.Wrapf(ErrInvalidSensorConfig, "perfect semantic range [%v, %v] fov %v", cfg.MinRange, cfg.MaxRange, cfg.FOV)
	}

	return &PerfectSemantic{
		base:     makeBase(KindPerfectSemantic, anchor, cfg),
		semantic: semantic{maxRange: cfg.MaxRange},
		fov:      number.DegreeToRadian(cfg.FOV),
		minRange: cfg.MinRange,
	}, nil
}

func (s *PerfectSemantic) Update(world World) {
	s.clear()
	if s.IsDisabled() {
		return
	}

	position := s.anchor.Position()
	seen := make(map[Entity]bool)

	for _, hit := range world.PointQuery(position, s.semantic.maxRange, s.visibleFilter(world, false)) {
		if hit.Distance < s.minRange {
			continue
		}

		e := world.VisibleEntity(hit.Fixture)
		if e == nil || seen[e] {
			continue
		}

		bearing := trigo.WrapAngle(e.Position().Sub(position).Angle() - s.anchor.Angle())
		if math.Abs(bearing) > s.fov/2 {
			continue
		}

		seen[e] = true
		s.detections = append(s.detections, Detection{
			Entity:   e,
			Distance: hit.Distance,
			Angle:    bearing,
		})
	}

	sort.SliceStable(s.detections, func(i, j int) bool {
		return s.detections[i].Distance < s.detections[j].Distance
	})
}

func (s *PerfectSemantic) Reset() {
	s.clear()
}
