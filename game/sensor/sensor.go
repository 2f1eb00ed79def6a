// Package sensor computes agent observations from the physics world: ray
// casts, point queries, crops of the rasterized playground and internal
// state readings.
package sensor

import (
	"image"

	"github.com/gaorkl/simple-playgrounds-sub000/common/utils/vector"
	"github.com/gaorkl/simple-playgrounds-sub000/game/config"
	"github.com/gaorkl/simple-playgrounds-sub000/game/texture"
	"github.com/gaorkl/simple-playgrounds-sub000/physics"
	"github.com/pkg/errors"
)

var (
	ErrInvalidSensorConfig = errors.New("invalid sensor configuration")
	ErrUnsupportedNoise    = errors.New("unsupported noise")
)

// Entity is what a sensor can be anchored to and can detect
type Entity interface {
	Name() string
	Position() vector.Vector2
	Angle() float64
	Velocity() vector.Vector2
	AngularVelocity() float64
	Radius() float64
	Texture() texture.Texture
}

// World is the view of the playground sensors query
type World interface {
	SegmentQueryFirst(start, end vector.Vector2, radius float64, filter physics.QueryFilter) (physics.SegmentHit, bool)
	PointQuery(center vector.Vector2, radius float64, filter physics.QueryFilter) []physics.PointHit
	// VisibleEntity resolves the visible fixture of an in-world entity; other
	// fixtures resolve to nil
	VisibleEntity(f *physics.Fixture) Entity
	Tick() int
	Size() vector.Vector2
	// Surface is the top-down rendering of the current tick, one pixel per
	// unit, y pointing up in world space and down in the image
	Surface() *image.RGBA
}

type Kind string

const (
	KindLidar           Kind = "lidar"
	KindProximity       Kind = "proximity"
	KindTouch           Kind = "touch"
	KindRgbCamera       Kind = "rgb_camera"
	KindGreyCamera      Kind = "grey_camera"
	KindSemanticRay     Kind = "semantic_ray"
	KindSemanticCones   Kind = "semantic_cones"
	KindPerfectSemantic Kind = "perfect_semantic"
	KindTopdownLocal    Kind = "topdown_local"
	KindTopDownGlobal   Kind = "topdown_global"
	KindPosition        Kind = "position"
	KindVelocity        Kind = "velocity"
	KindTime            Kind = "time"
)

type Config struct {
	Name             string       `yaml:"name"`
	FOV              float64      `yaml:"fov"`
	Resolution       int          `yaml:"resolution"`
	MaxRange         float64      `yaml:"max_range"`
	MinRange         float64      `yaml:"min_range"`
	Normalize        bool         `yaml:"normalize"`
	RemoveDuplicates bool         `yaml:"remove_duplicates"`
	NCones           int          `yaml:"n_cones"`
	RaysPerCone      int          `yaml:"rays_per_cone"`
	OnlyFront        bool         `yaml:"only_front"`
	Noise            *NoiseConfig `yaml:"noise"`
}

type Sensor interface {
	Device

	Name() string
	Kind() Kind
	Anchor() Entity
	// Update recomputes the observation; the previous one is kept until then
	Update(world World)
	Shape() []int
	Draw(width, height int) *image.RGBA
	Reset()
	// SetInvisible hides entities from the sensor; the anchor always is
	SetInvisible(entities ...Entity)
}

// NumericSensor observations are flat arrays laid out following Shape
type NumericSensor interface {
	Sensor
	Values() []float64
}

type Detection struct {
	Entity   Entity
	Distance float64
	// Angle is the bearing relative to the anchor heading
	Angle float64
}

type SemanticSensor interface {
	Sensor
	Detections() []Detection
}

// New builds a sensor of the given kind from the defaults merged with overrides
func New(kind Kind, anchor Entity, overrides config.Params) (Sensor, error) {
	var cfg Config
	if err := config.Default().Decode("sensor", string(kind), overrides, &cfg); err != nil {
		return nil, errors.Wrapf(ErrInvalidSensorConfig, "%s: %s", kind, err)
	}

	return NewFromConfig(kind, anchor, cfg)
}

func NewFromConfig(kind Kind, anchor Entity, cfg Config) (Sensor, error) {
	switch kind {
	case KindLidar:
		return NewLidar(anchor, cfg)
	case KindProximity:
		return NewProximity(anchor, cfg)
	case KindTouch:
		return NewTouch(anchor, cfg)
	case KindRgbCamera:
		return NewRgbCamera(anchor, cfg)
	case KindGreyCamera:
		return NewGreyCamera(anchor, cfg)
	case KindSemanticRay:
		return NewSemanticRay(anchor, cfg)
	case KindSemanticCones:
		return NewSemanticCones(anchor, cfg)
	case KindPerfectSemantic:
		return NewPerfectSemantic(anchor, cfg)
	case KindTopdownLocal:
		return NewTopdownLocal(anchor, cfg)
	case KindTopDownGlobal:
		return NewTopDownGlobal(cfg)
	case KindPosition:
		return NewPosition(anchor, cfg)
	case KindVelocity:
		return NewVelocity(anchor, cfg)
	case KindTime:
		return NewTime(cfg)
	}

	return nil, errors.Wrapf(ErrInvalidSensorConfig, "unknown sensor kind %q", kind)
}

///////////////////////////////////////////////////////////////////////////////
// base
///////////////////////////////////////////////////////////////////////////////

type base struct {
	DeviceBase

	name      string
	kind      Kind
	anchor    Entity
	invisible map[Entity]bool
}

func makeBase(kind Kind, anchor Entity, cfg Config) base {
	name := cfg.Name
	if name == "" {
		name = string(kind)
	}

	b := base{
		name:      name,
		kind:      kind,
		anchor:    anchor,
		invisible: make(map[Entity]bool),
	}
	if anchor != nil {
		b.invisible[anchor] = true
	}

	return b
}

func (b *base) Name() string {
	return b.name
}

func (b *base) Kind() Kind {
	return b.kind
}

func (b *base) Anchor() Entity {
	return b.anchor
}

func (b *base) SetInvisible(entities ...Entity) {
	for _, e := range entities {
		b.invisible[e] = true
	}
}

func (b *base) IsInvisible(e Entity) bool {
	return b.invisible[e]
}

// visibleFilter accepts the visible fixtures of entities the sensor may see
func (b *base) visibleFilter(world World, withSensors bool) physics.QueryFilter {
	return func(f *physics.Fixture) bool {
		if !withSensors && f.IsSensor() {
			return false
		}

		e := world.VisibleEntity(f)
		return e != nil && !b.invisible[e]
	}
}

func requireAnchor(kind Kind, anchor Entity) error {
	if anchor == nil {
		return errors.Wrapf(ErrInvalidSensorConfig, "%s needs an anchor", kind)
	}

	return nil
}

func rejectNoise(kind Kind, cfg Config) error {
	if cfg.Noise != nil && cfg.Noise.Type != "" {
		return errors.Wrapf(ErrUnsupportedNoise, "%s detections can not be noised", kind)
	}

	return nil
}
