package sensor

import (
	"image"
	"image/color"

	"github.com/pkg/errors"
)

const pixelMax = 255.0

// luma weights of the grey reduction
const (
	lumaR = 0.299
	lumaG = 0.587
	lumaB = 0.114
)

// RgbCamera samples, for every ray, the texture of the struck entity at the
// hit point expressed in the entity frame
type RgbCamera struct {
	base
	numeric
	rays rayCaster
}

func NewRgbCamera(anchor Entity, cfg Config) (*RgbCamera, error) {
	if err := requireAnchor(KindRgbCamera, anchor); err != nil {
		return nil, err
	}

	return newRgbCamera(KindRgbCamera, anchor, cfg)
}

func newRgbCamera(kind Kind, anchor Entity, cfg Config) (*RgbCamera, error) {
	rays, err := makeRayCaster(kind, cfg)
	if err != nil {
		return nil, err
	}

	num, err := makeNumeric(cfg, []int{cfg.Resolution, 3}, pixelMax)
	if err != nil {
		return nil, err
	}

	return &RgbCamera{
		base:    makeBase(kind, anchor, cfg),
		numeric: num,
		rays:    rays,
	}, nil
}

func (s *RgbCamera) rawPixels(world World) []float64 {
	hits := s.rays.cast(world, s.anchor, 0, s.visibleFilter(world, true))

	raw := make([]float64, len(hits)*3)
	for i, hit := range hits {
		if hit == nil || hit.entity == nil {
			continue
		}

		local := hit.point.Sub(hit.entity.Position()).Rotate(-hit.entity.Angle())

		tex := hit.entity.Texture()
		if tex == nil {
			continue
		}

		c := tex.ColorAt(local)
		raw[3*i] = float64(c.R)
		raw[3*i+1] = float64(c.G)
		raw[3*i+2] = float64(c.B)
	}

	return raw
}

func (s *RgbCamera) Update(world World) {
	if s.IsDisabled() {
		s.zero()
		return
	}

	s.finish(s.rawPixels(world))
}

func (s *RgbCamera) Draw(width, height int) *image.RGBA {
	scale := 1.0
	if s.normalize {
		scale = pixelMax
	}

	colors := make([]color.RGBA, len(s.values)/3)
	for i := range colors {
		colors[i] = color.RGBA{
			R: uint8(s.values[3*i] * scale),
			G: uint8(s.values[3*i+1] * scale),
			B: uint8(s.values[3*i+2] * scale),
			A: 255,
		}
	}

	return drawStrip(colors, width, height)
}

func (s *RgbCamera) Reset() {
	s.zero()
}

///////////////////////////////////////////////////////////////////////////////

// GreyCamera reduces the rgb camera output to luma
type GreyCamera struct {
	base
	numeric
	rgb *RgbCamera
}

func NewGreyCamera(anchor Entity, cfg Config) (*GreyCamera, error) {
	if err := requireAnchor(KindGreyCamera, anchor); err != nil {
		return nil, err
	}

	// noise applies once, on the grey values
	rgbCfg := cfg
	rgbCfg.Noise = nil
	rgbCfg.Normalize = false

	rgb, err := newRgbCamera(KindGreyCamera, anchor, rgbCfg)
	if err != nil {
		return nil, errors.Wrap(err, "grey camera")
	}

	num, err := makeNumeric(cfg, []int{cfg.Resolution}, pixelMax)
	if err != nil {
		return nil, err
	}

	return &GreyCamera{
		base:    makeBase(KindGreyCamera, anchor, cfg),
		numeric: num,
		rgb:     rgb,
	}, nil
}

func (s *GreyCamera) SetInvisible(entities ...Entity) {
	s.base.SetInvisible(entities...)
	s.rgb.SetInvisible(entities...)
}

func (s *GreyCamera) Update(world World) {
	if s.IsDisabled() {
		s.zero()
		return
	}

	pixels := s.rgb.rawPixels(world)

	raw := make([]float64, len(pixels)/3)
	for i := range raw {
		raw[i] = lumaR*pixels[3*i] + lumaG*pixels[3*i+1] + lumaB*pixels[3*i+2]
	}

	s.finish(raw)
}

func (s *GreyCamera) Draw(width, height int) *image.RGBA {
	scale := 1.0
	if s.normalize {
		scale = pixelMax
	}

	colors := make([]color.RGBA, len(s.values))
	for i, v := range s.values {
		g := uint8(v * scale)
		colors[i] = color.RGBA{R: g, G: g, B: g, A: 255}
	}

	return drawStrip(colors, width, height)
}

func (s *GreyCamera) Reset() {
	s.zero()
}
