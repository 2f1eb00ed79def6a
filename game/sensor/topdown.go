package sensor

import (
	"image"
	"math"

	"github.com/gaorkl/simple-playgrounds-sub000/common/utils/number"
	"github.com/gaorkl/simple-playgrounds-sub000/common/utils/trigo"
	"github.com/pkg/errors"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

func imageValues(img *image.RGBA, raw []float64) {
	b := img.Bounds()
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.RGBAAt(x, y)
			raw[i] = float64(c.R)
			raw[i+1] = float64(c.G)
			raw[i+2] = float64(c.B)
			i += 3
		}
	}
}

func valuesImage(values []float64, width, height int, scale float64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < width*height && 3*i+2 < len(values); i++ {
		off := 4 * i
		img.Pix[off] = uint8(values[3*i] * scale)
		img.Pix[off+1] = uint8(values[3*i+1] * scale)
		img.Pix[off+2] = uint8(values[3*i+2] * scale)
		img.Pix[off+3] = 255
	}

	return img
}

///////////////////////////////////////////////////////////////////////////////
// TopdownLocal
///////////////////////////////////////////////////////////////////////////////

// TopdownLocal crops the playground surface around its anchor, rotated so
// the anchor heading points up, masked outside the field of view
type TopdownLocal struct {
	base
	numeric
	fov        float64
	maxRange   float64
	resolution int
	onlyFront  bool
}

func NewTopdownLocal(anchor Entity, cfg Config) (*TopdownLocal, error) {
	if err := requireAnchor(KindTopdownLocal, anchor); err != nil {
		return nil, err
	}

	if cfg.Resolution <= 0 || cfg.MaxRange <= 0 || cfg.FOV <= 0 || cfg.FOV > 360 {
		return nil, errors.Wrapf(ErrInvalidSensorConfig, "topdown resolution %d range %v fov %v", cfg.Resolution, cfg.MaxRange, cfg.FOV)
	}

	num, err := makeNumeric(cfg, []int{cfg.Resolution, cfg.Resolution, 3}, pixelMax)
	if err != nil {
		return nil, err
	}

	return &TopdownLocal{
		base:       makeBase(KindTopdownLocal, anchor, cfg),
		numeric:    num,
		fov:        number.DegreeToRadian(cfg.FOV),
		maxRange:   cfg.MaxRange,
		resolution: cfg.Resolution,
		onlyFront:  cfg.OnlyFront,
	}, nil
}

// sourceToView maps surface pixels to view pixels
func (s *TopdownLocal) sourceToView(surfaceHeight float64) f64.Aff3 {
	r := float64(s.resolution)
	k := r / (2 * s.maxRange)

	ax, ay := s.anchor.Position().Get()
	phi := math.Pi/2 - s.anchor.Angle()
	c, sn := math.Cos(phi), math.Sin(phi)

	return f64.Aff3{
		k * c, k * sn, r/2 - k*c*ax - k*sn*(surfaceHeight-ay),
		-k * sn, k * c, r/2 + k*sn*ax - k*c*(surfaceHeight-ay),
	}
}

// visible tells whether a view pixel lies in range and field of view
func (s *TopdownLocal) visible(x, y int) bool {
	half := float64(s.resolution) / 2
	lx := float64(x) + 0.5 - half
	ly := half - float64(y) - 0.5

	if s.onlyFront && ly < 0 {
		return false
	}

	if math.Hypot(lx, ly) > half {
		return false
	}

	if s.fov >= 2*math.Pi {
		return true
	}

	bearing := trigo.WrapAngle(math.Atan2(ly, lx) - math.Pi/2)
	return math.Abs(bearing) <= s.fov/2
}

// View renders the cropped surface
func (s *TopdownLocal) View(surface *image.RGBA) *image.RGBA {
	view := image.NewRGBA(image.Rect(0, 0, s.resolution, s.resolution))
	if surface == nil {
		return view
	}

	h := float64(surface.Bounds().Dy())
	draw.NearestNeighbor.Transform(view, s.sourceToView(h), surface, surface.Bounds(), draw.Src, nil)

	for y := 0; y < s.resolution; y++ {
		for x := 0; x < s.resolution; x++ {
			if !s.visible(x, y) {
				off := view.PixOffset(x, y)
				view.Pix[off], view.Pix[off+1], view.Pix[off+2], view.Pix[off+3] = 0, 0, 0, 255
			}
		}
	}

	return view
}

func (s *TopdownLocal) Update(world World) {
	if s.IsDisabled() {
		s.zero()
		return
	}

	raw := make([]float64, len(s.values))
	imageValues(s.View(world.Surface()), raw)
	s.finish(raw)
}

func (s *TopdownLocal) Draw(width, height int) *image.RGBA {
	scale := 1.0
	if s.normalize {
		scale = pixelMax
	}

	src := valuesImage(s.values, s.resolution, s.resolution, scale)
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	return dst
}

func (s *TopdownLocal) Reset() {
	s.zero()
}

///////////////////////////////////////////////////////////////////////////////
// TopDownGlobal
///////////////////////////////////////////////////////////////////////////////

// TopDownGlobal downsamples the whole surface; the longest side spans
// resolution pixels
type TopDownGlobal struct {
	base
	numeric
	resolution    int
	width, height int
}

func NewTopDownGlobal(cfg Config) (*TopDownGlobal, error) {
	if cfg.Resolution <= 0 {
		return nil, errors.Wrapf(ErrInvalidSensorConfig, "topdown resolution %d", cfg.Resolution)
	}

	num, err := makeNumeric(cfg, []int{cfg.Resolution, cfg.Resolution, 3}, pixelMax)
	if err != nil {
		return nil, err
	}

	return &TopDownGlobal{
		base:       makeBase(KindTopDownGlobal, nil, cfg),
		numeric:    num,
		resolution: cfg.Resolution,
		width:      cfg.Resolution,
		height:     cfg.Resolution,
	}, nil
}

func (s *TopDownGlobal) fit(surface *image.RGBA) {
	w, h := surface.Bounds().Dx(), surface.Bounds().Dy()
	if w <= 0 || h <= 0 {
		return
	}

	width, height := s.resolution, s.resolution
	if w > h {
		height = int(math.Max(1, math.Round(float64(s.resolution)*float64(h)/float64(w))))
	} else if h > w {
		width = int(math.Max(1, math.Round(float64(s.resolution)*float64(w)/float64(h))))
	}

	if width != s.width || height != s.height {
		s.width, s.height = width, height
		s.shape = []int{height, width, 3}
		s.values = make([]float64, width*height*3)
	}
}

func (s *TopDownGlobal) Update(world World) {
	surface := world.Surface()
	if surface == nil {
		return
	}
	s.fit(surface)

	if s.IsDisabled() {
		s.zero()
		return
	}

	view := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	draw.BiLinear.Scale(view, view.Bounds(), surface, surface.Bounds(), draw.Src, nil)

	raw := make([]float64, len(s.values))
	imageValues(view, raw)
	s.finish(raw)
}

func (s *TopDownGlobal) Draw(width, height int) *image.RGBA {
	scale := 1.0
	if s.normalize {
		scale = pixelMax
	}

	src := valuesImage(s.values, s.width, s.height, scale)
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	return dst
}

func (s *TopDownGlobal) Reset() {
	s.zero()
}
