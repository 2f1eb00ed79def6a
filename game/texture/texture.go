// Package texture holds the appearance of entities. Textures are sampled in
// the entity local frame by cameras and by the top-down rasterizer.
package texture

import (
	"image/color"
	"math"

	"github.com/gaorkl/simple-playgrounds-sub000/common/utils/vector"
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
)

var ErrInvalidTexture = errors.New("invalid texture")

type Texture interface {
	ColorAt(local vector.Vector2) color.RGBA
	// Average is the colour used when the texture is drawn flat
	Average() color.RGBA
}

type Config struct {
	Type     string   `yaml:"type" json:"type"`
	Color    [3]uint8 `yaml:"color" json:"color"`
	ColorMin [3]uint8 `yaml:"color_min" json:"color_min"`
	ColorMax [3]uint8 `yaml:"color_max" json:"color_max"`
	Size     float64  `yaml:"size" json:"size"`
	Seed     uint64   `yaml:"seed" json:"seed"`
}

func rgb(c [3]uint8) color.RGBA {
	return color.RGBA{R: c[0], G: c[1], B: c[2], A: 255}
}

func FromConfig(cfg Config) (Texture, error) {
	switch cfg.Type {
	case "", "color", "uniform":
		return Uniform{Color: rgb(cfg.Color)}, nil
	case "stripes":
		if cfg.Size <= 0 {
			return nil, errors.Wrapf(ErrInvalidTexture, "stripes need a positive size, got %v", cfg.Size)
		}
		return Stripes{ColorA: rgb(cfg.ColorMin), ColorB: rgb(cfg.ColorMax), Width: cfg.Size}, nil
	case "random_tiles":
		if cfg.Size <= 0 {
			return nil, errors.Wrapf(ErrInvalidTexture, "tiles need a positive size, got %v", cfg.Size)
		}
		return NewRandomTiles(rgb(cfg.ColorMin), rgb(cfg.ColorMax), cfg.Size, cfg.Seed), nil
	}

	return nil, errors.Wrapf(ErrInvalidTexture, "unknown texture type %q", cfg.Type)
}

///////////////////////////////////////////////////////////////////////////////

type Uniform struct {
	Color color.RGBA
}

func (t Uniform) ColorAt(local vector.Vector2) color.RGBA {
	return t.Color
}

func (t Uniform) Average() color.RGBA {
	return t.Color
}

///////////////////////////////////////////////////////////////////////////////

// Stripes alternate along the local x axis
type Stripes struct {
	ColorA, ColorB color.RGBA
	Width          float64
}

func (t Stripes) ColorAt(local vector.Vector2) color.RGBA {
	band := int(math.Floor(local.GetX() / t.Width))
	if band%2 == 0 {
		return t.ColorA
	}

	return t.ColorB
}

func (t Stripes) Average() color.RGBA {
	return mix(t.ColorA, t.ColorB)
}

///////////////////////////////////////////////////////////////////////////////

// RandomTiles gives every square tile a colour drawn between Min and Max.
// Tile colours only depend on the seed and the tile coordinates.
type RandomTiles struct {
	Min, Max color.RGBA
	Size     float64
	seed     uint64
}

func NewRandomTiles(min, max color.RGBA, size float64, seed uint64) *RandomTiles {
	return &RandomTiles{Min: min, Max: max, Size: size, seed: seed}
}

func (t *RandomTiles) ColorAt(local vector.Vector2) color.RGBA {
	tx := int64(math.Floor(local.GetX() / t.Size))
	ty := int64(math.Floor(local.GetY() / t.Size))

	// splitmix-style scramble of the tile coordinates
	h := t.seed ^ uint64(tx)*0x9E3779B97F4A7C15 ^ uint64(ty)*0xBF58476D1CE4E5B9
	rng := rand.New(rand.NewSource(h))

	return color.RGBA{
		R: between(rng, t.Min.R, t.Max.R),
		G: between(rng, t.Min.G, t.Max.G),
		B: between(rng, t.Min.B, t.Max.B),
		A: 255,
	}
}

func (t *RandomTiles) Average() color.RGBA {
	return mix(t.Min, t.Max)
}

func between(rng *rand.Rand, a, b uint8) uint8 {
	if b < a {
		a, b = b, a
	}

	return a + uint8(rng.Intn(int(b-a)+1))
}

func mix(a, b color.RGBA) color.RGBA {
	return color.RGBA{
		R: uint8((int(a.R) + int(b.R)) / 2),
		G: uint8((int(a.G) + int(b.G)) / 2),
		B: uint8((int(a.B) + int(b.B)) / 2),
		A: 255,
	}
}
