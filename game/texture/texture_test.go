package texture

import (
	"image/color"
	"testing"

	"github.com/gaorkl/simple-playgrounds-sub000/common/utils/vector"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromConfig(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		err  bool
	}{
		{"default is uniform", Config{Color: [3]uint8{10, 20, 30}}, false},
		{"stripes", Config{Type: "stripes", Size: 4}, false},
		{"stripes without size", Config{Type: "stripes"}, true},
		{"tiles", Config{Type: "random_tiles", Size: 5, Seed: 3}, false},
		{"unknown", Config{Type: "plaid"}, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tex, err := FromConfig(c.cfg)
			if c.err {
				assert.Equal(t, ErrInvalidTexture, errors.Cause(err))
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, tex)
		})
	}
}

func TestStripesAlternate(t *testing.T) {
	red := color.RGBA{255, 0, 0, 255}
	blue := color.RGBA{0, 0, 255, 255}
	tex := Stripes{ColorA: red, ColorB: blue, Width: 2}

	assert.Equal(t, red, tex.ColorAt(vector.MakeVector2(1, 0)))
	assert.Equal(t, blue, tex.ColorAt(vector.MakeVector2(3, 0)))
	assert.Equal(t, blue, tex.ColorAt(vector.MakeVector2(-1, 0)))
}

func TestRandomTilesAreStable(t *testing.T) {
	min := color.RGBA{0, 0, 0, 255}
	max := color.RGBA{200, 200, 200, 255}

	a := NewRandomTiles(min, max, 5, 42)
	b := NewRandomTiles(min, max, 5, 42)

	p := vector.MakeVector2(12, -3)
	assert.Equal(t, a.ColorAt(p), b.ColorAt(p))
	assert.Equal(t, a.ColorAt(p), a.ColorAt(vector.MakeVector2(14, -1)), "same tile")

	c := a.ColorAt(p)
	assert.LessOrEqual(t, c.R, uint8(200))
}
