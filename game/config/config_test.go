package config

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entityParams struct {
	PhysicalShape string    `yaml:"physical_shape"`
	Radius        float64   `yaml:"radius"`
	Size          []float64 `yaml:"size"`
	Reward        float64   `yaml:"reward"`
	Interaction   float64   `yaml:"interaction_range"`
	Texture       struct {
		Type  string   `yaml:"type"`
		Color [3]uint8 `yaml:"color"`
	} `yaml:"texture"`
}

func TestEmbeddedDefaultsAreValid(t *testing.T) {
	d := Default()
	assert.Equal(t, []string{"element", "part", "playground", "sensor"}, d.Categories())
	assert.Contains(t, d.Keys("element"), "candy")
	assert.Contains(t, d.Keys("sensor"), "semantic_cones")
}

func TestResolveLastWriterWins(t *testing.T) {
	params, err := Default().Resolve("element", "candy", Params{
		"reward":  12,
		"texture": Params{"color": []int{1, 2, 3}},
	})
	require.NoError(t, err)

	var out entityParams
	require.NoError(t, DecodeParams(params, &out))
	assert.Equal(t, 12.0, out.Reward)
	assert.Equal(t, 2.0, out.Interaction)
	assert.Equal(t, "pentagon", out.PhysicalShape)
	assert.Equal(t, "color", out.Texture.Type, "nested mappings are merged")
	assert.Equal(t, [3]uint8{1, 2, 3}, out.Texture.Color)
}

func TestSizeOverrideReplacesRadius(t *testing.T) {
	params, err := Default().Resolve("element", "basic", Params{"size": []float64{10, 20}})
	require.NoError(t, err)

	_, hasRadius := params["radius"]
	assert.False(t, hasRadius)
}

func TestUnknownKeysAreRejected(t *testing.T) {
	var out entityParams
	err := Default().Decode("element", "candy", Params{"colour": "red"}, &out)
	assert.Equal(t, ErrUnknownEntry, errors.Cause(err))

	_, err = Default().Lookup("element", "spaceship")
	assert.Equal(t, ErrUnknownEntry, errors.Cause(err))
}

func TestLoadValidatesSchema(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"missing categories", "element: {}\n"},
		{"radius and size", "playground: {}\npart: {}\nsensor: {}\nelement:\n  x: {radius: 2, size: [1, 2]}\n"},
		{"negative fov", "playground: {}\npart: {}\nelement: {}\nsensor:\n  lidar: {fov: -10}\n"},
		{"unknown shape", "playground: {}\npart: {}\nsensor: {}\nelement:\n  x: {physical_shape: blob}\n"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Load([]byte(c.doc))
			assert.Equal(t, ErrInvalidConfig, errors.Cause(err))
		})
	}

	_, err := Load([]byte("playground: {}\npart: {}\nsensor: {}\nelement:\n  x: {radius: 2}\n"))
	assert.NoError(t, err)
}
