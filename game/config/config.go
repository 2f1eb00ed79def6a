// Package config resolves construction parameters: embedded YAML defaults
// looked up by (category, key), merged under caller overrides and decoded
// into typed structs that reject unknown keys.
package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"sort"
	"strings"
	"sync"

	"github.com/gaorkl/simple-playgrounds-sub000/common/utils"
	"github.com/pkg/errors"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

//go:embed defaults.schema.json
var defaultsSchema string

const schemaURL = "defaults.schema.json"

var (
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrUnknownEntry  = errors.New("unknown configuration entry")
)

// Params is a flat key -> value mapping
type Params map[string]interface{}

// exclusiveKeys lists keys that replace each other when merged: an override
// giving a size drops the default radius
var exclusiveKeys = [][]string{
	{"radius", "size"},
}

type Defaults struct {
	entries map[string]map[string]Params
}

var (
	defaultsOnce sync.Once
	defaults     *Defaults
)

// Default returns the embedded defaults
func Default() *Defaults {
	defaultsOnce.Do(func() {
		var err error
		defaults, err = Load(defaultsYAML)
		utils.Check(err, "embedded defaults are invalid")
	})

	return defaults
}

// Load parses and validates a defaults document
func Load(data []byte) (*Defaults, error) {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(ErrInvalidConfig, err.Error())
	}

	if err := validate(raw); err != nil {
		return nil, err
	}

	d := &Defaults{entries: make(map[string]map[string]Params)}
	for category, value := range raw {
		keys, ok := value.(map[string]interface{})
		if !ok {
			return nil, errors.Wrapf(ErrInvalidConfig, "category %s is not a mapping", category)
		}

		d.entries[category] = make(map[string]Params)
		for key, params := range keys {
			m, ok := params.(map[string]interface{})
			if !ok && params != nil {
				return nil, errors.Wrapf(ErrInvalidConfig, "%s/%s is not a mapping", category, key)
			}
			d.entries[category][key] = Params(m)
		}
	}

	return d, nil
}

func validate(raw map[string]interface{}) error {
	schema, err := jsonschema.CompileString(schemaURL, defaultsSchema)
	if err != nil {
		return errors.Wrap(err, "could not compile defaults schema")
	}

	// round-trip through JSON so the validator only sees JSON value types
	data, err := json.Marshal(raw)
	if err != nil {
		return errors.Wrap(ErrInvalidConfig, err.Error())
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return errors.Wrap(ErrInvalidConfig, err.Error())
	}

	if err := schema.Validate(doc); err != nil {
		return errors.Wrap(ErrInvalidConfig, err.Error())
	}

	return nil
}

func (d *Defaults) Categories() []string {
	res := make([]string, 0, len(d.entries))
	for category := range d.entries {
		res = append(res, category)
	}
	sort.Strings(res)

	return res
}

func (d *Defaults) Keys(category string) []string {
	res := make([]string, 0, len(d.entries[category]))
	for key := range d.entries[category] {
		res = append(res, key)
	}
	sort.Strings(res)

	return res
}

// Lookup returns a copy of the defaults of (category, key)
func (d *Defaults) Lookup(category, key string) (Params, error) {
	keys, ok := d.entries[category]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownEntry, "category %q", category)
	}

	params, ok := keys[key]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownEntry, "%s %q", category, key)
	}

	return Merge(nil, params), nil
}

// Resolve merges overrides on top of the defaults of (category, key)
func (d *Defaults) Resolve(category, key string, overrides Params) (Params, error) {
	params, err := d.Lookup(category, key)
	if err != nil {
		return nil, err
	}

	return Merge(params, overrides), nil
}

// Decode resolves (category, key) and decodes the result into out
func (d *Defaults) Decode(category, key string, overrides Params, out interface{}) error {
	params, err := d.Resolve(category, key, overrides)
	if err != nil {
		return err
	}

	return errors.Wrapf(DecodeParams(params, out), "%s %q", category, key)
}

// Merge returns base with overrides applied, last writer wins. Nested
// mappings are merged recursively.
func Merge(base, overrides Params) Params {
	res := make(Params, len(base)+len(overrides))
	for k, v := range base {
		res[k] = v
	}

	for _, group := range exclusiveKeys {
		overridden := false
		for _, key := range group {
			if _, ok := overrides[key]; ok {
				overridden = true
			}
		}
		if !overridden {
			continue
		}
		for _, key := range group {
			delete(res, key)
		}
	}

	for k, v := range overrides {
		sub, isMap := toParams(v)
		prev, prevIsMap := toParams(res[k])
		if isMap && prevIsMap {
			res[k] = Merge(prev, sub)
			continue
		}
		res[k] = v
	}

	return res
}

func toParams(v interface{}) (Params, bool) {
	switch typed := v.(type) {
	case Params:
		return typed, true
	case map[string]interface{}:
		return Params(typed), true
	}

	return nil, false
}

// DecodeParams decodes params into out, rejecting keys out does not declare
func DecodeParams(params Params, out interface{}) error {
	data, err := yaml.Marshal(map[string]interface{}(params))
	if err != nil {
		return errors.Wrap(ErrInvalidConfig, err.Error())
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(out); err != nil {
		if strings.Contains(err.Error(), "not found in type") {
			return errors.Wrap(ErrUnknownEntry, err.Error())
		}
		return errors.Wrap(ErrInvalidConfig, err.Error())
	}

	return nil
}
