package playground

import (
	"github.com/gaorkl/simple-playgrounds-sub000/game/config"
	"github.com/gaorkl/simple-playgrounds-sub000/game/sensor"
)

// Blackout zones switch off the devices of agents standing in them for the
// tick: sensors or communication depending on the kind
type Blackout struct {
	element
}

func newBlackout(kind ElementKind, overrides config.Params) (*Blackout, error) {
	cfg, err := decodeElement(kind, overrides)
	if err != nil {
		return nil, err
	}

	base, err := makeElement(kind, cfg.EntityConfig, CategoryModifier)
	if err != nil {
		return nil, err
	}

	return &Blackout{element: base}, nil
}

func NewSensorBlackout(overrides config.Params) (*Blackout, error) {
	return newBlackout(KindSensorBlackout, overrides)
}

func NewCommunicationBlackout(overrides config.Params) (*Blackout, error) {
	return newBlackout(KindCommunicationBlackout, overrides)
}

func (b *Blackout) Modify(device sensor.Device) {
	switch device.(type) {
	case sensor.Sensor:
		if b.kind == KindSensorBlackout {
			device.Disable()
		}
	case *Communication:
		if b.kind == KindCommunicationBlackout {
			device.Disable()
		}
	}
}
