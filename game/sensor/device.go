package sensor

// Device is anything a modifier zone can switch off for one tick
type Device interface {
	Disable()
	IsDisabled() bool
	// PreStep re-enables the device at the start of a tick
	PreStep()
}

type DeviceBase struct {
	disabled bool
}

func (d *DeviceBase) Disable() {
	d.disabled = true
}

func (d *DeviceBase) IsDisabled() bool {
	return d.disabled
}

func (d *DeviceBase) PreStep() {
	d.disabled = false
}
