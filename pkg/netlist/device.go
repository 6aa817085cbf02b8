package netlist

// DeviceType is a reusable pin-to-pin map keyed by part type, shared by every
// refdes that carries that type. It is built once while loading DEVICELINK,
// DEVICEPULL, and DEVICEVOLT directives and never mutated afterward.
type DeviceType struct {
	Name string

	// straightThrough holds logical signal pass-through pairs; walked by the
	// trace engine and, for voltage propagation, by the pull engine.
	straightThrough map[string]string

	// pullLinks holds voltage-propagating pairs that are not logical
	// pass-throughs (e.g. a FET gate passing a rail); walked only by the
	// pull engine.
	pullLinks map[string]string

	// pinVolts holds hard voltage stakes per pin.
	pinVolts map[string]float64
}

// NewDeviceType creates an empty device type named name.
func NewDeviceType(name string) *DeviceType {
	return &DeviceType{
		Name:            name,
		straightThrough: make(map[string]string),
		pullLinks:       make(map[string]string),
		pinVolts:        make(map[string]float64),
	}
}

// AddStraightThrough records pinA -> pinB. If bidir, the reverse is also
// recorded, matching DEVICELINK's optional bidirectional flag.
func (d *DeviceType) AddStraightThrough(pinA, pinB string, bidir bool) {
	d.straightThrough[pinA] = pinB
	if bidir {
		d.straightThrough[pinB] = pinA
	}
}

// StraightThrough returns the peer pin for pin via the straight-through
// table.
func (d *DeviceType) StraightThrough(pin string) (string, bool) {
	p, ok := d.straightThrough[pin]
	return p, ok
}

// AddPullLink records pinA -> pinB in the pull-link table.
func (d *DeviceType) AddPullLink(pinA, pinB string) {
	d.pullLinks[pinA] = pinB
}

// PullLink returns the peer pin for pin via the pull-link table.
func (d *DeviceType) PullLink(pin string) (string, bool) {
	p, ok := d.pullLinks[pin]
	return p, ok
}

// SetPinVolt stakes pin at voltage.
func (d *DeviceType) SetPinVolt(pin string, voltage float64) {
	d.pinVolts[pin] = voltage
}

// PinVolt returns the staked voltage for pin, if any.
func (d *DeviceType) PinVolt(pin string) (float64, bool) {
	v, ok := d.pinVolts[pin]
	return v, ok
}

// crossTable selects which pin map CrossDevice walks.
type crossTable int

const (
	// StraightThroughTable selects DeviceType.straightThrough.
	StraightThroughTable crossTable = iota
	// PullLinksTable selects DeviceType.pullLinks.
	PullLinksTable
)

func (d *DeviceType) peer(pin string, table crossTable) (string, bool) {
	switch table {
	case PullLinksTable:
		return d.PullLink(pin)
	default:
		return d.StraightThrough(pin)
	}
}
