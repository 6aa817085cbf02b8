package netlist

// Board is a single PCB's parts, nets, and rails, identified by BoardID.
// Boards are populated once during load and read-only afterwards; every
// traversal in pkg/trace and pkg/pull reads through the accessors below.
type Board struct {
	ID string

	// parts maps RefDes to its PartType.
	parts map[string]string

	// connections maps Signal to the ordered sequence of RefDes.Pin that
	// make up that net, in the order they were read from the source file.
	connections map[string][]string

	// refPin is the inverse of connections: RefDes.Pin -> Signal.
	refPin map[string]string

	// pins maps RefDes to its pins, in the order they were first seen.
	pins map[string][]string

	// rails maps Signal to its supply voltage, for signals flagged as rails.
	rails map[string]float64
}

// NewBoard creates an empty board ready for loading.
func NewBoard(id string) *Board {
	return &Board{
		ID:          id,
		parts:       make(map[string]string),
		connections: make(map[string][]string),
		refPin:      make(map[string]string),
		pins:        make(map[string][]string),
		rails:       make(map[string]float64),
	}
}

// AddPart records a refdes's part type. A later call for the same refdes
// overwrites the type, matching the source ASC format where a *PART* line
// is the sole source of truth for that refdes.
func (b *Board) AddPart(refdes, partType string) {
	b.parts[refdes] = partType
}

// PartType returns the part type of refdes, if known.
func (b *Board) PartType(refdes string) (string, bool) {
	t, ok := b.parts[refdes]
	return t, ok
}

// AddPin records that refdes has pin, appending it to the refdes's pin list
// if not already present.
func (b *Board) AddPin(refdes, pin string) {
	for _, p := range b.pins[refdes] {
		if p == pin {
			return
		}
	}
	b.pins[refdes] = append(b.pins[refdes], pin)
}

// Pins returns the pins known for refdes, in first-seen order.
func (b *Board) Pins(refdes string) []string {
	return b.pins[refdes]
}

// Connect attaches refdesPin ("RefDes.Pin") to signal, appending it to the
// net's membership order and recording the reverse lookup. It is the
// loader's job to keep refdesPin single-valued per board.
func (b *Board) Connect(signal, refdesPin string) {
	b.connections[signal] = append(b.connections[signal], refdesPin)
	b.refPin[refdesPin] = signal
	if refdes, pin, ok := splitTwo(refdesPin); ok {
		b.AddPin(refdes, pin)
	}
}

// Net returns the ordered membership of signal, or nil if the signal is
// unknown on this board.
func (b *Board) Net(signal string) []string {
	return b.connections[signal]
}

// HasNet reports whether signal is a known net on this board.
func (b *Board) HasNet(signal string) bool {
	_, ok := b.connections[signal]
	return ok
}

// SignalFor returns the net that refdesPin belongs to.
func (b *Board) SignalFor(refdesPin string) (string, bool) {
	s, ok := b.refPin[refdesPin]
	return s, ok
}

// AddRail records signal as a supply rail at the given voltage, overwriting
// any prior value (an explicit RAIL directive always wins over the
// heuristic classification applied when the signal was first read).
func (b *Board) AddRail(signal string, voltage float64) {
	b.rails[signal] = voltage
}

// Rail returns the rail voltage for signal, if it is a rail.
func (b *Board) Rail(signal string) (float64, bool) {
	v, ok := b.rails[signal]
	return v, ok
}

// Signals returns every net name on the board. Iteration order is
// unspecified; callers that need determinism should sort.
func (b *Board) Signals() []string {
	out := make([]string, 0, len(b.connections))
	for s := range b.connections {
		out = append(out, s)
	}
	return out
}
