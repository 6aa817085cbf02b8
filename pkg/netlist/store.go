package netlist

// Store is the graph store: it owns every board, device type, harness,
// board-to-board connection, voltage stake, and the global IgnoreSet, and
// exposes only by-key lookups and read-only iteration. It is built
// once by internal/driverfile and internal/ascfile and is read-only during
// traversal; the only exception is Ignore, which the pull engine may augment
// mid-query.
type Store struct {
	boards      map[string]*Board
	deviceTypes map[string]*DeviceType

	// harnesses maps HarnessID -> (RefDes.Pin -> RefDes.Pin), symmetrically
	// populated by HARNESSLINK.
	harnesses map[string]map[string]string

	// connections maps a qualified refdes (BoardID.RefDes) to its peer
	// qualified refdes on the other side of a board-to-board connection,
	// stored both directions.
	connections map[string]string

	// connectionRefs tracks, per board, which refdeses participate in a
	// board-to-board connection, so the trace/pull engines can decide
	// connector-first without scanning the connections map.
	connectionRefs map[string]map[string]bool

	// refVolt maps a qualified pin (BoardID.RefDes.Pin) to its staked
	// voltage.
	refVolt map[string]float64

	// Ignore is the global, mutable-during-query IgnoreSet.
	Ignore *IgnoreSet
}

// NewStore returns an empty Store ready for loading.
func NewStore() *Store {
	return &Store{
		boards:         make(map[string]*Board),
		deviceTypes:    make(map[string]*DeviceType),
		harnesses:      make(map[string]map[string]string),
		connections:    make(map[string]string),
		connectionRefs: make(map[string]map[string]bool),
		refVolt:        make(map[string]float64),
		Ignore:         NewIgnoreSet(),
	}
}

// AddBoard registers b under its own ID, overwriting any prior board with
// the same ID.
func (s *Store) AddBoard(b *Board) {
	s.boards[b.ID] = b
}

// Board returns the board identified by id.
func (s *Store) Board(id string) (*Board, bool) {
	b, ok := s.boards[id]
	return b, ok
}

// DeviceType returns the device type named name, creating it if absent, so
// loaders can populate DEVICELINK/DEVICEPULL/DEVICEVOLT records in any
// order relative to each other.
func (s *Store) DeviceType(name string) *DeviceType {
	dt, ok := s.deviceTypes[name]
	if !ok {
		dt = NewDeviceType(name)
		s.deviceTypes[name] = dt
	}
	return dt
}

// LookupDeviceType returns the device type named name without creating it.
func (s *Store) LookupDeviceType(name string) (*DeviceType, bool) {
	dt, ok := s.deviceTypes[name]
	return dt, ok
}

// AddHarnessLink records a symmetric wire between ref1.pin1 and ref2.pin2 in
// harness harnessID, per HARNESSLINK.
func (s *Store) AddHarnessLink(harnessID, ref1, pin1, ref2, pin2 string) {
	h, ok := s.harnesses[harnessID]
	if !ok {
		h = make(map[string]string)
		s.harnesses[harnessID] = h
	}
	a := RefDesPin(ref1, pin1)
	b := RefDesPin(ref2, pin2)
	h[a] = b
	h[b] = a
}

// HarnessPeer returns the peer RefDes.Pin for refdesPin within harnessID.
func (s *Store) HarnessPeer(harnessID, refdesPin string) (string, bool) {
	h, ok := s.harnesses[harnessID]
	if !ok {
		return "", false
	}
	peer, ok := h[refdesPin]
	return peer, ok
}

// IsHarness reports whether id names a known harness.
func (s *Store) IsHarness(id string) bool {
	_, ok := s.harnesses[id]
	return ok
}

// AddConnection records a board-to-board connection between
// fromBoard.fromRef and toBoard.toRef, stored symmetrically, and registers
// both refdeses in connectionRefs, per CONNECTION.
func (s *Store) AddConnection(fromBoard, fromRef, toBoard, toRef string) {
	from := QualifiedRefDes(fromBoard, fromRef)
	to := QualifiedRefDes(toBoard, toRef)
	s.connections[from] = to
	s.connections[to] = from
	s.registerConnectionRef(fromBoard, fromRef)
	s.registerConnectionRef(toBoard, toRef)
}

func (s *Store) registerConnectionRef(board, refdes string) {
	m, ok := s.connectionRefs[board]
	if !ok {
		m = make(map[string]bool)
		s.connectionRefs[board] = m
	}
	m[refdes] = true
}

// Connection returns the peer qualified refdes for qualifiedRefDes
// ("BoardID.RefDes"), if one exists. The peer's "board" may in fact name a
// harness.
func (s *Store) Connection(qualifiedRefDes string) (string, bool) {
	peer, ok := s.connections[qualifiedRefDes]
	return peer, ok
}

// HasConnectionRef reports whether refdes on board participates in any
// board-to-board connection.
func (s *Store) HasConnectionRef(board, refdes string) bool {
	m, ok := s.connectionRefs[board]
	if !ok {
		return false
	}
	return m[refdes]
}

// AddRefVolt stakes qualifiedPin ("BoardID.RefDes.Pin") at voltage. It
// reports false (and leaves the existing stake untouched) if qualifiedPin
// was already staked, matching the "duplicate stake: keep the first"
// error-handling rule.
func (s *Store) AddRefVolt(qualifiedPin string, voltage float64) bool {
	if _, exists := s.refVolt[qualifiedPin]; exists {
		return false
	}
	s.refVolt[qualifiedPin] = voltage
	return true
}

// RefVolt returns the staked voltage for qualifiedPin, if any.
func (s *Store) RefVolt(qualifiedPin string) (float64, bool) {
	v, ok := s.refVolt[qualifiedPin]
	return v, ok
}
