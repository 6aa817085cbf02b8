package netlist

// CrossDevice is the device-crossing primitive. Given the qualified
// entry pin ("RefDes.Pin") of a refdes on boardID, it looks up the peer pin
// on the same refdes through partType's straight-through or pull-link table
// (selected by table) and returns the qualified signal the peer pin sits
// on.
//
// If walk is non-nil, the peer's qualified pin is appended to its path (a
// no-op if already present). A peer pin absent from the board's refPin
// lookup yields (.., false) without mutating walk.
func CrossDevice(store *Store, boardID, refdesPin, partType string, walk *Walk, table crossTable) (string, bool) {
	refdes, pin, ok := splitTwo(refdesPin)
	if !ok {
		return "", false
	}
	dt, ok := store.LookupDeviceType(partType)
	if !ok {
		return "", false
	}
	peerPin, ok := dt.peer(pin, table)
	if !ok {
		return "", false
	}
	board, ok := store.Board(boardID)
	if !ok {
		return "", false
	}
	peerRefDesPin := RefDesPin(refdes, peerPin)
	signal, ok := board.SignalFor(peerRefDesPin)
	if !ok {
		return "", false
	}
	if walk != nil {
		walk.Append(QualifiedPin(boardID, refdes, peerPin))
	}
	return QualifiedSignal(boardID, signal), true
}

// FollowConnection is the connector/harness traversal primitive. It
// resolves a board-to-board connection from refdesPin on boardID, preserving
// the pin number across the boundary, then either chains through a harness
// (recursing until a board is reached) or terminates on a board's net.
//
// Harness hops may chain arbitrarily deep; walk's visited set (via Append's
// already-present check) prevents infinite loops.
func FollowConnection(store *Store, boardID, refdesPin string, walk *Walk) (string, bool) {
	refdes, pin, ok := splitTwo(refdesPin)
	if !ok {
		return "", false
	}
	peerQRefDes, ok := store.Connection(QualifiedRefDes(boardID, refdes))
	if !ok {
		return "", false
	}
	otherBoard, otherRefdes, ok := splitTwo(peerQRefDes)
	if !ok {
		return "", false
	}
	otherRefdesPin := RefDesPin(otherRefdes, pin)

	if store.IsHarness(otherBoard) {
		arrival := QualifiedPin(otherBoard, otherRefdes, pin)
		peerRefDesPin, ok := store.HarnessPeer(otherBoard, otherRefdesPin)
		if !ok {
			return "", false
		}
		if walk != nil {
			if !walk.Append(arrival) {
				return "", false
			}
			walk.Append(otherBoard + "." + peerRefDesPin)
		}
		return FollowConnection(store, otherBoard, peerRefDesPin, walk)
	}

	board, ok := store.Board(otherBoard)
	if !ok {
		return "", false
	}
	signal, ok := board.SignalFor(otherRefdesPin)
	if !ok {
		return "", false
	}
	if walk != nil {
		arrival := QualifiedPin(otherBoard, otherRefdes, pin)
		if !walk.Append(arrival) {
			return "", false
		}
	}
	return QualifiedSignal(otherBoard, signal), true
}
