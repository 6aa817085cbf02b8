package trace

import "github.com/OpenTraceLab/icdtrace/pkg/netlist"

// groundSignalName is the bare signal name the engine refuses to trace
// through ("ground shortcut"). Ground nets have enormous fan-out and
// would otherwise dominate every search.
const groundSignalName = "GND"

// Search performs the trace engine's depth-first walk between two
// qualified signals. w carries the path walked so far (and doubles as the
// visited set); pass nil to start a fresh search. It returns whether a path
// was found and the walk of the winning branch, or w unchanged when no path
// was found.
//
// Expansion order is the net's membership order, connector transitions are
// attempted before device transitions for each member, and the search stops
// at the first path found; it is not guaranteed to be shortest.
func Search(store *netlist.Store, fromSignal, toSignal string, w *netlist.Walk) (bool, *netlist.Walk) {
	if w == nil {
		w = netlist.NewWalk()
	}
	if fromSignal == toSignal {
		return true, w
	}
	if isGround(fromSignal) || isGround(toSignal) {
		return false, w
	}

	boardID, signal, ok := netlist.SplitQualifiedSignal(fromSignal)
	if !ok {
		return false, w
	}
	board, ok := store.Board(boardID)
	if !ok {
		return false, w
	}

	for _, refdesPin := range board.Net(signal) {
		entry := boardID + "." + refdesPin
		if w.Contains(entry) {
			continue
		}
		refdes, _, ok := netlist.SplitRefDesPin(refdesPin)
		if !ok {
			continue
		}

		branch := w.Clone()
		branch.Append(entry)

		var exitSignal string
		var transitioned bool
		switch {
		case store.HasConnectionRef(boardID, refdes):
			exitSignal, transitioned = netlist.FollowConnection(store, boardID, refdesPin, branch)
		default:
			partType, known := board.PartType(refdes)
			if !known || store.Ignore.HasDevice(partType) {
				break
			}
			if _, isDeviceType := store.LookupDeviceType(partType); !isDeviceType {
				break
			}
			exitSignal, transitioned = netlist.CrossDevice(store, boardID, refdesPin, partType, branch, netlist.StraightThroughTable)
		}
		if !transitioned {
			continue
		}

		if found, finalWalk := Search(store, exitSignal, toSignal, branch); found {
			return true, finalWalk
		}
		// Failure: discard branch, try the next refdes-pin with the
		// original walk untouched (copy-on-branch semantics).
	}

	return false, w
}

func isGround(qualifiedSignal string) bool {
	_, signal, ok := netlist.SplitQualifiedSignal(qualifiedSignal)
	return ok && signal == groundSignalName
}

// Query normalizes from and to (each either a qualified signal or a
// qualified pin) and runs Search between them on a fresh walk. A pin anchor
// is never seeded into the search itself (that would make the walk reject a
// transition through the very pin a real path needs); it is spliced into
// the returned path only after a successful search that came back with no
// nodes at all, preferring the from-side pin over the to-side one, matching
// the original check_trace's post-hoc, same-signal-only behavior.
func Query(store *netlist.Store, from, to string) (found bool, path []string, err error) {
	fromEndpoint, err := netlist.ParseEndpoint(from)
	if err != nil {
		return false, nil, err
	}
	toEndpoint, err := netlist.ParseEndpoint(to)
	if err != nil {
		return false, nil, err
	}

	fromSignal, fromAnchor, err := store.NormalizeEndpoint(fromEndpoint)
	if err != nil {
		return false, nil, err
	}
	toSignal, toAnchor, err := store.NormalizeEndpoint(toEndpoint)
	if err != nil {
		return false, nil, err
	}

	found, finalWalk := Search(store, fromSignal, toSignal, nil)
	path = finalWalk.Path
	if found && len(path) == 0 {
		switch {
		case fromAnchor != "":
			path = []string{fromAnchor}
		case toAnchor != "":
			path = []string{toAnchor}
		}
	}
	return found, path, nil
}
