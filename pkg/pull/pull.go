package pull

import (
	"fmt"
	"strings"

	"github.com/OpenTraceLab/icdtrace/pkg/netlist"
)

// Result is the outcome of one pull-resolution query: the anchor path, the
// human-readable pull descriptions, the voltages they resolved to, every net
// visited along the way, and whether the query tripped the IgnoreSet
// augmentation rule.
type Result struct {
	Path        []string
	Pulls       []string
	Voltages    []float64
	PullSignals []string
	Ignored     bool
}

// state is the scratch carried through one recursive resolution. A single
// state is shared by every recursive pullNet call in a query, so clearing
// its pulls/voltages on an ignore hit clears them for the whole query, and
// the query-wide idempotency rule (seen) is enforced across all branches.
//
// walk is the crossing-path loop guard, distinct from the anchor path
// reported in Result: the guard must start empty so the walk is free to
// cross through the seed pin itself.
type state struct {
	store *netlist.Store
	walk  *netlist.Walk

	pulls       []string
	voltages    []float64
	pullSignals []string
	seen        map[string]bool
	ignored     bool
}

// Resolve runs the pull engine for seed, which may be a qualified signal or
// a qualified pin. The returned path holds the seed's anchor pin: the pin
// itself for a pin seed, the net's first member for a signal seed.
func Resolve(store *netlist.Store, seed string) (Result, error) {
	endpoint, err := netlist.ParseEndpoint(seed)
	if err != nil {
		return Result{}, err
	}
	signal, anchor, err := store.NormalizeEndpoint(endpoint)
	if err != nil {
		return Result{}, err
	}

	boardID, bareSignal, ok := netlist.SplitQualifiedSignal(signal)
	if !ok {
		return Result{}, fmt.Errorf("pull: %q is not a qualified signal", signal)
	}
	if anchor == "" {
		anchor = firstMemberPin(store, boardID, bareSignal)
	}

	st := &state{store: store, walk: netlist.NewWalk(), seen: make(map[string]bool)}
	st.pullNet(boardID, bareSignal)

	result := Result{
		Pulls:       st.pulls,
		Voltages:    st.voltages,
		PullSignals: st.pullSignals,
		Ignored:     st.ignored,
	}
	if anchor != "" {
		result.Path = []string{anchor}
	}
	return result, nil
}

// ResolveAlongPath runs pull resolution for every pin on a traced path,
// accumulating into one shared result so the report's pulls and voltages
// cover everything the traced route touches. Each pin starts a fresh
// crossing-path guard, but nets resolved for an earlier pin are not
// re-entered for a later one.
func ResolveAlongPath(store *netlist.Store, path []string) Result {
	st := &state{store: store, seen: make(map[string]bool)}
	for _, qPin := range path {
		boardID, refdes, pin, ok := netlist.SplitQualifiedPin(qPin)
		if !ok {
			continue
		}
		board, ok := store.Board(boardID)
		if !ok {
			// Harness hop entries carry no nets of their own.
			continue
		}
		signal, ok := board.SignalFor(netlist.RefDesPin(refdes, pin))
		if !ok {
			continue
		}
		st.walk = netlist.NewWalk()
		st.pullNet(boardID, signal)
	}
	return Result{
		Path:        path,
		Pulls:       st.pulls,
		Voltages:    st.voltages,
		PullSignals: st.pullSignals,
		Ignored:     st.ignored,
	}
}

// firstMemberPin qualifies the first RefDes.Pin on the seed net, giving a
// signal-seeded query's path the same anchor a pin-seeded one gets.
func firstMemberPin(store *netlist.Store, boardID, signal string) string {
	board, ok := store.Board(boardID)
	if !ok {
		return ""
	}
	net := board.Net(signal)
	if len(net) == 0 {
		return ""
	}
	return boardID + "." + net[0]
}

// pullNet is the recursive walk from one net. It is idempotent within a
// query except for rails, which may be re-entered so their voltage is
// recorded at every point of reach.
func (st *state) pullNet(boardID, signal string) {
	qSignal := boardID + "." + signal

	if st.store.Ignore.HasSignal(qSignal) {
		for _, s := range st.pullSignals {
			st.store.Ignore.AddSignal(s)
		}
		st.pulls = nil
		st.voltages = nil
		st.ignored = true
		return
	}

	board, ok := st.store.Board(boardID)
	if !ok {
		return
	}

	if voltage, isRail := board.Rail(signal); isRail {
		st.recordRailReach(signal, voltage)
		return
	}

	if strings.HasPrefix(signal, "NC") {
		return
	}
	if st.seen[qSignal] {
		return
	}
	st.seen[qSignal] = true
	st.pullSignals = append(st.pullSignals, qSignal)

	for _, refdesPin := range board.Net(signal) {
		if st.ignored {
			break
		}

		refdes, pin, ok := netlist.SplitRefDesPin(refdesPin)
		if !ok {
			continue
		}
		qPin := netlist.QualifiedPin(boardID, refdes, pin)

		if v, ok := st.store.RefVolt(qPin); ok {
			st.pulls = append(st.pulls, fmt.Sprintf("%s specified at %.2f", qPin, v))
			st.voltages = append(st.voltages, v)
		}

		partType, hasPart := board.PartType(refdes)

		if hasPart && isPullResistor(refdes, partType) && !st.store.Ignore.HasDevice(partType) {
			st.applyResistorRule(boardID, board, refdes, partType, pin)
		}

		var deviceType *netlist.DeviceType
		if hasPart && !st.store.Ignore.HasDevice(partType) {
			deviceType, _ = st.store.LookupDeviceType(partType)
		}

		if deviceType != nil {
			if v, ok := deviceType.PinVolt(pin); ok {
				st.pulls = append(st.pulls, fmt.Sprintf("%s (%s) to %.2f", qPin, partType, v))
				st.voltages = append(st.voltages, v)
			}

			if !st.walk.Contains(qPin) {
				if _, ok := deviceType.StraightThrough(pin); ok {
					st.walk.Append(qPin)
					if exit, ok := netlist.CrossDevice(st.store, boardID, refdesPin, partType, st.walk, netlist.StraightThroughTable); ok {
						st.followExit(exit)
					}
				} else if _, ok := deviceType.PullLink(pin); ok {
					st.walk.Append(qPin)
					if exit, ok := netlist.CrossDevice(st.store, boardID, refdesPin, partType, st.walk, netlist.PullLinksTable); ok {
						st.followExit(exit)
					}
				}
			}
		}

		if st.store.HasConnectionRef(boardID, refdes) && !st.walk.Contains(qPin) {
			st.walk.Append(qPin)
			if exit, ok := netlist.FollowConnection(st.store, boardID, refdesPin, st.walk); ok {
				st.followExit(exit)
			}
		}
	}

	// An ignore hit anywhere below must not leak pulls recorded by rules
	// that ran after the hit within this level's iteration.
	if st.ignored {
		st.pulls = nil
		st.voltages = nil
	}
}

func (st *state) followExit(qualifiedSignal string) {
	board, signal, ok := netlist.SplitQualifiedSignal(qualifiedSignal)
	if !ok {
		return
	}
	st.pullNet(board, signal)
}

// applyResistorRule implements the pull-resistor rule: the opposite pin
// (1<->2) either ties to a non-zero rail (record the pull and stop), ties to
// ground (suppress, stop), or ties to another net (recurse, for series
// resistor chains).
func (st *state) applyResistorRule(boardID string, board *netlist.Board, refdes, partType, pin string) {
	oppositePin := "1"
	if pin == "1" {
		oppositePin = "2"
	}
	oppositeRefDesPin := netlist.RefDesPin(refdes, oppositePin)
	oppositeSignal, ok := board.SignalFor(oppositeRefDesPin)
	if !ok {
		return
	}
	if voltage, isRail := board.Rail(oppositeSignal); isRail {
		if voltage == 0.0 {
			return
		}
		st.pulls = append(st.pulls, fmt.Sprintf("%s.%s (%s.%s) to %s", boardID, partType, refdes, oppositePin, oppositeSignal))
		st.voltages = append(st.voltages, voltage)
		return
	}
	st.pullNet(boardID, oppositeSignal)
}

// recordRailReach records a reach onto a rail, describing it via the pin
// that entered the last crossing when one exists (the second-to-last walk
// entry; the last is the crossing's exit pin on the rail itself), so the
// report reads "A.REG (U3.2) to +3V3" rather than a bare voltage.
func (st *state) recordRailReach(signal string, voltage float64) {
	desc := fmt.Sprintf("direct to %s", signal)
	if n := len(st.walk.Path); n > 1 {
		if b, r, p, ok := netlist.SplitQualifiedPin(st.walk.Path[n-2]); ok {
			if board, ok := st.store.Board(b); ok {
				if partType, ok := board.PartType(r); ok {
					desc = fmt.Sprintf("%s.%s (%s.%s) to %s", b, partType, r, p, signal)
				}
			}
		}
	}
	st.pulls = append(st.pulls, desc)
	st.voltages = append(st.voltages, voltage)
}

// isPullResistor reports whether refdes is a pull resistor whose part type
// is not flagged do-not-place ("dnp", case-insensitive, anywhere in the part
// type excludes it from the pull engine).
func isPullResistor(refdes, partType string) bool {
	if len(refdes) < 2 || refdes[0] != 'R' {
		return false
	}
	if refdes[1] < '0' || refdes[1] > '9' {
		return false
	}
	return !strings.Contains(strings.ToLower(partType), "dnp")
}
