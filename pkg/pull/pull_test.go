package pull

import (
	"reflect"
	"sort"
	"testing"

	"github.com/OpenTraceLab/icdtrace/pkg/netlist"
)

// TestResolveSingleRailPull reproduces scenario 2: a 10k resistor R10
// between NET_A and the +3V3 rail.
func TestResolveSingleRailPull(t *testing.T) {
	s := netlist.NewStore()
	a := netlist.NewBoard("A")
	a.Connect("NET_A", "R10.1")
	a.Connect("+3V3", "R10.2")
	a.AddPart("R10", "10K")
	a.AddRail("+3V3", 3.3)
	s.AddBoard(a)

	result, err := Resolve(s, "A.NET_A")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !reflect.DeepEqual(result.Voltages, []float64{3.3}) {
		t.Fatalf("voltages = %v, want [3.3]", result.Voltages)
	}
}

// TestResolveConflictingPulls reproduces scenario 3: a second resistor
// R11 pulling the same net to a different rail produces disagreeing
// voltages.
func TestResolveConflictingPulls(t *testing.T) {
	s := netlist.NewStore()
	a := netlist.NewBoard("A")
	a.Connect("NET_A", "R10.1")
	a.Connect("+3V3", "R10.2")
	a.Connect("NET_A", "R11.1")
	a.Connect("+1V8", "R11.2")
	a.AddPart("R10", "10K")
	a.AddPart("R11", "10K")
	a.AddRail("+3V3", 3.3)
	a.AddRail("+1V8", 1.8)
	s.AddBoard(a)

	result, err := Resolve(s, "A.NET_A")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	sort.Float64s(result.Voltages)
	if !reflect.DeepEqual(result.Voltages, []float64{1.8, 3.3}) {
		t.Fatalf("voltages = %v, want [1.8 3.3]", result.Voltages)
	}
}

// TestResolveDNPResistorIgnored reproduces scenario 4.
func TestResolveDNPResistorIgnored(t *testing.T) {
	s := netlist.NewStore()
	a := netlist.NewBoard("A")
	a.Connect("NET_B", "R20.1")
	a.Connect("+5V", "R20.2")
	a.AddPart("R20", "10K_DNP")
	a.AddRail("+5V", 5.0)
	s.AddBoard(a)

	result, err := Resolve(s, "A.NET_B")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(result.Voltages) != 0 || len(result.Pulls) != 0 {
		t.Fatalf("a DNP resistor must not contribute a pull, got voltages=%v pulls=%v", result.Voltages, result.Pulls)
	}
}

// TestResolveGroundSuppressed reproduces scenario 5.
func TestResolveGroundSuppressed(t *testing.T) {
	s := netlist.NewStore()
	a := netlist.NewBoard("A")
	a.Connect("NET_C", "R30.1")
	a.Connect("GND", "R30.2")
	a.AddPart("R30", "10K")
	a.AddRail("GND", 0.0)
	s.AddBoard(a)

	result, err := Resolve(s, "A.NET_C")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(result.Voltages) != 0 {
		t.Fatalf("pulls to a 0V rail must be suppressed, got %v", result.Voltages)
	}
}

// TestResolveIgnoreAugmentation reproduces scenario 6: an IGNORE'd
// signal encountered mid-walk clears pulls/voltages and expands the
// IgnoreSet with every net seen so far in this query.
func TestResolveIgnoreAugmentation(t *testing.T) {
	s := netlist.NewStore()
	a := netlist.NewBoard("A")
	a.Connect("NET_D", "U1.1")
	a.Connect("NET_Q", "U1.2")
	a.Connect("NET_Q", "R40.1")
	a.Connect("+3V3", "R40.2")
	a.AddPart("U1", "BUF")
	a.AddPart("R40", "10K")
	a.AddRail("+3V3", 3.3)
	s.AddBoard(a)
	s.DeviceType("BUF").AddStraightThrough("1", "2", true)
	s.Ignore.AddSignal("A.NET_Q")

	result, err := Resolve(s, "A.NET_D")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !result.Ignored {
		t.Fatalf("expected the query to be marked ignored")
	}
	if len(result.Voltages) != 0 || len(result.Pulls) != 0 {
		t.Fatalf("ignored query must clear pulls/voltages, got voltages=%v pulls=%v", result.Voltages, result.Pulls)
	}
	if !s.Ignore.HasSignal("A.NET_D") {
		t.Fatalf("the net that transited the ignored signal should itself become ignored")
	}
}

func TestResolveSeriesResistorChain(t *testing.T) {
	s := netlist.NewStore()
	a := netlist.NewBoard("A")
	a.Connect("NET_A", "R1.1")
	a.Connect("NET_B", "R1.2")
	a.Connect("NET_B", "R2.1")
	a.Connect("+3V3", "R2.2")
	a.AddPart("R1", "10K")
	a.AddPart("R2", "10K")
	a.AddRail("+3V3", 3.3)
	s.AddBoard(a)

	result, err := Resolve(s, "A.NET_A")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !reflect.DeepEqual(result.Voltages, []float64{3.3}) {
		t.Fatalf("series resistor chain should still resolve to 3.3, got %v", result.Voltages)
	}
}

// TestResolveRailReachThroughDevice checks both the straight-through rule
// and the rail-reach description, which names the pin that entered the
// crossing rather than the exit pin on the rail itself.
func TestResolveRailReachThroughDevice(t *testing.T) {
	s := netlist.NewStore()
	a := netlist.NewBoard("A")
	a.Connect("NET_A", "U1.1")
	a.Connect("+3V3", "U1.2")
	a.AddPart("U1", "LOADSW")
	a.AddRail("+3V3", 3.3)
	s.AddBoard(a)
	s.DeviceType("LOADSW").AddStraightThrough("1", "2", true)

	result, err := Resolve(s, "A.NET_A")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !reflect.DeepEqual(result.Voltages, []float64{3.3}) {
		t.Fatalf("voltages = %v, want [3.3]", result.Voltages)
	}
	want := []string{"A.LOADSW (U1.1) to +3V3"}
	if !reflect.DeepEqual(result.Pulls, want) {
		t.Fatalf("pulls = %v, want %v", result.Pulls, want)
	}
}

// TestResolvePullLinkWalked checks the pull-link table is walked by the
// pull engine for pins that have no straight-through entry.
func TestResolvePullLinkWalked(t *testing.T) {
	s := netlist.NewStore()
	a := netlist.NewBoard("A")
	a.Connect("NET_OUT", "Q1.3")
	a.Connect("NET_EN", "Q1.1")
	a.Connect("NET_EN", "R5.1")
	a.Connect("+1V8", "R5.2")
	a.AddPart("Q1", "FET")
	a.AddPart("R5", "10K")
	a.AddRail("+1V8", 1.8)
	s.AddBoard(a)
	s.DeviceType("FET").AddPullLink("3", "1")

	result, err := Resolve(s, "A.NET_OUT")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !reflect.DeepEqual(result.Voltages, []float64{1.8}) {
		t.Fatalf("pull link should conduct the rail, got voltages=%v", result.Voltages)
	}
}

func TestResolveSignalSeedAnchorsFirstMember(t *testing.T) {
	s := netlist.NewStore()
	a := netlist.NewBoard("A")
	a.Connect("NET_A", "U2.4")
	a.Connect("NET_A", "R10.1")
	s.AddBoard(a)

	result, err := Resolve(s, "A.NET_A")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(result.Path) != 1 || result.Path[0] != "A.U2.4" {
		t.Fatalf("path = %v, want the net's first member [A.U2.4]", result.Path)
	}
}

// TestResolveAlongPath runs pull resolution over a traced path, as a
// CHECKTRACE with a desired voltage does, aggregating pulls from every net
// the path touches without re-entering shared nets.
func TestResolveAlongPath(t *testing.T) {
	s := netlist.NewStore()
	a := netlist.NewBoard("A")
	a.Connect("SIG_X", "J1.5")
	a.Connect("SIG_X", "R1.1")
	a.Connect("+3V3", "R1.2")
	a.AddPart("R1", "10K")
	a.AddRail("+3V3", 3.3)
	s.AddBoard(a)

	b := netlist.NewBoard("B")
	b.Connect("SIG_Y", "J3.5")
	b.Connect("SIG_Y", "R2.1")
	b.Connect("+3V3", "R2.2")
	b.AddPart("R2", "10K")
	b.AddRail("+3V3", 3.3)
	s.AddBoard(b)

	result := ResolveAlongPath(s, []string{"A.J1.5", "B.J3.5"})
	if !reflect.DeepEqual(result.Voltages, []float64{3.3, 3.3}) {
		t.Fatalf("voltages = %v, want one 3.3 per board's pull", result.Voltages)
	}
	if len(result.Pulls) != 2 {
		t.Fatalf("pulls = %v, want one entry per resistor", result.Pulls)
	}

	// Resolving the same path twice in one call must not double-count.
	result = ResolveAlongPath(s, []string{"A.J1.5", "A.R1.1", "B.J3.5"})
	if len(result.Voltages) != 2 {
		t.Fatalf("shared nets must not be re-entered, got voltages=%v", result.Voltages)
	}
}

func TestResolvePinAnchorsPath(t *testing.T) {
	s := netlist.NewStore()
	a := netlist.NewBoard("A")
	a.Connect("NET_A", "R10.1")
	s.AddBoard(a)

	result, err := Resolve(s, "A.R10.1")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(result.Path) != 1 || result.Path[0] != "A.R10.1" {
		t.Fatalf("path = %v, want [A.R10.1]", result.Path)
	}
}
