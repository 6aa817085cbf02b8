package driverfile

import (
	"os"
	"path/filepath"
	"testing"
)

const ascBoardA = `
*PART*
R10 10K
U1 74LS04
*CONNECTION*
*SIGNAL* RESET_N
U1.1 J1.5
*SIGNAL* +3V3
U1.2 J1.6
`

const ascBoardB = `
*CONNECTION*
*SIGNAL* RESET_N
J3.7 U2.1
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.asc", ascBoardA)
	writeFile(t, dir, "b.asc", ascBoardB)

	imported := "MAP,A,U1,Reset Inverter\n" +
		"REFSIG,A,U1,1,INT_RESET,EXT_RESET,LVCMOS33\n" +
		"DEVICEPARAM,A.U1,package,TSSOP14,grade,industrial\n" +
		"DEVICEPIN,74LS04,RC,1,2,330\n"
	writeFile(t, dir, "imported.csv", imported)

	driver := "COMMENT,reset net sanity check\n" +
		"NETLIST,A,a.asc\n" +
		"NETLIST,B,b.asc\n" +
		"IMPORT,imported.csv\n" +
		"HARNESSLINK,H,P1,5,P2,7\n" +
		"CONNECTION,A,J1,H,P1\n" +
		"CONNECTION,B,J3,H,P2\n" +
		"RAIL,A,+3V3,3.3\n" +
		"IGNORE,A,DEVICE,74LS04\n" +
		"DEVICELINK,RELAY,1,4\n" +
		"DEVICEPULL,RELAY,AB,2,3\n" +
		"DEVICEVOLT,RELAY,5.0,1\n" +
		"REFVOLT,A,J1,3.3,5\n" +
		"CHECKTRACE,A,RESET_N,B,RESET_N\n" +
		"CHECKVOLT,A,+3V3\n"
	driverPath := writeFile(t, dir, "driver.csv", driver)

	store, queries, meta, warnings, err := Load(driverPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}

	if _, ok := store.Board("A"); !ok {
		t.Fatalf("board A not loaded")
	}
	if _, ok := store.Board("B"); !ok {
		t.Fatalf("board B not loaded")
	}
	if !store.IsHarness("H") {
		t.Fatalf("harness H not registered")
	}
	if !store.HasConnectionRef("A", "J1") || !store.HasConnectionRef("B", "J3") {
		t.Fatalf("board-to-board connection not registered")
	}
	if !store.Ignore.HasDevice("74LS04") {
		t.Fatalf("IGNORE DEVICE not registered")
	}

	dt, ok := store.LookupDeviceType("RELAY")
	if !ok {
		t.Fatalf("DEVICELINK did not register device type RELAY")
	}
	if peer, ok := dt.StraightThrough("1"); !ok || peer != "4" {
		t.Fatalf("StraightThrough(1) = (%q, %v), want (4, true)", peer, ok)
	}
	if peer, ok := dt.PullLink("2"); !ok || peer != "3" {
		t.Fatalf("PullLink(2) = (%q, %v), want (3, true)", peer, ok)
	}
	if v, ok := dt.PinVolt("1"); !ok || v != 5.0 {
		t.Fatalf("PinVolt(1) = (%v, %v), want (5.0, true)", v, ok)
	}

	if v, ok := store.RefVolt("A.J1.5"); !ok || v != 3.3 {
		t.Fatalf("REFVOLT A.J1.5 = (%v, %v), want (3.3, true) (first wins)", v, ok)
	}

	if len(queries) != 2 {
		t.Fatalf("expected 2 queued queries, got %d: %+v", len(queries), queries)
	}
	if queries[0].Kind != CheckTrace || queries[0].Comment != "reset net sanity check" {
		t.Fatalf("query[0] = %+v, want CheckTrace with comment", queries[0])
	}
	if queries[0].From != "A.RESET_N" || queries[0].To != "B.RESET_N" {
		t.Fatalf("query[0] endpoints = %q -> %q", queries[0].From, queries[0].To)
	}
	if queries[1].Kind != CheckVolt || queries[1].From != "A.+3V3" {
		t.Fatalf("query[1] = %+v, want CheckVolt on A.+3V3", queries[1])
	}

	if meta.Labels["A.U1"] != "Reset Inverter" {
		t.Fatalf("MAP label = %q", meta.Labels["A.U1"])
	}
	refsig := meta.RefSig["A.U1"]
	if len(refsig) != 1 || refsig[0].IntSignal != "INT_RESET" || refsig[0].ExtSignal != "EXT_RESET" {
		t.Fatalf("REFSIG entries = %+v", refsig)
	}
	if meta.DeviceParam["A.U1"]["package"] != "TSSOP14" || meta.DeviceParam["A.U1"]["grade"] != "industrial" {
		t.Fatalf("DEVICEPARAM = %+v", meta.DeviceParam["A.U1"])
	}
	pins := meta.DevicePin["74LS04"]
	if len(pins) != 1 || pins[0].Form != "RC" {
		t.Fatalf("DEVICEPIN records = %+v", pins)
	}
}

func TestLoadDevicePullDirectionVariants(t *testing.T) {
	dir := t.TempDir()
	driver := "DEVICEPULL,CONN,AB,1,2\n" +
		"DEVICEPULL,CONN,BA,3,4\n" +
		"DEVICEPULL,CONN,ABBA,5,6\n" +
		"DEVICEPULL,CONN,2,AB,7,8,9,10\n"
	driverPath := writeFile(t, dir, "driver.csv", driver)

	store, _, _, warnings, err := Load(driverPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	dt, ok := store.LookupDeviceType("CONN")
	if !ok {
		t.Fatalf("device type CONN not registered")
	}

	if peer, ok := dt.PullLink("1"); !ok || peer != "2" {
		t.Fatalf("AB: PullLink(1) = (%q, %v), want (2, true)", peer, ok)
	}
	if _, ok := dt.PullLink("2"); ok {
		t.Fatalf("AB: PullLink(2) should not be set")
	}

	if peer, ok := dt.PullLink("4"); !ok || peer != "3" {
		t.Fatalf("BA: PullLink(4) = (%q, %v), want (3, true)", peer, ok)
	}
	if _, ok := dt.PullLink("3"); ok {
		t.Fatalf("BA: PullLink(3) should not be set")
	}

	if peer, ok := dt.PullLink("5"); !ok || peer != "6" {
		t.Fatalf("ABBA: PullLink(5) = (%q, %v), want (6, true)", peer, ok)
	}
	if peer, ok := dt.PullLink("6"); !ok || peer != "5" {
		t.Fatalf("ABBA: PullLink(6) = (%q, %v), want (5, true)", peer, ok)
	}

	// numA=2, direction AB, A-side {7,8}, B-side {9,10}: each A pin is
	// offered both B pins in order, so the later one (10) wins the map slot.
	if peer, ok := dt.PullLink("7"); !ok || peer != "10" {
		t.Fatalf("numA=2: PullLink(7) = (%q, %v), want (10, true)", peer, ok)
	}
	if peer, ok := dt.PullLink("8"); !ok || peer != "10" {
		t.Fatalf("numA=2: PullLink(8) = (%q, %v), want (10, true)", peer, ok)
	}
}
