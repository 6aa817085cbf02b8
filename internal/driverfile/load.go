package driverfile

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/OpenTraceLab/icdtrace/internal/ascfile"
	"github.com/OpenTraceLab/icdtrace/pkg/netlist"
)

// loader carries the state threaded through one driver file load, including
// any recursively IMPORTed files.
type loader struct {
	store    *netlist.Store
	meta     Metadata
	loaded   map[string]bool
	queries  []Query
	warnings []string
	comment  []string
}

// Load parses the driver CSV at path (and everything it IMPORTs) into a
// populated netlist.Store, the queued CHECKTRACE/CHECKVOLT requests, and
// non-traversal metadata. err is reserved for the top-level file being
// unreadable; every other problem becomes a warning.
func Load(path string) (*netlist.Store, []Query, Metadata, []string, error) {
	l := &loader{
		store:  netlist.NewStore(),
		meta:   newMetadata(),
		loaded: make(map[string]bool),
	}
	if err := l.loadFile(path); err != nil {
		return nil, nil, Metadata{}, nil, err
	}
	return l.store, l.queries, l.meta, l.warnings, nil
}

func (l *loader) warnf(format string, args ...any) {
	l.warnings = append(l.warnings, fmt.Sprintf("driverfile: "+format, args...))
}

func (l *loader) loadFile(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	if l.loaded[abs] {
		return nil
	}
	l.loaded[abs] = true

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("driverfile: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			l.warnf("%s: %v", path, err)
			continue
		}
		l.dispatch(path, trimRecord(record))
	}
	return nil
}

// trimRecord whitespace-trims every field and drops empty fields trailing
// off the end, matching "trailing commas stripped, per-field whitespace
// trimmed".
func trimRecord(record []string) []string {
	for i := range record {
		record[i] = strings.TrimSpace(record[i])
	}
	end := len(record)
	for end > 0 && record[end-1] == "" {
		end--
	}
	return record[:end]
}

func (l *loader) flushComment() string {
	if len(l.comment) == 0 {
		return ""
	}
	text := strings.Join(l.comment, "\n")
	l.comment = nil
	return text
}

func (l *loader) resolvePath(base, target string) string {
	if filepath.IsAbs(target) {
		return target
	}
	return filepath.Join(filepath.Dir(base), target)
}

func (l *loader) dispatch(path string, record []string) {
	if len(record) == 0 {
		return
	}
	directive := strings.ToUpper(record[0])
	if directive == "" {
		l.warnf("blank directive: %v", record)
		return
	}

	switch directive {
	case "COMMENT":
		if len(record) > 1 {
			l.comment = append(l.comment, record[1])
		}

	case "IMPORT":
		if len(record) < 2 {
			l.warnf("malformed IMPORT: %v", record)
			return
		}
		if err := l.loadFile(l.resolvePath(path, record[1])); err != nil {
			l.warnings = append(l.warnings, err.Error())
		}

	case "NETLIST":
		l.handleNetlist(path, record)

	case "RAIL":
		l.handleRail(record)

	case "IGNORE":
		l.handleIgnore(record)

	case "CHECKTRACE":
		l.handleCheckTrace(record)

	case "CHECKVOLT":
		l.handleCheckVolt(record)

	case "HARNESSLINK":
		if len(record) < 6 {
			l.warnf("malformed HARNESSLINK: %v", record)
			return
		}
		l.store.AddHarnessLink(record[1], record[2], record[3], record[4], record[5])

	case "CONNECTION":
		if len(record) < 5 {
			l.warnf("malformed CONNECTION: %v", record)
			return
		}
		l.store.AddConnection(record[1], record[2], record[3], record[4])

	case "MAP":
		if len(record) < 4 {
			l.warnf("malformed MAP: %v", record)
			return
		}
		l.meta.Labels[netlist.QualifiedRefDes(record[1], record[2])] = record[3]

	case "DEVICELINK":
		l.handleDeviceLink(record)

	case "DEVICEPULL":
		l.handleDevicePull(record)

	case "DEVICEVOLT":
		l.handleDeviceVolt(record)

	case "REFVOLT":
		l.handleRefVolt(record)

	case "DEVICEPIN":
		l.handleDevicePin(record)

	case "REFSIG":
		l.handleRefSig(record)

	case "DEVICEPARAM":
		l.handleDeviceParam(record)

	default:
		l.warnf("unknown directive %q", directive)
	}
}

func (l *loader) handleNetlist(path string, record []string) {
	if len(record) < 3 {
		l.warnf("malformed NETLIST: %v", record)
		return
	}
	boardID, ascPath := record[1], record[2]
	board, warnings, err := ascfile.LoadBoard(boardID, l.resolvePath(path, ascPath))
	if err != nil {
		l.warnings = append(l.warnings, err.Error())
		return
	}
	for _, w := range warnings {
		l.warnf("%s: %s", boardID, w)
	}
	l.store.AddBoard(board)
}

func (l *loader) handleRail(record []string) {
	if len(record) < 4 {
		l.warnf("malformed RAIL: %v", record)
		return
	}
	boardID, signal := record[1], record[2]
	voltage, err := strconv.ParseFloat(record[3], 64)
	if err != nil {
		l.warnf("RAIL: bad voltage %q", record[3])
		return
	}
	board, ok := l.store.Board(boardID)
	if !ok {
		l.warnf("RAIL: unknown board %q", boardID)
		return
	}
	board.AddRail(signal, voltage)
}

func (l *loader) handleIgnore(record []string) {
	if len(record) < 4 {
		l.warnf("malformed IGNORE: %v", record)
		return
	}
	boardID, kind, name := record[1], strings.ToUpper(record[2]), record[3]
	switch kind {
	case "SIGNAL":
		l.store.Ignore.AddSignal(netlist.QualifiedSignal(boardID, name))
	case "DEVICE":
		l.store.Ignore.AddDevice(name)
	default:
		l.warnf("IGNORE: unknown kind %q", kind)
	}
}

func (l *loader) handleCheckTrace(record []string) {
	if len(record) < 5 {
		l.warnf("malformed CHECKTRACE: %v", record)
		return
	}
	q := Query{
		Kind:    CheckTrace,
		From:    netlist.QualifiedSignal(record[1], record[2]),
		To:      netlist.QualifiedSignal(record[3], record[4]),
		Comment: l.flushComment(),
	}
	if len(record) > 5 {
		q.Group = record[5]
	}
	if len(record) > 6 {
		if v, err := strconv.ParseFloat(record[6], 64); err == nil {
			q.DesiredVoltage = &v
		}
	}
	l.queries = append(l.queries, q)
}

func (l *loader) handleCheckVolt(record []string) {
	if len(record) < 3 {
		l.warnf("malformed CHECKVOLT: %v", record)
		return
	}
	q := Query{
		Kind:    CheckVolt,
		From:    netlist.QualifiedSignal(record[1], record[2]),
		Comment: l.flushComment(),
	}
	if len(record) > 3 {
		q.Group = record[3]
	}
	if len(record) > 4 {
		if v, err := strconv.ParseFloat(record[4], 64); err == nil {
			q.DesiredVoltage = &v
		}
	}
	l.queries = append(l.queries, q)
}

func (l *loader) handleDeviceLink(record []string) {
	if len(record) < 4 {
		l.warnf("malformed DEVICELINK: %v", record)
		return
	}
	typ, pinA, pinB := record[1], record[2], record[3]
	// Any non-empty fifth field marks the link bidirectional.
	bidir := len(record) > 4 && record[4] != ""
	dt := l.store.DeviceType(typ)
	dt.AddStraightThrough(pinA, pinB, bidir)
	if len(record) > 6 {
		va, errA := strconv.ParseFloat(record[5], 64)
		vb, errB := strconv.ParseFloat(record[6], 64)
		if errA == nil && errB == nil {
			dt.SetPinVolt(pinA, va)
			dt.SetPinVolt(pinB, vb)
		}
	}
}

// handleDevicePull implements the single-pass DEVICEPULL semantics: a
// leading numeric field sets the A-side pin count (default 1), the next
// field is the direction, and the remaining fields split into the A-side
// pins and B-side pins.
func (l *loader) handleDevicePull(record []string) {
	if len(record) < 4 {
		l.warnf("malformed DEVICEPULL: %v", record)
		return
	}
	typ := record[1]
	numA := 1
	dirIndex := 2
	aStart := 3
	if isAllDigits(record[2]) {
		n, err := strconv.Atoi(record[2])
		if err == nil && n > 0 {
			numA = n
			dirIndex = 3
			aStart = 4
		}
	}
	if dirIndex >= len(record) || aStart+numA > len(record) {
		l.warnf("malformed DEVICEPULL: %v", record)
		return
	}
	dir := strings.ToUpper(record[dirIndex])
	pinsA := record[aStart : aStart+numA]
	pinsB := record[aStart+numA:]
	if len(pinsB) == 0 {
		l.warnf("malformed DEVICEPULL: no B-side pins: %v", record)
		return
	}

	dt := l.store.DeviceType(typ)
	for _, a := range pinsA {
		for _, b := range pinsB {
			switch dir {
			case "BA":
				dt.AddPullLink(b, a)
			case "ABBA":
				dt.AddPullLink(a, b)
				dt.AddPullLink(b, a)
			default: // "AB"
				dt.AddPullLink(a, b)
			}
		}
	}
}

func (l *loader) handleDeviceVolt(record []string) {
	if len(record) < 4 {
		l.warnf("malformed DEVICEVOLT: %v", record)
		return
	}
	typ := record[1]
	voltage, err := strconv.ParseFloat(record[2], 64)
	if err != nil {
		l.warnf("DEVICEVOLT: bad voltage %q", record[2])
		return
	}
	dt := l.store.DeviceType(typ)
	for _, pin := range record[3:] {
		dt.SetPinVolt(pin, voltage)
	}
}

func (l *loader) handleRefVolt(record []string) {
	if len(record) < 5 {
		l.warnf("malformed REFVOLT: %v", record)
		return
	}
	boardID, ref := record[1], record[2]
	voltage, err := strconv.ParseFloat(record[3], 64)
	if err != nil {
		l.warnf("REFVOLT: bad voltage %q", record[3])
		return
	}
	for _, pin := range record[4:] {
		qp := netlist.QualifiedPin(boardID, ref, pin)
		if !l.store.AddRefVolt(qp, voltage) {
			l.warnf("duplicate REFVOLT for %s, keeping first", qp)
		}
	}
}

func (l *loader) handleDevicePin(record []string) {
	if len(record) < 3 {
		l.warnf("malformed DEVICEPIN: %v", record)
		return
	}
	typ, form := record[1], strings.ToUpper(record[2])
	l.meta.DevicePin[typ] = append(l.meta.DevicePin[typ], DevicePinRecord{
		Form:   form,
		Fields: append([]string(nil), record[3:]...),
	})
}

func (l *loader) handleRefSig(record []string) {
	if len(record) < 6 {
		l.warnf("malformed REFSIG: %v", record)
		return
	}
	boardID, ref := record[1], record[2]
	entry := RefSigEntry{Pin: record[3], IntSignal: record[4], ExtSignal: record[5]}
	if len(record) > 6 {
		entry.IOStandard = record[6]
	} else {
		entry.IOStandard = "NA"
	}
	key := netlist.QualifiedRefDes(boardID, ref)
	l.meta.RefSig[key] = append(l.meta.RefSig[key], entry)
}

func (l *loader) handleDeviceParam(record []string) {
	if len(record) < 4 {
		l.warnf("malformed DEVICEPARAM: %v", record)
		return
	}
	typ := record[1]
	params, ok := l.meta.DeviceParam[typ]
	if !ok {
		params = make(map[string]string)
		l.meta.DeviceParam[typ] = params
	}
	rest := record[2:]
	for i := 0; i+1 < len(rest); i += 2 {
		params[rest[i]] = rest[i+1]
	}
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
