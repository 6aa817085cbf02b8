package report

// Tristate models the report's flag columns, which have a genuine third
// state beyond true/false: "not applicable" when the flag's precondition is
// absent (no trace was run, no desired voltage was given, no voltages were
// resolved).
type Tristate int

const (
	NotApplicable Tristate = iota
	False
	True
)

func (t Tristate) String() string {
	switch t {
	case True:
		return "TRUE"
	case False:
		return "FALSE"
	default:
		return "#N/A"
	}
}

func tristate(b bool) Tristate {
	if b {
		return True
	}
	return False
}

// Record is the flattened, line-level view of one trace or pull result that
// report writers render.
type Record struct {
	Comment        string
	From           string
	To             string
	DesiredVoltage *float64
	TraceFlag      Tristate
	IgnoreFlag     bool
	VoltMatchFlag  Tristate
	CommonVoltFlag Tristate
	CommonVoltage  float64
	Path           []string
	Pulls          []string
	Voltages       []float64
}

// NewTraceRecord builds the Record for a CHECKTRACE result. pulls and
// voltages carry the pull resolution run along the traced path (empty when
// no resolution ran); found and ignoreFlag are supplied by the caller, which
// already has the endpoints and the Store's IgnoreSet to hand.
func NewTraceRecord(from, to string, desiredVoltage *float64, found, ignoreFlag bool, path, pulls []string, voltages []float64) Record {
	commonFlag, commonVoltage := agreesOnOneVoltage(voltages)
	return Record{
		From:           from,
		To:             to,
		DesiredVoltage: desiredVoltage,
		TraceFlag:      tristate(found),
		IgnoreFlag:     ignoreFlag,
		VoltMatchFlag:  matchFlag(desiredVoltage, commonFlag, commonVoltage),
		CommonVoltFlag: commonFlag,
		CommonVoltage:  commonVoltage,
		Path:           path,
		Pulls:          pulls,
		Voltages:       voltages,
	}
}

// NewPullRecord builds the Record for a CHECKVOLT result. The trace flag is
// NotApplicable since no trace was run, and the to column repeats the
// queried endpoint.
func NewPullRecord(from string, desiredVoltage *float64, ignoreFlag bool, path, pulls []string, voltages []float64) Record {
	commonFlag, commonVoltage := agreesOnOneVoltage(voltages)
	return Record{
		From:           from,
		To:             from,
		DesiredVoltage: desiredVoltage,
		TraceFlag:      NotApplicable,
		IgnoreFlag:     ignoreFlag,
		VoltMatchFlag:  matchFlag(desiredVoltage, commonFlag, commonVoltage),
		CommonVoltFlag: commonFlag,
		CommonVoltage:  commonVoltage,
		Path:           path,
		Pulls:          pulls,
		Voltages:       voltages,
	}
}

// agreesOnOneVoltage is the conflict-detection post-pass: True iff voltages
// is non-empty and every entry is equal, False on a conflict, NotApplicable
// when nothing was resolved at all.
func agreesOnOneVoltage(voltages []float64) (Tristate, float64) {
	if len(voltages) == 0 {
		return NotApplicable, 0
	}
	first := voltages[0]
	for _, v := range voltages[1:] {
		if v != first {
			return False, 0
		}
	}
	return True, first
}

func matchFlag(desired *float64, commonFlag Tristate, commonVoltage float64) Tristate {
	if desired == nil {
		return NotApplicable
	}
	if commonFlag == True && commonVoltage == *desired {
		return True
	}
	return False
}
