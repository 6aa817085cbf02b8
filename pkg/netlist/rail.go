package netlist

import (
	"strconv"
	"strings"
	"unicode"
)

// ClassifyRail applies the rail-name heuristic to a bare signal name and
// reports whether the loader should record it as a supply rail, and at what
// voltage.
//
// Rules, in order:
//  1. A name beginning with "+" is a candidate; the rest of the name (after
//     the "+") is scanned for a numeric voltage.
//  2. A name beginning with "P<digit>" is a candidate if a "V" appears
//     somewhere after at least one digit; the portion after the leading "P"
//     is scanned the same way.
//  3. A name beginning with "GND" is a rail at 0V.
//  4. Anything else is not a rail.
//
// Numeric extraction consumes leading digits, treats the first "V" (case
// insensitive) as a decimal point, and stops at the next non-digit. A
// malformed number (e.g. nothing before the decimal point) yields 0V but the
// signal is still reported as a rail.
func ClassifyRail(name string) (voltage float64, isRail bool) {
	if name == "" {
		return 0, false
	}

	possibleRail := false
	switch {
	case strings.HasPrefix(name, "+"):
		possibleRail = true
	case len(name) > 1 && name[0] == 'P' && isASCIIDigit(name[1]):
		var digits strings.Builder
		for _, c := range name[1:] {
			switch {
			case unicode.IsDigit(c):
				digits.WriteRune(c)
			case unicode.ToUpper(c) == 'V':
				possibleRail = digits.Len() > 0
			}
			if possibleRail {
				break
			}
		}
	}

	if possibleRail {
		return extractRailVoltage(name), true
	}
	if strings.HasPrefix(name, "GND") {
		return 0.0, true
	}
	return 0, false
}

// extractRailVoltage scans name[1:] (the portion after the leading "+" or
// "P") for a number, treating the first "V" as a decimal point.
func extractRailVoltage(name string) float64 {
	var num strings.Builder
	unitsPhase := true
	for _, c := range name[1:] {
		switch {
		case unicode.IsDigit(c):
			num.WriteRune(c)
		case unicode.ToUpper(c) == 'V' && unitsPhase:
			num.WriteRune('.')
			unitsPhase = false
		default:
			return parseVoltsOrZero(num.String())
		}
	}
	if num.Len() > 0 {
		return parseVoltsOrZero(num.String())
	}
	return 0.0
}

func parseVoltsOrZero(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0.0
	}
	return v
}

func isASCIIDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
