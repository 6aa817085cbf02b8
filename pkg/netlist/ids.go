package netlist

import "strings"

// QualifiedPin joins a board, refdes, and pin into "BoardID.RefDes.Pin".
func QualifiedPin(board, refdes, pin string) string {
	return board + "." + refdes + "." + pin
}

// QualifiedSignal joins a board and signal into "BoardID.Signal".
func QualifiedSignal(board, signal string) string {
	return board + "." + signal
}

// QualifiedRefDes joins a board and refdes into "BoardID.RefDes".
func QualifiedRefDes(board, refdes string) string {
	return board + "." + refdes
}

// RefDesPin joins a refdes and pin into "RefDes.Pin", board-local.
func RefDesPin(refdes, pin string) string {
	return refdes + "." + pin
}

// SplitQualifiedSignal splits a qualified signal "BoardID.Signal" back into
// its board and bare signal name.
func SplitQualifiedSignal(qualified string) (board, signal string, ok bool) {
	return splitTwo(qualified)
}

// SplitQualifiedPin splits a qualified pin "BoardID.RefDes.Pin" back into
// its board, refdes, and pin.
func SplitQualifiedPin(qualified string) (board, refdes, pin string, ok bool) {
	return splitThree(qualified)
}

// splitTwo splits "a.b" into ("a", "b", true). It fails if there isn't
// exactly one dot.
func splitTwo(s string) (a, b string, ok bool) {
	i := strings.IndexByte(s, '.')
	if i < 0 {
		return "", "", false
	}
	rest := s[i+1:]
	if strings.IndexByte(rest, '.') >= 0 {
		return "", "", false
	}
	return s[:i], rest, true
}

// splitThree splits "a.b.c" into ("a", "b", "c", true).
func splitThree(s string) (a, b, c string, ok bool) {
	parts := strings.SplitN(s, ".", 3)
	if len(parts) != 3 {
		return "", "", "", false
	}
	return parts[0], parts[1], parts[2], true
}

// SplitRefDesPin splits "RefDes.Pin" into ("RefDes", "Pin", true).
func SplitRefDesPin(s string) (refdes, pin string, ok bool) {
	return splitTwo(s)
}

// dotCount returns the number of '.' characters in s.
func dotCount(s string) int {
	return strings.Count(s, ".")
}
