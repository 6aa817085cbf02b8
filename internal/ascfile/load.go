package ascfile

import (
	"fmt"
	"os"
	"strings"

	"github.com/OpenTraceLab/icdtrace/pkg/netlist"
)

// LoadBoard reads the ASC netlist file at path and builds a netlist.Board
// named boardID. Malformed lines are recorded as warnings and skipped; only
// an unreadable file is a hard error.
func LoadBoard(boardID, path string) (*netlist.Board, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("ascfile: %w", err)
	}
	return LoadBoardString(boardID, string(data))
}

// LoadBoardString builds a netlist.Board named boardID from ASC text
// already held in memory.
func LoadBoardString(boardID, text string) (*netlist.Board, []string, error) {
	text = truncateAtMisc(text)

	parser, err := NewParser()
	if err != nil {
		return nil, nil, fmt.Errorf("ascfile: %w", err)
	}
	file, err := parser.ParseString(text)
	if err != nil {
		// A parse failure on the whole file is itself just a warning: the
		// loader favors a best-effort, possibly-empty board over aborting.
		return netlist.NewBoard(boardID), []string{err.Error()}, nil
	}

	board := netlist.NewBoard(boardID)
	var warnings []string

	const (
		sectionNone       = ""
		sectionPart       = "PART"
		sectionConnection = "CONNECTION"
	)
	section := sectionNone
	currentSignal := ""
	firstLineOfSignal := false

	for _, line := range file.Lines {
		switch {
		case line.Section != nil:
			marker := line.Section.Marker
			switch marker {
			case "*PART*":
				section = sectionPart
				currentSignal = ""
			case "*CONNECTION*":
				section = sectionConnection
				currentSignal = ""
			case "*SIGNAL*":
				if section != sectionConnection {
					warnings = append(warnings, fmt.Sprintf("ascfile: *SIGNAL* outside *CONNECTION*: %q", strings.Join(line.Section.Rest, " ")))
					continue
				}
				if len(line.Section.Rest) != 1 {
					warnings = append(warnings, fmt.Sprintf("ascfile: malformed *SIGNAL* line: %v", line.Section.Rest))
					continue
				}
				currentSignal = line.Section.Rest[0]
				firstLineOfSignal = true
				if _, known := board.Rail(currentSignal); !known {
					if voltage, isRail := netlist.ClassifyRail(currentSignal); isRail {
						board.AddRail(currentSignal, voltage)
					}
				}
			default:
				warnings = append(warnings, fmt.Sprintf("ascfile: unknown section %q", marker))
			}

		case line.Words != nil:
			words := line.Words.Words
			switch section {
			case sectionPart:
				if len(words) != 2 {
					warnings = append(warnings, fmt.Sprintf("ascfile: malformed *PART* line: %v", words))
					continue
				}
				board.AddPart(words[0], words[1])

			case sectionConnection:
				if currentSignal == "" {
					warnings = append(warnings, fmt.Sprintf("ascfile: connection line before any *SIGNAL*: %v", words))
					continue
				}
				if len(words) != 2 {
					warnings = append(warnings, fmt.Sprintf("ascfile: malformed *CONNECTION* line: %v", words))
					continue
				}
				if firstLineOfSignal {
					board.Connect(currentSignal, words[0])
					board.Connect(currentSignal, words[1])
					firstLineOfSignal = false
				} else {
					board.Connect(currentSignal, words[1])
				}

			default:
				warnings = append(warnings, fmt.Sprintf("ascfile: line outside any section: %v", words))
			}
		}
	}

	return board, warnings, nil
}

// truncateAtMisc drops everything from the first "*MISC*" line onward and
// strips blank lines, since a "*MISC*" marker ends parsing and blank lines
// are ignored. Blank lines are stripped here rather than in the grammar so
// the line-oriented parser never has to accept a zero-token line.
func truncateAtMisc(text string) string {
	lines := strings.Split(text, "\n")
	var kept []string
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, "*MISC*") {
			break
		}
		kept = append(kept, trimmed)
	}
	return strings.Join(kept, "\n")
}
