// Package trace implements the trace engine: a depth-first search that
// decides whether a conductive path exists between two qualified signals,
// crossing PCB nets, straight-through devices, board-to-board connectors,
// and harness wiring along the way.
//
// The search finds one path, not all, and is not guaranteed to be shortest;
// it never crosses a GND signal and never revisits a pin already on the
// walked path.
package trace
