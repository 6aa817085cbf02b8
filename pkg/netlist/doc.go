// Package netlist holds the cross-domain electrical graph: boards, device
// types, harnesses, board-to-board connections, and the ignore set that
// together describe a hardware system's wiring. It exposes only read-only
// lookups plus the two low-level traversal primitives (crossing a device,
// following a connector into a harness) that the trace and pull engines in
// pkg/trace and pkg/pull are built from.
//
// Everything here is built once at load time and treated as read-only
// afterwards; traversal mutates only the caller-supplied Walk scratch state.
package netlist
