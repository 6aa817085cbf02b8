// Package pull implements the pull engine: an exhaustive walk from a
// net that collects every rail voltage reachable through pull resistors,
// pin voltage stakes, and devices, while honoring the global IgnoreSet and
// its mid-query augmentation rule.
//
// Unlike the trace engine, pull does not stop at the first answer: it
// fans out across every membership path from the seed net and records every
// rail it reaches, leaving conflict detection (do all reached voltages
// agree?) to the caller.
package pull
