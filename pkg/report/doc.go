// Package report implements the report facade: it turns one trace or
// pull result into the flat set of fields a report writer renders: found
// flag, ignore flag, common-voltage flag, voltage-match flag, and the
// path/pull/voltage lists themselves.
package report
