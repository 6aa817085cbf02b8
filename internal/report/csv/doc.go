// Package csv renders report.Record values as a flat CSV report: one
// comment passthrough record per COMMENT block (consecutive COMMENT lines
// joined together), one data line per
// CHECKTRACE/CHECKVOLT result.
package csv
