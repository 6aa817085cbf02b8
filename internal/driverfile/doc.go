// Package driverfile implements the driver-file loader: it parses the
// directive-based driver CSV (recursively handling IMPORT), builds the
// full netlist.Store via ascfile and its directive handlers, and returns
// the queued CHECKTRACE/CHECKVOLT requests plus any metadata (MAP labels,
// REFSIG/DEVICEPARAM/DEVICEPIN records) that traversal itself never
// consults.
package driverfile
