// Package printing pushes accepted scans to the label-print integration.
//
// Four transports are supported: a named pipe the print engine listens on,
// an HTTP bridge, an append-only JSON queue file, and a spreadsheet the
// print template reads as its data source. Printing is advisory; a failed
// push never blocks the scan flow.
package printing
