// Package ledger holds the scan ledger: every line accepted at the
// terminal since the last inventory push, newest first, deduplicated by
// line id. The ledger lives in memory for the hot path and is mirrored to
// SQLite after every mutation so a crash or restart never loses scans.
package ledger
