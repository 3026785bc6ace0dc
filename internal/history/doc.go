// Package history persists past analysis runs in SQLite.
//
// Each run records the file analyzed, the mode, the issue count, and the
// full report as JSON, keyed by a generated run ID. The database is a local
// convenience for comparing a file's verdict across repair attempts, not an
// archive; deleting it loses nothing the doctor cannot recompute.
package history
