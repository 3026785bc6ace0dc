// Package analysis selects and sequences probes for an analysis run.
//
// The Controller maps a mode onto its probe set (quick, full, and deep, each
// a superset of the last), runs the probes under a bounded worker pool, and
// aggregates their results into a report. Results are collected in probe
// declaration order regardless of completion order, so repeated runs over an
// unmodified file produce identical reports.
//
// A probe that cannot run never halts the sequence; the controller always
// executes every selected probe and always returns a complete report.
package analysis
