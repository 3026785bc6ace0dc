// Package report defines the finding and report model shared by all probes.
//
// A Finding is a single observation with a severity. A ProbeResult collects
// the findings of one probe together with its pass/fail verdict, and an
// AnalysisReport aggregates the results of every probe that ran. The issue
// count on a report counts failed probes, not individual findings; a probe
// that raises five findings still contributes one issue.
//
// Reports are built once via Aggregate and never mutated afterwards. A second
// analysis run builds a new report.
package report
