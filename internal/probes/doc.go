// Package probes implements the analysis checks run against a media file.
//
// Each probe inspects one dimension of the container through the
// introspect.Introspector interface and returns a report.ProbeResult. A
// probe never terminates the run: when its backing tool cannot be invoked
// the failure is folded into a warning-level finding and the probe simply
// fails.
//
// Probe declaration order is fixed so repeated runs over an unmodified file
// produce identical reports.
package probes
