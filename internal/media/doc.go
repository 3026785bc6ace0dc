// Package media loads the immutable description of the file under analysis.
//
// A File is captured once per invocation and never mutated by probes. Load
// performs the fatal preconditions: the path must exist, be a regular file,
// and be readable by the current process. Anything failing these checks
// aborts before any probe runs.
package media
