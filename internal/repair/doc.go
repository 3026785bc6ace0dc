// Package repair rebuilds a damaged container with an error-tolerant remux
// and verifies the result.
//
// A Plan names the input and output paths plus the backup and force flags.
// The Executor serializes repairs per input file with a sidecar flock,
// optionally copies a verified backup first, runs the remux through a
// structured argument builder (no shell strings), and classifies success by
// output plausibility rather than the tool's exit status: a non-zero exit
// with a plausible output file is a soft success, recorded as a note. The
// output is then re-verified with a fresh decode pass; a repair can succeed
// and still fail verification.
package repair
