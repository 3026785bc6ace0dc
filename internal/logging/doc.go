// Package logging builds the slog logger used across the doctor.
//
// Two formats are supported: a compact console handler for interactive use
// and slog's JSON handler for machine consumption. Output can additionally
// be appended to a log file under the configured log directory.
package logging
