// Package config loads and validates the doctor's TOML configuration.
//
// Configuration is explicit state threaded into the controller and repair
// executor; nothing reads ambient globals. A missing config file yields the
// defaults, so the tool works out of the box with ffprobe, ffmpeg, and
// mkvmerge on PATH.
package config
