package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks the configuration for values the pipeline cannot work
// with. Normalization has already filled zero values with defaults.
func (c *Config) Validate() error {
	var problems []string

	if c.Tools.FFprobe == "" {
		problems = append(problems, "tools.ffprobe must not be empty")
	}
	if c.Tools.FFmpeg == "" {
		problems = append(problems, "tools.ffmpeg must not be empty")
	}
	if c.Tools.Mkvmerge == "" {
		problems = append(problems, "tools.mkvmerge must not be empty")
	}

	if c.Analysis.SyncWarnSeconds < 0 || c.Analysis.SyncErrorSeconds < 0 {
		problems = append(problems, "analysis sync thresholds must not be negative")
	}
	if c.Analysis.SyncErrorSeconds > 0 && c.Analysis.SyncWarnSeconds > c.Analysis.SyncErrorSeconds {
		problems = append(problems, fmt.Sprintf(
			"analysis.sync_warn_seconds (%v) must not exceed analysis.sync_error_seconds (%v)",
			c.Analysis.SyncWarnSeconds, c.Analysis.SyncErrorSeconds))
	}
	if c.Analysis.GapSeconds < 0 {
		problems = append(problems, "analysis.gap_seconds must not be negative")
	}
	if c.Analysis.ProbeTimeoutSeconds < 0 {
		problems = append(problems, "analysis.probe_timeout_seconds must not be negative")
	}

	switch strings.ToLower(c.Logging.Format) {
	case "", "console", "json":
	default:
		problems = append(problems, fmt.Sprintf("logging.format %q is not console or json", c.Logging.Format))
	}

	if len(problems) == 0 {
		return nil
	}
	return errors.New("invalid configuration: " + strings.Join(problems, "; "))
}
