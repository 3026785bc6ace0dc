// Package deps reports availability of the external binaries the doctor
// shells out to.
package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"ripdoctor/internal/config"
)

// Requirement defines an external binary the doctor relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
}

// Status reports the availability of a requirement.
type Status struct {
	Name        string
	Command     string
	Description string
	Available   bool
	Detail      string
}

// Requirements lists the configured tool binaries.
func Requirements(cfg *config.Config) []Requirement {
	tools := config.Default().Tools
	if cfg != nil {
		tools = cfg.Tools
	}
	return []Requirement{
		{Name: "ffprobe", Command: tools.FFprobe, Description: "stream, packet, and format inspection"},
		{Name: "ffmpeg", Command: tools.FFmpeg, Description: "decode verification, seek checks, repair remux"},
		{Name: "mkvmerge", Command: tools.Mkvmerge, Description: "container metadata and structure checks"},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}
