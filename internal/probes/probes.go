package probes

import (
	"context"
	"fmt"

	"ripdoctor/internal/introspect"
	"ripdoctor/internal/media"
	"ripdoctor/internal/report"
)

// Probe is one independent analysis check.
type Probe interface {
	// Name returns the stable identifier used in reports.
	Name() string
	// Run inspects the file and returns the probe's findings. Run must not
	// panic and must return a result even when the backing tool fails.
	Run(ctx context.Context, file media.File, insp introspect.Introspector) report.ProbeResult
}

// Probe names as they appear in reports.
const (
	NameStructure     = "structure"
	NameInventory     = "stream-inventory"
	NameIntegrity     = "integrity"
	NameAVSync        = "av-sync"
	NameDeepStream    = "deep-stream"
	NameTiming        = "timing"
	NameContainer     = "container"
	NameCompatibility = "compatibility"
	NameStress        = "stress"
)

// toolFailure builds the warning finding every probe reports when it cannot
// invoke its backing tool. The probe fails but the run continues.
func toolFailure(probe string, err error) report.ProbeResult {
	return report.NewResult(probe, []report.Finding{{
		Probe:    probe,
		Severity: report.SeverityWarning,
		Message:  fmt.Sprintf("probe could not run: %v", err),
	}})
}

func warning(probe, message string) report.Finding {
	return report.Finding{Probe: probe, Severity: report.SeverityWarning, Message: message}
}

func warningf(probe, format string, args ...any) report.Finding {
	return warning(probe, fmt.Sprintf(format, args...))
}
