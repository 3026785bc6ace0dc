package probes

import (
	"context"
	"fmt"

	"ripdoctor/internal/introspect"
	"ripdoctor/internal/media"
	"ripdoctor/internal/report"
)

// Integrity decodes the whole file and reports any decoder failure. A
// failed verdict produces one error finding plus one finding per matched
// corruption signature, so the report names both that the file is corrupt
// and how.
type Integrity struct{}

// NewIntegrity constructs the full-file decode verification probe.
func NewIntegrity() *Integrity { return &Integrity{} }

func (p *Integrity) Name() string { return NameIntegrity }

func (p *Integrity) Run(ctx context.Context, file media.File, insp introspect.Introspector) report.ProbeResult {
	verdict, err := insp.VerifyDecode(ctx, file.Path)
	if err != nil {
		return toolFailure(p.Name(), err)
	}
	if verdict.OK {
		return report.NewResult(p.Name(), nil)
	}

	findings := []report.Finding{{
		Probe:    p.Name(),
		Severity: report.SeverityError,
		Message:  "decode verification failed",
	}}
	for _, sig := range verdict.Signatures {
		findings = append(findings, report.Finding{
			Probe:    p.Name(),
			Severity: report.SeverityWarning,
			Message:  fmt.Sprintf("corruption signature: %s", sig),
		})
	}
	return report.NewResult(p.Name(), findings)
}
