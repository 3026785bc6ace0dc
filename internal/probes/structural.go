package probes

import (
	"context"

	"ripdoctor/internal/introspect"
	"ripdoctor/internal/media"
	"ripdoctor/internal/report"
)

// Structural verifies the four structural container elements are present:
// the EBML head, the top-level segment, track metadata, and at least one
// data cluster.
type Structural struct{}

// NewStructural constructs the structural element probe.
func NewStructural() *Structural { return &Structural{} }

func (p *Structural) Name() string { return NameStructure }

func (p *Structural) Run(ctx context.Context, file media.File, insp introspect.Introspector) report.ProbeResult {
	meta, err := insp.GetContainerMeta(ctx, file.Path)
	if err != nil {
		return toolFailure(p.Name(), err)
	}

	var findings []report.Finding
	if !meta.Elements.Header {
		findings = append(findings, warning(p.Name(), "container header (EBML head) missing"))
	}
	if !meta.Elements.Segment {
		findings = append(findings, warning(p.Name(), "top-level segment missing or unreadable"))
	}
	if !meta.Elements.Tracks {
		findings = append(findings, warning(p.Name(), "track metadata element missing"))
	}
	if !meta.Elements.Cluster {
		findings = append(findings, warning(p.Name(), "no data clusters found"))
	}
	return report.NewResult(p.Name(), findings)
}
