package probes

import (
	"context"
	"fmt"

	"golang.org/x/text/language"

	"ripdoctor/internal/introspect"
	"ripdoctor/internal/media"
	"ripdoctor/internal/report"
)

// Inventory classifies the container's streams and flags gaps in the
// expected inventory: a rip should carry at least one video and one audio
// stream, every stream should name its codec, and audio streams should
// report a channel count.
type Inventory struct{}

// NewInventory constructs the stream inventory probe.
func NewInventory() *Inventory { return &Inventory{} }

func (p *Inventory) Name() string { return NameInventory }

func (p *Inventory) Run(ctx context.Context, file media.File, insp introspect.Introspector) report.ProbeResult {
	streams, err := insp.GetStreams(ctx, file.Path)
	if err != nil {
		return toolFailure(p.Name(), err)
	}

	var findings []report.Finding
	counts := map[string]int{}
	for _, s := range streams {
		counts[s.Type]++

		if s.Codec == "" || s.Codec == "unknown" {
			findings = append(findings, warningf(p.Name(), "stream %d has unknown codec", s.Index))
		}
		if s.Type == "audio" && s.Channels == 0 {
			findings = append(findings, warningf(p.Name(), "audio stream %d reports zero channels", s.Index))
		}
		if s.Language != "" && s.Language != "und" {
			if _, err := language.Parse(s.Language); err != nil {
				findings = append(findings, report.Finding{
					Probe:    p.Name(),
					Severity: report.SeverityInfo,
					Message:  fmt.Sprintf("stream %d carries unparseable language tag %q", s.Index, s.Language),
				})
			}
		}
	}

	if counts["video"] == 0 {
		findings = append(findings, warning(p.Name(), "no video streams found"))
	}
	if counts["audio"] == 0 {
		findings = append(findings, warning(p.Name(), "no audio streams found"))
	}
	return report.NewResult(p.Name(), findings)
}
