package probes

import (
	"context"
	"fmt"
	"time"

	"ripdoctor/internal/introspect"
	"ripdoctor/internal/media"
	"ripdoctor/internal/report"
)

// seekOffsets are the fixed candidate positions for the seek stress test.
var seekOffsets = []time.Duration{
	0,
	10 * time.Second,
	30 * time.Second,
	60 * time.Second,
	120 * time.Second,
	300 * time.Second,
}

const (
	seekWindow    = 5 * time.Second
	endSeekWindow = 30 * time.Second
	endSeekOffset = 30 * time.Second
)

// Stress seeks to a fixed set of offsets and decodes a short window at
// each, plus one wide window near the end of the file. Corruption is often
// localized; a linear decode pass can miss damage that only surfaces when
// the demuxer jumps into the middle of the file.
type Stress struct{}

// NewStress constructs the seek stress probe.
func NewStress() *Stress { return &Stress{} }

func (p *Stress) Name() string { return NameStress }

func (p *Stress) Run(ctx context.Context, file media.File, insp introspect.Introspector) report.ProbeResult {
	format, err := insp.GetFormatInfo(ctx, file.Path)
	if err != nil {
		return toolFailure(p.Name(), err)
	}

	var findings []report.Finding
	for _, offset := range seekOffsets {
		if offset >= format.Duration {
			continue
		}
		if err := insp.SeekAndDecode(ctx, file.Path, offset, seekWindow); err != nil {
			findings = append(findings, seekFailure(p.Name(), offset, err))
		}
	}

	if end := format.Duration - endSeekOffset; end > 0 {
		if err := insp.SeekAndDecode(ctx, file.Path, end, endSeekWindow); err != nil {
			findings = append(findings, seekFailure(p.Name(), end, err))
		}
	}
	return report.NewResult(p.Name(), findings)
}

func seekFailure(probe string, offset time.Duration, err error) report.Finding {
	return report.Finding{
		Probe:    probe,
		Severity: report.SeverityWarning,
		Message:  fmt.Sprintf("seek at %s failed: %v", offset.Round(time.Second), err),
		Detail:   offset.Seconds(),
	}
}
