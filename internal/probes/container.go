package probes

import (
	"context"

	"ripdoctor/internal/introspect"
	"ripdoctor/internal/media"
	"ripdoctor/internal/report"
)

// normalTrackTypes are the track types a rip is expected to contain.
var normalTrackTypes = map[string]struct{}{
	"video":     {},
	"audio":     {},
	"subtitles": {},
	"subtitle":  {},
}

// Container mirrors the container metadata tool's own diagnostics into the
// report: every warning or error line becomes a finding with matching
// severity, a missing video or audio track is an error, and track types
// outside video/audio/subtitle are flagged as unusual.
type Container struct{}

// NewContainer constructs the container metadata probe.
func NewContainer() *Container { return &Container{} }

func (p *Container) Name() string { return NameContainer }

func (p *Container) Run(ctx context.Context, file media.File, insp introspect.Introspector) report.ProbeResult {
	meta, err := insp.GetContainerMeta(ctx, file.Path)
	if err != nil {
		return toolFailure(p.Name(), err)
	}

	var findings []report.Finding
	for _, line := range meta.Warnings {
		findings = append(findings, warning(p.Name(), line))
	}
	for _, line := range meta.Errors {
		findings = append(findings, report.Finding{Probe: p.Name(), Severity: report.SeverityError, Message: line})
	}

	var haveVideo, haveAudio bool
	for _, track := range meta.Tracks {
		switch track.Type {
		case "video":
			haveVideo = true
		case "audio":
			haveAudio = true
		}
		if _, normal := normalTrackTypes[track.Type]; !normal {
			findings = append(findings, warningf(p.Name(), "track %d has unusual type %q", track.ID, track.Type))
		}
	}
	if !haveVideo {
		findings = append(findings, report.Finding{Probe: p.Name(), Severity: report.SeverityError, Message: "container reports no video track"})
	}
	if !haveAudio {
		findings = append(findings, report.Finding{Probe: p.Name(), Severity: report.SeverityError, Message: "container reports no audio track"})
	}
	return report.NewResult(p.Name(), findings)
}
