package probes

import (
	"context"
	"fmt"
	"math"

	"ripdoctor/internal/introspect"
	"ripdoctor/internal/media"
	"ripdoctor/internal/report"
)

// Default skew thresholds in seconds.
const (
	defaultSyncWarnSkew  = 0.1
	defaultSyncErrorSkew = 1.0
)

// AVSync compares the start times of the first video and first audio stream.
// A skew above WarnSkew is a warning; above ErrorSkew the finding escalates
// to a single error that supersedes the warning rather than adding to it.
type AVSync struct {
	WarnSkew  float64 // seconds, zero means default
	ErrorSkew float64 // seconds, zero means default
}

// NewAVSync constructs the A/V sync probe with default thresholds.
func NewAVSync() *AVSync { return &AVSync{} }

func (p *AVSync) Name() string { return NameAVSync }

func (p *AVSync) Run(ctx context.Context, file media.File, insp introspect.Introspector) report.ProbeResult {
	streams, err := insp.GetStreams(ctx, file.Path)
	if err != nil {
		return toolFailure(p.Name(), err)
	}

	warnSkew := p.WarnSkew
	if warnSkew <= 0 {
		warnSkew = defaultSyncWarnSkew
	}
	errorSkew := p.ErrorSkew
	if errorSkew <= 0 {
		errorSkew = defaultSyncErrorSkew
	}

	video, haveVideo := firstOfType(streams, "video")
	audio, haveAudio := firstOfType(streams, "audio")
	if !haveVideo || !haveAudio {
		// Missing streams are the inventory probe's finding, not a sync skew.
		return report.NewResult(p.Name(), nil)
	}
	if !video.HasStartTime || !audio.HasStartTime {
		// An unreported start time is not a zero start time; comparing
		// against one would fabricate a skew.
		return report.NewResult(p.Name(), nil)
	}

	skew := math.Abs(video.StartTime - audio.StartTime)
	switch {
	case skew > errorSkew:
		return report.NewResult(p.Name(), []report.Finding{{
			Probe:    p.Name(),
			Severity: report.SeverityError,
			Message:  fmt.Sprintf("audio/video start skew %.3fs exceeds %.1fs", skew, errorSkew),
			Detail:   skew,
		}})
	case skew > warnSkew:
		return report.NewResult(p.Name(), []report.Finding{{
			Probe:    p.Name(),
			Severity: report.SeverityWarning,
			Message:  fmt.Sprintf("audio/video start skew %.3fs exceeds %.1fs", skew, warnSkew),
			Detail:   skew,
		}})
	default:
		return report.NewResult(p.Name(), nil)
	}
}

func firstOfType(streams []introspect.StreamInfo, streamType string) (introspect.StreamInfo, bool) {
	for _, s := range streams {
		if s.Type == streamType {
			return s, true
		}
	}
	return introspect.StreamInfo{}, false
}
