package probes

import (
	"context"
	"fmt"
	"strings"

	"ripdoctor/internal/introspect"
	"ripdoctor/internal/media"
	"ripdoctor/internal/report"
)

// knownPixelFormats covers the formats hardware players decode reliably.
var knownPixelFormats = map[string]struct{}{
	"yuv420p":     {},
	"yuv420p10le": {},
	"yuv422p":     {},
	"yuv444p":     {},
	"nv12":        {},
	"gray":        {},
}

// losslessAudioCodecs are codecs that keep full PCM fidelity; in
// multichannel layouts they strain both bandwidth and downstream players.
var losslessAudioCodecs = map[string]struct{}{
	"truehd": {},
	"flac":   {},
	"mlp":    {},
	"alac":   {},
}

// DeepStream inspects every stream for properties that are legal in the
// container but known to break playback: exotic chroma profiles, very high
// codec levels, unknown pixel formats, extreme channel counts and sample
// rates. Each triggered check is one finding; the probe passes only when
// nothing triggered.
type DeepStream struct{}

// NewDeepStream constructs the per-stream deep analysis probe.
func NewDeepStream() *DeepStream { return &DeepStream{} }

func (p *DeepStream) Name() string { return NameDeepStream }

func (p *DeepStream) Run(ctx context.Context, file media.File, insp introspect.Introspector) report.ProbeResult {
	streams, err := insp.GetStreams(ctx, file.Path)
	if err != nil {
		return toolFailure(p.Name(), err)
	}

	var findings []report.Finding
	for _, s := range streams {
		switch s.Type {
		case "video":
			findings = append(findings, p.checkVideo(s)...)
		case "audio":
			findings = append(findings, p.checkAudio(s)...)
		}
	}
	return report.NewResult(p.Name(), findings)
}

func (p *DeepStream) checkVideo(s introspect.StreamInfo) []report.Finding {
	var findings []report.Finding
	if strings.Contains(s.Profile, "4:4:4") {
		findings = append(findings, warningf(p.Name(), "video stream %d uses 4:4:4 chroma profile %q", s.Index, s.Profile))
	}
	if level := normalizedLevel(s.Codec, s.Level); level >= 5.2 {
		findings = append(findings, report.Finding{
			Probe:    p.Name(),
			Severity: report.SeverityWarning,
			Message:  fmt.Sprintf("video stream %d codec level %.1f exceeds common player support", s.Index, level),
			Detail:   level,
		})
	}
	if s.PixelFormat != "" {
		if _, ok := knownPixelFormats[s.PixelFormat]; !ok {
			findings = append(findings, warningf(p.Name(), "video stream %d uses uncommon pixel format %q", s.Index, s.PixelFormat))
		}
	}
	return findings
}

func (p *DeepStream) checkAudio(s introspect.StreamInfo) []report.Finding {
	var findings []report.Finding
	if s.Channels > 8 {
		findings = append(findings, report.Finding{
			Probe:    p.Name(),
			Severity: report.SeverityWarning,
			Message:  fmt.Sprintf("audio stream %d has %d channels", s.Index, s.Channels),
			Detail:   float64(s.Channels),
		})
	}
	if s.SampleRate > 96000 {
		findings = append(findings, report.Finding{
			Probe:    p.Name(),
			Severity: report.SeverityWarning,
			Message:  fmt.Sprintf("audio stream %d sample rate %d Hz exceeds 96 kHz", s.Index, s.SampleRate),
			Detail:   float64(s.SampleRate),
		})
	}
	if _, lossless := losslessAudioCodecs[s.Codec]; lossless && s.Channels > 6 {
		findings = append(findings, warningf(p.Name(), "audio stream %d is lossless %s with %d channels", s.Index, s.Codec, s.Channels))
	}
	return findings
}

// normalizedLevel maps ffprobe's integer level onto the familiar decimal
// scale. HEVC reports levels multiplied by 30, H.264 and most others by 10.
func normalizedLevel(codec string, level int) float64 {
	if level <= 0 {
		return 0
	}
	if codec == "hevc" {
		return float64(level) / 30.0
	}
	return float64(level) / 10.0
}
