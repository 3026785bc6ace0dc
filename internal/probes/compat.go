package probes

import (
	"context"
	"fmt"
	"time"

	"ripdoctor/internal/introspect"
	"ripdoctor/internal/media"
	"ripdoctor/internal/report"
)

const (
	defaultMaxDuration  = 4 * time.Hour
	defaultMaxSize      = 10 << 30 // 10 GiB
	defaultMaxTagLength = 100
)

// narrowVideoCodecs decode poorly or not at all on older hardware players.
var narrowVideoCodecs = map[string]struct{}{
	"hevc": {},
	"vp9":  {},
	"av1":  {},
}

// narrowAudioCodecs are not universally supported by standalone players.
var narrowAudioCodecs = map[string]struct{}{
	"opus": {},
	"flac": {},
}

// Compatibility flags properties that make a file awkward to play or share:
// very long duration, very large size, oversized metadata tags, and codecs
// with narrow player support.
type Compatibility struct {
	MaxDuration  time.Duration // zero means default
	MaxSize      int64         // bytes, zero means default
	MaxTagLength int           // characters, zero means default
}

// NewCompatibility constructs the compatibility probe with default limits.
func NewCompatibility() *Compatibility { return &Compatibility{} }

func (p *Compatibility) Name() string { return NameCompatibility }

func (p *Compatibility) Run(ctx context.Context, file media.File, insp introspect.Introspector) report.ProbeResult {
	format, err := insp.GetFormatInfo(ctx, file.Path)
	if err != nil {
		return toolFailure(p.Name(), err)
	}
	streams, err := insp.GetStreams(ctx, file.Path)
	if err != nil {
		return toolFailure(p.Name(), err)
	}

	maxDuration := p.MaxDuration
	if maxDuration <= 0 {
		maxDuration = defaultMaxDuration
	}
	maxSize := p.MaxSize
	if maxSize <= 0 {
		maxSize = defaultMaxSize
	}
	maxTag := p.MaxTagLength
	if maxTag <= 0 {
		maxTag = defaultMaxTagLength
	}

	var findings []report.Finding
	if format.Duration > maxDuration {
		findings = append(findings, report.Finding{
			Probe:    p.Name(),
			Severity: report.SeverityWarning,
			Message:  fmt.Sprintf("duration %s exceeds %s", format.Duration.Round(time.Second), maxDuration),
			Detail:   format.Duration.Seconds(),
		})
	}
	size := format.Size
	if size == 0 {
		size = file.Size
	}
	if size > maxSize {
		findings = append(findings, report.Finding{
			Probe:    p.Name(),
			Severity: report.SeverityWarning,
			Message:  fmt.Sprintf("file size %d bytes exceeds %d", size, maxSize),
			Detail:   float64(size),
		})
	}
	for _, key := range []string{"title", "artist"} {
		if value, ok := format.Tags[key]; ok && len(value) > maxTag {
			findings = append(findings, warningf(p.Name(), "tag %q is %d characters long", key, len(value)))
		}
	}

	for _, s := range streams {
		switch s.Type {
		case "video":
			if _, narrow := narrowVideoCodecs[s.Codec]; narrow {
				findings = append(findings, warningf(p.Name(), "video codec %s has narrow player support", s.Codec))
			}
		case "audio":
			if _, narrow := narrowAudioCodecs[s.Codec]; narrow {
				findings = append(findings, warningf(p.Name(), "audio codec %s has narrow player support", s.Codec))
			}
		}
	}
	return report.NewResult(p.Name(), findings)
}
