package probes

import (
	"context"
	"fmt"
	"math"

	"ripdoctor/internal/introspect"
	"ripdoctor/internal/media"
	"ripdoctor/internal/report"
)

const defaultGapThreshold = 10.0 // seconds

// Timing scans packet timestamps in file order, tracked per stream. It
// counts negative presentation timestamps, gaps between consecutive packets
// of the same stream larger than the threshold, and duplicate timestamps
// within a stream. Interleaved streams naturally repeat timestamp values and
// jump between positions, so cross-stream deltas and coincidences are never
// findings. Gap detection runs on the file-order sequence, not a sorted one;
// out-of-order timestamps produce negative deltas that count by absolute
// value.
type Timing struct {
	GapThreshold float64 // seconds, zero means default
}

// NewTiming constructs the packet timing probe.
func NewTiming() *Timing { return &Timing{} }

func (p *Timing) Name() string { return NameTiming }

func (p *Timing) Run(ctx context.Context, file media.File, insp introspect.Introspector) report.ProbeResult {
	packets, err := insp.GetPackets(ctx, file.Path, introspect.PacketOptions{StreamIndex: -1})
	if err != nil {
		return toolFailure(p.Name(), err)
	}
	return report.NewResult(p.Name(), p.inspect(packets))
}

// streamTimeline tracks the timestamp sequence of one stream.
type streamTimeline struct {
	seen     map[float64]struct{}
	prev     float64
	havePrev bool
}

func (p *Timing) inspect(packets []introspect.PacketInfo) []report.Finding {
	threshold := p.GapThreshold
	if threshold <= 0 {
		threshold = defaultGapThreshold
	}

	var (
		negatives  int
		gaps       int
		duplicates bool
		timelines  = make(map[int]*streamTimeline)
	)
	for _, pkt := range packets {
		if !pkt.HasPTS {
			continue
		}
		if pkt.PTS < 0 {
			negatives++
		}

		tl := timelines[pkt.Stream]
		if tl == nil {
			tl = &streamTimeline{seen: make(map[float64]struct{})}
			timelines[pkt.Stream] = tl
		}
		if _, dup := tl.seen[pkt.PTS]; dup {
			duplicates = true
		}
		tl.seen[pkt.PTS] = struct{}{}

		if tl.havePrev && math.Abs(pkt.PTS-tl.prev) > threshold {
			gaps++
		}
		tl.prev = pkt.PTS
		tl.havePrev = true
	}

	var findings []report.Finding
	if negatives > 0 {
		findings = append(findings, report.Finding{
			Probe:    p.Name(),
			Severity: report.SeverityWarning,
			Message:  fmt.Sprintf("%d packets with negative presentation timestamps", negatives),
			Detail:   float64(negatives),
		})
	}
	if gaps > 0 {
		findings = append(findings, report.Finding{
			Probe:    p.Name(),
			Severity: report.SeverityWarning,
			Message:  fmt.Sprintf("%d timestamp gaps larger than %.0fs", gaps, threshold),
			Detail:   float64(gaps),
		})
	}
	if duplicates {
		findings = append(findings, warning(p.Name(), "duplicate presentation timestamps found"))
	}
	return findings
}
