package analysis

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"ripdoctor/internal/introspect"
	"ripdoctor/internal/media"
	"ripdoctor/internal/probes"
)

// brokenIntrospector fails every call, simulating missing tools.
type brokenIntrospector struct{}

var errToolMissing = errors.New("tool not found")

func (brokenIntrospector) GetFormatInfo(context.Context, string) (introspect.FormatInfo, error) {
	return introspect.FormatInfo{}, errToolMissing
}

func (brokenIntrospector) GetStreams(context.Context, string) ([]introspect.StreamInfo, error) {
	return nil, errToolMissing
}

func (brokenIntrospector) GetPackets(context.Context, string, introspect.PacketOptions) ([]introspect.PacketInfo, error) {
	return nil, errToolMissing
}

func (brokenIntrospector) VerifyDecode(context.Context, string) (introspect.DecodeVerdict, error) {
	return introspect.DecodeVerdict{}, errToolMissing
}

func (brokenIntrospector) GetContainerMeta(context.Context, string) (introspect.ContainerMeta, error) {
	return introspect.ContainerMeta{}, errToolMissing
}

func (brokenIntrospector) SeekAndDecode(context.Context, string, time.Duration, time.Duration) error {
	return errToolMissing
}

// healthyIntrospector answers every call with a clean well-formed file.
type healthyIntrospector struct{}

func (healthyIntrospector) GetFormatInfo(context.Context, string) (introspect.FormatInfo, error) {
	return introspect.FormatInfo{Duration: 90 * time.Minute, Size: 4 << 30}, nil
}

func (healthyIntrospector) GetStreams(context.Context, string) ([]introspect.StreamInfo, error) {
	return []introspect.StreamInfo{
		{Index: 0, Type: "video", Codec: "h264", Profile: "High", Level: 40, PixelFormat: "yuv420p", HasStartTime: true},
		{Index: 1, Type: "audio", Codec: "ac3", Channels: 6, SampleRate: 48000, Language: "eng", StartTime: 0.031, HasStartTime: true},
	}, nil
}

func (healthyIntrospector) GetPackets(context.Context, string, introspect.PacketOptions) ([]introspect.PacketInfo, error) {
	return []introspect.PacketInfo{
		{PTS: 0, HasPTS: true},
		{PTS: 0.04, HasPTS: true},
		{PTS: 0.08, HasPTS: true},
	}, nil
}

func (healthyIntrospector) VerifyDecode(context.Context, string) (introspect.DecodeVerdict, error) {
	return introspect.DecodeVerdict{OK: true}, nil
}

func (healthyIntrospector) GetContainerMeta(context.Context, string) (introspect.ContainerMeta, error) {
	return introspect.ContainerMeta{
		Elements: introspect.Elements{Header: true, Segment: true, Tracks: true, Cluster: true},
		Tracks: []introspect.TrackSummary{
			{ID: 0, Type: "video", Codec: "MPEG-4p10/AVC/H.264"},
			{ID: 1, Type: "audio", Codec: "AC-3"},
		},
	}, nil
}

func (healthyIntrospector) SeekAndDecode(context.Context, string, time.Duration, time.Duration) error {
	return nil
}

var testFile = media.File{Path: "/library/movie.mkv", Size: 700 << 20}

func probeNames(set []probes.Probe) []string {
	names := make([]string, 0, len(set))
	for _, p := range set {
		names = append(names, p.Name())
	}
	return names
}

func TestProbeSetsAreSupersets(t *testing.T) {
	c := NewController(healthyIntrospector{}, nil)

	quick := probeNames(c.ProbesFor(ModeQuick))
	full := probeNames(c.ProbesFor(ModeFull))
	deep := probeNames(c.ProbesFor(ModeDeep))

	if !reflect.DeepEqual(quick, full[:len(quick)]) {
		t.Fatalf("full %v must start with quick %v", full, quick)
	}
	if !reflect.DeepEqual(full, deep[:len(full)]) {
		t.Fatalf("deep %v must start with full %v", deep, full)
	}
	if len(deep) != 9 {
		t.Fatalf("deep mode should run all nine probes, got %v", deep)
	}
}

func TestRunHealthyFile(t *testing.T) {
	c := NewController(healthyIntrospector{}, nil, WithWorkers(4))
	rep := c.Run(context.Background(), ModeDeep, testFile)
	if rep.TotalIssues != 0 {
		t.Fatalf("healthy file should report zero issues, got %+v", rep)
	}
	if len(rep.Results) != 9 {
		t.Fatalf("expected 9 results, got %d", len(rep.Results))
	}
}

func TestRunCompletesDespiteToolFailures(t *testing.T) {
	c := NewController(brokenIntrospector{}, nil)
	rep := c.Run(context.Background(), ModeDeep, testFile)
	if len(rep.Results) != 9 {
		t.Fatalf("all selected probes must run, got %d results", len(rep.Results))
	}
	if rep.TotalIssues == 0 || rep.TotalIssues > len(rep.Results) {
		t.Fatalf("issue count %d outside [1, %d]", rep.TotalIssues, len(rep.Results))
	}
}

func TestRunResultsInDeclarationOrder(t *testing.T) {
	c := NewController(healthyIntrospector{}, nil, WithWorkers(9))
	rep := c.Run(context.Background(), ModeDeep, testFile)

	want := probeNames(c.ProbesFor(ModeDeep))
	got := make([]string, 0, len(rep.Results))
	for _, res := range rep.Results {
		got = append(got, res.Probe)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("result order %v, want %v", got, want)
	}
}

func TestRunIdempotent(t *testing.T) {
	c := NewController(healthyIntrospector{}, nil)
	first := c.Run(context.Background(), ModeFull, testFile)
	second := c.Run(context.Background(), ModeFull, testFile)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated runs must produce identical reports:\n%+v\n%+v", first, second)
	}
}

func TestDeepIssueCountAtLeastFull(t *testing.T) {
	c := NewController(brokenIntrospector{}, nil)
	full := c.Run(context.Background(), ModeFull, testFile)
	deep := c.Run(context.Background(), ModeDeep, testFile)
	if deep.TotalIssues < full.TotalIssues {
		t.Fatalf("deep issues %d < full issues %d", deep.TotalIssues, full.TotalIssues)
	}
}

func TestQuickCheck(t *testing.T) {
	if !NewController(healthyIntrospector{}, nil).QuickCheck(context.Background(), testFile) {
		t.Fatalf("healthy file should pass quick check")
	}
	if NewController(brokenIntrospector{}, nil).QuickCheck(context.Background(), testFile) {
		t.Fatalf("broken introspection should fail quick check")
	}
}

func TestParseMode(t *testing.T) {
	cases := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"quick", ModeQuick, false},
		{"full", ModeFull, false},
		{"deep", ModeDeep, false},
		{"", ModeFull, false},
		{"turbo", "", true},
	}
	for _, tc := range cases {
		got, err := ParseMode(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParseMode(%q) expected error", tc.in)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("ParseMode(%q) = %v, %v; want %v", tc.in, got, err, tc.want)
		}
	}
}
