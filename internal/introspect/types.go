package introspect

import (
	"context"
	"time"
)

// FormatInfo captures container-level metadata.
type FormatInfo struct {
	Duration time.Duration
	Size     int64
	Tags     map[string]string
}

// StreamInfo describes a single stream in the container.
type StreamInfo struct {
	Index       int
	Type        string // video, audio, subtitle, attachment, data
	Codec       string
	Profile     string
	Level       int
	PixelFormat string
	Width       int
	Height      int
	Channels    int
	SampleRate  int
	Language    string
	StartTime   float64 // seconds
	// HasStartTime is false when the container does not report a start time
	// for the stream; StartTime is meaningless then.
	HasStartTime bool
}

// PacketInfo carries the presentation timestamp of one demuxed packet.
// Stream identifies the stream the packet belongs to; timestamp sequences
// are only meaningful within a single stream.
type PacketInfo struct {
	Stream int
	PTS    float64 // seconds
	HasPTS bool
}

// PacketOptions bounds a packet scan.
type PacketOptions struct {
	// MaxPackets caps how many packets are read; zero means the adapter default.
	MaxPackets int
	// StreamIndex selects a single stream, or -1 for all streams.
	StreamIndex int
}

// DecodeVerdict is the typed outcome of a full-file decode verification.
type DecodeVerdict struct {
	OK         bool
	Diagnostic string
	Signatures []Signature
}

// TrackSummary is one track as reported by the container metadata tool.
type TrackSummary struct {
	ID    int
	Type  string
	Codec string
}

// Elements records which structural container elements were observed.
type Elements struct {
	Header  bool // EBML head
	Segment bool // top-level segment
	Tracks  bool // track metadata
	Cluster bool // at least one data cluster
}

// ContainerMeta is the container metadata tool's view of the file.
type ContainerMeta struct {
	Elements Elements
	Tracks   []TrackSummary
	Warnings []string
	Errors   []string
}

// Introspector exposes every way a probe may inspect a media file.
// Implementations surface tool failures as error values so probes can
// degrade to warning findings.
type Introspector interface {
	GetFormatInfo(ctx context.Context, path string) (FormatInfo, error)
	GetStreams(ctx context.Context, path string) ([]StreamInfo, error)
	GetPackets(ctx context.Context, path string, opts PacketOptions) ([]PacketInfo, error)
	VerifyDecode(ctx context.Context, path string) (DecodeVerdict, error)
	GetContainerMeta(ctx context.Context, path string) (ContainerMeta, error)
	SeekAndDecode(ctx context.Context, path string, position, window time.Duration) error
}
