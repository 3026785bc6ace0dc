package introspect

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// mkvmerge identification JSON wire types.

type mkvmergeIdentify struct {
	Container mkvmergeContainer `json:"container"`
	Tracks    []mkvmergeTrack   `json:"tracks"`
	Warnings  []string          `json:"warnings"`
	Errors    []string          `json:"errors"`
}

type mkvmergeContainer struct {
	Recognized bool                 `json:"recognized"`
	Supported  bool                 `json:"supported"`
	Properties mkvmergeContainerPro `json:"properties"`
}

type mkvmergeContainerPro struct {
	Duration int64 `json:"duration"` // nanoseconds, zero when no clusters
}

type mkvmergeTrack struct {
	ID    int    `json:"id"`
	Type  string `json:"type"`
	Codec string `json:"codec"`
}

// GetContainerMeta identifies the container with mkvmerge and derives the
// structural element flags. A recognized container implies a valid header, a
// supported one a readable segment; track metadata and a non-zero duration
// stand in for the tracks element and at least one cluster. mkvmerge exits
// non-zero when identification finds errors, so the parsed payload is still
// used when it decodes.
func (c *Client) GetContainerMeta(ctx context.Context, path string) (ContainerMeta, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return ContainerMeta{}, errors.New("container meta: empty path")
	}

	cmd := exec.CommandContext(ctx, c.mkvmergeBin, "-J", path)
	output, runErr := cmd.Output()

	meta, parseErr := parseMkvmergeJSON(output)
	if parseErr != nil {
		if runErr != nil {
			return ContainerMeta{}, fmt.Errorf("mkvmerge identify %s: %w", path, runErr)
		}
		return ContainerMeta{}, fmt.Errorf("mkvmerge identify %s: %w", path, parseErr)
	}
	return meta, nil
}

func parseMkvmergeJSON(data []byte) (ContainerMeta, error) {
	var ident mkvmergeIdentify
	if err := json.Unmarshal(data, &ident); err != nil {
		return ContainerMeta{}, fmt.Errorf("parse identification: %w", err)
	}

	tracks := make([]TrackSummary, 0, len(ident.Tracks))
	for _, t := range ident.Tracks {
		tracks = append(tracks, TrackSummary{
			ID:    t.ID,
			Type:  strings.ToLower(t.Type),
			Codec: t.Codec,
		})
	}

	return ContainerMeta{
		Elements: Elements{
			Header:  ident.Container.Recognized,
			Segment: ident.Container.Supported,
			Tracks:  len(ident.Tracks) > 0,
			Cluster: ident.Container.Properties.Duration > 0,
		},
		Tracks:   tracks,
		Warnings: ident.Warnings,
		Errors:   ident.Errors,
	}, nil
}
