package introspect

import "testing"

const sampleIdentifyJSON = `{
  "container": {
    "recognized": true,
    "supported": true,
    "properties": {"duration": 5400250000000}
  },
  "tracks": [
    {"id": 0, "type": "Video", "codec": "MPEG-4p10/AVC/H.264"},
    {"id": 1, "type": "audio", "codec": "AC-3"},
    {"id": 2, "type": "buttons", "codec": "VobBtn"}
  ],
  "warnings": ["Track 2 uses an unusual codec."],
  "errors": []
}`

func TestParseMkvmergeJSON(t *testing.T) {
	meta, err := parseMkvmergeJSON([]byte(sampleIdentifyJSON))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if !meta.Elements.Header || !meta.Elements.Segment || !meta.Elements.Tracks || !meta.Elements.Cluster {
		t.Fatalf("all elements should be present: %+v", meta.Elements)
	}
	if len(meta.Tracks) != 3 {
		t.Fatalf("expected 3 tracks")
	}
	if meta.Tracks[0].Type != "video" {
		t.Fatalf("track type should be lowercased, got %q", meta.Tracks[0].Type)
	}
	if len(meta.Warnings) != 1 {
		t.Fatalf("warnings lost")
	}
}

func TestParseMkvmergeJSONUnrecognized(t *testing.T) {
	meta, err := parseMkvmergeJSON([]byte(`{"container":{"recognized":false,"supported":false},"tracks":[]}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if meta.Elements.Header || meta.Elements.Segment || meta.Elements.Tracks || meta.Elements.Cluster {
		t.Fatalf("no element should be present: %+v", meta.Elements)
	}
}
