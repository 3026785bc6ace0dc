package introspect

import (
	"reflect"
	"testing"
)

func TestClassifySignatures(t *testing.T) {
	diag := `[matroska,webm @ 0x55] Invalid data found when processing input
[h264 @ 0x56] error while decoding MB 12 34, bytestream -5
[matroska @ 0x57] Invalid timestamp on packet 991`

	got := ClassifySignatures(diag)
	want := []Signature{SignatureInvalidData, SignatureDecodeError, SignatureInvalidTimestamp}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ClassifySignatures = %v, want %v", got, want)
	}
}

func TestClassifySignaturesDeduplicates(t *testing.T) {
	diag := "error while decoding MB 1\nerror while decoding MB 2\nerror while decoding MB 3"
	got := ClassifySignatures(diag)
	if len(got) != 1 || got[0] != SignatureDecodeError {
		t.Fatalf("expected single decode error signature, got %v", got)
	}
}

func TestClassifySignaturesEmpty(t *testing.T) {
	if got := ClassifySignatures("   \n  "); got != nil {
		t.Fatalf("expected nil for blank diagnostic, got %v", got)
	}
}
