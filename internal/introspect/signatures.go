package introspect

import "strings"

// Signature identifies a known corruption pattern in decoder diagnostics.
type Signature string

const (
	SignatureInvalidData      Signature = "invalid data"
	SignatureDecodeError      Signature = "decode error"
	SignatureInvalidTimestamp Signature = "invalid timestamp"
	SignatureOversizedPacket  Signature = "oversized packet"
)

// signaturePatterns maps each known signature to the substrings ffmpeg
// emits for it. Matching is case-insensitive over the whole diagnostic.
var signaturePatterns = map[Signature][]string{
	SignatureInvalidData:      {"invalid data found", "invalid data when processing"},
	SignatureDecodeError:      {"error while decoding", "decode_slice_header error", "concealing errors"},
	SignatureInvalidTimestamp: {"invalid timestamp", "non monotonically increasing dts", "pts < dts"},
	SignatureOversizedPacket:  {"packet too large", "oversized packet"},
}

// classifyOrder keeps signature output deterministic across runs.
var classifyOrder = []Signature{
	SignatureInvalidData,
	SignatureDecodeError,
	SignatureInvalidTimestamp,
	SignatureOversizedPacket,
}

// ClassifySignatures scans a decoder diagnostic for known corruption
// signatures. Each signature appears at most once regardless of how many
// lines matched it.
func ClassifySignatures(diagnostic string) []Signature {
	lowered := strings.ToLower(diagnostic)
	if strings.TrimSpace(lowered) == "" {
		return nil
	}

	var matched []Signature
	for _, sig := range classifyOrder {
		for _, pattern := range signaturePatterns[sig] {
			if strings.Contains(lowered, pattern) {
				matched = append(matched, sig)
				break
			}
		}
	}
	return matched
}
