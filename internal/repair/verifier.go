package repair

import (
	"context"

	"ripdoctor/internal/introspect"
	"ripdoctor/internal/media"
	"ripdoctor/internal/probes"
)

// IntegrityVerifier re-runs the integrity probe against a repaired file.
type IntegrityVerifier struct {
	insp introspect.Introspector
}

// NewIntegrityVerifier wraps an introspector as a post-repair verifier.
func NewIntegrityVerifier(insp introspect.Introspector) *IntegrityVerifier {
	return &IntegrityVerifier{insp: insp}
}

// Verify loads the repaired file and reports whether the integrity probe
// passes on it.
func (v *IntegrityVerifier) Verify(ctx context.Context, path string) (bool, error) {
	file, err := media.Load(path)
	if err != nil {
		return false, err
	}
	result := probes.NewIntegrity().Run(ctx, file, v.insp)
	return result.Passed, nil
}
