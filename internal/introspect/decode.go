package introspect

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// VerifyDecode decodes the whole file to the null muxer and classifies any
// decoder diagnostics. A non-zero ffmpeg exit or any error-level stderr
// output fails the verdict; the verdict itself is always returned so the
// caller can inspect the classified signatures.
func (c *Client) VerifyDecode(ctx context.Context, path string) (DecodeVerdict, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return DecodeVerdict{}, errors.New("verify decode: empty path")
	}

	args := []string{
		"-nostdin",
		"-v", "error",
		"-i", path,
		"-f", "null", "-",
	}
	cmd := exec.CommandContext(ctx, c.ffmpegBin, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	diagnostic := strings.TrimSpace(stderr.String())

	if runErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(runErr, &exitErr) {
			// Tool could not be invoked at all.
			return DecodeVerdict{}, fmt.Errorf("verify decode: %w", runErr)
		}
	}

	verdict := DecodeVerdict{
		OK:         runErr == nil && diagnostic == "",
		Diagnostic: diagnostic,
		Signatures: ClassifySignatures(diagnostic),
	}
	return verdict, nil
}

// SeekAndDecode seeks to position and decodes a short window. It returns an
// error when the tool cannot run, exits non-zero, or reports decode errors
// inside the window.
func (c *Client) SeekAndDecode(ctx context.Context, path string, position, window time.Duration) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("seek decode: empty path")
	}
	if window <= 0 {
		window = 5 * time.Second
	}

	args := []string{
		"-nostdin",
		"-v", "error",
		"-ss", formatSeconds(position),
		"-i", path,
		"-t", formatSeconds(window),
		"-f", "null", "-",
	}
	cmd := exec.CommandContext(ctx, c.ffmpegBin, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("seek decode at %s: %w: %s", formatSeconds(position), err, strings.TrimSpace(stderr.String()))
	}
	if diag := strings.TrimSpace(stderr.String()); diag != "" {
		return fmt.Errorf("seek decode at %s: %s", formatSeconds(position), diag)
	}
	return nil
}

func formatSeconds(d time.Duration) string {
	return fmt.Sprintf("%.3f", d.Seconds())
}
