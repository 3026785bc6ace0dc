package fileutil

import (
	"crypto/sha256"
	"os"
	"path/filepath"
	"testing"
)

func TestCopyFileVerified(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")
	dst := filepath.Join(dir, "dst.bin")

	content := []byte("verified copy content")
	if err := os.WriteFile(src, content, 0o644); err != nil {
		t.Fatal(err)
	}

	if err := CopyFileVerified(src, dst); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(content) {
		t.Fatalf("content mismatch: got %q, want %q", got, content)
	}
}

func TestCopyFileVerified_MissingSource(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "nonexistent")
	dst := filepath.Join(dir, "dst.bin")

	err := CopyFileVerified(src, dst)
	if err == nil {
		t.Fatal("expected error for missing source")
	}
}

func TestVerifyCopyDetectsCorruptedDestination(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")
	dst := filepath.Join(dir, "dst.bin")

	content := []byte("payload to back up")
	if err := os.WriteFile(src, content, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := CopyFileVerified(src, dst); err != nil {
		t.Fatalf("CopyFileVerified: %v", err)
	}

	// Flip a byte on disk: the same-size corrupted copy must no longer
	// verify against the source digest.
	corrupted := append([]byte{}, content...)
	corrupted[0] ^= 0xFF
	if err := os.WriteFile(dst, corrupted, 0o644); err != nil {
		t.Fatal(err)
	}

	srcSum := sha256.Sum256(content)
	if err := verifyCopy(dst, int64(len(content)), srcSum[:]); err == nil {
		t.Fatal("corrupted destination must fail hash verification")
	}

	if err := verifyCopy(dst, int64(len(content))+1, srcSum[:]); err == nil {
		t.Fatal("size mismatch on read back must fail verification")
	}
}
