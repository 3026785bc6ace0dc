package fileutil

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
)

// CopyFileVerified streams src to dst with SHA256 + size integrity
// verification. The destination is re-read from disk for the check, so a
// write that the filesystem mangled is caught, not just a short copy. A
// pre-repair backup that is itself corrupt is worse than no backup, so a
// mismatch removes dst and returns an error.
func CopyFileVerified(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}
	srcSize := srcInfo.Size()

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		_ = out.Close()
	}()

	srcHasher := sha256.New()
	written, err := io.Copy(out, io.TeeReader(in, srcHasher))
	if err != nil {
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	if written != srcSize {
		_ = os.Remove(dst)
		return fmt.Errorf("copy size mismatch: source %d bytes, copied %d bytes", srcSize, written)
	}

	if err := verifyCopy(dst, srcSize, srcHasher.Sum(nil)); err != nil {
		_ = os.Remove(dst)
		return err
	}
	return nil
}

// verifyCopy hashes the written file from disk and compares it against the
// source's size and digest.
func verifyCopy(dst string, wantSize int64, wantSum []byte) error {
	f, err := os.Open(dst)
	if err != nil {
		return fmt.Errorf("reopen copy: %w", err)
	}
	defer f.Close()

	hasher := sha256.New()
	read, err := io.Copy(hasher, f)
	if err != nil {
		return fmt.Errorf("read back copy: %w", err)
	}
	if read != wantSize {
		return fmt.Errorf("copy size mismatch on read back: want %d bytes, read %d bytes", wantSize, read)
	}
	if !bytes.Equal(hasher.Sum(nil), wantSum) {
		return fmt.Errorf("copy hash mismatch: file corrupted during copy")
	}
	return nil
}
