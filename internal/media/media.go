package media

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sys/unix"
)

// File describes the media file under analysis. Immutable once loaded.
type File struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// ErrNotRegular indicates the input path exists but is not a regular file.
var ErrNotRegular = errors.New("not a regular file")

// Load stats the path and verifies the fatal preconditions for analysis.
func Load(path string) (File, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return File{}, errors.New("media load: empty path")
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return File{}, fmt.Errorf("media load: resolve %s: %w", path, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return File{}, fmt.Errorf("media load: %w", err)
	}
	if !info.Mode().IsRegular() {
		return File{}, fmt.Errorf("media load: %s: %w", abs, ErrNotRegular)
	}
	if err := unix.Access(abs, unix.R_OK); err != nil {
		return File{}, fmt.Errorf("media load: %s not readable: %w", abs, err)
	}

	return File{
		Path:    abs,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}

// Base returns the file name without its extension.
func (f File) Base() string {
	name := filepath.Base(f.Path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// Ext returns the file extension including the leading dot.
func (f File) Ext() string {
	return filepath.Ext(f.Path)
}

// RepairedPath returns the default output path for a repaired copy,
// <base>_repaired.<ext> next to the original.
func (f File) RepairedPath() string {
	return filepath.Join(filepath.Dir(f.Path), f.Base()+"_repaired"+f.Ext())
}
