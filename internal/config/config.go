package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Tools names the external binaries the introspector and repair use.
type Tools struct {
	FFprobe  string `toml:"ffprobe"`
	FFmpeg   string `toml:"ffmpeg"`
	Mkvmerge string `toml:"mkvmerge"`
}

// Analysis contains probe selection and threshold settings.
type Analysis struct {
	Workers             int     `toml:"workers"`
	ProbeTimeoutSeconds int     `toml:"probe_timeout_seconds"`
	PacketLimit         int     `toml:"packet_limit"`
	SyncWarnSeconds     float64 `toml:"sync_warn_seconds"`
	SyncErrorSeconds    float64 `toml:"sync_error_seconds"`
	GapSeconds          float64 `toml:"gap_seconds"`
	MaxDurationHours    float64 `toml:"max_duration_hours"`
	MaxSizeGiB          int     `toml:"max_size_gib"`
	MaxTagLength        int     `toml:"max_tag_length"`
}

// Repair contains repair execution settings.
type Repair struct {
	// MinOutputBytes is the plausibility floor for repaired output. The
	// size-based success heuristic is deliberately configurable rather
	// than load-bearing.
	MinOutputBytes int64 `toml:"min_output_bytes"`
}

// History contains settings for the analysis history database.
type History struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Logging contains log output settings.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	LogDir string `toml:"log_dir"`
}

// Config is the root configuration value.
type Config struct {
	Tools    Tools    `toml:"tools"`
	Analysis Analysis `toml:"analysis"`
	Repair   Repair   `toml:"repair"`
	History  History  `toml:"history"`
	Logging  Logging  `toml:"logging"`
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "ripdoctor.toml"
	}
	return filepath.Join(home, ".config", "ripdoctor", "config.toml")
}

// Load reads the config file at path, falling back to defaults when the
// file does not exist. An empty path means DefaultPath.
func Load(path string) (*Config, error) {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath()
	}
	path = expandHome(path)

	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WriteSample writes the embedded sample config to path, refusing to
// overwrite an existing file.
func WriteSample(path string) error {
	path = expandHome(strings.TrimSpace(path))
	if path == "" {
		path = DefaultPath()
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	return os.WriteFile(path, []byte(sampleConfig), 0o644)
}

// EnsureDirectories creates the directories the doctor writes into.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{filepath.Dir(c.History.Path), c.Logging.LogDir} {
		if strings.TrimSpace(dir) == "" || dir == "." {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("ensure directory %s: %w", dir, err)
		}
	}
	return nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

func (c *Config) normalize() {
	c.Tools.FFprobe = strings.TrimSpace(c.Tools.FFprobe)
	c.Tools.FFmpeg = strings.TrimSpace(c.Tools.FFmpeg)
	c.Tools.Mkvmerge = strings.TrimSpace(c.Tools.Mkvmerge)
	c.History.Path = expandHome(strings.TrimSpace(c.History.Path))
	c.Logging.LogDir = expandHome(strings.TrimSpace(c.Logging.LogDir))

	defaults := Default()
	if c.Analysis.Workers <= 0 {
		c.Analysis.Workers = defaults.Analysis.Workers
	}
	if c.Analysis.PacketLimit <= 0 {
		c.Analysis.PacketLimit = defaults.Analysis.PacketLimit
	}
	if c.Repair.MinOutputBytes <= 0 {
		c.Repair.MinOutputBytes = defaults.Repair.MinOutputBytes
	}
	if c.History.Path == "" {
		c.History.Path = defaults.History.Path
	}
}
