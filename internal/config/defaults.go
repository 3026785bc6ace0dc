package config

import (
	"os"
	"path/filepath"
)

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Tools: Tools{
			FFprobe:  "ffprobe",
			FFmpeg:   "ffmpeg",
			Mkvmerge: "mkvmerge",
		},
		Analysis: Analysis{
			Workers:             2,
			ProbeTimeoutSeconds: 600,
			PacketLimit:         5000,
			SyncWarnSeconds:     0.1,
			SyncErrorSeconds:    1.0,
			GapSeconds:          10.0,
			MaxDurationHours:    4,
			MaxSizeGiB:          10,
			MaxTagLength:        100,
		},
		Repair: Repair{
			MinOutputBytes: 1 << 20,
		},
		History: History{
			Enabled: true,
			Path:    defaultHistoryPath(),
		},
		Logging: Logging{
			Level:  "info",
			Format: "console",
		},
	}
}

func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "ripdoctor-history.db"
	}
	return filepath.Join(home, ".local", "share", "ripdoctor", "history.db")
}
