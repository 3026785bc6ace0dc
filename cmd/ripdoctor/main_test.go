package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ripdoctor/internal/history"
	"ripdoctor/internal/report"
)

func runCLI(t *testing.T, args ...string) (string, string, int, error) {
	t.Helper()
	var exitCode int
	cmd := newRootCommand(&exitCode)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), exitCode, err
}

func writeTestConfig(t *testing.T, base string, extra string) string {
	t.Helper()
	historyPath := filepath.Join(base, "history.db")
	content := fmt.Sprintf("[history]\nenabled = true\npath = %q\n\n[logging]\nlevel = \"error\"\n", historyPath)
	content += extra
	path := filepath.Join(base, "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestConfigInitCommand(t *testing.T) {
	target := filepath.Join(t.TempDir(), "conf", "config.toml")

	out, _, _, err := runCLI(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out, target) {
		t.Fatalf("expected output to name %s, got %q", target, out)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("sample config not written: %v", err)
	}

	if _, _, _, err := runCLI(t, "config", "init", "--path", target); err == nil {
		t.Fatal("expected second init to refuse overwriting")
	}
}

func TestConfigValidateCommand(t *testing.T) {
	cfgPath := writeTestConfig(t, t.TempDir(), "")
	out, _, _, err := runCLI(t, "config", "validate", "--config", cfgPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	if !strings.Contains(out, "configuration valid") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestHistoryCommandEmpty(t *testing.T) {
	cfgPath := writeTestConfig(t, t.TempDir(), "")
	out, _, _, err := runCLI(t, "history", "--config", cfgPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if !strings.Contains(out, "no recorded runs") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestHistoryCommandListsRuns(t *testing.T) {
	base := t.TempDir()
	cfgPath := writeTestConfig(t, base, "")

	store, err := history.Open(filepath.Join(base, "history.db"))
	if err != nil {
		t.Fatalf("history.Open: %v", err)
	}
	rep := report.Aggregate([]report.ProbeResult{
		report.NewResult("integrity", []report.Finding{
			{Probe: "integrity", Severity: report.SeverityError, Message: "decode verification failed"},
		}),
	})
	if _, err := store.Record(context.Background(), "/library/movie.mkv", "full", rep); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	out, _, _, err := runCLI(t, "history", "--config", cfgPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if !strings.Contains(out, "/library/movie.mkv") || !strings.Contains(out, "full") {
		t.Fatalf("run missing from output: %q", out)
	}

	out, _, _, err = runCLI(t, "history", "--config", cfgPath, "--path", "/other.mkv")
	if err != nil {
		t.Fatalf("history --path: %v", err)
	}
	if !strings.Contains(out, "no recorded runs") {
		t.Fatalf("expected no runs for other path, got %q", out)
	}

	out, _, _, err = runCLI(t, "history", "--config", cfgPath, "--json")
	if err != nil {
		t.Fatalf("history --json: %v", err)
	}
	if !strings.Contains(out, `"/library/movie.mkv"`) {
		t.Fatalf("json output missing path: %q", out)
	}
}

func TestDepsCommand(t *testing.T) {
	base := t.TempDir()
	binDir := filepath.Join(base, "bin")
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		t.Fatalf("create bin dir: %v", err)
	}
	for _, name := range []string{"ffprobe", "ffmpeg", "mkvmerge"} {
		stub := filepath.Join(binDir, name)
		if err := os.WriteFile(stub, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
			t.Fatalf("write stub %s: %v", name, err)
		}
	}
	tools := fmt.Sprintf("[tools]\nffprobe = %q\nffmpeg = %q\nmkvmerge = %q\n",
		filepath.Join(binDir, "ffprobe"), filepath.Join(binDir, "ffmpeg"), filepath.Join(binDir, "mkvmerge"))
	cfgPath := writeTestConfig(t, base, tools)

	out, _, _, err := runCLI(t, "deps", "--config", cfgPath)
	if err != nil {
		t.Fatalf("deps: %v", err)
	}
	if !strings.Contains(out, "available") || strings.Contains(out, "missing") {
		t.Fatalf("unexpected deps output: %q", out)
	}
}

func TestDepsCommandReportsMissing(t *testing.T) {
	base := t.TempDir()
	tools := "[tools]\nffprobe = \"definitely-not-installed-ffprobe\"\n"
	cfgPath := writeTestConfig(t, base, tools)

	out, _, _, err := runCLI(t, "deps", "--config", cfgPath)
	if err == nil {
		t.Fatal("expected error when a tool is missing")
	}
	if !strings.Contains(out, "missing") {
		t.Fatalf("expected missing status in output: %q", out)
	}
}

func TestExecuteFatalExitCode(t *testing.T) {
	cfgPath := writeTestConfig(t, t.TempDir(), "")
	code, err := execute([]string{"--config", cfgPath, "/no/such/file.mkv"})
	if err == nil {
		t.Fatal("expected error for missing input file")
	}
	if code != exitFatal {
		t.Fatalf("expected exit %d, got %d", exitFatal, code)
	}
}
