package repair

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"golang.org/x/sys/unix"

	"ripdoctor/internal/fileutil"
)

const (
	defaultMinOutputBytes = 1 << 20 // plausibility floor, configurable
	backupTimeFormat      = "20060102_150405"
)

// ErrRepairInProgress indicates another executor holds the repair lock for
// the same input file.
var ErrRepairInProgress = errors.New("repair already in progress for this file")

// Plan describes one repair request.
type Plan struct {
	InputPath  string
	OutputPath string // empty means <base>_repaired.<ext> next to the input
	Backup     bool
	Force      bool
}

// Outcome reports what the repair did. ExecutionSucceeded is false only
// when the output file is missing or implausibly small; Verified reflects
// the post-repair decode pass and is independent of execution success.
type Outcome struct {
	OutputPath         string
	BackupPath         string
	ExecutionSucceeded bool
	OutputNonEmpty     bool
	Verified           bool
	Notes              []string
}

// Verifier re-checks a repaired file. Implemented by the integrity probe.
type Verifier interface {
	Verify(ctx context.Context, path string) (bool, error)
}

// Runner abstracts remux command execution for testability.
type Runner interface {
	Run(ctx context.Context, binary string, args []string) error
}

type commandRunner struct{}

func (commandRunner) Run(ctx context.Context, binary string, args []string) error {
	cmd := exec.CommandContext(ctx, binary, args...)
	var stderr strings.Builder
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return fmt.Errorf("%w: %s", err, detail)
		}
		return err
	}
	return nil
}

// Executor performs repairs.
type Executor struct {
	ffmpegBin      string
	logger         *slog.Logger
	verifier       Verifier
	runner         Runner
	minOutputBytes int64
	now            func() time.Time
}

// Option configures the executor.
type Option func(*Executor)

// WithMinOutputBytes overrides the plausibility floor for repaired output.
func WithMinOutputBytes(n int64) Option {
	return func(e *Executor) {
		if n > 0 {
			e.minOutputBytes = n
		}
	}
}

// WithClock injects a clock for deterministic backup names in tests.
func WithClock(now func() time.Time) Option {
	return func(e *Executor) {
		if now != nil {
			e.now = now
		}
	}
}

// WithRunner injects a custom remux runner (primarily for tests).
func WithRunner(runner Runner) Option {
	return func(e *Executor) {
		if runner != nil {
			e.runner = runner
		}
	}
}

// NewExecutor constructs a repair executor. The verifier is required; an
// empty binary name falls back to ffmpeg on PATH.
func NewExecutor(ffmpegBin string, verifier Verifier, logger *slog.Logger, opts ...Option) (*Executor, error) {
	if verifier == nil {
		return nil, errors.New("repair executor requires a verifier")
	}
	if logger == nil {
		logger = slog.Default()
	}
	ffmpegBin = strings.TrimSpace(ffmpegBin)
	if ffmpegBin == "" {
		ffmpegBin = "ffmpeg"
	}
	e := &Executor{
		ffmpegBin:      ffmpegBin,
		logger:         logger,
		verifier:       verifier,
		runner:         commandRunner{},
		minOutputBytes: defaultMinOutputBytes,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Repair runs the plan. Backup failure aborts the repair entirely; remux
// failures are classified by output plausibility and never panic.
func (e *Executor) Repair(ctx context.Context, plan Plan) (Outcome, error) {
	input := strings.TrimSpace(plan.InputPath)
	if input == "" {
		return Outcome{}, errors.New("repair: empty input path")
	}

	output := strings.TrimSpace(plan.OutputPath)
	if output == "" {
		output = defaultOutputPath(input)
	}
	outcome := Outcome{OutputPath: output}

	lock := flock.New(input + ".repair.lock")
	locked, err := lock.TryLock()
	if err != nil {
		return outcome, fmt.Errorf("repair: acquire lock: %w", err)
	}
	if !locked {
		return outcome, ErrRepairInProgress
	}
	defer func() {
		_ = lock.Unlock()
		_ = os.Remove(lock.Path())
	}()

	if plan.Backup {
		backupPath := fmt.Sprintf("%s.backup.%s", input, e.now().UTC().Format(backupTimeFormat))
		if err := fileutil.CopyFileVerified(input, backupPath); err != nil {
			return outcome, fmt.Errorf("repair: backup failed, aborting: %w", err)
		}
		outcome.BackupPath = backupPath
		e.logger.Info("backup written", slog.String("path", backupPath))
	}

	if note := e.checkFreeSpace(input, output); note != "" {
		outcome.Notes = append(outcome.Notes, note)
		e.logger.Warn(note)
	}

	strategy := StrategyTolerantRemux
	if plan.Force {
		strategy = StrategyForcedRemux
	}

	runErr := e.runner.Run(ctx, e.ffmpegBin, strategy.Args(input, output))

	info, statErr := os.Stat(output)
	outcome.OutputNonEmpty = statErr == nil && info.Size() > 0
	plausible := statErr == nil && info.Size() >= e.minOutputBytes
	outcome.ExecutionSucceeded = plausible

	switch {
	case runErr != nil && plausible:
		// Soft success: the remux tool complained but produced a
		// plausible file. Recorded rather than trusted; verification
		// below has the final word.
		note := fmt.Sprintf("remux exited with error but output looks plausible: %v", runErr)
		outcome.Notes = append(outcome.Notes, note)
		e.logger.Warn("soft success", slog.String("strategy", strategy.String()), slog.Any("error", runErr))
	case runErr != nil:
		outcome.Notes = append(outcome.Notes, fmt.Sprintf("remux failed: %v", runErr))
		e.logger.Error("remux failed", slog.String("strategy", strategy.String()), slog.Any("error", runErr))
		return outcome, nil
	case !plausible:
		outcome.Notes = append(outcome.Notes, "remux exited cleanly but output is missing or implausibly small")
		e.logger.Error("implausible output", slog.String("path", output))
		return outcome, nil
	}

	verified, verifyErr := e.verifier.Verify(ctx, output)
	if verifyErr != nil {
		outcome.Notes = append(outcome.Notes, fmt.Sprintf("verification could not run: %v", verifyErr))
		e.logger.Warn("verification failed to run", slog.Any("error", verifyErr))
	}
	outcome.Verified = verifyErr == nil && verified

	e.logger.Info("repair finished",
		slog.String("input", input),
		slog.String("output", output),
		slog.String("strategy", strategy.String()),
		slog.Bool("succeeded", outcome.ExecutionSucceeded),
		slog.Bool("verified", outcome.Verified),
	)
	return outcome, nil
}

// checkFreeSpace warns when the output filesystem has less room than the
// input file occupies. Advisory only; the remux still runs.
func (e *Executor) checkFreeSpace(input, output string) string {
	info, err := os.Stat(input)
	if err != nil {
		return ""
	}

	var stat unix.Statfs_t
	if err := unix.Statfs(filepath.Dir(output), &stat); err != nil {
		return ""
	}
	free := int64(stat.Bavail) * stat.Bsize
	if free < info.Size() {
		return fmt.Sprintf("low disk space: %d bytes free, input is %d bytes", free, info.Size())
	}
	return ""
}

func defaultOutputPath(input string) string {
	ext := filepath.Ext(input)
	base := strings.TrimSuffix(filepath.Base(input), ext)
	return filepath.Join(filepath.Dir(input), base+"_repaired"+ext)
}
