package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"ripdoctor/internal/introspect"
	"ripdoctor/internal/media"
	"ripdoctor/internal/probes"
	"ripdoctor/internal/report"
)

// Mode selects how much analysis to run.
type Mode string

const (
	// ModeQuick runs only the cheap structural and inventory probes.
	ModeQuick Mode = "quick"
	// ModeFull runs the standard diagnostic set.
	ModeFull Mode = "full"
	// ModeDeep runs the full set plus the expensive per-stream, timing,
	// container, compatibility, and seek stress probes.
	ModeDeep Mode = "deep"
)

const defaultWorkers = 2

// Thresholds carries the tunable probe limits threaded in from config.
type Thresholds struct {
	SyncWarnSkew  float64       // seconds
	SyncErrorSkew float64       // seconds
	GapSeconds    float64       // timing gap threshold
	MaxDuration   time.Duration // compatibility duration limit
	MaxSize       int64         // compatibility size limit, bytes
	MaxTagLength  int           // compatibility tag length limit
}

// Controller runs probe sets against a media file.
type Controller struct {
	insp         introspect.Introspector
	logger       *slog.Logger
	workers      int
	probeTimeout time.Duration
	thresholds   Thresholds
}

// Option configures the controller.
type Option func(*Controller)

// WithWorkers bounds probe concurrency. Values below one are ignored.
func WithWorkers(n int) Option {
	return func(c *Controller) {
		if n >= 1 {
			c.workers = n
		}
	}
}

// WithProbeTimeout applies a per-probe context timeout. Zero disables it.
func WithProbeTimeout(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.probeTimeout = d
		}
	}
}

// WithThresholds overrides the default probe limits.
func WithThresholds(t Thresholds) Option {
	return func(c *Controller) {
		c.thresholds = t
	}
}

// NewController constructs a controller over the given introspector.
func NewController(insp introspect.Introspector, logger *slog.Logger, opts ...Option) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Controller{
		insp:    insp,
		logger:  logger,
		workers: defaultWorkers,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ProbesFor returns the probe set for a mode in declaration order. Deep is
// a strict superset of full, which is a strict superset of quick.
func (c *Controller) ProbesFor(mode Mode) []probes.Probe {
	quick := []probes.Probe{
		probes.NewStructural(),
		probes.NewInventory(),
	}
	if mode == ModeQuick {
		return quick
	}

	full := append(quick,
		probes.NewIntegrity(),
		&probes.AVSync{WarnSkew: c.thresholds.SyncWarnSkew, ErrorSkew: c.thresholds.SyncErrorSkew},
	)
	if mode != ModeDeep {
		return full
	}

	return append(full,
		probes.NewDeepStream(),
		&probes.Timing{GapThreshold: c.thresholds.GapSeconds},
		probes.NewContainer(),
		&probes.Compatibility{
			MaxDuration:  c.thresholds.MaxDuration,
			MaxSize:      c.thresholds.MaxSize,
			MaxTagLength: c.thresholds.MaxTagLength,
		},
		probes.NewStress(),
	)
}

// Run executes the mode's probe set and aggregates the results. Every
// selected probe runs even when earlier ones fail.
func (c *Controller) Run(ctx context.Context, mode Mode, file media.File) report.AnalysisReport {
	selected := c.ProbesFor(mode)
	results := make([]report.ProbeResult, len(selected))

	sem := make(chan struct{}, c.workers)
	var wg sync.WaitGroup
	for i, probe := range selected {
		wg.Add(1)
		go func(slot int, p probes.Probe) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results[slot] = c.runOne(ctx, p, file)
		}(i, probe)
	}
	wg.Wait()

	rep := report.Aggregate(results)
	c.logger.Info("analysis complete",
		slog.String("mode", string(mode)),
		slog.String("file", file.Path),
		slog.Int("probes", len(selected)),
		slog.Int("issues", rep.TotalIssues),
	)
	return rep
}

// QuickCheck runs the minimal probe set and reports pass/fail only.
func (c *Controller) QuickCheck(ctx context.Context, file media.File) bool {
	return c.Run(ctx, ModeQuick, file).Healthy()
}

func (c *Controller) runOne(ctx context.Context, p probes.Probe, file media.File) (result report.ProbeResult) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("probe panicked", slog.String("probe", p.Name()), slog.Any("panic", r))
			result = report.NewResult(p.Name(), []report.Finding{{
				Probe:    p.Name(),
				Severity: report.SeverityWarning,
				Message:  fmt.Sprintf("probe aborted: %v", r),
			}})
		}
	}()

	probeCtx := ctx
	if c.probeTimeout > 0 {
		var cancel context.CancelFunc
		probeCtx, cancel = context.WithTimeout(ctx, c.probeTimeout)
		defer cancel()
	}

	started := time.Now()
	result = p.Run(probeCtx, file, c.insp)
	c.logger.Debug("probe finished",
		slog.String("probe", p.Name()),
		slog.Bool("passed", result.Passed),
		slog.Int("findings", len(result.Findings)),
		slog.Duration("elapsed", time.Since(started)),
	)
	return result
}

// ParseMode maps CLI input onto a Mode.
func ParseMode(value string) (Mode, error) {
	switch Mode(value) {
	case ModeQuick, ModeFull, ModeDeep:
		return Mode(value), nil
	case "":
		return ModeFull, nil
	default:
		return "", fmt.Errorf("unknown analysis mode %q", value)
	}
}
