package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"

	"github.com/quantmind-br/filemanifest/internal/batch"
	"github.com/quantmind-br/filemanifest/internal/config"
	"github.com/quantmind-br/filemanifest/internal/manifest"
	"github.com/quantmind-br/filemanifest/internal/output"
	"github.com/quantmind-br/filemanifest/internal/scan"
	"github.com/quantmind-br/filemanifest/internal/utils"
	"github.com/quantmind-br/filemanifest/internal/watch"
)

// Orchestrator coordinates scanning, encoding and writing manifests
type Orchestrator struct {
	config   *config.Config
	logger   *utils.Logger
	fs       billy.Filesystem
	dryRun   bool
	stdout   io.Writer
	progress io.Writer
	clock    func() time.Time
}

// OrchestratorOptions contains options for creating an orchestrator
type OrchestratorOptions struct {
	Config  *config.Config
	Verbose bool
	DryRun  bool

	// Logger overrides the logger built from Config.Logging
	Logger *utils.Logger
	// Filesystem defaults to the host filesystem
	Filesystem billy.Filesystem
	// Stdout receives manifests when no output path is set
	Stdout io.Writer
	// Progress receives the batch progress bar; defaults to stderr
	Progress io.Writer
	Clock    func() time.Time
}

// NewOrchestrator creates a new orchestrator with the given configuration
func NewOrchestrator(opts OrchestratorOptions) (*Orchestrator, error) {
	cfg := opts.Config

	// Validate config
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logLevel := config.DefaultLogLevel
		logFormat := config.DefaultLogFormat
		if cfg.Logging.Level != "" {
			logLevel = cfg.Logging.Level
		}
		if cfg.Logging.Format != "" {
			logFormat = cfg.Logging.Format
		}
		logger = utils.NewLogger(utils.LoggerOptions{
			Level:   logLevel,
			Format:  logFormat,
			Verbose: opts.Verbose,
		})
	}

	fs := opts.Filesystem
	if fs == nil {
		fs = osfs.New("/")
	}
	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	progress := opts.Progress
	if progress == nil {
		progress = os.Stderr
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}

	return &Orchestrator{
		config:   cfg,
		logger:   logger,
		fs:       fs,
		dryRun:   opts.DryRun,
		stdout:   stdout,
		progress: progress,
		clock:    clock,
	}, nil
}

// Config returns the validated configuration
func (o *Orchestrator) Config() *config.Config {
	return o.config
}

// target is one fully resolved generation request
type target struct {
	root   string
	output string
	scan   scan.Options
	format manifest.Format
	indent int
	gzip   bool
}

func (o *Orchestrator) configTarget(root string) (target, error) {
	format, err := manifest.ParseFormat(o.config.Output.Format)
	if err != nil {
		return target{}, err
	}

	abs, err := utils.ResolveRoot(root)
	if err != nil {
		return target{}, fmt.Errorf("resolve root %s: %w", root, err)
	}

	out, err := ResolveOutput(o.config.Output.Path)
	if err != nil {
		return target{}, fmt.Errorf("resolve output %s: %w", o.config.Output.Path, err)
	}

	return target{
		root:   abs,
		output: out,
		scan: scan.Options{
			MaxDepth:       o.config.Scan.MaxDepth,
			RootLabel:      o.config.Scan.RootLabel,
			Exclude:        o.config.Scan.Exclude,
			Extensions:     o.config.Scan.Extensions,
			FollowSymlinks: o.config.Scan.FollowSymlinks,
			Logger:         o.logger,
		},
		format: format,
		indent: o.config.Output.Indent,
		gzip:   o.config.Output.Gzip,
	}, nil
}

// batchTarget overlays a job target on the configured defaults
func (o *Orchestrator) batchTarget(bt batch.Target) (target, error) {
	tg, err := o.configTarget(bt.Root)
	if err != nil {
		return target{}, err
	}

	if tg.output, err = ResolveOutput(bt.Output); err != nil {
		return target{}, fmt.Errorf("resolve output %s: %w", bt.Output, err)
	}
	if bt.MaxDepth > 0 {
		tg.scan.MaxDepth = bt.MaxDepth
	}
	if bt.Label != "" {
		tg.scan.RootLabel = bt.Label
	}
	if bt.Format != "" {
		if tg.format, err = manifest.ParseFormat(bt.Format); err != nil {
			return target{}, err
		}
	}
	if bt.Gzip {
		tg.gzip = true
	}
	if bt.Exclude != nil {
		tg.scan.Exclude = bt.Exclude
	}
	if bt.Extensions != nil {
		tg.scan.Extensions = bt.Extensions
	}
	return tg, nil
}

func (o *Orchestrator) writer(tg target) *output.Writer {
	return output.NewWriter(output.WriterOptions{
		Path:   tg.output,
		Format: tg.format,
		Indent: tg.indent,
		Gzip:   tg.gzip,
		DryRun: o.dryRun,
		Stdout: o.stdout,
	})
}

// generate scans the target root without writing anything
func (o *Orchestrator) generate(tg target) (*manifest.Manifest, error) {
	builder := scan.NewBuilder(o.fs, tg.scan)
	m, err := manifest.NewGenerator(builder).WithClock(o.clock).Generate(tg.root)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", tg.root, err)
	}
	if m.Structure == nil {
		o.logger.Warn().Str("root", tg.root).Msg("Root directory not found, writing empty structure")
	}
	return m, nil
}

// runTarget generates and writes one manifest
func (o *Orchestrator) runTarget(ctx context.Context, tg target) (output.Result, error) {
	start := time.Now()
	result := output.Result{Root: tg.root, Output: tg.output}

	w := o.writer(tg)
	result.Gzip = w.Compressed()

	m, err := o.generate(tg)
	if err == nil {
		err = w.Write(ctx, m)
	}
	result.DurationMS = time.Since(start).Milliseconds()
	if err != nil {
		result.Error = err.Error()
		return result, err
	}

	result.Files, result.Folders = m.Structure.Stats()
	return result, nil
}

// Run generates the manifest for root and writes it once
func (o *Orchestrator) Run(ctx context.Context, root string) error {
	tg, err := o.configTarget(root)
	if err != nil {
		return err
	}

	dest := tg.output
	if dest == "" {
		dest = "stdout"
	}
	logger := o.logger.WithRoot(tg.root).WithOutput(dest)
	logger.Debug().
		Int("max_depth", tg.scan.MaxDepth).
		Str("format", string(tg.format)).
		Bool("dry_run", o.dryRun).
		Msg("Starting manifest generation")

	result, err := o.runTarget(ctx, tg)
	if err != nil {
		if ctx.Err() != nil {
			logger.Warn().Msg("Generation cancelled")
			return ctx.Err()
		}
		return err
	}

	logger.Info().
		Int("files", result.Files).
		Int("folders", result.Folders).
		Dur("duration", time.Duration(result.DurationMS)*time.Millisecond).
		Msg("Manifest generated")

	return nil
}

// Watch writes the manifest for root and rewrites it whenever the tree
// changes, until ctx is cancelled. Unchanged structures are not rewritten.
func (o *Orchestrator) Watch(ctx context.Context, root string) error {
	tg, err := o.configTarget(root)
	if err != nil {
		return err
	}
	w := o.writer(tg)
	logger := o.logger.WithRoot(tg.root)

	var last *manifest.Manifest
	if w.Exists() {
		if prev, err := w.Read(); err == nil {
			last = prev
			if at, err := prev.GeneratedAt(); err == nil {
				logger.Debug().Time("generated", at).Msg("Loaded previous manifest")
			}
		} else {
			logger.Debug().Err(err).Msg("Ignoring unreadable previous manifest")
		}
	}

	// the watcher serializes calls, so last needs no lock
	regenerate := func(ctx context.Context) error {
		m, err := o.generate(tg)
		if err != nil {
			return err
		}
		if last != nil && last.SameStructure(m) {
			logger.Debug().Msg("Structure unchanged, skipping write")
			return nil
		}
		if err := w.Write(ctx, m); err != nil {
			return err
		}
		last = m

		files, folders := m.Structure.Stats()
		logger.Info().Int("files", files).Int("folders", folders).Msg("Manifest updated")
		return nil
	}

	if err := regenerate(ctx); err != nil {
		return err
	}

	var ignore []string
	if !w.ToStdout() {
		ignore = append(ignore, w.Path())
	}

	watcher, err := watch.New(watch.Options{
		Root:     tg.root,
		MaxDepth: tg.scan.MaxDepth,
		Filter:   scan.NewFilter(tg.scan.Exclude, tg.scan.Extensions),
		Ignore:   ignore,
		Debounce: o.config.Watch.Debounce,
		Logger:   o.logger,
	})
	if err != nil {
		return fmt.Errorf("watch %s: %w", tg.root, err)
	}

	logger.Info().Dur("debounce", o.config.Watch.Debounce).Msg("Watching for changes")
	return watcher.Run(ctx, regenerate)
}

// RunBatch generates every target in job. jobFile is recorded in the summary.
func (o *Orchestrator) RunBatch(ctx context.Context, job *batch.Job, jobFile string) error {
	startTime := time.Now()
	totalTargets := len(job.Targets)

	o.logger.Info().
		Int("targets", totalTargets).
		Bool("continue_on_error", job.Options.ContinueOnError).
		Msg("Starting batch execution")

	if totalTargets == 0 {
		o.logger.Info().
			Dur("total_duration", time.Since(startTime)).
			Int("total", 0).
			Msg("Batch execution completed")
		return nil
	}

	concurrency := job.Options.Concurrency
	if concurrency <= 0 {
		concurrency = o.config.Batch.Workers
	}

	collector := output.NewSummaryCollector(output.CollectorOptions{
		Path:    job.Options.Summary,
		JobFile: jobFile,
	})

	bar := utils.NewProgressBarTo(o.progress, totalTargets, utils.DescGenerating)
	defer bar.Finish()

	var cancelCtx context.Context
	var cancel context.CancelFunc
	if job.Options.ContinueOnError {
		cancelCtx = ctx
	} else {
		cancelCtx, cancel = context.WithCancel(ctx)
		defer cancel()
	}

	errs := utils.ParallelForEach(cancelCtx, job.Targets, concurrency, func(tctx context.Context, bt batch.Target) error {
		defer bar.Add(1)

		tg, err := o.batchTarget(bt)
		var result output.Result
		if err == nil {
			result, err = o.runTarget(tctx, tg)
		} else {
			result = output.Result{Root: bt.Root, Output: bt.Output, Error: err.Error()}
		}
		if err != nil && errors.Is(err, context.Canceled) && tctx.Err() != nil && ctx.Err() == nil {
			// stopped by another target's failure
			o.logger.Debug().Str("root", bt.Root).Msg("Target skipped")
			return nil
		}
		collector.Add(result)

		if err != nil {
			o.logger.Error().
				Err(err).
				Str("root", bt.Root).
				Msg("Target generation failed")

			if !job.Options.ContinueOnError {
				cancel()
			}
			return fmt.Errorf("target %s failed: %w", bt.Root, err)
		}

		o.logger.Debug().
			Str("root", result.Root).
			Str("output", result.Output).
			Int("files", result.Files).
			Int("folders", result.Folders).
			Msg("Target generated")
		return nil
	})

	if collector.IsEnabled() {
		if err := collector.Flush(); err != nil {
			o.logger.Warn().Err(err).Msg("Failed to write batch summary")
		} else {
			o.logger.Info().
				Str("summary", job.Options.Summary).
				Int("results", collector.Count()).
				Msg("Batch summary written")
		}
	}

	if ctx.Err() != nil {
		o.logger.Warn().Msg("Batch execution cancelled")
		return ctx.Err()
	}

	firstError := utils.FirstError(errs)
	if !job.Options.ContinueOnError && firstError != nil {
		o.logger.Warn().Msg("Stopping execution (continue_on_error=false)")
		return firstError
	}

	failed := len(utils.CollectErrors(errs))

	o.logger.Info().
		Dur("total_duration", time.Since(startTime)).
		Int("total", totalTargets).
		Int("success", totalTargets-failed).
		Int("failed", failed).
		Msg("Batch execution completed")

	if failed > 0 {
		return fmt.Errorf("batch completed with %d/%d failures: %w", failed, totalTargets, firstError)
	}

	return nil
}

// ResolveOutput returns the absolute output path, or "" for stdout
func ResolveOutput(path string) (string, error) {
	if path == "" || path == "-" {
		return "", nil
	}
	return filepath.Abs(utils.ExpandPath(path))
}
