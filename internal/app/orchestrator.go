package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/quantmind-br/leafdoc-go/internal/cache"
	"github.com/quantmind-br/leafdoc-go/internal/config"
	"github.com/quantmind-br/leafdoc-go/internal/domain"
	"github.com/quantmind-br/leafdoc-go/internal/leafdoc"
	"github.com/quantmind-br/leafdoc-go/internal/output"
	"github.com/quantmind-br/leafdoc-go/internal/utils"
)

// progressThreshold is the number of files from which a progress bar is shown
const progressThreshold = 20

// Orchestrator coordinates one documentation run: read the inputs, parse
// them into a session, render, and write the result
type Orchestrator struct {
	config   *config.Config
	session  *leafdoc.Leafdoc
	writer   *output.Writer
	cache    *cache.BadgerCache
	logger   *utils.Logger
	progress io.Writer
}

// OrchestratorOptions contains options for creating an orchestrator
type OrchestratorOptions struct {
	Config  *config.Config
	Verbose bool

	// Logger overrides the logger built from Config.Logging
	Logger *utils.Logger

	// Stdout receives the output when no output file is configured
	Stdout io.Writer

	// Progress receives the progress bar; nil disables it
	Progress io.Writer
}

// NewOrchestrator creates a new orchestrator with the given configuration
func NewOrchestrator(opts OrchestratorOptions) (*Orchestrator, error) {
	cfg := opts.Config
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = utils.NewLogger(utils.LoggerOptions{
			Level:   cfg.Logging.Level,
			Format:  cfg.Logging.Format,
			Output:  os.Stderr,
			Verbose: opts.Verbose,
		})
	}

	o := &Orchestrator{
		config:   cfg,
		logger:   logger.WithComponent("app"),
		progress: opts.Progress,
		writer: output.NewWriter(output.WriterOptions{
			Path:      cfg.Output.File,
			Overwrite: cfg.Output.Overwrite,
			Stdout:    opts.Stdout,
		}),
	}

	sessionOpts := leafdoc.Options{
		LeadingCharacter:          cfg.Leafdoc.LeadingCharacter,
		TemplateDir:               utils.ExpandPath(cfg.Output.TemplateDir),
		ShowInheritancesWhenEmpty: cfg.Leafdoc.ShowInheritancesWhenEmpty,
		CustomDocumentables:       cfg.Leafdoc.CustomDocumentables,
		Styles:                    cfg.StyleMap(),
		Logger:                    logger,
	}

	if cfg.Cache.Enabled {
		dir := cfg.Cache.Directory
		if dir == "" {
			dir = config.CacheDir()
		}
		c, err := cache.NewBadgerCache(cache.Options{Directory: utils.ExpandPath(dir), Logger: logger})
		if err != nil {
			// parsing works without the cache
			o.logger.Warn().Err(err).Str("directory", dir).Msg("Cache disabled")
		} else {
			o.cache = c
			sessionOpts.Cache = c
			sessionOpts.CacheTTL = cfg.Cache.TTL
		}
	}

	session, err := leafdoc.New(sessionOpts)
	if err != nil {
		_ = o.Close()
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	o.session = session

	return o, nil
}

type readResult struct {
	path string
	text string
}

// Run parses inputs and writes the rendered documentation. Inputs that
// fail structurally are skipped; the output is still written and the
// failures are returned afterwards.
func (o *Orchestrator) Run(ctx context.Context, inputs []string) error {
	startTime := time.Now()

	files, err := CollectFiles(inputs, o.config.Sources.Extensions)
	if err != nil {
		return err
	}

	o.logger.Info().
		Int("files", len(files)).
		Str("format", o.config.Output.Format).
		Int("concurrency", o.config.Concurrency.Workers).
		Msg("Starting documentation run")

	reads, readErrs := utils.ParallelMap(ctx, files, o.config.Concurrency.Workers, func(ctx context.Context, path string) (readResult, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return readResult{}, fmt.Errorf("failed to read %s: %w", path, err)
		}
		return readResult{path: path, text: string(data)}, nil
	})
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := utils.FirstError(readErrs); err != nil {
		return err
	}

	var bar interface{ Add(int) error }
	if o.progress != nil && len(files) >= progressThreshold {
		pb := utils.NewProgressBar(o.progress, len(files), utils.DescParsing)
		defer pb.Finish()
		bar = pb
	}

	// sources are applied in input order so the tree order is stable
	var failed []error
	for _, r := range reads {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := o.session.AddSource(ctx, domain.Source{Name: r.path, Text: r.text}); err != nil {
			if !domain.IsStructural(err) {
				return err
			}
			failed = append(failed, err)
		}
		if bar != nil {
			_ = bar.Add(1)
		}
	}

	out, err := o.session.Output(o.config.Output.Format)
	if err != nil {
		return err
	}
	if err := o.writer.Write(ctx, out); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	o.reportDiagnostics()

	o.logger.Info().
		Int("namespaces", o.session.Namespaces().Len()).
		Int("diagnostics", len(o.session.Diagnostics())).
		Str("output", o.outputName()).
		Dur("duration", time.Since(startTime)).
		Msg("Documentation run completed")

	if len(failed) > 0 {
		return fmt.Errorf("%d input(s) could not be parsed: %w", len(failed), errors.Join(failed...))
	}
	return nil
}

// reportDiagnostics logs a non-blocking summary of parse problems
func (o *Orchestrator) reportDiagnostics() {
	for _, d := range o.session.Diagnostics() {
		ev := o.logger.Warn()
		if d.Severity == domain.SeverityError {
			ev = o.logger.Error()
		}
		ev.Str("source", d.Source).
			Int("block", d.Block).
			Int("line", d.Line).
			Str("directive", d.Kind).
			Str("content", d.Content).
			Msg(d.Message)
	}
}

func (o *Orchestrator) outputName() string {
	if o.writer.Path() == "" {
		return "stdout"
	}
	return o.writer.Path()
}

// Session returns the documentation session
func (o *Orchestrator) Session() *leafdoc.Leafdoc {
	return o.session
}

// Diagnostics returns every problem reported during the run
func (o *Orchestrator) Diagnostics() []domain.Diagnostic {
	return o.session.Diagnostics()
}

// Close releases all resources held by the orchestrator
func (o *Orchestrator) Close() error {
	if o.cache != nil {
		err := o.cache.Close()
		o.cache = nil
		return err
	}
	return nil
}
