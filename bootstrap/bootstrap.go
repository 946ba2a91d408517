// Package bootstrap wires configuration, adapters, and collectors into
// a runnable catalog build.
package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/modelcat/modelcat/adapters/csvfile"
	"github.com/modelcat/modelcat/adapters/manifest"
	"github.com/modelcat/modelcat/adapters/webcache"
	"github.com/modelcat/modelcat/config"
	"github.com/modelcat/modelcat/core/catalog"
	"github.com/modelcat/modelcat/ports"
)

// App holds the wired build pipeline for one invocation. The object
// pool and parameter master live inside a single Run call; nothing is
// shared across invocations.
type App struct {
	cfg     *config.Config
	fetcher ports.Fetcher
	source  ports.Source
	writer  *csvfile.Writer
	runID   string

	Logger zerolog.Logger
}

// Summary reports what a build produced.
type Summary struct {
	RunID    string
	Library  string
	Duration time.Duration
	Rows     map[string]int
	CSVPaths map[string]string
	TreeRoot string
}

// New creates an application with the manifest descriptor source named
// by the configuration.
func New(cfg *config.Config) (*App, error) {
	logger, runID := setupLogger(cfg)

	src, err := manifest.Load(cfg.Source.ManifestDir, logger)
	if err != nil {
		return nil, fmt.Errorf("load descriptors: %w", err)
	}

	return newApp(cfg, src, logger, runID), nil
}

// NewWithSource creates an application around a caller-supplied
// descriptor source. Embedding programs that already hold their
// library's metadata use this instead of manifest files.
func NewWithSource(cfg *config.Config, src ports.Source) *App {
	logger, runID := setupLogger(cfg)
	return newApp(cfg, src, logger, runID)
}

func newApp(cfg *config.Config, src ports.Source, logger zerolog.Logger, runID string) *App {
	return &App{
		cfg: cfg,
		fetcher: webcache.New(webcache.Config{
			Timeout: cfg.Docs.Timeout,
			Logger:  logger,
		}),
		source: src,
		writer: csvfile.New(logger),
		runID:  runID,
		Logger: logger,
	}
}

// Run executes one full build: fetch the documentation pages, build
// the catalog and normalized auto-model tables, and write every table
// as CSV plus the grouped catalog tree. Steps run strictly in
// sequence; a fetch failure is fatal, everything downstream recovers
// per table-row semantics.
func (a *App) Run(ctx context.Context) (*Summary, error) {
	start := time.Now()
	cfg := a.cfg

	html, err := a.fetcher.Fetch(ctx, cfg.Docs.ModelsURL,
		filepath.Join(cfg.Cache.Dir, "models.html"), cfg.Cache.Force)
	if err != nil {
		return nil, fmt.Errorf("fetch models page: %w", err)
	}

	// Cached for future diffing; contents are not parsed yet.
	if _, err := a.fetcher.Fetch(ctx, cfg.Docs.LlmsURL,
		filepath.Join(cfg.Cache.Dir, "llms.txt"), cfg.Cache.Force); err != nil {
		return nil, fmt.Errorf("fetch llms index: %w", err)
	}

	famMap := catalog.ParseFamilyMap(html)
	a.Logger.Debug().Int("families", len(famMap)).Msg("taxonomy parsed")

	res := catalog.BuildCatalog(a.source.Modules(), a.source.AutoModules(), famMap, a.Logger)
	af := catalog.CollectAuto(a.source.AutoModules(), a.Logger)

	catTable := catalog.CatalogTable(res.Catalog)
	tables := []catalog.Table{
		catTable,
		catalog.ImportErrorsTable(res.ImportErrors),
	}
	tables = append(tables, af.Tables()...)

	paths, err := a.writer.WriteAll(cfg.Output.Dir, tables)
	if err != nil {
		return nil, fmt.Errorf("write tables: %w", err)
	}

	_, treeRoot, err := a.writer.WriteTree(filepath.Join(cfg.Output.Dir, "tree"),
		catalog.TableCatalog, catTable, cfg.Output.Tree.GroupBy)
	if err != nil {
		return nil, fmt.Errorf("write catalog tree: %w", err)
	}

	summary := &Summary{
		RunID:    a.runID,
		Library:  cfg.Library,
		Duration: time.Since(start),
		Rows:     make(map[string]int, len(tables)),
		CSVPaths: paths,
		TreeRoot: treeRoot,
	}
	for _, t := range tables {
		summary.Rows[t.Name] = len(t.Rows)
	}

	a.Logger.Info().
		Str("library", summary.Library).
		Int("catalog_rows", summary.Rows[catalog.TableCatalog]).
		Int("import_errors", summary.Rows[catalog.TableImportErrors]).
		Int("objects", summary.Rows[catalog.TableAFObjects]).
		Dur("duration", summary.Duration).
		Msg("build complete")

	return summary, nil
}

// setupLogger builds the process logger from config and tags it with a
// fresh run id.
func setupLogger(cfg *config.Config) (zerolog.Logger, string) {
	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	var logger zerolog.Logger
	if cfg.Logging.Format == "console" {
		output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		logger = zerolog.New(output).With().Timestamp().Logger()
	} else {
		logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}

	runID := uuid.New().String()
	return logger.With().Str("run_id", runID).Logger(), runID
}
