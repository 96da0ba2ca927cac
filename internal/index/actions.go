// Package index implements the "index" command: it walks the manifest,
// extracts and caches text, and writes the three per-variant index
// collections.
package index

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pemistahl/lingua-go"
	"github.com/urfave/cli/v2"

	"github.com/daehokim/noteindex/models"
	"github.com/daehokim/noteindex/pkg/cache"
	"github.com/daehokim/noteindex/pkg/extract"
	"github.com/daehokim/noteindex/pkg/keywords"
	"github.com/daehokim/noteindex/pkg/manifest"
	"github.com/daehokim/noteindex/pkg/storage"
	"github.com/daehokim/noteindex/pkg/tagging"
)

// Output collection names under the output directory.
const (
	NameIndexFile   = "content_index_for_name.json"
	HTMLIndexFile   = "content_index_for_html.json"
	AttachIndexFile = "content_index_for_attach.json"
)

func Action(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	cfg, err := loadConfig(c, logger)
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(2)
	}

	entries, err := manifest.Load(cfg.ManifestPath)
	if err != nil {
		logger.Error("failed to load manifest", "path", cfg.ManifestPath, "error", err)
		os.Exit(2)
	}

	store, err := cache.NewStore(cfg.OutDir)
	if err != nil {
		logger.Error("failed to initialize cache store", "error", err)
		os.Exit(2)
	}

	stop := keywords.DefaultStopwords()
	if cfg.StopwordsPath != "" {
		custom, err := keywords.LoadStopwords(cfg.StopwordsPath)
		if err != nil {
			logger.Warn("stopwords load failed, using default set", "path", cfg.StopwordsPath, "error", err)
		} else {
			stop = custom
		}
	}

	classifier, err := tagging.NewClassifier()
	if err != nil {
		logger.Error("failed to build classifier", "error", err)
		os.Exit(2)
	}
	if cfg.RulesPath != "" {
		custom, err := tagging.LoadClassifier(cfg.RulesPath)
		if err != nil {
			logger.Warn("rules load failed, using built-in tables", "path", cfg.RulesPath, "error", err)
		} else {
			classifier = custom
		}
	}

	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(lingua.Korean, lingua.English).
		Build()

	asm := &Assembler{
		Root:            cfg.Root,
		Cache:           store,
		Registry:        extract.NewRegistry(logger),
		Classifier:      classifier,
		Stopwords:       stop,
		Detector:        detector,
		Logger:          logger,
		KName:           cfg.KName,
		KHTML:           cfg.KHTML,
		KAttach:         cfg.KAttach,
		OCR:             cfg.OCR,
		OnlyAttachments: cfg.OnlyAttachments,
		Emit:            cfg.Emit,
	}

	logger.Info("starting index run",
		"records", len(entries), "emit", cfg.Emit.String(),
		"workers", cfg.WorkerCount, "ocr", cfg.OCR, "dry_run", cfg.DryRun)

	results := runPool(c.Context, logger, asm, entries, cfg.WorkerCount)

	nameRows := []models.NameRecord{}
	htmlRows := []models.HTMLRecord{}
	attachRows := []models.AttachRecord{}
	skipped := 0
	for _, r := range results {
		if r.Err != nil {
			skipped++
			logger.Warn("record skipped", "record", r.ID, "error", r.Err)
			continue
		}
		if cfg.Emit.Has(models.EmitName) {
			nameRows = append(nameRows, r.Name)
		}
		if cfg.Emit.Has(models.EmitHTML) {
			htmlRows = append(htmlRows, r.HTML)
		}
		if cfg.Emit.Has(models.EmitAttach) {
			attachRows = append(attachRows, r.Attach)
		}
	}

	if cfg.DryRun {
		if cfg.Emit.Has(models.EmitName) {
			preview("name", nameRows)
		}
		if cfg.Emit.Has(models.EmitHTML) {
			preview("html", htmlRows)
		}
		if cfg.Emit.Has(models.EmitAttach) {
			preview("attach", attachRows)
		}
		logger.Info("dry run complete", "records", len(entries), "skipped", skipped)
		return nil
	}

	if cfg.Emit.Has(models.EmitName) {
		if err := writeIndex(logger, filepath.Join(cfg.OutDir, NameIndexFile), nameRows, len(nameRows)); err != nil {
			return err
		}
	}
	if cfg.Emit.Has(models.EmitHTML) {
		if err := writeIndex(logger, filepath.Join(cfg.OutDir, HTMLIndexFile), htmlRows, len(htmlRows)); err != nil {
			return err
		}
	}
	if cfg.Emit.Has(models.EmitAttach) {
		if err := writeIndex(logger, filepath.Join(cfg.OutDir, AttachIndexFile), attachRows, len(attachRows)); err != nil {
			return err
		}
	}

	logger.Info("index run finished",
		"processed", len(results)-skipped, "skipped", skipped, "cache_dir", store.Dir())
	return nil
}

// loadConfig validates the CLI flags into an IndexConfig. Invalid emit
// modes, a missing manifest, and a missing root directory are all fatal
// before any work starts.
func loadConfig(c *cli.Context, logger *slog.Logger) (*models.IndexConfig, error) {
	emit, err := models.ParseEmitSet(c.String("emit"))
	if err != nil {
		return nil, err
	}

	root := c.String("root")
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("root directory not found: %s", root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root is not a directory: %s", root)
	}

	manifestPath := c.String("manifest")
	if !storage.FileExists(manifestPath) {
		return nil, fmt.Errorf("manifest not found: %s", manifestPath)
	}

	return &models.IndexConfig{
		Root:            root,
		ManifestPath:    manifestPath,
		OutDir:          c.String("outdir"),
		KName:           c.Int("k-name"),
		KHTML:           c.Int("k-html"),
		KAttach:         c.Int("k-attach"),
		StopwordsPath:   c.String("stopwords"),
		RulesPath:       c.String("rules"),
		OCR:             c.Bool("ocr"),
		OnlyAttachments: c.Bool("only-attachments"),
		Emit:            emit,
		DryRun:          c.Bool("dry-run"),
		WorkerCount:     c.Int("workers"),
	}, nil
}

func writeIndex(logger *slog.Logger, path string, rows any, count int) error {
	if err := storage.WriteJSON(path, rows); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	logger.Info("index written", "path", path, "records", count)
	return nil
}

// preview prints the first records of one variant for --dry-run.
func preview[T any](label string, rows []T) {
	limit := 2
	if len(rows) < limit {
		limit = len(rows)
	}
	data, err := json.MarshalIndent(rows[:limit], "", "  ")
	if err != nil {
		return
	}
	fmt.Printf("[DRY] %s preview:\n%s\n", label, data)
}
