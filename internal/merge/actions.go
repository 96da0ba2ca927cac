// Package merge implements the "merge" command: it folds the three
// per-variant index collections into content_index.json.
package merge

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/daehokim/noteindex/models"
	"github.com/daehokim/noteindex/pkg/merge"
	"github.com/daehokim/noteindex/pkg/storage"
)

func Action(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	var names []models.NameRecord
	var htmls []models.HTMLRecord
	var attaches []models.AttachRecord
	loadCollection(logger, c.String("name"), &names)
	loadCollection(logger, c.String("html"), &htmls)
	loadCollection(logger, c.String("attach"), &attaches)

	merged := merge.Records(names, htmls, attaches)

	outPath := c.String("out")
	if err := storage.WriteJSON(outPath, merged); err != nil {
		return fmt.Errorf("failed to write merged index: %w", err)
	}
	logger.Info("merged index written", "path", outPath, "records", len(merged))
	return nil
}

// loadCollection reads one variant collection. A missing or unreadable
// collection is only a warning: runs that emitted a subset of variants
// are expected.
func loadCollection[T any](logger *slog.Logger, path string, dst *[]T) {
	if !storage.FileExists(path) {
		logger.Warn("collection not found, skipping", "path", path)
		return
	}
	if err := storage.ReadJSON(path, dst); err != nil {
		logger.Warn("collection unreadable, skipping", "path", path, "error", err)
		*dst = nil
	}
}
