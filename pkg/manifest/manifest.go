// Package manifest loads the note enumeration produced by the external
// file-collection step.
package manifest

import (
	"fmt"

	"github.com/daehokim/noteindex/models"
	"github.com/daehokim/noteindex/pkg/storage"
)

// Load reads a files_info.json manifest: an ordered array of note
// descriptors. Order is preserved; duplicate identifiers are allowed
// and produce independent records.
func Load(path string) ([]models.ManifestEntry, error) {
	var entries []models.ManifestEntry
	if err := storage.ReadJSON(path, &entries); err != nil {
		return nil, fmt.Errorf("failed to load manifest: %w", err)
	}
	return entries, nil
}
