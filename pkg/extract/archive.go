package extract

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// maxArchiveEntryBytes caps how much of a single archive entry is
// unpacked to scratch space.
const maxArchiveEntryBytes = 64 << 20

// Tags dispatched for entries inside an archive. Nested archives are
// deliberately absent: one level of expansion only.
var archiveNestedTags = map[string]struct{}{
	"pdf": {}, "docx": {}, "doc": {}, "text": {}, "sheet": {},
	"hwpx": {}, "hwp": {}, "html": {}, "image": {},
}

// archiveExtractor unpacks zip entries to a scratch directory and
// dispatches each back through the registry by the entry's extension.
// Scratch files are removed on every exit path.
type archiveExtractor struct {
	registry *Registry
}

func (e *archiveExtractor) Extract(ctx context.Context, path string, opts Options) Result {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return failed(InputMalformed)
	}
	defer zr.Close()

	scratch, err := os.MkdirTemp("", "noteindex-zip-")
	if err != nil {
		return failed(InputMalformed)
	}
	defer os.RemoveAll(scratch)

	var parts []string
	for i, entry := range zr.File {
		if ctx.Err() != nil {
			break
		}
		if entry.FileInfo().IsDir() {
			continue
		}
		tag := TypeOf(entry.Name)
		if _, dispatchable := archiveNestedTags[tag]; !dispatchable {
			continue
		}
		if tag == "html" && opts.OnlyAttachments {
			// An attached exported note page would recurse into its own
			// attachments without this suppression.
			continue
		}

		tmp := filepath.Join(scratch, fmt.Sprintf("entry%d%s", i, strings.ToLower(filepath.Ext(entry.Name))))
		if err := unpackEntry(entry, tmp); err != nil {
			continue
		}
		if text := e.registry.Text(ctx, tmp, tag, opts); text != "" {
			parts = append(parts, text)
		}
		os.Remove(tmp)
	}
	return ok(Normalize(strings.Join(parts, " ")))
}

func unpackEntry(entry *zip.File, dst string) error {
	rc, err := entry.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, maxArchiveEntryBytes))
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0600)
}
