// Package extract dispatches text extraction by file type tag. The
// external contract is strict: extraction never fails. Missing
// capabilities, corrupt files, and unsupported formats all yield empty
// text; the reason is kept for diagnostics only.
package extract

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
)

// Reason classifies why an extraction produced no text.
type Reason int

const (
	OK Reason = iota
	CapabilityMissing
	InputMalformed
	Unsupported
)

func (r Reason) String() string {
	switch r {
	case OK:
		return "ok"
	case CapabilityMissing:
		return "capability_missing"
	case InputMalformed:
		return "input_malformed"
	case Unsupported:
		return "unsupported"
	}
	return "unknown"
}

// Result is the internal outcome of one extraction. Text is empty
// whenever Reason is not OK.
type Result struct {
	Text   string
	Reason Reason
}

func ok(text string) Result       { return Result{Text: text} }
func failed(reason Reason) Result { return Result{Reason: reason} }

// Options tunes extraction behavior for a run.
type Options struct {
	// OCR enables image text recognition when the OCR tool is present.
	OCR bool
	// OnlyAttachments suppresses HTML extraction inside archives, so an
	// attached exported note page cannot trigger unbounded expansion.
	OnlyAttachments bool
}

// Extractor extracts plain text from one file format.
type Extractor interface {
	Extract(ctx context.Context, path string, opts Options) Result
}

// Registry maps type tags to extractors. Adding a format means adding
// one implementation and one table entry.
type Registry struct {
	logger *slog.Logger
	caps   Capabilities
	byTag  map[string]Extractor
}

// NewRegistry builds a registry with capabilities detected from the
// environment.
func NewRegistry(logger *slog.Logger) *Registry {
	return NewRegistryWithCapabilities(logger, DetectCapabilities())
}

// NewRegistryWithCapabilities builds a registry with explicit
// capabilities; tests use it to simulate absent tools.
func NewRegistryWithCapabilities(logger *slog.Logger, caps Capabilities) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Registry{logger: logger, caps: caps}
	htmlx := &htmlExtractor{}
	docx := &docxExtractor{}
	r.byTag = map[string]Extractor{
		"html":  htmlx,
		"pdf":   &pdfExtractor{},
		"docx":  docx,
		"doc":   docx,
		"text":  &textExtractor{},
		"image": &imageExtractor{caps: caps},
		"sheet": &sheetExtractor{},
		"zip":   &archiveExtractor{registry: r},
		"hwp":   &hwpExtractor{caps: caps},
		"hwpx":  &hwpxExtractor{},
		"mhtml": &mhtmlExtractor{html: htmlx},
	}
	return r
}

// Text extracts plain text from path, dispatching on the type tag. On
// any internal failure it returns an empty string, never an error.
func (r *Registry) Text(ctx context.Context, path, tag string, opts Options) string {
	res := r.Extract(ctx, path, tag, opts)
	if res.Reason != OK {
		r.logger.Debug("extraction yielded no text", "path", path, "type", tag, "reason", res.Reason.String())
	}
	return res.Text
}

// Extract runs the extractor for tag with a panic guard, so a
// misbehaving format library degrades to empty output like any other
// per-source failure.
func (r *Registry) Extract(ctx context.Context, path, tag string, opts Options) (res Result) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Debug("extractor panicked", "path", path, "type", tag, "panic", rec)
			res = failed(InputMalformed)
		}
	}()

	ex, known := r.byTag[tag]
	if !known {
		return failed(Unsupported)
	}
	return ex.Extract(ctx, path, opts)
}

var typeTags = map[string]string{
	"pdf": "pdf",
	"docx": "docx", "doc": "doc",
	"jpg": "image", "jpeg": "image", "png": "image", "gif": "image",
	"bmp": "image", "tiff": "image", "webp": "image",
	"txt": "text", "csv": "text", "tsv": "text", "md": "text",
	"log": "text", "json": "text",
	"mht": "mhtml", "mhtml": "mhtml",
	"xlsx": "sheet", "xls": "sheet",
	"zip":  "zip",
	"hwp":  "hwp", "hwpx": "hwpx",
	"html": "html", "htm": "html",
}

// TypeOf derives a file's type tag from its extension. Unknown
// extensions map to the extension itself, empty ones to "file".
func TypeOf(name string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if tag, known := typeTags[ext]; known {
		return tag
	}
	if ext == "" {
		return "file"
	}
	return ext
}
