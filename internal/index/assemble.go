package index

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"path/filepath"
	"strings"

	"github.com/pemistahl/lingua-go"

	"github.com/daehokim/noteindex/models"
	"github.com/daehokim/noteindex/pkg/cache"
	"github.com/daehokim/noteindex/pkg/extract"
	"github.com/daehokim/noteindex/pkg/keywords"
	"github.com/daehokim/noteindex/pkg/storage"
	"github.com/daehokim/noteindex/pkg/tagging"
	"golang.org/x/text/unicode/norm"
)

// attachmentKeywordLimit caps the per-attachment keyword list.
const attachmentKeywordLimit = 20

// summaryNameWords is how many name keywords form the name summary.
const summaryNameWords = 12

// Assembler builds the three record variants for one manifest entry,
// applying the cache freshness policy for the active emit modes.
type Assembler struct {
	Root       string
	Cache      *cache.Store
	Registry   *extract.Registry
	Classifier *tagging.Classifier
	Stopwords  keywords.Stopwords
	Detector   lingua.LanguageDetector // nil disables language detection
	Logger     *slog.Logger

	KName   int
	KHTML   int
	KAttach int

	OCR             bool
	OnlyAttachments bool
	Emit            models.EmitSet
}

// Process assembles the three variants for entry. Any failure inside
// one record, including a panic from a sub-step, is contained here and
// reported as an error so the batch can continue.
func (a *Assembler) Process(ctx context.Context, entry models.ManifestEntry) (name models.NameRecord, html models.HTMLRecord, attach models.AttachRecord, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("record %q failed: %v", entry.HTMLFile, rec)
		}
	}()

	id := norm.NFC.String(entry.HTMLFile)
	folder := norm.NFC.String(entry.Folder)

	htmlRel := id + ".html"
	htmlPath := filepath.Join(a.Root, filepath.FromSlash(htmlRel))
	bodyExists := storage.FileExists(htmlPath)
	opts := extract.Options{OCR: a.OCR, OnlyAttachments: a.OnlyAttachments}

	bodyText := a.refreshBodyCache(ctx, id, htmlPath, bodyExists, opts)

	// Filename keywords are derived from the identifier's leaf segment
	// and computed on every run regardless of mode.
	leaf := path.Base(htmlRel)
	stem := strings.TrimSuffix(leaf, path.Ext(leaf))
	keywordsName := keywords.Top(stem, a.KName, a.Stopwords)
	summaryName := strings.Join(firstN(keywordsName, summaryNameWords), " ")

	keywordsHTML := []string{}
	summaryHTML := ""
	if a.Emit.Has(models.EmitHTML) {
		if bodyText != "" {
			keywordsHTML = keywords.Top(bodyText, a.KHTML, a.Stopwords)
		}
		summaryHTML = keywords.Summarize(bodyText, keywords.DefaultSummaryBudget)
	}

	keywordsAttach := []string{}
	summaryFile := ""
	attachments := []models.Attachment{}
	if a.Emit.Has(models.EmitAttach) {
		attachments, keywordsAttach, summaryFile = a.processAttachments(ctx, id, htmlPath, entry.Files, opts)
	}

	core := models.RecordCore{
		HTMLFile: id,
		Folder:   folder,
		Tags:     a.Classifier.Tags(leaf),
		Subtags:  a.Classifier.Subtags(entry.Files),
		Date:     tagging.Date(htmlRel),
		Lang:     a.detectLang(bodyText, stem),
		Source: models.Source{
			HTMLPath: htmlRel,
			FilesDir: id + " files/",
		},
	}
	if bodyExists {
		ref := cache.Ref(cache.BodyName(id))
		core.HTMLTextRef = &ref
	}

	name = models.NameRecord{RecordCore: core, KeywordsName: keywordsName, SummaryName: summaryName}
	html = models.HTMLRecord{RecordCore: core, KeywordsHTML: keywordsHTML, SummaryHTML: summaryHTML}
	attach = models.AttachRecord{RecordCore: core, KeywordsAttach: keywordsAttach, SummaryFile: summaryFile, Attachments: attachments}
	return name, html, attach, nil
}

// refreshBodyCache applies the emit-mode freshness policy to the body
// cache and returns whatever body text the active modes need:
//
//	name:   always re-extract and overwrite, even when extraction
//	        failed and the new text is empty
//	html:   create the cache only if absent; read it back for keywords
//	attach: create the cache only if absent
func (a *Assembler) refreshBodyCache(ctx context.Context, id, htmlPath string, bodyExists bool, opts extract.Options) string {
	if !bodyExists {
		return ""
	}
	bodyName := cache.BodyName(id)

	var bodyText string
	if a.Emit.Has(models.EmitName) {
		bodyText = a.Registry.Text(ctx, htmlPath, "html", opts)
		if _, err := a.Cache.Write(bodyName, bodyText, true); err != nil {
			a.Logger.Warn("body cache write failed", "id", id, "error", err)
		}
	} else if a.Emit.Has(models.EmitHTML) || a.Emit.Has(models.EmitAttach) {
		if !a.Cache.Has(bodyName) {
			bodyText = a.Registry.Text(ctx, htmlPath, "html", opts)
			if _, err := a.Cache.Write(bodyName, bodyText, false); err != nil {
				a.Logger.Warn("body cache write failed", "id", id, "error", err)
			}
		}
	}

	if a.Emit.Has(models.EmitHTML) {
		if a.Cache.Has(bodyName) {
			if cached, err := a.Cache.Read(bodyName); err == nil {
				bodyText = cached
			}
		}
		// A cache that reads back empty gets one fresh extraction.
		if bodyText == "" {
			bodyText = a.Registry.Text(ctx, htmlPath, "html", opts)
			if _, err := a.Cache.Write(bodyName, bodyText, true); err != nil {
				a.Logger.Warn("body cache write failed", "id", id, "error", err)
			}
		}
	}
	return bodyText
}

// processAttachments extracts every attachment, always refreshing the
// attachment caches, and aggregates the combined keywords and summary.
// A missing source file produces no cache file and a nil text ref.
func (a *Assembler) processAttachments(ctx context.Context, id, htmlPath string, files []string, opts extract.Options) ([]models.Attachment, []string, string) {
	attachDir := strings.TrimSuffix(htmlPath, ".html") + " files"

	attachments := make([]models.Attachment, 0, len(files))
	var texts []string
	for _, fn := range files {
		ftype := extract.TypeOf(fn)
		rawPath := filepath.Join(attachDir, fn)

		var text string
		var textRef *string
		if storage.FileExists(rawPath) {
			if ftype != "html" || !a.OnlyAttachments {
				text = a.Registry.Text(ctx, rawPath, ftype, opts)
			}
			cacheName := cache.AttachmentName(id, fn)
			if _, err := a.Cache.Write(cacheName, text, true); err != nil {
				a.Logger.Warn("attachment cache write failed", "id", id, "file", fn, "error", err)
			}
			ref := cache.Ref(cacheName)
			textRef = &ref
		}

		texts = append(texts, text)
		kw := []string{}
		if text != "" {
			kw = keywords.Top(text, attachmentKeywordLimit, a.Stopwords)
		}
		attachments = append(attachments, models.Attachment{
			Filename: fn,
			Type:     ftype,
			Keywords: kw,
			TextRef:  textRef,
		})
	}

	combined := strings.TrimSpace(strings.Join(texts, " "))
	keywordsAttach := []string{}
	if combined != "" {
		keywordsAttach = keywords.Top(combined, a.KAttach, a.Stopwords)
	}
	return attachments, keywordsAttach, keywords.Summarize(combined, keywords.DefaultSummaryBudget)
}

func (a *Assembler) detectLang(bodyText, fallback string) string {
	if a.Detector == nil {
		return ""
	}
	sample := bodyText
	if sample == "" {
		sample = fallback
	}
	if sample == "" {
		return ""
	}
	lang, detected := a.Detector.DetectLanguageOf(sample)
	if !detected {
		return ""
	}
	switch lang {
	case lingua.Korean:
		return "ko"
	case lingua.English:
		return "en"
	}
	return ""
}

func firstN(s []string, n int) []string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
