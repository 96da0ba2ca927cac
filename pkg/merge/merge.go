// Package merge folds the three per-variant index collections into one
// authoritative record per (identifier, folder) key.
//
// The fold order is fixed: name first, then body, then attach. Scalar
// fields keep the first non-empty value, so the name variant outranks
// body, which outranks attach. Set-valued fields accumulate as unions
// and are order-insensitive.
package merge

import (
	"sort"

	"github.com/daehokim/noteindex/models"
)

type key struct {
	htmlFile string
	folder   string
}

// Records merges the three variant collections. Collections excluded by
// the emit mode of the producing run may be empty; they simply
// contribute nothing.
func Records(names []models.NameRecord, htmls []models.HTMLRecord, attaches []models.AttachRecord) []models.MergedRecord {
	acc := make(map[key]*models.MergedRecord)
	var order []key

	get := func(core models.RecordCore) *models.MergedRecord {
		k := key{htmlFile: core.HTMLFile, folder: core.Folder}
		if m, seen := acc[k]; seen {
			return m
		}
		m := &models.MergedRecord{HTMLFile: core.HTMLFile, Folder: core.Folder}
		acc[k] = m
		order = append(order, k)
		return m
	}

	for _, r := range names {
		m := get(r.RecordCore)
		foldCore(m, r.RecordCore)
		m.KeywordsName = r.KeywordsName
		m.SummaryName = r.SummaryName
	}
	for _, r := range htmls {
		m := get(r.RecordCore)
		foldCore(m, r.RecordCore)
		m.KeywordsHTML = r.KeywordsHTML
		m.SummaryHTML = r.SummaryHTML
	}
	for _, r := range attaches {
		m := get(r.RecordCore)
		foldCore(m, r.RecordCore)
		m.KeywordsAttach = r.KeywordsAttach
		m.SummaryFile = r.SummaryFile
		m.Attachments = unionAttachments(m.Attachments, r.Attachments)
	}

	out := make([]models.MergedRecord, 0, len(order))
	for _, k := range order {
		out = append(out, *acc[k])
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Folder != out[j].Folder {
			return out[i].Folder < out[j].Folder
		}
		return out[i].HTMLFile < out[j].HTMLFile
	})
	return out
}

// foldCore applies the shared-field reducers: first non-empty wins for
// scalars, field-by-field fill for source, set union for tags/subtags.
func foldCore(dst *models.MergedRecord, src models.RecordCore) {
	fillString(&dst.Lang, src.Lang)
	fillOptional(&dst.Date, src.Date)
	fillOptional(&dst.HTMLTextRef, src.HTMLTextRef)
	fillString(&dst.Source.HTMLPath, src.Source.HTMLPath)
	fillString(&dst.Source.FilesDir, src.Source.FilesDir)
	dst.Tags = unionSorted(dst.Tags, src.Tags)
	dst.Subtags = unionSorted(dst.Subtags, src.Subtags)
}

func fillString(dst *string, src string) {
	if *dst == "" && src != "" {
		*dst = src
	}
}

func fillOptional(dst **string, src *string) {
	if *dst == nil && src != nil && *src != "" {
		v := *src
		*dst = &v
	}
}

// unionSorted returns the sorted, deduplicated union of two sets.
func unionSorted(cur, add []string) []string {
	if len(cur) == 0 && len(add) == 0 {
		return cur
	}
	seen := make(map[string]struct{}, len(cur)+len(add))
	for _, s := range cur {
		seen[s] = struct{}{}
	}
	for _, s := range add {
		seen[s] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// unionAttachments appends entries not already present, keyed by
// (filename, text_ref), preserving first-seen order.
func unionAttachments(cur, add []models.Attachment) []models.Attachment {
	type attKey struct {
		filename string
		textRef  string
		hasRef   bool
	}
	keyOf := func(a models.Attachment) attKey {
		k := attKey{filename: a.Filename}
		if a.TextRef != nil {
			k.textRef = *a.TextRef
			k.hasRef = true
		}
		return k
	}

	seen := make(map[attKey]struct{}, len(cur))
	for _, a := range cur {
		seen[keyOf(a)] = struct{}{}
	}
	for _, a := range add {
		k := keyOf(a)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		cur = append(cur, a)
	}
	return cur
}
