// Package models defines the data shapes shared across the indexing pipeline.
package models

// ManifestEntry mirrors one element of the collector's files_info.json.
// HTMLFile is the note identifier: a slash-joined path without extension.
type ManifestEntry struct {
	HTMLFile string   `json:"html_file"`
	Folder   string   `json:"folder"`
	Files    []string `json:"files"`
}

// Source locates a note's body file and attachment directory relative to
// the archive root.
type Source struct {
	HTMLPath string `json:"html_path"`
	FilesDir string `json:"files_dir"`
}

// Attachment describes one attached file and the text extracted from it.
// TextRef is nil when the source file was absent at assembly time.
type Attachment struct {
	Filename string   `json:"filename"`
	Type     string   `json:"type"`
	Keywords []string `json:"keywords"`
	TextRef  *string  `json:"text_ref"`
}

// RecordCore holds the fields common to all three record variants.
// Tags and Subtags are always sorted, deduplicated sets. HTMLTextRef is
// nil exactly when the note's body file did not exist on disk.
type RecordCore struct {
	HTMLFile    string   `json:"html_file"`
	Folder      string   `json:"folder"`
	Tags        []string `json:"tags"`
	Subtags     []string `json:"subtags"`
	Date        *string  `json:"date"`
	Lang        string   `json:"lang"`
	Source      Source   `json:"source"`
	HTMLTextRef *string  `json:"html_text_ref"`
}

// NameRecord is the filename-derived variant.
type NameRecord struct {
	RecordCore
	KeywordsName []string `json:"keywords_name"`
	SummaryName  string   `json:"summary_name"`
}

// HTMLRecord is the note-body variant.
type HTMLRecord struct {
	RecordCore
	KeywordsHTML []string `json:"keywords_html"`
	SummaryHTML  string   `json:"summary_html"`
}

// AttachRecord is the attachment-derived variant.
type AttachRecord struct {
	RecordCore
	KeywordsAttach []string     `json:"keywords_attach"`
	SummaryFile    string       `json:"summary_file"`
	Attachments    []Attachment `json:"attachments"`
}

// MergedRecord is the union of the three variants for one (html_file,
// folder) key. Variant-specific fields are omitted when no input
// collection contributed them.
type MergedRecord struct {
	HTMLFile       string       `json:"html_file"`
	Folder         string       `json:"folder"`
	Tags           []string     `json:"tags"`
	Subtags        []string     `json:"subtags"`
	Date           *string      `json:"date"`
	Lang           string       `json:"lang,omitempty"`
	Source         Source       `json:"source"`
	HTMLTextRef    *string      `json:"html_text_ref"`
	KeywordsName   []string     `json:"keywords_name,omitempty"`
	SummaryName    string       `json:"summary_name,omitempty"`
	KeywordsHTML   []string     `json:"keywords_html,omitempty"`
	SummaryHTML    string       `json:"summary_html,omitempty"`
	KeywordsAttach []string     `json:"keywords_attach,omitempty"`
	SummaryFile    string       `json:"summary_file,omitempty"`
	Attachments    []Attachment `json:"attachments,omitempty"`
}
