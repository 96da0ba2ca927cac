package tagging

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func newTestClassifier(t *testing.T) *Classifier {
	t.Helper()
	c, err := NewClassifier()
	if err != nil {
		t.Fatalf("NewClassifier() error = %v", err)
	}
	return c
}

func TestTags(t *testing.T) {
	c := newTestClassifier(t)

	tests := []struct {
		name string
		leaf string
		want []string
	}{
		{
			name: "dev keyword",
			leaf: "Android Webview 정리.html",
			want: []string{"tech/dev"},
		},
		{
			name: "case-insensitive match",
			leaf: "javascript snippets.html",
			want: []string{"tech/dev"},
		},
		{
			name: "multiple rules sorted",
			leaf: "NAS 계약서 정리.html",
			want: []string{"hardware/it", "legal/admin"},
		},
		{
			name: "duplicate matches deduplicated",
			leaf: "가족 여권 사진.html",
			want: []string{"life/family"},
		},
		{
			name: "no match",
			leaf: "Note.html",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Tags(tt.leaf)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tags(%q) = %v, want %v", tt.leaf, got, tt.want)
			}
		})
	}
}

func TestSubtags(t *testing.T) {
	c := newTestClassifier(t)

	tests := []struct {
		name  string
		files []string
		want  []string
	}{
		{
			name:  "mixed attachments sorted",
			files: []string{"a.pdf", "b.hwp", "c.jpg", "d.JPG"},
			want:  []string{"has_hanword", "has_images", "has_pdf"},
		},
		{
			name:  "spreadsheet and archive",
			files: []string{"data.xlsx", "old.zip"},
			want:  []string{"has_archives", "has_spreadsheet"},
		},
		{
			name:  "unknown extensions",
			files: []string{"a.xyz", "README"},
			want:  []string{},
		},
		{
			name:  "no attachments",
			files: nil,
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Subtags(tt.files)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Subtags(%v) = %v, want %v", tt.files, got, tt.want)
			}
		})
	}
}

func TestDate(t *testing.T) {
	tests := []struct {
		name       string
		identifier string
		want       string
		wantNil    bool
	}{
		{
			name:       "full date preferred",
			identifier: "diary/2020-01-15 아침 메모.html",
			want:       "2020-01-15",
		},
		{
			name:       "bare year fallback",
			identifier: "archive/세금 2019 정리.html",
			want:       "2019",
		},
		{
			name:       "full date beats earlier bare year",
			identifier: "2018 backup/2020-01-15 note.html",
			want:       "2020-01-15",
		},
		{
			name:       "no date",
			identifier: "Folder/Note.html",
			wantNil:    true,
		},
		{
			name:       "year outside plausible range",
			identifier: "notes/room 1204.html",
			wantNil:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Date(tt.identifier)
			if tt.wantNil {
				if got != nil {
					t.Errorf("Date(%q) = %q, want nil", tt.identifier, *got)
				}
				return
			}
			if got == nil || *got != tt.want {
				t.Errorf("Date(%q) = %v, want %q", tt.identifier, got, tt.want)
			}
		})
	}
}

func TestLoadClassifier(t *testing.T) {
	dir := t.TempDir()
	rulesPath := filepath.Join(dir, "rules.yaml")
	rules := `
rules:
  - pattern: invoice
    tag: finance
subtags:
  has_video: [mp4, mkv]
`
	if err := os.WriteFile(rulesPath, []byte(rules), 0600); err != nil {
		t.Fatalf("failed to write rules fixture: %v", err)
	}

	c, err := LoadClassifier(rulesPath)
	if err != nil {
		t.Fatalf("LoadClassifier() error = %v", err)
	}

	if got := c.Tags("Invoice March.html"); !reflect.DeepEqual(got, []string{"finance"}) {
		t.Errorf("Tags() = %v, want [finance]", got)
	}
	// Custom table replaces the default wholesale.
	if got := c.Tags("Android note.html"); len(got) != 0 {
		t.Errorf("Tags() = %v, want none for default rule", got)
	}
	if got := c.Subtags([]string{"clip.mp4", "doc.pdf"}); !reflect.DeepEqual(got, []string{"has_video"}) {
		t.Errorf("Subtags() = %v, want [has_video]", got)
	}
}

func TestLoadClassifierInvalidPattern(t *testing.T) {
	dir := t.TempDir()
	rulesPath := filepath.Join(dir, "rules.yaml")
	if err := os.WriteFile(rulesPath, []byte("rules:\n  - pattern: '('\n    tag: broken\n"), 0600); err != nil {
		t.Fatalf("failed to write rules fixture: %v", err)
	}

	if _, err := LoadClassifier(rulesPath); err == nil {
		t.Error("LoadClassifier() expected error for invalid pattern")
	}
}
