package extract

import (
	"archive/zip"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testRegistry() *Registry {
	// Empty capabilities keep the tests independent of installed tools.
	return NewRegistryWithCapabilities(testLogger(), Capabilities{})
}

func writeFixture(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func writeZipFixture(t *testing.T, name string, entries map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create zip fixture: %v", err)
	}
	zw := zip.NewWriter(f)
	for entry, content := range entries {
		w, err := zw.Create(entry)
		if err != nil {
			t.Fatalf("zip entry %s: %v", entry, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("zip write %s: %v", entry, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close file: %v", err)
	}
	return path
}

func TestTypeOf(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"note.pdf", "pdf"},
		{"Report.DOCX", "docx"},
		{"old.doc", "doc"},
		{"scan.JPG", "image"},
		{"data.csv", "text"},
		{"readme.md", "text"},
		{"page.mht", "mhtml"},
		{"sheet.xlsx", "sheet"},
		{"bundle.zip", "zip"},
		{"letter.hwp", "hwp"},
		{"letter.hwpx", "hwpx"},
		{"index.htm", "html"},
		{"movie.mp4", "mp4"},
		{"Makefile", "file"},
	}
	for _, tt := range tests {
		if got := TypeOf(tt.name); got != tt.want {
			t.Errorf("TypeOf(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"whitespace collapse", "a\t b\n\nc", "a b c"},
		{"nbsp entity removed", "a&nbsp;b", "ab"},
		{"lt entity removed rather than unescaped", "x &lt;tag&gt; y", "x tag> y"},
		{"amp unescaped", "fish &amp; chips", "fish & chips"},
		{"nbsp rune collapsed", "a b", "a b"},
		{"nfc composition", "가가", "가가"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestVisibleText(t *testing.T) {
	markup := `<html><head><title>skip</title><style>.x{}</style></head>
<body>
  <script>var skip = 1;</script>
  <p>Hello</p>
  <div hidden>invisible</div>
  <div style="display: none">invisible</div>
  <span class="sr-only">invisible</span>
  <input type="hidden" value="invisible">
  <p aria-hidden="true">invisible</p>
  <p>World</p>
</body></html>`

	got, err := VisibleText(markup)
	if err != nil {
		t.Fatalf("VisibleText: %v", err)
	}
	if got != "Hello World" {
		t.Errorf("VisibleText = %q, want %q", got, "Hello World")
	}
}

func TestVisibleTextSpaceBetweenBlocks(t *testing.T) {
	got, err := VisibleText("<body><p>one</p><p>two</p></body>")
	if err != nil {
		t.Fatalf("VisibleText: %v", err)
	}
	if got != "one two" {
		t.Errorf("VisibleText = %q, want %q", got, "one two")
	}
}

func TestStripTags(t *testing.T) {
	markup := `<html><head><title>skip</title></head>
<body><!-- note --><script>skip()</script><p>Hello <b>World</b></p></body></html>`

	got := Normalize(StripTags(markup))
	if got != "Hello World" {
		t.Errorf("StripTags = %q, want %q", got, "Hello World")
	}
}

func TestHTMLExtractor(t *testing.T) {
	path := writeFixture(t, "note.html", []byte("<html><body><p>Hello</p><p>World</p></body></html>"))

	got := testRegistry().Text(context.Background(), path, "html", Options{})
	if got != "Hello World" {
		t.Errorf("Text = %q, want %q", got, "Hello World")
	}
}

func TestTextExtractorUTF8(t *testing.T) {
	path := writeFixture(t, "memo.txt", []byte("메모  내용\n둘째 줄"))

	got := testRegistry().Text(context.Background(), path, "text", Options{})
	if got != "메모 내용 둘째 줄" {
		t.Errorf("Text = %q", got)
	}
}

func TestTextExtractorCP949Fallback(t *testing.T) {
	// 0xB0A1 is "가" in EUC-KR/CP949, invalid as UTF-8.
	path := writeFixture(t, "legacy.txt", []byte{0xB0, 0xA1})

	got := testRegistry().Text(context.Background(), path, "text", Options{})
	if got != "가" {
		t.Errorf("Text = %q, want %q", got, "가")
	}
}

func TestDocxExtractor(t *testing.T) {
	doc := `<?xml version="1.0"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body><w:p><w:r><w:t>Hello</w:t></w:r></w:p><w:p><w:r><w:t>World</w:t></w:r></w:p></w:body></w:document>`
	path := writeZipFixture(t, "note.docx", map[string]string{"word/document.xml": doc})

	got := testRegistry().Text(context.Background(), path, "docx", Options{})
	if got != "Hello World" {
		t.Errorf("Text = %q, want %q", got, "Hello World")
	}
}

func TestDocxExtractorRejectsNonZip(t *testing.T) {
	path := writeFixture(t, "legacy.doc", []byte("not a zip archive"))

	if got := testRegistry().Text(context.Background(), path, "doc", Options{}); got != "" {
		t.Errorf("Text = %q, want empty for unreadable legacy doc", got)
	}
}

func TestHwpxExtractor(t *testing.T) {
	section := `<?xml version="1.0"?><section><p><run>안녕하세요</run></p></section>`
	path := writeZipFixture(t, "note.hwpx", map[string]string{
		"Contents/section0.xml": section,
		"mimetype":              "application/hwp+zip",
	})

	got := testRegistry().Text(context.Background(), path, "hwpx", Options{})
	if got != "안녕하세요" {
		t.Errorf("Text = %q, want %q", got, "안녕하세요")
	}
}

func TestHwpWithoutToolIsEmpty(t *testing.T) {
	path := writeFixture(t, "note.hwp", []byte("binary"))

	res := testRegistry().Extract(context.Background(), path, "hwp", Options{})
	if res.Text != "" || res.Reason != CapabilityMissing {
		t.Errorf("Extract = %+v, want empty with capability_missing", res)
	}
}

func TestImageWithoutOCRIsEmpty(t *testing.T) {
	path := writeFixture(t, "scan.png", []byte{0x89, 'P', 'N', 'G'})

	res := testRegistry().Extract(context.Background(), path, "image", Options{OCR: true})
	if res.Text != "" || res.Reason != CapabilityMissing {
		t.Errorf("Extract = %+v, want empty with capability_missing", res)
	}

	res = testRegistry().Extract(context.Background(), path, "image", Options{OCR: false})
	if res.Text != "" || res.Reason != CapabilityMissing {
		t.Errorf("Extract with OCR disabled = %+v, want empty", res)
	}
}

func TestUnsupportedTagIsEmpty(t *testing.T) {
	path := writeFixture(t, "movie.mp4", []byte("data"))

	res := testRegistry().Extract(context.Background(), path, "mp4", Options{})
	if res.Text != "" || res.Reason != Unsupported {
		t.Errorf("Extract = %+v, want empty with unsupported", res)
	}
}

func TestMissingFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.txt")

	if got := testRegistry().Text(context.Background(), path, "text", Options{}); got != "" {
		t.Errorf("Text = %q, want empty for missing file", got)
	}
}

func TestArchiveExtractor(t *testing.T) {
	path := writeZipFixture(t, "bundle.zip", map[string]string{
		"docs/memo.txt": "archived words",
		"skip/clip.mp4": "not dispatched",
	})

	got := testRegistry().Text(context.Background(), path, "zip", Options{})
	if got != "archived words" {
		t.Errorf("Text = %q, want %q", got, "archived words")
	}
}

func TestArchiveSkipsHTMLWhenOnlyAttachments(t *testing.T) {
	entries := map[string]string{
		"page.html": "<body>page words</body>",
		"memo.txt":  "plain words",
	}

	path := writeZipFixture(t, "bundle.zip", entries)
	got := testRegistry().Text(context.Background(), path, "zip", Options{OnlyAttachments: true})
	if got != "plain words" {
		t.Errorf("Text = %q, want html entry skipped", got)
	}

	path = writeZipFixture(t, "bundle2.zip", entries)
	got = testRegistry().Text(context.Background(), path, "zip", Options{})
	for _, want := range []string{"page words", "plain words"} {
		if !strings.Contains(got, want) {
			t.Errorf("Text = %q, want it to contain %q", got, want)
		}
	}
}

func TestArchiveIgnoresNestedArchives(t *testing.T) {
	inner := writeZipFixture(t, "inner.zip", map[string]string{"deep.txt": "deep words"})
	data, err := os.ReadFile(inner)
	if err != nil {
		t.Fatalf("read inner zip: %v", err)
	}

	path := filepath.Join(t.TempDir(), "outer.zip")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create outer zip: %v", err)
	}
	zw := zip.NewWriter(f)
	w, _ := zw.Create("inner.zip")
	w.Write(data)
	w, _ = zw.Create("top.txt")
	w.Write([]byte("top words"))
	zw.Close()
	f.Close()

	got := testRegistry().Text(context.Background(), path, "zip", Options{})
	if got != "top words" {
		t.Errorf("Text = %q, want nested archive ignored", got)
	}
}
