package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteFileAtomicCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "out.txt")
	if err := WriteFileAtomic(path, []byte("content")); err != nil {
		t.Fatalf("WriteFileAtomic: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "content" {
		t.Errorf("content = %q", data)
	}
}

func TestWriteFileAtomicLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")
	if err := WriteFileAtomic(path, []byte("x")); err != nil {
		t.Fatalf("WriteFileAtomic: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}

func TestWriteJSONRoundTrip(t *testing.T) {
	type row struct {
		Name string `json:"name"`
	}
	path := filepath.Join(t.TempDir(), "rows.json")

	if err := WriteJSON(path, []row{{Name: "a"}, {Name: "b"}}); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.HasSuffix(string(data), "\n") {
		t.Error("output missing trailing newline")
	}
	if !strings.Contains(string(data), "  {") {
		t.Error("output not indented")
	}

	var rows []row
	if err := ReadJSON(path, &rows); err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if len(rows) != 2 || rows[0].Name != "a" {
		t.Errorf("rows = %+v", rows)
	}
}

func TestReadJSONErrors(t *testing.T) {
	dir := t.TempDir()

	var v any
	if err := ReadJSON(filepath.Join(dir, "absent.json"), &v); err == nil {
		t.Error("ReadJSON(missing) = nil, want error")
	}

	bad := filepath.Join(dir, "bad.json")
	os.WriteFile(bad, []byte("{not json"), 0600)
	if err := ReadJSON(bad, &v); err == nil {
		t.Error("ReadJSON(malformed) = nil, want error")
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.txt")
	if FileExists(path) {
		t.Error("FileExists(missing) = true")
	}
	os.WriteFile(path, []byte("x"), 0600)
	if !FileExists(path) {
		t.Error("FileExists(present) = false")
	}
}
