// Package cache persists extracted plain text per (note, source) pair.
// Cache files are the only state the indexer keeps between runs; they
// are addressed by name, not versioned, and a later write with the same
// key overwrites.
package cache

import (
	"fmt"
	"hash/fnv"
	"os"
	"path"
	"path/filepath"
	"sync"
)

// DirName is the cache subdirectory under the output directory. Text
// refs recorded in index records are relative to the output directory.
const DirName = "text_cache"

// Store is a file-backed text cache. Writes are atomic (temp file plus
// rename) and serialized per cache key, so concurrent workers never race
// on the same file and a killed run never leaves a half-written entry.
type Store struct {
	dir   string
	locks [64]sync.Mutex
}

// NewStore creates the cache directory under outDir if needed.
func NewStore(outDir string) (*Store, error) {
	dir := filepath.Join(outDir, DirName)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the absolute cache directory.
func (s *Store) Dir() string { return s.dir }

// BodyName returns the cache file name for a note's body text.
func BodyName(identifier string) string {
	return Slug(identifier) + "_html.txt"
}

// AttachmentName returns the cache file name for one attachment's text.
func AttachmentName(identifier, filename string) string {
	return Slug(identifier) + "__" + Slug(filename) + "_att.txt"
}

// Ref returns the relative text_ref recorded in index records.
func Ref(name string) string {
	return path.Join(DirName, name)
}

// Has reports whether a cache entry exists.
func (s *Store) Has(name string) bool {
	_, err := os.Stat(filepath.Join(s.dir, name))
	return err == nil
}

// Read returns the cached text for name.
func (s *Store) Read(name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("error reading cache entry: %w", err)
	}
	return string(data), nil
}

// Write stores text under name. With overwrite false an existing entry
// is left untouched and false is returned. An overwrite replaces
// whatever is there, including replacing non-empty text with empty text
// when a fresh extraction failed; that is accepted policy.
func (s *Store) Write(name, text string, overwrite bool) (bool, error) {
	lock := &s.locks[s.lockIndex(name)]
	lock.Lock()
	defer lock.Unlock()

	target := filepath.Join(s.dir, name)
	if !overwrite {
		if _, err := os.Stat(target); err == nil {
			return false, nil
		}
	}

	tmp, err := os.CreateTemp(s.dir, name+".tmp*")
	if err != nil {
		return false, fmt.Errorf("failed to create temp cache file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.WriteString(text); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return false, fmt.Errorf("failed to write cache entry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return false, fmt.Errorf("failed to close cache entry: %w", err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return false, fmt.Errorf("failed to publish cache entry: %w", err)
	}
	return true, nil
}

func (s *Store) lockIndex(name string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(name))
	return h.Sum32() % uint32(len(s.locks))
}
