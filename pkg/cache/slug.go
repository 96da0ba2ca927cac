package cache

import (
	"regexp"

	"golang.org/x/text/unicode/norm"
)

// maxSlugLen bounds cache file name components. Two identifiers sharing
// a long common prefix can collide after truncation; this is a known,
// accepted risk of the naming scheme.
const maxSlugLen = 200

var (
	unsafeRe = regexp.MustCompile(`[\\/:*?"<>|]+`)
	spaceRe  = regexp.MustCompile(`\s+`)
)

// Slug derives a deterministic, filesystem-safe name component from an
// arbitrary string. Same input always yields the same slug.
func Slug(s string) string {
	s = norm.NFC.String(s)
	s = unsafeRe.ReplaceAllString(s, "_")
	s = spaceRe.ReplaceAllString(s, "_")
	s = trimUnderscore(s)
	runes := []rune(s)
	if len(runes) > maxSlugLen {
		return string(runes[:maxSlugLen])
	}
	return s
}

func trimUnderscore(s string) string {
	start, end := 0, len(s)
	for start < end && s[start] == '_' {
		start++
	}
	for end > start && s[end-1] == '_' {
		end--
	}
	return s[start:end]
}
