package extract

import (
	"html"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Entities removed outright before unescaping; they are markup residue,
// not content.
var strippedEntities = []string{"&nbsp;", "&quot;", "&lt;"}

// Normalize applies the common post-extraction cleanup: Unicode NFC
// composition, HTML entity unescape, whitespace collapsed to single
// spaces, trimmed. Every extractor's output passes through here.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = norm.NFC.String(s)
	for _, ent := range strippedEntities {
		s = strings.ReplaceAll(s, ent, "")
	}
	s = html.UnescapeString(s)
	return CollapseSpace(s)
}

// CollapseSpace replaces every run of Unicode whitespace (including
// NBSP) with a single space and trims the ends.
func CollapseSpace(s string) string {
	return strings.Join(strings.FieldsFunc(s, unicode.IsSpace), " ")
}
