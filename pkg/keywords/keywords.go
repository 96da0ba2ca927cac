// Package keywords tokenizes extracted text and derives ranked keyword
// lists and short extractive summaries from it.
package keywords

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

var (
	punctRe = regexp.MustCompile("[\\[\\]{}()<>:;,.!?\"'`~@#$%^&*+=\\\\/|_]+")
	yearRe  = regexp.MustCompile(`^(19|20)\d{2}$`)
)

// Tokenize normalizes text to NFC, lowercases it, replaces punctuation
// runs with spaces and splits on whitespace. Bare 4-digit years, tokens
// shorter than 2 runes, and stopwords are dropped.
func Tokenize(s string, stop Stopwords) []string {
	if s == "" {
		return nil
	}
	s = strings.ToLower(norm.NFC.String(s))
	s = punctRe.ReplaceAllString(s, " ")

	var toks []string
	for _, t := range strings.Fields(s) {
		if yearRe.MatchString(t) {
			continue
		}
		if utf8.RuneCountInString(t) < 2 {
			continue
		}
		if stop.Contains(t) {
			continue
		}
		toks = append(toks, t)
	}
	return toks
}

// Top returns the k most frequent tokens of text in descending frequency
// order. Frequency ties are broken by first occurrence in the token
// stream, so the ranking is deterministic for a given input.
func Top(text string, k int, stop Stopwords) []string {
	if k <= 0 {
		return []string{}
	}

	type entry struct {
		word  string
		count int
		first int
	}

	counts := make(map[string]*entry)
	var order []*entry
	for i, t := range Tokenize(text, stop) {
		if e, ok := counts[t]; ok {
			e.count++
			continue
		}
		e := &entry{word: t, count: 1, first: i}
		counts[t] = e
		order = append(order, e)
	}

	sort.SliceStable(order, func(i, j int) bool {
		if order[i].count != order[j].count {
			return order[i].count > order[j].count
		}
		return order[i].first < order[j].first
	})

	limit := k
	if len(order) < limit {
		limit = len(order)
	}
	top := make([]string, limit)
	for i := 0; i < limit; i++ {
		top[i] = order[i].word
	}
	return top
}
