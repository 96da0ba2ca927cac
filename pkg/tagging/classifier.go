// Package tagging classifies notes by filename pattern rules, derives
// subtags from attachment extensions, and extracts dates from note
// identifier paths.
package tagging

import (
	"fmt"
	"os"
	"path"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Rule maps a filename pattern to a tag. Patterns are matched
// case-insensitively as substring regexes against the note's leaf name.
type Rule struct {
	Pattern string `yaml:"pattern"`
	Tag     string `yaml:"tag"`
}

// RulesFile is the on-disk shape of a classification rules override.
type RulesFile struct {
	Rules   []Rule              `yaml:"rules"`
	Subtags map[string][]string `yaml:"subtags"`
}

type compiledRule struct {
	re  *regexp.Regexp
	tag string
}

// Classifier applies an ordered rule table and a fixed extension map.
type Classifier struct {
	rules     []compiledRule
	extSubtag map[string]string
}

var (
	fullDateRe = regexp.MustCompile(`\b(19|20)\d{2}-\d{2}-\d{2}\b`)
	bareYearRe = regexp.MustCompile(`\b(19|20)\d{2}\b`)
)

// NewClassifier builds a classifier from the built-in rule table and
// subtag map.
func NewClassifier() (*Classifier, error) {
	return newClassifier(defaultRules, defaultSubtags)
}

// LoadClassifier reads a YAML rules file and builds a classifier from
// it. Missing sections fall back to the built-in tables.
func LoadClassifier(path string) (*Classifier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading rules file: %w", err)
	}
	var rf RulesFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("error parsing rules file: %w", err)
	}
	if rf.Rules == nil {
		rf.Rules = defaultRules
	}
	if rf.Subtags == nil {
		rf.Subtags = defaultSubtags
	}
	return newClassifier(rf.Rules, rf.Subtags)
}

func newClassifier(rules []Rule, subtags map[string][]string) (*Classifier, error) {
	c := &Classifier{extSubtag: make(map[string]string)}
	for _, r := range rules {
		re, err := regexp.Compile("(?i)" + r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid rule pattern %q: %w", r.Pattern, err)
		}
		c.rules = append(c.rules, compiledRule{re: re, tag: r.Tag})
	}
	for subtag, exts := range subtags {
		for _, ext := range exts {
			c.extSubtag[strings.ToLower(ext)] = subtag
		}
	}
	return c, nil
}

// Tags returns the sorted, deduplicated set of tags whose patterns match
// the note's leaf filename.
func (c *Classifier) Tags(leafName string) []string {
	seen := make(map[string]struct{})
	for _, r := range c.rules {
		if r.re.MatchString(leafName) {
			seen[r.tag] = struct{}{}
		}
	}
	return sortedSet(seen)
}

// Subtags returns the sorted, deduplicated subtag set derived from the
// attachment filenames' extensions. Each subtag appears at most once no
// matter how many attachments match.
func (c *Classifier) Subtags(filenames []string) []string {
	seen := make(map[string]struct{})
	for _, fn := range filenames {
		ext := strings.ToLower(strings.TrimPrefix(path.Ext(fn), "."))
		if subtag, ok := c.extSubtag[ext]; ok {
			seen[subtag] = struct{}{}
		}
	}
	return sortedSet(seen)
}

// Date searches the identifier path for a YYYY-MM-DD date, then falls
// back to a bare 4-digit year. Nil means neither was found.
func Date(identifier string) *string {
	if m := fullDateRe.FindString(identifier); m != "" {
		return &m
	}
	if m := bareYearRe.FindString(identifier); m != "" {
		return &m
	}
	return nil
}

func sortedSet(seen map[string]struct{}) []string {
	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
