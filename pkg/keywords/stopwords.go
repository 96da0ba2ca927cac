package keywords

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Stopwords is the set of tokens excluded from keyword ranking.
type Stopwords map[string]struct{}

// defaultStopwords is the built-in bilingual set. It can be replaced
// wholesale by a user-supplied list; it is data, not policy.
var defaultStopwords = strings.Fields(`
the and or of to a an in on for at by with from as is are was were be been being
및 그리고 등 이 가 은 는 을 를 에 의 와 과 이다 하다 있다 없는 대한 관련 자료 문서 파일 내가 너가 내 노트
`)

// DefaultStopwords returns a fresh copy of the built-in set.
func DefaultStopwords() Stopwords {
	sw := make(Stopwords, len(defaultStopwords))
	for _, w := range defaultStopwords {
		sw[w] = struct{}{}
	}
	return sw
}

// Contains reports whether the word is a stopword.
func (s Stopwords) Contains(word string) bool {
	_, ok := s[word]
	return ok
}

// LoadStopwords reads a replacement stopword list from a JSON or YAML
// file holding a flat array of strings.
func LoadStopwords(path string) (Stopwords, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading stopwords file: %w", err)
	}

	var words []string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &words)
	default:
		err = json.Unmarshal(data, &words)
	}
	if err != nil {
		return nil, fmt.Errorf("error parsing stopwords file: %w", err)
	}

	sw := make(Stopwords, len(words))
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w != "" {
			sw[w] = struct{}{}
		}
	}
	return sw, nil
}
