package models

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Emit mode names. "body" is accepted on the command line as an alias
// for EmitHTML.
const (
	EmitName   = "name"
	EmitHTML   = "html"
	EmitAttach = "attach"
)

// EmitSet is the set of record variants a run produces. The active modes
// also drive the cache freshness policy.
type EmitSet map[string]bool

var emitSplitRe = regexp.MustCompile(`[,+\s]+`)

// ParseEmitSet parses a comma/plus/space separated mode list. Unknown
// values are a configuration error.
func ParseEmitSet(raw string) (EmitSet, error) {
	set := EmitSet{}
	var invalid []string
	for _, part := range emitSplitRe.Split(strings.ToLower(strings.TrimSpace(raw)), -1) {
		switch part {
		case "":
		case EmitName, EmitHTML, EmitAttach:
			set[part] = true
		case "body":
			set[EmitHTML] = true
		default:
			invalid = append(invalid, part)
		}
	}
	if len(invalid) > 0 {
		sort.Strings(invalid)
		return nil, fmt.Errorf("invalid emit values %v (use name, html, attach)", invalid)
	}
	if len(set) == 0 {
		return nil, fmt.Errorf("no emit modes selected (use name, html, attach)")
	}
	return set, nil
}

// Has reports whether the given mode is active.
func (e EmitSet) Has(mode string) bool { return e[mode] }

func (e EmitSet) String() string {
	modes := make([]string, 0, len(e))
	for m := range e {
		modes = append(modes, m)
	}
	sort.Strings(modes)
	return strings.Join(modes, ",")
}
