package keywords

import "strings"

// DefaultSummaryBudget is the character budget for extractive summaries.
const DefaultSummaryBudget = 240

// sentence terminators: western terminal punctuation plus the Korean
// sentence-final syllables 다 and 요.
var terminalRunes = map[rune]struct{}{
	'.': {}, '!': {}, '?': {}, '다': {}, '요': {},
}

// splitSentences cuts text after a terminal rune that is followed by
// whitespace. Text with no such boundary comes back as a single unit.
func splitSentences(text string) []string {
	var units []string
	runes := []rune(text)
	start := 0
	for i := 0; i < len(runes)-1; i++ {
		if _, ok := terminalRunes[runes[i]]; !ok {
			continue
		}
		if runes[i+1] != ' ' && runes[i+1] != '\t' && runes[i+1] != '\n' {
			continue
		}
		unit := strings.TrimSpace(string(runes[start : i+1]))
		if unit != "" {
			units = append(units, unit)
		}
		start = i + 1
	}
	if tail := strings.TrimSpace(string(runes[start:])); tail != "" {
		units = append(units, tail)
	}
	return units
}

// Summarize builds a front-loaded extract: sentence units are
// concatenated greedily while the accumulated length stays under budget,
// accumulation stops early once 60% of the budget is reached, and the
// result is hard-truncated to the budget. This is a cheap extract, not a
// semantic summary.
func Summarize(text string, budget int) string {
	if text == "" || budget <= 0 {
		return ""
	}

	var out string
	for _, unit := range splitSentences(text) {
		if out != "" && runeLen(out)+runeLen(unit)+1 > budget {
			break
		}
		out = strings.TrimSpace(out + " " + unit)
		if runeLen(out) >= budget*6/10 {
			break
		}
	}
	return strings.TrimSpace(truncateRunes(out, budget))
}

func runeLen(s string) int { return len([]rune(s)) }

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
