// Package hierarchy reconstructs the parent/child tree of flash-report line
// items from flat, indentation-formatted rows.
package hierarchy

import (
	"regexp"
	"strings"
	"unicode"
)

// levelRule overrides the indentation-derived level when its predicate
// matches. Rules are evaluated in order and the first match wins, so the
// override policy stays an explicit table rather than control flow.
type levelRule struct {
	match func(text string) bool
	level int
	strip *regexp.Regexp
}

var (
	topNumeralRe = regexp.MustCompile(`^[一二三四五六七八九十]+、`)
	includingRe  = regexp.MustCompile(`其中[：:]`)
	addSubRe     = regexp.MustCompile(`[减加][：:]`)

	numberingRe = regexp.MustCompile(`^(\d+[.、]\s*|\(\d+\)\s*|（\d+）\s*|[①②③④⑤⑥⑦⑧⑨⑩⑪⑫⑬⑭⑮⑯⑰⑱⑲⑳]\s*|[A-Z]\.\s*)`)
)

// levelRules is checked top to bottom; markers always override indentation,
// even when the indentation disagrees with the marker's implied level.
var levelRules = []levelRule{
	{match: func(s string) bool { return topNumeralRe.MatchString(s) }, level: 0, strip: topNumeralRe},
	{match: func(s string) bool { return includingRe.MatchString(s) }, level: 2, strip: regexp.MustCompile(`^其中[：:]\s*`)},
	{match: func(s string) bool { return addSubRe.MatchString(s) }, level: 4, strip: regexp.MustCompile(`^[减加][：:]\s*`)},
}

// rawIndent counts leading whitespace runes, full-width spaces included.
func rawIndent(text string) int {
	n := 0
	for _, r := range text {
		if !unicode.IsSpace(r) {
			break
		}
		n++
	}
	return n
}

// resolveLevel applies the marker table to the trimmed text and falls back
// to the raw indentation. Negative levels are clamped to 0.
func resolveLevel(trimmed string, indent int) int {
	for _, rule := range levelRules {
		if rule.match(trimmed) {
			return rule.level
		}
	}
	if indent < 0 {
		return 0
	}
	return indent
}

// cleanName strips the matched marker and any leading numbering from the
// trimmed text to produce the display name.
func cleanName(trimmed string) string {
	name := trimmed
	for _, rule := range levelRules {
		if rule.match(name) {
			name = rule.strip.ReplaceAllString(name, "")
			break
		}
	}
	name = numberingRe.ReplaceAllString(name, "")
	return strings.TrimSpace(name)
}
