package model

import (
	"regexp"
	"strings"
)

var splitWordsPattern = regexp.MustCompile(`[_\-\s]+`)

// DefaultLabeler converts a field name into a human-friendly label. It splits
// on underscores/dashes and camelCase boundaries, keeping acronyms intact
// ("PANNumber" -> "PAN number").
func DefaultLabeler(name string) string {
	if name == "" {
		return ""
	}

	var parts []string
	for _, word := range splitWordsPattern.Split(name, -1) {
		if word == "" {
			continue
		}
		parts = append(parts, splitCamel(word)...)
	}

	for i, part := range parts {
		parts[i] = normaliseCase(part, i == 0)
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

func splitCamel(input string) []string {
	var (
		out   []string
		start int
	)
	for i := 1; i < len(input); i++ {
		if isBoundary(input, i) {
			out = append(out, input[start:i])
			start = i
		}
	}
	return append(out, input[start:])
}

func isBoundary(input string, index int) bool {
	prev := rune(input[index-1])
	r := rune(input[index])
	if isLower(prev) && isUpper(r) {
		return true
	}
	// end of an acronym: "PANNumber" splits before the second N
	if isUpper(prev) && isUpper(r) && index+1 < len(input) && isLower(rune(input[index+1])) {
		return true
	}
	return (isLetter(prev) && isDigit(r)) || (isDigit(prev) && isLetter(r))
}

func isUpper(r rune) bool  { return r >= 'A' && r <= 'Z' }
func isLower(r rune) bool  { return r >= 'a' && r <= 'z' }
func isDigit(r rune) bool  { return r >= '0' && r <= '9' }
func isLetter(r rune) bool { return isUpper(r) || isLower(r) }

func normaliseCase(word string, first bool) string {
	if word == "" {
		return ""
	}
	if len(word) > 1 && strings.ToUpper(word) == word {
		return word
	}
	lower := strings.ToLower(word)
	if !first {
		return lower
	}
	return strings.ToUpper(lower[:1]) + lower[1:]
}
