package quiz

import "strings"

// writingPunctuation is stripped from both sides in writing mode.
const writingPunctuation = ".,/#!$%^&*;:{}=-_`~()"

// sameText compares case-insensitively, ignoring surrounding whitespace.
func sameText(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func normalizeWriting(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(writingPunctuation, r) {
			return -1
		}
		return r
	}, s)
}

// sameWriting is sameText after dropping writingPunctuation.
func sameWriting(answer, expected string) bool {
	return normalizeWriting(answer) == normalizeWriting(expected)
}
