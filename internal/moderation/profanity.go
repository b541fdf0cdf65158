package moderation

import (
	"regexp"
	"strings"
)

// BadWords is the profanity list applied to outbound text messages. Seed list
// only; extend via deployment configuration as needed.
var BadWords = []string{
	"badword", "offensive", "spam",
	"abuse", "hate", "kill", "attack",
}

var badWordPatterns = compilePatterns(BadWords)

func compilePatterns(words []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(words))
	for _, w := range words {
		patterns = append(patterns, regexp.MustCompile("(?i)"+regexp.QuoteMeta(w)))
	}
	return patterns
}

// ContainsProfanity reports whether text contains any listed word.
func ContainsProfanity(text string) bool {
	lower := strings.ToLower(text)
	for _, w := range BadWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// CensorProfanity replaces every listed word with asterisks of equal length,
// case-insensitively.
func CensorProfanity(text string) string {
	for i, p := range badWordPatterns {
		mask := strings.Repeat("*", len(BadWords[i]))
		text = p.ReplaceAllString(text, mask)
	}
	return text
}
