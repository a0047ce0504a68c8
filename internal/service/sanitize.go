package service

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const maxPromptInputLength = 2000

// filterMarker replaces instruction-override attempts in user text.
const filterMarker = "[FILTERED]"

// injectionPatterns match sequences that try to override the prompt.
// Applied to every piece of user text before it reaches a generative call.
var injectionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)ignore\s+(all\s+)?(previous|above|prior)\s+instructions?`),
	regexp.MustCompile(`(?i)system\s*:`),
	regexp.MustCompile(`(?i)assistant\s*:`),
	regexp.MustCompile(`(?i)new\s+instructions?`),
	regexp.MustCompile(`(?i)you\s+are\s+now`),
	regexp.MustCompile(`(?i)act\s+as`),
	regexp.MustCompile(`(?i)pretend\s+to\s+be`),
}

var excessiveNewlines = regexp.MustCompile(`\n{3,}`)

// SanitizePromptInput prepares user text for embedding into a prompt:
// truncates, collapses newline runs, and masks injection patterns.
func SanitizePromptInput(text string) string {
	if text == "" {
		return ""
	}

	if len(text) > maxPromptInputLength {
		text = truncateUTF8(text, maxPromptInputLength)
	}

	text = excessiveNewlines.ReplaceAllString(text, "\n\n")

	for _, pattern := range injectionPatterns {
		text = pattern.ReplaceAllString(text, filterMarker)
	}

	return strings.TrimSpace(text)
}

// truncateUTF8 cuts the string at byteLimit without splitting a rune.
func truncateUTF8(s string, byteLimit int) string {
	if len(s) <= byteLimit {
		return s
	}
	cut := byteLimit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// sanitizeUTF8 drops invalid UTF-8 sequences so text is safe to persist.
func sanitizeUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}

	var result strings.Builder
	result.Grow(len(s))

	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		if r == utf8.RuneError && size == 1 {
			s = s[1:]
			continue
		}
		result.WriteRune(r)
		s = s[size:]
	}

	return result.String()
}
