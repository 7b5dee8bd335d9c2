package heuristics

import (
	"regexp"
	"strings"
	"unicode"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// CleanHeadingText collapses whitespace runs to single spaces and trims.
// Applied to heading text both when a heading is first recognized and again
// before output, since classifier-merged headings skip the first pass.
func CleanHeadingText(text string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
}

// IsNumeric reports whether text is non-empty and entirely decimal digits.
func IsNumeric(text string) bool {
	if text == "" {
		return false
	}
	for _, r := range text {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// IsAllCaps reports whether text contains at least one cased character and
// every cased character is uppercase.
func IsAllCaps(text string) bool {
	cased := false
	for _, r := range text {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			cased = true
		}
	}
	return cased
}

// IsTitleCase reports whether text is title-cased: uppercase letters appear
// only at the start of a cased run, lowercase letters only inside one.
func IsTitleCase(text string) bool {
	cased := false
	prevCased := false
	for _, r := range text {
		switch {
		case unicode.IsUpper(r) || unicode.IsTitle(r):
			if prevCased {
				return false
			}
			cased = true
			prevCased = true
		case unicode.IsLower(r):
			if !prevCased {
				return false
			}
			cased = true
			prevCased = true
		default:
			prevCased = false
		}
	}
	return cased
}

// wordCount returns the number of whitespace-separated fields.
func wordCount(text string) int {
	return len(strings.Fields(text))
}
