// Package profanity classifies text as appropriate for dictionary output.
package profanity

import (
	"strings"

	goaway "github.com/TwiN/go-away"
)

// minDefinitionWords is the shortest word count accepted as a real definition.
const minDefinitionWords = 3

// Contains reports whether text matches the profanity wordlist.
func Contains(text string) bool {
	return goaway.IsProfane(text)
}

// IsAppropriate reports whether text is usable as a definition: non-empty,
// at least three words, and free of profanity.
func IsAppropriate(text string) bool {
	if text == "" {
		return false
	}
	if len(strings.Fields(text)) < minDefinitionWords {
		return false
	}
	return !Contains(text)
}
