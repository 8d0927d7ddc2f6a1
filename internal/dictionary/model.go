// Package dictionary aggregates word definitions from external providers.
package dictionary

import (
	"context"

	"github.com/lingodex/lingodex/internal/profanity"
)

// Definition is a single cleaned definition entry.
type Definition struct {
	Definition   string `json:"definition"`
	PartOfSpeech string `json:"part_of_speech"`
	Example      string `json:"example,omitempty"`
}

// Phonetic is a phonetic transcription of a word.
type Phonetic struct {
	Text string `json:"text"`
}

// Result is what a single provider lookup yields.
type Result struct {
	Definitions []Definition
	Examples    []string
	Synonyms    []string
	Antonyms    []string
	Phonetics   []Phonetic
	AudioURL    string
}

// Empty reports whether the lookup produced no definitions.
func (r Result) Empty() bool {
	return len(r.Definitions) == 0
}

// Provider is one external definition source.
type Provider interface {
	Name() string
	// Supports reports whether the provider can serve the given language
	// in the priority chain. Unsupported providers are skipped, never
	// treated as failed.
	Supports(lang string) bool
	Lookup(ctx context.Context, word, lang string) (Result, error)
}

// rawDefinition is a provider-shaped definition before content filtering.
type rawDefinition struct {
	text    string
	example string
}

// filterDefinitions drops inappropriate definitions and attaches examples
// only when the example text itself is clean. Examples are not held to the
// minimum definition length.
func filterDefinitions(raw []rawDefinition, partOfSpeech string) []Definition {
	var clean []Definition
	for _, r := range raw {
		if !profanity.IsAppropriate(r.text) {
			continue
		}
		def := Definition{
			Definition:   r.text,
			PartOfSpeech: partOfSpeech,
		}
		if r.example != "" && !profanity.Contains(r.example) {
			def.Example = r.example
		}
		clean = append(clean, def)
	}
	return clean
}
