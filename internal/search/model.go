// Package search implements the word-lookup flow: definition aggregation,
// translation, pronunciation synthesis, caching, and history recording.
package search

import (
	"github.com/lingodex/lingodex/internal/dictionary"
)

// Result is the composite response for a single word lookup. Optional fields
// are pointers so they serialize as null when absent, matching the API
// contract. Slices are always initialized so empty ones serialize as [].
type Result struct {
	Word                     string                  `json:"word"`
	TargetLanguage           string                  `json:"target_language"`
	Definitions              []dictionary.Definition `json:"definitions"`
	Examples                 []string                `json:"examples"`
	Synonyms                 []string                `json:"synonyms"`
	Antonyms                 []string                `json:"antonyms"`
	Phonetics                []dictionary.Phonetic   `json:"phonetics"`
	Audio                    *string                 `json:"audio"`
	Translation              *string                 `json:"translation"`
	SourceLanguage           string                  `json:"source_language"`
	Pronunciation            *string                 `json:"pronunciation"`
	TranslationPronunciation *string                 `json:"translation_pronunciation"`
	TranslatedDefinitions    []dictionary.Definition `json:"translated_definitions"`
	TranslatedExamples       []string                `json:"translated_examples"`
}

func newResult(word, targetLang string) *Result {
	return &Result{
		Word:                  word,
		TargetLanguage:        targetLang,
		Definitions:           []dictionary.Definition{},
		Examples:              []string{},
		Synonyms:              []string{},
		Antonyms:              []string{},
		Phonetics:             []dictionary.Phonetic{},
		SourceLanguage:        "en",
		TranslatedDefinitions: []dictionary.Definition{},
		TranslatedExamples:    []string{},
	}
}
