package search

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lingodex/lingodex/internal/cache"
	"github.com/lingodex/lingodex/internal/dictionary"
	"github.com/lingodex/lingodex/internal/history"
	"github.com/lingodex/lingodex/internal/language"
	"github.com/lingodex/lingodex/internal/translation"
)

var (
	// ErrEmptyWord means the request carried no word to look up.
	ErrEmptyWord = errors.New("word is required")
	// ErrUnsupportedLanguage means the target language is outside the
	// supported table.
	ErrUnsupportedLanguage = errors.New("unsupported language")
	// ErrInternal is the generic failure surfaced when the pipeline panics.
	ErrInternal = errors.New("search failed")
)

// timeNow is swapped out in tests.
var timeNow = time.Now

// MaxPronunciationChars caps text handed to the synthesizer. Longer text is
// truncated with an ellipsis marker before the call.
const MaxPronunciationChars = 100

// maxTranslatedExamples bounds how many examples are machine-translated when
// no native-language definitions exist.
const maxTranslatedExamples = 3

// Definitions is the aggregation side of the pipeline.
type Definitions interface {
	Lookup(ctx context.Context, word, lang string) dictionary.Result
	LookupNative(ctx context.Context, word, lang string) dictionary.Result
}

// Translator is the translation side. A service may run without one.
type Translator interface {
	Translate(ctx context.Context, text, targetLang string) (translation.Translation, error)
}

// Pronouncer synthesizes pronunciation audio.
type Pronouncer interface {
	Synthesize(ctx context.Context, text, lang string) (string, error)
}

// Service orchestrates a word lookup end to end.
type Service struct {
	definitions   Definitions
	translator    Translator // nil when the backend failed to initialize
	pronouncer    Pronouncer
	cache         *cache.Cache
	history       *history.Log
	nativeLocales map[string]bool
	logger        *logrus.Logger
}

// NewService wires the orchestrator. translator may be nil; the flow then
// skips translation entirely. nativeLocales lists target languages for which
// the primary dictionary source can serve native definitions.
func NewService(
	definitions Definitions,
	translator Translator,
	pronouncer Pronouncer,
	resultCache *cache.Cache,
	historyLog *history.Log,
	nativeLocales []string,
	logger *logrus.Logger,
) *Service {
	locales := make(map[string]bool, len(nativeLocales))
	for _, locale := range nativeLocales {
		locales[locale] = true
	}
	return &Service{
		definitions:   definitions,
		translator:    translator,
		pronouncer:    pronouncer,
		cache:         resultCache,
		history:       historyLog,
		nativeLocales: locales,
		logger:        logger,
	}
}

func cacheKey(word, targetLang string) string {
	sum := md5.Sum([]byte("search:" + word + ":" + targetLang))
	return hex.EncodeToString(sum[:])
}

// Truncate shortens text to MaxPronunciationChars runes, appending an
// ellipsis marker when it had to cut.
func Truncate(text string) string {
	runes := []rune(text)
	if len(runes) <= MaxPronunciationChars {
		return text
	}
	return string(runes[:MaxPronunciationChars]) + "..."
}

// Search runs the full lookup flow for word in targetLang. Input violations
// return ErrEmptyWord or ErrUnsupportedLanguage before any external call.
// Anything that panics inside the pipeline is recovered and surfaced as
// ErrInternal with partial results discarded.
func (s *Service) Search(ctx context.Context, word, targetLang string) (result *Result, err error) {
	if word == "" {
		return nil, ErrEmptyWord
	}
	if !language.IsSupported(targetLang) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, targetLang)
	}

	key := cacheKey(word, targetLang)
	if cached, ok := s.cache.Get(key); ok {
		searchesTotal.WithLabelValues("hit").Inc()
		return cached.(*Result), nil
	}
	searchesTotal.WithLabelValues("miss").Inc()

	defer func() {
		if r := recover(); r != nil {
			s.logger.WithField("panic", r).Error("search pipeline panicked")
			result = nil
			err = ErrInternal
		}
	}()

	result = newResult(word, targetLang)

	aggregated := s.definitions.Lookup(ctx, word, targetLang)
	s.mergeAggregated(result, aggregated)

	if targetLang != "en" && s.translator != nil {
		s.translate(ctx, result, word, targetLang)
	}

	s.pronounce(ctx, result)

	s.history.Record(history.Entry{
		Word:           word,
		TargetLanguage: targetLang,
		Timestamp:      timeNow(),
		HasDefinition:  len(result.Definitions) > 0,
		HasTranslation: result.Translation != nil,
	})
	s.cache.Put(key, result)

	return result, nil
}

func (s *Service) mergeAggregated(result *Result, aggregated dictionary.Result) {
	result.Definitions = append(result.Definitions, aggregated.Definitions...)
	result.Examples = append(result.Examples, aggregated.Examples...)
	result.Synonyms = append(result.Synonyms, aggregated.Synonyms...)
	result.Antonyms = append(result.Antonyms, aggregated.Antonyms...)
	result.Phonetics = append(result.Phonetics, aggregated.Phonetics...)
	if aggregated.AudioURL != "" {
		result.Audio = &aggregated.AudioURL
	}
}

// translate fills the translation fields. Failures are logged and leave the
// result untouched; they never abort the lookup.
func (s *Service) translate(ctx context.Context, result *Result, word, targetLang string) {
	translated, err := s.translator.Translate(ctx, word, targetLang)
	translationsTotal.WithLabelValues(statusLabel(err == nil)).Inc()
	if err != nil {
		s.logger.WithFields(logrus.Fields{"word": word, "target": targetLang}).
			WithError(err).Error("translation failed")
		return
	}

	result.Translation = &translated.Text
	if translated.SourceLanguage != "" {
		result.SourceLanguage = translated.SourceLanguage
	}

	if s.nativeLocales[targetLang] {
		native := s.definitions.LookupNative(ctx, translated.Text, targetLang)
		if !native.Empty() {
			result.TranslatedDefinitions = append(result.TranslatedDefinitions, native.Definitions...)
			result.TranslatedExamples = append(result.TranslatedExamples, native.Examples...)
			return
		}
	}
	s.translateDefinitions(ctx, result, targetLang)
}

// translateDefinitions machine-translates the English definitions and the
// first few examples as a fallback when no native definitions were found.
// Per-item failures skip the item and leave its siblings alone.
func (s *Service) translateDefinitions(ctx context.Context, result *Result, targetLang string) {
	for _, def := range result.Definitions {
		translated, err := s.translator.Translate(ctx, def.Definition, targetLang)
		if err != nil {
			s.logger.WithError(err).Warn("definition translation failed")
			continue
		}
		result.TranslatedDefinitions = append(result.TranslatedDefinitions, dictionary.Definition{
			Definition:   translated.Text,
			PartOfSpeech: def.PartOfSpeech,
		})
	}

	for i, example := range result.Examples {
		if i >= maxTranslatedExamples {
			break
		}
		translated, err := s.translator.Translate(ctx, example, targetLang)
		if err != nil {
			s.logger.WithError(err).Warn("example translation failed")
			continue
		}
		result.TranslatedExamples = append(result.TranslatedExamples, translated.Text)
	}
}

// pronounce synthesizes audio for the source word and, when present, the
// translated word. Failures degrade to null fields.
func (s *Service) pronounce(ctx context.Context, result *Result) {
	audio, err := s.pronouncer.Synthesize(ctx, Truncate(result.Word), result.SourceLanguage)
	pronunciationsTotal.WithLabelValues(statusLabel(err == nil)).Inc()
	if err != nil {
		s.logger.WithField("word", result.Word).WithError(err).Error("pronunciation synthesis failed")
	} else if audio != "" {
		result.Pronunciation = &audio
	}

	if result.Translation == nil {
		return
	}
	translationAudio, err := s.pronouncer.Synthesize(ctx, Truncate(*result.Translation), result.TargetLanguage)
	pronunciationsTotal.WithLabelValues(statusLabel(err == nil)).Inc()
	if err != nil {
		s.logger.WithField("word", *result.Translation).WithError(err).Error("translation pronunciation synthesis failed")
	} else if translationAudio != "" {
		result.TranslationPronunciation = &translationAudio
	}
}
