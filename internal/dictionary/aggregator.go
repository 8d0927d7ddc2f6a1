package dictionary

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Aggregator tries definition providers in priority order and stops at the
// first one that yields at least one appropriate definition. Provider
// failures are logged and treated as empty results, never propagated.
type Aggregator struct {
	providers []Provider
	logger    *logrus.Logger
}

func NewAggregator(logger *logrus.Logger, providers ...Provider) *Aggregator {
	return &Aggregator{
		providers: providers,
		logger:    logger,
	}
}

// Lookup runs the priority chain for word in lang.
func (a *Aggregator) Lookup(ctx context.Context, word, lang string) Result {
	for _, provider := range a.providers {
		if !provider.Supports(lang) {
			continue
		}
		result, err := a.tryProvider(ctx, provider, word, lang)
		if err != nil {
			continue
		}
		if !result.Empty() {
			return result
		}
	}
	return Result{}
}

// LookupNative fetches definitions for a word already in lang, bypassing the
// English-only gate of the primary provider. The slang source still acts as
// the fallback.
func (a *Aggregator) LookupNative(ctx context.Context, word, lang string) Result {
	if len(a.providers) == 0 {
		return Result{}
	}
	result, err := a.tryProvider(ctx, a.providers[0], word, lang)
	if err == nil && !result.Empty() {
		return result
	}
	for _, provider := range a.providers[1:] {
		if !provider.Supports(lang) {
			continue
		}
		result, err := a.tryProvider(ctx, provider, word, lang)
		if err != nil {
			continue
		}
		if !result.Empty() {
			return result
		}
	}
	return Result{}
}

func (a *Aggregator) tryProvider(ctx context.Context, provider Provider, word, lang string) (Result, error) {
	result, err := provider.Lookup(ctx, word, lang)
	if err != nil {
		a.logger.WithFields(logrus.Fields{
			"source": provider.Name(),
			"word":   word,
			"lang":   lang,
		}).WithError(err).Error("definition source failed")
		return Result{}, err
	}
	return result, nil
}
