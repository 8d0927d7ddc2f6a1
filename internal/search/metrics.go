package search

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	searchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lingodex_searches_total",
			Help: "Total number of word searches by cache outcome",
		},
		[]string{"cache"},
	)

	translationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lingodex_translations_total",
			Help: "Total number of word translations by status",
		},
		[]string{"status"},
	)

	pronunciationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lingodex_pronunciations_total",
			Help: "Total number of pronunciation syntheses by status",
		},
		[]string{"status"},
	)
)

func statusLabel(ok bool) string {
	if ok {
		return "success"
	}
	return "error"
}
