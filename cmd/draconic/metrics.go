package main

import (
	"net/http"

	"github.com/cours-de-latin/draconic"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type metrics struct {
	registry        *prometheus.Registry
	classifications *prometheus.CounterVec
}

func newMetrics(lex *draconic.Lexicon) *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		classifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "draconic",
			Name:      "classifications_total",
			Help:      "Words classified, by verdict and operation.",
		}, []string{"verdict", "operation"}),
	}
	m.registry.MustRegister(
		m.classifications,
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "draconic",
			Name:      "entries",
			Help:      "Dictionary entries currently stored.",
		}, func() float64 { return float64(len(lex.Words(""))) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "draconic",
			Name:      "syllables_taken",
			Help:      "Inventory syllables that have been claimed.",
		}, func() float64 { return float64(len(lex.Syllables(draconic.PoolTaken, ""))) }),
	)
	return m
}

func (m *metrics) observe(operation string, v draconic.Verdict) {
	m.classifications.WithLabelValues(string(v), operation).Inc()
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
