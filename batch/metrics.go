package batch

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultConverted = "converted"
	resultCached    = "cached"
	resultFailed    = "failed"
)

type metrics struct {
	// conversions counts Convert calls by outcome.
	conversions *prometheus.CounterVec

	// dfaStates observes the size of every freshly built DFA.
	dfaStates prometheus.Histogram

	// duration observes the time spent in subset construction.
	duration prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)

	return &metrics{
		conversions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "nfa2dfa_conversions_total",
			Help: "The total number of NFA conversions, by result",
		}, []string{"result"}),
		dfaStates: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "nfa2dfa_dfa_states",
			Help:    "Number of states in each constructed DFA",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "nfa2dfa_conversion_seconds",
			Help:    "Time spent determinizing an NFA",
			Buckets: prometheus.ExponentialBuckets(0.0001, 10, 6),
		}),
	}
}
