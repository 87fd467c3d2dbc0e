// Package metrics exports analysis counters in the Prometheus text format.
//
// A Recorder owns a private registry, so several runs in one process never
// collide on registration. The CLI writes the registry to a file with
// WriteFile, suitable for the node_exporter textfile collector.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/pthm/ideadensity/internal/density"
)

// Namespace for all metrics
const namespace = "ideadensity"

// Recorder holds the counters for analysis runs. It implements
// density.Observer and is safe for concurrent use.
type Recorder struct {
	registry *prometheus.Registry

	// Sentences counts analysed sentences.
	Sentences prometheus.Counter

	// Propositions counts emitted propositions.
	// Labels: kind (P, M, C, APPOS, WHAT)
	Propositions *prometheus.CounterVec

	// Words counts words measured.
	Words prometheus.Counter

	// Unrecognized counts constructs no ruleset could interpret.
	// Labels: label (the literal dependency relation)
	Unrecognized *prometheus.CounterVec

	// SentenceDensity is the distribution of per-sentence idea density.
	SentenceDensity prometheus.Histogram
}

var _ density.Observer = (*Recorder)(nil)

// New creates a Recorder with its metrics registered on a fresh registry
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		Sentences: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sentences_total",
			Help:      "Total number of sentences analysed",
		}),
		Propositions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "propositions_total",
				Help:      "Total propositions emitted by kind",
			},
			[]string{"kind"},
		),
		Words: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "words_total",
			Help:      "Total words counted, punctuation excluded",
		}),
		Unrecognized: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "unrecognized_total",
				Help:      "Total constructs no ruleset could interpret, by relation",
			},
			[]string{"label"},
		),
		SentenceDensity: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "sentence_density",
			Help:      "Propositions per word of each sentence",
			Buckets:   []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.8, 1.0},
		}),
	}
	r.registry.MustRegister(r.Sentences, r.Propositions, r.Words, r.Unrecognized, r.SentenceDensity)
	return r
}

// Registry returns the recorder's private registry
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveSentence records the counts of one analysed sentence
func (r *Recorder) ObserveSentence(result density.SentenceResult) {
	r.Sentences.Inc()
	r.Words.Add(float64(result.Words))
	for _, p := range result.Propositions {
		r.Propositions.WithLabelValues(p.Kind.String()).Inc()
	}
	if result.Words > 0 {
		r.SentenceDensity.Observe(result.Density)
	}
}

// ObserveUnrecognized records a construct no ruleset could interpret
func (r *Recorder) ObserveUnrecognized(rel string) {
	r.Unrecognized.WithLabelValues(rel).Inc()
}

// WriteFile writes every metric to path in the Prometheus text format
func (r *Recorder) WriteFile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}
