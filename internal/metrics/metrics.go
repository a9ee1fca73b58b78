// Package metrics exposes Prometheus collectors for analyses served over
// HTTP.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hyperifyio/pagefreq/internal/app"
)

// Outcome labels.
const (
	OutcomeOK         = "ok"
	OutcomeNetwork    = "network"
	OutcomeExtraction = "extraction"
	OutcomeInvalid    = "invalid"
)

// Analyzer is the pipeline being instrumented.
type Analyzer interface {
	Analyze(ctx context.Context, req app.Request) (*app.Result, error)
}

// Metrics owns a private registry so several servers (and tests) can
// coexist in one process.
type Metrics struct {
	reg       *prometheus.Registry
	analyses  *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	paragraph prometheus.Histogram
	wordCount *prometheus.GaugeVec
}

// New registers the collectors.
func New() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		analyses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pagefreq_analyses_total",
			Help: "Analyses run, by chart kind and outcome.",
		}, []string{"kind", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pagefreq_analysis_duration_seconds",
			Help:    "Wall time of one analysis including the fetch.",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		}, []string{"outcome"}),
		paragraph: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "pagefreq_paragraphs",
			Help:    "Paragraphs extracted per page.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}),
		wordCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "pagefreq_top_word_count",
			Help: "Count of each ranked word from the latest analysis of a URL.",
		}, []string{"url", "word"}),
	}
	m.reg.MustRegister(
		m.analyses, m.duration, m.paragraph, m.wordCount,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

// Registry is exposed for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

// Outcome classifies an analysis error.
func Outcome(err error) string {
	var ee *app.ExtractionError
	switch {
	case err == nil:
		return OutcomeOK
	case app.IsNetworkError(err):
		return OutcomeNetwork
	case errors.As(err, &ee):
		return OutcomeExtraction
	default:
		return OutcomeInvalid
	}
}

// Observe records one finished analysis.
func (m *Metrics) Observe(req app.Request, res *app.Result, err error, elapsed time.Duration) {
	outcome := Outcome(err)
	m.analyses.WithLabelValues(req.Kind.String(), outcome).Inc()
	m.duration.WithLabelValues(outcome).Observe(elapsed.Seconds())
	if err != nil || res == nil {
		return
	}
	m.paragraph.Observe(float64(len(res.Paragraphs)))
	m.wordCount.DeletePartialMatch(prometheus.Labels{"url": res.URL})
	for _, wc := range res.Top {
		m.wordCount.WithLabelValues(res.URL, wc.Word).Set(float64(wc.Count))
	}
}

// Instrument wraps an analyzer so every call is observed.
func (m *Metrics) Instrument(an Analyzer) Analyzer {
	return &instrumented{next: an, m: m, now: time.Now}
}

type instrumented struct {
	next Analyzer
	m    *Metrics
	now  func() time.Time
}

func (i *instrumented) Analyze(ctx context.Context, req app.Request) (*app.Result, error) {
	start := i.now()
	res, err := i.next.Analyze(ctx, req)
	i.m.Observe(req, res, err, i.now().Sub(start))
	return res, err
}
