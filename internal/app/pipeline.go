package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/pagefreq/internal/chart"
	"github.com/hyperifyio/pagefreq/internal/export"
	"github.com/hyperifyio/pagefreq/internal/extract"
	"github.com/hyperifyio/pagefreq/internal/fetch"
	"github.com/hyperifyio/pagefreq/internal/freq"
	"github.com/hyperifyio/pagefreq/internal/segment"
	"github.com/hyperifyio/pagefreq/internal/summary"
)

// Pipeline stages named by ExtractionError.
const (
	StageFetch   = "fetch"
	StageDecode  = "decode"
	StageParse   = "parse"
	StageSegment = "segment"
	StageRender  = "render"
	StageSummary = "summary"
)

// ExtractionError reports a failure after the page was retrieved. Network
// failures are reported as *fetch.NetworkError instead.
type ExtractionError struct {
	Stage string
	Err   error
}

func (e *ExtractionError) Error() string { return e.Stage + ": " + e.Err.Error() }

func (e *ExtractionError) Unwrap() error { return e.Err }

// Fetcher retrieves a page decoded to UTF-8.
type Fetcher interface {
	Get(ctx context.Context, url string) (*fetch.Page, error)
}

// Renderer draws a chart.
type Renderer interface {
	Render(w io.Writer, kind chart.Kind, d chart.Data) error
}

// Summarizer describes a page from its ranked words.
type Summarizer interface {
	Summarize(ctx context.Context, in summary.Input) (string, error)
}

// Request is everything one analysis needs beyond the shared Analyzer.
type Request struct {
	URL       string
	Stopwords freq.StopwordSet
	Kind      chart.Kind
	// TopN bounds the ranking. Zero means freq.DefaultTopN.
	TopN      int
	Summarize bool
	// SkipChart leaves Result.Chart empty.
	SkipChart bool
}

// Result is the outcome of one analysis.
type Result struct {
	URL        string
	Title      string
	Charset    string
	Paragraphs []string
	Frequency  *freq.Frequency
	Top        []freq.WordCount
	Kind       chart.Kind
	// Chart is the rendered PDF.
	Chart     []byte
	Summary   string
	FetchedAt time.Time
}

// Report converts r for the export writers.
func (r *Result) Report() export.Report {
	return export.Report{
		URL:        r.URL,
		Title:      r.Title,
		Charset:    r.Charset,
		Paragraphs: len(r.Paragraphs),
		Top:        r.Top,
		All:        r.Frequency,
		Summary:    r.Summary,
		FetchedAt:  r.FetchedAt,
	}
}

// ChartData is the input the renderers draw from.
func (r *Result) ChartData() chart.Data {
	return chart.Data{Title: r.Title, Top: r.Top, All: r.Frequency}
}

// Analyzer runs fetch, extract, segment, count, rank and render for one
// request at a time. Its fields are shared and only read, so one Analyzer
// may serve concurrent requests.
type Analyzer struct {
	Fetcher    Fetcher
	Extractor  extract.Extractor
	Segmenter  segment.Segmenter
	Renderer   Renderer
	Summarizer Summarizer
	Now        func() time.Time
}

// Analyze runs the pipeline. A *fetch.NetworkError is returned unchanged
// and nothing after the fetch runs; every later failure is an
// *ExtractionError. A page without words is not an error.
func (a *Analyzer) Analyze(ctx context.Context, req Request) (*Result, error) {
	rawURL := strings.TrimSpace(req.URL)
	if rawURL == "" {
		return nil, ErrNoURL
	}
	if !req.Kind.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(req.Kind))
	}
	if req.TopN < 0 {
		return nil, ErrInvalidTopN
	}
	if a.Fetcher == nil || a.Segmenter == nil {
		return nil, errors.New("analyzer not configured")
	}

	page, err := a.Fetcher.Get(ctx, rawURL)
	if err != nil {
		var ne *fetch.NetworkError
		if errors.As(err, &ne) {
			return nil, err
		}
		stage := StageDecode
		if errors.Is(err, fetch.ErrUnsupportedContentType) || errors.Is(err, fetch.ErrBodyTooLarge) {
			stage = StageFetch
		}
		return nil, &ExtractionError{Stage: stage, Err: err}
	}
	log.Debug().Str("url", page.URL).Str("charset", page.Charset).Int("bytes", len(page.Body)).Msg("fetched")

	res := &Result{URL: page.URL, Charset: page.Charset, Kind: req.Kind, FetchedAt: a.now()}

	var doc extract.Document
	if err := guard(StageParse, func() (err error) {
		doc, err = a.extractor().Extract(page.Body)
		return err
	}); err != nil {
		return nil, err
	}
	res.Title = doc.Title
	res.Paragraphs = doc.Paragraphs

	if err := guard(StageSegment, func() error {
		res.Frequency = freq.Analyze(doc.Paragraphs, a.Segmenter, req.Stopwords)
		return nil
	}); err != nil {
		return nil, err
	}
	topN := req.TopN
	if topN == 0 {
		topN = freq.DefaultTopN
	}
	res.Top = res.Frequency.Top(topN)
	log.Debug().Int("paragraphs", len(res.Paragraphs)).Int("distinct", res.Frequency.Len()).Int("tokens", res.Frequency.Total()).Msg("counted")

	if req.Summarize {
		if a.Summarizer == nil {
			return nil, &ExtractionError{Stage: StageSummary, Err: summary.ErrNotConfigured}
		}
		if err := guard(StageSummary, func() (err error) {
			res.Summary, err = a.Summarizer.Summarize(ctx, summary.Input{
				URL:     res.URL,
				Title:   res.Title,
				Top:     res.Top,
				Excerpt: extract.JoinParagraphs(extract.NonEmpty(res.Paragraphs)),
			})
			return err
		}); err != nil {
			return nil, err
		}
	}

	if !req.SkipChart && a.Renderer != nil {
		var buf bytes.Buffer
		if err := guard(StageRender, func() error {
			return a.Renderer.Render(&buf, req.Kind, res.ChartData())
		}); err != nil {
			return nil, err
		}
		res.Chart = buf.Bytes()
	}
	return res, nil
}

func (a *Analyzer) extractor() extract.Extractor {
	if a.Extractor != nil {
		return a.Extractor
	}
	return extract.ParagraphExtractor{}
}

func (a *Analyzer) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// guard runs fn and reports its error or panic as an ExtractionError for
// stage.
func guard(stage string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &ExtractionError{Stage: stage, Err: fmt.Errorf("panic: %v", r)}
		}
	}()
	if err := fn(); err != nil {
		return &ExtractionError{Stage: stage, Err: err}
	}
	return nil
}
