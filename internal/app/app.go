package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/pagefreq/internal/chart"
	"github.com/hyperifyio/pagefreq/internal/extract"
	"github.com/hyperifyio/pagefreq/internal/fetch"
	"github.com/hyperifyio/pagefreq/internal/freq"
	"github.com/hyperifyio/pagefreq/internal/segment"
	"github.com/hyperifyio/pagefreq/internal/summary"
)

// App bundles the long-lived pieces built from a Config: the analyzer with
// its loaded dictionary, the chart renderer and the summarizer when an LLM
// is configured.
type App struct {
	Config   Config
	Analyzer *Analyzer
	Renderer *chart.Renderer
}

// New validates cfg and builds the shared components. Loading the segmenter
// dictionary is the slow part and happens once here.
func New(cfg Config) (*App, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	font, err := chart.FindFont(cfg.FontPath)
	switch {
	case err == nil:
		log.Debug().Str("font", font).Msg("chart font")
	case strings.TrimSpace(cfg.FontPath) != "":
		return nil, fmt.Errorf("font %s: %w", cfg.FontPath, err)
	case errors.Is(err, chart.ErrNoFont):
		log.Warn().Msg("no CJK font found; set --font or PAGEFREQ_FONT for readable charts")
	}
	renderer := &chart.Renderer{FontPath: font}

	seg, err := segment.NewGSE(segment.Options{DictPaths: cfg.DictPaths})
	if err != nil {
		return nil, fmt.Errorf("load dictionary: %w", err)
	}

	httpClient := newHTTPClient()
	an := &Analyzer{
		Fetcher: &fetch.Client{
			HTTPClient:        httpClient,
			UserAgent:         cfg.UserAgent,
			PerRequestTimeout: cfg.Timeout,
			MaxBodyBytes:      cfg.MaxBodyBytes,
		},
		Extractor: extract.ParagraphExtractor{},
		Segmenter: seg,
		Renderer:  renderer,
	}
	if strings.TrimSpace(cfg.LLMModel) != "" {
		an.Summarizer = summary.New(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, httpClient)
	}
	return &App{Config: cfg, Analyzer: an, Renderer: renderer}, nil
}

// LoadStopwords reads the stop-word file at path. An empty path yields the
// empty set.
func LoadStopwords(path string) (freq.StopwordSet, error) {
	if strings.TrimSpace(path) == "" {
		return freq.NewStopwordSet(), nil
	}
	set, err := freq.LoadStopwordsFile(path)
	if err != nil {
		return nil, fmt.Errorf("stopwords: %w", err)
	}
	return set, nil
}

// Request builds a Request from cfg.
func (a *App) Request(stop freq.StopwordSet) (Request, error) {
	kind, err := chart.ParseKind(a.Config.Kind)
	if err != nil {
		return Request{}, fmt.Errorf("%w: %q", ErrUnknownKind, a.Config.Kind)
	}
	return Request{
		URL:       a.Config.URL,
		Stopwords: stop,
		Kind:      kind,
		TopN:      a.Config.TopN,
		Summarize: a.Config.Summarize,
	}, nil
}
