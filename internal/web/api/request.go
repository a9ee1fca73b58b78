package api

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/hyperifyio/pagefreq/internal/app"
	"github.com/hyperifyio/pagefreq/internal/chart"
	"github.com/hyperifyio/pagefreq/internal/freq"
)

// Request errors.
var (
	ErrBadForm      = errors.New("invalid form")
	ErrBadStopwords = errors.New("invalid stop-word file")
)

// AnalyzeQuery is the form or JSON body accepted by the analyze endpoints.
// Stop words come from an uploaded "stopwords" file, the newline separated
// stopwords_text field, or the JSON stopwords array.
type AnalyzeQuery struct {
	URL           string   `form:"url" json:"url"`
	Kind          string   `form:"kind" json:"kind"`
	Top           int      `form:"top" json:"top"`
	Summarize     bool     `form:"summarize" json:"summarize"`
	StopwordsText string   `form:"stopwords_text" json:"-"`
	Stopwords     []string `form:"-" json:"stopwords"`
}

// ParseRequest binds the request body into an app.Request.
func ParseRequest(c *gin.Context) (app.Request, AnalyzeQuery, error) {
	var q AnalyzeQuery
	var err error
	if c.ContentType() == binding.MIMEJSON {
		err = c.ShouldBindJSON(&q)
	} else {
		err = c.ShouldBind(&q)
	}
	if err != nil {
		return app.Request{}, q, fmt.Errorf("%w: %v", ErrBadForm, err)
	}
	q.URL = strings.TrimSpace(q.URL)
	if q.URL == "" {
		return app.Request{}, q, app.ErrNoURL
	}

	kind := chart.WordCloud
	if strings.TrimSpace(q.Kind) != "" {
		if kind, err = chart.ParseKind(q.Kind); err != nil {
			return app.Request{}, q, fmt.Errorf("%w: %q", app.ErrUnknownKind, q.Kind)
		}
	}
	if q.Top < 0 {
		return app.Request{}, q, app.ErrInvalidTopN
	}

	stop, err := stopwords(c, q)
	if err != nil {
		return app.Request{}, q, err
	}
	return app.Request{
		URL:       q.URL,
		Stopwords: stop,
		Kind:      kind,
		TopN:      q.Top,
		Summarize: q.Summarize,
	}, q, nil
}

func stopwords(c *gin.Context, q AnalyzeQuery) (freq.StopwordSet, error) {
	set := freq.NewStopwordSet(q.Stopwords...)
	if q.StopwordsText != "" {
		more, err := freq.LoadStopwords(strings.NewReader(q.StopwordsText))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadStopwords, err)
		}
		for w := range more {
			set[w] = struct{}{}
		}
	}
	fh, err := c.FormFile("stopwords")
	if err != nil {
		// absent file
		return set, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadStopwords, err)
	}
	defer f.Close()
	more, err := freq.LoadStopwords(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadStopwords, err)
	}
	for w := range more {
		set[w] = struct{}{}
	}
	return set, nil
}

// StopwordsText renders set one word per line, for resubmission.
func StopwordsText(set freq.StopwordSet) string {
	words := make([]string, 0, len(set))
	for w := range set {
		words = append(words, w)
	}
	sort.Strings(words)
	return strings.Join(words, "\n")
}
