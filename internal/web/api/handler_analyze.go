package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/pagefreq/internal/app"
	"github.com/hyperifyio/pagefreq/internal/freq"
	"github.com/hyperifyio/pagefreq/internal/web/transport"
)

// AnalysisView is the JSON form of an analysis.
type AnalysisView struct {
	URL        string           `json:"url"`
	Title      string           `json:"title"`
	Charset    string           `json:"charset"`
	Kind       string           `json:"kind"`
	Paragraphs []string         `json:"paragraphs"`
	Top        []freq.WordCount `json:"top"`
	Tokens     int              `json:"tokens"`
	Distinct   int              `json:"distinct"`
	Summary    string           `json:"summary,omitempty"`
	FetchedAt  time.Time        `json:"fetched_at"`
}

// NewAnalysisView converts res.
func NewAnalysisView(res *app.Result) AnalysisView {
	v := AnalysisView{
		URL:        res.URL,
		Title:      res.Title,
		Charset:    res.Charset,
		Kind:       res.Kind.String(),
		Paragraphs: res.Paragraphs,
		Top:        res.Top,
		Tokens:     res.Frequency.Total(),
		Distinct:   res.Frequency.Len(),
		Summary:    res.Summary,
		FetchedAt:  res.FetchedAt,
	}
	if v.Paragraphs == nil {
		v.Paragraphs = []string{}
	}
	if v.Top == nil {
		v.Top = []freq.WordCount{}
	}
	return v
}

// Analyze runs an analysis and returns its ranking as JSON.
func (a *API) Analyze(c *gin.Context) {
	req, _, err := ParseRequest(c)
	if err != nil {
		transport.BadRequest(c, Message(err))
		return
	}
	req.SkipChart = true
	res, ok := a.run(c, req)
	if !ok {
		return
	}
	transport.SendSuccess(c, NewAnalysisView(res))
}

// run analyzes req and writes the error response on failure.
func (a *API) run(c *gin.Context, req app.Request) (*app.Result, bool) {
	res, err := a.Analyzer.Analyze(c.Request.Context(), req)
	if err != nil {
		status, _ := Classify(err)
		log.Warn().Err(err).Str("url", req.URL).Int("status", status).Msg("analysis failed")
		transport.SendError(c, status, errorKind(status), Message(err))
		return nil, false
	}
	return res, true
}

func errorKind(status int) string {
	switch status {
	case http.StatusBadGateway:
		return "network"
	case http.StatusBadRequest:
		return "request"
	}
	return "extraction"
}
