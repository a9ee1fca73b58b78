package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/hyperifyio/pagefreq/internal/app"
	"github.com/hyperifyio/pagefreq/internal/chart"
)

// Analyzer runs one analysis.
type Analyzer interface {
	Analyze(ctx context.Context, req app.Request) (*app.Result, error)
}

// API holds the handlers under /api/v1.
type API struct {
	Analyzer Analyzer
	// Renderer draws export charts; nil means the default renderer.
	Renderer *chart.Renderer
}

// NewAPI creates the handlers.
func NewAPI(an Analyzer, renderer *chart.Renderer) *API {
	return &API{Analyzer: an, Renderer: renderer}
}

// Failure classes shown to users.
const (
	MsgNetwork    = app.MsgNetwork
	MsgExtraction = app.MsgExtraction
	MsgBadRequest = "请求无效"
)

// Classify maps an analysis error to an HTTP status and the user-facing
// message prefix.
func Classify(err error) (status int, prefix string) {
	switch {
	case app.IsNetworkError(err):
		return http.StatusBadGateway, MsgNetwork
	case errors.Is(err, app.ErrNoURL), errors.Is(err, app.ErrUnknownKind),
		errors.Is(err, app.ErrInvalidTopN), errors.Is(err, app.ErrUnknownFormat),
		errors.Is(err, ErrBadStopwords), errors.Is(err, ErrBadForm):
		return http.StatusBadRequest, MsgBadRequest
	default:
		return http.StatusUnprocessableEntity, MsgExtraction
	}
}

// Message is the text shown for err.
func Message(err error) string {
	_, prefix := Classify(err)
	return prefix + ": " + err.Error()
}
