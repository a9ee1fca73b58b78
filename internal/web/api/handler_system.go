package api

import (
	"github.com/gin-gonic/gin"

	"github.com/hyperifyio/pagefreq/internal/app"
	"github.com/hyperifyio/pagefreq/internal/chart"
	"github.com/hyperifyio/pagefreq/internal/export"
	"github.com/hyperifyio/pagefreq/internal/web/transport"
)

// KindView describes one chart kind.
type KindView struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

// Kinds lists the chart kinds in menu order and the export formats.
func (a *API) Kinds(c *gin.Context) {
	kinds := make([]KindView, 0, len(chart.Kinds()))
	for _, k := range chart.Kinds() {
		kinds = append(kinds, KindView{Name: k.String(), Label: k.Label()})
	}
	formats := make([]string, 0, len(export.Formats()))
	for _, f := range export.Formats() {
		formats = append(formats, string(f))
	}
	transport.SendSuccess(c, gin.H{"kinds": kinds, "formats": formats})
}

// Version reports build information.
func (a *API) Version(c *gin.Context) {
	transport.SendSuccess(c, gin.H{
		"version": app.BuildVersion,
		"commit":  app.BuildCommit,
		"date":    app.BuildDate,
	})
}
