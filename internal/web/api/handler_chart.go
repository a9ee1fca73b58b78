package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hyperifyio/pagefreq/internal/export"
	"github.com/hyperifyio/pagefreq/internal/web/transport"
)

// Chart runs an analysis and returns the chart PDF inline.
func (a *API) Chart(c *gin.Context) {
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
	body, err := a.encode(export.PDF, res)
	if err != nil {
		transport.UnprocessableEntity(c, Message(err))
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", "chart-"+res.Kind.String()+".pdf"))
	c.Data(http.StatusOK, export.PDF.ContentType(), body)
}
