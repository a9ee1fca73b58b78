package api

import (
	"bytes"

	"github.com/gin-gonic/gin"

	"github.com/hyperifyio/pagefreq/internal/app"
	"github.com/hyperifyio/pagefreq/internal/export"
	"github.com/hyperifyio/pagefreq/internal/web/transport"
)

// Export runs an analysis and returns it as a download in the format named
// by the format query parameter.
func (a *API) Export(c *gin.Context) {
	format, err := export.ParseFormat(c.DefaultQuery("format", c.PostForm("format")))
	if err != nil {
		transport.BadRequest(c, Message(err))
		return
	}
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
	body, err := a.encode(format, res)
	if err != nil {
		transport.UnprocessableEntity(c, Message(err))
		return
	}
	transport.SendAttachment(c, app.DefaultOutputPath(res.URL, res.Kind, format), format.ContentType(), body)
}

// encode writes res as format. Failures are reported as render-stage
// extraction errors.
func (a *API) encode(format export.Format, res *app.Result) ([]byte, error) {
	var buf bytes.Buffer
	if err := export.Write(&buf, format, res.Kind, a.Renderer, res.Report()); err != nil {
		return nil, &app.ExtractionError{Stage: app.StageRender, Err: err}
	}
	return buf.Bytes(), nil
}
