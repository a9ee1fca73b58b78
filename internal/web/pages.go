package web

import (
	"embed"
	"encoding/base64"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/pagefreq/internal/chart"
	"github.com/hyperifyio/pagefreq/internal/export"
	"github.com/hyperifyio/pagefreq/internal/web/api"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"pdfURI": func(b []byte) template.URL {
		return template.URL("data:application/pdf;base64," + base64.StdEncoding.EncodeToString(b))
	},
	"inc": func(i int) int { return i + 1 },
}).ParseFS(templateFS, "templates/*.html"))

// kindOption is one entry of the chart menu.
type kindOption struct {
	Name     string
	Label    string
	Selected bool
}

// pageData feeds index.html.
type pageData struct {
	Title     string
	URL       string
	Kinds     []kindOption
	Formats   []export.Format
	Summarize bool
	// Stopwords is the submitted set, one word per line, kept so exports
	// repeat the same filter.
	Stopwords string
	Error     string
	Result    *resultView
}

type resultView struct {
	api.AnalysisView
	Label string
	Chart []byte
}

type pages struct {
	analyzer api.Analyzer
}

func newPageData(selected chart.Kind) pageData {
	d := pageData{Title: "文本分析与词云生成", Formats: export.Formats()}
	for _, k := range chart.Kinds() {
		d.Kinds = append(d.Kinds, kindOption{Name: k.String(), Label: k.Label(), Selected: k == selected})
	}
	return d
}

func (p *pages) index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", newPageData(chart.WordCloud))
}

// analyze renders the result page. Failures are shown on the page with the
// same status the JSON API would use.
func (p *pages) analyze(c *gin.Context) {
	req, q, err := api.ParseRequest(c)
	d := newPageData(req.Kind)
	d.URL = q.URL
	d.Summarize = q.Summarize
	if err != nil {
		d.Error = api.Message(err)
		c.HTML(http.StatusBadRequest, "index.html", d)
		return
	}
	d.Stopwords = api.StopwordsText(req.Stopwords)

	res, err := p.analyzer.Analyze(c.Request.Context(), req)
	if err != nil {
		status, _ := api.Classify(err)
		log.Warn().Err(err).Str("url", req.URL).Int("status", status).Msg("analysis failed")
		d.Error = api.Message(err)
		c.HTML(status, "index.html", d)
		return
	}
	d.Result = &resultView{
		AnalysisView: api.NewAnalysisView(res),
		Label:        res.Kind.Label(),
		Chart:        res.Chart,
	}
	c.HTML(http.StatusOK, "index.html", d)
}
