package export

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/hyperifyio/pagefreq/internal/chart"
	"github.com/hyperifyio/pagefreq/internal/freq"
)

// Format is an output encoding for an analysis.
type Format string

const (
	PDF      Format = "pdf"
	XLSX     Format = "xlsx"
	Markdown Format = "md"
	JSON     Format = "json"
)

// ErrUnknownFormat is returned by ParseFormat for names it does not know.
var ErrUnknownFormat = errors.New("unknown output format")

// Formats lists every supported format.
func Formats() []Format { return []Format{PDF, XLSX, Markdown, JSON} }

// ParseFormat accepts a format name or a file extension, with or without
// the leading dot.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "", "pdf":
		return PDF, nil
	case "xlsx", "excel":
		return XLSX, nil
	case "md", "markdown":
		return Markdown, nil
	case "json":
		return JSON, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// ContentType is the MIME type served for f.
func (f Format) ContentType() string {
	switch f {
	case XLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case Markdown:
		return "text/markdown; charset=utf-8"
	case JSON:
		return "application/json; charset=utf-8"
	default:
		return "application/pdf"
	}
}

// Ext is the file extension for f, including the dot.
func (f Format) Ext() string { return "." + string(f) }

// Report is the view of one analysis that every format is written from.
type Report struct {
	URL        string           `json:"url"`
	Title      string           `json:"title,omitempty"`
	Charset    string           `json:"charset,omitempty"`
	Paragraphs int              `json:"paragraphs"`
	Top        []freq.WordCount `json:"top"`
	Summary    string           `json:"summary,omitempty"`
	FetchedAt  time.Time        `json:"fetched_at"`
	All        *freq.Frequency  `json:"-"`
}

// Tokens is the number of counted tokens after filtering.
func (r Report) Tokens() int { return r.All.Total() }

// Distinct is the number of distinct counted words.
func (r Report) Distinct() int { return r.All.Len() }

func (r Report) chartData() chart.Data {
	return chart.Data{Title: r.Title, Top: r.Top, All: r.All}
}

// Write encodes rep as f. kind selects the chart drawn by PDF and XLSX.
func Write(w io.Writer, f Format, kind chart.Kind, renderer *chart.Renderer, rep Report) error {
	switch f {
	case PDF:
		if renderer == nil {
			renderer = &chart.Renderer{}
		}
		return renderer.Render(w, kind, rep.chartData())
	case XLSX:
		return WriteXLSX(w, kind, rep)
	case Markdown:
		return WriteMarkdown(w, rep)
	case JSON:
		return WriteJSON(w, rep)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
}
