package chart

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/jung-kurt/gofpdf"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/pagefreq/internal/freq"
)

const (
	pageWidth  = 800.0
	pageHeight = 500.0

	cloudWidth  = 800.0
	cloudHeight = 400.0

	unicodeFamily = "cjk"
)

// Data is what a chart is drawn from. Top feeds every kind except the word
// cloud, which sizes words from All.
type Data struct {
	Title string
	Top   []freq.WordCount
	All   *freq.Frequency
}

// Empty reports whether there is nothing to plot.
func (d Data) Empty() bool {
	return len(d.Top) == 0 && d.All.Len() == 0
}

// Renderer draws charts. FontPath should name a TrueType font able to render
// the words; without one the core Helvetica font is used and ideographs come
// out as placeholders.
type Renderer struct {
	FontPath string
	// MaxCloudWords caps the words placed in a word cloud. Zero means 200.
	MaxCloudWords int
}

// Render writes a one-page PDF for kind. Empty data yields a page saying so.
func (r *Renderer) Render(w io.Writer, kind Kind, d Data) error {
	if !kind.Valid() {
		return fmt.Errorf("render: unknown chart kind %d", int(kind))
	}
	width, height := pageWidth, pageHeight
	if kind == WordCloud {
		width, height = cloudWidth, cloudHeight
	}
	c, err := r.newCanvas(width, height)
	if err != nil {
		return err
	}
	if d.Title != "" {
		c.pdf.SetTitle(d.Title, true)
	}
	c.pdf.SetCreator("pagefreq", false)

	if d.Empty() {
		c.empty(kind)
	} else if err := c.draw(kind, d, r.maxCloudWords()); err != nil {
		return err
	}
	if err := c.pdf.Error(); err != nil {
		return fmt.Errorf("render %s: %w", kind, err)
	}
	if err := c.pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// draw lays out one kind. Every Kind has a case here.
func (c *canvas) draw(kind Kind, d Data, maxCloud int) error {
	switch kind {
	case WordCloud:
		c.wordCloud(d.All, maxCloud)
	case Bar:
		c.bar(d.Top)
	case Pie:
		c.pie(d.Top)
	case Line:
		c.line(d.Top)
	case Scatter:
		c.scatter(d.Top)
	case Area:
		c.area(d.Top)
	case Heatmap:
		c.heatmap(d.Top)
	default:
		return fmt.Errorf("render: no layout for chart kind %d", int(kind))
	}
	return nil
}

func (r *Renderer) maxCloudWords() int {
	if r.MaxCloudWords > 0 {
		return r.MaxCloudWords
	}
	return 200
}

// canvas is one PDF page plus the font state needed to measure text.
type canvas struct {
	pdf     *gofpdf.Fpdf
	family  string
	unicode bool
	tr      func(string) string
	w, h    float64
}

// newCanvas reads the font itself: gofpdf resolves font file names against
// its font directory, which breaks absolute paths.
func (r *Renderer) newCanvas(width, height float64) (*canvas, error) {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: width, Ht: height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	c := &canvas{pdf: pdf, w: width, h: height, family: "Helvetica"}
	if r.FontPath != "" {
		ttf, err := os.ReadFile(r.FontPath)
		if err != nil {
			return nil, fmt.Errorf("load font: %w", err)
		}
		pdf.AddUTF8FontFromBytes(unicodeFamily, "", ttf)
		c.family = unicodeFamily
		c.unicode = true
		c.tr = func(s string) string { return s }
	} else {
		log.Warn().Msg("no CJK font configured; ideographic labels will not render")
		c.tr = pdf.UnicodeTranslatorFromDescriptor("")
	}
	pdf.SetFont(c.family, "", 10)
	pdf.AddPage()
	pdf.SetFillColor(255, 255, 255)
	pdf.Rect(0, 0, width, height, "F")
	return c, nil
}

// title picks the Chinese text when the font can show it.
func (c *canvas) title(zh, en string) string {
	if c.unicode {
		return zh
	}
	return en
}

func (c *canvas) setSize(pt float64) { c.pdf.SetFontSize(pt) }

func (c *canvas) width(s string) float64 { return c.pdf.GetStringWidth(c.tr(s)) }

func (c *canvas) text(x, y float64, s string) { c.pdf.Text(x, y, c.tr(s)) }

// centered draws s with its horizontal center at x and baseline at y.
func (c *canvas) centered(x, y float64, s string) {
	c.text(x-c.width(s)/2, y, s)
}

// rotated draws s ending at (x, y), turned counter-clockwise by deg.
func (c *canvas) rotated(x, y, deg float64, s string) {
	c.pdf.TransformBegin()
	c.pdf.TransformRotate(deg, x, y)
	c.text(x-c.width(s), y, s)
	c.pdf.TransformEnd()
}

func (c *canvas) heading(s string) {
	c.pdf.SetTextColor(0, 0, 0)
	c.setSize(16)
	c.centered(c.w/2, 30, s)
	c.setSize(10)
}

func (c *canvas) empty(kind Kind) {
	c.heading(c.title(kind.Label(), kind.String()))
	c.pdf.SetTextColor(110, 110, 110)
	c.setSize(14)
	c.centered(c.w/2, c.h/2, c.title("没有可统计的词汇", "No words to display"))
}

// plot is the rectangle inside the axes, in page points.
type plot struct {
	x0, y0, x1, y1 float64
	max            float64
}

func (p plot) width() float64  { return p.x1 - p.x0 }
func (p plot) height() float64 { return p.y1 - p.y0 }

// y maps a count to a page coordinate.
func (p plot) y(v float64) float64 {
	if p.max <= 0 {
		return p.y1
	}
	return p.y1 - v/p.max*p.height()
}

// slot returns the center of category i of n.
func (p plot) slot(i, n int) float64 {
	step := p.width() / float64(n)
	return p.x0 + step*(float64(i)+0.5)
}

// axes draws the frame, y ticks and rotated x labels and returns the plot.
func (c *canvas) axes(top []freq.WordCount, yLabel string) plot {
	maxCount := 0
	for _, wc := range top {
		if wc.Count > maxCount {
			maxCount = wc.Count
		}
	}
	step := niceStep(float64(maxCount))
	p := plot{x0: 70, y0: 55, x1: c.w - 30, y1: c.h - 110}
	p.max = math.Ceil(float64(maxCount)/step) * step
	if p.max == 0 {
		p.max = 1
	}

	c.pdf.SetLineWidth(0.5)
	c.pdf.SetTextColor(60, 60, 60)
	c.setSize(9)
	for v := 0.0; v <= p.max+step/2; v += step {
		y := p.y(v)
		c.pdf.SetDrawColor(225, 225, 225)
		c.pdf.Line(p.x0, y, p.x1, y)
		label := strconv.FormatFloat(v, 'f', -1, 64)
		c.text(p.x0-6-c.width(label), y+3, label)
	}
	c.pdf.SetDrawColor(0, 0, 0)
	c.pdf.Line(p.x0, p.y0, p.x0, p.y1)
	c.pdf.Line(p.x0, p.y1, p.x1, p.y1)

	c.setSize(10)
	for i, wc := range top {
		x := p.slot(i, len(top))
		c.pdf.Line(x, p.y1, x, p.y1+4)
		c.rotated(x, p.y1+14, 45, wc.Word)
	}
	if yLabel != "" {
		c.pdf.TransformBegin()
		c.pdf.TransformRotate(90, 22, (p.y0+p.y1)/2)
		c.centered(22, (p.y0+p.y1)/2, yLabel)
		c.pdf.TransformEnd()
	}
	return p
}

// niceStep returns a 1/2/5 x 10^k tick step giving about five ticks.
func niceStep(max float64) float64 {
	if max <= 5 {
		return 1
	}
	raw := max / 5
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	switch norm := raw / mag; {
	case norm <= 1:
		return mag
	case norm <= 2:
		return 2 * mag
	case norm <= 5:
		return 5 * mag
	default:
		return 10 * mag
	}
}

type rgb struct{ r, g, b int }

// palette is the ten-color categorical cycle used for pie sectors.
var palette = []rgb{
	{31, 119, 180}, {255, 127, 14}, {44, 160, 44}, {214, 39, 40}, {148, 103, 189},
	{140, 86, 75}, {227, 119, 194}, {127, 127, 127}, {188, 189, 34}, {23, 190, 207},
}

var blue = palette[0]

func (c *canvas) fill(col rgb)   { c.pdf.SetFillColor(col.r, col.g, col.b) }
func (c *canvas) stroke(col rgb) { c.pdf.SetDrawColor(col.r, col.g, col.b) }
