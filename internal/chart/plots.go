package chart

import (
	"fmt"
	"math"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"github.com/hyperifyio/pagefreq/internal/freq"
)

func (c *canvas) bar(top []freq.WordCount) {
	c.heading(c.title("高频词柱状图", "Top words"))
	p := c.axes(top, c.title("频率", "Frequency"))
	slotW := p.width() / float64(len(top))
	barW := slotW * 0.7
	c.fill(blue)
	for i, wc := range top {
		x := p.slot(i, len(top)) - barW/2
		y := p.y(float64(wc.Count))
		c.pdf.Rect(x, y, barW, p.y1-y, "F")
	}
}

func (c *canvas) line(top []freq.WordCount) {
	c.heading(c.title("高频词折线图", "Top words"))
	p := c.axes(top, c.title("频率", "Frequency"))
	c.stroke(blue)
	c.pdf.SetLineWidth(1.5)
	for i := 1; i < len(top); i++ {
		c.pdf.Line(
			p.slot(i-1, len(top)), p.y(float64(top[i-1].Count)),
			p.slot(i, len(top)), p.y(float64(top[i].Count)),
		)
	}
	if len(top) == 1 {
		c.fill(blue)
		c.pdf.Circle(p.slot(0, 1), p.y(float64(top[0].Count)), 2, "F")
	}
}

func (c *canvas) scatter(top []freq.WordCount) {
	c.heading(c.title("高频词散点图", "Top words"))
	p := c.axes(top, c.title("频率", "Frequency"))
	c.fill(blue)
	for i, wc := range top {
		c.pdf.Circle(p.slot(i, len(top)), p.y(float64(wc.Count)), 4, "F")
	}
}

func (c *canvas) area(top []freq.WordCount) {
	c.heading(c.title("高频词面积图", "Top words"))
	p := c.axes(top, c.title("频率", "Frequency"))
	n := len(top)
	pts := make([]gofpdf.PointType, 0, n+2)
	pts = append(pts, gofpdf.PointType{X: p.slot(0, n), Y: p.y1})
	for i, wc := range top {
		pts = append(pts, gofpdf.PointType{X: p.slot(i, n), Y: p.y(float64(wc.Count))})
	}
	pts = append(pts, gofpdf.PointType{X: p.slot(n-1, n), Y: p.y1})
	if n == 1 {
		// A single point has no width; give it one slot.
		half := p.width() / 4
		pts = []gofpdf.PointType{
			{X: pts[1].X - half, Y: p.y1}, {X: pts[1].X - half, Y: pts[1].Y},
			{X: pts[1].X + half, Y: pts[1].Y}, {X: pts[1].X + half, Y: p.y1},
		}
	}
	c.fill(blue)
	c.pdf.Polygon(pts, "F")
}

// pie draws sectors counter-clockwise from three o'clock, labelled with the
// word outside and the percentage inside.
func (c *canvas) pie(top []freq.WordCount) {
	c.heading(c.title("高频词饼图", "Top words"))
	total := 0
	for _, wc := range top {
		total += wc.Count
	}
	cx, cy, radius := c.w/2, c.h/2+15, 170.0
	start := 0.0
	c.setSize(9)
	for i, wc := range top {
		share := float64(wc.Count) / float64(total)
		end := start + share*2*math.Pi
		c.fill(palette[i%len(palette)])
		c.pdf.Polygon(sector(cx, cy, radius, start, end), "F")

		mid := (start + end) / 2
		c.pdf.SetTextColor(0, 0, 0)
		lx, ly := cx+1.12*radius*math.Cos(mid), cy-1.12*radius*math.Sin(mid)
		if math.Cos(mid) >= 0 {
			c.text(lx, ly+3, wc.Word)
		} else {
			c.text(lx-c.width(wc.Word), ly+3, wc.Word)
		}
		px, py := cx+0.6*radius*math.Cos(mid), cy-0.6*radius*math.Sin(mid)
		c.centered(px, py+3, percent(share))
		start = end
	}
	c.setSize(10)
}

func sector(cx, cy, r, from, to float64) []gofpdf.PointType {
	steps := int(math.Ceil((to-from)/(math.Pi/90))) + 1
	pts := make([]gofpdf.PointType, 0, steps+2)
	pts = append(pts, gofpdf.PointType{X: cx, Y: cy})
	for i := 0; i <= steps; i++ {
		a := from + (to-from)*float64(i)/float64(steps)
		pts = append(pts, gofpdf.PointType{X: cx + r*math.Cos(a), Y: cy - r*math.Sin(a)})
	}
	return pts
}

func percent(share float64) string {
	return fmt.Sprintf("%.1f%%", share*100)
}

// heatmap draws one row of cells, shaded from the smallest to the largest
// count, each annotated with its count, plus a color bar.
func (c *canvas) heatmap(top []freq.WordCount) {
	c.heading(c.title("词频热力图", "Word frequency heatmap"))
	lo, hi := top[0].Count, top[0].Count
	for _, wc := range top {
		lo = min(lo, wc.Count)
		hi = max(hi, wc.Count)
	}
	x0, x1 := 70.0, c.w-80
	y0, y1 := 150.0, 290.0
	cellW := (x1 - x0) / float64(len(top))

	c.setSize(10)
	for i, wc := range top {
		t := 1.0
		if hi > lo {
			t = float64(wc.Count-lo) / float64(hi-lo)
		}
		col := ylGnBu(t)
		c.fill(col)
		x := x0 + float64(i)*cellW
		c.pdf.Rect(x, y0, cellW, y1-y0, "F")
		if luminance(col) < 0.5 {
			c.pdf.SetTextColor(255, 255, 255)
		} else {
			c.pdf.SetTextColor(0, 0, 0)
		}
		c.centered(x+cellW/2, (y0+y1)/2+4, strconv.Itoa(wc.Count))
		c.pdf.SetTextColor(0, 0, 0)
		c.rotated(x+cellW/2, y1+14, 45, wc.Word)
	}
	c.pdf.TransformBegin()
	c.pdf.TransformRotate(90, x0-12, (y0+y1)/2)
	c.centered(x0-12, (y0+y1)/2, c.title("频率", "Frequency"))
	c.pdf.TransformEnd()

	// color bar
	barX, barW := c.w-55, 14.0
	const bands = 40
	bandH := (y1 - y0) / bands
	for i := 0; i < bands; i++ {
		c.fill(ylGnBu(1 - float64(i)/float64(bands-1)))
		c.pdf.Rect(barX, y0+float64(i)*bandH, barW, bandH+0.2, "F")
	}
	c.setSize(8)
	c.text(barX+barW+3, y0+6, strconv.Itoa(hi))
	c.text(barX+barW+3, y1, strconv.Itoa(lo))
	c.setSize(10)
}

var ylGnBuStops = []rgb{
	{255, 255, 217}, {237, 248, 177}, {199, 233, 180}, {127, 205, 187}, {65, 182, 196},
	{29, 145, 192}, {34, 94, 168}, {37, 52, 148}, {8, 29, 88},
}

// ylGnBu ramps from yellow through green to blue for t in [0,1].
func ylGnBu(t float64) rgb {
	return ramp(ylGnBuStops, t)
}

// viridisStops colors the word cloud.
var viridisStops = []rgb{
	{68, 1, 84}, {72, 40, 120}, {62, 74, 137}, {49, 104, 142}, {38, 130, 142},
	{31, 158, 137}, {53, 183, 121}, {109, 205, 89}, {180, 222, 44}, {253, 231, 37},
}

func ramp(stops []rgb, t float64) rgb {
	t = math.Max(0, math.Min(1, t))
	pos := t * float64(len(stops)-1)
	i := int(pos)
	if i >= len(stops)-1 {
		return stops[len(stops)-1]
	}
	f := pos - float64(i)
	a, b := stops[i], stops[i+1]
	mix := func(x, y int) int { return int(math.Round(float64(x) + (float64(y)-float64(x))*f)) }
	return rgb{mix(a.r, b.r), mix(a.g, b.g), mix(a.b, b.b)}
}

func luminance(c rgb) float64 {
	return (0.299*float64(c.r) + 0.587*float64(c.g) + 0.114*float64(c.b)) / 255
}
