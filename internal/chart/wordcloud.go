package chart

import (
	"math"

	"github.com/hyperifyio/pagefreq/internal/freq"
)

const (
	cloudMaxFont = 72.0
	cloudMinFont = 6.0
	cloudMargin  = 4.0
	// spiralSteps bounds the positions tried per word and size.
	spiralSteps = 4000
)

type box struct{ x, y, w, h float64 }

func (a box) overlaps(b box) bool {
	return a.x < b.x+b.w && b.x < a.x+a.w && a.y < b.y+b.h && b.y < a.y+a.h
}

// placed is a word with its final position and size.
type placed struct {
	word string
	size float64
	box  box
}

// wordCloud lays words out from the center along an Archimedean spiral,
// largest first. A word's font size is proportional to its count; a word
// that does not fit is shrunk until it does or drops below cloudMinFont.
func (c *canvas) wordCloud(all *freq.Frequency, maxWords int) {
	words := all.Top(maxWords)
	layout := c.layoutCloud(words)
	for i, p := range layout {
		col := ramp(viridisStops, float64(i%len(viridisStops))/float64(len(viridisStops)-1))
		c.pdf.SetTextColor(col.r, col.g, col.b)
		c.setSize(p.size)
		// baseline sits at ~80% of the em box
		c.text(p.box.x, p.box.y+p.size*0.8, p.word)
	}
}

func (c *canvas) layoutCloud(words []freq.WordCount) []placed {
	if len(words) == 0 {
		return nil
	}
	maxCount := float64(words[0].Count)
	out := make([]placed, 0, len(words))
	cx, cy := c.w/2, c.h/2
	aspect := c.w / c.h

	for _, wc := range words {
		size := cloudMaxFont * float64(wc.Count) / maxCount
		if size < cloudMinFont {
			size = cloudMinFont
		}
		for size >= cloudMinFont {
			c.setSize(size)
			bw := c.width(wc.Word) + cloudMargin
			bh := size + cloudMargin
			if b, ok := c.spiralFit(out, cx, cy, aspect, bw, bh); ok {
				out = append(out, placed{word: wc.Word, size: size, box: b})
				break
			}
			size *= 0.85
		}
	}
	return out
}

func (c *canvas) spiralFit(taken []placed, cx, cy, aspect, bw, bh float64) (box, bool) {
	if bw > c.w || bh > c.h {
		return box{}, false
	}
	for i := 0; i < spiralSteps; i++ {
		t := float64(i) * 0.1
		r := 1.5 * t
		b := box{
			x: cx + aspect*r*math.Cos(t) - bw/2,
			y: cy + r*math.Sin(t) - bh/2,
			w: bw,
			h: bh,
		}
		if b.x < 0 || b.y < 0 || b.x+b.w > c.w || b.y+b.h > c.h {
			continue
		}
		free := true
		for _, p := range taken {
			if b.overlaps(p.box) {
				free = false
				break
			}
		}
		if free {
			return b, true
		}
	}
	return box{}, false
}
