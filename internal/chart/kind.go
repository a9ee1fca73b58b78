// Package chart draws word frequency charts as PDF documents.
package chart

import (
	"fmt"
	"strings"
)

// Kind selects a chart type. The set is closed; Render switches over every
// value, so adding one means adding a case there.
type Kind int

const (
	WordCloud Kind = iota
	Bar
	Pie
	Line
	Scatter
	Area
	Heatmap
)

var kindNames = [...]string{
	WordCloud: "wordcloud",
	Bar:       "bar",
	Pie:       "pie",
	Line:      "line",
	Scatter:   "scatter",
	Area:      "area",
	Heatmap:   "heatmap",
}

var kindLabels = [...]string{
	WordCloud: "词云",
	Bar:       "柱状图",
	Pie:       "饼图",
	Line:      "折线图",
	Scatter:   "散点图",
	Area:      "面积图",
	Heatmap:   "热力图",
}

// Kinds lists every chart kind in menu order.
func Kinds() []Kind {
	return []Kind{WordCloud, Bar, Pie, Line, Scatter, Heatmap, Area}
}

// Valid reports whether k is one of the defined kinds.
func (k Kind) Valid() bool { return k >= WordCloud && k <= Heatmap }

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Label is the menu label.
func (k Kind) Label() string {
	if !k.Valid() {
		return k.String()
	}
	return kindLabels[k]
}

// ParseKind accepts the English name (case-insensitive, "word-cloud" and
// "word_cloud" also work) or the menu label.
func ParseKind(s string) (Kind, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("-", "", "_", "", " ", "").Replace(key)
	for k, name := range kindNames {
		if key == name || strings.TrimSpace(s) == kindLabels[k] {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown chart kind %q", s)
}

func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("invalid chart kind %d", int(k))
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	v, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}
