package export

import (
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"github.com/hyperifyio/pagefreq/internal/chart"
)

const (
	rankingSheet   = "Ranking"
	heatmapSheet   = "Heatmap"
	frequencySheet = "Frequency"
)

// YlGnBu end points for the spreadsheet color scales.
const (
	scaleMin = "#FFFFD9"
	scaleMid = "#41B6C4"
	scaleMax = "#081D58"
)

var nativeChart = map[chart.Kind]excelize.ChartType{
	chart.Bar:     excelize.Col,
	chart.Pie:     excelize.Pie,
	chart.Line:    excelize.Line,
	chart.Scatter: excelize.Scatter,
	chart.Area:    excelize.Area,
}

// WriteXLSX writes a workbook whose first sheet ranks the top words. Kinds
// with a native spreadsheet chart get one next to the table; the heatmap is
// a color-scaled row and the word cloud a color-scaled table of every word.
func WriteXLSX(w io.Writer, kind chart.Kind, rep Report) error {
	if !kind.Valid() {
		return fmt.Errorf("xlsx: unknown chart kind %d", int(kind))
	}
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", rankingSheet); err != nil {
		return fmt.Errorf("xlsx: %w", err)
	}
	if err := writeRanking(f, rep); err != nil {
		return fmt.Errorf("xlsx ranking: %w", err)
	}

	n := len(rep.Top)
	var err error
	switch kind {
	case chart.Bar, chart.Pie, chart.Line, chart.Scatter, chart.Area:
		if n > 0 {
			err = addNativeChart(f, kind, n)
		}
	case chart.Heatmap:
		err = writeHeatmap(f, rep)
	case chart.WordCloud:
		err = writeFrequency(f, rep)
	}
	if err != nil {
		return fmt.Errorf("xlsx %s: %w", kind, err)
	}

	log.Debug().Str("kind", kind.String()).Int("rows", n).Msg("xlsx export")
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func writeRanking(f *excelize.File, rep Report) error {
	header := []interface{}{"排名", "词语", "频率"}
	if err := f.SetSheetRow(rankingSheet, "A1", &header); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(rankingSheet, "A1", "C1", bold); err != nil {
		return err
	}
	_ = f.SetColWidth(rankingSheet, "A", "A", 8)
	_ = f.SetColWidth(rankingSheet, "B", "B", 20)
	_ = f.SetColWidth(rankingSheet, "C", "C", 10)

	for i, wc := range rep.Top {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{i + 1, wc.Word, wc.Count}
		if err := f.SetSheetRow(rankingSheet, cell, &row); err != nil {
			return err
		}
	}
	if len(rep.Top) == 0 {
		return f.SetCellValue(rankingSheet, "B2", "没有可统计的词汇")
	}
	return nil
}

func addNativeChart(f *excelize.File, kind chart.Kind, n int) error {
	last := n + 1
	series := excelize.ChartSeries{
		Name:       fmt.Sprintf("%s!$C$1", rankingSheet),
		Categories: fmt.Sprintf("%s!$B$2:$B$%d", rankingSheet, last),
		Values:     fmt.Sprintf("%s!$C$2:$C$%d", rankingSheet, last),
	}
	if kind == chart.Scatter {
		series.Marker = excelize.ChartMarker{Symbol: "circle", Size: 7}
	}
	c := &excelize.Chart{
		Type:      nativeChart[kind],
		Series:    []excelize.ChartSeries{series},
		Title:     []excelize.RichTextRun{{Text: chartTitle(kind)}},
		Legend:    excelize.ChartLegend{Position: "none"},
		Dimension: excelize.ChartDimension{Width: 800, Height: 500},
	}
	if kind == chart.Pie {
		c.Legend = excelize.ChartLegend{Position: "right"}
		c.PlotArea = excelize.ChartPlotArea{ShowPercent: true}
	}
	return f.AddChart(rankingSheet, "E2", c)
}

func chartTitle(kind chart.Kind) string { return "高频词" + kind.Label() }

// writeHeatmap lays the ranking out as one row of counts under a row of
// words and shades the counts with a three color scale.
func writeHeatmap(f *excelize.File, rep Report) error {
	if _, err := f.NewSheet(heatmapSheet); err != nil {
		return err
	}
	if len(rep.Top) == 0 {
		return f.SetCellValue(heatmapSheet, "A1", "没有可统计的词汇")
	}
	words := make([]interface{}, 0, len(rep.Top)+1)
	counts := make([]interface{}, 0, len(rep.Top)+1)
	words = append(words, "词语")
	counts = append(counts, "频率")
	for _, wc := range rep.Top {
		words = append(words, wc.Word)
		counts = append(counts, wc.Count)
	}
	if err := f.SetSheetRow(heatmapSheet, "A1", &words); err != nil {
		return err
	}
	if err := f.SetSheetRow(heatmapSheet, "A2", &counts); err != nil {
		return err
	}
	first, _ := excelize.CoordinatesToCellName(2, 2)
	last, _ := excelize.CoordinatesToCellName(len(rep.Top)+1, 2)
	return colorScale(f, heatmapSheet, first+":"+last)
}

// writeFrequency lists every counted word in first-seen order.
func writeFrequency(f *excelize.File, rep Report) error {
	if _, err := f.NewSheet(frequencySheet); err != nil {
		return err
	}
	header := []interface{}{"词语", "频率"}
	if err := f.SetSheetRow(frequencySheet, "A1", &header); err != nil {
		return err
	}
	_ = f.SetColWidth(frequencySheet, "A", "A", 20)
	row := 2
	var err error
	rep.All.Each(func(word string, count int) bool {
		cell, _ := excelize.CoordinatesToCellName(1, row)
		vals := []interface{}{word, count}
		if err = f.SetSheetRow(frequencySheet, cell, &vals); err != nil {
			return false
		}
		row++
		return true
	})
	if err != nil || row == 2 {
		return err
	}
	return colorScale(f, frequencySheet, fmt.Sprintf("B2:B%d", row-1))
}

func colorScale(f *excelize.File, sheet, ref string) error {
	return f.SetConditionalFormat(sheet, ref, []excelize.ConditionalFormatOptions{{
		Type:     "3_color_scale",
		Criteria: "=",
		MinType:  "min",
		MidType:  "percentile",
		MidValue: "50",
		MaxType:  "max",
		MinColor: scaleMin,
		MidColor: scaleMid,
		MaxColor: scaleMax,
	}})
}
