package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
)

// WriteMarkdown writes a Markdown report with the ranking table and a
// mermaid pie chart of the ranked words.
func WriteMarkdown(w io.Writer, rep Report) error {
	md := markdown.NewMarkdown(w)

	title := rep.Title
	if title == "" {
		title = rep.URL
	}
	md.H1("Word frequency: " + title)
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"URL", rep.URL},
			{"Fetched", rep.FetchedAt.UTC().Format("2006-01-02 15:04:05 MST")},
			{"Charset", rep.Charset},
			{"Paragraphs", strconv.Itoa(rep.Paragraphs)},
			{"Tokens", strconv.Itoa(rep.Tokens())},
			{"Distinct words", strconv.Itoa(rep.Distinct())},
		},
	})
	md.PlainText("")

	if rep.Summary != "" {
		md.H2("Summary")
		md.PlainText("")
		md.PlainText(rep.Summary)
		md.PlainText("")
	}

	md.H2(fmt.Sprintf("Top %d words", len(rep.Top)))
	md.PlainText("")
	if len(rep.Top) == 0 {
		md.Note("No words to display.")
		md.PlainText("")
		return md.Build()
	}
	rows := make([][]string, 0, len(rep.Top))
	for i, wc := range rep.Top {
		rows = append(rows, []string{strconv.Itoa(i + 1), wc.Word, strconv.Itoa(wc.Count)})
	}
	md.Table(markdown.TableSet{Header: []string{"Rank", "Word", "Count"}, Rows: rows})
	md.PlainText("")

	pie := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("高频词饼图"),
		piechart.WithShowData(true),
	)
	for _, wc := range rep.Top {
		pie.LabelAndIntValue(wc.Word, uint64(wc.Count))
	}
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, pie.String())
	md.PlainText("")

	return md.Build()
}
