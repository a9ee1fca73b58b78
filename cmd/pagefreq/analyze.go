package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/hyperifyio/pagefreq/internal/app"
	"github.com/hyperifyio/pagefreq/internal/export"
)

// NewAnalyzeCmd creates the analyze command.
func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [url]",
		Short: "Analyze one page and write the chart or a report",
		Long: `Fetch the page, rank its twenty most frequent words and write the result.

The output format is pdf (the chart), xlsx (ranking and native chart), md
(Markdown report) or json. Without --out the file name is derived from the
URL; "-" writes to stdout. The ranking is also printed to stdout unless the
output itself goes there.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 && !cmd.Flags().Changed("url") {
				if err := cmd.Flags().Set("url", args[0]); err != nil {
					return err
				}
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			setupLogging(cfg.Verbose)
			return runAnalyze(cmd, cfg)
		},
	}
	f := cmd.Flags()
	f.StringP("url", "u", "", "Page URL")
	f.StringP("stopwords", "s", "", "Stop-word file, one word per line")
	f.StringP("kind", "k", app.DefaultKind, "Chart kind: wordcloud, bar, pie, line, scatter, heatmap, area (or 词云, 柱状图, ...)")
	f.StringP("format", "f", app.DefaultFormat, "Output format: pdf, xlsx, md, json")
	f.StringP("out", "o", "", `Output path; "-" for stdout`)
	f.IntP("top", "n", app.DefaultTopN, "Number of ranked words")
	f.Bool("summarize", false, "Ask the configured LLM for a short description")
	return cmd
}

func runAnalyze(cmd *cobra.Command, cfg app.Config) error {
	if err := app.ValidateAnalyzeConfig(cfg); err != nil {
		return err
	}
	format, err := export.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}
	a, err := app.New(cfg)
	if err != nil {
		return err
	}
	stop, err := app.LoadStopwords(cfg.StopwordsPath)
	if err != nil {
		return err
	}
	req, err := a.Request(stop)
	if err != nil {
		return err
	}
	req.SkipChart = true

	res, err := a.Analyzer.Analyze(cmd.Context(), req)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, format, res.Kind, a.Renderer, res.Report()); err != nil {
		return &app.ExtractionError{Stage: app.StageRender, Err: err}
	}

	out := strings.TrimSpace(cfg.OutputPath)
	if out == "-" {
		_, err := cmd.OutOrStdout().Write(buf.Bytes())
		return err
	}
	if out == "" {
		out = app.DefaultOutputPath(res.URL, res.Kind, format)
	}
	if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	log.Info().Str("url", res.URL).Str("out", out).Int("words", res.Frequency.Len()).Msg("analysis written")
	printRanking(cmd.OutOrStdout(), res)
	return nil
}

func printRanking(w io.Writer, res *app.Result) {
	if res.Title != "" {
		fmt.Fprintln(w, res.Title)
	}
	if len(res.Top) == 0 {
		fmt.Fprintln(w, "没有可统计的词汇")
		return
	}
	fmt.Fprintf(w, "词频排名前%d的词汇:\n", len(res.Top))
	for i, wc := range res.Top {
		fmt.Fprintf(w, "%2d. %s\t%d\n", i+1, wc.Word, wc.Count)
	}
	if res.Summary != "" {
		fmt.Fprintf(w, "\n%s\n", res.Summary)
	}
}
