package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/hyperifyio/pagefreq/internal/app"
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pagefreq",
		Short: "Word frequency charts for web pages",
		Long: `pagefreq fetches a web page, extracts the text of its paragraphs,
segments it into words (Chinese aware), drops single characters and stop
words, and charts the twenty most frequent words as a word cloud, bar, pie,
line, scatter, area or heatmap chart.

Run "pagefreq serve" for the browser interface or "pagefreq analyze" for a
one-shot export.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			v, _ := cmd.Flags().GetBool("verbose")
			setupLogging(v)
		},
	}

	pf := cmd.PersistentFlags()
	pf.String("config", "", "Config file (YAML or JSON); default $XDG_CONFIG_HOME/pagefreq/config.yaml")
	pf.StringSlice("env-file", []string{".env"}, "Dotenv files to load before reading the environment")
	pf.BoolP("verbose", "v", false, "Enable verbose logging")
	pf.String("font", "", "TrueType font able to render Chinese (default: search known CJK fonts)")
	pf.StringSlice("dict", nil, "Segmenter dictionary files (default: embedded Chinese dictionary)")
	pf.Duration("timeout", app.DefaultTimeout, "Per-request fetch timeout; 0 disables it")
	pf.String("user-agent", app.DefaultUserAgent(), "User-Agent sent when fetching")

	cmd.AddCommand(NewAnalyzeCmd())
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewKindsCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// loadConfig layers defaults, the config file, the environment and finally
// the flags the user set explicitly.
func loadConfig(cmd *cobra.Command) (app.Config, error) {
	flags := cmd.Flags()
	envFiles, _ := flags.GetStringSlice("env-file")
	if err := app.LoadEnvFiles(envFiles...); err != nil {
		return app.Config{}, err
	}

	cfg := app.DefaultConfig()
	path, _ := flags.GetString("config")
	if path == "" {
		path = app.DefaultConfigPath()
	}
	if path != "" {
		fc, err := app.LoadConfigFile(path)
		if err != nil {
			return app.Config{}, err
		}
		if err := app.ApplyFileConfig(&cfg, fc); err != nil {
			return app.Config{}, err
		}
	}
	app.ApplyEnvOverrides(&cfg)
	applyFlags(&cfg, flags)
	return cfg, nil
}

func applyFlags(cfg *app.Config, flags *pflag.FlagSet) {
	str := func(name string, dst *string) {
		if flags.Changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}
	str("font", &cfg.FontPath)
	str("user-agent", &cfg.UserAgent)
	str("url", &cfg.URL)
	str("stopwords", &cfg.StopwordsPath)
	str("kind", &cfg.Kind)
	str("format", &cfg.Format)
	str("out", &cfg.OutputPath)
	str("addr", &cfg.Addr)

	if flags.Changed("dict") {
		cfg.DictPaths, _ = flags.GetStringSlice("dict")
	}
	if flags.Changed("timeout") {
		cfg.Timeout, _ = flags.GetDuration("timeout")
	}
	if flags.Changed("top") {
		cfg.TopN, _ = flags.GetInt("top")
	}
	if flags.Changed("summarize") {
		cfg.Summarize, _ = flags.GetBool("summarize")
	}
	if flags.Changed("verbose") {
		cfg.Verbose, _ = flags.GetBool("verbose")
	}
}
