package app

import (
	"time"

	"github.com/hyperifyio/pagefreq/internal/freq"
)

// Defaults shared by flags and file config.
const (
	DefaultAddr    = "127.0.0.1:8080"
	DefaultKind    = "wordcloud"
	DefaultFormat  = "pdf"
	DefaultTimeout = 30 * time.Second
	DefaultTopN    = freq.DefaultTopN
)

// DefaultUserAgent identifies pagefreq to the sites it fetches.
func DefaultUserAgent() string {
	return "pagefreq/" + BuildVersion + " (+https://github.com/hyperifyio/pagefreq)"
}

// Config holds runtime configuration for the application.
type Config struct {
	// Analysis
	URL           string
	StopwordsPath string
	Kind          string
	Format        string
	OutputPath    string
	TopN          int
	Summarize     bool

	// Server
	Addr string

	// Resources
	FontPath  string
	DictPaths []string

	// Fetching. Timeout 0 disables the per-request timeout.
	Timeout      time.Duration
	UserAgent    string
	MaxBodyBytes int64

	// LLM, used only for summaries
	LLMBaseURL string
	LLMModel   string
	LLMAPIKey  string

	Verbose bool
}

// DefaultConfig returns the values flags start from.
func DefaultConfig() Config {
	return Config{
		Kind:      DefaultKind,
		Format:    DefaultFormat,
		TopN:      DefaultTopN,
		Addr:      DefaultAddr,
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent(),
	}
}
