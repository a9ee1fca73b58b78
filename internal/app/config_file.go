package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"
	yaml "gopkg.in/yaml.v3"

	"github.com/hyperifyio/pagefreq/internal/chart"
	"github.com/hyperifyio/pagefreq/internal/export"
)

// Configuration errors.
var (
	ErrNoURL          = errors.New("config: url is required")
	ErrInvalidTopN    = errors.New("config: top must not be negative")
	ErrInvalidTimeout = errors.New("config: timeout must not be negative")
	ErrUnknownKind    = errors.New("config: unknown chart kind")
	ErrUnknownFormat  = export.ErrUnknownFormat
)

// FileConfig is the on-disk configuration schema.
type FileConfig struct {
	Addr      string `yaml:"addr" json:"addr"`
	Stopwords string `yaml:"stopwords" json:"stopwords"`
	Kind      string `yaml:"kind" json:"kind"`
	Format    string `yaml:"format" json:"format"`
	Top       int    `yaml:"top" json:"top"`

	Font string   `yaml:"font" json:"font"`
	Dict []string `yaml:"dict" json:"dict"`

	Fetch struct {
		// Timeout is a Go duration string; "0" disables the timeout.
		Timeout      string `yaml:"timeout" json:"timeout"`
		UserAgent    string `yaml:"userAgent" json:"userAgent"`
		MaxBodyBytes int64  `yaml:"maxBodyBytes" json:"maxBodyBytes"`
	} `yaml:"fetch" json:"fetch"`

	LLM struct {
		BaseURL string `yaml:"base" json:"base"`
		Model   string `yaml:"model" json:"model"`
		APIKey  string `yaml:"key" json:"key"`
	} `yaml:"llm" json:"llm"`

	Verbose bool `yaml:"verbose" json:"verbose"`
}

// DefaultConfigPath returns the config file under $XDG_CONFIG_HOME when it
// exists, or "".
func DefaultConfigPath() string {
	for _, name := range []string{"config.yaml", "config.yml", "config.json"} {
		p := filepath.Join(xdg.ConfigHome, "pagefreq", name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// ApplyFileConfig overlays values from fc onto cfg where cfg still holds a
// zero or default value, so explicit flags keep precedence.
func ApplyFileConfig(cfg *Config, fc FileConfig) error {
	if cfg == nil {
		return nil
	}
	if (cfg.Addr == "" || cfg.Addr == DefaultAddr) && fc.Addr != "" {
		cfg.Addr = fc.Addr
	}
	if cfg.StopwordsPath == "" && fc.Stopwords != "" {
		cfg.StopwordsPath = fc.Stopwords
	}
	if (cfg.Kind == "" || cfg.Kind == DefaultKind) && fc.Kind != "" {
		cfg.Kind = fc.Kind
	}
	if (cfg.Format == "" || cfg.Format == DefaultFormat) && fc.Format != "" {
		cfg.Format = fc.Format
	}
	if (cfg.TopN == 0 || cfg.TopN == DefaultTopN) && fc.Top != 0 {
		cfg.TopN = fc.Top
	}
	if cfg.FontPath == "" && fc.Font != "" {
		cfg.FontPath = fc.Font
	}
	if len(cfg.DictPaths) == 0 && len(fc.Dict) > 0 {
		cfg.DictPaths = append([]string{}, fc.Dict...)
	}
	if s := strings.TrimSpace(fc.Fetch.Timeout); s != "" && cfg.Timeout == DefaultTimeout {
		d, err := parseTimeout(s)
		if err != nil {
			return err
		}
		cfg.Timeout = d
	}
	if (cfg.UserAgent == "" || cfg.UserAgent == DefaultUserAgent()) && fc.Fetch.UserAgent != "" {
		cfg.UserAgent = fc.Fetch.UserAgent
	}
	if cfg.MaxBodyBytes == 0 && fc.Fetch.MaxBodyBytes > 0 {
		cfg.MaxBodyBytes = fc.Fetch.MaxBodyBytes
	}
	if cfg.LLMBaseURL == "" && fc.LLM.BaseURL != "" {
		cfg.LLMBaseURL = fc.LLM.BaseURL
	}
	if cfg.LLMModel == "" && fc.LLM.Model != "" {
		cfg.LLMModel = fc.LLM.Model
	}
	if cfg.LLMAPIKey == "" && fc.LLM.APIKey != "" {
		cfg.LLMAPIKey = fc.LLM.APIKey
	}
	if !cfg.Verbose && fc.Verbose {
		cfg.Verbose = true
	}
	return nil
}

// parseTimeout accepts a Go duration or a bare number of seconds.
func parseTimeout(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if d, err := time.ParseDuration(s); err == nil {
		if d < 0 {
			return 0, ErrInvalidTimeout
		}
		return d, nil
	}
	secs, err := strconv.ParseFloat(s, 64)
	if err != nil || secs < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeout, s)
	}
	return time.Duration(secs * float64(time.Second)), nil
}

// ValidateConfig checks the settings shared by every command.
func ValidateConfig(cfg Config) error {
	if cfg.TopN < 0 {
		return ErrInvalidTopN
	}
	if cfg.Timeout < 0 {
		return ErrInvalidTimeout
	}
	if _, err := chart.ParseKind(cfg.Kind); err != nil {
		return fmt.Errorf("%w: %q", ErrUnknownKind, cfg.Kind)
	}
	if _, err := export.ParseFormat(cfg.Format); err != nil {
		return err
	}
	return nil
}

// ValidateAnalyzeConfig additionally requires a URL.
func ValidateAnalyzeConfig(cfg Config) error {
	if strings.TrimSpace(cfg.URL) == "" {
		return ErrNoURL
	}
	return ValidateConfig(cfg)
}
