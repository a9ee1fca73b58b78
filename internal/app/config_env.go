package app

import (
    "os"
    "strconv"
    "strings"
)

// ApplyEnvToConfig populates unset fields of cfg from environment variables.
// Explicit cfg values take precedence over env.
func ApplyEnvToConfig(cfg *Config) {
    if cfg == nil { return }

    if cfg.LLMBaseURL == "" { cfg.LLMBaseURL = os.Getenv("LLM_BASE_URL") }
    if cfg.LLMModel == "" { cfg.LLMModel = os.Getenv("LLM_MODEL") }
    if cfg.LLMAPIKey == "" { cfg.LLMAPIKey = os.Getenv("LLM_API_KEY") }

    if cfg.Addr == "" { cfg.Addr = os.Getenv("PAGEFREQ_ADDR") }
    if cfg.FontPath == "" { cfg.FontPath = os.Getenv("PAGEFREQ_FONT") }
    if cfg.UserAgent == "" { cfg.UserAgent = os.Getenv("PAGEFREQ_USER_AGENT") }
    if len(cfg.DictPaths) == 0 { cfg.DictPaths = splitList(os.Getenv("PAGEFREQ_DICT")) }

    if cfg.TopN == 0 {
        if n, err := strconv.Atoi(strings.TrimSpace(os.Getenv("PAGEFREQ_TOP_N"))); err == nil && n > 0 {
            cfg.TopN = n
        }
    }
    if cfg.Timeout == 0 {
        if s := os.Getenv("PAGEFREQ_TIMEOUT"); s != "" {
            if d, err := parseTimeout(s); err == nil {
                cfg.Timeout = d
            }
        }
    }
    if !cfg.Verbose {
        if b, ok := envBool("PAGEFREQ_VERBOSE"); ok { cfg.Verbose = b }
    }
}

// ApplyEnvOverrides forcefully overrides cfg fields with environment variables
// when they are set. Env takes precedence over the config file; flags are
// reapplied by the caller afterwards.
func ApplyEnvOverrides(cfg *Config) {
    if cfg == nil { return }

    if v := os.Getenv("LLM_BASE_URL"); v != "" { cfg.LLMBaseURL = v }
    if v := os.Getenv("LLM_MODEL"); v != "" { cfg.LLMModel = v }
    if v := os.Getenv("LLM_API_KEY"); v != "" { cfg.LLMAPIKey = v }

    if v := os.Getenv("PAGEFREQ_ADDR"); v != "" { cfg.Addr = v }
    if v := os.Getenv("PAGEFREQ_FONT"); v != "" { cfg.FontPath = v }
    if v := os.Getenv("PAGEFREQ_USER_AGENT"); v != "" { cfg.UserAgent = v }
    if v := splitList(os.Getenv("PAGEFREQ_DICT")); len(v) > 0 { cfg.DictPaths = v }

    if n, err := strconv.Atoi(strings.TrimSpace(os.Getenv("PAGEFREQ_TOP_N"))); err == nil && n > 0 {
        cfg.TopN = n
    }
    if s := os.Getenv("PAGEFREQ_TIMEOUT"); s != "" {
        if d, err := parseTimeout(s); err == nil {
            cfg.Timeout = d
        }
    }
    if b, ok := envBool("PAGEFREQ_VERBOSE"); ok { cfg.Verbose = b }
}

func envBool(key string) (value bool, ok bool) {
    switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
    case "1", "true", "yes", "on":
        return true, true
    case "0", "false", "no", "off":
        return false, true
    }
    return false, false
}

// splitList splits a comma or path-list separated value.
func splitList(s string) []string {
    var out []string
    for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == os.PathListSeparator }) {
        if p := strings.TrimSpace(part); p != "" {
            out = append(out, p)
        }
    }
    return out
}
