package summary

import (
    "context"
    "errors"
    "fmt"
    "net/http"
    "strings"

    openai "github.com/sashabaranov/go-openai"

    "github.com/hyperifyio/pagefreq/internal/freq"
)

// Client is the subset of the OpenAI client the summarizer calls.
type Client interface {
    CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// ErrNotConfigured is returned when no model or client is set.
var ErrNotConfigured = errors.New("summarizer not configured")

// ErrEmptySummary indicates the model answered with no text.
var ErrEmptySummary = errors.New("empty summary")

// Input is what the model sees about a page.
type Input struct {
    URL   string
    Title string
    Top   []freq.WordCount
    // Excerpt is optional leading page text.
    Excerpt string
}

// Summarizer asks a chat model to describe a page from its top words.
type Summarizer struct {
    Client Client
    Model  string
    // SystemPrompt, when non-empty, overrides the default system message.
    SystemPrompt string
    // MaxExcerptRunes caps Input.Excerpt. Zero means 1500.
    MaxExcerptRunes int
}

// New builds a Summarizer talking to an OpenAI-compatible endpoint.
func New(baseURL, apiKey, model string, httpClient *http.Client) *Summarizer {
    cfg := openai.DefaultConfig(apiKey)
    if strings.TrimSpace(baseURL) != "" {
        cfg.BaseURL = baseURL
    }
    if httpClient != nil {
        cfg.HTTPClient = httpClient
    }
    return &Summarizer{Client: openai.NewClientWithConfig(cfg), Model: model}
}

// Summarize returns a short plain-text description of the page.
func (s *Summarizer) Summarize(ctx context.Context, in Input) (string, error) {
    if s == nil || s.Client == nil || strings.TrimSpace(s.Model) == "" {
        return "", ErrNotConfigured
    }
    system := defaultSystemPrompt
    if strings.TrimSpace(s.SystemPrompt) != "" {
        system = s.SystemPrompt
    }
    req := openai.ChatCompletionRequest{
        Model: s.Model,
        Messages: []openai.ChatCompletionMessage{
            {Role: openai.ChatMessageRoleSystem, Content: system},
            {Role: openai.ChatMessageRoleUser, Content: buildUserMessage(in, s.maxExcerpt())},
        },
        Temperature: 0.2,
        N:           1,
    }
    resp, err := s.Client.CreateChatCompletion(ctx, req)
    if err != nil {
        return "", fmt.Errorf("summary call: %w", err)
    }
    if len(resp.Choices) == 0 {
        return "", ErrEmptySummary
    }
    out := strings.TrimSpace(resp.Choices[0].Message.Content)
    if out == "" {
        return "", ErrEmptySummary
    }
    return out, nil
}

func (s *Summarizer) maxExcerpt() int {
    if s.MaxExcerptRunes > 0 {
        return s.MaxExcerptRunes
    }
    return 1500
}

const defaultSystemPrompt = "You describe web pages from word frequency data. Answer in two or three sentences, in the language of the words. Do not invent facts that the words do not support."

func buildUserMessage(in Input, maxExcerpt int) string {
    var b strings.Builder
    fmt.Fprintf(&b, "URL: %s\n", in.URL)
    if in.Title != "" {
        fmt.Fprintf(&b, "Title: %s\n", in.Title)
    }
    b.WriteString("Most frequent words (word: count):\n")
    if len(in.Top) == 0 {
        b.WriteString("(none)\n")
    }
    for i, wc := range in.Top {
        fmt.Fprintf(&b, "%d. %s: %d\n", i+1, wc.Word, wc.Count)
    }
    if ex := truncateRunes(strings.TrimSpace(in.Excerpt), maxExcerpt); ex != "" {
        b.WriteString("\nOpening text:\n")
        b.WriteString(ex)
        b.WriteString("\n")
    }
    b.WriteString("\nWhat is this page about?")
    return b.String()
}

func truncateRunes(s string, n int) string {
    r := []rune(s)
    if len(r) <= n {
        return s
    }
    return string(r[:n])
}
