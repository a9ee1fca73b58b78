package summary

import (
    "context"
    "encoding/json"
    "errors"
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"

    openai "github.com/sashabaranov/go-openai"

    "github.com/hyperifyio/pagefreq/internal/freq"
)

type capturingClient struct {
    lastReq openai.ChatCompletionRequest
    content string
    err     error
}

func (c *capturingClient) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
    c.lastReq = req
    if c.err != nil {
        return openai.ChatCompletionResponse{}, c.err
    }
    return openai.ChatCompletionResponse{
        Choices: []openai.ChatCompletionChoice{{
            Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: c.content},
        }},
    }, nil
}

func TestSummarize_SendsRankedWords(t *testing.T) {
    cc := &capturingClient{content: "  一个关于北京的页面。 "}
    s := &Summarizer{Client: cc, Model: "test-model"}
    out, err := s.Summarize(context.Background(), Input{
        URL:   "https://example.com",
        Title: "北京",
        Top:   []freq.WordCount{{Word: "北京", Count: 3}, {Word: "长城", Count: 2}},
    })
    if err != nil {
        t.Fatalf("summarize: %v", err)
    }
    if out != "一个关于北京的页面。" {
        t.Fatalf("unexpected summary %q", out)
    }
    if cc.lastReq.Model != "test-model" || len(cc.lastReq.Messages) != 2 {
        t.Fatalf("unexpected request: %+v", cc.lastReq)
    }
    user := cc.lastReq.Messages[1].Content
    for _, want := range []string{"1. 北京: 3", "2. 长城: 2", "Title: 北京"} {
        if !strings.Contains(user, want) {
            t.Fatalf("user message missing %q:\n%s", want, user)
        }
    }
}

func TestSummarize_Errors(t *testing.T) {
    if _, err := (&Summarizer{}).Summarize(context.Background(), Input{}); !errors.Is(err, ErrNotConfigured) {
        t.Fatalf("expected ErrNotConfigured, got %v", err)
    }
    boom := errors.New("boom")
    s := &Summarizer{Client: &capturingClient{err: boom}, Model: "m"}
    if _, err := s.Summarize(context.Background(), Input{}); !errors.Is(err, boom) {
        t.Fatalf("expected wrapped boom, got %v", err)
    }
    s = &Summarizer{Client: &capturingClient{content: "   "}, Model: "m"}
    if _, err := s.Summarize(context.Background(), Input{}); !errors.Is(err, ErrEmptySummary) {
        t.Fatalf("expected ErrEmptySummary, got %v", err)
    }
}

func TestSummarize_SystemPromptOverrideAndExcerptCap(t *testing.T) {
    cc := &capturingClient{content: "ok"}
    s := &Summarizer{Client: cc, Model: "m", SystemPrompt: "custom", MaxExcerptRunes: 3}
    if _, err := s.Summarize(context.Background(), Input{Excerpt: "一二三四五"}); err != nil {
        t.Fatalf("summarize: %v", err)
    }
    if cc.lastReq.Messages[0].Content != "custom" {
        t.Fatalf("system prompt not overridden")
    }
    user := cc.lastReq.Messages[1].Content
    if !strings.Contains(user, "一二三\n") || strings.Contains(user, "四") {
        t.Fatalf("excerpt not capped:\n%s", user)
    }
}

func TestNew_TalksToCompatibleEndpoint(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
            http.NotFound(w, r)
            return
        }
        w.Header().Set("Content-Type", "application/json")
        _ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
            Choices: []openai.ChatCompletionChoice{{
                Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: "stub summary"},
            }},
        })
    }))
    defer srv.Close()

    s := New(srv.URL+"/v1", "test", "stub-model", srv.Client())
    out, err := s.Summarize(context.Background(), Input{URL: "https://example.com"})
    if err != nil {
        t.Fatalf("summarize: %v", err)
    }
    if out != "stub summary" {
        t.Fatalf("unexpected summary %q", out)
    }
}
