package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hyperifyio/pagefreq/internal/chart"
	"github.com/hyperifyio/pagefreq/internal/fetch"
	"github.com/hyperifyio/pagefreq/internal/freq"
	"github.com/hyperifyio/pagefreq/internal/summary"
)

// fieldsSegmenter splits on whitespace so rankings are exact.
type fieldsSegmenter struct{}

func (fieldsSegmenter) Cut(text string) []string { return strings.Fields(text) }

type panicSegmenter struct{}

func (panicSegmenter) Cut(string) []string { panic("dictionary corrupted") }

type recordingRenderer struct {
	calls int
	kind  chart.Kind
	data  chart.Data
	err   error
}

func (r *recordingRenderer) Render(w io.Writer, kind chart.Kind, d chart.Data) error {
	r.calls++
	r.kind, r.data = kind, d
	if r.err != nil {
		return r.err
	}
	_, err := io.WriteString(w, "%PDF-fake")
	return err
}

type fakeSummarizer struct {
	in  summary.Input
	out string
	err error
}

func (f *fakeSummarizer) Summarize(_ context.Context, in summary.Input) (string, error) {
	f.in = in
	return f.out, f.err
}

func htmlServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestAnalyzer(r Renderer) *Analyzer {
	return &Analyzer{
		Fetcher:   &fetch.Client{},
		Segmenter: fieldsSegmenter{},
		Renderer:  r,
		Now:       func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) },
	}
}

func TestAnalyze_RanksWithFirstSeenTieBreak(t *testing.T) {
	srv := htmlServer(t, `<html><head><title>T</title></head><body>
<p>apple banana cherry</p><p>banana apple</p><div>ignored ignored ignored</div></body></html>`)
	rr := &recordingRenderer{}
	res, err := newTestAnalyzer(rr).Analyze(context.Background(), Request{URL: srv.URL, Kind: chart.Bar})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	want := []freq.WordCount{{Word: "apple", Count: 2}, {Word: "banana", Count: 2}, {Word: "cherry", Count: 1}}
	if len(res.Top) != len(want) {
		t.Fatalf("top=%+v", res.Top)
	}
	for i := range want {
		if res.Top[i] != want[i] {
			t.Fatalf("top[%d]=%+v, want %+v", i, res.Top[i], want[i])
		}
	}
	if res.Title != "T" || len(res.Paragraphs) != 2 || res.Charset != "utf-8" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if rr.calls != 1 || rr.kind != chart.Bar || !bytes.Equal(res.Chart, []byte("%PDF-fake")) {
		t.Fatalf("renderer not called as expected: calls=%d kind=%v", rr.calls, rr.kind)
	}
	if !res.FetchedAt.Equal(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)) {
		t.Fatalf("FetchedAt=%v", res.FetchedAt)
	}
}

func TestAnalyze_StopwordsAndSingleCharsDropped(t *testing.T) {
	srv := htmlServer(t, `<p>the cat a dog the cat</p>`)
	res, err := newTestAnalyzer(nil).Analyze(context.Background(), Request{
		URL:       srv.URL,
		Stopwords: freq.NewStopwordSet("the"),
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if res.Frequency.Count("the") != 0 || res.Frequency.Count("a") != 0 {
		t.Fatalf("stop word or single char counted: %+v", res.Top)
	}
	if res.Top[0] != (freq.WordCount{Word: "cat", Count: 2}) {
		t.Fatalf("top[0]=%+v", res.Top[0])
	}
	if res.Chart != nil {
		t.Fatalf("no renderer configured, chart should be nil")
	}
}

func TestAnalyze_TopNLimit(t *testing.T) {
	var b strings.Builder
	b.WriteString("<p>")
	for i := 0; i < 30; i++ {
		b.WriteString(strings.Repeat(string(rune('a'+i%26)), 2+i/26))
		b.WriteString(" ")
	}
	b.WriteString("</p>")
	srv := htmlServer(t, b.String())
	an := newTestAnalyzer(nil)
	res, err := an.Analyze(context.Background(), Request{URL: srv.URL})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(res.Top) != freq.DefaultTopN || res.Frequency.Len() != 30 {
		t.Fatalf("len(top)=%d distinct=%d", len(res.Top), res.Frequency.Len())
	}
	res, err = an.Analyze(context.Background(), Request{URL: srv.URL, TopN: 5})
	if err != nil || len(res.Top) != 5 {
		t.Fatalf("TopN=5 gave %d, %v", len(res.Top), err)
	}
}

func TestAnalyze_EmptyPageStillRenders(t *testing.T) {
	srv := htmlServer(t, `<html><body><div>no paragraphs</div></body></html>`)
	rr := &recordingRenderer{}
	res, err := newTestAnalyzer(rr).Analyze(context.Background(), Request{URL: srv.URL, Kind: chart.Pie})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(res.Paragraphs) != 0 || res.Frequency.Len() != 0 || len(res.Top) != 0 {
		t.Fatalf("expected empty result: %+v", res)
	}
	if rr.calls != 1 || !rr.data.Empty() {
		t.Fatalf("renderer should be called with empty data")
	}
}

func TestAnalyze_NetworkErrorPassesThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()
	rr := &recordingRenderer{}
	_, err := newTestAnalyzer(rr).Analyze(context.Background(), Request{URL: srv.URL})
	var ne *fetch.NetworkError
	if !errors.As(err, &ne) || ne.StatusCode != http.StatusNotFound {
		t.Fatalf("expected NetworkError 404, got %v", err)
	}
	var ee *ExtractionError
	if errors.As(err, &ee) {
		t.Fatalf("network error must not be an ExtractionError")
	}
	if rr.calls != 0 {
		t.Fatalf("renderer ran after a network failure")
	}
}

func TestAnalyze_NonHTMLIsExtractionError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = io.WriteString(w, "%PDF")
	}))
	defer srv.Close()
	_, err := newTestAnalyzer(nil).Analyze(context.Background(), Request{URL: srv.URL})
	var ee *ExtractionError
	if !errors.As(err, &ee) || ee.Stage != StageFetch || !errors.Is(err, fetch.ErrUnsupportedContentType) {
		t.Fatalf("expected fetch-stage ExtractionError, got %v", err)
	}
}

func TestAnalyze_OversizeBodyIsFetchStage(t *testing.T) {
	srv := htmlServer(t, "<p>"+strings.Repeat("北京 ", 100)+"</p>")
	an := newTestAnalyzer(nil)
	an.Fetcher = &fetch.Client{MaxBodyBytes: 64}
	_, err := an.Analyze(context.Background(), Request{URL: srv.URL})
	var ee *ExtractionError
	if !errors.As(err, &ee) || ee.Stage != StageFetch || !errors.Is(err, fetch.ErrBodyTooLarge) {
		t.Fatalf("expected fetch-stage ErrBodyTooLarge, got %v", err)
	}
}

func TestAnalyze_RendersWithAbsoluteFontPath(t *testing.T) {
	font, err := filepath.Abs(filepath.Join("..", "chart", "testdata", "DejaVuSansCondensed.ttf"))
	if err != nil {
		t.Fatal(err)
	}
	srv := htmlServer(t, `<p>北京 长城 北京</p>`)
	an := newTestAnalyzer(&chart.Renderer{FontPath: font})
	res, err := an.Analyze(context.Background(), Request{URL: srv.URL, Kind: chart.Bar})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if !bytes.HasPrefix(res.Chart, []byte("%PDF")) {
		t.Fatalf("no PDF rendered")
	}
}

func TestAnalyze_SegmenterPanicIsExtractionError(t *testing.T) {
	srv := htmlServer(t, `<p>text</p>`)
	an := newTestAnalyzer(nil)
	an.Segmenter = panicSegmenter{}
	_, err := an.Analyze(context.Background(), Request{URL: srv.URL})
	var ee *ExtractionError
	if !errors.As(err, &ee) || ee.Stage != StageSegment {
		t.Fatalf("expected segment ExtractionError, got %v", err)
	}
}

func TestAnalyze_RenderErrorIsExtractionError(t *testing.T) {
	srv := htmlServer(t, `<p>alpha beta</p>`)
	_, err := newTestAnalyzer(&recordingRenderer{err: errors.New("no ink")}).Analyze(context.Background(), Request{URL: srv.URL})
	var ee *ExtractionError
	if !errors.As(err, &ee) || ee.Stage != StageRender {
		t.Fatalf("expected render ExtractionError, got %v", err)
	}
	if !strings.Contains(err.Error(), "no ink") {
		t.Fatalf("cause missing from %q", err.Error())
	}
}

func TestAnalyze_SkipChart(t *testing.T) {
	srv := htmlServer(t, `<p>alpha beta</p>`)
	rr := &recordingRenderer{}
	if _, err := newTestAnalyzer(rr).Analyze(context.Background(), Request{URL: srv.URL, SkipChart: true}); err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if rr.calls != 0 {
		t.Fatalf("renderer called with SkipChart")
	}
}

func TestAnalyze_Summary(t *testing.T) {
	srv := htmlServer(t, `<title>Fruit</title><p>apple apple pear</p>`)
	fs := &fakeSummarizer{out: "About fruit."}
	an := newTestAnalyzer(nil)
	an.Summarizer = fs
	res, err := an.Analyze(context.Background(), Request{URL: srv.URL, Summarize: true})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if res.Summary != "About fruit." || fs.in.Title != "Fruit" || fs.in.Top[0].Word != "apple" {
		t.Fatalf("summary wiring wrong: %+v / %+v", res.Summary, fs.in)
	}

	// not requested: not called
	fs.in = summary.Input{}
	res, err = an.Analyze(context.Background(), Request{URL: srv.URL})
	if err != nil || res.Summary != "" || fs.in.URL != "" {
		t.Fatalf("summarizer ran without request")
	}

	fs.err = errors.New("model down")
	_, err = an.Analyze(context.Background(), Request{URL: srv.URL, Summarize: true})
	var ee *ExtractionError
	if !errors.As(err, &ee) || ee.Stage != StageSummary {
		t.Fatalf("expected summary ExtractionError, got %v", err)
	}

	an.Summarizer = nil
	_, err = an.Analyze(context.Background(), Request{URL: srv.URL, Summarize: true})
	if !errors.Is(err, summary.ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestAnalyze_BadRequest(t *testing.T) {
	an := newTestAnalyzer(nil)
	if _, err := an.Analyze(context.Background(), Request{URL: "  "}); !errors.Is(err, ErrNoURL) {
		t.Fatalf("expected ErrNoURL, got %v", err)
	}
	if _, err := an.Analyze(context.Background(), Request{URL: "http://x", Kind: chart.Kind(77)}); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
	if _, err := an.Analyze(context.Background(), Request{URL: "http://x", TopN: -1}); !errors.Is(err, ErrInvalidTopN) {
		t.Fatalf("expected ErrInvalidTopN, got %v", err)
	}
}

func TestResult_Report(t *testing.T) {
	all := freq.Count([]string{"aa", "bb", "aa"}, nil)
	r := &Result{URL: "u", Title: "t", Paragraphs: []string{"x", ""}, Frequency: all, Top: all.Top(20), Summary: "s"}
	rep := r.Report()
	if rep.Paragraphs != 2 || rep.Tokens() != 3 || rep.Distinct() != 2 || rep.Summary != "s" {
		t.Fatalf("unexpected report: %+v", rep)
	}
}

func TestDescribe(t *testing.T) {
	if got := Describe(&fetch.NetworkError{URL: "https://x", StatusCode: 503}); !strings.HasPrefix(got, MsgNetwork+": ") {
		t.Fatalf("Describe network=%q", got)
	}
	if got := Describe(&ExtractionError{Stage: StageParse, Err: errors.New("bad")}); got != MsgExtraction+": parse: bad" {
		t.Fatalf("Describe extraction=%q", got)
	}
	if Describe(nil) != "" {
		t.Fatalf("Describe(nil) should be empty")
	}
}
