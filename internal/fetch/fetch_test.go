package fetch

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestGet_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "pagefreq-test" {
			t.Errorf("missing user agent, got %q", r.Header.Get("User-Agent"))
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(200)
		_, _ = w.Write([]byte("<html><body><p>你好</p></body></html>"))
	}))
	defer srv.Close()

	c := &Client{UserAgent: "pagefreq-test", PerRequestTimeout: 2 * time.Second}
	page, err := c.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Charset != "utf-8" || !strings.Contains(string(page.Body), "你好") {
		t.Fatalf("unexpected page: charset=%q body=%q", page.Charset, page.Body)
	}
}

func TestGet_NonSuccessStatusIsNetworkError(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := &Client{PerRequestTimeout: 2 * time.Second}
	_, err := c.Get(context.Background(), srv.URL)
	var ne *NetworkError
	if !errors.As(err, &ne) {
		t.Fatalf("expected *NetworkError, got %T %v", err, err)
	}
	if ne.StatusCode != http.StatusBadGateway {
		t.Fatalf("StatusCode=%d", ne.StatusCode)
	}
	if calls != 1 {
		t.Fatalf("expected exactly one attempt, got %d", calls)
	}
	if !strings.Contains(ne.Error(), "502") {
		t.Fatalf("error text should carry the status: %q", ne.Error())
	}
}

func TestGet_NotFoundIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	c := &Client{}
	_, err := c.Get(context.Background(), srv.URL)
	var ne *NetworkError
	if !errors.As(err, &ne) || ne.StatusCode != 404 {
		t.Fatalf("expected 404 NetworkError, got %v", err)
	}
}

func TestGet_UnreachableHost(t *testing.T) {
	// Grab a free port and close it so nothing is listening.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	_ = ln.Close()

	c := &Client{PerRequestTimeout: 2 * time.Second}
	_, err = c.Get(context.Background(), "http://"+addr+"/")
	var ne *NetworkError
	if !errors.As(err, &ne) {
		t.Fatalf("expected *NetworkError, got %T %v", err, err)
	}
	if ne.Unwrap() == nil {
		t.Fatalf("expected underlying cause")
	}
}

func TestGet_TimeoutIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	c := &Client{PerRequestTimeout: 50 * time.Millisecond}
	_, err := c.Get(context.Background(), srv.URL)
	var ne *NetworkError
	if !errors.As(err, &ne) {
		t.Fatalf("expected *NetworkError, got %v", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded in chain, got %v", err)
	}
}

func TestGet_RejectsNonHTTP(t *testing.T) {
	c := &Client{PerRequestTimeout: 1 * time.Second}
	_, err := c.Get(context.Background(), "file:///etc/hosts")
	var ne *NetworkError
	if !errors.As(err, &ne) {
		t.Fatalf("expected *NetworkError for non-http scheme, got %v", err)
	}
}

func TestGet_ContentTypeGating(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.WriteHeader(200)
		_, _ = w.Write([]byte("%PDF-1.7"))
	}))
	defer srv.Close()

	c := &Client{PerRequestTimeout: 2 * time.Second}
	_, err := c.Get(context.Background(), srv.URL)
	if !errors.Is(err, ErrUnsupportedContentType) {
		t.Fatalf("expected unsupported content type, got %v", err)
	}
}

func TestGet_RedirectLimit(t *testing.T) {
	// First path redirects once to /next; with RedirectMaxHops=1 this should fail immediately
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			http.Redirect(w, r, "/next", http.StatusFound)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c := &Client{PerRequestTimeout: 2 * time.Second, RedirectMaxHops: 1}
	_, err := c.Get(context.Background(), srv.URL)
	var ne *NetworkError
	if !errors.As(err, &ne) {
		t.Fatalf("expected redirect limit NetworkError, got %v", err)
	}
}

func TestGet_FollowsRedirectAndReportsFinalURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			http.Redirect(w, r, "/article", http.StatusFound)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<p>ok</p>"))
	}))
	defer srv.Close()

	c := &Client{}
	page, err := c.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(page.URL, "/article") {
		t.Fatalf("URL=%q, want final URL", page.URL)
	}
}

func TestGet_BodyLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(strings.Repeat("a", 1000)))
	}))
	defer srv.Close()

	c := &Client{MaxBodyBytes: 10}
	if _, err := c.Get(context.Background(), srv.URL); !errors.Is(err, ErrBodyTooLarge) {
		t.Fatalf("expected ErrBodyTooLarge, got %v", err)
	}

	c = &Client{MaxBodyBytes: 1000}
	page, err := c.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("body at the limit: %v", err)
	}
	if len(page.Body) != 1000 {
		t.Fatalf("len(Body)=%d, want 1000", len(page.Body))
	}
}
