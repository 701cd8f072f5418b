package network

import (
	"compress/gzip"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestNewClient(t *testing.T) {
	client, err := NewClient()
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	if client.timeout != defaultTimeout {
		t.Errorf("default timeout = %v, want %v", client.timeout, defaultTimeout)
	}
	if client.maxRedirects != defaultRedirects {
		t.Errorf("default maxRedirects = %v, want %v", client.maxRedirects, defaultRedirects)
	}
	if client.userAgent != defaultUserAgent {
		t.Errorf("default userAgent = %q, want %q", client.userAgent, defaultUserAgent)
	}
}

func TestClientOptions(t *testing.T) {
	client, err := NewClient(
		WithTimeout(60*time.Second),
		WithMaxRedirects(5),
		WithUserAgent("TestAgent/1.0"),
		WithMaxBodySize(1024),
	)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	if client.timeout != 60*time.Second {
		t.Errorf("timeout = %v, want 60s", client.timeout)
	}
	if client.maxRedirects != 5 {
		t.Errorf("maxRedirects = %v, want 5", client.maxRedirects)
	}
	if client.userAgent != "TestAgent/1.0" {
		t.Errorf("userAgent = %q, want TestAgent/1.0", client.userAgent)
	}
	if client.maxBodySize != 1024 {
		t.Errorf("maxBodySize = %v, want 1024", client.maxBodySize)
	}
}

func TestClientGet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua != "TestAgent/1.0" {
			t.Errorf("User-Agent = %q", ua)
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("Hello"))
	}))
	defer server.Close()

	client, _ := NewClient(WithUserAgent("TestAgent/1.0"))
	resp, err := client.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d, want 200", resp.StatusCode)
	}
	if string(resp.Body) != "Hello" {
		t.Errorf("Body = %q, want Hello", resp.Body)
	}
	if resp.ContentType != "text/plain; charset=utf-8" {
		t.Errorf("ContentType = %q", resp.ContentType)
	}
}

func TestClientGetStatusError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	client, _ := NewClient()
	_, err := client.Get(context.Background(), server.URL+"/missing")

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("Expected *StatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", statusErr.StatusCode)
	}
}

func TestClientGzip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		gz.Write([]byte("compressed body"))
		gz.Close()
	}))
	defer server.Close()

	client, _ := NewClient()
	resp, err := client.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(resp.Body) != "compressed body" {
		t.Errorf("Body = %q", resp.Body)
	}
}

func TestClientMaxBodySize(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(strings.Repeat("x", 100)))
	}))
	defer server.Close()

	client, _ := NewClient(WithMaxBodySize(10))
	if _, err := client.Get(context.Background(), server.URL); err == nil {
		t.Error("Expected error for oversized body")
	}
}

func TestClientRedirects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/start", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/end", http.StatusFound)
	})
	mux.HandleFunc("/end", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("done"))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client, _ := NewClient()
	resp, err := client.Get(context.Background(), server.URL+"/start")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if resp.URL.Path != "/end" {
		t.Errorf("final URL path = %q, want /end", resp.URL.Path)
	}

	client, _ = NewClient(WithMaxRedirects(0))
	_, err = client.Get(context.Background(), server.URL+"/start")
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusFound {
		t.Errorf("Expected 302 status error without redirects, got %v", err)
	}
}

func TestParseContentType(t *testing.T) {
	tests := []struct {
		input       string
		wantType    string
		wantCharset string
	}{
		{"", "application/octet-stream", ""},
		{"text/html", "text/html", ""},
		{"text/plain; charset=UTF-8", "text/plain", "utf-8"},
		{`Text/Plain; charset="ISO-8859-1"`, "text/plain", "iso-8859-1"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			mediaType, cs := ParseContentType(tt.input)
			if mediaType != tt.wantType || cs != tt.wantCharset {
				t.Errorf("ParseContentType(%q) = %q, %q", tt.input, mediaType, cs)
			}
		})
	}

	if !IsImageContentType("image/png") || IsImageContentType("text/plain") {
		t.Error("IsImageContentType misclassified")
	}
	if !IsTextContentType("text/plain; charset=utf-8") || IsTextContentType("image/gif") {
		t.Error("IsTextContentType misclassified")
	}
}
