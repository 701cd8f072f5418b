package network

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/net/html/charset"

	"github.com/chrisuehlinger/lightdom/dom"
)

var _ dom.ImageLoader = (*Loader)(nil)

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithCache serves repeated fetches from cache.
func WithCache(cache *Cache) LoaderOption {
	return func(l *Loader) {
		l.cache = cache
	}
}

// WithBaseURL resolves relative references against base.
func WithBaseURL(base string) LoaderOption {
	return func(l *Loader) {
		l.baseURL = base
	}
}

// Loader fetches resources through a Client, resolving relative references
// and consulting an optional cache. It satisfies dom.ImageLoader.
type Loader struct {
	client  *Client
	cache   *Cache
	baseURL string
	log     *zap.Logger

	mu sync.RWMutex
}

// NewLoader creates a new resource loader.
func NewLoader(client *Client, opts ...LoaderOption) *Loader {
	l := &Loader{client: client, log: client.log}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// SetBaseURL sets the base URL for resolving relative URLs.
func (l *Loader) SetBaseURL(base string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.baseURL = base
}

// BaseURL returns the current base URL.
func (l *Loader) BaseURL() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.baseURL
}

// Fetch returns the response for ref. Data URLs are decoded locally.
func (l *Loader) Fetch(ctx context.Context, ref string) (*Response, error) {
	urlStr, err := ResolveURL(l.BaseURL(), ref)
	if err != nil {
		return nil, err
	}

	if IsDataURL(urlStr) {
		data, err := ParseDataURL(urlStr)
		if err != nil {
			return nil, err
		}
		return &Response{
			StatusCode:  200,
			Body:        data.Data,
			ContentType: data.MediaType + "; charset=" + data.Charset,
		}, nil
	}

	if l.cache != nil {
		if resp, ok := l.cache.Get(urlStr); ok {
			l.log.Debug("Cache hit", zap.String("url", urlStr))
			return resp, nil
		}
	}
	resp, err := l.client.Get(ctx, urlStr)
	if err != nil {
		return nil, err
	}
	if l.cache != nil {
		l.cache.Set(urlStr, resp)
	}
	return resp, nil
}

// Load fetches image bytes for an img source.
func (l *Loader) Load(ctx context.Context, src string) ([]byte, error) {
	resp, err := l.Fetch(ctx, src)
	if err != nil {
		return nil, err
	}
	if IsTextContentType(resp.ContentType) {
		return nil, fmt.Errorf("%s: expected an image, got %s", src, resp.ContentType)
	}
	return resp.Body, nil
}

// FetchText fetches ref and decodes it to UTF-8 using the declared or
// sniffed charset.
func (l *Loader) FetchText(ctx context.Context, ref string) (string, error) {
	resp, err := l.Fetch(ctx, ref)
	if err != nil {
		return "", err
	}
	r, err := charset.NewReader(bytes.NewReader(resp.Body), resp.ContentType)
	if err != nil {
		return "", fmt.Errorf("unable to decode %s: %w", ref, err)
	}
	text, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("unable to decode %s: %w", ref, err)
	}
	return string(text), nil
}
