// Package source reads the CSV datasets the pipeline consumes, from a local
// directory or an HTTP base URL.
package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Fetcher opens a dataset by file name.
type Fetcher interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// DirFetcher reads datasets from a directory.
type DirFetcher struct {
	dir string
}

// NewDirFetcher creates a fetcher rooted at dir.
func NewDirFetcher(dir string) *DirFetcher {
	return &DirFetcher{dir: dir}
}

// Open opens dir/name.
func (f *DirFetcher) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.Open(filepath.Join(f.dir, filepath.Clean("/"+name)))
}

// Default HTTP fetch timeout.
const defaultHTTPTimeout = 30 * time.Second

// HTTPOption applies a configuration option to the HTTPFetcher.
type HTTPOption func(*HTTPFetcher)

// WithHTTPClient sets the client used for requests.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(f *HTTPFetcher) {
		if c != nil {
			f.client = c
		}
	}
}

// WithTimeout bounds each request.
func WithTimeout(d time.Duration) HTTPOption {
	return func(f *HTTPFetcher) {
		if d > 0 {
			f.timeout = d
		}
	}
}

// HTTPFetcher downloads datasets relative to a base URL.
type HTTPFetcher struct {
	base    *url.URL
	client  *http.Client
	timeout time.Duration
}

// NewHTTPFetcher creates a fetcher for baseURL.
func NewHTTPFetcher(baseURL string, opts ...HTTPOption) (*HTTPFetcher, error) {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	f := &HTTPFetcher{base: base, client: http.DefaultClient, timeout: defaultHTTPTimeout}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Open issues a GET for name and returns the body on a 2xx answer.
func (f *HTTPFetcher) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	ref, err := url.Parse(name)
	if err != nil {
		return nil, fmt.Errorf("parse dataset name: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.base.ResolveReference(ref).String(), nil)
	if err != nil {
		cancel()
		return nil, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		cancel()
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		cancel()
		return nil, fmt.Errorf("GET %s: status %d", req.URL, resp.StatusCode)
	}
	return &cancelBody{ReadCloser: resp.Body, cancel: cancel}, nil
}

// cancelBody releases the request context when the body is closed.
type cancelBody struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (b *cancelBody) Close() error {
	defer b.cancel()
	return b.ReadCloser.Close()
}
