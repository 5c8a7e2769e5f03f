// Package http provides an HTTP-based implementation of kbcards.Loader
// for fetching a catalog document from a remote endpoint or from the
// static site that hosts the page.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/kbcards"
)

// DefaultTimeout is the default timeout for HTTP requests.
const DefaultTimeout = 10 * time.Second

// maxBodySize caps how much of a response body is read.
const maxBodySize = 16 << 20

// Ensure Loader implements kbcards.Loader at compile time.
var _ kbcards.Loader = (*Loader)(nil)

// Loader retrieves a catalog with a single GET request. It never retries;
// failing over to another source is the job of kbcards.Chain.
type Loader struct {
	url     string
	client  *http.Client
	timeout time.Duration
}

// Option configures a Loader.
type Option func(*Loader)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(l *Loader) {
		l.timeout = d
	}
}

// WithClient sets the HTTP client. Its Timeout is left untouched.
func WithClient(c *http.Client) Option {
	return func(l *Loader) {
		l.client = c
	}
}

// NewLoader creates a Loader for the given URL.
func NewLoader(url string, opts ...Option) *Loader {
	l := &Loader{
		url:     url,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(l)
	}

	if l.client == nil {
		l.client = &http.Client{
			Timeout: l.timeout,
		}
	}

	return l
}

// URL returns the URL the loader fetches.
func (l *Loader) URL() string {
	return l.url
}

// Load fetches and decodes the catalog. Any 2xx status counts as OK.
func (l *Loader) Load(ctx context.Context) ([]*kbcards.Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, kbcards.WrapError(kbcards.EINVALID, err, "invalid catalog URL %q", l.url)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, kbcards.WrapError(kbcards.ENETWORK, err, "fetch %s", l.url)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, kbcards.Errorf(kbcards.EHTTPSTATUS, "HTTP %d for %s", resp.StatusCode, l.url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, kbcards.WrapError(kbcards.ENETWORK, err, "read %s", l.url)
	}

	entries, err := kbcards.DecodeEntries(body)
	if err != nil {
		return nil, kbcards.WrapError(kbcards.EPARSE, err, "decode %s", l.url)
	}

	return entries, nil
}
