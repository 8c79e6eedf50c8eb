// Package fetch provides URL fetching for application-portal status checks,
// with a headless-browser fallback for JavaScript-rendered portals.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// DefaultTimeout bounds each portal fetch, browser rendering included.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; InternTrack/1.0)"

// Result holds the content of one portal fetch.
type Result struct {
	URL        string
	HTML       string
	StatusCode int
}

// Error represents an error during URL fetching.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures fetch behavior.
type Options struct {
	Timeout    time.Duration
	UserAgent  string
	Headers    map[string]string
	UseBrowser bool // render JS-heavy portals in a headless browser when plain HTTP comes back thin
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// Fetcher retrieves portal pages. Implementations must honor the context.
type Fetcher interface {
	Fetch(ctx context.Context, urlStr string) (*Result, error)
}

// HTTPFetcher implements Fetcher over plain HTTP with an optional
// headless-browser fallback.
type HTTPFetcher struct {
	opts   *Options
	client *http.Client
	logger *zap.Logger
}

// NewHTTPFetcher creates a fetcher. Nil options select defaults.
func NewHTTPFetcher(opts *Options, logger *zap.Logger) *HTTPFetcher {
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPFetcher{
		opts:   opts,
		client: &http.Client{Timeout: opts.Timeout},
		logger: logger,
	}
}

// Fetch retrieves a portal page. When the plain HTTP response looks like an
// unrendered SPA shell and browser fallback is enabled, the page is re-fetched
// through a headless browser.
func (f *HTTPFetcher) Fetch(ctx context.Context, urlStr string) (*Result, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, &Error{URL: urlStr, Message: "invalid URL", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", f.opts.UserAgent)
	for key, value := range f.opts.Headers {
		req.Header.Set(key, value)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to read response body", Cause: err}
	}

	result := &Result{URL: urlStr, HTML: string(body), StatusCode: resp.StatusCode}

	if f.opts.UseBrowser && ShouldUseBrowser(result.HTML) {
		f.logger.Debug("content too thin, falling back to headless browser",
			zap.String("url", urlStr),
			zap.Int("bytes", len(result.HTML)),
		)
		html, err := WithBrowser(ctx, urlStr, f.opts.Timeout, f.logger)
		if err != nil {
			return nil, &Error{URL: urlStr, Message: "browser fallback failed", Cause: err}
		}
		result.HTML = html
	}

	return result, nil
}
