package fetcher

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/prodyscan/ProdyScan/internal/ratelimit"
)

const (
	// A realistic desktop browser profile. Marketplace sites serve a
	// stripped-down or blocked page to anything that looks like a bot.
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	acceptLanguage = "en-US,en;q=0.8"

	// FetchTimeout bounds a single page fetch. RedirectTimeout is shorter
	// because short-link expansion only needs headers, not a full page.
	FetchTimeout    = 12 * time.Second
	RedirectTimeout = 10 * time.Second
)

// ErrorKind tells callers why a fetch failed without them parsing messages.
type ErrorKind int

const (
	KindNetwork ErrorKind = iota
	KindTimeout
	KindNonSuccessStatus
	KindEmptyBody
)

func (k ErrorKind) String() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindNonSuccessStatus:
		return "non-success status"
	case KindEmptyBody:
		return "empty body"
	default:
		return "network error"
	}
}

// FetchError is the single failure type the fetcher surfaces. Nothing below
// this boundary panics past it.
type FetchError struct {
	URL    string
	Kind   ErrorKind
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: %s (status %d)", e.URL, e.Kind, e.Status)
	}
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %s: %v", e.URL, e.Kind, e.Err)
	}
	return fmt.Sprintf("fetch %s: %s", e.URL, e.Kind)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Fetcher issues browser-like GETs and parses the response into a goquery
// document. It never retries: a failed fetch is reported once and the caller
// decides whether the page mattered.
type Fetcher struct {
	client         *http.Client
	redirectClient *http.Client
	limiter        ratelimit.Limiter
	logger         *slog.Logger
}

type Option func(*Fetcher)

// WithLimiter installs a politeness delay between consecutive fetches.
func WithLimiter(l ratelimit.Limiter) Option {
	return func(f *Fetcher) { f.limiter = l }
}

func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) { f.client.Timeout = d }
}

func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		client:         &http.Client{Timeout: FetchTimeout},
		redirectClient: &http.Client{Timeout: RedirectTimeout},
		limiter:        ratelimit.NopLimiter{},
		logger:         slog.Default().With("component", "fetcher"),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch GETs a URL and returns its parsed document. All failures come back
// as *FetchError; a loaded page with missing content is not a failure.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*goquery.Document, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, &FetchError{URL: rawURL, Kind: KindNetwork, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Kind: KindNetwork, Err: err}
	}
	setBrowserHeaders(req)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Kind: classifyErr(err), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{URL: rawURL, Kind: KindNonSuccessStatus, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Kind: classifyErr(err), Err: err}
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, &FetchError{URL: rawURL, Kind: KindEmptyBody}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, &FetchError{URL: rawURL, Kind: KindNetwork, Err: err}
	}

	return doc, nil
}

// ResolveShortLink follows redirects and returns the final URL as plain data.
// The expansion is domain-gated: if the final host does not contain
// expectedDomain the original URL is returned unchanged. Any failure also
// returns the input - short links fail open, not closed.
func (f *Fetcher) ResolveShortLink(ctx context.Context, rawURL, expectedDomain string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return rawURL
	}
	setBrowserHeaders(req)

	resp, err := f.redirectClient.Do(req)
	if err != nil {
		f.logger.Debug("short link resolution failed", "url", rawURL, "error", err)
		return rawURL
	}
	defer resp.Body.Close()

	final := resp.Request.URL
	if final == nil || !strings.Contains(final.Host, expectedDomain) {
		return rawURL
	}
	return final.String()
}

func setBrowserHeaders(req *http.Request) {
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", acceptLanguage)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
}

func classifyErr(err error) ErrorKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}
	return KindNetwork
}
