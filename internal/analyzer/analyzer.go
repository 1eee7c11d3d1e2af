package analyzer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/prodyscan/ProdyScan/internal/cache"
	"github.com/prodyscan/ProdyScan/internal/extract"
	"github.com/prodyscan/ProdyScan/internal/fetcher"
	"github.com/prodyscan/ProdyScan/internal/models"
)

// ErrPageUnreachable is the single error kind the analyzer surfaces. A page
// that loads but yields no fields is a sparse result, not an error.
var ErrPageUnreachable = errors.New("page unreachable")

const (
	defaultDomain       = "alibaba.com"
	descriptionFallback = "Online marketplace product"
)

// Analyzer is the top-level orchestrator: fetch a page, extract product and
// supplier, resolve the supplier's profile page and enrich from it, memoize
// the combined result. Each call is a synchronous single flow; the cache is
// the only state shared between calls.
type Analyzer struct {
	fetcher    *fetcher.Fetcher
	store      cache.Store
	products   *extract.ProductExtractor
	suppliers  *extract.SupplierExtractor
	profiles   *extract.ProfileResolver
	domain     string
	searchBase string
	logger     *slog.Logger
}

type Option func(*Analyzer)

// WithDomain overrides the marketplace domain used for short-link gating and
// supplier search.
func WithDomain(domain string) Option {
	return func(a *Analyzer) { a.domain = domain }
}

// WithSearchBaseURL overrides the base URL supplier searches are built on.
// The default is https://www.<domain>.
func WithSearchBaseURL(base string) Option {
	return func(a *Analyzer) { a.searchBase = strings.TrimRight(base, "/") }
}

func New(f *fetcher.Fetcher, store cache.Store, opts ...Option) *Analyzer {
	a := &Analyzer{
		fetcher:   f,
		store:     store,
		products:  extract.NewProductExtractor(),
		suppliers: extract.NewSupplierExtractor(),
		profiles:  extract.NewProfileResolver(),
		domain:    defaultDomain,
		logger:    slog.Default().With("component", "analyzer"),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AnalyzeURL runs the full pipeline for one page URL.
func (a *Analyzer) AnalyzeURL(ctx context.Context, rawURL string) (*models.CombinedResult, error) {
	key := cache.URLKey(rawURL)
	if result, ok := a.cached(ctx, cache.NamespaceURL, key); ok {
		return result, nil
	}

	resolved := rawURL
	if !strings.Contains(hostOf(rawURL), a.domain) {
		resolved = a.fetcher.ResolveShortLink(ctx, rawURL, a.domain)
	}

	doc, err := a.fetcher.Fetch(ctx, resolved)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageUnreachable, err)
	}

	product := a.products.Extract(doc)
	supplier := a.suppliers.Extract(doc)

	if profileURL, ok := a.profiles.FindProfileURL(doc, resolved); ok {
		supplier.ProfileURL = profileURL
		a.enrichFromProfile(ctx, supplier, profileURL)
	} else if !extract.IsProfileURL(resolved) {
		// A response-time figure seen on a product page without a confirmed
		// profile link is not trusted and is withheld.
		supplier.ResponseTime = ""
	}

	result := &models.CombinedResult{
		ID:          uuid.NewString(),
		Product:     product,
		Supplier:    supplier,
		Description: describe(product),
		SourceURL:   resolved,
	}
	a.memoize(ctx, cache.NamespaceURL, key, result)
	return result, nil
}

// AnalyzeSupplierByName searches the marketplace for a supplier and, when a
// profile link shows up in the results, runs the profile extraction path. No
// discoverable profile is still success: the search URL alone remains
// actionable for a human.
func (a *Analyzer) AnalyzeSupplierByName(ctx context.Context, name string) (*models.CombinedResult, error) {
	key := cache.SupplierKey(name)
	if result, ok := a.cached(ctx, cache.NamespaceSupplier, key); ok {
		return result, nil
	}

	searchURL := a.supplierSearchURL(name)
	doc, err := a.fetcher.Fetch(ctx, searchURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageUnreachable, err)
	}

	result := &models.CombinedResult{
		ID:          uuid.NewString(),
		Product:     models.NewProduct(),
		Supplier:    models.NewSupplier(),
		Description: name,
		SourceURL:   searchURL,
	}

	if profileURL, ok := a.profiles.FindProfileURL(doc, searchURL); ok {
		if profileDoc, err := a.fetcher.Fetch(ctx, profileURL); err != nil {
			a.logger.Warn("profile fetch failed, keeping search result", "url", profileURL, "error", err)
		} else {
			result.Supplier = a.suppliers.Extract(profileDoc)
			result.Supplier.ProfileURL = profileURL
			result.SourceURL = profileURL
			if result.Supplier.Name != "" {
				result.Description = result.Supplier.Name
			}
		}
	}

	a.memoize(ctx, cache.NamespaceSupplier, key, result)
	return result, nil
}

// enrichFromProfile merges a second supplier pass from the profile page into
// the first pass. Only gaps are filled; a profile fetch failure is non-fatal
// and leaves the first pass as the final answer.
func (a *Analyzer) enrichFromProfile(ctx context.Context, supplier *models.Supplier, profileURL string) {
	profileDoc, err := a.fetcher.Fetch(ctx, profileURL)
	if err != nil {
		a.logger.Warn("profile enrichment fetch failed", "url", profileURL, "error", err)
		return
	}
	supplier.Merge(a.suppliers.Extract(profileDoc))
}

func (a *Analyzer) supplierSearchURL(name string) string {
	base := a.searchBase
	if base == "" {
		base = "https://www." + a.domain
	}
	return fmt.Sprintf("%s/trade/search?SearchText=%s&tab=supplier",
		base, url.QueryEscape(strings.TrimSpace(name)))
}

func (a *Analyzer) cached(ctx context.Context, ns cache.Namespace, key string) (*models.CombinedResult, bool) {
	payload, ok := a.store.Get(ctx, ns, key)
	if !ok {
		return nil, false
	}
	var result models.CombinedResult
	if err := json.Unmarshal(payload, &result); err != nil {
		a.logger.Warn("dropping undecodable cache entry", "namespace", ns, "error", err)
		return nil, false
	}
	result.FromCache = true
	return &result, true
}

func (a *Analyzer) memoize(ctx context.Context, ns cache.Namespace, key string, result *models.CombinedResult) {
	payload, err := json.Marshal(result)
	if err != nil {
		a.logger.Warn("result not cacheable", "error", err)
		return
	}
	if err := a.store.Set(ctx, ns, key, payload); err != nil {
		a.logger.Warn("cache write failed", "namespace", ns, "error", err)
	}
}

// hostOf returns the host part of a URL, or "" when it cannot be parsed.
// Short-link gating matches the host only: a marketplace domain buried in a
// shortener's query string must not suppress resolution.
func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}

// describe picks the display description: product title first, then the
// product description, then a literal fallback.
func describe(product *models.Product) string {
	if product.Title != "" {
		return product.Title
	}
	if product.Description != "" {
		return product.Description
	}
	return descriptionFallback
}
