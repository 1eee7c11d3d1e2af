package extract

import (
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// profileURLMarkers are the two literal markers that make a URL count as a
// supplier profile page. The substring check is deliberately crude; see the
// response-time withholding rule in the analyzer.
var profileURLMarkers = []string{"minisite", "company_profile"}

// sellerAreaSelectors anchor the profile link search around the DOM region
// that names the seller. Ordered by how often each variant shows up.
var sellerAreaSelectors = []string{
	".seller-name a",
	".store-name a",
	".company-name a",
	".supplier-info a",
	".shop-info a",
}

var shopPathMarkers = []string{"/shop/", "/store/", "/supplier/"}

// ProfileResolver finds the most likely URL of the full supplier profile
// page. The host site's "go to supplier" markup differs between desktop,
// mobile and template variants, so five strategies run in priority order and
// the first hit wins.
type ProfileResolver struct {
	logger *slog.Logger
}

func NewProfileResolver() *ProfileResolver {
	return &ProfileResolver{
		logger: slog.Default().With("component", "profile_resolver"),
	}
}

// FindProfileURL returns the absolute profile URL, or "" and false when no
// strategy matched. Relative hrefs are resolved against pageURL.
func (r *ProfileResolver) FindProfileURL(doc *goquery.Document, pageURL string) (string, bool) {
	base, err := url.Parse(pageURL)
	if err != nil {
		base = nil
	}

	strategies := []struct {
		name string
		find func() string
	}{
		{"legacy minisite href", func() string {
			return firstHref(doc, `a[href*="minisite"]`)
		}},
		{"canonical profile href", func() string {
			if href := firstHref(doc, `a[href*="company_profile"]`); href != "" {
				return href
			}
			return firstHref(doc, `a[href*="/company/"]`)
		}},
		{"seller name area", func() string {
			for _, selector := range sellerAreaSelectors {
				if href := firstHref(doc, selector); href != "" {
					return href
				}
			}
			return ""
		}},
		{"shop path marker", func() string {
			return findHref(doc, func(href string) bool {
				for _, marker := range shopPathMarkers {
					if strings.Contains(href, marker) {
						return true
					}
				}
				return false
			})
		}},
		{"analytics attribute", func() string {
			var href string
			doc.Find("a[data-analytics]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
				attr, _ := s.Attr("data-analytics")
				if strings.Contains(attr, "supplier") || strings.Contains(attr, "minisite") {
					href, _ = s.Attr("href")
					return href == ""
				}
				return true
			})
			return href
		}},
	}

	for _, strategy := range strategies {
		href := strategy.find()
		if href == "" {
			continue
		}
		resolved := resolveHref(base, href)
		if resolved == "" {
			continue
		}
		r.logger.Debug("profile link found", "strategy", strategy.name, "url", resolved)
		return resolved, true
	}
	return "", false
}

// IsProfileURL reports whether a URL already points at a supplier profile
// page, judged by the two literal markers only.
func IsProfileURL(rawURL string) bool {
	for _, marker := range profileURLMarkers {
		if strings.Contains(rawURL, marker) {
			return true
		}
	}
	return false
}

func firstHref(doc *goquery.Document, selector string) string {
	href, _ := doc.Find(selector).First().Attr("href")
	return strings.TrimSpace(href)
}

func findHref(doc *goquery.Document, match func(string) bool) string {
	var found string
	doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		if match(href) {
			found = href
			return false
		}
		return true
	})
	return found
}

func resolveHref(base *url.URL, href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if base != nil {
		u = base.ResolveReference(u)
	}
	if u.Host == "" {
		return ""
	}
	return u.String()
}
