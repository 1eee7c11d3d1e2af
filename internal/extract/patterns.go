package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// textRule binds one regex to one target field so a wrong capture can be
// traced back to the rule that produced it. A rule that does not match
// leaves its field alone.
type textRule struct {
	name string
	re   *regexp.Regexp
}

// apply returns the first capture group of the first match, trimmed, or "".
func (r textRule) apply(text string) string {
	m := r.re.FindStringSubmatch(text)
	if len(m) < 2 {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// applyFirst runs rules in order and returns the first non-empty capture.
func applyFirst(text string, rules []textRule) string {
	for _, r := range rules {
		if v := r.apply(text); v != "" {
			return v
		}
	}
	return ""
}

// Product free-text fallbacks. These run last, only into fields the
// structured passes left empty.
var (
	productRatingRule = textRule{
		name: "rating before reviews token",
		re:   regexp.MustCompile(`(\d\.\d)[^A-Za-z]{0,40}(?:reviews|avis)`),
	}
	productReviewsRule = textRule{
		name: "count before reviews token",
		re:   regexp.MustCompile(`(\d[\d,.]*)\s*(?:reviews|avis)`),
	}
	productSoldRule = textRule{
		name: "count before sold token",
		re:   regexp.MustCompile(`(\d[\d,.]*)\s*\+?\s*(?:sold|vendus)`),
	}
	// dollarAmountRe feeds the price-bound fallback; all matches are
	// collected and the min/max picked by numeric value.
	dollarAmountRe = regexp.MustCompile(`\$\s*(\d+(?:,\d{3})*(?:\.\d+)?)`)
)

// Compact supplier card patterns. Each one is independent; a miss leaves the
// field empty, which is the normal outcome on most pages.
var (
	cardVerifiedRule = textRule{
		name: "verified supplier phrase",
		re:   regexp.MustCompile(`(?i)(verified supplier|fournisseur v\x{00e9}rifi\x{00e9})`),
	}
	cardRatingRule = textRule{
		name: "rating out of five",
		re:   regexp.MustCompile(`(\d\.\d)\s*/\s*5`),
	}
	cardYearsRule = textRule{
		name: "years on platform",
		re:   regexp.MustCompile(`(?i)(\d{1,2})\s*(?:yrs?|years?|ans?)\s+(?:on|sur)\s+\w+`),
	}
	cardDeliveryRule = textRule{
		name: "on-time delivery percentage",
		re:   regexp.MustCompile(`(?i)(\d{1,3}(?:\.\d+)?%)\s*on-?time delivery`),
	}
	cardOnlineRevenueRule = textRule{
		name: "online revenue with US$ prefix",
		re:   regexp.MustCompile(`(?i)(US\$\s?[\d,.]+\s?[KMB]?\+?)\s*(?:online revenue|in online)`),
	}
	cardResponseTimeRule = textRule{
		name: "response time in hours",
		re:   regexp.MustCompile(`(?i)(\x{2264}?\s*\d{1,3}\s*h(?:ours?)?)\s*(?:average\s+)?response`),
	}
	cardFoundedRule = textRule{
		name: "founding year",
		re:   regexp.MustCompile(`(?i)(?:founded|established|since)\s*(?:in\s*)?((?:19|20)\d{2})`),
	}
	cardFactorySizeRule = textRule{
		name: "factory size in square meters",
		re:   regexp.MustCompile(`([\d,]+(?:\.\d+)?\s*m\x{00b2})`),
	}
	cardEmployeesRule = textRule{
		name: "employee count",
		re:   regexp.MustCompile(`(?i)(\d[\d,]*\+?)\s*(?:employees|staff)`),
	}
	cardBrandCountRule = textRule{
		name: "brand count",
		re:   regexp.MustCompile(`(?i)(\d[\d,]*)\s*brands?`),
	}
	cardRankRule = textRule{
		name: "supplier rank",
		re:   regexp.MustCompile(`(?i)#\s*(\d+)\s*(?:most popular|popular|ranked)`),
	}
)

// Supplier free-text fallbacks, the lowest-trust layer. Country and delivery
// rate need alternates because the site phrases them differently per
// template variant.
var (
	supplierCountryRules = []textRule{
		{
			name: "country-region label",
			re:   regexp.MustCompile(`(?i)country\s*/?\s*region:?\s*([A-Z][A-Za-z ]{1,40})`),
		},
		{
			name: "located-in phrase",
			re:   regexp.MustCompile(`(?i)located in\s+([A-Z][A-Za-z ]{1,40})`),
		},
		{
			name: "supplier-from phrase",
			re:   regexp.MustCompile(`(?i)supplier (?:from|in)\s+([A-Z][A-Za-z ]{1,40})`),
		},
	}
	supplierYearsRule = textRule{
		name: "years active",
		re:   regexp.MustCompile(`(?i)(\d{1,2})\s*(?:yrs?|years?)`),
	}
	supplierRatingRule = textRule{
		name: "supplier rating",
		re:   regexp.MustCompile(`(\d\.\d)\s*/\s*5`),
	}
	supplierReviewsRule = textRule{
		name: "supplier review count",
		re:   regexp.MustCompile(`(?i)(\d[\d,]*)\s*(?:reviews|avis)`),
	}
	supplierDeliveryRules = []textRule{
		{
			name: "rate before delivery label",
			re:   regexp.MustCompile(`(?i)(\d{1,3}(?:\.\d+)?%)\s*on-?time delivery`),
		},
		{
			name: "delivery label before rate",
			re:   regexp.MustCompile(`(?i)on-?time delivery(?:\s*rate)?:?\s*(\d{1,3}(?:\.\d+)?%)`),
		},
	}
	supplierResponseTimeRule = textRule{
		name: "supplier response time",
		re:   regexp.MustCompile(`(?i)response time:?\s*(\x{2264}?\s*\d{1,3}\s*h(?:ours?)?)`),
	}
	supplierOnlineRevenueRule = textRule{
		name: "supplier online revenue",
		re:   regexp.MustCompile(`(?i)(US\$\s?[\d,.]+\s?[KMB]?\+?)\s*(?:online|in online)`),
	}
	supplierExportRevenueRule = textRule{
		name: "supplier export revenue",
		re:   regexp.MustCompile(`(?i)(US\$\s?[\d,.]+\s?[KMB]?\+?)\s*(?:export|annual export)`),
	}
	supplierFactoryAreaRule = textRule{
		name: "supplier factory area",
		re:   regexp.MustCompile(`([\d,]+(?:\.\d+)?\s*m\x{00b2})`),
	}
	supplierEmployeesRule = textRule{
		name: "supplier employee count",
		re:   regexp.MustCompile(`(?i)(\d[\d,]*\+?)\s*(?:employees|staff)`),
	}
	supplierServicesRule = textRule{
		name: "services list",
		re:   regexp.MustCompile(`(?i)services?:\s*([^\n.]{3,200})`),
	}
)

// visibleText flattens the page body with script and style content removed,
// so the free-text rules never match inside embedded JSON blobs.
func visibleText(doc *goquery.Document) string {
	body := doc.Find("body").Clone()
	if body.Length() == 0 {
		return doc.Text()
	}
	body.Find("script, style").Remove()
	return body.Text()
}

// splitServices turns a "services: a, b, c" capture into a clean slice.
func splitServices(raw string) []string {
	var services []string
	for _, part := range strings.Split(raw, ",") {
		if s := strings.TrimSpace(part); s != "" {
			services = append(services, s)
		}
	}
	return services
}
