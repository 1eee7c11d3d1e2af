package extract

import (
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/prodyscan/ProdyScan/internal/models"
)

// supplierNameSelectors are tried in order for the supplier display name when
// no structured source named it. The first non-empty text longer than four
// characters wins; shorter hits are almost always icon glyphs or labels.
var supplierNameSelectors = []string{
	".company-name",
	".supplier-name a",
	".seller-name a",
	".seller-name",
	".store-name a",
	"a[data-company-name]",
	"h1.company-title",
}

// trustBadgeSelectors mark verified / trade assurance via icon or class
// presence rather than text.
var (
	verifiedBadgeSelectors       = []string{".verified-icon", "i.verified", "img[alt='verified']", ".verified-supplier-icon"}
	tradeAssuranceBadgeSelectors = []string{".trade-assurance-icon", "i.ta-icon", "a[href*='trade_assurance']"}
)

// SupplierExtractor builds a normalized Supplier from a page. Four layers
// run from most to least trusted: the app-state company object, the compact
// card regex pass, the DOM name selectors, and free-text regex fallbacks.
// Every layer writes only into fields that are still empty.
type SupplierExtractor struct {
	logger *slog.Logger
}

func NewSupplierExtractor() *SupplierExtractor {
	return &SupplierExtractor{
		logger: slog.Default().With("component", "supplier_extractor"),
	}
}

func (e *SupplierExtractor) Extract(doc *goquery.Document) *models.Supplier {
	supplier := models.NewSupplier()

	e.fromAppState(doc, supplier)
	supplier.Merge(e.CompactCard(doc))
	e.fromNameSelectors(doc, supplier)
	e.fromVisibleText(doc, supplier)
	e.fromTrustBadges(doc, supplier)

	return supplier
}

// fromAppState maps the embedded company object. The site's templates have
// named it company, seller or shop at different times, so all three paths
// are tried.
func (e *SupplierExtractor) fromAppState(doc *goquery.Document, supplier *models.Supplier) {
	state, ok := ReadAppState(doc, AppStateScriptID)
	if !ok {
		return
	}

	var node map[string]any
	for _, key := range []string{"company", "seller", "shop"} {
		if n, ok := digMap(state, "props", "pageProps", key); ok {
			node = n
			break
		}
	}
	if node == nil {
		return
	}

	setIfEmpty(&supplier.Name, digString(node, "name"))
	setIfEmpty(&supplier.Country, digString(node, "country"))
	setIfEmpty(&supplier.Country, digString(node, "location", "country"))
	setIfEmpty(&supplier.YearsActive, digString(node, "years"))
	setIfEmpty(&supplier.Rating, digString(node, "ratings", "average"))
	setIfEmpty(&supplier.Reviews, digString(node, "ratings", "total"))
	setIfEmpty(&supplier.DeliveryRate, digString(node, "deliveryRate"))
	setIfEmpty(&supplier.ResponseRate, digString(node, "responseRate"))
	setIfEmpty(&supplier.ResponseTime, digString(node, "responseTime"))
	setIfEmpty(&supplier.BusinessType, digString(node, "businessType"))
	setIfEmpty(&supplier.ExportRevenue, digString(node, "exportRevenue"))
	setIfEmpty(&supplier.OnlineRevenue, digString(node, "onlineRevenue"))
	setIfEmpty(&supplier.FactoryArea, digString(node, "factorySize"))
	setIfEmpty(&supplier.FactoryArea, digString(node, "factoryArea"))
	setIfEmpty(&supplier.Employees, digString(node, "employees"))
	setIfEmpty(&supplier.FoundedYear, digString(node, "foundedYear"))
	setIfEmpty(&supplier.BrandCount, digString(node, "brandCount"))
	setIfEmpty(&supplier.SupplierRank, digString(node, "rank"))

	if services, ok := digSlice(node, "services"); ok && len(supplier.Services) == 0 {
		for _, item := range services {
			if s := stringify(item); s != "" {
				supplier.Services = append(supplier.Services, s)
			}
		}
	}

	// Boolean-like evidence only ever asserts the positive: an explicit
	// false stays Unknown because templates omit these flags routinely.
	if digBool(node, "isVerified") || digBool(node, "verified") {
		supplier.Verified = models.True
	}
	if digBool(node, "tradeAssurance") {
		supplier.TradeAssurance = models.True
	}
}

// CompactCard reads the abbreviated supplier summary shown on product pages.
// Every pattern is independent; a miss leaves its field empty, which is the
// expected outcome for most of them on any given page.
func (e *SupplierExtractor) CompactCard(doc *goquery.Document) *models.Supplier {
	text := visibleText(doc)
	card := models.NewSupplier()

	if cardVerifiedRule.apply(text) != "" {
		card.Verified = models.True
	}
	card.Rating = cardRatingRule.apply(text)
	card.YearsActive = cardYearsRule.apply(text)
	card.DeliveryRate = cardDeliveryRule.apply(text)
	card.OnlineRevenue = cardOnlineRevenueRule.apply(text)
	card.ResponseTime = cardResponseTimeRule.apply(text)
	card.FoundedYear = cardFoundedRule.apply(text)
	card.FactoryArea = cardFactorySizeRule.apply(text)
	card.Employees = cardEmployeesRule.apply(text)
	card.BrandCount = cardBrandCountRule.apply(text)
	card.SupplierRank = cardRankRule.apply(text)

	return card
}

func (e *SupplierExtractor) fromNameSelectors(doc *goquery.Document, supplier *models.Supplier) {
	if supplier.Name != "" {
		return
	}
	for _, selector := range supplierNameSelectors {
		name := strings.TrimSpace(doc.Find(selector).First().Text())
		if len(name) > 4 {
			supplier.Name = name
			return
		}
	}
}

func (e *SupplierExtractor) fromVisibleText(doc *goquery.Document, supplier *models.Supplier) {
	text := visibleText(doc)

	setIfEmpty(&supplier.Country, applyFirst(text, supplierCountryRules))
	setIfEmpty(&supplier.YearsActive, supplierYearsRule.apply(text))
	setIfEmpty(&supplier.Rating, supplierRatingRule.apply(text))
	setIfEmpty(&supplier.Reviews, supplierReviewsRule.apply(text))
	setIfEmpty(&supplier.DeliveryRate, applyFirst(text, supplierDeliveryRules))
	setIfEmpty(&supplier.ResponseTime, supplierResponseTimeRule.apply(text))
	setIfEmpty(&supplier.OnlineRevenue, supplierOnlineRevenueRule.apply(text))
	setIfEmpty(&supplier.ExportRevenue, supplierExportRevenueRule.apply(text))
	setIfEmpty(&supplier.FactoryArea, supplierFactoryAreaRule.apply(text))
	setIfEmpty(&supplier.Employees, supplierEmployeesRule.apply(text))

	if len(supplier.Services) == 0 {
		if raw := supplierServicesRule.apply(text); raw != "" {
			supplier.Services = splitServices(raw)
		}
	}
}

func (e *SupplierExtractor) fromTrustBadges(doc *goquery.Document, supplier *models.Supplier) {
	for _, selector := range verifiedBadgeSelectors {
		if doc.Find(selector).Length() > 0 {
			supplier.Verified = models.True
			break
		}
	}
	for _, selector := range tradeAssuranceBadgeSelectors {
		if doc.Find(selector).Length() > 0 {
			supplier.TradeAssurance = models.True
			break
		}
	}
}
