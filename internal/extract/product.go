package extract

import (
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/prodyscan/ProdyScan/internal/models"
)

// ProductExtractor builds a normalized Product from a page using three
// passes of strictly decreasing trust: machine-readable LD+JSON, the
// framework-injected app state, then regex over visible text. Each pass only
// fills fields still empty, so the noisy regex layer never clobbers a good
// structured value.
type ProductExtractor struct {
	logger *slog.Logger
}

func NewProductExtractor() *ProductExtractor {
	return &ProductExtractor{
		logger: slog.Default().With("component", "product_extractor"),
	}
}

func (e *ProductExtractor) Extract(doc *goquery.Document) *models.Product {
	product := models.NewProduct()

	e.fromLDJSON(doc, product)
	e.fromAppState(doc, product)
	e.fromVisibleText(doc, product)

	return product
}

// fromLDJSON takes the first node typed Product and maps its standard
// fields. Later nodes are ignored: the first Product block is the page's own
// listing, anything after it tends to be recommendation noise.
func (e *ProductExtractor) fromLDJSON(doc *goquery.Document, product *models.Product) {
	for _, node := range ReadLDJSON(doc) {
		if !isType(node, "Product") {
			continue
		}

		setIfEmpty(&product.Title, digString(node, "name"))
		setIfEmpty(&product.Description, digString(node, "description"))

		if offers, ok := digMap(node, "offers"); ok {
			setIfEmpty(&product.Price, digString(offers, "price"))
			setIfEmpty(&product.Currency, digString(offers, "priceCurrency"))
			setIfEmpty(&product.PriceMin, digString(offers, "lowPrice"))
			setIfEmpty(&product.PriceMax, digString(offers, "highPrice"))
		}
		if rating, ok := digMap(node, "aggregateRating"); ok {
			setIfEmpty(&product.Rating, digString(rating, "ratingValue"))
			setIfEmpty(&product.Reviews, digString(rating, "reviewCount"))
		}
		return
	}
}

func (e *ProductExtractor) fromAppState(doc *goquery.Document, product *models.Product) {
	state, ok := ReadAppState(doc, AppStateScriptID)
	if !ok {
		return
	}
	node, ok := digMap(state, "props", "pageProps", "product")
	if !ok {
		return
	}

	setIfEmpty(&product.Title, digString(node, "name"))
	setIfEmpty(&product.Description, digString(node, "description"))
	setIfEmpty(&product.PriceMin, digString(node, "price", "min"))
	setIfEmpty(&product.PriceMax, digString(node, "price", "max"))
	setIfEmpty(&product.Currency, digString(node, "price", "currency"))
	setIfEmpty(&product.MOQ, digString(node, "moq"))
	setIfEmpty(&product.Rating, digString(node, "ratings", "average"))
	setIfEmpty(&product.Reviews, digString(node, "ratings", "total"))
	setIfEmpty(&product.Sold, digString(node, "sold"))
	setIfEmpty(&product.Category, digString(node, "category", "name"))

	if ranges, ok := digSlice(node, "price", "ranges"); ok && len(product.PriceRanges) == 0 {
		for _, item := range ranges {
			tier, ok := item.(map[string]any)
			if !ok {
				continue
			}
			if label := renderPriceTier(tier); label != "" {
				product.PriceRanges = append(product.PriceRanges, label)
			}
		}
	}

	if attrs, ok := digSlice(node, "attributes"); ok {
		for _, item := range attrs {
			attr, ok := item.(map[string]any)
			if !ok {
				continue
			}
			name := digString(attr, "name")
			value := digString(attr, "value")
			if name != "" && value != "" {
				if _, exists := product.Features[name]; !exists {
					product.Features[name] = value
				}
			}
		}
	}

	if digBool(node, "tradeAssurance") {
		product.TradeAssurance = true
	}
}

// renderPriceTier turns one price-range entry into a human-readable label:
// "2.50 USD (100–499 pcs)", or "2.10 USD (≥ 500 pcs)" when only a minimum
// quantity is known, or just "2.50 USD" without tier bounds.
func renderPriceTier(tier map[string]any) string {
	amount := digString(tier, "amount")
	if amount == "" {
		amount = digString(tier, "price")
	}
	if amount == "" {
		return ""
	}

	label := amount
	if currency := digString(tier, "currency"); currency != "" {
		label += " " + currency
	}

	min := digString(tier, "min")
	max := digString(tier, "max")
	switch {
	case min != "" && max != "":
		label += fmt.Sprintf(" (%s–%s pcs)", min, max)
	case min != "":
		label += fmt.Sprintf(" (≥ %s pcs)", min)
	}
	return label
}

// fromVisibleText is the last resort: regex over the page's flattened text.
func (e *ProductExtractor) fromVisibleText(doc *goquery.Document, product *models.Product) {
	text := visibleText(doc)

	setIfEmpty(&product.Rating, productRatingRule.apply(text))
	setIfEmpty(&product.Reviews, productReviewsRule.apply(text))
	setIfEmpty(&product.Sold, productSoldRule.apply(text))

	if product.PriceMin == "" || product.PriceMax == "" {
		// Prefer amounts inside the already-known price text; fall back to
		// scanning the whole page.
		source := product.Price
		if source == "" || len(dollarAmountRe.FindAllString(source, -1)) == 0 {
			source = text
		}
		min, max := dollarBounds(source)
		setIfEmpty(&product.PriceMin, min)
		setIfEmpty(&product.PriceMax, max)
	}
}

// dollarBounds returns the lowest and highest $-prefixed amounts in text,
// keeping the original formatting of each.
func dollarBounds(text string) (string, string) {
	matches := dollarAmountRe.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return "", ""
	}

	type amount struct {
		raw   string
		value float64
	}
	amounts := make([]amount, 0, len(matches))
	for _, m := range matches {
		raw := m[1]
		v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
		if err != nil {
			continue
		}
		amounts = append(amounts, amount{raw: raw, value: v})
	}
	if len(amounts) == 0 {
		return "", ""
	}

	sort.Slice(amounts, func(i, j int) bool { return amounts[i].value < amounts[j].value })
	return amounts[0].raw, amounts[len(amounts)-1].raw
}

func setIfEmpty(dst *string, src string) {
	if *dst == "" && src != "" {
		*dst = src
	}
}

// isType reports whether an LD+JSON node's @type is, or includes, want.
func isType(node map[string]any, want string) bool {
	switch t := node["@type"].(type) {
	case string:
		return t == want
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok && s == want {
				return true
			}
		}
	}
	return false
}
