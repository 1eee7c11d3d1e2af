package models

// Product is the normalized record built from a marketplace product page.
//
// Numeric-looking fields stay strings on purpose: the source formatting
// (decimal separators, currency prefixes) must round-trip untouched, and the
// extractors never invent numbers that are not present on the page.
type Product struct {
	Title          string            `json:"title"`
	Description    string            `json:"description"`
	Price          string            `json:"price"`
	PriceMin       string            `json:"price_min"`
	PriceMax       string            `json:"price_max"`
	Currency       string            `json:"currency"`
	MOQ            string            `json:"moq"`
	PriceRanges    []string          `json:"price_ranges,omitempty"`
	Rating         string            `json:"rating"`
	Reviews        string            `json:"reviews"`
	Sold           string            `json:"sold"`
	Category       string            `json:"category"`
	Features       map[string]string `json:"features,omitempty"`
	TradeAssurance bool              `json:"trade_assurance"`
}

func NewProduct() *Product {
	return &Product{
		Features: make(map[string]string),
	}
}
