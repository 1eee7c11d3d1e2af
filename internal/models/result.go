package models

// CombinedResult is the outcome of one orchestration call: the product and
// supplier records extracted from a page, plus the description chosen for
// search and display. Results are value objects; they are built once per call
// and never mutated after return.
type CombinedResult struct {
	ID          string    `json:"id"`
	Product     *Product  `json:"product"`
	Supplier    *Supplier `json:"supplier"`
	Description string    `json:"description"`
	SourceURL   string    `json:"source_url"`
	FromCache   bool      `json:"from_cache"`
}
