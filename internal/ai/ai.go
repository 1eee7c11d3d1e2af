// Package ai declares the contracts for the optional vision collaborators:
// an image describer that turns a product photo into a search query, and a
// similarity searcher over a prebuilt product index. Both are pluggable; the
// pipeline runs fully without either.
package ai

import (
	"context"
	"errors"
)

var (
	// ErrNoDescription means the describer ran but produced nothing usable.
	// Callers fall back to OCR text or a generic query.
	ErrNoDescription = errors.New("no description produced")

	// ErrIndexUnavailable means the similarity index could not be reached or
	// loaded. Distinct from ErrIndexEmpty: unavailable is an operational
	// fault, empty is a valid state with zero matches.
	ErrIndexUnavailable = errors.New("similarity index unavailable")

	// ErrIndexEmpty means the index is loaded but holds no entries.
	ErrIndexEmpty = errors.New("similarity index empty")
)

// Describer produces a short, search-ready description of the product shown
// in an image.
type Describer interface {
	Describe(ctx context.Context, image []byte) (string, error)
}

// Match is one hit from the similarity index.
type Match struct {
	Title    string  `json:"title"`
	Brand    string  `json:"brand,omitempty"`
	Price    string  `json:"price,omitempty"`
	ImageURL string  `json:"image_url,omitempty"`
	URL      string  `json:"url,omitempty"`
	Score    float64 `json:"score"`
}

// SimilaritySearcher returns the k closest known products to an image,
// best match first.
type SimilaritySearcher interface {
	Search(ctx context.Context, image []byte, k int) ([]Match, error)
}
