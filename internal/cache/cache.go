package cache

import (
	"context"
	"strings"
	"time"
)

// DefaultTTL is how long a cached orchestration result stays valid.
const DefaultTTL = 24 * time.Hour

// Namespace separates the two independent key spaces the analyzer uses.
type Namespace string

const (
	NamespaceURL      Namespace = "url"
	NamespaceSupplier Namespace = "supplier"
)

// Store memoizes orchestration results. Implementations must be safe for
// concurrent use per key; no cross-key consistency is required, so a read
// racing a write may see an entry a few seconds stale.
type Store interface {
	Get(ctx context.Context, ns Namespace, key string) ([]byte, bool)
	Set(ctx context.Context, ns Namespace, key string, payload []byte) error
}

// SupplierKey normalizes a supplier name so trivial case and whitespace
// variations hit the same entry.
func SupplierKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// URLKey normalizes a page URL for lookup.
func URLKey(rawURL string) string {
	return strings.TrimSpace(rawURL)
}
