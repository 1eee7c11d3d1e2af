package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pageURL = "https://www.example-market.com/product/12345.html"

func TestFindProfileURL(t *testing.T) {
	resolver := NewProfileResolver()

	tests := []struct {
		name     string
		html     string
		expected string
	}{
		{
			name:     "legacy minisite marker",
			html:     `<a href="https://acme.en.example-market.com/minisite/profile.html">store</a>`,
			expected: "https://acme.en.example-market.com/minisite/profile.html",
		},
		{
			name:     "canonical company_profile marker",
			html:     `<a href="/company_profile/acme.html">profile</a>`,
			expected: "https://www.example-market.com/company_profile/acme.html",
		},
		{
			name:     "company path segment",
			html:     `<a href="/company/acme">about us</a>`,
			expected: "https://www.example-market.com/company/acme",
		},
		{
			name:     "seller name area",
			html:     `<div class="seller-name"><a href="/seller/acme-trading">Acme Trading</a></div>`,
			expected: "https://www.example-market.com/seller/acme-trading",
		},
		{
			name:     "shop path marker",
			html:     `<a href="/shop/acme">visit shop</a>`,
			expected: "https://www.example-market.com/shop/acme",
		},
		{
			name:     "analytics attribute",
			html:     `<a data-analytics="click:supplier_card" href="/x/acme">supplier</a>`,
			expected: "https://www.example-market.com/x/acme",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustDoc(t, "<html><body>"+tt.html+"</body></html>")
			got, ok := resolver.FindProfileURL(doc, pageURL)
			require.True(t, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestFindProfileURLPriority(t *testing.T) {
	// A minisite link buried late in the page still beats an earlier
	// seller-name link: strategy order, not document order, decides.
	doc := mustDoc(t, `<html><body>
		<div class="seller-name"><a href="/seller/acme">Acme</a></div>
		<footer><a href="/minisite/acme-profile.html">old profile</a></footer>
	</body></html>`)

	got, ok := NewProfileResolver().FindProfileURL(doc, pageURL)
	require.True(t, ok)
	assert.Equal(t, "https://www.example-market.com/minisite/acme-profile.html", got)
}

func TestFindProfileURLAbsent(t *testing.T) {
	doc := mustDoc(t, `<html><body>
		<a href="/cart">cart</a>
		<a href="/help/faq">help</a>
	</body></html>`)

	got, ok := NewProfileResolver().FindProfileURL(doc, pageURL)
	assert.False(t, ok)
	assert.Empty(t, got)
}

func TestIsProfileURL(t *testing.T) {
	assert.True(t, IsProfileURL("https://acme.example.com/minisite/profile.html"))
	assert.True(t, IsProfileURL("https://www.example.com/company_profile/acme.html"))
	// A /company/ path is findable on a page but does not count as already
	// being on a profile; the withholding check is deliberately narrow.
	assert.False(t, IsProfileURL("https://www.example.com/company/acme"))
	assert.False(t, IsProfileURL("https://www.example.com/product/1.html"))
}
