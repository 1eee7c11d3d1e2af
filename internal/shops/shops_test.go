package shops

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildSearchURL(t *testing.T) {
	tests := []struct {
		name    string
		shop    string
		country string
		query   string
		want    string
	}{
		{
			name:    "jumia ivory coast",
			shop:    "jumia",
			country: "ci",
			query:   "garden hose",
			want:    "https://www.jumia.ci/catalog/?q=garden+hose",
		},
		{
			name:    "jumia unknown country falls back to default",
			shop:    "jumia",
			country: "ke",
			query:   "garden hose",
			want:    "https://www.jumia.com/catalog/?q=garden+hose",
		},
		{
			name:    "amazon france",
			shop:    "amazon",
			country: "fr",
			query:   "tuyau",
			want:    "https://www.amazon.fr/s?k=tuyau",
		},
		{
			name:  "aliexpress ignores country",
			shop:  "aliexpress",
			query: "usb hub",
			want:  "https://www.aliexpress.com/wholesale?SearchText=usb+hub",
		},
		{
			name:  "cdiscount path template",
			shop:  "cdiscount",
			query: "chaise",
			want:  "https://www.cdiscount.com/search/10/chaise.html",
		},
		{
			name:  "alibaba",
			shop:  "alibaba",
			query: "steel bracket",
			want:  "https://www.alibaba.com/trade/search?SearchText=steel+bracket",
		},
		{
			name:  "shop matching is case and space insensitive",
			shop:  "  EBAY ",
			query: "lamp",
			want:  "https://www.ebay.com/sch/i.html?_nkw=lamp",
		},
		{
			name:  "unknown shop becomes a site-scoped google search",
			shop:  "fnac.com",
			query: "casque audio",
			want:  "https://www.google.com/search?q=site:fnac.com+casque+audio",
		},
		{
			name:  "no shop is a plain google search",
			query: "casque audio",
			want:  "https://www.google.com/search?q=casque+audio",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildSearchURL(tt.shop, tt.country, tt.query))
		})
	}
}

func TestKnown(t *testing.T) {
	assert.True(t, Known("jumia"))
	assert.True(t, Known(" Amazon "))
	assert.False(t, Known("fnac"))
	assert.False(t, Known(""))
}
