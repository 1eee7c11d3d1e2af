// Package shops builds outbound search URLs for the retail sites a scanned
// product can be cross-checked against.
package shops

import (
	"fmt"
	"net/url"
	"strings"
)

// templates maps shop name to per-country search URL templates. The empty
// country key is the default for that shop.
var templates = map[string]map[string]string{
	"jumia": {
		"ci": "https://www.jumia.ci/catalog/?q=%s",
		"sn": "https://www.jumia.sn/catalog/?q=%s",
		"ma": "https://www.jumia.ma/catalog/?q=%s",
		"":   "https://www.jumia.com/catalog/?q=%s",
	},
	"amazon": {
		"fr": "https://www.amazon.fr/s?k=%s",
		"us": "https://www.amazon.com/s?k=%s",
		"":   "https://www.amazon.com/s?k=%s",
	},
	"aliexpress": {
		"": "https://www.aliexpress.com/wholesale?SearchText=%s",
	},
	"ebay": {
		"": "https://www.ebay.com/sch/i.html?_nkw=%s",
	},
	"cdiscount": {
		"fr": "https://www.cdiscount.com/search/10/%s.html",
		"":   "https://www.cdiscount.com/search/10/%s.html",
	},
	"alibaba": {
		"": "https://www.alibaba.com/trade/search?SearchText=%s",
	},
}

const googleSearch = "https://www.google.com/search?q=%s"

// BuildSearchURL returns the search URL for query on the given shop and
// country. An unknown shop falls back to a Google "site:" query scoped to
// that shop; no shop at all is a plain Google search.
func BuildSearchURL(shop, country, query string) string {
	shop = strings.ToLower(strings.TrimSpace(shop))
	country = strings.ToLower(strings.TrimSpace(country))
	q := url.QueryEscape(query)

	if perCountry, ok := templates[shop]; ok {
		template, ok := perCountry[country]
		if !ok || template == "" {
			template = perCountry[""]
		}
		return fmt.Sprintf(template, q)
	}

	if shop != "" {
		return fmt.Sprintf("https://www.google.com/search?q=site:%s+%s", url.QueryEscape(shop), q)
	}
	return fmt.Sprintf(googleSearch, q)
}

// Known reports whether shop has a dedicated template.
func Known(shop string) bool {
	_, ok := templates[strings.ToLower(strings.TrimSpace(shop))]
	return ok
}
