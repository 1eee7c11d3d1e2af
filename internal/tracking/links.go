package tracking

import (
	"net/url"

	"github.com/prodyscan/ProdyScan/internal/models"
)

// LinksFor builds the external tracking URLs for a code in a category. Every
// category keeps at least one generic aggregator link even when a
// carrier-specific page exists, because aggregators sometimes see scans the
// carrier page does not. china_local gets three aggregators at once since no
// single one is authoritative for domestic Chinese carriers.
func LinksFor(category models.Category, code string) map[string]string {
	q := url.QueryEscape(code)

	links := map[string]string{
		"17track": "https://t.17track.net/en#nums=" + q,
	}

	switch category {
	case models.CategoryChoiceAir, models.CategoryChoiceSea:
		links["cainiao"] = "https://global.cainiao.com/newDetail.htm?mailNoList=" + q
		links["aliexpress"] = "https://track.aliexpress.com/logisticsdetail.htm?tradeId=" + q
	case models.CategoryChinaLocal:
		links["parcelsapp"] = "https://parcelsapp.com/en/tracking/" + q
		links["trackingmore"] = "https://www.trackingmore.com/track/en/" + q
	case models.CategoryDHL:
		links["dhl"] = "https://www.dhl.com/global-en/home/tracking.html?tracking-id=" + q
	case models.CategoryUPS:
		links["ups"] = "https://www.ups.com/track?tracknum=" + q
	case models.CategoryFedEx:
		links["fedex"] = "https://www.fedex.com/fedextrack/?trknbr=" + q
	case models.CategoryAirAWB:
		links["track-trace"] = "https://www.track-trace.com/aircargo?number=" + q
	case models.CategorySeaCont:
		links["searates"] = "https://www.searates.com/container/tracking/?number=" + q
	case models.CategorySeaBL:
		links["searates"] = "https://www.searates.com/container/tracking/?number=" + q
		links["parcelsapp"] = "https://parcelsapp.com/en/tracking/" + q
	}

	return links
}

// Track classifies a query and builds its tracking links. A forced category
// in the query bypasses the classifier.
func Track(query models.TrackingQuery) models.TrackingResult {
	category := query.ForcedCategory
	if category == "" {
		category = Classify(query.Code)
	}

	result := models.TrackingResult{
		Code:     query.Code,
		Category: category,
		Links:    LinksFor(category, query.Code),
	}

	if category == models.CategoryChinaLocal {
		guess := GuessCarrier(query.Code)
		result.Carrier = &guess
	}

	return result
}
