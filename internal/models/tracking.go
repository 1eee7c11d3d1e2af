package models

// Category tags the inferred carrier family of a shipment tracking code.
type Category string

const (
	CategoryChoiceAir  Category = "choice_air"
	CategoryChoiceSea  Category = "choice_sea"
	CategoryChinaLocal Category = "china_local"
	CategoryDHL        Category = "dhl"
	CategoryUPS        Category = "ups"
	CategoryFedEx      Category = "fedex_or_express"
	CategoryAirAWB     Category = "air_awb"
	CategorySeaCont    Category = "sea_container"
	CategorySeaBL      Category = "sea_bl"
	CategoryUnknown    Category = "unknown"
)

// TrackingQuery is the immutable classifier input. When ForcedCategory is
// non-empty the classifier is bypassed and links are built for that category.
type TrackingQuery struct {
	Code           string   `json:"code"`
	ForcedCategory Category `json:"forced_category,omitempty"`
}

// CarrierGuess names the probable carrier behind a china_local code. It is a
// format-based best guess, not an authoritative lookup.
type CarrierGuess struct {
	Code       string  `json:"code"`
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}

type TrackingResult struct {
	Code     string            `json:"code"`
	Category Category          `json:"detected_category"`
	Links    map[string]string `json:"links"`
	Carrier  *CarrierGuess     `json:"carrier_guess,omitempty"`
}
