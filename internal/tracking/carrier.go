package tracking

import "github.com/prodyscan/ProdyScan/internal/models"

// GuessCarrier names the probable carrier behind a china_local code. It is a
// best guess from the code prefix, not an authoritative lookup; the
// confidence score says how much the prefix is worth trusting.
func GuessCarrier(code string) models.CarrierGuess {
	code = normalize(code)

	switch {
	case hasAnyPrefix(code, []string{"SF"}):
		return models.CarrierGuess{Code: "sf", Name: "SF Express", Confidence: 0.9}
	case hasAnyPrefix(code, []string{"YT"}):
		return models.CarrierGuess{Code: "yunexpress", Name: "YunExpress", Confidence: 0.8}
	case hasAnyPrefix(code, []string{"ZTO"}):
		return models.CarrierGuess{Code: "zto", Name: "ZTO Express", Confidence: 0.8}
	case hasAnyPrefix(code, []string{"YDH", "YD"}):
		return models.CarrierGuess{Code: "yunda", Name: "Yunda Express", Confidence: 0.7}
	case allDigitsRe.MatchString(code) && len(code) >= 10 && len(code) <= 14:
		return models.CarrierGuess{Code: "yto", Name: "YTO Express (probable)", Confidence: 0.5}
	default:
		return models.CarrierGuess{Code: "unknown", Name: "Unknown carrier", Confidence: 0.0}
	}
}
