package tracking

import (
	"regexp"
	"strings"

	"github.com/prodyscan/ProdyScan/internal/models"
)

// Classification is format-only and therefore order-sensitive: several code
// formats are subsets of others (an MCO code is also letters+digits of a
// sea-BL-ish length, an 11-digit code matches DHL, AWB and express shapes).
// Rules run top to bottom and the first match wins.
type rule struct {
	name     string
	category models.Category
	match    func(code string) bool
}

var (
	choiceAirRe    = regexp.MustCompile(`^MCO\d{8}$`)
	choiceSeaRe    = regexp.MustCompile(`^KA\d{5,10}$`)
	allDigitsRe    = regexp.MustCompile(`^\d+$`)
	seaContainerRe = regexp.MustCompile(`^[A-Z]{4}\d{7}$`)
	hasLetterRe    = regexp.MustCompile(`[A-Z]`)
	hasDigitRe     = regexp.MustCompile(`\d`)
)

var chinaLocalPrefixes = []string{"YT", "SF", "YDH", "YD", "ZTO"}

var dhlPrefixes = []string{"JJD", "JVGL", "JD"}

// rules is the fixed priority list. The numeric china-local shape (10-14
// digits) is checked after the DHL digit rule so that 10 and 11 digit codes
// classify as DHL, matching how the lookalike formats are meant to resolve.
var rules = []rule{
	{"choice air", models.CategoryChoiceAir, choiceAirRe.MatchString},
	{"choice sea", models.CategoryChoiceSea, choiceSeaRe.MatchString},
	{"china local prefix", models.CategoryChinaLocal, func(code string) bool {
		return hasAnyPrefix(code, chinaLocalPrefixes)
	}},
	{"dhl", models.CategoryDHL, func(code string) bool {
		if hasAnyPrefix(code, dhlPrefixes) {
			return true
		}
		return allDigitsRe.MatchString(code) && (len(code) == 10 || len(code) == 11)
	}},
	{"china local numeric", models.CategoryChinaLocal, func(code string) bool {
		return allDigitsRe.MatchString(code) && len(code) >= 10 && len(code) <= 14
	}},
	{"ups", models.CategoryUPS, func(code string) bool {
		return strings.HasPrefix(code, "1Z")
	}},
	{"air waybill", models.CategoryAirAWB, func(code string) bool {
		return allDigitsRe.MatchString(code) && len(code) == 11
	}},
	{"sea container", models.CategorySeaCont, seaContainerRe.MatchString},
	{"sea bill of lading", models.CategorySeaBL, func(code string) bool {
		return len(code) >= 8 && len(code) <= 18 &&
			hasLetterRe.MatchString(code) && hasDigitRe.MatchString(code)
	}},
	{"fedex or express", models.CategoryFedEx, func(code string) bool {
		if !allDigitsRe.MatchString(code) {
			return false
		}
		return len(code) == 12 || len(code) == 15 || len(code) == 20
	}},
}

// Classify infers the carrier category of a tracking code from its format
// alone. Unknown is the answer for anything no rule claims.
func Classify(code string) models.Category {
	code = normalize(code)
	if code == "" {
		return models.CategoryUnknown
	}
	for _, r := range rules {
		if r.match(code) {
			return r.category
		}
	}
	return models.CategoryUnknown
}

func normalize(code string) string {
	return strings.ToUpper(strings.Join(strings.Fields(code), ""))
}

func hasAnyPrefix(code string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(code, p) {
			return true
		}
	}
	return false
}
