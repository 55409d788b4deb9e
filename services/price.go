package services

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// usdToEUR is the fixed conversion applied when a USD marker is detected.
// The provider mixes currencies depending on locale; a hard-coded rate keeps
// the pipeline free of a live exchange dependency.
const usdToEUR = 0.85

// maxPlausiblePrice bounds the last-resort numeric scan over unnamed fields.
const maxPlausiblePrice = 10000

// priceFields is the ordered candidate list scanned on map-shaped rates,
// most specific first.
var priceFields = []string{
	"lowest", "extracted_lowest", "before_taxes_fees", "displayed_price",
	"total", "price", "rate", "amount", "cost", "value",
}

var numberPattern = regexp.MustCompile(`\d+\.?\d*`)

// ExtractPrice resolves a raw rate value into a numeric EUR price and its
// display form ("123€"). Both are empty when no price could be extracted;
// that is a valid "price unknown" state, not an error.
//
// The ladder: named fields in priority order, then any plausible numeric
// value under an unknown key (assumed USD), then string/number parsing with
// the USD heuristic.
func ExtractPrice(v RawValue) (*int, string) {
	switch {
	case v.kind == rawMap:
		for _, field := range priceFields {
			raw, ok := v.Map[field]
			if !ok || !truthy(raw) {
				continue
			}
			if n, ok := parsePriceValue(raw); ok {
				return n, displayPrice(n)
			}
		}
		// Last resort: some responses bury a bare number under an
		// unpredictable key. Those are USD amounts.
		for _, key := range sortedKeys(v.Map) {
			if f, ok := v.Map[key].(float64); ok && f > 0 && f < maxPlausiblePrice {
				n := int(f * usdToEUR)
				return &n, displayPrice(&n)
			}
		}
	case v.kind == rawString:
		if n, ok := parsePriceString(v.Str); ok {
			return n, displayPrice(n)
		}
	case v.kind == rawNumber:
		if v.Num > 0 {
			n := int(v.Num * usdToEUR)
			return &n, displayPrice(&n)
		}
	}
	return nil, ""
}

// parsePriceValue handles a single candidate field, which may itself be a
// string or a number.
func parsePriceValue(raw any) (*int, bool) {
	switch val := raw.(type) {
	case string:
		return parsePriceString(val)
	case float64:
		if val <= 0 {
			return nil, false
		}
		n := int(val)
		return &n, true
	default:
		return parsePriceString(fmt.Sprint(raw))
	}
}

// parsePriceString strips currency markers and thousands separators, takes
// the leading decimal number, and converts USD-marked values to EUR.
func parsePriceString(s string) (*int, bool) {
	usd := strings.Contains(s, "$") || strings.Contains(s, "US")

	clean := strings.NewReplacer(",", "", " ", "").Replace(s)
	m := numberPattern.FindString(clean)
	if m == "" {
		return nil, false
	}

	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return nil, false
	}
	if usd {
		f *= usdToEUR
	}
	n := int(f)
	return &n, true
}

func displayPrice(n *int) string {
	if n == nil {
		return ""
	}
	return fmt.Sprintf("%d€", *n)
}

// truthy mirrors the provider contract that empty strings and zeros mean
// "field not populated".
func truthy(raw any) bool {
	switch val := raw.(type) {
	case nil:
		return false
	case string:
		return val != ""
	case float64:
		return val != 0
	case bool:
		return val
	default:
		return true
	}
}

// sortedKeys keeps the last-resort scan deterministic; map iteration order
// is random.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var starsPattern = regexp.MustCompile(`\d+`)

// ExtractStars pulls a 1-5 star count out of a hotel class string such as
// "4 étoiles" or "4-star hotel". Anything else maps to 0.
func ExtractStars(hotelClass string) int {
	m := starsPattern.FindString(hotelClass)
	if m == "" {
		return 0
	}
	stars, err := strconv.Atoi(m)
	if err != nil || stars < 1 || stars > 5 {
		return 0
	}
	return stars
}
