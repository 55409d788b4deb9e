// Package locations holds the static destination catalogue: city-name to IATA
// mapping, per-airport metadata (country, coastal flag, travel themes) and the
// criteria-based destination search used to fan out flight queries. The tables
// are package-level and read-only; nothing mutates them after process start.
package locations

import (
	"sort"
	"strings"
)

// Airport describes one destination (or departure) airport.
type Airport struct {
	Code    string   `json:"code"`
	Name    string   `json:"name"`
	Country string   `json:"country"`
	Coastal bool     `json:"coastal"`
	Themes  []string `json:"themes"`
}

// Criteria filters the destination catalogue. A nil Coastal means "either".
type Criteria struct {
	Themes    []string `json:"themes"`
	Coastal   *bool    `json:"coastal"`
	Countries []string `json:"countries"`
}

// departureCountry marks airports that are departure-only and never returned
// as destinations.
const departureCountry = "Belgique"

// cityToIATA maps lowercase city names (French and English spellings) to
// airport codes.
var cityToIATA = map[string]string{
	// Belgique
	"charleroi": "CRL",
	"brussels":  "BRU",
	"bruxelles": "BRU",
	"liege":     "LGG",
	"liège":     "LGG",
	"ostend":    "OST",
	"ostende":   "OST",
	"antwerp":   "ANR",
	"anvers":    "ANR",

	// Espagne
	"barcelona": "BCN",
	"barcelone": "BCN",
	"madrid":    "MAD",
	"palma":     "PMI",
	"mallorca":  "PMI",
	"ibiza":     "IBZ",
	"malaga":    "AGP",
	"valencia":  "VLC",
	"valence":   "VLC",
	"alicante":  "ALC",
	"seville":   "SVQ",
	"séville":   "SVQ",
	"bilbao":    "BIO",

	// Portugal
	"lisbon":   "LIS",
	"lisbonne": "LIS",
	"porto":    "OPO",
	"faro":     "FAO",

	// Italie
	"rome":     "FCO",
	"roma":     "FCO",
	"venice":   "VCE",
	"venise":   "VCE",
	"naples":   "NAP",
	"milan":    "BGY",
	"milano":   "BGY",
	"florence": "FLR",
	"firenze":  "FLR",
	"pisa":     "PSA",

	// France
	"paris":     "CDG",
	"nice":      "NCE",
	"marseille": "MRS",
	"lyon":      "LYS",
	"toulouse":  "TLS",
	"bordeaux":  "BOD",
	"nantes":    "NTE",

	// Grèce
	"athens":    "ATH",
	"athènes":   "ATH",
	"heraklion": "HER",
	"rhodes":    "RHO",
	"corfu":     "CFU",
	"corfou":    "CFU",
	"santorini": "JTR",
	"mykonos":   "MYK",

	// Autres
	"prague":    "PRG",
	"budapest":  "BUD",
	"dublin":    "DUB",
	"berlin":    "BER",
	"amsterdam": "AMS",
	"london":    "STN",
	"londres":   "STN",
}

// airports is the destination catalogue keyed by IATA code.
var airports = map[string]Airport{
	"CRL": {Name: "Brussels Charleroi", Country: "Belgique", Coastal: false, Themes: []string{"city_trip"}},
	"BRU": {Name: "Brussels Airport", Country: "Belgique", Coastal: false, Themes: []string{"city_trip"}},
	"LGG": {Name: "Liège Airport", Country: "Belgique", Coastal: false, Themes: []string{"city_trip"}},

	"BCN": {Name: "Barcelona", Country: "Espagne", Coastal: true, Themes: []string{"city_trip", "party", "beach", "couple"}},
	"MAD": {Name: "Madrid", Country: "Espagne", Coastal: false, Themes: []string{"city_trip", "party", "couple"}},
	"PMI": {Name: "Palma Mallorca", Country: "Espagne", Coastal: true, Themes: []string{"beach", "party", "couple"}},
	"IBZ": {Name: "Ibiza", Country: "Espagne", Coastal: true, Themes: []string{"party", "beach", "couple"}},
	"AGP": {Name: "Málaga", Country: "Espagne", Coastal: true, Themes: []string{"beach", "party", "couple"}},
	"VLC": {Name: "Valencia", Country: "Espagne", Coastal: true, Themes: []string{"beach", "party", "city_trip"}},
	"ALC": {Name: "Alicante", Country: "Espagne", Coastal: true, Themes: []string{"beach", "couple"}},
	"SVQ": {Name: "Seville", Country: "Espagne", Coastal: false, Themes: []string{"city_trip", "couple", "party"}},
	"BIO": {Name: "Bilbao", Country: "Espagne", Coastal: true, Themes: []string{"city_trip", "nature"}},

	"LIS": {Name: "Lisbon", Country: "Portugal", Coastal: true, Themes: []string{"city_trip", "couple", "beach", "party"}},
	"OPO": {Name: "Porto", Country: "Portugal", Coastal: true, Themes: []string{"city_trip", "couple", "party"}},
	"FAO": {Name: "Faro", Country: "Portugal", Coastal: true, Themes: []string{"beach", "couple", "party"}},

	"FCO": {Name: "Rome", Country: "Italie", Coastal: true, Themes: []string{"city_trip", "couple", "beach"}},
	"VCE": {Name: "Venice", Country: "Italie", Coastal: true, Themes: []string{"couple", "city_trip", "beach"}},
	"NAP": {Name: "Naples", Country: "Italie", Coastal: true, Themes: []string{"beach", "city_trip", "couple"}},
	"BGY": {Name: "Milan Bergamo", Country: "Italie", Coastal: false, Themes: []string{"city_trip", "couple", "mountain"}},
	"FLR": {Name: "Florence", Country: "Italie", Coastal: false, Themes: []string{"city_trip", "couple"}},
	"PSA": {Name: "Pisa", Country: "Italie", Coastal: true, Themes: []string{"city_trip", "couple"}},

	"CDG": {Name: "Paris", Country: "France", Coastal: false, Themes: []string{"city_trip", "couple"}},
	"NCE": {Name: "Nice", Country: "France", Coastal: true, Themes: []string{"beach", "couple", "city_trip"}},
	"MRS": {Name: "Marseille", Country: "France", Coastal: true, Themes: []string{"city_trip", "beach"}},
	"LYS": {Name: "Lyon", Country: "France", Coastal: false, Themes: []string{"city_trip"}},
	"TLS": {Name: "Toulouse", Country: "France", Coastal: false, Themes: []string{"city_trip"}},
	"BOD": {Name: "Bordeaux", Country: "France", Coastal: false, Themes: []string{"city_trip", "couple"}},
	"NTE": {Name: "Nantes", Country: "France", Coastal: false, Themes: []string{"city_trip"}},

	"ATH": {Name: "Athens", Country: "Grèce", Coastal: true, Themes: []string{"city_trip", "beach", "couple"}},
	"HER": {Name: "Heraklion", Country: "Grèce", Coastal: true, Themes: []string{"beach", "party", "couple"}},
	"RHO": {Name: "Rhodes", Country: "Grèce", Coastal: true, Themes: []string{"beach", "couple"}},
	"CFU": {Name: "Corfu", Country: "Grèce", Coastal: true, Themes: []string{"beach", "nature", "couple"}},
	"JTR": {Name: "Santorini", Country: "Grèce", Coastal: true, Themes: []string{"couple", "beach"}},
	"MYK": {Name: "Mykonos", Country: "Grèce", Coastal: true, Themes: []string{"party", "beach", "couple"}},

	"PRG": {Name: "Prague", Country: "Tchéquie", Coastal: false, Themes: []string{"city_trip", "party", "couple"}},
	"BUD": {Name: "Budapest", Country: "Hongrie", Coastal: false, Themes: []string{"city_trip", "party", "couple"}},
	"DUB": {Name: "Dublin", Country: "Irlande", Coastal: true, Themes: []string{"city_trip", "party"}},
	"BER": {Name: "Berlin", Country: "Allemagne", Coastal: false, Themes: []string{"city_trip", "party"}},
	"AMS": {Name: "Amsterdam", Country: "Pays-Bas", Coastal: false, Themes: []string{"city_trip", "party", "couple"}},
	"STN": {Name: "London Stansted", Country: "Royaume-Uni", Coastal: false, Themes: []string{"city_trip", "party"}},
}

// iataToCity maps airport codes to the city name used for hotel queries.
// Several airports share a city.
var iataToCity = map[string]string{
	"CRL": "Brussels", "BRU": "Brussels", "LGG": "Liege",
	"BCN": "Barcelona", "MAD": "Madrid", "PMI": "Palma", "IBZ": "Ibiza",
	"AGP": "Malaga", "VLC": "Valencia", "ALC": "Alicante", "SVQ": "Seville", "BIO": "Bilbao",
	"LIS": "Lisbon", "OPO": "Porto", "FAO": "Faro",
	"FCO": "Rome", "VCE": "Venice", "NAP": "Naples", "BGY": "Milan", "FLR": "Florence", "PSA": "Pisa",
	"CDG": "Paris", "ORY": "Paris", "NCE": "Nice", "MRS": "Marseille", "LYS": "Lyon",
	"TLS": "Toulouse", "BOD": "Bordeaux", "NTE": "Nantes",
	"ATH": "Athens", "HER": "Heraklion", "RHO": "Rhodes", "CFU": "Corfu",
	"JTR": "Santorini", "MYK": "Mykonos",
	"PRG": "Prague", "BUD": "Budapest", "DUB": "Dublin", "BER": "Berlin",
	"AMS": "Amsterdam", "STN": "London", "LHR": "London", "LGW": "London", "LTN": "London",
}

// ThemeLabels maps theme identifiers to display names.
var ThemeLabels = map[string]string{
	"couple":    "Romantique",
	"party":     "Fête/Nightlife",
	"beach":     "Plage",
	"nature":    "Nature",
	"mountain":  "Montagne",
	"city_trip": "City Trip",
}

// CityCode resolves a free-text city name to an IATA code. Input that already
// looks like a 3-letter code is passed through upper-cased; unknown names
// return "".
func CityCode(name string) string {
	clean := strings.ToLower(strings.TrimSpace(name))
	if clean == "" {
		return ""
	}
	if code, ok := cityToIATA[clean]; ok {
		return code
	}
	if len(clean) == 3 {
		upper := strings.ToUpper(clean)
		if _, ok := airports[upper]; ok {
			return upper
		}
		if _, ok := iataToCity[upper]; ok {
			return upper
		}
	}
	return ""
}

// CityName returns the hotel-search city name for an airport code, falling
// back to the code itself.
func CityName(code string) string {
	if city, ok := iataToCity[strings.ToUpper(code)]; ok {
		return city
	}
	return code
}

// Info returns the catalogue entry for an airport code, or false when the
// code is unknown.
func Info(code string) (Airport, bool) {
	a, ok := airports[strings.ToUpper(code)]
	if !ok {
		return Airport{}, false
	}
	a.Code = strings.ToUpper(code)
	return a, true
}

// DepartureAirports lists the departure-only airports.
func DepartureAirports() []Airport {
	var out []Airport
	for code, a := range airports {
		if a.Country != departureCountry {
			continue
		}
		a.Code = code
		out = append(out, a)
	}
	sortAirports(out)
	return out
}

// Destinations lists every airport that can be searched as a destination.
func Destinations() []Airport {
	var out []Airport
	for code, a := range airports {
		if a.Country == departureCountry {
			continue
		}
		a.Code = code
		out = append(out, a)
	}
	sortAirports(out)
	return out
}

// DestinationsByTheme returns the destination codes carrying a theme.
func DestinationsByTheme(theme string) []string {
	return Search(Criteria{Themes: []string{theme}})
}

// Search returns the destination codes matching the criteria, in sorted
// order. Departure-only airports are never included. Empty criteria match
// every destination.
func Search(c Criteria) []string {
	var out []string
	for code, info := range airports {
		if info.Country == departureCountry {
			continue
		}
		if len(c.Themes) > 0 && !hasAnyTheme(info.Themes, c.Themes) {
			continue
		}
		if c.Coastal != nil && info.Coastal != *c.Coastal {
			continue
		}
		if len(c.Countries) > 0 && !containsString(c.Countries, info.Country) {
			continue
		}
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

func hasAnyTheme(have, want []string) bool {
	for _, w := range want {
		if containsString(have, w) {
			return true
		}
	}
	return false
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func sortAirports(list []Airport) {
	sort.Slice(list, func(i, j int) bool { return list[i].Code < list[j].Code })
}
