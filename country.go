package countryexplorer

import (
	"net/url"
	"sort"
	"strings"

	geohash "github.com/TomiHiltunen/geohash-golang"
)

// wikipediaBase is the template prefix for country reference links.
const wikipediaBase = "https://en.wikipedia.org/wiki/"

// notAvailable is shown in place of absent display values.
const notAvailable = "N/A"

// Currency describes one currency used by a country.
type Currency struct {
	Name   string
	Symbol string
}

// Country is a single record of the external country dataset.
// Records are never mutated after loading; the maps are shared between
// every projection that carries the record and must be treated as read-only.
type Country struct {
	Code         string              // ISO 3166-1 alpha-3 code (cca3), e.g. "FRA"
	CommonName   string              // name.common, empty when the record has no name
	Capitals     []string            // capital cities, nil when absent
	Population   int64               // never negative
	Region       string              // e.g. "Europe"
	Area         float64             // km², never negative
	Languages    map[string]string   // language code -> language name
	Currencies   map[string]Currency // currency code -> currency
	FlagImageURL string              // flags.svg
	Latitude     float64
	Longitude    float64
}

// HasName reports whether the record carries a common name.
func (c Country) HasName() bool {
	return c.CommonName != ""
}

// Capital returns the first listed capital, or false when the record has none.
func (c Country) Capital() (string, bool) {
	for _, capital := range c.Capitals {
		if capital != "" {
			return capital, true
		}
	}
	return "", false
}

// CapitalOrNA returns the capital or "N/A" when absent.
func (c Country) CapitalOrNA() string {
	if capital, ok := c.Capital(); ok {
		return capital
	}
	return notAvailable
}

// LanguageNames returns the language names ordered by language code.
func (c Country) LanguageNames() []string {
	codes := sortedKeys(c.Languages)
	names := make([]string, 0, len(codes))
	for _, code := range codes {
		names = append(names, c.Languages[code])
	}
	return names
}

// CurrencyNames returns the currency names ordered by currency code.
func (c Country) CurrencyNames() []string {
	codes := sortedKeys(c.Currencies)
	names := make([]string, 0, len(codes))
	for _, code := range codes {
		if name := c.Currencies[code].Name; name != "" {
			names = append(names, name)
		}
	}
	return names
}

// Geohash encodes the country's coordinates with the given precision
// (number of characters, 1-12).
func (c Country) Geohash(precision int) string {
	if precision < 1 {
		precision = 1
	}
	if precision > 12 {
		precision = 12
	}
	return geohash.EncodeWithPrecision(c.Latitude, c.Longitude, precision)
}

// WikipediaURL returns the English Wikipedia link for the country.
func (c Country) WikipediaURL() string {
	return WikipediaLink(c.CommonName)
}

// WikipediaLink percent-encodes name into an English Wikipedia article URL.
//
// Encoding follows encodeURIComponent: spaces become %20 rather than '+'.
func WikipediaLink(name string) string {
	return wikipediaBase + encodeURIComponent(name)
}

// encodeURIComponent escapes everything except A-Z a-z 0-9 - _ . ! ~ * ' ( ).
func encodeURIComponent(s string) string {
	escaped := url.QueryEscape(s)
	escaped = strings.ReplaceAll(escaped, "+", "%20")
	// QueryEscape escapes these, encodeURIComponent does not.
	for from, to := range map[string]string{
		"%21": "!", "%27": "'", "%28": "(", "%29": ")", "%2A": "*",
	} {
		escaped = strings.ReplaceAll(escaped, from, to)
	}
	return escaped
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// toLower converts a string to lowercase.
//
// Country names carry non-ASCII letters ("Côte d'Ivoire", "Åland Islands"),
// so this must stay Unicode-aware.
func toLower(s string) string {
	return strings.ToLower(s)
}

// toUpper converts a string to uppercase.
func toUpper(s string) string {
	return strings.ToUpper(s)
}
