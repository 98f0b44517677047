package countryexplorer

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"github.com/golang/geo/s2"
)

// maxFuzzyDistance caps FuzzyDistance so a large bound cannot turn every
// query into a match-all.
const maxFuzzyDistance = 3

// maxSearchInputLen limits the search term length that reaches the
// Levenshtein computation. Longer terms only match by substring.
const maxSearchInputLen = 256

// minFuzzyTermLen is the shortest term that fuzzy matching applies to.
// Shorter terms are within edit distance of too many names to be useful.
const minFuzzyTermLen = 3

// SearchOptions configures search behavior.
type SearchOptions struct {
	FuzzyDistance int // Max edit distance for typo tolerance (0 = disabled, 1-2 recommended)
}

// CountryIndex holds the full loaded country list in load order.
// It is read-only after construction and safe for concurrent use.
type CountryIndex struct {
	countries []Country
	lowered   []string       // lower-cased common names, parallel to countries
	byCode    map[string]int // upper-cased code -> position
	points    []s2.LatLng    // centroids, parallel to countries
	dropped   int
}

// NewCountryIndex builds an index over countries, preserving their order.
// When two records share a code the first one wins and the later one is dropped.
// Records without a code are kept; they can be searched but not looked up.
func NewCountryIndex(countries []Country) *CountryIndex {
	idx := &CountryIndex{
		countries: make([]Country, 0, len(countries)),
		lowered:   make([]string, 0, len(countries)),
		byCode:    make(map[string]int, len(countries)),
		points:    make([]s2.LatLng, 0, len(countries)),
	}
	for _, c := range countries {
		key := toUpper(c.Code)
		if key != "" {
			if _, dup := idx.byCode[key]; dup {
				idx.dropped++
				continue
			}
			idx.byCode[key] = len(idx.countries)
		}
		idx.countries = append(idx.countries, c)
		idx.lowered = append(idx.lowered, toLower(c.CommonName))
		idx.points = append(idx.points, s2.LatLngFromDegrees(c.Latitude, c.Longitude))
	}
	return idx
}

// Len returns the number of indexed countries.
func (idx *CountryIndex) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.countries)
}

// Dropped returns how many duplicate-code records were discarded at construction.
func (idx *CountryIndex) Dropped() int {
	if idx == nil {
		return 0
	}
	return idx.dropped
}

// All returns every indexed country in load order. The slice is a copy.
func (idx *CountryIndex) All() []Country {
	if idx == nil {
		return nil
	}
	out := make([]Country, len(idx.countries))
	copy(out, idx.countries)
	return out
}

// Lookup returns the country with the given code. Codes compare case-insensitively.
func (idx *CountryIndex) Lookup(code string) (Country, bool) {
	if idx == nil || code == "" {
		return Country{}, false
	}
	i, ok := idx.byCode[toUpper(code)]
	if !ok {
		return Country{}, false
	}
	return idx.countries[i], true
}

// Search returns the countries whose lower-cased common name contains the
// lower-cased term, in load order. The empty term matches every record.
// A record without a name matches only the empty term.
func (idx *CountryIndex) Search(term string, opts ...SearchOptions) []Country {
	if idx == nil {
		return []Country{}
	}
	if term == "" {
		return idx.All()
	}

	options := SearchOptions{}
	if len(opts) > 0 {
		options = opts[0]
	}
	if options.FuzzyDistance > maxFuzzyDistance {
		options.FuzzyDistance = maxFuzzyDistance
	}
	n := utf8.RuneCountInString(term)
	fuzzy := options.FuzzyDistance > 0 && n >= minFuzzyTermLen && n <= maxSearchInputLen

	needle := toLower(term)
	results := []Country{}
	for i, name := range idx.lowered {
		if name == "" {
			continue
		}
		if strings.Contains(name, needle) ||
			(fuzzy && levenshtein.ComputeDistance(name, needle) <= options.FuzzyDistance) {
			results = append(results, idx.countries[i])
		}
	}
	return results
}

// Nearest returns the country whose centroid is closest to the given point
// on the sphere. Ties go to the country loaded first.
func (idx *CountryIndex) Nearest(lat, lng float64) (Country, bool) {
	if idx == nil || len(idx.countries) == 0 {
		return Country{}, false
	}
	if math.IsNaN(lat) || math.IsNaN(lng) || math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return Country{}, false
	}

	query := s2.LatLngFromDegrees(lat, lng)
	best := -1
	bestDist := math.Inf(1)
	for i, p := range idx.points {
		if d := float64(query.Distance(p)); d < bestDist {
			best = i
			bestDist = d
		}
	}
	return idx.countries[best], true
}
