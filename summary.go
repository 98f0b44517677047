package countryexplorer

import (
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/umahmood/haversine"
)

// SummaryRow is the display projection of one compared country.
type SummaryRow struct {
	Code          string
	Name          string
	Capital       string // "N/A" when absent
	Population    string // thousands separated, e.g. "67,000,000"
	Area          string // e.g. "551,695 km²"
	Region        string
	Languages     string // comma separated, may be empty
	Currencies    string // comma separated, may be empty
	FlagImageURL  string
	WikipediaLink string
}

// Distance is the great-circle distance between two compared countries.
type Distance struct {
	From string // country code
	To   string // country code
	Km   float64
}

// Summary is the side-by-side comparison of a set of countries.
type Summary struct {
	Rows      []SummaryRow
	Distances []Distance // every unordered pair, in comparison order
}

// Summarize builds the comparison display for countries, keeping their order.
func Summarize(countries []Country) Summary {
	s := Summary{Rows: make([]SummaryRow, 0, len(countries))}
	for _, c := range countries {
		s.Rows = append(s.Rows, SummaryRow{
			Code:          c.Code,
			Name:          c.CommonName,
			Capital:       c.CapitalOrNA(),
			Population:    humanize.Comma(c.Population),
			Area:          humanize.Commaf(c.Area) + " km²",
			Region:        c.Region,
			Languages:     strings.Join(c.LanguageNames(), ", "),
			Currencies:    strings.Join(c.CurrencyNames(), ", "),
			FlagImageURL:  c.FlagImageURL,
			WikipediaLink: c.WikipediaURL(),
		})
	}

	for i := 0; i < len(countries); i++ {
		for j := i + 1; j < len(countries); j++ {
			s.Distances = append(s.Distances, Distance{
				From: countries[i].Code,
				To:   countries[j].Code,
				Km:   DistanceKm(countries[i], countries[j]),
			})
		}
	}
	return s
}

// DistanceKm returns the great-circle distance between two country centroids.
func DistanceKm(a, b Country) float64 {
	from := haversine.Coord{Lat: a.Latitude, Lon: a.Longitude}
	to := haversine.Coord{Lat: b.Latitude, Lon: b.Longitude}
	_, km := haversine.Distance(from, to)
	return km
}
