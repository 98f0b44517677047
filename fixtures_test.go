package countryexplorer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

// franceJSON is a single-record restcountries v3.1 response.
const franceJSON = `[{"cca3":"FRA","name":{"common":"France"},"capital":["Paris"],"population":67000000,"region":"Europe","area":551695,"languages":{"fra":"French"},"currencies":{"EUR":{"name":"Euro","symbol":"€"}},"flags":{"svg":"f.svg"},"latlng":[46,2]}]`

// sampleJSON holds a few records in a deliberately non-alphabetical order.
const sampleJSON = `[
	{"cca3":"FRA","name":{"common":"France"},"capital":["Paris"],"population":67000000,"region":"Europe","area":551695,"languages":{"fra":"French"},"currencies":{"EUR":{"name":"Euro"}},"flags":{"svg":"fra.svg"},"latlng":[46,2]},
	{"cca3":"DEU","name":{"common":"Germany"},"capital":["Berlin"],"population":83240525,"region":"Europe","area":357114,"languages":{"deu":"German"},"currencies":{"EUR":{"name":"Euro"}},"flags":{"svg":"deu.svg"},"latlng":[51,9]},
	{"cca3":"JPN","name":{"common":"Japan"},"capital":["Tokyo"],"population":125836021,"region":"Asia","area":377930,"languages":{"jpn":"Japanese"},"currencies":{"JPY":{"name":"Japanese yen"}},"flags":{"svg":"jpn.svg"},"latlng":[36,138]},
	{"cca3":"CAF","name":{"common":"Central African Republic"},"capital":["Bangui"],"population":4829764,"region":"Africa","area":622984,"languages":{"fra":"French","sag":"Sango"},"currencies":{"XAF":{"name":"Central African CFA franc"}},"flags":{"svg":"caf.svg"},"latlng":[7,21]},
	{"cca3":"ATA","name":{"common":"Antarctica"},"population":1000,"region":"Antarctic","area":14000000,"flags":{"svg":"ata.svg"},"latlng":[-90,0]}
]`

func mustDecode(t *testing.T, body string) []Country {
	t.Helper()
	countries, err := DecodeCountries([]byte(body))
	if err != nil {
		t.Fatalf("DecodeCountries() error = %v", err)
	}
	return countries
}

func france() Country {
	return Country{
		Code:         "FRA",
		CommonName:   "France",
		Capitals:     []string{"Paris"},
		Population:   67000000,
		Region:       "Europe",
		Area:         551695,
		Languages:    map[string]string{"fra": "French"},
		Currencies:   map[string]Currency{"EUR": {Name: "Euro"}},
		FlagImageURL: "f.svg",
		Latitude:     46,
		Longitude:    2,
	}
}

func germany() Country {
	return Country{
		Code:       "DEU",
		CommonName: "Germany",
		Capitals:   []string{"Berlin"},
		Population: 83240525,
		Region:     "Europe",
		Area:       357114,
		Languages:  map[string]string{"deu": "German"},
		Currencies: map[string]Currency{"EUR": {Name: "Euro"}},
		Latitude:   51,
		Longitude:  9,
	}
}

// staticSource returns countries (or err) from Fetch.
func staticSource(countries []Country, err error) DataSource {
	return DataSourceFunc(func(context.Context) ([]Country, error) {
		return countries, err
	})
}

// serveJSON starts a test server answering every request with status and body.
func serveJSON(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func codes(countries []Country) []string {
	out := make([]string, len(countries))
	for i, c := range countries {
		out[i] = c.Code
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
