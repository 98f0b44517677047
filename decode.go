package countryexplorer

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// DecodeCountries decodes a restcountries v3.1 response body.
//
// The top level must be a JSON array; anything else yields ErrMalformedPayload.
// Individual records are decoded leniently: missing or mistyped fields fall
// back to their zero value so one inconsistent record never fails the list.
// Array elements that are not objects are skipped.
func DecodeCountries(body []byte) ([]Country, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: response is not valid JSON", ErrMalformedPayload)
	}
	root := gjson.ParseBytes(body)
	if !root.IsArray() {
		return nil, fmt.Errorf("%w: expected a JSON array, got %s", ErrMalformedPayload, root.Type)
	}

	countries := make([]Country, 0, 256)
	root.ForEach(func(_, rec gjson.Result) bool {
		if rec.IsObject() {
			countries = append(countries, decodeCountry(rec))
		}
		return true
	})
	return countries, nil
}

func decodeCountry(rec gjson.Result) Country {
	c := Country{
		Code:         rec.Get("cca3").String(),
		CommonName:   rec.Get("name.common").String(),
		Region:       rec.Get("region").String(),
		FlagImageURL: rec.Get("flags.svg").String(),
	}

	if pop := rec.Get("population").Int(); pop > 0 {
		c.Population = pop
	}
	if area := rec.Get("area").Float(); area > 0 {
		c.Area = area
	}

	// capital is an array in v3.1 but older snapshots carry a plain string.
	switch capital := rec.Get("capital"); {
	case capital.IsArray():
		for _, v := range capital.Array() {
			if s := v.String(); s != "" {
				c.Capitals = append(c.Capitals, s)
			}
		}
	case capital.Type == gjson.String && capital.String() != "":
		c.Capitals = []string{capital.String()}
	}

	c.Languages = make(map[string]string)
	if langs := rec.Get("languages"); langs.IsObject() {
		langs.ForEach(func(code, name gjson.Result) bool {
			c.Languages[code.String()] = name.String()
			return true
		})
	}

	c.Currencies = make(map[string]Currency)
	if curs := rec.Get("currencies"); curs.IsObject() {
		curs.ForEach(func(code, cur gjson.Result) bool {
			c.Currencies[code.String()] = Currency{
				Name:   cur.Get("name").String(),
				Symbol: cur.Get("symbol").String(),
			}
			return true
		})
	}

	if latlng := rec.Get("latlng").Array(); len(latlng) >= 2 {
		c.Latitude = latlng[0].Float()
		c.Longitude = latlng[1].Float()
	}
	return c
}
