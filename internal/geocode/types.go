// Package geocode wraps the external address lookup provider (OpenStreetMap
// Nominatim) behind a narrow interface that never returns an error.
package geocode

import "context"

// Geocoder looks up free-text addresses. Implementations absorb every
// provider failure and report it as an empty result.
type Geocoder interface {
	Lookup(ctx context.Context, address string) []Candidate
}

// Candidate mirrors the relevant parts of a Nominatim search result.
type Candidate struct {
	DisplayName string  `json:"display_name"`
	Lat         string  `json:"lat"`
	Lon         string  `json:"lon"`
	Address     Address `json:"address"`
}

// Address holds the structured addressdetails block of a candidate.
type Address struct {
	HouseNumber  string `json:"house_number,omitempty"`
	Road         string `json:"road,omitempty"`
	Suburb       string `json:"suburb,omitempty"`
	City         string `json:"city,omitempty"`
	Town         string `json:"town,omitempty"`
	Village      string `json:"village,omitempty"`
	Hamlet       string `json:"hamlet,omitempty"`
	Municipality string `json:"municipality,omitempty"`
	State        string `json:"state,omitempty"`
	Postcode     string `json:"postcode,omitempty"`
	Country      string `json:"country,omitempty"`
	CountryCode  string `json:"country_code,omitempty"`
}

// Locality returns the most specific populated place name.
func (a Address) Locality() string {
	for _, value := range []string{a.Suburb, a.Town, a.Village, a.City, a.Hamlet, a.Municipality} {
		if value != "" {
			return value
		}
	}
	return ""
}
