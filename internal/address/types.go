// Package address validates free-text Victorian addresses. It consults the
// geocode provider first and falls back to an ordered set of address patterns
// for places the provider does not know yet (new estates, rural tracks).
package address

import "strings"

// Confidence is a coarse reliability label derived from which source or
// pattern produced a result.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Source identifies the subsystem that produced a ValidationResult.
type Source string

const (
	SourceAPI        Source = "api"
	SourceRegexUrban Source = "regex-urban"
	SourceRegexRural Source = "regex-rural"
	SourceNone       Source = "none"
)

const (
	addressTypeUrban   = "urban"
	addressTypeUnknown = "unknown"

	msgInvalidInput = "Please provide a valid address"
	msgNoPattern    = "No pattern matched"
	msgVerified     = "Address verified"
	msgUnmapped     = "Address not found in map data but matches a known address format; please review manually"
)

// Components is the structured form of an address. Empty fields are omitted
// from JSON, so a failed parse serialises as {}.
type Components struct {
	HouseNumber string `json:"house_number,omitempty"`
	Road        string `json:"road,omitempty"`
	Suburb      string `json:"suburb,omitempty"`
	State       string `json:"state,omitempty"`
	Postcode    string `json:"postcode,omitempty"`
}

// IsZero reports whether no component is set.
func (c Components) IsZero() bool {
	return c == Components{}
}

// Format renders components as "12 Main St, Kew VIC 3101", skipping empty parts.
func Format(c Components) string {
	street := joinNonEmpty(" ", c.HouseNumber, c.Road)
	locality := joinNonEmpty(" ", c.Suburb, c.State, c.Postcode)
	return joinNonEmpty(", ", street, locality)
}

// Suggestion is an in-state provider candidate reduced for the client.
type Suggestion struct {
	Formatted   string `json:"formatted"`
	DisplayName string `json:"display_name"`
	Components
	Lat string `json:"lat,omitempty"`
	Lon string `json:"lon,omitempty"`
}

// ValidationResult is the unified response of Service.Validate.
type ValidationResult struct {
	Success     bool         `json:"success"`
	IsValid     bool         `json:"isValid"`
	Confidence  Confidence   `json:"confidence"`
	Source      Source       `json:"source"`
	AddressType string       `json:"addressType"`
	Message     string       `json:"message"`
	Components  Components   `json:"components"`
	Formatted   string       `json:"formatted"`
	Suggestions []Suggestion `json:"suggestions"`
	Unmapped    bool         `json:"unmapped"`
	Fallback    bool         `json:"fallback"`
}

func joinNonEmpty(sep string, values ...string) string {
	parts := make([]string, 0, len(values))
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, sep)
}
