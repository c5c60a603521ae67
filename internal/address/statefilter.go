package address

import (
	"strings"
	"unicode"

	"intake_backend/internal/geocode"
)

// State names an Australian state or territory.
type State struct {
	Abbreviation string
	Name         string
}

// StateTable is the target state plus every state that disqualifies a
// candidate when it is mentioned.
type StateTable struct {
	Target State
	Others []State
}

// DefaultStates restricts results to Victoria.
var DefaultStates = StateTable{
	Target: State{Abbreviation: TargetState, Name: "Victoria"},
	Others: []State{
		{Abbreviation: "NSW", Name: "New South Wales"},
		{Abbreviation: "QLD", Name: "Queensland"},
		{Abbreviation: "SA", Name: "South Australia"},
		{Abbreviation: "WA", Name: "Western Australia"},
		{Abbreviation: "TAS", Name: "Tasmania"},
		{Abbreviation: "NT", Name: "Northern Territory"},
		{Abbreviation: "ACT", Name: "Australian Capital Territory"},
	},
}

// Abbreviate maps a state name or abbreviation to the abbreviation. Unknown
// values are returned unchanged.
func (t StateTable) Abbreviate(value string) string {
	trimmed := strings.TrimSpace(value)
	for _, s := range append([]State{t.Target}, t.Others...) {
		if strings.EqualFold(trimmed, s.Name) || strings.EqualFold(trimmed, s.Abbreviation) {
			return s.Abbreviation
		}
	}
	return trimmed
}

// FilterCandidates keeps candidates that mention the target state, drops
// those that mention another state and keeps those that mention none.
// Relative order is preserved.
func FilterCandidates(candidates []geocode.Candidate, states StateTable) []geocode.Candidate {
	kept := make([]geocode.Candidate, 0, len(candidates))
	for _, candidate := range candidates {
		if states.accepts(candidate) {
			kept = append(kept, candidate)
		}
	}
	return kept
}

func (t StateTable) accepts(candidate geocode.Candidate) bool {
	parts := strings.Split(candidate.DisplayName, ",")
	if candidate.Address.State != "" {
		parts = append(parts, candidate.Address.State)
	}

	if mentions(parts, t.Target) {
		return true
	}
	for _, other := range t.Others {
		if mentions(parts, other) {
			return false
		}
	}
	return true
}

// endsWithOther reports whether the last words of a parsed suburb are another
// state's abbreviation or full name ("Sydney NSW", "Brisbane Queensland").
// Such a suburb means the address text is not in the target state.
func (t StateTable) endsWithOther(suburb string) bool {
	words := strings.Fields(strings.ToLower(suburb))
	if len(words) == 0 {
		return false
	}
	for _, other := range t.Others {
		for _, label := range []string{other.Abbreviation, other.Name} {
			if hasWordSuffix(words, strings.Fields(strings.ToLower(label))) {
				return true
			}
		}
	}
	return false
}

func hasWordSuffix(words, suffix []string) bool {
	if len(suffix) == 0 || len(suffix) > len(words) {
		return false
	}
	offset := len(words) - len(suffix)
	for i, word := range suffix {
		if strings.TrimSuffix(words[offset+i], ".") != word {
			return false
		}
	}
	return true
}

// mentions reports whether a display part is exactly the state's name, or
// contains its abbreviation as a separate upper-case word ("Sydney NSW 2000").
// Road names such as "Victoria Street" are not mentions.
func mentions(parts []string, s State) bool {
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if strings.EqualFold(part, s.Name) || strings.EqualFold(part, s.Abbreviation) {
			return true
		}
		words := strings.FieldsFunc(part, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		for _, word := range words {
			if word == s.Abbreviation {
				return true
			}
		}
	}
	return false
}
