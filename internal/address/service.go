package address

import (
	"context"
	"strings"

	"intake_backend/internal/geocode"
	"intake_backend/platform/config"
	"intake_backend/platform/logger"
	"intake_backend/platform/metrics"
)

const defaultSuggestionLimit = 5

// Service validates addresses: one geocode attempt, then the pattern parser.
// It keeps no per-call state and is safe for concurrent use.
type Service struct {
	geocoder        geocode.Geocoder
	parser          *Parser
	states          StateTable
	suggestionLimit int
	log             *logger.Logger
	metrics         *metrics.Metrics
}

// NewService builds the validator. A nil geocoder disables the provider path
// so every call goes straight to the pattern parser; log and m may be nil.
func NewService(geocoder geocode.Geocoder, cfg config.AddressConfig, log *logger.Logger, m *metrics.Metrics) *Service {
	if log == nil {
		log = logger.Discard()
	}
	limit := cfg.GetSuggestionLimit()
	if limit < 1 {
		limit = defaultSuggestionLimit
	}
	states := DefaultStates
	return &Service{
		geocoder:        geocoder,
		parser:          NewParser(states),
		states:          states,
		suggestionLimit: limit,
		log:             log,
		metrics:         m,
	}
}

// Validate runs the pipeline for one address. It never fails: invalid input,
// provider outages and unmatched text all produce a ValidationResult.
func (s *Service) Validate(ctx context.Context, address string) ValidationResult {
	if strings.TrimSpace(address) == "" {
		result := invalidInputResult()
		s.observe(ctx, result, 0)
		return result
	}

	var candidates []geocode.Candidate
	if s.geocoder != nil {
		candidates = s.geocoder.Lookup(ctx, address)
	}

	if len(candidates) > 0 {
		if filtered := FilterCandidates(candidates, s.states); len(filtered) > 0 {
			result := s.providerResult(filtered)
			s.observe(ctx, result, len(candidates))
			return result
		}
	}

	result := s.fallbackResult(address)
	s.observe(ctx, result, len(candidates))
	return result
}

// Suggest returns in-state provider candidates for autocomplete. It never
// consults the pattern parser.
func (s *Service) Suggest(ctx context.Context, query string) []Suggestion {
	if s.geocoder == nil || strings.TrimSpace(query) == "" {
		return []Suggestion{}
	}
	return s.suggestions(FilterCandidates(s.geocoder.Lookup(ctx, query), s.states))
}

func (s *Service) providerResult(filtered []geocode.Candidate) ValidationResult {
	suggestions := s.suggestions(filtered)
	top := suggestions[0]
	return ValidationResult{
		Success:     true,
		IsValid:     true,
		Confidence:  ConfidenceHigh,
		Source:      SourceAPI,
		AddressType: addressTypeUrban,
		Message:     msgVerified,
		Components:  top.Components,
		Formatted:   top.Formatted,
		Suggestions: suggestions,
	}
}

func (s *Service) fallbackResult(address string) ValidationResult {
	parsed := s.parser.Parse(address)

	result := ValidationResult{
		Success:     true,
		IsValid:     parsed.IsValid,
		Confidence:  parsed.Confidence,
		Source:      sourceFor(parsed),
		AddressType: addressTypeUnknown,
		Message:     parsed.Message,
		Components:  parsed.Components,
		Suggestions: []Suggestion{},
		Unmapped:    true,
		Fallback:    true,
	}
	if parsed.IsValid {
		result.AddressType = parsed.AddressType
		result.Message = msgUnmapped
		result.Formatted = Format(parsed.Components)
	}
	return result
}

func (s *Service) suggestions(candidates []geocode.Candidate) []Suggestion {
	if len(candidates) > s.suggestionLimit {
		candidates = candidates[:s.suggestionLimit]
	}

	out := make([]Suggestion, 0, len(candidates))
	for _, candidate := range candidates {
		components := Components{
			HouseNumber: candidate.Address.HouseNumber,
			Road:        candidate.Address.Road,
			Suburb:      candidate.Address.Locality(),
			State:       s.states.Abbreviate(candidate.Address.State),
			Postcode:    candidate.Address.Postcode,
		}
		formatted := Format(components)
		if formatted == "" {
			formatted = strings.TrimSpace(candidate.DisplayName)
		}
		out = append(out, Suggestion{
			Formatted:   formatted,
			DisplayName: candidate.DisplayName,
			Components:  components,
			Lat:         candidate.Lat,
			Lon:         candidate.Lon,
		})
	}
	return out
}

func (s *Service) observe(ctx context.Context, result ValidationResult, candidates int) {
	s.metrics.ObserveValidation(string(result.Source), string(result.Confidence), result.IsValid)
	s.log.WithContext(ctx).AddressValidated(string(result.Source), string(result.Confidence), result.IsValid, candidates)
}

// sourceFor labels a fallback outcome: high and medium pattern matches are
// urban, low ones rural, and failures have no source.
func sourceFor(parsed ParseResult) Source {
	if !parsed.IsValid {
		return SourceNone
	}
	switch parsed.Confidence {
	case ConfidenceHigh, ConfidenceMedium:
		return SourceRegexUrban
	default:
		return SourceRegexRural
	}
}

func invalidInputResult() ValidationResult {
	return ValidationResult{
		Success:     false,
		IsValid:     false,
		Confidence:  ConfidenceLow,
		Source:      SourceNone,
		AddressType: addressTypeUnknown,
		Message:     msgInvalidInput,
		Suggestions: []Suggestion{},
	}
}
