package address

// ValidateRequest represents the query parameters of the validate endpoint.
// A missing address is not a request error: it yields an invalid result.
type ValidateRequest struct {
	Address string `form:"address"`
	Query   string `form:"q"`
}

const lookupMinLength = 3

// LookupRequest represents the query parameters of the autocomplete endpoint.
type LookupRequest struct {
	Query string `form:"q" binding:"required,min=3"`
}

// LookupResponse wraps autocomplete suggestions.
type LookupResponse struct {
	Suggestions []Suggestion `json:"suggestions"`
}
