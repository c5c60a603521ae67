package address

import (
	"regexp"
	"sort"
	"strings"
)

// TargetState is the abbreviation of the state DefaultStates accepts.
const TargetState = "VIC"

// RoadTypes are the road-type words recognised by the parser, with an
// optional trailing period.
var RoadTypes = []string{
	"rd", "road", "st", "street", "ln", "lane", "dr", "drive", "ave", "avenue",
	"hwy", "highway", "tk", "track", "way", "place", "court", "close",
}

// tierKind tags a pattern with the extractor that knows its capture layout.
type tierKind int

const (
	tierStandard tierKind = iota // number, road, suburb, state, postcode
	tierLot                      // lot number, road (typed | before comma), suburb, state, postcode
	tierEmbedded                 // number, road incl. road type, suburb, state, postcode
	tierNoState                  // number, road incl. road type, suburb, postcode
	tierLoose                    // number, road words, road type, suburb, postcode
)

func (k tierKind) String() string {
	switch k {
	case tierStandard:
		return "standard"
	case tierLot:
		return "lot"
	case tierEmbedded:
		return "embedded"
	case tierNoState:
		return "no-state"
	case tierLoose:
		return "loose"
	default:
		return "unknown"
	}
}

type tier struct {
	kind       tierKind
	pattern    *regexp.Regexp
	confidence Confidence
}

// ParseResult is the outcome of Parser.Parse. PatternIndex is -1 when no
// pattern matched.
type ParseResult struct {
	IsValid      bool       `json:"isValid"`
	Confidence   Confidence `json:"confidence"`
	Components   Components `json:"components"`
	PatternIndex int        `json:"patternIndex"`
	Pattern      string     `json:"pattern,omitempty"`
	AddressType  string     `json:"addressType,omitempty"`
	Message      string     `json:"message,omitempty"`
}

// Parser matches addresses against an ordered list of pattern tiers, most
// specific first. It holds only compiled patterns and the state table, and is
// safe for concurrent use.
type Parser struct {
	tiers  []tier
	states StateTable
}

const (
	numFrag      = `(\d+[A-Za-z]?(?:[/-]\d+[A-Za-z]?)?)`
	nameFrag     = `[A-Za-z0-9'.-]+(?:\s+[A-Za-z0-9'.-]+)*?`
	suburbFrag   = `([A-Za-z][A-Za-z\s'.-]*?)`
	sepFrag      = `(?:\s*,\s*|\s+)`
	stateFrag    = `(?i:vic|victoria)`
	postcodeFrag = `(\d{4})`
	countryFrag  = `(?:\s*,?\s*(?i:australia))?`
)

// NewParser compiles the five tiers. Matches report states.Target and are
// rejected when the suburb ends in another state of the table.
func NewParser(states StateTable) *Parser {
	anyCase := roadTypeAlternation(RoadTypes, false)
	cased := roadTypeAlternation(RoadTypes, true)

	// Road and suburb are separated by an explicit comma.
	standard := `^` + numFrag + `\s+([^,]+?)\s*,\s*` + suburbFrag + sepFrag +
		`(` + stateFrag + `)\.?\s*,?\s*` + postcodeFrag + countryFrag + `$`

	// Subdivision lots: the road ends at a road-type word or at a comma.
	lot := `^(?i:lot)\s+(\d+[A-Za-z]?)\s*,?\s+` +
		`(?:(` + nameFrag + `\s+(?i:` + anyCase + `))\.?` + sepFrag + `|([^,]+?)\s*,\s*)` +
		suburbFrag + sepFrag + `(` + stateFrag + `)\.?\s*,?\s*` + postcodeFrag + countryFrag + `$`

	// The road ends at a capitalised road-type word.
	embedded := `^` + numFrag + `\s+(` + nameFrag + `\s+(?:` + cased + `))\.?` + sepFrag +
		suburbFrag + sepFrag + `(` + stateFrag + `)\.?\s*,?\s*` + postcodeFrag + countryFrag + `$`

	noState := `^` + numFrag + `\s+(` + nameFrag + `\s+(?:` + cased + `))\.?` + sepFrag +
		suburbFrag + `(?:` + sepFrag + stateFrag + `\.?)?` + sepFrag + postcodeFrag + countryFrag + `$`

	loose := `(?i)^` + numFrag + `\s+(` + nameFrag + `)\s+(` + anyCase + `)\.?` + sepFrag +
		suburbFrag + `(?:` + sepFrag + stateFrag + `\.?)?` + sepFrag + postcodeFrag + countryFrag + `$`

	return &Parser{states: states, tiers: []tier{
		{kind: tierStandard, pattern: regexp.MustCompile(standard), confidence: ConfidenceHigh},
		{kind: tierLot, pattern: regexp.MustCompile(lot), confidence: ConfidenceMedium},
		{kind: tierEmbedded, pattern: regexp.MustCompile(embedded), confidence: ConfidenceMedium},
		{kind: tierNoState, pattern: regexp.MustCompile(noState), confidence: ConfidenceLow},
		{kind: tierLoose, pattern: regexp.MustCompile(loose), confidence: ConfidenceLow},
	}}
}

// Parse evaluates the tiers strictly in order and returns the first whole-input
// match. It never panics and always returns a result.
func (p *Parser) Parse(address string) ParseResult {
	input := strings.TrimSpace(address)
	if input == "" {
		return ParseResult{
			Confidence:   ConfidenceLow,
			PatternIndex: -1,
			Message:      msgInvalidInput,
		}
	}

	for i, t := range p.tiers {
		match := t.pattern.FindStringSubmatch(input)
		if match == nil {
			continue
		}
		components := extract(t.kind, match[1:], p.states.Target.Abbreviation)
		if p.states.endsWithOther(components.Suburb) {
			continue
		}
		return ParseResult{
			IsValid:      true,
			Confidence:   t.confidence,
			Components:   components,
			PatternIndex: i,
			Pattern:      t.kind.String(),
			AddressType:  addressTypeUrban,
		}
	}

	return ParseResult{
		Confidence:   ConfidenceLow,
		PatternIndex: -1,
		Message:      msgNoPattern,
	}
}

// extract maps the capture groups of a tier onto components. The captured
// state token is never copied: pattern matches always report state.
func extract(kind tierKind, groups []string, state string) Components {
	for i := range groups {
		groups[i] = strings.TrimSpace(groups[i])
	}

	switch kind {
	case tierStandard, tierEmbedded:
		return Components{
			HouseNumber: groups[0],
			Road:        groups[1],
			Suburb:      groups[2],
			State:       state,
			Postcode:    groups[4],
		}
	case tierLot:
		road := groups[1]
		if road == "" {
			road = groups[2]
		}
		return Components{
			HouseNumber: "Lot " + groups[0],
			Road:        road,
			Suburb:      groups[3],
			State:       state,
			Postcode:    groups[5],
		}
	case tierNoState:
		return extractImplicitState(groups, state)
	case tierLoose:
		return extractSplitRoadType(groups, state)
	default:
		return Components{}
	}
}

// extractImplicitState handles four captures where the last one is a bare
// postcode and no state was captured.
func extractImplicitState(groups []string, state string) Components {
	c := Components{
		HouseNumber: groups[0],
		Road:        groups[1],
		Suburb:      groups[2],
		State:       state,
	}
	if isPostcode(groups[3]) {
		c.Postcode = groups[3]
	}
	return c
}

// extractSplitRoadType handles the loose tier, where the road type is its own
// capture. The pattern only fills that capture from RoadTypes, so it always
// joins the road and the suburb and postcode follow it.
func extractSplitRoadType(groups []string, state string) Components {
	c := Components{
		HouseNumber: groups[0],
		Road:        joinNonEmpty(" ", groups[1], groups[2]),
		Suburb:      groups[3],
		State:       state,
	}
	if isPostcode(groups[4]) {
		c.Postcode = groups[4]
	}
	return c
}

func isPostcode(value string) bool {
	if len(value) != 4 {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// roadTypeAlternation builds a regexp alternation, longest words first. With
// cased set, each word is offered in Title and UPPER case only.
func roadTypeAlternation(words []string, cased bool) string {
	sorted := append([]string(nil), words...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i]) > len(sorted[j])
	})

	parts := make([]string, 0, len(sorted)*2)
	for _, word := range sorted {
		if !cased {
			parts = append(parts, regexp.QuoteMeta(word))
			continue
		}
		title := strings.ToUpper(word[:1]) + word[1:]
		parts = append(parts, regexp.QuoteMeta(title), regexp.QuoteMeta(strings.ToUpper(word)))
	}
	return strings.Join(parts, "|")
}
