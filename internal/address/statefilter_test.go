package address

import (
	"slices"
	"testing"

	"intake_backend/internal/geocode"
)

func candidate(display, state string) geocode.Candidate {
	return geocode.Candidate{DisplayName: display, Address: geocode.Address{State: state}}
}

func displayNames(candidates []geocode.Candidate) []string {
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c.DisplayName)
	}
	return out
}

func TestFilterCandidates(t *testing.T) {
	tests := []struct {
		name  string
		input []geocode.Candidate
		want  []string
	}{
		{
			name: "drops abbreviation of another state",
			input: []geocode.Candidate{
				candidate("1 Main St, Melbourne VIC 3000", ""),
				candidate("1 Main St, Sydney NSW 2000", ""),
				candidate("1 Main St, Kew, Victoria, 3101, Australia", ""),
			},
			want: []string{
				"1 Main St, Melbourne VIC 3000",
				"1 Main St, Kew, Victoria, 3101, Australia",
			},
		},
		{
			name: "keeps candidates naming no state",
			input: []geocode.Candidate{
				candidate("1 Main St, Somewhere", ""),
			},
			want: []string{"1 Main St, Somewhere"},
		},
		{
			name: "uses structured state from address details",
			input: []geocode.Candidate{
				candidate("Main Street, Brisbane City", "Queensland"),
				candidate("Main Street, Ballarat Central", "Victoria"),
			},
			want: []string{"Main Street, Ballarat Central"},
		},
		{
			name: "drops full state name",
			input: []geocode.Candidate{
				candidate("Victoria Street, Sydney, New South Wales, 2000, Australia", ""),
			},
			want: []string{},
		},
		{
			name: "target state wins over another mention",
			input: []geocode.Candidate{
				candidate("NSW Road, Wodonga, Victoria, 3690", ""),
			},
			want: []string{"NSW Road, Wodonga, Victoria, 3690"},
		},
		{
			name: "road named after a state is not a mention",
			input: []geocode.Candidate{
				candidate("Tasmania Road, Kew", ""),
			},
			want: []string{"Tasmania Road, Kew"},
		},
		{
			name:  "empty input",
			input: nil,
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := displayNames(FilterCandidates(tt.input, DefaultStates))
			if !slices.Equal(got, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestFilterCandidatesPreservesOrder(t *testing.T) {
	input := []geocode.Candidate{
		candidate("c, VIC", ""),
		candidate("x, WA", ""),
		candidate("a, VIC", ""),
		candidate("b", ""),
	}

	got := displayNames(FilterCandidates(input, DefaultStates))
	want := []string{"c, VIC", "a, VIC", "b"}
	if !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestAbbreviate(t *testing.T) {
	tests := map[string]string{
		"Victoria":        "VIC",
		"new south wales": "NSW",
		"vic":             "VIC",
		" Unknown ":       "Unknown",
	}

	for in, want := range tests {
		if got := DefaultStates.Abbreviate(in); got != want {
			t.Fatalf("expected %q for %q, got %q", want, in, got)
		}
	}
}

func TestEndsWithOtherState(t *testing.T) {
	tests := []struct {
		suburb string
		want   bool
	}{
		{suburb: "Sydney NSW", want: true},
		{suburb: "Sydney New South Wales", want: true},
		{suburb: "brisbane queensland", want: true},
		{suburb: "perth wa.", want: true},
		{suburb: "Hobart Tasmania", want: true},
		{suburb: "Kew", want: false},
		{suburb: "Wales", want: false},
		{suburb: "Tasmania Heights", want: false},
		{suburb: "", want: false},
	}

	for _, tt := range tests {
		if got := DefaultStates.endsWithOther(tt.suburb); got != tt.want {
			t.Fatalf("expected endsWithOther(%q) = %v, got %v", tt.suburb, tt.want, got)
		}
	}
}
