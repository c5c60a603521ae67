package main

import (
	"fmt"
	"os"
	"strings"

	"intake_backend/internal/address"
	"intake_backend/platform/validator"

	"gopkg.in/yaml.v3"
)

// fixtureFile is the YAML layout read by address-check.
type fixtureFile struct {
	Addresses []fixtureCase `yaml:"addresses" validate:"required,min=1,dive"`
}

type fixtureCase struct {
	Address string      `yaml:"address"`
	Expect  expectation `yaml:"expect"`
}

// expectation lists the result fields a case asserts. Unset fields are not
// checked.
type expectation struct {
	Valid      *bool  `yaml:"valid"`
	Source     string `yaml:"source" validate:"omitempty,oneof=api regex-urban regex-rural none"`
	Confidence string `yaml:"confidence" validate:"omitempty,oneof=high medium low"`
	Suburb     string `yaml:"suburb"`
	Postcode   string `yaml:"postcode" validate:"omitempty,au_postcode"`
}

func loadFixtures(path string) ([]fixtureCase, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixtures: %w", err)
	}
	return parseFixtures(raw)
}

func parseFixtures(raw []byte) ([]fixtureCase, error) {
	var file fixtureFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("decode fixtures: %w", err)
	}
	if err := validator.New().Struct(file); err != nil {
		return nil, fmt.Errorf("invalid fixtures: %w", err)
	}
	return file.Addresses, nil
}

// mismatches returns one line per expectation the result does not meet.
func (e expectation) mismatches(result address.ValidationResult) []string {
	var out []string
	if e.Valid != nil && *e.Valid != result.IsValid {
		out = append(out, fmt.Sprintf("isValid: want %t, got %t", *e.Valid, result.IsValid))
	}
	if e.Source != "" && e.Source != string(result.Source) {
		out = append(out, fmt.Sprintf("source: want %s, got %s", e.Source, result.Source))
	}
	if e.Confidence != "" && e.Confidence != string(result.Confidence) {
		out = append(out, fmt.Sprintf("confidence: want %s, got %s", e.Confidence, result.Confidence))
	}
	if e.Suburb != "" && !strings.EqualFold(e.Suburb, result.Components.Suburb) {
		out = append(out, fmt.Sprintf("suburb: want %q, got %q", e.Suburb, result.Components.Suburb))
	}
	if e.Postcode != "" && e.Postcode != result.Components.Postcode {
		out = append(out, fmt.Sprintf("postcode: want %s, got %s", e.Postcode, result.Components.Postcode))
	}
	return out
}
