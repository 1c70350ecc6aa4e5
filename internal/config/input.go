package config

import (
	"fmt"
	"os"

	"github.com/rentcalc/outsource-calculator/internal/domain"
	"gopkg.in/yaml.v3"
)

// InputFile is a calculation input document, e.g.
//
//	mode: subletting
//	label: 12 Elm St
//	subletting:
//	  rent_cost: "20000"
//	  total_revenue: "45000"
//	  outsource_rate: "10"
type InputFile struct {
	Mode       domain.CalculationMode  `yaml:"mode"`
	Label      string                  `yaml:"label"`
	Subletting *domain.SublettingInput `yaml:"subletting"`
	Management *domain.ManagementInput `yaml:"management"`
}

// InputParser handles parsing of calculation input files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads an input document from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (*InputFile, domain.ModeInput, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes an input document and returns the input for its mode
func (ip *InputParser) Parse(data []byte) (*InputFile, domain.ModeInput, error) {
	var doc InputFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	in, err := ip.Validate(&doc)
	if err != nil {
		return nil, nil, fmt.Errorf("input validation failed: %w", err)
	}
	return &doc, in, nil
}

// Validate checks that the block matching mode is present
func (ip *InputParser) Validate(doc *InputFile) (domain.ModeInput, error) {
	if doc.Mode == "" {
		switch {
		case doc.Subletting != nil && doc.Management == nil:
			doc.Mode = domain.ModeSubletting
		case doc.Management != nil && doc.Subletting == nil:
			doc.Mode = domain.ModeManagement
		default:
			return nil, fmt.Errorf("mode is required")
		}
	}
	mode, err := domain.ParseCalculationMode(string(doc.Mode))
	if err != nil {
		return nil, err
	}
	doc.Mode = mode

	switch mode {
	case domain.ModeSubletting:
		if doc.Subletting == nil {
			return nil, fmt.Errorf("subletting block is required for mode %s", mode)
		}
		return doc.Subletting.Clone(), nil
	default:
		if doc.Management == nil {
			return nil, fmt.Errorf("management block is required for mode %s", mode)
		}
		return *doc.Management, nil
	}
}
