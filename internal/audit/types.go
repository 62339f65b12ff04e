package audit

import (
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/docaudit/internal/links"
	"github.com/temirov/docaudit/internal/widths"
)

// CheckKind names one of the document checks.
type CheckKind string

// Supported checks, in execution order.
const (
	CheckLinks  CheckKind = "links"
	CheckStyles CheckKind = "styles"
	CheckWidths CheckKind = "widths"
)

// AllChecks lists every check in execution order.
func AllChecks() []CheckKind {
	return []CheckKind{CheckLinks, CheckStyles, CheckWidths}
}

// OutputFormat selects how Results are rendered.
type OutputFormat string

// Supported output formats.
const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
)

const unsupportedOutputFormatTemplateConstant = "unsupported output format %q"

// ErrAuditInProgress is returned when an audit is requested while another one is still running.
var ErrAuditInProgress = errors.New("an audit is already in progress")

// OutputFormatChoices lists the accepted --format values.
func OutputFormatChoices() []string {
	return []string{string(OutputFormatText), string(OutputFormatJSON), string(OutputFormatYAML)}
}

// ParseOutputFormat converts a raw value into an OutputFormat. Blank values select text.
func ParseOutputFormat(raw string) (OutputFormat, error) {
	switch OutputFormat(strings.ToLower(strings.TrimSpace(raw))) {
	case "", OutputFormatText:
		return OutputFormatText, nil
	case OutputFormatJSON:
		return OutputFormatJSON, nil
	case OutputFormatYAML:
		return OutputFormatYAML, nil
	default:
		return "", fmt.Errorf(unsupportedOutputFormatTemplateConstant, raw)
	}
}

// LinkOptions tunes the link check.
type LinkOptions struct {
	Concurrency int
	BaseURL     string
	// Unique drops repeated links before validation.
	Unique bool
}

// CommandOptions captures the parameters of one audit run.
type CommandOptions struct {
	DocumentPath        string
	Selection           []string
	Checks              []CheckKind
	OutputFormat        OutputFormat
	Links               LinkOptions
	Widths              widths.Options
	HighlightOutputPath string
}

// LinkFindings holds the outcome of the link check.
type LinkFindings struct {
	Results []links.ValidationResult `json:"results" yaml:"results"`
}

// InvalidCount reports how many results failed validation.
func (findings *LinkFindings) InvalidCount() int {
	invalidCount := 0
	for _, result := range findings.Results {
		if !result.Valid {
			invalidCount++
		}
	}
	return invalidCount
}

// StyleFindings holds the outcome of the style check.
type StyleFindings struct {
	Violations []string `json:"violations" yaml:"violations"`
}

// Results aggregates the findings of the checks that ran. Checks that did not run stay nil.
type Results struct {
	Links  *LinkFindings  `json:"links,omitempty" yaml:"links,omitempty"`
	Styles *StyleFindings `json:"styles,omitempty" yaml:"styles,omitempty"`
	Widths *widths.Report `json:"widths,omitempty" yaml:"widths,omitempty"`
}
