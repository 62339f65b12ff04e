package audit

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/temirov/docaudit/internal/links"
	"github.com/temirov/docaudit/internal/widths"
)

const (
	renderIndentConstant                = 2
	jsonIndentConstant                  = "  "
	linkSectionHeaderTemplateConstant   = "Links: %d checked, %d invalid\n"
	linkValidLabelConstant              = "OK"
	linkInvalidLabelConstant            = "FAIL"
	linkLineTemplateConstant            = "  [%s] %d %s\n"
	linkLineWithMessageTemplateConstant = "  [%s] %d %s (%s)\n"
	styleSectionHeaderTemplateConstant  = "Styles: %d violations\n"
	widthSectionHeaderTemplateConstant  = "Widths: %d invalid, %d without max width, %d inconsistencies\n"
	widthGroupHeaderTemplateConstant    = "  %s:\n"
	widthInvalidGroupNameConstant       = "Invalid widths"
	widthMissingMaxGroupNameConstant    = "Missing max width"
	widthInconsistencyGroupNameConstant = "Inconsistent width modes"
	listItemTemplateConstant            = "  - %s\n"
	nestedListItemTemplateConstant      = "    - %s\n"
	renderEncodeErrorTemplateConstant   = "failed to render results: %w"
)

// Render writes results to writer in the requested format.
func Render(writer io.Writer, results Results, format OutputFormat) error {
	switch format {
	case OutputFormatJSON:
		encoder := json.NewEncoder(writer)
		encoder.SetIndent("", jsonIndentConstant)
		if encodeError := encoder.Encode(results); encodeError != nil {
			return fmt.Errorf(renderEncodeErrorTemplateConstant, encodeError)
		}
		return nil
	case OutputFormatYAML:
		encoder := yaml.NewEncoder(writer)
		encoder.SetIndent(renderIndentConstant)
		if encodeError := encoder.Encode(results); encodeError != nil {
			return fmt.Errorf(renderEncodeErrorTemplateConstant, encodeError)
		}
		if closeError := encoder.Close(); closeError != nil {
			return fmt.Errorf(renderEncodeErrorTemplateConstant, closeError)
		}
		return nil
	case OutputFormatText, "":
		return renderText(writer, results)
	default:
		return fmt.Errorf(unsupportedOutputFormatTemplateConstant, format)
	}
}

func renderText(writer io.Writer, results Results) error {
	textWriter := &errorTrackingWriter{writer: writer}

	if results.Links != nil {
		renderLinkFindings(textWriter, results.Links)
	}
	if results.Styles != nil {
		textWriter.printf(styleSectionHeaderTemplateConstant, len(results.Styles.Violations))
		for _, violation := range results.Styles.Violations {
			textWriter.printf(listItemTemplateConstant, violation)
		}
	}
	if results.Widths != nil {
		renderWidthReport(textWriter, results.Widths)
	}

	if textWriter.err != nil {
		return fmt.Errorf(renderEncodeErrorTemplateConstant, textWriter.err)
	}
	return nil
}

func renderLinkFindings(textWriter *errorTrackingWriter, findings *LinkFindings) {
	textWriter.printf(linkSectionHeaderTemplateConstant, len(findings.Results), findings.InvalidCount())
	for _, result := range findings.Results {
		label := linkStatusLabel(result)
		if result.HasMessage() {
			textWriter.printf(linkLineWithMessageTemplateConstant, label, result.Status, result.Link, result.Message)
			continue
		}
		textWriter.printf(linkLineTemplateConstant, label, result.Status, result.Link)
	}
}

func renderWidthReport(textWriter *errorTrackingWriter, report *widths.Report) {
	textWriter.printf(widthSectionHeaderTemplateConstant, report.InvalidWidths.Len(), report.NoMaxWidth.Len(), report.Inconsistencies.Len())

	groups := []struct {
		name        string
		descriptors []string
	}{
		{name: widthInvalidGroupNameConstant, descriptors: report.InvalidWidths.Values()},
		{name: widthMissingMaxGroupNameConstant, descriptors: report.NoMaxWidth.Values()},
		{name: widthInconsistencyGroupNameConstant, descriptors: report.Inconsistencies.Values()},
	}
	for _, group := range groups {
		if len(group.descriptors) == 0 {
			continue
		}
		textWriter.printf(widthGroupHeaderTemplateConstant, group.name)
		for _, descriptor := range group.descriptors {
			textWriter.printf(nestedListItemTemplateConstant, descriptor)
		}
	}
}

func linkStatusLabel(result links.ValidationResult) string {
	if result.Valid {
		return linkValidLabelConstant
	}
	return linkInvalidLabelConstant
}

// errorTrackingWriter keeps the first write error so rendering code can print unconditionally.
type errorTrackingWriter struct {
	writer io.Writer
	err    error
}

func (tracker *errorTrackingWriter) printf(format string, arguments ...any) {
	if tracker.err != nil {
		return
	}
	_, tracker.err = fmt.Fprintf(tracker.writer, format, arguments...)
}
