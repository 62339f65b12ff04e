package styles

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/temirov/docaudit/internal/document"
)

const (
	textStyleSubjectConstant                   = "Text style"
	colorStyleSubjectConstant                  = "Color style"
	missingFieldMessageTemplateConstant        = "%s %s is missing a %s"
	zeroFontSizeMessageTemplateConstant        = "%s %s has a font size of zero"
	unknownTextStyleMessageTemplateConstant    = "Node %s uses text style %q which is not in the text style catalog"
	unknownColorStyleMessageTemplateConstant   = "Node %s uses color style %q which is not in the color style catalog"
	unreadableReferenceMessageTemplateConstant = "Node %s has an unreadable style reference"
	unreadableReferenceLogMessageConstant      = "unreadable style reference"
	logFieldNodeIdentifierConstant             = "node_id"
	fieldNameConstant                          = "name"
	fieldFontConstant                          = "font"
	fieldColorConstant                         = "color"
	fieldLightConstant                         = "light value"
	fieldDarkConstant                          = "dark value"
	attributeReadErrorTemplateConstant         = "failed to read attributes of %s: %w"
	styleAuditCompletedMessageConstant         = "style audit completed"
	logFieldViolationCountConstant             = "violation_count"
	logFieldNodeCountConstant                  = "node_count"
)

// Auditor cross-references node style assignments with the style catalogs.
type Auditor struct {
	attributes document.AttributeReader
	logger     *zap.Logger
}

// NewAuditor constructs an Auditor reading node attributes from the host.
func NewAuditor(attributes document.AttributeReader, logger *zap.Logger) *Auditor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Auditor{attributes: attributes, logger: logger}
}

// Audit returns catalog completeness violations followed by usage violations for the selected nodes.
func (auditor *Auditor) Audit(executionContext context.Context, selection []document.Node, textCatalog []document.TextStyle, colorCatalog []document.ColorStyle) ([]string, error) {
	violations := []string{}
	violations = append(violations, textCatalogViolations(textCatalog)...)
	violations = append(violations, colorCatalogViolations(colorCatalog)...)

	usageViolations, usageError := auditor.usageViolations(executionContext, selection, textCatalog, colorCatalog)
	if usageError != nil {
		return nil, usageError
	}
	violations = append(violations, usageViolations...)

	auditor.logger.Debug(
		styleAuditCompletedMessageConstant,
		zap.Int(logFieldNodeCountConstant, len(selection)),
		zap.Int(logFieldViolationCountConstant, len(violations)),
	)

	return violations, nil
}

func textCatalogViolations(textCatalog []document.TextStyle) []string {
	violations := []string{}
	for _, textStyle := range textCatalog {
		label := entryLabel(textStyle.Identifier, textStyle.Name)
		if isBlank(textStyle.Name) {
			violations = append(violations, fmt.Sprintf(missingFieldMessageTemplateConstant, textStyleSubjectConstant, label, fieldNameConstant))
		}
		if isBlank(textStyle.Font) {
			violations = append(violations, fmt.Sprintf(missingFieldMessageTemplateConstant, textStyleSubjectConstant, label, fieldFontConstant))
		}
		if isBlank(textStyle.Color) {
			violations = append(violations, fmt.Sprintf(missingFieldMessageTemplateConstant, textStyleSubjectConstant, label, fieldColorConstant))
		}
		if IsZeroSizeToken(textStyle.FontSize) {
			violations = append(violations, fmt.Sprintf(zeroFontSizeMessageTemplateConstant, textStyleSubjectConstant, label))
		}
	}
	return violations
}

func colorCatalogViolations(colorCatalog []document.ColorStyle) []string {
	violations := []string{}
	for _, colorStyle := range colorCatalog {
		label := entryLabel(colorStyle.Identifier, colorStyle.Name)
		if isBlank(colorStyle.Name) {
			violations = append(violations, fmt.Sprintf(missingFieldMessageTemplateConstant, colorStyleSubjectConstant, label, fieldNameConstant))
		}
		if isBlank(colorStyle.Light) {
			violations = append(violations, fmt.Sprintf(missingFieldMessageTemplateConstant, colorStyleSubjectConstant, label, fieldLightConstant))
		}
		if isBlank(colorStyle.Dark) {
			violations = append(violations, fmt.Sprintf(missingFieldMessageTemplateConstant, colorStyleSubjectConstant, label, fieldDarkConstant))
		}
	}
	return violations
}

func (auditor *Auditor) usageViolations(executionContext context.Context, selection []document.Node, textCatalog []document.TextStyle, colorCatalog []document.ColorStyle) ([]string, error) {
	knownTextStyles := make(map[string]struct{}, len(textCatalog))
	for _, textStyle := range textCatalog {
		knownTextStyles[textStyle.Identifier] = struct{}{}
	}
	knownColorStyles := make(map[string]struct{}, len(colorCatalog))
	for _, colorStyle := range colorCatalog {
		knownColorStyles[colorStyle.Identifier] = struct{}{}
	}

	violations := []string{}
	for _, node := range selection {
		attributes, attributesError := auditor.attributes.Attributes(executionContext, node)
		if attributesError != nil {
			return nil, fmt.Errorf(attributeReadErrorTemplateConstant, node.Identifier, attributesError)
		}

		references, decodeError := document.DecodeStyleReferences(attributes)
		if decodeError != nil {
			auditor.logger.Warn(
				unreadableReferenceLogMessageConstant,
				zap.String(logFieldNodeIdentifierConstant, node.Identifier),
				zap.Error(decodeError),
			)
			violations = append(violations, fmt.Sprintf(unreadableReferenceMessageTemplateConstant, node.Label()))
			continue
		}

		if references.TextStyle != nil {
			if _, known := knownTextStyles[*references.TextStyle]; !known {
				violations = append(violations, fmt.Sprintf(unknownTextStyleMessageTemplateConstant, node.Label(), *references.TextStyle))
			}
		}
		if references.ColorStyle != nil {
			if _, known := knownColorStyles[*references.ColorStyle]; !known {
				violations = append(violations, fmt.Sprintf(unknownColorStyleMessageTemplateConstant, node.Label(), *references.ColorStyle))
			}
		}
	}
	return violations, nil
}

// IsZeroSizeToken reports whether a size token such as "16px" fails to
// describe a size strictly greater than zero. Blank and unparsable tokens
// count as zero.
func IsZeroSizeToken(sizeToken string) bool {
	trimmedToken := strings.TrimSpace(sizeToken)
	numericPart := strings.TrimRightFunc(trimmedToken, func(character rune) bool {
		return unicode.IsLetter(character) || character == '%'
	})
	sizeValue, parseError := strconv.ParseFloat(strings.TrimSpace(numericPart), 64)
	if parseError != nil {
		return true
	}
	return sizeValue <= 0
}

func entryLabel(identifier string, name string) string {
	if isBlank(name) {
		return strconv.Quote(identifier)
	}
	return strconv.Quote(strings.TrimSpace(name))
}

func isBlank(value string) bool {
	return len(strings.TrimSpace(value)) == 0
}
