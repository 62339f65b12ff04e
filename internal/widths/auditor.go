package widths

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/docaudit/internal/document"
)

const (
	// DefaultExemptFrameName names the author-designated top-level container skipped by the audit.
	DefaultExemptFrameName = "Desktop"
	// DefaultFillWidthMarker is the proportional-fill width value.
	DefaultFillWidthMarker = "1fr"
	// DefaultFitWidthMarker is the content-fit width value.
	DefaultFitWidthMarker = "fit-content"
	// DefaultHighlightAttribute is the attribute written when marking frames with an unsupported width.
	DefaultHighlightAttribute = "backgroundColor"
	// DefaultMissingMaxWidthAttribute is the attribute written when marking frames without a maximum width.
	DefaultMissingMaxWidthAttribute = "borderColor"
	// DefaultInvalidWidthColor highlights frames with an unsupported width.
	DefaultInvalidWidthColor = "rgba(255, 0, 0, 0.35)"
	// DefaultMissingMaxWidthColor highlights frames without a maximum width.
	DefaultMissingMaxWidthColor = "rgba(255, 165, 0, 0.35)"

	invalidWidthDescriptorTemplateConstant    = "Frame %s has unsupported width %q"
	missingMaxWidthDescriptorTemplateConstant = "Frame %s has no max width"
	inconsistencySummaryTemplateConstant      = "Frames use %d different width modes: %s"
	inconsistencyNodeTemplateConstant         = "Frame %s uses width mode %q"
	widthModeSeparatorConstant                = ", "
	frameQueryErrorTemplateConstant           = "failed to list frames under %s: %w"
	frameAttributeErrorTemplateConstant       = "failed to read attributes of frame %s: %w"
	markFailedMessageConstant                 = "failed to highlight frame"
	unreadableSizingMessageConstant           = "treating unreadable frame sizing as unsupported width"
	widthAuditCompletedMessageConstant        = "width audit completed"
	logFieldNodeIdentifierConstant            = "node_id"
	logFieldFrameCountConstant                = "frame_count"
	logFieldWidthModeCountConstant            = "width_mode_count"
)

// Options configures the width rules and highlighting.
type Options struct {
	ExemptFrameName          string
	FillWidthMarker          string
	FitWidthMarker           string
	Highlight                bool
	HighlightAttribute       string
	MissingMaxWidthAttribute string
	InvalidWidthColor        string
	MissingMaxWidthColor     string
}

// DefaultOptions returns the baseline width rules with highlighting enabled.
func DefaultOptions() Options {
	return Options{
		ExemptFrameName:          DefaultExemptFrameName,
		FillWidthMarker:          DefaultFillWidthMarker,
		FitWidthMarker:           DefaultFitWidthMarker,
		Highlight:                true,
		HighlightAttribute:       DefaultHighlightAttribute,
		MissingMaxWidthAttribute: DefaultMissingMaxWidthAttribute,
		InvalidWidthColor:        DefaultInvalidWidthColor,
		MissingMaxWidthColor:     DefaultMissingMaxWidthColor,
	}
}

func (options Options) sanitize() Options {
	sanitized := options
	defaults := DefaultOptions()
	if len(strings.TrimSpace(sanitized.FillWidthMarker)) == 0 {
		sanitized.FillWidthMarker = defaults.FillWidthMarker
	}
	if len(strings.TrimSpace(sanitized.FitWidthMarker)) == 0 {
		sanitized.FitWidthMarker = defaults.FitWidthMarker
	}
	if len(strings.TrimSpace(sanitized.HighlightAttribute)) == 0 {
		sanitized.HighlightAttribute = defaults.HighlightAttribute
	}
	if len(strings.TrimSpace(sanitized.MissingMaxWidthAttribute)) == 0 {
		sanitized.MissingMaxWidthAttribute = defaults.MissingMaxWidthAttribute
	}
	if len(strings.TrimSpace(sanitized.InvalidWidthColor)) == 0 {
		sanitized.InvalidWidthColor = defaults.InvalidWidthColor
	}
	if len(strings.TrimSpace(sanitized.MissingMaxWidthColor)) == 0 {
		sanitized.MissingMaxWidthColor = defaults.MissingMaxWidthColor
	}
	return sanitized
}

// Host is the subset of host capabilities used by the width audit.
type Host interface {
	document.KindQuerier
	document.AttributeReader
	document.AttributeWriter
}

// Auditor checks frame sizing across a selection.
type Auditor struct {
	host    Host
	options Options
	logger  *zap.Logger
}

// NewAuditor constructs an Auditor. Blank markers, attributes and colors fall back to defaults.
func NewAuditor(host Host, logger *zap.Logger, options Options) *Auditor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Auditor{host: host, options: options.sanitize(), logger: logger}
}

type widthModeBuckets struct {
	modes       []string
	nodesByMode map[string][]document.Node
}

func (buckets *widthModeBuckets) add(mode string, node document.Node) {
	if _, exists := buckets.nodesByMode[mode]; !exists {
		buckets.modes = append(buckets.modes, mode)
	}
	buckets.nodesByMode[mode] = append(buckets.nodesByMode[mode], node)
}

// Audit walks frame descendants of every selected node and returns the width report.
//
// When more than one width mode is seen, every bucketed frame is listed in
// Inconsistencies, not only frames in the minority mode.
func (auditor *Auditor) Audit(executionContext context.Context, selection []document.Node) (Report, error) {
	report := Report{}
	buckets := &widthModeBuckets{nodesByMode: make(map[string][]document.Node)}
	frameCount := 0

	for _, selectedNode := range selection {
		frames, framesError := auditor.host.NodesWithKind(executionContext, selectedNode, document.NodeKindFrame)
		if framesError != nil {
			return Report{}, fmt.Errorf(frameQueryErrorTemplateConstant, selectedNode.Identifier, framesError)
		}

		for _, frame := range frames {
			if auditor.isExempt(frame) {
				continue
			}
			frameCount++

			attributes, attributesError := auditor.host.Attributes(executionContext, frame)
			if attributesError != nil {
				return Report{}, fmt.Errorf(frameAttributeErrorTemplateConstant, frame.Identifier, attributesError)
			}
			sizing, decodeError := document.DecodeFrameSizing(attributes)
			if decodeError != nil {
				auditor.logger.Warn(
					unreadableSizingMessageConstant,
					zap.String(logFieldNodeIdentifierConstant, frame.Identifier),
					zap.Error(decodeError),
				)
				sizing = rawFrameSizing(attributes)
			}

			if auditor.isSupportedWidth(sizing.Width) {
				buckets.add(sizing.Width, frame)
			} else {
				report.InvalidWidths.Add(fmt.Sprintf(invalidWidthDescriptorTemplateConstant, frame.Label(), sizing.Width))
				auditor.mark(executionContext, frame, auditor.options.HighlightAttribute, auditor.options.InvalidWidthColor)
			}

			if !sizing.HasMaxWidth() {
				report.NoMaxWidth.Add(fmt.Sprintf(missingMaxWidthDescriptorTemplateConstant, frame.Label()))
				auditor.mark(executionContext, frame, auditor.options.MissingMaxWidthAttribute, auditor.options.MissingMaxWidthColor)
			}
		}
	}

	if len(buckets.modes) > 1 {
		report.Inconsistencies.Add(fmt.Sprintf(inconsistencySummaryTemplateConstant, len(buckets.modes), strings.Join(buckets.modes, widthModeSeparatorConstant)))
		for _, mode := range buckets.modes {
			for _, frame := range buckets.nodesByMode[mode] {
				report.Inconsistencies.Add(fmt.Sprintf(inconsistencyNodeTemplateConstant, frame.Label(), mode))
			}
		}
	}

	auditor.logger.Debug(
		widthAuditCompletedMessageConstant,
		zap.Int(logFieldFrameCountConstant, frameCount),
		zap.Int(logFieldWidthModeCountConstant, len(buckets.modes)),
	)

	return report, nil
}

func (auditor *Auditor) isExempt(frame document.Node) bool {
	return len(auditor.options.ExemptFrameName) > 0 && frame.Name == auditor.options.ExemptFrameName
}

func (auditor *Auditor) isSupportedWidth(width string) bool {
	return width == auditor.options.FillWidthMarker || width == auditor.options.FitWidthMarker
}

// rawFrameSizing rebuilds sizing from attributes that failed to decode.
// A width that is not a string is rendered as text so it can never match a supported marker.
func rawFrameSizing(attributes document.Attributes) document.FrameSizing {
	sizing := document.FrameSizing{}
	switch rawWidth := attributes[document.WidthAttributeKey].(type) {
	case nil:
	case string:
		sizing.Width = strings.TrimSpace(rawWidth)
	default:
		sizing.Width = fmt.Sprint(rawWidth)
	}
	if rawMaxWidth, isText := attributes[document.MaxWidthAttributeKey].(string); isText {
		sizing.MaxWidth = &rawMaxWidth
	}
	return sizing
}

// mark is fire-and-forget: failures are logged and never fail the audit.
func (auditor *Auditor) mark(executionContext context.Context, frame document.Node, attribute string, color string) {
	if !auditor.options.Highlight {
		return
	}
	markError := auditor.host.SetAttributes(executionContext, frame, document.Attributes{attribute: color})
	if markError != nil {
		auditor.logger.Warn(
			markFailedMessageConstant,
			zap.String(logFieldNodeIdentifierConstant, frame.Identifier),
			zap.Error(markError),
		)
	}
}
