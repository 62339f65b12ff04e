package links

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/docaudit/internal/document"
)

const (
	pathPrefixConstant                    = "/"
	telephoneSchemePrefixConstant         = "tel:"
	mailSchemePrefixConstant              = "mailto:"
	childEnumerationErrorTemplateConstant = "failed to enumerate children of %s: %w"
	collectorNodeVisitedMessageConstant   = "link collector visited node"
	collectorOpaqueNodeMessageConstant    = "link collector skipped component instance internals"
	logFieldNodeIdentifierConstant        = "node_id"
	logFieldLinkCountConstant             = "link_count"
)

// Collector extracts candidate link strings from a selection.
type Collector struct {
	children document.ChildEnumerator
	logger   *zap.Logger
}

// NewCollector constructs a Collector backed by the host child enumeration.
func NewCollector(children document.ChildEnumerator, logger *zap.Logger) *Collector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Collector{children: children, logger: logger}
}

// Collect walks every selected root in order and returns the extracted links
// in pre-order. Links are not deduplicated.
func (collector *Collector) Collect(executionContext context.Context, selection []document.Node) ([]string, error) {
	collected := []string{}
	for _, root := range selection {
		rootLinks, collectError := collector.collectNode(executionContext, root)
		if collectError != nil {
			return nil, collectError
		}
		collected = append(collected, rootLinks...)
	}
	return collected, nil
}

func (collector *Collector) collectNode(executionContext context.Context, node document.Node) ([]string, error) {
	nodeLinks := []string{}

	if len(node.Link) > 0 {
		nodeLinks = append(nodeLinks, node.Link)
	}

	if controlLink, present := node.ControlLink(); present {
		nodeLinks = append(nodeLinks, controlLink)
	}

	if node.IsComponentInstance() {
		nodeLinks = append(nodeLinks, controlLinkCandidates(node.Controls)...)
		collector.logger.Debug(
			collectorOpaqueNodeMessageConstant,
			zap.String(logFieldNodeIdentifierConstant, node.Identifier),
			zap.Int(logFieldLinkCountConstant, len(nodeLinks)),
		)
		return nodeLinks, nil
	}

	children, childrenError := collector.children.Children(executionContext, node)
	if childrenError != nil {
		return nil, fmt.Errorf(childEnumerationErrorTemplateConstant, node.Identifier, childrenError)
	}

	for _, child := range children {
		childLinks, childError := collector.collectNode(executionContext, child)
		if childError != nil {
			return nil, childError
		}
		nodeLinks = append(nodeLinks, childLinks...)
	}

	collector.logger.Debug(
		collectorNodeVisitedMessageConstant,
		zap.String(logFieldNodeIdentifierConstant, node.Identifier),
		zap.Int(logFieldLinkCountConstant, len(nodeLinks)),
	)

	return nodeLinks, nil
}

// controlLinkCandidates scans string-valued controls in key order.
func controlLinkCandidates(controls map[string]any) []string {
	controlKeys := make([]string, 0, len(controls))
	for controlKey := range controls {
		controlKeys = append(controlKeys, controlKey)
	}
	sort.Strings(controlKeys)

	candidates := []string{}
	for _, controlKey := range controlKeys {
		controlValue, isString := controls[controlKey].(string)
		if !isString {
			continue
		}
		if looksLikeLinkTarget(controlValue) {
			candidates = append(candidates, controlValue)
		}
	}
	return candidates
}

func looksLikeLinkTarget(candidate string) bool {
	return strings.HasPrefix(candidate, pathPrefixConstant) ||
		strings.HasPrefix(candidate, telephoneSchemePrefixConstant) ||
		strings.HasPrefix(candidate, mailSchemePrefixConstant)
}
