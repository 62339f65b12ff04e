package document

import "strings"

const (
	nodeKindFrameStringConstant             = "frame"
	nodeKindComponentInstanceStringConstant = "component_instance"
	nodeKindTextStringConstant              = "text"
	nodeKindGenericStringConstant           = "generic"
	nodeKindSuffixConstant                  = "node"
	nodeKindWordSeparatorConstant           = "_"
	linkControlKeyConstant                  = "link"
)

// NodeKind enumerates node variants distinguished by the checkers.
type NodeKind string

// Supported node kinds.
const (
	NodeKindFrame             NodeKind = NodeKind(nodeKindFrameStringConstant)
	NodeKindComponentInstance NodeKind = NodeKind(nodeKindComponentInstanceStringConstant)
	NodeKindText              NodeKind = NodeKind(nodeKindTextStringConstant)
	NodeKindGeneric           NodeKind = NodeKind(nodeKindGenericStringConstant)
)

var nodeKindAliases = map[string]NodeKind{
	"frame":             NodeKindFrame,
	"componentinstance": NodeKindComponentInstance,
	"component":         NodeKindComponentInstance,
	"instance":          NodeKindComponentInstance,
	"text":              NodeKindText,
	"generic":           NodeKindGeneric,
}

// ParseNodeKind narrows a host type discriminator such as "FrameNode",
// "ComponentInstanceNode" or "component_instance" into a NodeKind.
// Unrecognized discriminators map to NodeKindGeneric.
func ParseNodeKind(discriminator string) NodeKind {
	normalized := strings.ToLower(strings.TrimSpace(discriminator))
	normalized = strings.ReplaceAll(normalized, nodeKindWordSeparatorConstant, "")
	normalized = strings.ReplaceAll(normalized, "-", "")
	if normalized != nodeKindSuffixConstant {
		normalized = strings.TrimSuffix(normalized, nodeKindSuffixConstant)
	}

	kind, known := nodeKindAliases[normalized]
	if !known {
		return NodeKindGeneric
	}
	return kind
}

// Node is a handle into the host document tree.
type Node struct {
	Identifier string
	Name       string
	Kind       NodeKind
	Link       string
	Controls   map[string]any
}

// IsComponentInstance reports whether the node's internals are defined by an external template.
func (node Node) IsComponentInstance() bool {
	return node.Kind == NodeKindComponentInstance
}

// IsFrame reports whether the node is a layout frame exposing sizing attributes.
func (node Node) IsFrame() bool {
	return node.Kind == NodeKindFrame
}

// ControlLink returns the string stored under the "link" control, if any.
func (node Node) ControlLink() (string, bool) {
	if node.Controls == nil {
		return "", false
	}
	linkValue, linkIsString := node.Controls[linkControlKeyConstant].(string)
	if !linkIsString || len(linkValue) == 0 {
		return "", false
	}
	return linkValue, true
}

// Label renders a human-readable node reference used in audit descriptors.
func (node Node) Label() string {
	trimmedName := strings.TrimSpace(node.Name)
	if len(trimmedName) == 0 {
		return node.Identifier
	}
	return trimmedName + " (" + node.Identifier + ")"
}
