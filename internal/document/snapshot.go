package document

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

const (
	missingIdentifierErrorTemplateConstant   = "node %q at %s has no id"
	duplicateIdentifierErrorTemplateConstant = "duplicate node id %q"
	unknownNodeErrorTemplateConstant         = "%w: %s"
	exportErrorTemplateConstant              = "failed to export document: %w"
	rootPathSegmentConstant                  = "nodes"
	childPathSegmentTemplateConstant         = "%s[%d]"
	yamlIndentSpacesConstant                 = 2
)

// ErrNodeNotFound indicates that a node identifier is unknown to the snapshot.
var ErrNodeNotFound = errors.New("node not found")

// NodeRecord is the serialized form of a node in a document export.
type NodeRecord struct {
	Identifier string         `yaml:"id" json:"id"`
	Name       string         `yaml:"name,omitempty" json:"name,omitempty"`
	Type       string         `yaml:"type,omitempty" json:"type,omitempty"`
	Link       string         `yaml:"link,omitempty" json:"link,omitempty"`
	Controls   map[string]any `yaml:"controls,omitempty" json:"controls,omitempty"`
	Attributes map[string]any `yaml:"attributes,omitempty" json:"attributes,omitempty"`
	Children   []NodeRecord   `yaml:"children,omitempty" json:"children,omitempty"`
}

// Definition is the serialized form of a complete document export.
type Definition struct {
	TextStyles  []TextStyle  `yaml:"text_styles,omitempty" json:"text_styles,omitempty"`
	ColorStyles []ColorStyle `yaml:"color_styles,omitempty" json:"color_styles,omitempty"`
	Nodes       []NodeRecord `yaml:"nodes" json:"nodes"`
}

type snapshotEntry struct {
	node             Node
	discriminator    string
	childIdentifiers []string
	attributes       Attributes
}

// Snapshot is an in-memory document host built from a Definition.
type Snapshot struct {
	textStyles          []TextStyle
	colorStyles         []ColorStyle
	rootIdentifiers     []string
	entries             map[string]*snapshotEntry
	attributeGuard      sync.RWMutex
	modifiedIdentifiers []string
}

// NewSnapshot indexes the provided definition, rejecting missing or duplicate node identifiers.
func NewSnapshot(definition Definition) (*Snapshot, error) {
	snapshot := &Snapshot{
		textStyles:  append([]TextStyle{}, definition.TextStyles...),
		colorStyles: append([]ColorStyle{}, definition.ColorStyles...),
		entries:     make(map[string]*snapshotEntry),
	}

	for recordIndex := range definition.Nodes {
		recordPath := fmt.Sprintf(childPathSegmentTemplateConstant, rootPathSegmentConstant, recordIndex)
		identifier, indexError := snapshot.index(definition.Nodes[recordIndex], recordPath)
		if indexError != nil {
			return nil, indexError
		}
		snapshot.rootIdentifiers = append(snapshot.rootIdentifiers, identifier)
	}

	return snapshot, nil
}

func (snapshot *Snapshot) index(record NodeRecord, recordPath string) (string, error) {
	identifier := strings.TrimSpace(record.Identifier)
	if len(identifier) == 0 {
		return "", fmt.Errorf(missingIdentifierErrorTemplateConstant, record.Name, recordPath)
	}
	if _, exists := snapshot.entries[identifier]; exists {
		return "", fmt.Errorf(duplicateIdentifierErrorTemplateConstant, identifier)
	}

	entry := &snapshotEntry{
		node: Node{
			Identifier: identifier,
			Name:       record.Name,
			Kind:       ParseNodeKind(record.Type),
			Link:       strings.TrimSpace(record.Link),
			Controls:   record.Controls,
		},
		discriminator: record.Type,
		attributes:    Attributes(record.Attributes).Clone(),
	}
	snapshot.entries[identifier] = entry

	for childIndex := range record.Children {
		childPath := fmt.Sprintf(childPathSegmentTemplateConstant, recordPath+".children", childIndex)
		childIdentifier, childError := snapshot.index(record.Children[childIndex], childPath)
		if childError != nil {
			return "", childError
		}
		entry.childIdentifiers = append(entry.childIdentifiers, childIdentifier)
	}

	return identifier, nil
}

// Roots returns the top-level nodes in document order.
func (snapshot *Snapshot) Roots() []Node {
	roots := make([]Node, 0, len(snapshot.rootIdentifiers))
	for _, identifier := range snapshot.rootIdentifiers {
		roots = append(roots, snapshot.entries[identifier].node)
	}
	return roots
}

// Lookup resolves a node by identifier.
func (snapshot *Snapshot) Lookup(identifier string) (Node, error) {
	entry, entryError := snapshot.entry(strings.TrimSpace(identifier))
	if entryError != nil {
		return Node{}, entryError
	}
	return entry.node, nil
}

// Select resolves an ordered selection. An empty identifier list selects every root.
func (snapshot *Snapshot) Select(identifiers []string) ([]Node, error) {
	if len(identifiers) == 0 {
		return snapshot.Roots(), nil
	}
	selection := make([]Node, 0, len(identifiers))
	for _, identifier := range identifiers {
		node, lookupError := snapshot.Lookup(identifier)
		if lookupError != nil {
			return nil, lookupError
		}
		selection = append(selection, node)
	}
	return selection, nil
}

// Children lists the direct children of node.
func (snapshot *Snapshot) Children(executionContext context.Context, node Node) ([]Node, error) {
	if contextError := executionContext.Err(); contextError != nil {
		return nil, contextError
	}
	entry, entryError := snapshot.entry(node.Identifier)
	if entryError != nil {
		return nil, entryError
	}
	children := make([]Node, 0, len(entry.childIdentifiers))
	for _, childIdentifier := range entry.childIdentifiers {
		children = append(children, snapshot.entries[childIdentifier].node)
	}
	return children, nil
}

// NodesWithKind lists the descendants of node matching kind in pre-order. The node itself is excluded.
func (snapshot *Snapshot) NodesWithKind(executionContext context.Context, node Node, kind NodeKind) ([]Node, error) {
	if contextError := executionContext.Err(); contextError != nil {
		return nil, contextError
	}
	entry, entryError := snapshot.entry(node.Identifier)
	if entryError != nil {
		return nil, entryError
	}
	matches := []Node{}
	snapshot.collectKind(entry, kind, &matches)
	return matches, nil
}

func (snapshot *Snapshot) collectKind(entry *snapshotEntry, kind NodeKind, matches *[]Node) {
	for _, childIdentifier := range entry.childIdentifiers {
		childEntry := snapshot.entries[childIdentifier]
		if childEntry.node.Kind == kind {
			*matches = append(*matches, childEntry.node)
		}
		snapshot.collectKind(childEntry, kind, matches)
	}
}

// Attributes returns a copy of the node attributes.
func (snapshot *Snapshot) Attributes(executionContext context.Context, node Node) (Attributes, error) {
	if contextError := executionContext.Err(); contextError != nil {
		return nil, contextError
	}
	entry, entryError := snapshot.entry(node.Identifier)
	if entryError != nil {
		return nil, entryError
	}
	snapshot.attributeGuard.RLock()
	defer snapshot.attributeGuard.RUnlock()
	return entry.attributes.Clone(), nil
}

// SetAttributes merges attributes into the node and records the node as modified.
func (snapshot *Snapshot) SetAttributes(executionContext context.Context, node Node, attributes Attributes) error {
	entry, entryError := snapshot.entry(node.Identifier)
	if entryError != nil {
		return entryError
	}

	snapshot.attributeGuard.Lock()
	defer snapshot.attributeGuard.Unlock()

	if entry.attributes == nil {
		entry.attributes = Attributes{}
	}
	for attributeKey, attributeValue := range attributes {
		entry.attributes[attributeKey] = attributeValue
	}
	for _, modifiedIdentifier := range snapshot.modifiedIdentifiers {
		if modifiedIdentifier == node.Identifier {
			return nil
		}
	}
	snapshot.modifiedIdentifiers = append(snapshot.modifiedIdentifiers, node.Identifier)
	return nil
}

// ModifiedIdentifiers lists nodes changed through SetAttributes in first-write order.
func (snapshot *Snapshot) ModifiedIdentifiers() []string {
	snapshot.attributeGuard.RLock()
	defer snapshot.attributeGuard.RUnlock()
	return append([]string{}, snapshot.modifiedIdentifiers...)
}

// TextStyles returns the text style catalog.
func (snapshot *Snapshot) TextStyles(executionContext context.Context) ([]TextStyle, error) {
	if contextError := executionContext.Err(); contextError != nil {
		return nil, contextError
	}
	return append([]TextStyle{}, snapshot.textStyles...), nil
}

// ColorStyles returns the color style catalog.
func (snapshot *Snapshot) ColorStyles(executionContext context.Context) ([]ColorStyle, error) {
	if contextError := executionContext.Err(); contextError != nil {
		return nil, contextError
	}
	return append([]ColorStyle{}, snapshot.colorStyles...), nil
}

// Definition rebuilds the serialized document including attribute writes.
func (snapshot *Snapshot) Definition() Definition {
	snapshot.attributeGuard.RLock()
	defer snapshot.attributeGuard.RUnlock()

	definition := Definition{
		TextStyles:  append([]TextStyle{}, snapshot.textStyles...),
		ColorStyles: append([]ColorStyle{}, snapshot.colorStyles...),
		Nodes:       make([]NodeRecord, 0, len(snapshot.rootIdentifiers)),
	}
	for _, identifier := range snapshot.rootIdentifiers {
		definition.Nodes = append(definition.Nodes, snapshot.record(identifier))
	}
	return definition
}

func (snapshot *Snapshot) record(identifier string) NodeRecord {
	entry := snapshot.entries[identifier]
	record := NodeRecord{
		Identifier: entry.node.Identifier,
		Name:       entry.node.Name,
		Type:       entry.discriminator,
		Link:       entry.node.Link,
		Controls:   entry.node.Controls,
	}
	if len(entry.attributes) > 0 {
		record.Attributes = map[string]any(entry.attributes.Clone())
	}
	for _, childIdentifier := range entry.childIdentifiers {
		record.Children = append(record.Children, snapshot.record(childIdentifier))
	}
	return record
}

// Export writes the document, including attribute writes, as YAML.
func (snapshot *Snapshot) Export(writer io.Writer) error {
	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(yamlIndentSpacesConstant)
	if encodeError := encoder.Encode(snapshot.Definition()); encodeError != nil {
		return fmt.Errorf(exportErrorTemplateConstant, encodeError)
	}
	if closeError := encoder.Close(); closeError != nil {
		return fmt.Errorf(exportErrorTemplateConstant, closeError)
	}
	return nil
}

func (snapshot *Snapshot) entry(identifier string) (*snapshotEntry, error) {
	entry, exists := snapshot.entries[identifier]
	if !exists {
		return nil, fmt.Errorf(unknownNodeErrorTemplateConstant, ErrNodeNotFound, identifier)
	}
	return entry, nil
}
