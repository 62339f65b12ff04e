package document

import "context"

// ChildEnumerator lists the direct children of a node. Leaf nodes yield an empty slice.
type ChildEnumerator interface {
	Children(executionContext context.Context, node Node) ([]Node, error)
}

// KindQuerier lists the descendants of a node matching a kind.
type KindQuerier interface {
	NodesWithKind(executionContext context.Context, node Node, kind NodeKind) ([]Node, error)
}

// AttributeReader reads the style-relevant attributes of a node.
type AttributeReader interface {
	Attributes(executionContext context.Context, node Node) (Attributes, error)
}

// AttributeWriter merges attributes into a node. Callers treat writes as fire-and-forget.
type AttributeWriter interface {
	SetAttributes(executionContext context.Context, node Node, attributes Attributes) error
}

// StyleCatalog exposes the document-wide style definitions.
type StyleCatalog interface {
	TextStyles(executionContext context.Context) ([]TextStyle, error)
	ColorStyles(executionContext context.Context) ([]ColorStyle, error)
}

// Host aggregates every capability the checkers consume.
type Host interface {
	ChildEnumerator
	KindQuerier
	AttributeReader
	AttributeWriter
	StyleCatalog
}
