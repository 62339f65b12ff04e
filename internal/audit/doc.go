// Package audit wires the document checkers into the docaudit CLI.
//
// It exposes CommandBuilder for assembling the audit Cobra command tree, Service
// for running link, style and width checks against a loaded document, and the
// renderers that present Results as text, JSON or YAML.
package audit
