// Package styles audits text and color style usage against the document
// style catalogs. It reports incomplete catalog entries and selected nodes
// that reference styles missing from the catalogs.
package styles
