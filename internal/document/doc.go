// Package document models the design document tree consumed by the audit
// checkers.
//
// It defines the Node handle and NodeKind enumeration, the host capability
// interfaces (child enumeration, kind queries, attribute access, style
// catalogs), and Snapshot, an in-memory host loaded from a YAML or JSON
// document export.
package document
