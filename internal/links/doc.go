// Package links collects navigation targets from a document selection and
// validates them.
//
// Collector walks the selection depth-first and extracts candidate link
// strings, treating component instances as opaque. Validator classifies each
// candidate by scheme (mailto:, tel:, bare email or phone, general URL) and
// probes general URLs through a Prober; ValidateAll fans validations out
// concurrently and returns results in input order.
package links
