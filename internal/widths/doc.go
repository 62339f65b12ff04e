// Package widths audits the sizing mode of layout frames.
//
// Auditor walks the frame descendants of every selected node, records frames
// whose width is neither the fill nor the fit marker, frames lacking a
// maximum width, and disagreement between width modes within one run. Offending
// frames can be highlighted through the host attribute writer.
package widths
