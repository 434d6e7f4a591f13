// Package diag defines the diagnostic model shared by all rewrite phases.
//
// Diagnostic is the central record: severity, a stable numeric Code, a
// human-oriented message, the primary source.Span anchored at parse time,
// and optional notes. TextEdit lives here too because it shares the span
// vocabulary; the rewrite produces TextEdits and the engine in
// internal/edit applies them.
//
// Phases emit through the Reporter interface to stay decoupled from
// storage; BagReporter aggregates diagnostics into a Bag, which supports
// deterministic sorting and deduplication. Rendering lives in
// internal/diagfmt; this package performs no formatting or IO.
package diag
