// Package diag defines the diagnostic model shared by all pipeline stages.
//
// # Purpose
//
//   - Provide deterministic data structures that capture findings produced by
//     the scanner, the command and statement parsers and the binder.
//   - Offer light-weight utilities (Reporter, Bag) that let stages emit
//     diagnostics without coupling to storage or formatting layers.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – tri-level enum (Info, Warning, Error). Every finding of the
//     compiler front end is an Error today.
//   - Code – compact numeric identifier with a stable name (codes.go). The
//     name keys the localized message template.
//   - Range – the source.Range the finding is reported on.
//   - Args – positional values substituted into the template as {0}, {1}, ...
//
// Diagnostics carry no message text: rendering belongs to internal/locale and
// internal/diagfmt.
//
// # Emitting diagnostics
//
// Stages receive a Reporter. A compilation owns exactly one Bag and wires a
// BagReporter into every stage, so diagnostics keep discovery order and two
// compilations never share a collector.
package diag
