// Package ast holds the syntax trees produced by the parser.
//
// Three levels exist, each a closed sum: a node carries a Kind tag and a
// Data payload whose concrete type is fixed by that tag. Payload types are
// sealed through unexported marker methods, so only this package can add
// variants.
//
//   - Expr: expression syntax, built by the command parser.
//   - Command: one recognised line, flat, no nesting yet.
//   - Stmt: block-structured statements, built by the statement parser.
//
// Trees are immutable once built; later stages keep pointers to nodes only to
// look up ranges.
package ast
