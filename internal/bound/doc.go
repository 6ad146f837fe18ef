// Package bound holds the semantically resolved program: every expression
// carries its resolved role and an Info{HasError, HasValue}, every statement
// keeps a non-owning pointer to the syntax it was bound from.
//
// Trees are built once by the binder and never mutated afterwards.
package bound
