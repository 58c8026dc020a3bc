// Package syntax defines the generic assembler syntax tree consumed by the
// lowering layer.
//
// The tree is produced by an external lexer/parser. This package only models
// its node taxonomy as a closed sum type, so every consumer can dispatch with
// a type switch over a fixed set of cases. Nodes are read-only once built.
//
// For drivers and fixtures that do not link the parser, trees can also be
// described as serialized Documents (YAML, JSON or CUE) and turned into
// nodes with Build.
package syntax
