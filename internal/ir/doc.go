// Package ir provides the positioned intermediate representation produced by
// lowering assembler syntax trees.
//
// This package contains type definitions and their encodings only. It
// imports nothing internal except descriptor; the compiler package builds
// these records and downstream emitters consume them.
//
// Key design constraints:
//   - Every record embeds a Position copied from its originating syntax node
//   - Records are immutable once constructed; constructors take finished values
//   - AnnoArg tags always agree with the shape of the carried value
//   - Canonical JSON never contains floats; float constants are rendered as text
package ir
