// Package harness runs lowering conformance scenarios.
//
// A scenario is a YAML file holding a list of syntax documents and the
// assertions their lowering must satisfy. Every node is lowered in order the
// way the lower command does it: a parse error fails only its own node, a
// contract error stops the scenario. The resulting records can also be
// compared against a golden file of canonical JSON.
//
// # Scenario Format
//
//	name: handle_roundtrip
//	description: "A static handle keeps its owner and descriptor"
//	nodes:
//	  - kind: handle
//	    text: handle invokestatic java/lang/Math.max (II)I
//	    handle_type: invokestatic
//	    name: java/lang/Math.max
//	    descriptor: (II)I
//	    start: {line: 1, column: 0, offset: 0}
//	    end: {line: 1, column: 42, offset: 42}
//	assertions:
//	  - type: lowers
//	    index: 0
//	    node: handle
//	  - type: field
//	    index: 0
//	    path: owner
//	    equals: java/lang/Math
//	  - type: fails
//	    index: 1
//	    code: E203
//	    fatal: true
//	  - type: count
//	    count: 2
//
// # Assertion Types
//
//   - lowers: the node at index produced a record with the given "node"
//     discriminator
//   - fails: the node at index failed with the given code (and fatality,
//     when set)
//   - field: a dot path into the record's canonical tree equals a value;
//     numeric path segments index lists
//   - count: exactly count records were produced, failed ones included
package harness
