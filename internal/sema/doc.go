// Package sema runs the semantic pass over a parsed file: it builds the
// symbol table, resolves names and types, and enforces the ownership
// discipline. Every owned value has exactly one owner; moves transfer
// ownership permanently; shared and exclusive borrows are tracked per
// binding and released with the scope of the borrower.
//
// The pass is flow-sensitive within a function. Branches are analyzed
// against snapshots of the ownership state and rejoined conservatively:
// a value moved on any branch counts as moved afterwards. Loop bodies
// are analyzed once; a body that leaves outer bindings in a different
// ownership state than it found them is rejected.
package sema
