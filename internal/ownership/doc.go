// Package ownership implements the move/borrow state machine at the heart
// of the Aether frontend.
//
// Tracker holds the per-binding move and borrow state and exposes the
// transition operations (move, borrow, borrow-mut, use, assign) with their
// preconditions. Failed transitions never mutate state: the tracker keeps
// the safer of the old and attempted states and reports an Issue the
// checker turns into a diagnostic, so one pass can surface many
// independent violations.
//
// Borrows is the borrow scope manager. Every successful borrow is
// registered against the scope of the borrowing reference (or a synthetic
// call scope for transient argument borrows); when a scope exits the
// manager releases each of its records exactly once through the tracker.
// The manager is the only caller of the release operations; a double
// release is an internal-consistency fault and panics.
//
// Plan is the output contract for code generation: per-expression
// move/borrow/release actions, per-scope drop lists, and an ordered event
// log for debugging and plan export.
package ownership
