// Package diag defines the diagnostic model shared by all frontend phases.
//
// Diagnostic is the central record: severity, a stable numeric code, a short
// message, the primary source span, and optional secondary notes ("value moved
// here"). Phases emit through a Reporter so that storage and rendering stay
// decoupled; BagReporter aggregates into a Bag which supports deterministic
// sorting, deduplication and merging.
//
// The package performs no IO and no formatting. Rendering lives in
// internal/diagfmt; orchestration lives in internal/driver.
package diag
