package discovery

import "errors"

// Fatal error kinds surfaced by Discover (§7). A failure during any
// phase aborts the whole call; no partial net is ever returned.
var (
	// ErrEmptyLog is returned when the projection has zero traces, or
	// the DFG has zero edges after Start/End augmentation.
	ErrEmptyLog = errors.New("discovery: empty log")

	// ErrInvalidConfig is returned when a configured threshold falls
	// outside its documented range.
	ErrInvalidConfig = errors.New("discovery: invalid config")

	// ErrInconsistentProjection is returned when a trace references an
	// activity index outside the bounds of the activities vector.
	ErrInconsistentProjection = errors.New("discovery: inconsistent projection")
)
