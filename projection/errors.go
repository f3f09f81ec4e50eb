package projection

import "errors"

var (
	// ErrInconsistentProjection is returned when a trace references an
	// activity index outside the bounds of the activities vector.
	ErrInconsistentProjection = errors.New("projection: trace index out of range")

	// ErrEmptyDFG is returned when a DFG has zero edges; discovery is
	// ill-defined on an empty directly-follows graph (the caller should
	// surface this as the discovery core's EmptyLog error kind).
	ErrEmptyDFG = errors.New("projection: dfg has no edges")
)
