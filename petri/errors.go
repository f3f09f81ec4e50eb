package petri

import "errors"

var (
	// ErrTransitionNotFound is returned when an arc references a
	// transition id that is not present in the net.
	ErrTransitionNotFound = errors.New("petri: transition not found")

	// ErrPlaceNotFound is returned when an arc or marking references a
	// place id that is not present in the net.
	ErrPlaceNotFound = errors.New("petri: place not found")
)
